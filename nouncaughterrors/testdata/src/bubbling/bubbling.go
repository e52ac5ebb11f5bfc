package bubbling

// SendError reports a rejected message.
type SendError struct{}

// send pushes a message to the peer.
// @throws {SendError} when the peer rejects the message
func send() {
	panic(SendError{})
}

// broadcast pushes to every peer and lets failures bubble.
// @throws {SendError} when the peer rejects the message
func broadcast() {
	send() // want "errors from call to send must be handled locally: SendError"
}

// broadcastSafe contains failures locally.
// @throws {never}
func broadcastSafe() {
	defer func() {
		recover()
	}()
	send()
}

// fail throws directly; direct panics are not bubbling.
// @throws {SendError} when the peer rejects the message
func fail() {
	panic(SendError{})
}
