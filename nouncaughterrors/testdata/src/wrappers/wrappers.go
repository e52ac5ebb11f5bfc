package wrappers

// NetError reports an unreachable peer.
type NetError struct{}

// TimeoutError reports an expired deadline.
type TimeoutError struct{}

// AuthError reports rejected credentials.
type AuthError struct{}

// dial opens a connection.
// @throws {NetError} when the peer is unreachable
func dial() {
	panic(NetError{})
}

// login authenticates.
// @throws {AuthError} when credentials are rejected
func login() {
	panic(AuthError{})
}

// withTimeout bounds fn to a deadline.
// @throws {TimeoutError} when the deadline expires
func withTimeout(fn func()) {
	fn()
	panic(TimeoutError{})
}

// retried wraps fn with retries.
// @throws {never}
func retried(fn func()) func() {
	return func() {
		fn()
	}
}

func connect() { // want "missing @throws declaration; inferred error types: NetError, TimeoutError"
	withTimeout(dial)
}

// session dials under a deadline with retries.
// @throws {NetError} when the peer is unreachable
// @throws {TimeoutError} when the deadline expires
func session() {
	withTimeout(retried(dial))
}

func probe() { // want "missing @throws declaration; inferred error types: AuthError, TimeoutError"
	withTimeout(func() {
		login()
	})
}
