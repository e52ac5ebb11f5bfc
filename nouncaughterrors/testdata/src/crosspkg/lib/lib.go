package lib

// StoreError reports a failed write.
type StoreError struct {
	Key string
}

// Put writes one record.
// @throws {StoreError} when the backend rejects the write
func Put(key string) { // want Put:`\[StoreError\]`
	panic(StoreError{Key: key})
}

// Flush is a no-op for the memory backend.
// @throws {never}
func Flush() { // want Flush:`\[\]`
}
