package app

import (
	"strings"

	"crosspkg/lib"
)

func persist(key string) { // want "missing @throws declaration; inferred error types: StoreError"
	lib.Put(key)
}

// persistAll writes every record and flushes.
// @throws {StoreError} when the backend rejects the write
func persistAll(keys []string) {
	for _, k := range keys {
		lib.Put(k)
	}
	lib.Flush()
}

// normalize lowercases a key.
// @throws {never}
func normalize(k string) string {
	return strings.ToLower(k)
}
