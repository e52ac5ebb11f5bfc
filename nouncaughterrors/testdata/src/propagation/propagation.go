package propagation

// FetchError reports an unreachable backend.
type FetchError struct{}

// CacheError reports a corrupt cache.
type CacheError struct{}

// fetch loads a record from the backend.
// @throws {FetchError} when the backend is unreachable
func fetch() string {
	panic(FetchError{})
}

// fetchCached hides backend failures behind the cache.
// @throws {CacheError} when the cache is corrupt
func fetchCached() string {
	if corrupt() {
		panic(CacheError{})
	}
	defer func() {
		if recover() != nil {
		}
	}()
	return fetch()
}

func corrupt() bool {
	return false
}

// legacyFetch is documented against its real behavior.
// @throws {CacheError} when the cache is corrupt
func legacyFetch() { // want `undeclared error type FetchError \(thrown in function body\)` "warning: declared error type CacheError is never thrown by legacyFetch"
	panic(FetchError{})
}

// useLegacy trusts the declared contract, so only CacheError reaches it.
// @throws {CacheError} when the cache is corrupt
func useLegacy() {
	legacyFetch()
}

func warmup() { // want "missing @throws declaration; inferred error types: CacheError"
	fetchCached()
}
