package recoverblock

// JobError reports a failed job.
type JobError struct{}

// run executes one job.
// @throws {JobError} when the job fails
func run() {
	panic(JobError{})
}

// runAll executes jobs, containing failures.
// @throws {never}
func runAll() {
	defer func() {
		if r := recover(); r != nil {
			println("job failed")
		}
	}()
	run()
}

// runFirst lets the first failure escape.
// @throws {JobError} when the job fails
func runFirst() {
	run()
	defer func() {
		recover()
	}()
	run()
}

// runAgain re-panics after logging, so the failure still escapes.
// @throws {JobError} when the job fails
func runAgain() {
	defer func() {
		if r := recover(); r != nil {
			println("retrying")
			panic(r)
		}
	}()
	run()
}

// runScoped contains failures only inside the loop body.
// @throws {JobError} when the job fails
func runScoped(jobs []int) {
	for range jobs {
		func() {
			defer func() {
				recover()
			}()
			run()
		}()
	}
	run()
}

// containedThrow recovers its own panic.
// @throws {never}
func containedThrow() {
	defer func() {
		recover()
	}()
	panic(JobError{})
}
