package funclit

// TaskError reports a failed task.
type TaskError struct{}

// runTask is a documented function value.
// @throws {TaskError} when the task fails
var runTask = func() {
	panic(TaskError{})
}

// runQuiet promises not to throw.
// @throws {never}
var runQuiet = func() { // want `undeclared error type TaskError \(thrown in function body\)`
	panic(TaskError{})
}

func invoke() { // want "missing @throws declaration; inferred error types: TaskError"
	runTask()
}

func localTask() { // want "missing @throws declaration; inferred error types: TaskError"
	// fail aborts the task.
	// @throws {TaskError} when the task fails
	fail := func() {
		panic(TaskError{})
	}
	fail()
}

func compute() { // want "missing @throws declaration; inferred error types: TaskError"
	func() {
		panic(TaskError{})
	}()
}

func handoff() { // want "missing @throws declaration; inferred error types: TaskError"
	job := func() {
		panic(TaskError{})
	}
	job()
}
