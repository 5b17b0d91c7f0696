package runtime

import "fmt"

// DriverError wraps a failure reported by the underlying driver. The
// adapter never retries; callers decide whether the failure is transient.
type DriverError struct {
	Stmt string
	Err  error
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("driver error executing %q: %v", e.Stmt, e.Err)
}

func (e *DriverError) Unwrap() error { return e.Err }
