package fixture

import (
	"errors"
	"fmt"
)

// Step names the lifecycle phase a seeding failure happened in.
type Step string

const (
	StepConnect Step = "connect"
	StepDrop    Step = "drop"
	StepCreate  Step = "create"
	StepInsert  Step = "insert"
)

// ErrHandleClosed is returned by Handle methods once teardown (or Close)
// has run. A closed handle never silently succeeds.
var ErrHandleClosed = errors.New("fixture: handle is closed")

// ConfigError reports malformed input: a Dataset that fails validation or a
// connection config naming an unsupported provider. Nothing was executed
// against the target.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid fixture configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ConnectError reports that the target database could not be opened or
// pinged. Target carries a redacted rendering of the connection config.
type ConnectError struct {
	Target string
	Err    error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.Target, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// SeedError reports a failed drop, create or insert while seeding. The
// target database may be in an indeterminate state; cleanup was attempted
// but is best-effort.
type SeedError struct {
	Step  Step
	Table string
	Err   error
}

func (e *SeedError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("seed step %s failed: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("seed step %s failed for table %s: %v", e.Step, e.Table, e.Err)
}

func (e *SeedError) Unwrap() error { return e.Err }

// TeardownError reports a failed table drop during teardown. Multiple drop
// failures are joined; a body failure is never masked by one.
type TeardownError struct {
	Table string
	Err   error
}

func (e *TeardownError) Error() string {
	return fmt.Sprintf("teardown failed for table %s: %v", e.Table, e.Err)
}

func (e *TeardownError) Unwrap() error { return e.Err }

func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

func IsConnectError(err error) bool {
	var e *ConnectError
	return errors.As(err, &e)
}

func IsSeedError(err error) bool {
	var e *SeedError
	return errors.As(err, &e)
}

func IsTeardownError(err error) bool {
	var e *TeardownError
	return errors.As(err, &e)
}
