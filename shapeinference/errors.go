package shapeinference

import (
	"fmt"

	"github.com/pkg/errors"
)

// ValidationError reports a violated structural constraint of a node.
//
// Parameter is compared against Reference: Actual is the offending value, and Expected the value
// it is checked against with Relation (e.g. "must be >"). Nodes failing a check that is not a
// comparison only have Message set.
type ValidationError struct {
	NodeID    string
	Parameter string
	Actual    any
	Relation  string
	Reference string
	Expected  any
	Message   string
}

// Error implements error.
func (e *ValidationError) Error() string {
	if e.Parameter == "" {
		return fmt.Sprintf("node %q: %s", e.NodeID, e.Message)
	}
	reference := e.Reference
	if reference == "" {
		reference = "value"
	}
	return fmt.Sprintf("node %q: %s (%v) %s %s (%v): %s",
		e.NodeID, e.Parameter, e.Actual, e.Relation, reference, e.Expected, e.Message)
}

// validator runs checks in sequence, keeping only the first failure.
// Once err is set, all further checks are no-ops.
type validator struct {
	nodeID string
	err    error
}

func (v *validator) fail(parameter string, actual any, relation, reference string, expected any, message string) {
	v.err = errors.WithStack(&ValidationError{
		NodeID:    v.nodeID,
		Parameter: parameter,
		Actual:    actual,
		Relation:  relation,
		Reference: reference,
		Expected:  expected,
		Message:   message,
	})
}

// message fails unconditionally with a message.
func (v *validator) message(format string, args ...any) {
	if v.err != nil {
		return
	}
	v.err = errors.WithStack(&ValidationError{NodeID: v.nodeID, Message: fmt.Sprintf(format, args...)})
}

// lessOrEqual fails if actual <= limit.
func (v *validator) lessOrEqual(parameter string, actual int, reference string, limit int, message string) {
	if v.err != nil || actual > limit {
		return
	}
	v.fail(parameter, actual, "must be >", reference, limit, message)
}

// lessThan fails if actual < limit.
func (v *validator) lessThan(parameter string, actual int, reference string, limit int, message string) {
	if v.err != nil || actual >= limit {
		return
	}
	v.fail(parameter, actual, "must be >=", reference, limit, message)
}

// greaterOrEqual fails if actual >= limit.
func (v *validator) greaterOrEqual(parameter string, actual int, reference string, limit int, message string) {
	if v.err != nil || actual < limit {
		return
	}
	v.fail(parameter, actual, "must be <", reference, limit, message)
}

// notDivisible fails if actual is not a multiple of divisor.
func (v *validator) notDivisible(parameter string, actual, divisor int, message string) {
	if v.err != nil || actual%divisor == 0 {
		return
	}
	v.fail(parameter, actual, "must be divisible by", "divisor", divisor, message)
}

// notEqual fails if actual != expected.
func notEqual[T comparable](v *validator, parameter string, actual T, reference string, expected T, message string) {
	if v.err != nil || actual == expected {
		return
	}
	v.fail(parameter, actual, "must be equal to", reference, expected, message)
}
