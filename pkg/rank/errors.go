package rank

import (
	"errors"
	"fmt"
)

// ErrContractViolation is matched by every ContractViolation.
var ErrContractViolation = errors.New("rank: contract violation")

// ContractViolation reports malformed input handed to the ranking engine.
// It always indicates a bug upstream rather than a condition to recover from.
type ContractViolation struct {
	Op     string
	Reason string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("rank: %s: %s", e.Op, e.Reason)
}

func (e *ContractViolation) Is(target error) bool {
	return target == ErrContractViolation
}

func newContractViolation(op, format string, args ...any) *ContractViolation {
	return &ContractViolation{Op: op, Reason: fmt.Sprintf(format, args...)}
}
