package validate

import (
	"fmt"

	contractx "github.com/advait08/sales-agent-llm/agent/contract"
)

// Violation reports the first field that broke the output contract. It wraps
// contract.ErrSchemaViolation so callers can branch with errors.Is while still
// reading the offending field path.
type Violation struct {
	FieldPath string
	Expected  string
	Actual    string
}

func (v *Violation) Error() string {
	path := v.FieldPath
	if path == "" {
		path = "$"
	}
	return fmt.Sprintf("%s: field %s: expected %s, got %s",
		contractx.ErrSchemaViolation.Error(), path, v.Expected, v.Actual)
}

func (v *Violation) Unwrap() error {
	return contractx.ErrSchemaViolation
}

func violation(path, expected, actual string) *Violation {
	return &Violation{FieldPath: path, Expected: expected, Actual: actual}
}
