package resolve

import (
	"fmt"
	"strings"
)

// NotFoundError means the address named nothing that exists. It carries the
// full set of known branch names so the message can point the user somewhere.
type NotFoundError struct {
	Target    string
	Available []string
}

func (e *NotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("no session matches %q (no sessions are running)", e.Target)
	}
	return fmt.Sprintf("no session matches %q (known branches: %s)", e.Target, strings.Join(e.Available, ", "))
}

// OutOfRangeError means a numeric index missed. Dimension names which index
// was wrong for compound addresses ("project" or "branch"); plain flat
// indexes use "session".
type OutOfRangeError struct {
	Dimension string
	Index     int
	Min, Max  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s index %d out of range (valid: %d-%d)", e.Dimension, e.Index, e.Min, e.Max)
}
