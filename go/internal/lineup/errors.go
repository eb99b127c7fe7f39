package lineup

import (
	"fmt"
	"strings"
)

// ValidationError reports which request parameters were missing. WeekNumber
// zero is a legal value, so callers must use a pointer to signal absence.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: missing required parameters: %s", strings.Join(e.Missing, ", "))
}
