package fetch

import "fmt"

// Error describes a failed fetch after all attempts were spent.
type Error struct {
	URL        string
	StatusCode int
	Attempts   int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d after %d attempts", e.URL, e.StatusCode, e.Attempts)
	}
	return fmt.Sprintf("fetch %s after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Blocked reports whether the target refused us outright, which is the
// signal to rotate identity rather than retry blindly.
func (e *Error) Blocked() bool {
	return e.StatusCode == 403 || e.StatusCode == 429
}
