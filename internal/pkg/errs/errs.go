package errs

import (
	"errors"
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

// Mark ties err to a sentinel so callers can route on it with errors.Is
// while keeping the original cause (and its stack) intact.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return &markedError{cause: cr.Mark(err, markErr), mark: markErr}
}

// markedError makes the mark visible to the standard library's errors.Is,
// which only walks the Unwrap chain and cannot see cockroachdb marks.
type markedError struct {
	cause error
	mark  error
}

func (e *markedError) Error() string { return e.cause.Error() }

func (e *markedError) Unwrap() error { return e.cause }

func (e *markedError) Is(target error) bool {
	return errors.Is(e.mark, target)
}

func (e *markedError) Format(s fmt.State, verb rune) {
	if f, ok := e.cause.(fmt.Formatter); ok {
		f.Format(s, verb)
		return
	}
	fmt.Fprintf(s, fmt.FormatString(s, verb), e.cause)
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
