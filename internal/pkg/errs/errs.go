package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

// New, Wrap and Wrapf capture a stack at the call site; Wrap and Wrapf pass nil through.
func New(msg string) error { return cr.NewWithDepth(1, msg) }

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.WrapWithDepth(1, err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.WrapWithDepthf(1, err, format, args...)
}

// Mark tags err with a sentinel while keeping its own chain; a nil err yields the sentinel.
func Mark(err error, sentinel error) error {
	if err == nil {
		return sentinel
	}
	return cr.Mark(err, sentinel)
}

// Is also matches marks added by Mark.
func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

// ExtractStackLines returns up to limit "func\n\tfile:line" pairs flattened into
// single lines, innermost first. Zero limit means all frames.
func ExtractStackLines(err error, limit int) []string {
	if err == nil {
		return nil
	}
	var frames []string
	lines := strings.Split(fmt.Sprintf("%+v", err), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(lines[i]), "|"))
	}
	for i := 0; i+1 < len(lines); i++ {
		fn, file := lines[i], lines[i+1]
		if fn == "" || strings.Contains(fn, ".go:") || !strings.Contains(file, ".go:") {
			continue
		}
		frames = append(frames, fn+" "+file)
		i++
		if limit > 0 && len(frames) == limit {
			break
		}
	}
	return frames
}
