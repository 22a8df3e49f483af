package hanzicomp

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a codepoint that is absent from the loaded dataset.
// It is an expected query outcome, not a failure of the engine; test with
// errors.Is.
var ErrNotFound = errors.New("character not found in dataset")

// MalformedIDSError reports an ideographic description string that cannot
// be parsed into a component tree.
type MalformedIDSError struct {
	IDS       string // the complete description string
	Offending string // the substring at fault, empty if the whole string is
	Reason    string
}

func (e *MalformedIDSError) Error() string {
	if e.Offending != "" {
		return fmt.Sprintf("malformed IDS %q at %q: %s", e.IDS, e.Offending, e.Reason)
	}
	return fmt.Sprintf("malformed IDS %q: %s", e.IDS, e.Reason)
}

// DatasetError reports a structurally invalid dataset record. It is fatal at
// load time: the engine refuses to serve queries over an inconsistent
// dataset.
type DatasetError struct {
	Codepoint rune
	Reason    string
}

func (e *DatasetError) Error() string {
	if e.Codepoint == 0 {
		return fmt.Sprintf("invalid dataset record: %s", e.Reason)
	}
	return fmt.Sprintf("invalid dataset record for U+%04X: %s", e.Codepoint, e.Reason)
}

// InvalidQueryError reports malformed caller input at the query boundary,
// such as a multi-character literal where one character is expected.
type InvalidQueryError struct {
	Token  string
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query %q: %s", e.Token, e.Reason)
}

func notFound(cp rune) error {
	return fmt.Errorf("U+%04X: %w", cp, ErrNotFound)
}
