// Package chiseids parses the CHISE IDS database file format and feeds it to
// the hanzicomp loader as a stream of records.
//
// The format is line-oriented and tab-separated:
//
//	U+68EE	森	⿱木林
//
// with `;` and `#` comment lines. The first field is the codepoint in U+XXXX
// (or U-XXXXXXXX) notation, the second the character itself, and the
// remaining fields are IDS expressions. Component references without a
// Unicode codepoint appear as entity references like &CDP-8B7C; and are
// interned to stable private-use codepoints. A description consisting of a
// single character different from the record's own — the CHISE convention
// for compatibility ideographs — is turned into a compatibility-alias
// record instead of a decomposition.
package chiseids

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yintzuyuan/hanzicomp"
)

// Reader streams character records from CHISE-style IDS source files.
// To combine several source files into one dataset, feed them through a
// single Reader (for example via io.MultiReader), so that interned entity
// components stay stable across files.
type Reader struct {
	scanner  *bufio.Scanner
	interner *Interner
	pending  []hanzicomp.Record
}

// Load parses CHISE IDS data from reader and returns a ready-to-use
// explorer.
//
// Example usage:
//
//	f, _ := os.Open("path/to/ids/IDS-UCS-Basic.txt")
//	defer f.Close()
//
//	x, err := chiseids.Load("ucs-basic", f)
func Load(name string, reader io.Reader) (*hanzicomp.Explorer, error) {
	return hanzicomp.Load(name, NewReader(reader))
}

func NewReader(reader io.Reader) *Reader {
	return &Reader{
		scanner:  bufio.NewScanner(reader),
		interner: NewInterner(),
	}
}

// Next returns the next raw record.
// It returns io.EOF when exhausted.
func (r *Reader) Next() (hanzicomp.Record, error) {
	if len(r.pending) > 0 {
		rec := r.pending[0]
		r.pending = r.pending[1:]
		return rec, nil
	}
	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			continue // not a record line
		}
		cp, ok := parseCodepoint(parts[0])
		if !ok {
			continue
		}
		rec := hanzicomp.Record{Codepoint: cp}
		for _, field := range parts[2:] {
			field = trimApparatus(field)
			if field == "" {
				continue
			}
			ids := r.interner.Substitute(field)
			runes := []rune(ids)
			if len(runes) == 1 && runes[0] != cp {
				// compatibility ideograph: described as the unified
				// character itself
				r.pending = append(r.pending, hanzicomp.Record{
					Codepoint: runes[0],
					Aliases:   []rune{cp},
				})
				continue
			}
			rec.IDS = append(rec.IDS, ids)
		}
		if len(rec.IDS) == 0 && len(r.pending) > 0 {
			// the line held only the alias description
			rec = r.pending[0]
			r.pending = r.pending[1:]
		}
		return rec, nil
	}
	if err := r.scanner.Err(); err != nil {
		return hanzicomp.Record{}, err
	}
	return hanzicomp.Record{}, io.EOF
}

func parseCodepoint(notation string) (rune, bool) {
	var hex string
	switch {
	case strings.HasPrefix(notation, "U+"), strings.HasPrefix(notation, "U-"):
		hex = notation[2:]
	default:
		return 0, false
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || !utf8.ValidRune(rune(value)) {
		return 0, false
	}
	return rune(value), true
}

// trimApparatus strips trailing source apparatus (bracketed source letters
// and anything after a space) from an IDS field.
func trimApparatus(field string) string {
	if i := strings.IndexAny(field, "[ "); i >= 0 {
		field = field[:i]
	}
	return strings.TrimSpace(field)
}
