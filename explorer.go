package hanzicomp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/derekparker/trie"
)

// Filter is a host-supplied predicate over codepoints, for example "is this
// codepoint present in the active glyph set" or "does it carry color label
// C". The engine treats it as opaque; a nil Filter accepts every codepoint.
type Filter func(rune) bool

// Explorer is a loaded character dataset together with its two reverse
// indices. It is built once by Load and immutable afterwards: all query
// operations are read-only and safe for arbitrary concurrent callers.
type Explorer struct {
	Identifier string // identifies the dataset

	entries   map[rune]*CharacterEntry        // by canonical codepoint
	canonical map[rune]rune                   // compatibility codepoint -> canonical
	sisters   map[StructuralSignature][]rune  // signature -> canonical codepoints, sorted
	derived   map[rune][]rune                 // component -> canonical codepoints, sorted
	hexKeys   *trie.Trie                      // uppercase hex notation of every known codepoint
}

// Stats reports the size of the built model: number of logical characters,
// distinct structural signatures, and distinct component keys.
func (x *Explorer) Stats() (characters, signatures, components int) {
	if x == nil {
		return 0, 0, 0
	}
	return len(x.entries), len(x.sisters), len(x.derived)
}

// resolve maps any compatibility codepoint to its canonical codepoint.
func (x *Explorer) resolve(cp rune) rune {
	if c, ok := x.canonical[cp]; ok {
		return c
	}
	return cp
}

// Lookup resolves a codepoint — canonical or compatibility — to its
// character entry. It returns ErrNotFound (wrapped) for codepoints absent
// from the dataset. The returned entry is shared read-only state and must
// not be modified.
func (x *Explorer) Lookup(cp rune) (*CharacterEntry, error) {
	ent, ok := x.entries[x.resolve(cp)]
	if !ok {
		return nil, notFound(cp)
	}
	return ent, nil
}

// Decompose returns the character's decomposition variants verbatim, in
// authoring order; the first variant is the primary one for display. The
// sequence is empty for atomic characters. Absent codepoints yield
// ErrNotFound.
func (x *Explorer) Decompose(cp rune) ([]DecompositionVariant, error) {
	ent, err := x.Lookup(cp)
	if err != nil {
		return nil, err
	}
	return ent.Variants, nil
}

// SisterCharacters returns every character whose decomposition tree is
// structurally identical to one of the queried character's own variants.
// The queried character itself is never included. A non-nil filter
// restricts the result to accepted codepoints.
func (x *Explorer) SisterCharacters(cp rune, filter Filter) ([]rune, error) {
	ent, err := x.Lookup(cp)
	if err != nil {
		return nil, err
	}
	return selectRunes(x.sistersFor(ent), x.selfSet(ent), filter), nil
}

// DerivedCharacters returns every character that contains the queried
// character as a component anywhere in its decomposition tree, at any
// depth. The union is taken over the canonical codepoint and all
// compatibility codepoints, so matches survive even if a decomposition was
// authored with a variant codepoint the loader did not unify. Codepoints
// that are known only as components (atomic or absent from the entry map)
// are still valid keys; ErrNotFound is returned only when the codepoint is
// neither an entry nor a component.
func (x *Explorer) DerivedCharacters(cp rune, filter Filter) ([]rune, error) {
	if ent, err := x.Lookup(cp); err == nil {
		candidates := x.derived[ent.Codepoint]
		if len(ent.Aliases) > 0 {
			set := make(map[rune]struct{}, len(candidates))
			for _, c := range candidates {
				set[c] = struct{}{}
			}
			for _, alias := range ent.Aliases {
				for _, c := range x.derived[alias] {
					set[c] = struct{}{}
				}
			}
			candidates = sortedRunes(set)
		}
		return selectRunes(candidates, x.selfSet(ent), filter), nil
	}
	if candidates, ok := x.derived[cp]; ok {
		return selectRunes(candidates, map[rune]struct{}{cp: {}}, filter), nil
	}
	return nil, notFound(cp)
}

// Search resolves an arbitrary input token (literal character or hex
// codepoint notation) and returns the characters containing it as a
// component, plus the resolved character itself when it is in the dataset.
func (x *Explorer) Search(token string, filter Filter) ([]rune, error) {
	cp, err := x.ResolveToken(token)
	if err != nil {
		return nil, err
	}
	result, err := x.DerivedCharacters(cp, filter)
	if err != nil {
		return nil, err
	}
	if ent, err := x.Lookup(cp); err == nil {
		if filter == nil || filter(ent.Codepoint) {
			result = append(result, ent.Codepoint)
			sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
		}
	}
	return result, nil
}

// selfSet returns the codepoints that identify the entry itself, for
// self-exclusion in relation queries.
func (x *Explorer) selfSet(ent *CharacterEntry) map[rune]struct{} {
	self := make(map[rune]struct{}, 1+len(ent.Aliases))
	self[ent.Codepoint] = struct{}{}
	for _, alias := range ent.Aliases {
		self[alias] = struct{}{}
	}
	return self
}

// ResolveToken detects whether an input token denotes a literal character or
// a Unicode codepoint in hexadecimal notation and resolves it to a
// codepoint.
//
// Accepted hex forms are "U+68EE", "uni68EE", "u68EE" and — for four to six
// digits — bare "68EE", mirroring the notations common in font tooling.
// Anything else is taken as a literal character; multi-character literals
// are rejected with an *InvalidQueryError. Resolution does not require the
// codepoint to be present in the dataset.
func (x *Explorer) ResolveToken(token string) (rune, error) {
	t := strings.TrimSpace(token)
	if t == "" {
		return 0, &InvalidQueryError{Token: token, Reason: "empty input"}
	}
	upper := strings.ToUpper(t)
	var hex string
	switch {
	case strings.HasPrefix(upper, "U+"):
		hex = upper[2:]
	case strings.HasPrefix(upper, "UNI"):
		hex = upper[3:]
	case len(upper) > 1 && upper[0] == 'U' && isHexDigits(upper[1:]):
		hex = upper[1:]
	case len(upper) >= 4 && len(upper) <= 6 && isHexDigits(upper):
		hex = upper
	}
	if hex != "" {
		value, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || !utf8.ValidRune(rune(value)) {
			return 0, &InvalidQueryError{Token: token, Reason: "not a valid Unicode codepoint"}
		}
		return rune(value), nil
	}
	runes := []rune(t)
	if len(runes) != 1 {
		return 0, &InvalidQueryError{
			Token:  token,
			Reason: "expected a single character or a hexadecimal codepoint",
		}
	}
	return runes[0], nil
}

func isHexDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// LookupHexPrefix returns all dataset codepoints — canonical and
// compatibility — whose uppercase hexadecimal notation starts with prefix,
// sorted ascending. It serves incremental codepoint entry at the host
// boundary.
func (x *Explorer) LookupHexPrefix(prefix string) []rune {
	p := strings.ToUpper(strings.TrimSpace(prefix))
	if p == "" || !isHexDigits(p) {
		return nil
	}
	keys := x.hexKeys.PrefixSearch(p)
	set := make(map[rune]struct{}, len(keys))
	for _, key := range keys {
		value, err := strconv.ParseUint(key, 16, 32)
		if err != nil {
			continue
		}
		set[rune(value)] = struct{}{}
	}
	return sortedRunes(set)
}

// buildHexIndex registers the hex notation of every known codepoint in a
// prefix-searchable trie.
func (x *Explorer) buildHexIndex() {
	x.hexKeys = trie.New()
	for cp, ent := range x.entries {
		x.hexKeys.Add(fmt.Sprintf("%04X", cp), cp)
		for _, alias := range ent.Aliases {
			x.hexKeys.Add(fmt.Sprintf("%04X", alias), alias)
		}
	}
}

// The process-wide shared model. Initialize publishes it exactly once;
// queries through Default never race with construction.
var (
	initOnce     sync.Once
	defaultModel atomic.Pointer[defaultState]
)

type defaultState struct {
	x   *Explorer
	err error
}

// Initialize builds the process-wide shared model from reader. Only the
// first call loads; subsequent calls return the already-published model (or
// the error the first load produced), regardless of their arguments.
func Initialize(name string, reader RecordReader) (*Explorer, error) {
	initOnce.Do(func() {
		x, err := Load(name, reader)
		defaultModel.Store(&defaultState{x: x, err: err})
	})
	s := defaultModel.Load()
	return s.x, s.err
}

// Default returns the model published by Initialize, or nil if Initialize
// has not completed successfully.
func Default() *Explorer {
	if s := defaultModel.Load(); s != nil {
		return s.x
	}
	return nil
}
