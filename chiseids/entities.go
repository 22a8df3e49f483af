package chiseids

import "strings"

// internBase is the first codepoint handed out for entity components
// (Supplementary Private Use Area-A).
const internBase = 0xF0000

// Interner assigns stable private-use codepoints to CHISE entity references
// such as &CDP-8B7C;. The same entity name always maps to the same
// codepoint within one Interner, so structurally identical descriptions
// normalize to the same signature even when they use components outside
// Unicode.
type Interner struct {
	assigned map[string]rune
	next     rune
}

func NewInterner() *Interner {
	return &Interner{
		assigned: make(map[string]rune),
		next:     internBase,
	}
}

// Rune returns the private-use codepoint for an entity name, assigning a
// fresh one on first sight.
func (in *Interner) Rune(name string) rune {
	if r, ok := in.assigned[name]; ok {
		return r
	}
	r := in.next
	in.next++
	in.assigned[name] = r
	return r
}

// Len returns the number of distinct entity names seen so far.
func (in *Interner) Len() int {
	return len(in.assigned)
}

// Substitute replaces every &name; entity reference in an IDS expression
// with its interned codepoint. Stray ampersands without a terminating
// semicolon are left untouched.
func (in *Interner) Substitute(ids string) string {
	if !strings.ContainsRune(ids, '&') {
		return ids
	}
	var sb strings.Builder
	rest := ids
	for {
		i := strings.IndexByte(rest, '&')
		if i < 0 {
			sb.WriteString(rest)
			break
		}
		j := strings.IndexByte(rest[i:], ';')
		if j < 0 {
			sb.WriteString(rest)
			break
		}
		sb.WriteString(rest[:i])
		sb.WriteRune(in.Rune(rest[i+1 : i+j]))
		rest = rest[i+j+1:]
	}
	return sb.String()
}
