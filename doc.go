/*
Package hanzicomp decomposes Chinese/Han characters into their structural
components and answers relational queries over the resulting component graph.

Character structure is described by Ideographic Description Sequences (IDS),
a prefix notation where a positional operator such as ⿰ (left-right) or
⿱ (top-bottom) is followed by its two or three sub-components, themselves
either plain characters or nested IDS expressions. The package parses IDS
strings into component trees, normalizes every tree into a structural
signature, and builds two reverse indices over the whole dataset:

  - the sister index groups characters whose decomposition trees are
    structurally identical (same operators, same component order, same
    leaves at every depth), and
  - the derived-component index maps a component to every character that
    contains it anywhere in its decomposition, transitively through the
    components' own decompositions.

The dataset is loaded once through a streaming RecordReader and is immutable
afterwards; an Explorer may be shared across concurrent readers without
locking. File format parsing is intentionally outside the base package. Use
adapters like package chiseids to parse concrete formats and feed this API.

Further Reading

	https://www.unicode.org/charts/PDF/U2FF0.pdf   (Ideographic Description Characters)
	https://github.com/chise/ids                   (CHISE IDS database)

----------------------------------------------------------------------

# BSD License

Copyright (c) TzuYuan Yin

All rights reserved.

License information is available in the LICENSE file.
*/
package hanzicomp

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'hanzicomp'
func tracer() tracing.Trace {
	return tracing.Select("hanzicomp")
}
