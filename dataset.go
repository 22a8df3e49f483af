package hanzicomp

import (
	"fmt"
	"io"
	"sort"
)

// Record is one raw dataset entry as delivered by a RecordReader.
//
// Codepoint is the primary codepoint of the character. IDS holds its
// description strings in authoring order; a string equal to the character
// itself is the atomic marker and produces no decomposition variant.
// Aliases lists compatibility codepoints that denote the same logical
// character for lookup purposes.
type Record struct {
	Codepoint rune
	IDS       []string
	Aliases   []rune
}

// RecordReader yields raw dataset records one-by-one.
// It should return io.EOF when the stream is exhausted.
type RecordReader interface {
	Next() (Record, error)
}

// DecompositionVariant is one parsed interpretation of a character: the
// description string as authored plus its component tree. Leaf codepoints in
// the tree are unified to canonical form by the loader.
type DecompositionVariant struct {
	IDS  string
	Root *ComponentNode
}

// CharacterEntry is the unit of the dataset: a canonical codepoint, the
// compatibility codepoints that map to it, and its decomposition variants in
// authoring order (empty for atomic characters). Entries are immutable after
// loading.
type CharacterEntry struct {
	Codepoint rune
	Aliases   []rune
	Variants  []DecompositionVariant
}

// rawEntry accumulates record data per canonical codepoint during loading.
type rawEntry struct {
	ids     []string
	seen    map[string]struct{}
	aliases map[rune]struct{}
}

func (re *rawEntry) addIDS(s string) {
	if s == "" {
		return
	}
	if _, ok := re.seen[s]; ok {
		return
	}
	re.seen[s] = struct{}{}
	re.ids = append(re.ids, s)
}

// Load reads all records from a streaming, format-agnostic source and builds
// the complete model: the character entries, the sister index and the
// derived-component index. The returned Explorer is immutable and safe for
// concurrent readers.
//
// File format parsing is intentionally outside the base package. Use
// adapters like package chiseids to parse concrete formats and feed this
// API.
//
// A single unparseable description string only drops that one variant (with
// a trace message); structurally invalid records — an empty record, or a
// compatibility codepoint claimed by two different characters — abort the
// load with a *DatasetError.
func Load(name string, reader RecordReader) (*Explorer, error) {
	return LoadParallel(name, reader, 1)
}

// LoadParallel is Load with the index construction sharded across workers
// goroutines. The resulting model is identical to the sequential build.
func LoadParallel(name string, reader RecordReader, workers int) (*Explorer, error) {
	raws := make(map[rune]*rawEntry)
	canonical := make(map[rune]rune) // compatibility codepoint -> canonical

	for {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := mergeRecord(raws, canonical, rec); err != nil {
			return nil, err
		}
	}

	entries := make(map[rune]*CharacterEntry, len(raws))
	skipped := 0
	for cp, re := range raws {
		ent := &CharacterEntry{Codepoint: cp, Aliases: sortedRunes(re.aliases)}
		for _, s := range re.ids {
			if s == string(cp) {
				continue // atomic marker: the character does not decompose
			}
			root, err := ParseIDS(s)
			if err != nil {
				tracer().Debugf("skipping variant of U+%04X: %v", cp, err)
				skipped++
				continue
			}
			ent.Variants = append(ent.Variants, DecompositionVariant{IDS: s, Root: root})
		}
		entries[cp] = ent
	}

	// Unify compatibility codepoints appearing as leaves, so that
	// structurally identical trees authored with different variant
	// codepoints normalize to the same signature.
	for _, ent := range entries {
		for _, v := range ent.Variants {
			v.Root.Walk(func(n *ComponentNode) {
				if !n.IsLeaf() {
					return
				}
				if c, ok := canonical[n.Leaf]; ok {
					n.Leaf = c
				}
			})
		}
	}

	x := &Explorer{
		Identifier: fmt.Sprintf("dataset: %s", name),
		entries:    entries,
		canonical:  canonical,
	}
	x.buildIndexes(workers)
	x.buildHexIndex()
	characters, signatures, components := x.Stats()
	tracer().Infof("component index stats characters=%d signatures=%d components=%d skippedVariants=%d",
		characters, signatures, components, skipped)
	return x, nil
}

// mergeRecord folds one raw record into the accumulation maps, keeping every
// compatibility codepoint reachable through exactly one canonical codepoint.
func mergeRecord(raws map[rune]*rawEntry, canonical map[rune]rune, rec Record) error {
	if rec.Codepoint == 0 {
		return &DatasetError{Reason: "empty record"}
	}
	target := rec.Codepoint
	if c, ok := canonical[target]; ok {
		target = c
	}
	ent := ensureRaw(raws, target)
	for _, s := range rec.IDS {
		ent.addIDS(s)
	}
	for _, alias := range rec.Aliases {
		if alias == target {
			continue
		}
		if c, ok := canonical[alias]; ok {
			if c != target {
				return &DatasetError{
					Codepoint: alias,
					Reason: fmt.Sprintf("compatibility codepoint already maps to U+%04X, conflicting record maps it to U+%04X",
						c, target),
				}
			}
			continue
		}
		if other, ok := raws[alias]; ok {
			// The alias was loaded as a primary earlier; fold its
			// variants and aliases into the canonical entry.
			for _, s := range other.ids {
				ent.addIDS(s)
			}
			for a := range other.aliases {
				canonical[a] = target
				ent.aliases[a] = struct{}{}
			}
			delete(raws, alias)
		}
		canonical[alias] = target
		ent.aliases[alias] = struct{}{}
	}
	return nil
}

func ensureRaw(raws map[rune]*rawEntry, cp rune) *rawEntry {
	if ent, ok := raws[cp]; ok {
		return ent
	}
	ent := &rawEntry{
		seen:    make(map[string]struct{}),
		aliases: make(map[rune]struct{}),
	}
	raws[cp] = ent
	return ent
}

func sortedRunes(set map[rune]struct{}) []rune {
	if len(set) == 0 {
		return nil
	}
	runes := make([]rune, 0, len(set))
	for r := range set {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return runes
}
