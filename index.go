package hanzicomp

import (
	"sort"
	"sync"
)

// componentIndex holds the two reverse indices under construction. Both map
// onto sets of canonical codepoints and hold back-references only; entries
// are owned by the Explorer.
type componentIndex struct {
	sisters map[StructuralSignature]map[rune]struct{}
	derived map[rune]map[rune]struct{}
}

func newComponentIndex() *componentIndex {
	return &componentIndex{
		sisters: make(map[StructuralSignature]map[rune]struct{}),
		derived: make(map[rune]map[rune]struct{}),
	}
}

func (ci *componentIndex) addSister(sig StructuralSignature, owner rune) {
	set, ok := ci.sisters[sig]
	if !ok {
		set = make(map[rune]struct{})
		ci.sisters[sig] = set
	}
	set[owner] = struct{}{}
}

func (ci *componentIndex) addDerived(component, owner rune) {
	set, ok := ci.derived[component]
	if !ok {
		set = make(map[rune]struct{})
		ci.derived[component] = set
	}
	set[owner] = struct{}{}
}

func (ci *componentIndex) merge(other *componentIndex) {
	for sig, set := range other.sisters {
		for owner := range set {
			ci.addSister(sig, owner)
		}
	}
	for component, set := range other.derived {
		for owner := range set {
			ci.addDerived(component, owner)
		}
	}
}

// entryPairs is the pure traversal step of index construction: it returns
// the structural signatures of all of the entry's variants and the entry's
// transitive component set. Grouping the pairs into index storage happens in
// the caller, so the traversal stays testable on its own.
//
// The component set is the closure over the dataset: every leaf of every
// variant, plus — recursively — every leaf of those components' own
// variants. The entry's own codepoints are excluded up front, so a
// character never counts as its own component.
func entryPairs(ent *CharacterEntry, entries map[rune]*CharacterEntry) ([]StructuralSignature, []rune) {
	sigs := make([]StructuralSignature, 0, len(ent.Variants))
	for _, v := range ent.Variants {
		sigs = append(sigs, Signature(v.Root))
	}

	visited := map[rune]struct{}{ent.Codepoint: {}}
	for _, alias := range ent.Aliases {
		visited[alias] = struct{}{}
	}
	var components []rune
	var expand func(cp rune)
	expand = func(cp rune) {
		if _, ok := visited[cp]; ok {
			return
		}
		visited[cp] = struct{}{}
		components = append(components, cp)
		if sub, ok := entries[cp]; ok {
			for _, v := range sub.Variants {
				for _, leaf := range v.Root.Leaves() {
					expand(leaf)
				}
			}
		}
	}
	for _, v := range ent.Variants {
		for _, leaf := range v.Root.Leaves() {
			expand(leaf)
		}
	}
	return sigs, components
}

// buildIndexes constructs the sister and derived-component indices over all
// entries. With workers > 1 the entries are split into contiguous shards,
// each worker builds a partial index, and the partials are merged; shards
// share no state, so the merged result is identical to the sequential build
// regardless of processing order.
func (x *Explorer) buildIndexes(workers int) {
	ordered := make([]*CharacterEntry, 0, len(x.entries))
	for _, ent := range x.entries {
		ordered = append(ordered, ent)
	}

	ci := newComponentIndex()
	if workers <= 1 || len(ordered) < 2 {
		for _, ent := range ordered {
			indexEntry(ci, ent, x.entries)
		}
	} else {
		partials := make([]*componentIndex, workers)
		perWorker := (len(ordered) + workers - 1) / workers
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			start := w * perWorker
			end := min(start+perWorker, len(ordered))
			if start >= len(ordered) {
				break
			}
			partials[w] = newComponentIndex()
			wg.Add(1)
			go func(part *componentIndex, shard []*CharacterEntry) {
				defer wg.Done()
				for _, ent := range shard {
					indexEntry(part, ent, x.entries)
				}
			}(partials[w], ordered[start:end])
		}
		wg.Wait()
		for _, part := range partials {
			if part != nil {
				ci.merge(part)
			}
		}
	}

	x.sisters = make(map[StructuralSignature][]rune, len(ci.sisters))
	for sig, set := range ci.sisters {
		x.sisters[sig] = sortedRunes(set)
	}
	x.derived = make(map[rune][]rune, len(ci.derived))
	for component, set := range ci.derived {
		x.derived[component] = sortedRunes(set)
	}
}

func indexEntry(ci *componentIndex, ent *CharacterEntry, entries map[rune]*CharacterEntry) {
	sigs, components := entryPairs(ent, entries)
	for _, sig := range sigs {
		ci.addSister(sig, ent.Codepoint)
	}
	for _, component := range components {
		ci.addDerived(component, ent.Codepoint)
	}
}

// sistersFor returns the deduplicated union of sister-index sets across all
// of the entry's own variant signatures, still including the entry itself.
func (x *Explorer) sistersFor(ent *CharacterEntry) []rune {
	if len(ent.Variants) == 0 {
		return nil
	}
	if len(ent.Variants) == 1 {
		return x.sisters[Signature(ent.Variants[0].Root)]
	}
	set := make(map[rune]struct{})
	for _, v := range ent.Variants {
		for _, cp := range x.sisters[Signature(v.Root)] {
			set[cp] = struct{}{}
		}
	}
	return sortedRunes(set)
}

// selectRunes copies candidates minus the excluded codepoints, keeping only
// those accepted by filter (nil accepts everything). The result is a fresh
// sorted slice; index storage is never aliased into query results.
func selectRunes(candidates []rune, exclude map[rune]struct{}, filter Filter) []rune {
	result := make([]rune, 0, len(candidates))
	for _, cp := range candidates {
		if _, ok := exclude[cp]; ok {
			continue
		}
		if filter != nil && !filter(cp) {
			continue
		}
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
