package hanzicomp

import "strings"

// StructuralSignature is a canonical serialization of a decomposition tree,
// used for equality and grouping only. Two trees have equal signatures iff
// their operators, child order and leaf codepoints match exactly at every
// depth. Signatures are never shown to users verbatim.
type StructuralSignature string

// Signature normalizes a component tree into its structural signature.
//
// The serialization is the preorder sequence of operator and leaf runes.
// Every operator has a fixed arity, so the preorder string determines the
// tree shape unambiguously; no bracketing is needed. Runs in O(tree size).
func Signature(root *ComponentNode) StructuralSignature {
	var sb strings.Builder
	writeSignature(&sb, root)
	return StructuralSignature(sb.String())
}

func writeSignature(sb *strings.Builder, n *ComponentNode) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		sb.WriteRune(n.Leaf)
		return
	}
	sb.WriteRune(rune(n.Op))
	for _, child := range n.Children {
		writeSignature(sb, child)
	}
}
