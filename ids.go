package hanzicomp

// Operator is an Ideographic Description Character: a positional operator
// that composes two or three sub-components into a character shape.
type Operator rune

// The fixed operator set. Arity is 2 except for the two ternary
// left-middle-right and top-middle-bottom operators.
const (
	OpLeftRight        Operator = '⿰'
	OpTopBottom        Operator = '⿱'
	OpLeftMiddleRight  Operator = '⿲'
	OpTopMiddleBottom  Operator = '⿳'
	OpFullSurround     Operator = '⿴'
	OpSurroundTop      Operator = '⿵'
	OpSurroundBottom   Operator = '⿶'
	OpSurroundLeft     Operator = '⿷'
	OpSurroundRight    Operator = '⿼'
	OpSurroundTopLeft  Operator = '⿸'
	OpSurroundTopRight Operator = '⿹'
	OpSurroundBotLeft  Operator = '⿺'
	OpSurroundBotRight Operator = '⿽'
	OpOverlay          Operator = '⿻'
)

// variationMark qualifies the following component as a variant glyph form.
// It carries no structural information and is folded into its component.
const variationMark = '〾'

var operatorArity = map[Operator]int{
	OpLeftRight:        2,
	OpTopBottom:        2,
	OpLeftMiddleRight:  3,
	OpTopMiddleBottom:  3,
	OpFullSurround:     2,
	OpSurroundTop:      2,
	OpSurroundBottom:   2,
	OpSurroundLeft:     2,
	OpSurroundRight:    2,
	OpSurroundTopLeft:  2,
	OpSurroundTopRight: 2,
	OpSurroundBotLeft:  2,
	OpSurroundBotRight: 2,
	OpOverlay:          2,
}

// Arity returns the number of sub-components op composes, or 0 if op is not
// a supported operator.
func (op Operator) Arity() int {
	return operatorArity[op]
}

// isDescriptionChar reports whether r lies in the Unicode Ideographic
// Description Characters block. Runes in the block that are not in the
// supported operator set (e.g. the rotation and subtraction marks) are
// rejected by the parser rather than taken as leaves.
func isDescriptionChar(r rune) bool {
	return (r >= '⿰' && r <= '⿿') || r == '㇯'
}

// ComponentNode is one node of a decomposition tree: either a leaf holding a
// single component codepoint, or an operator node whose child count matches
// the operator's arity exactly.
type ComponentNode struct {
	Op       Operator // 0 for leaves
	Leaf     rune     // component codepoint, set only for leaves
	Children []*ComponentNode
}

// IsLeaf reports whether n holds a component codepoint rather than an
// operator.
func (n *ComponentNode) IsLeaf() bool {
	return n.Op == 0
}

// Walk calls visit for every node of the tree in preorder.
func (n *ComponentNode) Walk(visit func(*ComponentNode)) {
	if n == nil {
		return
	}
	visit(n)
	for _, child := range n.Children {
		child.Walk(visit)
	}
}

// Leaves returns the component codepoints of the tree in authoring order.
func (n *ComponentNode) Leaves() []rune {
	var leaves []rune
	n.Walk(func(node *ComponentNode) {
		if node.IsLeaf() {
			leaves = append(leaves, node.Leaf)
		}
	})
	return leaves
}

// ParseIDS parses one ideographic description string into a component tree.
//
// The grammar is prefix notation: an operator consumes exactly its arity of
// sub-expressions, each itself an operator expression or a single leaf
// codepoint. Nesting depth is bounded only by input length. Parsing is pure;
// on failure the returned error is a *MalformedIDSError naming the offending
// substring.
func ParseIDS(ids string) (*ComponentNode, error) {
	runes := []rune(ids)
	if len(runes) == 0 {
		return nil, &MalformedIDSError{IDS: ids, Reason: "empty description"}
	}
	node, rest, err := parseExpr(ids, runes)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, &MalformedIDSError{
			IDS:       ids,
			Offending: string(rest),
			Reason:    "trailing input after complete description",
		}
	}
	return node, nil
}

// parseExpr consumes one complete sub-expression from runes and returns the
// node together with the unconsumed remainder.
func parseExpr(ids string, runes []rune) (*ComponentNode, []rune, error) {
	if len(runes) == 0 {
		return nil, nil, &MalformedIDSError{
			IDS:    ids,
			Reason: "description ends before all components are given",
		}
	}
	r := runes[0]
	if r == variationMark {
		if len(runes) == 1 {
			return nil, nil, &MalformedIDSError{
				IDS:       ids,
				Offending: string(variationMark),
				Reason:    "variation mark without a component",
			}
		}
		return parseExpr(ids, runes[1:])
	}
	op := Operator(r)
	arity := op.Arity()
	if arity == 0 {
		if isDescriptionChar(r) {
			return nil, nil, &MalformedIDSError{
				IDS:       ids,
				Offending: string(r),
				Reason:    "unsupported description operator",
			}
		}
		return &ComponentNode{Leaf: r}, runes[1:], nil
	}
	node := &ComponentNode{Op: op, Children: make([]*ComponentNode, 0, arity)}
	rest := runes[1:]
	for i := 0; i < arity; i++ {
		child, remainder, err := parseExpr(ids, rest)
		if err != nil {
			return nil, nil, err
		}
		node.Children = append(node.Children, child)
		rest = remainder
	}
	return node, rest, nil
}
