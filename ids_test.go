package hanzicomp

import (
	"errors"
	"testing"
)

func TestParseLeftRight(t *testing.T) {
	root, err := ParseIDS("⿰木木")
	if err != nil {
		t.Fatal(err)
	}
	if root.Op != OpLeftRight {
		t.Fatalf("expected ⿰ root, got %q", string(rune(root.Op)))
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}
	for i, child := range root.Children {
		if !child.IsLeaf() || child.Leaf != '木' {
			t.Fatalf("child %d should be leaf 木, got %+v", i, child)
		}
	}
}

func TestParseTernary(t *testing.T) {
	root, err := ParseIDS("⿲氵木土")
	if err != nil {
		t.Fatal(err)
	}
	if root.Op != OpLeftMiddleRight || len(root.Children) != 3 {
		t.Fatalf("expected ⿲ with 3 children, got %+v", root)
	}
	want := []rune{'氵', '木', '土'}
	for i, child := range root.Children {
		if child.Leaf != want[i] {
			t.Fatalf("child %d: expected %q, got %q", i, string(want[i]), string(child.Leaf))
		}
	}
}

func TestParseNested(t *testing.T) {
	root, err := ParseIDS("⿱木⿰木木")
	if err != nil {
		t.Fatal(err)
	}
	if root.Op != OpTopBottom {
		t.Fatalf("expected ⿱ root, got %q", string(rune(root.Op)))
	}
	if !root.Children[0].IsLeaf() {
		t.Fatalf("first child should be a leaf")
	}
	inner := root.Children[1]
	if inner.Op != OpLeftRight || len(inner.Children) != 2 {
		t.Fatalf("second child should be ⿰ over two leaves, got %+v", inner)
	}
	if leaves := root.Leaves(); len(leaves) != 3 {
		t.Fatalf("expected 3 leaves, got %d", len(leaves))
	}
}

func TestParseDeepNesting(t *testing.T) {
	// depth grows with input length only
	root, err := ParseIDS("⿰一⿰一⿰一⿰一⿰一一")
	if err != nil {
		t.Fatal(err)
	}
	depth := 0
	for n := root; !n.IsLeaf(); n = n.Children[1] {
		depth++
	}
	if depth != 5 {
		t.Fatalf("expected chain depth 5, got %d", depth)
	}
}

func TestParseVariationMark(t *testing.T) {
	root, err := ParseIDS("⿰〾木木")
	if err != nil {
		t.Fatal(err)
	}
	if root.Children[0].Leaf != '木' {
		t.Fatalf("variation mark should fold into its component, got %+v", root.Children[0])
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		ids    string
		reason string
	}{
		{"", "empty description"},
		{"⿰木", "description ends before all components are given"},
		{"⿳木木", "description ends before all components are given"},
		{"⿰木木木", "trailing input after complete description"},
		{"木木", "trailing input after complete description"},
		{"⿾木", "unsupported description operator"},
		{"〾", "variation mark without a component"},
	}
	for _, c := range cases {
		_, err := ParseIDS(c.ids)
		if err == nil {
			t.Fatalf("expected parse of %q to fail", c.ids)
		}
		var malformed *MalformedIDSError
		if !errors.As(err, &malformed) {
			t.Fatalf("expected *MalformedIDSError for %q, got %T", c.ids, err)
		}
		if malformed.Reason != c.reason {
			t.Fatalf("parse of %q: expected reason %q, got %q", c.ids, c.reason, malformed.Reason)
		}
	}
}

func TestParseErrorNamesOffendingSubstring(t *testing.T) {
	_, err := ParseIDS("⿰木木木")
	var malformed *MalformedIDSError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *MalformedIDSError, got %T", err)
	}
	if malformed.Offending != "木" {
		t.Fatalf("expected offending substring 木, got %q", malformed.Offending)
	}
}

func TestOperatorArity(t *testing.T) {
	if OpLeftMiddleRight.Arity() != 3 || OpTopMiddleBottom.Arity() != 3 {
		t.Fatalf("ternary operators should have arity 3")
	}
	if OpOverlay.Arity() != 2 {
		t.Fatalf("⿻ should have arity 2, got %d", OpOverlay.Arity())
	}
	if Operator('木').Arity() != 0 {
		t.Fatalf("non-operators should report arity 0")
	}
}
