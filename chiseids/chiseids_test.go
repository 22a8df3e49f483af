package chiseids

import (
	"io"
	"strings"
	"testing"
)

func readAll(t *testing.T, input string) []recordShape {
	t.Helper()
	r := NewReader(strings.NewReader(input))
	var records []recordShape
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		records = append(records, recordShape{
			codepoint: rec.Codepoint,
			ids:       rec.IDS,
			aliases:   rec.Aliases,
		})
	}
	return records
}

type recordShape struct {
	codepoint rune
	ids       []string
	aliases   []rune
}

func TestReaderBasicLine(t *testing.T) {
	records := readAll(t, ";; comment\nU+68EE\t森\t⿱木林\n")
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.codepoint != '森' {
		t.Fatalf("expected codepoint 森, got U+%04X", rec.codepoint)
	}
	if len(rec.ids) != 1 || rec.ids[0] != "⿱木林" {
		t.Fatalf("unexpected IDS: %+v", rec.ids)
	}
}

func TestReaderExtendedNotation(t *testing.T) {
	records := readAll(t, "U-0002FF2A\t𯼪\t⿰亻恩\n")
	if len(records) != 1 || records[0].codepoint != 0x2FF2A {
		t.Fatalf("U-XXXXXXXX notation should parse, got %+v", records)
	}
}

func TestReaderCompatibilityAlias(t *testing.T) {
	records := readAll(t, "U+F900\t豈\t豈\n")
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.codepoint != '豈' {
		t.Fatalf("alias record should target the unified character, got U+%04X", rec.codepoint)
	}
	if len(rec.aliases) != 1 || rec.aliases[0] != 0xF900 {
		t.Fatalf("U+F900 should become a compatibility codepoint, got %+v", rec.aliases)
	}
	if len(rec.ids) != 0 {
		t.Fatalf("alias records carry no decomposition, got %+v", rec.ids)
	}
}

func TestReaderAtomicSelfDescription(t *testing.T) {
	records := readAll(t, "U+6728\t木\t木\n")
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.codepoint != '木' || len(rec.aliases) != 0 {
		t.Fatalf("self-description is the atomic marker, not an alias: %+v", rec)
	}
	if len(rec.ids) != 1 || rec.ids[0] != "木" {
		t.Fatalf("the atomic marker passes through for the loader: %+v", rec.ids)
	}
}

func TestReaderInternsEntities(t *testing.T) {
	input := "U+4E2D\t中\t⿻&CDP-8BF1;丨\nU+4E32\t串\t⿻&CDP-8BF1;&CDP-8BF1;\n"
	records := readAll(t, input)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	first := []rune(records[0].ids[0])
	second := []rune(records[1].ids[0])
	entity := first[1]
	if entity < internBase {
		t.Fatalf("entity should intern into the private-use area, got U+%04X", entity)
	}
	if second[1] != entity || second[2] != entity {
		t.Fatalf("the same entity name must intern to the same codepoint across lines")
	}
}

func TestReaderTrimsApparatus(t *testing.T) {
	records := readAll(t, "U+68EE\t森\t⿱木林[GTKV]\n")
	if records[0].ids[0] != "⿱木林" {
		t.Fatalf("source apparatus should be stripped, got %q", records[0].ids[0])
	}
}

func TestReaderSkipsNonRecordLines(t *testing.T) {
	input := "# header\n;; comment\n\nnot a record\nU+6797\t林\t⿰木木\n"
	records := readAll(t, input)
	if len(records) != 1 || records[0].codepoint != '林' {
		t.Fatalf("only the record line should survive, got %+v", records)
	}
}

func TestLoadEndToEnd(t *testing.T) {
	input := strings.Join([]string{
		";; fixture in CHISE IDS format",
		"U+6728\t木\t木",
		"U+6797\t林\t⿰木木",
		"U+68EE\t森\t⿱木林",
	}, "\n")
	x, err := Load("fixture", strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	derived, err := x.DerivedCharacters('木', nil)
	if err != nil {
		t.Fatal(err)
	}
	found := map[rune]bool{}
	for _, cp := range derived {
		found[cp] = true
	}
	if !found['林'] || !found['森'] {
		t.Fatalf("derived characters of 木 must include 林 and 森, got %q", string(derived))
	}
	variants, err := x.Decompose('森')
	if err != nil {
		t.Fatal(err)
	}
	if len(variants) != 1 || variants[0].IDS != "⿱木林" {
		t.Fatalf("unexpected decomposition of 森: %+v", variants)
	}
}
