package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bmrb-io/go-nmrstar/token"
)

func TestTagCategoryName(t *testing.T) {
	for _, tc := range []struct {
		in, cat, name string
	}{
		{"_Entry.ID", "_Entry", "ID"},
		{"Entry.ID", "_Entry", "ID"},
		{"_Entry", "_Entry", "_Entry"},
		{"ID", "_ID", "ID"},
		{"", "", ""},
	} {
		if got := TagCategory(tc.in); got != tc.cat {
			t.Errorf("TagCategory(%q) = %q, want %q", tc.in, got, tc.cat)
		}
		if got := TagName(tc.in); got != tc.name {
			t.Errorf("TagName(%q) = %q, want %q", tc.in, got, tc.name)
		}
	}
}

func TestSaveframeTags(t *testing.T) {
	sf := &Saveframe{Name: "f", TagPrefix: "_Entry"}
	sf.AddTag("ID", "15000", token.Bare)

	for _, q := range []string{"ID", "id", "_Entry.ID"} {
		v, err := sf.GetTag(q)
		if err != nil {
			t.Fatalf("GetTag(%q): %v", q, err)
		}
		if v != "15000" {
			t.Errorf("GetTag(%q) = %q", q, v)
		}
	}
	if _, err := sf.GetTag("Nope"); !errors.Is(err, ErrNoSuchTag) {
		t.Errorf("got %v, want ErrNoSuchTag", err)
	}
}

func TestEntrySaveframes(t *testing.T) {
	ent := &Entry{ID: "1"}
	a := &Saveframe{Name: "a"}
	a.AddTag("Sf_category", "entry_information", token.Bare)
	b := &Saveframe{Name: "b"}
	b.AddTag("Sf_category", "assembly", token.Bare)
	ent.AddSaveframe(a)
	ent.AddSaveframe(b)

	if _, err := ent.GetSaveframe("a"); err != nil {
		t.Fatal(err)
	}
	if _, err := ent.GetSaveframe("c"); !errors.Is(err, ErrNoSuchSaveframe) {
		t.Errorf("got %v, want ErrNoSuchSaveframe", err)
	}
	got := ent.GetSaveframesByCategory("assembly")
	if len(got) != 1 || got[0].Name != "b" {
		t.Errorf("got %v", got)
	}
}

func TestLoopColumns(t *testing.T) {
	l := &Loop{}
	if err := l.AddColumn("_Atom.ID"); err != nil {
		t.Fatal(err)
	}
	if err := l.AddColumn("_Atom.Name"); err != nil {
		t.Fatal(err)
	}
	if l.Category != "_Atom" {
		t.Errorf("got category %q", l.Category)
	}
	if err := l.AddColumn("_Other.X"); err == nil {
		t.Error("expected category conflict error")
	}
}

func TestLoopRows(t *testing.T) {
	l := &Loop{Tags: []string{"ID", "Name"}}
	if err := l.AddRow([]string{"1", "CA"}); err != nil {
		t.Fatal(err)
	}
	if err := l.AddRow([]string{"1"}); !errors.Is(err, ErrRowArity) {
		t.Errorf("got %v, want ErrRowArity", err)
	}
	vals, err := l.GetTagValues("name")
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]string{"CA"}, vals); d != "" {
		t.Errorf("values mismatch:\n%s", d)
	}
	row := l.Row(0)
	if row["ID"] != "1" || row["Name"] != "CA" {
		t.Errorf("got row %v", row)
	}
}
