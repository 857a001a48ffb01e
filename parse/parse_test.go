package parse

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bmrb-io/go-nmrstar/ir"
	"github.com/bmrb-io/go-nmrstar/token"
)

const smallEntry = `data_15000

save_entry_information
   _Entry.Sf_category  entry_information
   _Entry.ID           15000
   _Entry.Title
;
Solution structure of chicken villin headpiece
;

   loop_
      _Entry_author.Ordinal
      _Entry_author.Given_name

      1 Claudia
      2 Yuan
   stop_
save_
`

func TestParseSmallEntry(t *testing.T) {
	ent, err := ParseString(smallEntry)
	if err != nil {
		t.Fatal(err)
	}
	if ent.ID != "15000" {
		t.Errorf("got entry id %q", ent.ID)
	}
	if len(ent.Saveframes) != 1 {
		t.Fatalf("got %d saveframes", len(ent.Saveframes))
	}
	sf := ent.Saveframes[0]
	if sf.Name != "entry_information" {
		t.Errorf("got saveframe name %q", sf.Name)
	}
	if sf.TagPrefix != "_Entry" {
		t.Errorf("got tag prefix %q", sf.TagPrefix)
	}
	wantTags := []ir.Tag{
		{Name: "Sf_category", Value: "entry_information", Delineator: token.Bare},
		{Name: "ID", Value: "15000", Delineator: token.Bare},
		{Name: "Title", Value: "Solution structure of chicken villin headpiece", Delineator: token.Multiline},
	}
	if d := cmp.Diff(wantTags, sf.Tags); d != "" {
		t.Errorf("tags mismatch:\n%s", d)
	}
	l, err := sf.GetLoop("_Entry_author")
	if err != nil {
		t.Fatal(err)
	}
	wantData := [][]string{
		{"1", "Claudia"},
		{"2", "Yuan"},
	}
	if d := cmp.Diff(wantData, l.Data); d != "" {
		t.Errorf("loop data mismatch:\n%s", d)
	}
}

func TestParseReferenceValue(t *testing.T) {
	ent, err := ParseString("data_x save_s _T.Ref $other_frame save_")
	if err != nil {
		t.Fatal(err)
	}
	tag := ent.Saveframes[0].Tags[0]
	if tag.Value != "$other_frame" || tag.Delineator != token.Reference {
		t.Errorf("got %q (%v)", tag.Value, tag.Delineator)
	}
}

func TestParseQuotedKeywordValue(t *testing.T) {
	ent, err := ParseString("data_x save_s _T.A 'loop_' save_")
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := ent.Saveframes[0].GetTag("A"); v != "loop_" {
		t.Errorf("got %q", v)
	}
}

func TestParseNormalize(t *testing.T) {
	in := "data_x\r\nsave_s\r\n_T.A\r\n; bent opener\r\n;\r\nsave_\r\n"
	ent, err := ParseString(in)
	if err != nil {
		t.Fatal(err)
	}
	v, err := ent.Saveframes[0].GetTag("A")
	if err != nil {
		t.Fatal(err)
	}
	// the straightened opener keeps the space that followed the ';'
	if v != " bent opener" {
		t.Errorf("got %q", v)
	}
}

func TestParseComments(t *testing.T) {
	var comments []token.Token
	_, err := ParseString("# header\ndata_x\nsave_s # trailing\n_T.A 1\nsave_\n",
		ParseComments(&comments))
	if err != nil {
		t.Fatal(err)
	}
	if len(comments) != 2 {
		t.Fatalf("got %d comments", len(comments))
	}
	if comments[0].Text != " header" || comments[0].Line != 1 {
		t.Errorf("got %q on line %d", comments[0].Text, comments[0].Line)
	}
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		line int
	}{
		{"no data block", "save_s save_", 1},
		{"bare data_", "data_", 1},
		{"quoted data_", "'data_x'", 1},
		{"value outside saveframe", "data_x 15000", 1},
		{"unterminated saveframe", "data_x\nsave_s\n_T.A 1\n", 4},
		{"tag as value", "data_x save_s _T.A\n_T.B 1 save_", 2},
		{"keyword as value", "data_x save_s _T.A\nstop_ save_", 2},
		{"missing value", "data_x save_s _T.A", 1},
		{"loop no tags", "data_x save_s\nloop_ stop_ save_", 2},
		{"loop unterminated", "data_x save_s loop_\n_T.A\n1 2 3\n", 4},
		{"tag in loop data", "data_x save_s loop_ _T.A\n1 2 _T.B\nstop_ save_", 2},
		{"loop arity", "data_x save_s loop_\n_T.A _T.B\n1 2 3 stop_ save_", 3},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseString(tc.in)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrParse) {
				t.Fatalf("not a parse error: %v", err)
			}
			var pe *ParseErr
			if !errors.As(err, &pe) {
				t.Fatalf("no *ParseErr in %v", err)
			}
			if pe.Line != tc.line {
				t.Errorf("got line %d, want %d: %v", pe.Line, tc.line, err)
			}
		})
	}
}

func TestParseTokenizeErrorPassesThrough(t *testing.T) {
	_, err := ParseString("data_x save_s _T.A 'oops\nsave_")
	if err == nil {
		t.Fatal("expected error")
	}
	var te *token.TokenizeErr
	if !errors.As(err, &te) {
		t.Fatalf("want a tokenize error, got %v", err)
	}
}

func TestParseCaseInsensitiveKeywords(t *testing.T) {
	ent, err := ParseString("DATA_x SAVE_s _T.A 1 LOOP_ _T.B 2 STOP_ save_")
	if err != nil {
		t.Fatal(err)
	}
	if ent.ID != "x" {
		t.Errorf("got %q", ent.ID)
	}
	if len(ent.Saveframes[0].Loops) != 1 {
		t.Fatal("no loop parsed")
	}
}
