package encode

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/bmrb-io/go-nmrstar/debug"
	"github.com/bmrb-io/go-nmrstar/format"
	"github.com/bmrb-io/go-nmrstar/ir"
	"github.com/bmrb-io/go-nmrstar/token"
)

type EncState struct {
	format format.Format

	Color func(Class, string) string
}

// Encode writes ent to w in the configured format. The zero format is
// NMR-STAR text.
func Encode(ent *ir.Entry, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	if debug.Encode() {
		debug.Logf("encode: entry %q as %s\n", ent.ID, es.format)
	}
	switch {
	case es.format.IsJSON():
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ent)
	case es.format.IsYAML():
		return yaml.NewEncoder(w).Encode(ent)
	default:
		return encodeStar(ent, w, es)
	}
}

func (es *EncState) color(cl Class, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(cl, s)
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func encodeStar(ent *ir.Entry, w io.Writer, es *EncState) error {
	if err := writeString(w, es.color(KeywordClass, "data_"+ent.ID)+"\n\n"); err != nil {
		return err
	}
	for _, sf := range ent.Saveframes {
		if err := encodeSaveframe(sf, w, es); err != nil {
			return err
		}
		if err := writeString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func encodeSaveframe(sf *ir.Saveframe, w io.Writer, es *EncState) error {
	if err := writeString(w, es.color(KeywordClass, "save_"+sf.Name)+"\n"); err != nil {
		return err
	}
	width := 0
	for _, tag := range sf.Tags {
		if n := len(qualifyTag(sf, tag.Name)); n > width {
			width = n
		}
	}
	for _, tag := range sf.Tags {
		name := qualifyTag(sf, tag.Name)
		v, err := token.Quote(tag.Value)
		if err != nil {
			return fmt.Errorf("%w: tag %q in saveframe %q: %v", ErrEncoding, name, sf.Name, err)
		}
		padded := fmt.Sprintf("%-*s", width, name)
		if strings.Contains(v, "\n") {
			// tag on its own line, value in a semicolon frame
			line := "   " + es.color(TagClass, padded) + "\n;" +
				es.color(ValueClass, ensureLeadingNL(v)) + ";\n"
			if err := writeString(w, line); err != nil {
				return err
			}
			continue
		}
		line := "   " + es.color(TagClass, padded) + "  " + es.color(valueClass(v), v) + "\n"
		if err := writeString(w, line); err != nil {
			return err
		}
	}
	for _, l := range sf.Loops {
		if err := encodeLoop(l, w, es); err != nil {
			return err
		}
	}
	return writeString(w, "\n"+es.color(KeywordClass, "save_")+"\n")
}

func qualifyTag(sf *ir.Saveframe, name string) string {
	if sf.TagPrefix == "" {
		return name
	}
	return sf.TagPrefix + "." + name
}

// ensureLeadingNL glues a quoted value body to the opening ';' of its
// frame. Values escaped for nested semicolons already start with one.
func ensureLeadingNL(v string) string {
	if strings.HasPrefix(v, "\n") {
		return v
	}
	return "\n" + v
}

func valueClass(v string) Class {
	if strings.HasPrefix(v, "$") {
		return ReferenceClass
	}
	return ValueClass
}

func encodeLoop(l *ir.Loop, w io.Writer, es *EncState) error {
	if err := writeString(w, "\n   "+es.color(KeywordClass, "loop_")+"\n"); err != nil {
		return err
	}
	for _, tag := range l.Tags {
		name := tag
		if l.Category != "" {
			name = l.Category + "." + tag
		}
		if err := writeString(w, "      "+es.color(TagClass, name)+"\n"); err != nil {
			return err
		}
	}
	if err := writeString(w, "\n"); err != nil {
		return err
	}

	cleaned, widths, err := cleanLoopData(l)
	if err != nil {
		return err
	}
	for _, row := range cleaned {
		if err := writeString(w, "     "); err != nil {
			return err
		}
		for i, v := range row {
			if strings.Contains(v, "\n") {
				// break the row to splice in a semicolon frame
				frame := "\n;" + es.color(ValueClass, ensureLeadingNL(v)) + ";\n"
				if err := writeString(w, frame); err != nil {
					return err
				}
				continue
			}
			padded := fmt.Sprintf("%-*s", widths[i], v)
			if err := writeString(w, es.color(valueClass(v), padded)); err != nil {
				return err
			}
		}
		if err := writeString(w, " \n"); err != nil {
			return err
		}
	}
	return writeString(w, "\n   "+es.color(KeywordClass, "stop_")+"\n")
}

// cleanLoopData quotes every value and computes the column widths of the
// result, padding each column three past its widest value.
func cleanLoopData(l *ir.Loop) ([][]string, []int, error) {
	widths := make([]int, len(l.Tags))
	for i := range widths {
		widths[i] = 4
	}
	cleaned := make([][]string, len(l.Data))
	for j, row := range l.Data {
		crow := make([]string, len(row))
		for i, v := range row {
			cv, err := token.Quote(v)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: loop %q row %d: %v", ErrEncoding, l.Category, j, err)
			}
			crow[i] = cv
			if !strings.Contains(cv, "\n") && len(cv)+3 > widths[i] {
				widths[i] = len(cv) + 3
			}
		}
		cleaned[j] = crow
	}
	return cleaned, widths, nil
}
