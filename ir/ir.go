package ir

import (
	"fmt"
	"strings"

	"github.com/bmrb-io/go-nmrstar/token"
)

// Entry is one data_ block: the unit of deposition in the archive.
type Entry struct {
	ID         string       `json:"id" yaml:"id"`
	Saveframes []*Saveframe `json:"saveframes" yaml:"saveframes"`
}

// Tag is a single tag/value pair. The delineator the value carried in the
// source is kept so re-serialization can reproduce the original framing
// and so keywords can be told apart from quoted data.
type Tag struct {
	Name       string           `json:"name" yaml:"name"`
	Value      string           `json:"value" yaml:"value"`
	Delineator token.Delineator `json:"-" yaml:"-"`
}

// Saveframe is one save_ frame: named, with free tags and loops.
type Saveframe struct {
	Name      string  `json:"name" yaml:"name"`
	TagPrefix string  `json:"tag_prefix" yaml:"tag_prefix"`
	Tags      []Tag   `json:"tags" yaml:"tags"`
	Loops     []*Loop `json:"loops" yaml:"loops"`
}

// Loop is a loop_ ... stop_ table. Tags hold the column names without the
// category prefix; every row in Data has exactly len(Tags) values.
type Loop struct {
	Category string     `json:"category" yaml:"category"`
	Tags     []string   `json:"tags" yaml:"tags"`
	Data     [][]string `json:"data" yaml:"data"`
}

// TagCategory returns the category part of a fully qualified tag name,
// with the leading underscore: "_Entry.ID" -> "_Entry".
func TagCategory(tag string) string {
	if tag == "" {
		return tag
	}
	if !strings.HasPrefix(tag, "_") {
		tag = "_" + tag
	}
	if i := strings.Index(tag, "."); i >= 0 {
		return tag[:i]
	}
	return tag
}

// TagName strips the category from a fully qualified tag name:
// "_Entry.ID" -> "ID".
func TagName(tag string) string {
	if i := strings.Index(tag, "."); i >= 0 {
		return tag[i+1:]
	}
	return tag
}

func (e *Entry) AddSaveframe(sf *Saveframe) {
	e.Saveframes = append(e.Saveframes, sf)
}

// GetSaveframe looks a saveframe up by name.
func (e *Entry) GetSaveframe(name string) (*Saveframe, error) {
	for _, sf := range e.Saveframes {
		if sf.Name == name {
			return sf, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoSuchSaveframe, name)
}

// GetSaveframesByCategory returns the saveframes whose Sf_category tag
// matches category.
func (e *Entry) GetSaveframesByCategory(category string) []*Saveframe {
	var res []*Saveframe
	for _, sf := range e.Saveframes {
		if v, err := sf.GetTag("Sf_category"); err == nil && v == category {
			res = append(res, sf)
		}
	}
	return res
}

func (sf *Saveframe) AddTag(name, value string, d token.Delineator) {
	sf.Tags = append(sf.Tags, Tag{Name: name, Value: value, Delineator: d})
}

// GetTag returns the value of the named tag. The name may be qualified
// with the frame's tag prefix or bare.
func (sf *Saveframe) GetTag(name string) (string, error) {
	short := TagName(name)
	for _, tag := range sf.Tags {
		if strings.EqualFold(tag.Name, short) {
			return tag.Value, nil
		}
	}
	return "", fmt.Errorf("%w: %q in saveframe %q", ErrNoSuchTag, name, sf.Name)
}

func (sf *Saveframe) AddLoop(l *Loop) {
	sf.Loops = append(sf.Loops, l)
}

// GetLoop looks a loop up by category, with or without the underscore.
func (sf *Saveframe) GetLoop(category string) (*Loop, error) {
	want := TagCategory(category)
	for _, l := range sf.Loops {
		if strings.EqualFold(l.Category, want) {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: no loop with category %q in saveframe %q", ErrNoSuchTag, category, sf.Name)
}

// AddColumn appends a tag column. The fully qualified form sets or checks
// the loop category.
func (l *Loop) AddColumn(tag string) error {
	name := TagName(tag)
	if strings.Contains(tag, ".") {
		cat := TagCategory(tag)
		if l.Category == "" {
			l.Category = cat
		} else if !strings.EqualFold(l.Category, cat) {
			return fmt.Errorf("loop has category %q, tag %q disagrees", l.Category, tag)
		}
	}
	l.Tags = append(l.Tags, name)
	return nil
}

func (l *Loop) AddRow(row []string) error {
	if len(row) != len(l.Tags) {
		return fmt.Errorf("%w: %d values for %d tags", ErrRowArity, len(row), len(l.Tags))
	}
	l.Data = append(l.Data, row)
	return nil
}

func (l *Loop) tagIndex(name string) int {
	short := TagName(name)
	for i, tag := range l.Tags {
		if strings.EqualFold(tag, short) {
			return i
		}
	}
	return -1
}

// GetTagValues returns the column of values for one tag.
func (l *Loop) GetTagValues(name string) ([]string, error) {
	i := l.tagIndex(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q in loop %q", ErrNoSuchTag, name, l.Category)
	}
	res := make([]string, len(l.Data))
	for j, row := range l.Data {
		res[j] = row[i]
	}
	return res, nil
}

// Row returns row i as a map keyed by tag name, for filter expressions.
func (l *Loop) Row(i int) map[string]any {
	m := make(map[string]any, len(l.Tags))
	for j, tag := range l.Tags {
		m[tag] = l.Data[i][j]
	}
	return m
}
