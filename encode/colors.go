package encode

import (
	"strings"

	"github.com/fatih/color"
)

// Class partitions output text for colorization.
type Class int

const (
	KeywordClass Class = iota
	TagClass
	ValueClass
	ReferenceClass
	CommentClass
)

func Classes() []Class {
	return []Class{KeywordClass, TagClass, ValueClass, ReferenceClass, CommentClass}
}

type Colors struct {
	Default func(string, ...any) string
	Map     map[Class]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Class]func(string, ...any) string{},
	}
	colors.Map[KeywordClass] = color.RGB(196, 96, 16).SprintfFunc()
	colors.Map[TagClass] = color.RGB(128, 168, 196).SprintfFunc()
	colors.Map[ValueClass] = color.RGB(8, 196, 16).SprintfFunc()
	colors.Map[ReferenceClass] = color.RGB(168, 0, 196).SprintfFunc()
	colors.Map[CommentClass] = color.BlueString
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(cl Class, s string) string {
	return c.Get(cl)(s)
}

func (c *Colors) Get(cl Class) func(string, ...any) string {
	f := c.Map[cl]
	if f == nil {
		return c.Default
	}
	return f
}
