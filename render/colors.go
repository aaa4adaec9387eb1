package render

import (
	"strings"

	"github.com/fatih/color"

	"github.com/mpk-tools/mpk/ir"
)

type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	TagColor ColorAttr = iota
	KeyColor
	ValueColor
	SepColor
	InsertColor
	DeleteColor
	UpdateColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range ir.Types() {
		able := Colorable{
			Type: t,
			Attr: TagColor,
		}
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
		able.Attr = SepColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
		able.Attr = KeyColor
		colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	able.Type = ir.IntType
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Type = ir.Float32Type
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Type = ir.Float64Type
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()

	able.Type = ir.NilType
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Type = ir.BoolType
	colors.Map[able] = color.CyanString

	able.Type = ir.StringType
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()

	able.Type = ir.BinaryType
	colors.Map[able] = color.RGB(96, 96, 96).SprintfFunc()
	able.Type = ir.ExtType
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()

	for _, t := range ir.Types() {
		colors.Map[Colorable{Type: t, Attr: InsertColor}] = color.RGB(8, 196, 16).SprintfFunc()
		colors.Map[Colorable{Type: t, Attr: DeleteColor}] = color.RGB(196, 64, 64).SprintfFunc()
		colors.Map[Colorable{Type: t, Attr: UpdateColor}] = color.RGB(198, 198, 46).SprintfFunc()
	}
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

// NoColors renders everything with the identity function; it is the
// map used when output is not a terminal.
func NoColors() *Colors {
	return &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	res := c.Get(t, a)(s)
	return res
}

func (c *Colors) Get(t ir.Type, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
