package encode

import (
	"io"
	"os"
	"strings"

	"github.com/dilatush/go-morf/typedef"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type Colorable struct {
	Kind typedef.Kind
	Attr ColorAttr
}

type ColorAttr int

const (
	TagColor ColorAttr = iota
	FieldColor
	ValueColor
	NullColor
	SepColor
	TypeColor
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
	for _, k := range typedef.Kinds() {
		able := Colorable{
			Kind: k,
			Attr: TagColor,
		}
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
		able.Attr = TypeColor
		colors.Map[able] = color.BlueString
		able.Attr = SepColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
	}
	able := Colorable{Kind: typedef.ScalarKind, Attr: ValueColor}
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	able.Attr = NullColor
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able = Colorable{Kind: typedef.MapKind, Attr: FieldColor}
	colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
	able.Kind = typedef.OrderedMapKind
	colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()
	able.Attr = SepColor
	colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k typedef.Kind, a ColorAttr, s string) string {
	return c.Get(k, a)(s)
}

func (c *Colors) Get(k typedef.Kind, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Kind: k, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}

// AutoColors returns EncodeColors(NewColors()) when w is a terminal, and a
// no-op option otherwise.
func AutoColors(w io.Writer) EncodeOption {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return func(*EncState) {}
	}
	return EncodeColors(NewColors())
}
