// Package cellgridtest contains utilities for testing the cellgrid
// engine: a draw.Display implementation that records draw operations
// as readable strings, a fixed-metric font, a manually stepped refresh
// source and a scripted confirmer.
package cellgridtest

import (
	"errors"
	"fmt"
	"image"

	"github.com/bennyboer/cellgrid/draw"
)

var _ = draw.Display((*mockDisplay)(nil))

const (
	fwidth  = 8
	fheight = 16
)

// GettableDrawOps display implementations can provide the list of
// executed draw ops for assertions.
type GettableDrawOps interface {
	DrawOps() []string
	Clear()
}

// mockDisplay implements draw.Display.
type mockDisplay struct {
	snarfbuf    []byte
	drawops     []string
	screenimage draw.Image
	cursor      string
}

// NewDisplay returns a mock draw.Display with a screen image of the
// given size.
func NewDisplay(screen image.Rectangle) draw.Display {
	d := &mockDisplay{}
	d.screenimage = newimageimpl(d, fmt.Sprintf("screen-%dx%d", screen.Dx(), screen.Dy()), draw.Notacolor, screen)
	return d
}

func (d *mockDisplay) ScreenImage() draw.Image { return d.screenimage }

func (d *mockDisplay) White() draw.Image {
	return newimageimpl(d, "white", draw.White, image.Rectangle{})
}
func (d *mockDisplay) Black() draw.Image {
	return newimageimpl(d, "black", draw.Black, image.Rectangle{})
}
func (d *mockDisplay) Opaque() draw.Image {
	return newimageimpl(d, "opaque", draw.Opaque, image.Rectangle{})
}
func (d *mockDisplay) Transparent() draw.Image {
	return newimageimpl(d, "transparent", draw.Transparent, image.Rectangle{})
}

func (d *mockDisplay) InitKeyboard() *draw.Keyboardctl { return &draw.Keyboardctl{} }
func (d *mockDisplay) InitMouse() *draw.Mousectl       { return &draw.Mousectl{} }

func (d *mockDisplay) OpenFont(name string) (draw.Font, error) {
	return NewFont(fwidth, fheight), nil
}

func (d *mockDisplay) AllocImage(r image.Rectangle, pix draw.Pix, repl bool, val draw.Color) (draw.Image, error) {
	return &mockImage{
		d:    d,
		r:    r,
		c:    val,
		n:    fmt.Sprintf("color-%08x", uint32(val)),
		repl: repl,
	}, nil
}

func (d *mockDisplay) AllocImageMix(color1, color3 draw.Color) draw.Image {
	c1 := draw.WithAlpha(color1, 0x3f) >> 8
	c3 := draw.WithAlpha(color3, 0xbf) >> 8
	c := ((c1 + c3) << 8) | 0xff

	return &mockImage{
		d:    d,
		r:    image.Rect(0, 0, 1, 1),
		repl: true,
		c:    c,
		n:    fmt.Sprintf("mix-%08x", uint32(c)),
	}
}

func (d *mockDisplay) Attach(ref int) error { return nil }
func (d *mockDisplay) Flush() error         { return nil }
func (d *mockDisplay) ScaleSize(n int) int  { return n }

// ReadSnarf reads the snarf buffer into buf, returning the number of
// bytes read and the total size of the snarf buffer (useful if buf is
// too short).
func (d *mockDisplay) ReadSnarf(buf []byte) (int, int, error) {
	n := copy(buf, d.snarfbuf)
	if n < len(d.snarfbuf) {
		return n, len(d.snarfbuf), errors.New("short read")
	}
	return n, n, nil
}

// WriteSnarf writes the data to the snarf buffer.
func (d *mockDisplay) WriteSnarf(data []byte) error {
	d.snarfbuf = make([]byte, len(data))
	copy(d.snarfbuf, data)
	return nil
}

func (d *mockDisplay) MoveTo(pt image.Point) error { return nil }

func (d *mockDisplay) SetCursor(c *draw.Cursor) error {
	if c == nil {
		d.cursor = "default"
	} else {
		d.cursor = fmt.Sprintf("cursor@%v", c.Point)
	}
	return nil
}

func (d *mockDisplay) DrawOps() []string { return d.drawops }
func (d *mockDisplay) Clear()            { d.drawops = nil }

// Snarf returns the current snarf buffer contents.
func Snarf(display draw.Display) string {
	return string(display.(*mockDisplay).snarfbuf)
}

// Cursor returns a description of the most recently set cursor.
func Cursor(display draw.Display) string {
	return display.(*mockDisplay).cursor
}

var _ = draw.Image((*mockImage)(nil))

// mockImage implements draw.Image.
type mockImage struct {
	r    image.Rectangle
	d    *mockDisplay
	n    string
	c    draw.Color
	repl bool
}

func newimageimpl(d *mockDisplay, name string, c draw.Color, r image.Rectangle) draw.Image {
	return &mockImage{
		r: r,
		d: d,
		c: c,
		n: name,
	}
}

// NewImage returns a mock draw.Image with the given bounds.
func NewImage(display draw.Display, name string, r image.Rectangle) draw.Image {
	d := display.(*mockDisplay)
	return newimageimpl(d, name, draw.Notacolor, r)
}

func (i *mockImage) Display() draw.Display { return i.d }
func (i *mockImage) Pix() draw.Pix         { return 0 }
func (i *mockImage) R() image.Rectangle    { return i.r }

func imagename(img draw.Image) string {
	if m, ok := img.(*mockImage); ok {
		return m.n
	}
	return "nil"
}

func (i *mockImage) Draw(r image.Rectangle, src, mask draw.Image, p1 image.Point) {
	if r.Empty() {
		return
	}
	srcname := "nil"
	if src != nil {
		srcname = imagename(src)
	}
	i.d.drawops = append(i.d.drawops,
		fmt.Sprintf("fill %v %s", r, srcname))
}

func (i *mockImage) Border(r image.Rectangle, n int, color draw.Image, sp image.Point) {
	i.d.drawops = append(i.d.drawops,
		fmt.Sprintf("border %v thick %d %s", r, n, imagename(color)))
}

func (i *mockImage) Line(p0, p1 image.Point, end0, end1, radius int, src draw.Image, sp image.Point) {
	i.d.drawops = append(i.d.drawops,
		fmt.Sprintf("line %v-%v radius %d %s", p0, p1, radius, imagename(src)))
}

func (i *mockImage) Bytes(pt image.Point, src draw.Image, sp image.Point, f draw.Font, b []byte) image.Point {
	i.d.drawops = append(i.d.drawops,
		fmt.Sprintf("bytes %q at %v %s", string(b), pt, imagename(src)))
	return pt.Add(image.Pt(f.BytesWidth(b), 0))
}

func (i *mockImage) String(pt image.Point, src draw.Image, sp image.Point, f draw.Font, s string) image.Point {
	i.d.drawops = append(i.d.drawops,
		fmt.Sprintf("string %q at %v %s", s, pt, imagename(src)))
	return pt.Add(image.Pt(f.StringWidth(s), 0))
}

func (i *mockImage) Free() error { return nil }

func (i *mockImage) Load(r image.Rectangle, data []byte) (int, error) {
	return len(data), nil
}

var _ = draw.Font((*mockFont)(nil))

// mockFont is a draw.Font with fixed character metrics so test
// expectations stay in character multiples.
type mockFont struct {
	width, height int
}

// NewFont returns a draw.Font with fixed metrics.
func NewFont(width, height int) draw.Font {
	return &mockFont{width: width, height: height}
}

func (f *mockFont) Name() string            { return "mock" }
func (f *mockFont) Height() int             { return f.height }
func (f *mockFont) BytesWidth(b []byte) int { return f.width * len([]rune(string(b))) }
func (f *mockFont) RunesWidth(r []rune) int { return f.width * len(r) }
func (f *mockFont) StringWidth(s string) int {
	return f.width * len([]rune(s))
}
