package plot

import (
	"image"
	"image/color"
	"image/draw"

	"dashkit/internal/chart"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	tableRowHeight = 18
	tablePad       = 4
)

// renderTable draws a table drawable with the 7x13 bitmap font. Rows that
// do not fit are cut off.
func renderTable(t *chart.Table, title string, bg drawing.Color, w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	y := 0
	if title != "" {
		drawText(img, face, title, tablePad, y+tableRowHeight-tablePad, color.Black)
		y += tableRowHeight + tablePad
	}
	if len(t.Header) == 0 {
		return img
	}

	colW := w / len(t.Header)
	line := parseColor(t.LineColor, drawing.ColorBlack)
	header := parseColor(t.HeaderColor, drawing.ColorWhite)

	drawRow(img, face, t.Header, y, colW, header, line)
	y += tableRowHeight
	for i, cells := range t.TextRows() {
		if y+tableRowHeight > h {
			break
		}
		fill := drawing.ColorWhite
		if i < len(t.RowColors) {
			fill = parseColor(t.RowColors[i], fill)
		}
		drawRow(img, face, cells, y, colW, fill, line)
		y += tableRowHeight
	}
	return img
}

func drawRow(img *image.RGBA, face font.Face, cells []string, y, colW int, fill, line drawing.Color) {
	for c, text := range cells {
		x := c * colW
		r := image.Rect(x, y, x+colW, y+tableRowHeight)
		draw.Draw(img, r, image.NewUniform(line), image.Point{}, draw.Src)
		draw.Draw(img, r.Inset(1), image.NewUniform(fill), image.Point{}, draw.Src)
		drawText(img, face, clip(text, (colW-2*tablePad)/7), x+tablePad, y+tableRowHeight-tablePad, color.Black)
	}
}

func drawText(img *image.RGBA, face font.Face, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

func clip(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "~"
	}
	return string(r[:n-1]) + "~"
}
