// Package plot renders assembled chart figures to images with go-chart.
//
// Each populated cell is drawn on its own and the results are composed into
// one image following the figure's grid and spacing. Tables are drawn with a
// bitmap font.
package plot

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"dashkit/internal/chart"
	"dashkit/internal/logging"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/image/font/basicfont"
)

// Output formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// Default image size used when the figure is autosized.
const (
	DefaultWidth  = 1200
	DefaultHeight = 800
)

const (
	figureTitleHeight = 24
	minCellSize       = 40
)

var (
	// ErrUnsupportedFormat is returned for unknown output formats and for
	// SVG output of multi-cell figures.
	ErrUnsupportedFormat = errors.New("unsupported output format")
	// ErrTooSmall is returned when the grid leaves no room for a cell.
	ErrTooSmall = errors.New("image too small for grid")
)

// Formats lists the supported output formats.
func Formats() []string {
	return []string{FormatPNG, FormatJPEG, FormatSVG, FormatJSON}
}

// Renderer draws figures.
type Renderer struct {
	width  int
	height int
	logger *logging.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSize sets the image size used for autosized figures.
func WithSize(w, h int) Option {
	return func(r *Renderer) {
		if w > 0 && h > 0 {
			r.width, r.height = w, h
		}
	}
}

// WithLogger sets the logger used for cell render failures.
func WithLogger(l *logging.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{width: DefaultWidth, height: DefaultHeight, logger: logging.NopLogger()}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Renderer) size(fig *chart.Figure) (int, int) {
	if !fig.Layout.Autosize && fig.Layout.Width > 0 && fig.Layout.Height > 0 {
		return fig.Layout.Width, fig.Layout.Height
	}
	return r.width, r.height
}

// Render draws fig into a single image. A cell that fails to render is
// left as an empty panel and logged.
func (r *Renderer) Render(ctx context.Context, fig *chart.Figure) (image.Image, error) {
	if fig == nil {
		return nil, errors.New("render: nil figure")
	}
	_, span := otel.Tracer("dashkit/plot").Start(ctx, "plot.render")
	defer span.End()

	w, h := r.size(fig)
	span.SetAttributes(attribute.Int("plot.width", w), attribute.Int("plot.height", h))

	bg := parseColor(fig.Layout.PaperBGColor, drawing.ColorWhite)
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	top := 0
	if fig.Layout.Title != "" {
		drawText(canvas, basicfont.Face7x13, fig.Layout.Title, 8, figureTitleHeight-6, color.Black)
		top = figureTitleHeight
	}

	gridH := h - top
	vs := int(fig.VerticalSpacing * float64(gridH))
	hs := int(fig.HorizontalSpacing * float64(w))
	cw := (w - hs*(fig.Cols-1)) / fig.Cols
	ch := (gridH - vs*(fig.Rows-1)) / fig.Rows
	if cw < minCellSize || ch < minCellSize {
		return nil, fmt.Errorf("%w: %dx%d for %d rows, %d cols", ErrTooSmall, w, h, fig.Rows, fig.Cols)
	}

	for i := range fig.Cells {
		cell := &fig.Cells[i]
		img, err := renderCell(cell, fig.Layout, cw, ch)
		if err != nil {
			r.logger.Warn("cell render failed", "row", cell.Row, "col", cell.Col, "error", err)
			continue
		}
		x := (cell.Col - 1) * (cw + hs)
		y := top + (cell.Row-1)*(ch+vs)
		draw.Draw(canvas, image.Rect(x, y, x+cw, y+ch), img, img.Bounds().Min, draw.Src)
	}
	return canvas, nil
}

func renderCell(cell *chart.FigureCell, layout chart.Layout, w, h int) (image.Image, error) {
	if cell.Spec.Kind == chart.KindTable {
		for _, tr := range cell.Traces {
			if t, ok := tr.Drawable.(*chart.Table); ok {
				return renderTable(t, cell.Title, parseColor(layout.PaperBGColor, drawing.ColorWhite), w, h), nil
			}
		}
		return nil, errNothingToDraw
	}
	if barsOnly(cell) {
		return renderBars(cell, layout, w, h)
	}
	c, err := cellChart(cell, layout, w, h)
	if err != nil {
		return nil, err
	}
	out := &gochart.ImageWriter{}
	if err := c.Render(gochart.PNG, out); err != nil {
		return nil, fmt.Errorf("render cell %d,%d: %w", cell.Row, cell.Col, err)
	}
	return out.Image()
}

// Encode writes fig to w in the given format.
func (r *Renderer) Encode(ctx context.Context, w io.Writer, fig *chart.Figure, format string) error {
	switch format {
	case FormatJSON:
		data, err := fig.JSON()
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatSVG:
		if len(fig.Cells) != 1 || fig.Cells[0].Spec.Kind != chart.KindXY {
			return fmt.Errorf("%w: svg needs a single xy cell", ErrUnsupportedFormat)
		}
		width, height := r.size(fig)
		c, err := cellChart(&fig.Cells[0], fig.Layout, width, height)
		if err != nil {
			return err
		}
		if c.Title == "" {
			c.Title = fig.Layout.Title
		}
		return c.Render(gochart.SVG, w)
	case FormatPNG, FormatJPEG:
		img, err := r.Render(ctx, fig)
		if err != nil {
			return err
		}
		if format == FormatPNG {
			return png.Encode(w, img)
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// NormalizeFormat lowercases format and maps "jpg" to "jpeg".
func NormalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == "jpg" {
		return FormatJPEG
	}
	return format
}

// Save writes fig to name, appending the format's extension when name has
// none. Returns the path written.
func (r *Renderer) Save(ctx context.Context, fig *chart.Figure, name, format string) (string, error) {
	format = NormalizeFormat(format)
	if !slices.Contains(Formats(), format) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if filepath.Ext(name) == "" {
		name += "." + format
	}

	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if err := r.Encode(ctx, f, fig, format); err != nil {
		f.Close()
		os.Remove(name)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	r.logger.Info("figure saved", "path", name, "format", format)
	return name, nil
}
