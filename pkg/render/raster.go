// Package render rasterizes a display list into an image.
package render

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"

	"github.com/copaaglo/mybrowser/pkg/css"
	"github.com/copaaglo/mybrowser/pkg/paint"
	"github.com/copaaglo/mybrowser/pkg/text"
)

// ImageResolver maps a display list image src to its decoded pixels.
// Nil means unavailable; the rasterizer paints a placeholder.
type ImageResolver func(src string) image.Image

// Renderer replays display lists onto a raster surface. One renderer
// can draw any number of frames; it caches font faces across them.
type Renderer struct {
	images  ImageResolver
	measure *text.Measurer
}

func NewRenderer(images ImageResolver) *Renderer {
	return &Renderer{images: images, measure: text.NewMeasurer()}
}

// Render draws the list onto a white width x height canvas. scroll
// shifts page coordinates upward, so the visible window starts at that
// page offset.
func (r *Renderer) Render(list []paint.DisplayItem, width, height int, scroll float64) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for _, item := range list {
		switch it := item.(type) {
		case paint.FillRect:
			r.drawRect(dc, it, scroll)
		case paint.DrawText:
			r.drawText(dc, it, scroll)
		case paint.DrawImage:
			r.drawImage(dc, it, scroll)
		}
	}
	return dc.Image()
}

// SavePNG renders the list and writes it to path.
func (r *Renderer) SavePNG(path string, list []paint.DisplayItem, width, height int, scroll float64) error {
	img := r.Render(list, width, height, scroll)
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func setColor(dc *gg.Context, c css.Color) {
	dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(c.A))
}

func (r *Renderer) drawRect(dc *gg.Context, it paint.FillRect, scroll float64) {
	setColor(dc, it.Color)
	dc.DrawRectangle(it.Rect.X, it.Rect.Y-scroll, it.Rect.W, it.Rect.H)
	dc.Fill()
}

func (r *Renderer) drawText(dc *gg.Context, it paint.DrawText, scroll float64) {
	style := text.FontStyle{Size: it.Size, Bold: it.Bold, Italic: it.Italic, Mono: it.Mono}
	face, err := r.measure.Face(style)
	if err != nil {
		return
	}
	dc.SetFontFace(face)
	setColor(dc, it.Color)
	y := it.Y - scroll
	dc.DrawString(it.Text, it.X, y)

	if it.Underline {
		width := r.measure.Width(it.Text, style)
		dc.DrawRectangle(it.X, y+2, width, 1)
		dc.Fill()
	}
}

func (r *Renderer) drawImage(dc *gg.Context, it paint.DrawImage, scroll float64) {
	var img image.Image
	if r.images != nil {
		img = r.images(it.Src)
	}
	if img == nil {
		r.drawPlaceholder(dc, it, scroll)
		return
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}
	dc.Push()
	dc.Translate(it.Rect.X, it.Rect.Y-scroll)
	dc.Scale(it.Rect.W/float64(bounds.Dx()), it.Rect.H/float64(bounds.Dy()))
	dc.DrawImage(img, 0, 0)
	dc.Pop()
}

// drawPlaceholder marks a broken image: a light gray box with a darker
// outline and an X across it.
func (r *Renderer) drawPlaceholder(dc *gg.Context, it paint.DrawImage, scroll float64) {
	x, y, w, h := it.Rect.X, it.Rect.Y-scroll, it.Rect.W, it.Rect.H

	dc.SetRGB255(224, 224, 224)
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()

	dc.SetRGB255(128, 128, 128)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x, y, w, h)
	dc.Stroke()
	dc.DrawLine(x, y, x+w, y+h)
	dc.Stroke()
	dc.DrawLine(x+w, y, x, y+h)
	dc.Stroke()
}
