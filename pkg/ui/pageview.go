package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// pageView shows the rendered page image and reports taps in image
// pixel coordinates, which match the document's layout coordinates.
type pageView struct {
	widget.BaseWidget
	img   *canvas.Image
	onTap func(x, y float64)
}

func newPageView(onTap func(x, y float64)) *pageView {
	v := &pageView{onTap: onTap}
	v.img = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	v.img.FillMode = canvas.ImageFillOriginal
	v.img.ScaleMode = canvas.ImageScalePixels
	v.ExtendBaseWidget(v)
	return v
}

// SetImage swaps in a newly rendered page.
func (v *pageView) SetImage(img image.Image) {
	v.img.Image = img
	v.img.SetMinSize(fyne.NewSize(
		float32(img.Bounds().Dx()), float32(img.Bounds().Dy())))
	v.img.Refresh()
	v.Refresh()
}

func (v *pageView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.img)
}

// Tapped implements fyne.Tappable.
func (v *pageView) Tapped(ev *fyne.PointEvent) {
	if v.onTap != nil {
		v.onTap(float64(ev.Position.X), float64(ev.Position.Y))
	}
}
