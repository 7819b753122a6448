package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"sync"

	"github.com/fogleman/gg"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/stewi1014/fractals/views"
)

// pixelSource is a CPU-rendered image in view coordinates; [-1, 1] spans the
// short axis of Bounds.
type pixelSource interface {
	GetPixel(pos mgl64.Vec2) mgl32.Vec3
	Bounds() image.Rectangle
}

// NewViewImage renders a PixelView at the given size.
func NewViewImage(view views.PixelView, s views.Settings, width, height int) pixelSource {
	width = width / 2
	height = height / 2

	return &viewImage{
		view:     view,
		settings: s,
		bounds: image.Rect(
			-width,
			-height,
			width,
			height,
		),
	}
}

type viewImage struct {
	view     views.PixelView
	settings views.Settings
	bounds   image.Rectangle
}

func (i *viewImage) GetPixel(pos mgl64.Vec2) mgl32.Vec3 {
	return i.view.GetPixel(i.settings, pos)
}

func (i *viewImage) Bounds() image.Rectangle {
	return i.bounds
}

func WrapWithProgress(img *image.Image) func() float64 {
	p := &ProgressImage{
		Image: *img,
	}

	*img = p
	return p.Progress
}

type ProgressImage struct {
	image.Image
	count int
}

func (i *ProgressImage) At(x, y int) color.Color {
	i.count++
	return i.Image.At(x, y)
}

func (i *ProgressImage) Progress() float64 {
	end := i.Bounds().Dx() * i.Bounds().Dy()
	return float64(i.count) / float64(end)
}

func (i *ProgressImage) Opaque() bool {
	return true
}

// AntiAlias9x samples 9 positions for each sampled position,
// returning the average colour.
//
// antialias is the number of pixels apart the sampled locations are.
func AntiAlias9x(img pixelSource, antialias float64) pixelSource {
	if antialias == 0 {
		log.Println("image uselessly antialiased with distance of 0")
	}

	scaleFactor := float64(img.Bounds().Dx())
	if img.Bounds().Dy() < img.Bounds().Dx() {
		scaleFactor = float64(img.Bounds().Dy())
	}

	return &antialias9xImage{
		pixelSource: img,
		offset:      antialias / scaleFactor,
	}
}

type antialias9xImage struct {
	pixelSource
	offset float64
}

func (i *antialias9xImage) GetPixel(pos mgl64.Vec2) mgl32.Vec3 {
	avg := mgl32.Vec3{}
	for _, dx := range [3]float64{-i.offset, 0, i.offset} {
		for _, dy := range [3]float64{-i.offset, 0, i.offset} {
			avg = avg.Add(i.pixelSource.GetPixel(mgl64.Vec2{pos[0] + dx, pos[1] + dy}))
		}
	}
	return avg.Mul(1 / float32(9))
}

func BufferImage(img image.Image) *BufferedImage {
	return &BufferedImage{
		Image:  img,
		height: img.Bounds().Dy(),
	}
}

type BufferedImage struct {
	image.Image
	height int
	buff   []color.Color
}

func (b *BufferedImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Image.Bounds().Dx(), b.Image.Bounds().Dy())
}

func (b *BufferedImage) At(x, y int) color.Color {
	return b.buff[x*b.height+y]
}

func (b *BufferedImage) Buffer(ctx context.Context) error {
	b.buff = make([]color.Color, b.Image.Bounds().Dx()*b.Image.Bounds().Dy())

	min, max := b.Image.Bounds().Min, b.Image.Bounds().Max
	chunkSize := 50
	var wg sync.WaitGroup

	for chunkMin := min.X; chunkMin < max.X; chunkMin += chunkSize {
		chunkMax := chunkMin + chunkSize
		if chunkMax > max.X {
			chunkMax = max.X
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			i := (chunkMin - min.X) * b.Image.Bounds().Dy()
			for x := chunkMin; x < chunkMax; x++ {
				if ctx.Err() != nil {
					return
				}

				for y := min.Y; y < max.Y; y++ {
					b.buff[i] = b.Image.At(x, y)
					i++
				}
			}
		}()
	}

	wg.Wait()

	return ctx.Err()
}

func (b *BufferedImage) Opaque() bool {
	return true
}

func ToImage(img pixelSource) image.Image {
	scaleFactor := img.Bounds().Dx()
	if img.Bounds().Dy() < img.Bounds().Dx() {
		scaleFactor = img.Bounds().Dy()
	}

	return &imageImage{
		pixelSource: img,
		scaleFactor: float64(scaleFactor) / 2,
	}
}

type imageImage struct {
	pixelSource
	scaleFactor float64
}

func (i *imageImage) At(x, y int) color.Color {
	// view y grows upwards
	y = -y

	c := i.GetPixel(mgl64.Vec2{
		float64(x) / i.scaleFactor,
		float64(y) / i.scaleFactor,
	})

	return color.NRGBA{
		R: uint8(c[0] * 255),
		G: uint8(c[1] * 255),
		B: uint8(c[2] * 255),
		A: 0xff,
	}
}

func (i *imageImage) ColorModel() color.Model {
	return color.NRGBAModel
}

func (i *imageImage) Opaque() bool {
	return true
}

// Rasterize renders a geometry view's draw list to an image, for views that
// have no CPU pixel function.
func Rasterize(view views.View, s views.Settings, width, height int) (image.Image, error) {
	list, err := view.Draw(s)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(0, 0, 0)
	dc.Clear()

	// world [-1, 1] spans the short axis, y upwards
	unit := float64(min(width, height)) / 2
	toScreen := func(p mgl32.Vec2) (x, y float64) {
		return float64(width)/2 + float64(p.X())*unit,
			float64(height)/2 - float64(p.Y())*unit
	}

	switch l := list.(type) {
	case views.LineLoop:
		dc.MoveTo(toScreen(l.Vertices[0]))
		for _, p := range l.Vertices[1:] {
			dc.LineTo(toScreen(p))
		}
		dc.ClosePath()
		dc.SetRGB(0.7, 0.7, 0.7)
		dc.SetLineWidth(1)
		dc.Stroke()

	case views.Mesh:
		for i := 0; i+2 < len(l.Indices); i += 3 {
			a := l.Vertices[l.Indices[i]]
			b := l.Vertices[l.Indices[i+1]]
			c := l.Vertices[l.Indices[i+2]]
			dc.MoveTo(toScreen(a))
			dc.LineTo(toScreen(b))
			dc.LineTo(toScreen(c))
			dc.ClosePath()
			dc.SetRGB(meshColor(a.Add(b).Add(c).Mul(1.0 / 3.0)))
			dc.Fill()
		}

	case views.Lines:
		zoom := s.Clock.Zoom
		for i := 0; i+1 < len(l.Vertices); i += 2 {
			a, b := l.Vertices[i], l.Vertices[i+1]
			lum := float64(a.Lum)
			dc.SetRGB(lum, lum, lum)
			dc.SetLineWidth(float64(a.Width))
			ax, ay := toScreen(a.Pos.Mul(zoom))
			bx, by := toScreen(b.Pos.Mul(zoom))
			dc.DrawLine(ax, ay, bx, by)
			dc.Stroke()
		}

	default:
		return nil, fmt.Errorf("cannot rasterize draw list %T", list)
	}

	return dc.Image(), nil
}

// meshColor matches the color ramp in mesh.vert.
func meshColor(p mgl32.Vec2) (r, g, b float64) {
	x, y := float64(p.X()), float64(p.Y())
	return clamp01((0.8 + y) / 3),
		clamp01((0.8 - x - y) / 1.6),
		clamp01((x + 0.8 - y) / 1.6)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
