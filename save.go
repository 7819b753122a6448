package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"github.com/stewi1014/fractals/views"
)

type SaveOptions struct {
	Name          string
	Width, Height int
	Antialias     float32
}

// save renders the view at opts' resolution and encodes it to a PNG file.
// Shader views render through their CPU pixel function; geometry views are
// rasterized from their draw list.
func save(
	ctx context.Context,
	window *gtk.ApplicationWindow,
	opts SaveOptions,
	view views.View,
	settings views.Settings,
) {
	ctx, cancel := WithErrorDialogCancelCause(window, ctx)
	defer CatchPanicToContext(cancel)

	file, err := os.Create(opts.Name)
	if err != nil {
		cancel(err)
		return
	}
	context.AfterFunc(ctx, func() {
		file.Close()
	})
	keepFile := context.AfterFunc(ctx, func() {
		os.Remove(file.Name())
	})

	dialog, err := NewProgressDialog(
		ctx, window, "Save Image",
		fmt.Sprintf("Saving %v", file.Name()),
		func() { cancel(context.Canceled) },
	)
	if err != nil {
		cancel(err)
		return
	}

	go func() {
		defer CatchPanicToContext(cancel)

		var img image.Image
		if pixelView, ok := view.(views.PixelView); ok {
			src := NewViewImage(pixelView, settings, opts.Width, opts.Height)
			if opts.Antialias > 0 {
				src = AntiAlias9x(src, float64(opts.Antialias))
			}
			img = ToImage(src)
		} else {
			img, err = Rasterize(view, settings, opts.Width, opts.Height)
			if err != nil {
				cancel(err)
				return
			}
		}

		dialog.AddProgressSupplier(WrapWithProgress(&img))
		buff := BufferImage(img)
		img = buff
		dialog.AddProgressSupplier(WrapWithProgress(&img))

		if err := buff.Buffer(ctx); err != nil {
			cancel(err)
			return
		}

		if err := png.Encode(file, img); err != nil {
			cancel(err)
			return
		}

		// the file is good; stop the cleanup before releasing the context
		keepFile()
		glib.IdleAdd(func() {
			dialog.Destroy()
		})
		cancel(context.Canceled)
	}()
}
