package main

import (
	"context"
	"encoding/gob"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"github.com/stewi1014/fractals/views"
)

const debug = true

// SelectView switches the render window to the view at Index.
type SelectView struct {
	Index int
}

func init() {
	gob.Register(&views.Settings{})
	gob.Register(&SelectView{})
}

var (
	glfwView     = flag.String("glfw", "", "render a single view in a plain glfw window, by name")
	windowWidth  = flag.Int("width", 0, "render window width; 0 sizes from the monitor")
	windowHeight = flag.Int("height", 0, "render window height; 0 sizes from the monitor")
)

func main() {
	flag.Parse()

	mainContext, mainQuit := context.WithCancelCause(context.Background())

	if *glfwView != "" {
		go func() {
			mainQuit(glfwMain(mainContext, *glfwView))
		}()
	} else {
		go func() {
			mainQuit(gtkMain(mainContext))
		}()
	}

	<-mainContext.Done()
	if err := context.Cause(mainContext); err != nil && !errors.Is(err, context.Canceled) {
		log.Println(err)
	}
}

func gtkMain(ctx context.Context) error {
	runtime.LockOSThread()

	gtk.Init(&os.Args)
	app, err := gtk.ApplicationNew("com.github.stewi1014.fractals", glib.APPLICATION_FLAGS_NONE)
	if err != nil {
		return fmt.Errorf("gtk.ApplicationNew failed: %w", err)
	}

	appContext, appQuit := context.WithCancelCause(ctx)
	app.Connect("activate", func() {
		client, listener := NewPipeListener(appContext)

		renderWindow := NewRenderWindow(app, client, appContext, appQuit)
		renderWindow.Connect("destroy", func() {
			appQuit(nil)
		})
		renderWindow.SetTitle("Fractals Render")

		configWindow := NewConfigWindow(app, listener, appContext, appQuit)
		configWindow.Connect("destroy", func() {
			appQuit(nil)
		})
		configWindow.SetTitle("Fractals Config")
	})

	go func() {
		<-appContext.Done()
		glib.IdleAdd(app.Quit)
	}()
	app.Run(nil)
	return context.Cause(appContext)
}
