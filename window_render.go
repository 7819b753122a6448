package main

import (
	"context"
	"encoding/gob"
	"fmt"
	"log"
	"net"
	"reflect"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"github.com/stewi1014/fractals/views"
)

func NewRenderWindow(
	app *gtk.Application,
	conn net.Conn,
	ctx context.Context,
	quit func(error),
) *RenderWindow {
	var err error
	w := &RenderWindow{
		ctx:      ctx,
		quit:     quit,
		view:     views.GetView(0),
		settings: views.DefaultSettings(),
	}

	go w.handleSend(conn)

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		quit(fmt.Errorf("gtk.ApplicationWindowNew: %w", err))
		return nil
	}

	w.SetDefaultSize(getWindowSize())

	w.gla, err = gtk.GLAreaNew()
	if err != nil {
		quit(fmt.Errorf("gtk.GLAreaNew: %w", err))
		return nil
	}

	w.gla.SetRequiredVersion(4, 6)
	w.gla.Connect("realize", w.glaRealize)
	w.gla.Connect("render", w.glaRender)
	w.gla.Connect("unrealize", w.glaUnrealize)

	w.gla.SetEvents(
		int(gdk.BUTTON_PRESS_MASK) |
			int(gdk.BUTTON_RELEASE_MASK) |
			int(gdk.POINTER_MOTION_MASK) |
			int(gdk.SCROLL_MASK),
	)
	w.gla.Connect("resize", w.resize)
	w.gla.Connect("scroll-event", w.scroll)
	w.gla.Connect("button-press-event", w.button)
	w.gla.Connect("button-release-event", w.button)
	w.gla.Connect("motion-notify-event", w.motion)

	w.Add(w.gla)
	w.ShowAll()

	go w.handleReceive(conn)

	return w
}

func getWindowSize() (width, height int) {
	if *windowWidth > 0 && *windowHeight > 0 {
		return *windowWidth, *windowHeight
	}

	width = 1200
	height = 800

	display, err := gdk.DisplayGetDefault()
	if err != nil {
		return
	}

	monitor, err := display.GetPrimaryMonitor()
	if err != nil {
		return
	}

	width = int(float32(monitor.GetGeometry().GetWidth()) * .6)
	height = int(float32(monitor.GetGeometry().GetHeight()) * .6)
	return
}

type RenderWindow struct {
	*gtk.ApplicationWindow
	gla           *gtk.GLArea
	width, height int

	ctx  context.Context
	quit func(error)

	view     views.View
	settings views.Settings
	pipe     pipeline

	// consumed by glaRender, the only place GL calls happen
	needsProgram  bool
	needsGeometry bool

	dragging bool
	dragPos  mgl64.Vec2

	sendMessage chan interface{}
}

func glDebugMessage(
	source,
	gltype,
	id,
	severity uint32,
	length int32,
	message string,
	user unsafe.Pointer,
) {
	severityStr := "unknown"
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		severityStr = "high"
	case gl.DEBUG_SEVERITY_MEDIUM:
		severityStr = "medium"
	case gl.DEBUG_SEVERITY_LOW:
		severityStr = "low"
	}

	sourceStr := "unknownSource"
	switch source {
	case gl.DEBUG_SOURCE_API:
		sourceStr = "api"
	case gl.DEBUG_SOURCE_APPLICATION:
		sourceStr = "application"
	case gl.DEBUG_SOURCE_OTHER:
		sourceStr = "other"
	case gl.DEBUG_SOURCE_SHADER_COMPILER:
		sourceStr = "shaderCompiler"
	case gl.DEBUG_SOURCE_THIRD_PARTY:
		sourceStr = "thirdParty"
	case gl.DEBUG_SOURCE_WINDOW_SYSTEM:
		sourceStr = "windowSystem"
	}

	typeStr := "unknownType"
	switch gltype {
	case gl.DEBUG_TYPE_ERROR:
		typeStr = "error"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		typeStr = "depreciatedBehavior"
	case gl.DEBUG_TYPE_MARKER:
		typeStr = "marker"
	case gl.DEBUG_TYPE_OTHER:
		typeStr = "other"
	case gl.DEBUG_TYPE_PERFORMANCE:
		typeStr = "performance"
	case gl.DEBUG_TYPE_PORTABILITY:
		typeStr = "portability"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		typeStr = "undefinedBehavior"
	}

	log.Printf("%v(%v): %v; %v\n", sourceStr, severityStr, typeStr, message)
}

func (w *RenderWindow) viewport() mgl32.Vec2 {
	return mgl32.Vec2{float32(w.width), float32(w.height)}
}

func (w *RenderWindow) glaRealize(gla *gtk.GLArea) {
	gla.MakeCurrent()

	err := gl.Init()
	if err != nil {
		w.quit(fmt.Errorf("gl.Init: %w", err))
		return
	}
	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Println("OpenGL version", version)

	gl.DebugMessageCallback(glDebugMessage, nil)
	if debug {
		gl.Enable(gl.DEBUG_OUTPUT)
	}

	w.settings.Depth = defaultDepth(w.view, w.settings)
	w.needsProgram = true
	w.needsGeometry = true
}

func (w *RenderWindow) glaRender(gla *gtk.GLArea) {
	gla.AttachBuffers()

	if w.needsProgram {
		if err := w.pipe.loadView(w.view, w.settings, w.viewport()); err != nil {
			w.quit(err)
			return
		}
		w.needsProgram = false
		w.needsGeometry = true
	}

	if w.needsGeometry || w.view.Dynamic() {
		list, err := w.view.Draw(w.settings)
		if err != nil {
			w.quit(err)
			return
		}
		if err := w.pipe.upload(list); err != nil {
			w.quit(err)
			return
		}
		w.needsGeometry = false
	}

	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	w.pipe.draw(w.view, w.settings, w.viewport())

	if w.view.Dynamic() {
		gla.QueueDraw()
	}
}

func (w *RenderWindow) glaUnrealize(gla *gtk.GLArea) {
	gla.MakeCurrent()
	w.pipe.delete()
}

func (w *RenderWindow) resize(gla *gtk.GLArea, width, height int) {
	w.width, w.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// worldScale is how far one pixel moves the julia set at the current zoom.
func (w *RenderWindow) worldScale() float64 {
	short := w.height
	if w.width < short {
		short = w.width
	}
	if short == 0 {
		return 0
	}
	return 3 / (w.settings.Julia.Zoom * float64(short))
}

func (w *RenderWindow) button(gla *gtk.GLArea, event *gdk.Event) {
	if _, ok := w.view.(*views.JuliaView); !ok {
		return
	}

	button := gdk.EventButtonNewFromEvent(event)
	switch button.Type() {
	case gdk.EVENT_BUTTON_PRESS:
		w.dragging = true
		w.dragPos = mgl64.Vec2{button.X(), button.Y()}
	case gdk.EVENT_BUTTON_RELEASE:
		w.dragging = false
		w.sendMessage <- w.settings
	}
}

func (w *RenderWindow) motion(gla *gtk.GLArea, event *gdk.Event) {
	if !w.dragging {
		return
	}

	motion := gdk.EventMotionNewFromEvent(event)
	x, y := motion.MotionVal()
	pos := mgl64.Vec2{x, y}
	d := pos.Sub(w.dragPos).Mul(w.worldScale())
	w.dragPos = pos

	// gdk y grows downwards, world y upwards
	center := &w.settings.Julia.Center
	*center = center.Sub(mgl64.Vec2{d.X(), -d.Y()})
	gla.QueueDraw()
}

func (w *RenderWindow) scroll(gla *gtk.GLArea, event *gdk.Event) {
	if _, ok := w.view.(*views.JuliaView); !ok {
		return
	}

	scroll := gdk.EventScrollNewFromEvent(event)
	zoom := &w.settings.Julia.Zoom
	if scroll.Direction() == gdk.SCROLL_UP {
		*zoom *= 1.1
	} else if scroll.Direction() == gdk.SCROLL_DOWN {
		*zoom /= 1.1
	}
	if *zoom < 1 {
		*zoom = 1
	}

	gla.QueueDraw()
	w.sendMessage <- w.settings
}

func (w *RenderWindow) handleSend(conn net.Conn) {
	enc := gob.NewEncoder(conn)
	w.sendMessage = make(chan interface{})
	defer conn.Close()
	defer close(w.sendMessage)

	for {
		select {
		case msg := <-w.sendMessage:
			err := enc.Encode(&msg)
			if err != nil {
				w.quit(err)
				return
			}
		case <-w.ctx.Done():
			return
		}
	}
}

func (w *RenderWindow) handleReceive(conn net.Conn) {
	dec := gob.NewDecoder(conn)

	for {
		var v interface{}
		err := dec.Decode(&v)
		if err != nil {
			w.quit(err)
			conn.Close()
			return
		}

		switch msg := v.(type) {
		case *views.Settings:
			glib.IdleAdd(func() {
				w.settings = *msg
				w.needsGeometry = true
				w.gla.QueueDraw()
			})

		case *SelectView:
			glib.IdleAdd(func() {
				w.view = views.GetView(msg.Index)
				w.needsProgram = true
				w.gla.QueueDraw()
			})

		default:
			log.Println("unknown message received", reflect.TypeOf(v))
		}
	}
}

// defaultDepth returns the depth a freshly selected view should open at.
func defaultDepth(v views.View, s views.Settings) int {
	if gv, ok := v.(views.GeometryView); ok {
		return gv.DefaultDepth()
	}
	return s.Depth
}
