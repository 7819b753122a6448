package main

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/stewi1014/fractals/views"
)

// glfwMain renders a single view in a bare glfw window, with no config
// window. The arrow and +/- keys drive the recursion depth, Escape quits.
func glfwMain(ctx context.Context, name string) error {
	view, err := findView(name)
	if err != nil {
		return err
	}

	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw.Init failed: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	width, height := 1200, 800
	if *windowWidth > 0 && *windowHeight > 0 {
		width, height = *windowWidth, *windowHeight
	}
	window, err := glfw.CreateWindow(width, height, view.Name(), nil, nil)
	if err != nil {
		return fmt.Errorf("glfw.CreateWindow failed: %w", err)
	}

	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl.Init failed: %w", err)
	}

	gl.DebugMessageCallback(glDebugMessage, nil)
	if debug {
		gl.Enable(gl.DEBUG_OUTPUT)
	}

	settings := views.DefaultSettings()
	settings.Depth = defaultDepth(view, settings)

	dirty := true
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		gv, _ := view.(views.GeometryView)
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyUp, glfw.KeyRight, glfw.KeyEqual, glfw.KeyKPAdd:
			if gv != nil && settings.Depth < gv.MaxDepth() {
				settings.Depth++
				dirty = true
			}
		case glfw.KeyDown, glfw.KeyLeft, glfw.KeyMinus, glfw.KeyKPSubtract:
			if gv != nil && settings.Depth > 0 {
				settings.Depth--
				dirty = true
			}
		}
	})

	var pipe pipeline
	if err := pipe.loadView(view, settings, mgl32.Vec2{float32(width), float32(height)}); err != nil {
		return err
	}
	defer pipe.delete()

	for !window.ShouldClose() && ctx.Err() == nil {
		width, height := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(width), int32(height))

		if dirty || view.Dynamic() {
			list, err := view.Draw(settings)
			if err != nil {
				return err
			}
			if err := pipe.upload(list); err != nil {
				return err
			}
			dirty = false
		}

		gl.ClearColor(0, 0, 0, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		pipe.draw(view, settings, mgl32.Vec2{float32(width), float32(height)})

		window.SwapBuffers()
		glfw.PollEvents()
	}

	return context.Cause(ctx)
}

func findView(name string) (views.View, error) {
	names := make([]string, views.NumViews())
	for i := range names {
		v := views.GetView(i)
		if strings.EqualFold(v.Name(), name) {
			return v, nil
		}
		names[i] = v.Name()
	}
	return nil, fmt.Errorf("unknown view %q; have: %v", name, strings.Join(names, ", "))
}
