package main

import (
	"context"
	"encoding/gob"
	"fmt"
	"log"
	"net"
	"reflect"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"github.com/stewi1014/fractals/views"
)

func NewConfigWindow(
	app *gtk.Application,
	listener net.Listener,
	ctx context.Context,
	quit func(error),
) *ConfigWindow {
	var err error
	w := &ConfigWindow{
		ctx:         ctx,
		quit:        quit,
		settings:    views.DefaultSettings(),
		sendMessage: make(chan interface{}),
	}

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		quit(fmt.Errorf("gtk.ApplicationWindowNew: %w", err))
		return nil
	}

	w.SetDefaultSize(280, 700)

	box, _ := gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 6)
	box.SetMarginTop(8)
	box.SetMarginBottom(8)
	box.SetMarginStart(8)
	box.SetMarginEnd(8)

	w.viewSelect, _ = gtk.ComboBoxTextNew()
	for i := 0; i < views.NumViews(); i++ {
		w.viewSelect.AppendText(views.GetView(i).Name())
	}
	w.viewSelect.Connect("changed", w.viewChanged)
	box.Add(w.viewSelect)

	w.status, _ = gtk.LabelNew("")
	w.status.SetXAlign(0)
	box.Add(w.status)

	box.Add(w.depthControls())
	box.Add(w.juliaControls())
	box.Add(w.clockControls())
	box.Add(w.saveControls())

	w.Add(box)
	w.ShowAll()

	go w.serve(listener)

	glib.TimeoutAdd(100, func() bool {
		if w.ctx.Err() != nil {
			return false
		}
		w.status.SetText(w.view().Describe(w.settings))
		return true
	})

	w.viewSelect.SetActive(0)

	return w
}

type ConfigWindow struct {
	*gtk.ApplicationWindow

	ctx  context.Context
	quit func(error)

	settings views.Settings

	viewSelect *gtk.ComboBoxText
	status     *gtk.Label
	depthSpin  *gtk.SpinButton
	juliaSpins [5]*gtk.SpinButton

	// set while widget values are being synced from the render window, so
	// value-changed handlers don't echo the update back
	syncing bool

	sendMessage chan interface{}
}

func (w *ConfigWindow) view() views.View {
	return views.GetView(w.index())
}

func (w *ConfigWindow) index() int {
	i := w.viewSelect.GetActive()
	if i < 0 {
		return 0
	}
	return i
}

func (w *ConfigWindow) viewChanged() {
	if w.syncing {
		return
	}

	view := w.view()
	if gv, ok := view.(views.GeometryView); ok {
		w.settings.Depth = gv.DefaultDepth()
		w.syncing = true
		w.depthSpin.SetRange(0, float64(gv.MaxDepth()))
		w.depthSpin.SetValue(float64(w.settings.Depth))
		w.syncing = false
		w.depthSpin.SetSensitive(true)
	} else {
		w.depthSpin.SetSensitive(false)
	}

	w.send(&SelectView{Index: w.index()})
	w.send(w.settings)
}

func (w *ConfigWindow) settingsChanged() {
	if w.syncing {
		return
	}
	w.send(w.settings)
}

func (w *ConfigWindow) depthControls() gtk.IWidget {
	grid, _ := gtk.GridNew()
	grid.SetColumnSpacing(6)

	label, _ := gtk.LabelNew("Depth:")
	grid.Attach(label, 0, 0, 1, 1)

	w.depthSpin, _ = gtk.SpinButtonNewWithRange(0, 10, 1)
	w.depthSpin.Connect("value-changed", func(spin *gtk.SpinButton) {
		w.settings.Depth = spin.GetValueAsInt()
		w.settingsChanged()
	})
	grid.Attach(w.depthSpin, 1, 0, 1, 1)

	reset, _ := gtk.ButtonNewWithLabel("Reset")
	reset.Connect("clicked", func() {
		defaults := views.DefaultSettings()
		w.settings.Depth = defaults.Depth
		w.settings.Julia = defaults.Julia
		w.syncJuliaSpins()
		w.viewChanged()
	})
	grid.Attach(reset, 2, 0, 1, 1)

	return grid
}

func (w *ConfigWindow) juliaControls() gtk.IWidget {
	frame, _ := gtk.FrameNew("Julia Set")
	grid, _ := gtk.GridNew()
	grid.SetColumnSpacing(6)
	grid.SetRowSpacing(4)

	spin := func(row int, label string, min, max, step float64, set func(float64)) *gtk.SpinButton {
		l, _ := gtk.LabelNew(label)
		l.SetXAlign(0)
		grid.Attach(l, 0, row, 1, 1)

		s, _ := gtk.SpinButtonNewWithRange(min, max, step)
		s.Connect("value-changed", func(s *gtk.SpinButton) {
			set(s.GetValue())
			w.settingsChanged()
		})
		grid.Attach(s, 1, row, 1, 1)
		return s
	}

	j := &w.settings.Julia
	w.juliaSpins[0] = spin(0, "center x:", -2, 2, 0.01, func(v float64) { j.Center[0] = v })
	w.juliaSpins[1] = spin(1, "center y:", -2, 2, 0.01, func(v float64) { j.Center[1] = v })
	w.juliaSpins[2] = spin(2, "zoom:", 1, 1e12, 0.5, func(v float64) { j.Zoom = v })
	w.juliaSpins[3] = spin(3, "c re:", -2, 2, 0.01, func(v float64) { j.C[0] = v })
	w.juliaSpins[4] = spin(4, "c im:", -2, 2, 0.01, func(v float64) { j.C[1] = v })

	power, _ := gtk.SpinButtonNewWithRange(2, 9, 1)
	powerLabel, _ := gtk.LabelNew("power:")
	powerLabel.SetXAlign(0)
	power.SetValue(float64(j.Power))
	power.Connect("value-changed", func(s *gtk.SpinButton) {
		j.Power = int32(s.GetValueAsInt())
		w.settingsChanged()
	})
	grid.Attach(powerLabel, 0, 5, 1, 1)
	grid.Attach(power, 1, 5, 1, 1)

	w.syncJuliaSpins()

	frame.Add(grid)
	return frame
}

// syncJuliaSpins pushes the settings into the julia widgets, eg. after the
// render window pans or zooms.
func (w *ConfigWindow) syncJuliaSpins() {
	w.syncing = true
	j := w.settings.Julia
	for i, v := range []float64{j.Center[0], j.Center[1], j.Zoom, j.C[0], j.C[1]} {
		if w.juliaSpins[i] != nil {
			w.juliaSpins[i].SetValue(v)
		}
	}
	w.syncing = false
}

func (w *ConfigWindow) clockControls() gtk.IWidget {
	frame, _ := gtk.FrameNew("Fractal Clock")
	box, _ := gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 2)

	c := &w.settings.Clock

	paused, _ := gtk.CheckButtonNewWithLabel("Paused")
	paused.Connect("toggled", func(b *gtk.CheckButton) {
		if b.GetActive() {
			// freeze at the currently displayed time
			live := w.settings
			live.Clock.Paused = false
			c.Time = new(views.ClockView).Time(live)
		}
		c.Paused = b.GetActive()
		w.settingsChanged()
	})
	box.Add(paused)

	scale := func(label string, min, max, step, value float64, set func(float64)) {
		l, _ := gtk.LabelNew(label)
		l.SetXAlign(0)
		box.Add(l)

		s, _ := gtk.ScaleNewWithRange(gtk.ORIENTATION_HORIZONTAL, min, max, step)
		s.SetValue(value)
		s.Connect("value-changed", func(s *gtk.Scale) {
			set(s.GetValue())
			w.settingsChanged()
		})
		box.Add(s)
	}

	scale("zoom", 0.01, 1, 0.01, float64(c.Zoom), func(v float64) { c.Zoom = float32(v) })
	scale("depth", 0, views.ClockMaxDepth, 1, float64(c.Depth), func(v float64) { c.Depth = int(v) })
	scale("start line width", 0, 5, 0.1, float64(c.StartLineWidth), func(v float64) { c.StartLineWidth = float32(v) })
	scale("length factor", 0, 1, 0.01, float64(c.LengthFactor), func(v float64) { c.LengthFactor = float32(v) })
	scale("luminance factor", 0, 1, 0.01, float64(c.LuminanceFactor), func(v float64) { c.LuminanceFactor = float32(v) })
	scale("width factor", 0, 1, 0.01, float64(c.WidthFactor), func(v float64) { c.WidthFactor = float32(v) })

	offset, _ := gtk.SpinButtonNewWithRange(-12*3600, 14*3600, 60)
	offsetLabel, _ := gtk.LabelNew("UTC offset (seconds)")
	offsetLabel.SetXAlign(0)
	offset.SetValue(c.ZoneOffset)
	offset.Connect("value-changed", func(s *gtk.SpinButton) {
		c.ZoneOffset = s.GetValue()
		w.settingsChanged()
	})
	box.Add(offsetLabel)
	box.Add(offset)

	frame.Add(box)
	return frame
}

func (w *ConfigWindow) saveControls() gtk.IWidget {
	frame, _ := gtk.FrameNew("Export")
	grid, _ := gtk.GridNew()
	grid.SetColumnSpacing(6)
	grid.SetRowSpacing(4)

	widthSpin, _ := gtk.SpinButtonNewWithRange(16, 16384, 1)
	widthSpin.SetValue(1920)
	heightSpin, _ := gtk.SpinButtonNewWithRange(16, 16384, 1)
	heightSpin.SetValue(1080)
	antialiasSpin, _ := gtk.SpinButtonNewWithRange(0, 4, 0.1)
	antialiasSpin.SetValue(0.5)

	for row, pair := range []struct {
		label string
		spin  *gtk.SpinButton
	}{
		{"width:", widthSpin},
		{"height:", heightSpin},
		{"antialias:", antialiasSpin},
	} {
		l, _ := gtk.LabelNew(pair.label)
		l.SetXAlign(0)
		grid.Attach(l, 0, row, 1, 1)
		grid.Attach(pair.spin, 1, row, 1, 1)
	}

	button, _ := gtk.ButtonNewWithLabel("Save PNG")
	button.Connect("clicked", func() {
		name, ok := chooseSaveFile(w.ApplicationWindow)
		if !ok {
			return
		}
		opts := SaveOptions{
			Name:      name,
			Width:     widthSpin.GetValueAsInt(),
			Height:    heightSpin.GetValueAsInt(),
			Antialias: float32(antialiasSpin.GetValue()),
		}
		save(w.ctx, w.ApplicationWindow, opts, w.view(), w.settings)
	})
	grid.Attach(button, 0, 3, 2, 1)

	frame.Add(grid)
	return frame
}

func chooseSaveFile(parent *gtk.ApplicationWindow) (string, bool) {
	dialog, err := gtk.FileChooserDialogNewWith2Buttons(
		"Save Image",
		parent,
		gtk.FILE_CHOOSER_ACTION_SAVE,
		"Cancel", gtk.RESPONSE_CANCEL,
		"Save", gtk.RESPONSE_ACCEPT,
	)
	if err != nil {
		log.Println(err)
		return "", false
	}
	defer dialog.Destroy()

	dialog.SetCurrentName("fractal.png")
	dialog.SetDoOverwriteConfirmation(true)

	if dialog.Run() != gtk.RESPONSE_ACCEPT {
		return "", false
	}
	return dialog.GetFilename(), true
}

func (w *ConfigWindow) send(msg interface{}) {
	select {
	case w.sendMessage <- msg:
	case <-w.ctx.Done():
	}
}

func (w *ConfigWindow) serve(listener net.Listener) {
	conn, err := listener.Accept()
	if err != nil {
		w.quit(fmt.Errorf("listener.Accept: %w", err))
		return
	}

	go w.handleReceive(conn)

	enc := gob.NewEncoder(conn)
	for {
		select {
		case msg := <-w.sendMessage:
			if err := enc.Encode(&msg); err != nil {
				w.quit(err)
				return
			}
		case <-w.ctx.Done():
			conn.Close()
			return
		}
	}
}

func (w *ConfigWindow) handleReceive(conn net.Conn) {
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
				w.settings.Julia = msg.Julia
				w.syncJuliaSpins()
			})
		default:
			log.Println("unknown message received", reflect.TypeOf(v))
		}
	}
}
