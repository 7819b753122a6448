package main

import (
	"context"
	"encoding/gob"
	"errors"
	"net"
	"testing"

	"github.com/stewi1014/fractals/views"
)

func TestPipeListenerRoundTrip(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, listener := NewPipeListener(ctx)

	sent := views.DefaultSettings()
	sent.Depth = 4
	sent.Julia.Zoom = 7

	go func() {
		enc := gob.NewEncoder(client)
		if err := enc.Encode(&sent); err != nil {
			t.Error(err)
		}
	}()

	conn, err := listener.Accept()
	if err != nil {
		t.Fatal(err)
	}

	var got views.Settings
	if err := gob.NewDecoder(conn).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got != sent {
		t.Fatalf("received %+v, want %+v", got, sent)
	}
}

func TestPipeListenerAcceptsOnce(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	_, listener := NewPipeListener(ctx)
	if _, err := listener.Accept(); err != nil {
		t.Fatal(err)
	}

	cancel()
	if _, err := listener.Accept(); !errors.Is(err, net.ErrClosed) {
		t.Fatalf("second Accept = %v, want net.ErrClosed", err)
	}
}
