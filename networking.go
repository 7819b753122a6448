package main

import (
	"context"
	"net"
)

// NewPipeListener connects the config and render windows in-process; the
// render window gets the client end, the config window accepts the other.
func NewPipeListener(ctx context.Context) (client net.Conn, listener net.Listener) {
	clientPipe, listenerPipe := net.Pipe()
	return clientPipe, &pipeListener{
		pipe: listenerPipe,
		done: ctx.Done(),
	}
}

type pipeListener struct {
	pipe     net.Conn
	done     <-chan struct{}
	accepted bool
}

func (p *pipeListener) Accept() (net.Conn, error) {
	if !p.accepted {
		p.accepted = true
		return p.pipe, nil
	}
	<-p.done
	return nil, net.ErrClosed
}

func (p *pipeListener) Close() error {
	return p.pipe.Close()
}

func (p *pipeListener) Addr() net.Addr {
	return p.pipe.LocalAddr()
}
