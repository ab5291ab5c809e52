// Package telnet serves the fire-control console to remote Telnet clients.
package telnet

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/gt4500/internal/config"
)

// SessionHandler runs the console for one connected client. It returns when
// the client quits, the connection fails, or ctx is cancelled.
type SessionHandler interface {
	HandleSession(ctx context.Context, conn *Conn) error
}

// SessionHandlerFunc adapts a function to SessionHandler.
type SessionHandlerFunc func(ctx context.Context, conn *Conn) error

// HandleSession calls f(ctx, conn).
func (f SessionHandlerFunc) HandleSession(ctx context.Context, conn *Conn) error {
	return f(ctx, conn)
}

// Acceptor accepts Telnet clients and runs a SessionHandler for each.
type Acceptor struct {
	cfg     config.TelnetConfig
	handler SessionHandler
	logger  *zap.Logger

	mu       sync.Mutex
	listener net.Listener
	cancel   context.CancelFunc
	conns    map[*Conn]struct{}

	wg       sync.WaitGroup
	sessions atomic.Int64
}

// NewAcceptor creates an Acceptor for cfg.Addr().
//
// Precondition: handler and logger must be non-nil.
func NewAcceptor(cfg config.TelnetConfig, handler SessionHandler, logger *zap.Logger) *Acceptor {
	return &Acceptor{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
		conns:   make(map[*Conn]struct{}),
	}
}

// ListenAndServe listens on the configured address and serves clients until
// Stop is called. It returns nil after a Stop.
func (a *Acceptor) ListenAndServe() error {
	ln, err := net.Listen("tcp", a.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", a.cfg.Addr(), err)
	}
	return a.Serve(ln)
}

// Serve accepts clients on ln until Stop is called.
//
// Precondition: the Acceptor has not been started before.
func (a *Acceptor) Serve(ln net.Listener) error {
	ctx, cancel := context.WithCancel(context.Background())
	a.mu.Lock()
	if a.conns == nil {
		a.mu.Unlock()
		cancel()
		_ = ln.Close()
		return nil
	}
	if a.listener != nil {
		a.mu.Unlock()
		cancel()
		return errors.New("telnet: acceptor already started")
	}
	a.listener = ln
	a.cancel = cancel
	a.mu.Unlock()

	a.logger.Info("telnet console listening", zap.String("addr", ln.Addr().String()))

	for {
		raw, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			return fmt.Errorf("accepting connection: %w", err)
		}
		a.wg.Add(1)
		go a.serveConn(ctx, raw)
	}
}

func (a *Acceptor) serveConn(ctx context.Context, raw net.Conn) {
	defer a.wg.Done()
	start := time.Now()
	remote := raw.RemoteAddr().String()

	conn := NewConn(raw, a.cfg.ReadTimeout, a.cfg.WriteTimeout)
	if !a.track(conn) {
		_ = conn.Close()
		return
	}
	defer a.untrack(conn)

	a.sessions.Add(1)
	defer a.sessions.Add(-1)
	a.logger.Info("console client connected", zap.String("remote_addr", remote))

	if err := conn.Negotiate(); err != nil {
		a.logger.Warn("telnet negotiation failed", zap.String("remote_addr", remote), zap.Error(err))
		return
	}

	err := a.handler.HandleSession(ctx, conn)
	a.logger.Info("console client disconnected",
		zap.String("remote_addr", remote),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err),
	)
}

// track registers conn for forced close on Stop. It reports false once
// the acceptor is stopping.
func (a *Acceptor) track(conn *Conn) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.conns == nil {
		return false
	}
	a.conns[conn] = struct{}{}
	return true
}

func (a *Acceptor) untrack(conn *Conn) {
	a.mu.Lock()
	if a.conns != nil {
		delete(a.conns, conn)
	}
	a.mu.Unlock()
	_ = conn.Close()
}

// Stop closes the listener and every open session, then waits for the
// session goroutines to exit. Stop is idempotent.
func (a *Acceptor) Stop() {
	a.mu.Lock()
	if a.conns == nil {
		a.mu.Unlock()
		return
	}
	if a.cancel != nil {
		a.cancel()
	}
	if a.listener != nil {
		_ = a.listener.Close()
	}
	for c := range a.conns {
		_ = c.Close()
	}
	a.conns = nil
	a.mu.Unlock()

	a.wg.Wait()
	a.logger.Info("telnet console stopped")
}

// Addr returns the listening address, or "" before Serve has started.
func (a *Acceptor) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener == nil {
		return ""
	}
	return a.listener.Addr().String()
}

// Sessions returns the number of connected clients.
func (a *Acceptor) Sessions() int {
	return int(a.sessions.Load())
}
