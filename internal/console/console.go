// Package console implements the operator fire-control console: a line
// oriented read-eval-print loop driving a single ship.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/gt4500/internal/frontend/telnet"
	"github.com/cory-johannsen/gt4500/internal/game/command"
	"github.com/cory-johannsen/gt4500/internal/game/ship"
	"github.com/cory-johannsen/gt4500/internal/game/weapon"
)

const (
	defaultPrompt   = "gt4500> "
	defaultLogLimit = 10
	maxLogLimit     = 100
)

// LineConn is the operator terminal the console talks to.
type LineConn interface {
	ReadLine() (string, error)
	WriteLine(text string) error
	WritePrompt(prompt string) error
}

// History lists journaled fire requests, newest first.
type History interface {
	Recent(ctx context.Context, limit int) ([]ship.FireRecord, error)
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithHistory enables the log command.
func WithHistory(hist History) Option {
	return func(h *Handler) { h.history = hist }
}

// WithPrompt replaces the input prompt.
func WithPrompt(prompt string) Option {
	return func(h *Handler) { h.prompt = prompt }
}

// Handler runs console sessions against one ship. A Handler may serve
// many sessions at once; the ship serialises their fire requests.
type Handler struct {
	ship     *ship.Ship
	registry *command.Registry
	history  History
	logger   *zap.Logger
	prompt   string
}

// NewHandler returns a Handler for s.
//
// Precondition: s must be non-nil.
func NewHandler(s *ship.Ship, opts ...Option) *Handler {
	if s == nil {
		panic("console: NewHandler: ship must be non-nil")
	}
	h := &Handler{
		ship:     s,
		registry: command.DefaultRegistry(),
		logger:   zap.NewNop(),
		prompt:   defaultPrompt,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleSession runs a console session on a Telnet connection.
func (h *Handler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	return h.Run(ctx, conn)
}

// errQuit ends a session at the operator's request.
var errQuit = errors.New("quit")

// Run reads and executes commands from conn until the operator quits, the
// input ends, or ctx is cancelled. Quit and end of input return nil.
func (h *Handler) Run(ctx context.Context, conn LineConn) error {
	st := h.ship.Status()
	if err := conn.WriteLine(fmt.Sprintf("%s fire control online. Type 'help' for commands.", st.Class)); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := conn.WritePrompt(h.prompt); err != nil {
			return err
		}

		line, rerr := conn.ReadLine()
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			return fmt.Errorf("reading input: %w", rerr)
		}

		if line != "" {
			err := h.Execute(ctx, conn, line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				return err
			}
		}

		if rerr != nil {
			_ = conn.WriteLine("")
			return nil
		}
	}
}

// Execute runs a single command line. Write failures are returned; command
// failures are reported to the operator.
func (h *Handler) Execute(ctx context.Context, conn LineConn, line string) error {
	parsed := command.Parse(line)
	if parsed.Command == "" {
		return nil
	}
	cmd, ok := h.registry.Resolve(parsed.Command)
	if !ok {
		return conn.WriteLine(fmt.Sprintf("Unknown command %q. Type 'help' for commands.", parsed.Command))
	}

	switch cmd.Handler {
	case command.HandlerFire:
		return h.fire(ctx, conn, parsed)
	case command.HandlerStatus:
		return h.status(conn)
	case command.HandlerReload:
		n := h.ship.Reload()
		return conn.WriteLine(fmt.Sprintf("Reloaded %d stores.", n))
	case command.HandlerLog:
		return h.log(ctx, conn, parsed)
	case command.HandlerHelp:
		return h.help(conn)
	case command.HandlerQuit:
		if err := conn.WriteLine("Fire control offline."); err != nil {
			return err
		}
		return errQuit
	default:
		return conn.WriteLine(fmt.Sprintf("Command %q is not available here.", cmd.Name))
	}
}

func (h *Handler) fire(ctx context.Context, conn LineConn, parsed command.ParseResult) error {
	mode := weapon.FiringModeSingle
	if arg := parsed.Arg(0); arg != "" {
		m, err := weapon.ParseFiringMode(arg)
		if err != nil {
			return conn.WriteLine("Usage: fire [single|all]")
		}
		mode = m
	}

	fired, err := h.ship.FireTorpedo(ctx, mode)
	return conn.WriteLine(FormatResult(mode, fired, err))
}

// FormatResult renders the outcome of one fire request for an operator.
func FormatResult(mode weapon.FiringMode, fired bool, err error) string {
	var fce *weapon.FireCountError
	switch {
	case errors.As(err, &fce):
		return fmt.Sprintf("fire %s: rejected, requested %d torpedoes with %d loaded", mode, fce.Requested, fce.Available)
	case err != nil:
		return fmt.Sprintf("fire %s: error: %v", mode, err)
	case fired:
		return fmt.Sprintf("fire %s: torpedoes away", mode)
	default:
		return fmt.Sprintf("fire %s: no fire", mode)
	}
}

func (h *Handler) status(conn LineConn) error {
	st := h.ship.Status()
	lines := []string{
		fmt.Sprintf("Ship class: %s", st.Class),
		fmt.Sprintf("  %-9s %3d/%d", st.Primary.Role, st.Primary.Count, st.Primary.Capacity),
		fmt.Sprintf("  %-9s %3d/%d", st.Secondary.Role, st.Secondary.Count, st.Secondary.Capacity),
		fmt.Sprintf("  next single shot tries %s", st.Preference),
	}
	for _, l := range lines {
		if err := conn.WriteLine(l); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) log(ctx context.Context, conn LineConn, parsed command.ParseResult) error {
	if h.history == nil {
		return conn.WriteLine("The fire journal is disabled.")
	}
	limit := defaultLogLimit
	if arg := parsed.Arg(0); arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > maxLogLimit {
			return conn.WriteLine(fmt.Sprintf("Usage: log [1-%d]", maxLogLimit))
		}
		limit = n
	}

	recs, err := h.history.Recent(ctx, limit)
	if err != nil {
		h.logger.Warn("listing fire journal", zap.Error(err))
		return conn.WriteLine("The fire journal is unavailable.")
	}
	if len(recs) == 0 {
		return conn.WriteLine("No fire requests journaled.")
	}
	for _, r := range recs {
		outcome := "no fire"
		switch {
		case r.Error != "":
			outcome = "rejected"
		case r.Fired:
			outcome = "fired"
		}
		line := fmt.Sprintf("%s  %-6s %-8s %s", r.CreatedAt.Format("2006-01-02 15:04:05"), r.Mode, outcome, r.ShipClass)
		if err := conn.WriteLine(line); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) help(conn LineConn) error {
	if err := conn.WriteLine("Available commands:"); err != nil {
		return err
	}
	for _, cmd := range h.registry.Commands() {
		if cmd.Handler == command.HandlerLog && h.history == nil {
			continue
		}
		aliases := ""
		if len(cmd.Aliases) > 0 {
			aliases = " (" + strings.Join(cmd.Aliases, ", ") + ")"
		}
		if err := conn.WriteLine(fmt.Sprintf("  %-18s %s%s", cmd.Usage, cmd.Help, aliases)); err != nil {
			return err
		}
	}
	return nil
}
