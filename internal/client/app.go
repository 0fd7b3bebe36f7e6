package client

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/MKhiriev/ontime/internal/adapter"
	"github.com/MKhiriev/ontime/internal/logger"
	"github.com/atotto/clipboard"
)

type App struct {
	adapter adapter.ServerAdapter
	out     io.Writer

	// copyToClipboard is swapped in tests.
	copyToClipboard func(string) error

	commands map[string]command
	logger   *logger.Logger
}

// command is one subcommand. args excludes the command name.
type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

func NewApp(serverAdapter adapter.ServerAdapter, out io.Writer, logger *logger.Logger) *App {
	app := &App{
		adapter:         serverAdapter,
		out:             out,
		copyToClipboard: clipboard.WriteAll,
		logger:          logger,
	}
	app.commands = app.registerCommands()
	return app
}

// Run executes args[0] with the remaining arguments.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrNoCommand
	}

	name := args[0]
	cmd, ok := a.commands[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownCommand, name)
	}

	a.logger.Debug().Str("command", name).Int("args", len(args)-1).Msg("running command")

	if err := cmd.run(ctx, args[1:]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Usage writes the list of commands.
func (a *App) Usage(w io.Writer) {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("commands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s %s\n", name, a.commands[name].usage)
	}
	io.WriteString(w, b.String())
}
