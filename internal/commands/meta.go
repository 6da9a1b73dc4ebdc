// Package commands implements the xqr CLI subcommands. Every command
// embeds Meta, which carries the terminal UI, the session store and the
// loaded configuration, so commands stay testable with a mock UI and an
// in-memory store.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/hashicorp/cli"

	"xqr/editor"
	"xqr/internal/config"
	"xqr/internal/session"
	"xqr/internal/storage/db"
)

// errNoFile marks the absence of a loaded session file, as opposed to a
// session that points at a file we can no longer open.
var errNoFile = errors.New("no file loaded")

// Meta is the shared state embedded in every command.
type Meta struct {
	Ui     cli.Ui
	Store  session.Store
	Config config.Config
}

// NewStore builds the session store selected by the configuration. The
// postgres backend falls back to file storage when the database is
// unreachable, so the CLI keeps working offline.
func NewStore(ctx context.Context, cfg config.Config) (session.Store, error) {
	switch cfg.StateBackend {
	case "postgres":
		database, err := db.Connect(ctx, cfg.DatabaseURL, db.DefaultCLIOptions())
		if err == nil {
			if err = db.RunMigrations(ctx, database); err == nil {
				return session.NewPGStore(database), nil
			}
		}
		log.Printf("postgres session store unavailable, falling back to file store: %v", err)
	case "memory":
		return session.NewMemoryStore(), nil
	}
	return session.NewFileStore(cfg.StateDir)
}

// flagSet returns a flag set that reports errors through the command's
// own usage output instead of the default stderr printer.
func (m *Meta) flagSet(name string) *flag.FlagSet {
	f := flag.NewFlagSet(name, flag.ContinueOnError)
	f.SetOutput(io.Discard)
	return f
}

func (m *Meta) successf(format string, args ...any) {
	m.Ui.Output(color.GreenString("✅ "+format, args...))
}

func (m *Meta) failf(format string, args ...any) {
	m.Ui.Error(color.RedString("❌ "+format, args...))
}

func (m *Meta) warnf(format string, args ...any) {
	m.Ui.Warn(color.YellowString("⚠️  "+format, args...))
}

// currentEditor opens the file recorded in the session. A session that
// points at a file which disappeared or no longer parses is cleared, so
// the next invocation starts from a clean slate.
func (m *Meta) currentEditor(ctx context.Context) (*editor.Editor, error) {
	state, err := m.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if state.CurrentFile == "" {
		return nil, errNoFile
	}
	if _, err := os.Stat(state.CurrentFile); err != nil {
		_ = m.Store.Clear(ctx)
		return nil, errNoFile
	}
	ed, err := editor.Open(state.CurrentFile)
	if err != nil {
		_ = m.Store.Clear(ctx)
		return nil, fmt.Errorf("could not load previous file %s: %w", state.CurrentFile, err)
	}
	return ed, nil
}

// requireEditor is currentEditor plus the standard complaint when no
// file is loaded. The bool reports whether an editor is available.
func (m *Meta) requireEditor(ctx context.Context) (*editor.Editor, bool) {
	ed, err := m.currentEditor(ctx)
	if err != nil {
		if errors.Is(err, errNoFile) {
			m.failf("No file loaded. Use 'load' command first.")
		} else {
			m.warnf("%s", err)
		}
		return nil, false
	}
	return ed, true
}
