package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/JackWReid/textedit/internal/buffer"
	"github.com/JackWReid/textedit/internal/config"
	"github.com/JackWReid/textedit/internal/editor"
	"github.com/JackWReid/textedit/internal/layout"
	"github.com/JackWReid/textedit/internal/logutil"
	"github.com/JackWReid/textedit/internal/state"
	"github.com/JackWReid/textedit/internal/terminal"
)

var logger = logutil.GetLogger("[main] ")

func run(cmd *cobra.Command, file string, opts options) error {
	if err := logutil.SetOutputFile(opts.logPath); err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	defer logutil.SetOutputFile("")

	cfg, err := loadConfig(cmd.ErrOrStderr(), opts.configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, &cfg, opts); err != nil {
		return err
	}

	in := os.Stdin
	doc, name, err := openDocument(file, in)
	if err != nil {
		return err
	}
	if name == "[stdin]" {
		tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
		if err != nil {
			return fmt.Errorf("keyboard: %w", err)
		}
		defer tty.Close()
		in = tty
	}

	target := file
	if opts.output != "" {
		target = opts.output
	}
	ed := editor.New(doc, editor.Options{
		Path:      file,
		Name:      name,
		Persister: &buffer.FilePersister{Path: target, TempPattern: "textedit-*.txt"},
		Prefs:     cfg.Preferences(),
	})

	var store *state.Store
	if cfg.RememberCursor && !opts.noState && file != "" {
		store = openState()
		if store != nil {
			defer store.Close()
			restoreCursor(store, ed, file)
		}
	}

	term, err := terminal.Open(in, os.Stdout)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	app := editor.NewApp(ed, layout.NewEngine(cfg.Alignment(), cfg.TabWidth), term, term)
	err = app.Run(ctx)
	term.Restore()
	if err != nil {
		return err
	}

	if store != nil {
		rememberCursor(store, ed, file)
	}
	return nil
}

// loadConfig loads the configuration file and prints its warnings to w.
func loadConfig(w io.Writer, path string) (config.Config, error) {
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			fmt.Fprintf(w, "textedit: warning: %v; using defaults\n", err)
			return config.Default(), nil
		}
	}
	cfg, warnings, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	for _, warning := range warnings {
		fmt.Fprintf(w, "textedit: warning: %v\n", warning)
	}
	return cfg, nil
}

// applyFlags overrides cfg with the flags given on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts options) error {
	flags := cmd.Flags()
	if flags.Changed("halign") {
		if err := cfg.Set("alignment-horizontal", opts.halign); err != nil {
			return fmt.Errorf("--halign: %w", err)
		}
	}
	if flags.Changed("valign") {
		if err := cfg.Set("alignment-vertical", opts.valign); err != nil {
			return fmt.Errorf("--valign: %w", err)
		}
	}
	if flags.Changed("tab-width") {
		if err := cfg.Set("tab-width", fmt.Sprint(opts.tabWidth)); err != nil {
			return fmt.Errorf("--tab-width: %w", err)
		}
	}
	return nil
}

// openDocument returns the initial document and the header name used while it
// has no file. Without a file, piped stdin is read to EOF.
func openDocument(file string, stdin *os.File) (*buffer.Buffer, string, error) {
	if file != "" {
		doc, exists, err := buffer.Load(file)
		if err != nil {
			return nil, "", err
		}
		if !exists {
			logger.Printf("%s does not exist, starting empty", file)
		}
		return doc, "", nil
	}
	if !isatty.IsTerminal(stdin.Fd()) && !isatty.IsCygwinTerminal(stdin.Fd()) {
		doc, err := buffer.Read(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("stdin: %w", err)
		}
		return doc, "[stdin]", nil
	}
	return buffer.New(), "[unnamed]", nil
}

func openState() *state.Store {
	path, err := state.DefaultPath()
	if err != nil {
		logger.Printf("state: %v", err)
		return nil
	}
	store, err := state.Open(path)
	if err != nil {
		logger.Printf("state: %v", err)
		return nil
	}
	return store
}

func restoreCursor(store *state.Store, ed *editor.Editor, file string) {
	line, col, err := store.Cursor(file)
	if errors.Is(err, state.ErrNoPosition) {
		return
	}
	if err != nil {
		logger.Printf("restore cursor: %v", err)
		return
	}
	ed.SetCursor(line, col)
}

// rememberCursor stores the cursor position of a clean document and drops the
// stored position of one left with unsaved changes.
func rememberCursor(store *state.Store, ed *editor.Editor, file string) {
	if ed.Document().Dirty {
		if err := store.ForgetCursor(file); err != nil {
			logger.Printf("forget cursor: %v", err)
		}
		return
	}
	c := ed.Cursor()
	if err := store.SetCursor(file, c.Line, c.Col); err != nil {
		logger.Printf("remember cursor: %v", err)
	}
}
