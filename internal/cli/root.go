// Package cli wires configuration, storage and the thumbnail pipeline into
// the tabgrid command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/cli/browser"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/tabgrid/internal/imaging"
	"github.com/nikbrunner/tabgrid/internal/logging"
	"github.com/nikbrunner/tabgrid/internal/model"
	"github.com/nikbrunner/tabgrid/internal/picker"
	"github.com/nikbrunner/tabgrid/internal/search"
	"github.com/nikbrunner/tabgrid/internal/session"
	"github.com/nikbrunner/tabgrid/internal/storage"
	"github.com/nikbrunner/tabgrid/internal/tui"
)

// Options holds the process-level dependencies of the command tree.
// Zero fields fall back to the real terminal, browser and network.
type Options struct {
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	Open       func(url string) error
	Pick       func(results []search.SearchResult, query string) (*model.Bookmark, error)
	RunTUI     func(params tui.AppParams) error
	HTTPClient *http.Client
}

// env is what every command needs once config has been read.
type env struct {
	cfg     *storage.Config
	log     zerolog.Logger
	store   storage.Storage
	session *session.Session
	images  *imaging.Pipeline
	search  *search.Delegator
	closers []io.Closer
}

type app struct {
	opts       Options
	configPath string
	logLevel   string
	env        *env
}

// Execute runs the command line in args and releases everything it opened.
func Execute(ctx context.Context, args []string, opts Options) error {
	a := newApp(opts)
	root := a.rootCmd()
	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	root.SetArgs(args)
	defer a.close()
	return root.ExecuteContext(ctx)
}

func newApp(opts Options) *app {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Open == nil {
		opts.Open = browser.OpenURL
	}
	if opts.Pick == nil {
		opts.Pick = picker.Run
	}
	if opts.RunTUI == nil {
		opts.RunTUI = tui.Run
	}
	return &app{opts: opts}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tabgrid [query...]",
		Short: "A visual bookmark grid for the terminal",
		Long: `tabgrid keeps bookmarks as a grid of thumbnail cards.

Run without arguments to open the interactive grid. With a query it
fuzzy-matches bookmark titles and opens the pick in your browser.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The TUI owns the terminal, so it logs to a file
			interactive := cmd == cmd.Root() && len(args) == 0
			return a.setup(interactive)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return a.openQuery(cmd, strings.Join(args, " "))
			}
			return a.runTUI(cmd)
		},
	}

	root.SetIn(a.opts.Stdin)
	root.SetOut(a.opts.Stdout)
	root.SetErr(a.opts.Stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default is $TABGRID_HOME/config.json)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(
		a.addCmd(),
		a.listCmd(),
		a.removeCmd(),
		a.columnsCmd(),
		a.searchCmd(),
		a.openCmd(),
		a.importCmd(),
		a.exportCmd(),
		a.refreshCmd(),
	)
	return root
}

// setup loads config and opens logging, storage and the session.
func (a *app) setup(interactive bool) error {
	path := a.configPath
	if path == "" {
		var err error
		if path, err = storage.DefaultConfigFilePath(); err != nil {
			return fmt.Errorf("config path: %w", err)
		}
	}
	cfg, err := storage.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}

	e := &env{cfg: cfg}

	if interactive {
		level := cfg.LogLevel
		if a.logLevel != "" {
			level = a.logLevel
		}
		logPath, err := storage.DefaultLogPath()
		if err != nil {
			return err
		}
		logger, closer, err := logging.NewFile(logPath, level)
		if err != nil {
			return fmt.Errorf("open log %s: %w", logPath, err)
		}
		e.log = logger
		e.closers = append(e.closers, closer)
	} else {
		// One-shot commands stay quiet unless asked
		level := "warn"
		if a.logLevel != "" {
			level = a.logLevel
		}
		e.log = logging.New(a.opts.Stderr, level, true)
	}

	st, err := storage.OpenStorage(cfg)
	if err != nil {
		e.log.Error().Err(err).Str("backend", cfg.Backend).Msg("storage unavailable, continuing with defaults")
		st = storage.Unavailable(fmt.Errorf("open storage: %w", err))
	}
	if p, ok := st.(interface{ Path() string }); ok {
		e.log.Debug().Str("backend", cfg.Backend).Str("path", p.Path()).Msg("storage opened")
	}
	if c, ok := st.(io.Closer); ok {
		e.closers = append(e.closers, c)
	}
	e.store = st
	e.session = session.Open(st, e.log)

	client := a.opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.HTTPTimeout()}
	}
	e.images = imaging.New(imaging.Options{
		Client:           client,
		MaxSize:          cfg.MaxImageSize,
		Quality:          cfg.JPEGQuality,
		FaviconEndpoint:  cfg.FaviconEndpoint,
		FaviconSize:      cfg.FaviconSize,
		MaxDownloadBytes: cfg.MaxDownloadBytes,
		Logger:           e.log,
	})
	e.search = search.NewDelegator(cfg.SearchURL, a.opts.Open, e.log)

	e.log.Debug().Str("config", path).Str("backend", cfg.Backend).Msg("environment ready")
	a.env = e
	return nil
}

func (a *app) close() {
	if a.env == nil {
		return
	}
	var errs []error
	for i := len(a.env.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.env.closers[i].Close())
	}
	if err := errors.Join(errs...); err != nil {
		fmt.Fprintf(a.opts.Stderr, "Error closing: %v\n", err)
	}
}

func (a *app) runTUI(cmd *cobra.Command) error {
	return a.opts.RunTUI(tui.AppParams{
		Context: cmd.Context(),
		Session: a.env.session,
		Images:  a.env.images,
		Search:  a.env.search,
		Open:    a.opts.Open,
		Logger:  a.env.log,
	})
}
