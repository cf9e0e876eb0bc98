// Package cli wires the cobra command tree: the interactive TUI on the root
// command plus non-interactive record, auth and serve subcommands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/crudadmin/internal/api"
	"github.com/idilsaglam/crudadmin/internal/auth"
	"github.com/idilsaglam/crudadmin/internal/config"
	"github.com/idilsaglam/crudadmin/internal/errfmt"
	"github.com/idilsaglam/crudadmin/internal/logging"
	"github.com/idilsaglam/crudadmin/internal/model"
	"github.com/idilsaglam/crudadmin/internal/route"
	"github.com/idilsaglam/crudadmin/internal/tui"
	"github.com/idilsaglam/crudadmin/internal/ui"
)

// logToStderr marks commands whose logs belong on stderr instead of the log file.
const logToStderr = "log-stderr"

// app is the state shared by every command of one invocation.
type app struct {
	configPath string
	verbose    bool
	startRoute string

	cfg     *config.Config
	cfgPath string // resolved --config
	creds   *auth.Store
	logger *zap.Logger
	client *api.Client
}

// usageError marks bad invocations; they exit with code 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// usageArgs turns positional argument failures into usage errors.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// Run executes the command line and returns the process exit code:
// 0 ok, 1 runtime error, 2 usage error.
func Run(args []string) int {
	return run(context.Background(), args, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if err == nil {
		return 0
	}
	ui.Fail(stderr, errfmt.Format(err))
	var uerr usageError
	if errors.As(err, &uerr) {
		fmt.Fprintln(stderr, ui.Dim("Run 'crudadmin --help' for usage."))
		return 2
	}
	return 1
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "crudadmin",
		Short: "Admin console for posts and tags",
		Long: `crudadmin manages the posts and tags of a REST backend.

Without a subcommand it opens the interactive console on --route
(default "/", the dashboard). Subcommands print or change records
directly, manage the API token, or run a development backend.`,
		Args:              usageArgs(cobra.NoArgs),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runTUI,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.config/crudadmin/config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	root.Flags().StringVar(&a.startRoute, "route", "/", "route to open, e.g. /post or /post/42")

	root.AddCommand(
		a.lsCmd(),
		a.getCmd(),
		a.addCmd(),
		a.editCmd(),
		a.rmCmd(),
		a.authCmd(),
		a.serveCmd(),
		a.configCmd(),
	)
	return root
}

// setup loads configuration and builds the logger and API client.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path := a.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	a.cfg, a.cfgPath = cfg, path
	ui.SetTheme(cfg.UI.Theme)

	opt := logging.Options{Level: cfg.Logging.Level, Verbose: a.verbose}
	if cmd.Annotations[logToStderr] == "" {
		// the TUI owns the terminal and record commands print tables
		if opt.File, err = cfg.LogFile(); err != nil {
			return err
		}
	}
	if a.logger, err = logging.New(opt); err != nil {
		return err
	}

	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return err
	}
	opts := []api.Option{api.WithTimeout(timeout), api.WithLogger(a.logger)}
	if a.creds, err = auth.NewStore(cfg.API.CredentialsDir); err != nil {
		return err
	}
	tok, err := a.creds.Load()
	if err != nil {
		a.logger.Warn("ignoring unreadable credentials", zap.Error(err))
	} else if tok != nil {
		opts = append(opts, api.WithToken(tok.Token))
	}
	a.client = api.NewClient(cfg.API.BaseURL, opts...)

	a.logger.Debug("configured",
		zap.String("command", cmd.CommandPath()),
		zap.String("config", path),
		zap.String("api", cfg.API.BaseURL),
	)
	return nil
}

func (a *app) services() []tui.RecordService {
	var out []tui.RecordService
	for _, k := range model.Kinds() {
		out = append(out, a.client.Service(k))
	}
	return out
}

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	start, err := route.Parse(a.startRoute)
	if err != nil {
		return usageError{err}
	}
	a.logger.Info("starting console", zap.String("route", start.String()))
	return tui.Run(cmd.Context(), tui.Options{
		Services: a.services(),
		Start:    start,
		Logger:   a.logger,
	})
}

// kindArg resolves a positional kind argument.
func kindArg(name string) (model.Kind, error) {
	k, ok := model.LookupKind(name)
	if !ok {
		return model.Kind{}, usagef("unknown kind %q (want post or tag)", name)
	}
	return k, nil
}
