package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/finfree/internal/calculation"
	"github.com/rgehrsitz/finfree/internal/config"
	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/rgehrsitz/finfree/internal/output"
	"github.com/rgehrsitz/finfree/internal/store"
	"github.com/rgehrsitz/finfree/internal/tracker"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cli carries the global flags and everything built from them before a command runs
type cli struct {
	stateFile    string
	settingsFile string
	format       string
	logLevel     string
	currency     string
	debug        bool

	settings *config.Settings
	logger   *logrus.Logger
	engine   *calculation.CalculationEngine
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "finfree",
		Short: "Financial freedom tracker CLI",
		Long: "Track assets, liabilities, income, expenses, insurance and goals, and project\n" +
			"how long your wealth lasts and when you reach financial freedom.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd.ErrOrStderr())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.stateFile, "state", "", "State file to use instead of the configured store")
	pf.StringVar(&c.settingsFile, "settings", "", "Settings file (default finfree-settings.yaml)")
	pf.StringVarP(&c.format, "format", "f", "console", "Output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	pf.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&c.currency, "currency", "", "ISO 4217 currency code for reports")
	pf.BoolVar(&c.debug, "debug", false, "Enable debug logging of calculations")

	root.AddCommand(
		c.summaryCmd(),
		c.ffCmd(),
		c.healthCmd(),
		c.riskCmd(),
		c.goalsCmd(),
		c.compareCmd(),
		c.sensitivityCmd(),
		c.solveCmd(),
		c.ledgerCmd(),
		c.validateCmd(),
		c.initCmd(),
		c.serveCmd(),
		versionCmd(),
	)
	return root
}

// setup loads settings, applies flag overrides and builds the logger and engine
func (c *cli) setup(logOut io.Writer) error {
	settings, err := config.LoadSettings(c.settingsFile)
	if err != nil {
		return err
	}
	if c.stateFile != "" {
		settings.Store.Driver = config.StoreFile
		settings.Store.Path = c.stateFile
	}
	if c.logLevel != "" {
		settings.LogLevel = c.logLevel
	}
	if c.debug {
		settings.LogLevel = "debug"
	}
	if c.currency != "" {
		settings.Currency = strings.ToUpper(c.currency)
	}

	logger, err := newLogger(settings, logOut)
	if err != nil {
		return err
	}

	engine := calculation.NewCalculationEngine()
	engine.Debug = c.debug
	engine.SetLogger(logger)

	c.settings = settings
	c.logger = logger
	c.engine = engine
	return nil
}

func newLogger(settings *config.Settings, out io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)

	level, err := logrus.ParseLevel(settings.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(level)

	if settings.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return logger, nil
}

// openTracker opens the configured store. The returned func closes it.
func (c *cli) openTracker(ctx context.Context) (*tracker.Tracker, func(), error) {
	st, err := store.New(c.settings.Store)
	if err != nil {
		return nil, nil, err
	}
	tr, err := tracker.Open(ctx, st, c.engine)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	closer := func() {
		if err := st.Close(); err != nil {
			c.logger.Warnf("failed to close store: %v", err)
		}
	}
	return tr, closer, nil
}

// loadState returns a recomputed state, read from the ledger file in args when one is
// given and from the configured store otherwise
func (c *cli) loadState(ctx context.Context, args []string) (*domain.AppState, error) {
	if len(args) > 0 {
		state, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return nil, err
		}
		summary, err := c.engine.RecomputeState(state)
		if err != nil {
			return nil, fmt.Errorf("failed to compute summary: %w", err)
		}
		state.Summary = summary
		return state, nil
	}

	tr, closeStore, err := c.openTracker(ctx)
	if err != nil {
		return nil, err
	}
	defer closeStore()
	return tr.State(), nil
}

// render writes the full report for state in the selected format
func (c *cli) render(w io.Writer, state *domain.AppState) error {
	f := output.GetFormatterByName(c.format)
	if f == nil {
		return fmt.Errorf("unknown format %q (available: %s; aliases: %s)", c.format,
			strings.Join(output.AvailableFormatterNames(), ", "),
			strings.Join(output.AvailableFormatAliases(), ", "))
	}
	report, err := output.NewReport(state, c.settings.Currency)
	if err != nil {
		return err
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (c *cli) money(amount decimal.Decimal) string {
	return output.FormatCurrency(amount, c.settings.Currency)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// version needs no settings
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "finfree %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Fatal("finfree failed")
	}
}
