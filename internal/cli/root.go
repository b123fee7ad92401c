package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dschema/internal/clipboard"
	"dschema/internal/config"
	"dschema/internal/domain"
	"dschema/internal/eventbus"
	"dschema/internal/logging"
	"dschema/internal/metrics"
	"dschema/internal/selection"
	"dschema/internal/ui"
	"dschema/internal/urlservice"
)

// exitError carries a process exit code up to Execute
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// options holds flags shared by every command
type options struct {
	configPath    string
	serviceURL    string
	logLevel      string
	logFile       string
	metricsListen string
}

// load reads the config file and applies flags given on the command line
func (o *options) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("service-url") {
		cfg.Service.BaseURL = o.serviceURL
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = o.logFile
	}
	if flags.Changed("metrics-listen") {
		cfg.Metrics.Listen = o.metricsListen
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Execute runs the command tree and returns the process exit code
func Execute(version string) int {
	cmd := newRootCmd(version)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		return 1
	}
	return 0
}

func newRootCmd(version string) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "dschema",
		Short:         "Pick your group and courses and get a calendar subscription link",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg)
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate("dschema {{.Version}}\n")

	pflags := cmd.PersistentFlags()
	pflags.StringVar(&opts.configPath, "config", config.DefaultPath(), "Path to the TOML config file")
	pflags.StringVar(&opts.serviceURL, "service-url", "", "Base URL of the calendar link service")
	pflags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pflags.StringVar(&opts.logFile, "log-file", "", "Log file for the interactive UI")
	cmd.Flags().StringVar(&opts.metricsListen, "metrics-listen", "", "Serve prometheus metrics on this address")

	cmd.AddCommand(
		newURLCmd(opts),
		newMockServerCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(version),
	)
	return cmd
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dschema %s\n", version)
		},
	}
}

func runTUI(ctx context.Context, cfg config.Config) error {
	logCloser, err := logging.Setup(cfg.Log)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	timeout, err := cfg.Service.RequestTimeout()
	if err != nil {
		return err
	}
	courses, err := domain.CoursesByValue(cfg.Selection.Courses)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bus := eventbus.New()
	defer bus.Close()

	recorder := metrics.New()
	unsubscribe := recorder.Subscribe(bus)
	defer unsubscribe()
	if cfg.Metrics.Listen != "" {
		go func() {
			if err := recorder.Serve(ctx, cfg.Metrics.Listen); err != nil {
				log.WithError(err).Error("metrics listener stopped")
			}
		}()
	}

	var fallback io.Writer
	if cfg.Clipboard.OSC52 {
		fallback = os.Stderr
	}

	model := ui.NewModel(ui.Deps{
		Store:     selection.NewStore(courses),
		Client:    urlservice.NewHTTPClient(cfg.Service.BaseURL, timeout),
		Clipboard: clipboard.New(fallback),
		Bus:       bus,
		Timeout:   timeout,
	})

	log.WithField("service", cfg.Service.BaseURL).Info("starting UI")
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.WithError(err).Error("program exited with error")
		return fmt.Errorf("error running program: %w", err)
	}
	log.Info("UI exited normally")
	return nil
}
