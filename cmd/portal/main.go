package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/kirillkom/customs-intake/internal/adapters/console"
	"github.com/kirillkom/customs-intake/internal/bootstrap"
	"github.com/kirillkom/customs-intake/internal/config"
	"github.com/kirillkom/customs-intake/internal/core/domain"
	"github.com/kirillkom/customs-intake/internal/observability/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "portal:", err)
		stop()
		os.Exit(exitCode(err))
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "portal",
		Usage: "Customs declaration intake and review",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML file applied on top of the environment",
				EnvVars: []string{"PORTAL_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
		},
		Commands: []*cli.Command{
			declareCommand,
			dashboardCommand,
			riskCommand,
			verificationsCommand,
			controlsCommand,
			bucketCommand,
		},
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// exitCode maps error kinds to process exit codes.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case domain.IsKind(err, domain.ErrInvalidInput), domain.IsKind(err, domain.ErrInvalidTransition):
		return 2
	case domain.IsKind(err, domain.ErrNotFound):
		return 3
	case domain.IsKind(err, domain.ErrTemporary):
		return 4
	default:
		return 1
	}
}

func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.LoadFile(c.String("config"))
	if err != nil {
		return config.Config{}, domain.WrapError(domain.ErrInvalidInput, "load config", err)
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	slog.SetDefault(logging.NewLogger(cfg.ServiceName, cfg.LogLevel, cfg.LogFormat))
	return cfg, nil
}

// withApp builds the application graph for the duration of one command.
func withApp(c *cli.Context, fn func(ctx context.Context, app *bootstrap.App) error) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	app, err := bootstrap.New(c.Context, cfg)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer app.Close()
	return fn(c.Context, app)
}

func newRenderer() *console.Renderer {
	return console.NewRenderer(console.DefaultStyles())
}
