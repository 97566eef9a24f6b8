package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/MKhiriev/north-config/internal/app"
	"github.com/MKhiriev/north-config/internal/config"
	"github.com/MKhiriev/north-config/internal/logger"
	"github.com/MKhiriev/north-config/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cliApp := &cli.App{
		Name:    "northcfg",
		Usage:   "resolve layered configuration from files, env and providers",
		Version: buildInfo.String(),
		Flags:   config.Flags(),
		Action:  withApp(func(ctx context.Context, _ *cli.Context, a *app.App) error { return a.Resolve(ctx) }),
		Commands: []*cli.Command{
			{
				Name:   "resolve",
				Usage:  "print the resolved document",
				Action: withApp(func(ctx context.Context, _ *cli.Context, a *app.App) error { return a.Resolve(ctx) }),
			},
			{
				Name:   "watch",
				Usage:  "print the document again whenever a watched file changes",
				Action: withApp(func(ctx context.Context, _ *cli.Context, a *app.App) error { return a.Watch(ctx) }),
			},
			{
				Name:   "migrate",
				Usage:  "create or upgrade the key/value table",
				Action: withApp(func(ctx context.Context, _ *cli.Context, a *app.App) error { return a.Migrate(ctx) }),
			},
			{
				Name:      "set",
				Usage:     "store a value in the key/value table",
				ArgsUsage: "KEY VALUE",
				Action: withApp(func(ctx context.Context, c *cli.Context, a *app.App) error {
					if c.NArg() != 2 {
						return errors.New("set needs KEY and VALUE")
					}
					return a.Set(ctx, c.Args().Get(0), c.Args().Get(1))
				}),
			},
		},
	}

	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "northcfg:", err)
		os.Exit(1)
	}
}

// withApp loads the settings, attaches the logger to the context and hands
// an App to action.
func withApp(action func(ctx context.Context, c *cli.Context, a *app.App) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.GetStructuredConfig(c)
		if err != nil {
			return fmt.Errorf("error getting configs: %w", err)
		}

		level, err := logger.ParseLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
		log := logger.New(os.Stderr, "northcfg", level)
		log.Debug().Any("config", cfg).Msg("received configs")

		a, err := app.New(cfg, os.Stdout)
		if err != nil {
			return err
		}
		return action(log.WithContext(c.Context), c, a)
	}
}
