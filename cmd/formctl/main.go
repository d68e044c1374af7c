// cmd/formctl/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/modesq/dynamic-form-fullstack-app/config"
	"github.com/modesq/dynamic-form-fullstack-app/internal/client"
	"github.com/modesq/dynamic-form-fullstack-app/internal/domain"
	"github.com/modesq/dynamic-form-fullstack-app/internal/draft"
	"github.com/modesq/dynamic-form-fullstack-app/internal/form"
	"github.com/modesq/dynamic-form-fullstack-app/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newApp().Run(ctx, os.Args); err != nil {
		customLog.Fatal(err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "formctl",
		Usage: "fill in and submit the dynamic form from a terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to the TOML client config",
				Value: config.DefaultClientConfigPath(),
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "backend URL, overrides the config file",
			},
		},
		Commands: []*cli.Command{
			fillCommand(),
			configCommand(),
			draftCommand(),
		},
	}
}

// env bundles what every subcommand needs.
type env struct {
	cfg    *config.ClientConfig
	api    *client.Client
	drafts *draft.Cache
}

func loadEnv(cmd *cli.Command) (*env, error) {
	cfg, err := config.LoadClientConfig(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if baseURL := cmd.String("base-url"); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &env{
		cfg:    cfg,
		api:    client.New(cfg.BaseURL, cfg.Timeout.Duration),
		drafts: draft.New(draft.NewFileStore(cfg.DraftDir)),
	}, nil
}

func (e *env) fields(ctx context.Context) ([]domain.FieldDefinition, error) {
	fields, err := e.api.FetchConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", client.Message(err, client.MsgFetchConfigFailed), err)
	}
	return fields, nil
}

func fillCommand() *cli.Command {
	return &cli.Command{
		Name:  "fill",
		Usage: "open the form interactively",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			fields, err := e.fields(ctx)
			if err != nil {
				return err
			}

			session := form.NewSession(fields, e.drafts, e.api, form.NewNotifier(e.cfg.NotifyTimeout.Duration))
			defer func() {
				if err := session.Close(); err != nil {
					customLog.Warnf("Error saving draft on exit: %v", err)
				}
			}()

			return form.NewConsole(session, os.Stdin, os.Stdout).Run(ctx)
		},
	}
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "print the form field definitions served by the backend",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			fields, err := e.fields(ctx)
			if err != nil {
				return err
			}
			return printJSON(fields)
		},
	}
}

func draftCommand() *cli.Command {
	return &cli.Command{
		Name:  "draft",
		Usage: "inspect or remove the locally saved answers",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print the saved answers for the current form",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					e, err := loadEnv(cmd)
					if err != nil {
						return err
					}
					fields, err := e.fields(ctx)
					if err != nil {
						return err
					}
					return printJSON(e.drafts.Load(draft.StorageKey(fields)))
				},
			},
			{
				Name:  "clear",
				Usage: "remove the saved answers for the current form",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					e, err := loadEnv(cmd)
					if err != nil {
						return err
					}
					fields, err := e.fields(ctx)
					if err != nil {
						return err
					}
					if err := e.drafts.Clear(draft.StorageKey(fields)); err != nil {
						return err
					}
					fmt.Println(form.MsgCleared)
					return nil
				},
			},
		},
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
