package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/sequra/e2e-fixtures/internal/browser/pwdriver"
	internalcli "github.com/sequra/e2e-fixtures/internal/cli"
	"github.com/sequra/e2e-fixtures/internal/config"
	"github.com/sequra/e2e-fixtures/internal/database"
	"github.com/sequra/e2e-fixtures/internal/dataprovider"
	"github.com/sequra/e2e-fixtures/internal/handlers"
	"github.com/sequra/e2e-fixtures/internal/repository"
	"github.com/sequra/e2e-fixtures/internal/webhook"
)

var version = "0.1.0"

var logger = logrus.New()

// runLogger tags every line of a command run.
func runLogger(c *cli.Context) logrus.FieldLogger {
	return logger.WithField("run", uuid.New().String()).WithField("command", c.Command.Name)
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the dummy store with the seQura plugin markup and webhooks",
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadServerConfig(os.Getenv)
			if err != nil {
				return err
			}
			log := runLogger(c)
			store := handlers.NewStore(dataprovider.New(), handlers.StoreOptions{
				FirstOrderID: cfg.FirstOrderID,
				ProcessAfter: cfg.ProcessAfter,
			}, log)
			router, err := handlers.NewRouter(store)
			if err != nil {
				return fmt.Errorf("failed to create router: %w", err)
			}
			return internalcli.RunServe(internalcli.ServerDependencies{
				Port:    cfg.Port,
				Handler: router,
				Log:     log,
			})
		},
	}
}

// WebhookCommand returns the webhook command
func WebhookCommand() *cli.Command {
	return &cli.Command{
		Name:      "webhook",
		Usage:     "Call a store webhook, e.g. webhook dummy_config widgets=1",
		ArgsUsage: "<name> [arg=value...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "scenario", Aliases: []string{"s"}, Usage: "run a named list of webhook calls (reset, dummy, dummy_widgets, dummy_services, clean_logs)"},
			&cli.StringFlag{Name: "json", Usage: "print this gjson path of the response"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadStoreConfig(os.Getenv)
			if err != nil {
				return err
			}
			log := runLogger(c)
			helper := webhook.NewHelper(cfg.BaseURL, webhook.DefaultRegistry(), &http.Client{Timeout: cfg.HTTPTimeout}, log)
			opts := internalcli.WebhookOptions{
				Scenario: c.String("scenario"),
				Path:     c.String("json"),
			}
			if c.NArg() > 0 {
				opts.Name = c.Args().First()
				opts.Args = c.Args().Tail()
			}
			return internalcli.RunWebhook(c.Context, helper, dataprovider.New(), opts, c.App.Writer, log)
		},
	}
}

// ShopperCommand returns the shopper command
func ShopperCommand() *cli.Command {
	return &cli.Command{
		Name:      "shopper",
		Usage:     "Print a sample shopper, or list the aliases",
		ArgsUsage: "[alias]",
		Action: func(c *cli.Context) error {
			return internalcli.RunShopper(dataprovider.New(), c.Args().First(), c.App.Writer)
		},
	}
}

// MerchantRefsCommand returns the merchant-refs command
func MerchantRefsCommand() *cli.Command {
	return &cli.Command{
		Name:  "merchant-refs",
		Usage: "Print the merchant reference of every country of a merchant",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Value: dataprovider.DefaultUsername},
		},
		Action: func(c *cli.Context) error {
			return internalcli.RunMerchantRefs(dataprovider.New(), c.String("username"), c.App.Writer)
		},
	}
}

// OrderStatusCommand returns the order-status command
func OrderStatusCommand() *cli.Command {
	return &cli.Command{
		Name:      "order-status",
		Usage:     "Read an order status from the store database, or wait for one",
		ArgsUsage: "<order number>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "wait-for", Usage: "status to wait for"},
			&cli.IntFlag{Name: "attempts", Value: 30, Usage: "number of checks when waiting"},
			&cli.DurationFlag{Name: "interval", Value: time.Second, Usage: "pause between checks"},
			&cli.StringFlag{Name: "prefix", Value: "wc-", Usage: "prefix trimmed from stored statuses"},
		},
		Action: func(c *cli.Context) error {
			pg, err := config.LoadPostgresConfig(os.Getenv)
			if err != nil {
				return err
			}
			db, err := database.Connect(pg)
			if err != nil {
				return err
			}
			defer db.Close()

			log := runLogger(c)
			return internalcli.RunOrderStatus(c.Context, repository.NewOrderStatusRepository(db, pg.StatusQuery), internalcli.OrderStatusOptions{
				OrderNumber: c.Args().First(),
				Status:      c.String("wait-for"),
				WaitFor:     c.Int("attempts"),
				Interval:    c.Duration("interval"),
				Prefix:      c.String("prefix"),
			}, c.App.Writer, log)
		},
	}
}

// ConfigCommand returns the config command
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print the configuration resolved from the environment",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(os.Getenv)
			if err != nil {
				return err
			}
			return internalcli.RunShowConfig(cfg, c.App.Writer)
		},
	}
}

// InstallCommand returns the install command
func InstallCommand() *cli.Command {
	return &cli.Command{
		Name:      "install",
		Usage:     "Download the Playwright driver and browsers",
		ArgsUsage: "[browser...]",
		Action: func(c *cli.Context) error {
			return internalcli.RunInstall(pwdriver.Install, c.Args().Slice(), runLogger(c))
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Debug(".env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "sqe2e",
		Usage:   "seQura storefront e2e fixtures: dummy store, webhooks and test data",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info", EnvVars: []string{"SQ_E2E_LOG_LEVEL"}},
		},
		Before: func(c *cli.Context) error {
			level, err := logrus.ParseLevel(c.String("log-level"))
			if err != nil {
				return err
			}
			logger.SetLevel(level)
			return nil
		},
		Commands: []*cli.Command{
			ServeCommand(),
			WebhookCommand(),
			ShopperCommand(),
			MerchantRefsCommand(),
			OrderStatusCommand(),
			ConfigCommand(),
			InstallCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.WithError(err).Fatal("Command failed")
	}
}
