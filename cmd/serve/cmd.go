package serve

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
	"github.com/williamlsh/logging"

	"github.com/staymithra/resetserver/internal/webserve"
)

const configFlagName = "config"

// Command returns a serve command.
func Command() *cli.Command {
	ctx := context.Background()

	var (
		logger zerolog.Logger

		serverConfigOptions webserve.ServerConfigOptions
	)

	flags := func() (flags []cli.Flag) {
		for _, v := range [][]cli.Flag{
			loadConfigFlag(),
			serverFlags(&serverConfigOptions),
		} {
			flags = append(flags, v...)
		}
		return
	}()

	return &cli.Command{
		Name:  "serve",
		Usage: "serve the password reset page with permissive CORS headers",
		Flags: flags,
		Before: func(c *cli.Context) error {
			if err := altsrc.InitInputSourceWithContext(
				flags,
				altsrc.NewTomlSourceFromFlagFunc(configFlagName),
			)(c); err != nil {
				return err
			}

			// Set up logger.
			debug := c.Bool("debug")
			logging.Debug(debug)
			logger = log.With().Str("service", "resetserver").Str("command", "serve").Logger()
			ctx = logger.WithContext(ctx)
			return nil
		},
		Action: func(c *cli.Context) error {
			svc := webserve.New(ctx, webserve.ConfigOptions{
				ServerConfigOptions: serverConfigOptions,
			})

			// Registered before binding so an early interrupt is not lost.
			sigs := make(chan os.Signal, 1)
			signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigs)

			if err := svc.Listen(); err != nil {
				return err
			}
			printBanner(c.App.Writer, svc)

			errCh := make(chan error, 1)
			go func() {
				errCh <- svc.Serve()
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigs:
				logger.Debug().Str("signal", sig.String()).Msg("received signal")
			}
			fmt.Fprintln(c.App.Writer, "\nServer stopped.")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), serverConfigOptions.ShutdownTimeout)
			defer cancel()
			if err := svc.Shutdown(shutdownCtx); err != nil {
				return err
			}
			return <-errCh
		},
		After: func(c *cli.Context) error {
			logger.Info().Msg("exits")
			return nil
		},
	}
}

func printBanner(w io.Writer, svc *webserve.Server) {
	fmt.Fprintf(w, "Server running at %s\n", svc.URL())
	if u, ok := svc.NetworkURL(); ok {
		fmt.Fprintf(w, "Network: %s\n", u)
	}
	fmt.Fprintf(w, "Serving files from: %s\n", svc.Root())
	fmt.Fprintln(w, "Press Ctrl+C to stop the server")
}

// loadConfigFlag sets a config file path for app command.
// No file is read unless this flag is given.
func loadConfigFlag() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    configFlagName,
			Aliases: []string{"c"},
			Usage:   "Config file path, e.g. config/config.toml",
		},
	}
}

func serverFlags(options *webserve.ServerConfigOptions) []cli.Flag {
	return []cli.Flag{
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:        "server.host",
			Usage:       "Host to listen on, all interfaces by default",
			Value:       "0.0.0.0",
			DefaultText: "0.0.0.0",
			Destination: &options.Host,
		}),
		altsrc.NewIntFlag(&cli.IntFlag{
			Name:        "server.port",
			Usage:       "Port to listen on",
			Value:       8000,
			DefaultText: "8000",
			EnvVars:     []string{"PORT"},
			Destination: &options.Port,
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:        "server.root",
			Usage:       "Directory containing " + webserve.PageFile + " and other static assets",
			Value:       ".",
			DefaultText: ".",
			EnvVars:     []string{"RESET_SERVER_ROOT"},
			Destination: &options.Root,
		}),
		altsrc.NewDurationFlag(&cli.DurationFlag{
			Name:        "server.shutdown_timeout",
			Usage:       "Time allowed for in-flight requests on shutdown",
			Value:       5 * time.Second,
			DefaultText: "5s",
			Destination: &options.ShutdownTimeout,
		}),
	}
}
