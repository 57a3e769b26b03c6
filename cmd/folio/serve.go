package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
	"github.com/eringen/folio/source"
)

func (c *cli) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := c.siteConfig()
			if err != nil {
				return err
			}
			srcCfg := c.sourceConfig()
			set, closer, err := source.Open(srcCfg)
			if err != nil {
				return err
			}
			defer closer.Close()

			app := folio.New(cfg, set,
				folio.WithLogger(c.logger),
				folio.WithStaticDir(c.v.GetString("server.static_dir")),
			)
			defer app.Close()

			c.logger.Info().Str("driver", srcCfg.Driver).Str("url", app.Config.URL).Msg("starting folio")
			return app.Start(ctx)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :3000)")
	_ = c.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}
