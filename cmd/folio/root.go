package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/folio"
	"github.com/eringen/folio/source"
)

// cli holds the state shared by every subcommand.
type cli struct {
	cfgFile string
	v       *viper.Viper
	logger  zerolog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New(), logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "folio",
		Short: "folio - a portfolio site built with Go, Echo, and templ",
		Long: `folio serves a portfolio of image, video and gallery work items together
with a short biography and contact block, read from a mock, file, directory,
SQLite or blob-store source.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.initializeConfig(); err != nil {
				return err
			}
			l, err := newLogger(c.v.GetString("log.level"), c.v.GetString("log.format"), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			c.logger = l
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is ./folio.yaml)")

	root.AddCommand(
		c.newServeCmd(),
		c.newValidateCmd(),
		c.newImportCmd(),
		c.newInitCmd(),
		c.newVersionCmd(),
	)
	return root
}

func (c *cli) initializeConfig() error {
	// A missing .env is normal outside development.
	for _, p := range []string{".env", "../.env"} {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	v := c.v
	v.SetDefault("server.addr", ":3000")
	v.SetDefault("server.static_dir", "public")
	v.SetDefault("source.driver", source.DriverMock)
	v.SetDefault("source.blob.store", source.DefaultBlobStore)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	if c.cfgFile != "" {
		v.SetConfigFile(c.cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || c.cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

// newLogger builds the process logger. format is "console" for human output
// or "json".
func newLogger(level, format string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	switch format {
	case "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	case "json":
	default:
		return zerolog.Logger{}, fmt.Errorf("invalid log format %q", format)
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

func (c *cli) siteConfig() (folio.SiteConfig, error) {
	v := c.v
	var social []folio.SocialLink
	if err := v.UnmarshalKey("site.social", &social); err != nil {
		return folio.SiteConfig{}, fmt.Errorf("site.social: %w", err)
	}
	return folio.SiteConfig{
		Name:          v.GetString("site.name"),
		URL:           v.GetString("site.url"),
		Description:   v.GetString("site.description"),
		Author:        v.GetString("site.author"),
		Headline:      v.GetString("site.headline"),
		Tagline:       v.GetString("site.tagline"),
		Social:        social,
		Addr:          v.GetString("server.addr"),
		RateLimit:     v.GetInt("server.rate_limit"),
		MediaMaxWidth: v.GetInt("media.max_width"),
	}, nil
}

func (c *cli) sourceConfig() source.Config {
	v := c.v
	return source.Config{
		Driver:    v.GetString("source.driver"),
		Path:      v.GetString("source.path"),
		Pattern:   v.GetString("source.pattern"),
		Delay:     v.GetDuration("source.mock_delay"),
		BlobURL:   v.GetString("source.blob.url"),
		BlobStore: v.GetString("source.blob.store"),
		BlobToken: v.GetString("source.blob.token"),
		Logger:    c.logger,
	}
}
