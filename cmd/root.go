package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cloud66-oss/geolookup/clientip"
	"github.com/cloud66-oss/geolookup/lookup"
	"github.com/cloud66-oss/geolookup/utils"
	"github.com/fsnotify/fsnotify"
	"github.com/getsentry/sentry-go"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "geolookup",
	Short: "geolookup cross-references IP geolocation services",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Version = utils.Version
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/geo.yml)")
	rootCmd.PersistentFlags().String("level", "info", "log level")
	rootCmd.PersistentFlags().String("log-format", "json", "log format: json or text")

	rootCmd.PersistentFlags().Duration("timeout", lookup.DefaultTimeout, "timeout of a single provider lookup")
	rootCmd.PersistentFlags().Int("workers", lookup.DefaultWorkers, "size of the lookup worker pool")
	rootCmd.PersistentFlags().String("user-agent", utils.DefaultUserAgent, "user agent sent to the providers")
	rootCmd.PersistentFlags().Duration("detection-timeout", clientip.DefaultTimeout, "timeout of a single address detection call")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("lookup.timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("lookup.workers", rootCmd.PersistentFlags().Lookup("workers"))
	viper.BindPFlag("lookup.user_agent", rootCmd.PersistentFlags().Lookup("user-agent"))
	viper.BindPFlag("detection.timeout", rootCmd.PersistentFlags().Lookup("detection-timeout"))

	viper.SetDefault("detection.services", clientip.DefaultServices)

	// outbound rate limit, per provider
	viper.SetDefault("ratelimit.interval", "100ms")
	viper.SetDefault("ratelimit.burst", 10)
}

func configureLogging(_ context.Context) {
	level, err := zerolog.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		fmt.Println("invalid log level")
		os.Exit(1)
	}

	if viper.GetString("log.format") == "text" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	zerolog.SetGlobalLevel(level)
	if level == zerolog.TraceLevel {
		log.Logger = log.With().Caller().Logger()
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile != "" {
		if !utils.FileExists(cfgFile) {
			fmt.Printf("config file %s not found\n", cfgFile)
			os.Exit(1)
		}

		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Printf("home directory not found %s\n", err.Error())
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/app")
		viper.SetConfigName("geo")
	}

	replacer := strings.NewReplacer("-", "_", ".", "_")
	viper.SetEnvKeyReplacer(replacer)
	viper.SetEnvPrefix("GEO")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	ctx := context.Background()
	configureLogging(ctx)

	// sentry.dsn in the config file or GEO_SENTRY_DSN
	if dsn := viper.GetString("sentry.dsn"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:     dsn,
			Release: utils.Version,
		}); err != nil {
			log.Warn().Err(err).Msg("failed to initialize Sentry")
		} else {
			log.Info().Msg("Sentry error tracking enabled")
		}
	}

	// the registry is built once at startup, only logging follows the file
	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Info().Str("file", e.Name).Msg("reloading config")
		configureLogging(context.Background())
	})
	viper.WatchConfig()
}
