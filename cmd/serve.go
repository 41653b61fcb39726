package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/cloud66-oss/geolookup/provider"
	"github.com/cloud66-oss/geolookup/utils"
	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type lookupEngine interface {
	Lookup(ctx context.Context, req utils.LookupRequest) (*utils.LookupResult, error)
}

type providerListing struct {
	Name          string  `json:"name"`
	AccuracyScore float64 `json:"accuracy_score"`
	Endpoint      string  `json:"endpoint"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the lookup API server",
	Run:   execServe,
}

func init() {
	// api server
	serveCmd.PersistentFlags().String("binding", "0.0.0.0", "API binding")
	serveCmd.PersistentFlags().Int("port", 9912, "API port")

	viper.BindPFlag("api.binding", serveCmd.PersistentFlags().Lookup("binding"))
	viper.BindPFlag("api.port", serveCmd.PersistentFlags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}

func getLookup(c echo.Context) error {
	ctx := c.Request().Context()

	engine, ok := utils.Container.Fetch(ctx, utils.LookupEngine).(lookupEngine)
	if !ok {
		log.Error().Msg("lookup engine is not configured")
		_, body := errorResponse(nil)
		return c.JSON(http.StatusInternalServerError, body)
	}

	req := utils.LookupRequest{
		IP:         c.QueryParam("ip"),
		Header:     c.Request().Header,
		RemoteAddr: c.Request().RemoteAddr,
	}
	c.Set(utils.LookupTargetKey, req.IP)

	result, err := engine.Lookup(ctx, req)
	if err != nil {
		status, body := errorResponse(err)
		if status == http.StatusInternalServerError {
			log.Error().Str("address", req.IP).Err(err).Msg("failed to lookup ip address")
			sentry.CaptureException(err)
		}

		return c.JSON(status, body)
	}

	c.Set(utils.LookupTargetKey, result.Consolidated.IP)

	return c.JSON(http.StatusOK, result)
}

func getProviders(c echo.Context) error {
	registry, ok := utils.Container.Fetch(c.Request().Context(), utils.ProviderRegistry).(*provider.Registry)
	if !ok {
		log.Error().Msg("provider registry is not configured")
		_, body := errorResponse(nil)
		return c.JSON(http.StatusInternalServerError, body)
	}

	return c.JSON(http.StatusOK, listProviders(registry))
}

func listProviders(registry *provider.Registry) []providerListing {
	rv := make([]providerListing, 0, registry.Len())

	for _, v := range registry.Providers() {
		rv = append(rv, providerListing{
			Name:          v.Name(),
			AccuracyScore: v.Accuracy(),
			Endpoint:      v.Endpoint(),
		})
	}

	return rv
}

func ping(c echo.Context) error {
	return c.String(http.StatusOK, "pong")
}

func newServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.RequestID())
	e.Use(utils.ZeroLogger(&log.Logger))
	e.GET("/_ping", ping)
	e.GET("/v1/lookup", getLookup)
	e.GET("/api/lookup", getLookup)
	e.GET("/v1/providers", getProviders)

	return e
}

func execServe(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	_, executor, err := buildEngine(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build the lookup engine")
	}
	defer executor.Release()

	if err := startServer(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start the api server")
	}
}

func startServer(_ context.Context) error {
	e := newServer()
	address := fmt.Sprintf("%s:%d", viper.GetString("api.binding"), viper.GetInt("api.port"))

	go func() {
		log.Info().Str("address", address).Msg("starting the api server")

		if err := e.Start(address); err != nil {
			if err != http.ErrServerClosed {
				log.Error().Err(err).Msg("failed to start the server")
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return e.Shutdown(ctx)
}
