package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cloud66-oss/geolookup/clientip"
	"github.com/cloud66-oss/geolookup/lookup"
	"github.com/cloud66-oss/geolookup/provider"
	"github.com/cloud66-oss/geolookup/utils"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type builtinProvider struct {
	key    string
	schema provider.Schema
}

// config keys of the JSON providers, in registry order
var builtinProviders = []builtinProvider{
	{"ipapico", provider.IPAPICo()},
	{"ipapicom", provider.IPAPICom()},
	{"ipinfo", provider.IPInfo()},
	{"ipgeolocation", provider.IPGeolocation()},
	{"iplocation", provider.IPLocation()},
	{"freegeoip", provider.FreeGeoIP()},
}

func init() {
	for _, v := range builtinProviders {
		viper.SetDefault("providers."+v.key+".enabled", true)
		viper.SetDefault("providers."+v.key+".url", "")
	}

	viper.SetDefault("providers.ipstack.enabled", false)
	viper.SetDefault("providers.ipstack.apikey", "")
}

func newHTTPClient() *utils.HTTPClient {
	return utils.NewHTTPClient(&http.Client{},
		viper.GetString("lookup.user_agent"),
		viper.GetDuration("ratelimit.interval"),
		viper.GetInt("ratelimit.burst"))
}

// buildRegistry creates the enabled providers. Every provider gets its
// own client so that rate limits are tracked per service.
func buildRegistry(ctx context.Context) (*provider.Registry, error) {
	providers := []provider.IPProvider{}

	for _, v := range builtinProviders {
		if !viper.GetBool("providers." + v.key + ".enabled") {
			log.Info().Str("provider", v.schema.Name()).Msg("provider disabled")
			continue
		}

		p := provider.NewJSONProvider(v.schema, newHTTPClient(), viper.GetString("providers."+v.key+".url"))
		log.Debug().Str("provider", p.Name()).Str("endpoint", p.Endpoint()).Msg("provider enabled")

		providers = append(providers, p)
	}

	if viper.GetBool("providers.ipstack.enabled") {
		p, err := provider.NewIpStackProvider(ctx, viper.GetString("providers.ipstack.apikey"))
		if err != nil {
			return nil, fmt.Errorf("cannot create ipstack provider: %w", err)
		}

		providers = append(providers, p)
	}

	if len(providers) == 0 {
		return nil, errors.New("no providers are enabled")
	}

	return provider.NewRegistry(providers...), nil
}

// buildEngine wires the registry, the executor and the client address
// resolver and publishes them in the container. The returned executor
// has to be released by the caller.
func buildEngine(ctx context.Context) (*lookup.Engine, *lookup.Executor, error) {
	registry, err := buildRegistry(ctx)
	if err != nil {
		return nil, nil, err
	}

	executor, err := lookup.NewExecutor(registry,
		viper.GetDuration("lookup.timeout"),
		viper.GetInt("lookup.workers"))
	if err != nil {
		return nil, nil, err
	}

	detector := clientip.NewDetector(
		utils.NewHTTPClient(&http.Client{}, viper.GetString("lookup.user_agent"), 0, 1),
		viper.GetStringSlice("detection.services"),
		viper.GetDuration("detection.timeout"))

	engine := lookup.NewEngine(clientip.NewResolver(detector), executor)

	utils.Container.Assign(ctx, utils.ProviderRegistry, registry)
	utils.Container.Assign(ctx, utils.LookupEngine, engine)

	log.Info().Strs("providers", registry.Names()).Msg("lookup engine ready")

	return engine, executor, nil
}
