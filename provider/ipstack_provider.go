package provider

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cloud66-oss/geolookup/utils"
	"github.com/qioalice/ipstack"
	"github.com/rs/zerolog/log"
)

// IpStackProvider queries ipstack.com through its client library. It is
// only registered when an API key is configured.
type IpStackProvider struct {
	cli *ipstack.Client
}

func NewIpStackProvider(_ context.Context, apiKey string) (*IpStackProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("ipstack API key is required")
	}

	cli, err := ipstack.New(
		ipstack.ParamToken(apiKey),
		ipstack.ParamUseHTTPS(true),
	)
	if err != nil {
		log.Info().Msg("failed to create IpStack client. Have you remembered to set the API key? You can use the GEO_PROVIDERS_IPSTACK_APIKEY environment variable or providers.ipstack.apikey in the config file")
		return nil, fmt.Errorf("cannot create ipstack client: %w", err)
	}

	return &IpStackProvider{cli: cli}, nil
}

func (provider *IpStackProvider) Name() string {
	return NameIPStack
}

func (provider *IpStackProvider) Accuracy() float64 {
	return 0.8
}

func (provider *IpStackProvider) Endpoint() string {
	return "https://api.ipstack.com/" + AddressPlaceholder
}

// Lookup runs the blocking client call in the background so that ctx can
// still cut it short.
func (provider *IpStackProvider) Lookup(ctx context.Context, address string) (*utils.IPInfo, error) {
	type result struct {
		info *utils.IPInfo
		err  error
	}

	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("ipstack client panicked: %v", r)}
			}
		}()

		info, err := provider.lookup(address)
		done <- result{info: info, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, utils.ProviderTimeoutError{URL: provider.Endpoint()}
	case res := <-done:
		return res.info, res.err
	}
}

func (provider *IpStackProvider) lookup(address string) (*utils.IPInfo, error) {
	res, err := provider.cli.IP(address)
	if err != nil {
		return nil, fmt.Errorf("cannot lookup address: %w", err)
	}

	info := utils.NewIPInfo(address)
	if res.IP != "" {
		info.IP = res.IP
	}

	info.City = orDefault(res.City)
	info.Region = orDefault(res.RegionName)
	info.Country = orDefault(res.CountryName)
	info.CountryCode = orDefault(res.CountryCode)
	info.ContinentCode = orDefault(res.ContinentCode)
	info.Latitude = float64(res.Latitide)
	info.Longitude = float64(res.Longitude)
	info.TimeZone = orDefault(res.Timezone.ID)
	info.ISP = orDefault(res.Connection.ISP)
	info.Org = orDefault(res.Connection.ISP)
	info.ASName = orDefault(res.Connection.ISP)
	info.PostalCode = res.Zip
	info.AccuracyScore = provider.Accuracy()

	if asn := res.Connection.ASN; asn != 0 {
		info.AS = "AS" + strconv.FormatUint(uint64(asn), 10)
	}

	return info, nil
}

func orDefault(value string) string {
	if value == "" {
		return utils.Unknown
	}

	return value
}
