package provider

import (
	"strings"

	"github.com/cloud66-oss/geolookup/utils"
	jsoniter "github.com/json-iterator/go"
	"github.com/pariz/gountries"
)

var countryQuery = gountries.New()

type ipinfoSchema struct{}

// IPInfo reads https://ipinfo.io responses. Coordinates come as a single
// "lat,lon" string and the country only as its ISO code.
func IPInfo() Schema {
	return ipinfoSchema{}
}

func (ipinfoSchema) Name() string {
	return NameIPInfo
}

func (ipinfoSchema) Accuracy() float64 {
	return 0.75
}

func (ipinfoSchema) Endpoint() string {
	return "https://ipinfo.io/" + AddressPlaceholder + "/json"
}

func (ipinfoSchema) Transform(address string, data jsoniter.Any) (*utils.IPInfo, error) {
	info := utils.NewIPInfo(textOr(data.Get("ip"), address))

	info.City = orUnknown(data.Get("city"))
	info.Region = orUnknown(data.Get("region"))
	info.CountryCode = orUnknown(data.Get("country"))
	info.Country = countryName(info.CountryCode)
	info.TimeZone = orUnknown(data.Get("timezone"))
	info.ISP = orUnknown(data.Get("org"))
	info.Org = orUnknown(data.Get("org"))
	info.AS = orUnknown(data.Get("org"))
	info.ASName = orUnknown(data.Get("org"))
	info.PostalCode = text(data.Get("postal"))

	if loc := text(data.Get("loc")); loc != "" {
		parts := strings.SplitN(loc, ",", 2)
		info.Latitude = number(jsoniter.Wrap(parts[0]))

		if len(parts) == 2 {
			info.Longitude = number(jsoniter.Wrap(parts[1]))
		}
	}

	return info, nil
}

// countryName resolves an ISO code to the common English name. Unknown
// codes are returned as they are.
func countryName(code string) string {
	if code == utils.Unknown {
		return code
	}

	country, err := countryQuery.FindCountryByAlpha(code)
	if err != nil {
		return code
	}

	if country.Name.Common == "" {
		return code
	}

	return country.Name.Common
}
