package provider

import (
	"github.com/cloud66-oss/geolookup/utils"
	jsoniter "github.com/json-iterator/go"
)

type freegeoipSchema struct{}

// FreeGeoIP reads https://freegeoip.app responses. The service has no
// network data so ISP, org and AS stay unknown.
func FreeGeoIP() Schema {
	return freegeoipSchema{}
}

func (freegeoipSchema) Name() string {
	return NameFreeGeoIP
}

func (freegeoipSchema) Accuracy() float64 {
	return 0.65
}

func (freegeoipSchema) Endpoint() string {
	return "https://freegeoip.app/json/" + AddressPlaceholder
}

func (freegeoipSchema) Transform(address string, data jsoniter.Any) (*utils.IPInfo, error) {
	info := utils.NewIPInfo(textOr(data.Get("ip"), address))

	info.City = orUnknown(data.Get("city"))
	info.Region = orUnknown(data.Get("region_name"))
	info.Country = orUnknown(data.Get("country_name"))
	info.CountryCode = orUnknown(data.Get("country_code"))
	info.Latitude = number(data.Get("latitude"))
	info.Longitude = number(data.Get("longitude"))
	info.TimeZone = orUnknown(data.Get("time_zone"))
	info.PostalCode = text(data.Get("zip_code"))

	return info, nil
}
