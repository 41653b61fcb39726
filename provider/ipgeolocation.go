package provider

import (
	"github.com/cloud66-oss/geolookup/utils"
	jsoniter "github.com/json-iterator/go"
)

type ipgeolocationSchema struct{}

// IPGeolocation reads https://ipgeolocation.io responses. Coordinates are
// strings and the time zone is a nested object.
func IPGeolocation() Schema {
	return ipgeolocationSchema{}
}

func (ipgeolocationSchema) Name() string {
	return NameIPGeolocation
}

func (ipgeolocationSchema) Accuracy() float64 {
	return 0.8
}

func (ipgeolocationSchema) Endpoint() string {
	return "https://api.ipgeolocation.io/ipgeo?apiKey=free&ip=" + AddressPlaceholder
}

func (ipgeolocationSchema) Transform(address string, data jsoniter.Any) (*utils.IPInfo, error) {
	info := utils.NewIPInfo(textOr(data.Get("ip"), address))

	info.City = orUnknown(data.Get("city"))
	info.Region = orUnknown(data.Get("state_prov"))
	info.Country = orUnknown(data.Get("country_name"))
	info.CountryCode = orUnknown(data.Get("country_code2"))
	info.ContinentCode = orUnknown(data.Get("continent_code"))
	info.Latitude = number(data.Get("latitude"))
	info.Longitude = number(data.Get("longitude"))
	info.TimeZone = orUnknown(data.Get("time_zone", "name"))
	info.UTCOffset = orUnknown(data.Get("time_zone", "offset"))
	info.ISP = orUnknown(data.Get("isp"))
	info.Org = orUnknown(data.Get("organization"))
	info.AS = orUnknown(data.Get("asn"))
	info.ASName = orUnknown(data.Get("organization"))
	info.PostalCode = text(data.Get("zipcode"))

	return info, nil
}
