package provider

import (
	"github.com/cloud66-oss/geolookup/utils"
	jsoniter "github.com/json-iterator/go"
)

type iplocationSchema struct{}

func IPLocation() Schema {
	return iplocationSchema{}
}

func (iplocationSchema) Name() string {
	return NameIPLocation
}

func (iplocationSchema) Accuracy() float64 {
	return 0.8
}

func (iplocationSchema) Endpoint() string {
	return "https://api.iplocation.io/?ip=" + AddressPlaceholder
}

func (iplocationSchema) Transform(address string, data jsoniter.Any) (*utils.IPInfo, error) {
	info := utils.NewIPInfo(textOr(data.Get("ip"), address))

	info.City = orUnknown(data.Get("city"))
	info.Region = orUnknown(data.Get("region"))
	info.Country = orUnknown(data.Get("country_name"))
	info.CountryCode = orUnknown(data.Get("country_code"))
	info.Latitude = number(data.Get("latitude"))
	info.Longitude = number(data.Get("longitude"))
	info.TimeZone = orUnknown(data.Get("timezone"))
	info.ISP = orUnknown(data.Get("isp"))
	info.Org = orUnknown(data.Get("org"))
	info.AS = orUnknown(data.Get("asn"))
	info.ASName = orUnknown(data.Get("org"))
	info.PostalCode = text(data.Get("postal_code"))

	return info, nil
}
