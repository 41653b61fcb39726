package provider

import (
	"github.com/cloud66-oss/geolookup/utils"
	jsoniter "github.com/json-iterator/go"
)

type ipapiCoSchema struct{}

// IPAPICo reads https://ipapi.co responses. The service reports a single
// org string which doubles as ISP and AS name.
func IPAPICo() Schema {
	return ipapiCoSchema{}
}

func (ipapiCoSchema) Name() string {
	return NameIPAPICo
}

func (ipapiCoSchema) Accuracy() float64 {
	return 0.85
}

func (ipapiCoSchema) Endpoint() string {
	return "https://ipapi.co/" + AddressPlaceholder + "/json/"
}

func (ipapiCoSchema) Transform(address string, data jsoniter.Any) (*utils.IPInfo, error) {
	info := utils.NewIPInfo(textOr(data.Get("ip"), address))

	info.City = orUnknown(data.Get("city"))
	info.Region = orUnknown(data.Get("region"))
	info.Country = orUnknown(data.Get("country_name"))
	info.CountryCode = orUnknown(data.Get("country_code"))
	info.ContinentCode = orUnknown(data.Get("continent_code"))
	info.Latitude = number(data.Get("latitude"))
	info.Longitude = number(data.Get("longitude"))
	info.TimeZone = orUnknown(data.Get("timezone"))
	info.UTCOffset = orUnknown(data.Get("utc_offset"))
	info.ISP = orUnknown(data.Get("org"))
	info.Org = orUnknown(data.Get("org"))
	info.AS = orUnknown(data.Get("asn"))
	info.ASName = orUnknown(data.Get("org"))
	info.PostalCode = text(data.Get("postal"))

	return info, nil
}
