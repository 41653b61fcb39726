package provider

import (
	"fmt"
	"math"

	"github.com/cloud66-oss/geolookup/utils"
	jsoniter "github.com/json-iterator/go"
)

const ipAPIComFields = "status,message,country,countryCode,region,regionName,city,zip," +
	"lat,lon,timezone,offset,isp,org,as,asname,mobile,proxy,hosting,query"

type ipAPIComSchema struct{}

// IPAPICom reads http://ip-api.com responses. The service answers 200
// even for failed lookups and flags them with status "fail".
func IPAPICom() Schema {
	return ipAPIComSchema{}
}

func (ipAPIComSchema) Name() string {
	return NameIPAPICom
}

func (ipAPIComSchema) Accuracy() float64 {
	return 0.9
}

func (ipAPIComSchema) Endpoint() string {
	return "http://ip-api.com/json/" + AddressPlaceholder + "?fields=" + ipAPIComFields
}

func (ipAPIComSchema) Transform(address string, data jsoniter.Any) (*utils.IPInfo, error) {
	if text(data.Get("status")) == "fail" {
		return nil, utils.ProviderReportedFailureError{
			Message: text(data.Get("message")),
		}
	}

	info := utils.NewIPInfo(textOr(data.Get("query"), address))

	info.City = orUnknown(data.Get("city"))
	info.Region = orUnknown(data.Get("regionName"))
	info.Country = orUnknown(data.Get("country"))
	info.CountryCode = orUnknown(data.Get("countryCode"))
	info.Latitude = number(data.Get("lat"))
	info.Longitude = number(data.Get("lon"))
	info.TimeZone = orUnknown(data.Get("timezone"))
	info.UTCOffset = utcOffset(data.Get("offset"))
	info.ISP = orUnknown(data.Get("isp"))
	info.Org = orUnknown(data.Get("org"))
	info.AS = orUnknown(data.Get("as"))
	info.ASName = orUnknown(data.Get("asname"))
	info.Mobile = flag(data.Get("mobile"))
	info.Proxy = flag(data.Get("proxy"))
	info.Hosting = flag(data.Get("hosting"))
	info.PostalCode = text(data.Get("zip"))

	return info, nil
}

// utcOffset turns an offset in seconds into "UTC+N" with N rounded half
// up to whole hours.
func utcOffset(v jsoniter.Any) string {
	if v.ValueType() != jsoniter.NumberValue {
		return utils.Unknown
	}

	seconds := v.ToFloat64()
	hours := int(math.Floor(seconds/3600 + 0.5))

	if seconds >= 0 {
		return fmt.Sprintf("UTC+%d", hours)
	}

	return fmt.Sprintf("UTC%d", hours)
}
