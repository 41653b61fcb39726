package provider

import (
	"testing"

	"github.com/cloud66-oss/geolookup/utils"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transform(t *testing.T, schema Schema, address, body string) *utils.IPInfo {
	t.Helper()

	info, err := schema.Transform(address, jsoniter.Get([]byte(body)))
	require.NoError(t, err)
	require.NotNil(t, info)

	return info
}

func assertComplete(t *testing.T, info *utils.IPInfo) {
	t.Helper()

	for name, value := range map[string]string{
		"ip":             info.IP,
		"city":           info.City,
		"region":         info.Region,
		"country":        info.Country,
		"country_code":   info.CountryCode,
		"continent_code": info.ContinentCode,
		"timezone":       info.TimeZone,
		"utc_offset":     info.UTCOffset,
		"isp":            info.ISP,
		"org":            info.Org,
		"as":             info.AS,
		"asname":         info.ASName,
	} {
		assert.NotEmpty(t, value, name)
	}

	assert.Empty(t, info.CloudProvider)
}

func TestTransformsAreTotal(t *testing.T) {
	bodies := []string{
		`{}`,
		`[]`,
		`null`,
		`"8.8.8.8"`,
		`{"city": null, "latitude": "north", "loc": true, "time_zone": "UTC", "offset": "x", "mobile": "yes"}`,
		`{"city": {"name": "Paris"}, "country_code": ["FR"], "ip": 7}`,
	}

	for _, schema := range DefaultSchemas() {
		for _, body := range bodies {
			t.Run(schema.Name()+" "+body, func(t *testing.T) {
				info := transform(t, schema, "8.8.8.8", body)

				assertComplete(t, info)
				assert.Zero(t, info.Latitude)
				assert.Zero(t, info.Longitude)
				assert.False(t, info.Mobile)
				assert.False(t, info.Proxy)
				assert.False(t, info.Hosting)
				assert.Empty(t, info.PostalCode)
			})
		}
	}
}

func TestTransformKeepsAddressWhenMissing(t *testing.T) {
	for _, schema := range DefaultSchemas() {
		info := transform(t, schema, "1.1.1.1", `{}`)
		assert.Equal(t, "1.1.1.1", info.IP, schema.Name())
	}
}

func TestAccuracyPriors(t *testing.T) {
	priors := map[string]float64{
		NameIPAPICo:       0.85,
		NameIPAPICom:      0.9,
		NameIPInfo:        0.75,
		NameIPGeolocation: 0.8,
		NameIPLocation:    0.8,
		NameFreeGeoIP:     0.65,
	}

	for _, schema := range DefaultSchemas() {
		assert.Equal(t, priors[schema.Name()], schema.Accuracy(), schema.Name())
	}
}

func TestIPAPICoTransform(t *testing.T) {
	info := transform(t, IPAPICo(), "8.8.8.8", `{
  "ip": "8.8.8.8",
  "city": "Mountain View",
  "region": "California",
  "country_name": "United States",
  "country_code": "US",
  "continent_code": "NA",
  "postal": "94043",
  "latitude": 37.42301,
  "longitude": -122.083352,
  "timezone": "America/Los_Angeles",
  "utc_offset": "-0700",
  "asn": "AS15169",
  "org": "GOOGLE"
}`)

	assert.Equal(t, "Mountain View", info.City)
	assert.Equal(t, "California", info.Region)
	assert.Equal(t, "United States", info.Country)
	assert.Equal(t, "US", info.CountryCode)
	assert.Equal(t, "NA", info.ContinentCode)
	assert.InDelta(t, 37.42301, info.Latitude, 1e-9)
	assert.InDelta(t, -122.083352, info.Longitude, 1e-9)
	assert.Equal(t, "-0700", info.UTCOffset)
	assert.Equal(t, "GOOGLE", info.ISP)
	assert.Equal(t, "GOOGLE", info.Org)
	assert.Equal(t, "GOOGLE", info.ASName)
	assert.Equal(t, "AS15169", info.AS)
	assert.Equal(t, "94043", info.PostalCode)
}

func TestIPAPIComTransform(t *testing.T) {
	info := transform(t, IPAPICom(), "8.8.8.8", `{
  "status": "success",
  "country": "United States",
  "countryCode": "US",
  "region": "VA",
  "regionName": "Virginia",
  "city": "Ashburn",
  "zip": "20149",
  "lat": 39.03,
  "lon": -77.5,
  "timezone": "America/New_York",
  "offset": -14400,
  "isp": "Google LLC",
  "org": "Google Public DNS",
  "as": "AS15169 Google LLC",
  "asname": "GOOGLE",
  "mobile": false,
  "proxy": false,
  "hosting": true,
  "query": "8.8.8.8"
}`)

	assert.Equal(t, "Ashburn", info.City)
	assert.Equal(t, "Virginia", info.Region)
	assert.Equal(t, "US", info.CountryCode)
	assert.Equal(t, utils.Unknown, info.ContinentCode)
	assert.Equal(t, "UTC-4", info.UTCOffset)
	assert.Equal(t, "Google LLC", info.ISP)
	assert.Equal(t, "Google Public DNS", info.Org)
	assert.Equal(t, "AS15169 Google LLC", info.AS)
	assert.Equal(t, "GOOGLE", info.ASName)
	assert.True(t, info.Hosting)
	assert.False(t, info.Mobile)
	assert.Equal(t, "20149", info.PostalCode)
}

func TestIPAPIComReportedFailure(t *testing.T) {
	_, err := IPAPICom().Transform("8.8.8.8",
		jsoniter.Get([]byte(`{"status": "fail", "message": "reserved range"}`)))

	var failure utils.ProviderReportedFailureError
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "reserved range", err.Error())

	_, err = IPAPICom().Transform("8.8.8.8", jsoniter.Get([]byte(`{"status": "fail"}`)))
	assert.EqualError(t, err, "IP lookup failed")
}

func TestUTCOffset(t *testing.T) {
	tests := map[string]string{
		`0`:      "UTC+0",
		`3600`:   "UTC+1",
		`19800`:  "UTC+6",
		`-18000`: "UTC-5",
		`-1800`:  "UTC0",
		`null`:   utils.Unknown,
		`"3600"`: utils.Unknown,
	}

	for raw, expected := range tests {
		assert.Equal(t, expected, utcOffset(jsoniter.Get([]byte(raw))), raw)
	}
}

func TestIPInfoTransform(t *testing.T) {
	info := transform(t, IPInfo(), "23.22.13.113", `{
  "ip": "23.22.13.113",
  "hostname": "ec2-23-22-13-113.compute-1.amazonaws.com",
  "city": "Virginia Beach",
  "region": "Virginia",
  "country": "US",
  "loc": "36.7957,-76.0126",
  "org": "AS14618 Amazon.com, Inc.",
  "postal": "23479",
  "timezone": "America/New_York"
}`)

	assert.Equal(t, "Virginia Beach", info.City)
	assert.Equal(t, "US", info.CountryCode)
	assert.Equal(t, "United States", info.Country)
	assert.InDelta(t, 36.7957, info.Latitude, 1e-9)
	assert.InDelta(t, -76.0126, info.Longitude, 1e-9)
	assert.Equal(t, "AS14618 Amazon.com, Inc.", info.ISP)
	assert.Equal(t, "AS14618 Amazon.com, Inc.", info.AS)
	assert.Equal(t, utils.Unknown, info.UTCOffset)
	assert.Equal(t, "23479", info.PostalCode)
}

func TestIPInfoUnknownCountryCode(t *testing.T) {
	info := transform(t, IPInfo(), "8.8.8.8", `{"country": "XX", "loc": "12.5"}`)

	assert.Equal(t, "XX", info.Country)
	assert.InDelta(t, 12.5, info.Latitude, 1e-9)
	assert.Zero(t, info.Longitude)
}

func TestIPGeolocationTransform(t *testing.T) {
	info := transform(t, IPGeolocation(), "1.1.1.1", `{
  "ip": "1.1.1.1",
  "continent_code": "OC",
  "country_code2": "AU",
  "country_name": "Australia",
  "state_prov": "Queensland",
  "city": "South Brisbane",
  "zipcode": "4101",
  "latitude": "-27.47561",
  "longitude": "153.01537",
  "isp": "Cloudflare, Inc.",
  "organization": "APNIC and Cloudflare DNS Resolver project",
  "asn": "AS13335",
  "time_zone": {"name": "Australia/Brisbane", "offset": 10}
}`)

	assert.Equal(t, "Queensland", info.Region)
	assert.Equal(t, "AU", info.CountryCode)
	assert.Equal(t, "OC", info.ContinentCode)
	assert.InDelta(t, -27.47561, info.Latitude, 1e-9)
	assert.InDelta(t, 153.01537, info.Longitude, 1e-9)
	assert.Equal(t, "Australia/Brisbane", info.TimeZone)
	assert.Equal(t, "10", info.UTCOffset)
	assert.Equal(t, "Cloudflare, Inc.", info.ISP)
	assert.Equal(t, "APNIC and Cloudflare DNS Resolver project", info.Org)
	assert.Equal(t, "4101", info.PostalCode)
}

func TestIPLocationTransform(t *testing.T) {
	info := transform(t, IPLocation(), "8.8.8.8", `{
  "ip": "8.8.8.8",
  "city": "Mountain View",
  "region": "California",
  "country_name": "United States",
  "country_code": "US",
  "latitude": "37.4056",
  "longitude": "-122.0775",
  "timezone": "America/Los_Angeles",
  "isp": "Google LLC",
  "org": "Google LLC",
  "asn": "AS15169",
  "postal_code": "94043"
}`)

	assert.Equal(t, "Mountain View", info.City)
	assert.InDelta(t, 37.4056, info.Latitude, 1e-9)
	assert.Equal(t, "Google LLC", info.ISP)
	assert.Equal(t, "AS15169", info.AS)
	assert.Equal(t, "94043", info.PostalCode)
}

func TestFreeGeoIPTransform(t *testing.T) {
	info := transform(t, FreeGeoIP(), "8.8.8.8", `{
  "ip": "8.8.8.8",
  "country_code": "US",
  "country_name": "United States",
  "region_name": "California",
  "city": "Mountain View",
  "zip_code": "94043",
  "time_zone": "America/Los_Angeles",
  "latitude": 37.386,
  "longitude": -122.0838
}`)

	assert.Equal(t, "California", info.Region)
	assert.Equal(t, "America/Los_Angeles", info.TimeZone)
	assert.Equal(t, utils.Unknown, info.ISP)
	assert.Equal(t, utils.Unknown, info.AS)
	assert.Equal(t, "94043", info.PostalCode)
}
