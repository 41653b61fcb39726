package provider

const (
	// ipapi.co, free tier without a key.
	NameIPAPICo = "ipapi.co"

	// ip-api.com, the only service reporting mobile/proxy/hosting flags.
	NameIPAPICom = "ip-api.com"

	// ipinfo.io.
	NameIPInfo = "ipinfo.io"

	// ipgeolocation.io.
	NameIPGeolocation = "ipgeolocation.io"

	// iplocation.io.
	NameIPLocation = "iplocation.io"

	// freegeoip.app.
	NameFreeGeoIP = "freegeoip.app"

	// ipstack.com, needs an API key.
	NameIPStack = "ipstack"
)
