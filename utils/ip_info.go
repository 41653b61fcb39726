package utils

import "net/http"

// Unknown is the placeholder for every text field a provider could not
// report.
const Unknown = "Unknown"

// IPInfo is the normalized record every provider maps its own response
// into. Only PostalCode and CloudProvider may be empty.
type IPInfo struct {
	IP            string  `json:"ip"`
	City          string  `json:"city"`
	Region        string  `json:"region"`
	Country       string  `json:"country"`
	CountryCode   string  `json:"country_code"`
	ContinentCode string  `json:"continent_code"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	TimeZone      string  `json:"timezone"`
	UTCOffset     string  `json:"utc_offset"`
	ISP           string  `json:"isp"`
	Org           string  `json:"org"`
	AS            string  `json:"as"`
	ASName        string  `json:"asname"`
	Mobile        bool    `json:"mobile"`
	Proxy         bool    `json:"proxy"`
	Hosting       bool    `json:"hosting"`
	CloudProvider string  `json:"cloud_provider,omitempty"`
	AccuracyScore float64 `json:"accuracy_score"`
	PostalCode    string  `json:"postal_code,omitempty"`
}

// NewIPInfo returns a record for address with every field set to its
// "nothing known" value.
func NewIPInfo(address string) *IPInfo {
	return &IPInfo{
		IP:            address,
		City:          Unknown,
		Region:        Unknown,
		Country:       Unknown,
		CountryCode:   Unknown,
		ContinentCode: Unknown,
		TimeZone:      Unknown,
		UTCOffset:     Unknown,
		ISP:           Unknown,
		Org:           Unknown,
		AS:            Unknown,
		ASName:        Unknown,
	}
}

// ProviderResult is the outcome of querying a single provider. Data is set
// on success, Error otherwise.
type ProviderResult struct {
	Service      string  `json:"service"`
	Success      bool    `json:"success"`
	Data         *IPInfo `json:"data,omitempty"`
	Error        string  `json:"error,omitempty"`
	ResponseTime int64   `json:"response_time"`
}

type LookupResult struct {
	Consolidated      *IPInfo          `json:"consolidated"`
	IndividualResults []ProviderResult `json:"individual_results"`
	TotalAPIs         int              `json:"total_apis"`
	SuccessfulAPIs    int              `json:"successful_apis"`
}

// LookupRequest carries what the transport knows about a lookup. IP is
// the explicitly requested address; when it is empty the caller's own
// address is detected from Header and RemoteAddr.
type LookupRequest struct {
	IP         string
	Header     http.Header
	RemoteAddr string
}
