package clientip

import (
	"context"
	"strings"
	"time"

	"github.com/cloud66-oss/geolookup/utils"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

const DefaultTimeout = 8 * time.Second

// DefaultServices answer with the public address of the caller.
var DefaultServices = []string{
	"https://api.ipify.org?format=json",
	"https://ipapi.co/json/",
	"https://ip-api.com/json/?fields=query",
}


// Detector asks external services for the public address of this host.
// Services are tried one after another until one of them answers with a
// valid public address.
type Detector struct {
	client   *utils.HTTPClient
	services []string
	timeout  time.Duration
}

func NewDetector(client *utils.HTTPClient, services []string, timeout time.Duration) *Detector {
	if len(services) == 0 {
		services = DefaultServices
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	rv := &Detector{
		client:   client,
		services: make([]string, len(services)),
		timeout:  timeout,
	}

	copy(rv.services, services)

	return rv
}

func (d *Detector) Detect(ctx context.Context) (string, error) {
	for _, service := range d.services {
		if ctx.Err() != nil {
			break
		}

		body, err := d.client.GetJSON(ctx, service, d.timeout)
		if err != nil {
			log.Debug().Str("service", service).Err(err).Msg("address detection failed")
			continue
		}

		if address := addressOf(body); utils.IsValidPublicIP(address) {
			log.Debug().Str("service", service).Str("address", address).Msg("detected client address")
			return address, nil
		}

		log.Debug().Str("service", service).Msg("address detection returned no valid address")
	}

	return "", utils.ClientIPUndetectableError{}
}

// addressOf returns the "ip" field of an answer, or "query" when there is
// no "ip". The other field is not consulted once one was picked.
func addressOf(body []byte) string {
	data := jsoniter.Get(body)

	value := data.Get("ip")
	if value.ValueType() != jsoniter.StringValue || strings.TrimSpace(value.ToString()) == "" {
		value = data.Get("query")
	}

	if value.ValueType() != jsoniter.StringValue {
		return ""
	}

	return strings.TrimSpace(value.ToString())
}
