package clientip

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/cloud66-oss/geolookup/utils"
	"github.com/rs/zerolog/log"
)

// Headers lists the proxy headers inspected for the client address,
// highest priority first.
var Headers = []string{
	"cf-connecting-ip",
	"x-real-ip",
	"x-forwarded-for",
	"x-client-ip",
	"x-cluster-client-ip",
	"x-forwarded",
	"forwarded-for",
	"forwarded",
	"true-client-ip",
	"x-original-forwarded-for",
}

// Resolver finds the public address of whoever sent a request. It trusts
// the proxy headers first, then the connection itself and finally asks
// the detector.
type Resolver struct {
	detector *Detector
}

// NewResolver returns a resolver. A nil detector disables the external
// self-detection stage.
func NewResolver(detector *Detector) *Resolver {
	return &Resolver{detector: detector}
}

// FromHeaders returns the first valid public address found in header or
// in remoteAddr.
func (r *Resolver) FromHeaders(header http.Header, remoteAddr string) (string, bool) {
	for _, name := range Headers {
		value := header.Get(name)
		if value == "" {
			continue
		}

		if idx := strings.IndexByte(value, ','); idx >= 0 {
			value = value[:idx]
		}

		value = strings.TrimSpace(value)
		if utils.IsValidPublicIP(value) {
			log.Trace().Str("header", name).Str("address", value).Msg("client address from header")
			return value, true
		}
	}

	if address := hostOf(remoteAddr); utils.IsValidPublicIP(address) {
		return address, true
	}

	return "", false
}

func (r *Resolver) Resolve(ctx context.Context, header http.Header, remoteAddr string) (string, error) {
	if address, ok := r.FromHeaders(header, remoteAddr); ok {
		return address, nil
	}

	if r.detector == nil {
		return "", utils.ClientIPUndetectableError{}
	}

	return r.detector.Detect(ctx)
}

func hostOf(remoteAddr string) string {
	remoteAddr = strings.TrimSpace(remoteAddr)

	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}

	return strings.Trim(remoteAddr, "[]")
}
