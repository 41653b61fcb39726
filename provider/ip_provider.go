package provider

import (
	"context"
	"net/url"
	"strings"

	"github.com/cloud66-oss/geolookup/utils"
	jsoniter "github.com/json-iterator/go"
)

// AddressPlaceholder marks where the looked up address goes in an
// endpoint template.
const AddressPlaceholder = "{ip}"

type IPProvider interface {
	Name() string
	Accuracy() float64
	Endpoint() string
	Lookup(ctx context.Context, address string) (*utils.IPInfo, error)
}

// Schema describes one JSON lookup service: where to send the request
// and how to read what comes back. Transform must accept any JSON shape
// and fall back to the defaults of utils.NewIPInfo for everything it
// cannot read.
type Schema interface {
	Name() string
	Accuracy() float64
	Endpoint() string
	Transform(address string, data jsoniter.Any) (*utils.IPInfo, error)
}

// JSONProvider is an IPProvider for services answering a plain GET with a
// JSON document.
type JSONProvider struct {
	schema   Schema
	client   *utils.HTTPClient
	endpoint string
}

// NewJSONProvider binds schema to client. A non empty endpoint replaces
// the schema's own template.
func NewJSONProvider(schema Schema, client *utils.HTTPClient, endpoint string) *JSONProvider {
	if endpoint == "" {
		endpoint = schema.Endpoint()
	}

	return &JSONProvider{
		schema:   schema,
		client:   client,
		endpoint: endpoint,
	}
}

func (p *JSONProvider) Name() string {
	return p.schema.Name()
}

func (p *JSONProvider) Accuracy() float64 {
	return p.schema.Accuracy()
}

func (p *JSONProvider) Endpoint() string {
	return p.endpoint
}

func (p *JSONProvider) URL(address string) string {
	return strings.ReplaceAll(p.endpoint, AddressPlaceholder, url.PathEscape(address))
}

// Lookup fetches and normalizes the record for address. The deadline is
// taken from ctx.
func (p *JSONProvider) Lookup(ctx context.Context, address string) (*utils.IPInfo, error) {
	body, err := p.client.GetJSON(ctx, p.URL(address), 0)
	if err != nil {
		return nil, err
	}

	info, err := p.schema.Transform(address, jsoniter.Get(body))
	if err != nil {
		return nil, err
	}

	info.AccuracyScore = p.schema.Accuracy()

	return info, nil
}
