package utils

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestZeroLogger(t *testing.T) {
	out := &bytes.Buffer{}
	logger := zerolog.New(out)

	e := echo.New()
	e.Use(ZeroLogger(&logger))
	e.GET("/v1/lookup", func(c echo.Context) error {
		c.Set(LookupTargetKey, "8.8.8.8")
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "down"})
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/lookup?ip=8.8.8.8", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-1")
	req.Header.Set(echo.HeaderXRealIP, "8.8.4.4")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	line := out.Bytes()
	assert.Equal(t, "error", jsoniter.Get(line, "level").ToString())
	assert.Equal(t, 503, jsoniter.Get(line, "status").ToInt())
	assert.Equal(t, "req-1", jsoniter.Get(line, "id").ToString())
	assert.Equal(t, "example.com", jsoniter.Get(line, "host").ToString())
	assert.Equal(t, "8.8.4.4", jsoniter.Get(line, "remote_ip").ToString())
	assert.Equal(t, "8.8.8.8", jsoniter.Get(line, "target").ToString())
	assert.Equal(t, "/v1/lookup?ip=8.8.8.8", jsoniter.Get(line, "uri").ToString())
}

func TestContainer(t *testing.T) {
	ctx := context.Background()

	Container.Assign(ctx, LookupEngine, "engine")
	assert.Equal(t, "engine", Container.Fetch(ctx, LookupEngine))
	assert.Nil(t, Container.Fetch(ctx, ProviderRegistry))

	Container.Clear(ctx)
	assert.Nil(t, Container.Fetch(ctx, LookupEngine))
}
