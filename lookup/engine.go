package lookup

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/cloud66-oss/geolookup/utils"
	"github.com/rs/zerolog/log"
)

// ClientIPResolver finds the public address of the caller of a request.
type ClientIPResolver interface {
	Resolve(ctx context.Context, header http.Header, remoteAddr string) (string, error)
}

// Engine runs a whole lookup: target resolution, provider fan-out and
// consolidation.
type Engine struct {
	resolver     ClientIPResolver
	executor     *Executor
	registrySize int
}

// NewEngine builds an engine. The number of providers reported with
// every result is the size of the executor's registry.
func NewEngine(resolver ClientIPResolver, executor *Executor) *Engine {
	return &Engine{
		resolver:     resolver,
		executor:     executor,
		registrySize: executor.Registry().Len(),
	}
}

// Lookup returns the consolidated record for req. Request level problems
// come back as utils.InvalidIPFormatError, utils.ClientIPUndetectableError
// or utils.NoValidResultsError.
func (e *Engine) Lookup(ctx context.Context, req utils.LookupRequest) (*utils.LookupResult, error) {
	address, err := e.target(ctx, req)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("address", address).Int("providers", e.registrySize).Msg("querying providers")

	results := e.executor.QueryAll(ctx, address)
	records := make([]*utils.IPInfo, 0, len(results))
	failures := []string{}

	for _, v := range results {
		if v.Success {
			records = append(records, v.Data)
		} else {
			failures = append(failures, v.Service+": "+v.Error)
		}
	}

	if len(records) == 0 {
		log.Warn().Str("address", address).Strs("failures", failures).Msg("no provider returned a result")

		return nil, utils.NoValidResultsError{Failures: failures}
	}

	consolidated, err := Consolidate(records)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("address", address).
		Int("successful", len(records)).
		Int("total", e.registrySize).
		Float64("accuracy", consolidated.AccuracyScore).
		Str("cloud_provider", consolidated.CloudProvider).
		Msg("lookup consolidated")

	return &utils.LookupResult{
		Consolidated:      consolidated,
		IndividualResults: results,
		TotalAPIs:         e.registrySize,
		SuccessfulAPIs:    len(records),
	}, nil
}

func (e *Engine) target(ctx context.Context, req utils.LookupRequest) (string, error) {
	if address := strings.TrimSpace(req.IP); address != "" {
		if !utils.IsValidPublicIP(address) {
			return "", utils.InvalidIPFormatError{Address: address}
		}

		return address, nil
	}

	if e.resolver == nil {
		return "", utils.ClientIPUndetectableError{}
	}

	address, err := e.resolver.Resolve(ctx, req.Header, req.RemoteAddr)
	if err != nil {
		var undetectable utils.ClientIPUndetectableError
		if errors.As(err, &undetectable) {
			return "", err
		}

		log.Warn().Err(err).Msg("client address resolution failed")

		return "", utils.ClientIPUndetectableError{}
	}

	log.Debug().Str("address", address).Msg("resolved client address")

	return address, nil
}
