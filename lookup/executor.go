package lookup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloud66-oss/geolookup/provider"
	"github.com/cloud66-oss/geolookup/utils"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTimeout = 10 * time.Second
	DefaultWorkers = 64

	workerExpireTime = time.Minute
)

type queryTask struct {
	ctx      context.Context
	index    int
	address  string
	provider provider.IPProvider
	start    time.Time
	results  chan<- queryOutcome
}

type queryOutcome struct {
	index  int
	result utils.ProviderResult
}

// Executor sends one lookup per registered provider and waits for all of
// them. Calls run on a shared worker pool and every QueryAll is bounded
// by the timeout.
type Executor struct {
	registry *provider.Registry
	timeout  time.Duration
	pool     *ants.PoolWithFunc
}

func NewExecutor(registry *provider.Registry, timeout time.Duration, workers int) (*Executor, error) {
	if registry == nil {
		return nil, errors.New("registry is required")
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if workers <= 0 {
		workers = DefaultWorkers
	}

	rv := &Executor{
		registry: registry,
		timeout:  timeout,
	}

	pool, err := ants.NewPoolWithFunc(workers, rv.query,
		ants.WithExpiryDuration(workerExpireTime))
	if err != nil {
		return nil, fmt.Errorf("cannot create a worker pool: %w", err)
	}

	rv.pool = pool

	return rv, nil
}

func (e *Executor) Registry() *provider.Registry {
	return e.registry
}

// QueryAll returns exactly one result per provider in registry order.
// It never fails: every problem ends up in the Error of the provider's
// own result. The timeout of every call starts when QueryAll is called,
// so time spent waiting for a free worker counts against it and QueryAll
// never outlives it.
func (e *Executor) QueryAll(ctx context.Context, address string) []utils.ProviderResult {
	providers := e.registry.Providers()
	results := make([]utils.ProviderResult, len(providers))
	collected := make([]bool, len(providers))
	outcomes := make(chan queryOutcome, len(providers))

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	go e.dispatch(ctx, address, providers, start, outcomes)

	for remaining := len(providers); remaining > 0; {
		select {
		case v := <-outcomes:
			results[v.index] = v.result
			collected[v.index] = true
			remaining--
		case <-ctx.Done():
			remaining = 0

			// pick up whatever finished together with the deadline
			for drained := false; !drained; {
				select {
				case v := <-outcomes:
					results[v.index] = v.result
					collected[v.index] = true
				default:
					drained = true
				}
			}
		}
	}

	for i, p := range providers {
		if !collected[i] {
			results[i] = failedResult(ctx, p, start)
		}
	}

	return results
}

// dispatch hands the tasks to the pool. Invoke blocks while all workers
// are busy, so it runs apart from the collecting loop in QueryAll.
func (e *Executor) dispatch(ctx context.Context, address string, providers []provider.IPProvider,
	start time.Time, outcomes chan<- queryOutcome) {
	for i, p := range providers {
		if ctx.Err() != nil {
			outcomes <- queryOutcome{index: i, result: failedResult(ctx, p, start)}
			continue
		}

		task := &queryTask{
			ctx:      ctx,
			index:    i,
			address:  address,
			provider: p,
			start:    start,
			results:  outcomes,
		}

		if err := e.pool.Invoke(task); err != nil {
			outcomes <- queryOutcome{
				index: i,
				result: utils.ProviderResult{
					Service:      p.Name(),
					Error:        fmt.Sprintf("cannot schedule a task: %s", err.Error()),
					ResponseTime: time.Since(start).Milliseconds(),
				},
			}
		}
	}
}

// failedResult is the result of a provider that has not answered before
// ctx was done.
func failedResult(ctx context.Context, p provider.IPProvider, start time.Time) utils.ProviderResult {
	err := ctx.Err()
	if errors.Is(err, context.DeadlineExceeded) {
		err = utils.ProviderTimeoutError{URL: p.Endpoint()}
	}

	return utils.ProviderResult{
		Service:      p.Name(),
		Error:        err.Error(),
		ResponseTime: time.Since(start).Milliseconds(),
	}
}

// Release stops the worker pool. QueryAll still returns a result per
// provider afterwards, all of them failed.
func (e *Executor) Release() {
	e.pool.Release()
}

func (e *Executor) query(arg interface{}) {
	task := arg.(*queryTask)

	var (
		info *utils.IPInfo
		err  error
	)

	if task.ctx.Err() != nil {
		// waited for a worker past the deadline
		task.results <- queryOutcome{
			index:  task.index,
			result: failedResult(task.ctx, task.provider, task.start),
		}

		return
	}

	info, err = safeLookup(task.ctx, task.provider, task.address)
	elapsed := time.Since(task.start).Milliseconds()

	if err == nil && info == nil {
		err = errors.New("provider returned no data")
	}

	if err != nil {
		log.Debug().
			Str("provider", task.provider.Name()).
			Str("address", task.address).
			Int64("response_time", elapsed).
			Err(err).
			Msg("lookup failed")

		task.results <- queryOutcome{
			index: task.index,
			result: utils.ProviderResult{
				Service:      task.provider.Name(),
				Error:        err.Error(),
				ResponseTime: elapsed,
			},
		}

		return
	}

	log.Debug().
		Str("provider", task.provider.Name()).
		Str("address", task.address).
		Int64("response_time", elapsed).
		Msg("lookup succeeded")

	task.results <- queryOutcome{
		index: task.index,
		result: utils.ProviderResult{
			Service:      task.provider.Name(),
			Success:      true,
			Data:         info,
			ResponseTime: elapsed,
		},
	}
}

func safeLookup(ctx context.Context, p provider.IPProvider, address string) (info *utils.IPInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			info = nil
			err = fmt.Errorf("provider panicked: %v", r)
		}
	}()

	return p.Lookup(ctx, address)
}
