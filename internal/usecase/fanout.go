package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/pitchcount/internal/platform/logging"
	"github.com/sourcegraph/conc/panics"
)

const defaultFanOutWorkers = 8

type fanOutResult[K comparable, V any] struct {
	key       K
	value     V
	recovered *panics.Recovered
}

// fanOut runs fn once per distinct key on a bounded pool and returns after
// every call has finished. A key whose fn panics is logged and maps to the
// zero value of V, the same as a failed fetch.
func fanOut[K comparable, V any](ctx context.Context, logger *logging.Logger, keys []K, maxWorkers int, fn func(context.Context, K) V) (map[K]V, error) {
	unique := make([]K, 0, len(keys))
	seen := make(map[K]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, key)
	}

	out := make(map[K]V, len(unique))
	if len(unique) == 0 {
		return out, nil
	}

	pool, err := ants.NewPool(normalizeFanOutWorkers(maxWorkers, len(unique)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan fanOutResult[K, V], len(unique))
	var workers sync.WaitGroup
	for _, key := range unique {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			var value V
			var catcher panics.Catcher
			catcher.Try(func() { value = fn(ctx, key) })
			results <- fanOutResult[K, V]{key: key, value: value, recovered: catcher.Recovered()}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		if row.recovered != nil {
			logger.ErrorContext(ctx, "fan-out task panicked, using empty value",
				"key", fmt.Sprint(row.key),
				"error", row.recovered.AsError(),
			)
			var zero V
			out[row.key] = zero
			continue
		}
		out[row.key] = row.value
	}
	return out, nil
}

func normalizeFanOutWorkers(value, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = defaultFanOutWorkers
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
