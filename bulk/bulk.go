// Package bulk runs many independent calls with bounded concurrency and
// per-item retries, collecting every result instead of stopping at the first
// failure.
package bulk

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	// Concurrency caps the calls in flight; values below 1 mean 1.
	Concurrency int
	// Retries is the number of extra attempts after a failed call.
	Retries int
	// InitialInterval is the first backoff wait; zero uses the backoff
	// library's default.
	InitialInterval time.Duration
}

// Outcome is the settled result of one item.
type Outcome[R any] struct {
	Index int
	Value R
	Err   error
}

func (o Outcome[R]) OK() bool {
	return o.Err == nil
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Run calls fn for every item and returns one Outcome per item, in input
// order. A failing item never cancels the others.
func Run[T, R any](ctx context.Context, items []T, opts Options, fn func(context.Context, T) (R, error)) []Outcome[R] {
	outcomes := make([]Outcome[R], len(items))
	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, item := range items {
		g.Go(func() error {
			value, err := attempt(ctx, opts, i, func() (R, error) { return fn(ctx, item) })
			outcomes[i] = Outcome[R]{Index: i, Value: value, Err: err}
			return nil
		})
	}
	g.Wait()
	return outcomes
}

func attempt[R any](ctx context.Context, opts Options, index int, call func() (R, error)) (R, error) {
	var value R
	if err := ctx.Err(); err != nil {
		return value, err
	}

	eb := backoff.NewExponentialBackOff()
	if opts.InitialInterval > 0 {
		eb.InitialInterval = opts.InitialInterval
	}
	var b backoff.BackOff = backoff.WithMaxRetries(eb, uint64(max(opts.Retries, 0)))
	b = backoff.WithContext(b, ctx)

	tries := 0
	err := backoff.Retry(func() error {
		tries++
		v, err := call()
		if err != nil {
			return err
		}
		value = v
		return nil
	}, b)
	if err != nil && tries > 1 {
		log.Debugf("item %d failed after %d attempts: %v", index, tries, err)
	}
	return value, err
}

// Split partitions outcomes into successes and failures, keeping order.
func Split[R any](outcomes []Outcome[R]) (ok, failed []Outcome[R]) {
	for _, o := range outcomes {
		if o.OK() {
			ok = append(ok, o)
		} else {
			failed = append(failed, o)
		}
	}
	return ok, failed
}
