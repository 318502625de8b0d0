package hunt

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParseAll parses independent reports concurrently. Results keep the order of
// texts; the first failure cancels the remaining work and is returned with the
// index of the report that caused it.
func ParseAll(ctx context.Context, texts []string, opts Options) ([]*Summary, error) {
	out := make([]*Summary, len(texts))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, text := range texts {
		i, text := i, text
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			s, err := Parse(text, opts)
			if err != nil {
				return fmt.Errorf("report %d: %w", i, err)
			}
			out[i] = s
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
