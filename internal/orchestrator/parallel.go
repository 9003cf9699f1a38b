package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/griffnb/core-schema/internal/domain"
	"github.com/griffnb/core-schema/internal/resolver"
	"golang.org/x/sync/errgroup"
)

// rootPass pairs a root type with the result of its pass for deterministic
// ordering.
type rootPass struct {
	root   string
	id     string
	result *resolver.Result
}

// resolveParallel resolves every root in its own context using an errgroup
// bounded by the configured concurrency. Results are sorted by root name,
// then identity, regardless of goroutine scheduling order.
func (s *Service) resolveParallel(ctx context.Context, roots []domain.TypeDescriptor) ([]rootPass, error) {
	var (
		mu        sync.Mutex
		collected []rootPass
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Concurrency)

	for _, root := range roots {
		if root == nil {
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			rctx := resolver.NewContext()
			result, err := s.resolver.Resolve(rctx, root)
			if err != nil {
				return fmt.Errorf("failed to resolve %s: %w", root, err)
			}

			if s.config.Debug != nil {
				s.config.Debug.Printf("Orchestrator: Resolved %s (%d components)", root, len(result.Schemas))
			}

			mu.Lock()
			collected = append(collected, rootPass{
				root:   root.String(),
				id:     root.ID(),
				result: result,
			})
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Sort by root for deterministic output.
	sort.Slice(collected, func(i, j int) bool {
		if collected[i].root != collected[j].root {
			return collected[i].root < collected[j].root
		}
		return collected[i].id < collected[j].id
	})

	return collected, nil
}
