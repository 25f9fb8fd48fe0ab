package directory

import (
	"context"
	"time"

	"github.com/hirewire/jobboard/internal/domain"
	"github.com/hirewire/jobboard/internal/pkg/ctxlog"
	"golang.org/x/sync/errgroup"
)

// ResolveOptions bound the fan-out a batched resolve may open.
type ResolveOptions struct {
	Concurrency int           // max in-flight lookups, default 5
	Timeout     time.Duration // per-lookup deadline, default 5s
}

// ResolveMany resolves a set of directory user ids with bounded concurrency
// and a per-call timeout. It never fails as a whole: ids whose lookup
// errored or found nothing map to nil, and callers substitute fallbacks.
func (c *Client) ResolveMany(ctx context.Context, ids []string, opts ResolveOptions) map[string]*domain.DirectoryUser {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 5
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}

	// Deduplicate while preserving a stable slot per id.
	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	results := make([]*domain.DirectoryUser, len(unique))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, id := range unique {
		g.Go(func() error {
			lookupCtx, cancel := context.WithTimeout(gctx, opts.Timeout)
			defer cancel()

			user, err := c.GetUser(lookupCtx, id)
			if err != nil {
				ctxlog.FromContext(ctx).Warn("directory lookup failed",
					"user_id", id,
					"error", err,
				)
				return nil
			}
			results[i] = user
			return nil
		})
	}

	// Lookups swallow their errors, so Wait only synchronizes.
	_ = g.Wait()

	resolved := make(map[string]*domain.DirectoryUser, len(unique))
	for i, id := range unique {
		resolved[id] = results[i]
	}
	return resolved
}
