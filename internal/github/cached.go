package github

import (
	"context"
	"time"

	"github.com/dangerclosesec/colab/internal/cache"
)

// CachedClient remembers repository lookups for a short while so that a
// project add followed by a refresh run does not hit the rate limit twice.
// Ownership checks always go to the wrapped client.
type CachedClient struct {
	inner  MetadataClient
	lists  *cache.Cache[[]string]
	exists *cache.Cache[bool]
}

var _ MetadataClient = (*CachedClient)(nil)

func NewCachedClient(inner MetadataClient, ttl time.Duration) *CachedClient {
	return &CachedClient{
		inner:  inner,
		lists:  cache.New[[]string](ttl, ttl),
		exists: cache.New[bool](ttl, ttl),
	}
}

// Start runs expiry cleanup until ctx is done.
func (c *CachedClient) Start(ctx context.Context) {
	c.lists.StartCleanup(ctx)
	c.exists.StartCleanup(ctx)
}

func (c *CachedClient) Close() {
	c.lists.StopCleanup()
	c.exists.StopCleanup()
}

func (c *CachedClient) Languages(ctx context.Context, repo string) ([]string, error) {
	return c.lists.GetOrSet("languages:"+repo, func() ([]string, error) {
		return c.inner.Languages(ctx, repo)
	})
}

func (c *CachedClient) Contributors(ctx context.Context, repo string) ([]string, error) {
	return c.lists.GetOrSet("contributors:"+repo, func() ([]string, error) {
		return c.inner.Contributors(ctx, repo)
	})
}

// RepositoryExists only remembers positive answers, so a repository that
// was just made public is seen on the next attempt.
func (c *CachedClient) RepositoryExists(ctx context.Context, repo string) (bool, error) {
	if ok, hit := c.exists.Get(repo); hit {
		return ok, nil
	}

	ok, err := c.inner.RepositoryExists(ctx, repo)
	if err != nil {
		return false, err
	}
	if ok {
		c.exists.Set(repo, true)
	}
	return ok, nil
}

func (c *CachedClient) VerifyHandleOwnership(ctx context.Context, handle, email string, isOrg bool) (bool, error) {
	return c.inner.VerifyHandleOwnership(ctx, handle, email, isOrg)
}
