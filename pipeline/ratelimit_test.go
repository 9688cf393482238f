package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/biomark"
	"github.com/fwojciec/biomark/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("implements biomark.DomainLimiter interface", func(t *testing.T) {
		t.Parallel()
		var _ biomark.DomainLimiter = pipeline.NewDomainLimiter(1)
	})

	t.Run("allows immediate request when under limit", func(t *testing.T) {
		t.Parallel()

		limiter := pipeline.NewDomainLimiter(10)

		start := time.Now()
		err := limiter.Wait(context.Background(), "pubmed.ncbi.nlm.nih.gov")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "first request should be immediate")
	})

	t.Run("rate limits requests to same host", func(t *testing.T) {
		t.Parallel()

		limiter := pipeline.NewDomainLimiter(10) // 100ms between requests

		err := limiter.Wait(context.Background(), "pubmed.ncbi.nlm.nih.gov")
		require.NoError(t, err)

		start := time.Now()
		err = limiter.Wait(context.Background(), "pubmed.ncbi.nlm.nih.gov")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond, "should wait for rate limit")
	})

	t.Run("different hosts have independent limits", func(t *testing.T) {
		t.Parallel()

		limiter := pipeline.NewDomainLimiter(10)

		err := limiter.Wait(context.Background(), "pubmed.ncbi.nlm.nih.gov")
		require.NoError(t, err)

		start := time.Now()
		err = limiter.Wait(context.Background(), "www.ncbi.nlm.nih.gov")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "different host should not wait")
	})

	t.Run("zero rate disables limiting", func(t *testing.T) {
		t.Parallel()

		limiter := pipeline.NewDomainLimiter(0)

		start := time.Now()
		for range 5 {
			require.NoError(t, limiter.Wait(context.Background(), "example.com"))
		}
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := pipeline.NewDomainLimiter(1)

		err := limiter.Wait(context.Background(), "example.com")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err = limiter.Wait(ctx, "example.com")
		assert.Error(t, err, "should fail when context times out")
	})
}
