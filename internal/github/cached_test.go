package github_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dangerclosesec/colab/internal/github"
	"github.com/dangerclosesec/colab/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCachedClient(t *testing.T) {
	ctx := context.Background()

	t.Run("repository lookups hit the api once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		inner := mocks.NewMockMetadataClient(ctrl)
		client := github.NewCachedClient(inner, time.Minute)

		inner.EXPECT().Languages(gomock.Any(), "org/repo").Return([]string{"Go"}, nil).Times(1)
		inner.EXPECT().Contributors(gomock.Any(), "org/repo").Return([]string{"alice"}, nil).Times(1)
		inner.EXPECT().RepositoryExists(gomock.Any(), "org/repo").Return(true, nil).Times(1)

		for i := 0; i < 2; i++ {
			langs, err := client.Languages(ctx, "org/repo")
			require.NoError(t, err)
			assert.Equal(t, []string{"Go"}, langs)

			handles, err := client.Contributors(ctx, "org/repo")
			require.NoError(t, err)
			assert.Equal(t, []string{"alice"}, handles)

			ok, err := client.RepositoryExists(ctx, "org/repo")
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})

	t.Run("errors are not cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		inner := mocks.NewMockMetadataClient(ctrl)
		client := github.NewCachedClient(inner, time.Minute)

		gomock.InOrder(
			inner.EXPECT().Languages(gomock.Any(), "org/repo").Return(nil, errors.New("rate limited")),
			inner.EXPECT().Languages(gomock.Any(), "org/repo").Return([]string{"Go"}, nil),
		)

		_, err := client.Languages(ctx, "org/repo")
		require.Error(t, err)

		langs, err := client.Languages(ctx, "org/repo")
		require.NoError(t, err)
		assert.Equal(t, []string{"Go"}, langs)
	})

	t.Run("a private or missing repository is asked again", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		inner := mocks.NewMockMetadataClient(ctrl)
		client := github.NewCachedClient(inner, time.Minute)

		gomock.InOrder(
			inner.EXPECT().RepositoryExists(gomock.Any(), "org/soon-public").Return(false, nil),
			inner.EXPECT().RepositoryExists(gomock.Any(), "org/soon-public").Return(true, nil),
		)

		ok, err := client.RepositoryExists(ctx, "org/soon-public")
		require.NoError(t, err)
		assert.False(t, ok)

		for i := 0; i < 2; i++ {
			ok, err = client.RepositoryExists(ctx, "org/soon-public")
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})

	t.Run("ownership checks are never cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		inner := mocks.NewMockMetadataClient(ctrl)
		client := github.NewCachedClient(inner, time.Minute)

		inner.EXPECT().VerifyHandleOwnership(gomock.Any(), "ada", "ada@example.com", false).Return(true, nil).Times(2)

		for i := 0; i < 2; i++ {
			ok, err := client.VerifyHandleOwnership(ctx, "ada", "ada@example.com", false)
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})
}
