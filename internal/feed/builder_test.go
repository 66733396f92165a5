package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skillhive-agent/internal/core/domain"
	"skillhive-agent/internal/core/ports"
)

type fakeBackend struct {
	ports.Backend

	profile    *domain.PrivateProfile
	profileErr error

	posts    []domain.Post
	postsErr error

	comments    map[string][]domain.Comment
	commentsErr map[string]error
	likes       map[string][]domain.Like
	likesErr    map[string]error
}

func (f *fakeBackend) Name() string { return "skillhive" }

func (f *fakeBackend) GetPrivateProfile(ctx context.Context, userID string) (*domain.PrivateProfile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profile, nil
}

func (f *fakeBackend) ListPosts(ctx context.Context) ([]domain.Post, error) {
	if f.postsErr != nil {
		return nil, f.postsErr
	}
	return f.posts, nil
}

func (f *fakeBackend) ListComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	if err := f.commentsErr[postID]; err != nil {
		return nil, err
	}
	return f.comments[postID], nil
}

func (f *fakeBackend) ListLikes(ctx context.Context, postID string) ([]domain.Like, error) {
	if err := f.likesErr[postID]; err != nil {
		return nil, err
	}
	return f.likes[postID], nil
}

func at(day int) time.Time {
	return time.Date(2025, time.March, day, 12, 0, 0, 0, time.UTC)
}

func post(id, userID string, day int) domain.Post {
	return domain.Post{ID: id, UserID: userID, Title: id, CreatedAt: at(day)}
}

func TestHomeFiltersByFollowGraphAndSortsNewestFirst(t *testing.T) {
	backend := &fakeBackend{
		profile: &domain.PrivateProfile{
			User:         domain.User{ID: "u1"},
			FollowingIDs: []string{"u2"},
		},
		posts: []domain.Post{
			post("p1", "u1", 1),
			post("p2", "u2", 3),
			post("p3", "u3", 2), // not followed, dropped
			post("p4", "u2", 2),
		},
	}
	b := NewBuilder(backend, zap.NewNop())

	items, err := b.Home(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, "p2", items[0].Post.ID)
	assert.Equal(t, "p4", items[1].Post.ID)
	assert.Equal(t, "p1", items[2].Post.ID)
}

func TestHomeRequiresAuthentication(t *testing.T) {
	b := NewBuilder(&fakeBackend{}, zap.NewNop())

	items, err := b.Home(context.Background(), "")
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Nil(t, items, "auth wall, not an empty feed")
}

func TestHomeEmptyFeedIsNotAnError(t *testing.T) {
	backend := &fakeBackend{
		profile: &domain.PrivateProfile{User: domain.User{ID: "u1"}},
		posts:   []domain.Post{post("p1", "u9", 1)},
	}
	b := NewBuilder(backend, zap.NewNop())

	items, err := b.Home(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDashboardKeepsOnlyViewerPosts(t *testing.T) {
	backend := &fakeBackend{
		posts: []domain.Post{
			post("p1", "u1", 1),
			post("p2", "u2", 2),
			post("p3", "u1", 3),
		},
	}
	b := NewBuilder(backend, zap.NewNop())

	items, err := b.Dashboard(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "p3", items[0].Post.ID)
	assert.Equal(t, "p1", items[1].Post.ID)
}

func TestProfileIsViewerIndependent(t *testing.T) {
	backend := &fakeBackend{
		posts: []domain.Post{post("p1", "u2", 1)},
		likes: map[string][]domain.Like{
			"p1": {{ID: "l1", UserID: "u1"}, {ID: "l2", UserID: "u3"}},
		},
	}
	b := NewBuilder(backend, zap.NewNop())

	items, err := b.Profile(context.Background(), "u2", "u1")
	require.NoError(t, err)

	require.Len(t, items, 1)
	require.NotNil(t, items[0].ViewerLike)
	assert.Equal(t, "l1", items[0].ViewerLike.ID)

	// Anonymous viewer still sees the posts, just without a like flag.
	items, err = b.Profile(context.Background(), "u2", "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].ViewerLike)
}

func TestEnrichmentFailuresDegradePerFetch(t *testing.T) {
	backend := &fakeBackend{
		posts: []domain.Post{
			post("p1", "u1", 2),
			post("p2", "u1", 1),
		},
		comments: map[string][]domain.Comment{
			"p2": {{ID: "c1", PostID: "p2", UserID: "u2", Content: "nice"}},
		},
		commentsErr: map[string]error{"p1": errors.New("comments down")},
		likes: map[string][]domain.Like{
			"p1": {{ID: "l1", UserID: "u1"}},
			"p2": {{ID: "l2", UserID: "u2"}},
		},
	}
	b := NewBuilder(backend, zap.NewNop())

	items, err := b.Dashboard(context.Background(), "u1")
	require.NoError(t, err, "one post's failure never aborts the batch")
	require.Len(t, items, 2)

	// p1: comment fetch failed, like fetch succeeded.
	assert.Empty(t, items[0].Comments)
	require.Len(t, items[0].Likes, 1)
	require.NotNil(t, items[0].ViewerLike)

	// p2 is untouched.
	require.Len(t, items[1].Comments, 1)
	require.Len(t, items[1].Likes, 1)
	assert.Nil(t, items[1].ViewerLike)
}

func TestBasePostListFailureIsAWholeViewError(t *testing.T) {
	backend := &fakeBackend{
		profile:  &domain.PrivateProfile{User: domain.User{ID: "u1"}},
		postsErr: errors.New("backend down"),
	}
	b := NewBuilder(backend, zap.NewNop())

	_, err := b.Home(context.Background(), "u1")
	assert.Error(t, err)
}

func TestSortIsStableOnEqualTimestamps(t *testing.T) {
	backend := &fakeBackend{
		posts: []domain.Post{
			post("p1", "u1", 1),
			post("p2", "u1", 1),
			post("p3", "u1", 1),
		},
	}
	b := NewBuilder(backend, zap.NewNop())

	items, err := b.Dashboard(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, "p1", items[0].Post.ID)
	assert.Equal(t, "p2", items[1].Post.ID)
	assert.Equal(t, "p3", items[2].Post.ID)
}
