// Package feed builds the engagement-annotated post lists for the three
// viewing contexts: home (follow graph), dashboard (own posts), and another
// user's profile.
package feed

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"skillhive-agent/internal/core/domain"
	"skillhive-agent/internal/core/ports"
)

// ErrAuthRequired distinguishes the auth wall from a computed-but-empty
// feed: an anonymous viewer gets this error, never an empty list.
var ErrAuthRequired = errors.New("feed: sign in to view this feed")

type Builder struct {
	backend ports.Backend
	log     *zap.Logger
}

func NewBuilder(backend ports.Backend, log *zap.Logger) *Builder {
	return &Builder{backend: backend, log: log}
}

// Home builds the follow-graph feed: posts by followed users plus the
// viewer's own, newest first.
func (b *Builder) Home(ctx context.Context, viewerID string) ([]domain.FeedItem, error) {
	if viewerID == "" {
		return nil, ErrAuthRequired
	}

	profile, err := b.backend.GetPrivateProfile(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	following := make(map[string]struct{}, len(profile.FollowingIDs))
	for _, id := range profile.FollowingIDs {
		following[id] = struct{}{}
	}

	posts, err := b.backend.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	kept := posts[:0:0]
	for _, p := range posts {
		if _, ok := following[p.UserID]; ok || p.UserID == viewerID {
			kept = append(kept, p)
		}
	}
	return b.enrich(ctx, sortNewestFirst(kept), viewerID)
}

// Dashboard builds the viewer's own-posts feed.
func (b *Builder) Dashboard(ctx context.Context, viewerID string) ([]domain.FeedItem, error) {
	if viewerID == "" {
		return nil, ErrAuthRequired
	}
	return b.Profile(ctx, viewerID, viewerID)
}

// Profile builds the feed of posts authored by profileUserID. The filter is
// viewer-independent; viewerID (possibly empty) only drives ViewerLike.
func (b *Builder) Profile(ctx context.Context, profileUserID, viewerID string) ([]domain.FeedItem, error) {
	posts, err := b.backend.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	kept := posts[:0:0]
	for _, p := range posts {
		if p.UserID == profileUserID {
			kept = append(kept, p)
		}
	}
	return b.enrich(ctx, sortNewestFirst(kept), viewerID)
}

// enrich fetches comments and likes for every post, concurrently per post
// and across posts. A failed fetch degrades that one post to empty defaults;
// it never aborts the batch. Each post writes only its own output slot.
func (b *Builder) enrich(ctx context.Context, posts []domain.Post, viewerID string) ([]domain.FeedItem, error) {
	items := make([]domain.FeedItem, len(posts))

	var g errgroup.Group
	for i, p := range posts {
		i, p := i, p
		g.Go(func() error {
			comments := []domain.Comment{}
			likes := []domain.Like{}

			var inner errgroup.Group
			inner.Go(func() error {
				fetched, err := b.backend.ListComments(ctx, p.ID)
				if err != nil {
					b.log.Warn("comment fetch failed", zap.String("post", p.ID), zap.Error(err))
					return nil
				}
				comments = fetched
				return nil
			})
			inner.Go(func() error {
				fetched, err := b.backend.ListLikes(ctx, p.ID)
				if err != nil {
					b.log.Warn("like fetch failed", zap.String("post", p.ID), zap.Error(err))
					return nil
				}
				likes = fetched
				return nil
			})
			inner.Wait()

			item := domain.FeedItem{Post: p, Comments: comments, Likes: likes}
			if viewerID != "" {
				for _, l := range likes {
					if l.UserID == viewerID {
						like := l
						item.ViewerLike = &like
						break
					}
				}
			}
			items[i] = item
			return nil
		})
	}
	g.Wait()

	return items, nil
}

// sortNewestFirst orders posts descending by creation time; ties keep their
// input order.
func sortNewestFirst(posts []domain.Post) []domain.Post {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts
}
