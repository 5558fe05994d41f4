package events

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"Bislei/internal/core/comments"
	"Bislei/internal/core/likes"
	"Bislei/internal/core/posts"
	"Bislei/internal/core/profiles"
)

// DeletedPost is the snapshot emitted for a post key that no longer
// resolves. Clients treat it as a removal signal, not a value to render.
type DeletedPost struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// RegisterSources binds every notification channel to its snapshot loader.
// Called once at startup before the hub accepts subscriptions.
func RegisterSources(
	hub *Hub,
	postSvc posts.Service,
	likeSvc likes.Service,
	commentSvc comments.Service,
	profileSvc profiles.Service,
) {
	// A posts key is the global feed ("*"), a post:{id} single-post
	// snapshot, or an author:{id} own-posts list. Notifications carry
	// "postID:authorID" so both id forms match on their token.
	hub.RegisterSource(ChannelPosts, func(ctx context.Context, key string) (any, error) {
		switch {
		case key == KeyAll:
			return postSvc.Feed(ctx, 0, 0)
		case strings.HasPrefix(key, postKeyPrefix):
			id := strings.TrimPrefix(key, postKeyPrefix)
			post, err := postSvc.GetPost(ctx, id)
			if errors.Is(err, posts.ErrPostNotFound) {
				// The post was deleted mid-subscription
				return DeletedPost{ID: id, Deleted: true}, nil
			}
			if err != nil {
				return nil, err
			}
			return post, nil
		case strings.HasPrefix(key, authorKeyPrefix):
			return postSvc.OwnPosts(ctx, strings.TrimPrefix(key, authorKeyPrefix))
		default:
			return nil, fmt.Errorf("malformed posts subscription key %q", key)
		}
	})

	hub.RegisterSource(ChannelLikes, func(ctx context.Context, key string) (any, error) {
		return likeSvc.LikedPostIDs(ctx, key)
	})

	hub.RegisterSource(ChannelComments, func(ctx context.Context, key string) (any, error) {
		return commentSvc.ListComments(ctx, key)
	})

	hub.RegisterSource(ChannelProfiles, func(ctx context.Context, key string) (any, error) {
		return profileSvc.Get(ctx, key)
	})
}
