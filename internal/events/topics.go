package events

import "strings"

// Notification channels. Repositories pg_notify on these inside the same
// transaction that commits the mutation, so a delivered notification always
// refers to committed state.
//
// Payload conventions:
//   - ChannelPosts:    "{postID}:{authorID}" (colon-separated match keys)
//   - ChannelLikes:    "{userID}" (the viewer whose liked-set changed)
//   - ChannelComments: "{postID}"
//   - ChannelProfiles: "{userID}"
const (
	ChannelPosts    = "bislei_posts"
	ChannelLikes    = "bislei_likes"
	ChannelComments = "bislei_comments"
	ChannelProfiles = "bislei_profiles"
)

// KeyAll subscribes to every event on a topic regardless of key (the global feed)
const KeyAll = "*"

// Subscription keys on ChannelPosts carry a kind prefix so a post id and an
// author id cannot be confused. The match token (after the colon) is what
// gets compared against notification payload tokens.
const (
	postKeyPrefix   = "post:"
	authorKeyPrefix = "author:"
)

// PostKey builds the subscription key for a single post's snapshot
func PostKey(postID string) string { return postKeyPrefix + postID }

// AuthorKey builds the subscription key for an author's own-posts list
func AuthorKey(authorID string) string { return authorKeyPrefix + authorID }

// matchToken strips the kind prefix, if any, leaving the id a notification
// payload token is compared against
func matchToken(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[i+1:]
	}
	return key
}
