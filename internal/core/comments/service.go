package comments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

type commentService struct {
	repo     Repository
	resolver ProfileResolver
	logger   *slog.Logger
}

// NewService creates a new comment service. resolver may be nil when no
// display-identity resolution is wanted (tests, backfills).
func NewService(repo Repository, resolver ProfileResolver, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &commentService{
		repo:     repo,
		resolver: resolver,
		logger:   logger,
	}
}

func (s *commentService) AddComment(ctx context.Context, viewerID, postID, text string) (*Comment, error) {
	if strings.TrimSpace(viewerID) == "" {
		return nil, fmt.Errorf("viewer id is required")
	}
	if strings.TrimSpace(postID) == "" {
		return nil, fmt.Errorf("post id is required")
	}

	content := strings.TrimSpace(text)
	if content == "" {
		// Whitespace-only input is dropped silently: no record, no error
		return nil, nil
	}

	comment := &Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		AuthorID:  viewerID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		if errors.Is(err, ErrPostNotFound) || errors.Is(err, ErrTransactionConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	s.logger.Info("comment added",
		"comment", comment.ID,
		"post", postID,
		"author", viewerID)

	// Warm the commenter's summary so the list render that follows doesn't
	// miss. Best-effort: a failed resolve only logs.
	if s.resolver != nil {
		if _, err := s.resolver.Resolve(ctx, viewerID); err != nil {
			s.logger.Warn("failed to resolve commenter profile",
				"user", viewerID,
				"error", err)
		}
	}

	return comment, nil
}

func (s *commentService) ListComments(ctx context.Context, postID string) ([]*Comment, error) {
	if strings.TrimSpace(postID) == "" {
		return nil, fmt.Errorf("post id is required")
	}

	list, err := s.repo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	// Resolve each distinct author once; cache hits are free
	if s.resolver != nil {
		seen := make(map[string]struct{}, len(list))
		for _, c := range list {
			if _, ok := seen[c.AuthorID]; ok {
				continue
			}
			seen[c.AuthorID] = struct{}{}
			if _, err := s.resolver.Resolve(ctx, c.AuthorID); err != nil {
				s.logger.Debug("comment author profile unresolved",
					"user", c.AuthorID,
					"error", err)
			}
		}
	}

	return list, nil
}
