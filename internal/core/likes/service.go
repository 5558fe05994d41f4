package likes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

type likeService struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new like service
func NewService(repo Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &likeService{
		repo:   repo,
		logger: logger,
	}
}

func (s *likeService) ToggleLike(ctx context.Context, viewerID, postID string) (*ToggleResult, error) {
	if strings.TrimSpace(viewerID) == "" {
		return nil, fmt.Errorf("viewer id is required")
	}
	if strings.TrimSpace(postID) == "" {
		return nil, fmt.Errorf("post id is required")
	}

	result, err := s.repo.Toggle(ctx, viewerID, postID)
	if err != nil {
		if errors.Is(err, ErrTransactionConflict) {
			// Surfaced as-is: the caller decides whether to re-check state
			// and retry. Retrying here without re-reading would drift the
			// counter.
			s.logger.Warn("like toggle conflict",
				"viewer", viewerID,
				"post", postID)
			return nil, err
		}
		if errors.Is(err, ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	s.logger.Info("like toggled",
		"viewer", viewerID,
		"post", postID,
		"liked", result.Liked,
		"like_count", result.LikeCount)

	return result, nil
}

func (s *likeService) LikedPostIDs(ctx context.Context, viewerID string) ([]string, error) {
	if strings.TrimSpace(viewerID) == "" {
		return nil, fmt.Errorf("viewer id is required")
	}
	return s.repo.ListPostIDsByUser(ctx, viewerID)
}

func (s *likeService) IsLiked(ctx context.Context, viewerID, postID string) (bool, error) {
	if strings.TrimSpace(viewerID) == "" || strings.TrimSpace(postID) == "" {
		return false, nil
	}
	return s.repo.Exists(ctx, viewerID, postID)
}
