package profiles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"Bislei/internal/core/blobs"
)

type profileService struct {
	repo   Repository
	blobs  blobs.Store
	logger *slog.Logger
}

// NewService creates a new profile service
func NewService(repo Repository, blobStore blobs.Store, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &profileService{
		repo:   repo,
		blobs:  blobStore,
		logger: logger,
	}
}

func (s *profileService) Get(ctx context.Context, userID string) (*Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user id is required")
	}

	profile, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			// Absent profile reads as empty default, never as an error
			return &Profile{UserID: userID}, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// Update uploads the avatar (if any) before merging fields, so the merged
// row always points at a blob that exists. A crash between the two steps
// orphans the avatar file but cannot corrupt the profile; the merge itself
// is a single UPDATE.
func (s *profileService) Update(ctx context.Context, userID string, req UpdateProfileRequest, imageData []byte, imageMime string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id is required")
	}

	merge, dirty := req.fields()

	if len(imageData) > 0 {
		key := fmt.Sprintf("avatars/%s%s", userID, blobs.ExtensionFor(imageMime))
		url, err := s.blobs.Put(ctx, key, imageData, imageMime)
		if err != nil {
			s.logger.Error("avatar upload failed",
				"user", userID,
				"error", err)
			return fmt.Errorf("failed to store avatar: %w", err)
		}
		merge.AvatarURL = &url
		dirty = true
	}

	if !dirty {
		// Nothing to write; matches the client submitting an untouched form
		return nil
	}

	if err := s.repo.Merge(ctx, userID, merge); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("profile updated", "user", userID)
	return nil
}
