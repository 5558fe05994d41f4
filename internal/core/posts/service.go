package posts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"Bislei/internal/core/blobs"
)

const maxCaptionLength = 500

type postService struct {
	repo   Repository
	blobs  blobs.Store
	logger *slog.Logger
}

// NewService creates a new post service
func NewService(repo Repository, blobStore blobs.Store, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		repo:   repo,
		blobs:  blobStore,
		logger: logger,
	}
}

// UploadPost stores the image first, then writes the post record with zero
// counters. The global row and the author mirror row commit in one
// transaction inside the repository, so the profile view can never observe
// an upload that exists only in the global feed. A crash between the blob
// write and the record write orphans the blob; that is an accepted risk.
func (s *postService) UploadPost(ctx context.Context, req UploadPostRequest) (*Post, error) {
	if strings.TrimSpace(req.AuthorID) == "" {
		return nil, fmt.Errorf("author id is required")
	}
	if len(req.ImageData) == 0 {
		return nil, ErrEmptyImage
	}
	caption := strings.TrimSpace(req.Caption)
	if utf8.RuneCountInString(caption) > maxCaptionLength {
		return nil, ErrCaptionTooLong
	}

	postID := uuid.New().String()
	key := fmt.Sprintf("posts/%s/%s%s", req.AuthorID, postID, blobs.ExtensionFor(req.MimeType))

	imageURL, err := s.blobs.Put(ctx, key, req.ImageData, req.MimeType)
	if err != nil {
		s.logger.Error("post image upload failed",
			"author", req.AuthorID,
			"error", err)
		return nil, fmt.Errorf("failed to store post image: %w", err)
	}

	post := &Post{
		ID:        postID,
		AuthorID:  req.AuthorID,
		ImageURL:  imageURL,
		Caption:   caption,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, post); err != nil {
		// The blob is already on disk at this point. Try to reclaim it so a
		// failed upload does not leave garbage behind; a failed reclaim is
		// only logged.
		if delErr := s.blobs.Delete(ctx, imageURL); delErr != nil {
			s.logger.Warn("failed to reclaim blob after post create failure",
				"url", imageURL,
				"error", delErr)
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("post uploaded",
		"post", post.ID,
		"author", post.AuthorID)

	return post, nil
}

func (s *postService) GetPost(ctx context.Context, id string) (*Post, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("post id is required")
	}
	return s.repo.GetByID(ctx, id)
}

// DeletePost deletes the image blob best-effort, then the post record.
// A missing blob is not an error: the image may have been removed out of
// band, and the record is the thing the owner actually asked to delete.
func (s *postService) DeletePost(ctx context.Context, viewerID, postID string) error {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != viewerID {
		return ErrNotPostOwner
	}

	if post.ImageURL != "" {
		if err := s.blobs.Delete(ctx, post.ImageURL); err != nil {
			s.logger.Warn("post image delete failed, continuing with record delete",
				"post", post.ID,
				"url", post.ImageURL,
				"error", err)
		}
	}

	if err := s.repo.Delete(ctx, post.ID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Info("post deleted",
		"post", post.ID,
		"author", post.AuthorID)

	return nil
}

func (s *postService) Feed(ctx context.Context, limit, offset int) ([]*Post, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListFeed(ctx, limit, offset)
}

func (s *postService) OwnPosts(ctx context.Context, authorID string) ([]*Post, error) {
	if strings.TrimSpace(authorID) == "" {
		return nil, fmt.Errorf("author id is required")
	}
	return s.repo.ListByAuthor(ctx, authorID)
}
