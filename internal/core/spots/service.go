package spots

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrSpotNotFound is returned when a spot lookup finds no matching record
var ErrSpotNotFound = errors.New("fishing spot not found")

// Service defines the read interface for fishing spots
type Service interface {
	List(ctx context.Context) ([]*FishingSpot, error)
	Get(ctx context.Context, id string) (*FishingSpot, error)
}

// Repository defines the data access interface for fishing spots
type Repository interface {
	List(ctx context.Context) ([]*FishingSpot, error)
	GetByID(ctx context.Context, id string) (*FishingSpot, error)
}

type spotService struct {
	repo Repository
}

// NewService creates a new fishing spot service
func NewService(repo Repository) Service {
	return &spotService{repo: repo}
}

func (s *spotService) List(ctx context.Context) ([]*FishingSpot, error) {
	return s.repo.List(ctx)
}

func (s *spotService) Get(ctx context.Context, id string) (*FishingSpot, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("spot id is required")
	}
	return s.repo.GetByID(ctx, id)
}
