package profiles

import "context"

// Service defines the business logic interface for the viewer's own profile
type Service interface {
	// Get retrieves a profile. An absent profile yields a zero-value profile
	// carrying only the user id, never an error.
	Get(ctx context.Context, userID string) (*Profile, error)

	// Update applies a partial merge of the supplied fields. When imageData
	// is non-empty the avatar is uploaded to a key scoped by user id first
	// and the resulting URL merges in with the fields. The merge either
	// commits whole or not at all.
	Update(ctx context.Context, userID string, req UpdateProfileRequest, imageData []byte, imageMime string) error
}

// Repository defines the data access interface for profiles
type Repository interface {
	// Get retrieves a profile by user id, or ErrProfileNotFound
	Get(ctx context.Context, userID string) (*Profile, error)

	// Merge applies the non-nil fields of m to the stored row in one UPDATE
	Merge(ctx context.Context, userID string, m ProfileMerge) error
}
