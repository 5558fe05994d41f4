package profiles

import (
	"strings"
	"time"
)

// Profile is the public-facing summary of a user: what gets rendered next to
// their posts and comments. Owned and mutated only by that user; read (and
// cached) by everyone else.
type Profile struct {
	JoinedAt  time.Time `json:"joinedAt" db:"joined_at"`
	UserID    string    `json:"userId" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Bio       string    `json:"bio" db:"bio"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	AvatarURL string    `json:"avatarUrl" db:"avatar_url"`
}

// UpdateProfileRequest carries a partial-merge update: nil fields are left
// untouched, non-nil fields overwrite. Blank strings are dropped before the
// merge, matching the mobile client's "only submit what was filled in"
// behavior.
type UpdateProfileRequest struct {
	Name  *string
	Bio   *string
	Email *string
	Phone *string
}

// fields returns the merge with blank values dropped, and whether anything
// remains to write
func (r UpdateProfileRequest) fields() (ProfileMerge, bool) {
	var m ProfileMerge
	any := false
	set := func(dst **string, src *string) {
		if src == nil {
			return
		}
		v := strings.TrimSpace(*src)
		if v == "" {
			return
		}
		*dst = &v
		any = true
	}
	set(&m.Name, r.Name)
	set(&m.Bio, r.Bio)
	set(&m.Email, r.Email)
	set(&m.Phone, r.Phone)
	return m, any
}

// ProfileMerge is the resolved set of column updates applied in a single
// UPDATE. Nil means "keep the stored value".
type ProfileMerge struct {
	Name      *string
	Bio       *string
	Email     *string
	Phone     *string
	AvatarURL *string
}
