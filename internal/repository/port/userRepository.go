package repository

import (
	"context"

	"github.com/google/uuid"
)

// Profile is the read-only identity window this core needs for presentation:
// display name and avatar attached to envelopes and role listings.
type Profile struct {
	ID              uuid.UUID
	DisplayName     *string
	ProfileImageURL *string
}

// UserRepository resolves users to their presentation profiles. Registration
// and account mutation live in the out-of-scope auth component.
type UserRepository interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
}
