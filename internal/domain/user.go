package domain

import (
	"context"
	"time"
)

type User struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	Native        string
	MobileNo      string
	Experience    *int
	Skills        []string
	Designation   string
	Department    string
	DateOfBirth   *time.Time
	DateOfJoining *time.Time
	ImageURL      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasLoginAccess reports whether the user can authenticate. Profiles created
// without a credential (directory-only entries from bulk import) carry an
// empty hash.
func (u *User) HasLoginAccess() bool {
	return u.PasswordHash != ""
}

type CreateUserInput struct {
	Name          string
	Email         string
	PasswordHash  string
	Native        string
	MobileNo      string
	Experience    *int
	Skills        []string
	Designation   string
	Department    string
	DateOfBirth   *time.Time
	DateOfJoining *time.Time
}

type UpdateProfileInput struct {
	Native      *string
	MobileNo    *string
	Experience  *int
	Skills      []string
	Designation *string
	Department  *string
	ImageURL    *string
}

// UserConflicts reports which of the probed identity fields already exist in
// the store. Used by bulk import to produce per-row errors instead of
// aborting the batch.
type UserConflicts struct {
	Names   map[string]bool
	Emails  map[string]bool
	Mobiles map[string]bool
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	Create(ctx context.Context, input CreateUserInput) (*User, error)
	UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*User, error)
	FindConflicts(ctx context.Context, names, emails, mobiles []string) (*UserConflicts, error)
	Delete(ctx context.Context, id string) error
}
