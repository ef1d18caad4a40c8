package models

import "time"

// User is the sole entity managed by the service.
// All storage backends share this shape; JSON tags define the wire
// representation — every persisted field is exposed, nothing is computed
// or renamed.
type User struct {
	// ID is the unique identifier of the user. The SQL backends assign a
	// UUID token at creation time; the in-memory backend assigns a
	// monotonically increasing decimal sequence. Never mutated afterwards.
	ID string `json:"id"`

	// Username is the unique account name. Required on creation;
	// changing it later goes through the same uniqueness check.
	Username string `json:"username"`

	// Email is the unique contact address. Must contain at least one "@".
	Email string `json:"email"`

	// FirstName is the user's given name. Required.
	FirstName string `json:"first_name"`

	// LastName is the user's family name. Required.
	LastName string `json:"last_name"`

	// Age is optional; when present it lies in [0, 150].
	Age *int `json:"age"`

	// IsActive reports whether the record is active. False means the
	// record was soft-deleted: it stays in the store and remains
	// addressable by id, but list queries can exclude it explicitly.
	IsActive bool `json:"is_active"`

	// CreatedAt is set once at creation.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is refreshed on every mutating write.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserUpdate carries a partial update for a single user record.
// Only non-nil fields are applied (partial update support); unspecified
// fields retain their previous values. Unknown JSON fields in the inbound
// payload are ignored.
type UserUpdate struct {
	// Username replaces the account name when non-nil.
	// Subject to the same uniqueness check as creation.
	Username *string `json:"username,omitempty"`

	// Email replaces the contact address when non-nil.
	Email *string `json:"email,omitempty"`

	// FirstName replaces the given name when non-nil.
	FirstName *string `json:"first_name,omitempty"`

	// LastName replaces the family name when non-nil.
	LastName *string `json:"last_name,omitempty"`

	// Age replaces the age when non-nil.
	Age *int `json:"age,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
// An empty update is still valid: it leaves every field unchanged and
// only refreshes the record's UpdatedAt timestamp.
func (u UserUpdate) IsEmpty() bool {
	return u.Username == nil && u.Email == nil && u.FirstName == nil &&
		u.LastName == nil && u.Age == nil
}

// UserFilter holds the optional list predicates. All supplied predicates
// are combined with logical AND.
type UserFilter struct {
	// IsActive filters by the soft-delete flag when non-nil.
	IsActive *bool

	// MinAge keeps records whose Age is present and >= MinAge.
	MinAge *int

	// MaxAge keeps records whose Age is present and <= MaxAge.
	MaxAge *int
}

// ListUsersRequest bundles filtering and pagination parameters for a
// list query. Page is 1-based; out-of-range pages yield an empty page,
// never an error.
type ListUsersRequest struct {
	Filter  UserFilter
	Page    int
	PerPage int
}
