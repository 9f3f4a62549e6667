package models

// Member roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Member statuses. A removed member keeps their row (their uid may still
// appear in historical expenses) but can no longer act on the group.
const (
	StatusActive  = "active"
	StatusRemoved = "removed"
)

// Group represents a set of people sharing expenses in one currency.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `db:"id" json:"id"`

	// Name is the display name of the group (e.g., "Roommates", "Lisbon Trip").
	Name string `db:"name" json:"name"`

	// Currency is the ISO 4217 code all amounts in this group are in.
	Currency string `db:"currency" json:"currency"`

	// CreatedBy is the uid of the user who created the group.
	CreatedBy string `db:"created_by" json:"createdBy"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `db:"created_at" json:"createdAt"`

	// UpdatedAt is the Unix timestamp of the last group update.
	UpdatedAt int64 `db:"updated_at" json:"updatedAt"`
}

// GroupMember is one participant's membership in a group.
// Role and Status are passed through to the API unmodified; balance math
// keys on UID alone.
type GroupMember struct {
	GroupID     string `db:"group_id" json:"-"`
	UID         string `db:"uid" json:"uid"`
	Email       string `db:"email" json:"email"`
	DisplayName string `db:"display_name" json:"displayName"`
	Role        string `db:"role" json:"role"`
	Status      string `db:"status" json:"status"`
	JoinedAt    int64  `db:"joined_at" json:"joinedAt"`
}

// IsActive reports whether the member may act on the group.
func (m *GroupMember) IsActive() bool {
	return m.Status == StatusActive
}
