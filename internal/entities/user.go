package entities

import "time"

type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleLibrarian UserRole = "librarian"
	UserRoleMember    UserRole = "member"
)

// CanManage reports whether the role may change catalog, member and loan records.
func (r UserRole) CanManage() bool {
	return r == UserRoleAdmin || r == UserRoleLibrarian
}

type User struct {
	ID           uint      `gorm:"primaryKey;column:user_id" json:"user_id"`
	Username     string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Role         UserRole  `gorm:"size:20;default:'member'" json:"role"`
	MemberID     *string   `gorm:"size:64" json:"member_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}
