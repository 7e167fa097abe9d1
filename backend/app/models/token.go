package models

import "time"

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Token is both the identity and the credential: callers present the raw
// token string and it is matched by equality against this table.
type Token struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex;size:191;not null" json:"token"`
	Username  string    `gorm:"size:191;not null" json:"username"`
	Role      string    `gorm:"size:32;not null;default:USER" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Token) IsAdmin() bool { return t.Role == RoleAdmin }

func ValidRole(r string) bool { return r == RoleAdmin || r == RoleUser }
