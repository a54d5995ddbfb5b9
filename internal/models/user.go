package models

import "time"

const (
	RoleFree  = "FREE"
	RolePro   = "PRO"
	RoleAdmin = "ADMIN"
)

// User mirrors the subject issued by the fronting auth proxy; the service
// never authenticates, it only records role state keyed by that subject.
type User struct {
	ID       string `gorm:"type:varchar(100);primaryKey" json:"id"`
	Email    string `gorm:"type:varchar(200);index" json:"email"`
	Username string `gorm:"type:varchar(100)" json:"username"`
	Role     string `gorm:"type:varchar(10);not null;default:'FREE';index" json:"role"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
