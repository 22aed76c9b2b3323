package model

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User 注册用户（逝者亲友，人格的创建者）
// swagger:model User
type User struct {
	BaseModel
	Email        string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:100;not null" json:"-"`
	Nickname     string     `gorm:"size:50" json:"nickname"`
	Avatar       string     `gorm:"size:255" json:"avatar"`
	Role         UserRole   `gorm:"type:enum('user','admin');default:'user'" json:"role"`
	LastActiveAt *time.Time `json:"lastActiveAt"`
}

func (User) TableName() string {
	return "users"
}
