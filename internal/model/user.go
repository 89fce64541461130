package model

// Roles
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User accounts, table users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'staff'"      json:"role"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	Timestamps
}

// TableName table name
func (User) TableName() string { return "users" }
