package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email    string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Password string    `gorm:"type:varchar(255);not null"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Role     string    `gorm:"type:varchar(20);not null;default:'EMPLOYEE'"`

	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`
	ManagerID    *uuid.UUID `gorm:"type:uuid;index"`
	IsActive     bool       `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
