package user

import "time"

const (
	RoleRequester = "Requester"
	RoleValidator = "Validator"
)

// User is the identity directory entry. Authentication lives outside this
// service; the principal middleware only references users by id and role.
type User struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	Role      string    `gorm:"column:role;type:varchar(50);not null;default:'Requester'"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
