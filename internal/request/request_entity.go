package request

import "time"

// VacationRequest is the persisted record. Only Status and Comments are
// mutated after creation; everything else is written once.
type VacationRequest struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int       `gorm:"column:user_id;not null;index:idx_vacation_requests_user"`
	StartDate time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null"`
	Reason    string    `gorm:"column:reason;type:text"`
	Status    string    `gorm:"column:status;type:varchar(20);not null;default:'Pending';index:idx_vacation_requests_status"`
	Comments  *string   `gorm:"column:comments;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Owner *RequestOwner `gorm:"foreignKey:UserID;references:ID"`
}

func (VacationRequest) TableName() string {
	return "vacation_requests"
}

// RequestOwner is the minimal join target for the owner's display name.
type RequestOwner struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"column:name"`
}

func (RequestOwner) TableName() string {
	return "users"
}
