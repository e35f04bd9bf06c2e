package model

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;unique;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"size:20;default:'student'" json:"role"`
	Grade    string   `gorm:"size:10" json:"grade"`
	School   string   `gorm:"size:200" json:"school"`
	Location string   `gorm:"size:200" json:"location"`
	IsActive bool     `gorm:"default:true" json:"isActive"`
}

func (User) TableName() string {
	return "users"
}
