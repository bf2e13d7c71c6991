package models

import "time"

// Group names recognised by the authorization policy.
const (
	GroupAdmin        = "Admin"
	GroupManager      = "Manager"
	GroupDeliveryCrew = "Delivery Crew"
)

// DefaultGroups are created at startup.
var DefaultGroups = []string{GroupAdmin, GroupManager, GroupDeliveryCrew}

type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	Password    string    `gorm:"type:varchar(255);not null" json:"-"`
	IsStaff     bool      `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser bool      `gorm:"not null;default:false" json:"is_superuser"`
	Groups      []Group   `gorm:"many2many:user_groups;" json:"groups"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// InGroup reports whether the user's loaded groups contain name.
func (u *User) InGroup(name string) bool {
	for _, g := range u.Groups {
		if g.Name == name {
			return true
		}
	}
	return false
}

type Group struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(150);uniqueIndex;not null" json:"name"`
}

// All returns every model that takes part in migrations.
func All() []interface{} {
	return []interface{}{
		&Group{},
		&User{},
		&Category{},
		&FoodItem{},
		&Cart{},
		&CartItem{},
		&Order{},
	}
}
