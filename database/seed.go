package database

import (
	"errors"

	"github.com/etceter4/littlelemon/models"
	"github.com/etceter4/littlelemon/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedGroups makes sure every default group exists.
func SeedGroups(db *gorm.DB) error {
	for _, name := range models.DefaultGroups {
		group := models.Group{}
		if err := db.Where(models.Group{Name: name}).FirstOrCreate(&group).Error; err != nil {
			return err
		}
		utils.InfoLogger.Printf("Group %q created or already exists", name)
	}
	return nil
}

// SeedAdmin creates a staff superuser in the Admin group. It is skipped when
// credentials are missing or the username is already taken.
func SeedAdmin(db *gorm.DB, username, password string) error {
	if username == "" || password == "" {
		utils.InfoLogger.Println("Skipping admin seed: ADMIN_USERNAME/ADMIN_PASSWORD not set")
		return nil
	}

	var existing models.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		utils.InfoLogger.Printf("Admin %q already exists", username)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var adminGroup models.Group
	if err := db.Where(models.Group{Name: models.GroupAdmin}).FirstOrCreate(&adminGroup).Error; err != nil {
		return err
	}

	admin := models.User{
		Username:    username,
		Password:    string(hashed),
		IsStaff:     true,
		IsSuperuser: true,
		Groups:      []models.Group{adminGroup},
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	utils.InfoLogger.Printf("Admin %q created", username)
	return nil
}
