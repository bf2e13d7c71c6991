package database

import (
	"github.com/etceter4/littlelemon/models"
	"github.com/etceter4/littlelemon/utils"
	"gorm.io/gorm"
)

// Migrate creates or updates every table used by the API.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}

// Setup migrates the schema and seeds the default groups and admin account.
func Setup(db *gorm.DB, adminUsername, adminPassword string) error {
	if err := Migrate(db); err != nil {
		return err
	}
	if err := SeedGroups(db); err != nil {
		return err
	}
	return SeedAdmin(db, adminUsername, adminPassword)
}
