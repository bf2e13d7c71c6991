package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/etceter4/littlelemon/database"
	"github.com/etceter4/littlelemon/models"
	"github.com/etceter4/littlelemon/policy"
	"github.com/etceter4/littlelemon/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory database with the schema and default groups.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger("error")

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedGroups(db))
	return db
}

type userOpt func(*models.User)

func withGroup(db *gorm.DB, name string) userOpt {
	return func(u *models.User) {
		var group models.Group
		db.Where(models.Group{Name: name}).FirstOrCreate(&group)
		u.Groups = append(u.Groups, group)
	}
}

func asStaff(superuser bool) userOpt {
	return func(u *models.User) {
		u.IsStaff = true
		u.IsSuperuser = superuser
	}
}

func createUser(t *testing.T, db *gorm.DB, username string, opts ...userOpt) policy.Identity {
	t.Helper()
	u := models.User{Username: username, Password: "not-a-real-hash"}
	for _, opt := range opts {
		opt(&u)
	}
	require.NoError(t, db.Create(&u).Error)
	return policy.FromUser(&u)
}

func createCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	c := models.Category{Name: name}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func createFoodItem(t *testing.T, db *gorm.DB, name, price string, category *models.Category) models.FoodItem {
	t.Helper()
	item := models.FoodItem{
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
	}
	if category != nil {
		item.CategoryID = &category.ID
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
