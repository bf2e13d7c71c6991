package services

import (
	"errors"
	"strings"

	"github.com/etceter4/littlelemon/models"
	"github.com/etceter4/littlelemon/policy"
	"github.com/etceter4/littlelemon/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type MenuService struct {
	DB *gorm.DB
}

func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{DB: db}
}

type CategoryInput struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description"`
}

type CategoryPatch struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
}

// FoodItemInput is the full representation accepted by create and PUT.
type FoodItemInput struct {
	Name           string           `json:"name" binding:"required,max=100"`
	Description    string           `json:"description" binding:"required"`
	Price          *decimal.Decimal `json:"price" binding:"required"`
	IsItemOfTheDay *bool            `json:"is_item_of_the_day"`
	Category       *uint            `json:"category"`
}

// Patch converts a full representation into a patch that sets every field.
func (in FoodItemInput) Patch() FoodItemPatch {
	return FoodItemPatch{
		Name:           &in.Name,
		Description:    &in.Description,
		Price:          in.Price,
		IsItemOfTheDay: in.IsItemOfTheDay,
		Category:       in.Category,
	}
}

type FoodItemPatch struct {
	Name           *string          `json:"name" binding:"omitempty,max=100"`
	Description    *string          `json:"description"`
	Price          *decimal.Decimal `json:"price"`
	IsItemOfTheDay *bool            `json:"is_item_of_the_day"`
	Category       *uint            `json:"category"`
}

// ---- categories ----

func (s *MenuService) ListCategories() ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.DB.Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *MenuService) GetCategory(categoryID uint) (*models.Category, error) {
	return findCategory(s.DB, categoryID)
}

func (s *MenuService) CreateCategory(id policy.Identity, in CategoryInput) (*models.Category, error) {
	if err := policy.Check(id, policy.ActionCreateCategory); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, utils.ErrValidation("category name may not be blank")
	}

	category := models.Category{Name: name, Description: in.Description}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := ensureUniqueCategoryName(tx, name, 0); err != nil {
			return err
		}
		return tx.Create(&category).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{"category_id": category.ID, "user": id.Username}).Info("category created")
	return &category, nil
}

func (s *MenuService) UpdateCategory(id policy.Identity, categoryID uint, patch CategoryPatch) (*models.Category, error) {
	if err := policy.Check(id, policy.ActionUpdateCategory); err != nil {
		return nil, err
	}

	var category *models.Category
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		if category, err = findCategory(tx, categoryID); err != nil {
			return err
		}

		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return utils.ErrValidation("category name may not be blank")
			}
			if err := ensureUniqueCategoryName(tx, name, category.ID); err != nil {
				return err
			}
			category.Name = name
		}
		if patch.Description != nil {
			category.Description = patch.Description
		}
		return tx.Save(category).Error
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes the category together with its food items and every
// cart item and order that references those food items.
func (s *MenuService) DeleteCategory(id policy.Identity, categoryID uint) error {
	if err := policy.Check(id, policy.ActionDeleteCategory); err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		category, err := findCategory(tx, categoryID)
		if err != nil {
			return err
		}

		var foodItemIDs []uint
		if err := tx.Model(&models.FoodItem{}).Where("category_id = ?", category.ID).Pluck("id", &foodItemIDs).Error; err != nil {
			return err
		}
		if err := deleteFoodItems(tx, foodItemIDs); err != nil {
			return err
		}
		if err := tx.Delete(category).Error; err != nil {
			return err
		}

		utils.InfoLogger.WithFields(logrus.Fields{
			"category_id": category.ID,
			"food_items":  len(foodItemIDs),
			"user":        id.Username,
		}).Info("category deleted")
		return nil
	})
}

// ---- food items ----

// ListFoodItems returns every food item. search is split into terms and each
// term must be contained in the item's category name, case-insensitively.
func (s *MenuService) ListFoodItems(search string) ([]models.FoodItem, error) {
	query := s.DB.Model(&models.FoodItem{})

	terms := strings.Fields(strings.ReplaceAll(search, ",", " "))
	if len(terms) > 0 {
		query = query.Joins("JOIN categories ON categories.id = food_items.category_id")
		for _, term := range terms {
			query = query.Where("LOWER(categories.name) LIKE ?", "%"+strings.ToLower(term)+"%")
		}
	}

	items := []models.FoodItem{}
	if err := query.Order("food_items.id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MenuService) GetFoodItem(foodItemID uint) (*models.FoodItem, error) {
	return findFoodItem(s.DB, foodItemID)
}

func (s *MenuService) CreateFoodItem(id policy.Identity, in FoodItemInput) (*models.FoodItem, error) {
	if in.IsItemOfTheDay != nil {
		if err := policy.Check(id, policy.ActionSetItemOfTheDay); err != nil {
			return nil, err
		}
	}

	item := models.FoodItem{}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := applyFoodItemPatch(tx, &item, in.Patch(), true); err != nil {
			return err
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"food_item_id": item.ID,
		"price":        utils.FormatPrice(item.Price),
		"user":         id.Username,
	}).Info("food item created")
	return &item, nil
}

// UpdateFoodItem applies patch to a food item. When replace is true the patch is
// a full representation and a missing category clears the reference.
func (s *MenuService) UpdateFoodItem(id policy.Identity, foodItemID uint, patch FoodItemPatch, replace bool) (*models.FoodItem, error) {
	if patch.IsItemOfTheDay != nil {
		if err := policy.Check(id, policy.ActionSetItemOfTheDay); err != nil {
			return nil, err
		}
	}

	var item *models.FoodItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		if item, err = findFoodItem(tx, foodItemID); err != nil {
			return err
		}
		if err := applyFoodItemPatch(tx, item, patch, replace); err != nil {
			return err
		}
		return tx.Save(item).Error
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteFoodItem removes the food item and the cart items and orders referencing it.
func (s *MenuService) DeleteFoodItem(id policy.Identity, foodItemID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		item, err := findFoodItem(tx, foodItemID)
		if err != nil {
			return err
		}
		if err := deleteFoodItems(tx, []uint{item.ID}); err != nil {
			return err
		}
		utils.InfoLogger.WithFields(logrus.Fields{"food_item_id": item.ID, "user": id.Username}).Info("food item deleted")
		return nil
	})
}

func applyFoodItemPatch(tx *gorm.DB, item *models.FoodItem, patch FoodItemPatch, replace bool) error {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return utils.ErrValidation("food item name may not be blank")
		}
		item.Name = name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Price != nil {
		if err := utils.ValidatePrice(*patch.Price); err != nil {
			return err
		}
		item.Price = *patch.Price
	}
	if patch.IsItemOfTheDay != nil {
		item.IsItemOfTheDay = *patch.IsItemOfTheDay
	}

	switch {
	case patch.Category != nil:
		var count int64
		if err := tx.Model(&models.Category{}).Where("id = ?", *patch.Category).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return utils.ErrValidation("Invalid pk %d - category does not exist.", *patch.Category)
		}
		categoryID := *patch.Category
		item.CategoryID = &categoryID
	case replace:
		item.CategoryID = nil
	}
	item.Category = nil
	return nil
}

func deleteFoodItems(tx *gorm.DB, foodItemIDs []uint) error {
	if len(foodItemIDs) == 0 {
		return nil
	}
	if err := tx.Where("food_item_id IN ?", foodItemIDs).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	if err := tx.Where("food_item_id IN ?", foodItemIDs).Delete(&models.Order{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", foodItemIDs).Delete(&models.FoodItem{}).Error
}

func ensureUniqueCategoryName(tx *gorm.DB, name string, exceptID uint) error {
	var count int64
	if err := tx.Model(&models.Category{}).Where("name = ? AND id <> ?", name, exceptID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return utils.ErrConflict("category with this name already exists.")
	}
	return nil
}

func findCategory(db *gorm.DB, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound("Category not found.")
		}
		return nil, err
	}
	return &category, nil
}

func findFoodItem(db *gorm.DB, foodItemID uint) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := db.First(&item, foodItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound("Food item not found.")
		}
		return nil, err
	}
	return &item, nil
}
