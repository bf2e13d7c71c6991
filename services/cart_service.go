package services

import (
	"errors"

	"github.com/etceter4/littlelemon/models"
	"github.com/etceter4/littlelemon/policy"
	"github.com/etceter4/littlelemon/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CartService struct {
	DB *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{DB: db}
}

// AddToCart puts one unit of the food item into the caller's cart, creating the
// cart on first use. Adding an item already in the cart bumps its quantity.
// The returned cart item has FoodItem loaded.
func (s *CartService) AddToCart(id policy.Identity, foodItemID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := getOrCreateCart(tx, id.UserID)
		if err != nil {
			return err
		}

		food, err := findFoodItem(tx, foodItemID)
		if err != nil {
			return err
		}

		err = tx.Where("cart_id = ? AND food_item_id = ?", cart.ID, food.ID).First(&item).Error
		switch {
		case err == nil:
			item.Quantity++
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{CartID: cart.ID, FoodItemID: food.ID, Quantity: 1}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		default:
			return err
		}

		item.FoodItem = *food
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"user":         id.Username,
		"food_item_id": item.FoodItemID,
		"quantity":     item.Quantity,
	}).Debug("cart item added")
	return &item, nil
}

// ListCartItems returns the caller's cart items with the food item name flattened in.
func (s *CartService) ListCartItems(id policy.Identity) ([]models.CartItemView, error) {
	cart, err := findCart(s.DB, id.UserID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, utils.ErrNotFound("Cart not found.")
	}

	items := []models.CartItemView{}
	err = s.DB.Table("cart_items").
		Select("cart_items.id, food_items.name AS food_item_name, cart_items.quantity").
		Joins("JOIN food_items ON food_items.id = cart_items.food_item_id").
		Where("cart_items.cart_id = ?", cart.ID).
		Order("cart_items.id").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// PlaceOrder turns every cart item into one pending order and empties the cart.
// Orders and the cart clearing are committed together or not at all.
func (s *CartService) PlaceOrder(id policy.Identity) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := findCart(tx, id.UserID)
		if err != nil {
			return err
		}
		if cart == nil {
			return utils.ErrValidation("Your cart is empty.")
		}

		var items []models.CartItem
		if err := tx.Where("cart_id = ?", cart.ID).Order("id").Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return utils.ErrValidation("Your cart is empty.")
		}

		orders = make([]models.Order, 0, len(items))
		for _, item := range items {
			orders = append(orders, models.Order{
				CustomerName:   id.Username,
				FoodItemID:     item.FoodItemID,
				DeliveryStatus: models.DeliveryStatusPending,
			})
		}
		if err := tx.Create(&orders).Error; err != nil {
			return err
		}

		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"user":   id.Username,
		"orders": len(orders),
	}).Info("order placed")
	return orders, nil
}

func getOrCreateCart(tx *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := tx.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// findCart returns nil without error when the user has no cart yet.
func findCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}
