package controllers

import (
	"net/http"

	"github.com/etceter4/littlelemon/services"
	"github.com/etceter4/littlelemon/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CartController struct {
	Carts *services.CartService
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{Carts: services.NewCartService(db)}
}

// AddToCart adds one unit of a food item to the caller's cart.
func (cc *CartController) AddToCart(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	var body struct {
		FoodItemID uint `json:"food_item_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BindError(c, err)
		return
	}

	item, err := cc.Carts.AddToCart(id, body.FoodItemID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Item added to cart", gin.H{
		"id":             item.ID,
		"food_item":      item.FoodItemID,
		"food_item_name": item.FoodItem.Name,
		"quantity":       item.Quantity,
	})
}

// GetCart lists the caller's cart items.
func (cc *CartController) GetCart(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	items, err := cc.Carts.ListCartItems(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart items", items)
}

// PlaceOrder checks out the caller's cart.
func (cc *CartController) PlaceOrder(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	orders, err := cc.Carts.PlaceOrder(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order placed successfully", orders)
}
