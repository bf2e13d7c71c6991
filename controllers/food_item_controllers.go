package controllers

import (
	"net/http"

	"github.com/etceter4/littlelemon/services"
	"github.com/etceter4/littlelemon/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FoodItemController struct {
	Menu *services.MenuService
}

func NewFoodItemController(db *gorm.DB) *FoodItemController {
	return &FoodItemController{Menu: services.NewMenuService(db)}
}

// GetAllFoodItems lists the menu. ?search= filters on the category name.
func (fc *FoodItemController) GetAllFoodItems(c *gin.Context) {
	items, err := fc.Menu.ListFoodItems(c.Query("search"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All food items", items)
}

func (fc *FoodItemController) GetFoodItemByID(c *gin.Context) {
	foodItemID, err := paramID(c, "id")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	item, err := fc.Menu.GetFoodItem(foodItemID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food item detail", item)
}

func (fc *FoodItemController) CreateFoodItem(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	var body services.FoodItemInput
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BindError(c, err)
		return
	}

	item, err := fc.Menu.CreateFoodItem(id, body)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Food item created", item)
}

// UpdateFoodItem serves PUT (full representation) and PATCH (partial).
func (fc *FoodItemController) UpdateFoodItem(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	foodItemID, err := paramID(c, "id")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	replace := c.Request.Method == http.MethodPut
	var patch services.FoodItemPatch
	if replace {
		var body services.FoodItemInput
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.BindError(c, err)
			return
		}
		patch = body.Patch()
	} else if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BindError(c, err)
		return
	}

	item, err := fc.Menu.UpdateFoodItem(id, foodItemID, patch, replace)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food item updated", item)
}

func (fc *FoodItemController) DeleteFoodItem(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	foodItemID, err := paramID(c, "id")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := fc.Menu.DeleteFoodItem(id, foodItemID); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food item deleted", gin.H{"food_item_id": foodItemID})
}
