package controllers

import (
	"net/http"

	"github.com/etceter4/littlelemon/services"
	"github.com/etceter4/littlelemon/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryController struct {
	Menu *services.MenuService
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{Menu: services.NewMenuService(db)}
}

// GetAllCategories
func (cc *CategoryController) GetAllCategories(c *gin.Context) {
	categories, err := cc.Menu.ListCategories()
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All categories", categories)
}

// CreateCategory
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	var body services.CategoryInput
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BindError(c, err)
		return
	}

	category, err := cc.Menu.CreateCategory(id, body)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// GetCategoryByID
func (cc *CategoryController) GetCategoryByID(c *gin.Context) {
	categoryID, err := paramID(c, "id")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	category, err := cc.Menu.GetCategory(categoryID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category detail", category)
}

// UpdateCategory serves both PUT and PATCH. PUT requires the name.
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	categoryID, err := paramID(c, "id")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	var patch services.CategoryPatch
	if c.Request.Method == http.MethodPut {
		var body services.CategoryInput
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.BindError(c, err)
			return
		}
		patch = services.CategoryPatch{Name: &body.Name, Description: body.Description}
	} else if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BindError(c, err)
		return
	}

	category, err := cc.Menu.UpdateCategory(id, categoryID, patch)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory also removes the category's food items.
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	categoryID, err := paramID(c, "id")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := cc.Menu.DeleteCategory(id, categoryID); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"category_id": categoryID})
}
