package controllers

import (
	"net/http"

	"github.com/etceter4/littlelemon/services"
	"github.com/etceter4/littlelemon/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminController groups the user management endpoints used by staff and managers.
type AdminController struct {
	Users *services.UserService
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{Users: services.NewUserService(db)}
}

func (ac *AdminController) ListUsers(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	users, err := ac.Users.ListUsers(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All users", users)
}

// AssignManager adds {"username": ...} to the Manager group.
func (ac *AdminController) AssignManager(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	var body struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BindError(c, err)
		return
	}

	user, err := ac.Users.AssignManager(id, body.Username)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User "+user.Username+" added to the Manager group", user)
}

// AssignDeliveryCrew adds {"user_id": ...} to the Delivery Crew group.
func (ac *AdminController) AssignDeliveryCrew(c *gin.Context) {
	var body struct {
		UserID uint `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BindError(c, err)
		return
	}
	ac.assignDeliveryCrew(c, body.UserID)
}

// AssignUserToDeliveryCrew is the /users/:id variant of AssignDeliveryCrew.
func (ac *AdminController) AssignUserToDeliveryCrew(c *gin.Context) {
	userID, err := paramID(c, "id")
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	ac.assignDeliveryCrew(c, userID)
}

func (ac *AdminController) assignDeliveryCrew(c *gin.Context, userID uint) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	user, err := ac.Users.AssignDeliveryCrew(id, userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User "+user.Username+" added to the Delivery Crew group", user)
}
