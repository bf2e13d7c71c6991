package controllers

import (
	"net/http"

	"github.com/etceter4/littlelemon/services"
	"github.com/etceter4/littlelemon/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{Users: services.NewUserService(db)}
}

// Register creates a customer account.
func (uc *UserController) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	user, err := uc.Users.Register(req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// Login exchanges credentials for an access and refresh token.
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BindError(c, err)
		return
	}

	pair, err := uc.Users.Login(input.Username, input.Password)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Login successful", pair)
}

func (uc *UserController) RefreshToken(c *gin.Context) {
	var input struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BindError(c, err)
		return
	}

	pair, err := uc.Users.Refresh(input.Refresh)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Token refreshed", pair)
}

func (uc *UserController) VerifyToken(c *gin.Context) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BindError(c, err)
		return
	}

	if err := uc.Users.Verify(input.Token); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Token is valid", nil)
}
