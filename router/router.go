package router

import (
	"net/http"

	"github.com/etceter4/littlelemon/config"
	"github.com/etceter4/littlelemon/controllers"
	"github.com/etceter4/littlelemon/middlewares"
	"github.com/etceter4/littlelemon/policy"
	"github.com/etceter4/littlelemon/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.HTTP.CORSOrigins))
	if cfg.HTTP.RateLimitRPS > 0 {
		r.Use(middlewares.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst).RateLimit())
	}

	userCtrl := controllers.NewUserController(db)
	adminCtrl := controllers.NewAdminController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	foodItemCtrl := controllers.NewFoodItemController(db)
	cartCtrl := controllers.NewCartController(db)
	orderCtrl := controllers.NewOrderController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	if cfg.HTTP.AuthRateLimit > 0 {
		public.Use(middlewares.NewStrictRateLimiter(cfg.HTTP.AuthRateLimit).RateLimit())
	}
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/user-register", userCtrl.Register)
		public.POST("/token", userCtrl.Login)
		public.POST("/token/refresh", userCtrl.RefreshToken)
		public.POST("/token/verify", userCtrl.VerifyToken)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware(services.NewUserService(db)))

	// MENU
	for _, prefix := range []string{"/food-items", "/fooditems"} {
		items := auth.Group(prefix)
		items.GET("", foodItemCtrl.GetAllFoodItems)
		items.POST("", foodItemCtrl.CreateFoodItem)
		items.GET("/:id", foodItemCtrl.GetFoodItemByID)
		items.PUT("/:id", foodItemCtrl.UpdateFoodItem)
		items.PATCH("/:id", foodItemCtrl.UpdateFoodItem)
		items.DELETE("/:id", foodItemCtrl.DeleteFoodItem)
	}

	auth.GET("/categories", categoryCtrl.GetAllCategories)
	auth.GET("/categories/:id", categoryCtrl.GetCategoryByID)
	auth.POST("/categories", middlewares.RequireAction(policy.ActionCreateCategory), categoryCtrl.CreateCategory)
	auth.PUT("/categories/:id", middlewares.RequireAction(policy.ActionUpdateCategory), categoryCtrl.UpdateCategory)
	auth.PATCH("/categories/:id", middlewares.RequireAction(policy.ActionUpdateCategory), categoryCtrl.UpdateCategory)
	auth.DELETE("/categories/:id", middlewares.RequireAction(policy.ActionDeleteCategory), categoryCtrl.DeleteCategory)

	// CART & CHECKOUT
	auth.POST("/cart/add", cartCtrl.AddToCart)
	auth.GET("/cart", cartCtrl.GetCart)
	auth.POST("/place_order", cartCtrl.PlaceOrder)
	auth.GET("/my_orders", orderCtrl.GetMyOrders)

	// ORDERS
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.POST("/orders", orderCtrl.CreateOrder)
	auth.GET("/orders/:id", orderCtrl.GetOrderByID)
	auth.PUT("/orders/:id", orderCtrl.UpdateOrder)
	auth.PATCH("/orders/:id", orderCtrl.UpdateOrder)
	auth.DELETE("/orders/:id", middlewares.RequireAction(policy.ActionManageOrders), orderCtrl.DeleteOrder)
	auth.POST("/orders/:id/mark-delivered", middlewares.RequireAction(policy.ActionMarkDelivered), orderCtrl.MarkDelivered)
	auth.POST("/orders/:id/assign", middlewares.RequireAction(policy.ActionAssignDeliveryCrew), orderCtrl.AssignOrder)

	// USERS & GROUPS
	auth.POST("/assign_manager", middlewares.RequireAction(policy.ActionAssignManager), adminCtrl.AssignManager)
	auth.POST("/assign-to-delivery-crew", middlewares.RequireAction(policy.ActionAssignDeliveryCrew), adminCtrl.AssignDeliveryCrew)
	auth.GET("/users", middlewares.RequireAction(policy.ActionListUsers), adminCtrl.ListUsers)
	auth.POST("/users/:id/assign-to-delivery-crew", middlewares.RequireAction(policy.ActionAssignDeliveryCrew), adminCtrl.AssignUserToDeliveryCrew)

	return r
}
