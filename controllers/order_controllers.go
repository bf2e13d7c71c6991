package controllers

import (
	"net/http"

	"github.com/etceter4/littlelemon/services"
	"github.com/etceter4/littlelemon/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{Orders: services.NewOrderService(db)}
}

// GetAllOrders returns the orders visible to the caller.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	orders, err := oc.Orders.ListOrders(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All orders", orders)
}

// GetMyOrders returns the orders placed under the caller's username.
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	orders, err := oc.Orders.CustomerOrders(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My orders", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	orderID, err := paramID(c, "id")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	order, err := oc.Orders.GetOrder(id, orderID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

func (oc *OrderController) CreateOrder(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	var body services.OrderInput
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BindError(c, err)
		return
	}

	order, err := oc.Orders.CreateOrder(id, body)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// UpdateOrder serves PUT and PATCH; only the fields present in the body change.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	orderID, err := paramID(c, "id")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	var patch services.OrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BindError(c, err)
		return
	}

	order, err := oc.Orders.UpdateOrder(id, orderID, patch)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	orderID, err := paramID(c, "id")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := oc.Orders.DeleteOrder(id, orderID); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": orderID})
}

func (oc *OrderController) MarkDelivered(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	orderID, err := paramID(c, "id")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	order, err := oc.Orders.MarkDelivered(id, orderID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order marked as delivered", order)
}

// AssignOrder sets the delivery crew member of an order from {"delivery_crew_member": <user id>}.
func (oc *OrderController) AssignOrder(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	orderID, err := paramID(c, "id")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	var body struct {
		DeliveryCrewMember uint `json:"delivery_crew_member" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BindError(c, err)
		return
	}

	order, err := oc.Orders.AssignOrder(id, orderID, body.DeliveryCrewMember)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order assigned", order)
}
