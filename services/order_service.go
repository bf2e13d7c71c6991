package services

import (
	"errors"
	"strings"

	"github.com/etceter4/littlelemon/models"
	"github.com/etceter4/littlelemon/policy"
	"github.com/etceter4/littlelemon/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

type OrderInput struct {
	CustomerName       *string `json:"customer_name" binding:"omitempty,max=100"`
	FoodItem           uint    `json:"food_item" binding:"required"`
	DeliveryAssignedTo *string `json:"delivery_assigned_to" binding:"omitempty,max=100"`
	DeliveryStatus     *string `json:"delivery_status"`
	DeliveryCrewMember *uint   `json:"delivery_crew_member"`
}

type OrderPatch struct {
	CustomerName       *string `json:"customer_name" binding:"omitempty,max=100"`
	FoodItem           *uint   `json:"food_item"`
	DeliveryAssignedTo *string `json:"delivery_assigned_to" binding:"omitempty,max=100"`
	DeliveryStatus     *string `json:"delivery_status"`
	DeliveryCrewMember *uint   `json:"delivery_crew_member"`
}

func (p OrderPatch) managerFields() bool {
	return p.CustomerName != nil || p.FoodItem != nil || p.DeliveryAssignedTo != nil
}

// visible narrows db to the orders id may see: managers see every order,
// delivery crew the orders assigned to them and customers their own orders.
func visible(db *gorm.DB, id policy.Identity) *gorm.DB {
	switch {
	case policy.IsManager(id):
		return db
	case policy.IsDeliveryCrew(id):
		return db.Where("delivery_crew_member_id = ?", id.UserID)
	default:
		return db.Where("customer_name = ?", id.Username)
	}
}

func (s *OrderService) ListOrders(id policy.Identity) ([]models.Order, error) {
	orders := []models.Order{}
	if err := visible(s.DB, id).Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CustomerOrders returns the orders placed under the caller's username,
// whatever roles the caller holds.
func (s *OrderService) CustomerOrders(id policy.Identity) ([]models.Order, error) {
	orders := []models.Order{}
	if err := s.DB.Where("customer_name = ?", id.Username).Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) GetOrder(id policy.Identity, orderID uint) (*models.Order, error) {
	return findVisibleOrder(s.DB, id, orderID)
}

// CreateOrder records a single order. Customers may only order for themselves
// and may not set delivery fields.
func (s *OrderService) CreateOrder(id policy.Identity, in OrderInput) (*models.Order, error) {
	manager := policy.IsManager(id)

	customerName := id.Username
	if in.CustomerName != nil && strings.TrimSpace(*in.CustomerName) != "" {
		name := strings.TrimSpace(*in.CustomerName)
		if name != id.Username && !manager {
			return nil, policy.Check(id, policy.ActionManageOrders)
		}
		customerName = name
	}
	if in.DeliveryAssignedTo != nil {
		if err := policy.Check(id, policy.ActionManageOrders); err != nil {
			return nil, err
		}
	}
	if in.DeliveryCrewMember != nil {
		if err := policy.Check(id, policy.ActionAssignDeliveryCrew); err != nil {
			return nil, err
		}
	}
	if in.DeliveryStatus != nil && *in.DeliveryStatus != models.DeliveryStatusPending {
		return nil, utils.ErrValidation("new orders must start as %s", models.DeliveryStatusPending)
	}

	order := models.Order{
		CustomerName:       customerName,
		FoodItemID:         in.FoodItem,
		DeliveryAssignedTo: in.DeliveryAssignedTo,
		DeliveryStatus:     models.DeliveryStatusPending,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := findFoodItem(tx, in.FoodItem); err != nil {
			return err
		}
		if in.DeliveryCrewMember != nil {
			crew, err := findCrewMember(tx, *in.DeliveryCrewMember)
			if err != nil {
				return err
			}
			order.DeliveryCrewMemberID = &crew.ID
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrder applies patch to an order visible to id. Every permission and
// transition check runs before anything is written.
func (s *OrderService) UpdateOrder(id policy.Identity, orderID uint, patch OrderPatch) (*models.Order, error) {
	if patch.managerFields() {
		if err := policy.Check(id, policy.ActionManageOrders); err != nil {
			return nil, err
		}
	}
	if patch.DeliveryCrewMember != nil {
		if err := policy.Check(id, policy.ActionAssignDeliveryCrew); err != nil {
			return nil, err
		}
	}

	var order *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		if order, err = findVisibleOrder(tx, id, orderID); err != nil {
			return err
		}

		if patch.DeliveryStatus != nil {
			if err := checkStatusTransition(id, order, *patch.DeliveryStatus); err != nil {
				return err
			}
		}
		if patch.FoodItem != nil {
			if _, err := findFoodItem(tx, *patch.FoodItem); err != nil {
				return err
			}
			order.FoodItemID = *patch.FoodItem
		}
		if patch.DeliveryCrewMember != nil {
			crew, err := findCrewMember(tx, *patch.DeliveryCrewMember)
			if err != nil {
				return err
			}
			order.DeliveryCrewMemberID = &crew.ID
		}
		if patch.CustomerName != nil {
			name := strings.TrimSpace(*patch.CustomerName)
			if name == "" {
				return utils.ErrValidation("customer_name may not be blank")
			}
			order.CustomerName = name
		}
		if patch.DeliveryAssignedTo != nil {
			order.DeliveryAssignedTo = patch.DeliveryAssignedTo
		}
		if patch.DeliveryStatus != nil {
			order.DeliveryStatus = *patch.DeliveryStatus
		}
		return tx.Save(order).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) DeleteOrder(id policy.Identity, orderID uint) error {
	if err := policy.Check(id, policy.ActionManageOrders); err != nil {
		return err
	}

	result := s.DB.Delete(&models.Order{}, orderID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrNotFound("Order not found.")
	}
	return nil
}

// MarkDelivered moves an order assigned to the calling delivery crew member to
// Delivered. Marking an already delivered order again is a no-op.
func (s *OrderService) MarkDelivered(id policy.Identity, orderID uint) (*models.Order, error) {
	if err := policy.Check(id, policy.ActionMarkDelivered); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		if order, err = findOrder(tx, orderID); err != nil {
			return err
		}
		if !order.IsAssignedTo(id.UserID) {
			return utils.ErrForbidden("Order not assigned to you.")
		}
		if order.DeliveryStatus == models.DeliveryStatusDelivered {
			return nil
		}
		order.DeliveryStatus = models.DeliveryStatusDelivered
		return tx.Save(order).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{"order_id": order.ID, "crew": id.Username}).Info("order delivered")
	return order, nil
}

// AssignOrder sets the delivery crew member responsible for an order.
func (s *OrderService) AssignOrder(id policy.Identity, orderID, crewUserID uint) (*models.Order, error) {
	if err := policy.Check(id, policy.ActionAssignDeliveryCrew); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		if order, err = findOrder(tx, orderID); err != nil {
			return err
		}
		crew, err := findCrewMember(tx, crewUserID)
		if err != nil {
			return err
		}
		order.DeliveryCrewMemberID = &crew.ID
		order.DeliveryAssignedTo = &crew.Username
		return tx.Save(order).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"crew_id":  crewUserID,
		"manager":  id.Username,
	}).Info("crew assigned")
	return order, nil
}

func checkStatusTransition(id policy.Identity, order *models.Order, next string) error {
	if !models.ValidDeliveryStatus(next) {
		return utils.ErrValidation("%q is not a valid delivery status", next)
	}
	if next == order.DeliveryStatus {
		return nil
	}
	if order.DeliveryStatus == models.DeliveryStatusDelivered {
		return utils.ErrValidation("a delivered order cannot go back to %s", next)
	}
	if err := policy.Check(id, policy.ActionMarkDelivered); err != nil {
		return err
	}
	if !order.IsAssignedTo(id.UserID) {
		return utils.ErrForbidden("Order not assigned to you.")
	}
	return nil
}

func findOrder(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound("Order not found.")
		}
		return nil, err
	}
	return &order, nil
}

func findVisibleOrder(db *gorm.DB, id policy.Identity, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := visible(db, id).First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound("Order not found.")
		}
		return nil, err
	}
	return &order, nil
}

// findCrewMember loads a user and checks that they belong to the delivery crew.
func findCrewMember(db *gorm.DB, userID uint) (*models.User, error) {
	user, err := findUser(db, userID)
	if err != nil {
		return nil, err
	}
	if !user.InGroup(models.GroupDeliveryCrew) {
		return nil, utils.ErrValidation("User %s is not a member of the delivery crew.", user.Username)
	}
	return user, nil
}
