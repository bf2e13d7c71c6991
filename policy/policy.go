// Package policy holds the role predicates and the action table consulted by
// every mutating operation.
package policy

import (
	"github.com/etceter4/littlelemon/models"
	"github.com/etceter4/littlelemon/utils"
	"github.com/gin-gonic/gin"
)

// Identity is the caller of an operation with its role flags already resolved.
type Identity struct {
	UserID       uint
	Username     string
	IsStaff      bool
	IsSuperuser  bool
	Manager      bool
	DeliveryCrew bool
}

// FromUser builds an Identity from a user whose Groups are loaded.
func FromUser(u *models.User) Identity {
	return Identity{
		UserID:       u.ID,
		Username:     u.Username,
		IsStaff:      u.IsStaff,
		IsSuperuser:  u.IsSuperuser,
		Manager:      u.InGroup(models.GroupManager),
		DeliveryCrew: u.InGroup(models.GroupDeliveryCrew),
	}
}

// Predicate answers a single yes/no question about an identity.
type Predicate func(id Identity) bool

func IsManager(id Identity) bool {
	return id.Manager || id.IsStaff || id.IsSuperuser
}

func IsDeliveryCrew(id Identity) bool {
	return id.DeliveryCrew
}

func IsAdmin(id Identity) bool {
	return id.IsStaff && id.IsSuperuser
}

func IsStaff(id Identity) bool {
	return id.IsStaff || id.IsSuperuser
}

// IsCustomer is true for identities holding no other role.
func IsCustomer(id Identity) bool {
	return !IsManager(id) && !IsDeliveryCrew(id)
}

type Action string

const (
	ActionCreateCategory     Action = "create_category"
	ActionUpdateCategory     Action = "update_category"
	ActionDeleteCategory     Action = "delete_category"
	ActionSetItemOfTheDay    Action = "set_item_of_the_day"
	ActionManageOrders       Action = "manage_orders"
	ActionAssignDeliveryCrew Action = "assign_delivery_crew"
	ActionMarkDelivered      Action = "mark_delivered"
	ActionAssignManager      Action = "assign_manager"
	ActionListUsers          Action = "list_users"
)

type rule struct {
	allow  Predicate
	denial string
}

var rules = map[Action]rule{
	ActionCreateCategory:     {IsAdmin, "Only admin users can create categories."},
	ActionUpdateCategory:     {IsManager, "Only managers can update categories."},
	ActionDeleteCategory:     {IsManager, "Only managers can delete categories."},
	ActionSetItemOfTheDay:    {IsManager, "Only managers can update the item of the day."},
	ActionManageOrders:       {IsManager, "Only managers can change this order field."},
	ActionAssignDeliveryCrew: {IsManager, "Only managers can assign orders to the delivery crew."},
	ActionMarkDelivered:      {IsDeliveryCrew, "Only delivery crew can mark orders as delivered."},
	ActionAssignManager:      {IsStaff, "Only admins can assign users to the Manager group."},
	ActionListUsers:          {IsManager, "Only managers can manage users."},
}

// Allowed reports whether id may perform action. Unknown actions are denied.
func Allowed(id Identity, action Action) bool {
	r, ok := rules[action]
	return ok && r.allow(id)
}

// Check returns a forbidden error when id may not perform action.
func Check(id Identity, action Action) error {
	if Allowed(id, action) {
		return nil
	}
	if r, ok := rules[action]; ok {
		return utils.ErrForbidden("%s", r.denial)
	}
	return utils.ErrForbidden("action %q is not permitted", action)
}

const identityKey = "identity"

// SetIdentity stores id on the request context.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

// FromContext returns the identity stored by the auth middleware.
func FromContext(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
