package services

import (
	"testing"

	"github.com/etceter4/littlelemon/models"
	"github.com/etceter4/littlelemon/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartTwiceIncrementsQuantity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	alice := createUser(t, db, "alice")
	soup := createFoodItem(t, db, "Soup", "4.50", nil)

	first, err := svc.AddToCart(alice, soup.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Quantity)
	assert.Equal(t, "Soup", first.FoodItem.Name)

	second, err := svc.AddToCart(alice, soup.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, uint(2), second.Quantity)

	assert.Equal(t, int64(1), countRows(t, db, &models.CartItem{}))
	assert.Equal(t, int64(1), countRows(t, db, &models.Cart{}))
}

func TestAddToCartUnknownFoodItem(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	alice := createUser(t, db, "alice")

	_, err := svc.AddToCart(alice, 404)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
	assert.Zero(t, countRows(t, db, &models.CartItem{}))
}

func TestListCartItems(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	alice := createUser(t, db, "alice")

	_, err := svc.ListCartItems(alice)
	assert.True(t, utils.IsKind(err, utils.KindNotFound), "no cart yet")

	soup := createFoodItem(t, db, "Soup", "4.50", nil)
	bread := createFoodItem(t, db, "Bread", "2.00", nil)
	_, err = svc.AddToCart(alice, soup.ID)
	require.NoError(t, err)
	_, err = svc.AddToCart(alice, bread.ID)
	require.NoError(t, err)
	_, err = svc.AddToCart(alice, soup.ID)
	require.NoError(t, err)

	items, err := svc.ListCartItems(alice)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Soup", items[0].FoodItemName)
	assert.Equal(t, uint(2), items[0].Quantity)
	assert.Equal(t, "Bread", items[1].FoodItemName)
	assert.Equal(t, uint(1), items[1].Quantity)
}

func TestPlaceOrderCreatesOneOrderPerCartItem(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	alice := createUser(t, db, "alice")
	a := createFoodItem(t, db, "A", "1.00", nil)
	b := createFoodItem(t, db, "B", "2.00", nil)

	for _, id := range []uint{a.ID, a.ID, b.ID} {
		_, err := svc.AddToCart(alice, id)
		require.NoError(t, err)
	}

	orders, err := svc.PlaceOrder(alice)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, "alice", o.CustomerName)
		assert.Equal(t, models.DeliveryStatusPending, o.DeliveryStatus)
		assert.Nil(t, o.DeliveryCrewMemberID)
	}
	assert.Equal(t, a.ID, orders[0].FoodItemID)
	assert.Equal(t, b.ID, orders[1].FoodItemID)

	assert.Equal(t, int64(2), countRows(t, db, &models.Order{}))
	assert.Zero(t, countRows(t, db, &models.CartItem{}))
	assert.Equal(t, int64(1), countRows(t, db, &models.Cart{}), "cart is kept")

	items, err := svc.ListCartItems(alice)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	alice := createUser(t, db, "alice")

	_, err := svc.PlaceOrder(alice)
	assert.True(t, utils.IsKind(err, utils.KindValidation), "no cart at all")

	soup := createFoodItem(t, db, "Soup", "4.50", nil)
	_, err = svc.AddToCart(alice, soup.ID)
	require.NoError(t, err)
	_, err = svc.PlaceOrder(alice)
	require.NoError(t, err)

	_, err = svc.PlaceOrder(alice)
	assert.True(t, utils.IsKind(err, utils.KindValidation), "cart emptied by checkout")
	assert.Equal(t, int64(1), countRows(t, db, &models.Order{}))
}

func TestPlaceOrderRollsBackOnFailure(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	alice := createUser(t, db, "alice")
	soup := createFoodItem(t, db, "Soup", "4.50", nil)
	_, err := svc.AddToCart(alice, soup.ID)
	require.NoError(t, err)

	// deleting cart items fails after the orders were inserted
	require.NoError(t, db.Exec(`CREATE TRIGGER block_cart_item_delete BEFORE DELETE ON cart_items
		BEGIN SELECT RAISE(ABORT, 'cart items are locked'); END`).Error)

	_, err = svc.PlaceOrder(alice)
	require.Error(t, err)
	assert.Zero(t, countRows(t, db, &models.Order{}))
	assert.Equal(t, int64(1), countRows(t, db, &models.CartItem{}))
}
