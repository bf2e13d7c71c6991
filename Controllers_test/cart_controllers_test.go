package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/etceter4/littlelemon/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAndCheckout(t *testing.T) {
	api := setupTestAPI(t)
	_, token := api.createUser("alice", false)
	pasta := api.createFoodItem("Pasta", "9.00", nil)
	salad := api.createFoodItem("Salad", "6.00", nil)

	code, resp := api.do(http.MethodGet, "/cart", token, nil)
	assert.Equal(t, http.StatusNotFound, code, "no cart before the first add")

	for _, id := range []uint{pasta.ID, pasta.ID, salad.ID} {
		code, resp = api.do(http.MethodPost, "/cart/add", token, map[string]uint{"food_item_id": id})
		require.Equal(t, http.StatusCreated, code, resp.Message)
	}

	code, resp = api.do(http.MethodGet, "/cart", token, nil)
	require.Equal(t, http.StatusOK, code)
	var items []models.CartItemView
	decodeData(t, resp, &items)
	require.Len(t, items, 2)
	assert.Equal(t, "Pasta", items[0].FoodItemName)
	assert.EqualValues(t, 2, items[0].Quantity)
	assert.EqualValues(t, 1, items[1].Quantity)

	code, resp = api.do(http.MethodPost, "/place_order", token, nil)
	require.Equal(t, http.StatusCreated, code, resp.Message)
	var orders []models.Order
	decodeData(t, resp, &orders)
	assert.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, "alice", o.CustomerName)
		assert.Equal(t, models.DeliveryStatusPending, o.DeliveryStatus)
	}
	assert.EqualValues(t, 0, api.count(&models.CartItem{}))
	assert.EqualValues(t, 1, api.count(&models.Cart{}))

	code, resp = api.do(http.MethodPost, "/place_order", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "validation_error", resp.Kind)
	assert.EqualValues(t, 2, api.count(&models.Order{}))

	code, resp = api.do(http.MethodGet, "/my_orders", token, nil)
	require.Equal(t, http.StatusOK, code)
	decodeData(t, resp, &orders)
	assert.Len(t, orders, 2)
}

func TestAddToCartValidation(t *testing.T) {
	api := setupTestAPI(t)
	_, token := api.createUser("alice", false)

	code, resp := api.do(http.MethodPost, "/cart/add", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "validation_error", resp.Kind)

	code, resp = api.do(http.MethodPost, "/cart/add", token, map[string]uint{"food_item_id": 404})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Food item not found.", resp.Message)
}
