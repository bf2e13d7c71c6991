package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etceter4/littlelemon/config"
	"github.com/etceter4/littlelemon/database"
	"github.com/etceter4/littlelemon/models"
	"github.com/etceter4/littlelemon/router"
	"github.com/etceter4/littlelemon/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Kind    string          `json:"kind"`
	Data    json.RawMessage `json:"data"`
}

type testAPI struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

// setupTestAPI builds the full router on a private in-memory database.
func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitLogger("error")

	cfg := config.Default()
	cfg.GinMode = gin.TestMode
	cfg.DB.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	cfg.HTTP.RateLimitRPS = 0
	cfg.HTTP.AuthRateLimit = 0

	db, err := config.InitDB(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Setup(db, "", ""))
	return &testAPI{t: t, db: db, router: router.SetupRouter(db, cfg)}
}

// createUser stores a user with password "secret-pass" in the given groups and
// returns it together with an access token.
func (a *testAPI) createUser(username string, staff bool, groups ...string) (models.User, string) {
	a.t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	require.NoError(a.t, err)

	user := models.User{Username: username, Password: string(hashed), IsStaff: staff, IsSuperuser: staff}
	for _, name := range groups {
		var g models.Group
		require.NoError(a.t, a.db.Where(models.Group{Name: name}).First(&g).Error)
		user.Groups = append(user.Groups, g)
	}
	require.NoError(a.t, a.db.Create(&user).Error)

	token, err := utils.GenerateToken(user.ID, user.Username, utils.TokenTypeAccess)
	require.NoError(a.t, err)
	return user, token
}

func (a *testAPI) createCategory(name string) models.Category {
	a.t.Helper()
	c := models.Category{Name: name}
	require.NoError(a.t, a.db.Create(&c).Error)
	return c
}

func (a *testAPI) createFoodItem(name, price string, categoryID *uint) models.FoodItem {
	a.t.Helper()
	item := models.FoodItem{
		Name:        name,
		Description: name,
		Price:       decimal.RequireFromString(price),
		CategoryID:  categoryID,
	}
	require.NoError(a.t, a.db.Create(&item).Error)
	return item
}

// do sends a JSON request and decodes the response envelope.
func (a *testAPI) do(method, path, token string, body interface{}) (int, apiResponse) {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return w.Code, resp
}

func decodeData(t *testing.T, resp apiResponse, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Data, v), "data: %s", string(resp.Data))
}

func (a *testAPI) count(model interface{}) int64 {
	a.t.Helper()
	var n int64
	require.NoError(a.t, a.db.Model(model).Count(&n).Error)
	return n
}
