package Controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-orders/config"
	"github.com/yeremiapane/table-orders/controllers"
	"github.com/yeremiapane/table-orders/database"
	"github.com/yeremiapane/table-orders/models"
	"github.com/yeremiapane/table-orders/services"
	"github.com/yeremiapane/table-orders/utils"
)

const fixtureOrders = `{"status_code":200,"table_id":11,"orders":[` +
	`{"order_id":1,"table_id":11,"item_name":"Kapao","note":"With fried egg",` +
	`"creation_time":"2024-01-11T15:26:00.281247Z","estimated_arrival_time":"2024-01-11T15:30:00.000000Z"},` +
	`{"order_id":2,"table_id":11,"item_name":"Ramen","note":null,` +
	`"creation_time":"2024-01-11T15:25:00.281247Z","estimated_arrival_time":"2024-01-11T15:40:00.000000Z"}]}`

func setupTestDBForOrders(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger("error", "text")

	cfg := config.Default()
	cfg.DatabaseURL = "sqlite://file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	cfg.MaxDBPoolSize = 1

	db, err := config.InitDB(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.AutoMigrate(db.DB))
	// Seed data: dua order untuk meja 11
	require.NoError(t, database.ExecuteSQLFile(db.DB, "../database/fixtures/orders.sql"))
	return db.DB
}

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	service := services.NewOrderService(database.NewGormOrderStore(db), 100)
	orderCtrl := controllers.NewOrderController(service, false)
	router.POST("/tables/:table_id/orders", orderCtrl.AddOrders)
	router.GET("/tables/:table_id/orders", orderCtrl.GetTableOrders)
	router.GET("/tables/:table_id/orders/:order_id", orderCtrl.GetOrderByID)
	router.DELETE("/tables/:table_id/orders/:order_id", orderCtrl.DeleteOrder)
	return router
}

func perform(router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func assertErrorEnvelope(t *testing.T, w *httptest.ResponseRecorder, status int, cause string) {
	t.Helper()
	assert.Equal(t, status, w.Code)
	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, status, resp.StatusCode)
	assert.Equal(t, cause, resp.ErrorCause)
}

func TestGetTableOrders(t *testing.T) {
	router := setupOrderRouter(setupTestDBForOrders(t))

	w := perform(router, http.MethodGet, "/tables/11/orders", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fixtureOrders, w.Body.String())

	w = perform(router, http.MethodGet, "/tables/100/orders", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status_code":200,"table_id":100,"orders":[]}`, w.Body.String())
}

func TestPathErrors(t *testing.T) {
	router := setupOrderRouter(setupTestDBForOrders(t))

	tests := []struct {
		method string
		path   string
		status int
		cause  string
	}{
		{http.MethodGet, "/tables/-1/orders", http.StatusNotFound, "Table not found"},
		{http.MethodGet, "/tables/0/orders", http.StatusNotFound, "Table not found"},
		{http.MethodGet, "/tables/101/orders", http.StatusNotFound, "Table not found"},
		{http.MethodGet, "/tables/70000/orders", http.StatusBadRequest, "Bad request -> parameters in path are incorrect"},
		{http.MethodGet, "/tables/eleven/orders", http.StatusBadRequest, "Bad request -> parameters in path are incorrect"},
		{http.MethodGet, "/tables/1/orders/1", http.StatusNotFound, "Order not found"},
		{http.MethodGet, "/tables/11/orders/0", http.StatusNotFound, "Order not found"},
		{http.MethodGet, "/tables/11/orders/2147483650", http.StatusBadRequest, "Bad request -> parameters in path are incorrect"},
		{http.MethodDelete, "/tables/11/orders/-3", http.StatusNotFound, "Order not found"},
		{http.MethodDelete, "/tables/70000/orders/1", http.StatusBadRequest, "Bad request -> parameters in path are incorrect"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := perform(router, tt.method, tt.path, nil)
			assertErrorEnvelope(t, w, tt.status, tt.cause)
		})
	}
}

func TestGetOrderByID(t *testing.T) {
	router := setupOrderRouter(setupTestDBForOrders(t))

	w := perform(router, http.MethodGet, "/tables/11/orders/2", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.TableOrdersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, "Ramen", resp.Orders[0].ItemName)
	assert.Nil(t, resp.Orders[0].Note)
}

func TestAddOrders(t *testing.T) {
	router := setupOrderRouter(setupTestDBForOrders(t))

	req := models.NewTableOrdersRequest(11)
	req.AddOrder("Pad Krapow", "Not spicy")
	req.AddOrderWithoutNote("Tom Yum")
	payload, err := json.Marshal(req)
	require.NoError(t, err)

	before := time.Now().UTC().Add(-time.Second)
	w := perform(router, http.MethodPost, "/tables/11/orders", payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.TableOrdersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint16(200), resp.StatusCode)
	require.Len(t, resp.Orders, 4)
	assert.Equal(t, []string{"Kapao", "Ramen", "Pad Krapow", "Tom Yum"},
		[]string{resp.Orders[0].ItemName, resp.Orders[1].ItemName, resp.Orders[2].ItemName, resp.Orders[3].ItemName})

	added := resp.Orders[2:]
	assert.Equal(t, added[0].CreationTime, added[1].CreationTime)
	for _, order := range added {
		assert.Greater(t, order.OrderID, int32(2))
		assert.True(t, order.CreationTime.After(before))
		assert.GreaterOrEqual(t, order.ArrivalOffset(), 5*time.Minute)
		assert.LessOrEqual(t, order.ArrivalOffset(), 15*time.Minute)
	}
	require.NotNil(t, added[0].Note)
	assert.Equal(t, "Not spicy", *added[0].Note)
}

func TestAddOrdersRejected(t *testing.T) {
	router := setupOrderRouter(setupTestDBForOrders(t))

	mismatch := `{"table_id":11,"orders":[{"table_id":11,"item_name":"Kapao"},{"table_id":12,"item_name":"Ramen"}]}`
	w := perform(router, http.MethodPost, "/tables/11/orders", []byte(mismatch))
	assertErrorEnvelope(t, w, http.StatusBadRequest, "Bad request -> table id in json request (or path) is incorrect")

	wrongPath := `{"table_id":11,"orders":[{"table_id":11,"item_name":"Kapao"}]}`
	w = perform(router, http.MethodPost, "/tables/12/orders", []byte(wrongPath))
	assertErrorEnvelope(t, w, http.StatusBadRequest, "Bad request -> table id in json request (or path) is incorrect")

	for _, body := range []string{
		`{"table_id":11,"orders":[{"table_id":11}]}`,
		`{"table_id":11,"orders":[{"item_name":"Kapao"}]}`,
		`{"orders":[{"table_id":11,"item_name":"Kapao"}]}`,
		`{"table_id":11}`,
		`{"table_id":"eleven","orders":[]}`,
		`not json`,
	} {
		w = perform(router, http.MethodPost, "/tables/11/orders", []byte(body))
		assertErrorEnvelope(t, w, http.StatusBadRequest, "Bad request -> Json request payload is incorrect")
	}

	// nothing was stored
	w = perform(router, http.MethodGet, "/tables/11/orders", nil)
	assert.JSONEq(t, fixtureOrders, w.Body.String())
}

func TestAddOrdersZeroTableID(t *testing.T) {
	router := setupOrderRouter(setupTestDBForOrders(t))

	// 0 is a valid JSON value for table_id, so it reaches the table id rules
	w := perform(router, http.MethodPost, "/tables/5/orders",
		[]byte(`{"table_id":5,"orders":[{"table_id":0,"item_name":"Kapao"}]}`))
	assertErrorEnvelope(t, w, http.StatusBadRequest, "Bad request -> table id in json request (or path) is incorrect")

	w = perform(router, http.MethodPost, "/tables/0/orders",
		[]byte(`{"table_id":0,"orders":[{"table_id":0,"item_name":"Kapao"}]}`))
	assertErrorEnvelope(t, w, http.StatusNotFound, "Table not found")
}

func TestAddOrdersTooLongItemName(t *testing.T) {
	router := setupOrderRouter(setupTestDBForOrders(t))

	body := `{"table_id":11,"orders":[{"table_id":11,"item_name":"Kapao"},{"table_id":11,"item_name":"` +
		strings.Repeat("x", 256) + `"}]}`
	w := perform(router, http.MethodPost, "/tables/11/orders", []byte(body))
	assertErrorEnvelope(t, w, http.StatusInternalServerError, "Database error -> storage operation failed")

	w = perform(router, http.MethodGet, "/tables/11/orders", nil)
	assert.JSONEq(t, fixtureOrders, w.Body.String())
}

func TestDeleteOrder(t *testing.T) {
	router := setupOrderRouter(setupTestDBForOrders(t))

	w := perform(router, http.MethodDelete, "/tables/11/orders/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.TableOrdersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, int32(2), resp.Orders[0].OrderID)

	w = perform(router, http.MethodDelete, "/tables/11/orders/1", nil)
	assertErrorEnvelope(t, w, http.StatusNotFound, "Order not found")

	w = perform(router, http.MethodDelete, "/tables/12/orders/2", nil)
	assertErrorEnvelope(t, w, http.StatusNotFound, "Order not found")
}
