package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/anandicecream/storefront/app/controllers"
	"github.com/anandicecream/storefront/app/models"
	"github.com/anandicecream/storefront/app/repositories"
	"github.com/anandicecream/storefront/app/routes"
	"github.com/anandicecream/storefront/app/services"
	"github.com/anandicecream/storefront/pkg/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Order{}))

	svc := services.NewOrderService(repositories.NewOrderRepository(db), nil, nil)

	r := router.New()
	routes.RegisterAPI(r, controllers.NewOrderController(svc))

	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func draftBody() map[string]interface{} {
	return map[string]interface{}{
		"customerInfo": map[string]interface{}{
			"fullName":        "A",
			"email":           "a@example.com",
			"phone":           "9876543210",
			"deliveryAddress": "12 MG Road",
			"pincode":         "576101",
		},
		"items": []map[string]interface{}{
			{"product": "Kulfi", "flavor": "Badam", "quantity": 1, "unitPrice": 30, "price": 30},
		},
		"totalAmount": 30,
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "connected", body.Database)
}

func TestCreateOrder_Accepted(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/orders", draftBody())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		OrderID string `json:"orderId"`
		Order   struct {
			Status        string  `json:"status"`
			PaymentStatus string  `json:"paymentStatus"`
			TotalAmount   float64 `json:"totalAmount"`
		} `json:"order"`
	}
	decode(t, resp, &body)

	assert.True(t, body.Success)
	assert.Regexp(t, `^ORD-[A-Z0-9]+-[A-Z0-9]+$`, body.OrderID)
	assert.Equal(t, "pending", body.Order.Status)
	assert.Equal(t, "pending", body.Order.PaymentStatus)
	assert.Equal(t, float64(30), body.Order.TotalAmount)

	// The accepted order is retrievable straight away.
	getResp, err := http.Get(srv.URL + "/api/orders/" + body.OrderID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, getResp.StatusCode)

	var fetched struct {
		Success bool `json:"success"`
		Order   struct {
			OrderID string `json:"orderId"`
		} `json:"order"`
	}
	decode(t, getResp, &fetched)
	assert.Equal(t, body.OrderID, fetched.Order.OrderID)
}

func TestCreateOrder_ValidationKinds(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name   string
		mutate func(map[string]interface{})
		kind   string
	}{
		{"empty items", func(b map[string]interface{}) { b["items"] = []interface{}{} }, "invalid_items"},
		{"missing email", func(b map[string]interface{}) {
			b["customerInfo"].(map[string]interface{})["email"] = ""
		}, "incomplete_customer_info"},
		{"missing customerInfo", func(b map[string]interface{}) { delete(b, "customerInfo") }, "missing_fields"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := draftBody()
			tc.mutate(body)

			resp := postJSON(t, srv.URL+"/api/orders", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var rejection struct {
				Error   string `json:"error"`
				Message string `json:"message"`
			}
			decode(t, resp, &rejection)
			assert.Equal(t, tc.kind, rejection.Error)
			assert.NotEmpty(t, rejection.Message)
		})
	}
}

func TestListOrders_NewestFirst(t *testing.T) {
	srv := newTestServer(t)

	var ids []string
	for i := 0; i < 3; i++ {
		resp := postJSON(t, srv.URL+"/api/orders", draftBody())
		var body struct {
			OrderID string `json:"orderId"`
		}
		decode(t, resp, &body)
		ids = append(ids, body.OrderID)
	}

	resp, err := http.Get(srv.URL + "/api/orders")
	require.NoError(t, err)

	var listing struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
		Orders  []struct {
			OrderID string `json:"orderId"`
		} `json:"orders"`
	}
	decode(t, resp, &listing)

	require.Equal(t, 3, listing.Count)
	assert.Equal(t, ids[2], listing.Orders[0].OrderID)
	assert.Equal(t, ids[0], listing.Orders[2].OrderID)
}

func TestGetOrder_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/orders/ORD-NOPE-AAAAA")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	decode(t, resp, &body)
	assert.NotEmpty(t, body.Message)
}

func TestUpdateStatus(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/orders", draftBody())
	var created struct {
		OrderID string `json:"orderId"`
	}
	decode(t, resp, &created)

	patch := func(orderID, status string) *http.Response {
		raw, _ := json.Marshal(map[string]string{"status": status})
		req, err := http.NewRequest(http.MethodPatch,
			srv.URL+"/api/orders/"+orderID+"/status", bytes.NewReader(raw))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		r, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return r
	}

	resp = patch(created.OrderID, "confirmed")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated struct {
		Order struct {
			Status string `json:"status"`
		} `json:"order"`
	}
	decode(t, resp, &updated)
	assert.Equal(t, "confirmed", updated.Order.Status)

	resp = patch(created.OrderID, "shipped")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = patch("ORD-NOPE-AAAAA", "confirmed")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
