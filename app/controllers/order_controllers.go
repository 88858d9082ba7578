package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anandicecream/storefront/app/models"
	"github.com/anandicecream/storefront/app/repositories"
	"github.com/anandicecream/storefront/app/services"
	"github.com/anandicecream/storefront/pkg/bind"
	"github.com/anandicecream/storefront/pkg/logger"
	"github.com/anandicecream/storefront/pkg/response"
)

// OrderController exposes the order intake API over HTTP.
type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// Health reports API and database liveness.
func (c *OrderController) Health(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Health(); err != nil {
		logger.WithCtx(r.Context()).Error("health check failed", "error", err)
		response.JSON(w, http.StatusInternalServerError, response.Map{
			"status":   "error",
			"message":  "Database connection failed",
			"database": "disconnected",
		})
		return
	}

	response.JSON(w, http.StatusOK, response.Map{
		"status":   "ok",
		"message":  "Anand Ice Cream API is running",
		"database": "connected",
	})
}

// Create accepts an order draft and persists it. The 201 response is
// written before the admin notification goes out.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var draft models.OrderDraft
	if _, err := bind.JSON(r, &draft); err != nil {
		response.BadRequest(w, services.KindMissingFields, err.Error())
		return
	}

	order, err := c.service.Create(&draft)
	if err != nil {
		var intake *services.IntakeError
		if errors.As(err, &intake) {
			response.BadRequest(w, intake.Kind, intake.Message)
			return
		}
		logger.WithCtx(r.Context()).Error("order creation failed", "error", err)
		response.ServerError(w, "create_failed", "Failed to create order")
		return
	}

	response.Created(w, response.Map{
		"message": "Order placed successfully",
		"orderId": order.OrderID,
		"order":   order,
	})
}

// List returns all orders, newest first.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	orders, err := c.service.List()
	if err != nil {
		logger.WithCtx(r.Context()).Error("order listing failed", "error", err)
		response.ServerError(w, "list_failed", "Failed to fetch orders")
		return
	}

	response.OK(w, response.Map{
		"count":  len(orders),
		"orders": orders,
	})
}

// Get returns a single order by its public ID.
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	order, err := c.service.Find(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			response.NotFound(w, "Order not found")
			return
		}
		logger.WithCtx(r.Context()).Error("order lookup failed", "order_id", orderID, "error", err)
		response.ServerError(w, "lookup_failed", "Failed to fetch order")
		return
	}

	response.OK(w, response.Map{"order": order})
}

// UpdateStatus moves an order into a new back-office status.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var body struct {
		Status string `json:"status" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.BadRequest(w, services.KindInvalidStatus, err.Error())
		return
	} else if len(errs) > 0 {
		response.BadRequest(w, services.KindInvalidStatus, "status is required")
		return
	}

	order, err := c.service.UpdateStatus(orderID, body.Status)
	if err != nil {
		var intake *services.IntakeError
		switch {
		case errors.As(err, &intake):
			response.BadRequest(w, intake.Kind, intake.Message)
		case errors.Is(err, repositories.ErrOrderNotFound):
			response.NotFound(w, "Order not found")
		default:
			logger.WithCtx(r.Context()).Error("status update failed", "order_id", orderID, "error", err)
			response.ServerError(w, "update_failed", "Failed to update order status")
		}
		return
	}

	response.OK(w, response.Map{
		"message": "Order status updated",
		"order":   order,
	})
}
