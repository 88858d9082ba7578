package routes

import (
	"github.com/anandicecream/storefront/app/controllers"
	"github.com/anandicecream/storefront/pkg/metrics"
	"github.com/anandicecream/storefront/pkg/router"
)

// RegisterAPI mounts the public HTTP surface.
func RegisterAPI(r *router.Router, orders *controllers.OrderController) {
	r.Get("/metrics", "metrics", metrics.Handler())

	api := r.Group("/api")
	api.Get("/health", "health", orders.Health)
	api.Post("/orders", "orders.create", orders.Create)
	api.Get("/orders", "orders.list", orders.List)
	api.Get("/orders/{orderId}", "orders.get", orders.Get)
	api.Patch("/orders/{orderId}/status", "orders.update_status", orders.UpdateStatus)
}
