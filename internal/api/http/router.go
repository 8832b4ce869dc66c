// Package http exposes the JSON API. Routing follows three tiers: public
// endpoints (auth, search, webhooks), authenticated endpoints, and
// role-gated vendor/admin endpoints.
package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/security"
	"renthub-backend/internal/service"
)

// Services bundles everything the router needs. All fields are required.
type Services struct {
	Auth          service.AuthService
	Catalog       service.CatalogService
	Inventory     service.InventoryService
	Checkout      service.CheckoutService
	Lifecycle     service.OrderLifecycleService
	Payments      service.PaymentService
	Notifications service.NotificationService
}

func NewRouter(svcs Services, tokens security.TokenManager) *mux.Router {
	auth := &authHandler{auth: svcs.Auth}
	catalog := &catalogHandler{catalog: svcs.Catalog, inventory: svcs.Inventory}
	checkout := &checkoutHandler{checkoutSvc: svcs.Checkout, payments: svcs.Payments}
	orders := &orderHandler{lifecycle: svcs.Lifecycle, payments: svcs.Payments, inventory: svcs.Inventory}
	admin := &adminHandler{payments: svcs.Payments}
	notifications := &notificationHandler{notifications: svcs.Notifications}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes.
	api.HandleFunc("/auth/signup", auth.signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", auth.login).Methods(http.MethodPost)
	api.HandleFunc("/products", catalog.searchProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", catalog.getProduct).Methods(http.MethodGet)
	api.HandleFunc("/variants/{id}/availability", catalog.checkAvailability).Methods(http.MethodGet)
	api.HandleFunc("/webhooks/refunds", checkout.refundWebhook).Methods(http.MethodPost)

	// Authenticated routes.
	authed := api.NewRoute().Subrouter()
	authed.Use(authMiddleware(tokens))

	authed.HandleFunc("/checkout", requireRole(checkout.checkout, domain.UserRoleCustomer)).Methods(http.MethodPost)
	authed.HandleFunc("/checkout/confirm", checkout.confirmPayment).Methods(http.MethodPost)

	authed.HandleFunc("/orders", orders.listCustomerOrders).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{id}", orders.getOrder).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{id}/cancel", requireRole(orders.cancelOrder, domain.UserRoleCustomer)).Methods(http.MethodPost)
	authed.HandleFunc("/orders/{id}/refund", orders.getOrderRefund).Methods(http.MethodGet)

	authed.HandleFunc("/notifications", notifications.list).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id}/read", notifications.markAsRead).Methods(http.MethodPost)

	// Vendor routes.
	authed.HandleFunc("/vendor/products", requireRole(catalog.addProduct, domain.UserRoleVendor)).Methods(http.MethodPost)
	authed.HandleFunc("/vendor/products", requireRole(catalog.listVendorProducts, domain.UserRoleVendor)).Methods(http.MethodGet)
	authed.HandleFunc("/vendor/variants/{id}", requireRole(catalog.updateVariant, domain.UserRoleVendor)).Methods(http.MethodPut)
	authed.HandleFunc("/vendor/orders", requireRole(orders.listVendorOrders, domain.UserRoleVendor)).Methods(http.MethodGet)
	authed.HandleFunc("/vendor/orders/{id}/approve", requireRole(orders.approveOrder, domain.UserRoleVendor)).Methods(http.MethodPost)
	authed.HandleFunc("/vendor/orders/{id}/reject", requireRole(orders.rejectOrder, domain.UserRoleVendor)).Methods(http.MethodPost)
	authed.HandleFunc("/vendor/orders/{id}/activate", requireRole(orders.activateRental, domain.UserRoleVendor, domain.UserRoleAdmin)).Methods(http.MethodPost)
	authed.HandleFunc("/vendor/orders/{id}/complete", requireRole(orders.completeRental, domain.UserRoleVendor)).Methods(http.MethodPost)

	// Admin routes.
	authed.HandleFunc("/admin/interventions", requireRole(admin.listInterventions, domain.UserRoleAdmin)).Methods(http.MethodGet)
	authed.HandleFunc("/admin/interventions/{id}/resolve", requireRole(admin.resolveIntervention, domain.UserRoleAdmin)).Methods(http.MethodPost)
	authed.HandleFunc("/admin/orders/{id}/refunds", requireRole(admin.createRefund, domain.UserRoleAdmin)).Methods(http.MethodPost)
	authed.HandleFunc("/admin/orders/{id}/locks", requireRole(orders.listOrderLocks, domain.UserRoleAdmin)).Methods(http.MethodGet)

	return r
}
