package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"localizei-backend/internal/domain"
	"localizei-backend/internal/realtime"
	"localizei-backend/internal/security"
	"localizei-backend/internal/service"
)

// RouterDeps carries everything the API surface needs.
type RouterDeps struct {
	TokenManager security.TokenManager
	AuthSvc      service.AuthService
	PaymentSvc   service.PaymentService
	ApprovalSvc  service.ApprovalService
	WalletSvc    service.WalletService
	StoreSvc     service.StoreService
	NoteSvc      service.NotificationService
	Broker       realtime.Broker
}

// NewRouter wires all API routes. Everything under /api/v1 except the auth
// endpoints requires a valid access token.
func NewRouter(deps RouterDeps) *mux.Router {
	authHandler := NewAuthHandler(deps.AuthSvc)
	txHandler := NewTransactionHandler(deps.PaymentSvc, deps.ApprovalSvc)
	watchHandler := NewWatchHandler(deps.PaymentSvc, deps.Broker)
	walletHandler := NewWalletHandler(deps.WalletSvc)
	storeHandler := NewStoreHandler(deps.StoreSvc)
	noteHandler := NewNotificationHandler(deps.NoteSvc)
	authMiddleware := NewAuthMiddleware(deps.TokenManager)

	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	public := router.PathPrefix("/api/v1").Subrouter()
	public.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	public.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	public.HandleFunc("/auth/refresh", authHandler.Refresh).Methods("POST")

	private := router.PathPrefix("/api/v1").Subrouter()
	private.Use(authMiddleware.Handler)

	private.HandleFunc("/auth/device", authHandler.RegisterDevice).Methods("POST")

	private.HandleFunc("/transactions",
		RequireRole(domain.UserRoleCustomer, txHandler.Create)).Methods("POST")
	private.HandleFunc("/transactions",
		RequireRole(domain.UserRoleCustomer, txHandler.List)).Methods("GET")
	private.HandleFunc("/transactions/{id}", txHandler.Get).Methods("GET")
	private.HandleFunc("/transactions/{id}/approve",
		RequireRole(domain.UserRoleMerchant, txHandler.Approve)).Methods("POST")
	private.HandleFunc("/transactions/{id}/reject",
		RequireRole(domain.UserRoleMerchant, txHandler.Reject)).Methods("POST")
	private.HandleFunc("/transactions/{id}/watch", watchHandler.Watch).Methods("GET")

	private.HandleFunc("/wallet/balance",
		RequireRole(domain.UserRoleCustomer, walletHandler.GetBalance)).Methods("GET")
	private.HandleFunc("/wallet/statement",
		RequireRole(domain.UserRoleCustomer, walletHandler.GetStatement)).Methods("GET")

	private.HandleFunc("/stores",
		RequireRole(domain.UserRoleMerchant, storeHandler.Create)).Methods("POST")
	private.HandleFunc("/stores/mine",
		RequireRole(domain.UserRoleMerchant, storeHandler.ListMine)).Methods("GET")
	private.HandleFunc("/stores/{id}", storeHandler.Get).Methods("GET")
	private.HandleFunc("/stores/{id}",
		RequireRole(domain.UserRoleMerchant, storeHandler.Update)).Methods("PUT")
	private.HandleFunc("/stores/{id}/pending",
		RequireRole(domain.UserRoleMerchant, txHandler.ListStorePending)).Methods("GET")

	private.HandleFunc("/notifications", noteHandler.List).Methods("GET")
	private.HandleFunc("/notifications/{id}/read", noteHandler.MarkAsRead).Methods("POST")

	return router
}
