package api

import (
	"database/sql"
	"net/http"

	"phonestock/internal/model"
	"phonestock/internal/store"
)

// Options configures the API router.
type Options struct {
	JWTSecret  string
	ExcelPath  string
	SyncPolicy store.SyncPolicy
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, opts Options) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: opts.JWTSecret}
	usersHandler := &UsersHandler{DB: db}
	shopsHandler := &ShopsHandler{DB: db}
	devicesHandler := &DevicesHandler{DB: db}
	salesHandler := &SalesHandler{DB: db}
	transfersHandler := &TransfersHandler{DB: db}
	inventoryHandler := &InventoryHandler{DB: db, ExcelPath: opts.ExcelPath, SyncPolicy: opts.SyncPolicy}

	authMW := AuthMiddleware(opts.JWTSecret)
	requireAdmin := RequireRole(model.RoleAdmin)
	requireManager := RequireRole(model.RoleManager)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Users (admin only).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	// Shops: read (all roles), write (manager+).
	mux.Handle("GET /api/shops", authMW(http.HandlerFunc(shopsHandler.List)))
	mux.Handle("POST /api/shops", authMW(requireManager(http.HandlerFunc(shopsHandler.Create))))

	// Devices: read (all roles), photo upload (manager+).
	mux.Handle("GET /api/devices", authMW(http.HandlerFunc(devicesHandler.List)))
	mux.Handle("GET /api/devices/{imei}", authMW(http.HandlerFunc(devicesHandler.Get)))
	mux.Handle("GET /api/devices/{imei}/history", authMW(http.HandlerFunc(devicesHandler.GetHistory)))
	mux.Handle("PUT /api/devices/{imei}/photo", authMW(requireManager(http.HandlerFunc(devicesHandler.UploadPhoto))))
	mux.Handle("GET /api/devices/{imei}/photo", authMW(http.HandlerFunc(devicesHandler.GetPhoto)))

	// Inventory transactions (manager+).
	mux.Handle("POST /api/sales", authMW(requireManager(http.HandlerFunc(salesHandler.RecordSale))))
	mux.Handle("POST /api/returns", authMW(requireManager(http.HandlerFunc(salesHandler.ProcessReturn))))
	mux.Handle("POST /api/intakes", authMW(requireManager(http.HandlerFunc(salesHandler.Intake))))
	mux.Handle("POST /api/transfers", authMW(requireManager(http.HandlerFunc(transfersHandler.Create))))
	mux.Handle("GET /api/transfers", authMW(http.HandlerFunc(transfersHandler.List)))

	// Analytics and products.
	mux.Handle("GET /api/analytics", authMW(http.HandlerFunc(inventoryHandler.Analytics)))
	mux.Handle("GET /api/products/low-stock", authMW(http.HandlerFunc(inventoryHandler.LowStock)))
	mux.Handle("PATCH /api/products/{id}", authMW(requireManager(http.HandlerFunc(inventoryHandler.PatchProduct))))

	// Workbook sync (admin only).
	mux.Handle("POST /api/sync", authMW(requireAdmin(http.HandlerFunc(inventoryHandler.Sync))))

	return mux
}
