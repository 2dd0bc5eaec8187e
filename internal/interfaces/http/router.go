package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/usecase"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/logger"
)

// RouterDeps carries everything the router wires into handlers.
type RouterDeps struct {
	TanahGarapanUC *usecase.TanahGarapanUseCase
	ProyekUC       *usecase.ProyekUseCase
	PembelianUC    *usecase.PembelianUseCase
	PembayaranUC   *usecase.PembayaranUseCase
	UserUC         *usecase.UserUseCase
	AuthUC         *usecase.AuthUseCase
	ActivityUC     *usecase.ActivityLogUseCase
	JWTSecret      string
	Log            *logger.Logger
}

// Router registers the API routes. Everything except login and the health
// probe requires a Bearer token; write routes additionally require MANAGER,
// and the users/activity pages require ADMIN.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (public login, token-gated /me)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Tanah garapan: reads for every role, writes for MANAGER+
	tg := protected.Group("/tanah-garapan")
	tgHandler := NewTanahGarapanHandler(deps.TanahGarapanUC, deps.Log)
	tg.Get("/", tgHandler.List)
	tg.Get("/search", tgHandler.Search)
	tg.Get("/search/advanced", tgHandler.AdvancedSearch)
	tg.Get("/stats", tgHandler.Stats)
	tg.Get("/locations", tgHandler.Locations)
	tg.Get("/export", RequireManageData, tgHandler.ExportCSV)
	tg.Post("/print", tgHandler.GetByIDs)
	tg.Get("/:id", tgHandler.GetByID)
	tg.Post("/", RequireManageData, tgHandler.Create)
	tg.Put("/:id", RequireManageData, tgHandler.Update)
	tg.Delete("/:id", RequireManageData, tgHandler.Delete)

	// Proyek
	proyek := protected.Group("/proyek")
	proyekHandler := NewProyekHandler(deps.ProyekUC, deps.Log)
	proyek.Get("/", proyekHandler.List)
	proyek.Get("/stats", proyekHandler.Stats)
	proyek.Get("/export", RequireManageData, proyekHandler.ExportCSV)
	proyek.Get("/:id", proyekHandler.GetByID)
	proyek.Post("/", RequireManageData, proyekHandler.Create)
	proyek.Put("/:id", RequireManageData, proyekHandler.Update)
	proyek.Delete("/:id", RequireManageData, proyekHandler.Delete)

	// Pembelian, with its payments nested under the purchase
	pembelian := protected.Group("/pembelian")
	pembelianHandler := NewPembelianHandler(deps.PembelianUC, deps.Log)
	pembayaranHandler := NewPembayaranHandler(deps.PembayaranUC, deps.Log)
	pembelian.Get("/", pembelianHandler.List)
	pembelian.Get("/stats", pembelianHandler.Stats)
	pembelian.Get("/export", RequireManageData, pembelianHandler.ExportCSV)
	pembelian.Get("/:id", pembelianHandler.GetByID)
	pembelian.Post("/", RequireManageData, pembelianHandler.Create)
	pembelian.Put("/:id", RequireManageData, pembelianHandler.Update)
	pembelian.Patch("/:id/status", RequireManageData, pembelianHandler.UpdateStatus)
	pembelian.Delete("/:id", RequireManageData, pembelianHandler.Delete)
	pembelian.Get("/:pembelianId/pembayaran", pembayaranHandler.ListByPembelian)

	// Pembayaran
	pembayaran := protected.Group("/pembayaran")
	pembayaran.Get("/stats", pembayaranHandler.Stats)
	pembayaran.Get("/:id", pembayaranHandler.GetByID)
	pembayaran.Post("/", RequireManageData, pembayaranHandler.Create)
	pembayaran.Patch("/:id/verify", RequireManageData, pembayaranHandler.Verify)
	pembayaran.Patch("/:id/reject", RequireManageData, pembayaranHandler.Reject)
	pembayaran.Delete("/:id", RequireManageData, pembayaranHandler.Delete)

	// Users (ADMIN+)
	users := protected.Group("/users", RequireViewLogs)
	userHandler := NewUserHandler(deps.UserUC, deps.Log)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Patch("/:id/password", userHandler.ChangePassword)
	users.Delete("/:id", userHandler.Delete)

	// Activity log (ADMIN+)
	activity := protected.Group("/activity", RequireViewLogs)
	activityHandler := NewActivityLogHandler(deps.ActivityUC, deps.Log)
	activity.Get("/", activityHandler.List)
	activity.Get("/recent", activityHandler.ListRecent)
}
