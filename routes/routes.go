package routes

import (
	"github.com/evinas93/Fuji-PoS-sub001/configs"
	"github.com/evinas93/Fuji-PoS-sub001/controllers"
	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"github.com/evinas93/Fuji-PoS-sub001/middlewares"
	"github.com/evinas93/Fuji-PoS-sub001/pkg/perm"
	"github.com/evinas93/Fuji-PoS-sub001/repository"
	"github.com/evinas93/Fuji-PoS-sub001/services"
	"github.com/evinas93/Fuji-PoS-sub001/ws"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	orderRepo := repository.NewOrderRepository(db)
	tableRepo := repository.NewTableRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	userRepo := repository.NewUserRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// Realtime hub for the kitchen display
	hub := ws.NewKitchenHub()

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	orderSvc := services.NewOrderService(db, orderRepo, tableRepo, menuRepo, auditRepo, cfg.TaxRate, cfg.GratuityRate)
	orderSvc.Notifier = hub
	receiptSvc := services.NewReceiptService(db, receiptRepo, auditRepo, entity.ReceiptHeader{
		Name:    cfg.RestaurantName,
		Address: cfg.RestaurantAddress,
		Phone:   cfg.RestaurantPhone,
	})
	reportSvc := services.NewReportService(db, receiptRepo, summaryRepo)
	importSvc := services.NewImportService(db, summaryRepo, menuRepo, auditRepo)
	forecastSvc := services.NewForecastService(summaryRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	kitchenCtrl := controllers.NewKitchenController(orderSvc)
	receiptCtrl := controllers.NewReceiptController(receiptSvc)
	reportCtrl := controllers.NewReportController(reportSvc)
	importCtrl := controllers.NewImportController(importSvc)
	forecastCtrl := controllers.NewForecastController(forecastSvc)
	tableCtrl := controllers.NewTableController(tableRepo)
	menuCtrl := controllers.NewMenuController(menuRepo)

	auth := func(required ...perm.Permission) gin.HandlerFunc {
		return middlewares.AuthMiddleware(cfg.JWTSecret, required...)
	}

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/login", authCtrl.Login)
		a.GET("/me", auth(), authCtrl.Me)
		a.POST("/register", auth(perm.StaffManage), authCtrl.Register)
	}

	// Menu
	r.GET("/menu", auth(), menuCtrl.List)
	r.POST("/menu", auth(perm.MenuManage), menuCtrl.Create)
	r.PATCH("/menu/:id", auth(perm.MenuManage), menuCtrl.Update)

	// Tables
	r.GET("/tables", auth(), tableCtrl.List)
	r.POST("/tables", auth(perm.TablesManage), tableCtrl.Create)

	// Orders
	o := r.Group("/orders")
	{
		o.POST("", auth(perm.OrdersCreate), orderCtrl.Create)
		o.GET("", auth(perm.OrdersView), orderCtrl.List)
		o.GET("/:id", auth(perm.OrdersView), orderCtrl.Detail)
		o.POST("/:id/items", auth(perm.OrdersCreate), orderCtrl.AddItems)
		o.DELETE("/:id/items/:itemId", auth(perm.OrdersCreate), orderCtrl.RemoveItem)
		o.POST("/:id/send", auth(perm.OrdersCreate), orderCtrl.SendToKitchen)
		o.PATCH("/:id/status", auth(perm.OrdersUpdate), orderCtrl.UpdateStatus)
		o.PATCH("/:id/items/:itemId/status", auth(perm.KitchenUpdate), orderCtrl.UpdateItemStatus)
		o.POST("/:id/cancel", auth(perm.OrdersUpdate), orderCtrl.Cancel)
		o.POST("/:id/complete", auth(perm.OrdersUpdate), orderCtrl.Complete)
		o.POST("/:id/void", auth(perm.OrdersVoid), orderCtrl.Void)
		o.POST("/:id/split", auth(perm.OrdersUpdate), orderCtrl.Split)
		o.POST("/:id/transfer", auth(perm.OrdersUpdate), orderCtrl.Transfer)
		o.POST("/:id/discount", auth(perm.OrdersUpdate), orderCtrl.SetDiscount)
		o.GET("/:id/estimate", auth(perm.OrdersView), orderCtrl.Estimate)
	}

	// Kitchen
	r.GET("/kitchen/queue", auth(perm.KitchenView), kitchenCtrl.Queue)
	r.GET("/kitchen/wait-time", auth(perm.KitchenView), kitchenCtrl.WaitTime)
	r.GET("/ws/kitchen", auth(perm.KitchenView), hub.HandleWebSocket)

	// Receipts
	rc := r.Group("/receipts", auth(perm.ReceiptsView))
	{
		rc.GET("", receiptCtrl.List)
		rc.GET("/:orderId", receiptCtrl.Get)
		rc.GET("/:orderId/thermal", receiptCtrl.Thermal)
		rc.POST("/:orderId/print", receiptCtrl.LogPrint)
	}

	// Reports
	rep := r.Group("/reports")
	{
		rep.GET("/daily", auth(perm.ReportsView), reportCtrl.Daily)
		rep.GET("/monthly", auth(perm.ReportsView), reportCtrl.Monthly)
		rep.GET("/grand-totals", auth(perm.ReportsView), reportCtrl.GrandTotals)
		rep.POST("/snapshot-daily", auth(perm.ReportsExport), reportCtrl.SnapshotDaily)
		rep.GET("/export/monthly", auth(perm.ReportsExport), reportCtrl.ExportMonthly)
		rep.GET("/export/grand", auth(perm.ReportsExport), reportCtrl.ExportGrand)
		rep.GET("/export/csv", auth(perm.ReportsExport), reportCtrl.ExportCSV)
	}

	// Forecast
	r.GET("/forecast", auth(perm.ReportsView), forecastCtrl.Next7Days)
	r.GET("/forecast/accuracy", auth(perm.ReportsView), forecastCtrl.Accuracy)

	// CSV import (manager/admin via imports.run)
	imp := r.Group("/import", auth(perm.ImportsRun))
	{
		imp.GET("/template/:type", importCtrl.Template)
		imp.POST("/upload", importCtrl.Upload)
		imp.GET("/history", importCtrl.History)
	}
}
