package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/pixeldock/pixeldock/biz/handler"
	"github.com/pixeldock/pixeldock/biz/middleware"
)

// Register configures all marketplace HTTP routes.
func Register(r *server.Hertz, h *handler.Handler) {
	if h == nil {
		return
	}

	v1 := r.Group("/api/v1")

	gallery := v1.Group("/gallery")
	gallery.GET("/assets", h.ListGalleryAssets)
	gallery.GET("/assets/:assetID", h.GetGalleryAsset)
	gallery.GET("/categories", h.ListGalleryCategories)

	dashboard := v1.Group("/dashboard", middleware.RequireAuth())
	dashboard.POST("/assets", h.UploadAsset)
	dashboard.GET("/assets", h.ListOwnAssets)
	dashboard.POST("/uploads/sign", h.SignUpload)
	dashboard.GET("/purchases", h.ListOwnPurchases)
	dashboard.GET("/invoices", h.ListOwnInvoices)

	purchases := v1.Group("/purchases")
	purchases.POST("/orders", middleware.RequireAuth(), h.CreateOrder)
	purchases.POST("/record", middleware.RequireAuth(), h.RecordPurchase)
	purchases.GET("/status/:assetID", h.PurchaseStatus)

	invoices := v1.Group("/invoices", middleware.RequireAuth())
	invoices.POST("", h.CreateInvoice)
	invoices.GET("/:invoiceID", h.GetInvoice)
	invoices.GET("/:invoiceID/document", h.GetInvoiceDocument)

	admin := v1.Group("/admin", middleware.RequireAdmin())
	admin.GET("/categories", h.ListAdminCategories)
	admin.POST("/categories", append(middleware.AdminWriteLockMw(), h.AddCategory)...)
	admin.DELETE("/categories/:id", append(middleware.AdminWriteLockMw(), h.DeleteCategory)...)
	admin.GET("/assets/pending", h.ListPendingAssets)
	admin.POST("/assets/:assetID/approve", append(middleware.AdminWriteLockMw(), h.ApproveAsset)...)
	admin.POST("/assets/:assetID/reject", append(middleware.AdminWriteLockMw(), h.RejectAsset)...)
	admin.GET("/stats", h.GetStats)

	v1.GET("/files/*objectKey", h.GetFile)
	v1.PUT("/files/*objectKey", middleware.RequireAuth(), h.PutFile)

	r.GET("/ping", handler.Ping)
}
