package handlers

import (
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"

	"lvestimate/services"
)

// RegisterRoutes mounts the estimator API on r.
func RegisterRoutes(r *router.Router[*core.RequestEvent], ws *services.Workspace) {
	api := r.Group("/api")

	// ── Estimate ─────────────────────────────────────────────
	api.GET("/estimate", HandleGetEstimate(ws))
	api.POST("/estimate/new", HandleNewEstimate(ws))
	api.POST("/estimate/project", HandleUpdateProject(ws))
	api.POST("/estimate/restored/dismiss", HandleDismissRestored(ws))

	// ── Floors and items ─────────────────────────────────────
	api.POST("/floors", HandleAddFloor(ws))
	api.POST("/floors/{floorId}/label", HandleUpdateFloorLabel(ws))
	api.DELETE("/floors/{floorId}", HandleRemoveFloor(ws))
	api.POST("/floors/{floorId}/items", HandleAddItem(ws))
	api.POST("/floors/{floorId}/items/{itemId}/increment", HandleIncrementItem(ws))
	api.POST("/floors/{floorId}/items/{itemId}/decrement", HandleDecrementItem(ws))
	api.DELETE("/floors/{floorId}/items/{itemId}", HandleRemoveItem(ws))

	// ── Attachments ──────────────────────────────────────────
	api.POST("/attachments", HandleAddAttachments(ws))
	api.DELETE("/attachments/{index}", HandleRemoveAttachment(ws))

	// ── Catalog and company (read) ───────────────────────────
	api.GET("/prices", HandleGetPrices(ws))
	api.GET("/company", HandleGetCompany(ws))

	// ── Exports ──────────────────────────────────────────────
	for _, format := range services.ExportFormats {
		api.GET("/export/"+string(format), HandleExport(ws, format))
	}

	// ── Admin ────────────────────────────────────────────────
	api.POST("/admin/unlock", HandleUnlock(ws))
	admin := api.Group("/admin")
	admin.BindFunc(RequireAdminPIN(ws))
	admin.POST("/prices", HandleUpdatePrice(ws))
	admin.POST("/company", HandleUpdateCompany(ws))
	admin.POST("/header", HandleUploadHeader(ws))
	admin.DELETE("/header", HandleRemoveHeader(ws))
}
