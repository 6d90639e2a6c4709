package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"lvestimate/services"
)

// HandleExport renders the current estimate in the given format and sends
// it as a download.
func HandleExport(ws *services.Workspace, format services.ExportFormat) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		file, err := services.RenderExport(ws.ExportData(), format)
		if err != nil {
			if errors.Is(err, services.ErrUnknownFormat) {
				return ErrorToast(e, http.StatusNotFound, "Unknown export format")
			}
			log.Printf("export: failed to generate %s: %v", format, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate export")
		}

		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
		return e.Blob(http.StatusOK, file.ContentType, file.Body)
	}
}
