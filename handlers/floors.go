package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"lvestimate/services"
)

func HandleAddFloor(ws *services.Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return respondEstimate(e, ws, ws.Estimates.AddFloor())
	}
}

func HandleUpdateFloorLabel(ws *services.Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		floorID := e.Request.PathValue("floorId")
		label, _ := formValue(e, "label")
		return respondEstimate(e, ws, ws.Estimates.UpdateFloorLabel(floorID, strings.TrimSpace(label)))
	}
}

// HandleRemoveFloor deletes a floor. A floor that still has items is only
// deleted with confirm=true. Unknown ids leave the estimate unchanged.
func HandleRemoveFloor(ws *services.Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		est, floor, err := ws.Estimates.RemoveFloor(e.Request.PathValue("floorId"), confirmed(e))
		if errors.Is(err, services.ErrConfirmationRequired) {
			return ErrorToast(e, http.StatusConflict, "Remove "+floor.DisplayLabel()+" and all of its items?")
		}

		if floor != nil {
			SetToast(e, ToastSuccess, floor.DisplayLabel()+" removed")
		}
		return respondEstimate(e, ws, est)
	}
}
