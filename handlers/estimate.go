package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"lvestimate/services"
)

type attachmentView struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	SizeLabel string `json:"sizeLabel"`
}

type estimateResponse struct {
	Estimate    services.Estimate       `json:"estimate"`
	Totals      services.EstimateTotals `json:"totals"`
	Attachments []attachmentView        `json:"attachments"`
	Restored    bool                    `json:"restored"`
}

// respondEstimate answers with est, its totals at current prices and the
// restored flag.
func respondEstimate(e *core.RequestEvent, ws *services.Workspace, est services.Estimate) error {
	views := make([]attachmentView, len(est.Attachments))
	for i, a := range est.Attachments {
		views[i] = attachmentView{Index: i, Name: a.Name, Size: a.Size, SizeLabel: services.FormatFileSize(a.Size)}
	}
	return e.JSON(http.StatusOK, estimateResponse{
		Estimate:    est,
		Totals:      services.CalcEstimateTotals(est, ws.Catalog.Prices()),
		Attachments: views,
		Restored:    ws.Estimates.Restored(),
	})
}

// HandleGetEstimate returns the current estimate.
func HandleGetEstimate(ws *services.Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return respondEstimate(e, ws, ws.Estimates.Snapshot())
	}
}

// HandleUpdateProject applies the submitted project fields; fields missing
// from the form are left unchanged.
func HandleUpdateProject(ws *services.Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var u services.ProjectUpdate
		if v, ok := formValue(e, "address"); ok {
			v = strings.TrimSpace(v)
			u.Address = &v
		}
		if v, ok := formValue(e, "contactName"); ok {
			v = strings.TrimSpace(v)
			u.ContactName = &v
		}
		if v, ok := formValue(e, "contactPhone"); ok {
			v = strings.TrimSpace(v)
			u.ContactPhone = &v
		}
		if v, ok := formValue(e, "constructionType"); ok {
			ct := services.ConstructionType(v)
			if err := services.ValidateConstructionType(ct); err != nil {
				return ErrorToast(e, http.StatusBadRequest, "Unknown construction type")
			}
			u.ConstructionType = &ct
		}

		return respondEstimate(e, ws, ws.Estimates.UpdateProject(u))
	}
}

// HandleNewEstimate discards the current estimate. An estimate with content
// is only discarded with confirm=true.
func HandleNewEstimate(ws *services.Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		est, err := ws.Estimates.NewEstimate(confirmed(e))
		if errors.Is(err, services.ErrConfirmationRequired) {
			return ErrorToast(e, http.StatusConflict, "Start a new estimate? The current one will be cleared.")
		}

		log.Printf("new_estimate: started a new estimate")
		SetToast(e, ToastSuccess, "New estimate started")
		return respondEstimate(e, ws, est)
	}
}

// HandleDismissRestored hides the "restored from last session" notice.
func HandleDismissRestored(ws *services.Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ws.Estimates.DismissRestored()
		return respondEstimate(e, ws, ws.Estimates.Snapshot())
	}
}
