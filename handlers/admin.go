package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"lvestimate/services"
)

// maxHeaderUpload caps the size of an uploaded header image.
const maxHeaderUpload = 10 << 20

// HandleUnlock checks a submitted PIN. The response only says whether it
// matched; the client keeps the PIN and sends it on admin requests.
func HandleUnlock(ws *services.Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		pin, _ := formValue(e, "pin")
		if err := services.ValidatePIN(pin); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "PIN must be 4 digits")
		}
		if !ws.Settings.VerifyPIN(pin) {
			log.Printf("admin: wrong PIN submitted")
			SetToast(e, ToastError, "Incorrect PIN")
			return e.JSON(http.StatusOK, map[string]bool{"unlocked": false})
		}
		return e.JSON(http.StatusOK, map[string]bool{"unlocked": true})
	}
}

type pricesResponse struct {
	Prices services.PriceList       `json:"prices"`
	Totals services.EstimateTotals `json:"totals"`
}

// HandleGetPrices returns the catalog.
func HandleGetPrices(ws *services.Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		prices := ws.Catalog.Prices()
		return e.JSON(http.StatusOK, pricesResponse{
			Prices: prices,
			Totals: services.CalcEstimateTotals(ws.Estimates.Snapshot(), prices),
		})
	}
}

// HandleUpdatePrice sets one catalog price. Totals are recomputed against
// the new catalog, so every item of that type is repriced.
func HandleUpdatePrice(ws *services.Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rawType, _ := formValue(e, "type")
		raw, _ := formValue(e, "price")
		itemType := services.ItemType(rawType)

		price, err := services.ParsePrice(itemType, raw)
		if err != nil {
			log.Printf("update_price: invalid price for %q: %v", itemType, err)
			return ErrorToast(e, http.StatusBadRequest, err.Error())
		}

		prices := ws.Catalog.UpdatePrice(itemType, price)
		return e.JSON(http.StatusOK, pricesResponse{
			Prices: prices,
			Totals: services.CalcEstimateTotals(ws.Estimates.Snapshot(), prices),
		})
	}
}

type companyResponse struct {
	Profile     services.CompanyProfile `json:"profile"`
	DisplayName string                  `json:"displayName"`
	HeaderImage string                  `json:"headerImage"`
}

func respondCompany(e *core.RequestEvent, ws *services.Workspace, profile services.CompanyProfile) error {
	return e.JSON(http.StatusOK, companyResponse{
		Profile:     profile,
		DisplayName: profile.DisplayName(ws.Settings.CompanyFallback),
		HeaderImage: ws.Header.DataURI(),
	})
}

func HandleGetCompany(ws *services.Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return respondCompany(e, ws, ws.Company.Profile())
	}
}

// HandleUpdateCompany applies the submitted company fields; fields missing
// from the form are left unchanged.
func HandleUpdateCompany(ws *services.Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var u services.CompanyUpdate
		for key, dst := range map[string]**string{
			"name":    &u.Name,
			"address": &u.Address,
			"phone":   &u.Phone,
			"email":   &u.Email,
			"website": &u.Website,
		} {
			if v, ok := formValue(e, key); ok {
				v = strings.TrimSpace(v)
				*dst = &v
			}
		}
		return respondCompany(e, ws, ws.Company.UpdateProfile(u))
	}
}

// HandleUploadHeader replaces the header image with the uploaded "header"
// file, downscaled to fit the document header.
func HandleUploadHeader(ws *services.Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		file, _, err := e.Request.FormFile("header")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "No image selected")
		}
		defer file.Close()

		upload, err := io.ReadAll(io.LimitReader(file, maxHeaderUpload+1))
		if err != nil {
			log.Printf("upload_header: failed to read upload: %v", err)
			return ErrorToast(e, http.StatusBadRequest, "Failed to read image")
		}
		if len(upload) > maxHeaderUpload {
			return ErrorToast(e, http.StatusRequestEntityTooLarge, "Image is too large")
		}

		if _, err := ws.Header.Set(upload); err != nil {
			if errors.Is(err, services.ErrInvalidImage) {
				return ErrorToast(e, http.StatusBadRequest, "Header must be a PNG or JPEG image")
			}
			log.Printf("upload_header: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to process image")
		}

		SetToast(e, ToastSuccess, "Header image updated")
		return respondCompany(e, ws, ws.Company.Profile())
	}
}

func HandleRemoveHeader(ws *services.Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ws.Header.Remove()
		return respondCompany(e, ws, ws.Company.Profile())
	}
}
