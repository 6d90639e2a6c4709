package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"lvestimate/services"
)

func TestHandleUnlock(t *testing.T) {
	tests := []struct {
		name         string
		pin          string
		wantCode     int
		wantUnlocked bool
	}{
		{"correct", "1234", http.StatusOK, true},
		{"wrong", "4321", http.StatusOK, false},
		{"too short", "12", http.StatusBadRequest, false},
		{"not digits", "abcd", http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := newTestWorkspace(t)
			rec := serve(t, HandleUnlock(ws), formRequest(http.MethodPost, "/api/admin/unlock", url.Values{"pin": {tt.pin}}, nil))

			assertStatus(t, rec, tt.wantCode)
			if tt.wantCode != http.StatusOK {
				return
			}
			var body map[string]bool
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode unlock response: %v", err)
			}
			if body["unlocked"] != tt.wantUnlocked {
				t.Errorf("unlocked = %v, want %v", body["unlocked"], tt.wantUnlocked)
			}
		})
	}
}

func decodePrices(t *testing.T, rec *httptest.ResponseRecorder) pricesResponse {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp pricesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode prices response: %v", err)
	}
	return resp
}

func TestHandleGetPrices_Defaults(t *testing.T) {
	ws := newTestWorkspace(t)

	resp := decodePrices(t, serve(t, HandleGetPrices(ws), httptest.NewRequest(http.MethodGet, "/api/prices", nil)))

	if len(resp.Prices) != len(services.StandardItemTypes) {
		t.Fatalf("expected %d prices, got %v", len(services.StandardItemTypes), resp.Prices)
	}
	if resp.Prices[services.ItemCamera] != 650 {
		t.Errorf("expected Camera 650, got %v", resp.Prices[services.ItemCamera])
	}
}

func TestHandleUpdatePrice_RepricesEstimate(t *testing.T) {
	ws := newTestWorkspace(t)
	floorID := firstFloorID(t, ws)
	ws.Estimates.AddItem(floorID, services.ItemCamera, "", 0)
	ws.Estimates.AddItem(floorID, services.ItemCamera, "", 0)

	resp := decodePrices(t, serve(t, HandleUpdatePrice(ws), formRequest(http.MethodPost, "/api/admin/prices", url.Values{
		"type":  {"Camera"},
		"price": {"700"},
	}, nil)))

	if resp.Prices[services.ItemCamera] != 700 {
		t.Errorf("expected Camera 700, got %v", resp.Prices[services.ItemCamera])
	}
	if resp.Totals.GrandTotal != 1400 {
		t.Errorf("expected grand total 1400, got %v", resp.Totals.GrandTotal)
	}
	if ws.Catalog.Prices()[services.ItemCamera] != 700 {
		t.Error("catalog should hold the new price")
	}
}

func TestHandleUpdatePrice_Rejections(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{"custom type", url.Values{"type": {"Custom"}, "price": {"10"}}},
		{"unknown type", url.Values{"type": {"Doorbell"}, "price": {"10"}}},
		{"negative", url.Values{"type": {"Data"}, "price": {"-1"}}},
		{"not a number", url.Values{"type": {"Data"}, "price": {"ten"}}},
		{"blank", url.Values{"type": {"Data"}, "price": {""}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := newTestWorkspace(t)
			rec := serve(t, HandleUpdatePrice(ws), formRequest(http.MethodPost, "/api/admin/prices", tt.form, nil))

			assertStatus(t, rec, http.StatusBadRequest)
			if ws.Catalog.Prices()[services.ItemData] != 280 {
				t.Error("catalog must be unchanged")
			}
		})
	}
}

func decodeCompany(t *testing.T, rec *httptest.ResponseRecorder) companyResponse {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp companyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode company response: %v", err)
	}
	return resp
}

func TestHandleCompany_FallbackAndPartialUpdate(t *testing.T) {
	ws := newTestWorkspace(t)

	resp := decodeCompany(t, serve(t, HandleGetCompany(ws), httptest.NewRequest(http.MethodGet, "/api/company", nil)))
	if resp.DisplayName != "Low Voltage Contractor" {
		t.Errorf("expected fallback name, got %q", resp.DisplayName)
	}

	serve(t, HandleUpdateCompany(ws), formRequest(http.MethodPost, "/api/admin/company", url.Values{
		"name":  {"Acme Low Voltage"},
		"phone": {"555-0199"},
	}, nil))
	resp = decodeCompany(t, serve(t, HandleUpdateCompany(ws), formRequest(http.MethodPost, "/api/admin/company", url.Values{
		"email": {"office@acme.test"},
	}, nil)))

	want := services.CompanyProfile{Name: "Acme Low Voltage", Phone: "555-0199", Email: "office@acme.test"}
	if resp.Profile != want {
		t.Errorf("profile = %+v, want %+v", resp.Profile, want)
	}
	if resp.DisplayName != "Acme Low Voltage" {
		t.Errorf("expected display name Acme Low Voltage, got %q", resp.DisplayName)
	}
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestHandleUploadHeader(t *testing.T) {
	ws := newTestWorkspace(t)

	req := multipartRequest(t, "/api/admin/header", testUpload{field: "header", filename: "logo.png", body: testPNG(t, 40, 20)})
	resp := decodeCompany(t, serve(t, HandleUploadHeader(ws), req))

	if !strings.HasPrefix(resp.HeaderImage, "data:image/png;base64,") {
		t.Errorf("expected PNG data URI, got %.40q", resp.HeaderImage)
	}
	if ws.Header.DataURI() != resp.HeaderImage {
		t.Error("header store should hold the uploaded image")
	}

	resp = decodeCompany(t, serve(t, HandleRemoveHeader(ws), httptest.NewRequest(http.MethodDelete, "/api/admin/header", nil)))
	if resp.HeaderImage != "" || ws.Header.DataURI() != "" {
		t.Error("header image should be removed")
	}
}

func TestHandleUploadHeader_Rejections(t *testing.T) {
	t.Run("not an image", func(t *testing.T) {
		ws := newTestWorkspace(t)
		req := multipartRequest(t, "/api/admin/header", testUpload{field: "header", filename: "notes.txt", body: []byte("hello")})
		assertStatus(t, serve(t, HandleUploadHeader(ws), req), http.StatusBadRequest)
	})

	t.Run("missing file", func(t *testing.T) {
		ws := newTestWorkspace(t)
		req := multipartRequest(t, "/api/admin/header", testUpload{field: "logo", filename: "logo.png", body: testPNG(t, 4, 4)})
		assertStatus(t, serve(t, HandleUploadHeader(ws), req), http.StatusBadRequest)
	})
}
