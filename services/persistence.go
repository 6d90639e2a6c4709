package services

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/spf13/cast"

	"lvestimate/storage"
)

// Keys of the four persisted records.
const (
	KeyEstimate = "lv_estimate"
	KeyPrices   = "lv_prices"
	KeyCompany  = "lv_company"
	KeyHeader   = "lv_header"
)

// Persistence reads and writes the estimator's records. Every method fails
// soft: loads fall back to nil or a default, saves log and drop the error.
type Persistence struct {
	kv     storage.KV
	logger *slog.Logger
}

func NewPersistence(kv storage.KV, logger *slog.Logger) *Persistence {
	if logger == nil {
		logger = slog.Default()
	}
	return &Persistence{kv: kv, logger: logger}
}

// read returns the raw value for key, or "" when it is absent or unreadable.
func (p *Persistence) read(key string) (string, bool) {
	raw, err := p.kv.Get(key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.logger.Warn("failed to read record", "key", key, "error", err)
		}
		return "", false
	}
	return raw, raw != ""
}

func (p *Persistence) write(key, value string) {
	if err := p.kv.Set(key, value); err != nil {
		p.logger.Warn("failed to save record", "key", key, "error", err)
	}
}

func (p *Persistence) remove(key string) {
	if err := p.kv.Delete(key); err != nil {
		p.logger.Warn("failed to remove record", "key", key, "error", err)
	}
}

func (p *Persistence) writeJSON(key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		p.logger.Warn("failed to encode record", "key", key, "error", err)
		return
	}
	p.write(key, string(b))
}

// LoadEstimate returns the persisted estimate, or nil when the record is
// absent, malformed or has no floors field.
func (p *Persistence) LoadEstimate() *Estimate {
	raw, ok := p.read(KeyEstimate)
	if !ok {
		return nil
	}

	var est Estimate
	if err := json.Unmarshal([]byte(raw), &est); err != nil {
		p.logger.Warn("discarding malformed estimate record", "error", err)
		return nil
	}
	if est.Floors == nil {
		return nil
	}

	for i := range est.Floors {
		if est.Floors[i].Items == nil {
			est.Floors[i].Items = []Item{}
		}
	}
	if est.Attachments == nil {
		est.Attachments = []Attachment{}
	}
	return &est
}

func (p *Persistence) SaveEstimate(est Estimate) {
	p.writeJSON(KeyEstimate, est)
}

func (p *Persistence) ClearEstimate() {
	p.remove(KeyEstimate)
}

// LoadPrices returns the persisted catalog, or nil when absent or malformed.
func (p *Persistence) LoadPrices() PriceList {
	raw, ok := p.read(KeyPrices)
	if !ok {
		return nil
	}

	var prices PriceList
	if err := json.Unmarshal([]byte(raw), &prices); err != nil {
		p.logger.Warn("discarding malformed price record", "error", err)
		return nil
	}
	return prices
}

func (p *Persistence) SavePrices(prices PriceList) {
	p.writeJSON(KeyPrices, prices)
}

// LoadCompany returns the stored profile merged over blank defaults. A legacy
// record holding only the company name is read as the name field.
func (p *Persistence) LoadCompany() CompanyProfile {
	raw, ok := p.read(KeyCompany)
	if !ok {
		return CompanyProfile{}
	}
	return parseCompanyProfile(raw)
}

// parseCompanyProfile accepts the current object form and the legacy plain
// name, stored either as a JSON string or as raw text. Any other JSON value
// is not a profile and loads blank.
func parseCompanyProfile(raw string) CompanyProfile {
	if !json.Valid([]byte(raw)) {
		return CompanyProfile{Name: raw}
	}

	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return CompanyProfile{}
	}
	switch v := v.(type) {
	case string:
		return CompanyProfile{Name: v}
	case map[string]any:
		return CompanyProfile{
			Name:    cast.ToString(v["name"]),
			Address: cast.ToString(v["address"]),
			Phone:   cast.ToString(v["phone"]),
			Email:   cast.ToString(v["email"]),
			Website: cast.ToString(v["website"]),
		}
	default:
		return CompanyProfile{}
	}
}

func (p *Persistence) SaveCompany(profile CompanyProfile) {
	p.writeJSON(KeyCompany, profile)
}

// LoadHeader returns the stored header image data URI, or "".
func (p *Persistence) LoadHeader() string {
	raw, _ := p.read(KeyHeader)
	return raw
}

func (p *Persistence) SaveHeader(dataURI string) {
	p.write(KeyHeader, dataURI)
}

func (p *Persistence) RemoveHeader() {
	p.remove(KeyHeader)
}
