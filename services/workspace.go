package services

import (
	"log/slog"
	"time"

	"lvestimate/storage"
)

// Settings carries the configurable constants of a workspace.
type Settings struct {
	AdminPIN        string
	CompanyFallback string
	TaxRateLabel    string
}

// Workspace bundles the stores of one estimator installation. They share a
// single Persistence and are handed to the HTTP handlers and CLI commands.
type Workspace struct {
	Estimates *EstimateStore
	Catalog   *PriceCatalog
	Company   *CompanyStore
	Header    *HeaderImageStore
	Settings  Settings
	Now       func() time.Time
}

// NewWorkspace loads every store from kv.
func NewWorkspace(kv storage.KV, logger *slog.Logger, settings Settings) *Workspace {
	persist := NewPersistence(kv, logger)
	return &Workspace{
		Estimates: NewEstimateStore(persist),
		Catalog:   NewPriceCatalog(persist),
		Company:   NewCompanyStore(persist),
		Header:    NewHeaderImageStore(persist),
		Settings:  settings,
		Now:       time.Now,
	}
}

// ExportData assembles the export view of the current estimate.
func (w *Workspace) ExportData() ExportData {
	return BuildExportData(ExportSource{
		Estimate:    w.Estimates.Snapshot(),
		Prices:      w.Catalog.Prices(),
		Company:     w.Company.Profile(),
		HeaderImage: w.Header.DataURI(),
		Settings:    w.Settings,
		Date:        w.Now(),
	})
}
