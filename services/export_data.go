package services

import (
	"fmt"
	"time"
)

// ExportDateLayout is the date format printed on exported documents.
const ExportDateLayout = "January 2, 2006"

// ExportSource is everything an export reads. It is a value snapshot, so
// building documents never touches the live stores.
type ExportSource struct {
	Estimate    Estimate
	Prices      PriceList
	Company     CompanyProfile
	HeaderImage string // data URI, may be empty
	Settings    Settings
	Date        time.Time
}

// ExportLine is one priced item row.
type ExportLine struct {
	Name      string
	Qty       int
	UnitPrice float64
	LineTotal float64
}

// ExportFloor is one floor (a "scope" in the proposal) with its priced rows.
type ExportFloor struct {
	Number   int
	Label    string // as entered, may be blank
	Lines    []ExportLine
	Subtotal float64
}

// DisplayLabel is the label used in tables, "Unnamed Floor" when blank.
func (f ExportFloor) DisplayLabel() string {
	if f.Label == "" {
		return "Unnamed Floor"
	}
	return f.Label
}

// SummaryLabel is the label used in the proposal's pricing summary.
func (f ExportFloor) SummaryLabel() string {
	if f.Label == "" {
		return fmt.Sprintf("Floor %d", f.Number)
	}
	return f.Label
}

// ExportData holds all data needed by the spreadsheet and PDF exporters.
type ExportData struct {
	CompanyName       string
	Company           CompanyProfile
	Project           Project
	ConstructionLabel string
	Date              string
	Floors            []ExportFloor
	GrandTotal        float64
	Milestones        []PaymentMilestone
	TaxRateLabel      string
	Attachments       []string

	// HeaderImage holds the decoded logo; HeaderImageExt is "png" or "jpg".
	HeaderImage    []byte
	HeaderImageExt string
}

// ContactParts lists the company's non-empty contact fields.
func (d ExportData) ContactParts() []string {
	return d.Company.ContactParts()
}

// BuildExportData prices every item and resolves the display fallbacks.
func BuildExportData(src ExportSource) ExportData {
	fallback := src.Settings.CompanyFallback
	if fallback == "" {
		fallback = "Low Voltage Contractor"
	}
	taxLabel := src.Settings.TaxRateLabel
	if taxLabel == "" {
		taxLabel = "8.875%"
	}

	data := ExportData{
		CompanyName:       src.Company.DisplayName(fallback),
		Company:           src.Company,
		Project:           src.Estimate.Project,
		ConstructionLabel: src.Estimate.Project.ConstructionType.Label(),
		Date:              src.Date.Format(ExportDateLayout),
		Floors:            make([]ExportFloor, 0, len(src.Estimate.Floors)),
		TaxRateLabel:      taxLabel,
		Attachments:       make([]string, 0, len(src.Estimate.Attachments)),
	}

	for i, floor := range src.Estimate.Floors {
		ef := ExportFloor{
			Number: i + 1,
			Label:  floor.Label,
			Lines:  make([]ExportLine, 0, len(floor.Items)),
		}
		for _, item := range floor.Items {
			line := ExportLine{
				Name:      item.Name(),
				Qty:       item.Qty,
				UnitPrice: UnitPrice(item, src.Prices),
				LineTotal: CalcLineTotal(item, src.Prices),
			}
			ef.Subtotal += line.LineTotal
			ef.Lines = append(ef.Lines, line)
		}
		data.GrandTotal += ef.Subtotal
		data.Floors = append(data.Floors, ef)
	}
	data.Milestones = CalcPaymentSchedule(data.GrandTotal)

	for _, a := range src.Estimate.Attachments {
		data.Attachments = append(data.Attachments, a.Name)
	}

	if src.HeaderImage != "" {
		if img, ext, err := DecodeDataURI(src.HeaderImage); err == nil {
			data.HeaderImage = img
			data.HeaderImageExt = ext
		}
	}
	return data
}
