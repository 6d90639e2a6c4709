package services

import (
	"errors"
	"fmt"
)

// ExportFormat names one of the three downloadable documents.
type ExportFormat string

const (
	ExportFormatExcel    ExportFormat = "excel"
	ExportFormatProposal ExportFormat = "proposal"
	ExportFormatItemized ExportFormat = "itemized"
)

// ExportFormats lists the supported formats.
var ExportFormats = []ExportFormat{ExportFormatExcel, ExportFormatProposal, ExportFormatItemized}

var ErrUnknownFormat = errors.New("unknown export format")

// ExportFile is a rendered document ready to be downloaded or written.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// RenderExport renders data in the given format and names the file after
// the project address.
func RenderExport(data ExportData, format ExportFormat) (ExportFile, error) {
	address := data.Project.Address

	switch format {
	case ExportFormatExcel:
		body, err := GenerateExcel(data)
		if err != nil {
			return ExportFile{}, err
		}
		return ExportFile{
			Filename:    ExcelFilename(address),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Body:        body,
		}, nil
	case ExportFormatProposal:
		body, err := GenerateProposalPDF(data)
		if err != nil {
			return ExportFile{}, err
		}
		return ExportFile{Filename: ProposalFilename(address), ContentType: "application/pdf", Body: body}, nil
	case ExportFormatItemized:
		body, err := GenerateItemizedPDF(data)
		if err != nil {
			return ExportFile{}, err
		}
		return ExportFile{Filename: ItemizedFilename(address), ContentType: "application/pdf", Body: body}, nil
	}
	return ExportFile{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
