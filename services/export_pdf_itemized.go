package services

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateItemizedPDF renders the plain line-item estimate: project info,
// floor tables, grand total, reference documents and an acceptance line.
func GenerateItemizedPDF(data ExportData) ([]byte, error) {
	m := newPortraitMaroto(props.Bottom)

	if err := m.RegisterHeader(itemizedHeader(data)...); err != nil {
		return nil, fmt.Errorf("register estimate header: %w", err)
	}
	if err := m.RegisterFooter(line.NewRow(4, props.Line{Color: colorRule, Thickness: 0.3})); err != nil {
		return nil, fmt.Errorf("register estimate footer: %w", err)
	}

	l := &layout{flow: m}
	addItemizedProjectInfo(l, data)
	addItemizedFloors(l, data)
	addItemizedTotal(l, data)
	addItemizedReferences(l, data)
	addAcceptance(l)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate estimate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// itemizedHeader puts the logo or company name on the left and "ESTIMATE",
// the date and the contact line on the right.
func itemizedHeader(data ExportData) []core.Row {
	var brand core.Col
	var brandHeight float64
	if len(data.HeaderImage) > 0 {
		brand = col.New(6).Add(image.NewFromBytes(data.HeaderImage, imageExtension(data.HeaderImageExt), props.Rect{
			Percent: 100,
		}))
	} else {
		brand, brandHeight = cell{size: 6, text: data.CompanyName, style: props.Text{Size: 14, Style: fontstyle.Bold, Top: 4}}.col()
	}

	title, titleHeight := cell{size: 6, text: "ESTIMATE\n" + data.Date, style: props.Text{
		Size:  10,
		Align: align.Right,
		Color: colorMuted,
	}}.col()
	rows := []core.Row{
		row.New(max(16, brandHeight, titleHeight)).Add(brand, title),
	}

	c := data.Company
	if contact := joinNonEmpty([]string{c.Phone, c.Email, c.Website}, "  |  "); contact != "" {
		rows = append(rows, textRow(5, cell{size: 12, text: contact, style: props.Text{
			Size:  8,
			Align: align.Right,
			Color: colorMuted,
		}}).row)
	}
	return append(rows, row.New(8))
}

func addItemizedProjectInfo(l *layout, data ExportData) {
	contact := joinNonEmpty([]string{data.Project.ContactName, data.Project.ContactPhone}, " - ")
	if contact == "" {
		contact = "N/A"
	}
	address := data.Project.Address
	if address == "" {
		address = "N/A"
	}

	labelStyle := props.Text{Size: 11, Style: fontstyle.Bold}
	valueStyle := props.Text{Size: 11}
	var rows []sizedRow
	for _, f := range []struct{ label, value string }{
		{"Project Address:", address},
		{"Contact:", contact},
		{"Construction:", data.ConstructionLabel},
		{"Date:", data.Date},
	} {
		rows = append(rows, textRow(8,
			cell{size: 3, text: f.label, style: labelStyle},
			cell{size: 9, text: f.value, style: valueStyle},
		))
	}
	rows = append(rows, spacer(8))
	l.keepTogether(rows...)
}

var itemizedColumns = []tableColumn{
	{title: "Item", size: 6, align: align.Left},
	{title: "Qty", size: 2, align: align.Center},
	{title: "Unit Price", size: 2, align: align.Right},
	{title: "Total", size: 2, align: align.Right},
}

func addItemizedFloors(l *layout, data ExportData) {
	for _, floor := range data.Floors {
		lead := []sizedRow{
			textRow(9, cell{size: 12, text: floor.DisplayLabel(), style: props.Text{Size: 13, Style: fontstyle.Bold}}),
		}

		if len(floor.Lines) == 0 {
			l.keepTogether(append(lead,
				newRow(8, col.New(12).Add(text.New("No items", props.Text{
					Size:  10,
					Style: fontstyle.Italic,
					Color: colorFaint,
				}))),
				spacer(4),
			)...)
			continue
		}

		body := make([]sizedRow, len(floor.Lines))
		for i, ln := range floor.Lines {
			body[i] = tableBodyRow(itemizedColumns, []string{
				ln.Name, fmt.Sprint(ln.Qty), FormatUSD(ln.UnitPrice), FormatUSD(ln.LineTotal),
			}, 7)
		}
		foot := []sizedRow{
			tableFootRow(itemizedColumns, []string{"", "", "Subtotal", FormatUSD(floor.Subtotal)}, 7, colorShade, colorInk),
			spacer(8),
		}
		l.table(lead, tableHeaderRow(itemizedColumns, 7), body, foot)
	}
}

func addItemizedTotal(l *layout, data ExportData) {
	l.keepTogether(
		textRow(10, cell{size: 12, text: "Grand Total: " + FormatUSD(data.GrandTotal), style: props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Align: align.Right,
			Color: colorRed,
		}}),
		spacer(8),
	)
}

func addItemizedReferences(l *layout, data ExportData) {
	if len(data.Attachments) == 0 {
		return
	}
	rows := []sizedRow{
		textRow(7, cell{size: 12, text: "Reference Documents", style: props.Text{Size: 11, Style: fontstyle.Bold}}),
	}
	rows = append(rows, paragraphRows(
		"Attached reference files: "+strings.Join(data.Attachments, ", "),
		props.Text{Size: 10},
	)...)
	rows = append(rows, spacer(8))
	l.keepTogether(rows...)
}

func addAcceptance(l *layout) {
	style := props.Text{Size: 10}
	l.keepTogether(
		spacer(10),
		textRow(8,
			cell{size: 8, text: "Accepted by: " + strings.Repeat("_", 33), style: style},
			cell{size: 4, text: "Date: " + strings.Repeat("_", 15), style: style},
		),
	)
}
