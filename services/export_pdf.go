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
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateProposalPDF renders the multi-page project agreement: project
// info, one scope table per floor, pricing summary, payment schedule, terms,
// reference documents and a sign-off page.
func GenerateProposalPDF(data ExportData) ([]byte, error) {
	m := newPortraitMaroto(props.RightBottom)

	if err := m.RegisterHeader(proposalHeader(data)...); err != nil {
		return nil, fmt.Errorf("register proposal header: %w", err)
	}
	if err := m.RegisterFooter(proposalFooter(data)...); err != nil {
		return nil, fmt.Errorf("register proposal footer: %w", err)
	}

	l := &layout{flow: m}
	addProposalTitle(l, data)
	addProposalScopes(l, data)
	addPricingSummary(l, data)
	addPaymentSchedule(l, data)
	addGeneralTerms(l, data)
	addProposalReferences(l, data)
	addSignOff(l, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate proposal PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func imageExtension(ext string) extension.Type {
	if ext == "jpg" {
		return extension.Jpg
	}
	return extension.Png
}

// proposalHeader puts the logo (or the company name) and the contact lines
// at the top right, over a red rule.
func proposalHeader(data ExportData) []core.Row {
	var rows []core.Row

	if len(data.HeaderImage) > 0 {
		rows = append(rows, row.New(20).Add(
			col.New(8),
			col.New(4).Add(image.NewFromBytes(data.HeaderImage, imageExtension(data.HeaderImageExt), props.Rect{
				Center:  true,
				Percent: 100,
			})),
		))
	} else {
		rows = append(rows, textRow(10, cell{size: 12, text: data.CompanyName, style: props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Right,
		}}).row)
	}

	contactStyle := props.Text{Size: 8, Align: align.Right, Color: colorMuted}
	line1, line2 := splitContactLines(data.ContactParts())
	for _, ln := range []string{line1, line2} {
		if ln != "" {
			rows = append(rows, textRow(4, cell{size: 12, text: ln, style: contactStyle}).row)
		}
	}

	rows = append(rows,
		line.NewRow(4, props.Line{Color: colorRed, Thickness: 0.7}),
		row.New(6),
	)
	return rows
}

func proposalFooter(data ExportData) []core.Row {
	return []core.Row{
		line.NewRow(3, props.Line{Color: colorRule, Thickness: 0.3}),
		textRow(6, cell{size: 8, text: data.CompanyName, style: props.Text{Size: 8, Color: colorFaint}}).row,
	}
}

func sectionTitle(title string) []sizedRow {
	return []sizedRow{
		textRow(8, cell{size: 12, text: title, style: props.Text{Size: 13, Style: fontstyle.Bold}}),
		ruleRow(colorRule, 0.3),
		spacer(2),
	}
}

func addProposalTitle(l *layout, data ExportData) {
	l.add(newRow(14, col.New(12).Add(text.New("Project Agreement", props.Text{
		Size:  20,
		Style: fontstyle.Bold,
		Color: colorRed,
	}))))

	labelStyle := props.Text{Size: 10, Style: fontstyle.Bold, Color: colorMuted}
	valueStyle := props.Text{Size: 10}

	info := []struct{ label, value string }{
		{"Client:", dashIfEmpty(data.Project.ContactName)},
		{"Contractor:", data.CompanyName},
		{"Project Location:", dashIfEmpty(data.Project.Address)},
		{"Contact Phone:", dashIfEmpty(data.Project.ContactPhone)},
		{"Construction Type:", data.ConstructionLabel},
		{"Date:", data.Date},
	}

	var rows []sizedRow
	for _, f := range info {
		rows = append(rows, textRow(7,
			cell{size: 3, text: f.label, style: labelStyle},
			cell{size: 9, text: f.value, style: valueStyle},
		))
	}
	rows = append(rows, spacer(10))
	l.keepTogether(rows...)
}

var scopeColumns = []tableColumn{
	{title: "Qty", size: 2, align: align.Center},
	{title: "Item", size: 6, align: align.Left},
	{title: "Unit Price", size: 2, align: align.Right},
	{title: "Total", size: 2, align: align.Right},
}

func addProposalScopes(l *layout, data ExportData) {
	for _, floor := range data.Floors {
		lead := sectionTitle(fmt.Sprintf("Scope %d: %s", floor.Number, floor.DisplayLabel()))

		if len(floor.Lines) == 0 {
			rows := append(lead, newRow(8, col.New(12).Add(text.New("No items in this scope.", props.Text{
				Size:  10,
				Style: fontstyle.Italic,
				Color: colorFaint,
			}))), spacer(6))
			l.keepTogether(rows...)
			continue
		}

		body := make([]sizedRow, len(floor.Lines))
		for i, ln := range floor.Lines {
			body[i] = tableBodyRow(scopeColumns, []string{
				fmt.Sprint(ln.Qty), ln.Name, FormatUSD(ln.UnitPrice), FormatUSD(ln.LineTotal),
			}, 8)
		}
		foot := []sizedRow{
			tableFootRow(scopeColumns, []string{"", "", "Subtotal", FormatUSD(floor.Subtotal)}, 8, colorShade, colorInk),
			spacer(8),
		}
		l.table(lead, tableHeaderRow(scopeColumns, 8), body, foot)
	}
}

var summaryColumns = []tableColumn{
	{title: "Scope", size: 5, align: align.Left},
	{title: "Subtotal", size: 3, align: align.Right},
}

func addPricingSummary(l *layout, data ExportData) {
	body := make([]sizedRow, len(data.Floors))
	for i, floor := range data.Floors {
		body[i] = tableBodyRow(summaryColumns, []string{floor.SummaryLabel(), FormatUSD(floor.Subtotal)}, 8)
	}

	labelStyle := props.Text{Size: 11, Align: align.Right, Color: colorMuted}
	foot := []sizedRow{
		tableFootRow(summaryColumns, []string{"Total Project Cost", FormatUSD(data.GrandTotal)}, 8, colorRed, colorWhite),
		spacer(4),
		// TODO: compute the tax amount once the rate is configurable per job.
		textRow(7,
			cell{size: 6},
			cell{size: 4, text: fmt.Sprintf("NYS Sales Tax (%s):", data.TaxRateLabel), style: labelStyle},
			cell{size: 2, text: "$0.00", style: props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}},
		),
		textRow(9,
			cell{size: 6},
			cell{size: 4, text: "Total Contract Value:", style: labelStyle},
			cell{size: 2, text: FormatUSD(data.GrandTotal), style: props.Text{
				Size:  13,
				Style: fontstyle.Bold,
				Align: align.Right,
				Color: colorRed,
			}},
		),
		spacer(10),
	}
	l.table(sectionTitle("Pricing Summary"), tableHeaderRow(summaryColumns, 8), body, foot)
}

func addPaymentSchedule(l *layout, data ExportData) {
	labelStyle := props.Text{Size: 10, Style: fontstyle.Bold}
	amountStyle := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}
	noteStyle := props.Text{Size: 9, Left: 6, Color: colorMuted}

	for i, ms := range data.Milestones {
		rows := []sizedRow{
			textRow(6,
				cell{size: 9, text: "- " + ms.Label, style: labelStyle},
				cell{size: 3, text: FormatUSD(ms.Amount), style: amountStyle},
			),
			textRow(5, cell{size: 12, text: ms.Note, style: noteStyle}),
			spacer(4),
		}
		if i == 0 {
			rows = append(sectionTitle("Payment Schedule"), rows...)
		}
		l.keepTogether(rows...)
	}
	l.add(spacer(6))
}

// proposalTerms returns the general terms paragraphs naming the contractor.
func proposalTerms(company string) []struct{ heading, body string } {
	return []struct{ heading, body string }{
		{
			heading: "Warranty & Support",
			body: "All equipment is subject to the manufacturer's warranty. " + company +
				" provides a 180-day limited warranty on installation labor covering equipment mounting and programming. " +
				`Warranty does not cover damage caused by "Acts of God," electrical surges, client-side network tampering, or unauthorized third-party modifications. ` +
				"All materials remain property of " + company + " until paid in full.",
		},
		{
			heading: "Client Responsibilities",
			body: "Client shall provide technician access to all MDF/IDF rooms and work areas during standard business hours. " +
				"Client is responsible for ensuring active ISP handoff is available for system programming and providing dedicated electrical outlets where specified.",
		},
		{
			heading: "Change Orders",
			body: "Any additions or deviations from the scopes listed above will be documented in a separate Change Order and billed at " +
				company + "'s standard hourly rate plus materials.",
		},
	}
}

func addGeneralTerms(l *layout, data ExportData) {
	headingStyle := props.Text{Size: 10, Style: fontstyle.Bold}
	bodyStyle := props.Text{Size: 9, Left: 4, Color: &props.Color{Red: 60, Green: 60, Blue: 60}}

	for i, term := range proposalTerms(data.CompanyName) {
		rows := []sizedRow{
			textRow(6, cell{size: 12, text: fmt.Sprintf("%d. %s", i+1, term.heading), style: headingStyle}),
		}
		rows = append(rows, paragraphRows(term.body, bodyStyle)...)
		rows = append(rows, spacer(6))
		if i == 0 {
			rows = append(sectionTitle("General Terms & Conditions"), rows...)
		}
		l.keepTogether(rows...)
	}
}

func addProposalReferences(l *layout, data ExportData) {
	if len(data.Attachments) == 0 {
		return
	}
	rows := sectionTitle("Reference Documents")
	rows = append(rows, paragraphRows(
		"The following reference files are attached to this proposal: "+strings.Join(data.Attachments, ", "),
		props.Text{Size: 10},
	)...)
	rows = append(rows, spacer(10))
	l.keepTogether(rows...)
}

// addSignOff starts a new page with a contractor and a client signature block.
func addSignOff(l *layout, data ExportData) {
	l.newPage()
	l.add(
		newRow(12, col.New(12).Add(text.New("Sign-Off & Authorization", props.Text{Size: 16, Style: fontstyle.Bold}))),
		spacer(10),
	)

	fieldStyle := props.Text{Size: 10, Color: colorMuted, Top: 4}
	lineStyle := props.Text{Size: 10, Color: colorFaint, Top: 4}

	roles := []string{data.CompanyName + " (Contractor)", "Client Name / Company"}
	for _, role := range roles {
		rows := []sizedRow{
			textRow(7, cell{size: 12, text: role, style: props.Text{Size: 12, Style: fontstyle.Bold}}),
			ruleRow(colorRed, 0.5),
			spacer(4),
		}
		for _, field := range []string{"Authorized Signature", "Printed Name", "Date"} {
			rows = append(rows, textRow(12,
				cell{size: 3, text: field + ":", style: fieldStyle},
				cell{size: 9, text: strings.Repeat("_", 60), style: lineStyle},
			))
		}
		rows = append(rows, spacer(12))
		l.keepTogether(rows...)
	}
}
