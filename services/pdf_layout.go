package services

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/phpdave11/gofpdf"
)

var (
	colorRed   = &props.Color{Red: 224, Green: 32, Blue: 32}
	colorInk   = &props.Color{Red: 15, Green: 15, Blue: 15}
	colorWhite = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorShade = &props.Color{Red: 245, Green: 245, Blue: 245}
	colorMuted = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorFaint = &props.Color{Red: 140, Green: 140, Blue: 140}
	colorRule  = &props.Color{Red: 210, Green: 210, Blue: 210}
)

// Text is wrapped before it reaches maroto so every row knows its height:
// lines are measured with the same core-font metrics maroto draws with and
// each one is placed as its own text component.
const (
	contentWidth   = 180.0 // A4 less the 15mm side margins
	widthSlack     = 0.5
	lineSpacing    = 0.45 // mm of line height per point of font size
	cellPadBottom  = 1.0
	defaultFontPt  = 10.0
	defaultFontFam = "arial"
	ptToMM         = 25.4 / 72
)

// newPortraitMaroto returns an A4 portrait document with "Page N of M" at
// the given place.
func newPortraitMaroto(place props.Place) core.Maroto {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(10).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   place,
			Size:    8,
			Color:   colorFaint,
		}).
		Build()
	return maroto.New(cfg)
}

// pageFlow is the part of core.Maroto the layout needs.
type pageFlow interface {
	AddRows(rows ...core.Row)
	AddPages(pages ...core.Page)
	FitlnCurrentPage(heightNewLine float64) bool
}

// sizedRow pairs a row with its height so blocks can be measured up front.
type sizedRow struct {
	height float64
	row    core.Row
}

func newRow(height float64, cols ...core.Col) sizedRow {
	return sizedRow{height: height, row: row.New(height).Add(cols...)}
}

func spacer(height float64) sizedRow {
	return sizedRow{height: height, row: row.New(height)}
}

func ruleRow(color *props.Color, thickness float64) sizedRow {
	return sizedRow{height: 3, row: line.NewRow(3, props.Line{Color: color, Thickness: thickness})}
}

func totalHeight(rows []sizedRow) float64 {
	var h float64
	for _, r := range rows {
		h += r.height
	}
	return h
}

// layout places blocks on a pageFlow, starting a new page whenever a block
// would not fit in what is left of the current one. The registered page
// header is re-emitted by maroto on every new page.
type layout struct {
	flow pageFlow
}

// ensure breaks the page unless height fits on the current one and reports
// whether it did.
func (l *layout) ensure(height float64) bool {
	if l.flow.FitlnCurrentPage(height) {
		return false
	}
	l.flow.AddPages(page.New())
	return true
}

// newPage always starts a fresh page.
func (l *layout) newPage() {
	l.flow.AddPages(page.New())
}

func (l *layout) add(rows ...sizedRow) {
	for _, r := range rows {
		l.flow.AddRows(r.row)
	}
}

// keepTogether places rows on one page.
func (l *layout) keepTogether(rows ...sizedRow) {
	l.ensure(totalHeight(rows))
	l.add(rows...)
}

// table places a titled table. The lead rows, the header and the first body
// row stay together; when a later body row starts a new page, the header is
// repeated above it. Footer rows are kept on the page of the last body row.
func (l *layout) table(lead []sizedRow, header sizedRow, body []sizedRow, foot []sizedRow) {
	first := append(append([]sizedRow{}, lead...), header)
	rest := body
	if len(body) > 0 {
		first = append(first, body[0])
		rest = body[1:]
	}
	if len(rest) == 0 {
		first = append(first, foot...)
	}
	l.keepTogether(first...)
	if len(rest) == 0 {
		return
	}

	for i, r := range rest {
		need := r.height
		if i == len(rest)-1 {
			need += totalHeight(foot)
		}
		if l.ensure(need) {
			l.add(header)
		}
		l.add(r)
	}
	l.add(foot...)
}

// textMeasurer measures strings with gofpdf's core-font metrics. An Fpdf is
// not safe for concurrent use, so access is serialized.
type textMeasurer struct {
	mu        sync.Mutex
	pdf       *gofpdf.Fpdf
	translate func(string) string
}

var measurer = newTextMeasurer()

// newTextMeasurer measures in cp1252, the encoding maroto draws core fonts in.
func newTextMeasurer() *textMeasurer {
	pdf := gofpdf.New("P", "mm", "A4", "")
	return &textMeasurer{pdf: pdf, translate: pdf.UnicodeTranslatorFromDescriptor("")}
}

func fontSize(style props.Text) float64 {
	if style.Size <= 0 {
		return defaultFontPt
	}
	return style.Size
}

// width returns the rendered width of s in mm.
func (m *textMeasurer) width(s string, style props.Text) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	family := style.Family
	if family == "" {
		family = defaultFontFam
	}
	m.pdf.SetFont(family, string(style.Style), fontSize(style))
	if m.pdf.Err() {
		// Unknown font: assume every glyph is as wide as the widest core glyph.
		m.pdf.ClearError()
		return float64(utf8.RuneCountInString(s)) * fontSize(style) * ptToMM * 1.02
	}
	return m.pdf.GetStringWidth(m.translate(s))
}

func lineHeight(style props.Text) float64 {
	return fontSize(style) * lineSpacing
}

func colWidth(size int) float64 {
	return contentWidth * float64(size) / 12
}

// cell is one column of a text row. Text is wrapped to the column; "\n"
// forces a line break.
type cell struct {
	size  int
	text  string
	style props.Text
	bg    *props.Color
}

// lines wraps the cell's text to the width left after its side padding.
func (c cell) lines() []string {
	if c.text == "" {
		return nil
	}
	avail := colWidth(c.size) - c.style.Left - c.style.Right - widthSlack
	measure := func(s string) float64 { return measurer.width(s, c.style) }

	var out []string
	for _, para := range strings.Split(c.text, "\n") {
		out = append(out, wrapToWidth(para, avail, measure)...)
	}
	return out
}

// col renders the wrapped lines, one text component each, and returns the
// height they need.
func (c cell) col() (core.Col, float64) {
	lines := c.lines()
	components := make([]core.Component, len(lines))
	for i, ln := range lines {
		style := c.style
		style.Top = c.style.Top + float64(i)*lineHeight(c.style)
		components[i] = text.New(ln, style)
	}

	out := col.New(c.size).Add(components...)
	if c.bg != nil {
		out = out.WithStyle(&props.Cell{BackgroundColor: c.bg})
	}
	if len(lines) == 0 {
		return out, 0
	}
	return out, c.style.Top + float64(len(lines))*lineHeight(c.style) + cellPadBottom
}

// textRow builds a row tall enough for the tallest wrapped cell, and never
// shorter than minHeight.
func textRow(minHeight float64, cells ...cell) sizedRow {
	height := minHeight
	cols := make([]core.Col, len(cells))
	for i, c := range cells {
		var h float64
		cols[i], h = c.col()
		height = max(height, h)
	}
	return newRow(height, cols...)
}

// tableColumn describes one column of a simple grid table.
type tableColumn struct {
	title string
	size  int
	align align.Type
}

func tableCellStyle(c tableColumn) props.Text {
	return props.Text{Size: 9, Align: c.align, Top: 1.5, Left: 1, Right: 1}
}

func tableHeaderRow(cols []tableColumn, minHeight float64) sizedRow {
	cells := make([]cell, len(cols))
	for i, c := range cols {
		style := tableCellStyle(c)
		style.Style = fontstyle.Bold
		style.Color = colorWhite
		cells[i] = cell{size: c.size, text: c.title, style: style, bg: colorInk}
	}
	return textRow(minHeight, cells...)
}

// tableBodyRow grows with the wrapped values; minHeight is the height of a
// single-line row.
func tableBodyRow(cols []tableColumn, values []string, minHeight float64) sizedRow {
	cells := make([]cell, len(cols))
	for i, c := range cols {
		cells[i] = cell{size: c.size, text: values[i], style: tableCellStyle(c)}
	}
	return textRow(minHeight, cells...)
}

func tableFootRow(cols []tableColumn, values []string, minHeight float64, bg, fg *props.Color) sizedRow {
	cells := make([]cell, len(cols))
	for i, c := range cols {
		style := tableCellStyle(c)
		style.Style = fontstyle.Bold
		style.Color = fg
		cells[i] = cell{size: c.size, text: values[i], style: style, bg: bg}
	}
	return textRow(minHeight, cells...)
}

// paragraphRows renders s across the full width, one row per wrapped line,
// so a page break can fall between lines.
func paragraphRows(s string, style props.Text) []sizedRow {
	lines := cell{size: 12, text: s, style: style}.lines()
	rows := make([]sizedRow, len(lines))
	for i, ln := range lines {
		rows[i] = newRow(lineHeight(style), col.New(12).Add(text.New(ln, style)))
	}
	return rows
}

// wrapToWidth splits s into lines no wider than maxWidth, breaking on spaces
// and splitting any word that does not fit on a line of its own.
func wrapToWidth(s string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	cur := ""
	for _, word := range strings.Fields(s) {
		if measure(word) > maxWidth {
			if cur != "" {
				lines = append(lines, cur)
			}
			chunks := splitWord(word, maxWidth, measure)
			lines = append(lines, chunks[:len(chunks)-1]...)
			cur = chunks[len(chunks)-1]
			continue
		}

		switch candidate := cur + " " + word; {
		case cur == "":
			cur = word
		case measure(candidate) <= maxWidth:
			cur = candidate
		default:
			lines = append(lines, cur)
			cur = word
		}
	}
	if cur != "" || len(lines) == 0 {
		lines = append(lines, cur)
	}
	return lines
}

// splitWord cuts word into the longest prefixes that fit maxWidth. Each chunk
// holds at least one rune.
func splitWord(word string, maxWidth float64, measure func(string) float64) []string {
	var chunks []string
	runes := []rune(word)
	for len(runes) > 0 {
		n := 1
		for n < len(runes) && measure(string(runes[:n+1])) <= maxWidth {
			n++
		}
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}
	return chunks
}

// splitContactLines spreads contact parts over two lines, the first taking
// the larger half.
func splitContactLines(parts []string) (string, string) {
	if len(parts) == 0 {
		return "", ""
	}
	mid := (len(parts) + 1) / 2
	return strings.Join(parts[:mid], "  |  "), strings.Join(parts[mid:], "  |  ")
}

// dashIfEmpty renders a blank field as "-".
func dashIfEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
