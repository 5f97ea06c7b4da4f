// Package builder assembles the recurring blocks of a business document
// (masthead, info section, detail table, summary and signature) as
// document elements.
//
// Builders accumulate state and are not safe for concurrent use. Create one
// per document build, or call Clear before reusing an instance.
package builder

import (
	"strings"

	"github.com/ByLCY/ledger/binding"
	"github.com/ByLCY/ledger/document"
)

// Default font sizes in points.
const (
	DefaultTitleFontSize = 16
	DefaultSideFontSize  = 9
)

type infoLine struct {
	label string
	value string
}

// HeaderBuilder builds a three-column page header: info lines on the left,
// company and title in the center, page info on the right.
type HeaderBuilder struct {
	info     []infoLine
	company  string
	title    string
	pageInfo string
	center   float64
	side     float64
}

func NewHeaderBuilder() *HeaderBuilder {
	return &HeaderBuilder{center: DefaultTitleFontSize, side: DefaultSideFontSize}
}

// AddInfo appends a left-hand "label: value" line. Blank values are skipped.
func (b *HeaderBuilder) AddInfo(label, value string) *HeaderBuilder {
	if strings.TrimSpace(value) == "" {
		return b
	}
	b.info = append(b.info, infoLine{label: label, value: value})
	return b
}

func (b *HeaderBuilder) SetTitle(company, title string) *HeaderBuilder {
	b.company, b.title = company, title
	return b
}

func (b *HeaderBuilder) SetPageInfo(s string) *HeaderBuilder {
	b.pageInfo = s
	return b
}

// SetPageInfoTemplate fills ${...} placeholders of tpl from data, e.g.
// "Page ${number} of ${total}".
func (b *HeaderBuilder) SetPageInfoTemplate(tpl string, data any) *HeaderBuilder {
	b.pageInfo = binding.Interpolate(tpl, data)
	return b
}

func (b *HeaderBuilder) FontSizes(center, side float64) *HeaderBuilder {
	if center > 0 {
		b.center = center
	}
	if side > 0 {
		b.side = side
	}
	return b
}

// Build returns the header as a single element. It does not change the builder.
func (b *HeaderBuilder) Build() []document.Element {
	left := make([]string, 0, len(b.info))
	for _, l := range b.info {
		left = append(left, l.label+": "+l.value)
	}
	center := b.company
	if b.title != "" {
		if center != "" {
			center += "\n"
		}
		center += b.title
	}
	return []document.Element{document.ThreeColumnHeader{
		Left:           strings.Join(left, "\n"),
		Center:         center,
		Right:          b.pageInfo,
		CenterFontSize: b.center,
		CenterBold:     true,
		SideFontSize:   b.side,
	}}
}

func (b *HeaderBuilder) Clear() {
	b.info = b.info[:0]
	b.company, b.title, b.pageInfo = "", "", ""
	b.center, b.side = DefaultTitleFontSize, DefaultSideFontSize
}

// ReportHeaderBuilder builds the centered title block of a report, with
// optional right-aligned annotation lines and a separator rule below it.
type ReportHeaderBuilder struct {
	center    []document.HeaderLine
	right     []string
	rightSize float64
	separator *document.Line
}

func NewReportHeaderBuilder() *ReportHeaderBuilder {
	return &ReportHeaderBuilder{rightSize: DefaultSideFontSize}
}

func (b *ReportHeaderBuilder) AddCenterLine(text string, size float64, bold bool) *ReportHeaderBuilder {
	b.center = append(b.center, document.HeaderLine{Text: text, FontSize: size, Bold: bold})
	return b
}

func (b *ReportHeaderBuilder) AddRightLine(text string) *ReportHeaderBuilder {
	b.right = append(b.right, text)
	return b
}

func (b *ReportHeaderBuilder) RightFontSize(pt float64) *ReportHeaderBuilder {
	if pt > 0 {
		b.rightSize = pt
	}
	return b
}

// Separator adds a rule under the block. A zero thickness removes it.
func (b *ReportHeaderBuilder) Separator(style document.LineStyle, thickness float64) *ReportHeaderBuilder {
	if thickness <= 0 {
		b.separator = nil
		return b
	}
	b.separator = &document.Line{Style: style, Thickness: thickness}
	return b
}

func (b *ReportHeaderBuilder) Build() []document.Element {
	els := []document.Element{document.ReportHeaderBlock{
		CenterLines:   append([]document.HeaderLine(nil), b.center...),
		RightLines:    append([]string(nil), b.right...),
		RightFontSize: b.rightSize,
	}}
	if b.separator != nil {
		els = append(els, *b.separator)
	}
	return els
}

// ApplyTo writes the block into the header region of doc.
func (b *ReportHeaderBuilder) ApplyTo(doc *document.Document) {
	doc.BeginHeader(func(d *document.Document) {
		d.Add(b.Build()...)
	})
}

func (b *ReportHeaderBuilder) Clear() {
	b.center = b.center[:0]
	b.right = b.right[:0]
	b.rightSize = DefaultSideFontSize
	b.separator = nil
}
