package builder

import (
	"time"

	"github.com/ByLCY/ledger/document"
	"github.com/ByLCY/ledger/format"
)

// FieldStyle controls how an info field is emphasised.
type FieldStyle struct {
	Bold bool
}

// InfoSectionBuilder lays label/value fields out on a fixed column grid.
// Fields flow left to right and wrap onto a new row when their span no
// longer fits.
type InfoSectionBuilder struct {
	columns int
	fields  []document.KeyValue
	fmt     *format.Formatter
}

// NewInfoSectionBuilder returns a builder for a grid of columns (at least 1).
func NewInfoSectionBuilder(columns int) *InfoSectionBuilder {
	return &InfoSectionBuilder{columns: max(columns, 1), fmt: format.Default()}
}

// UseFormatter replaces the formatter used by the date and number helpers.
func (b *InfoSectionBuilder) UseFormatter(f *format.Formatter) *InfoSectionBuilder {
	if f != nil {
		b.fmt = f
	}
	return b
}

func (b *InfoSectionBuilder) AddField(label, value string) *InfoSectionBuilder {
	return b.AddFieldSpan(label, value, 1, FieldStyle{})
}

// AddFieldSpan adds a field covering span grid columns. Spans are clamped to [1, columns].
func (b *InfoSectionBuilder) AddFieldSpan(label, value string, span int, style FieldStyle) *InfoSectionBuilder {
	span = min(max(span, 1), b.columns)
	b.fields = append(b.fields, document.KeyValue{Key: label, Value: value, Span: span, Bold: style.Bold})
	return b
}

// AddFieldIf adds the field only when cond holds.
func (b *InfoSectionBuilder) AddFieldIf(cond bool, label, value string) *InfoSectionBuilder {
	if !cond {
		return b
	}
	return b.AddField(label, value)
}

func (b *InfoSectionBuilder) AddDate(label string, t time.Time) *InfoSectionBuilder {
	return b.AddField(label, b.fmt.Date(t))
}

func (b *InfoSectionBuilder) AddDateTime(label string, t time.Time) *InfoSectionBuilder {
	return b.AddField(label, b.fmt.DateTime(t))
}

func (b *InfoSectionBuilder) AddAmount(label string, v float64) *InfoSectionBuilder {
	return b.AddField(label, b.fmt.Amount(v))
}

func (b *InfoSectionBuilder) AddQuantity(label string, v float64) *InfoSectionBuilder {
	return b.AddField(label, b.fmt.Quantity(v))
}

// Build packs the fields into rows.
func (b *InfoSectionBuilder) Build() []document.Element {
	var (
		rows []document.Element
		cur  []document.KeyValue
		used int
	)
	for _, f := range b.fields {
		if used+f.Span > b.columns && len(cur) > 0 {
			rows = append(rows, document.KeyValueRow{Pairs: cur})
			cur, used = nil, 0
		}
		cur = append(cur, f)
		used += f.Span
	}
	if len(cur) > 0 {
		rows = append(rows, document.KeyValueRow{Pairs: cur})
	}
	return rows
}

// Len reports the number of fields added so far.
func (b *InfoSectionBuilder) Len() int { return len(b.fields) }

func (b *InfoSectionBuilder) Clear() {
	b.fields = b.fields[:0]
}
