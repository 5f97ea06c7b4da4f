package builder

import (
	"strconv"
	"time"

	"github.com/ByLCY/ledger/document"
	"github.com/ByLCY/ledger/format"
)

// Default table row heights in mm.
const (
	DefaultRowHeight       = 7
	DefaultHeaderRowHeight = 8
)

// CellFunc projects an item to its cell text. rowIndex is the zero-based
// position of the item across the whole document, not just the current page.
type CellFunc[T any] func(item T, rowIndex int) string

type tableColumn[T any] struct {
	def  document.Column
	cell CellFunc[T]
}

// TableBuilder turns a slice of items into a document.Table. Column
// projections run in declaration order; a panicking projection is not recovered.
type TableBuilder[T any] struct {
	columns []tableColumn[T]
	style   document.Table
	fmt     *format.Formatter
}

func NewTableBuilder[T any]() *TableBuilder[T] {
	b := &TableBuilder[T]{fmt: format.Default()}
	b.resetStyle()
	return b
}

func (b *TableBuilder[T]) resetStyle() {
	b.style = document.Table{
		ShowBorder:           true,
		ShowHeaderBackground: true,
		ShowHeaderSeparator:  true,
		RowHeight:            DefaultRowHeight,
		HeaderRowHeight:      DefaultHeaderRowHeight,
	}
}

func (b *TableBuilder[T]) UseFormatter(f *format.Formatter) *TableBuilder[T] {
	if f != nil {
		b.fmt = f
	}
	return b
}

// Column adds a column. width is in mm; 0 shares the remaining width.
func (b *TableBuilder[T]) Column(header string, width float64, align document.Alignment, fn CellFunc[T]) *TableBuilder[T] {
	b.columns = append(b.columns, tableColumn[T]{
		def:  document.Column{Header: header, Width: width, Align: align},
		cell: fn,
	})
	return b
}

// IndexColumn numbers rows from 1, continuing across pages.
func (b *TableBuilder[T]) IndexColumn(header string, width float64) *TableBuilder[T] {
	return b.Column(header, width, document.AlignCenter, func(_ T, rowIndex int) string {
		return strconv.Itoa(rowIndex + 1)
	})
}

func (b *TableBuilder[T]) TextColumn(header string, width float64, fn func(T) string) *TableBuilder[T] {
	return b.Column(header, width, document.AlignLeft, func(item T, _ int) string { return fn(item) })
}

func (b *TableBuilder[T]) DateColumn(header string, width float64, fn func(T) time.Time) *TableBuilder[T] {
	return b.Column(header, width, document.AlignCenter, func(item T, _ int) string { return b.fmt.Date(fn(item)) })
}

// QuantityColumn uses the smart rule so fractional quantities keep their decimals.
func (b *TableBuilder[T]) QuantityColumn(header string, width float64, fn func(T) float64) *TableBuilder[T] {
	return b.Column(header, width, document.AlignRight, func(item T, _ int) string { return b.fmt.SmartQuantity(fn(item)) })
}

func (b *TableBuilder[T]) AmountColumn(header string, width float64, fn func(T) float64) *TableBuilder[T] {
	return b.Column(header, width, document.AlignRight, func(item T, _ int) string { return b.fmt.Amount(fn(item)) })
}

func (b *TableBuilder[T]) Border(on bool) *TableBuilder[T] {
	b.style.ShowBorder = on
	return b
}

func (b *TableBuilder[T]) HeaderBackground(on bool) *TableBuilder[T] {
	b.style.ShowHeaderBackground = on
	return b
}

func (b *TableBuilder[T]) HeaderSeparator(on bool) *TableBuilder[T] {
	b.style.ShowHeaderSeparator = on
	return b
}

func (b *TableBuilder[T]) HeaderUnderline(on bool) *TableBuilder[T] {
	b.style.ShowHeaderUnderline = on
	return b
}

// RowHeights sets body and header row heights in mm. Non-positive values are ignored.
func (b *TableBuilder[T]) RowHeights(row, header float64) *TableBuilder[T] {
	if row > 0 {
		b.style.RowHeight = row
	}
	if header > 0 {
		b.style.HeaderRowHeight = header
	}
	return b
}

// Columns reports the number of declared columns.
func (b *TableBuilder[T]) Columns() int { return len(b.columns) }

// Build renders the header row and one row per item. startRow is the number
// of items already rendered on earlier pages.
func (b *TableBuilder[T]) Build(items []T, startRow int) document.Table {
	t := b.style
	t.Columns = make([]document.Column, len(b.columns))
	for i, c := range b.columns {
		t.Columns[i] = c.def
	}
	t.Rows = make([][]string, 0, len(items))
	for i, item := range items {
		row := make([]string, len(b.columns))
		for j, c := range b.columns {
			row[j] = c.cell(item, startRow+i)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Clear drops all columns and restores the default style.
func (b *TableBuilder[T]) Clear() {
	b.columns = b.columns[:0]
	b.resetStyle()
}
