package layout

// PageEligible is a detail row the paginator can place. Remarks and
// ExtraHeightFactor are reserved for height-aware estimators; the default
// estimator does not read them.
type PageEligible interface {
	Remarks() string
	ExtraHeightFactor() float64
}

// RowMeta can be embedded in a row type to satisfy PageEligible.
type RowMeta struct {
	RemarksText string  `json:"remarks,omitempty"`
	ExtraHeight float64 `json:"extraHeight,omitempty"`
}

func (m RowMeta) Remarks() string            { return m.RemarksText }
func (m RowMeta) ExtraHeightFactor() float64 { return m.ExtraHeight }

// HeightEstimator returns the height in mm an item consumes on a page.
type HeightEstimator interface {
	RowHeight(item PageEligible, b Budget) float64
}

// FixedRowHeight charges every row Budget.RowCalculation regardless of its content.
type FixedRowHeight struct{}

func (FixedRowHeight) RowHeight(_ PageEligible, b Budget) float64 { return b.RowCalculation }

// Page 是分页结果中的一页。
type Page[T any] struct {
	Items  []T  `json:"items"`
	IsLast bool `json:"isLast"`
	// Number 从 1 开始；StartRow 为此前各页的明细行总数，用于连续编号。
	Number   int `json:"number"`
	StartRow int `json:"startRow"`
}

// HasDetails reports whether the page carries any detail rows.
func (p Page[T]) HasDetails() bool { return len(p.Items) > 0 }

// IsFooterOnly reports a last page without detail rows (empty input).
func (p Page[T]) IsFooterOnly() bool { return p.IsLast && !p.HasDetails() }

// Paginator splits rows greedily using an estimator. The zero value uses FixedRowHeight.
type Paginator[T PageEligible] struct {
	Estimator HeightEstimator
}

// SplitIntoPages splits items with the fixed-row-height estimator.
func SplitIntoPages[T PageEligible](items []T, b Budget) []Page[T] {
	return Paginator[T]{}.Split(items, b)
}

// Split assigns items to pages in order. Every page but the last is filled up
// to AvailableForNonLastPage; the final item is checked against
// AvailableForLastPage so the summary and signature always fit after it. A page
// is only closed when it already holds an item, so an oversized row sits alone
// on its own page. Empty input yields a single footer-only page.
func (p Paginator[T]) Split(items []T, b Budget) []Page[T] {
	if len(items) == 0 {
		return []Page[T]{{Items: []T{}, IsLast: true, Number: 1}}
	}
	est := p.Estimator
	if est == nil {
		est = FixedRowHeight{}
	}

	nonLastLimit := b.AvailableForNonLastPage()
	lastLimit := b.AvailableForLastPage()

	var (
		pages   []Page[T]
		current []T
		used    float64
		placed  int
	)
	closePage := func(isLast bool) {
		pages = append(pages, Page[T]{
			Items:    current,
			IsLast:   isLast,
			Number:   len(pages) + 1,
			StartRow: placed,
		})
		placed += len(current)
		current = nil
		used = 0
	}

	for i, item := range items {
		h := est.RowHeight(item, b)
		limit := nonLastLimit
		if i == len(items)-1 {
			limit = lastLimit
		}
		if used+h > limit && len(current) > 0 {
			closePage(false)
		}
		current = append(current, item)
		used += h
	}
	if len(current) > 0 {
		closePage(true)
	}
	return pages
}
