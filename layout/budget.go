// Package layout holds the page budget model and the paginator that splits
// detail rows into pages.
//
// A Budget is the millimeter allowance table of one paper format: how much
// vertical space the fixed regions of a page consume (title, info block, table
// header, summary, signature, safety margin) and how tall one detail row is.
// Budgets are plain values and may be shared freely between goroutines.
package layout

import (
	"fmt"
	"math"
	"sort"
)

// Budget 页面高度预算，所有长度单位为毫米。
type Budget struct {
	Name       string  `json:"name"`
	PageWidth  float64 `json:"pageWidth"`
	PageHeight float64 `json:"pageHeight"`

	Header      float64 `json:"header"`
	InfoSection float64 `json:"infoSection"`
	TableHeader float64 `json:"tableHeader"`
	// RowBase 是渲染时的行高；RowCalculation 是分页估算用的行高，必须不小于 RowBase。
	RowBase        float64 `json:"rowBase"`
	RowCalculation float64 `json:"rowCalculation"`
	Summary        float64 `json:"summary"`
	Signature      float64 `json:"signature"`
	SafetyMargin   float64 `json:"safetyMargin"`
}

// Allowances are the fixed-region heights used by NewBudget, in mm.
type Allowances struct {
	Header         float64
	InfoSection    float64
	TableHeader    float64
	RowBase        float64
	RowCalculation float64
	Summary        float64
	Signature      float64
	SafetyMargin   float64
}

// NewBudget builds a custom budget and validates it.
func NewBudget(name string, width, height float64, a Allowances) (Budget, error) {
	b := Budget{
		Name:           name,
		PageWidth:      width,
		PageHeight:     height,
		Header:         a.Header,
		InfoSection:    a.InfoSection,
		TableHeader:    a.TableHeader,
		RowBase:        a.RowBase,
		RowCalculation: a.RowCalculation,
		Summary:        a.Summary,
		Signature:      a.Signature,
		SafetyMargin:   a.SafetyMargin,
	}
	if err := b.Validate(); err != nil {
		return Budget{}, err
	}
	return b, nil
}

// AvailableForNonLastPage is the detail-row height of every page but the last.
func (b Budget) AvailableForNonLastPage() float64 {
	return b.PageHeight - b.Header - b.InfoSection - b.TableHeader - b.SafetyMargin
}

// AvailableForLastPage additionally reserves the summary and signature regions.
func (b Budget) AvailableForLastPage() float64 {
	return b.AvailableForNonLastPage() - b.Summary - b.Signature
}

// RowsPerPage reports how many fixed-height rows fit on a non-last and on the last page.
func (b Budget) RowsPerPage() (nonLast, last int) {
	if b.RowCalculation <= 0 {
		return 0, 0
	}
	nonLast = int(math.Floor(b.AvailableForNonLastPage()/b.RowCalculation + 1e-9))
	last = int(math.Floor(b.AvailableForLastPage()/b.RowCalculation + 1e-9))
	return max(nonLast, 0), max(last, 0)
}

// Validate is the configuration self-check for a budget. It is meant to run
// when a budget is defined, not on every pagination call.
func (b Budget) Validate() error {
	name := b.Name
	if name == "" {
		name = "<unnamed>"
	}
	fields := []struct {
		label string
		v     float64
	}{
		{"page-width", b.PageWidth}, {"page-height", b.PageHeight},
		{"header", b.Header}, {"info-section", b.InfoSection}, {"table-header", b.TableHeader},
		{"row-base", b.RowBase}, {"row-calculation", b.RowCalculation},
		{"summary", b.Summary}, {"signature", b.Signature}, {"safety-margin", b.SafetyMargin},
	}
	for _, f := range fields {
		if f.v < 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s: %s must be a finite non-negative length, got %g", ErrInvalidBudget, name, f.label, f.v)
		}
	}
	if b.RowCalculation <= 0 {
		return fmt.Errorf("%w: %s: row-calculation must be positive", ErrInvalidBudget, name)
	}
	if b.RowCalculation < b.RowBase {
		return fmt.Errorf("%w: %s: row-calculation %gmm is smaller than row-base %gmm", ErrInvalidBudget, name, b.RowCalculation, b.RowBase)
	}
	if avail := b.AvailableForNonLastPage(); avail <= 0 {
		return fmt.Errorf("%w: %s: no space left for detail rows on non-last pages (%gmm)", ErrInvalidBudget, name, avail)
	}
	if avail := b.AvailableForLastPage(); avail <= 0 {
		return fmt.Errorf("%w: %s: no space left for detail rows on the last page (%gmm)", ErrInvalidBudget, name, avail)
	}
	return nil
}

// 预设纸张格式。各区域高度来自实际打印测量。
const (
	PresetContinuousForm = "continuous-form"
	PresetA4Portrait     = "a4-portrait"
	PresetA4Landscape    = "a4-landscape"
)

// ContinuousForm is a 241 × 140 mm tractor-feed half sheet.
func ContinuousForm() Budget {
	return Budget{
		Name:           PresetContinuousForm,
		PageWidth:      241,
		PageHeight:     140,
		Header:         20,
		InfoSection:    18,
		TableHeader:    7,
		RowBase:        6,
		RowCalculation: 6.5,
		Summary:        10,
		Signature:      10,
		SafetyMargin:   8,
	}
}

// A4Portrait is 210 × 297 mm.
func A4Portrait() Budget {
	return Budget{
		Name:           PresetA4Portrait,
		PageWidth:      210,
		PageHeight:     297,
		Header:         25,
		InfoSection:    30,
		TableHeader:    8,
		RowBase:        7,
		RowCalculation: 7.5,
		Summary:        20,
		Signature:      15,
		SafetyMargin:   20,
	}
}

// A4Landscape is 297 × 210 mm.
func A4Landscape() Budget {
	return Budget{
		Name:           PresetA4Landscape,
		PageWidth:      297,
		PageHeight:     210,
		Header:         22,
		InfoSection:    25,
		TableHeader:    8,
		RowBase:        7,
		RowCalculation: 7.5,
		Summary:        18,
		Signature:      14,
		SafetyMargin:   15,
	}
}

// Presets returns a fresh map of the built-in budgets keyed by name.
func Presets() map[string]Budget {
	return map[string]Budget{
		PresetContinuousForm: ContinuousForm(),
		PresetA4Portrait:     A4Portrait(),
		PresetA4Landscape:    A4Landscape(),
	}
}

// PresetNames lists the built-in budget names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, 3)
	for name := range Presets() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetByName looks up a built-in budget.
func PresetByName(name string) (Budget, error) {
	b, ok := Presets()[name]
	if !ok {
		return Budget{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return b, nil
}
