// Package format renders numbers and dates the way printed business documents
// show them: grouped thousands, fixed decimals for amounts and the "smart"
// rule where integral values drop their decimal point.
package format

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Default layouts.
const (
	DateLayout     = "2006/01/02"
	DateTimeLayout = "2006/01/02 15:04"
)

// Formatter formats values for display. The zero value is not usable, use New.
// A Formatter is immutable and safe for concurrent use.
type Formatter struct {
	amountPlaces   int
	quantityPlaces int
	nullText       string
	dateLayout     string
	dateTimeLayout string
	printer        *message.Printer
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithAmountPlaces sets the decimals used by Amount and SmartAmount.
func WithAmountPlaces(n int) Option {
	return func(f *Formatter) {
		if n >= 0 {
			f.amountPlaces = n
		}
	}
}

// WithQuantityPlaces sets the decimals SmartQuantity keeps for fractional quantities.
func WithQuantityPlaces(n int) Option {
	return func(f *Formatter) {
		if n >= 0 {
			f.quantityPlaces = n
		}
	}
}

// WithNullText sets what nil values render as.
func WithNullText(s string) Option {
	return func(f *Formatter) { f.nullText = s }
}

// WithDateLayouts overrides the time layouts. Empty strings keep the defaults.
func WithDateLayouts(date, dateTime string) Option {
	return func(f *Formatter) {
		if date != "" {
			f.dateLayout = date
		}
		if dateTime != "" {
			f.dateTimeLayout = dateTime
		}
	}
}

// WithLanguage selects the locale used for digit grouping.
func WithLanguage(tag language.Tag) Option {
	return func(f *Formatter) { f.printer = message.NewPrinter(tag) }
}

// New returns a Formatter with 2 amount decimals, 2 smart-quantity decimals,
// "0" as null text and English grouping.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		amountPlaces:   2,
		quantityPlaces: 2,
		nullText:       "0",
		dateLayout:     DateLayout,
		dateTimeLayout: DateTimeLayout,
		printer:        message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Formatter) fixed(v float64, places int) string {
	v = round(v, places)
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return f.printer.Sprint(number.Decimal(v, number.Scale(places)))
}

// Smart rounds v to places decimals. An integral result renders without a
// decimal point, anything else with exactly places decimals.
func (f *Formatter) Smart(v float64, places int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return f.nullText
	}
	r := round(v, places)
	if r == math.Trunc(r) {
		return f.fixed(r, 0)
	}
	return f.fixed(r, places)
}

// SmartPtr is Smart for optional values; nil renders as the null text.
func (f *Formatter) SmartPtr(v *float64, places int) string {
	if v == nil {
		return f.nullText
	}
	return f.Smart(*v, places)
}

// SmartAmountPtr is SmartAmount for optional values.
func (f *Formatter) SmartAmountPtr(v *float64) string { return f.SmartPtr(v, f.amountPlaces) }

// Amount always shows the configured decimals, e.g. 1,234.50.
func (f *Formatter) Amount(v float64) string { return f.fixed(v, f.amountPlaces) }

// Quantity shows whole units, e.g. 1,235.
func (f *Formatter) Quantity(v float64) string { return f.fixed(v, 0) }

func (f *Formatter) SmartAmount(v float64) string { return f.Smart(v, f.amountPlaces) }
func (f *Formatter) SmartQuantity(v float64) string { return f.Smart(v, f.quantityPlaces) }

// Date formats t as yyyy/mm/dd. The zero time yields "".
func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(f.dateLayout)
}

// DateTime formats t as yyyy/mm/dd hh:mm. The zero time yields "".
func (f *Formatter) DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(f.dateTimeLayout)
}

// NullText is what nil values render as.
func (f *Formatter) NullText() string { return f.nullText }

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

var std = New()

// Default returns the package-level formatter.
func Default() *Formatter { return std }

// Helpers backed by Default.

func Smart(v float64) string { return std.SmartAmount(v) }
func SmartPtr(v *float64) string { return std.SmartAmountPtr(v) }
func Amount(v float64) string { return std.Amount(v) }
func Quantity(v float64) string { return std.Quantity(v) }
func SmartQuantity(v float64) string { return std.SmartQuantity(v) }
func Date(t time.Time) string { return std.Date(t) }
func DateTime(t time.Time) string { return std.DateTime(t) }
