package format_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/ByLCY/ledger/format"
)

func TestSmart(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{10.00, "10"},
		{10.5, "10.50"},
		{0, "0"},
		{-0.001, "0"},
		{1234567, "1,234,567"},
		{1234.5, "1,234.50"},
		{9.999, "10"},
		{-3.25, "-3.25"},
		{0.125, "0.13"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, format.Smart(tc.in), "Smart(%v)", tc.in)
	}
	assert.Equal(t, "0", format.SmartPtr(nil))
	v := 2.5
	assert.Equal(t, "2.50", format.SmartPtr(&v))
	assert.Equal(t, "0", format.Smart(math.NaN()))
}

func TestAmountAndQuantity(t *testing.T) {
	assert.Equal(t, "1,234.50", format.Amount(1234.5))
	assert.Equal(t, "10.00", format.Amount(10))
	assert.Equal(t, "0.00", format.Amount(-0.0001))
	assert.Equal(t, "1,235", format.Quantity(1234.6))
	assert.Equal(t, "12", format.SmartQuantity(12))
	assert.Equal(t, "12.25", format.SmartQuantity(12.25))
}

func TestFormatterOptions(t *testing.T) {
	f := format.New(
		format.WithAmountPlaces(3),
		format.WithQuantityPlaces(1),
		format.WithNullText("-"),
		format.WithDateLayouts("02.01.2006", ""),
		format.WithLanguage(language.German),
	)
	assert.Equal(t, "1.234,500", f.Amount(1234.5))
	assert.Equal(t, "1,5", f.SmartQuantity(1.5))
	assert.Equal(t, "-", f.SmartPtr(nil, 2))
	assert.Equal(t, "-", f.NullText())

	day := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, "09.03.2024", f.Date(day))
	assert.Equal(t, "2024/03/09 14:05", f.DateTime(day), "empty layout keeps the default")

	// 负数位数被忽略
	g := format.New(format.WithAmountPlaces(-1))
	assert.Equal(t, "1.00", g.Amount(1))
}

func TestDates(t *testing.T) {
	day := time.Date(2024, 12, 31, 8, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024/12/31", format.Date(day))
	assert.Equal(t, "2024/12/31 08:30", format.DateTime(day))
	assert.Empty(t, format.Date(time.Time{}))
	assert.Empty(t, format.DateTime(time.Time{}))
}
