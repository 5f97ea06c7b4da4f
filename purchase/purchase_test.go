package purchase_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/ledger/document"
	"github.com/ByLCY/ledger/layout"
	"github.com/ByLCY/ledger/purchase"
	"github.com/ByLCY/ledger/report"
)

func sampleOrder(lines int) purchase.Order {
	o := purchase.Order{
		Number:       "PO-2024-0001",
		Supplier:     "ACME Supplies",
		Buyer:        "Li Wei",
		Warehouse:    "WH-1",
		OrderDate:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DeliveryDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Currency:     "CNY",
		Remarks:      "Deliver to **dock 3**",
	}
	for i := 0; i < lines; i++ {
		o.Lines = append(o.Lines, purchase.Line{
			SKU: fmt.Sprintf("SKU-%03d", i+1), Name: "Bolt", Unit: "pcs",
			Quantity: 10, UnitPrice: 1.5, Amount: 15,
		})
		o.TotalQuantity += 10
		o.TotalAmount += 15
	}
	return o
}

func TestLoadSingleAndArray(t *testing.T) {
	one, err := purchase.Load(strings.NewReader(`{"number":"PO-1","lines":[{"sku":"A","quantity":2,"remarks":"fragile"}]}`))
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "PO-1", one[0].Number)
	assert.Equal(t, "fragile", one[0].Lines[0].Remarks())
	assert.Zero(t, one[0].Lines[0].ExtraHeightFactor())

	many, err := purchase.Load(strings.NewReader(` [{"number":"PO-1"},{"number":"PO-2","orderDate":"2024-01-02T00:00:00Z"}]`))
	require.NoError(t, err)
	require.Len(t, many, 2)
	assert.Equal(t, 2024, many[1].OrderDate.Year())

	for _, in := range []string{"", "  ", "[]"} {
		_, err = purchase.Load(strings.NewReader(in))
		assert.ErrorIs(t, err, purchase.ErrNoOrders, "input %q", in)
	}
	_, err = purchase.Load(strings.NewReader(`{"number":`))
	assert.Error(t, err)
}

func TestComposeOrder(t *testing.T) {
	b := layout.A4Portrait()
	o := sampleOrder(40)
	doc, err := report.Generate(report.New(), purchase.Job(o, b, purchase.WithCompany("ACME Trading"), purchase.WithLogo([]byte{0x89, 'P', 'N', 'G'})))
	require.NoError(t, err)

	assert.Equal(t, "PO-2024-0001", doc.Name)
	assert.Equal(t, "Purchase Order PO-2024-0001", doc.Meta.Title)
	assert.Equal(t, 297.0, doc.Settings.Height)

	var kinds []document.Kind
	for _, el := range doc.Header() {
		kinds = append(kinds, el.Kind())
	}
	assert.Equal(t, []document.Kind{document.KindImage, document.KindReportHeaderBlock, document.KindLine, document.KindBarcode}, kinds)
	bc := doc.Header()[3].(document.Barcode)
	assert.Equal(t, "PO-2024-0001", bc.Payload)
	assert.True(t, bc.ShowText)

	// 28 rows fit on a non-last page, 23 on the last: 40 rows → 28 + 12
	var tables []document.Table
	for _, el := range doc.Elements() {
		if tbl, ok := el.(document.Table); ok {
			tables = append(tables, tbl)
		}
	}
	require.Len(t, tables, 2)
	assert.Len(t, tables[0].Rows, 28)
	assert.Len(t, tables[1].Rows, 12)
	assert.Equal(t, "29", tables[1].Rows[0][0])
	assert.Equal(t, "SKU-029", tables[1].Rows[0][1])
	assert.Equal(t, b.RowBase, tables[0].RowHeight)
	assert.Equal(t, "1.50", tables[0].Rows[0][6])

	header := doc.Elements()[0].(document.ThreeColumnHeader)
	assert.Equal(t, "Page 1 of 2", header.Right)
	assert.Contains(t, header.Left, "Currency: CNY")

	footer := doc.Footer()
	require.Len(t, footer, 3)
	sum := footer[0].(document.TwoColumnSection)
	assert.Equal(t, "Deliver to dock 3", sum.Left[0].(document.Text).Text)
	var stats []string
	for _, el := range sum.Right {
		kv := el.(document.KeyValueRow).Pairs[0]
		stats = append(stats, kv.Key+"="+kv.Value)
	}
	assert.Equal(t, []string{"Lines=40", "Total Qty=400", "Total Amount=600"}, stats)
	assert.Equal(t, []string{"Prepared by", "Approved by", "Supplier"}, footer[2].(document.SignatureSection).Labels)
}

func TestComposeEmptyOrder(t *testing.T) {
	o := sampleOrder(0)
	o.Barcode = "https://example.com/po/1"
	o.Warehouse = ""
	doc, err := report.Generate(nil, purchase.Job(o, layout.ContinuousForm(), purchase.WithSymbology(document.QR), purchase.WithSigners()))
	require.NoError(t, err)

	bc := doc.Header()[len(doc.Header())-1].(document.Barcode)
	assert.Equal(t, document.QR, bc.Symbology)
	assert.False(t, bc.ShowText)

	for _, el := range doc.Elements() {
		assert.NotEqual(t, document.KindPageBreak, el.Kind())
		if row, ok := el.(document.KeyValueRow); ok {
			for _, kv := range row.Pairs {
				assert.NotEqual(t, "Warehouse", kv.Key)
			}
		}
	}
	assert.Len(t, doc.Footer(), 2, "no signers means no signature section")
}

func TestBatchOfOrders(t *testing.T) {
	orders := []purchase.Order{sampleOrder(3), sampleOrder(30), sampleOrder(0)}
	orders[1].Number = "PO-2"
	orders[2].Number = "PO-3"

	doc, err := report.GenerateBatch(context.Background(), report.New(), "batch", purchase.Jobs(orders, layout.A4Portrait()), 2)
	require.NoError(t, err)

	var numbers []string
	for _, el := range doc.Elements() {
		if blk, ok := el.(document.ReportHeaderBlock); ok {
			numbers = append(numbers, blk.RightLines[0])
		}
	}
	assert.Equal(t, []string{"No. PO-2024-0001", "No. PO-2", "No. PO-2", "No. PO-3"}, numbers)
}
