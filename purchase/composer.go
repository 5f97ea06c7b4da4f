package purchase

import (
	"strconv"

	"github.com/ByLCY/ledger/builder"
	"github.com/ByLCY/ledger/document"
	"github.com/ByLCY/ledger/format"
	"github.com/ByLCY/ledger/layout"
	"github.com/ByLCY/ledger/report"
)

// Composer lays out one Order. It owns its builders, so use one Composer per
// document build.
type Composer struct {
	order     Order
	company   string
	title     string
	logo      []byte
	symbology document.Symbology
	rowHeight float64
	signers   []string
	fmt       *format.Formatter

	masthead  *builder.ReportHeaderBuilder
	header    *builder.HeaderBuilder
	info      *builder.InfoSectionBuilder
	table     *builder.TableBuilder[Line]
	summary   *builder.SummaryBuilder
	signature *builder.SignatureBuilder
}

var _ report.Composer[Line] = (*Composer)(nil)

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

func WithCompany(name string) ComposerOption {
	return func(c *Composer) { c.company = name }
}

func WithTitle(title string) ComposerOption {
	return func(c *Composer) {
		if title != "" {
			c.title = title
		}
	}
}

// WithLogo prints an encoded image at the top left of the masthead.
func WithLogo(data []byte) ComposerOption {
	return func(c *Composer) { c.logo = data }
}

func WithSymbology(s document.Symbology) ComposerOption {
	return func(c *Composer) { c.symbology = s }
}

// WithRowHeight sets the printed row height, normally the budget's RowBase.
func WithRowHeight(mm float64) ComposerOption {
	return func(c *Composer) {
		if mm > 0 {
			c.rowHeight = mm
		}
	}
}

func WithSigners(labels ...string) ComposerOption {
	return func(c *Composer) { c.signers = labels }
}

func WithFormatter(f *format.Formatter) ComposerOption {
	return func(c *Composer) {
		if f != nil {
			c.fmt = f
		}
	}
}

func NewComposer(o Order, opts ...ComposerOption) *Composer {
	c := &Composer{
		order:     o,
		title:     "Purchase Order",
		symbology: document.Code128,
		rowHeight: builder.DefaultRowHeight,
		signers:   []string{"Prepared by", "Approved by", "Supplier"},
		fmt:       format.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.masthead = builder.NewReportHeaderBuilder()
	c.header = builder.NewHeaderBuilder()
	c.info = builder.NewInfoSectionBuilder(3).UseFormatter(c.fmt)
	c.summary = builder.NewSummaryBuilder().UseFormatter(c.fmt)
	c.signature = builder.NewSignatureBuilder()
	c.table = builder.NewTableBuilder[Line]().
		UseFormatter(c.fmt).
		IndexColumn("No.", 10).
		TextColumn("SKU", 25, func(l Line) string { return l.SKU }).
		TextColumn("Name", 0, func(l Line) string { return l.Name }).
		TextColumn("Spec", 30, func(l Line) string { return l.Spec }).
		Column("Unit", 12, document.AlignCenter, func(l Line, _ int) string { return l.Unit }).
		QuantityColumn("Qty", 18, func(l Line) float64 { return l.Quantity }).
		AmountColumn("Unit Price", 22, func(l Line) float64 { return l.UnitPrice }).
		AmountColumn("Amount", 25, func(l Line) float64 { return l.Amount }).
		TextColumn("Remarks", 30, func(l Line) string { return l.Note }).
		RowHeights(c.rowHeight, 0)
	return c
}

func (c *Composer) Masthead(doc *document.Document) {
	if len(c.logo) > 0 {
		doc.AddImage(c.logo, 0, 12, document.AlignLeft)
	}
	c.masthead.Clear()
	if c.company != "" {
		c.masthead.AddCenterLine(c.company, builder.DefaultTitleFontSize, true)
	}
	c.masthead.AddCenterLine(c.title, 12, c.company == "").
		AddRightLine("No. " + c.order.Number).
		Separator(document.LineSolid, 0.3)
	c.masthead.ApplyTo(doc)

	payload := c.order.Barcode
	if payload == "" {
		payload = c.order.Number
	}
	if payload == "" {
		return
	}
	bc := document.Barcode{
		Payload:   payload,
		Symbology: c.symbology,
		Width:     45,
		Height:    8,
		Align:     document.AlignRight,
		ShowText:  true,
	}
	if c.symbology == document.QR {
		bc.Width, bc.Height, bc.ShowText = 18, 18, false
	}
	doc.AddBarcode(bc)
}

func (c *Composer) PageHeader(doc *document.Document, pc report.PageContext) {
	c.header.Clear()
	c.header.
		AddInfo("Order", c.order.Number).
		AddInfo("Currency", c.order.Currency).
		SetPageInfoTemplate("Page ${number} of ${total}", pc)
	doc.Add(c.header.Build()...)

	c.info.Clear()
	c.info.
		AddFieldSpan("Supplier", c.order.Supplier, 2, builder.FieldStyle{Bold: true}).
		AddDate("Order Date", c.order.OrderDate).
		AddField("Buyer", c.order.Buyer).
		AddFieldIf(c.order.Warehouse != "", "Warehouse", c.order.Warehouse).
		AddFieldIf(!c.order.DeliveryDate.IsZero(), "Delivery", c.fmt.Date(c.order.DeliveryDate))
	doc.Add(c.info.Build()...)
}

func (c *Composer) Rows(doc *document.Document, items []Line, pc report.PageContext) {
	doc.AddTable(c.table.Build(items, pc.StartRow))
	if !pc.IsLast {
		doc.AddText("continued on page "+strconv.Itoa(pc.Number+1), document.Size(8), document.Aligned(document.AlignRight), document.Italic())
	}
}

func (c *Composer) Closing(doc *document.Document) {
	c.summary.Clear()
	c.summary.
		SetRemarksMarkdown(c.order.Remarks).
		Titles("Remarks", "Totals").
		Ratio(0.6).
		AddStat("Lines", strconv.Itoa(len(c.order.Lines))).
		AddQuantity("Total Qty", c.order.TotalQuantity).
		AddAmount("Total Amount", c.order.TotalAmount)
	doc.Add(c.summary.Build()...)
	doc.AddSpacing(4)

	c.signature.Clear()
	doc.Add(c.signature.Add(c.signers...).Build()...)
}

// Job wraps an order into a report job on budget b. The composer prints rows
// at the budget's RowBase height unless opts override it.
func Job(o Order, b layout.Budget, opts ...ComposerOption) report.Job[Line] {
	opts = append([]ComposerOption{WithRowHeight(b.RowBase)}, opts...)
	return report.Job[Line]{
		Name:     o.Number,
		Budget:   b,
		Items:    o.Lines,
		Composer: NewComposer(o, opts...),
		Options: []document.Option{document.WithMeta(document.Meta{
			Title:   "Purchase Order " + o.Number,
			Subject: o.Supplier,
			Creator: "ledger",
		})},
	}
}

// Jobs builds one job per order.
func Jobs(orders []Order, b layout.Budget, opts ...ComposerOption) []report.Job[Line] {
	jobs := make([]report.Job[Line], 0, len(orders))
	for _, o := range orders {
		jobs = append(jobs, Job(o, b, opts...))
	}
	return jobs
}
