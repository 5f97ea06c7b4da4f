package canvasrenderer

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"unicode/utf8"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/ByLCY/ledger/document"
)

// runeMeasurer 每个字符 1mm，便于断言换行位置。
type runeMeasurer struct{}

func (runeMeasurer) TextWidth(s string) float64 { return float64(utf8.RuneCountInString(s)) }

func contents(lines []textLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Content
	}
	return out
}

func TestWrapTextGreedy(t *testing.T) {
	cases := []struct {
		in    string
		limit float64
		want  []string
	}{
		{"hello world again", 11, []string{"hello world", "again"}},
		{"hello world", 5, []string{"hello", "world"}},
		{"abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"foo\n\nbar", 100, []string{"foo", "", "bar"}},
		// 恰好等宽后紧跟换行，不应产生空行
		{"abcde\nxyz", 5, []string{"abcde", "xyz"}},
		{"  leading", 20, []string{"leading"}},
		{"", 10, []string{""}},
		{"no limit at all", 0, []string{"no limit at all"}},
	}
	for _, tc := range cases {
		got := contents(wrapText(tc.in, tc.limit, runeMeasurer{}))
		if strings.Join(got, "|") != strings.Join(tc.want, "|") {
			t.Fatalf("wrapText(%q, %v) = %q，期望 %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestWrapTextWidthLimit(t *testing.T) {
	lines := wrapText("the quick brown fox jumps over the lazy dog", 9, runeMeasurer{})
	for _, l := range lines {
		if l.Width > 9 {
			t.Fatalf("line %q exceeds limit: %v", l.Content, l.Width)
		}
		if l.Width != float64(utf8.RuneCountInString(l.Content)) {
			t.Fatalf("line %q width %v does not match trimmed content", l.Content, l.Width)
		}
	}
}

func TestFitText(t *testing.T) {
	m := runeMeasurer{}
	if got := fitText("short", 10, m); got != "short" {
		t.Fatalf("fitText kept = %q", got)
	}
	if got := fitText("abcdefgh", 5, m); got != "abcd…" {
		t.Fatalf("fitText truncated = %q", got)
	}
	if got := fitText("abc", 0.5, m); got != "" {
		t.Fatalf("nothing fits, got %q", got)
	}
}

func TestColumnWidths(t *testing.T) {
	cols := []document.Column{{Width: 10}, {}, {Width: 20}, {}}
	got := columnWidths(cols, 100)
	want := []float64{10, 35, 20, 35}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("columnWidths = %v, want %v", got, want)
		}
	}

	got = columnWidths([]document.Column{{Width: 100}, {Width: 100}, {}}, 100)
	if got[0] != 50 || got[1] != 50 || got[2] != 0 {
		t.Fatalf("oversized fixed columns should scale: %v", got)
	}
}

func TestEncodeBarcode(t *testing.T) {
	cases := []document.Barcode{
		{Payload: "PO-2024-0001", Symbology: document.Code128, Width: 40, Height: 10},
		{Payload: "PO-2024-0001", Symbology: document.QR, Width: 18, Height: 18},
		{Payload: "LEDGER-1", Symbology: document.Code39},
		{Payload: "5901234123457", Symbology: document.EAN, Width: 30, Height: 12},
	}
	for _, b := range cases {
		img, err := encodeBarcode(b)
		if err != nil {
			t.Fatalf("encode %s: %v", b.Symbology, err)
		}
		w, h := barcodeSize(b)
		if img.Bounds().Dx() < int(w*barcodeDPMM) || img.Bounds().Dy() < int(h*barcodeDPMM) {
			t.Fatalf("%s image %v smaller than %vx%vmm", b.Symbology, img.Bounds(), w, h)
		}
	}

	if _, err := encodeBarcode(document.Barcode{}); err == nil {
		t.Fatalf("empty payload should fail")
	}
	if _, err := encodeBarcode(document.Barcode{Payload: "12", Symbology: document.EAN}); err == nil {
		t.Fatalf("invalid EAN should fail")
	}
}

func TestBarcodeSize(t *testing.T) {
	cases := []struct {
		b    document.Barcode
		w, h float64
	}{
		{document.Barcode{Symbology: document.QR, Width: 30, Height: 18}, 18, 18},
		{document.Barcode{Symbology: document.QR, Height: 12}, 12, 12},
		{document.Barcode{Symbology: document.QR}, 20, 20},
		{document.Barcode{Symbology: document.Code128}, 40, 10},
		{document.Barcode{Symbology: document.Code39, Width: 50}, 50, 10},
	}
	for _, tc := range cases {
		w, h := barcodeSize(tc.b)
		if w != tc.w || h != tc.h {
			t.Fatalf("barcodeSize(%+v) = %v,%v，期望 %v,%v", tc.b, w, h, tc.w, tc.h)
		}
	}
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		img.Set(x, 10, color.Black)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func sampleDocument(t *testing.T) *document.Document {
	doc := document.New("sample", document.WithMeta(document.Meta{Title: "Sample", Keywords: []string{"a", "b"}}))
	doc.BeginHeader(func(d *document.Document) {
		d.AddImage(pngBytes(t), 20, 0, document.AlignLeft)
		d.AddReportHeaderBlock(document.ReportHeaderBlock{
			CenterLines:   []document.HeaderLine{{Text: "ACME", FontSize: 16, Bold: true}, {Text: "Purchase Order", FontSize: 12}},
			RightLines:    []string{"No. 1", "2024/05/06"},
			RightFontSize: 9,
		})
		d.AddBarcode(document.Barcode{Payload: "PO-1", Width: 40, Height: 8, Align: document.AlignRight, ShowText: true})
	})
	doc.AddThreeColumnHeader(document.ThreeColumnHeader{Left: "left\nside", Center: "Title", Right: "p. 1", CenterBold: true})
	doc.AddKeyValueRow(document.KeyValue{Key: "Supplier", Value: "Widgets Ltd", Span: 2, Bold: true}, document.KeyValue{Key: "Date", Value: "2024/05/06"})
	doc.AddTable(document.Table{
		Columns:              []document.Column{{Header: "#", Width: 10, Align: document.AlignCenter}, {Header: "Item"}, {Header: "Amount", Width: 30, Align: document.AlignRight}},
		Rows:                 [][]string{{"1", "Bolts", "12.00"}, {"2", strings.Repeat("very long name ", 20), "3.50"}},
		ShowBorder:           true,
		ShowHeaderBackground: true,
		ShowHeaderSeparator:  true,
		ShowHeaderUnderline:  true,
	})
	doc.AddLine(document.LineDashed, 0.3)
	doc.AddLine(document.LineDotted, 0.3)
	doc.AddLine(document.LineDouble, 0.3)
	doc.AddPageBreak()
	doc.AddText("second page", document.Italic(), document.Aligned(document.AlignCenter))
	doc.BeginFooter(func(d *document.Document) {
		d.AddTwoColumnSection(document.TwoColumnSection{
			Left:           []document.Element{document.NewText("remarks")},
			LeftTitle:      "Remarks",
			LeftBorder:     true,
			Right:          []document.Element{document.KeyValueRow{Pairs: []document.KeyValue{{Key: "Total", Value: "15.50"}}}},
			RightTitle:     "Summary",
			RightBorder:    true,
			LeftWidthRatio: 0.6,
		})
		d.AddSpacing(4)
		d.AddSignatureSection(40, "Prepared", "Approved")
		d.AddBarcode(document.Barcode{Payload: "PO-1", Symbology: document.QR, Width: 18, Height: 18})
	})
	return doc
}

func TestRenderProducesPDF(t *testing.T) {
	doc := sampleDocument(t)
	out, err := NewRenderer().Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", out[:min(len(out), 16)])
	}

	pages, err := NewRenderer().CountPages(doc)
	if err != nil {
		t.Fatalf("count pages: %v", err)
	}
	if pages != 2 {
		t.Fatalf("expected 2 pages, got %d", pages)
	}
}

func TestRenderOverflowStartsNewPage(t *testing.T) {
	doc := document.New("long")
	for i := 0; i < 200; i++ {
		doc.AddText("row")
	}
	// 连续分页符不应产生空白页
	doc.AddPageBreak().AddPageBreak()
	pages, err := NewRenderer().CountPages(doc)
	if err != nil {
		t.Fatalf("count pages: %v", err)
	}
	if pages < 2 {
		t.Fatalf("200 lines should not fit on one A4 page, got %d", pages)
	}

	single, err := NewRenderer().CountPages(document.New("empty"))
	if err != nil || single != 1 {
		t.Fatalf("empty document should be one page, got %d, %v", single, err)
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := NewRenderer().Render(nil); !errors.Is(err, ErrNilDocument) {
		t.Fatalf("expected ErrNilDocument, got %v", err)
	}
	bad := document.New("bad", document.WithPageSize(0, 0))
	if _, err := NewRenderer().Render(bad); err == nil {
		t.Fatalf("zero page size should fail")
	}
	broken := document.New("img")
	broken.AddImage([]byte("not an image"), 10, 10, document.AlignLeft)
	if _, err := NewRenderer().Render(broken); err == nil {
		t.Fatalf("undecodable image should fail")
	}
}

func TestRegisteredFonts(t *testing.T) {
	r, err := NewRendererWithOptions(Options{
		Fonts:     map[string]Resource{"Body": {Bytes: goregular.TTF}},
		TextColor: "#000000",
	})
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(sampleDocument(t))
	if err != nil || !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("render with registered font: %v", err)
	}

	if _, err := NewRendererWithOptions(Options{Fonts: map[string]Resource{"Body": {Path: "/does/not/exist.ttf"}}}); err == nil {
		t.Fatalf("missing font file should fail")
	}
}
