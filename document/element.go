package document

import "strings"

// 该文件定义与渲染器无关的页面元素。Element 是封闭的和类型：
// 只有本包内的类型实现它，渲染器可以对 Kind 做穷举分支。

// Kind 标识元素种类。
type Kind int

const (
	KindText Kind = iota
	KindLine
	KindSpacing
	KindPageBreak
	KindImage
	KindTable
	KindSignatureSection
	KindKeyValueRow
	KindThreeColumnHeader
	KindReportHeaderBlock
	KindTwoColumnSection
	KindBarcode
)

var kindNames = [...]string{
	KindText:              "text",
	KindLine:              "line",
	KindSpacing:           "spacing",
	KindPageBreak:         "page-break",
	KindImage:             "image",
	KindTable:             "table",
	KindSignatureSection:  "signature-section",
	KindKeyValueRow:       "key-value-row",
	KindThreeColumnHeader: "three-column-header",
	KindReportHeaderBlock: "report-header-block",
	KindTwoColumnSection:  "two-column-section",
	KindBarcode:           "barcode",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Element 是文档树中的一个节点。
type Element interface {
	Kind() Kind
	element()
}

// Alignment 水平对齐方式。
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// ParseAlignment maps left/center/right and the start/end, L/C/R aliases.
// Unknown values fall back to AlignLeft.
func ParseAlignment(s string) Alignment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center", "middle", "c":
		return AlignCenter
	case "right", "end", "r":
		return AlignRight
	default:
		return AlignLeft
	}
}

// LineStyle 分隔线样式。
type LineStyle int

const (
	LineSolid LineStyle = iota
	LineDashed
	LineDotted
	LineDouble
)

func (s LineStyle) String() string {
	switch s {
	case LineDashed:
		return "dashed"
	case LineDotted:
		return "dotted"
	case LineDouble:
		return "double"
	default:
		return "solid"
	}
}

// Symbology 条码码制。
type Symbology int

const (
	Code128 Symbology = iota
	QR
	Code39
	EAN
)

func (s Symbology) String() string {
	switch s {
	case QR:
		return "qr"
	case Code39:
		return "code39"
	case EAN:
		return "ean"
	default:
		return "code128"
	}
}

// ParseSymbology maps "code128", "qr", "code39" or "ean" to a Symbology.
func ParseSymbology(s string) (Symbology, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "code128", "":
		return Code128, true
	case "qr", "qrcode":
		return QR, true
	case "code39":
		return Code39, true
	case "ean", "ean13", "ean8":
		return EAN, true
	}
	return Code128, false
}

// Text is a run of text. FontSize is in points; zero means the document default.
type Text struct {
	Text     string    `json:"text"`
	FontSize float64   `json:"fontSize,omitempty"`
	Bold     bool      `json:"bold,omitempty"`
	Italic   bool      `json:"italic,omitempty"`
	Align    Alignment `json:"align"`
	FontName string    `json:"fontName,omitempty"`
}

// TextOption customises a Text at construction time.
type TextOption func(*Text)

// Bold renders the text in a bold face.
func Bold() TextOption { return func(t *Text) { t.Bold = true } }

// Italic renders the text in an italic face.
func Italic() TextOption { return func(t *Text) { t.Italic = true } }

// Size sets the font size in points.
func Size(pt float64) TextOption { return func(t *Text) { t.FontSize = pt } }

// Aligned sets the horizontal alignment.
func Aligned(a Alignment) TextOption { return func(t *Text) { t.Align = a } }

// Font overrides the document font.
func Font(name string) TextOption { return func(t *Text) { t.FontName = name } }

// NewText builds a Text element.
func NewText(text string, opts ...TextOption) Text {
	t := Text{Text: text}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Line is a horizontal rule spanning the content width. Thickness is in mm.
type Line struct {
	Style     LineStyle `json:"style"`
	Thickness float64   `json:"thickness"`
}

// Spacing is vertical blank space in mm.
type Spacing struct {
	Height float64 `json:"height"`
}

// PageBreak forces the following elements onto a new page.
type PageBreak struct{}

// Image holds encoded image bytes (png/jpeg/gif). Zero Width/Height keep the natural size.
type Image struct {
	Data   []byte    `json:"-"`
	Width  float64   `json:"width,omitempty"`
	Height float64   `json:"height,omitempty"`
	Align  Alignment `json:"align"`
}

// NewImage copies data so later changes by the caller are not observed.
func NewImage(data []byte, width, height float64, align Alignment) Image {
	return Image{Data: append([]byte(nil), data...), Width: width, Height: height, Align: align}
}

// Column describes one table column. Width is in mm; zero shares the remaining width.
type Column struct {
	Header string    `json:"header"`
	Width  float64   `json:"width,omitempty"`
	Align  Alignment `json:"align"`
}

// Table is a header row plus pre-formatted body rows.
type Table struct {
	Columns              []Column   `json:"columns"`
	Rows                 [][]string `json:"rows"`
	ShowBorder           bool       `json:"showBorder"`
	ShowHeaderBackground bool       `json:"showHeaderBackground"`
	ShowHeaderSeparator  bool       `json:"showHeaderSeparator"`
	ShowHeaderUnderline  bool       `json:"showHeaderUnderline"`
	RowHeight            float64    `json:"rowHeight"`
	HeaderRowHeight      float64    `json:"headerRowHeight"`
}

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	out := t
	out.Columns = append([]Column(nil), t.Columns...)
	out.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// SignatureSection renders each label followed by a blank line of LineWidth mm.
type SignatureSection struct {
	Labels    []string `json:"labels"`
	LineWidth float64  `json:"lineWidth"`
}

// KeyValue is one label/value pair. Span counts grid columns (minimum 1).
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Span  int    `json:"span,omitempty"`
	Bold  bool   `json:"bold,omitempty"`
}

// KeyValueRow lays its pairs out side by side.
type KeyValueRow struct {
	Pairs []KeyValue `json:"pairs"`
}

// ThreeColumnHeader is a left/center/right masthead. Font sizes in points.
type ThreeColumnHeader struct {
	Left           string  `json:"left"`
	Center         string  `json:"center"`
	Right          string  `json:"right"`
	CenterFontSize float64 `json:"centerFontSize"`
	CenterBold     bool    `json:"centerBold"`
	SideFontSize   float64 `json:"sideFontSize"`
}

// HeaderLine is one centered line of a ReportHeaderBlock.
type HeaderLine struct {
	Text     string  `json:"text"`
	FontSize float64 `json:"fontSize"`
	Bold     bool    `json:"bold"`
}

// ReportHeaderBlock stacks centered title lines with right-aligned annotation lines.
type ReportHeaderBlock struct {
	CenterLines   []HeaderLine `json:"centerLines"`
	RightLines    []string     `json:"rightLines"`
	RightFontSize float64      `json:"rightFontSize"`
}

// TwoColumnSection places two element lists side by side.
// LeftWidthRatio is the share of the content width given to the left column, in (0,1].
type TwoColumnSection struct {
	Left           []Element `json:"-"`
	LeftTitle      string    `json:"leftTitle,omitempty"`
	LeftBorder     bool      `json:"leftBorder"`
	Right          []Element `json:"-"`
	RightTitle     string    `json:"rightTitle,omitempty"`
	RightBorder    bool      `json:"rightBorder"`
	LeftWidthRatio float64   `json:"leftWidthRatio"`
}

// DefaultLeftWidthRatio is used when a ratio outside (0,1] is supplied.
const DefaultLeftWidthRatio = 0.5

// NewTwoColumnSection copies both columns and clamps the ratio into (0,1].
func NewTwoColumnSection(left, right []Element, ratio float64) TwoColumnSection {
	if ratio <= 0 || ratio > 1 {
		ratio = DefaultLeftWidthRatio
	}
	return TwoColumnSection{
		Left:           append([]Element(nil), left...),
		Right:          append([]Element(nil), right...),
		LeftWidthRatio: ratio,
	}
}

// Barcode is encoded by the renderer. Width/Height in mm.
type Barcode struct {
	Payload   string    `json:"payload"`
	Symbology Symbology `json:"symbology"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	Align     Alignment `json:"align"`
	ShowText  bool      `json:"showText"`
}

func (Text) Kind() Kind              { return KindText }
func (Line) Kind() Kind              { return KindLine }
func (Spacing) Kind() Kind           { return KindSpacing }
func (PageBreak) Kind() Kind         { return KindPageBreak }
func (Image) Kind() Kind             { return KindImage }
func (Table) Kind() Kind             { return KindTable }
func (SignatureSection) Kind() Kind  { return KindSignatureSection }
func (KeyValueRow) Kind() Kind       { return KindKeyValueRow }
func (ThreeColumnHeader) Kind() Kind { return KindThreeColumnHeader }
func (ReportHeaderBlock) Kind() Kind { return KindReportHeaderBlock }
func (TwoColumnSection) Kind() Kind  { return KindTwoColumnSection }
func (Barcode) Kind() Kind           { return KindBarcode }

func (Text) element()              {}
func (Line) element()              {}
func (Spacing) element()           {}
func (PageBreak) element()         {}
func (Image) element()             {}
func (Table) element()             {}
func (SignatureSection) element()  {}
func (KeyValueRow) element()       {}
func (ThreeColumnHeader) element() {}
func (ReportHeaderBlock) element() {}
func (TwoColumnSection) element()  {}
func (Barcode) element()           {}
