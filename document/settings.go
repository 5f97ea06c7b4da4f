package document

// PageSettings 描述页面几何，长度单位为毫米，字号单位为 pt。
type PageSettings struct {
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	Margins         Margin  `json:"margins"`
	FontName        string  `json:"fontName"`
	DefaultFontSize float64 `json:"defaultFontSize"`
}

// Margin 以毫米为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// ContentWidth is the printable width between the left and right margins.
func (s PageSettings) ContentWidth() float64 {
	return s.Width - s.Margins.Left - s.Margins.Right
}

// ContentHeight is the printable height between the top and bottom margins.
func (s PageSettings) ContentHeight() float64 {
	return s.Height - s.Margins.Top - s.Margins.Bottom
}

// DefaultPageSettings is A4 portrait with 10mm margins and a 10pt body font.
func DefaultPageSettings() PageSettings {
	return PageSettings{
		Width:           210,
		Height:          297,
		Margins:         Margin{Top: 10, Right: 10, Bottom: 10, Left: 10},
		FontName:        "Body",
		DefaultFontSize: 10,
	}
}

// Meta 保存输出文件的元信息。
type Meta struct {
	Title    string   `json:"title,omitempty"`
	Author   string   `json:"author,omitempty"`
	Subject  string   `json:"subject,omitempty"`
	Creator  string   `json:"creator,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// Option configures a Document created by New.
type Option func(*Document)

// WithPageSize sets the page width and height in mm.
func WithPageSize(width, height float64) Option {
	return func(d *Document) {
		d.Settings.Width = width
		d.Settings.Height = height
	}
}

// WithMargins sets the four margins in mm.
func WithMargins(top, right, bottom, left float64) Option {
	return func(d *Document) {
		d.Settings.Margins = Margin{Top: top, Right: right, Bottom: bottom, Left: left}
	}
}

// WithFont sets the default font name and size (pt).
func WithFont(name string, size float64) Option {
	return func(d *Document) {
		if name != "" {
			d.Settings.FontName = name
		}
		if size > 0 {
			d.Settings.DefaultFontSize = size
		}
	}
}

// WithSettings replaces the page settings wholesale.
func WithSettings(s PageSettings) Option {
	return func(d *Document) { d.Settings = s }
}

// WithMeta sets the document metadata.
func WithMeta(m Meta) Option {
	return func(d *Document) {
		m.Keywords = append([]string(nil), m.Keywords...)
		d.Meta = m
	}
}
