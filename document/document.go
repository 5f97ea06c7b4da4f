// Package document is the renderer-agnostic composition model of a printable
// business document: a header region repeated on every page, a paginated body
// and a footer region printed once after the last body element.
//
// A Document is built by a single goroutine and handed to a renderer; it is
// not safe for concurrent mutation.
package document

// Document 由页眉、正文、页脚三段元素以及页面设置组成。
type Document struct {
	Name     string       `json:"name"`
	Settings PageSettings `json:"settings"`
	Meta     Meta         `json:"meta"`

	header []Element
	body   []Element
	footer []Element

	// target 指向当前追加区域（正文/页眉/页脚）。
	target *[]Element
}

// New creates an empty document with DefaultPageSettings adjusted by opts.
func New(name string, opts ...Option) *Document {
	d := &Document{
		Name:     name,
		Settings: DefaultPageSettings(),
	}
	d.target = &d.body
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Header returns a copy of the elements repeated at the top of every page.
func (d *Document) Header() []Element { return append([]Element(nil), d.header...) }

// Elements returns a copy of the paginated body.
func (d *Document) Elements() []Element { return append([]Element(nil), d.body...) }

// Footer returns a copy of the elements printed with the last page only.
func (d *Document) Footer() []Element { return append([]Element(nil), d.footer...) }

// Len reports the number of body elements.
func (d *Document) Len() int { return len(d.body) }

// Add appends el to the current region. Nil elements are ignored.
func (d *Document) Add(els ...Element) *Document {
	if d.target == nil {
		d.target = &d.body
	}
	for _, el := range els {
		if el == nil {
			continue
		}
		*d.target = append(*d.target, el)
	}
	return d
}

// AddText appends a Text element.
func (d *Document) AddText(text string, opts ...TextOption) *Document {
	return d.Add(NewText(text, opts...))
}

// AddLine appends a horizontal rule.
func (d *Document) AddLine(style LineStyle, thickness float64) *Document {
	return d.Add(Line{Style: style, Thickness: thickness})
}

// AddSpacing appends vertical space in mm.
func (d *Document) AddSpacing(height float64) *Document {
	return d.Add(Spacing{Height: height})
}

// AddPageBreak appends a forced page break.
func (d *Document) AddPageBreak() *Document {
	return d.Add(PageBreak{})
}

// AddImage appends an image; width/height of zero keep the natural size.
func (d *Document) AddImage(data []byte, width, height float64, align Alignment) *Document {
	return d.Add(NewImage(data, width, height, align))
}

// AddTable appends a deep copy of t.
func (d *Document) AddTable(t Table) *Document {
	return d.Add(t.Clone())
}

// AddSignatureSection appends one signature slot per label.
func (d *Document) AddSignatureSection(lineWidth float64, labels ...string) *Document {
	return d.Add(SignatureSection{Labels: append([]string(nil), labels...), LineWidth: lineWidth})
}

// AddKeyValueRow appends a row of label/value pairs.
func (d *Document) AddKeyValueRow(pairs ...KeyValue) *Document {
	return d.Add(KeyValueRow{Pairs: append([]KeyValue(nil), pairs...)})
}

// AddThreeColumnHeader appends a left/center/right masthead.
func (d *Document) AddThreeColumnHeader(h ThreeColumnHeader) *Document {
	return d.Add(h)
}

// AddReportHeaderBlock appends a centered title block with right annotations.
func (d *Document) AddReportHeaderBlock(b ReportHeaderBlock) *Document {
	b.CenterLines = append([]HeaderLine(nil), b.CenterLines...)
	b.RightLines = append([]string(nil), b.RightLines...)
	return d.Add(b)
}

// AddTwoColumnSection appends a side-by-side section.
func (d *Document) AddTwoColumnSection(s TwoColumnSection) *Document {
	return d.Add(NewTwoColumnSectionFrom(s))
}

// AddBarcode appends a barcode.
func (d *Document) AddBarcode(b Barcode) *Document {
	return d.Add(b)
}

// BeginHeader runs fn with the header region as the append target.
func (d *Document) BeginHeader(fn func(d *Document)) *Document {
	return d.within(&d.header, fn)
}

// BeginFooter runs fn with the footer region as the append target.
func (d *Document) BeginFooter(fn func(d *Document)) *Document {
	return d.within(&d.footer, fn)
}

func (d *Document) within(region *[]Element, fn func(d *Document)) *Document {
	if fn == nil {
		return d
	}
	prev := d.target
	d.target = region
	defer func() { d.target = prev }()
	fn(d)
	return d
}

// MergeFrom appends other's body elements to d. Header and footer of other are
// not merged: d keeps its own masthead and footer.
func (d *Document) MergeFrom(other *Document) *Document {
	if other == nil {
		return d
	}
	d.body = append(d.body, other.body...)
	return d
}

// Flatten returns a copy of d without header or footer regions: the header
// is inlined before every page of the body and the footer after the last body
// element. A flattened document can be merged into another one without losing
// its own masthead and closing block.
func (d *Document) Flatten() *Document {
	out := &Document{Name: d.Name, Settings: d.Settings, Meta: d.Meta}
	out.target = &out.body
	out.body = append(out.body, d.header...)
	for _, el := range d.body {
		out.body = append(out.body, el)
		if _, ok := el.(PageBreak); ok {
			out.body = append(out.body, d.header...)
		}
	}
	out.body = append(out.body, d.footer...)
	return out
}

// NewTwoColumnSectionFrom copies s, keeping titles and borders, and clamps its ratio.
func NewTwoColumnSectionFrom(s TwoColumnSection) TwoColumnSection {
	out := NewTwoColumnSection(s.Left, s.Right, s.LeftWidthRatio)
	out.LeftTitle = s.LeftTitle
	out.LeftBorder = s.LeftBorder
	out.RightTitle = s.RightTitle
	out.RightBorder = s.RightBorder
	return out
}
