// Package canvasrenderer paints a document.Document to PDF with
// github.com/tdewolff/canvas. Coordinates are millimetres from the top-left
// corner of the page; font sizes are points.
package canvasrenderer

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/ledger/document"
	"github.com/ByLCY/ledger/fonts"
	"github.com/ByLCY/ledger/renderer"
)

const tableBorderWidth = 0.2

// ErrNilDocument is returned when Render is called without a document.
var ErrNilDocument = errors.New("canvasrenderer: nil document")

// Renderer draws documents via github.com/tdewolff/canvas. It is safe for
// concurrent use.
type Renderer struct {
	// injected fonts by name
	fontBlobs map[string][]byte
	textColor color.Color

	fontMu   sync.Mutex
	families map[string]*canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	// Fonts maps a font name used by documents to its TTF/OTF data.
	Fonts map[string]Resource
	// TextColor is a hex colour such as "#1e1e1e".
	TextColor string
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a renderer that prints every font with the built-in faces.
func NewRenderer() *Renderer {
	r, _ := NewRendererWithOptions(Options{})
	return r
}

// NewRendererWithOptions creates a renderer with injected fonts.
func NewRendererWithOptions(opts Options) (*Renderer, error) {
	r := &Renderer{
		fontBlobs: map[string][]byte{},
		textColor: canvas.Hex("#1e1e1e"),
		families:  map[string]*canvas.FontFamily{},
	}
	if opts.TextColor != "" {
		r.textColor = canvas.Hex(opts.TextColor)
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, err := os.ReadFile(res.Path)
			if err != nil {
				return nil, fmt.Errorf("canvasrenderer: font %s: %w", name, err)
			}
			r.fontBlobs[name] = data
		}
	}
	return r, nil
}

// Render renders doc into a PDF byte slice.
func (r *Renderer) Render(doc *document.Document) ([]byte, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	s := doc.Settings
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("canvasrenderer: invalid page size %gx%g", s.Width, s.Height)
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, s.Width, s.Height, nil)
	writer.SetInfo(doc.Meta.Title, doc.Meta.Subject, strings.Join(doc.Meta.Keywords, ", "), doc.Meta.Author, doc.Meta.Creator)

	p := &painter{r: r, s: s, header: doc.Header(), writer: writer}
	if err := p.run(doc); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("canvasrenderer: write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// CountPages lays doc out without drawing and reports the number of physical pages.
func (r *Renderer) CountPages(doc *document.Document) (int, error) {
	if doc == nil {
		return 0, ErrNilDocument
	}
	p := &painter{r: r, s: doc.Settings, header: doc.Header(), dryRun: true}
	if err := p.run(doc); err != nil {
		return 0, err
	}
	return p.pages, nil
}

// painter walks the document regions and places elements top to bottom.
// The header is repeated at the top of each page, a PageBreak starts a new
// page and an element that does not fit below content already on the page
// moves to the next one.
type painter struct {
	r      *Renderer
	s      document.PageSettings
	header []document.Element
	writer *pdf.PDF
	dryRun bool

	c       *canvas.Canvas
	ctx     *canvas.Context
	y       float64
	bodyTop float64
	dirty   bool
	pages   int
}

func (p *painter) run(doc *document.Document) error {
	if err := p.startPage(); err != nil {
		return err
	}
	// 分页符延迟到下一个元素之前生效：连续或结尾的分页符不产生空白页
	pending := false
	for _, el := range doc.Elements() {
		if _, ok := el.(document.PageBreak); ok {
			pending = true
			continue
		}
		if pending && p.dirty {
			if err := p.breakPage(); err != nil {
				return err
			}
		}
		pending = false
		if err := p.place(el); err != nil {
			return err
		}
	}
	for _, el := range doc.Footer() {
		if _, ok := el.(document.PageBreak); ok {
			continue
		}
		if err := p.place(el); err != nil {
			return err
		}
	}
	p.finishPage()
	return nil
}

func (p *painter) left() float64         { return p.s.Margins.Left }
func (p *painter) contentWidth() float64 { return p.s.ContentWidth() }
func (p *painter) bottom() float64       { return p.s.Height - p.s.Margins.Bottom }

func (p *painter) startPage() error {
	if !p.dryRun {
		p.c = canvas.New(p.s.Width, p.s.Height)
		p.ctx = canvas.NewContext(p.c)
		p.ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点
	}
	p.y = p.s.Margins.Top
	for _, el := range p.header {
		h, err := p.measure(el, p.contentWidth())
		if err != nil {
			return err
		}
		if err := p.draw(el, p.left(), p.y, p.contentWidth()); err != nil {
			return err
		}
		p.y += h
	}
	p.bodyTop = p.y
	p.dirty = false
	return nil
}

func (p *painter) finishPage() {
	if !p.dryRun {
		if p.pages > 0 {
			p.writer.NewPage(p.s.Width, p.s.Height)
		}
		p.c.RenderTo(p.writer)
	}
	p.pages++
}

func (p *painter) breakPage() error {
	p.finishPage()
	return p.startPage()
}

func (p *painter) place(el document.Element) error {
	h, err := p.measure(el, p.contentWidth())
	if err != nil {
		return err
	}
	if p.dirty && p.y+h > p.bottom()+1e-9 {
		if err := p.breakPage(); err != nil {
			return err
		}
	}
	if err := p.draw(el, p.left(), p.y, p.contentWidth()); err != nil {
		return err
	}
	p.y += h
	p.dirty = true
	return nil
}

// face returns a font face; name "" uses the document font and size <= 0 the default size.
func (p *painter) face(name string, sizePt float64, bold, italic bool) (*canvas.FontFace, error) {
	if name == "" {
		name = p.s.FontName
	}
	if sizePt <= 0 {
		sizePt = p.s.DefaultFontSize
	}
	if sizePt <= 0 {
		sizePt = 10
	}
	return p.r.fontFace(name, sizePt, bold, italic)
}

func (r *Renderer) fontFace(name string, sizePt float64, bold, italic bool) (*canvas.FontFace, error) {
	family, err := r.family(name)
	if err != nil {
		return nil, err
	}
	style := canvas.FontRegular
	if bold {
		style = canvas.FontBold
	}
	if italic {
		style |= canvas.FontItalic
	}
	return family.Face(sizePt, r.textColor, style, canvas.FontNormal), nil
}

var fontStyles = []canvas.FontStyle{
	canvas.FontRegular,
	canvas.FontBold,
	canvas.FontItalic,
	canvas.FontBold | canvas.FontItalic,
}

// family loads a registered font under every style, or the built-in faces
// when name was not registered.
func (r *Renderer) family(name string) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	key := name
	data, registered := r.fontBlobs[name]
	if !registered {
		key = ""
	}
	if f, ok := r.families[key]; ok {
		return f, nil
	}

	var family *canvas.FontFamily
	if registered {
		family = canvas.NewFontFamily(name)
		for _, style := range fontStyles {
			if err := family.LoadFont(data, 0, style); err != nil {
				return nil, fmt.Errorf("canvasrenderer: load font %s: %w", name, err)
			}
		}
	} else {
		family = canvas.NewFontFamily("ledger-fallback")
		for _, style := range fontStyles {
			bold := style&canvas.FontBold != 0
			italic := style&canvas.FontItalic != 0
			blob, err := fonts.Load(fonts.StyleName(bold, italic))
			if err != nil {
				return nil, err
			}
			if err := family.LoadFont(blob, 0, style); err != nil {
				return nil, fmt.Errorf("canvasrenderer: load fallback font: %w", err)
			}
		}
	}
	r.families[key] = family
	return family, nil
}
