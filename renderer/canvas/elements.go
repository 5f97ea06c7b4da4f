package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/ledger/document"
)

const (
	cellPadding      = 1.5
	sectionPadding   = 2.0
	sectionGap       = 4.0
	barcodeTextPt    = 7.0
	signatureLeading = 6.0
)

var (
	headerFill  = canvas.Hex("#e8e8e8")
	borderColor = canvas.Hex("#606060")
	transparent = color.RGBA{0, 0, 0, 0}
)

func (p *painter) measure(el document.Element, width float64) (float64, error) {
	return p.lay(el, 0, 0, width, false)
}

func (p *painter) draw(el document.Element, x, y, width float64) error {
	_, err := p.lay(el, x, y, width, !p.dryRun)
	return err
}

// lay computes the height of el at the given width and paints it at (x, y)
// when paint is set. Measuring and painting share one code path so they
// cannot disagree.
func (p *painter) lay(el document.Element, x, y, width float64, paint bool) (float64, error) {
	switch e := el.(type) {
	case document.Text:
		return p.layText(e, x, y, width, paint)
	case document.Line:
		return p.layLine(e, x, y, width, paint), nil
	case document.Spacing:
		return max(e.Height, 0), nil
	case document.PageBreak:
		return 0, nil
	case document.Image:
		return p.layImage(e, x, y, width, paint)
	case document.Table:
		return p.layTable(e, x, y, width, paint)
	case document.SignatureSection:
		return p.laySignatures(e, x, y, width, paint)
	case document.KeyValueRow:
		return p.layKeyValues(e, x, y, width, paint)
	case document.ThreeColumnHeader:
		return p.layThreeColumns(e, x, y, width, paint)
	case document.ReportHeaderBlock:
		return p.layReportHeader(e, x, y, width, paint)
	case document.TwoColumnSection:
		return p.layTwoColumns(e, x, y, width, paint)
	case document.Barcode:
		return p.layBarcode(e, x, y, width, paint)
	}
	return 0, fmt.Errorf("canvasrenderer: unsupported element %T", el)
}

func textAnchor(align document.Alignment, x, width float64) (canvas.TextAlign, float64) {
	switch align {
	case document.AlignCenter:
		return canvas.Center, x + width/2
	case document.AlignRight:
		return canvas.Right, x + width
	default:
		return canvas.Left, x
	}
}

// drawLine writes one line of text whose top edge is at y.
func (p *painter) drawLine(face *canvas.FontFace, s string, align document.Alignment, x, y, width float64) {
	if s == "" {
		return
	}
	textAlign, anchorX := textAnchor(align, x, width)
	// 基线 = 行顶 + 上升部
	baseline := y + face.Metrics().Ascent
	p.ctx.DrawText(anchorX, baseline, canvas.NewTextLine(face, s, textAlign))
}

func (p *painter) layText(t document.Text, x, y, width float64, paint bool) (float64, error) {
	face, err := p.face(t.FontName, t.FontSize, t.Bold, t.Italic)
	if err != nil {
		return 0, err
	}
	lh := face.Metrics().LineHeight
	lines := wrapText(t.Text, width, face)
	if paint {
		for i, line := range lines {
			p.drawLine(face, line.Content, t.Align, x, y+float64(i)*lh, width)
		}
	}
	return float64(len(lines)) * lh, nil
}

func (p *painter) layLine(l document.Line, x, y, width float64, paint bool) float64 {
	thickness := l.Thickness
	if thickness <= 0 {
		thickness = 0.2
	}
	height := thickness + 2
	if l.Style == document.LineDouble {
		height += thickness * 2
	}
	if !paint {
		return height
	}
	p.ctx.SetFillColor(transparent)
	p.ctx.SetStrokeColor(borderColor)
	p.ctx.SetStrokeWidth(thickness)
	mid := y + 1 + thickness/2
	switch l.Style {
	case document.LineDashed:
		p.strokeSegments(x, mid, width, 3, 2)
	case document.LineDotted:
		p.strokeSegments(x, mid, width, 0.6, 1)
	case document.LineDouble:
		p.strokeSegments(x, mid, width, width, 0)
		p.strokeSegments(x, mid+thickness*2, width, width, 0)
	default:
		p.strokeSegments(x, mid, width, width, 0)
	}
	return height
}

// strokeSegments draws a horizontal line from x to x+width as on/off dashes.
func (p *painter) strokeSegments(x, y, width, on, off float64) {
	path := &canvas.Path{}
	for pos := 0.0; pos < width; pos += on + off {
		path.MoveTo(pos, 0)
		path.LineTo(min(pos+on, width), 0)
		if on+off <= 0 {
			break
		}
	}
	p.ctx.DrawPath(x, y, path)
}

func (p *painter) layImage(img document.Image, x, y, width float64, paint bool) (float64, error) {
	decoded, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return 0, fmt.Errorf("canvasrenderer: decode image: %w", err)
	}
	px, py := decoded.Bounds().Dx(), decoded.Bounds().Dy()
	if px <= 0 || py <= 0 {
		return 0, nil
	}
	aspect := float64(py) / float64(px)
	w := img.Width
	switch {
	case w > 0:
	case img.Height > 0:
		w = img.Height / aspect
	default:
		w = float64(px) / 4.0
	}
	w = min(w, width)
	h := w * aspect
	if paint {
		_, left := textAnchor(img.Align, x, width)
		switch img.Align {
		case document.AlignCenter:
			left -= w / 2
		case document.AlignRight:
			left -= w
		}
		p.ctx.DrawImage(left, y, decoded, canvas.DPMM(float64(px)/w))
	}
	return h, nil
}

// columnWidths gives fixed columns their width and shares what is left
// between the flexible ones. Fixed widths are scaled down when they do not fit.
func columnWidths(cols []document.Column, total float64) []float64 {
	out := make([]float64, len(cols))
	fixed, flexible := 0.0, 0
	for _, c := range cols {
		if c.Width > 0 {
			fixed += c.Width
		} else {
			flexible++
		}
	}
	scale, share := 1.0, 0.0
	if fixed > total && fixed > 0 {
		scale = total / fixed
	} else if flexible > 0 {
		share = (total - fixed) / float64(flexible)
	}
	for i, c := range cols {
		if c.Width > 0 {
			out[i] = c.Width * scale
		} else {
			out[i] = share
		}
	}
	return out
}

func (p *painter) layTable(t document.Table, x, y, width float64, paint bool) (float64, error) {
	rowH := t.RowHeight
	if rowH <= 0 {
		rowH = 7
	}
	headH := t.HeaderRowHeight
	if headH <= 0 {
		headH = rowH
	}
	height := headH + float64(len(t.Rows))*rowH
	if !paint || len(t.Columns) == 0 {
		return height, nil
	}

	bold, err := p.face("", 0, true, false)
	if err != nil {
		return 0, err
	}
	regular, err := p.face("", 0, false, false)
	if err != nil {
		return 0, err
	}
	widths := columnWidths(t.Columns, width)

	cx := x
	for i, col := range t.Columns {
		if t.ShowHeaderBackground || t.ShowBorder {
			fill := transparent
			if t.ShowHeaderBackground {
				fill = headerFill
			}
			p.ctx.SetFillColor(fill)
			p.ctx.SetStrokeColor(borderColor)
			p.ctx.SetStrokeWidth(tableBorderWidth)
			if !t.ShowBorder {
				p.ctx.SetStrokeColor(fill)
			}
			p.ctx.DrawPath(cx, y, canvas.Rectangle(widths[i], headH))
		}
		p.drawCell(bold, col.Header, col.Align, cx, y, widths[i], headH)
		cx += widths[i]
	}

	if t.ShowHeaderSeparator || t.ShowHeaderUnderline {
		p.ctx.SetFillColor(transparent)
		p.ctx.SetStrokeColor(borderColor)
		p.ctx.SetStrokeWidth(tableBorderWidth)
	}
	if t.ShowHeaderSeparator {
		sx := x
		for _, w := range widths[:len(widths)-1] {
			sx += w
			path := &canvas.Path{}
			path.MoveTo(0, 0)
			path.LineTo(0, headH)
			p.ctx.DrawPath(sx, y, path)
		}
	}
	if t.ShowHeaderUnderline {
		p.ctx.SetStrokeWidth(tableBorderWidth * 2)
		p.strokeSegments(x, y+headH, width, width, 0)
	}

	ry := y + headH
	for _, row := range t.Rows {
		cx := x
		for i, col := range t.Columns {
			if t.ShowBorder {
				p.ctx.SetFillColor(transparent)
				p.ctx.SetStrokeColor(borderColor)
				p.ctx.SetStrokeWidth(tableBorderWidth)
				p.ctx.DrawPath(cx, ry, canvas.Rectangle(widths[i], rowH))
			}
			if i < len(row) {
				p.drawCell(regular, row[i], col.Align, cx, ry, widths[i], rowH)
			}
			cx += widths[i]
		}
		ry += rowH
	}
	return height, nil
}

// drawCell writes a single truncated line vertically centred in the cell.
func (p *painter) drawCell(face *canvas.FontFace, s string, align document.Alignment, x, y, w, h float64) {
	inner := w - 2*cellPadding
	s = fitText(s, inner, face)
	top := y + (h-face.Metrics().LineHeight)/2
	p.drawLine(face, s, align, x+cellPadding, top, inner)
}

func (p *painter) laySignatures(s document.SignatureSection, x, y, width float64, paint bool) (float64, error) {
	if len(s.Labels) == 0 {
		return 0, nil
	}
	face, err := p.face("", 0, false, false)
	if err != nil {
		return 0, err
	}
	lh := face.Metrics().LineHeight
	height := signatureLeading + lh
	if !paint {
		return height, nil
	}
	slot := width / float64(len(s.Labels))
	lineWidth := s.LineWidth
	if lineWidth <= 0 {
		lineWidth = 40
	}
	top := y + signatureLeading
	p.ctx.SetFillColor(transparent)
	p.ctx.SetStrokeColor(borderColor)
	p.ctx.SetStrokeWidth(tableBorderWidth)
	for i, label := range s.Labels {
		sx := x + float64(i)*slot
		p.drawLine(face, label, document.AlignLeft, sx, top, slot)
		start := sx + face.TextWidth(label) + 2
		end := min(start+lineWidth, sx+slot-2)
		if end > start {
			p.strokeSegments(start, top+face.Metrics().Ascent+0.5, end-start, end-start, 0)
		}
	}
	return height, nil
}

func (p *painter) layKeyValues(row document.KeyValueRow, x, y, width float64, paint bool) (float64, error) {
	regular, err := p.face("", 0, false, false)
	if err != nil {
		return 0, err
	}
	height := regular.Metrics().LineHeight + cellPadding
	if !paint || len(row.Pairs) == 0 {
		return height, nil
	}
	bold, err := p.face("", 0, true, false)
	if err != nil {
		return 0, err
	}
	spans := 0
	for _, kv := range row.Pairs {
		spans += max(kv.Span, 1)
	}
	unit := width / float64(spans)
	cx := x
	for _, kv := range row.Pairs {
		w := unit * float64(max(kv.Span, 1))
		key := kv.Key
		if key != "" {
			key += ": "
		}
		keyWidth := regular.TextWidth(key)
		p.drawLine(regular, key, document.AlignLeft, cx, y, w)
		valueFace := regular
		if kv.Bold {
			valueFace = bold
		}
		value := fitText(kv.Value, w-keyWidth-cellPadding, valueFace)
		p.drawLine(valueFace, value, document.AlignLeft, cx+keyWidth, y, w-keyWidth)
		cx += w
	}
	return height, nil
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(s, "\r", ""), "\n")
}

func (p *painter) layThreeColumns(h document.ThreeColumnHeader, x, y, width float64, paint bool) (float64, error) {
	side, err := p.face("", h.SideFontSize, false, false)
	if err != nil {
		return 0, err
	}
	center, err := p.face("", h.CenterFontSize, h.CenterBold, false)
	if err != nil {
		return 0, err
	}
	left, mid, right := splitLines(h.Left), splitLines(h.Center), splitLines(h.Right)
	sideLH, centerLH := side.Metrics().LineHeight, center.Metrics().LineHeight
	height := max(float64(len(left))*sideLH, float64(len(mid))*centerLH, float64(len(right))*sideLH) + 2
	if !paint {
		return height, nil
	}
	third := width / 3
	for i, s := range left {
		p.drawLine(side, fitText(s, third, side), document.AlignLeft, x, y+float64(i)*sideLH, third)
	}
	for i, s := range mid {
		p.drawLine(center, fitText(s, third, center), document.AlignCenter, x+third, y+float64(i)*centerLH, third)
	}
	for i, s := range right {
		p.drawLine(side, fitText(s, third, side), document.AlignRight, x+2*third, y+float64(i)*sideLH, third)
	}
	return height, nil
}

func (p *painter) layReportHeader(b document.ReportHeaderBlock, x, y, width float64, paint bool) (float64, error) {
	centerHeight := 0.0
	for _, line := range b.CenterLines {
		face, err := p.face("", line.FontSize, line.Bold, false)
		if err != nil {
			return 0, err
		}
		lh := face.Metrics().LineHeight
		if paint {
			p.drawLine(face, fitText(line.Text, width, face), document.AlignCenter, x, y+centerHeight, width)
		}
		centerHeight += lh
	}
	right, err := p.face("", b.RightFontSize, false, false)
	if err != nil {
		return 0, err
	}
	rlh := right.Metrics().LineHeight
	if paint {
		for i, s := range b.RightLines {
			p.drawLine(right, s, document.AlignRight, x, y+float64(i)*rlh, width)
		}
	}
	return max(centerHeight, float64(len(b.RightLines))*rlh) + 2, nil
}

func (p *painter) layTwoColumns(s document.TwoColumnSection, x, y, width float64, paint bool) (float64, error) {
	ratio := s.LeftWidthRatio
	if ratio <= 0 || ratio > 1 {
		ratio = document.DefaultLeftWidthRatio
	}
	leftW, rightW := width, 0.0
	if ratio < 1 {
		leftW = (width - sectionGap) * ratio
		rightW = width - sectionGap - leftW
	}

	leftH, err := p.layColumn(s.LeftTitle, s.Left, s.LeftBorder, x, y, leftW, paint)
	if err != nil {
		return 0, err
	}
	rightH := 0.0
	if rightW > 0 {
		rightH, err = p.layColumn(s.RightTitle, s.Right, s.RightBorder, x+leftW+sectionGap, y, rightW, paint)
		if err != nil {
			return 0, err
		}
	}
	height := max(leftH, rightH)
	if paint {
		// 两侧边框等高
		if s.LeftBorder {
			p.strokeBox(x, y, leftW, height)
		}
		if s.RightBorder && rightW > 0 {
			p.strokeBox(x+leftW+sectionGap, y, rightW, height)
		}
	}
	return height, nil
}

func (p *painter) layColumn(title string, els []document.Element, border bool, x, y, width float64, paint bool) (float64, error) {
	pad := 0.0
	if border {
		pad = sectionPadding
	}
	inner := width - 2*pad
	cy := y + pad
	if title != "" {
		h, err := p.lay(document.Text{Text: title, Bold: true}, x+pad, cy, inner, paint)
		if err != nil {
			return 0, err
		}
		cy += h
	}
	for _, el := range els {
		h, err := p.lay(el, x+pad, cy, inner, paint)
		if err != nil {
			return 0, err
		}
		cy += h
	}
	return cy - y + pad, nil
}

func (p *painter) strokeBox(x, y, w, h float64) {
	p.ctx.SetFillColor(transparent)
	p.ctx.SetStrokeColor(borderColor)
	p.ctx.SetStrokeWidth(tableBorderWidth)
	p.ctx.DrawPath(x, y, canvas.Rectangle(w, h))
}

func (p *painter) layBarcode(b document.Barcode, x, y, width float64, paint bool) (float64, error) {
	w, h := barcodeSize(b)
	w = min(w, width)
	height := h + 1
	var face *canvas.FontFace
	if b.ShowText {
		var err error
		if face, err = p.face("", barcodeTextPt, false, false); err != nil {
			return 0, err
		}
		height += face.Metrics().LineHeight
	}
	if !paint {
		return height, nil
	}
	img, err := encodeBarcode(b)
	if err != nil {
		return 0, err
	}
	_, left := textAnchor(b.Align, x, width)
	switch b.Align {
	case document.AlignCenter:
		left -= w / 2
	case document.AlignRight:
		left -= w
	}
	p.ctx.DrawImage(left, y, img, canvas.DPMM(float64(img.Bounds().Dx())/w))
	if face != nil {
		p.drawLine(face, b.Payload, document.AlignCenter, left, y+h+0.5, w)
	}
	return height, nil
}
