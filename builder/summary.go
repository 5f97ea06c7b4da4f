package builder

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/unicode/norm"

	"github.com/ByLCY/ledger/document"
	"github.com/ByLCY/ledger/format"
)

type stat struct {
	label string
	value string
}

// SummaryBuilder builds the closing block: remarks on the left, statistics
// on the right.
type SummaryBuilder struct {
	remarks    []document.Element
	stats      []stat
	ratio      float64
	leftTitle  string
	rightTitle string
	border     bool
	fmt        *format.Formatter
}

func NewSummaryBuilder() *SummaryBuilder {
	return &SummaryBuilder{ratio: document.DefaultLeftWidthRatio, fmt: format.Default()}
}

func (b *SummaryBuilder) UseFormatter(f *format.Formatter) *SummaryBuilder {
	if f != nil {
		b.fmt = f
	}
	return b
}

// SetRemarks replaces the remarks with plain text. Blank text clears them.
func (b *SummaryBuilder) SetRemarks(s string) *SummaryBuilder {
	b.remarks = b.remarks[:0]
	s = norm.NFC.String(strings.TrimSpace(s))
	if s != "" {
		b.remarks = append(b.remarks, document.NewText(s))
	}
	return b
}

// SetRemarksMarkdown replaces the remarks with the text of a markdown
// snippet. Headings and strong paragraphs become bold lines and list items
// are bulleted; other markup is dropped.
func (b *SummaryBuilder) SetRemarksMarkdown(md string) *SummaryBuilder {
	b.remarks = b.remarks[:0]
	src := []byte(norm.NFC.String(md))
	root := goldmark.New().Parser().Parse(text.NewReader(src))
	b.remarks = appendMarkdown(b.remarks, root, src, "")
	return b
}

func appendMarkdown(out []document.Element, node ast.Node, src []byte, bullet string) []document.Element {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Heading:
			if s := inlineText(n, src); s != "" {
				out = append(out, document.NewText(s, document.Bold()))
			}
		case *ast.Paragraph, *ast.TextBlock:
			s := inlineText(n, src)
			if s == "" {
				continue
			}
			var opts []document.TextOption
			if onlyStrong(n) {
				opts = append(opts, document.Bold())
			}
			out = append(out, document.NewText(bullet+s, opts...))
			bullet = strings.Repeat(" ", len([]rune(bullet)))
		case *ast.List:
			out = appendMarkdown(out, n, src, "")
		case *ast.ListItem:
			mark := "• "
			if list, ok := n.Parent().(*ast.List); ok && list.IsOrdered() {
				mark = itemNumber(list, n) + ". "
			}
			out = appendMarkdown(out, n, src, mark)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				if s := strings.TrimRight(string(seg.Value(src)), "\r\n"); s != "" {
					out = append(out, document.NewText(s))
				}
			}
		case *ast.ThematicBreak:
			out = append(out, document.Line{Style: document.LineDashed, Thickness: 0.2})
		default:
			out = appendMarkdown(out, n, src, bullet)
		}
	}
	return out
}

// inlineText concatenates the text segments below n.
func inlineText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		case *ast.CodeSpan:
			for g := t.FirstChild(); g != nil; g = g.NextSibling() {
				if tx, ok := g.(*ast.Text); ok {
					sb.Write(tx.Segment.Value(src))
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

func onlyStrong(n ast.Node) bool {
	c := n.FirstChild()
	if c == nil || c.NextSibling() != nil {
		return false
	}
	e, ok := c.(*ast.Emphasis)
	return ok && e.Level == 2
}

func itemNumber(list *ast.List, item ast.Node) string {
	i := list.Start
	for c := list.FirstChild(); c != nil && c != item; c = c.NextSibling() {
		i++
	}
	return strconv.Itoa(i)
}

// AddStat appends a pre-formatted statistic row.
func (b *SummaryBuilder) AddStat(label, value string) *SummaryBuilder {
	b.stats = append(b.stats, stat{label: label, value: value})
	return b
}

// AddAmount appends an amount using the smart rule (10 → "10", 10.5 → "10.50").
func (b *SummaryBuilder) AddAmount(label string, v float64) *SummaryBuilder {
	return b.AddStat(label, b.fmt.SmartAmount(v))
}

// AddQuantity appends a quantity using the smart rule.
func (b *SummaryBuilder) AddQuantity(label string, v float64) *SummaryBuilder {
	return b.AddStat(label, b.fmt.SmartQuantity(v))
}

// AddAmountPtr renders nil as the formatter's null text.
func (b *SummaryBuilder) AddAmountPtr(label string, v *float64) *SummaryBuilder {
	return b.AddStat(label, b.fmt.SmartAmountPtr(v))
}

// Ratio sets the left column's share of the width; values outside (0,1] fall back to 0.5.
func (b *SummaryBuilder) Ratio(r float64) *SummaryBuilder {
	b.ratio = r
	return b
}

func (b *SummaryBuilder) Titles(left, right string) *SummaryBuilder {
	b.leftTitle, b.rightTitle = left, right
	return b
}

func (b *SummaryBuilder) Border(on bool) *SummaryBuilder {
	b.border = on
	return b
}

// Build returns the summary as one TwoColumnSection.
func (b *SummaryBuilder) Build() []document.Element {
	right := make([]document.Element, 0, len(b.stats))
	for _, s := range b.stats {
		right = append(right, document.KeyValueRow{Pairs: []document.KeyValue{{Key: s.label, Value: s.value, Span: 1}}})
	}
	sec := document.NewTwoColumnSection(b.remarks, right, b.ratio)
	sec.LeftTitle, sec.RightTitle = b.leftTitle, b.rightTitle
	sec.LeftBorder, sec.RightBorder = b.border, b.border
	return []document.Element{sec}
}

func (b *SummaryBuilder) Clear() {
	b.remarks = b.remarks[:0]
	b.stats = b.stats[:0]
	b.ratio = document.DefaultLeftWidthRatio
	b.leftTitle, b.rightTitle = "", ""
	b.border = false
}
