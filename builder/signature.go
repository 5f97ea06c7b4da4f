package builder

import "github.com/ByLCY/ledger/document"

// DefaultSignatureLineWidth is the blank line length after each label, in mm.
const DefaultSignatureLineWidth = 40

type SignatureBuilder struct {
	labels    []string
	lineWidth float64
}

func NewSignatureBuilder() *SignatureBuilder {
	return &SignatureBuilder{lineWidth: DefaultSignatureLineWidth}
}

func (b *SignatureBuilder) Add(labels ...string) *SignatureBuilder {
	b.labels = append(b.labels, labels...)
	return b
}

func (b *SignatureBuilder) LineWidth(mm float64) *SignatureBuilder {
	if mm > 0 {
		b.lineWidth = mm
	}
	return b
}

// Build returns one SignatureSection, or nothing when no labels were added.
func (b *SignatureBuilder) Build() []document.Element {
	if len(b.labels) == 0 {
		return nil
	}
	return []document.Element{document.SignatureSection{
		Labels:    append([]string(nil), b.labels...),
		LineWidth: b.lineWidth,
	}}
}

func (b *SignatureBuilder) Clear() {
	b.labels = b.labels[:0]
	b.lineWidth = DefaultSignatureLineWidth
}
