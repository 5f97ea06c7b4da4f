// Package report drives a document build: it validates the page budget,
// paginates the detail rows and lets a Composer fill each region of the
// document.
package report

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ByLCY/ledger/document"
	"github.com/ByLCY/ledger/layout"
)

var (
	// ErrNoComposer is returned for a job without a Composer.
	ErrNoComposer = errors.New("report: job has no composer")
	// ErrNoPages is returned by GenerateBatch when there is nothing to print.
	ErrNoPages = errors.New("report: no documents to generate")
)

// PageContext tells a Composer which page it is filling.
type PageContext struct {
	Number   int  `json:"number"`
	Total    int  `json:"total"`
	StartRow int  `json:"startRow"`
	IsLast   bool `json:"isLast"`
	// FooterOnly marks the single page of an empty input.
	FooterOnly bool `json:"footerOnly"`
}

// Composer fills a document for one kind of business record.
//
// Masthead writes into the header region, repeated on every page. PageHeader
// and Rows are called once per page, in order, with the page's slice of
// items; Rows should number them from pc.StartRow. Closing writes into the
// footer region printed after the last page.
type Composer[T layout.PageEligible] interface {
	Masthead(doc *document.Document)
	PageHeader(doc *document.Document, pc PageContext)
	Rows(doc *document.Document, items []T, pc PageContext)
	Closing(doc *document.Document)
}

// Job is one document to generate.
type Job[T layout.PageEligible] struct {
	Name     string
	Budget   layout.Budget
	Items    []T
	Composer Composer[T]
	// Options are applied after the page size taken from Budget.
	Options []document.Option
}

// Generator holds the settings shared by every document build.
// It is safe for concurrent use.
type Generator struct {
	logger    *slog.Logger
	estimator layout.HeightEstimator
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger for debug records. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithEstimator replaces the fixed row height estimator.
func WithEstimator(e layout.HeightEstimator) Option {
	return func(g *Generator) { g.estimator = e }
}

func New(opts ...Option) *Generator {
	g := &Generator{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds one document for job. The budget is validated first and
// an invalid budget fails the build before anything is composed.
func Generate[T layout.PageEligible](g *Generator, job Job[T]) (*document.Document, error) {
	if g == nil {
		g = New()
	}
	if job.Composer == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoComposer, job.Name)
	}
	if err := job.Budget.Validate(); err != nil {
		return nil, fmt.Errorf("report: %s: %w", job.Name, err)
	}

	pages := layout.Paginator[T]{Estimator: g.estimator}.Split(job.Items, job.Budget)
	g.logger.Debug("paginated",
		slog.String("document", job.Name),
		slog.String("budget", job.Budget.Name),
		slog.Int("rows", len(job.Items)),
		slog.Int("pages", len(pages)),
	)

	opts := append([]document.Option{document.WithPageSize(job.Budget.PageWidth, job.Budget.PageHeight)}, job.Options...)
	doc := document.New(job.Name, opts...)
	c := job.Composer

	doc.BeginHeader(c.Masthead)
	for i, p := range pages {
		if i > 0 {
			doc.AddPageBreak()
		}
		pc := PageContext{
			Number:     p.Number,
			Total:      len(pages),
			StartRow:   p.StartRow,
			IsLast:     p.IsLast,
			FooterOnly: p.IsFooterOnly(),
		}
		c.PageHeader(doc, pc)
		c.Rows(doc, p.Items, pc)
		g.logger.Debug("page composed",
			slog.String("document", job.Name),
			slog.Int("page", p.Number),
			slog.Int("rows", len(p.Items)),
			slog.Bool("last", p.IsLast),
		)
	}
	doc.BeginFooter(c.Closing)
	return doc, nil
}
