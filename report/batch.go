package report

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ByLCY/ledger/document"
	"github.com/ByLCY/ledger/layout"
)

// RunBatch generates every job with at most limit builds in flight
// (limit <= 0 means unbounded). Results keep the order of jobs. The first
// failure cancels the jobs that have not started yet.
func RunBatch[T layout.PageEligible](ctx context.Context, g *Generator, jobs []Job[T], limit int) ([]*document.Document, error) {
	if g == nil {
		g = New()
	}
	docs := make([]*document.Document, len(jobs))
	eg, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}
	for i, job := range jobs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := Generate(g, job)
			if err != nil {
				return fmt.Errorf("job %d: %w", i, err)
			}
			docs[i] = doc
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// GenerateBatch runs RunBatch and concatenates the documents in job order,
// separated by page breaks. Each document is flattened first so its masthead
// and closing block travel with it into the merged body.
func GenerateBatch[T layout.PageEligible](ctx context.Context, g *Generator, name string, jobs []Job[T], limit int) (*document.Document, error) {
	if len(jobs) == 0 {
		return nil, ErrNoPages
	}
	if g == nil {
		g = New()
	}
	docs, err := RunBatch(ctx, g, jobs, limit)
	if err != nil {
		return nil, err
	}

	first := docs[0]
	out := document.New(name, document.WithSettings(first.Settings), document.WithMeta(first.Meta))
	for i, d := range docs {
		if i > 0 {
			out.AddPageBreak()
		}
		out.MergeFrom(d.Flatten())
	}
	g.logger.Debug("batch merged",
		slog.String("document", name),
		slog.Int("documents", len(docs)),
		slog.Int("elements", out.Len()),
	)
	return out, nil
}
