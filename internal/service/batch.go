package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"trustlabel/internal/domain"
)

// ParseBatchItem is the outcome for one document of a batch. Exactly one of
// Result and Error is set.
type ParseBatchItem struct {
	ID     uuid.UUID          `json:"id"`
	Name   string             `json:"name,omitempty"`
	Result *ParseReportOutput `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// ValidateBatchItem is the outcome for one analysis of a batch. Exactly one
// of Result and Error is set.
type ValidateBatchItem struct {
	ID     uuid.UUID              `json:"id"`
	Result *domain.AnalysisReport `json:"result,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

// ParseBatch parses documents concurrently, at most batch.Concurrency at a
// time. Items keep input order. A document that fails to parse is reported
// on its item; only cancellation fails the whole batch.
func (s *analysisService) ParseBatch(ctx context.Context, docs []domain.RawDocument) ([]ParseBatchItem, error) {
	if err := s.checkBatchSize(len(docs)); err != nil {
		return nil, err
	}
	items := make([]ParseBatchItem, len(docs))
	err := s.fanOut(ctx, len(docs), func(ctx context.Context, i int) {
		items[i] = ParseBatchItem{ID: uuid.New(), Name: docs[i].Name}
		out, err := s.ParseReport(ctx, docs[i])
		if err != nil {
			items[i].Error = err.Error()
			return
		}
		items[i].Result = out
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ValidateBatch validates analyses concurrently with the same ordering and
// error rules as ParseBatch.
func (s *analysisService) ValidateBatch(ctx context.Context, analyses []domain.ProductAnalysis) ([]ValidateBatchItem, error) {
	if err := s.checkBatchSize(len(analyses)); err != nil {
		return nil, err
	}
	items := make([]ValidateBatchItem, len(analyses))
	err := s.fanOut(ctx, len(analyses), func(ctx context.Context, i int) {
		items[i] = ValidateBatchItem{ID: uuid.New()}
		report, err := s.ValidateAnalysis(ctx, &analyses[i])
		if err != nil {
			items[i].Error = err.Error()
			return
		}
		items[i].Result = report
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// fanOut runs work(i) for i in [0, n) on a bounded errgroup. Scheduling
// stops once ctx is done.
func (s *analysisService) fanOut(ctx context.Context, n int, work func(ctx context.Context, i int)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batch.Concurrency)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			work(gctx, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		s.logger.Warn("service.AnalysisService: batch canceled", zap.Int("items", n), zap.Error(err))
		return err
	}
	return nil
}
