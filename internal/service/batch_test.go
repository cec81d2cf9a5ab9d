package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trustlabel/internal/domain"
	"trustlabel/internal/service"
)

func TestParseBatch_KeepsOrder(t *testing.T) {
	svc := newEngineService(service.BatchConfig{Concurrency: 3, MaxItems: 20})

	docs := make([]domain.RawDocument, 9)
	for i := range docs {
		docs[i] = domain.RawDocument{
			Name: fmt.Sprintf("report-%d.txt", i),
			Text: fmt.Sprintf("Eurofins\nReport No: R-%d\nChumbo: 0.0%d mg/kg", i, i+1),
		}
	}
	docs[4].MediaType = "application/pdf"

	items, err := svc.ParseBatch(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, items, len(docs))

	seen := make(map[uuid.UUID]bool)
	for i, item := range items {
		assert.Equal(t, docs[i].Name, item.Name)
		assert.NotEqual(t, uuid.Nil, item.ID)
		assert.False(t, seen[item.ID], "duplicate id")
		seen[item.ID] = true

		if i == 4 {
			assert.Nil(t, item.Result)
			assert.Contains(t, item.Error, "unsupported media type")
			continue
		}
		require.NotNil(t, item.Result, "item %d", i)
		assert.Empty(t, item.Error)
		assert.Equal(t, fmt.Sprintf("R-%d", i), item.Result.Report.ReportNumber)
	}
}

func TestParseBatch_Limits(t *testing.T) {
	svc := newEngineService(service.BatchConfig{Concurrency: 2, MaxItems: 2})

	_, err := svc.ParseBatch(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)

	_, err = svc.ParseBatch(context.Background(), make([]domain.RawDocument, 3))
	assert.ErrorIs(t, err, domain.ErrBatchTooLarge)
}

func TestParseBatch_Canceled(t *testing.T) {
	d := setupService(service.BatchConfig{Concurrency: 1, MaxItems: 10})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.svc.ParseBatch(ctx, make([]domain.RawDocument, 4))
	assert.ErrorIs(t, err, context.Canceled)
	d.parser.AssertNotCalled(t, "Parse", mock.Anything, mock.Anything)
}

func TestValidateBatch(t *testing.T) {
	svc := newEngineService(service.BatchConfig{Concurrency: 4, MaxItems: 10})

	analyses := []domain.ProductAnalysis{
		{ProductName: "A", Microbiological: []domain.Measurement{{Parameter: "Salmonella", Value: 1}}},
		{ProductName: "B", HeavyMetals: []domain.Measurement{{Parameter: "", Value: 1}}},
		{ProductName: "C", Nutritional: []domain.NutrientDeclaration{{Parameter: "Protein", Declared: 10, Actual: 10, Unit: "g"}}},
	}

	items, err := svc.ValidateBatch(context.Background(), analyses)
	require.NoError(t, err)
	require.Len(t, items, 3)

	require.NotNil(t, items[0].Result)
	assert.Equal(t, "A", items[0].Result.ProductName)
	assert.Equal(t, domain.VerdictRejected, items[0].Result.OverallStatus.Status)
	assert.Equal(t, 1, items[0].Result.OverallStatus.CriticalIssues)

	assert.Nil(t, items[1].Result)
	assert.Contains(t, items[1].Error, "heavy_metals[0] has no parameter")

	require.NotNil(t, items[2].Result)
	assert.Equal(t, domain.VerdictApproved, items[2].Result.OverallStatus.Status)
}

func TestValidateBatch_TooLarge(t *testing.T) {
	svc := newEngineService(service.BatchConfig{Concurrency: 1, MaxItems: 1})

	_, err := svc.ValidateBatch(context.Background(), make([]domain.ProductAnalysis, 2))
	assert.ErrorIs(t, err, domain.ErrBatchTooLarge)
}
