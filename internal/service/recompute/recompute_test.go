package recompute

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"atelier-backend/internal/storage"
)

type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) Load(ctx context.Context) (*storage.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Snapshot), args.Error(1)
}

type MockCompletionStore struct {
	mock.Mock
}

func (m *MockCompletionStore) UpdateOrderCompletion(ctx context.Context, orderID string, completionDate time.Time) error {
	args := m.Called(ctx, orderID, completionDate)
	return args.Error(0)
}

func day(n int) time.Time {
	return time.Date(2025, time.June, n, 0, 0, 0, 0, time.UTC)
}

func fullyProducedSnapshot() *storage.Snapshot {
	return &storage.Snapshot{
		Orders: []*storage.Order{
			{
				ID: "g1-a", GroupID: "g1", CreatedDate: day(1),
				ProductName: "Платье", Color: "чёрный", Producer: "Ателье Север",
				Sizes:         storage.Sizes{storage.SizeS: 20, storage.SizeM: 30},
				TotalQuantity: 50,
				Status:        storage.StatusInProgress,
			},
		},
		StockEntries: []*storage.StockEntry{
			{ID: 1, Date: day(1), ProductName: "Платье", Color: "чёрный",
				NormalSizes: storage.Sizes{storage.SizeS: 15, storage.SizeM: 30}},
			{ID: 2, Date: day(2), ProductName: "Платье", Color: "чёрный",
				NormalSizes: storage.Sizes{storage.SizeS: 10}},
		},
		CuttingReports: []*storage.CuttingReport{
			{ID: 1, Date: day(1), GroupID: "g1", ProductName: "Платье", Color: "чёрный",
				Sizes: storage.Sizes{storage.SizeS: 20, storage.SizeM: 30}, IsConfirmed: true},
		},
	}
}

func TestRun_DerivesFullPipeline(t *testing.T) {
	loader := new(MockLoader)
	loader.On("Load", mock.Anything).Return(fullyProducedSnapshot(), nil)

	svc := NewService(loader, new(MockCompletionStore))
	res, err := svc.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Usages, 2)
	assert.Equal(t, storage.Sizes{storage.SizeS: 15, storage.SizeM: 30}, res.Usages[0].UsedSizes)
	assert.Equal(t, storage.Sizes{storage.SizeS: 5}, res.Usages[1].UsedSizes)

	require.Len(t, res.Orders, 1)
	assert.Equal(t, storage.StatusCompleted, res.Orders[0].Status)
	require.NotNil(t, res.Orders[0].CompletionDate)
	assert.Equal(t, day(2), *res.Orders[0].CompletionDate)

	require.Len(t, res.ProducerStats, 1)
	assert.Equal(t, "Ателье Север", res.ProducerStats[0].Producer)
	assert.Equal(t, 1, res.ProducerStats[0].CompletedOrders)
	assert.Empty(t, res.Defects)
	assert.Equal(t, float64(0), res.DefectPercentage)
}

func TestDerive_ComputesDefectPercentage(t *testing.T) {
	snap := fullyProducedSnapshot()
	// второй приход целиком бракованный
	snap.StockEntries[1].NormalSizes = nil
	snap.StockEntries[1].DefectiveSizes = storage.Sizes{storage.SizeS: 10}
	snap.StockEntries[1].DefectReason = "FABRIC_FLAW"

	res := Derive(snap, day(9))

	// 5 бракованных из 50 раскроенных
	assert.InDelta(t, 0.1, res.DefectPercentage, 1e-9)
	require.Len(t, res.Defects, 1)
	assert.Equal(t, "FABRIC_FLAW", res.Defects[0].Reason)
	assert.Equal(t, 5, res.Defects[0].TotalDefectiveUsed)
}

func TestDerive_IsIdempotent(t *testing.T) {
	snap := fullyProducedSnapshot()
	now := day(9)

	first := Derive(snap, now)
	second := Derive(snap, now)

	assert.Equal(t, first.Usages, second.Usages)
	assert.Equal(t, first.Orders, second.Orders)
	assert.Equal(t, first.ProducerStats, second.ProducerStats)
}

func TestDerive_SkipsArchivedStock(t *testing.T) {
	snap := fullyProducedSnapshot()
	snap.StockEntries[1].IsArchived = true

	res := Derive(snap, day(9))

	require.Len(t, res.Usages, 1)
	assert.Equal(t, storage.StatusInProgress, res.Orders[0].Status)
}

func TestPersistCompletions_WritesOnlyNewTransitions(t *testing.T) {
	loader := new(MockLoader)
	loader.On("Load", mock.Anything).Return(fullyProducedSnapshot(), nil)
	store := new(MockCompletionStore)
	store.On("UpdateOrderCompletion", mock.Anything, "g1-a", day(2)).Return(nil).Once()

	svc := NewService(loader, store)
	res, err := svc.Run(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.PersistCompletions(context.Background(), res))
	store.AssertExpectations(t)

	// уже completed в хранилище — повторной записи нет
	res.Snapshot.Orders[0].Status = storage.StatusCompleted
	require.NoError(t, svc.PersistCompletions(context.Background(), res))
	store.AssertNumberOfCalls(t, "UpdateOrderCompletion", 1)
}

func TestRun_PropagatesLoadError(t *testing.T) {
	loader := new(MockLoader)
	loader.On("Load", mock.Anything).Return(nil, assert.AnError)

	svc := NewService(loader, new(MockCompletionStore))
	res, err := svc.Run(context.Background())

	assert.Nil(t, res)
	assert.ErrorIs(t, err, assert.AnError)
}
