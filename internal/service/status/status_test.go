package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier-backend/internal/service/allocation"
	"atelier-backend/internal/storage"
)

func day(n int) time.Time {
	return time.Date(2025, time.March, n, 0, 0, 0, 0, time.UTC)
}

func order(id, groupID string, st storage.OrderStatus, sizes storage.Sizes) *storage.Order {
	return &storage.Order{
		ID:            id,
		GroupID:       groupID,
		CreatedDate:   day(1),
		ProductName:   "Юбка-карандаш",
		Color:         "синий",
		Sizes:         sizes,
		TotalQuantity: sizes.Total(),
		Status:        st,
	}
}

func confirmedCut(groupID string, sizes storage.Sizes) *storage.CuttingReport {
	return &storage.CuttingReport{
		ID:          1,
		Date:        day(1),
		GroupID:     groupID,
		ProductName: "Юбка-карандаш",
		Color:       "синий",
		Sizes:       sizes,
		IsConfirmed: true,
	}
}

func entry(id int64, date time.Time, normal storage.Sizes) *storage.StockEntry {
	return &storage.StockEntry{
		ID:          id,
		Date:        date,
		ProductName: "Юбка-карандаш",
		Color:       "синий",
		NormalSizes: normal,
	}
}

func usage(orderID string, entryID int64, sizes storage.Sizes) *storage.StockUsage {
	return &storage.StockUsage{
		OrderID:         orderID,
		StockEntryID:    entryID,
		UsedSizes:       sizes,
		UsedNormalSizes: sizes,
	}
}

func TestResolve_CompletedWithLatestContributingDate(t *testing.T) {
	// сценарий из постановки: два прихода, второй добивает заказ
	orders := []*storage.Order{
		order("g1-a", "g1", storage.StatusInProgress, storage.Sizes{storage.SizeS: 20, storage.SizeM: 30}),
	}
	entries := []*storage.StockEntry{
		entry(1, day(1), storage.Sizes{storage.SizeS: 15, storage.SizeM: 30}),
		entry(2, day(2), storage.Sizes{storage.SizeS: 10}),
	}
	reports := []*storage.CuttingReport{
		confirmedCut("g1", storage.Sizes{storage.SizeS: 20, storage.SizeM: 30}),
	}

	usages := allocation.Allocate(orders, entries, reports)
	resolved := Resolve(orders, usages, reports, entries, day(9))

	require.Len(t, resolved, 1)
	assert.Equal(t, storage.StatusCompleted, resolved[0].Status)
	require.NotNil(t, resolved[0].CompletionDate)
	assert.Equal(t, day(2), *resolved[0].CompletionDate)

	// исходная строка не тронута
	assert.Equal(t, storage.StatusInProgress, orders[0].Status)
	assert.Nil(t, orders[0].CompletionDate)
}

func TestResolve_NoStockKeepsPriorState(t *testing.T) {
	pending := order("g1-a", "g1", storage.StatusPendingCut, storage.Sizes{storage.SizeS: 10})
	reports := []*storage.CuttingReport{
		confirmedCut("g1", storage.Sizes{storage.SizeS: 10}),
	}

	resolved := Resolve([]*storage.Order{pending}, nil, reports, nil, day(5))

	// раскрой подтверждён, продукции нет — заказ переходит в работу
	assert.Equal(t, storage.StatusInProgress, resolved[0].Status)
	assert.Nil(t, resolved[0].CompletionDate)
}

func TestResolve_UnconfirmedCutLeavesPendingCut(t *testing.T) {
	pending := order("g1-a", "g1", storage.StatusPendingCut, storage.Sizes{storage.SizeS: 10})
	reports := []*storage.CuttingReport{
		{ID: 1, Date: day(1), GroupID: "g1", Sizes: storage.Sizes{storage.SizeS: 10}, IsConfirmed: false},
	}

	resolved := Resolve([]*storage.Order{pending}, nil, reports, nil, day(5))
	assert.Equal(t, storage.StatusPendingCut, resolved[0].Status)
}

func TestResolve_DemotesStaleCompleted(t *testing.T) {
	done := order("g1-a", "g1", storage.StatusCompleted, storage.Sizes{storage.SizeS: 10})
	d := day(3)
	done.CompletionDate = &d
	reports := []*storage.CuttingReport{
		confirmedCut("g1", storage.Sizes{storage.SizeS: 10}),
	}

	// продукции больше нет (приходы заархивированы) — completed снимается
	resolved := Resolve([]*storage.Order{done}, nil, reports, nil, day(5))
	assert.Equal(t, storage.StatusInProgress, resolved[0].Status)
	assert.Nil(t, resolved[0].CompletionDate)
}

func TestResolve_CancelledIsAuthoritative(t *testing.T) {
	cancelled := order("g1-a", "g1", storage.StatusCancelled, storage.Sizes{storage.SizeS: 10})
	entries := []*storage.StockEntry{
		entry(1, day(1), storage.Sizes{storage.SizeS: 10}),
	}
	reports := []*storage.CuttingReport{
		confirmedCut("g1", storage.Sizes{storage.SizeS: 10}),
	}
	usages := []*storage.StockUsage{
		usage("g1-a", 1, storage.Sizes{storage.SizeS: 10}),
	}

	resolved := Resolve([]*storage.Order{cancelled}, usages, reports, entries, day(5))
	assert.Equal(t, storage.StatusCancelled, resolved[0].Status)
}

func TestResolve_FallsBackToNowWithoutContributingEntries(t *testing.T) {
	o := order("g1-a", "g1", storage.StatusInProgress, storage.Sizes{storage.SizeS: 10})
	reports := []*storage.CuttingReport{
		confirmedCut("g1", storage.Sizes{storage.SizeS: 10}),
	}
	// запись использования есть, а сам приход из снимка пропал
	usages := []*storage.StockUsage{
		usage("g1-a", 404, storage.Sizes{storage.SizeS: 10}),
	}

	now := day(7)
	resolved := Resolve([]*storage.Order{o}, usages, reports, nil, now)
	assert.Equal(t, storage.StatusCompleted, resolved[0].Status)
	require.NotNil(t, resolved[0].CompletionDate)
	assert.Equal(t, now, *resolved[0].CompletionDate)
}

func TestResolve_ZeroCutNeverCompletes(t *testing.T) {
	o := order("g1-a", "g1", storage.StatusInProgress, storage.Sizes{})
	reports := []*storage.CuttingReport{
		confirmedCut("g1", storage.Sizes{}),
	}

	resolved := Resolve([]*storage.Order{o}, nil, reports, nil, day(5))
	assert.Equal(t, storage.StatusInProgress, resolved[0].Status)
}
