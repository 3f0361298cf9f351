package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier-backend/internal/storage"
)

func validOrder() OrderInput {
	return OrderInput{
		GroupID:     "g1",
		ProductName: "Платье-футляр",
		Color:       "чёрный",
		Date:        "2025-03-01",
		Sizes:       storage.Sizes{storage.SizeM: 10},
	}
}

func TestOrderInput(t *testing.T) {
	assert.NoError(t, validOrder().Validate())

	noName := validOrder()
	noName.ProductName = ""
	assert.Error(t, noName.Validate())

	badDate := validOrder()
	badDate.Date = "01.03.2025"
	assert.Error(t, badDate.Validate())

	zeroTotal := validOrder()
	zeroTotal.Sizes = storage.Sizes{}
	assert.Error(t, zeroTotal.Validate())

	negative := validOrder()
	negative.Sizes = storage.Sizes{storage.SizeM: -1}
	assert.Error(t, negative.Validate())

	unknownSize := validOrder()
	unknownSize.Sizes = storage.Sizes{"xxxl": 5}
	assert.Error(t, unknownSize.Validate())
}

func validEntry() StockEntryInput {
	return StockEntryInput{
		ProductName: "Платье-футляр",
		Color:       "чёрный",
		Producer:    "Ателье Север",
		Date:        "2025-03-02",
		NormalSizes: storage.Sizes{storage.SizeM: 5},
	}
}

func TestStockEntryInput(t *testing.T) {
	assert.NoError(t, validEntry().Validate())

	empty := validEntry()
	empty.NormalSizes = storage.Sizes{}
	assert.Error(t, empty.Validate())

	// брак без причины не принимается
	defectNoReason := validEntry()
	defectNoReason.DefectiveSizes = storage.Sizes{storage.SizeM: 2}
	assert.Error(t, defectNoReason.Validate())

	defectWithReason := validEntry()
	defectWithReason.DefectiveSizes = storage.Sizes{storage.SizeM: 2}
	defectWithReason.DefectReason = "FABRIC_FLAW"
	assert.NoError(t, defectWithReason.Validate())
}

func TestCuttingReportInput(t *testing.T) {
	in := CuttingReportInput{
		GroupID:     "g1",
		ProductName: "Платье-футляр",
		Color:       "чёрный",
		Date:        "2025-03-01",
		Sizes:       storage.Sizes{storage.SizeS: 20},
		IsConfirmed: true,
	}
	assert.NoError(t, in.Validate())

	// пустой неподтверждённый акт создаётся вместе с заказом — это норма
	draft := in
	draft.Sizes = storage.Sizes{}
	draft.IsConfirmed = false
	assert.NoError(t, draft.Validate())

	confirmedEmpty := in
	confirmedEmpty.Sizes = storage.Sizes{}
	assert.Error(t, confirmedEmpty.Validate())
}

func TestToOrder(t *testing.T) {
	in := validOrder()
	in.Producer = "Ателье Север"

	order, err := in.ToOrder()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.ID, "g1-ателье-север-"))
	assert.Equal(t, "g1", order.GroupID)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), order.CreatedDate)
	assert.Equal(t, 10, order.TotalQuantity)
	assert.Equal(t, storage.StatusPendingCut, order.Status)

	// вход не проходит проверку — строка не создаётся
	bad := validOrder()
	bad.GroupID = ""
	_, err = bad.ToOrder()
	assert.Error(t, err)
}

func TestToStockEntry(t *testing.T) {
	first, err := validEntry().ToStockEntry()
	require.NoError(t, err)
	second, err := validEntry().ToStockEntry()
	require.NoError(t, err)

	assert.NotZero(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "Ателье Север", first.Producer)
	assert.Equal(t, storage.Sizes{storage.SizeM: 5}, first.NormalSizes)
	assert.False(t, first.IsArchived)

	// вектор скопирован, вход не делит память со строкой
	in := validEntry()
	entry, err := in.ToStockEntry()
	require.NoError(t, err)
	in.NormalSizes[storage.SizeM] = 99
	assert.Equal(t, 5, entry.NormalSizes[storage.SizeM])
}

func TestToCuttingReport(t *testing.T) {
	in := CuttingReportInput{
		GroupID:     "g1",
		ProductName: "Платье-футляр",
		Color:       "чёрный",
		Date:        "2025-03-01",
		Sizes:       storage.Sizes{storage.SizeS: 20},
		IsConfirmed: true,
	}

	report, err := in.ToCuttingReport()
	require.NoError(t, err)

	assert.NotZero(t, report.ID)
	assert.Equal(t, "g1", report.GroupID)
	assert.True(t, report.IsConfirmed)
	assert.Equal(t, storage.Sizes{storage.SizeS: 20}, report.Sizes)

	bad := in
	bad.Date = "01.03.2025"
	_, err = bad.ToCuttingReport()
	assert.Error(t, err)
}
