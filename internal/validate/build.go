package validate

import (
	"fmt"
	"time"

	"atelier-backend/internal/idgen"
	"atelier-backend/internal/storage"
)

// Конструкторы строк домена. Вход сначала проходит Validate,
// идентификаторы выдаёт idgen — дальше строка готова к сохранению.

func (in OrderInput) ToOrder() (*storage.Order, error) {
	const op = "validate.OrderInput.ToOrder"

	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	date, _ := time.Parse(DateLayout, in.Date)

	sizes := in.Sizes.Clone()
	return &storage.Order{
		ID:            idgen.OrderID(in.GroupID, in.Producer),
		GroupID:       in.GroupID,
		CreatedDate:   date,
		ProductName:   in.ProductName,
		Color:         in.Color,
		Producer:      in.Producer,
		Sizes:         sizes,
		TotalQuantity: sizes.Total(),
		Status:        storage.StatusPendingCut,
	}, nil
}

func (in StockEntryInput) ToStockEntry() (*storage.StockEntry, error) {
	const op = "validate.StockEntryInput.ToStockEntry"

	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	date, _ := time.Parse(DateLayout, in.Date)

	return &storage.StockEntry{
		ID:             idgen.GenerateID(),
		Date:           date,
		ProductName:    in.ProductName,
		Color:          in.Color,
		Producer:       in.Producer,
		NormalSizes:    in.NormalSizes.Clone(),
		DefectiveSizes: in.DefectiveSizes.Clone(),
		DefectReason:   in.DefectReason,
	}, nil
}

func (in CuttingReportInput) ToCuttingReport() (*storage.CuttingReport, error) {
	const op = "validate.CuttingReportInput.ToCuttingReport"

	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	date, _ := time.Parse(DateLayout, in.Date)

	return &storage.CuttingReport{
		ID:          idgen.GenerateID(),
		Date:        date,
		GroupID:     in.GroupID,
		ProductName: in.ProductName,
		Color:       in.Color,
		Sizes:       in.Sizes.Clone(),
		IsConfirmed: in.IsConfirmed,
	}, nil
}
