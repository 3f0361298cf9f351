package validate

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator"

	"atelier-backend/internal/storage"
)

// Проверки на границе ввода данных. Само распределение ошибок не
// поднимает — сюда сводится всё, что нельзя пускать в снимок.

const DateLayout = "2006-01-02"

var v = validator.New()

type OrderInput struct {
	GroupID     string        `json:"group_id" validate:"required"`
	ProductName string        `json:"product_name" validate:"required"`
	Color       string        `json:"color" validate:"required"`
	Producer    string        `json:"producer"`
	Date        string        `json:"date" validate:"required"`
	Sizes       storage.Sizes `json:"sizes"`
}

func (in OrderInput) Validate() error {
	const op = "validate.OrderInput"

	if err := v.Struct(in); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := time.Parse(DateLayout, in.Date); err != nil {
		return fmt.Errorf("%s: неверный формат даты '%s': %w", op, in.Date, err)
	}
	if err := validSizes(in.Sizes); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if in.Sizes.Total() == 0 {
		return fmt.Errorf("%s: общее количество должно быть больше нуля", op)
	}
	return nil
}

type StockEntryInput struct {
	ProductName    string        `json:"product_name" validate:"required"`
	Color          string        `json:"color" validate:"required"`
	Producer       string        `json:"producer"`
	Date           string        `json:"date" validate:"required"`
	NormalSizes    storage.Sizes `json:"normal_sizes"`
	DefectiveSizes storage.Sizes `json:"defective_sizes"`
	DefectReason   string        `json:"defect_reason"`
}

func (in StockEntryInput) Validate() error {
	const op = "validate.StockEntryInput"

	if err := v.Struct(in); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := time.Parse(DateLayout, in.Date); err != nil {
		return fmt.Errorf("%s: неверный формат даты '%s': %w", op, in.Date, err)
	}
	if err := validSizes(in.NormalSizes); err != nil {
		return fmt.Errorf("%s: normal: %w", op, err)
	}
	if err := validSizes(in.DefectiveSizes); err != nil {
		return fmt.Errorf("%s: defective: %w", op, err)
	}
	if in.NormalSizes.Total()+in.DefectiveSizes.Total() == 0 {
		return fmt.Errorf("%s: пустой приход", op)
	}
	// причина брака обязательна, как только есть бракованное количество
	if in.DefectiveSizes.Total() > 0 && in.DefectReason == "" {
		return fmt.Errorf("%s: не указана причина брака", op)
	}
	return nil
}

type CuttingReportInput struct {
	GroupID     string        `json:"group_id" validate:"required"`
	ProductName string        `json:"product_name" validate:"required"`
	Color       string        `json:"color" validate:"required"`
	Date        string        `json:"date" validate:"required"`
	Sizes       storage.Sizes `json:"sizes"`
	IsConfirmed bool          `json:"is_confirmed"`
}

func (in CuttingReportInput) Validate() error {
	const op = "validate.CuttingReportInput"

	if err := v.Struct(in); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := time.Parse(DateLayout, in.Date); err != nil {
		return fmt.Errorf("%s: неверный формат даты '%s': %w", op, in.Date, err)
	}
	if err := validSizes(in.Sizes); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	// подтверждённый акт с нулевым раскроем не имеет смысла
	if in.IsConfirmed && in.Sizes.Total() == 0 {
		return fmt.Errorf("%s: подтверждённый акт без количества", op)
	}
	return nil
}

func validSizes(sizes storage.Sizes) error {
	known := make(map[storage.Size]bool, len(storage.AllSizes))
	for _, size := range storage.AllSizes {
		known[size] = true
	}
	for size, qty := range sizes {
		if !known[size] {
			return fmt.Errorf("неизвестный размер '%s'", size)
		}
		if qty < 0 {
			return errors.New("отрицательное количество")
		}
	}
	return nil
}
