package storage

import "time"

// CuttingReport — акт раскроя по группе заказа (не по производителю).
// Unconfirmed reports contribute nothing to allocation. Edits replace the
// whole report (delete old, insert new), never patch it in place.
type CuttingReport struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	GroupID     string    `json:"group_id"`
	ProductName string    `json:"product_name"`
	Color       string    `json:"color"`
	Sizes       Sizes     `json:"sizes"`
	IsConfirmed bool      `json:"is_confirmed"`
}
