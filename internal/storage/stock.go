package storage

import "time"

// StockEntry — приход готовой продукции от производителя.
// DefectReason must be set whenever any DefectiveSizes quantity is above
// zero. Archived entries are kept for history/undo and excluded from
// allocation.
type StockEntry struct {
	ID             int64     `json:"id"`
	Date           time.Time `json:"date"`
	ProductName    string    `json:"product_name"`
	Color          string    `json:"color"`
	Producer       string    `json:"producer,omitempty"`
	NormalSizes    Sizes     `json:"normal_sizes"`
	DefectiveSizes Sizes     `json:"defective_sizes"`
	DefectReason   string    `json:"defect_reason,omitempty"`
	IsArchived     bool      `json:"is_archived"`
}
