package storage

import "time"

type OrderStatus string

const (
	StatusPendingCut OrderStatus = "pending-cut"
	StatusInProgress OrderStatus = "in-progress"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// Order — одна строка заказа на конкретного производителя.
// All rows sharing GroupID belong to one logical customer order and share
// ProductName and Color; they may differ in Producer and Sizes.
type Order struct {
	ID             string      `json:"id"`
	GroupID        string      `json:"group_id"`
	CreatedDate    time.Time   `json:"created_date"`
	CompletionDate *time.Time  `json:"completion_date,omitempty"`
	ProductName    string      `json:"product_name"`
	Color          string      `json:"color"`
	Producer       string      `json:"producer,omitempty"` // пустая строка = не назначен
	Sizes          Sizes       `json:"sizes"`
	TotalQuantity  int         `json:"total_quantity"`
	Status         OrderStatus `json:"status"`
}

// Clone returns a deep copy; Sizes is copied, CompletionDate pointer is
// re-allocated so the copy can be rewritten without touching the source.
func (o *Order) Clone() *Order {
	out := *o
	out.Sizes = o.Sizes.Clone()
	if o.CompletionDate != nil {
		d := *o.CompletionDate
		out.CompletionDate = &d
	}
	return &out
}
