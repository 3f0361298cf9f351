package storage

// StockUsage attributes part of a stock entry to one order. Pure derived
// state: the full set is recomputed from scratch on every snapshot change
// and never persisted. At most one record exists per (OrderID, StockEntryID)
// pair; quantities are summed into it.
type StockUsage struct {
	ID                 string `json:"id"`
	OrderID            string `json:"order_id"`
	StockEntryID       int64  `json:"stock_entry_id"`
	UsedSizes          Sizes  `json:"used_sizes"`
	UsedNormalSizes    Sizes  `json:"used_normal_sizes"`
	UsedDefectiveSizes Sizes  `json:"used_defective_sizes"`
}
