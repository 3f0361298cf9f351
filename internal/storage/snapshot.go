package storage

// Snapshot — один согласованный срез всех данных. Весь пересчёт
// (распределение, статусы, отчёты) идёт поверх него целиком.
type Snapshot struct {
	Orders         []*Order         `json:"orders"`
	StockEntries   []*StockEntry    `json:"stock_entries"`
	CuttingReports []*CuttingReport `json:"cutting_reports"`
	Producers      []*Producer      `json:"producers"`
	Colors         []*Color         `json:"colors"`
	DefectReasons  []*DefectReason  `json:"defect_reasons"`
}

// ActiveStockEntries filters out archived receipts.
func (s *Snapshot) ActiveStockEntries() []*StockEntry {
	var active []*StockEntry
	for _, e := range s.StockEntries {
		if !e.IsArchived {
			active = append(active, e)
		}
	}
	return active
}
