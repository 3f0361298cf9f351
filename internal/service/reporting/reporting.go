package reporting

import (
	"math"
	"sort"
	"time"

	"atelier-backend/internal/storage"
)

// ProducerStat — сводка по одному производителю поверх уже
// разрешённых статусов заказов.
type ProducerStat struct {
	Producer          string `json:"producer"`
	CompletedOrders   int    `json:"completed_orders"`
	InProgressOrders  int    `json:"in_progress_orders"`
	TotalOrdered      int    `json:"total_ordered"`
	AvgCompletionDays *int   `json:"avg_completion_days,omitempty"`
}

// ProducerStats aggregates resolved orders per producer. AvgCompletionDays
// is the rounded mean of (completion - creation) in days over completed
// orders only, nil when the producer has none. The empty producer name
// stands for unassigned rows.
func ProducerStats(orders []*storage.Order) []ProducerStat {
	type agg struct {
		stat     ProducerStat
		daysSum  float64
		daysOver int
	}
	byProducer := make(map[string]*agg)

	for _, o := range orders {
		a, ok := byProducer[o.Producer]
		if !ok {
			a = &agg{stat: ProducerStat{Producer: o.Producer}}
			byProducer[o.Producer] = a
		}
		a.stat.TotalOrdered += o.TotalQuantity
		switch o.Status {
		case storage.StatusCompleted:
			a.stat.CompletedOrders++
			if o.CompletionDate != nil {
				a.daysSum += o.CompletionDate.Sub(o.CreatedDate).Hours() / 24
				a.daysOver++
			}
		case storage.StatusInProgress:
			a.stat.InProgressOrders++
		}
	}

	stats := make([]ProducerStat, 0, len(byProducer))
	for _, a := range byProducer {
		if a.daysOver > 0 {
			days := int(math.Round(a.daysSum / float64(a.daysOver)))
			a.stat.AvgCompletionDays = &days
		}
		stats = append(stats, a.stat)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Producer < stats[j].Producer })
	return stats
}

// DefectStat — сколько брака по причине реально ушло в заказы,
// с разбивкой по производителям заказов.
type DefectStat struct {
	Reason             string         `json:"reason"`
	TotalDefectiveUsed int            `json:"total_defective_used"`
	ByProducer         map[string]int `json:"by_producer"`
}

// DefectBreakdown joins usage records to their stock entry (for the defect
// reason) and order (for the producer). Counts only defective quantity that
// was actually consumed, not everything received. Usages whose entry or
// order is missing from the snapshot are skipped.
func DefectBreakdown(usages []*storage.StockUsage, stockEntries []*storage.StockEntry, orders []*storage.Order) []DefectStat {
	entryByID := make(map[int64]*storage.StockEntry, len(stockEntries))
	for _, e := range stockEntries {
		entryByID[e.ID] = e
	}
	orderByID := make(map[string]*storage.Order, len(orders))
	for _, o := range orders {
		orderByID[o.ID] = o
	}

	byReason := make(map[string]*DefectStat)
	for _, u := range usages {
		qty := u.UsedDefectiveSizes.Total()
		if qty == 0 {
			continue
		}
		e, ok := entryByID[u.StockEntryID]
		if !ok || e.DefectReason == "" {
			continue
		}
		o, ok := orderByID[u.OrderID]
		if !ok {
			continue
		}
		stat, ok := byReason[e.DefectReason]
		if !ok {
			stat = &DefectStat{Reason: e.DefectReason, ByProducer: make(map[string]int)}
			byReason[e.DefectReason] = stat
		}
		stat.TotalDefectiveUsed += qty
		stat.ByProducer[o.Producer] += qty
	}

	stats := make([]DefectStat, 0, len(byReason))
	for _, s := range byReason {
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Reason < stats[j].Reason })
	return stats
}

// Scope limits a defect-percentage calculation. Zero value means global.
type Scope struct {
	Producer string     // пусто = все производители
	From     *time.Time // включительно
	To       *time.Time // не включительно
}

func (sc Scope) matchesDate(d time.Time) bool {
	if sc.From != nil && d.Before(*sc.From) {
		return false
	}
	if sc.To != nil && !d.Before(*sc.To) {
		return false
	}
	return true
}

// DefectPercentage returns defective-used / total-cut within the scope.
// The producer scope keeps usages of that producer's orders and cut
// quantities of groups that contain at least one of its rows. Usages whose
// entry or order is missing from the snapshot are skipped, как и в
// DefectBreakdown. Zero total cut yields 0, never an error.
func DefectPercentage(usages []*storage.StockUsage, stockEntries []*storage.StockEntry, orders []*storage.Order, cuttingReports []*storage.CuttingReport, sc Scope) float64 {
	entryByID := make(map[int64]*storage.StockEntry, len(stockEntries))
	for _, e := range stockEntries {
		entryByID[e.ID] = e
	}
	orderByID := make(map[string]*storage.Order, len(orders))
	producerGroups := make(map[string]bool)
	for _, o := range orders {
		orderByID[o.ID] = o
		if sc.Producer == "" || o.Producer == sc.Producer {
			producerGroups[o.GroupID] = true
		}
	}

	defectiveUsed := 0
	for _, u := range usages {
		qty := u.UsedDefectiveSizes.Total()
		if qty == 0 {
			continue
		}
		o, ok := orderByID[u.OrderID]
		if !ok {
			continue
		}
		if sc.Producer != "" && o.Producer != sc.Producer {
			continue
		}
		e, ok := entryByID[u.StockEntryID]
		if !ok {
			continue
		}
		if !sc.matchesDate(e.Date) {
			continue
		}
		defectiveUsed += qty
	}

	totalCut := 0
	for _, r := range cuttingReports {
		if !r.IsConfirmed || !producerGroups[r.GroupID] || !sc.matchesDate(r.Date) {
			continue
		}
		totalCut += r.Sizes.Total()
	}

	if totalCut == 0 {
		return 0
	}
	return float64(defectiveUsed) / float64(totalCut)
}
