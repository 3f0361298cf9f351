package allocation

import (
	"fmt"
	"sort"

	"atelier-backend/internal/storage"
)

// Allocate matches incoming stock against confirmed cut quantities and
// outstanding order demand, producing the full set of StockUsage records.
//
// Правила распределения:
//   - склад делится на корзины по ключу (изделие, цвет), внутри корзины
//     приходы расходуются от старых к новым (FIFO);
//   - нормальный остаток выбирается раньше брака;
//   - группы заказов обслуживаются по дате самого раннего заказа группы.
//
// Quantities are clamped with min() at every transfer, so inconsistent data
// (cut above ordered, produced above cut) never fails the run. Anything
// produced beyond the group's total demand at a size lands on the group's
// first order row, so no produced piece is ever lost from the books.
func Allocate(orders []*storage.Order, stockEntries []*storage.StockEntry, cuttingReports []*storage.CuttingReport) []*storage.StockUsage {
	buckets := bucketStock(stockEntries)
	totalCut := sumConfirmedCuts(cuttingReports)
	groups := groupOrders(orders)

	acc := newAccumulator()

	for _, groupID := range sortGroupIDs(groups) {
		rows := groups[groupID]
		cut, ok := totalCut[groupID]
		if !ok {
			continue
		}

		bucket := buckets[stockKey(rows[0].order.ProductName, rows[0].order.Color)]
		if len(bucket) == 0 {
			continue
		}

		for _, size := range storage.AllSizes {
			needed := cut[size]
			if needed <= 0 {
				continue
			}
			// сначала нормальный остаток, потом брак
			needed = drain(bucket, rows, size, needed, false, acc)
			if needed > 0 {
				drain(bucket, rows, size, needed, true, acc)
			}
		}
	}

	return acc.records
}

// entryState carries what is left of one stock entry during a run.
type entryState struct {
	entry              *storage.StockEntry
	remainingNormal    storage.Sizes
	remainingDefective storage.Sizes
}

// orderState carries the outstanding ordered quantity of one order row.
type orderState struct {
	order     *storage.Order
	remaining storage.Sizes
}

func stockKey(productName, color string) string {
	return productName + "|" + color
}

func bucketStock(entries []*storage.StockEntry) map[string][]*entryState {
	buckets := make(map[string][]*entryState)
	for _, e := range entries {
		if e.IsArchived {
			continue
		}
		key := stockKey(e.ProductName, e.Color)
		buckets[key] = append(buckets[key], &entryState{
			entry:              e,
			remainingNormal:    e.NormalSizes.Clone(),
			remainingDefective: e.DefectiveSizes.Clone(),
		})
	}
	for _, bucket := range buckets {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].entry.Date.Before(bucket[j].entry.Date)
		})
	}
	return buckets
}

func sumConfirmedCuts(reports []*storage.CuttingReport) map[string]storage.Sizes {
	cuts := make(map[string]storage.Sizes)
	for _, r := range reports {
		if !r.IsConfirmed {
			continue
		}
		if cuts[r.GroupID] == nil {
			cuts[r.GroupID] = storage.Sizes{}
		}
		cuts[r.GroupID].Add(r.Sizes)
	}
	return cuts
}

func groupOrders(orders []*storage.Order) map[string][]*orderState {
	groups := make(map[string][]*orderState)
	for _, o := range orders {
		groups[o.GroupID] = append(groups[o.GroupID], &orderState{
			order:     o,
			remaining: o.Sizes.Clone(),
		})
	}
	return groups
}

// sortGroupIDs orders the groups by the creation date of their earliest
// order, oldest group first. GroupID breaks ties so the run is stable.
func sortGroupIDs(groups map[string][]*orderState) []string {
	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	earliest := make(map[string]int64, len(groups))
	for id, rows := range groups {
		first := rows[0].order.CreatedDate.UnixNano()
		for _, row := range rows[1:] {
			if ts := row.order.CreatedDate.UnixNano(); ts < first {
				first = ts
			}
		}
		earliest[id] = first
	}
	sort.SliceStable(ids, func(i, j int) bool {
		if earliest[ids[i]] != earliest[ids[j]] {
			return earliest[ids[i]] < earliest[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}

// drain walks the bucket oldest-first, takes what the group still needs at
// the size and hands every taken chunk out to the group's orders. Returns
// what is still needed after the walk.
func drain(bucket []*entryState, rows []*orderState, size storage.Size, needed int, defective bool, acc *accumulator) int {
	for _, st := range bucket {
		if needed == 0 {
			break
		}
		pool := st.remainingNormal
		if defective {
			pool = st.remainingDefective
		}
		take := min(needed, pool[size])
		if take == 0 {
			continue
		}
		pool[size] -= take
		needed -= take
		distribute(rows, st.entry, size, take, defective, acc)
	}
	return needed
}

// distribute spreads a taken chunk over the group's orders in their stored
// array order. A remainder that no order can absorb (cut above ordered)
// is dumped onto the first row of the group.
func distribute(rows []*orderState, entry *storage.StockEntry, size storage.Size, qty int, defective bool, acc *accumulator) {
	for _, row := range rows {
		if qty == 0 {
			return
		}
		take := min(qty, row.remaining[size])
		if take == 0 {
			continue
		}
		row.remaining[size] -= take
		qty -= take
		acc.add(row.order.ID, entry.ID, size, take, defective)
	}
	if qty > 0 {
		acc.add(rows[0].order.ID, entry.ID, size, qty, defective)
	}
}

// accumulator keeps one StockUsage per (orderID, stockEntryID) pair, in
// creation order, and maintains UsedSizes as the running sum.
type accumulator struct {
	byPair  map[string]*storage.StockUsage
	records []*storage.StockUsage
}

func newAccumulator() *accumulator {
	return &accumulator{byPair: make(map[string]*storage.StockUsage)}
}

func (a *accumulator) add(orderID string, stockEntryID int64, size storage.Size, qty int, defective bool) {
	id := usageID(orderID, stockEntryID)
	usage, ok := a.byPair[id]
	if !ok {
		usage = &storage.StockUsage{
			ID:                 id,
			OrderID:            orderID,
			StockEntryID:       stockEntryID,
			UsedSizes:          storage.Sizes{},
			UsedNormalSizes:    storage.Sizes{},
			UsedDefectiveSizes: storage.Sizes{},
		}
		a.byPair[id] = usage
		a.records = append(a.records, usage)
	}
	if defective {
		usage.UsedDefectiveSizes[size] += qty
	} else {
		usage.UsedNormalSizes[size] += qty
	}
	usage.UsedSizes[size] += qty
}

// usageID is deterministic on purpose: identical snapshots must yield
// identical usage sets.
func usageID(orderID string, stockEntryID int64) string {
	return fmt.Sprintf("%s_%d", orderID, stockEntryID)
}
