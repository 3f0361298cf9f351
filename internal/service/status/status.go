package status

import (
	"time"

	"atelier-backend/internal/storage"
)

// Resolve recomputes the effective status and completion date of every
// order from the current allocation picture. It returns transformed copies
// and never touches the stored rows: writing a transition back is a
// separate explicit operation (see the recompute service).
//
// Правила, по заказу:
//   - cancelled хранится и не пересматривается;
//   - раскрой подтверждён, раскроено > 0 и произведено >= раскроено —
//     completed, дата завершения = дата последнего прихода, из которого
//     группа что-то получила (если таких нет — now);
//   - ранее completed, но условие больше не выполняется — in-progress,
//     дата завершения сбрасывается;
//   - раскрой подтверждён при статусе pending-cut — in-progress;
//   - иначе статус не меняется.
func Resolve(orders []*storage.Order, usages []*storage.StockUsage, cuttingReports []*storage.CuttingReport, stockEntries []*storage.StockEntry, now time.Time) []*storage.Order {
	groups := buildGroupFacts(orders, usages, cuttingReports, stockEntries)

	resolved := make([]*storage.Order, 0, len(orders))
	for _, o := range orders {
		out := o.Clone()
		resolved = append(resolved, out)

		if o.Status == storage.StatusCancelled {
			continue
		}

		g := groups[o.GroupID]
		switch {
		case g.confirmed && g.totalCut > 0 && g.produced >= g.totalCut:
			out.Status = storage.StatusCompleted
			d := g.latestEntryDate
			if d.IsZero() {
				d = now
			}
			out.CompletionDate = &d
		case o.Status == storage.StatusCompleted:
			out.Status = storage.StatusInProgress
			out.CompletionDate = nil
		case g.confirmed && o.Status == storage.StatusPendingCut:
			out.Status = storage.StatusInProgress
		}
	}
	return resolved
}

type groupFacts struct {
	confirmed       bool
	totalCut        int
	produced        int
	latestEntryDate time.Time
}

func buildGroupFacts(orders []*storage.Order, usages []*storage.StockUsage, reports []*storage.CuttingReport, entries []*storage.StockEntry) map[string]groupFacts {
	groupByOrder := make(map[string]string, len(orders))
	for _, o := range orders {
		groupByOrder[o.ID] = o.GroupID
	}
	entryByID := make(map[int64]*storage.StockEntry, len(entries))
	for _, e := range entries {
		entryByID[e.ID] = e
	}

	facts := make(map[string]groupFacts)

	for _, r := range reports {
		if !r.IsConfirmed {
			continue
		}
		g := facts[r.GroupID]
		g.confirmed = true
		g.totalCut += r.Sizes.Total()
		facts[r.GroupID] = g
	}

	for _, u := range usages {
		groupID, ok := groupByOrder[u.OrderID]
		if !ok {
			// осиротевшая запись — пропускаем, не валим пересчёт
			continue
		}
		g := facts[groupID]
		g.produced += u.UsedSizes.Total()
		if e, ok := entryByID[u.StockEntryID]; ok && e.Date.After(g.latestEntryDate) {
			g.latestEntryDate = e.Date
		}
		facts[groupID] = g
	}

	return facts
}
