package recompute

import (
	"context"
	"fmt"
	"time"

	"atelier-backend/internal/service/allocation"
	"atelier-backend/internal/service/reporting"
	"atelier-backend/internal/service/status"
	"atelier-backend/internal/storage"
)

type SnapshotLoader interface {
	Load(ctx context.Context) (*storage.Snapshot, error)
}

type CompletionStore interface {
	UpdateOrderCompletion(ctx context.Context, orderID string, completionDate time.Time) error
}

// Result — всё производное состояние одного пересчёта.
type Result struct {
	Snapshot      *storage.Snapshot        `json:"-"`
	Usages        []*storage.StockUsage    `json:"usages"`
	Orders        []*storage.Order         `json:"orders"`
	ProducerStats []reporting.ProducerStat `json:"producer_stats"`
	Defects       []reporting.DefectStat   `json:"defects"`
	// глобальная доля брака: использованный брак / подтверждённый раскрой
	DefectPercentage float64 `json:"defect_percentage"`
}

// Service ties the pipeline together: snapshot → allocation → status →
// aggregation. The whole derivation is recomputed from scratch on every
// run; nothing is cached between snapshots.
type Service struct {
	loader SnapshotLoader
	store  CompletionStore
	now    func() time.Time
}

func NewService(loader SnapshotLoader, store CompletionStore) *Service {
	return &Service{loader: loader, store: store, now: time.Now}
}

func (s *Service) Run(ctx context.Context) (*Result, error) {
	const op = "service.recompute.Run"

	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return Derive(snap, s.now()), nil
}

// Derive computes the full derived state over one consistent snapshot.
// Pure: the snapshot is not mutated and identical snapshots produce
// identical results.
func Derive(snap *storage.Snapshot, now time.Time) *Result {
	active := snap.ActiveStockEntries()
	usages := allocation.Allocate(snap.Orders, active, snap.CuttingReports)
	resolved := status.Resolve(snap.Orders, usages, snap.CuttingReports, active, now)

	return &Result{
		Snapshot:         snap,
		Usages:           usages,
		Orders:           resolved,
		ProducerStats:    reporting.ProducerStats(resolved),
		Defects:          reporting.DefectBreakdown(usages, active, resolved),
		DefectPercentage: reporting.DefectPercentage(usages, active, resolved, snap.CuttingReports, reporting.Scope{}),
	}
}

// PersistCompletions writes resolved completed transitions back to the
// store. Держим запись отдельно от пересчёта: Resolve сам ничего
// не сохраняет. Only rows that changed to completed during this run are
// written.
func (s *Service) PersistCompletions(ctx context.Context, res *Result) error {
	const op = "service.recompute.PersistCompletions"

	storedStatus := make(map[string]storage.OrderStatus, len(res.Snapshot.Orders))
	for _, o := range res.Snapshot.Orders {
		storedStatus[o.ID] = o.Status
	}

	for _, o := range res.Orders {
		if o.Status != storage.StatusCompleted || o.CompletionDate == nil {
			continue
		}
		if storedStatus[o.ID] == storage.StatusCompleted {
			continue
		}
		if err := s.store.UpdateOrderCompletion(ctx, o.ID, *o.CompletionDate); err != nil {
			return fmt.Errorf("%s: order %s: %w", op, o.ID, err)
		}
	}
	return nil
}
