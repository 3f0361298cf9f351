package snapshot

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"atelier-backend/internal/storage"
)

type SnapshotStorage interface {
	GetOrders(ctx context.Context) ([]*storage.Order, error)
	GetActiveStockEntries(ctx context.Context) ([]*storage.StockEntry, error)
	GetCuttingReports(ctx context.Context) ([]*storage.CuttingReport, error)
	GetProducers(ctx context.Context) ([]*storage.Producer, error)
	GetColors(ctx context.Context) ([]*storage.Color, error)
	GetDefectReasons(ctx context.Context) ([]*storage.DefectReason, error)
}

type Loader struct {
	storage SnapshotStorage
}

func NewLoader(storage SnapshotStorage) *Loader {
	return &Loader{storage: storage}
}

// Load собирает полный срез данных; шесть выборок идут параллельно,
// первая ошибка отменяет остальные.
func (l *Loader) Load(ctx context.Context) (*storage.Snapshot, error) {
	const op = "service.snapshot.Load"

	snap := &storage.Snapshot{}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Orders, err = l.storage.GetOrders(gCtx)
		if err != nil {
			return fmt.Errorf("orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.StockEntries, err = l.storage.GetActiveStockEntries(gCtx)
		if err != nil {
			return fmt.Errorf("stock entries: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.CuttingReports, err = l.storage.GetCuttingReports(gCtx)
		if err != nil {
			return fmt.Errorf("cutting reports: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.Producers, err = l.storage.GetProducers(gCtx)
		if err != nil {
			return fmt.Errorf("producers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.Colors, err = l.storage.GetColors(gCtx)
		if err != nil {
			return fmt.Errorf("colors: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.DefectReasons, err = l.storage.GetDefectReasons(gCtx)
		if err != nil {
			return fmt.Errorf("defect reasons: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return snap, nil
}
