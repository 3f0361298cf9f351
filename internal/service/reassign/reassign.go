package reassign

import (
	"context"
	"fmt"

	"atelier-backend/internal/idgen"
	"atelier-backend/internal/storage"
)

// UnassignedProducer — сигнальное значение «снять с производителя».
const UnassignedProducer = "unassigned"

// Part names one size bucket of one order row to move.
type Part struct {
	OrderID string       `json:"order_id"`
	Size    storage.Size `json:"size"`
}

// Redistribute moves the named size quantities to the target producer's row
// inside the same order group, creating that row when the group does not
// have one yet. The source quantity at the size is zeroed; rows whose total
// drops to zero are removed. A part whose current producer already equals
// the target is a no-op. The input slice is never mutated — callers persist
// the returned rows as a whole-group replace.
func Redistribute(orders []*storage.Order, parts []Part, targetProducer string) []*storage.Order {
	if targetProducer == UnassignedProducer {
		targetProducer = ""
	}

	out := make([]*storage.Order, 0, len(orders))
	byID := make(map[string]*storage.Order, len(orders))
	for _, o := range orders {
		c := o.Clone()
		out = append(out, c)
		byID[c.ID] = c
	}

	for _, part := range parts {
		source, ok := byID[part.OrderID]
		if !ok || source.Producer == targetProducer {
			continue
		}
		qty := source.Sizes[part.Size]
		if qty == 0 {
			continue
		}

		target := findGroupRow(out, source.GroupID, targetProducer)
		if target == nil {
			target = &storage.Order{
				ID:          idgen.OrderID(source.GroupID, targetProducer),
				GroupID:     source.GroupID,
				CreatedDate: source.CreatedDate,
				ProductName: source.ProductName,
				Color:       source.Color,
				Producer:    targetProducer,
				Sizes:       storage.Sizes{},
				Status:      source.Status,
			}
			out = append(out, target)
			byID[target.ID] = target
		}

		target.Sizes[part.Size] += qty
		source.Sizes[part.Size] = 0
		target.TotalQuantity = target.Sizes.Total()
		source.TotalQuantity = source.Sizes.Total()
	}

	// пустые строки после переноса не храним
	kept := out[:0]
	for _, o := range out {
		if o.TotalQuantity > 0 {
			kept = append(kept, o)
		}
	}
	return kept
}

type GroupStore interface {
	ReplaceOrderGroup(ctx context.Context, groupID string, orders []*storage.Order) error
}

type Service struct {
	store GroupStore
}

func NewService(store GroupStore) *Service {
	return &Service{store: store}
}

// Reassign redistributes the parts and persists every touched group as a
// whole-group replace, one transaction per group.
func (s *Service) Reassign(ctx context.Context, orders []*storage.Order, parts []Part, targetProducer string) ([]*storage.Order, error) {
	const op = "service.reassign.Reassign"

	result := Redistribute(orders, parts, targetProducer)

	touched := make(map[string]bool)
	byID := make(map[string]*storage.Order, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}
	for _, part := range parts {
		if o, ok := byID[part.OrderID]; ok {
			touched[o.GroupID] = true
		}
	}

	for groupID := range touched {
		var rows []*storage.Order
		for _, o := range result {
			if o.GroupID == groupID {
				rows = append(rows, o)
			}
		}
		if err := s.store.ReplaceOrderGroup(ctx, groupID, rows); err != nil {
			return nil, fmt.Errorf("%s: группа %s: %w", op, groupID, err)
		}
	}

	return result, nil
}

func findGroupRow(orders []*storage.Order, groupID, producer string) *storage.Order {
	for _, o := range orders {
		if o.GroupID == groupID && o.Producer == producer {
			return o
		}
	}
	return nil
}
