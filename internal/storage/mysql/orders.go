package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"atelier-backend/internal/storage"
)

func (s *Storage) GetOrders(ctx context.Context) ([]*storage.Order, error) {
	const op = "storage.mysql.GetOrders"

	stmt := `
		SELECT id, group_id, created_date, completion_date, product_name, color, producer,
		       xs, s, m, l, xl, xxl, total_quantity, status
		FROM atelier_orders
		ORDER BY created_date, id
	`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения заказов: %w", op, err)
	}
	defer rows.Close()

	var orders []*storage.Order
	for rows.Next() {
		var (
			order                 storage.Order
			completionDate        sql.NullTime
			producer              sql.NullString
			xs, sz, m, l, xl, xxl int
		)

		err := rows.Scan(&order.ID, &order.GroupID, &order.CreatedDate, &completionDate,
			&order.ProductName, &order.Color, &producer,
			&xs, &sz, &m, &l, &xl, &xxl, &order.TotalQuantity, &order.Status)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if completionDate.Valid {
			d := completionDate.Time
			order.CompletionDate = &d
		}
		if producer.Valid {
			order.Producer = producer.String
		}
		order.Sizes = sizesFromColumns(xs, sz, m, l, xl, xxl)

		orders = append(orders, &order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка сканирования строк: %w", op, err)
	}

	return orders, nil
}

func (s *Storage) SaveOrder(ctx context.Context, order *storage.Order) error {
	const op = "storage.mysql.SaveOrder"

	stmt := `
		INSERT INTO atelier_orders
			(id, group_id, created_date, completion_date, product_name, color, producer,
			 xs, s, m, l, xl, xxl, total_quantity, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	args := []interface{}{
		order.ID, order.GroupID, order.CreatedDate, order.CompletionDate,
		order.ProductName, order.Color, nullString(order.Producer),
	}
	args = append(args, sizeArgs(order.Sizes)...)
	args = append(args, order.TotalQuantity, order.Status)

	_, err := s.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("%s: ошибка сохранения заказа: %w", op, err)
	}

	return nil
}

// ReplaceOrderGroup rewrites every row of one order group in a single
// transaction. Перенос между производителями всегда сохраняется целиком:
// либо вся группа, либо ничего.
func (s *Storage) ReplaceOrderGroup(ctx context.Context, groupID string, orders []*storage.Order) error {
	const op = "storage.mysql.ReplaceOrderGroup"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM atelier_orders WHERE group_id = ?`, groupID); err != nil {
		return fmt.Errorf("%s: delete group: %w", op, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO atelier_orders
			(id, group_id, created_date, completion_date, product_name, color, producer,
			 xs, s, m, l, xl, xxl, total_quantity, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%s: prepare statement: %w", op, err)
	}
	defer stmt.Close()

	for _, order := range orders {
		if order.GroupID != groupID {
			return fmt.Errorf("%s: заказ %s не из группы %s", op, order.ID, groupID)
		}
		args := []interface{}{
			order.ID, order.GroupID, order.CreatedDate, order.CompletionDate,
			order.ProductName, order.Color, nullString(order.Producer),
		}
		args = append(args, sizeArgs(order.Sizes)...)
		args = append(args, order.TotalQuantity, order.Status)

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("%s: insert order %s: %w", op, order.ID, err)
		}
	}

	return tx.Commit()
}

// UpdateOrderCompletion persists one resolved completed transition.
func (s *Storage) UpdateOrderCompletion(ctx context.Context, orderID string, completionDate time.Time) error {
	const op = "storage.mysql.UpdateOrderCompletion"

	stmt := `
		UPDATE atelier_orders
		SET status = ?, completion_date = ?
		WHERE id = ? AND status != ?
	`

	_, err := s.db.ExecContext(ctx, stmt, storage.StatusCompleted, completionDate, orderID, storage.StatusCancelled)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) CancelOrder(ctx context.Context, orderID string) error {
	const op = "storage.mysql.CancelOrder"

	stmt := `UPDATE atelier_orders SET status = ?, completion_date = NULL WHERE id = ?`

	_, err := s.db.ExecContext(ctx, stmt, storage.StatusCancelled, orderID)
	if err != nil {
		return fmt.Errorf("%s: ошибка отмены заказа: %w", op, err)
	}

	return nil
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
