package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"atelier-backend/internal/storage"
)

func (s *Storage) GetActiveStockEntries(ctx context.Context) ([]*storage.StockEntry, error) {
	const op = "storage.mysql.GetActiveStockEntries"
	return s.getStockEntries(ctx, op, `WHERE is_archived = FALSE`)
}

// GetAllStockEntries включает архивные — для истории и восстановления.
func (s *Storage) GetAllStockEntries(ctx context.Context) ([]*storage.StockEntry, error) {
	const op = "storage.mysql.GetAllStockEntries"
	return s.getStockEntries(ctx, op, ``)
}

func (s *Storage) getStockEntries(ctx context.Context, op, where string) ([]*storage.StockEntry, error) {
	stmt := `
		SELECT id, date, product_name, color, producer,
		       normal_xs, normal_s, normal_m, normal_l, normal_xl, normal_xxl,
		       defective_xs, defective_s, defective_m, defective_l, defective_xl, defective_xxl,
		       defect_reason, is_archived
		FROM stock_entries
	` + where + ` ORDER BY date, id`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения приходов: %w", op, err)
	}
	defer rows.Close()

	var entries []*storage.StockEntry
	for rows.Next() {
		var (
			entry                      storage.StockEntry
			producer                   sql.NullString
			defectReason               sql.NullString
			nxs, ns, nm, nl, nxl, nxxl int
			dxs, ds, dm, dl, dxl, dxxl int
		)

		err := rows.Scan(&entry.ID, &entry.Date, &entry.ProductName, &entry.Color, &producer,
			&nxs, &ns, &nm, &nl, &nxl, &nxxl,
			&dxs, &ds, &dm, &dl, &dxl, &dxxl,
			&defectReason, &entry.IsArchived)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if producer.Valid {
			entry.Producer = producer.String
		}
		if defectReason.Valid {
			entry.DefectReason = defectReason.String
		}
		entry.NormalSizes = sizesFromColumns(nxs, ns, nm, nl, nxl, nxxl)
		entry.DefectiveSizes = sizesFromColumns(dxs, ds, dm, dl, dxl, dxxl)

		entries = append(entries, &entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка сканирования строк: %w", op, err)
	}

	return entries, nil
}

func (s *Storage) SaveStockEntry(ctx context.Context, entry *storage.StockEntry) error {
	const op = "storage.mysql.SaveStockEntry"

	stmt := `
		INSERT INTO stock_entries
			(id, date, product_name, color, producer,
			 normal_xs, normal_s, normal_m, normal_l, normal_xl, normal_xxl,
			 defective_xs, defective_s, defective_m, defective_l, defective_xl, defective_xxl,
			 defect_reason, is_archived)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	args := []interface{}{entry.ID, entry.Date, entry.ProductName, entry.Color, nullString(entry.Producer)}
	args = append(args, sizeArgs(entry.NormalSizes)...)
	args = append(args, sizeArgs(entry.DefectiveSizes)...)
	args = append(args, nullString(entry.DefectReason), entry.IsArchived)

	_, err := s.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("%s: ошибка сохранения прихода: %w", op, err)
	}

	return nil
}

// ArchiveStockEntry — мягкое удаление: приход выпадает из распределения,
// но остаётся в истории.
func (s *Storage) ArchiveStockEntry(ctx context.Context, id int64) error {
	const op = "storage.mysql.ArchiveStockEntry"

	_, err := s.db.ExecContext(ctx, `UPDATE stock_entries SET is_archived = TRUE WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) RestoreStockEntry(ctx context.Context, id int64) error {
	const op = "storage.mysql.RestoreStockEntry"

	_, err := s.db.ExecContext(ctx, `UPDATE stock_entries SET is_archived = FALSE WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
