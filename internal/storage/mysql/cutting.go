package mysql

import (
	"context"
	"fmt"

	"atelier-backend/internal/storage"
)

func (s *Storage) GetCuttingReports(ctx context.Context) ([]*storage.CuttingReport, error) {
	const op = "storage.mysql.GetCuttingReports"

	stmt := `
		SELECT id, date, group_id, product_name, color,
		       xs, s, m, l, xl, xxl, is_confirmed
		FROM cutting_reports
		ORDER BY date, id
	`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения актов раскроя: %w", op, err)
	}
	defer rows.Close()

	var reports []*storage.CuttingReport
	for rows.Next() {
		var (
			report                storage.CuttingReport
			xs, sz, m, l, xl, xxl int
		)

		err := rows.Scan(&report.ID, &report.Date, &report.GroupID, &report.ProductName,
			&report.Color, &xs, &sz, &m, &l, &xl, &xxl, &report.IsConfirmed)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		report.Sizes = sizesFromColumns(xs, sz, m, l, xl, xxl)
		reports = append(reports, &report)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка сканирования строк: %w", op, err)
	}

	return reports, nil
}

// ReplaceCuttingReport удаляет старый акт и вставляет новый одной
// транзакцией. Акты не правятся по месту — только целиком.
func (s *Storage) ReplaceCuttingReport(ctx context.Context, oldID int64, report *storage.CuttingReport) error {
	const op = "storage.mysql.ReplaceCuttingReport"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cutting_reports WHERE id = ?`, oldID); err != nil {
		return fmt.Errorf("%s: delete old report: %w", op, err)
	}

	stmt := `
		INSERT INTO cutting_reports
			(id, date, group_id, product_name, color, xs, s, m, l, xl, xxl, is_confirmed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	args := []interface{}{report.ID, report.Date, report.GroupID, report.ProductName, report.Color}
	args = append(args, sizeArgs(report.Sizes)...)
	args = append(args, report.IsConfirmed)

	if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("%s: insert report: %w", op, err)
	}

	return tx.Commit()
}

// SaveCuttingReport создаёт пустой неподтверждённый акт при размещении
// заказа.
func (s *Storage) SaveCuttingReport(ctx context.Context, report *storage.CuttingReport) error {
	const op = "storage.mysql.SaveCuttingReport"

	stmt := `
		INSERT INTO cutting_reports
			(id, date, group_id, product_name, color, xs, s, m, l, xl, xxl, is_confirmed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	args := []interface{}{report.ID, report.Date, report.GroupID, report.ProductName, report.Color}
	args = append(args, sizeArgs(report.Sizes)...)
	args = append(args, report.IsConfirmed)

	_, err := s.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("%s: ошибка сохранения акта раскроя: %w", op, err)
	}

	return nil
}
