package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"atelier-backend/internal/storage"
)

func (s *Storage) GetProducers(ctx context.Context) ([]*storage.Producer, error) {
	const op = "storage.mysql.GetProducers"

	stmt := `SELECT id, name, phone, address FROM producers ORDER BY name`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения производителей: %w", op, err)
	}
	defer rows.Close()

	var producers []*storage.Producer
	for rows.Next() {
		var (
			p              storage.Producer
			phone, address sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &phone, &address); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if phone.Valid {
			p.Phone = phone.String
		}
		if address.Valid {
			p.Address = address.String
		}
		producers = append(producers, &p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка сканирования строк: %w", op, err)
	}

	return producers, nil
}

func (s *Storage) SaveProducer(ctx context.Context, p *storage.Producer) (int64, error) {
	const op = "storage.mysql.SaveProducer"

	stmt := `INSERT INTO producers (name, phone, address) VALUES (?, ?, ?)`

	exec, err := s.db.ExecContext(ctx, stmt, p.Name, nullString(p.Phone), nullString(p.Address))
	if err != nil {
		// имя уникально
		if mysqlErr, ok := err.(*mysql.MySQLError); ok && mysqlErr.Number == 1062 {
			return 0, fmt.Errorf("%s: производитель '%s' уже существует: %w", op, p.Name, err)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return exec.LastInsertId()
}

func (s *Storage) GetColors(ctx context.Context) ([]*storage.Color, error) {
	const op = "storage.mysql.GetColors"

	stmt := `SELECT id, name FROM colors ORDER BY name`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var colors []*storage.Color
	for rows.Next() {
		var c storage.Color
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		colors = append(colors, &c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return colors, nil
}

func (s *Storage) GetDefectReasons(ctx context.Context) ([]*storage.DefectReason, error) {
	const op = "storage.mysql.GetDefectReasons"

	stmt := `SELECT id, name FROM defect_reasons ORDER BY name`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var reasons []*storage.DefectReason
	for rows.Next() {
		var r storage.DefectReason
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		reasons = append(reasons, &r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return reasons, nil
}

func (s *Storage) SaveColor(ctx context.Context, name string) (int64, error) {
	const op = "storage.mysql.SaveColor"

	exec, err := s.db.ExecContext(ctx, `INSERT INTO colors (name) VALUES (?)`, name)
	if err != nil {
		if mysqlErr, ok := err.(*mysql.MySQLError); ok && mysqlErr.Number == 1062 {
			return 0, fmt.Errorf("%s: цвет '%s' уже существует: %w", op, name, err)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return exec.LastInsertId()
}

func (s *Storage) SaveDefectReason(ctx context.Context, name string) (int64, error) {
	const op = "storage.mysql.SaveDefectReason"

	exec, err := s.db.ExecContext(ctx, `INSERT INTO defect_reasons (name) VALUES (?)`, name)
	if err != nil {
		if mysqlErr, ok := err.(*mysql.MySQLError); ok && mysqlErr.Number == 1062 {
			return 0, fmt.Errorf("%s: причина брака '%s' уже существует: %w", op, name, err)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return exec.LastInsertId()
}
