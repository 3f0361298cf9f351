package mysql

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"atelier-backend/internal/config"
	"atelier-backend/internal/storage"
)

type Storage struct {
	db *sql.DB
}

func New(cfg config.Config) (*Storage, error) {
	const op = "storage.mysql.New"

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=%v",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.ParseTime,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// Размерные ячейки лежат колонками xs..xxl; ниже перевод колонок в вектор
// и вектора в аргументы запроса.
func sizesFromColumns(xs, s, m, l, xl, xxl int) storage.Sizes {
	sizes := storage.Sizes{}
	cols := []struct {
		size storage.Size
		qty  int
	}{
		{storage.SizeXS, xs},
		{storage.SizeS, s},
		{storage.SizeM, m},
		{storage.SizeL, l},
		{storage.SizeXL, xl},
		{storage.SizeXXL, xxl},
	}
	for _, c := range cols {
		if c.qty != 0 {
			sizes[c.size] = c.qty
		}
	}
	return sizes
}

func sizeArgs(sizes storage.Sizes) []interface{} {
	args := make([]interface{}, 0, len(storage.AllSizes))
	for _, size := range storage.AllSizes {
		args = append(args, sizes[size])
	}
	return args
}
