package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type statusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}

// countByStatus выполняет GROUP BY status по таблице. Имя таблицы —
// внутренняя константа, не пользовательский ввод.
func countByStatus(ctx context.Context, db *sqlx.DB, table string) (map[string]int, error) {
	var rows []statusCount
	query := fmt.Sprintf(`SELECT status, COUNT(*) AS count FROM %s GROUP BY status`, table)
	if err := db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("repository: count by status %s %w", table, err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
