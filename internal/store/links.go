package store

import (
	"context"
)

// lockRow берет блокировку строки до конца транзакции
func lockRow(ctx context.Context, q querier, table string, id int64) error {
	var locked int64
	err := q.QueryRowContext(ctx,
		"SELECT id FROM "+table+" WHERE id = $1 FOR UPDATE",
		id).Scan(&locked)
	return notFound(err)
}

// replaceLinks заменяет набор связей owner -> ids в таблице связи
func replaceLinks(ctx context.Context, q querier, table, ownerCol string, owner int64, otherCol string, ids []int64) error {
	_, err := q.ExecContext(ctx,
		"DELETE FROM "+table+" WHERE "+ownerCol+" = $1",
		owner)
	if err != nil {
		return err
	}
	return addLinks(ctx, q, table, ownerCol, owner, otherCol, ids)
}

// addLinks добавляет связи, существующие пропускаются
func addLinks(ctx context.Context, q querier, table, ownerCol string, owner int64, otherCol string, ids []int64) error {
	for _, id := range ids {
		_, err := q.ExecContext(ctx,
			"INSERT INTO "+table+" ("+ownerCol+", "+otherCol+")"+
				" VALUES ($1, $2)"+
				" ON CONFLICT DO NOTHING",
			owner,
			id)
		if err != nil {
			return err
		}
	}
	return nil
}
