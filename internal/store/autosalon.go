package store

import (
	"context"

	"github.com/iurnickita/autosalon/internal/model"
)

var autosalonColumns = "a.id, a.name, a.location, a.balance, a.is_active, " +
	idsAgg("supplier_id", "autosalon_supplier", "autosalon_id", "a.id") + ", " +
	idsAgg("customer_id", "autosalon_customer", "autosalon_id", "a.id") + ", " +
	idsAgg("car_id", "autosalon_car", "autosalon_id", "a.id")

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAutoSalon(row rowScanner) (model.AutoSalon, error) {
	var a model.AutoSalon
	var suppliers, customers, cars string
	err := row.Scan(&a.ID, &a.Name, &a.Location, &a.Balance, &a.IsActive, &suppliers, &customers, &cars)
	if err != nil {
		return model.AutoSalon{}, err
	}
	a.SupplierIDs = idList(suppliers)
	a.CustomerIDs = idList(customers)
	a.CarIDs = idList(cars)
	return a, nil
}

func (store *store) AutoSalonList(ctx context.Context, filter model.AutoSalonFilter) ([]model.AutoSalon, error) {
	var w where
	if filter.Name != "" {
		w.add("a.name ILIKE ?", likeEscape(filter.Name))
	}
	if filter.IsActive != nil {
		w.add("a.is_active = ?", *filter.IsActive)
	}

	rows, err := store.database.QueryContext(ctx,
		"SELECT "+autosalonColumns+" FROM autosalon a"+w.String()+" ORDER BY a.id",
		w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	autosalons := []model.AutoSalon{}
	for rows.Next() {
		a, err := scanAutoSalon(rows)
		if err != nil {
			return nil, err
		}
		autosalons = append(autosalons, a)
	}
	return autosalons, rows.Err()
}

func (store *store) AutoSalonGet(ctx context.Context, id int64) (model.AutoSalon, error) {
	return getAutoSalon(ctx, store.database, id, false)
}

func getAutoSalon(ctx context.Context, q querier, id int64, forUpdate bool) (model.AutoSalon, error) {
	if forUpdate {
		if err := lockRow(ctx, q, "autosalon", id); err != nil {
			return model.AutoSalon{}, err
		}
	}
	a, err := scanAutoSalon(q.QueryRowContext(ctx,
		"SELECT "+autosalonColumns+" FROM autosalon a WHERE a.id = $1",
		id))
	if err != nil {
		return model.AutoSalon{}, notFound(err)
	}
	return a, nil
}

func (store *store) AutoSalonCreate(ctx context.Context, autosalon model.AutoSalon) (model.AutoSalon, error) {
	var id int64
	err := store.inTx(ctx, func(q querier) error {
		row := q.QueryRowContext(ctx,
			"INSERT INTO autosalon (name, location, balance, is_active)"+
				" VALUES ($1, $2, $3, $4)"+
				" RETURNING id",
			autosalon.Name,
			autosalon.Location,
			autosalon.Balance,
			autosalon.IsActive)
		if err := row.Scan(&id); err != nil {
			return err
		}
		return saveAutoSalonLinks(ctx, q, id, autosalon, addLinks)
	})
	if err != nil {
		return model.AutoSalon{}, mapWriteError(err)
	}
	return store.AutoSalonGet(ctx, id)
}

// AutoSalonUpdate баланс не меняет: его меняют только сделки
func (store *store) AutoSalonUpdate(ctx context.Context, autosalon model.AutoSalon) (model.AutoSalon, error) {
	err := store.inTx(ctx, func(q querier) error {
		res, err := q.ExecContext(ctx,
			"UPDATE autosalon SET name = $2, location = $3, is_active = $4"+
				" WHERE id = $1",
			autosalon.ID,
			autosalon.Name,
			autosalon.Location,
			autosalon.IsActive)
		if err != nil {
			return err
		}
		if err := checkAffected(res); err != nil {
			return err
		}
		return saveAutoSalonLinks(ctx, q, autosalon.ID, autosalon, replaceLinks)
	})
	if err != nil {
		return model.AutoSalon{}, mapWriteError(err)
	}
	return store.AutoSalonGet(ctx, autosalon.ID)
}

type linkFunc func(ctx context.Context, q querier, table, ownerCol string, owner int64, otherCol string, ids []int64) error

func saveAutoSalonLinks(ctx context.Context, q querier, id int64, autosalon model.AutoSalon, save linkFunc) error {
	if err := save(ctx, q, "autosalon_supplier", "autosalon_id", id, "supplier_id", autosalon.SupplierIDs); err != nil {
		return err
	}
	if err := save(ctx, q, "autosalon_customer", "autosalon_id", id, "customer_id", autosalon.CustomerIDs); err != nil {
		return err
	}
	return save(ctx, q, "autosalon_car", "autosalon_id", id, "car_id", autosalon.CarIDs)
}

func (store *store) AutoSalonDelete(ctx context.Context, id int64) error {
	res, err := store.database.ExecContext(ctx, "DELETE FROM autosalon WHERE id = $1", id)
	if err != nil {
		return mapDeleteError(err)
	}
	return checkAffected(res)
}

func (store *store) AutoSalonActiveIDs(ctx context.Context) ([]int64, error) {
	rows, err := store.database.QueryContext(ctx,
		"SELECT id FROM autosalon WHERE is_active ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
