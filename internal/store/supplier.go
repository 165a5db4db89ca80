package store

import (
	"context"

	"github.com/iurnickita/autosalon/internal/model"
)

var supplierColumns = "s.id, s.name, s.year_of_issue, s.price, s.is_active, " +
	idsAgg("car_id", "supplier_car", "supplier_id", "s.id")

func scanSupplier(row rowScanner) (model.Supplier, error) {
	var s model.Supplier
	var cars string
	if err := row.Scan(&s.ID, &s.Name, &s.YearOfIssue, &s.Price, &s.IsActive, &cars); err != nil {
		return model.Supplier{}, err
	}
	s.CarIDs = idList(cars)
	return s, nil
}

func (store *store) SupplierList(ctx context.Context, filter model.SupplierFilter) ([]model.Supplier, error) {
	var w where
	if filter.Name != "" {
		w.add("s.name ILIKE ?", likeEscape(filter.Name))
	}
	if filter.IsActive != nil {
		w.add("s.is_active = ?", *filter.IsActive)
	}
	if filter.Price.Valid {
		w.add("s.price = ?", filter.Price.Decimal)
	}
	return listSuppliers(ctx, store.database, w)
}

func listSuppliers(ctx context.Context, q querier, w where) ([]model.Supplier, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT "+supplierColumns+" FROM supplier s"+w.String()+" ORDER BY s.id",
		w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suppliers := []model.Supplier{}
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

func (store *store) SupplierGet(ctx context.Context, id int64) (model.Supplier, error) {
	return getSupplier(ctx, store.database, id)
}

func getSupplier(ctx context.Context, q querier, id int64) (model.Supplier, error) {
	s, err := scanSupplier(q.QueryRowContext(ctx,
		"SELECT "+supplierColumns+" FROM supplier s WHERE s.id = $1",
		id))
	if err != nil {
		return model.Supplier{}, notFound(err)
	}
	return s, nil
}

func (store *store) SupplierCreate(ctx context.Context, supplier model.Supplier) (model.Supplier, error) {
	var id int64
	err := store.inTx(ctx, func(q querier) error {
		row := q.QueryRowContext(ctx,
			"INSERT INTO supplier (name, year_of_issue, price, is_active)"+
				" VALUES ($1, $2, $3, $4)"+
				" RETURNING id",
			supplier.Name,
			supplier.YearOfIssue,
			supplier.Price,
			supplier.IsActive)
		if err := row.Scan(&id); err != nil {
			return err
		}
		return addLinks(ctx, q, "supplier_car", "supplier_id", id, "car_id", supplier.CarIDs)
	})
	if err != nil {
		return model.Supplier{}, mapWriteError(err)
	}
	return store.SupplierGet(ctx, id)
}

func (store *store) SupplierUpdate(ctx context.Context, supplier model.Supplier) (model.Supplier, error) {
	err := store.inTx(ctx, func(q querier) error {
		res, err := q.ExecContext(ctx,
			"UPDATE supplier SET name = $2, year_of_issue = $3, price = $4, is_active = $5"+
				" WHERE id = $1",
			supplier.ID,
			supplier.Name,
			supplier.YearOfIssue,
			supplier.Price,
			supplier.IsActive)
		if err != nil {
			return err
		}
		if err := checkAffected(res); err != nil {
			return err
		}
		return replaceLinks(ctx, q, "supplier_car", "supplier_id", supplier.ID, "car_id", supplier.CarIDs)
	})
	if err != nil {
		return model.Supplier{}, mapWriteError(err)
	}
	return store.SupplierGet(ctx, supplier.ID)
}

func (store *store) SupplierDelete(ctx context.Context, id int64) error {
	res, err := store.database.ExecContext(ctx, "DELETE FROM supplier WHERE id = $1", id)
	if err != nil {
		return mapDeleteError(err)
	}
	return checkAffected(res)
}
