package store

import (
	"context"

	"github.com/iurnickita/autosalon/internal/model"
)

var carColumns = "c.id, c.model_name, c.is_active, " +
	idsAgg("autosalon_id", "autosalon_car", "car_id", "c.id") + ", " +
	idsAgg("option_id", "car_option", "car_id", "c.id")

func scanCar(row rowScanner) (model.Car, error) {
	var c model.Car
	var autosalons, options string
	if err := row.Scan(&c.ID, &c.ModelName, &c.IsActive, &autosalons, &options); err != nil {
		return model.Car{}, err
	}
	c.AutoSalonIDs = idList(autosalons)
	c.OptionIDs = idList(options)
	return c, nil
}

func (store *store) CarList(ctx context.Context, filter model.CarFilter) ([]model.Car, error) {
	var w where
	if filter.ModelName != "" {
		w.add("c.model_name ILIKE ?", likeEscape(filter.ModelName))
	}
	if filter.IsActive != nil {
		w.add("c.is_active = ?", *filter.IsActive)
	}
	if filter.AutoSalonID != 0 {
		w.add("EXISTS (SELECT 1 FROM autosalon_car ac WHERE ac.car_id = c.id AND ac.autosalon_id = ?)", filter.AutoSalonID)
	}

	rows, err := store.database.QueryContext(ctx,
		"SELECT "+carColumns+" FROM car c"+w.String()+" ORDER BY c.id",
		w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cars := []model.Car{}
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

func (store *store) CarGet(ctx context.Context, id int64) (model.Car, error) {
	return getCar(ctx, store.database, id)
}

func getCar(ctx context.Context, q querier, id int64) (model.Car, error) {
	c, err := scanCar(q.QueryRowContext(ctx,
		"SELECT "+carColumns+" FROM car c WHERE c.id = $1",
		id))
	if err != nil {
		return model.Car{}, notFound(err)
	}
	return c, nil
}

// getCarByModel - первая активная машина с таким названием модели (без учета регистра)
func getCarByModel(ctx context.Context, q querier, modelName string) (model.Car, error) {
	c, err := scanCar(q.QueryRowContext(ctx,
		"SELECT "+carColumns+" FROM car c"+
			" WHERE lower(c.model_name) = lower($1) AND c.is_active"+
			" ORDER BY c.id LIMIT 1",
		modelName))
	if err != nil {
		return model.Car{}, notFound(err)
	}
	return c, nil
}

func (store *store) CarCreate(ctx context.Context, car model.Car) (model.Car, error) {
	var id int64
	err := store.inTx(ctx, func(q querier) error {
		row := q.QueryRowContext(ctx,
			"INSERT INTO car (model_name, is_active)"+
				" VALUES ($1, $2)"+
				" RETURNING id",
			car.ModelName,
			car.IsActive)
		if err := row.Scan(&id); err != nil {
			return err
		}
		return saveCarLinks(ctx, q, id, car, addLinks)
	})
	if err != nil {
		return model.Car{}, mapWriteError(err)
	}
	return store.CarGet(ctx, id)
}

func (store *store) CarUpdate(ctx context.Context, car model.Car) (model.Car, error) {
	err := store.inTx(ctx, func(q querier) error {
		res, err := q.ExecContext(ctx,
			"UPDATE car SET model_name = $2, is_active = $3 WHERE id = $1",
			car.ID,
			car.ModelName,
			car.IsActive)
		if err != nil {
			return err
		}
		if err := checkAffected(res); err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx, "DELETE FROM autosalon_car WHERE car_id = $1", car.ID); err != nil {
			return err
		}
		return saveCarLinks(ctx, q, car.ID, car, replaceLinks)
	})
	if err != nil {
		return model.Car{}, mapWriteError(err)
	}
	return store.CarGet(ctx, car.ID)
}

func saveCarLinks(ctx context.Context, q querier, id int64, car model.Car, save linkFunc) error {
	if err := save(ctx, q, "car_option", "car_id", id, "option_id", car.OptionIDs); err != nil {
		return err
	}
	// Связь с автосалонами хранится со стороны автосалона
	for _, autosalonID := range car.AutoSalonIDs {
		if err := addLinks(ctx, q, "autosalon_car", "autosalon_id", autosalonID, "car_id", []int64{id}); err != nil {
			return err
		}
	}
	return nil
}

func (store *store) CarDelete(ctx context.Context, id int64) error {
	res, err := store.database.ExecContext(ctx, "DELETE FROM car WHERE id = $1", id)
	if err != nil {
		return mapDeleteError(err)
	}
	return checkAffected(res)
}
