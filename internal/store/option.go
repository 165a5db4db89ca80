package store

import (
	"context"

	"github.com/iurnickita/autosalon/internal/model"
)

const optionColumns = "id, year, mileage, body_type, transmission_type, drive_unit_type, color, engine_type, is_active"

func scanOption(row rowScanner) (model.OptionCar, error) {
	var o model.OptionCar
	err := row.Scan(&o.ID, &o.Year, &o.Mileage, &o.BodyType, &o.TransmissionType,
		&o.DriveUnitType, &o.Color, &o.EngineType, &o.IsActive)
	return o, err
}

func (store *store) OptionCarList(ctx context.Context, filter model.OptionCarFilter) ([]model.OptionCar, error) {
	var w where
	if filter.MileageMin != nil {
		w.add("mileage >= ?", *filter.MileageMin)
	}
	if filter.MileageMax != nil {
		w.add("mileage <= ?", *filter.MileageMax)
	}
	if filter.Color != "" {
		w.add("lower(color) = lower(?)", filter.Color)
	}
	if filter.BodyType != "" {
		w.add("lower(body_type) = lower(?)", filter.BodyType)
	}

	rows, err := store.database.QueryContext(ctx,
		"SELECT "+optionColumns+" FROM option_car"+w.String()+" ORDER BY id",
		w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	options := []model.OptionCar{}
	for rows.Next() {
		o, err := scanOption(rows)
		if err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

func (store *store) OptionCarGet(ctx context.Context, id int64) (model.OptionCar, error) {
	o, err := scanOption(store.database.QueryRowContext(ctx,
		"SELECT "+optionColumns+" FROM option_car WHERE id = $1",
		id))
	if err != nil {
		return model.OptionCar{}, notFound(err)
	}
	return o, nil
}

func (store *store) OptionCarCreate(ctx context.Context, option model.OptionCar) (model.OptionCar, error) {
	o, err := scanOption(store.database.QueryRowContext(ctx,
		"INSERT INTO option_car (year, mileage, body_type, transmission_type, drive_unit_type, color, engine_type, is_active)"+
			" VALUES ($1, $2, $3, $4, $5, $6, $7, $8)"+
			" RETURNING "+optionColumns,
		option.Year,
		option.Mileage,
		option.BodyType,
		option.TransmissionType,
		option.DriveUnitType,
		option.Color,
		option.EngineType,
		option.IsActive))
	if err != nil {
		return model.OptionCar{}, mapWriteError(err)
	}
	return o, nil
}

func (store *store) OptionCarUpdate(ctx context.Context, option model.OptionCar) (model.OptionCar, error) {
	o, err := scanOption(store.database.QueryRowContext(ctx,
		"UPDATE option_car SET year = $2, mileage = $3, body_type = $4, transmission_type = $5,"+
			" drive_unit_type = $6, color = $7, engine_type = $8, is_active = $9"+
			" WHERE id = $1"+
			" RETURNING "+optionColumns,
		option.ID,
		option.Year,
		option.Mileage,
		option.BodyType,
		option.TransmissionType,
		option.DriveUnitType,
		option.Color,
		option.EngineType,
		option.IsActive))
	if err != nil {
		return model.OptionCar{}, mapWriteError(notFound(err))
	}
	return o, nil
}

func (store *store) OptionCarDelete(ctx context.Context, id int64) error {
	res, err := store.database.ExecContext(ctx, "DELETE FROM option_car WHERE id = $1", id)
	if err != nil {
		return mapDeleteError(err)
	}
	return checkAffected(res)
}
