package service

import (
	"context"

	"github.com/iurnickita/autosalon/internal/model"
)

// Автосалоны

func (service *service) AutoSalonList(ctx context.Context, filter model.AutoSalonFilter) ([]model.AutoSalon, error) {
	list, err := service.store.AutoSalonList(ctx, filter)
	return list, mapError(err)
}

func (service *service) AutoSalonGet(ctx context.Context, id int64) (model.AutoSalon, error) {
	a, err := service.store.AutoSalonGet(ctx, id)
	return a, mapError(err)
}

func (service *service) AutoSalonCreate(ctx context.Context, autosalon model.AutoSalon) (model.AutoSalon, error) {
	if err := validateAutoSalon(autosalon); err != nil {
		return model.AutoSalon{}, err
	}
	a, err := service.store.AutoSalonCreate(ctx, autosalon)
	return a, mapError(err)
}

func (service *service) AutoSalonUpdate(ctx context.Context, autosalon model.AutoSalon) (model.AutoSalon, error) {
	if err := validateAutoSalon(autosalon); err != nil {
		return model.AutoSalon{}, err
	}
	a, err := service.store.AutoSalonUpdate(ctx, autosalon)
	return a, mapError(err)
}

func (service *service) AutoSalonDelete(ctx context.Context, id int64) error {
	return mapError(service.store.AutoSalonDelete(ctx, id))
}

// Машины

func (service *service) CarList(ctx context.Context, filter model.CarFilter) ([]model.Car, error) {
	list, err := service.store.CarList(ctx, filter)
	return list, mapError(err)
}

func (service *service) CarGet(ctx context.Context, id int64) (model.Car, error) {
	c, err := service.store.CarGet(ctx, id)
	return c, mapError(err)
}

func (service *service) CarCreate(ctx context.Context, car model.Car) (model.Car, error) {
	if err := validateCar(car); err != nil {
		return model.Car{}, err
	}
	c, err := service.store.CarCreate(ctx, car)
	return c, mapError(err)
}

func (service *service) CarUpdate(ctx context.Context, car model.Car) (model.Car, error) {
	if err := validateCar(car); err != nil {
		return model.Car{}, err
	}
	c, err := service.store.CarUpdate(ctx, car)
	return c, mapError(err)
}

func (service *service) CarDelete(ctx context.Context, id int64) error {
	return mapError(service.store.CarDelete(ctx, id))
}

// Комплектации

func (service *service) OptionCarList(ctx context.Context, filter model.OptionCarFilter) ([]model.OptionCar, error) {
	if filter.MileageMin != nil && filter.MileageMax != nil && *filter.MileageMin > *filter.MileageMax {
		return nil, invalid("mileage_min is greater than mileage_max")
	}
	list, err := service.store.OptionCarList(ctx, filter)
	return list, mapError(err)
}

func (service *service) OptionCarGet(ctx context.Context, id int64) (model.OptionCar, error) {
	o, err := service.store.OptionCarGet(ctx, id)
	return o, mapError(err)
}

func (service *service) OptionCarCreate(ctx context.Context, option model.OptionCar) (model.OptionCar, error) {
	if err := validateOptionCar(option); err != nil {
		return model.OptionCar{}, err
	}
	o, err := service.store.OptionCarCreate(ctx, option)
	return o, mapError(err)
}

func (service *service) OptionCarUpdate(ctx context.Context, option model.OptionCar) (model.OptionCar, error) {
	if err := validateOptionCar(option); err != nil {
		return model.OptionCar{}, err
	}
	o, err := service.store.OptionCarUpdate(ctx, option)
	return o, mapError(err)
}

func (service *service) OptionCarDelete(ctx context.Context, id int64) error {
	return mapError(service.store.OptionCarDelete(ctx, id))
}

// Поставщики

func (service *service) SupplierList(ctx context.Context, filter model.SupplierFilter) ([]model.Supplier, error) {
	list, err := service.store.SupplierList(ctx, filter)
	return list, mapError(err)
}

func (service *service) SupplierGet(ctx context.Context, id int64) (model.Supplier, error) {
	s, err := service.store.SupplierGet(ctx, id)
	return s, mapError(err)
}

func (service *service) SupplierCreate(ctx context.Context, supplier model.Supplier) (model.Supplier, error) {
	if err := validateSupplier(supplier); err != nil {
		return model.Supplier{}, err
	}
	s, err := service.store.SupplierCreate(ctx, supplier)
	return s, mapError(err)
}

func (service *service) SupplierUpdate(ctx context.Context, supplier model.Supplier) (model.Supplier, error) {
	if err := validateSupplier(supplier); err != nil {
		return model.Supplier{}, err
	}
	s, err := service.store.SupplierUpdate(ctx, supplier)
	return s, mapError(err)
}

func (service *service) SupplierDelete(ctx context.Context, id int64) error {
	return mapError(service.store.SupplierDelete(ctx, id))
}
