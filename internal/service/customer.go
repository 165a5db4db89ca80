package service

import (
	"context"

	"github.com/iurnickita/autosalon/internal/model"
)

// Покупатели создаются только регистрацией (пакет auth)

func (service *service) CustomerList(ctx context.Context, filter model.CustomerFilter) ([]model.Customer, error) {
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, invalid("unknown role %q", filter.Role)
	}
	list, err := service.store.CustomerList(ctx, filter)
	return list, mapError(err)
}

func (service *service) CustomerGet(ctx context.Context, id int64) (model.Customer, error) {
	c, err := service.store.CustomerGet(ctx, id)
	return c, mapError(err)
}

func (service *service) CustomerUpdate(ctx context.Context, customer model.Customer) (model.Customer, error) {
	if err := validateCustomer(customer); err != nil {
		return model.Customer{}, err
	}
	c, err := service.store.CustomerUpdate(ctx, customer)
	return c, mapError(err)
}

func (service *service) CustomerDelete(ctx context.Context, id int64) error {
	return mapError(service.store.CustomerDelete(ctx, id))
}

// Журналы сделок

func (service *service) SaleHistoryList(ctx context.Context, filter model.SaleHistoryFilter) ([]model.SaleHistory, error) {
	list, err := service.store.SaleHistoryList(ctx, filter)
	return list, mapError(err)
}

func (service *service) SaleHistoryGet(ctx context.Context, id int64) (model.SaleHistory, error) {
	h, err := service.store.SaleHistoryGet(ctx, id)
	return h, mapError(err)
}

func (service *service) CustomerSaleHistoryList(ctx context.Context, filter model.CustomerSaleHistoryFilter) ([]model.CustomerSaleHistory, error) {
	list, err := service.store.CustomerSaleHistoryList(ctx, filter)
	return list, mapError(err)
}

func (service *service) CustomerSaleHistoryGet(ctx context.Context, id int64) (model.CustomerSaleHistory, error) {
	h, err := service.store.CustomerSaleHistoryGet(ctx, id)
	return h, mapError(err)
}
