package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/iurnickita/autosalon/internal/deal"
	"github.com/iurnickita/autosalon/internal/model"
	"github.com/iurnickita/autosalon/internal/notify"
)

func (service *service) DealAutoSalonSupplier(ctx context.Context, autosalonID int64, supplierID int64) (model.SaleHistory, error) {
	if autosalonID <= 0 || supplierID <= 0 {
		return model.SaleHistory{}, invalid("autosalon_id and supplier_id are required")
	}

	history, err := service.deal.SettleAutoSalonSupplier(ctx, autosalonID, supplierID)
	if err != nil {
		return model.SaleHistory{}, mapError(err)
	}
	service.stats.Invalidate(ctx)
	return history, nil
}

func (service *service) DealCustomerAutoSalon(ctx context.Context, req deal.CustomerDeal) (model.CustomerSaleHistory, error) {
	if req.AutoSalonID <= 0 || req.CustomerID <= 0 {
		return model.CustomerSaleHistory{}, invalid("autosalon_id and customer_id are required")
	}

	history, err := service.deal.SettleCustomerAutoSalon(ctx, req)
	if err != nil {
		return model.CustomerSaleHistory{}, mapError(err)
	}
	service.stats.Invalidate(ctx)

	// Чек покупателю. Сделка уже проведена, ошибка здесь только логируется
	customer, err := service.store.CustomerGet(ctx, history.CustomerID)
	if err != nil {
		service.zaplog.Warn("receipt not sent", zap.Int64("customer", history.CustomerID), zap.Error(err))
		return history, nil
	}
	service.notifier.Send(notify.Receipt(customer.Email, history))

	return history, nil
}

func (service *service) DealRecheck(ctx context.Context, autosalonID int64) ([]deal.RecheckReport, error) {
	if autosalonID < 0 {
		return nil, invalid("autosalon_id must not be negative")
	}

	reports, err := service.deal.RecheckSupplierDiscounts(ctx, autosalonID)
	if len(reports) > 0 {
		service.stats.Invalidate(ctx)
	}
	if err != nil {
		return reports, mapError(err)
	}
	return reports, nil
}

// Статистика

func (service *service) StatsAutoSalon(ctx context.Context) ([]model.AutoSalonStats, error) {
	return service.stats.StatsAutoSalon(ctx)
}

func (service *service) StatsSupplier(ctx context.Context) ([]model.SupplierStats, error) {
	return service.stats.StatsSupplier(ctx)
}

func (service *service) StatsCustomer(ctx context.Context) (model.CustomerStats, error) {
	return service.stats.StatsCustomer(ctx)
}
