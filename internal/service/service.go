package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/iurnickita/autosalon/internal/cache"
	"github.com/iurnickita/autosalon/internal/deal"
	"github.com/iurnickita/autosalon/internal/model"
	"github.com/iurnickita/autosalon/internal/notify"
	"github.com/iurnickita/autosalon/internal/store"
)

type Service interface {
	AutoSalonList(ctx context.Context, filter model.AutoSalonFilter) ([]model.AutoSalon, error)
	AutoSalonGet(ctx context.Context, id int64) (model.AutoSalon, error)
	AutoSalonCreate(ctx context.Context, autosalon model.AutoSalon) (model.AutoSalon, error)
	AutoSalonUpdate(ctx context.Context, autosalon model.AutoSalon) (model.AutoSalon, error)
	AutoSalonDelete(ctx context.Context, id int64) error

	CarList(ctx context.Context, filter model.CarFilter) ([]model.Car, error)
	CarGet(ctx context.Context, id int64) (model.Car, error)
	CarCreate(ctx context.Context, car model.Car) (model.Car, error)
	CarUpdate(ctx context.Context, car model.Car) (model.Car, error)
	CarDelete(ctx context.Context, id int64) error

	OptionCarList(ctx context.Context, filter model.OptionCarFilter) ([]model.OptionCar, error)
	OptionCarGet(ctx context.Context, id int64) (model.OptionCar, error)
	OptionCarCreate(ctx context.Context, option model.OptionCar) (model.OptionCar, error)
	OptionCarUpdate(ctx context.Context, option model.OptionCar) (model.OptionCar, error)
	OptionCarDelete(ctx context.Context, id int64) error

	SupplierList(ctx context.Context, filter model.SupplierFilter) ([]model.Supplier, error)
	SupplierGet(ctx context.Context, id int64) (model.Supplier, error)
	SupplierCreate(ctx context.Context, supplier model.Supplier) (model.Supplier, error)
	SupplierUpdate(ctx context.Context, supplier model.Supplier) (model.Supplier, error)
	SupplierDelete(ctx context.Context, id int64) error

	SupplierOfferList(ctx context.Context, filter model.OfferFilter) ([]model.SupplierOffer, error)
	SupplierOfferGet(ctx context.Context, id int64) (model.SupplierOffer, error)
	SupplierOfferCreate(ctx context.Context, offer model.SupplierOffer) (model.SupplierOffer, error)
	SupplierOfferUpdate(ctx context.Context, offer model.SupplierOffer) (model.SupplierOffer, error)
	SupplierOfferDelete(ctx context.Context, id int64) error

	AutoSalonOfferList(ctx context.Context, filter model.OfferFilter) ([]model.AutoSalonOffer, error)
	AutoSalonOfferGet(ctx context.Context, id int64) (model.AutoSalonOffer, error)
	AutoSalonOfferCreate(ctx context.Context, offer model.AutoSalonOffer) (model.AutoSalonOffer, error)
	AutoSalonOfferUpdate(ctx context.Context, offer model.AutoSalonOffer) (model.AutoSalonOffer, error)
	AutoSalonOfferDelete(ctx context.Context, id int64) error

	CustomerList(ctx context.Context, filter model.CustomerFilter) ([]model.Customer, error)
	CustomerGet(ctx context.Context, id int64) (model.Customer, error)
	CustomerUpdate(ctx context.Context, customer model.Customer) (model.Customer, error)
	CustomerDelete(ctx context.Context, id int64) error

	SaleHistoryList(ctx context.Context, filter model.SaleHistoryFilter) ([]model.SaleHistory, error)
	SaleHistoryGet(ctx context.Context, id int64) (model.SaleHistory, error)
	CustomerSaleHistoryList(ctx context.Context, filter model.CustomerSaleHistoryFilter) ([]model.CustomerSaleHistory, error)
	CustomerSaleHistoryGet(ctx context.Context, id int64) (model.CustomerSaleHistory, error)

	DealAutoSalonSupplier(ctx context.Context, autosalonID int64, supplierID int64) (model.SaleHistory, error)
	DealCustomerAutoSalon(ctx context.Context, req deal.CustomerDeal) (model.CustomerSaleHistory, error)
	DealRecheck(ctx context.Context, autosalonID int64) ([]deal.RecheckReport, error)

	StatsAutoSalon(ctx context.Context) ([]model.AutoSalonStats, error)
	StatsSupplier(ctx context.Context) ([]model.SupplierStats, error)
	StatsCustomer(ctx context.Context) (model.CustomerStats, error)
}

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrReferenced        = errors.New("record is in use")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrConflict          = errors.New("concurrent modification, try again")
	ErrUnprocessable     = errors.New("unprocessable entity")
	ErrTimeout           = errors.New("operation timed out")
)

type service struct {
	store    store.Store
	deal     deal.Deal
	stats    cache.Stats
	notifier notify.Notifier
	zaplog   *zap.Logger
}

func NewService(store store.Store, deal deal.Deal, stats cache.Stats, notifier notify.Notifier, zaplog *zap.Logger) Service {
	return &service{
		store:    store,
		deal:     deal,
		stats:    stats,
		notifier: notifier,
		zaplog:   zaplog,
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// mapError переводит ошибки хранилища и сделок в ошибки сервиса
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound), errors.Is(err, deal.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return ErrAlreadyExists
	case errors.Is(err, store.ErrInvalidReference):
		return invalid("referenced record does not exist")
	case errors.Is(err, store.ErrReferenced):
		return ErrReferenced
	case errors.Is(err, deal.ErrInsufficientFunds):
		return ErrInsufficientFunds
	case errors.Is(err, deal.ErrConcurrentModification), errors.Is(err, store.ErrConflict):
		return ErrConflict
	case errors.Is(err, deal.ErrInvalidPrice), errors.Is(err, deal.ErrCarNotSpecified):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, deal.ErrInactive):
		return fmt.Errorf("%w: %v", ErrUnprocessable, err)
	case errors.Is(err, deal.ErrTimeout):
		return ErrTimeout
	default:
		return err
	}
}
