// Package deal проводит сделки: покупку автосалоном у поставщика, продажу покупателю
// и пересмотр выгодности поставщиков по их спецпредложениям.
//
// Каждая сделка - одна транзакция хранилища. Конфликт транзакций повторяется целиком
// не более MaxRetries раз, каждая попытка ограничена Timeout.
package deal

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/iurnickita/autosalon/internal/deal/config"
	"github.com/iurnickita/autosalon/internal/model"
	"github.com/iurnickita/autosalon/internal/store"
)

type Deal interface {
	SettleAutoSalonSupplier(ctx context.Context, autosalonID int64, supplierID int64) (model.SaleHistory, error)
	SettleCustomerAutoSalon(ctx context.Context, req CustomerDeal) (model.CustomerSaleHistory, error)
	// RecheckSupplierDiscounts with autosalonID == 0 checks every active autosalon.
	RecheckSupplierDiscounts(ctx context.Context, autosalonID int64) ([]RecheckReport, error)
}

// Store is what deals need from the storage layer.
type Store interface {
	InTx(ctx context.Context, fn func(tx store.Tx) error) error
	AutoSalonActiveIDs(ctx context.Context) ([]int64, error)
}

// CustomerDeal - покупка машины покупателем. Машина задается CarID либо названием модели
type CustomerDeal struct {
	AutoSalonID int64
	CustomerID  int64
	Price       decimal.Decimal
	CarID       int64
	CarModel    string
}

type RecheckReport struct {
	AutoSalonID int64
	Kept        []int64
	Removed     []int64
}

var (
	ErrNotFound               = errors.New("not found")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrInvalidPrice           = errors.New("price must be positive")
	ErrCarNotSpecified        = errors.New("car id or car model is required")
	ErrInactive               = errors.New("participant is not active")
	ErrTimeout                = errors.New("deal timed out")
)

type deal struct {
	cfg    config.Config
	store  Store
	zaplog *zap.Logger
	now    func() time.Time
}

func NewDeal(cfg config.Config, store Store, zaplog *zap.Logger) Deal {
	return newDeal(cfg, store, zaplog)
}

func newDeal(cfg config.Config, store Store, zaplog *zap.Logger) *deal {
	if zaplog == nil {
		zaplog = zap.NewNop()
	}
	return &deal{
		cfg:    cfg,
		store:  store,
		zaplog: zaplog,
		now:    time.Now,
	}
}

func (deal *deal) SettleAutoSalonSupplier(ctx context.Context, autosalonID int64, supplierID int64) (model.SaleHistory, error) {
	var history model.SaleHistory

	err := deal.run(ctx, "autosalon_supplier", func(ctx context.Context, tx store.Tx) error {
		// Автосалон блокируется первым
		autosalon, err := tx.AutoSalonLock(ctx, autosalonID)
		if err != nil {
			return err
		}
		supplier, err := tx.SupplierGet(ctx, supplierID)
		if err != nil {
			return err
		}
		if !autosalon.IsActive || !supplier.IsActive {
			return ErrInactive
		}

		// Проверка баланса
		if autosalon.Balance.LessThan(supplier.Price) {
			return ErrInsufficientFunds
		}

		// Списание
		err = tx.AutoSalonSetBalance(ctx, autosalon.ID, autosalon.Balance.Sub(supplier.Price))
		if err != nil {
			return err
		}

		// Машины поставщика - в автосалон
		if deal.cfg.TransferInventory && len(supplier.CarIDs) > 0 {
			if err := tx.AutoSalonAddCars(ctx, autosalon.ID, supplier.CarIDs); err != nil {
				return err
			}
		}

		// Запись в журнал
		history, err = tx.SaleHistoryAppend(ctx, model.SaleHistory{
			AutoSalonID: autosalon.ID,
			SupplierID:  supplier.ID,
			Price:       supplier.Price,
			CreatedAt:   deal.now().UTC(),
		})
		return err
	})
	if err != nil {
		return model.SaleHistory{}, err
	}

	deal.zaplog.Info("autosalon bought from supplier",
		zap.Int64("autosalon", autosalonID),
		zap.Int64("supplier", supplierID),
		zap.String("price", history.Price.StringFixed(2)),
	)
	return history, nil
}

func (deal *deal) SettleCustomerAutoSalon(ctx context.Context, req CustomerDeal) (model.CustomerSaleHistory, error) {
	if !req.Price.IsPositive() {
		return model.CustomerSaleHistory{}, ErrInvalidPrice
	}
	if req.CarID == 0 && strings.TrimSpace(req.CarModel) == "" {
		return model.CustomerSaleHistory{}, ErrCarNotSpecified
	}

	var history model.CustomerSaleHistory

	err := deal.run(ctx, "customer_autosalon", func(ctx context.Context, tx store.Tx) error {
		// Порядок блокировок: автосалон, затем покупатель
		autosalon, err := tx.AutoSalonLock(ctx, req.AutoSalonID)
		if err != nil {
			return err
		}
		customer, err := tx.CustomerLock(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		car, err := resolveCar(ctx, tx, req)
		if err != nil {
			return err
		}
		if !autosalon.IsActive || !customer.IsActive || !car.IsActive {
			return ErrInactive
		}

		// Проверка баланса
		if customer.Balance.LessThan(req.Price) {
			return ErrInsufficientFunds
		}

		if err := tx.AutoSalonSetBalance(ctx, autosalon.ID, autosalon.Balance.Add(req.Price)); err != nil {
			return err
		}
		if err := tx.CustomerSetBalance(ctx, customer.ID, customer.Balance.Sub(req.Price)); err != nil {
			return err
		}

		history, err = tx.CustomerSaleHistoryAppend(ctx, model.CustomerSaleHistory{
			CustomerID: customer.ID,
			CarID:      car.ID,
			Price:      req.Price,
			Date:       deal.now().UTC(),
		})
		return err
	})
	if err != nil {
		return model.CustomerSaleHistory{}, err
	}

	deal.zaplog.Info("customer bought car",
		zap.Int64("autosalon", req.AutoSalonID),
		zap.Int64("customer", req.CustomerID),
		zap.Int64("car", history.CarID),
		zap.String("price", history.Price.StringFixed(2)),
	)
	return history, nil
}

func resolveCar(ctx context.Context, tx store.Tx, req CustomerDeal) (model.Car, error) {
	if req.CarID != 0 {
		return tx.CarGet(ctx, req.CarID)
	}
	return tx.CarGetByModel(ctx, strings.TrimSpace(req.CarModel))
}

func (deal *deal) RecheckSupplierDiscounts(ctx context.Context, autosalonID int64) ([]RecheckReport, error) {
	if autosalonID != 0 {
		report, err := deal.recheck(ctx, autosalonID)
		if err != nil {
			return nil, err
		}
		return []RecheckReport{report}, nil
	}

	// Пакетный режим: каждый автосалон в своей транзакции
	ids, err := deal.store.AutoSalonActiveIDs(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]RecheckReport, 0, len(ids))
	var errs []error
	for _, id := range ids {
		report, err := deal.recheck(ctx, id)
		if err != nil {
			// удален между выборкой и проверкой
			if errors.Is(err, ErrNotFound) {
				continue
			}
			deal.zaplog.Error("recheck failed", zap.Int64("autosalon", id), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		reports = append(reports, report)
	}
	return reports, errors.Join(errs...)
}

func (deal *deal) recheck(ctx context.Context, autosalonID int64) (RecheckReport, error) {
	var report RecheckReport

	err := deal.run(ctx, "recheck", func(ctx context.Context, tx store.Tx) error {
		report = RecheckReport{AutoSalonID: autosalonID, Kept: []int64{}, Removed: []int64{}}

		// Блокировка автосалона: повторные проверки одного автосалона идут по очереди
		if _, err := tx.AutoSalonLock(ctx, autosalonID); err != nil {
			return err
		}
		suppliers, err := tx.AutoSalonSuppliers(ctx, autosalonID)
		if err != nil {
			return err
		}

		now := deal.now()
		for _, supplier := range suppliers {
			// Нет предложения - нет скидки
			discount := 0
			offer, found, err := tx.SupplierOfferActive(ctx, supplier.ID, now)
			if err != nil {
				return err
			}
			if found {
				discount = offer.Discount
			}

			if Beneficial(supplier.Price, discount) {
				report.Kept = append(report.Kept, supplier.ID)
				continue
			}
			if err := tx.AutoSalonRemoveSupplier(ctx, autosalonID, supplier.ID); err != nil {
				return err
			}
			report.Removed = append(report.Removed, supplier.ID)
		}
		return nil
	})
	if err != nil {
		return RecheckReport{}, err
	}

	if len(report.Removed) > 0 {
		deal.zaplog.Info("suppliers removed from autosalon",
			zap.Int64("autosalon", autosalonID),
			zap.Int64s("suppliers", report.Removed),
		)
	}
	return report, nil
}

// EffectivePrice is price reduced by discount percent. Division by 100 is exact
// in decimal, so the result is not rounded.
func EffectivePrice(price decimal.Decimal, discount int) decimal.Decimal {
	cut := price.Mul(decimal.NewFromInt(int64(discount))).Div(decimal.NewFromInt(100))
	return price.Sub(cut)
}

// Beneficial reports whether the discount makes the supplier strictly cheaper.
func Beneficial(price decimal.Decimal, discount int) bool {
	return EffectivePrice(price, discount).LessThan(price)
}

// run выполняет fn в транзакции с повтором при конфликте
func (deal *deal) run(ctx context.Context, op string, fn func(ctx context.Context, tx store.Tx) error) error {
	attempts := deal.cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = deal.attempt(ctx, fn)
		if !errors.Is(err, ErrConcurrentModification) || ctx.Err() != nil {
			return err
		}
		deal.zaplog.Warn("deal conflict",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
	return err
}

func (deal *deal) attempt(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error {
	if deal.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, deal.cfg.Timeout)
		defer cancel()
	}

	err := deal.store.InTx(ctx, func(tx store.Tx) error {
		return fn(ctx, tx)
	})
	return mapError(err)
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrConflict):
		return ErrConcurrentModification
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	default:
		return err
	}
}
