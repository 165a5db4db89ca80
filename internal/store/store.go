package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"

	"github.com/iurnickita/autosalon/internal/model"
	"github.com/iurnickita/autosalon/internal/store/config"
)

type Store interface {
	AutoSalonList(ctx context.Context, filter model.AutoSalonFilter) ([]model.AutoSalon, error)
	AutoSalonGet(ctx context.Context, id int64) (model.AutoSalon, error)
	AutoSalonCreate(ctx context.Context, autosalon model.AutoSalon) (model.AutoSalon, error)
	AutoSalonUpdate(ctx context.Context, autosalon model.AutoSalon) (model.AutoSalon, error)
	AutoSalonDelete(ctx context.Context, id int64) error
	AutoSalonActiveIDs(ctx context.Context) ([]int64, error)

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
	CustomerGetByEmail(ctx context.Context, email string) (model.Customer, error)
	CustomerCreate(ctx context.Context, customer model.Customer) (model.Customer, error)
	CustomerUpdate(ctx context.Context, customer model.Customer) (model.Customer, error)
	CustomerDelete(ctx context.Context, id int64) error

	SaleHistoryList(ctx context.Context, filter model.SaleHistoryFilter) ([]model.SaleHistory, error)
	SaleHistoryGet(ctx context.Context, id int64) (model.SaleHistory, error)
	CustomerSaleHistoryList(ctx context.Context, filter model.CustomerSaleHistoryFilter) ([]model.CustomerSaleHistory, error)
	CustomerSaleHistoryGet(ctx context.Context, id int64) (model.CustomerSaleHistory, error)

	StatsAutoSalon(ctx context.Context) ([]model.AutoSalonStats, error)
	StatsSupplier(ctx context.Context) ([]model.SupplierStats, error)
	StatsCustomer(ctx context.Context) (model.CustomerStats, error)

	// InTx runs fn inside one database transaction. fn's error rolls everything back.
	InTx(ctx context.Context, fn func(tx Tx) error) error
	Close() error
}

// Tx is the part of the store available inside a settlement transaction.
// Lock* methods take a row lock held until the transaction ends.
type Tx interface {
	AutoSalonLock(ctx context.Context, id int64) (model.AutoSalon, error)
	AutoSalonSetBalance(ctx context.Context, id int64, balance decimal.Decimal) error
	AutoSalonAddCars(ctx context.Context, id int64, carIDs []int64) error
	AutoSalonSuppliers(ctx context.Context, id int64) ([]model.Supplier, error)
	AutoSalonRemoveSupplier(ctx context.Context, autosalonID int64, supplierID int64) error

	SupplierGet(ctx context.Context, id int64) (model.Supplier, error)
	// SupplierOfferActive returns the best active offer at the given time; found is false when there is none.
	SupplierOfferActive(ctx context.Context, supplierID int64, at time.Time) (offer model.SupplierOffer, found bool, err error)

	CustomerLock(ctx context.Context, id int64) (model.Customer, error)
	CustomerSetBalance(ctx context.Context, id int64, balance decimal.Decimal) error

	CarGet(ctx context.Context, id int64) (model.Car, error)
	CarGetByModel(ctx context.Context, modelName string) (model.Car, error)

	SaleHistoryAppend(ctx context.Context, history model.SaleHistory) (model.SaleHistory, error)
	CustomerSaleHistoryAppend(ctx context.Context, history model.CustomerSaleHistory) (model.CustomerSaleHistory, error)
}

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrReferenced       = errors.New("record is referenced by other records")
	ErrConflict         = errors.New("concurrent modification")
)

// querier - общее у *sql.DB и *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type store struct {
	database *sql.DB
}

func NewStore(cfg config.Config) (Store, error) {
	db, err := sql.Open("pgx", cfg.DBDsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	// Таблицы создаются при старте, как есть
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return &store{database: db}, nil
}

func (store *store) Close() error {
	return store.database.Close()
}

func (store *store) InTx(ctx context.Context, fn func(tx Tx) error) error {
	sqlTx, err := store.database.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return mapTxError(err)
	}
	defer func() { _ = sqlTx.Rollback() }()

	if err := fn(&dealTx{q: sqlTx}); err != nil {
		return mapTxError(err)
	}
	if err := sqlTx.Commit(); err != nil {
		return mapTxError(err)
	}
	return nil
}

// inTx - транзакция для многошаговых CRUD-операций (запись + связи)
func (store *store) inTx(ctx context.Context, fn func(q querier) error) error {
	sqlTx, err := store.database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = sqlTx.Rollback() }()

	if err := fn(sqlTx); err != nil {
		return err
	}
	return sqlTx.Commit()
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// mapTxError turns serialization failures and deadlocks into ErrConflict.
func mapTxError(err error) error {
	switch pgCode(err) {
	case "40001", "40P01", "55P03":
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

// mapWriteError maps constraint violations on insert/update.
func mapWriteError(err error) error {
	switch pgCode(err) {
	case "23505":
		return ErrAlreadyExists
	case "23503":
		return ErrInvalidReference
	}
	return err
}

// mapDeleteError maps constraint violations on delete.
func mapDeleteError(err error) error {
	if pgCode(err) == "23503" {
		return ErrReferenced
	}
	return err
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
