package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iurnickita/autosalon/internal/model"
)

type dealTx struct {
	q querier
}

func (tx *dealTx) AutoSalonLock(ctx context.Context, id int64) (model.AutoSalon, error) {
	return getAutoSalon(ctx, tx.q, id, true)
}

func (tx *dealTx) AutoSalonSetBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	res, err := tx.q.ExecContext(ctx,
		"UPDATE autosalon SET balance = $2 WHERE id = $1",
		id,
		balance)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (tx *dealTx) AutoSalonAddCars(ctx context.Context, id int64, carIDs []int64) error {
	return mapWriteError(addLinks(ctx, tx.q, "autosalon_car", "autosalon_id", id, "car_id", carIDs))
}

func (tx *dealTx) AutoSalonSuppliers(ctx context.Context, id int64) ([]model.Supplier, error) {
	var w where
	w.add("EXISTS (SELECT 1 FROM autosalon_supplier x WHERE x.supplier_id = s.id AND x.autosalon_id = ?)", id)
	return listSuppliers(ctx, tx.q, w)
}

func (tx *dealTx) AutoSalonRemoveSupplier(ctx context.Context, autosalonID int64, supplierID int64) error {
	_, err := tx.q.ExecContext(ctx,
		"DELETE FROM autosalon_supplier WHERE autosalon_id = $1 AND supplier_id = $2",
		autosalonID,
		supplierID)
	return err
}

func (tx *dealTx) SupplierGet(ctx context.Context, id int64) (model.Supplier, error) {
	return getSupplier(ctx, tx.q, id)
}

func (tx *dealTx) SupplierOfferActive(ctx context.Context, supplierID int64, at time.Time) (model.SupplierOffer, bool, error) {
	o, found, err := supplierOffers.active(ctx, tx.q, supplierID, at)
	if err != nil || !found {
		return model.SupplierOffer{}, false, err
	}
	return model.SupplierOffer{SpecialOffer: o, SupplierID: supplierID}, true, nil
}

func (tx *dealTx) CustomerLock(ctx context.Context, id int64) (model.Customer, error) {
	return getCustomer(ctx, tx.q, id, true)
}

func (tx *dealTx) CustomerSetBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	res, err := tx.q.ExecContext(ctx,
		"UPDATE customer SET balance = $2 WHERE id = $1",
		id,
		balance)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (tx *dealTx) CarGet(ctx context.Context, id int64) (model.Car, error) {
	return getCar(ctx, tx.q, id)
}

func (tx *dealTx) CarGetByModel(ctx context.Context, modelName string) (model.Car, error) {
	return getCarByModel(ctx, tx.q, modelName)
}

func (tx *dealTx) SaleHistoryAppend(ctx context.Context, history model.SaleHistory) (model.SaleHistory, error) {
	h, err := scanSaleHistory(tx.q.QueryRowContext(ctx,
		"INSERT INTO sale_history (autosalon_id, supplier_id, price, created_at)"+
			" VALUES ($1, $2, $3, $4)"+
			" RETURNING "+saleHistoryColumns,
		history.AutoSalonID,
		history.SupplierID,
		history.Price,
		history.CreatedAt))
	if err != nil {
		return model.SaleHistory{}, mapWriteError(err)
	}
	return h, nil
}

func (tx *dealTx) CustomerSaleHistoryAppend(ctx context.Context, history model.CustomerSaleHistory) (model.CustomerSaleHistory, error) {
	h, err := scanCustomerSaleHistory(tx.q.QueryRowContext(ctx,
		"INSERT INTO customer_sale_history (customer_id, car_id, price, date)"+
			" VALUES ($1, $2, $3, $4)"+
			" RETURNING "+customerSaleHistoryColumns,
		history.CustomerID,
		history.CarID,
		history.Price,
		history.Date))
	if err != nil {
		return model.CustomerSaleHistory{}, mapWriteError(err)
	}
	return h, nil
}
