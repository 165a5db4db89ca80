package store

import (
	"context"

	"github.com/iurnickita/autosalon/internal/model"
)

// Журналы сделок доступны только на чтение. Запись - в транзакции сделки (tx.go)

const (
	saleHistoryColumns         = "id, autosalon_id, supplier_id, price, created_at"
	customerSaleHistoryColumns = "id, customer_id, car_id, price, date"
)

func scanSaleHistory(row rowScanner) (model.SaleHistory, error) {
	var h model.SaleHistory
	err := row.Scan(&h.ID, &h.AutoSalonID, &h.SupplierID, &h.Price, &h.CreatedAt)
	return h, err
}

func scanCustomerSaleHistory(row rowScanner) (model.CustomerSaleHistory, error) {
	var h model.CustomerSaleHistory
	err := row.Scan(&h.ID, &h.CustomerID, &h.CarID, &h.Price, &h.Date)
	return h, err
}

func (store *store) SaleHistoryList(ctx context.Context, filter model.SaleHistoryFilter) ([]model.SaleHistory, error) {
	var w where
	if filter.AutoSalonID != 0 {
		w.add("autosalon_id = ?", filter.AutoSalonID)
	}
	if filter.SupplierID != 0 {
		w.add("supplier_id = ?", filter.SupplierID)
	}

	rows, err := store.database.QueryContext(ctx,
		"SELECT "+saleHistoryColumns+" FROM sale_history"+w.String()+" ORDER BY id",
		w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	histories := []model.SaleHistory{}
	for rows.Next() {
		h, err := scanSaleHistory(rows)
		if err != nil {
			return nil, err
		}
		histories = append(histories, h)
	}
	return histories, rows.Err()
}

func (store *store) SaleHistoryGet(ctx context.Context, id int64) (model.SaleHistory, error) {
	h, err := scanSaleHistory(store.database.QueryRowContext(ctx,
		"SELECT "+saleHistoryColumns+" FROM sale_history WHERE id = $1",
		id))
	if err != nil {
		return model.SaleHistory{}, notFound(err)
	}
	return h, nil
}

func (store *store) CustomerSaleHistoryList(ctx context.Context, filter model.CustomerSaleHistoryFilter) ([]model.CustomerSaleHistory, error) {
	var w where
	if filter.CustomerID != 0 {
		w.add("customer_id = ?", filter.CustomerID)
	}
	if filter.CarID != 0 {
		w.add("car_id = ?", filter.CarID)
	}

	rows, err := store.database.QueryContext(ctx,
		"SELECT "+customerSaleHistoryColumns+" FROM customer_sale_history"+w.String()+" ORDER BY id",
		w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	histories := []model.CustomerSaleHistory{}
	for rows.Next() {
		h, err := scanCustomerSaleHistory(rows)
		if err != nil {
			return nil, err
		}
		histories = append(histories, h)
	}
	return histories, rows.Err()
}

func (store *store) CustomerSaleHistoryGet(ctx context.Context, id int64) (model.CustomerSaleHistory, error) {
	h, err := scanCustomerSaleHistory(store.database.QueryRowContext(ctx,
		"SELECT "+customerSaleHistoryColumns+" FROM customer_sale_history WHERE id = $1",
		id))
	if err != nil {
		return model.CustomerSaleHistory{}, notFound(err)
	}
	return h, nil
}
