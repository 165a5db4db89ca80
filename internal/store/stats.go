package store

import (
	"context"

	"github.com/iurnickita/autosalon/internal/model"
)

func (store *store) StatsAutoSalon(ctx context.Context) ([]model.AutoSalonStats, error) {
	rows, err := store.database.QueryContext(ctx,
		"SELECT a.name,"+
			" (SELECT count(*) FROM autosalon_supplier x WHERE x.autosalon_id = a.id),"+
			" (SELECT count(*) FROM autosalon_car x WHERE x.autosalon_id = a.id),"+
			" (SELECT count(*) FROM autosalon_customer x WHERE x.autosalon_id = a.id),"+
			" a.balance,"+
			" (SELECT max(s.price) FROM supplier s JOIN autosalon_supplier x ON x.supplier_id = s.id WHERE x.autosalon_id = a.id),"+
			" (SELECT min(s.price) FROM supplier s JOIN autosalon_supplier x ON x.supplier_id = s.id WHERE x.autosalon_id = a.id),"+
			" (SELECT count(*) FROM sale_history h WHERE h.autosalon_id = a.id),"+
			" (SELECT max(h.price) FROM sale_history h WHERE h.autosalon_id = a.id),"+
			" (SELECT min(h.price) FROM sale_history h WHERE h.autosalon_id = a.id)"+
			" FROM autosalon a ORDER BY a.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []model.AutoSalonStats{}
	for rows.Next() {
		var s model.AutoSalonStats
		err := rows.Scan(&s.Name, &s.SuppliersCount, &s.CarsCount, &s.CustomersCount, &s.Balance,
			&s.MaxSupplierPrice, &s.MinSupplierPrice,
			&s.SaleHistoriesCount, &s.MaxHistoryPrice, &s.MinHistoryPrice)
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (store *store) StatsSupplier(ctx context.Context) ([]model.SupplierStats, error) {
	rows, err := store.database.QueryContext(ctx,
		"SELECT s.name, s.price,"+
			" (SELECT count(*) FROM autosalon_supplier x WHERE x.supplier_id = s.id),"+
			" (SELECT count(*) FROM supplier_car x WHERE x.supplier_id = s.id),"+
			" (SELECT count(*) FROM sale_history h WHERE h.supplier_id = s.id),"+
			" (SELECT max(h.price) FROM sale_history h WHERE h.supplier_id = s.id),"+
			" (SELECT min(h.price) FROM sale_history h WHERE h.supplier_id = s.id)"+
			" FROM supplier s ORDER BY s.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []model.SupplierStats{}
	for rows.Next() {
		var s model.SupplierStats
		err := rows.Scan(&s.Name, &s.Price, &s.AutoSalonsCount, &s.CarsCount,
			&s.SaleHistoriesCount, &s.MaxHistoryPrice, &s.MinHistoryPrice)
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (store *store) StatsCustomer(ctx context.Context) (model.CustomerStats, error) {
	var stats model.CustomerStats

	// Итоги по ролям
	row := store.database.QueryRowContext(ctx,
		"SELECT"+
			" count(*) FILTER (WHERE role = 'admin'),"+
			" count(*) FILTER (WHERE role = 'manager'),"+
			" count(*) FILTER (WHERE role = 'customer'),"+
			" COALESCE(sum(balance), 0)"+
			" FROM customer")
	err := row.Scan(&stats.AdminCount, &stats.ManagerCount, &stats.CustomerCount, &stats.TotalBalance)
	if err != nil {
		return model.CustomerStats{}, err
	}

	// По каждому покупателю
	rows, err := store.database.QueryContext(ctx,
		"SELECT c.email, c.balance,"+
			" (SELECT count(*) FROM autosalon_customer x WHERE x.customer_id = c.id),"+
			" (SELECT count(*) FROM customer_sale_history h WHERE h.customer_id = c.id)"+
			" FROM customer c ORDER BY c.id")
	if err != nil {
		return model.CustomerStats{}, err
	}
	defer rows.Close()

	stats.PerCustomer = []model.CustomerStatsRow{}
	for rows.Next() {
		var r model.CustomerStatsRow
		if err := rows.Scan(&r.Email, &r.Balance, &r.AutoSalonsCount, &r.PurchasesCount); err != nil {
			return model.CustomerStats{}, err
		}
		stats.PerCustomer = append(stats.PerCustomer, r)
	}
	return stats, rows.Err()
}
