package store

import (
	"context"

	"github.com/iurnickita/autosalon/internal/model"
)

const customerColumns = "id, role, first_name, last_name, email, password_hash, balance, is_active"

func scanCustomer(row rowScanner) (model.Customer, error) {
	var c model.Customer
	var role string
	err := row.Scan(&c.ID, &role, &c.FirstName, &c.LastName, &c.Email, &c.PasswordHash, &c.Balance, &c.IsActive)
	c.Role = model.Role(role)
	return c, err
}

func (store *store) CustomerList(ctx context.Context, filter model.CustomerFilter) ([]model.Customer, error) {
	var w where
	if filter.Email != "" {
		w.add("email ILIKE ?", likeEscape(filter.Email))
	}
	if filter.Role != "" {
		w.add("role = ?", string(filter.Role))
	}

	rows, err := store.database.QueryContext(ctx,
		"SELECT "+customerColumns+" FROM customer"+w.String()+" ORDER BY id",
		w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (store *store) CustomerGet(ctx context.Context, id int64) (model.Customer, error) {
	return getCustomer(ctx, store.database, id, false)
}

func getCustomer(ctx context.Context, q querier, id int64, forUpdate bool) (model.Customer, error) {
	query := "SELECT " + customerColumns + " FROM customer WHERE id = $1"
	if forUpdate {
		query += " FOR UPDATE"
	}
	c, err := scanCustomer(q.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.Customer{}, notFound(err)
	}
	return c, nil
}

func (store *store) CustomerGetByEmail(ctx context.Context, email string) (model.Customer, error) {
	c, err := scanCustomer(store.database.QueryRowContext(ctx,
		"SELECT "+customerColumns+" FROM customer WHERE lower(email) = lower($1)",
		email))
	if err != nil {
		return model.Customer{}, notFound(err)
	}
	return c, nil
}

func (store *store) CustomerCreate(ctx context.Context, customer model.Customer) (model.Customer, error) {
	c, err := scanCustomer(store.database.QueryRowContext(ctx,
		"INSERT INTO customer (role, first_name, last_name, email, password_hash, balance, is_active)"+
			" VALUES ($1, $2, $3, $4, $5, $6, $7)"+
			" RETURNING "+customerColumns,
		string(customer.Role),
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.PasswordHash,
		customer.Balance,
		customer.IsActive))
	if err != nil {
		// Проверка: email уже занят
		return model.Customer{}, mapWriteError(err)
	}
	return c, nil
}

// CustomerUpdate не меняет пароль и баланс
func (store *store) CustomerUpdate(ctx context.Context, customer model.Customer) (model.Customer, error) {
	c, err := scanCustomer(store.database.QueryRowContext(ctx,
		"UPDATE customer SET role = $2, first_name = $3, last_name = $4, email = $5, is_active = $6"+
			" WHERE id = $1"+
			" RETURNING "+customerColumns,
		customer.ID,
		string(customer.Role),
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.IsActive))
	if err != nil {
		return model.Customer{}, mapWriteError(notFound(err))
	}
	return c, nil
}

func (store *store) CustomerDelete(ctx context.Context, id int64) error {
	res, err := store.database.ExecContext(ctx, "DELETE FROM customer WHERE id = $1", id)
	if err != nil {
		return mapDeleteError(err)
	}
	return checkAffected(res)
}
