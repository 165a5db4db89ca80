package store

// Журнальные таблицы (sale_history, customer_sale_history) ссылаются на справочники с ON DELETE RESTRICT:
// удалить автосалон, поставщика, покупателя или машину с историей сделок нельзя, только выключить is_active.
var schema = []string{
	"CREATE TABLE IF NOT EXISTS autosalon (" +
		" id BIGSERIAL PRIMARY KEY," +
		" name VARCHAR (128) NOT NULL," +
		" location VARCHAR (128) NOT NULL DEFAULT ''," +
		" balance NUMERIC (12, 2) NOT NULL DEFAULT 0," +
		" is_active BOOLEAN NOT NULL DEFAULT TRUE" +
		" );",

	"CREATE TABLE IF NOT EXISTS car (" +
		" id BIGSERIAL PRIMARY KEY," +
		" model_name VARCHAR (128) NOT NULL," +
		" is_active BOOLEAN NOT NULL DEFAULT TRUE" +
		" );",

	"CREATE TABLE IF NOT EXISTS option_car (" +
		" id BIGSERIAL PRIMARY KEY," +
		" year TIMESTAMP NOT NULL," +
		" mileage INTEGER NOT NULL CHECK (mileage >= 0)," +
		" body_type VARCHAR (64) NOT NULL," +
		" transmission_type VARCHAR (64) NOT NULL," +
		" drive_unit_type VARCHAR (64) NOT NULL," +
		" color VARCHAR (64) NOT NULL," +
		" engine_type VARCHAR (64) NOT NULL," +
		" is_active BOOLEAN NOT NULL DEFAULT TRUE" +
		" );",

	"CREATE TABLE IF NOT EXISTS supplier (" +
		" id BIGSERIAL PRIMARY KEY," +
		" name VARCHAR (128) NOT NULL," +
		" year_of_issue TIMESTAMP NOT NULL," +
		" price NUMERIC (12, 2) NOT NULL CHECK (price >= 0)," +
		" is_active BOOLEAN NOT NULL DEFAULT TRUE" +
		" );",

	"CREATE TABLE IF NOT EXISTS customer (" +
		" id BIGSERIAL PRIMARY KEY," +
		" role VARCHAR (16) NOT NULL DEFAULT 'customer'," +
		" first_name VARCHAR (128) NOT NULL," +
		" last_name VARCHAR (128) NOT NULL," +
		" email VARCHAR (254) NOT NULL UNIQUE," +
		" password_hash VARCHAR (128) NOT NULL," +
		" balance NUMERIC (12, 2) NOT NULL DEFAULT 0," +
		" is_active BOOLEAN NOT NULL DEFAULT TRUE" +
		" );",

	// Связи многие-ко-многим
	"CREATE TABLE IF NOT EXISTS autosalon_supplier (" +
		" autosalon_id BIGINT NOT NULL REFERENCES autosalon (id) ON DELETE CASCADE," +
		" supplier_id BIGINT NOT NULL REFERENCES supplier (id) ON DELETE CASCADE," +
		" PRIMARY KEY (autosalon_id, supplier_id)" +
		" );",
	"CREATE TABLE IF NOT EXISTS autosalon_customer (" +
		" autosalon_id BIGINT NOT NULL REFERENCES autosalon (id) ON DELETE CASCADE," +
		" customer_id BIGINT NOT NULL REFERENCES customer (id) ON DELETE CASCADE," +
		" PRIMARY KEY (autosalon_id, customer_id)" +
		" );",
	"CREATE TABLE IF NOT EXISTS autosalon_car (" +
		" autosalon_id BIGINT NOT NULL REFERENCES autosalon (id) ON DELETE CASCADE," +
		" car_id BIGINT NOT NULL REFERENCES car (id) ON DELETE CASCADE," +
		" PRIMARY KEY (autosalon_id, car_id)" +
		" );",
	"CREATE TABLE IF NOT EXISTS car_option (" +
		" car_id BIGINT NOT NULL REFERENCES car (id) ON DELETE CASCADE," +
		" option_id BIGINT NOT NULL REFERENCES option_car (id) ON DELETE CASCADE," +
		" PRIMARY KEY (car_id, option_id)" +
		" );",
	"CREATE TABLE IF NOT EXISTS supplier_car (" +
		" supplier_id BIGINT NOT NULL REFERENCES supplier (id) ON DELETE CASCADE," +
		" car_id BIGINT NOT NULL REFERENCES car (id) ON DELETE CASCADE," +
		" PRIMARY KEY (supplier_id, car_id)" +
		" );",

	// Спецпредложения
	"CREATE TABLE IF NOT EXISTS special_offer_supplier (" +
		" id BIGSERIAL PRIMARY KEY," +
		" name VARCHAR (64) NOT NULL," +
		" descr TEXT NOT NULL DEFAULT ''," +
		" discount INTEGER NOT NULL CHECK (discount BETWEEN 0 AND 100)," +
		" supplier_id BIGINT NOT NULL REFERENCES supplier (id) ON DELETE CASCADE," +
		" start_date TIMESTAMPTZ NOT NULL," +
		" end_date TIMESTAMPTZ NOT NULL," +
		" is_active BOOLEAN NOT NULL DEFAULT TRUE," +
		" CHECK (end_date > start_date)" +
		" );",
	"CREATE TABLE IF NOT EXISTS special_offer_autosalon (" +
		" id BIGSERIAL PRIMARY KEY," +
		" name VARCHAR (64) NOT NULL," +
		" descr TEXT NOT NULL DEFAULT ''," +
		" discount INTEGER NOT NULL CHECK (discount BETWEEN 0 AND 100)," +
		" autosalon_id BIGINT NOT NULL REFERENCES autosalon (id) ON DELETE CASCADE," +
		" start_date TIMESTAMPTZ NOT NULL," +
		" end_date TIMESTAMPTZ NOT NULL," +
		" is_active BOOLEAN NOT NULL DEFAULT TRUE," +
		" CHECK (end_date > start_date)" +
		" );",

	// Журналы сделок
	"CREATE TABLE IF NOT EXISTS sale_history (" +
		" id BIGSERIAL PRIMARY KEY," +
		" autosalon_id BIGINT NOT NULL REFERENCES autosalon (id) ON DELETE RESTRICT," +
		" supplier_id BIGINT NOT NULL REFERENCES supplier (id) ON DELETE RESTRICT," +
		" price NUMERIC (12, 2) NOT NULL," +
		" created_at TIMESTAMPTZ NOT NULL" +
		" );",
	"CREATE TABLE IF NOT EXISTS customer_sale_history (" +
		" id BIGSERIAL PRIMARY KEY," +
		" customer_id BIGINT NOT NULL REFERENCES customer (id) ON DELETE RESTRICT," +
		" car_id BIGINT NOT NULL REFERENCES car (id) ON DELETE RESTRICT," +
		" price NUMERIC (12, 2) NOT NULL," +
		" date TIMESTAMPTZ NOT NULL" +
		" );",
}
