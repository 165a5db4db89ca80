package config

import "time"

type Config struct {
	// ограничение на одну попытку сделки
	Timeout time.Duration
	// повторы при конфликте транзакций
	MaxRetries int
	// переносить машины поставщика в автосалон при покупке
	TransferInventory bool
}
