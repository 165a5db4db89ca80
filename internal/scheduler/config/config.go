package config

import "time"

type Config struct {
	// 0 - перепроверка по расписанию выключена
	RecheckInterval time.Duration
}
