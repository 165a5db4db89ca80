package config

import "time"

type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	// DefaultSecrets - хотя бы один ключ не задан и взят встроенный
	DefaultSecrets bool
}
