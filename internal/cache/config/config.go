package config

import "time"

type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}
