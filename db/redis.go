package db

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// InitRedis connects to Redis when REDIS_ADDR is set. The client stays nil on
// failure so rate limiting degrades to a no-op instead of taking the API down.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if _, err := Redis.Ping(context.Background()).Result(); err != nil {
		log.Printf("WARNING: Failed to connect to Redis: %v. Rate limiting disabled.", err)
		Redis = nil
		return
	}
	log.Println("Redis connected successfully at", addr)
}
