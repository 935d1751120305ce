package storage

import (
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"unidash/internal/config"
)

var DB *gorm.DB

// ConnectDatabase opens the Postgres connection used by the whole service.
func ConnectDatabase(cfg config.App) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("database connection failed: ", err)
	}

	DB = db
	log.Println("database connected")
}

var RedisClient *redis.Client

// InitRedis connects the cache used for profile and stats snapshots.
func InitRedis(cfg config.App) {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
}
