package db

import (
	"context"

	"sonf_backend/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect builds the shared pgx pool. The pool is passed by handle to every
// repository and service; nothing reads it through package state.
func Connect(dsn string) *pgxpool.Pool {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		logger.Fatal("failed to create database pool", "error", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal("failed to ping database", "error", err)
	}

	logger.Info("database connected")
	return pool
}
