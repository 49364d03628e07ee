package main

import (
	"context"
	"flag"
	"time"

	"tasks_api/internal/config"
	"tasks_api/internal/db"
	"tasks_api/internal/domain"
	"tasks_api/internal/logger"
	"tasks_api/internal/repository"
)

func main() {
	tasks := flag.Int("tasks", 3, "number of demo tasks to create")
	flag.Parse()

	cfg := config.Load()
	pool := db.MustConnect(cfg.DSN(), cfg.DBMaxConns)
	defer pool.Close()

	ctx := context.Background()
	users := repository.NewUserRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)

	u := &domain.User{Username: "demo", Email: "demo@example.com", Password: "demo"}
	if err := users.Create(ctx, u); err != nil {
		logger.Fatal("create user failed", "error", err)
	}
	logger.Info("user created", "id", u.ID, "username", u.Username)

	for i := 1; i <= *tasks; i++ {
		t := &domain.Task{
			Title:       "Demo task",
			Description: "seeded task",
			Deadline:    time.Now().UTC().Add(time.Duration(i) * 24 * time.Hour).Truncate(time.Second),
		}
		if err := taskRepo.Create(ctx, t); err != nil {
			logger.Fatal("create task failed", "error", err)
		}
		logger.Info("task created", "id", t.ID, "deadline", t.Deadline)
	}

	// verify read
	all, err := taskRepo.List(ctx)
	if err != nil {
		logger.Fatal("list tasks failed", "error", err)
	}
	logger.Info("seed complete", "tasks_total", len(all))
}
