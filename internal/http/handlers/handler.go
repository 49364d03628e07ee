package handlers

import (
	"context"

	"tasks_api/internal/domain"
	"tasks_api/internal/repository"
	"tasks_api/internal/ws"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskStore interface {
	Create(ctx context.Context, t *domain.Task) error
	List(ctx context.Context) ([]*domain.Task, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	SetCompleted(ctx context.Context, id int64) (*domain.Task, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	List(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// Publisher receives an event after every successful write.
type Publisher interface {
	Publish(e ws.Event)
}

type Handler struct {
	Tasks  TaskStore
	Users  UserStore
	Events Publisher
}

// NewHandler wires the pool-backed repositories. events may be nil.
func NewHandler(db *pgxpool.Pool, events Publisher) *Handler {
	return &Handler{
		Tasks:  repository.NewTaskRepository(db),
		Users:  repository.NewUserRepository(db),
		Events: events,
	}
}

func (h *Handler) publish(typ string, id int64, data any) {
	if h.Events != nil {
		h.Events.Publish(ws.NewEvent(typ, id, data))
	}
}
