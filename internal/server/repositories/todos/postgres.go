package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/dbx"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
)

const todoColumns = `id, text, completed, completed_at, COALESCE(creator_id, '')`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (*models.Todo, error) {
	t := &models.Todo{}
	var completedAt sql.NullInt64
	if err := s.Scan(&t.ID, &t.Text, &t.Completed, &completedAt, &t.CreatorID); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		ms := completedAt.Int64
		t.CompletedAt = &ms
	}
	return t, nil
}

func (r *PostgresRepository) one(ctx context.Context, query string, args ...any) (*models.Todo, error) {
	t, err := scanTodo(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	if todo.ID == "" {
		todo.ID = models.NewID()
	}

	query :=
		`INSERT INTO todos (id, text, completed, completed_at, creator_id)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		 `

	_, err := r.db.ExecContext(ctx, query, todo.ID, todo.Text, todo.Completed, todo.CompletedAt, todo.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

func (r *PostgresRepository) List(ctx context.Context, creatorID string) ([]models.Todo, error) {
	query :=
		`SELECT ` + todoColumns + ` FROM todos
		 WHERE ($1 = '' OR creator_id = $1)
		 ORDER BY created_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id, creatorID string) (*models.Todo, error) {
	query :=
		`SELECT ` + todoColumns + ` FROM todos
		 WHERE id = $1 AND ($2 = '' OR creator_id = $2)
		 `
	return r.one(ctx, query, id, creatorID)
}

func (r *PostgresRepository) Update(ctx context.Context, id, creatorID string, patch models.TodoPatch) (*models.Todo, error) {
	query :=
		`UPDATE todos
		 SET text = COALESCE($3, text), completed = $4, completed_at = $5
		 WHERE id = $1 AND ($2 = '' OR creator_id = $2)
		 RETURNING ` + todoColumns

	return r.one(ctx, query, id, creatorID, patch.Text, patch.Completed, patch.CompletedAt)
}

func (r *PostgresRepository) Delete(ctx context.Context, id, creatorID string) (*models.Todo, error) {
	query :=
		`DELETE FROM todos
		 WHERE id = $1 AND ($2 = '' OR creator_id = $2)
		 RETURNING ` + todoColumns

	return r.one(ctx, query, id, creatorID)
}
