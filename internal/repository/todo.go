package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/nzoschke/healthmate/internal/model"
)

var (
	ErrTodoNotFound = errors.New("todo not found")
)

type TodoRepository interface {
	Create(todo *model.Todo) error
	ByID(id int64) (*model.Todo, error)
	Todos() ([]*model.Todo, error)
	Update(todo *model.Todo) error
	SetCompleted(id int64, completed bool, completedAt *int64) error
	Delete(id int64) error
	DeleteCompleted() (int64, error)
}

type todoRepository struct {
	db *sqlx.DB
}

func NewTodoRepository(db *sqlx.DB) TodoRepository {
	return &todoRepository{db: db}
}

func (r *todoRepository) Create(todo *model.Todo) error {
	query := `INSERT INTO todos (title, description, category, priority, due_date, is_completed, completed_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`

	return r.db.QueryRow(query,
		todo.Title,
		todo.Description,
		todo.Category,
		todo.Priority,
		todo.DueDate,
		todo.IsCompleted,
		todo.CompletedAt,
		todo.CreatedAt,
	).Scan(&todo.ID)
}

func (r *todoRepository) ByID(id int64) (*model.Todo, error) {
	todo := &model.Todo{}
	query := `SELECT * FROM todos WHERE id = $1`

	err := r.db.Get(todo, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrTodoNotFound
	}

	return todo, err
}

// Todos lists incomplete items first, then by priority high to low, then by
// due date with undated items last.
func (r *todoRepository) Todos() ([]*model.Todo, error) {
	todos := []*model.Todo{}
	query := `SELECT * FROM todos
	          ORDER BY is_completed ASC,
	                   CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 WHEN 'low' THEN 2 ELSE 3 END ASC,
	                   due_date IS NULL ASC,
	                   due_date ASC,
	                   created_at DESC, id DESC`

	err := r.db.Select(&todos, query)
	if err != nil {
		return nil, err
	}

	return todos, nil
}

func (r *todoRepository) Update(todo *model.Todo) error {
	query := `UPDATE todos
	          SET title = $1, description = $2, category = $3, priority = $4, due_date = $5
	          WHERE id = $6`

	result, err := r.db.Exec(query,
		todo.Title,
		todo.Description,
		todo.Category,
		todo.Priority,
		todo.DueDate,
		todo.ID,
	)
	return checkAffected(result, err, ErrTodoNotFound)
}

func (r *todoRepository) SetCompleted(id int64, completed bool, completedAt *int64) error {
	query := `UPDATE todos SET is_completed = $1, completed_at = $2 WHERE id = $3`
	result, err := r.db.Exec(query, completed, completedAt, id)
	return checkAffected(result, err, ErrTodoNotFound)
}

func (r *todoRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM todos WHERE id = $1`, id)
	return checkAffected(result, err, ErrTodoNotFound)
}

func (r *todoRepository) DeleteCompleted() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM todos WHERE is_completed = $1`, true)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
