package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/nzoschke/healthmate/internal/model"
	"github.com/nzoschke/healthmate/internal/repository"
	"github.com/nzoschke/healthmate/internal/validation"
)

type TodoInput struct {
	Title       string
	Description string
	Category    string
	Priority    string
	DueDate     *int64
}

type TodoService struct {
	repo repository.TodoRepository
	now  func() time.Time
}

func NewTodoService(repo repository.TodoRepository) *TodoService {
	return &TodoService{
		repo: repo,
		now:  time.Now,
	}
}

func (in *TodoInput) normalize() error {
	err := validation.ValidateName("title", in.Title)
	if err != nil {
		return asInvalid(err)
	}
	err = validation.ValidateText("description", in.Description, 1000)
	if err != nil {
		return asInvalid(err)
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Category = normalizeCategory(in.Category)

	in.Priority = strings.ToLower(strings.TrimSpace(in.Priority))
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	if !model.IsPriority(in.Priority) {
		return invalid("priority must be high, medium or low")
	}
	return nil
}

func (s *TodoService) Create(in TodoInput) (*model.Todo, error) {
	err := in.normalize()
	if err != nil {
		return nil, err
	}

	todo := &model.Todo{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		CreatedAt:   nowMillis(s.now),
	}

	err = s.repo.Create(todo)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return todo, nil
}

// Todos lists incomplete items first, then High > Medium > Low, then due date.
func (s *TodoService) Todos() ([]*model.Todo, error) {
	return s.repo.Todos()
}

func (s *TodoService) Update(id int64, in TodoInput) (*model.Todo, error) {
	todo, err := s.repo.ByID(id)
	if err != nil {
		return nil, err
	}

	err = in.normalize()
	if err != nil {
		return nil, err
	}

	todo.Title = in.Title
	todo.Description = in.Description
	todo.Category = in.Category
	todo.Priority = in.Priority
	todo.DueDate = in.DueDate

	err = s.repo.Update(todo)
	if err != nil {
		return nil, err
	}

	return todo, nil
}

// Toggle flips the completion flag and stamps or clears completed_at.
func (s *TodoService) Toggle(id int64) (*model.Todo, error) {
	todo, err := s.repo.ByID(id)
	if err != nil {
		return nil, err
	}

	todo.IsCompleted = !todo.IsCompleted
	todo.CompletedAt = nil
	if todo.IsCompleted {
		at := nowMillis(s.now)
		todo.CompletedAt = &at
	}

	err = s.repo.SetCompleted(id, todo.IsCompleted, todo.CompletedAt)
	if err != nil {
		return nil, err
	}

	return todo, nil
}

func (s *TodoService) Delete(id int64) error {
	return s.repo.Delete(id)
}

func (s *TodoService) PurgeCompleted() (int64, error) {
	n, err := s.repo.DeleteCompleted()
	if err != nil {
		return 0, fmt.Errorf("failed to delete completed todos: %w", err)
	}
	return n, nil
}
