package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ims-api/config"
	"ims-api/models"

	"gorm.io/gorm"
)

// CompletionEvent correlates a todo to the request and stage it was created
// for. The wire format "domain:stage:id" is the correlation key stored in
// todo rows; String and ParseCompletionEvent are the only serialization
// points so the format cannot drift between creation and completion.
type CompletionEvent struct {
	Domain    string
	Stage     Status
	RequestID int
}

func (e CompletionEvent) String() string {
	return fmt.Sprintf("%s:%s:%d", e.Domain, e.Stage, e.RequestID)
}

// EventPrefix is the "domain:stage:" prefix shared by all requests at one stage.
func EventPrefix(domain string, stage Status) string {
	return fmt.Sprintf("%s:%s:", domain, stage)
}

// ParseCompletionEvent parses the stored wire format back into its parts.
func ParseCompletionEvent(raw string) (CompletionEvent, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return CompletionEvent{}, fmt.Errorf("malformed completion event '%s'", raw)
	}
	id, err := strconv.Atoi(parts[2])
	if err != nil {
		return CompletionEvent{}, fmt.Errorf("malformed completion event '%s': %v", raw, err)
	}
	return CompletionEvent{Domain: parts[0], Stage: Status(parts[1]), RequestID: id}, nil
}

// TodoService manages the task-inbox side channel consumed by the UI.
type TodoService struct {
	db *gorm.DB
}

func NewTodoService(db *gorm.DB) *TodoService {
	if db == nil {
		db = config.DB
	}
	return &TodoService{db: db}
}

// TodoItem describes one todo to create.
type TodoItem struct {
	Module     string
	Title      string
	Event      CompletionEvent
	AssignedTo string
	CreatedBy  string
}

// CreateTodos inserts open todos, one per item, inside the caller's transaction.
func (s *TodoService) CreateTodos(tx *gorm.DB, items []TodoItem) error {
	if tx == nil {
		tx = s.db
	}
	now := time.Now()
	for _, item := range items {
		todo := models.Todo{
			Module:          item.Module,
			Title:           item.Title,
			CompletionEvent: item.Event.String(),
			AssignedTo:      item.AssignedTo,
			CreatedBy:       item.CreatedBy,
			IsCompleted:     false,
			CreateAt:        now,
		}
		if err := tx.Create(&todo).Error; err != nil {
			return err
		}
	}
	return nil
}

// CompleteTodos closes every open todo matching the module and event, in bulk.
func (s *TodoService) CompleteTodos(tx *gorm.DB, module string, event CompletionEvent) error {
	if tx == nil {
		tx = s.db
	}
	now := time.Now()
	return tx.Model(&models.Todo{}).
		Where("module = ? AND completion_event = ? AND is_completed = ?", module, event.String(), false).
		Updates(map[string]interface{}{
			"is_completed": true,
			"completed_at": now,
		}).Error
}

// OpenTodosByEventPrefix returns open todos whose completion event starts with
// the given "domain:stage:" prefix. Used by the reminder job to find pending
// reviewer items.
func (s *TodoService) OpenTodosByEventPrefix(ctx context.Context, prefix string) ([]models.Todo, error) {
	var todos []models.Todo
	if err := s.db.WithContext(ctx).
		Where("completion_event LIKE ? AND is_completed = ?", prefix+"%", false).
		Order("create_at ASC").
		Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}
