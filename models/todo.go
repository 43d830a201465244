package models

import "time"

// Todo is an ephemeral task-inbox record. The completion event string
// correlates it to a specific request and stage, format "domain:stage:id".
type Todo struct {
	TodoID          int        `gorm:"primaryKey;column:todo_id" json:"todo_id"`
	Module          string     `gorm:"column:module" json:"module"`
	Title           string     `gorm:"column:title" json:"title"`
	CompletionEvent string     `gorm:"column:completion_event" json:"completion_event"`
	AssignedTo      string     `gorm:"column:assigned_to" json:"assigned_to"`
	CreatedBy       string     `gorm:"column:created_by" json:"created_by"`
	IsCompleted     bool       `gorm:"column:is_completed" json:"is_completed"`
	CompletedAt     *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreateAt        time.Time  `gorm:"column:create_at" json:"create_at"`
}

func (Todo) TableName() string { return "todos" }

type Notification struct {
	NotificationID   uint       `gorm:"primaryKey;column:notification_id" json:"notification_id"`
	UserEmail        string     `gorm:"column:user_email" json:"user_email"`
	Title            string     `gorm:"column:title" json:"title"`
	Message          string     `gorm:"column:message" json:"message"`
	Type             string     `gorm:"column:type" json:"type"` // info|success|warning|error
	RelatedRequestID *int       `gorm:"column:related_request_id" json:"related_request_id,omitempty"`
	IsRead           bool       `gorm:"column:is_read" json:"is_read"`
	CreateAt         time.Time  `gorm:"column:create_at" json:"created_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"-"`
}

func (Notification) TableName() string { return "notifications" }
