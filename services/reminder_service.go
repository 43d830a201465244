package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"ims-api/config"
	"ims-api/models"

	"gorm.io/gorm"
)

// reminderOffsets are the day distances at which a deadline triggers emails.
var reminderOffsets = []int{1, 2, 5}

// ReminderSummary reports the outcome of one reminder run.
type ReminderSummary struct {
	SemestersChecked   int `json:"semesters_checked"`
	SemestersWithError int `json:"semesters_with_error"`
	CategoriesMatched  int `json:"categories_matched"`
	EmailsSent         int `json:"emails_sent"`
}

// reminderCategory ties one semester deadline to the request status whose
// actors it concerns.
type reminderCategory struct {
	Name     string
	Stage    Status
	Deadline time.Time
}

func semesterCategories(semester models.ProposalSemester) []reminderCategory {
	return []reminderCategory{
		{Name: "student-submission", Stage: StatusDraft, Deadline: semester.StudentSubmissionDate},
		{Name: "faculty-review", Stage: StatusSupervisorReview, Deadline: semester.FacultyReviewDate},
		{Name: "drc-review", Stage: StatusDrcReview, Deadline: semester.DrcReviewDate},
		{Name: "dac-review", Stage: StatusDacReview, Deadline: semester.DacReviewDate},
	}
}

// midnight normalizes an instant to local midnight. Reminder matching works
// at day granularity.
func midnight(t time.Time) time.Time {
	year, month, day := t.Local().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// DaysUntil returns the calendar-day distance between now and the deadline,
// both normalized to local midnight. The duration between two midnights is
// not always a multiple of 24h (DST shifts a day by an hour), so the result
// is rounded rather than truncated.
func DaysUntil(deadline, now time.Time) int {
	return int(math.Round(midnight(deadline).Sub(midnight(now)).Hours() / 24))
}

// MatchesReminderOffset reports whether the deadline is exactly 1, 2 or 5
// days away from now.
func MatchesReminderOffset(deadline, now time.Time) bool {
	days := DaysUntil(deadline, now)
	for _, offset := range reminderOffsets {
		if days == offset {
			return true
		}
	}
	return false
}

// GroupTodosByAssignee buckets open todos per recipient, preserving creation
// order inside each bucket. One recipient gets one email no matter how many
// pending items they hold.
func GroupTodosByAssignee(todos []models.Todo) map[string][]models.Todo {
	grouped := make(map[string][]models.Todo)
	for _, todo := range todos {
		grouped[todo.AssignedTo] = append(grouped[todo.AssignedTo], todo)
	}
	return grouped
}

// ReminderService runs the daily deadline-reminder batch.
type ReminderService struct {
	db    *gorm.DB
	todos *TodoService
	send  func([]config.BulkMessage) error
}

func NewReminderService(db *gorm.DB) *ReminderService {
	if db == nil {
		db = config.DB
	}
	return &ReminderService{
		db:    db,
		todos: NewTodoService(db),
		send:  config.SendBulkEmails,
	}
}

// SetSender replaces the email dispatch function. Used by the dry-run flag
// and by tests.
func (s *ReminderService) SetSender(send func([]config.BulkMessage) error) {
	s.send = send
}

// RunForDate processes every active semester for the given "now". One failing
// semester is logged and skipped; it never aborts the whole batch.
func (s *ReminderService) RunForDate(ctx context.Context, now time.Time) (*ReminderSummary, error) {
	summary := &ReminderSummary{}

	var semesters []models.ProposalSemester
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Find(&semesters).Error; err != nil {
		return nil, err
	}

	for _, semester := range semesters {
		summary.SemestersChecked++
		if err := s.runSemester(ctx, semester, now, summary); err != nil {
			summary.SemestersWithError++
			log.Printf("reminders: semester %s failed: %v", semester.Label, err)
		}
	}
	return summary, nil
}

// runSemester fires every matching category; a semester can trigger several
// categories in one run when multiple deadlines sit on matching offsets.
func (s *ReminderService) runSemester(ctx context.Context, semester models.ProposalSemester, now time.Time, summary *ReminderSummary) error {
	for _, category := range semesterCategories(semester) {
		if !MatchesReminderOffset(category.Deadline, now) {
			continue
		}
		summary.CategoriesMatched++

		var sent int
		var err error
		if category.Stage == StatusDraft {
			sent, err = s.remindStudents(ctx, semester, category)
		} else {
			sent, err = s.remindReviewers(ctx, semester, category)
		}
		if err != nil {
			// A failure mid-dispatch halts this category for this run but
			// the remaining categories still get processed.
			log.Printf("reminders: semester %s category %s: %v", semester.Label, category.Name, err)
			continue
		}
		summary.EmailsSent += sent
	}
	return nil
}

// remindStudents emails every student who still has a draft request in this
// semester, one email per student.
func (s *ReminderService) remindStudents(ctx context.Context, semester models.ProposalSemester, category reminderCategory) (int, error) {
	var requests []models.PhdRequest
	if err := s.db.WithContext(ctx).
		Where("semester_id = ? AND status = ?", semester.SemesterID, string(StatusDraft)).
		Find(&requests).Error; err != nil {
		return 0, err
	}

	byStudent := make(map[string][]models.PhdRequest)
	for _, request := range requests {
		byStudent[request.StudentEmail] = append(byStudent[request.StudentEmail], request)
	}

	messages := make([]config.BulkMessage, 0, len(byStudent))
	for _, email := range sortedKeys(byStudent) {
		pending := byStudent[email]
		subject := fmt.Sprintf("Submission deadline approaching (%s)", semester.Label)
		paragraphs := []string{
			fmt.Sprintf("The submission deadline for %s is %s.", semester.Label, category.Deadline.Format("2 January 2006")),
			"The following items are still in draft and have not been submitted:",
		}
		meta := make([]EmailMetaItem, 0, len(pending))
		for _, request := range pending {
			meta = append(meta, EmailMetaItem{Label: request.RequestType, Value: request.Title})
		}
		messages = append(messages, config.BulkMessage{
			To:      email,
			Subject: subject,
			Body:    BuildEmailHTML(subject, paragraphs, meta, "", ""),
		})
	}

	if err := s.send(messages); err != nil {
		return 0, err
	}
	return len(messages), nil
}

// remindReviewers cross-references requests pending at the category's stage
// with open todos for that stage, then sends one batched email per reviewer
// listing all their pending items.
func (s *ReminderService) remindReviewers(ctx context.Context, semester models.ProposalSemester, category reminderCategory) (int, error) {
	var requests []models.PhdRequest
	if err := s.db.WithContext(ctx).
		Where("semester_id = ? AND status = ?", semester.SemesterID, string(category.Stage)).
		Find(&requests).Error; err != nil {
		return 0, err
	}
	if len(requests) == 0 {
		return 0, nil
	}

	inSemester := make(map[int]models.PhdRequest, len(requests))
	for _, request := range requests {
		inSemester[request.RequestID] = request
	}

	var todos []models.Todo
	for _, requestType := range []string{
		RequestTypeProposal,
		RequestTypePreSubmission,
		RequestTypeDraftNotice,
		RequestTypeThesisSubmission,
		RequestTypeFinalThesis,
		RequestTypeChangeOfTitle,
	} {
		open, err := s.todos.OpenTodosByEventPrefix(ctx, EventPrefix(requestType, category.Stage))
		if err != nil {
			return 0, err
		}
		for _, todo := range open {
			event, err := ParseCompletionEvent(todo.CompletionEvent)
			if err != nil {
				log.Printf("reminders: skipping todo %d: %v", todo.TodoID, err)
				continue
			}
			if _, ok := inSemester[event.RequestID]; ok {
				todos = append(todos, todo)
			}
		}
	}

	grouped := GroupTodosByAssignee(todos)
	messages := make([]config.BulkMessage, 0, len(grouped))
	for _, email := range sortedKeys(grouped) {
		items := grouped[email]
		subject := fmt.Sprintf("Pending reviews due soon (%s)", semester.Label)
		paragraphs := []string{
			fmt.Sprintf("The %s deadline for %s is %s.", category.Name, semester.Label, category.Deadline.Format("2 January 2006")),
			fmt.Sprintf("You have %d pending item(s):", len(items)),
		}
		meta := make([]EmailMetaItem, 0, len(items))
		for _, todo := range items {
			meta = append(meta, EmailMetaItem{Label: todo.CompletionEvent, Value: todo.Title})
		}
		messages = append(messages, config.BulkMessage{
			To:      email,
			Subject: subject,
			Body:    BuildEmailHTML(subject, paragraphs, meta, "", ""),
		})
	}

	if err := s.send(messages); err != nil {
		return 0, err
	}
	return len(messages), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
