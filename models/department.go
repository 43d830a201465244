package models

import "time"

// ConferenceApplication is a conference-travel approval request. It moves
// through a single supervisor stage and then a staff stage.
type ConferenceApplication struct {
	ApplicationID   int        `gorm:"primaryKey;column:application_id" json:"application_id"`
	ApplicantEmail  string     `gorm:"column:applicant_email" json:"applicant_email"`
	SupervisorEmail string     `gorm:"column:supervisor_email" json:"supervisor_email"`
	ConferenceName  string     `gorm:"column:conference_name" json:"conference_name"`
	Venue           string     `gorm:"column:venue" json:"venue"`
	TravelStart     time.Time  `gorm:"column:travel_start" json:"travel_start"`
	TravelEnd       time.Time  `gorm:"column:travel_end" json:"travel_end"`
	RequestedAmount float64    `gorm:"column:requested_amount" json:"requested_amount"`
	Status          string     `gorm:"column:status" json:"status"`
	Version         int        `gorm:"column:version" json:"version"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`
}

// InventoryItem is one tracked departmental asset.
type InventoryItem struct {
	ItemID       int        `gorm:"primaryKey;column:item_id" json:"item_id"`
	Name         string     `gorm:"column:name" json:"name"`
	SerialNumber string     `gorm:"column:serial_number" json:"serial_number"`
	Location     string     `gorm:"column:location" json:"location"`
	Status       string     `gorm:"column:status" json:"status"` // available|borrowed|retired
	BorrowedBy   *string    `gorm:"column:borrowed_by" json:"borrowed_by,omitempty"`
	BorrowedAt   *time.Time `gorm:"column:borrowed_at" json:"borrowed_at,omitempty"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// Publication is one faculty publication record used for analytics.
type Publication struct {
	PublicationID int        `gorm:"primaryKey;column:publication_id" json:"publication_id"`
	UserID        int        `gorm:"column:user_id" json:"user_id"`
	Title         string     `gorm:"column:title" json:"title"`
	Venue         string     `gorm:"column:venue" json:"venue"`
	Year          int        `gorm:"column:year" json:"year"`
	Type          string     `gorm:"column:type" json:"type"` // journal|conference|book
	Citations     int        `gorm:"column:citations" json:"citations"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// QualifyingExam is one exam needing a timetable session. SessionNumber is
// nil until the assignment job has run.
type QualifyingExam struct {
	ExamID        int        `gorm:"primaryKey;column:exam_id" json:"exam_id"`
	SemesterID    int        `gorm:"column:semester_id" json:"semester_id"`
	StudentEmail  string     `gorm:"column:student_email" json:"student_email"`
	CourseCode    string     `gorm:"column:course_code" json:"course_code"`
	ExaminerEmail string     `gorm:"column:examiner_email" json:"examiner_email"`
	SessionNumber *int       `gorm:"column:session_number" json:"session_number,omitempty"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`
}

// CourseHandout is a handout submitted by an instructor for review.
type CourseHandout struct {
	HandoutID      int        `gorm:"primaryKey;column:handout_id" json:"handout_id"`
	CourseCode     string     `gorm:"column:course_code" json:"course_code"`
	CourseName     string     `gorm:"column:course_name" json:"course_name"`
	SubmitterEmail string     `gorm:"column:submitter_email" json:"submitter_email"`
	ReviewerEmail  string     `gorm:"column:reviewer_email" json:"reviewer_email"`
	Status         string     `gorm:"column:status" json:"status"`
	Comments       *string    `gorm:"column:comments" json:"comments,omitempty"`
	FileID         *int       `gorm:"column:file_id" json:"file_id,omitempty"`
	Version        int        `gorm:"column:version" json:"version"`
	CreateAt       *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time `gorm:"column:update_at" json:"update_at"`
}

// TableName overrides
func (ConferenceApplication) TableName() string {
	return "conference_applications"
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

func (Publication) TableName() string {
	return "publications"
}

func (QualifyingExam) TableName() string {
	return "qualifying_exams"
}

func (CourseHandout) TableName() string {
	return "course_handouts"
}
