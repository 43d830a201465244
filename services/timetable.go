package services

import (
	"context"
	"sort"
	"time"

	"ims-api/config"
	"ims-api/models"

	"gorm.io/gorm"
)

// The qualifying-exam timetable packs exams into a small number of sessions.
// Two exams clash when they share a student or an examiner; the assignment
// greedily places the most-constrained exams first and picks the session
// adding the fewest clashes, breaking ties toward the lightest session.

// ExamAssignment is one exam's resulting session.
type ExamAssignment struct {
	ExamID  int
	Session int
}

// AssignSessions distributes exams over numSessions sessions. It returns the
// assignments and the total number of clashes that could not be avoided.
func AssignSessions(exams []models.QualifyingExam, numSessions int) ([]ExamAssignment, int) {
	if numSessions <= 0 || len(exams) == 0 {
		return nil, 0
	}

	conflicts := func(a, b models.QualifyingExam) bool {
		return a.StudentEmail == b.StudentEmail || a.ExaminerEmail == b.ExaminerEmail
	}

	// Degree = number of other exams this one clashes with.
	degree := make(map[int]int, len(exams))
	for i := range exams {
		for j := range exams {
			if i != j && conflicts(exams[i], exams[j]) {
				degree[exams[i].ExamID]++
			}
		}
	}

	ordered := make([]models.QualifyingExam, len(exams))
	copy(ordered, exams)
	sort.SliceStable(ordered, func(i, j int) bool {
		di, dj := degree[ordered[i].ExamID], degree[ordered[j].ExamID]
		if di != dj {
			return di > dj
		}
		return ordered[i].ExamID < ordered[j].ExamID
	})

	sessions := make([][]models.QualifyingExam, numSessions)
	assignments := make([]ExamAssignment, 0, len(ordered))
	totalClashes := 0

	for _, exam := range ordered {
		best := 0
		bestClashes := -1
		for s := 0; s < numSessions; s++ {
			clashes := 0
			for _, placed := range sessions[s] {
				if conflicts(exam, placed) {
					clashes++
				}
			}
			if bestClashes == -1 || clashes < bestClashes ||
				(clashes == bestClashes && len(sessions[s]) < len(sessions[best])) {
				best = s
				bestClashes = clashes
			}
		}
		sessions[best] = append(sessions[best], exam)
		totalClashes += bestClashes
		assignments = append(assignments, ExamAssignment{ExamID: exam.ExamID, Session: best + 1})
	}

	return assignments, totalClashes
}

// TimetableSummary reports one assignment run.
type TimetableSummary struct {
	ExamsAssigned int `json:"exams_assigned"`
	Sessions      int `json:"sessions"`
	Clashes       int `json:"clashes"`
}

// TimetableService persists session assignments for a semester's exams.
type TimetableService struct {
	db *gorm.DB
}

func NewTimetableService(db *gorm.DB) *TimetableService {
	if db == nil {
		db = config.DB
	}
	return &TimetableService{db: db}
}

// AssignForSemester loads the semester's exams, computes the assignment and
// writes the session numbers back.
func (s *TimetableService) AssignForSemester(ctx context.Context, semesterID, numSessions int) (*TimetableSummary, error) {
	if numSessions <= 0 {
		return nil, ValidationError("number of sessions must be positive")
	}

	db := s.db.WithContext(ctx)

	var exams []models.QualifyingExam
	if err := db.Where("semester_id = ?", semesterID).
		Order("exam_id ASC").Find(&exams).Error; err != nil {
		return nil, err
	}

	assignments, clashes := AssignSessions(exams, numSessions)

	now := time.Now()
	for _, assignment := range assignments {
		if err := db.Model(&models.QualifyingExam{}).
			Where("exam_id = ?", assignment.ExamID).
			Updates(map[string]interface{}{
				"session_number": assignment.Session,
				"update_at":      now,
			}).Error; err != nil {
			return nil, err
		}
	}

	return &TimetableSummary{
		ExamsAssigned: len(assignments),
		Sessions:      numSessions,
		Clashes:       clashes,
	}, nil
}
