package services

import (
	"testing"
	"time"

	"ims-api/models"
)

func privateDoc(id, fileID int, code string) models.RequestDocument {
	return models.RequestDocument{
		DocumentID:   id,
		FileID:       fileID,
		IsPrivate:    true,
		DocumentType: models.DocumentType{Code: code},
	}
}

func TestCanSeePrivateDocuments(t *testing.T) {
	for _, role := range []RoleKind{RoleSupervisor, RoleDrcConvener, RoleDacMember, RoleStaff} {
		if !CanSeePrivateDocuments(role) {
			t.Fatalf("%s must see private documents", role)
		}
	}
	if CanSeePrivateDocuments(RoleStudent) {
		t.Fatal("students must never see private documents")
	}
}

func TestVisibleDocuments(t *testing.T) {
	deleted := time.Now()
	docs := []models.RequestDocument{
		{DocumentID: 1, IsPrivate: false},
		{DocumentID: 2, IsPrivate: true},
		{DocumentID: 3, IsPrivate: false, DeleteAt: &deleted},
	}

	student := VisibleDocuments(docs, RoleStudent)
	if len(student) != 1 || student[0].DocumentID != 1 {
		t.Fatalf("student view: got %v, want only document 1", student)
	}

	supervisor := VisibleDocuments(docs, RoleSupervisor)
	if len(supervisor) != 2 {
		t.Fatalf("supervisor view: got %d documents, want 2", len(supervisor))
	}
}

func TestCarryForwardSet_WhitelistOnly(t *testing.T) {
	source := []models.RequestDocument{
		privateDoc(1, 10, "examiner_list"),
		privateDoc(2, 11, "supervisor_report"),
		privateDoc(3, 12, "plagiarism_report"),
		privateDoc(4, 13, "meeting_minutes"),
		{DocumentID: 5, FileID: 14, IsPrivate: false,
			DocumentType: models.DocumentType{Code: "examiner_list"}},
	}

	carried := CarryForwardSet(source, nil)
	if len(carried) != 3 {
		t.Fatalf("got %d carried documents, want 3", len(carried))
	}
	for _, doc := range carried {
		if !CarryForwardEligible(doc.DocumentType.Code) {
			t.Fatalf("non-whitelisted type %s carried", doc.DocumentType.Code)
		}
		if !doc.IsPrivate {
			t.Fatalf("public document %d carried", doc.DocumentID)
		}
	}
}

// Running the carry-forward twice must not duplicate: documents already on the
// target (same file id) are skipped, so a second pass yields an empty set.
func TestCarryForwardSet_Idempotent(t *testing.T) {
	source := []models.RequestDocument{
		privateDoc(1, 10, "examiner_list"),
		privateDoc(2, 11, "plagiarism_report"),
	}

	first := CarryForwardSet(source, nil)
	if len(first) != 2 {
		t.Fatalf("first pass: got %d, want 2", len(first))
	}

	// Simulate the copies now sitting on the target request.
	target := make([]models.RequestDocument, 0, len(first))
	for i, doc := range first {
		target = append(target, models.RequestDocument{
			DocumentID:   100 + i,
			FileID:       doc.FileID,
			IsPrivate:    true,
			DocumentType: doc.DocumentType,
		})
	}

	second := CarryForwardSet(source, target)
	if len(second) != 0 {
		t.Fatalf("second pass: got %d, want 0", len(second))
	}
}

func TestCarryForwardSet_SkipsDeleted(t *testing.T) {
	deleted := time.Now()
	doc := privateDoc(1, 10, "examiner_list")
	doc.DeleteAt = &deleted

	if carried := CarryForwardSet([]models.RequestDocument{doc}, nil); len(carried) != 0 {
		t.Fatalf("deleted document carried: %v", carried)
	}
}

func TestCarryForwardEligible(t *testing.T) {
	for _, code := range []string{"examiner_list", "supervisor_report", "plagiarism_report"} {
		if !CarryForwardEligible(code) {
			t.Fatalf("%s must be eligible", code)
		}
	}
	for _, code := range []string{"thesis_draft", "seminar_slides", ""} {
		if CarryForwardEligible(code) {
			t.Fatalf("%s must not be eligible", code)
		}
	}
}
