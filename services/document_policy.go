package services

import (
	"time"

	"ims-api/config"
	"ims-api/models"

	"gorm.io/gorm"
)

// staffTypeRoles may see documents flagged private. Students never do.
var staffTypeRoles = map[RoleKind]bool{
	RoleSupervisor:  true,
	RoleDrcConvener: true,
	RoleDacMember:   true,
	RoleStaff:       true,
}

// CanSeePrivateDocuments reports whether the role is a staff-type role.
func CanSeePrivateDocuments(role RoleKind) bool {
	return staffTypeRoles[role]
}

// VisibleDocuments filters a request's documents for the viewing role.
func VisibleDocuments(docs []models.RequestDocument, role RoleKind) []models.RequestDocument {
	visible := make([]models.RequestDocument, 0, len(docs))
	for _, doc := range docs {
		if doc.DeleteAt != nil {
			continue
		}
		if doc.IsPrivate && !CanSeePrivateDocuments(role) {
			continue
		}
		visible = append(visible, doc)
	}
	return visible
}

// carryForwardTypeCodes is the fixed whitelist of document types that
// propagate from the pre-thesis request to the final-thesis request without
// re-upload. Nothing else propagates.
var carryForwardTypeCodes = map[string]bool{
	"examiner_list":     true,
	"supervisor_report": true,
	"plagiarism_report": true,
}

// CarryForwardEligible reports whether a document type code is whitelisted.
func CarryForwardEligible(code string) bool {
	return carryForwardTypeCodes[code]
}

// CarryForwardSet returns the source documents that should be copied onto the
// target request: private, whitelist-typed, and not already present on the
// target (matched by file id, which makes repeated runs idempotent).
// Documents must be loaded with their DocumentType relation.
func CarryForwardSet(source, target []models.RequestDocument) []models.RequestDocument {
	existing := make(map[int]bool, len(target))
	for _, doc := range target {
		existing[doc.FileID] = true
	}

	var carried []models.RequestDocument
	for _, doc := range source {
		if doc.DeleteAt != nil || !doc.IsPrivate {
			continue
		}
		if !CarryForwardEligible(doc.DocumentType.Code) {
			continue
		}
		if existing[doc.FileID] {
			continue
		}
		carried = append(carried, doc)
	}
	return carried
}

// DocumentPolicyService applies the carry-forward rule against the database.
type DocumentPolicyService struct {
	db *gorm.DB
}

func NewDocumentPolicyService(db *gorm.DB) *DocumentPolicyService {
	if db == nil {
		db = config.DB
	}
	return &DocumentPolicyService{db: db}
}

// ApplyCarryForward copies whitelisted private documents from the student's
// thesis-submission request onto the final-thesis request. The copies stay
// private and record the document they were carried from.
func (s *DocumentPolicyService) ApplyCarryForward(fromRequestID, toRequestID int) ([]models.RequestDocument, error) {
	var source []models.RequestDocument
	if err := s.db.Preload("DocumentType").
		Where("request_id = ? AND delete_at IS NULL", fromRequestID).
		Find(&source).Error; err != nil {
		return nil, err
	}

	var target []models.RequestDocument
	if err := s.db.Preload("DocumentType").
		Where("request_id = ? AND delete_at IS NULL", toRequestID).
		Find(&target).Error; err != nil {
		return nil, err
	}

	toCopy := CarryForwardSet(source, target)
	if len(toCopy) == 0 {
		return nil, nil
	}

	now := time.Now()
	carried := make([]models.RequestDocument, 0, len(toCopy))
	for _, doc := range toCopy {
		sourceID := doc.DocumentID
		copy := models.RequestDocument{
			RequestID:      toRequestID,
			DocumentTypeID: doc.DocumentTypeID,
			FileID:         doc.FileID,
			UploadedBy:     doc.UploadedBy,
			IsPrivate:      true,
			CarriedFrom:    &sourceID,
			CreateAt:       &now,
		}
		if err := s.db.Create(&copy).Error; err != nil {
			return nil, err
		}
		carried = append(carried, copy)
	}
	return carried, nil
}
