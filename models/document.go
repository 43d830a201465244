package models

import (
	"time"
)

// FileUpload represents the file_uploads table
type FileUpload struct {
	FileID       int        `gorm:"primaryKey;column:file_id" json:"file_id"`
	OriginalName string     `gorm:"column:original_name" json:"original_name"`
	StoredPath   string     `gorm:"column:stored_path" json:"stored_path"`
	FileSize     int64      `gorm:"column:file_size" json:"file_size"`
	MimeType     string     `gorm:"column:mime_type" json:"mime_type"`
	UploadedBy   int        `gorm:"column:uploaded_by" json:"uploaded_by"`
	UploadedAt   time.Time  `gorm:"column:uploaded_at" json:"uploaded_at"`
	CreateAt     time.Time  `gorm:"column:create_at" json:"create_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Uploader User `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
}

// DocumentType tags a document with its workflow meaning, e.g. examiner_list.
type DocumentType struct {
	DocumentTypeID   int        `gorm:"primaryKey;column:document_type_id" json:"document_type_id"`
	DocumentTypeName string     `gorm:"column:document_type_name" json:"document_type_name"`
	Code             string     `gorm:"column:code" json:"code"`
	Required         bool       `gorm:"column:required" json:"required"`
	DocumentOrder    int        `gorm:"column:document_order" json:"document_order"`
	CreateAt         *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// RequestDocument attaches an uploaded file to a request. Immutable after
// upload; private documents are hidden from the student.
type RequestDocument struct {
	DocumentID     int        `gorm:"primaryKey;column:document_id" json:"document_id"`
	RequestID      int        `gorm:"column:request_id" json:"request_id"`
	DocumentTypeID int        `gorm:"column:document_type_id" json:"document_type_id"`
	FileID         int        `gorm:"column:file_id" json:"file_id"`
	UploadedBy     int        `gorm:"column:uploaded_by" json:"uploaded_by"`
	IsPrivate      bool       `gorm:"column:is_private" json:"is_private"`
	CarriedFrom    *int       `gorm:"column:carried_from" json:"carried_from,omitempty"`
	CreateAt       *time.Time `gorm:"column:create_at" json:"create_at"`
	DeleteAt       *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	DocumentType DocumentType `gorm:"foreignKey:DocumentTypeID" json:"document_type,omitempty"`
	File         FileUpload   `gorm:"foreignKey:FileID" json:"file,omitempty"`
}

// TableName overrides
func (FileUpload) TableName() string {
	return "file_uploads"
}

func (DocumentType) TableName() string {
	return "document_types"
}

func (RequestDocument) TableName() string {
	return "request_documents"
}

// Helper methods for file validation
func (f *FileUpload) IsValidDocumentType() bool {
	validTypes := []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}
	for _, validType := range validTypes {
		if f.MimeType == validType {
			return true
		}
	}
	return false
}

func (f *FileUpload) GetFileSizeInMB() float64 {
	return float64(f.FileSize) / (1024 * 1024)
}
