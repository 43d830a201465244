package models

import (
	"time"
)

// SignatureRequest asks one person to sign off on an uploaded file. The
// signer either signs or declines with a reason; either way the request is
// closed and a new one must be raised for another attempt.
type SignatureRequest struct {
	SignatureID    int        `gorm:"primaryKey;column:signature_id" json:"signature_id"`
	FileID         int        `gorm:"column:file_id" json:"file_id"`
	RequesterEmail string     `gorm:"column:requester_email" json:"requester_email"`
	SignerEmail    string     `gorm:"column:signer_email" json:"signer_email"`
	Title          string     `gorm:"column:title" json:"title"`
	Status         string     `gorm:"column:status" json:"status"` // pending|signed|declined
	Reason         *string    `gorm:"column:reason" json:"reason,omitempty"`
	SignedAt       *time.Time `gorm:"column:signed_at" json:"signed_at,omitempty"`
	Version        int        `gorm:"column:version" json:"version"`
	CreateAt       *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	File FileUpload `gorm:"foreignKey:FileID" json:"file,omitempty"`
}

func (SignatureRequest) TableName() string {
	return "signature_requests"
}
