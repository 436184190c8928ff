package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/nguyentoan1998/stockflowapp-sub002/document"
)

// StatusEvent is an append-only audit row for every status transition. The
// snapshot freezes the document body as it looked when the transition fired.
type StatusEvent struct {
	Id           uint            `json:"id" gorm:"primaryKey"`
	DocumentType document.Type   `json:"document_type" gorm:"size:32;index:idx_status_events_doc,priority:1;not null"`
	DocumentId   uint            `json:"document_id" gorm:"index:idx_status_events_doc,priority:2;not null"`
	FromStatus   document.Status `json:"from_status" gorm:"size:32"`
	ToStatus     document.Status `json:"to_status" gorm:"size:32;not null"`
	UserId       string          `json:"user_id" gorm:"size:128"`
	Snapshot     datatypes.JSON  `json:"snapshot" gorm:"type:jsonb"`
	CreatedAt    time.Time       `json:"created_at"`
}
