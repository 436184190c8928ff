package controllers

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nguyentoan1998/stockflowapp-sub002/document"
	"github.com/nguyentoan1998/stockflowapp-sub002/logger"
)

var codeLog = logger.WithComponent("codegen")

// nextDocumentCode scans the existing codes of one document table for the
// current year and returns the next sequential code. When the lookup fails it
// falls back to a timestamp-based code: generation must never block creation.
//
// Two near-simultaneous creations can scan the same snapshot and compute the
// same code; the unique index on the code column rejects the loser. Accepted
// limitation of generate-then-create.
func nextDocumentCode(db *gorm.DB, model any, prefix string) string {
	now := time.Now()
	year := now.Year()

	var codes []string
	err := db.Model(model).
		Where("code LIKE ?", fmt.Sprintf("%s-%d-%%", prefix, year)).
		Pluck("code", &codes).Error
	if err != nil {
		codeLog.Error().Err(err).Str("prefix", prefix).Msg("code lookup failed, using timestamp fallback")
		return document.FallbackCode(prefix, year, now)
	}
	return document.NextCode(prefix, year, codes)
}
