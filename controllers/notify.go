package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/nguyentoan1998/stockflowapp-sub002/document"
	"github.com/nguyentoan1998/stockflowapp-sub002/logger"
)

var notifyLog = logger.WithComponent("notify")

// notifyConfirmation posts a confirmation event to the downstream automation
// webhook, if one is configured. It is fire-and-forget: failures are logged on
// their own channel and never surface to the caller or roll back the
// transition that triggered them. The default http.Client timeout behavior
// applies; there is no retry.
func notifyConfirmation(docType document.Type, docID uint, code string) {
	url := os.Getenv("AUTOMATION_WEBHOOK_URL")
	if url == "" {
		return
	}

	go func() {
		payload, err := json.Marshal(map[string]any{
			"event":         "document.confirmed",
			"document_type": string(docType),
			"document_id":   docID,
			"code":          code,
			"confirmed_at":  time.Now().UTC(),
		})
		if err != nil {
			notifyLog.Error().Err(err).Msg("webhook payload marshal failed")
			return
		}

		resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
		if err != nil {
			notifyLog.Error().Err(err).Str("code", code).Msg("confirmation webhook failed")
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			notifyLog.Error().Int("status", resp.StatusCode).Str("code", code).Msg("confirmation webhook rejected")
		}
	}()
}
