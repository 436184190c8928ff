package middlewares

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/nguyentoan1998/stockflowapp-sub002/database"
	"github.com/nguyentoan1998/stockflowapp-sub002/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// idempotencyStore persists idempotency records. beginRequest registers rec as
// pending if its key is unseen and returns the record now on file, which may be
// a pending or completed earlier attempt.
type idempotencyStore interface {
	beginRequest(rec models.IdempotencyKey) (models.IdempotencyKey, error)
	storeResponse(key string, status int, body []byte) error
}

type dbIdempotencyStore struct{}

func (dbIdempotencyStore) beginRequest(rec models.IdempotencyKey) (models.IdempotencyKey, error) {
	var existing models.IdempotencyKey
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("key = ?", rec.Key).First(&existing).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusInternalServerError, "idempotency lookup failed")
			}
			if e2 := tx.Create(&rec).Error; e2 != nil {
				// Unique race with a concurrent request: read the winner.
				if e3 := tx.Where("key = ?", rec.Key).First(&existing).Error; e3 != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "idempotency create failed")
				}
				return nil
			}
			existing = rec
		}
		return nil
	})
	return existing, err
}

func (dbIdempotencyStore) storeResponse(key string, status int, body []byte) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		blob := make([]byte, len(body))
		copy(blob, body)
		return tx.Model(&models.IdempotencyKey{}).
			Where("key = ?", key).
			Updates(map[string]any{
				"response_status": status,
				"response_body":   blob,
				"completed_at":    &now,
			}).Error
	})
}

// Idempotency processes Idempotency-Key for mutating HTTP methods. Document
// saves are multi-step and not atomic, so replaying a completed request from
// the stored response is the only duplicate-submission protection there is.
func Idempotency() fiber.Handler {
	return idempotencyWith(dbIdempotencyStore{})
}

func idempotencyWith(store idempotencyStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		method := strings.ToUpper(c.Method())
		if method != fiber.MethodPost && method != fiber.MethodPut && method != fiber.MethodPatch && method != fiber.MethodDelete {
			return c.Next()
		}

		key := strings.TrimSpace(c.Get("Idempotency-Key"))
		if key == "" {
			return c.Next()
		}
		if len(key) > 128 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Idempotency-Key too long"})
		}

		userID, _ := c.Locals("userID").(string)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "auth context missing"})
		}

		path := c.OriginalURL() // includes query string

		// Deterministic request hash: method|path|body|user
		h := sha256.New()
		h.Write([]byte(method))
		h.Write([]byte{'\n'})
		h.Write([]byte(path))
		h.Write([]byte{'\n'})
		h.Write(c.Body())
		h.Write([]byte{'\n'})
		h.Write([]byte(userID))
		reqHash := hex.EncodeToString(h.Sum(nil))

		existing, err := store.beginRequest(models.IdempotencyKey{
			Key:         key,
			RequestHash: reqHash,
			Method:      method,
			Path:        path,
			UserID:      userID,
		})
		if err != nil {
			return err
		}

		if existing.RequestHash != reqHash {
			return fiber.NewError(fiber.StatusConflict, "Idempotency-Key reuse with different request")
		}
		if existing.ResponseStatus != 0 && existing.ResponseBody != nil {
			// Completed earlier attempt: replay the stored response. The
			// handler must not run again; returning here skips it.
			c.Status(existing.ResponseStatus)
			return c.Send(existing.ResponseBody)
		}

		// Pending record is ours (or a concurrent attempt's): run the handler.
		if err := c.Next(); err != nil {
			return err
		}

		// Best-effort store; a failed write only costs replay protection.
		_ = store.storeResponse(key, c.Response().StatusCode(), c.Response().Body())
		return nil
	}
}
