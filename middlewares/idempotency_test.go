package middlewares

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/nguyentoan1998/stockflowapp-sub002/models"
)

type memIdempotencyStore struct {
	records map[string]models.IdempotencyKey
}

func newMemIdempotencyStore() *memIdempotencyStore {
	return &memIdempotencyStore{records: map[string]models.IdempotencyKey{}}
}

func (s *memIdempotencyStore) beginRequest(rec models.IdempotencyKey) (models.IdempotencyKey, error) {
	if existing, ok := s.records[rec.Key]; ok {
		return existing, nil
	}
	s.records[rec.Key] = rec
	return rec, nil
}

func (s *memIdempotencyStore) storeResponse(key string, status int, body []byte) error {
	rec := s.records[key]
	rec.ResponseStatus = status
	rec.ResponseBody = append([]byte(nil), body...)
	s.records[key] = rec
	return nil
}

func newIdempotencyApp(store idempotencyStore, calls *int) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", "user-1")
		return c.Next()
	})
	app.Use(idempotencyWith(store))
	app.Post("/documents", func(c *fiber.Ctx) error {
		*calls++
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"attempt": *calls})
	})
	return app
}

func postDocument(t *testing.T, app *fiber.App, key, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/documents", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return string(b)
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	calls := 0
	app := newIdempotencyApp(newMemIdempotencyStore(), &calls)

	first := postDocument(t, app, "key-1", `{"note":"a"}`)
	if first.StatusCode != fiber.StatusCreated {
		t.Fatalf("first status = %d, want 201", first.StatusCode)
	}
	firstBody := readBody(t, first)

	second := postDocument(t, app, "key-1", `{"note":"a"}`)
	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
	if second.StatusCode != fiber.StatusCreated {
		t.Errorf("replay status = %d, want 201", second.StatusCode)
	}
	if got := readBody(t, second); got != firstBody {
		t.Errorf("replay body = %q, want stored %q", got, firstBody)
	}
}

func TestIdempotencyKeyReuseWithDifferentRequest(t *testing.T) {
	calls := 0
	app := newIdempotencyApp(newMemIdempotencyStore(), &calls)

	postDocument(t, app, "key-1", `{"note":"a"}`)
	resp := postDocument(t, app, "key-1", `{"note":"b"}`)

	if resp.StatusCode != fiber.StatusConflict {
		t.Errorf("status = %d, want 409", resp.StatusCode)
	}
	if calls != 1 {
		t.Errorf("handler ran %d times, want 1", calls)
	}
}

func TestIdempotencyWithoutKeyRunsEveryTime(t *testing.T) {
	calls := 0
	app := newIdempotencyApp(newMemIdempotencyStore(), &calls)

	postDocument(t, app, "", `{"note":"a"}`)
	postDocument(t, app, "", `{"note":"a"}`)

	if calls != 2 {
		t.Errorf("handler ran %d times, want 2", calls)
	}
}

func TestIdempotencyKeyTooLong(t *testing.T) {
	calls := 0
	app := newIdempotencyApp(newMemIdempotencyStore(), &calls)

	resp := postDocument(t, app, strings.Repeat("k", 129), `{}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if calls != 0 {
		t.Errorf("handler ran %d times, want 0", calls)
	}
}

func TestIdempotencyDistinctKeysRunIndependently(t *testing.T) {
	calls := 0
	app := newIdempotencyApp(newMemIdempotencyStore(), &calls)

	for i := 0; i < 2; i++ {
		resp := postDocument(t, app, fmt.Sprintf("key-%d", i), `{"note":"a"}`)
		if resp.StatusCode != fiber.StatusCreated {
			t.Fatalf("status = %d, want 201", resp.StatusCode)
		}
	}
	if calls != 2 {
		t.Errorf("handler ran %d times, want 2", calls)
	}
}
