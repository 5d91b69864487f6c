package middleware

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"pathways/internal/results"
)

func TestRequireSession(t *testing.T) {
	app := fiber.New()
	sessionMiddleware, store := session.NewWithStore()
	app.Use(sessionMiddleware)
	requireSession := RequireSession(results.NewCache(store.Storage, time.Hour))

	app.Post("/set", requireSession, func(c fiber.Ctx) error {
		if err := SessionFrom(c).Set(results.KeyPathway, "career"); err != nil {
			return err
		}
		return c.SendString("ok")
	})
	app.Get("/get", requireSession, func(c fiber.Ctx) error {
		v, err := SessionFrom(c).Get(results.KeyPathway)
		if err != nil {
			return err
		}
		return c.SendString(v)
	})

	resp, err := app.Test(httptestRequest(http.MethodPost, "/set", nil))
	if err != nil {
		t.Fatalf("set request failed: %v", err)
	}
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie issued")
	}

	resp, err = app.Test(httptestRequest(http.MethodGet, "/get", cookies))
	if err != nil {
		t.Fatalf("get request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "career" {
		t.Errorf("session value = %q, want %q", body, "career")
	}
}

func TestRequireSession_WithoutSessionMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/", RequireSession(results.NewCache(session.NewStore().Storage, time.Hour)), func(c fiber.Ctx) error {
		return c.SendString("reached")
	})

	resp, err := app.Test(httptestRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}

func TestSessionFrom_Unset(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c fiber.Ctx) error {
		if SessionFrom(c) != nil {
			return c.SendString("unexpected")
		}
		return c.SendString("nil")
	})

	resp, _ := app.Test(httptestRequest(http.MethodGet, "/", nil))
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "nil" {
		t.Errorf("SessionFrom() without middleware = %q", body)
	}
}

func httptestRequest(method, target string, cookies []*http.Cookie) *http.Request {
	req, _ := http.NewRequest(method, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}
