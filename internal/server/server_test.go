package server

import (
	"crypto/tls"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"pathways/internal/middleware"
	"pathways/internal/results"
	"pathways/internal/testutil"
)

// TestEncryptCookieSessionRoundTrip verifies that the encryptcookie +
// session middleware stack keeps a value across requests when the client
// replays the encrypted session cookie.
func TestEncryptCookieSessionRoundTrip(t *testing.T) {
	srv := New(testutil.Config("http://127.0.0.1:1"), nil)

	requireSession := middleware.RequireSession(srv.Cache)
	srv.App.Post("/session-set", requireSession, func(c fiber.Ctx) error {
		if err := middleware.SessionFrom(c).Set(results.KeyPathway, "tesda"); err != nil {
			return err
		}
		return c.SendString("ok")
	})
	srv.App.Get("/session-get", requireSession, func(c fiber.Ctx) error {
		val, err := middleware.SessionFrom(c).Get(results.KeyPathway)
		if err != nil {
			return err
		}
		return c.SendString(val)
	})

	client := testutil.NewClient(t, srv.App)

	resp, body := client.Do(http.MethodPost, "/session-set", "", "", false)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("request 1: expected 200, got %d: %s", resp.StatusCode, body)
	}
	if len(resp.Cookies()) == 0 {
		t.Fatal("request 1: no cookies returned")
	}

	// Two more round trips to confirm stability.
	for i := 2; i <= 3; i++ {
		resp, body = client.Do(http.MethodGet, "/session-get", "", "", false)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d: %s", i, resp.StatusCode, body)
		}
		if body != "tesda" {
			t.Errorf("request %d: expected session value 'tesda', got %q", i, body)
		}
	}
}

func TestErrorHandlerRendersErrorPage(t *testing.T) {
	srv := New(testutil.Config("http://127.0.0.1:1"), nil)
	srv.App.Get("/boom", func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	resp, body := testutil.NewClient(t, srv.App).Do(http.MethodGet, "/boom", "", "", false)
	if resp.StatusCode != fiber.StatusTeapot {
		t.Errorf("status = %d, want 418", resp.StatusCode)
	}
	for _, want := range []string{"short and stout", "Back to Dashboard", "Pathways footer"} {
		if !strings.Contains(body, want) {
			t.Errorf("error page missing %q", want)
		}
	}
}

func TestStaticAssets(t *testing.T) {
	srv := New(testutil.Config("http://127.0.0.1:1"), nil)

	resp, body := testutil.NewClient(t, srv.App).Do(http.MethodGet, "/static/css/pathways.css", "", "", false)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(body, ".result-card") {
		t.Error("stylesheet not served")
	}
}

func TestDeriveEncryptionKey(t *testing.T) {
	a := deriveEncryptionKey("secret-one")
	b := deriveEncryptionKey("secret-two")

	if a == b {
		t.Error("different secrets produced the same key")
	}
	if a != deriveEncryptionKey("secret-one") {
		t.Error("key derivation is not deterministic")
	}
	// 32 bytes, base64 encoded.
	if len(a) != 44 {
		t.Errorf("key length = %d, want 44", len(a))
	}
}

func TestApplyTLSConfig(t *testing.T) {
	cfg := testutil.Config("http://127.0.0.1:1")
	src := buildTLSConfig(cfg)

	cert := tls.Certificate{Certificate: [][]byte{[]byte("loaded")}}
	dst := &tls.Config{Certificates: []tls.Certificate{cert}}
	applyTLSConfig(dst, src)

	if dst.MinVersion != tls.VersionTLS12 {
		t.Errorf("MinVersion = %x, want TLS 1.2", dst.MinVersion)
	}
	if dst.ClientAuth != tls.NoClientCert || dst.ClientCAs != nil {
		t.Errorf("client auth set without a CA file: %v", dst.ClientAuth)
	}
	if len(dst.Certificates) != 1 {
		t.Error("certificates loaded by the listener were dropped")
	}
}
