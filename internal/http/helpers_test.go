package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"golang.org/x/crypto/bcrypt"

	"gestorpro/internal/http/handlers"
	"gestorpro/internal/repos"
	"gestorpro/internal/services"
	"gestorpro/internal/store"
)

func init() { services.BcryptCost = bcrypt.MinCost }

type testApp struct {
	app   *fiber.App
	deps  *handlers.Deps
	store *store.Store
	quits atomic.Int32
	csrf  string
}

// newTestApp builds the real route table over a temp data dir and an
// in-memory session db. loginLimit may be nil.
func newTestApp(t *testing.T, loginLimit fiber.Handler) *testApp {
	t.Helper()
	st := store.New(t.TempDir())
	st.Initialize()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ta := &testApp{store: st}
	ta.deps = handlers.NewDeps(st, db, func() { ta.quits.Add(1) })

	app := fiber.New(fiber.Config{Views: handlers.NewEngine("../../web/templates"), ErrorHandler: handlers.ErrorHandler})
	app.Server().MaxRequestBodySize = 8 << 20
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax", ErrorHandler: handlers.CSRFFailed}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})
	handlers.Mount(app, ta.deps, loginLimit)
	ta.app = app

	// fetch csrf token
	resp := ta.get(t, "/login")
	ta.csrf = extractCookie(resp, "csrf_")
	if ta.csrf == "" {
		t.Fatal("csrf token missing")
	}
	return ta
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func (ta *testApp) get(t *testing.T, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if ta.csrf != "" {
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: ta.csrf})
	}
	resp, err := ta.app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func (ta *testApp) post(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", ta.csrf)
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: ta.csrf})
	resp, err := ta.app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

// signUp registers and logs in a user.
func (ta *testApp) signUp(t *testing.T) {
	t.Helper()
	resp := ta.post(t, "/register", url.Values{"name": {"Ana"}, "email": {"ana@loja.test"}, "password": {"segredo1"}})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("register: expected redirect, got %d", resp.StatusCode)
	}
}

// page follows up an action with GET / and returns the rendered body.
func (ta *testApp) page(t *testing.T) string {
	t.Helper()
	return body(t, ta.get(t, "/"))
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func expectRedirect(t *testing.T, resp *http.Response, to string) {
	t.Helper()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != to {
		t.Fatalf("expected redirect to %s, got %s", to, loc)
	}
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

// capture logs by temporarily replacing the standard logger output
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedWriter{w: &buf, mu: &mu})
	log.SetFlags(0) // remove timestamps to make JSON parseable
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
