package folio

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/alexchen-dev/folio/contact"
)

// recordingSender captures delivered messages and can be told to fail.
type recordingSender struct {
	mu   sync.Mutex
	msgs []contact.Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, m contact.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.msgs = append(s.msgs, m)
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.msgs)
}

func newTestApp(t *testing.T, cfg SiteConfig, opts ...Option) *App {
	t.Helper()
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "test-session-secret-0123456789"
	}
	cfg.LogLevel = "off"
	a := New(cfg, append([]Option{WithStaticDir(t.TempDir())}, opts...)...)
	if err := a.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

// browser keeps cookies and the CSRF token between requests like a real client.
type browser struct {
	t       *testing.T
	e       *echo.Echo
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, a *App) *browser {
	b := &browser{t: t, e: a.Echo, cookies: map[string]*http.Cookie{}}
	if rec := b.do(http.MethodGet, "/", nil, false); rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d", rec.Code)
	}
	return b
}

func (b *browser) request(method, path string, form url.Values, fragment bool) *http.Request {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	if fragment {
		req.Header.Set("HX-Request", "true")
	}
	if c, ok := b.cookies["_csrf"]; ok {
		req.Header.Set("X-CSRF-Token", c.Value)
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	return req
}

func (b *browser) do(method, path string, form url.Values, fragment bool) *httptest.ResponseRecorder {
	b.t.Helper()
	rec := httptest.NewRecorder()
	b.e.ServeHTTP(rec, b.request(method, path, form, fragment))
	for _, c := range rec.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return rec
}

func contactForm(name, email, msg string) url.Values {
	return url.Values{"name": {name}, "email": {email}, "message": {msg}}
}

func TestHomePage(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	b := newBrowser(t, a)
	rec := b.do(http.MethodGet, "/", nil, false)

	body := rec.Body.String()
	for _, want := range []string{`id="home"`, `id="contact"`, "Alex Chen", `id="contact-form"`} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
	if _, ok := b.cookies["_csrf"]; !ok {
		t.Error("csrf cookie not set")
	}
	if _, ok := b.cookies[visitorSessionName]; !ok {
		t.Error("visitor cookie not set")
	}
}

func TestHomePartial(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	b := newBrowser(t, a)

	rec := b.do(http.MethodGet, "/?partial=skills", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<!doctype") || !strings.Contains(body, `id="skills"`) {
		t.Fatalf("partial should render only the skills section: %.200s", body)
	}

	if rec := b.do(http.MethodGet, "/?partial=pricing", nil, true); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown partial = %d, want 404", rec.Code)
	}
}

func TestContactSuccessClearsForm(t *testing.T) {
	sender := &recordingSender{}
	a := newTestApp(t, SiteConfig{}, WithSender(sender))
	b := newBrowser(t, a)

	rec := b.do(http.MethodPost, "/contact/", contactForm("Jane", "jane@example.com", "Hi there"), true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Your message has been sent") {
		t.Errorf("missing success notice: %s", body)
	}
	if strings.Contains(body, `value="Jane"`) {
		t.Error("fields should be cleared after success")
	}
	if sender.count() != 1 || sender.msgs[0].Email != "jane@example.com" {
		t.Fatalf("sent = %+v", sender.msgs)
	}
	if sender.msgs[0].RemoteAddr == "" {
		t.Error("remote address not recorded")
	}
}

func TestContactValidationError(t *testing.T) {
	sender := &recordingSender{}
	a := newTestApp(t, SiteConfig{}, WithSender(sender))
	b := newBrowser(t, a)

	rec := b.do(http.MethodPost, "/contact/", contactForm("Jane", "not-an-email", "Hi"), true)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Email must be a valid email address") {
		t.Errorf("missing inline error: %s", body)
	}
	if !strings.Contains(body, `value="Jane"`) {
		t.Error("entered name should be kept")
	}
	if sender.count() != 0 {
		t.Error("invalid submission must not be sent")
	}
}

func TestContactNetworkErrorKeepsFields(t *testing.T) {
	sender := &recordingSender{err: errors.New("dial tcp: connection refused")}
	a := newTestApp(t, SiteConfig{}, WithSender(sender))
	b := newBrowser(t, a)

	rec := b.do(http.MethodPost, "/contact/", contactForm("Jane", "jane@example.com", "Hi"), true)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "could not be sent") {
		t.Errorf("missing failure notice: %s", rec.Body)
	}

	// A reload shows the kept fields so the visitor can retry.
	page := b.do(http.MethodGet, "/", nil, false).Body.String()
	if !strings.Contains(page, `value="jane@example.com"`) {
		t.Error("failed submission fields should survive a reload")
	}
}

func TestContactRejectsSecondSubmitInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	var sends int
	var mu sync.Mutex
	sender := contact.SenderFunc(func(ctx context.Context, m contact.Message) error {
		mu.Lock()
		sends++
		mu.Unlock()
		once.Do(func() { close(started) })
		<-release
		return nil
	})
	a := newTestApp(t, SiteConfig{}, WithSender(sender))
	b := newBrowser(t, a)

	form := contactForm("Jane", "jane@example.com", "Hi")
	first := b.request(http.MethodPost, "/contact/", form, true)
	second := b.request(http.MethodPost, "/contact/", form, true)

	done := make(chan int, 1)
	go func() {
		rec := httptest.NewRecorder()
		a.Echo.ServeHTTP(rec, first)
		done <- rec.Code
	}()
	<-started

	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, second)
	if rec.Code != http.StatusConflict {
		t.Fatalf("second submit = %d, want 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "disabled>Sending...") {
		t.Error("in-flight form should render a disabled button")
	}

	close(release)
	if code := <-done; code != http.StatusOK {
		t.Fatalf("first submit = %d, want 200", code)
	}
	mu.Lock()
	defer mu.Unlock()
	if sends != 1 {
		t.Fatalf("sends = %d, want exactly 1", sends)
	}
}

func TestContactRequiresCSRF(t *testing.T) {
	a := newTestApp(t, SiteConfig{}, WithSender(&recordingSender{}))
	req := httptest.NewRequest(http.MethodPost, "/contact/", strings.NewReader(contactForm("a", "a@b.co", "m").Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestContactRateLimited(t *testing.T) {
	a := newTestApp(t, SiteConfig{ContactPerMinute: 1, ContactBurst: 1}, WithSender(&recordingSender{}))
	b := newBrowser(t, a)

	form := contactForm("Jane", "jane@example.com", "Hi")
	if rec := b.do(http.MethodPost, "/contact/", form, true); rec.Code != http.StatusOK {
		t.Fatalf("first = %d", rec.Code)
	}
	if rec := b.do(http.MethodPost, "/contact/", form, true); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second = %d, want 429", rec.Code)
	}
}

func TestInboxDelivery(t *testing.T) {
	store := setupTestStore(t)
	a := newTestApp(t, SiteConfig{Delivery: DeliveryInbox}, WithStore(store))
	b := newBrowser(t, a)

	if rec := b.do(http.MethodPost, "/contact/", contactForm("Jane", "jane@example.com", "Hi"), true); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	msgs, err := store.ListMessages(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 1 || msgs[0].Name != "Jane" {
		t.Fatalf("inbox = %+v", msgs)
	}
}

func TestNewsletter(t *testing.T) {
	store := setupTestStore(t)
	a := newTestApp(t, SiteConfig{}, WithStore(store))
	b := newBrowser(t, a)

	rec := b.do(http.MethodPost, "/newsletter/", url.Values{"email": {"bad"}}, true)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid email = %d, want 422", rec.Code)
	}

	for i := 0; i < 2; i++ {
		rec = b.do(http.MethodPost, "/newsletter/", url.Values{"email": {"reader@example.com"}}, true)
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Thanks for subscribing") {
			t.Fatalf("subscribe #%d = %d %s", i+1, rec.Code, rec.Body)
		}
	}
	subs, err := store.ListSubscribers(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 1 {
		t.Fatalf("subscribers = %d, want 1", len(subs))
	}
}

func TestAdminDisabledWithoutStore(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	b := newBrowser(t, a)
	if rec := b.do(http.MethodGet, "/admin/", nil, false); rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAdminInboxFlow(t *testing.T) {
	store := setupTestStore(t)
	m := contact.NewMessage(contact.Fields{Name: "Jane", Email: "jane@example.com", Message: "Hello admin"}, "203.0.113.9")
	if err := store.SaveMessage(context.Background(), m); err != nil {
		t.Fatal(err)
	}
	a := newTestApp(t, SiteConfig{AdminPassword: "hunter2"}, WithStore(store))
	b := newBrowser(t, a)

	if body := b.do(http.MethodGet, "/admin/", nil, false).Body.String(); !strings.Contains(body, `name="password"`) {
		t.Fatal("expected login form")
	}
	if rec := b.do(http.MethodPost, "/admin/messages/"+m.ID+"/read/", url.Values{}, true); rec.Code != http.StatusSeeOther {
		t.Fatalf("unauthenticated mark read = %d, want 303", rec.Code)
	}
	if rec := b.do(http.MethodPost, "/admin/login/", url.Values{"password": {"wrong"}}, false); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login = %d, want 401", rec.Code)
	}
	if rec := b.do(http.MethodPost, "/admin/login/", url.Values{"password": {"hunter2"}}, false); rec.Code != http.StatusSeeOther {
		t.Fatalf("login = %d, want 303", rec.Code)
	}

	inbox := b.do(http.MethodGet, "/admin/", nil, false).Body.String()
	if !strings.Contains(inbox, "Hello admin") || !strings.Contains(inbox, "1 unread") {
		t.Fatalf("inbox missing message: %s", inbox)
	}

	rec := b.do(http.MethodPost, "/admin/messages/"+m.ID+"/read/", url.Values{}, true)
	if rec.Code != http.StatusOK || strings.Contains(rec.Body.String(), "is-unread") {
		t.Fatalf("mark read = %d %s", rec.Code, rec.Body)
	}
	if n, _ := store.CountUnread(context.Background()); n != 0 {
		t.Errorf("unread = %d after mark read", n)
	}

	if rec := b.do(http.MethodDelete, "/admin/messages/"+m.ID+"/", nil, true); rec.Code != http.StatusOK {
		t.Fatalf("delete = %d", rec.Code)
	}
	if rec := b.do(http.MethodDelete, "/admin/messages/"+m.ID+"/", nil, true); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete = %d, want 404", rec.Code)
	}

	if rec := b.do(http.MethodGet, "/admin/subscribers/", nil, false); rec.Code != http.StatusOK {
		t.Fatalf("subscribers = %d", rec.Code)
	}
}

func TestFeedSitemapRobotsHealth(t *testing.T) {
	a := newTestApp(t, SiteConfig{URL: "https://alex.example"})
	b := newBrowser(t, a)

	feed := b.do(http.MethodGet, "/feed.xml", nil, false)
	if feed.Code != http.StatusOK || !strings.Contains(feed.Header().Get(echo.HeaderContentType), "rss") {
		t.Fatalf("feed = %d %q", feed.Code, feed.Header().Get(echo.HeaderContentType))
	}
	for _, want := range []string{"<rss", "Building My First Full-Stack App", "https://alex.example/#post-first-full-stack-app"} {
		if !strings.Contains(feed.Body.String(), want) {
			t.Errorf("feed missing %q", want)
		}
	}

	sm := b.do(http.MethodGet, "/sitemap.xml", nil, false).Body.String()
	if !strings.Contains(sm, "<loc>https://alex.example/</loc>") || !strings.Contains(sm, "<lastmod>2025-01-15</lastmod>") {
		t.Errorf("sitemap = %s", sm)
	}

	robots := b.do(http.MethodGet, "/robots.txt", nil, false).Body.String()
	if !strings.Contains(robots, "Sitemap: https://alex.example/sitemap.xml") {
		t.Errorf("robots = %s", robots)
	}

	if rec := b.do(http.MethodGet, "/healthz", nil, false); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("healthz = %d %s", rec.Code, rec.Body)
	}
	if rec := b.do(http.MethodGet, "/public/folio.css", nil, false); rec.Code != http.StatusOK {
		t.Errorf("embedded css = %d", rec.Code)
	}
}

func TestNotFoundPage(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	b := newBrowser(t, a)
	rec := b.do(http.MethodGet, "/nope/", nil, false)
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "404") {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestWithViewsOverridesDefaults(t *testing.T) {
	custom := ViewFuncs{
		NotFound: func() templ.Component {
			return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
				_, err := io.WriteString(w, "<p>lost in space</p>")
				return err
			})
		},
	}
	a := newTestApp(t, SiteConfig{}, WithViews(custom))
	b := newBrowser(t, a)

	rec := b.do(http.MethodGet, "/nope/", nil, false)
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "lost in space") {
		t.Fatalf("custom 404 = %d %s", rec.Code, rec.Body)
	}
	if page := b.do(http.MethodGet, "/", nil, false).Body.String(); !strings.Contains(page, `id="contact-form"`) {
		t.Error("unset views should keep the built-in page")
	}
}
