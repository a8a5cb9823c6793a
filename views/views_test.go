package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/alexchen-dev/folio/content"
	"github.com/alexchen-dev/folio/navstate"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func pageData() PageData {
	return PageData{
		Config: SiteConfig{Name: "Alex Chen", URL: "https://example.com"},
		Nav:    NavConfig{HideThreshold: 100, ProbeBias: 200, ScrolledThreshold: 50},
		Site:   content.Default(),
		CSRF:   "tok",
	}
}

func TestPageRendersEverySection(t *testing.T) {
	out := render(t, Page(pageData()))
	for _, id := range navstate.SectionIDs() {
		if !strings.Contains(out, `id="`+string(id)+`"`) {
			t.Errorf("page missing section %q", id)
		}
	}
	for _, want := range []string{
		`data-hide-threshold="100"`,
		`data-probe-bias="200"`,
		`data-active="home"`,
		`class="nav-link is-active" href="#home"`,
		`name="_csrf" value="tok"`,
		`application/ld+json`,
		"Alex Chen",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestNavBarMobileToggle(t *testing.T) {
	out := render(t, NavBar(content.Default(), NavConfig{}))
	for _, want := range []string{
		`class="nav-toggle" data-nav-toggle aria-controls="nav-links" aria-expanded="false"`,
		`<ul id="nav-links" class="nav-links">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("nav bar missing %q", want)
		}
	}
	if strings.Index(out, "data-nav-toggle") > strings.Index(out, `id="nav-links"`) {
		t.Error("toggle should precede the collapsible link list")
	}
}

func TestSectionUnknown(t *testing.T) {
	if _, ok := Section("pricing", pageData()); ok {
		t.Fatal("unknown section should not render")
	}
}

func TestContactFormEscapesAndShowsErrors(t *testing.T) {
	out := render(t, ContactForm(ContactView{
		Name:    `<script>alert(1)</script>`,
		Email:   "bad",
		Message: "hi",
		Errors:  map[string]string{"email": "must be a valid email address"},
		Notice:  &Notice{Kind: "error", Text: "Could not send"},
	}, ""))
	if strings.Contains(out, "<script>") {
		t.Fatalf("unescaped input in output: %s", out)
	}
	for _, want := range []string{"must be a valid email address", `role="alert"`, "Could not send", "Send Message"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Contains(out, "_csrf") {
		t.Error("empty csrf token should not render a hidden field")
	}
}

func TestContactFormSubmittingDisablesButton(t *testing.T) {
	out := render(t, ContactForm(ContactView{Submitting: true}, ""))
	if !strings.Contains(out, "disabled>Sending...") {
		t.Fatalf("submit button not disabled: %s", out)
	}
}

func TestNewsletterDone(t *testing.T) {
	out := render(t, NewsletterForm(NewsletterView{Done: true}, ""))
	if !strings.Contains(out, "Thanks for subscribing") || strings.Contains(out, `type="email"`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestHrefSanitisesScheme(t *testing.T) {
	site := content.Default()
	site.Socials = []content.SocialLink{{Label: "x", Href: "javascript:alert(1)"}}
	out := render(t, Footer(site))
	if strings.Contains(out, "javascript:") {
		t.Fatalf("unsafe href rendered: %s", out)
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base string
		segs []string
		want string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"blog", "hello"}, "https://example.com/blog/hello/"},
		{"https://example.com/sub", []string{"feed"}, "https://example.com/sub/feed/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segs...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segs, got, tt.want)
		}
	}
}

func TestAccentClass(t *testing.T) {
	if AccentClass("sage") != "accent-sage" || AccentClass("nope") != "accent-sky" {
		t.Fatal("unexpected accent mapping")
	}
}
