package folio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexchen-dev/folio/navstate"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "folio.toml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if cfg.Addr != ":3000" || cfg.Delivery != DeliverySimulate {
		t.Errorf("defaults = %q %q", cfg.Addr, cfg.Delivery)
	}
	if cfg.Nav.HideThreshold != navstate.DefaultHideThreshold || cfg.Nav.ProbeBias != navstate.DefaultProbeBias {
		t.Errorf("nav defaults = %+v", cfg.Nav)
	}
	if cfg.FormTTL.Duration != 30*time.Minute {
		t.Errorf("form ttl = %v", cfg.FormTTL)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	p := writeConfig(t, `
name = "Alex"
url = "https://alex.example"
delivery = "inbox"
database_path = "data/folio.db"
simulated_delay = "250ms"
form_ttl = "5m"

[nav]
hide_threshold = 120
reset_on_miss = true

[smtp]
host = "smtp.example.com"
`)
	t.Setenv("SITE_URL", "https://override.example")
	t.Setenv("FOLIO_COOKIE_SECURE", "true")

	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "Alex" || cfg.URL != "https://override.example" {
		t.Errorf("identity = %q %q", cfg.Name, cfg.URL)
	}
	if !cfg.CookieSecure {
		t.Error("env should enable cookie_secure")
	}
	if cfg.SimulatedDelay.Duration != 250*time.Millisecond || cfg.FormTTL.Duration != 5*time.Minute {
		t.Errorf("durations = %v %v", cfg.SimulatedDelay, cfg.FormTTL)
	}
	if cfg.Nav.HideThreshold != 120 || !cfg.Nav.ResetOnMiss {
		t.Errorf("nav = %+v", cfg.Nav)
	}
	if cfg.Nav.ScrolledThreshold != navstate.DefaultScrolledThreshold {
		t.Errorf("unset nav values should default, got %d", cfg.Nav.ScrolledThreshold)
	}
	if cfg.SMTP.Host != "smtp.example.com" {
		t.Errorf("smtp host = %q", cfg.SMTP.Host)
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	p := writeConfig(t, "nmae = \"typo\"\n")
	_, err := LoadConfig(p)
	if err == nil || !strings.Contains(err.Error(), "nmae") {
		t.Fatalf("err = %v, want unknown key", err)
	}
}

func TestLoadConfigBadValues(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, "form_ttl = \"-1m\"\n")); err == nil {
		t.Error("negative duration should fail")
	}
	t.Setenv("FOLIO_COOKIE_SECURE", "maybe")
	if _, err := LoadConfig(""); err == nil {
		t.Error("bad bool env should fail")
	}
}

func TestValidate(t *testing.T) {
	cfg := SiteConfig{SessionSecret: "s"}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config: %v", err)
	}

	bad := cfg
	bad.Delivery = "pigeon"
	if err := bad.Validate(); err == nil {
		t.Error("unknown delivery should fail")
	}

	bad = cfg
	bad.SessionSecret = ""
	if err := bad.Validate(); err == nil {
		t.Error("missing session secret should fail")
	}
}

func TestInitRequiresStoreForAdmin(t *testing.T) {
	a := New(SiteConfig{SessionSecret: "s", AdminPassword: "pw", LogLevel: "off"}, WithStaticDir(t.TempDir()))
	if err := a.Init(); err == nil {
		t.Fatal("admin password without a database should fail")
	}
}
