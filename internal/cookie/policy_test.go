package cookie

import (
	"testing"
	"time"
)

func TestDeriveDomain(t *testing.T) {
	tests := []struct {
		name       string
		production bool
		origin     string
		want       string
	}{
		{"production with real hostname", true, "https://app.example.com", "app.example.com"},
		{"development never scopes", false, "https://app.example.com", ""},
		{"localhost", true, "http://localhost:3000", ""},
		{"loopback ip", true, "http://127.0.0.1:3000", ""},
		{"raw ipv4", true, "http://192.168.1.50", ""},
		{"raw ipv6", true, "http://[2001:db8::1]:8080", ""},
		{"empty origin", true, "", ""},
		{"garbage origin", true, "://not-a-url", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deriveDomain(tt.production, tt.origin)
			if got != tt.want {
				t.Errorf("deriveDomain(%v, %q) = %q, want %q", tt.production, tt.origin, got, tt.want)
			}
		})
	}
}

func TestSetAttributes(t *testing.T) {
	p := NewPolicy("taskforge_session", true, "https://app.example.com")

	c := p.Set("token-value", 30*24*time.Hour)

	if c.Name != "taskforge_session" {
		t.Errorf("unexpected name %q", c.Name)
	}
	if c.Value != "token-value" {
		t.Errorf("unexpected value %q", c.Value)
	}
	if c.Path != "/" || !c.HTTPOnly || c.SameSite != "Lax" {
		t.Errorf("base attributes wrong: path=%q httpOnly=%v sameSite=%q", c.Path, c.HTTPOnly, c.SameSite)
	}
	if !c.Secure {
		t.Error("production cookie must be secure")
	}
	if c.Domain != "app.example.com" {
		t.Errorf("unexpected domain %q", c.Domain)
	}
	if c.MaxAge != int((30 * 24 * time.Hour).Seconds()) {
		t.Errorf("unexpected maxAge %d", c.MaxAge)
	}
}

func TestDeleteIsAttributeCompatible(t *testing.T) {
	p := NewPolicy("taskforge_session", true, "https://app.example.com")

	set := p.Set("v", time.Hour)
	del := p.Delete()

	if del.Path != set.Path || del.Domain != set.Domain || del.SameSite != set.SameSite {
		t.Errorf("delete attributes diverge from set: %+v vs %+v", del, set)
	}
	if del.MaxAge >= 0 {
		t.Errorf("delete must carry negative maxAge, got %d", del.MaxAge)
	}
	if !del.Expires.Before(time.Now()) {
		t.Error("delete expiry must be in the past")
	}
}

func TestDeleteWithoutDomain(t *testing.T) {
	p := NewPolicy("taskforge_session", true, "https://app.example.com")

	del := p.DeleteWithoutDomain()
	if del.Domain != "" {
		t.Errorf("expected empty domain, got %q", del.Domain)
	}
	if del.MaxAge >= 0 {
		t.Error("fallback deletion must still expire the cookie")
	}
}

func TestExpireNow(t *testing.T) {
	p := NewPolicy("taskforge_session", false, "")

	c := p.ExpireNow()
	if c.Value != "" {
		t.Errorf("expected empty value, got %q", c.Value)
	}
	if !c.Expires.Equal(time.Unix(0, 0)) {
		t.Errorf("expected epoch expiry, got %v", c.Expires)
	}
	if c.Secure {
		t.Error("development cookie must not be secure")
	}
}
