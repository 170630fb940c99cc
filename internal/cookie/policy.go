package cookie

import (
	"net"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Policy derives the transport attributes of the auth cookie from the runtime
// environment. Set and delete attributes share the same path/domain selection
// so browsers honor the deletion.
type Policy struct {
	name       string
	production bool
	domain     string
}

func NewPolicy(name string, production bool, appOrigin string) *Policy {
	return &Policy{
		name:       name,
		production: production,
		domain:     deriveDomain(production, appOrigin),
	}
}

func (p *Policy) Name() string { return p.name }

func (p *Policy) Domain() string { return p.domain }

// Set builds the cookie written on login.
func (p *Policy) Set(token string, maxAge time.Duration) fiber.Cookie {
	c := p.base()
	c.Value = token
	c.MaxAge = int(maxAge.Seconds())
	c.Expires = time.Now().Add(maxAge)
	return c
}

// Delete builds the primary deletion cookie with the full attribute set.
func (p *Policy) Delete() fiber.Cookie {
	c := p.base()
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	return c
}

// DeleteWithoutDomain covers cookies the browser stored under its default
// domain when the derived domain did not match at set time.
func (p *Policy) DeleteWithoutDomain() fiber.Cookie {
	c := p.Delete()
	c.Domain = ""
	return c
}

// ExpireNow is the last-resort layer: overwrite with an empty value and an
// epoch expiry.
func (p *Policy) ExpireNow() fiber.Cookie {
	c := p.base()
	c.Value = ""
	c.MaxAge = 0
	c.Expires = time.Unix(0, 0)
	return c
}

func (p *Policy) base() fiber.Cookie {
	return fiber.Cookie{
		Name:     p.name,
		Path:     "/",
		HTTPOnly: true,
		Secure:   p.production,
		SameSite: "Lax",
		Domain:   p.domain,
	}
}

// deriveDomain scopes the cookie to the app origin's hostname, but only in
// production and never for localhost or raw IP deployments where
// domain-scoped cookies do not apply.
func deriveDomain(production bool, appOrigin string) string {
	if !production || appOrigin == "" {
		return ""
	}
	u, err := url.Parse(appOrigin)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	if host == "" || host == "localhost" || net.ParseIP(host) != nil {
		return ""
	}
	return host
}
