package tenant

import (
	"net"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Host is the decomposition of an inbound host header, in the same shape
// tldextract produces: "js.example.co.uk" -> {"js", "example", "co.uk"}.
type Host struct {
	Subdomain string
	Domain    string
	Suffix    string
}

// Registered returns the registrable part of the host, e.g. "example.co.uk".
func (h Host) Registered() string {
	if h.Domain == "" {
		return h.Suffix
	}
	if h.Suffix == "" {
		return h.Domain
	}
	return h.Domain + "." + h.Suffix
}

// Parse splits a host header into subdomain, domain and public suffix.
// The port, if any, is ignored. Hosts without a registrable domain
// (e.g. "localhost") come back with an empty subdomain, which routes
// them to the landing surface.
func Parse(host string) Host {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(strings.TrimSuffix(host, "."))

	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return Host{Domain: host}
	}

	suffix, _ := publicsuffix.PublicSuffix(host)
	domain := strings.TrimSuffix(etld1, "."+suffix)

	subdomain := strings.TrimSuffix(strings.TrimSuffix(host, etld1), ".")
	return Host{
		Subdomain: subdomain,
		Domain:    domain,
		Suffix:    suffix,
	}
}

// Resolver decides which requests target a tenant and reconstructs the
// canonical base URL for one.
type Resolver struct {
	rootLabel string
	scheme    string
}

func NewResolver(rootLabel, scheme string) *Resolver {
	return &Resolver{
		rootLabel: rootLabel,
		scheme:    scheme,
	}
}

// IsLanding reports whether the host targets the marketing/landing surface
// rather than a tenant: no subdomain at all, or the reserved root label.
func (r *Resolver) IsLanding(h Host) bool {
	return h.Subdomain == "" || h.Subdomain == r.rootLabel
}

// Root builds the canonical base URL for a tenant on the same registered
// domain as the current request, e.g. Root({.., "example", "com"}, "js")
// -> "https://js.example.com". Used for absolute links and for redirecting
// dashboard traffic that arrived on a mismatched subdomain.
func (r *Resolver) Root(h Host, subdomain string) string {
	return r.scheme + "://" + subdomain + "." + h.Registered()
}
