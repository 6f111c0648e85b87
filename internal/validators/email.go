package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

const lookupTimeout = 3 * time.Second

type dnsResolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// EmailDomains reports whether the domain of an address can receive mail:
// it has an MX record, or at least an address record to fall back to.
type EmailDomains struct {
	resolver dnsResolver
	timeout  time.Duration
}

func NewEmailDomains() *EmailDomains {
	return &EmailDomains{resolver: net.DefaultResolver, timeout: lookupTimeout}
}

func (v *EmailDomains) Valid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	ctx, cancel := context.WithTimeout(context.Background(), v.timeout)
	defer cancel()

	if mx, err := v.resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	if ips, err := v.resolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}
	return false
}
