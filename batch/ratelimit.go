package batch

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/pagetext"
	"golang.org/x/time/rate"
)

var _ pagetext.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests to the same host. Hosts are throttled
// independently, so a batch spread over several sites is not serialized.
type DomainLimiter struct {
	limit rate.Limit

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// NewDomainLimiter allows rps requests per second to each host, with no
// bursting. A non-positive rps turns throttling off.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &DomainLimiter{limit: limit, hosts: make(map[string]*rate.Limiter)}
}

// Wait blocks until a request to domain is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.limiterFor(domain).Wait(ctx)
}

func (d *DomainLimiter) limiterFor(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.hosts[host]
	if !ok {
		l = rate.NewLimiter(d.limit, 1)
		d.hosts[host] = l
	}
	return l
}

// hostOf returns the key pages are throttled by: the URL's host, or the raw
// string when it has none.
func hostOf(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		return u.Host
	}
	return rawURL
}
