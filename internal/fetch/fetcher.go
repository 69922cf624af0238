package fetch

import (
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"

	applog "pricewatch/internal/log"
)

const (
	DefaultUserAgent = "Mozilla/5.0"
	// DefaultTimeout bounds a whole request, body included.
	DefaultTimeout = 10 * time.Second
)

type Fetcher struct {
	colly *colly.Collector
}

func New(userAgent string) *Fetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
		// hand every status to OnResponse so non-200s are logged with their code
		colly.ParseHTTPErrorResponse(),
		// 0 lifts colly's 10 MiB cap; a cut body would still come back as ok
		colly.MaxBodySize(0),
	)
	c.SetRequestTimeout(DefaultTimeout)
	return &Fetcher{colly: c}
}

// WithTimeout replaces DefaultTimeout for every later Fetch.
func (f *Fetcher) WithTimeout(d time.Duration) *Fetcher {
	f.colly.SetRequestTimeout(d)
	return f
}

// Fetch issues a single GET and returns the body only for HTTP 200. Any other status
// or a transport failure is logged and reported as ok=false; it is never an error.
func (f *Fetcher) Fetch(url string) (body []byte, ok bool) {
	c := f.colly.Clone()
	status := 0

	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		if r.StatusCode == http.StatusOK {
			body = r.Body
		}
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
	})

	if err := c.Visit(url); err != nil {
		applog.Warn(nil, "fetch.fail", err, map[string]any{"url": url, "status": status})
		return nil, false
	}
	if status != http.StatusOK {
		applog.Info(nil, "fetch.bad_status", map[string]any{"url": url, "status": status})
		return nil, false
	}
	return body, true
}
