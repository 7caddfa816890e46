package catalog

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	domain "jobpilot/internal/domain/catalog"

	"github.com/gocolly/colly/v2"
)

// RemoteSource describes a listing page the refresher can pull jobs from.
// Selectors are CSS and resolved relative to each matched link element.
type RemoteSource struct {
	Name            string
	ListURL         string
	LinkSelector    string
	TitleSelector   string
	CompanySelector string
}

// Fetcher scrapes a remote listing page into JobRecords. Best effort: jobs
// without a link or title are dropped.
type Fetcher struct {
	logger *log.Logger
}

func NewFetcher(logger *log.Logger) *Fetcher {
	return &Fetcher{logger: logger}
}

func (f *Fetcher) Fetch(ctx context.Context, src RemoteSource, limit int) ([]domain.JobRecord, error) {
	if strings.TrimSpace(src.ListURL) == "" {
		return nil, fmt.Errorf("empty list url")
	}
	if strings.TrimSpace(src.LinkSelector) == "" {
		src.LinkSelector = "a[href]"
	}
	if limit <= 0 {
		limit = 50
	}

	var c *colly.Collector
	if host := hostFromURL(src.ListURL); host != "" {
		c = colly.NewCollector(colly.AllowedDomains(host))
	} else {
		c = colly.NewCollector()
	}
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, RandomDelay: 800 * time.Millisecond, Delay: 400 * time.Millisecond})

	records := make([]domain.JobRecord, 0, limit)
	dedup := map[string]struct{}{}

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "jobpilot-catalog/0.1")
		r.Headers.Set("Accept", "text/html,application/xhtml+xml")
	})

	c.OnHTML(src.LinkSelector, func(e *colly.HTMLElement) {
		if len(records) >= limit {
			return
		}
		href := strings.TrimSpace(e.Attr("href"))
		if href == "" {
			return
		}
		abs := e.Request.AbsoluteURL(href)
		if abs == "" {
			return
		}
		if _, ok := dedup[abs]; ok {
			return
		}
		dedup[abs] = struct{}{}

		title := strings.TrimSpace(e.Text)
		if src.TitleSelector != "" {
			if t := strings.TrimSpace(e.DOM.Find(src.TitleSelector).Text()); t != "" {
				title = t
			}
		}
		if title == "" {
			return
		}
		company := src.Name
		if src.CompanySelector != "" {
			if cName := strings.TrimSpace(e.DOM.Find(src.CompanySelector).Text()); cName != "" {
				company = cName
			}
		}

		records = append(records, domain.JobRecord{
			ExternalID: abs,
			Source:     src.Name,
			Title:      title,
			Company:    company,
			URL:        abs,
		})
	})

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := c.Visit(src.ListURL); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}

	if f.logger != nil {
		f.logger.Printf("catalog fetch | source=%s jobs=%d", src.Name, len(records))
	}
	return records, nil
}

func hostFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return u.Host
}
