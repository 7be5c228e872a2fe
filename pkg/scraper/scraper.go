// Package scraper reads the public problem list page by page and yields raw,
// unparsed rows for the catalog synchronizer.
package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/er-knight/leetcodedaily/pkg/catalog/types"
)

const defaultMaxBytes = 4 << 20

type Config struct {
	PageURL   string // printf template with one %d for the 1-based page number
	BaseURL   string // resolves relative problem links
	Delay     time.Duration
	MaxPages  int // 0 = until the list says there is no next page
	Timeout   time.Duration
	UserAgent string
}

// HTMLSource implements service.PageSource over the problem list HTML.
type HTMLSource struct {
	cfg    Config
	base   *url.URL
	client *http.Client
	pace   *rate.Limiter
	log    *zap.Logger

	page int
	done bool
}

func New(cfg Config, log *zap.Logger) (*HTMLSource, error) {
	if strings.Count(cfg.PageURL, "%d") != 1 {
		return nil, fmt.Errorf("page url %q must contain exactly one %%d", cfg.PageURL)
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("base url: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "leetcodedaily/1.0"
	}
	pace := rate.NewLimiter(rate.Inf, 1)
	if cfg.Delay > 0 {
		pace = rate.NewLimiter(rate.Every(cfg.Delay), 1)
	}
	return &HTMLSource{
		cfg:    cfg,
		base:   base,
		client: &http.Client{Timeout: cfg.Timeout},
		pace:   pace,
		log:    log.Named("scraper"),
	}, nil
}

// NextPage fetches the next list page. ok turns false after the page whose
// "next" control is disabled, or once MaxPages pages were returned.
func (s *HTMLSource) NextPage(ctx context.Context) ([]types.RawRecord, bool, error) {
	if s.done || (s.cfg.MaxPages > 0 && s.page >= s.cfg.MaxPages) {
		return nil, false, nil
	}
	// one page per Delay; the first fetch goes out immediately
	if err := s.pace.Wait(ctx); err != nil {
		return nil, false, err
	}

	s.page++
	u := fmt.Sprintf(s.cfg.PageURL, s.page)
	body, err := s.fetch(ctx, u)
	if err != nil {
		return nil, false, err
	}
	rows, hasNext, err := s.parsePage(body)
	if err != nil {
		return nil, false, fmt.Errorf("parse %s: %w", u, err)
	}
	if !hasNext {
		s.done = true
	}
	s.log.Info("fetched page", zap.Int("page", s.page), zap.Int("rows", len(rows)), zap.Bool("has_next", hasNext))
	return rows, true, nil
}

func (s *HTMLSource) fetch(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s: unexpected status %d", u, resp.StatusCode)
	}
	if ct := strings.ToLower(resp.Header.Get("Content-Type")); ct != "" && !strings.Contains(ct, "text/html") {
		return nil, fmt.Errorf("GET %s: unsupported content-type %s", u, ct)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, defaultMaxBytes+1))
	if err != nil {
		return nil, err
	}
	if len(b) > defaultMaxBytes {
		return nil, errors.New("page too large")
	}
	return b, nil
}

// parsePage reads the third rowgroup of the problem table. Each row's cells are
// status, title link, solution, acceptance and difficulty. Rows with a status
// marker (daily challenge, premium) are not part of the free list and are dropped.
func (s *HTMLSource) parsePage(body []byte) ([]types.RawRecord, bool, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, false, err
	}

	groups := doc.Find(`div[role="rowgroup"]`)
	var table *goquery.Selection
	switch {
	case groups.Length() >= 3:
		table = groups.Eq(2)
	case groups.Length() > 0:
		table = groups.Last()
	default:
		return nil, hasNextPage(doc), nil
	}

	var rows []types.RawRecord
	table.Children().Each(func(_ int, row *goquery.Selection) {
		cells := row.Children()
		status := cells.Eq(0)
		if status.Children().Length() > 0 || strings.TrimSpace(status.Text()) != "" {
			return
		}

		var rec types.RawRecord
		if a := cells.Eq(1).Find("a").First(); a.Length() > 0 {
			rec.ID, rec.Title = splitTitle(a.Text())
			if href, ok := a.Attr("href"); ok {
				rec.URL = s.resolve(href)
			}
		}
		rec.AcceptanceRate = strings.TrimSpace(cells.Eq(3).Text())
		rec.Difficulty = strings.TrimSpace(cells.Eq(4).Text())
		rows = append(rows, rec)
	})
	return rows, hasNextPage(doc), nil
}

func hasNextPage(doc *goquery.Document) bool {
	next := doc.Find(`[role="navigation"] [aria-label="next"]`).First()
	if next.Length() == 0 {
		return false
	}
	if _, disabled := next.Attr("disabled"); disabled {
		return false
	}
	v, _ := next.Attr("aria-disabled")
	return v != "true"
}

// splitTitle splits "12. Integer to Roman" into "12." and "Integer to Roman".
func splitTitle(text string) (string, string) {
	text = strings.TrimSpace(text)
	i := strings.IndexAny(text, " \t\n")
	if i < 0 {
		return text, ""
	}
	return text[:i], strings.TrimSpace(text[i+1:])
}

func (s *HTMLSource) resolve(href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return s.base.ResolveReference(ref).String()
}
