// Package scrape fetches public profile pages and extracts the Open Graph
// fields the contact service can merge. It is a best-effort boundary: any
// network or parse failure degrades to a placeholder result, never an
// error that crosses into the core.
package scrape

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/socialcapital-app/backend/internal/config"
	"github.com/socialcapital-app/backend/internal/domain"
)

// Result holds the normalized fields extracted from a profile page. Meta
// carries every og: property found, for caching on the profile record.
type Result struct {
	FirstName    string
	LastName     string
	Organization string
	Position     string
	AvatarURL    string
	Meta         map[string]string
}

// Client fetches and parses public profile pages.
type Client struct {
	http      *http.Client
	userAgent string
	log       *slog.Logger
}

// New creates a scrape client with the configured timeout.
func New(cfg config.ScraperConfig, log *slog.Logger) *Client {
	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		log:       log.With(slog.String("adapter", "scrape")),
	}
}

// FetchPublicProfile downloads the page and extracts og:title/og:image.
// The first token of og:title becomes the first name, the rest the last
// name. Failures return the offline placeholder.
func (c *Client) FetchPublicProfile(ctx context.Context, rawURL string) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		c.log.Debug("bad profile url", slog.String("url", rawURL), slog.Any("error", err))
		return placeholder()
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("profile fetch failed", slog.String("url", rawURL), slog.Any("error", err))
		return placeholder()
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Debug("profile fetch bad status",
			slog.String("url", rawURL), slog.Int("status", resp.StatusCode))
		return placeholder()
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		c.log.Debug("profile parse failed", slog.String("url", rawURL), slog.Any("error", err))
		return placeholder()
	}

	return extract(doc)
}

// DetectSource guesses the profile source from the URL host.
func DetectSource(rawURL string) domain.ProfileSource {
	u := strings.ToLower(rawURL)
	switch {
	case strings.Contains(u, "linkedin.com"):
		return domain.ProfileSourceLinkedIn
	case strings.Contains(u, "facebook.com"):
		return domain.ProfileSourceFacebook
	case strings.Contains(u, "t.me"), strings.Contains(u, "telegram.me"):
		return domain.ProfileSourceTelegram
	case strings.Contains(u, "github.com"):
		return domain.ProfileSourceGitHub
	default:
		return domain.ProfileSourceWebsite
	}
}

func extract(doc *goquery.Document) Result {
	meta := map[string]string{}
	doc.Find(`meta[property^="og:"]`).Each(func(_ int, sel *goquery.Selection) {
		prop, _ := sel.Attr("property")
		content, _ := sel.Attr("content")
		key := strings.TrimPrefix(prop, "og:")
		if key != "" && content != "" {
			meta[key] = content
		}
	})

	res := Result{
		AvatarURL: meta["image"],
		Meta:      meta,
	}
	if title := meta["title"]; title != "" {
		res.FirstName, res.LastName = domain.SplitName(title)
	}
	return res
}

// placeholder is the offline fallback so the diff flow always has
// something to show.
func placeholder() Result {
	return Result{
		Organization: "Company Inc",
		Position:     "Position",
		Meta:         map[string]string{"error": "offline"},
	}
}
