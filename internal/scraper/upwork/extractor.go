package upwork

import (
	"log"
	"strings"

	"go-upwork-watcher/internal/scraper"

	"github.com/PuerkitoBio/goquery"
)

type Extractor struct {
	baseURL string
}

func NewExtractor(baseURL string) *Extractor {
	return &Extractor{baseURL: strings.TrimRight(baseURL, "/")}
}

func (e *Extractor) Name() string {
	return "Upwork"
}

// Extract reads every <article> as one job card.
func (e *Extractor) Extract(html string) []scraper.Job {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Printf("⚠️ Failed to parse HTML: %v", err)
		return []scraper.Job{}
	}

	jobs := make([]scraper.Job, 0)
	doc.Find("article").Each(func(_ int, article *goquery.Selection) {
		jobs = append(jobs, scraper.Job{
			Title:   e.title(article),
			Content: e.content(article),
			Link:    e.link(article),
		})
	})

	log.Printf("✅ Parsed %d job cards from %s", len(jobs), e.Name())
	return jobs
}

// title prefers h4, then h3, then h2
func (e *Extractor) title(article *goquery.Selection) string {
	for _, tag := range []string{"h4", "h3", "h2"} {
		el := article.Find(tag).First()
		if el.Length() > 0 {
			if text := cleanText(el.Text()); text != "" {
				return text
			}
		}
	}
	return scraper.NoTitle
}

func (e *Extractor) content(article *goquery.Selection) string {
	p := article.Find("p").First()
	if p.Length() == 0 {
		return scraper.NoDescription
	}
	if text := cleanText(p.Text()); text != "" {
		return text
	}
	return scraper.NoDescription
}

// link only trusts site-relative anchors; anything else yields an empty link
func (e *Extractor) link(article *goquery.Selection) string {
	a := article.Find("a[href]").First()
	if a.Length() == 0 {
		return ""
	}
	href, _ := a.Attr("href")
	href = strings.TrimSpace(href)
	if !strings.HasPrefix(href, "/") || strings.HasPrefix(href, "//") {
		return ""
	}
	return e.baseURL + href
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
