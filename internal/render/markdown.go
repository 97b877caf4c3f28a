package render

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// extract converts rendered HTML into a Result: title, raw markdown of the
// whole page, and filtered markdown of the page after boilerplate pruning.
func extract(html string, threshold float64) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Result{}, fmt.Errorf("parse html: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	raw, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return Result{}, fmt.Errorf("convert raw markdown: %w", err)
	}

	pruned, err := pruneBoilerplate(doc, threshold)
	if err != nil {
		return Result{}, fmt.Errorf("prune boilerplate: %w", err)
	}
	filtered, err := htmltomarkdown.ConvertString(pruned)
	if err != nil {
		return Result{}, fmt.Errorf("convert filtered markdown: %w", err)
	}

	return Result{
		Title:            title,
		FilteredMarkdown: strings.TrimSpace(filtered),
		RawMarkdown:      strings.TrimSpace(raw),
	}, nil
}
