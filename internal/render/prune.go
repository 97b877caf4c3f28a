package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Tags that never carry article content.
const strippedTags = "script,style,noscript,template,iframe,svg,canvas,form,button,input,select,textarea,nav,header,footer,aside"

// Class/id fragments that mark navigation and page chrome.
var boilerplateAttrs = regexp.MustCompile(
	`(?i)(^|[\s_-])(nav|menu|sidebar|footer|banner|breadcrumbs?|advert|ads?|cookie|popup|modal|share|social|comments?|related|promo)([\s_-]|$)`,
)

// pruneBoilerplate strips non-content elements from the document and then
// removes low-signal blocks whose score falls below threshold. A threshold
// of 0 keeps every block; 1 keeps almost nothing. The document is mutated.
func pruneBoilerplate(doc *goquery.Document, threshold float64) (string, error) {
	doc.Find(strippedTags).Remove()

	doc.Find("[class],[id]").Each(func(_ int, s *goquery.Selection) {
		attrs := s.AttrOr("class", "") + " " + s.AttrOr("id", "")
		if boilerplateAttrs.MatchString(attrs) {
			s.Remove()
		}
	})

	// Score container blocks deepest-first so a parent is judged on what
	// survives of its children.
	blocks := doc.Find("div,section,table,ul,ol,dl")
	for i := blocks.Length() - 1; i >= 0; i-- {
		s := blocks.Eq(i)
		if blockScore(s) < threshold {
			s.Remove()
		}
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		html, err := doc.Html()
		if err != nil {
			return "", fmt.Errorf("serialize document: %w", err)
		}
		return html, nil
	}
	html, err := body.Html()
	if err != nil {
		return "", fmt.Errorf("serialize body: %w", err)
	}
	return html, nil
}

// blockScore rates a block in [0,1] by text volume discounted by link
// density, so link farms and short chrome fragments score low while prose
// scores high.
func blockScore(s *goquery.Selection) float64 {
	text := strings.Join(strings.Fields(s.Text()), " ")
	textLen := float64(len(text))
	if textLen == 0 {
		return 0
	}
	linkText := strings.Join(strings.Fields(s.Find("a").Text()), " ")
	linkDensity := float64(len(linkText)) / textLen
	if linkDensity > 1 {
		linkDensity = 1
	}
	// Saturates around a couple hundred characters of own text.
	volume := textLen / (textLen + 150)
	return volume * (1 - linkDensity)
}
