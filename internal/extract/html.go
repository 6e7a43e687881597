package extract

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LinesFromHTML reads the output of `mutool draw -F html`. Every <p> is one
// text line; an empty line separates pages.
func LinesFromHTML(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	out := []string{}
	pages := doc.Find("body > div")
	if pages.Length() == 0 {
		pages = doc.Find("body")
	}
	pages.Each(func(i int, page *goquery.Selection) {
		if i > 0 {
			out = append(out, "")
		}
		page.Find("p").Each(func(_ int, p *goquery.Selection) {
			out = append(out, strings.TrimSpace(p.Text()))
		})
	})
	return out, nil
}
