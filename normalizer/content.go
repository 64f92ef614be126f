package normalizer

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/Luismorlan/maag/model"
	"github.com/PuerkitoBio/goquery"
)

// MaxLeadLength is the length, in runes, of a derived lead.
const MaxLeadLength = 280

// IsEmptyJSON reports whether a raw JSON value is missing or null.
func IsEmptyJSON(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

// ParseContentBlocks checks that raw is a list of typed blocks. Block types
// are not restricted, the front end skips the ones it can not render. An
// empty list is accepted.
func ParseContentBlocks(raw json.RawMessage) ([]model.ContentBlock, error) {
	if IsEmptyJSON(raw) {
		return nil, Invalid("Content is required")
	}
	var blocks []model.ContentBlock
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil, Invalid("Content must be a list of blocks")
	}
	for i, b := range blocks {
		if b == nil {
			return nil, Invalidf("Content block %d is empty", i)
		}
		if b.Type() == "" {
			return nil, Invalidf("Content block %d has no type", i)
		}
	}
	return blocks, nil
}

// ContentMediaUrls lists the images referenced by image blocks.
func ContentMediaUrls(blocks []model.ContentBlock) []string {
	urls := []string{}
	for _, b := range blocks {
		urls = append(urls, b.ImageUrls()...)
	}
	return urls
}

// DeriveLead builds a lead from the first non-empty paragraph or
// first-paragraph block.
func DeriveLead(blocks []model.ContentBlock) string {
	for _, b := range blocks {
		if !b.Type().IsParagraph() {
			continue
		}
		text, err := HtmlToText(b.Text())
		if err != nil {
			continue
		}
		text = strings.Join(strings.Fields(text), " ")
		if text != "" {
			return Truncate(text, MaxLeadLength)
		}
	}
	return ""
}

// HtmlToText strips markup from inline HTML. <br> becomes a newline.
func HtmlToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find("br").AfterHtml("\n")
	return doc.Text(), nil
}

// Truncate shortens text to at most max runes, cutting on the last word
// boundary and appending an ellipsis.
func Truncate(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:max-1])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// NormalizeSlides trims slide fields and drops slides without an image.
func NormalizeSlides(slides []model.Slide) []model.Slide {
	out := make([]model.Slide, 0, len(slides))
	for _, s := range slides {
		s.ImageUrl = strings.TrimSpace(s.ImageUrl)
		s.Caption = strings.TrimSpace(s.Caption)
		if s.ImageUrl == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
