package catalog

import (
	"regexp"
	"strings"
)

// Segment is a run of free text. A segment with a URL is rendered as a link
// whose label is Text.
type Segment struct {
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

// IsLink reports whether the segment should be rendered as a link.
func (s Segment) IsLink() bool {
	return s.URL != ""
}

// TextAnnotator splits free text into plain and link segments.
type TextAnnotator interface {
	Annotate(text string) []Segment
}

// urlPattern is deliberately loose: scheme plus everything up to whitespace.
// Trailing punctuation stays attached to the URL.
var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// URLMatcher is the default TextAnnotator.
type URLMatcher struct{}

// Annotate implements TextAnnotator.
func (URLMatcher) Annotate(text string) []Segment {
	return Linkify(text)
}

// Linkify marks every http(s) URL inside text as a link segment.
func Linkify(text string) []Segment {
	if text == "" {
		return nil
	}
	matches := urlPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []Segment{{Text: text}}
	}

	segments := make([]Segment, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			segments = append(segments, Segment{Text: text[last:m[0]]})
		}
		u := text[m[0]:m[1]]
		segments = append(segments, Segment{Text: u, URL: u})
		last = m[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}

// PlainText joins segments back into the text a reader would hear.
func PlainText(segments []Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
