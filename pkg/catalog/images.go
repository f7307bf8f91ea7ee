package catalog

import (
	"fmt"
	"strings"
)

// Image is one entry of a plant's gallery.
type Image struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

// SplitImageURLs splits a comma-separated URL list, trimming each entry and
// keeping the original order. Blank entries are skipped; nothing else is
// checked, so malformed URLs pass through unchanged.
func SplitImageURLs(raw string) []string {
	var urls []string
	for _, part := range strings.Split(raw, ",") {
		if u := strings.TrimSpace(part); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// SplitImages builds captioned gallery entries for a plant named name.
func SplitImages(raw *string, name string) []Image {
	if raw == nil {
		return nil
	}
	urls := SplitImageURLs(*raw)
	if len(urls) == 0 {
		return nil
	}
	images := make([]Image, 0, len(urls))
	for i, u := range urls {
		images = append(images, Image{
			URL:     u,
			Caption: fmt.Sprintf("%s - Image %d", name, i+1),
		})
	}
	return images
}
