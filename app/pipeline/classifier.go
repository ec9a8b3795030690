package pipeline

import (
	"strings"

	"github.com/hyericho/backkeeper/app/config"
)

// Classifier assigns a category label to an image URL by case-insensitive
// substring matching against the configured keyword sets. The safety set is
// checked first; a URL matching neither set gets the catch-all label.
type Classifier struct {
	sets     []config.CategorySet
	fallback string
}

func NewClassifier(categories config.CategoryConfig) *Classifier {
	return &Classifier{
		sets:     []config.CategorySet{categories.Safety, categories.Warehouse},
		fallback: categories.Fallback,
	}
}

func (c *Classifier) Classify(url string) string {
	lowered := strings.ToLower(url)
	for _, set := range c.sets {
		for _, keyword := range set.Keywords {
			if strings.Contains(lowered, strings.ToLower(keyword)) {
				return set.Label
			}
		}
	}
	return c.fallback
}

// ClassifyAll returns the deduplicated labels for a list of URLs, in
// first-seen order. An empty list still yields the single-element catch-all
// set; a record is never left untagged.
func (c *Classifier) ClassifyAll(urls []string) []string {
	if len(urls) == 0 {
		return []string{c.fallback}
	}

	seen := make(map[string]bool)
	var labels []string
	for _, url := range urls {
		label := c.Classify(url)
		if !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}
	return labels
}
