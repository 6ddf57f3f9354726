// Package text extracts and rewrites quoted field assignments of the form
// `key = "value"` in template content.
package text

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"gitlab.com/tozd/go/errors"
)

// ErrFieldNotFound is returned when content carries no assignment for a field.
var ErrFieldNotFound = errors.Base("field value not found")

// ReplacementResult contains the results of a field replacement
type ReplacementResult struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the number of assignments rewritten
	ReplacementCount int

	// Content is the content after replacements
	Content string
}

var (
	patternsMu sync.Mutex
	patterns   = map[string]*regexp.Regexp{}
)

func fieldPattern(field string) *regexp.Regexp {
	patternsMu.Lock()
	defer patternsMu.Unlock()

	if re, ok := patterns[field]; ok {
		return re
	}
	re := regexp.MustCompile(regexp.QuoteMeta(field) + ` = "(.*?)"`)
	patterns[field] = re
	return re
}

// Assignment renders the exact assignment text for field and value.
func Assignment(field, value string) string {
	return fmt.Sprintf(`%s = "%s"`, field, value)
}

// 🔍 Extract returns the value of the first assignment to field in content.
func Extract(content, field string) (string, error) {
	match := fieldPattern(field).FindStringSubmatch(content)
	if match == nil {
		return "", errors.Errorf("%s: %w", field, ErrFieldNotFound)
	}
	return match[1], nil
}

// 🔄 Replace rewrites every `field = "current"` in content to `field = "target"`.
// Content without the exact assignment is returned unchanged.
func Replace(content, field, current, target string) *ReplacementResult {
	result := &ReplacementResult{Content: content}
	if current == target {
		return result
	}

	from := Assignment(field, current)
	count := strings.Count(content, from)
	if count == 0 {
		return result
	}

	result.Content = strings.ReplaceAll(content, from, Assignment(field, target))
	result.ReplacementCount = count
	result.WasModified = true
	return result
}
