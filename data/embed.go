// Package data embeds the default resource files.
package data

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed stopwords.txt
var stopwordsRaw string

var stopwords = sync.OnceValue(func() []string {
	lines := strings.Split(stopwordsRaw, "\n")
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words
})

// Stopwords returns the embedded default stopword list. The returned slice
// is shared; callers must not modify it.
func Stopwords() []string {
	return stopwords()
}
