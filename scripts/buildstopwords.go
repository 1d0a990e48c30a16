//go:build ignore

// buildstopwords regenerates data/stopwords.txt — the embedded English
// stopword list used by the topic-aware models' candidate filter. Run from
// the project root with one or more source word lists:
//
//	go run scripts/buildstopwords.go wordlists/nltk.txt wordlists/smart.txt
//
// Output format: one lowercase word per line, sorted, with a generated-file
// header. Blank lines and lines starting with # in the sources are skipped.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
)

const outputPath = "data/stopwords.txt"

func main() {
	log.SetFlags(0)
	log.SetPrefix("[buildstopwords] ")

	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <wordlist> [wordlist...]", os.Args[0])
	}

	words := make(map[string]struct{})
	for _, path := range os.Args[1:] {
		n, err := loadWordList(path, words)
		if err != nil {
			log.Fatalf("cannot load %s: %v", path, err)
		}
		log.Printf("loaded %d words from %s", n, path)
	}

	sorted := make([]string, 0, len(words))
	for w := range words {
		sorted = append(sorted, w)
	}
	sort.Strings(sorted)

	if err := writeList(outputPath, sorted); err != nil {
		log.Fatalf("cannot write %s: %v", outputPath, err)
	}
	log.Printf("wrote %d words to %s", len(sorted), outputPath)
}

func loadWordList(path string, into map[string]struct{}) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, word := range strings.Fields(line) {
			into[strings.ToLower(word)] = struct{}{}
			n++
		}
	}
	return n, sc.Err()
}

func writeList(path string, words []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)

	fmt.Fprintln(bw, "# English stopwords for candidate filtering.")
	fmt.Fprintln(bw, "# Generated by scripts/buildstopwords.go; do not edit by hand.")
	for _, w := range words {
		fmt.Fprintln(bw, w)
	}

	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
