//go:build ignore

// e2e_pipeline exercises the full keyphrase extraction pipeline, from raw
// text through tagging, candidate selection, ranking and selection, for all
// five models, and writes structured results to data/e2e_pipeline.log.
// Run from the project root:
//
//	go run e2e/e2e_pipeline.go
package main

import (
	"bufio"
	"fmt"
	"log"
	"math"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/AlirezaTheH/perke/candidate"
	"github.com/AlirezaTheH/perke/document"
	"github.com/AlirezaTheH/perke/extract"
	"github.com/AlirezaTheH/perke/graph"
	"github.com/AlirezaTheH/perke/pattern"
	"github.com/AlirezaTheH/perke/rank"
	"github.com/AlirezaTheH/perke/tagger"
	"github.com/AlirezaTheH/perke/topic"
)

// ---------- constants ----------

const (
	logPath      = "data/e2e_pipeline.log"
	maxDetailLen = 200
	concWorkers  = 8
	concIter     = 50
	separator    = "=========================================================="
)

// ---------- test corpus ----------

const textAbstract = `Compatibility of systems of linear constraints over the set of
natural numbers. Criteria of compatibility of a system of linear Diophantine
equations, strict inequations, and nonstrict inequations are considered. Upper
bounds for components of a minimal set of solutions and algorithms of
construction of minimal generating sets of solutions for all types of systems
are given. These criteria and the corresponding algorithms for constructing a
minimal supporting set of solutions can be used in solving all the considered
types of systems and systems of mixed types.`

const textShort = `The quick brown fox jumps over the lazy dog. Dogs bark loudly
at the quick brown fox.`

// ---------- types ----------

type testResult struct {
	name     string
	module   string
	passed   bool
	duration time.Duration
	detail   string
}

type moduleReport struct {
	name     string
	tests    int
	passed   int
	failed   int
	duration time.Duration
}

// ---------- helpers ----------

func pass(module, name string, start time.Time) testResult {
	return testResult{name: name, module: module, passed: true, duration: time.Since(start)}
}

func fail(module, name, detail string, start time.Time) testResult {
	return testResult{name: name, module: module, passed: false, duration: time.Since(start), detail: truncate(detail, maxDetailLen)}
}

func truncate(s string, maxRunes int) string {
	n := 0
	for i := range s {
		n++
		if n > maxRunes {
			return s[:i] + "..."
		}
	}
	return s
}

func safeRun(module, name string, fn func() testResult) (r testResult) {
	defer func() {
		if p := recover(); p != nil {
			r = fail(module, name, fmt.Sprintf("PANIC: %v", p), time.Now())
		}
	}()
	return fn()
}

func mustTag(text string) document.Document {
	doc, err := tagger.Tag(text)
	if err != nil {
		panic(err)
	}
	return doc
}

// ---------- test suites ----------

func testTagger() []testResult {
	const mod = "tagger"
	var results []testResult

	results = append(results, safeRun(mod, "offset_invariant", func() testResult {
		start := time.Now()
		doc, err := tagger.Tag(textShort)
		if err != nil {
			return fail(mod, "offset_invariant", fmt.Sprintf("Tag error: %v", err), start)
		}
		for _, s := range doc.Sentences {
			for _, t := range s.Tokens {
				if textShort[t.Start:t.End] != t.Text {
					return fail(mod, "offset_invariant",
						fmt.Sprintf("text[%d:%d]=%q != %q", t.Start, t.End, textShort[t.Start:t.End], t.Text), start)
				}
			}
		}
		return pass(mod, "offset_invariant", start)
	}))

	results = append(results, safeRun(mod, "sentence_count", func() testResult {
		start := time.Now()
		doc := mustTag(textShort)
		if len(doc.Sentences) != 2 {
			return fail(mod, "sentence_count", fmt.Sprintf("got %d sentences, want 2", len(doc.Sentences)), start)
		}
		return pass(mod, "sentence_count", start)
	}))

	results = append(results, safeRun(mod, "normalized_forms", func() testResult {
		start := time.Now()
		doc := mustTag(textShort)
		for _, s := range doc.Sentences {
			for _, t := range s.Tokens {
				if t.Normalized == "" {
					return fail(mod, "normalized_forms", fmt.Sprintf("empty lexical form for %q", t.Text), start)
				}
			}
		}
		return pass(mod, "normalized_forms", start)
	}))

	return results
}

func testCandidate() []testResult {
	const mod = "candidate"
	var results []testResult
	valid := map[string]struct{}{"NOUN": {}, "ADJ": {}}

	results = append(results, safeRun(mod, "tag_runs_nonempty", func() testResult {
		start := time.Now()
		set := candidate.SelectLongestTagSequences(mustTag(textAbstract), valid)
		if set.Len() == 0 {
			return fail(mod, "tag_runs_nonempty", "no candidates selected", start)
		}
		return pass(mod, "tag_runs_nonempty", start)
	}))

	results = append(results, safeRun(mod, "recurring_phrase_merges", func() testResult {
		start := time.Now()
		set := candidate.SelectLongestTagSequences(mustTag(textShort), valid)
		for _, c := range set.Candidates() {
			if c.CanonicalForm == "quick brown fox" && c.Frequency() < 2 {
				return fail(mod, "recurring_phrase_merges",
					fmt.Sprintf("%q has %d occurrences, want >=2", c.CanonicalForm, c.Frequency()), start)
			}
		}
		return pass(mod, "recurring_phrase_merges", start)
	}))

	results = append(results, safeRun(mod, "pattern_selection", func() testResult {
		start := time.Now()
		p, err := pattern.Compile("(ADJ)*(NOUN)+")
		if err != nil {
			return fail(mod, "pattern_selection", fmt.Sprintf("Compile error: %v", err), start)
		}
		set := candidate.SelectMatchingPattern(mustTag(textAbstract), p)
		if set.Len() == 0 {
			return fail(mod, "pattern_selection", "no pattern matches", start)
		}
		return pass(mod, "pattern_selection", start)
	}))

	return results
}

func testRank() []testResult {
	const mod = "rank"
	var results []testResult
	valid := map[string]struct{}{"NOUN": {}, "ADJ": {}}

	results = append(results, safeRun(mod, "mass_conservation", func() testResult {
		start := time.Now()
		g := graph.BuildWordGraph(mustTag(textAbstract), valid, 10)
		scores := rank.PageRank(g, rank.Options{})
		sum := 0.0
		for _, s := range scores {
			sum += s
		}
		if math.Abs(sum-1) > 1e-6 {
			return fail(mod, "mass_conservation", fmt.Sprintf("score sum=%g, want 1", sum), start)
		}
		return pass(mod, "mass_conservation", start)
	}))

	results = append(results, safeRun(mod, "determinism", func() testResult {
		start := time.Now()
		g := graph.BuildWordGraph(mustTag(textAbstract), valid, 10)
		first := rank.PageRank(g, rank.Options{})
		for range 3 {
			again := rank.PageRank(g, rank.Options{})
			for node, s := range first {
				if again[node] != s {
					return fail(mod, "determinism", fmt.Sprintf("score for %q differs across runs", node), start)
				}
			}
		}
		return pass(mod, "determinism", start)
	}))

	return results
}

func testTopic() []testResult {
	const mod = "topic"
	var results []testResult
	valid := map[string]struct{}{"NOUN": {}, "ADJ": {}}

	results = append(results, safeRun(mod, "clustering_partitions", func() testResult {
		start := time.Now()
		set := candidate.SelectLongestTagSequences(mustTag(textAbstract), valid)
		cands := set.Candidates()
		topics := topic.Cluster(cands, topic.DefaultThreshold, topic.FirstOccurring)
		if len(topics) == 0 {
			return fail(mod, "clustering_partitions", "no topics", start)
		}
		total := 0
		for _, t := range topics {
			total += len(t.Candidates)
			if t.Representative == nil {
				return fail(mod, "clustering_partitions", "topic without representative", start)
			}
		}
		if total != len(cands) {
			return fail(mod, "clustering_partitions",
				fmt.Sprintf("topics cover %d candidates, want %d", total, len(cands)), start)
		}
		return pass(mod, "clustering_partitions", start)
	}))

	return results
}

func testModels() []testResult {
	const mod = "models"
	var results []testResult
	doc := mustTag(textAbstract)

	configs := []extract.Config{
		extract.NewTextRank(),
		extract.NewSingleRank(),
		extract.NewPositionRank(),
		extract.NewTopicRank(),
		extract.NewMultipartiteRank(),
	}

	for _, cfg := range configs {
		cfg := cfg
		name := cfg.Model.String()
		results = append(results, safeRun(mod, name, func() testResult {
			start := time.Now()
			phrases, err := extract.Extract(doc, cfg, 10)
			if err != nil {
				return fail(mod, name, fmt.Sprintf("Extract error: %v", err), start)
			}
			if len(phrases) == 0 {
				return fail(mod, name, "no keyphrases", start)
			}
			if len(phrases) > 10 {
				return fail(mod, name, fmt.Sprintf("%d keyphrases, want <=10", len(phrases)), start)
			}
			for i := 1; i < len(phrases); i++ {
				if phrases[i].Score > phrases[i-1].Score {
					return fail(mod, name, "scores not in descending order", start)
				}
			}
			return pass(mod, name, start)
		}))
	}

	results = append(results, safeRun(mod, "idempotence", func() testResult {
		start := time.Now()
		first, err := extract.Extract(doc, extract.NewMultipartiteRank(), 10)
		if err != nil {
			return fail(mod, "idempotence", fmt.Sprintf("Extract error: %v", err), start)
		}
		for range 3 {
			again, _ := extract.Extract(doc, extract.NewMultipartiteRank(), 10)
			if len(again) != len(first) {
				return fail(mod, "idempotence", "result count differs across runs", start)
			}
			for i := range first {
				if first[i] != again[i] {
					return fail(mod, "idempotence",
						fmt.Sprintf("result %d differs: %v vs %v", i, first[i], again[i]), start)
				}
			}
		}
		return pass(mod, "idempotence", start)
	}))

	return results
}

func testPipeline() []testResult {
	const mod = "pipeline"
	var results []testResult

	results = append(results, safeRun(mod, "text_to_keyphrases", func() testResult {
		start := time.Now()
		doc, err := tagger.Tag(textAbstract)
		if err != nil {
			return fail(mod, "text_to_keyphrases", fmt.Sprintf("Tag error: %v", err), start)
		}
		phrases := extract.Keyphrases(doc)
		if len(phrases) == 0 {
			return fail(mod, "text_to_keyphrases", "Keyphrases returned nothing", start)
		}
		found := false
		for _, p := range phrases {
			if strings.Contains(strings.ToLower(p), "linear") {
				found = true
				break
			}
		}
		if !found {
			return fail(mod, "text_to_keyphrases",
				fmt.Sprintf("no linear-constraint phrase among %v", phrases), start)
		}
		return pass(mod, "text_to_keyphrases", start)
	}))

	results = append(results, safeRun(mod, "empty_input", func() testResult {
		start := time.Now()
		doc, err := tagger.Tag("   ")
		if err != nil {
			return fail(mod, "empty_input", fmt.Sprintf("Tag error: %v", err), start)
		}
		phrases, err := extract.Extract(doc, extract.NewTopicRank(), 10)
		if err != nil {
			return fail(mod, "empty_input", fmt.Sprintf("Extract error: %v", err), start)
		}
		if len(phrases) != 0 {
			return fail(mod, "empty_input", fmt.Sprintf("%d keyphrases from blank input", len(phrases)), start)
		}
		return pass(mod, "empty_input", start)
	}))

	return results
}

func testConcurrent() []testResult {
	const mod = "concurrent"
	var results []testResult

	results = append(results, safeRun(mod, "all_models_8_goroutines_x50", func() testResult {
		start := time.Now()
		doc := mustTag(textAbstract)
		var panics atomic.Int64
		var wg sync.WaitGroup

		for range concWorkers {
			wg.Go(func() {
				for range concIter {
					func() {
						defer func() {
							if p := recover(); p != nil {
								panics.Add(1)
							}
						}()
						extract.Extract(doc, extract.NewTextRank(), 5)
						extract.Extract(doc, extract.NewSingleRank(), 5)
						extract.Extract(doc, extract.NewPositionRank(), 5)
						extract.Extract(doc, extract.NewTopicRank(), 5)
						extract.Extract(doc, extract.NewMultipartiteRank(), 5)
					}()
				}
			})
		}
		wg.Wait()

		if n := panics.Load(); n > 0 {
			return fail(mod, "all_models_8_goroutines_x50",
				fmt.Sprintf("%d panics detected across goroutines", n), start)
		}
		return pass(mod, "all_models_8_goroutines_x50", start)
	}))

	return results
}

// ---------- orchestration ----------

func runAllSuites() []testResult {
	suites := []func() []testResult{
		testTagger,
		testCandidate,
		testRank,
		testTopic,
		testModels,
		testPipeline,
		testConcurrent,
	}

	var all []testResult
	for _, suite := range suites {
		all = append(all, suite()...)
	}
	return all
}

func buildReports(results []testResult) []moduleReport {
	order := make(map[string]int)
	var reports []moduleReport

	for _, r := range results {
		idx, exists := order[r.module]
		if !exists {
			idx = len(reports)
			order[r.module] = idx
			reports = append(reports, moduleReport{name: r.module})
		}
		reports[idx].tests++
		reports[idx].duration += r.duration
		if r.passed {
			reports[idx].passed++
		} else {
			reports[idx].failed++
		}
	}
	return reports
}

func writeLog(path string, results []testResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)

	now := time.Now().UTC().Format(time.RFC3339)
	goVer := runtime.Version()
	platform := runtime.GOOS + "/" + runtime.GOARCH

	fmt.Fprintln(bw, separator)
	fmt.Fprintln(bw, "  perke E2E Pipeline Test")
	fmt.Fprintf(bw, "  Timestamp: %s\n", now)
	fmt.Fprintf(bw, "  Go: %s  OS: %s\n", goVer, platform)
	fmt.Fprintln(bw, separator)
	fmt.Fprintln(bw)

	reports := buildReports(results)
	var totalDuration time.Duration
	for _, rep := range reports {
		totalDuration += rep.duration
	}

	for _, rep := range reports {
		fmt.Fprintf(bw, "[%s] %d tests | %d passed | %d failed | %s\n",
			rep.name, rep.tests, rep.passed, rep.failed, rep.duration.Round(time.Microsecond))
		for _, r := range results {
			if r.module != rep.name {
				continue
			}
			status := "PASS"
			if !r.passed {
				status = "FAIL"
			}
			fmt.Fprintf(bw, "  %-6s %-45s %s\n", status, r.name, r.duration.Round(time.Microsecond))
		}
		fmt.Fprintln(bw)
	}

	var failures []testResult
	for _, r := range results {
		if !r.passed {
			failures = append(failures, r)
		}
	}
	if len(failures) > 0 {
		fmt.Fprintln(bw, "--- FAILURES ---")
		for _, r := range failures {
			fmt.Fprintf(bw, "  FAIL  [%s] %-40s %s\n", r.module, r.name, r.duration.Round(time.Microsecond))
			if r.detail != "" {
				for line := range strings.SplitSeq(r.detail, "\n") {
					fmt.Fprintf(bw, "        %s\n", line)
				}
			}
		}
		fmt.Fprintln(bw)
	}

	totalTests := len(results)
	totalPassed := 0
	totalFailed := 0
	for _, r := range results {
		if r.passed {
			totalPassed++
		} else {
			totalFailed++
		}
	}

	fmt.Fprintln(bw, separator)
	fmt.Fprintf(bw, "  SUMMARY: %d tests | %d passed | %d failed | %s\n",
		totalTests, totalPassed, totalFailed, totalDuration.Round(time.Microsecond))
	fmt.Fprintln(bw, separator)

	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printSummary(results []testResult) {
	reports := buildReports(results)
	totalPassed := 0
	totalFailed := 0
	var totalDuration time.Duration

	for _, rep := range reports {
		totalPassed += rep.passed
		totalFailed += rep.failed
		totalDuration += rep.duration

		status := "OK"
		if rep.failed > 0 {
			status = "FAIL"
		}
		log.Printf("  %-12s %d/%d %s", rep.name, rep.passed, rep.tests, status)
	}

	log.Printf("")
	log.Printf("  %d tests | %d passed | %d failed | %s",
		len(results), totalPassed, totalFailed, totalDuration.Round(time.Microsecond))

	for _, r := range results {
		if !r.passed {
			log.Printf("  FAIL [%s] %s: %s", r.module, r.name, r.detail)
		}
	}
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("[e2e] ")

	log.Printf("starting E2E pipeline test")
	totalStart := time.Now()

	results := runAllSuites()

	log.Printf("completed in %s", time.Since(totalStart).Round(time.Microsecond))
	log.Printf("")

	printSummary(results)

	if err := writeLog(logPath, results); err != nil {
		log.Fatalf("cannot write log: %v", err)
	}
	log.Printf("log written to %s", logPath)

	for _, r := range results {
		if !r.passed {
			os.Exit(1)
		}
	}
}
