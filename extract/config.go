package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AlirezaTheH/perke/pattern"
	"github.com/AlirezaTheH/perke/rank"
	"github.com/AlirezaTheH/perke/topic"
)

// ErrInvalidConfig reports an out-of-range configuration parameter. It is
// returned before any processing starts.
var ErrInvalidConfig = errors.New("extract: invalid configuration")

// Model selects one of the graph-based extraction models. Each model is a
// configuration of graph construction and scoring, not a separate
// implementation: all of them share the candidate extractor, the ranking
// engine and the selector.
type Model int

const (
	// TextRank ranks a word co-occurrence graph with a small window and
	// composes phrases either from a tag pattern or from the top-T-percent
	// highest ranked words.
	TextRank Model = iota
	// SingleRank is TextRank with a wide window and co-occurrence counts
	// as edge weights.
	SingleRank
	// PositionRank biases the random walk toward words occurring early in
	// the document and selects noun phrase candidates by tag pattern.
	PositionRank
	// TopicRank clusters candidates into topics and ranks an inter-topic
	// proximity graph; each topic contributes one representative.
	TopicRank
	// MultipartiteRank ranks candidates directly on a directed inter-topic
	// graph with a first-occurrence edge boost.
	MultipartiteRank
)

var modelNames = map[Model]string{
	TextRank:         "textrank",
	SingleRank:       "singlerank",
	PositionRank:     "positionrank",
	TopicRank:        "topicrank",
	MultipartiteRank: "multipartiterank",
}

// String returns the lowercase model name.
func (m Model) String() string {
	if name, ok := modelNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Model(%d)", int(m))
}

// ParseModel returns the model named by s, case-insensitively.
func ParseModel(s string) (Model, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for m, name := range modelNames {
		if name == needle {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown model %q", ErrInvalidConfig, s)
}

// DefaultValidTags are the part of speech tags admitted into candidates and
// word graphs: nouns and adjectives.
var DefaultValidTags = []string{"NOUN", "ADJ"}

// DefaultPattern is the noun phrase pattern used by PositionRank.
const DefaultPattern = "(ADJ)*(NOUN)+"

const (
	defaultTopN       = 10   // results returned when n is not positive
	defaultAlpha      = 1.1  // multipartite edge boost strength
	defaultMaxLength  = 3    // PositionRank candidate length cap in words
	narrowWindow      = 2    // TextRank co-occurrence window
	wideWindow        = 10   // SingleRank/PositionRank co-occurrence window
	defaultTopPercent = 0.33 // TextRank phrase generation share
)

// Config selects a model and its parameters. Zero-valued fields take the
// model's defaults, so Config{Model: extract.TopicRank} is ready to use.
type Config struct {
	// Model is the extraction model to run.
	Model Model `yaml:"model"`

	// ValidTags are the tags admitted into candidates and word graphs.
	ValidTags []string `yaml:"valid_tags"`

	// WindowSize is the co-occurrence window in tokens for word graphs.
	WindowSize int `yaml:"window_size"`

	// Damping, Epsilon and MaxIterations parameterize the random walk.
	Damping       float64 `yaml:"damping"`
	Epsilon       float64 `yaml:"epsilon"`
	MaxIterations int     `yaml:"max_iterations"`

	// TopPercent composes TextRank phrases from this share of the highest
	// ranked words instead of tag runs. Zero keeps tag-run selection.
	TopPercent float64 `yaml:"top_percent"`

	// Pattern is the tag pattern for PositionRank candidate selection.
	Pattern string `yaml:"pattern"`

	// MaxLength caps PositionRank candidates, in words.
	MaxLength int `yaml:"max_length"`

	// Threshold is the minimum lexical similarity for merging two topics,
	// in [0, 1]. Topic-aware models only.
	Threshold float64 `yaml:"threshold"`

	// Heuristic selects topic representatives. TopicRank only.
	Heuristic topic.Heuristic `yaml:"-"`

	// Alpha is the strength of the first-occurrence edge boost.
	// MultipartiteRank only.
	Alpha float64 `yaml:"alpha"`

	// NormalizeByLength divides phrase scores by their word count.
	NormalizeByLength bool `yaml:"normalize_by_length"`

	// KeepRedundant disables the selector's de-duplication step.
	KeepRedundant bool `yaml:"keep_redundant"`

	// Stopwords override the embedded stopword list used by the
	// topic-aware models' candidate filtering.
	Stopwords []string `yaml:"stopwords"`

	// Logger receives warning-level conditions. Nil uses slog.Default.
	Logger *slog.Logger `yaml:"-"`
}

// NewTextRank returns the TextRank defaults: window 2, phrases from the 33
// percent highest ranked words.
func NewTextRank() Config {
	return Config{Model: TextRank, WindowSize: narrowWindow, TopPercent: defaultTopPercent}
}

// NewSingleRank returns the SingleRank defaults: window 10, tag-run
// candidates scored by the sum of their word scores.
func NewSingleRank() Config {
	return Config{Model: SingleRank, WindowSize: wideWindow}
}

// NewPositionRank returns the PositionRank defaults: window 10, noun phrase
// pattern (ADJ)*(NOUN)+ capped at three words, position-biased walk.
func NewPositionRank() Config {
	return Config{
		Model:      PositionRank,
		WindowSize: wideWindow,
		Pattern:    DefaultPattern,
		MaxLength:  defaultMaxLength,
	}
}

// NewTopicRank returns the TopicRank defaults: similarity threshold 0.25,
// first-occurring topic representatives.
func NewTopicRank() Config {
	return Config{Model: TopicRank, Threshold: topic.DefaultThreshold}
}

// NewMultipartiteRank returns the MultipartiteRank defaults: similarity
// threshold 0.25, first-occurrence boost alpha 1.1.
func NewMultipartiteRank() Config {
	return Config{Model: MultipartiteRank, Threshold: topic.DefaultThreshold, Alpha: defaultAlpha}
}

// withDefaults fills zero-valued fields with the model defaults.
func (c Config) withDefaults() Config {
	if len(c.ValidTags) == 0 {
		c.ValidTags = DefaultValidTags
	}
	if c.WindowSize == 0 {
		if c.Model == TextRank {
			c.WindowSize = narrowWindow
		} else {
			c.WindowSize = wideWindow
		}
	}
	if c.Damping == 0 {
		c.Damping = rank.DefaultDamping
	}
	if c.Epsilon == 0 {
		c.Epsilon = rank.DefaultEpsilon
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = rank.DefaultMaxIterations
	}
	if c.Pattern == "" {
		c.Pattern = DefaultPattern
	}
	if c.MaxLength == 0 {
		c.MaxLength = defaultMaxLength
	}
	if c.Threshold == 0 {
		c.Threshold = topic.DefaultThreshold
	}
	if c.Alpha == 0 && c.Model == MultipartiteRank {
		c.Alpha = defaultAlpha
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// validate fails fast on out-of-range parameters.
func (c Config) validate() error {
	if _, ok := modelNames[c.Model]; !ok {
		return fmt.Errorf("%w: unknown model %d", ErrInvalidConfig, int(c.Model))
	}
	if c.WindowSize < 1 {
		return fmt.Errorf("%w: window size must be positive, got %d",
			ErrInvalidConfig, c.WindowSize)
	}
	if c.Damping <= 0 || c.Damping >= 1 {
		return fmt.Errorf("%w: damping factor must be in (0, 1), got %g",
			ErrInvalidConfig, c.Damping)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("%w: convergence tolerance must be positive, got %g",
			ErrInvalidConfig, c.Epsilon)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("%w: iteration cap must be positive, got %d",
			ErrInvalidConfig, c.MaxIterations)
	}
	if c.TopPercent < 0 || c.TopPercent > 1 {
		return fmt.Errorf("%w: top percent must be in [0, 1], got %g",
			ErrInvalidConfig, c.TopPercent)
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("%w: topic similarity threshold must be in [0, 1], got %g",
			ErrInvalidConfig, c.Threshold)
	}
	if c.Alpha < 0 {
		return fmt.Errorf("%w: alpha must not be negative, got %g",
			ErrInvalidConfig, c.Alpha)
	}
	if c.MaxLength < 1 {
		return fmt.Errorf("%w: maximum candidate length must be positive, got %d",
			ErrInvalidConfig, c.MaxLength)
	}
	if _, err := pattern.Compile(c.Pattern); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// tagSet converts the configured tag list to a lookup set.
func (c Config) tagSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.ValidTags))
	for _, tag := range c.ValidTags {
		set[tag] = struct{}{}
	}
	return set
}
