package brain

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/forPelevin/gomoji"
)

// Labels is the closed intent vocabulary. Classify always returns one of
// these; "general" is the degenerate fallback.
var Labels = []string{
	"achievement",
	"activity",
	"boss",
	"discord",
	"economy",
	"event",
	"general",
	"meta",
	"player",
	"pvm",
	"quest",
	"skill",
	"voice",
}

const fallbackLabel = "general"

var tokenRe = regexp.MustCompile(`\w+`)

// Tokenize lowercases, strips emoji and splits on word boundaries.
func Tokenize(text string) []string {
	text = gomoji.RemoveEmojis(text)
	return tokenRe.FindAllString(strings.ToLower(text), -1)
}

// Classifier is a multinomial bag-of-words model over the fixed label set.
// It is shared across all channels and, unless frozen, trained online with
// every inbound utterance, so classification quality drifts with
// conversation history. That drift is inherited behavior, not an accident.
type Classifier struct {
	mu          sync.RWMutex
	frozen      bool
	docs        map[string]int            // label -> training docs
	tokenCounts map[string]map[string]int // label -> token -> count
	tokenTotals map[string]int            // label -> total tokens
	vocab       map[string]struct{}
	totalDocs   int
}

// NewClassifier returns a model pre-trained on the seed corpus.
func NewClassifier() *Classifier {
	c := &Classifier{
		docs:        make(map[string]int),
		tokenCounts: make(map[string]map[string]int),
		tokenTotals: make(map[string]int),
		vocab:       make(map[string]struct{}),
	}
	for _, ex := range seedCorpus {
		c.Train(ex.text, ex.label)
	}
	return c
}

// Freeze stops all further training; Classify keeps working.
func (c *Classifier) Freeze() {
	c.mu.Lock()
	c.frozen = true
	c.mu.Unlock()
}

// Train adds one example under label. Unknown labels and empty token lists
// are ignored. Repeated calls strengthen the association.
func (c *Classifier) Train(text, label string) {
	if !validLabel(label) {
		return
	}
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frozen {
		return
	}
	c.docs[label]++
	c.totalDocs++
	counts := c.tokenCounts[label]
	if counts == nil {
		counts = make(map[string]int)
		c.tokenCounts[label] = counts
	}
	for _, t := range tokens {
		counts[t]++
		c.tokenTotals[label]++
		c.vocab[t] = struct{}{}
	}
}

// Classify returns the most likely label for text. Always a member of
// Labels; ties resolve to the lexicographically first candidate so the
// result is deterministic.
func (c *Classifier) Classify(text string) string {
	tokens := Tokenize(text)
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(tokens) == 0 || c.totalDocs == 0 {
		return fallbackLabel
	}

	trained := make([]string, 0, len(c.docs))
	for label := range c.docs {
		trained = append(trained, label)
	}
	sort.Strings(trained)

	best := fallbackLabel
	bestScore := math.Inf(-1)
	vocabSize := float64(len(c.vocab) + 1)
	for _, label := range trained {
		score := math.Log(float64(c.docs[label]) / float64(c.totalDocs))
		counts := c.tokenCounts[label]
		denom := float64(c.tokenTotals[label]) + vocabSize
		for _, t := range tokens {
			// Laplace smoothing keeps unseen tokens from zeroing a label.
			score += math.Log((float64(counts[t]) + 1) / denom)
		}
		if score > bestScore {
			bestScore = score
			best = label
		}
	}
	return best
}

func validLabel(label string) bool {
	for _, l := range Labels {
		if l == label {
			return true
		}
	}
	return false
}

// seedCorpus covers every supported topic so the model is never
// degenerate at startup.
var seedCorpus = []struct{ text, label string }{
	{"slayer runescape", "skill"},
	{"dungeoneering runescape", "skill"},
	{"archaeology invention elite skill runescape", "skill"},
	{"slayer tasks runescape", "skill"},
	{"gp runescape", "economy"},
	{"how much price of runescape", "economy"},
	{"ge grand exchange price runescape", "economy"},
	{"best money making runescape", "economy"},
	{"quest runescape", "quest"},
	{"next step needed for quest runescape", "quest"},
	{"how many runescape", "quest"},
	{"channel discord", "discord"},
	{"role permissions invite discord", "discord"},
	{"voice discord", "voice"},
	{"join voice chat group private discord", "voice"},
	{"player runescape", "player"},
	{"hiscores stats player runescape", "player"},
	{"elite dungeons boss mechanics runescape", "pvm"},
	{"reaper assignments enrage hardmode runescape", "pvm"},
	{"telos solak zamorak arch glacor runescape", "boss"},
	{"double xp yak track runescape", "event"},
	{"clue scroll treasure trails warbands runescape", "activity"},
	{"player owned farm ports runescape", "activity"},
	{"comp cape quest cape runescore runescape", "achievement"},
	{"aura management ability rotations xp rates runescape", "meta"},
}
