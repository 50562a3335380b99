package brain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyAlwaysReturnsKnownLabel(t *testing.T) {
	c := NewClassifier()
	inputs := []string{
		"how do I train slayer",
		"what is the price of a whip",
		"",
		"🎉🎉🎉",
		"complete gibberish zxqv wvut",
	}
	for _, in := range inputs {
		label := c.Classify(in)
		assert.Contains(t, Labels, label, "input %q", in)
	}
}

func TestClassifySeedAssociations(t *testing.T) {
	c := NewClassifier()
	assert.Equal(t, "skill", c.Classify("slayer dungeoneering training"))
	assert.Equal(t, "economy", c.Classify("grand exchange price check"))
	assert.Equal(t, "voice", c.Classify("join voice chat"))
}

func TestClassifyEmptyInputFallsBack(t *testing.T) {
	c := NewClassifier()
	assert.Equal(t, "general", c.Classify(""))
	assert.Equal(t, "general", c.Classify("   "))
}

func TestTrainIgnoresUnknownLabel(t *testing.T) {
	c := NewClassifier()
	before := c.Classify("zxqvtoken")
	c.Train("zxqvtoken", "not-a-label")
	assert.Equal(t, before, c.Classify("zxqvtoken"))
}

func TestTrainStrengthensAssociation(t *testing.T) {
	c := NewClassifier()
	for i := 0; i < 10; i++ {
		c.Train("zxqvtoken special word", "boss")
	}
	assert.Equal(t, "boss", c.Classify("zxqvtoken"))
}

func TestFreezeStopsTraining(t *testing.T) {
	c := NewClassifier()
	c.Freeze()
	before := c.Classify("zxqvtoken")
	for i := 0; i < 10; i++ {
		c.Train("zxqvtoken", "boss")
	}
	assert.Equal(t, before, c.Classify("zxqvtoken"))
}

func TestTokenizeStripsEmojiAndCase(t *testing.T) {
	tokens := Tokenize("Hello WORLD! 🎉 check-this")
	require.Equal(t, []string{"hello", "world", "check", "this"}, tokens)
	assert.Empty(t, Tokenize("🎉🎉"))
}
