package brain

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCollaborator struct {
	answer string
	err    error
	calls  []string
}

func (s *stubCollaborator) Query(_ context.Context, text string) (string, error) {
	s.calls = append(s.calls, text)
	return s.answer, s.err
}

type stubVoice struct {
	released []string
	err      error
}

func (s *stubVoice) ReleaseVoice(channelID string) error {
	s.released = append(s.released, channelID)
	return s.err
}

func newTestDispatcher(collab *stubCollaborator, voice *stubVoice) (*Dispatcher, *Store) {
	store := NewStore(5, 5)
	d := NewDispatcher(DispatcherOptions{
		Store:           store,
		Classifier:      NewClassifier(),
		Phrases:         NewPhraseBook(rand.New(rand.NewSource(1))),
		Collaborator:    collab,
		Voice:           voice,
		WakePhrases:     []string{"cab", "celestial"},
		SleepPhrase:     "cab sleep",
		ResearchTimeout: time.Second,
		Train:           true,
	})
	return d, store
}

func say(d *Dispatcher, channel, text string) Result {
	return d.Dispatch(context.Background(), Inbound{
		ChannelID:  channel,
		AuthorID:   "user-1",
		AuthorName: "alice",
		Text:       text,
		At:         time.Now(),
	})
}

func TestDispatchBotMessagesCannotWake(t *testing.T) {
	d, store := newTestDispatcher(&stubCollaborator{}, &stubVoice{})
	res := d.Dispatch(context.Background(), Inbound{
		ChannelID: "chan-1", AuthorName: "botty", IsBot: true, Text: "hey cab",
	})
	assert.Empty(t, res.Replies)
	assert.False(t, store.IsAwake("chan-1"))
}

func TestDispatchEchoesOtherBotsWhenAwake(t *testing.T) {
	d, store := newTestDispatcher(&stubCollaborator{}, &stubVoice{})
	say(d, "chan-1", "hey cab")

	res := d.Dispatch(context.Background(), Inbound{
		ChannelID: "chan-1", AuthorName: "botty", IsBot: true, Text: "beep boop",
	})
	require.Len(t, res.Replies, 1)
	assert.Equal(t, BotEcho+`"beep boop"`, res.Replies[0])

	// Overheard bot chatter never touches session state.
	sess := store.GetOrCreate("chan-1")
	assert.Equal(t, 1, sess.RecentCount())
	assert.Equal(t, 0, sess.ThoughtCount())
	assert.False(t, sess.HasKeyword("beep"))
}

func TestDispatchBotEchoSkipsBlankMessages(t *testing.T) {
	d, _ := newTestDispatcher(&stubCollaborator{}, &stubVoice{})
	say(d, "chan-1", "hey cab")

	res := d.Dispatch(context.Background(), Inbound{
		ChannelID: "chan-1", AuthorName: "botty", IsBot: true, Text: "   ",
	})
	assert.Empty(t, res.Replies)
}

func TestDispatchIgnoresBlankMessages(t *testing.T) {
	d, store := newTestDispatcher(&stubCollaborator{}, &stubVoice{})
	res := say(d, "chan-1", "   ")
	assert.Empty(t, res.Replies)
	assert.Equal(t, 0, store.GetOrCreate("chan-1").RecentCount())
}

func TestDispatchWakePhrase(t *testing.T) {
	d, store := newTestDispatcher(&stubCollaborator{}, &stubVoice{})

	res := say(d, "chan-1", "hey CAB, you around?")
	assert.True(t, res.Woke)
	require.Len(t, res.Replies, 1)
	assert.Contains(t, Greetings, res.Replies[0])
	assert.True(t, store.IsAwake("chan-1"))
}

func TestDispatchWakeWhileAwakeIsNoop(t *testing.T) {
	d, _ := newTestDispatcher(&stubCollaborator{}, &stubVoice{})
	say(d, "chan-1", "hey cab")

	res := say(d, "chan-1", "hey cab")
	assert.False(t, res.Woke)
	assert.NotContains(t, Greetings, res.Replies[0])
}

func TestDispatchSleepPhrase(t *testing.T) {
	voice := &stubVoice{}
	d, store := newTestDispatcher(&stubCollaborator{}, voice)
	say(d, "chan-1", "hey cab")

	res := say(d, "chan-1", "alright cab sleep now")
	assert.True(t, res.Slept)
	require.Len(t, res.Replies, 1)
	assert.Equal(t, Farewell, res.Replies[0])
	assert.False(t, store.IsAwake("chan-1"))
	assert.Equal(t, []string{"chan-1"}, voice.released)
}

func TestDispatchSleepReleasesVoiceDespiteError(t *testing.T) {
	voice := &stubVoice{err: errors.New("no connection")}
	d, store := newTestDispatcher(&stubCollaborator{}, voice)
	say(d, "chan-1", "hey cab")

	res := say(d, "chan-1", "cab sleep")
	assert.True(t, res.Slept)
	assert.False(t, store.IsAwake("chan-1"))
}

func TestDispatchAsleepStaysQuiet(t *testing.T) {
	d, store := newTestDispatcher(&stubCollaborator{}, &stubVoice{})
	res := say(d, "chan-1", "nice weather today")
	assert.Empty(t, res.Replies)
	assert.False(t, store.IsAwake("chan-1"))
	// The message is still recorded for later keyword fallbacks.
	assert.Equal(t, 1, store.GetOrCreate("chan-1").RecentCount())
}

func TestDispatchAsleepKeywordFallbacks(t *testing.T) {
	d, _ := newTestDispatcher(&stubCollaborator{}, &stubVoice{})

	res := say(d, "chan-1", "anyone still play runescape here")
	require.Len(t, res.Replies, 1)
	assert.Equal(t, RunescapeFallback, res.Replies[0])

	res = say(d, "chan-2", "how do I set up this discord role")
	require.Len(t, res.Replies, 1)
	assert.Equal(t, DiscordFallback, res.Replies[0])
}

func TestDispatchForbiddenRefusesWithoutResearch(t *testing.T) {
	collab := &stubCollaborator{answer: "should never appear"}
	d, _ := newTestDispatcher(collab, &stubVoice{})
	say(d, "chan-1", "hey cab")

	res := say(d, "chan-1", "where can I buy gold for real money?")
	require.NotEmpty(t, res.Replies)
	assert.Equal(t, Refusal, res.Replies[0])
	assert.Empty(t, collab.calls)
	for _, r := range res.Replies {
		assert.NotContains(t, r, "should never appear")
	}
}

func TestDispatchInGameTradeGetsReminder(t *testing.T) {
	collab := &stubCollaborator{answer: "a fine answer"}
	d, _ := newTestDispatcher(collab, &stubVoice{})
	say(d, "chan-1", "hey cab")

	res := say(d, "chan-1", "how do I trade with another player?")
	require.True(t, len(res.Replies) >= 2)
	assert.Equal(t, TradeReminder, res.Replies[0])
	assert.Equal(t, "a fine answer", res.Replies[1])
}

func TestDispatchQuestionInvokesCollaborator(t *testing.T) {
	collab := &stubCollaborator{answer: "the drop rate is 1/19"}
	d, _ := newTestDispatcher(collab, &stubVoice{})
	say(d, "chan-1", "hey cab")

	res := say(d, "chan-1", "What is the drop rate of Telos?")
	require.Equal(t, []string{"What is the drop rate of Telos?"}, collab.calls)
	assert.Equal(t, "the drop rate is 1/19", res.Replies[0])
}

func TestDispatchResearchFailureDegradesToFiller(t *testing.T) {
	collab := &stubCollaborator{err: errors.New("all providers exhausted")}
	d, _ := newTestDispatcher(collab, &stubVoice{})
	say(d, "chan-1", "hey cab")

	res := say(d, "chan-1", "What lies beyond the wilderness?")
	assert.Equal(t, NoAnswer, res.Replies[0])
}

func TestDispatchEmptyResearchAnswerDegradesToFiller(t *testing.T) {
	collab := &stubCollaborator{answer: ""}
	d, _ := newTestDispatcher(collab, &stubVoice{})
	say(d, "chan-1", "hey cab")

	res := say(d, "chan-1", "What lies beyond the wilderness?")
	assert.Equal(t, NoAnswer, res.Replies[0])
}

func TestDispatchUnsafeResearchAnswerIsRefused(t *testing.T) {
	collab := &stubCollaborator{answer: "just buy gold from a sketchy site"}
	d, _ := newTestDispatcher(collab, &stubVoice{})
	say(d, "chan-1", "hey cab")

	res := say(d, "chan-1", "What is the fastest way to get rich?")
	assert.Equal(t, ResearchRefusal, res.Replies[0])
}

func TestDispatchNilCollaboratorDegradesToFiller(t *testing.T) {
	store := NewStore(5, 5)
	d := NewDispatcher(DispatcherOptions{
		Store:       store,
		Classifier:  NewClassifier(),
		Phrases:     NewPhraseBook(rand.New(rand.NewSource(1))),
		WakePhrases: []string{"cab"},
		SleepPhrase: "cab sleep",
	})
	say(d, "chan-1", "hey cab")

	res := say(d, "chan-1", "What lies beyond the wilderness?")
	assert.Equal(t, NoAnswer, res.Replies[0])
}

func TestDispatchAppendsThoughtNotes(t *testing.T) {
	d, store := newTestDispatcher(&stubCollaborator{}, &stubVoice{})
	say(d, "chan-1", "hey cab")

	res := say(d, "chan-1", "I love questing in the morning")
	require.NotEmpty(t, res.Replies)
	last := res.Replies[len(res.Replies)-1]
	assert.Contains(t, last, "Wise Old Man's Notes: ")
	assert.Contains(t, last, "Author=alice")
	assert.Equal(t, 1, store.GetOrCreate("chan-1").ThoughtCount())
}

func TestDispatchLabelAlwaysKnownWhenAwake(t *testing.T) {
	d, _ := newTestDispatcher(&stubCollaborator{answer: "ok"}, &stubVoice{})
	say(d, "chan-1", "hey cab")

	res := say(d, "chan-1", "utter gibberish zzz qqq")
	assert.Contains(t, Labels, res.Label)
}

func TestIsQuestion(t *testing.T) {
	assert.True(t, isQuestion("is this a question?"))
	assert.True(t, isQuestion("what about this one"))
	assert.True(t, isQuestion("where do i go"))
	assert.True(t, isQuestion("how does it work"))
	assert.False(t, isQuestion("just a statement"))
	assert.False(t, isQuestion("somewhat tricky"))
}
