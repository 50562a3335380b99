package brain

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"wiseoldman/internal/research"
)

// Dispatcher turns inbound chat messages into replies. It owns the
// wake/sleep decision per channel and sequences safety screening, intent
// classification and external research.
type Dispatcher struct {
	store        *Store
	classifier   *Classifier
	phrases      *PhraseBook
	collaborator research.Collaborator
	voice        VoiceReleaser

	wakePhrases     []string
	sleepPhrase     string
	researchTimeout time.Duration
	train           bool
}

// DispatcherOptions carries the knobs New needs. Collaborator and Voice
// may be nil; research then always degrades to filler and sleep skips the
// voice release.
type DispatcherOptions struct {
	Store           *Store
	Classifier      *Classifier
	Phrases         *PhraseBook
	Collaborator    research.Collaborator
	Voice           VoiceReleaser
	WakePhrases     []string
	SleepPhrase     string
	ResearchTimeout time.Duration
	Train           bool
}

func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	wake := make([]string, 0, len(opts.WakePhrases))
	for _, w := range opts.WakePhrases {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			wake = append(wake, w)
		}
	}
	timeout := opts.ResearchTimeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Dispatcher{
		store:           opts.Store,
		classifier:      opts.Classifier,
		phrases:         opts.Phrases,
		collaborator:    opts.Collaborator,
		voice:           opts.Voice,
		wakePhrases:     wake,
		sleepPhrase:     strings.ToLower(strings.TrimSpace(opts.SleepPhrase)),
		researchTimeout: timeout,
		train:           opts.Train,
	}
}

// Dispatch processes one inbound message and returns the replies to send.
// Bot-authored and blank messages are dropped before any state changes.
func (d *Dispatcher) Dispatch(ctx context.Context, in Inbound) Result {
	if in.IsBot {
		return d.overhear(in)
	}
	if strings.TrimSpace(in.Text) == "" {
		return Result{}
	}
	if in.At.IsZero() {
		in.At = time.Now()
	}
	lower := strings.ToLower(in.Text)

	sess := d.store.GetOrCreate(in.ChannelID)
	sess.RecordMessage(in.AuthorName, in.Text, in.At)

	label := d.classifier.Classify(lower)
	if d.train {
		// Online self-training with the model's own best guess. Quality
		// drifts with conversation history; FREEZE_CLASSIFIER turns it off.
		d.classifier.Train(lower, label)
	}

	if !sess.Awake() {
		return d.dispatchAsleep(sess, in, lower)
	}
	return d.dispatchAwake(ctx, sess, in, lower, label)
}

// overhear teases other bots in awake channels. Their messages never
// touch session state or the classifier.
func (d *Dispatcher) overhear(in Inbound) Result {
	if !d.store.IsAwake(in.ChannelID) {
		return Result{}
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return Result{}
	}
	return Result{Replies: []string{BotEcho + "\"" + text + "\""}}
}

func (d *Dispatcher) dispatchAsleep(sess *Session, in Inbound, lower string) Result {
	for _, w := range d.wakePhrases {
		if strings.Contains(lower, w) {
			d.store.Wake(in.ChannelID)
			log.Printf("[MIND] Channel %s woke up (by %s)", in.ChannelID, in.AuthorName)
			return Result{Replies: []string{d.phrases.Greeting()}, Woke: true}
		}
	}
	// Asleep channels stay quiet except for topics the channel has
	// already shown interest in.
	if sess.HasKeyword("discord") {
		return Result{Replies: []string{DiscordFallback}}
	}
	if sess.HasKeyword("runescape", "rs", "rs3") {
		return Result{Replies: []string{RunescapeFallback}}
	}
	return Result{}
}

func (d *Dispatcher) dispatchAwake(ctx context.Context, sess *Session, in Inbound, lower, label string) Result {
	if d.sleepPhrase != "" && strings.Contains(lower, d.sleepPhrase) {
		d.store.Sleep(in.ChannelID)
		if d.voice != nil {
			if err := d.voice.ReleaseVoice(in.ChannelID); err != nil {
				log.Printf("[ERR] Voice release for channel %s: %v", in.ChannelID, err)
			}
		}
		log.Printf("[MIND] Channel %s went to sleep (by %s)", in.ChannelID, in.AuthorName)
		return Result{Replies: []string{Farewell}, Label: label, Slept: true}
	}

	var replies []string
	action := "general conversation"

	switch ClassifySafety(in.Text) {
	case Forbidden:
		replies = append(replies, Refusal)
		action = "refused forbidden topic"
	case InGameTrade:
		replies = append(replies, TradeReminder)
		fallthrough
	default:
		if isQuestion(lower) {
			replies = append(replies, d.research(ctx, in.Text))
			action = "researched online"
		} else {
			replies = append(replies, d.phrases.TopicReply(label))
		}
	}

	sess.PushThought(ThoughtEntry{
		ID:     uuid.NewString(),
		At:     in.At,
		Author: in.AuthorName,
		Label:  label,
		Query:  in.Text,
		Action: action,
	})
	replies = append(replies, "Wise Old Man's Notes: "+sess.RenderThoughts())

	return Result{Replies: replies, Label: label}
}

// research asks the collaborator and degrades to filler on every failure
// mode: no collaborator, timeout, error, empty answer, unsafe answer.
func (d *Dispatcher) research(ctx context.Context, text string) string {
	if d.collaborator == nil {
		return NoAnswer
	}
	qctx, cancel := context.WithTimeout(ctx, d.researchTimeout)
	defer cancel()
	answer, err := d.collaborator.Query(qctx, text)
	if err != nil {
		log.Printf("[ERR] Research failed: %v", err)
		return NoAnswer
	}
	if answer == "" {
		return NoAnswer
	}
	if ClassifySafety(answer) == Forbidden {
		return ResearchRefusal
	}
	return answer
}

func isQuestion(lower string) bool {
	if strings.HasSuffix(strings.TrimSpace(lower), "?") {
		return true
	}
	for _, tok := range Tokenize(lower) {
		switch tok {
		case "what", "where", "how":
			return true
		}
	}
	return false
}
