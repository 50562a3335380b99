package brain

import (
	"math/rand"
	"sync"
)

// PhraseBook renders the bot's canned lines. The random source is injected
// so tests can pin the choice; the mutex makes it safe under concurrent
// event handlers, which *rand.Rand itself is not.
type PhraseBook struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPhraseBook wraps rng; a nil rng panics early rather than late.
func NewPhraseBook(rng *rand.Rand) *PhraseBook {
	if rng == nil {
		panic("brain: nil rand source")
	}
	return &PhraseBook{rng: rng}
}

// Greetings fires once on every asleep-to-awake transition.
var Greetings = []string{
	"Ahh, greetings, young adventurer! The Wise Old Man is here — ask, and perhaps you'll learn a thing or two!",
	"You called? Dust off a chair, the Wise Old Man is listening.",
	"Radiant XP descends! What wisdom do you seek, youngster?",
}

const (
	// Farewell is fixed so tests and users both know sleep worked.
	Farewell = "A nap, you say? Even the Wise Old Man needs his rest. Farewell for now, and may your bank remain untrimmed! Zzz..."

	// Refusal is the only answer to real-world-trade talk.
	Refusal = "Sorry, young adventurer, I cannot assist with buying or selling gold, accounts, or items for real-world money. Such things are forbidden by the laws of Gielinor!"

	// ResearchRefusal replaces researched answers that themselves trip the filter.
	ResearchRefusal = "The Wise Old Man will not speak of forbidden trades or dealings!"

	// TradeReminder is advisory and can accompany a substantive answer.
	TradeReminder = "Remember: Always double-check trades and use the Grand Exchange or secure in-game methods. If something seems too good to be true, it probably is!"

	// NoAnswer is the filler for failed or empty research results.
	NoAnswer = "The stars withhold their wisdom — rephrase thy question!"

	// Fallback replies for asleep channels with known topic keywords.
	DiscordFallback   = "Ah, Discord! In my day, we just used carrier pigeons. Ask me about channels, roles, invites, or permissions — I've picked up a trick or two over the years."
	RunescapeFallback = "RuneScape, eh? Now that's a name I haven't heard in a long time. Need help with quests, skills, or gear? The Wise Old Man is here to help — just don't ask me to trim your bank!"

	// GenericAck closes the templated-reply chain.
	GenericAck = "The world is full of mysteries! Ask away, and perhaps this old wizard can help."

	// BotEcho prefixes the playful repeat of another bot's message.
	BotEcho = "I overheard another bot say: "

	// VoiceJoined confirms a voice-channel join.
	VoiceJoined = "The Wise Old Man has joined your voice channel!"
)

// topicTemplates keys label -> flavored reply. Labels without an entry fall
// through to GenericAck.
var topicTemplates = map[string]string{
	"economy":     "Divine riches! Consult the Grand Exchange, friend — the markets of Gielinor never sleep.",
	"quest":       "Questing under my gaze! Check thy journal and the scrolls of the Wiki; the next step is rarely far.",
	"skill":       "Training, are we? Patience and good rotations, young one — levels come to those who grind.",
	"pvm":         "Boss mechanics, eh? Bring food, learn the tells, and never be ashamed of a tactical retreat.",
	"boss":        "A mighty foe! Study its phases before you step in, and keep your prayers sharp.",
	"discord":     "With the wisdom of many years, I say: Discord is a fine tool for gathering adventurers. What do you wish to know, young one?",
	"voice":       "Speak up, and the Wise Old Man shall join your voice channel to listen.",
	"player":      "Looking up an adventurer? Give me a name and I'll consult my dusty tomes.",
	"event":       "Events come and go like Yak Tracks — check the calendar before the XP dries up!",
	"activity":    "Clues, warbands, ports — Gielinor rewards the busy. Pick one and see it through.",
	"achievement": "Capes and titles! The trimmed life is earned one checklist at a time.",
	"meta":        "Ah, the deeper arts — rotations, perks, auras. Optimize, but don't forget to have fun.",
}

// Greeting picks uniformly from Greetings.
func (p *PhraseBook) Greeting() string {
	return Greetings[p.intn(len(Greetings))]
}

// Tip picks uniformly from the RS3 tip list.
func (p *PhraseBook) Tip() string {
	return Tips[p.intn(len(Tips))]
}

func (p *PhraseBook) intn(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Intn(n)
}

// TopicReply renders the label-keyed template, or GenericAck when the
// label has no flavored text.
func (p *PhraseBook) TopicReply(label string) string {
	if tpl, ok := topicTemplates[label]; ok {
		return tpl
	}
	return GenericAck
}

// Tips shown by the !tip command.
var Tips = []string{
	"Always bring food to boss fights.",
	"Check the Wiki for quest requirements before you set out.",
	"Bank often — Death is a patient creditor.",
	"Vis wax and daily keys add up; do your dailyscape.",
	"An aura saved is an aura earned: check your timers.",
	"Herb runs pay for themselves twice over.",
}
