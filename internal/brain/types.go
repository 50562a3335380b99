package brain

import "time"

// Inbound is one received chat message, as handed over by the transport
// layer. The dispatcher never touches the Discord SDK directly.
type Inbound struct {
	ChannelID  string
	AuthorID   string
	AuthorName string
	IsBot      bool
	Text       string
	At         time.Time
}

// Result is what the dispatcher produced for one inbound message. Replies
// are emitted in order; Label is the classified intent when the awake
// branch ran, empty otherwise.
type Result struct {
	Replies []string
	Label   string
	Woke    bool
	Slept   bool
}

// Message is one entry in a session's recent-message window.
type Message struct {
	Author string    `json:"author"`
	Text   string    `json:"text"`
	At     time.Time `json:"at"`
}

// ThoughtEntry is one structured note in a session's thought log.
type ThoughtEntry struct {
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
	Author string    `json:"author"`
	Label  string    `json:"label"`
	Query  string    `json:"query"`
	Action string    `json:"action"`
}

// VoiceReleaser detaches whatever voice resource is bound to a channel.
// Best-effort: failures are logged by the dispatcher, never surfaced.
type VoiceReleaser interface {
	ReleaseVoice(channelID string) error
}
