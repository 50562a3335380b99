package discord

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"wiseoldman/internal/brain"
	"wiseoldman/internal/command"
	"wiseoldman/internal/config"
	"wiseoldman/internal/github"
	"wiseoldman/internal/research"
	"wiseoldman/internal/runescape"
	"wiseoldman/internal/storage"
	v "wiseoldman/internal/version"
)

// Bot is the Discord transport around the dispatcher. It owns the
// gateway session, routes prefix commands, and forwards everything else
// to the brain.
type Bot struct {
	dg         *discordgo.Session
	cfg        *config.Config
	storage    *storage.Storage
	sessions   *brain.Store
	classifier *brain.Classifier
	dispatcher *brain.Dispatcher
	phrases    *brain.PhraseBook
	runescape  *runescape.Client
	github     *github.Client

	ctx context.Context

	mu    sync.Mutex
	voice map[string]*discordgo.VoiceConnection // key = text channel ID
}

// NewBot wires the brain, research chain and API clients together.
func NewBot(cfg *config.Config, store *storage.Storage) *Bot {
	phrases := brain.NewPhraseBook(rand.New(rand.NewSource(time.Now().UnixNano())))
	sessions := brain.NewStore(cfg.RecentLimit, cfg.ThoughtLimit)
	classifier := brain.NewClassifier()
	if cfg.FreezeClassifier {
		classifier.Freeze()
	}

	collaborator := research.NewChain().
		Add("duckduckgo", research.NewDuckDuckGoProvider()).
		Add("wiki", research.NewWikiProvider())

	b := &Bot{
		cfg:        cfg,
		storage:    store,
		sessions:   sessions,
		classifier: classifier,
		phrases:    phrases,
		runescape:  runescape.NewClient(),
		github:     github.NewClient(),
		voice:      make(map[string]*discordgo.VoiceConnection),
	}
	b.dispatcher = brain.NewDispatcher(brain.DispatcherOptions{
		Store:           sessions,
		Classifier:      classifier,
		Phrases:         phrases,
		Collaborator:    collaborator,
		Voice:           b,
		WakePhrases:     cfg.WakePhrases,
		SleepPhrase:     cfg.SleepPhrase,
		ResearchTimeout: cfg.ResearchTimeout,
		Train:           !cfg.FreezeClassifier,
	})
	return b
}

// Run opens the gateway and blocks until ctx is canceled.
func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx

	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg

	b.configureSession()
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	scheduler := b.startSweeper()
	defer scheduler.Stop()

	<-ctx.Done()
	log.Println("[INFO] Shutdown signal received. Cleaning up...")
	b.snapshotAwake()
	b.releaseAllVoice()
	return nil
}

func (b *Bot) configureSession() {
	// Handlers run on one goroutine in arrival order. The thought log and
	// message window are order-sensitive FIFOs, and replies for a channel
	// must go out in the order the messages came in, so a slow research
	// call may not let a later message in the same channel answer first.
	b.dg.SyncEvents = true

	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentMessageContent
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("[INFO] Logged in as %s (%s %s), serving %d guild(s)",
		r.User.Username, v.AppName, v.Version, len(r.Guilds))

	channels, err := b.storage.GetAwakeChannels()
	if err != nil {
		log.Println("[ERR] Restoring awake channels:", err)
		return
	}
	if len(channels) > 0 {
		b.sessions.RestoreAwake(channels)
		log.Printf("[INFO] Restored %d awake channel(s)", len(channels))
	}
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}
	if slices.Contains(b.cfg.GuildBlacklist, m.GuildID) {
		return
	}

	if b.sessions.IsAwake(m.ChannelID) && !m.Author.Bot {
		if strings.HasPrefix(m.Content, b.cfg.CommandPrefix) {
			b.runCommand(s, m, strings.TrimPrefix(m.Content, b.cfg.CommandPrefix))
			return
		}
		// The bare chat trigger works without the prefix.
		if rest, ok := strings.CutPrefix(strings.ToLower(m.Content), "github repo "); ok {
			b.runCommand(s, m, "github "+rest)
			return
		}
	}

	b.converse(s, m)
}

// runCommand parses "name args..." and runs the registered command.
func (b *Bot) runCommand(s *discordgo.Session, m *discordgo.MessageCreate, invocation string) {
	fields := strings.Fields(invocation)
	if len(fields) == 0 {
		return
	}
	name := strings.ToLower(fields[0])

	ctx := &command.MessageContext{
		Session:   s,
		Event:     m,
		Invoked:   name,
		Args:      fields[1:],
		Prefix:    b.cfg.CommandPrefix,
		Storage:   b.storage,
		RuneScape: b.runescape,
		GitHub:    b.github,
		Phrases:   b.phrases,
	}

	cmd, ok := command.Get(name)
	if !ok {
		_ = ctx.Reply(fmt.Sprintf("I know no trick called `%s`. Ask `%shelp` for my repertoire.", name, b.cfg.CommandPrefix))
		return
	}
	if err := cmd.Run(ctx); err != nil {
		log.Println("[ERR] Error running command:", err)
	}
}

// converse hands the message to the dispatcher and sends its replies.
func (b *Bot) converse(s *discordgo.Session, m *discordgo.MessageCreate) {
	if b.sessions.IsAwake(m.ChannelID) {
		// Research can take a few seconds; show the typing indicator.
		_ = s.ChannelTyping(m.ChannelID)
	}

	res := b.dispatcher.Dispatch(b.ctx, brain.Inbound{
		ChannelID:  m.ChannelID,
		AuthorID:   m.Author.ID,
		AuthorName: m.Author.Username,
		IsBot:      m.Author.Bot,
		Text:       m.Content,
		At:         messageTime(m),
	})

	for _, reply := range res.Replies {
		for _, chunk := range splitMessage(reply, 2000) {
			if _, err := s.ChannelMessageSend(m.ChannelID, chunk); err != nil {
				log.Println("[ERR] Failed to send reply:", err)
			}
		}
	}

	if res.Woke || res.Slept {
		b.snapshotAwake()
	}
	if res.Label == "voice" && !res.Slept && b.sessions.IsAwake(m.ChannelID) {
		joined, err := b.joinUserVoice(s, m.GuildID, m.ChannelID, m.Author.ID)
		switch {
		case err != nil:
			log.Println("[ERR] Voice join:", err)
		case joined:
			if _, err := s.ChannelMessageSend(m.ChannelID, brain.VoiceJoined); err != nil {
				log.Println("[ERR] Failed to send reply:", err)
			}
		}
	}
}

func messageTime(m *discordgo.MessageCreate) time.Time {
	if !m.Timestamp.IsZero() {
		return m.Timestamp
	}
	return time.Now()
}

func splitMessage(msg string, limit int) []string {
	var result []string
	for len(msg) > limit {
		cut := strings.LastIndex(msg[:limit], "\n")
		if cut == -1 {
			cut = limit
		}
		result = append(result, strings.TrimSpace(msg[:cut]))
		msg = strings.TrimSpace(msg[cut:])
	}
	if msg != "" {
		result = append(result, msg)
	}
	return result
}
