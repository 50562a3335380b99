package discord

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

// joinUserVoice connects to the voice channel the user currently sits in
// and binds the connection to the invoking text channel. Returns false
// when already connected there.
func (b *Bot) joinUserVoice(s *discordgo.Session, guildID, textChannelID, userID string) (bool, error) {
	if guildID == "" {
		return false, fmt.Errorf("no guild for voice join")
	}
	voiceChannelID, err := findUserVoiceChannel(s, guildID, userID)
	if err != nil {
		return false, err
	}

	b.mu.Lock()
	existing := b.voice[textChannelID]
	b.mu.Unlock()
	if existing != nil && existing.ChannelID == voiceChannelID {
		return false, nil
	}

	vc, err := s.ChannelVoiceJoin(guildID, voiceChannelID, false, true)
	if err != nil {
		return false, fmt.Errorf("voice join: %w", err)
	}

	b.mu.Lock()
	b.voice[textChannelID] = vc
	b.mu.Unlock()
	log.Printf("[INFO] Joined voice channel %s (via %s)", voiceChannelID, textChannelID)
	return true, nil
}

// ReleaseVoice drops the voice connection bound to a text channel, if
// any. Called by the dispatcher when the channel goes to sleep.
func (b *Bot) ReleaseVoice(channelID string) error {
	b.mu.Lock()
	vc := b.voice[channelID]
	delete(b.voice, channelID)
	b.mu.Unlock()

	if vc == nil {
		return nil
	}
	return vc.Disconnect()
}

func (b *Bot) releaseAllVoice() {
	b.mu.Lock()
	conns := b.voice
	b.voice = make(map[string]*discordgo.VoiceConnection)
	b.mu.Unlock()

	for channelID, vc := range conns {
		if err := vc.Disconnect(); err != nil {
			log.Printf("[ERR] Voice disconnect for %s: %v", channelID, err)
		}
	}
}

func findUserVoiceChannel(s *discordgo.Session, guildID, userID string) (string, error) {
	guild, err := s.State.Guild(guildID)
	if err != nil {
		return "", fmt.Errorf("guild state: %w", err)
	}
	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID {
			return vs.ChannelID, nil
		}
	}
	return "", fmt.Errorf("user %s is not in a voice channel", userID)
}
