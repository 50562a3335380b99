package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiseoldman/internal/config"
)

// Replies for a channel must go out in arrival order, so handlers run
// synchronously instead of discordgo's default goroutine-per-event.
func TestConfigureSessionSerializesHandlers(t *testing.T) {
	b := &Bot{cfg: &config.Config{}, dg: &discordgo.Session{}}
	b.configureSession()

	assert.True(t, b.dg.SyncEvents)
	assert.NotZero(t, b.dg.Identify.Intents&discordgo.IntentsGuildMessages)
	assert.NotZero(t, b.dg.Identify.Intents&discordgo.IntentMessageContent)
	assert.NotZero(t, b.dg.Identify.Intents&discordgo.IntentsGuildVoiceStates)
}

func TestFindUserVoiceChannel(t *testing.T) {
	state := discordgo.NewState()
	require.NoError(t, state.GuildAdd(&discordgo.Guild{
		ID: "guild-1",
		VoiceStates: []*discordgo.VoiceState{
			{UserID: "user-1", ChannelID: "vc-1"},
			{UserID: "user-2", ChannelID: "vc-2"},
		},
	}))
	s := &discordgo.Session{State: state}

	channelID, err := findUserVoiceChannel(s, "guild-1", "user-2")
	require.NoError(t, err)
	assert.Equal(t, "vc-2", channelID)

	_, err = findUserVoiceChannel(s, "guild-1", "user-3")
	assert.Error(t, err)

	_, err = findUserVoiceChannel(s, "no-such-guild", "user-1")
	assert.Error(t, err)
}

func TestReleaseVoiceWithoutBindingIsNoop(t *testing.T) {
	b := &Bot{voice: map[string]*discordgo.VoiceConnection{}}
	assert.NoError(t, b.ReleaseVoice("chan-1"))
}

func TestSplitMessagePrefersLineBreaks(t *testing.T) {
	chunks := splitMessage("alpha\nbeta\ngamma", 11)
	require.Equal(t, []string{"alpha\nbeta", "gamma"}, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 11)
	}
}
