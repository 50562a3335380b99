package player

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"wiseoldman/internal/command"
	"wiseoldman/internal/runescape"
)

type PlayerCommand struct{}

func (c *PlayerCommand) Name() string        { return "player" }
func (c *PlayerCommand) Description() string { return "Look up a RuneScape 3 player" }
func (c *PlayerCommand) Aliases() []string   { return []string{"stats", "hiscores"} }

func (c *PlayerCommand) Run(ctx interface{}) error {
	msg, ok := ctx.(*command.MessageContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}
	name := strings.Join(msg.Args, " ")
	if strings.TrimSpace(name) == "" {
		return msg.Reply(fmt.Sprintf("Whom shall I look up? Try `%splayer Zezima`.", msg.Prefix))
	}

	lookupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	profile, err := msg.RuneScape.RuneMetrics(lookupCtx, name)
	switch {
	case errors.Is(err, runescape.ErrNotFound):
		return msg.Reply(fmt.Sprintf("I've consulted my dusty tomes, but no adventurer named **%s** is recorded in them.", name))
	case errors.Is(err, runescape.ErrPrivateProfile):
		// The hiscores feed still lists private profiles.
		if ranks, hsErr := msg.RuneScape.Hiscores(lookupCtx, name); hsErr == nil && len(ranks) > 0 {
			overall := ranks[0]
			return msg.Reply(fmt.Sprintf(
				"**%s** keeps their RuneMetrics hidden, but the hiscores tell me: overall rank %d at level %d with %s XP.",
				name, overall.Rank, overall.Level, formatXP(overall.XP)))
		}
		return msg.Reply(fmt.Sprintf("**%s** keeps their deeds hidden from prying eyes. A private profile, alas.", name))
	case err != nil:
		log.Printf("[ERR] Player lookup %q: %v", name, err)
		return msg.Reply("My scrying pool is cloudy. Try again in a moment.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s** of Gielinor:\n", profile.Name)
	fmt.Fprintf(&b, "Combat level %d, total level %d (%s XP), rank %s\n",
		profile.CombatLevel, profile.TotalSkill, formatXP(profile.TotalXP), profile.Rank)
	fmt.Fprintf(&b, "Quests complete: %d", profile.QuestsComplete)

	// Hiscores add the overall rank detail; failures here only cost the footer.
	if ranks, err := msg.RuneScape.Hiscores(lookupCtx, name); err == nil && len(ranks) > 0 {
		overall := ranks[0]
		fmt.Fprintf(&b, "\nHiscores: overall rank %d at level %d", overall.Rank, overall.Level)
	}

	return msg.Reply(b.String())
}

// formatXP groups digits so 4084529300 reads as 4,084,529,300.
func formatXP(xp int64) string {
	s := fmt.Sprintf("%d", xp)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(parts, ",")
}

func init() {
	command.Register(command.WithCommandLogger(&PlayerCommand{}))
}
