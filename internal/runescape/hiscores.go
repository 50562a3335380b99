package runescape

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// skillNames follows the column order of the hiscores lite feed.
var skillNames = []string{
	"Overall", "Attack", "Defence", "Strength", "Constitution", "Ranged",
	"Prayer", "Magic", "Cooking", "Woodcutting", "Fletching", "Fishing",
	"Firemaking", "Crafting", "Smithing", "Mining", "Herblore", "Agility",
	"Thieving", "Slayer", "Farming", "Runecrafting", "Hunter",
	"Construction", "Summoning", "Dungeoneering", "Divination",
	"Invention", "Archaeology", "Necromancy",
}

// SkillRank is one row of the hiscores feed. Rank and XP are -1 when the
// player is unranked in that skill.
type SkillRank struct {
	Skill string
	Rank  int64
	Level int
	XP    int64
}

// Hiscores fetches the ranked skill table for a player. Unknown players
// return ErrNotFound.
func (c *Client) Hiscores(ctx context.Context, player string) ([]SkillRank, error) {
	player = strings.TrimSpace(player)
	if player == "" {
		return nil, fmt.Errorf("empty player name")
	}

	var out []SkillRank
	err := c.fetch(ctx, c.hiscoresBase+"?player="+url.QueryEscape(player), func(body []byte) error {
		parsed, err := parseHiscores(string(body))
		if err != nil {
			return err
		}
		out = parsed
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("hiscores %q: %w", player, err)
	}
	return out, nil
}

// parseHiscores reads the "rank,level,xp" CSV lines. Lines beyond the
// known skill list are minigame scores and are skipped.
func parseHiscores(raw string) ([]SkillRank, error) {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty hiscores response")
	}

	out := make([]SkillRank, 0, len(skillNames))
	for i, name := range skillNames {
		if i >= len(lines) {
			break
		}
		fields := strings.Split(strings.TrimSpace(lines[i]), ",")
		if len(fields) != 3 {
			return nil, fmt.Errorf("malformed hiscores line %d: %q", i, lines[i])
		}
		rank, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("hiscores line %d rank: %w", i, err)
		}
		level, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("hiscores line %d level: %w", i, err)
		}
		xp, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("hiscores line %d xp: %w", i, err)
		}
		out = append(out, SkillRank{Skill: name, Rank: rank, Level: level, XP: xp})
	}
	return out, nil
}
