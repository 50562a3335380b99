package runescape

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"wiseoldman/pkg/retrylimit"
)

// Profile is the subset of a RuneMetrics profile the bot reports on.
type Profile struct {
	Name           string `json:"name"`
	Rank           string `json:"rank"`
	TotalSkill     int    `json:"totalskill"`
	TotalXP        int64  `json:"totalxp"`
	CombatLevel    int    `json:"combatlevel"`
	QuestsComplete int    `json:"questscomplete"`
	QuestsStarted  int    `json:"questsstarted"`
	LoggedIn       string `json:"loggedIn"`

	// Error is set by the API itself, e.g. NO_PROFILE or PROFILE_PRIVATE.
	Error string `json:"error"`
}

// ErrPrivateProfile means the player exists but hides their RuneMetrics data.
var ErrPrivateProfile = fmt.Errorf("profile is private")

// RuneMetrics fetches a player's profile summary.
func (c *Client) RuneMetrics(ctx context.Context, player string) (*Profile, error) {
	player = strings.TrimSpace(player)
	if player == "" {
		return nil, fmt.Errorf("empty player name")
	}

	params := url.Values{}
	params.Set("user", player)
	params.Set("activities", "0")

	var profile Profile
	err := c.fetch(ctx, c.runemetricsBase+"?"+params.Encode(), func(body []byte) error {
		if err := json.Unmarshal(body, &profile); err != nil {
			return &retrylimit.FatalError{Err: fmt.Errorf("runemetrics unmarshal: %w", err)}
		}
		switch profile.Error {
		case "":
			return nil
		case "NO_PROFILE", "NOT_A_MEMBER":
			return &retrylimit.FatalError{Err: ErrNotFound}
		case "PROFILE_PRIVATE":
			return &retrylimit.FatalError{Err: ErrPrivateProfile}
		default:
			return &retrylimit.FatalError{Err: fmt.Errorf("runemetrics error: %s", profile.Error)}
		}
	})
	if err != nil {
		return nil, fmt.Errorf("runemetrics %q: %w", player, err)
	}
	return &profile, nil
}
