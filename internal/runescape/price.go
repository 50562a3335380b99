package runescape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"wiseoldman/pkg/retrylimit"
)

// ItemPrice is the latest Grand Exchange quote for one item.
type ItemPrice struct {
	Name   string
	ID     int
	Price  int64
	Volume int64
	At     time.Time
}

// Price fetches the latest GE quote by exact item name. Unknown items
// return ErrNotFound.
func (c *Client) Price(ctx context.Context, item string) (*ItemPrice, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return nil, fmt.Errorf("empty item name")
	}

	var out *ItemPrice
	err := c.fetch(ctx, c.exchangeBase+"?name="+url.QueryEscape(item), func(body []byte) error {
		// Response is keyed by item name, alongside success/error fields.
		// Field types are inconsistent upstream (id arrives as a string),
		// so entries are decoded leniently.
		var parsed map[string]json.RawMessage
		if err := json.Unmarshal(body, &parsed); err != nil {
			return &retrylimit.FatalError{Err: fmt.Errorf("exchange unmarshal: %w", err)}
		}
		for name, raw := range parsed {
			if name == "success" || name == "error" || !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
				continue
			}
			var entry struct {
				ID        json.RawMessage `json:"id"`
				Price     json.Number     `json:"price"`
				Volume    json.Number     `json:"volume"`
				Timestamp json.RawMessage `json:"timestamp"`
			}
			if err := json.Unmarshal(raw, &entry); err != nil {
				return &retrylimit.FatalError{Err: fmt.Errorf("exchange entry unmarshal: %w", err)}
			}
			price, _ := entry.Price.Int64()
			volume, _ := entry.Volume.Int64()
			out = &ItemPrice{
				Name:   name,
				ID:     lenientInt(entry.ID),
				Price:  price,
				Volume: volume,
				At:     lenientTime(entry.Timestamp),
			}
			return nil
		}
		return &retrylimit.FatalError{Err: ErrNotFound}
	})
	if err != nil {
		return nil, fmt.Errorf("exchange %q: %w", item, err)
	}
	return out, nil
}

// lenientInt accepts both 14484 and "14484".
func lenientInt(raw json.RawMessage) int {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// lenientTime accepts unix milliseconds or an RFC 3339 string.
func lenientTime(raw json.RawMessage) time.Time {
	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, `"`) {
		t, err := time.Parse(time.RFC3339, strings.Trim(s, `"`))
		if err != nil {
			return time.Time{}
		}
		return t
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
