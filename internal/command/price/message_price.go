package price

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

type PriceCommand struct{}

func (c *PriceCommand) Name() string        { return "price" }
func (c *PriceCommand) Description() string { return "Check the Grand Exchange price of an item" }
func (c *PriceCommand) Aliases() []string   { return []string{"ge"} }

func (c *PriceCommand) Run(ctx interface{}) error {
	msg, ok := ctx.(*command.MessageContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}
	item := strings.Join(msg.Args, " ")
	if strings.TrimSpace(item) == "" {
		return msg.Reply(fmt.Sprintf("Which item, friend? Try `%sprice Dragon claws`.", msg.Prefix))
	}

	lookupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	quote, err := msg.RuneScape.Price(lookupCtx, item)
	switch {
	case errors.Is(err, runescape.ErrNotFound):
		return msg.Reply(fmt.Sprintf("The Grand Exchange clerks know of no item called **%s**. Exact names, young one.", item))
	case err != nil:
		log.Printf("[ERR] Price lookup %q: %v", item, err)
		return msg.Reply("The Grand Exchange ledgers are closed at the moment. Try again shortly.")
	}

	return msg.Reply(fmt.Sprintf("**%s** trades at **%s gp** on the Grand Exchange (volume %d).",
		quote.Name, formatGP(quote.Price), quote.Volume))
}

func formatGP(gp int64) string {
	switch {
	case gp >= 1_000_000_000:
		return fmt.Sprintf("%.2fb", float64(gp)/1_000_000_000)
	case gp >= 1_000_000:
		return fmt.Sprintf("%.2fm", float64(gp)/1_000_000)
	case gp >= 10_000:
		return fmt.Sprintf("%.1fk", float64(gp)/1_000)
	default:
		return fmt.Sprintf("%d", gp)
	}
}

func init() {
	command.Register(command.WithCommandLogger(&PriceCommand{}))
}
