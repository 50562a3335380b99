package tip

import (
	"fmt"

	"wiseoldman/internal/command"
)

type TipCommand struct{}

func (c *TipCommand) Name() string        { return "tip" }
func (c *TipCommand) Description() string { return "Get a random RuneScape 3 tip" }
func (c *TipCommand) Aliases() []string   { return []string{} }

func (c *TipCommand) Run(ctx interface{}) error {
	msg, ok := ctx.(*command.MessageContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}
	return msg.Reply("A word of advice, young one: " + msg.Phrases.Tip())
}

func init() {
	command.Register(command.WithCommandLogger(&TipCommand{}))
}
