package ping

import (
	"fmt"

	"wiseoldman/internal/command"
)

type PingCommand struct{}

func (c *PingCommand) Name() string        { return "ping" }
func (c *PingCommand) Description() string { return "Check bot latency" }
func (c *PingCommand) Aliases() []string   { return []string{} }

func (c *PingCommand) Run(ctx interface{}) error {
	msg, ok := ctx.(*command.MessageContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	latency := msg.Session.HeartbeatLatency().Milliseconds()
	return msg.Reply(fmt.Sprintf("🏓 Pong! %dms", latency))
}

func init() {
	command.Register(command.WithCommandLogger(&PingCommand{}))
}
