package command

import "log"

type Middleware func(Command) Command

type wrappedCommand struct {
	Command
	wrap func(ctx interface{}) error
}

func (w *wrappedCommand) Run(ctx interface{}) error {
	return w.wrap(ctx)
}

// WithGuildOnly rejects direct-message invocations.
func WithGuildOnly(cmd Command) Command {
	return &wrappedCommand{
		Command: cmd,
		wrap: func(ctx interface{}) error {
			if v, ok := ctx.(*MessageContext); ok {
				if v.Event.GuildID == "" {
					return v.Reply("This command only works inside a server.")
				}
			}
			return cmd.Run(ctx)
		},
	}
}

// WithCommandLogger logs each invocation before running it.
func WithCommandLogger(cmd Command) Command {
	return &wrappedCommand{
		Command: cmd,
		wrap: func(ctx interface{}) error {
			if v, ok := ctx.(*MessageContext); ok {
				log.Printf("[CMD] %s by %s in %s", v.Invoked, v.Event.Author.Username, v.Event.ChannelID)
			}
			return cmd.Run(ctx)
		},
	}
}
