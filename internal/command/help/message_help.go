package help

import (
	"fmt"
	"sort"
	"strings"

	"wiseoldman/internal/command"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "List available commands" }
func (c *HelpCommand) Aliases() []string   { return []string{"commands"} }

func (c *HelpCommand) Run(ctx interface{}) error {
	msg, ok := ctx.(*command.MessageContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	cmds := command.All()
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })

	var b strings.Builder
	b.WriteString("The Wise Old Man's repertoire:\n")
	for _, cmd := range cmds {
		fmt.Fprintf(&b, "`%s%s` - %s\n", msg.Prefix, cmd.Name(), cmd.Description())
	}
	b.WriteString("\nSay my name to wake me in a channel, or tell me to sleep when you've had enough wisdom.")
	return msg.Reply(b.String())
}

func init() {
	command.Register(command.WithCommandLogger(&HelpCommand{}))
}
