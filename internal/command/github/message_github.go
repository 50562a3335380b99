package github

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"wiseoldman/internal/command"
	gh "wiseoldman/internal/github"
)

type GithubCommand struct{}

func (c *GithubCommand) Name() string        { return "github" }
func (c *GithubCommand) Description() string { return "Look up a GitHub repository (owner/name)" }
func (c *GithubCommand) Aliases() []string   { return []string{} }

func (c *GithubCommand) Run(ctx interface{}) error {
	msg, ok := ctx.(*command.MessageContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	// Accept both "!github owner/name" and the chat form "github repo owner/name".
	args := msg.Args
	if len(args) > 0 && args[0] == "repo" {
		args = args[1:]
	}
	if len(args) == 0 || !strings.Contains(args[0], "/") {
		return msg.Reply(fmt.Sprintf("Give me a repository as owner/name, like `%sgithub bwmarrin/discordgo`.", msg.Prefix))
	}
	parts := strings.SplitN(args[0], "/", 2)

	lookupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := msg.GitHub.Lookup(lookupCtx, parts[0], parts[1])
	switch {
	case errors.Is(err, gh.ErrNotFound):
		return msg.Reply(fmt.Sprintf("No scroll by the name **%s** exists in the great library of GitHub.", args[0]))
	case err != nil:
		log.Printf("[ERR] GitHub lookup %q: %v", args[0], err)
		return msg.Reply("The great library is closed at this hour. Try again later.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**", repo.FullName)
	if repo.Language != "" {
		fmt.Fprintf(&b, " (%s)", repo.Language)
	}
	fmt.Fprintf(&b, "\n⭐ %d stars, %d forks\n", repo.Stars, repo.Forks)
	if repo.Description != "" {
		b.WriteString(repo.Description + "\n")
	}
	b.WriteString(repo.HTMLURL)
	return msg.Reply(b.String())
}

func init() {
	command.Register(command.WithCommandLogger(&GithubCommand{}))
}
