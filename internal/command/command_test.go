package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommand struct {
	name    string
	aliases []string
	ran     int
}

func (c *fakeCommand) Name() string              { return c.name }
func (c *fakeCommand) Description() string       { return "fake" }
func (c *fakeCommand) Aliases() []string         { return c.aliases }
func (c *fakeCommand) Run(ctx interface{}) error { c.ran++; return nil }

func TestRegistryLookupByNameAndAlias(t *testing.T) {
	cmd := &fakeCommand{name: "lookup-test", aliases: []string{"lt"}}
	Register(cmd)

	got, ok := Get("lookup-test")
	require.True(t, ok)
	assert.Equal(t, cmd, got)

	got, ok = Get("lt")
	require.True(t, ok)
	assert.Equal(t, cmd, got)

	_, ok = Get("no-such-command")
	assert.False(t, ok)
}

func TestRegistryAllDeduplicatesAliases(t *testing.T) {
	Register(&fakeCommand{name: "dedup-test", aliases: []string{"dd1", "dd2"}})

	seen := 0
	for _, cmd := range All() {
		if cmd.Name() == "dedup-test" {
			seen++
		}
	}
	assert.Equal(t, 1, seen)
}

func TestSplitMessage(t *testing.T) {
	assert.Equal(t, []string{"short"}, splitMessage("short", 2000))
	assert.Empty(t, splitMessage("", 2000))

	chunks := splitMessage("line one\nline two\nline three", 12)
	require.True(t, len(chunks) > 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 12)
	}
	assert.Equal(t, "line one", chunks[0])
}
