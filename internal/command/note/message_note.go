package note

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"wiseoldman/internal/command"
	"wiseoldman/internal/storage"
)

// NoteCommand saves and recalls per-user notes. Invoked as "note" it
// saves; as "notes" it lists what the author has stored.
type NoteCommand struct{}

func (c *NoteCommand) Name() string        { return "note" }
func (c *NoteCommand) Description() string { return "Save a note, or `notes` to read them back" }
func (c *NoteCommand) Aliases() []string   { return []string{"notes"} }

func (c *NoteCommand) Run(ctx interface{}) error {
	msg, ok := ctx.(*command.MessageContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}
	if msg.Invoked == "notes" || len(msg.Args) == 0 {
		return c.list(msg)
	}
	return c.save(msg, strings.Join(msg.Args, " "))
}

func (c *NoteCommand) save(msg *command.MessageContext, text string) error {
	err := msg.Storage.AppendNote(msg.Event.GuildID, storage.Note{
		ID:         uuid.NewString(),
		AuthorID:   msg.Event.Author.ID,
		AuthorName: msg.Event.Author.Username,
		Text:       text,
		Datetime:   time.Now(),
	})
	if err != nil {
		log.Printf("[ERR] Note save for %s: %v", msg.Event.Author.ID, err)
		return msg.Reply("My quill snapped. The note was not saved.")
	}
	return msg.Reply("Noted in my ledger. I shall remember it for you.")
}

func (c *NoteCommand) list(msg *command.MessageContext) error {
	notes, err := msg.Storage.FetchNotes(msg.Event.GuildID, msg.Event.Author.ID)
	if err != nil {
		log.Printf("[ERR] Note fetch for %s: %v", msg.Event.Author.ID, err)
		return msg.Reply("My ledger pages are stuck together. Try again shortly.")
	}
	if len(notes) == 0 {
		return msg.Reply(fmt.Sprintf("Your page in my ledger is blank. Write something with `%snote <text>`.", msg.Prefix))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your notes, %s:\n", msg.Event.Author.Username)
	for i, n := range notes {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, n.Datetime.Format("2006-01-02"), n.Text)
	}
	return msg.Reply(b.String())
}

func init() {
	command.Register(command.WithCommandLogger(command.WithGuildOnly(&NoteCommand{})))
}
