package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"gonotes/internal/gateway/app/dto"
)

const (
	flagSearch   = "search"
	flagArchived = "archived"
	flagTag      = "tag"
	flagTitle    = "title"
	flagContent  = "content"
	flagColor    = "color"
	flagNoTags   = "no-tags"
)

// ErrNoteIDRequired возвращается, если команде не передан идентификатор заметки.
var ErrNoteIDRequired = errors.New("note id is required")

func (a *App) notesCommand() *cli.Command {
	return &cli.Command{
		Name:  "notes",
		Usage: "manage notes",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list notes",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagSearch, Aliases: []string{"s"}, Usage: "substring of title, content or tag"},
					&cli.BoolFlag{Name: flagArchived, Usage: "show archived notes"},
					&cli.StringFlag{Name: flagTag, Usage: "show notes with the tag"},
				},
				Action: a.listNotes,
			},
			{
				Name:   "tags",
				Usage:  "list tags in use",
				Action: a.listTags,
			},
			{
				Name:      "show",
				Usage:     "show a note",
				ArgsUsage: "ID",
				Action:    a.showNote,
			},
			{
				Name:  "create",
				Usage: "create a note",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagTitle, Aliases: []string{"t"}, Usage: "note title (prompted when omitted)"},
					&cli.StringFlag{Name: flagContent, Aliases: []string{"c"}, Usage: "note content (prompted when omitted)"},
					&cli.StringSliceFlag{Name: flagTag, Usage: "tag, may be repeated"},
					&cli.StringFlag{Name: flagColor, Usage: "display color"},
					&cli.BoolFlag{Name: flagArchived, Usage: "create archived"},
				},
				Action: a.createNote,
			},
			{
				Name:      "edit",
				Usage:     "change fields of a note",
				ArgsUsage: "ID",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagTitle, Aliases: []string{"t"}, Usage: "new title"},
					&cli.StringFlag{Name: flagContent, Aliases: []string{"c"}, Usage: "new content"},
					&cli.StringSliceFlag{Name: flagTag, Usage: "replace tags, may be repeated"},
					&cli.BoolFlag{Name: flagNoTags, Usage: "remove all tags"},
					&cli.StringFlag{Name: flagColor, Usage: "new display color"},
				},
				Action: a.editNote,
			},
			{
				Name:      "delete",
				Usage:     "delete a note",
				ArgsUsage: "ID",
				Action:    a.deleteNote,
			},
			{
				Name:      "archive",
				Usage:     "archive or unarchive a note",
				ArgsUsage: "ID",
				Action:    a.toggleArchive,
			},
		},
	}
}

func noteID(c *cli.Context) (string, error) {
	id := strings.TrimSpace(c.Args().First())
	if id == "" {
		return "", ErrNoteIDRequired
	}
	return id, nil
}

func (a *App) fetchNotes(c *cli.Context) ([]dto.NoteResponse, error) {
	user, err := a.requireUser(c.Context)
	if err != nil {
		return nil, err
	}
	return a.client.ListNotes(c.Context, user.ID)
}

func (a *App) listNotes(c *cli.Context) error {
	notes, err := a.fetchNotes(c)
	if err != nil {
		return err
	}

	filter := Filter{
		Search:   c.String(flagSearch),
		Archived: c.Bool(flagArchived),
		Tag:      c.String(flagTag),
	}
	notes = filter.Apply(notes)
	if len(notes) == 0 {
		a.printf("No notes found\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTAGS\tLAST EDITED")
	for _, n := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.ID, n.Title, strings.Join(n.Tags, ", "), n.LastEdited)
	}
	return tw.Flush()
}

func (a *App) listTags(c *cli.Context) error {
	notes, err := a.fetchNotes(c)
	if err != nil {
		return err
	}
	for _, tag := range AllTags(notes) {
		a.printf("%s\n", tag)
	}
	return nil
}

func (a *App) showNote(c *cli.Context) error {
	id, err := noteID(c)
	if err != nil {
		return err
	}
	if _, err := a.requireUser(c.Context); err != nil {
		return err
	}

	note, err := a.client.GetNote(c.Context, id)
	if err != nil {
		return err
	}
	a.printNote(note)
	return nil
}

func (a *App) createNote(c *cli.Context) error {
	user, err := a.requireUser(c.Context)
	if err != nil {
		return err
	}

	title := c.String(flagTitle)
	if !c.IsSet(flagTitle) {
		if title, err = promptLine(a.in, a.out, "Title"); err != nil {
			return err
		}
	}
	content := c.String(flagContent)
	if !c.IsSet(flagContent) {
		if content, err = promptMultiline(a.in, a.out, "Content"); err != nil {
			return err
		}
	}

	note, err := a.client.CreateNote(c.Context, dto.CreateNoteRequest{
		Title:      title,
		Content:    content,
		Tags:       c.StringSlice(flagTag),
		IsArchived: c.Bool(flagArchived),
		Color:      c.String(flagColor),
		UserID:     user.ID,
	})
	if err != nil {
		return err
	}

	a.printf("Created note %s\n", note.ID)
	return nil
}

func (a *App) editNote(c *cli.Context) error {
	id, err := noteID(c)
	if err != nil {
		return err
	}
	if _, err := a.requireUser(c.Context); err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if c.IsSet(flagTitle) {
		title := c.String(flagTitle)
		req.Title = &title
	}
	if c.IsSet(flagContent) {
		content := c.String(flagContent)
		req.Content = &content
	}
	if c.IsSet(flagColor) {
		color := c.String(flagColor)
		req.Color = &color
	}
	switch {
	case c.Bool(flagNoTags):
		tags := []string{}
		req.Tags = &tags
	case c.IsSet(flagTag):
		tags := c.StringSlice(flagTag)
		req.Tags = &tags
	}

	note, err := a.client.UpdateNote(c.Context, id, req)
	if err != nil {
		return err
	}

	a.printf("Updated note %s\n", note.ID)
	return nil
}

func (a *App) deleteNote(c *cli.Context) error {
	id, err := noteID(c)
	if err != nil {
		return err
	}
	if _, err := a.requireUser(c.Context); err != nil {
		return err
	}

	msg, err := a.client.DeleteNote(c.Context, id)
	if err != nil {
		return err
	}
	a.printf("%s\n", msg)
	return nil
}

func (a *App) toggleArchive(c *cli.Context) error {
	id, err := noteID(c)
	if err != nil {
		return err
	}
	if _, err := a.requireUser(c.Context); err != nil {
		return err
	}

	note, err := a.client.ToggleArchive(c.Context, id)
	if err != nil {
		return err
	}

	state := "unarchived"
	if note.IsArchived {
		state = "archived"
	}
	a.printf("Note %s %s\n", note.ID, state)
	return nil
}

func (a *App) printNote(n *dto.NoteResponse) {
	archived := "no"
	if n.IsArchived {
		archived = "yes"
	}

	a.printf("Title:       %s\n", n.Title)
	a.printf("Tags:        %s\n", strings.Join(n.Tags, ", "))
	a.printf("Last edited: %s\n", n.LastEdited)
	a.printf("Archived:    %s\n", archived)
	if n.Color != "" {
		a.printf("Color:       %s\n", n.Color)
	}
	a.printf("\n%s\n", n.Content)
}
