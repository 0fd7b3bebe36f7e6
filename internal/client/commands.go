package client

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MKhiriev/ontime/models"
)

func (a *App) registerCommands() map[string]command {
	return map[string]command{
		"register":  {usage: "<username> <email> <password>", run: a.register},
		"login":     {usage: "[-copy] <username> <password>", run: a.login},
		"me":        {usage: "", run: a.me},
		"logout":    {usage: "", run: a.logout},
		"version":   {usage: "", run: a.version},
		"todos":     {usage: "[-skip n] [-limit n]", run: a.todos},
		"add-todo":  {usage: "[-due YYYY-MM-DD] <task>", run: a.addTodo},
		"edit-todo": {usage: "<id> <task>", run: a.editTodo},
		"done":      {usage: "<id>", run: a.toggleTodo},
		"rm-todo":   {usage: "<id>", run: a.removeTodo},
		"notes":     {usage: "[-skip n] [-limit n]", run: a.notes},
		"add-note":  {usage: "<content>", run: a.addNote},
		"edit-note": {usage: "<id> <content>", run: a.editNote},
		"rm-note":   {usage: "<id>", run: a.removeNote},
	}
}

func (a *App) register(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return usageError("register <username> <email> <password>")
	}

	user, err := a.adapter.Register(ctx, models.RegisterRequest{
		Username: args[0],
		Email:    args[1],
		Password: args[2],
	})
	if err != nil {
		return err
	}

	a.printf("registered %s (id %d)\n", user.Username, user.ID)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	copyToken := fs.Bool("copy", false, "copy the token to the clipboard")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() != 2 {
		return usageError("login [-copy] <username> <password>")
	}

	token, err := a.adapter.Login(ctx, fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}

	if *copyToken {
		if err = a.copyToClipboard(token.AccessToken); err != nil {
			a.logger.Warn().Err(err).Msg("could not copy token to clipboard")
		}
	}

	a.printf("%s\n", token.AccessToken)
	return nil
}

func (a *App) me(ctx context.Context, _ []string) error {
	user, err := a.adapter.Me(ctx)
	if err != nil {
		return err
	}

	a.printf("%s\n", renderUser(user))
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.adapter.Logout(ctx); err != nil {
		return err
	}

	a.printf("logged out; discard your token\n")
	return nil
}

func (a *App) version(ctx context.Context, _ []string) error {
	v, err := a.adapter.ServerVersion(ctx)
	if err != nil {
		return err
	}

	a.printf("server version: %s\n", v)
	return nil
}

func (a *App) todos(ctx context.Context, args []string) error {
	page, err := parsePageFlags("todos", args)
	if err != nil {
		return err
	}

	todos, err := a.adapter.ListTodos(ctx, page)
	if err != nil {
		return err
	}

	a.printf("%s\n", renderTodos(todos))
	return nil
}

func (a *App) addTodo(ctx context.Context, args []string) error {
	fs := newFlagSet("add-todo")
	due := fs.String("due", "", "due date, YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() == 0 {
		return usageError("add-todo [-due YYYY-MM-DD] <task>")
	}

	req := models.TodoCreate{Task: strings.Join(fs.Args(), " ")}
	if *due != "" {
		d, err := models.ParseDate(*due)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		req.DueDate = &d
	}

	todo, err := a.adapter.CreateTodo(ctx, req)
	if err != nil {
		return err
	}

	a.printf("%s\n", renderTodos([]models.Todo{todo}))
	return nil
}

func (a *App) editTodo(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usageError("edit-todo <id> <task>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	task := strings.Join(args[1:], " ")
	todo, err := a.adapter.UpdateTodo(ctx, id, models.TodoUpdate{Task: &task})
	if err != nil {
		return err
	}

	a.printf("%s\n", renderTodos([]models.Todo{todo}))
	return nil
}

func (a *App) toggleTodo(ctx context.Context, args []string) error {
	id, err := singleID("done", args)
	if err != nil {
		return err
	}

	todo, err := a.adapter.ToggleTodo(ctx, id)
	if err != nil {
		return err
	}

	a.printf("%s\n", renderTodos([]models.Todo{todo}))
	return nil
}

func (a *App) removeTodo(ctx context.Context, args []string) error {
	id, err := singleID("rm-todo", args)
	if err != nil {
		return err
	}

	if err = a.adapter.DeleteTodo(ctx, id); err != nil {
		return err
	}

	a.printf("todo %d deleted\n", id)
	return nil
}

func (a *App) notes(ctx context.Context, args []string) error {
	page, err := parsePageFlags("notes", args)
	if err != nil {
		return err
	}

	notes, err := a.adapter.ListNotes(ctx, page)
	if err != nil {
		return err
	}

	a.printf("%s\n", renderNotes(notes))
	return nil
}

func (a *App) addNote(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("add-note <content>")
	}

	note, err := a.adapter.CreateNote(ctx, models.NoteCreate{Content: strings.Join(args, " ")})
	if err != nil {
		return err
	}

	a.printf("%s\n", renderNotes([]models.Note{note}))
	return nil
}

func (a *App) editNote(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usageError("edit-note <id> <content>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	content := strings.Join(args[1:], " ")
	note, err := a.adapter.UpdateNote(ctx, id, models.NoteUpdate{Content: &content})
	if err != nil {
		return err
	}

	a.printf("%s\n", renderNotes([]models.Note{note}))
	return nil
}

func (a *App) removeNote(ctx context.Context, args []string) error {
	id, err := singleID("rm-note", args)
	if err != nil {
		return err
	}

	if err = a.adapter.DeleteNote(ctx, id); err != nil {
		return err
	}

	a.printf("note %d deleted\n", id)
	return nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parsePageFlags(name string, args []string) (models.Page, error) {
	fs := newFlagSet(name)
	skip := fs.Uint64("skip", 0, "items to skip")
	limit := fs.Uint64("limit", 0, "maximum items to return")
	if err := fs.Parse(args); err != nil {
		return models.Page{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() != 0 {
		return models.Page{}, usageError(name + " [-skip n] [-limit n]")
	}

	return models.Page{Skip: *skip, Limit: *limit}, nil
}

func singleID(name string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, usageError(name + " <id>")
	}
	return parseID(args[0])
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer, got %q", ErrUsage, raw)
	}
	return id, nil
}

func usageError(usage string) error {
	return fmt.Errorf("%w: %s", ErrUsage, usage)
}
