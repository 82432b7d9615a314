package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/notelog/backend/internal/client"
	"github.com/notelog/backend/internal/model"
	"github.com/spf13/cobra"
)

// resourceCmd - notes/todos/contacts/custom-notes 공통 list/add/edit/rm 서브커맨드
type resourceCmd[T, C, U any] struct {
	use      string
	singular string
	api      func(*client.Client) *client.Resource[T, C, U]
	// bindCreate/bindUpdate는 플래그를 등록하고 요청을 만드는 함수를 돌려준다
	bindCreate func(cmd *cobra.Command) func() (C, error)
	bindUpdate func(cmd *cobra.Command) func() (U, error)
	id         func(*T) uuid.UUID
	print      func(w io.Writer, list []T)
}

func (r resourceCmd[T, C, U]) build(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   r.use,
		Short: "Manage " + r.use,
	}

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List " + r.use,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireSession(); err != nil {
				return err
			}
			items, err := r.api(app.api).List(ctx)
			if err != nil {
				return app.handleAPIError(ctx, err)
			}
			r.print(app.out, items)
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Create a " + r.singular,
		Args:  cobra.NoArgs,
	}
	buildCreate := r.bindCreate(add)
	add.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := app.requireSession(); err != nil {
			return err
		}
		req, err := buildCreate()
		if err != nil {
			return err
		}
		rec, err := r.api(app.api).Create(ctx, req)
		if err != nil {
			return app.handleAPIError(ctx, err)
		}
		fmt.Fprintf(app.out, "Created %s %s\n", r.singular, r.id(rec))
		return nil
	}

	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a " + r.singular,
		Args:  cobra.ExactArgs(1),
	}
	buildUpdate := r.bindUpdate(edit)
	edit.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := app.requireSession(); err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		req, err := buildUpdate()
		if err != nil {
			return err
		}
		rec, err := r.api(app.api).Update(ctx, id, req)
		if err != nil {
			return app.handleAPIError(ctx, err)
		}
		fmt.Fprintf(app.out, "Updated %s %s\n", r.singular, r.id(rec))
		return nil
	}

	rm := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a " + r.singular,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireSession(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := r.api(app.api).Delete(ctx, id); err != nil {
				return app.handleAPIError(ctx, err)
			}
			fmt.Fprintf(app.out, "Deleted %s %s\n", r.singular, id)
			return nil
		},
	}

	root.AddCommand(list, add, edit, rm)
	return root
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// changed - 명시적으로 넘긴 플래그만 부분 수정에 포함한다
func changed(cmd *cobra.Command, name string, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func newNotesCmd(app *App) *cobra.Command {
	return resourceCmd[model.Note, model.CreateNoteRequest, model.UpdateNoteRequest]{
		use:      "notes",
		singular: "note",
		api:      (*client.Client).Notes,
		bindCreate: func(cmd *cobra.Command) func() (model.CreateNoteRequest, error) {
			var req model.CreateNoteRequest
			cmd.Flags().StringVar(&req.Title, "title", "", "title (default \""+model.DefaultNoteTitle+"\")")
			cmd.Flags().StringVar(&req.Content, "content", "", "content (required)")
			return func() (model.CreateNoteRequest, error) { return req, nil }
		},
		bindUpdate: func(cmd *cobra.Command) func() (model.UpdateNoteRequest, error) {
			var title, content string
			cmd.Flags().StringVar(&title, "title", "", "new title (kept when omitted)")
			cmd.Flags().StringVar(&content, "content", "", "content (required)")
			return func() (model.UpdateNoteRequest, error) {
				return model.UpdateNoteRequest{
					Title:   changed(cmd, "title", title),
					Content: content,
				}, nil
			}
		},
		id: func(n *model.Note) uuid.UUID { return n.ID },
		print: func(w io.Writer, list []model.Note) {
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tCONTENT\tCREATED")
			for _, n := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.ID, n.Title, truncate(n.Content, 40), formatTime(n.CreatedAt))
			}
			_ = tw.Flush()
		},
	}.build(app)
}

func newTodosCmd(app *App) *cobra.Command {
	cmd := resourceCmd[model.Todo, model.CreateTodoRequest, model.UpdateTodoRequest]{
		use:      "todos",
		singular: "todo",
		api:      (*client.Client).Todos,
		bindCreate: func(cmd *cobra.Command) func() (model.CreateTodoRequest, error) {
			var req model.CreateTodoRequest
			var remind string
			cmd.Flags().StringVar(&req.Title, "title", "", "title (required)")
			cmd.Flags().StringVar(&req.Description, "description", "", "description")
			cmd.Flags().StringVar(&remind, "remind", "", "reminder time (RFC3339, \"2006-01-02 15:04\" or +duration)")
			return func() (model.CreateTodoRequest, error) {
				if remind != "" {
					at, err := parseReminder(remind, time.Now())
					if err != nil {
						return req, err
					}
					req.ReminderDate = &at
				}
				return req, nil
			}
		},
		bindUpdate: func(cmd *cobra.Command) func() (model.UpdateTodoRequest, error) {
			var title, description, remind string
			var completed bool
			cmd.Flags().StringVar(&title, "title", "", "title")
			cmd.Flags().StringVar(&description, "description", "", "description")
			cmd.Flags().StringVar(&remind, "remind", "", "reminder time (RFC3339, \"2006-01-02 15:04\" or +duration)")
			cmd.Flags().BoolVar(&completed, "completed", false, "completion state")
			return func() (model.UpdateTodoRequest, error) {
				req := model.UpdateTodoRequest{
					Title:       changed(cmd, "title", title),
					Description: changed(cmd, "description", description),
				}
				if cmd.Flags().Changed("completed") {
					req.IsCompleted = &completed
				}
				if cmd.Flags().Changed("remind") {
					at, err := parseReminder(remind, time.Now())
					if err != nil {
						return req, err
					}
					req.ReminderDate = &at
				}
				return req, nil
			}
		},
		id:    func(t *model.Todo) uuid.UUID { return t.ID },
		print: printTodos,
	}.build(app)

	cmd.AddCommand(newTodoDoneCmd(app))
	return cmd
}

// newTodoDoneCmd - 완료 상태를 토글한다
func newTodoDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a todo's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireSession(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			todo, err := findTodo(ctx, app.api, id)
			if err != nil {
				return app.handleAPIError(ctx, err)
			}

			completed := !todo.IsCompleted
			updated, err := app.api.Todos().Update(ctx, id, model.UpdateTodoRequest{IsCompleted: &completed})
			if err != nil {
				return app.handleAPIError(ctx, err)
			}
			state := "open"
			if updated.IsCompleted {
				state = "done"
			}
			fmt.Fprintf(app.out, "Todo %s is %s\n", updated.ID, state)
			return nil
		},
	}
}

func findTodo(ctx context.Context, api *client.Client, id uuid.UUID) (*model.Todo, error) {
	todos, err := api.Todos().List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range todos {
		if todos[i].ID == id {
			return &todos[i], nil
		}
	}
	return nil, fmt.Errorf("todo %s not found", id)
}

func printTodos(w io.Writer, list []model.Todo) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tTITLE\tREMINDER")
	for _, t := range list {
		done := " "
		if t.IsCompleted {
			done = "x"
		}
		remind := "-"
		if t.ReminderDate != nil {
			remind = formatTime(*t.ReminderDate)
		}
		fmt.Fprintf(tw, "%s\t[%s]\t%s\t%s\n", t.ID, done, t.Title, remind)
	}
	_ = tw.Flush()
}

func newContactsCmd(app *App) *cobra.Command {
	return resourceCmd[model.Contact, model.CreateContactRequest, model.UpdateContactRequest]{
		use:      "contacts",
		singular: "contact",
		api:      (*client.Client).Contacts,
		bindCreate: func(cmd *cobra.Command) func() (model.CreateContactRequest, error) {
			var req model.CreateContactRequest
			var tag string
			cmd.Flags().StringVar(&req.Name, "name", "", "name (required)")
			cmd.Flags().StringVar(&req.Phone, "phone", "", "phone (required)")
			cmd.Flags().StringVar(&req.Email, "email", "", "email")
			cmd.Flags().StringVar(&req.Address, "address", "", "address")
			cmd.Flags().StringVar(&tag, "tag", "", "family, friend, work or other")
			return func() (model.CreateContactRequest, error) {
				req.Tag = model.ContactTag(tag)
				return req, nil
			}
		},
		bindUpdate: func(cmd *cobra.Command) func() (model.UpdateContactRequest, error) {
			var name, phone, email, address, tag string
			cmd.Flags().StringVar(&name, "name", "", "name")
			cmd.Flags().StringVar(&phone, "phone", "", "phone")
			cmd.Flags().StringVar(&email, "email", "", "email")
			cmd.Flags().StringVar(&address, "address", "", "address")
			cmd.Flags().StringVar(&tag, "tag", "", "family, friend, work or other")
			return func() (model.UpdateContactRequest, error) {
				req := model.UpdateContactRequest{
					Name:    changed(cmd, "name", name),
					Phone:   changed(cmd, "phone", phone),
					Email:   changed(cmd, "email", email),
					Address: changed(cmd, "address", address),
				}
				if cmd.Flags().Changed("tag") {
					t := model.ContactTag(tag)
					req.Tag = &t
				}
				return req, nil
			}
		},
		id: func(c *model.Contact) uuid.UUID { return c.ID },
		print: func(w io.Writer, list []model.Contact) {
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPHONE\tEMAIL\tTAG")
			for _, c := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Phone, c.Email, c.Tag)
			}
			_ = tw.Flush()
		},
	}.build(app)
}

func newCustomNotesCmd(app *App) *cobra.Command {
	return resourceCmd[model.CustomNote, model.CreateCustomNoteRequest, model.UpdateCustomNoteRequest]{
		use:      "custom-notes",
		singular: "custom note",
		api:      (*client.Client).CustomNotes,
		bindCreate: func(cmd *cobra.Command) func() (model.CreateCustomNoteRequest, error) {
			var req model.CreateCustomNoteRequest
			cmd.Flags().StringVar(&req.Title, "title", "", "title (required)")
			cmd.Flags().StringVar(&req.Content, "content", "", "content")
			cmd.Flags().StringVar(&req.BackgroundImageURL, "background", "", "background image URL (required)")
			return func() (model.CreateCustomNoteRequest, error) { return req, nil }
		},
		bindUpdate: func(cmd *cobra.Command) func() (model.UpdateCustomNoteRequest, error) {
			var title, content, background string
			cmd.Flags().StringVar(&title, "title", "", "title")
			cmd.Flags().StringVar(&content, "content", "", "content")
			cmd.Flags().StringVar(&background, "background", "", "background image URL")
			return func() (model.UpdateCustomNoteRequest, error) {
				return model.UpdateCustomNoteRequest{
					Title:              changed(cmd, "title", title),
					Content:            changed(cmd, "content", content),
					BackgroundImageURL: changed(cmd, "background", background),
				}, nil
			}
		},
		id: func(n *model.CustomNote) uuid.UUID { return n.ID },
		print: func(w io.Writer, list []model.CustomNote) {
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tBACKGROUND\tCREATED")
			for _, n := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.ID, n.Title, n.BackgroundImageURL, formatTime(n.CreatedAt))
			}
			_ = tw.Flush()
		},
	}.build(app)
}

// parseReminder - RFC3339, 로컬 "2006-01-02 15:04", 또는 now 기준 "+10m"
func parseReminder(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "+") {
		d, err := time.ParseDuration(s[1:])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid reminder %q: %w", s, err)
		}
		return now.Add(d).UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reminder %q", s)
	}
	return t.UTC(), nil
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
