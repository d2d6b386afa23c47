package cli

import (
	"context"
	"fmt"
	"strings"
)

// argOrPrompt joins args or, when there are none, asks for the value.
func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) Add(ctx context.Context, args []string) error {
	text, err := a.argOrPrompt(args, "Enter todo text")
	if err != nil {
		return err
	}

	todo, err := a.todoService.Add(ctx, text)
	a.track(err)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Added", todo.ID)
	return nil
}

func (a *App) List(ctx context.Context, _ []string) error {
	todos, err := a.todoService.List(ctx)
	a.track(err)
	if err != nil {
		return a.fail(err)
	}

	if len(todos) == 0 {
		fmt.Fprintln(a.out, "No todos")
		return nil
	}
	for i, t := range todos {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, t)
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	ref, err := a.argOrPrompt(args, "Enter todo id or number")
	if err != nil {
		return err
	}

	todo, err := a.todoService.Show(ctx, ref)
	a.track(err)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, todo)
	return nil
}

func (a *App) setCompleted(ctx context.Context, args []string, completed bool) error {
	ref, err := a.argOrPrompt(args, "Enter todo id or number")
	if err != nil {
		return err
	}

	todo, err := a.todoService.SetCompleted(ctx, ref, completed)
	a.track(err)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, todo)
	return nil
}

func (a *App) Done(ctx context.Context, args []string) error {
	return a.setCompleted(ctx, args, true)
}

func (a *App) Undone(ctx context.Context, args []string) error {
	return a.setCompleted(ctx, args, false)
}

// Rename takes "rename <ref> <text...>", prompting for missing parts.
func (a *App) Rename(ctx context.Context, args []string) error {
	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}
	ref, err := a.argOrPrompt(args[:min(len(args), 1)], "Enter todo id or number")
	if err != nil {
		return err
	}
	text, err := a.argOrPrompt(rest, "Enter new text")
	if err != nil {
		return err
	}

	todo, err := a.todoService.Rename(ctx, ref, text)
	a.track(err)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, todo)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	ref, err := a.argOrPrompt(args, "Enter todo id or number to delete")
	if err != nil {
		return err
	}

	todo, err := a.todoService.Delete(ctx, ref)
	a.track(err)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Deleted", todo.ID)
	return nil
}
