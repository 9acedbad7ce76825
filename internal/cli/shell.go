// Package cli is the interactive shell behind cmd/recipectl. Every command
// goes through client.Client, so the shell sees exactly what the API returns.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"recipe_manager/internal/client"
	"recipe_manager/internal/domain"

	"github.com/chzyer/readline"
)

// Shell executes one command line at a time against the API
type Shell struct {
	client *client.Client
	out    io.Writer
}

// New creates a shell printing to out
func New(c *client.Client, out io.Writer) *Shell {
	return &Shell{client: c, out: out}
}

// Run reads lines until exit, EOF or an interrupt on an empty line.
// Command errors are printed and do not stop the loop.
func (s *Shell) Run(ctx context.Context, rl *readline.Instance) error {
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		args := ParseArgs(line)
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			return nil
		}
		if err := s.Execute(ctx, args); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

// ParseArgs splits a line on spaces; double quotes group words
func ParseArgs(line string) []string {
	var args []string
	var cur strings.Builder
	inQuotes, started := false, false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			started = true
		case r == ' ' && !inQuotes:
			if started {
				args = append(args, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if started {
		args = append(args, cur.String())
	}
	return args
}

type command struct {
	usage string
	nargs int // Minimum argument count
	run   func(s *Shell, ctx context.Context, args []string) error
}

var commands map[string]command

// Filled in init: help reads the table it is listed in
func init() {
	commands = map[string]command{
		"register": {"register <username> <email> <password>", 3, (*Shell).register},
		"login":    {"login <email> <password>", 2, (*Shell).login},
		"logout":   {"logout", 0, (*Shell).logout},
		"whoami":   {"whoami", 0, (*Shell).whoami},
		"profile":  {"profile <username> [bio]", 1, (*Shell).profile},
		"passwd":   {"passwd <current> <new>", 2, (*Shell).passwd},
		"recipes":  {"recipes [userId]", 0, (*Shell).recipes},
		"show":     {"show <recipeId>", 1, (*Shell).show},
		"create":   {"create <title> <instructions> <image> <name:quantity[:optional]>...", 4, (*Shell).create},
		"update":   {"update <recipeId> <title> <instructions> <image> <name:quantity[:optional]>...", 5, (*Shell).update},
		"delete":   {"delete <recipeId>", 1, (*Shell).delete},
		"save":     {"save <recipeId>", 1, (*Shell).save},
		"unsave":   {"unsave <recipeId>", 1, (*Shell).unsave},
		"saved":    {"saved", 0, (*Shell).saved},
		"help":     {"help", 0, (*Shell).help},
	}
}

// Execute runs one parsed command line
func (s *Shell) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("no command provided")
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command: %s", args[0])
	}
	if len(args)-1 < cmd.nargs {
		return fmt.Errorf("usage: %s", cmd.usage)
	}
	return cmd.run(s, ctx, args[1:])
}

func (s *Shell) register(ctx context.Context, args []string) error {
	if err := s.client.Register(ctx, args[0], args[1], args[2]); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "registered, now log in")
	return nil
}

func (s *Shell) login(ctx context.Context, args []string) error {
	msg, err := s.client.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, msg)
	return nil
}

func (s *Shell) logout(_ context.Context, _ []string) error {
	if err := s.client.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "logged out")
	return nil
}

func (s *Shell) whoami(_ context.Context, _ []string) error {
	session := s.client.Session()
	if !session.LoggedIn {
		fmt.Fprintln(s.out, "not logged in")
		return nil
	}
	fmt.Fprintf(s.out, "%s (session expires %s)\n", session.UserID, session.ExpiresAt.Format("15:04:05"))
	return nil
}

func (s *Shell) profile(ctx context.Context, args []string) error {
	bio := ""
	if len(args) > 1 {
		bio = args[1]
	}
	user, err := s.client.UpdateProfile(ctx, args[0], bio)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "profile updated: %s\n", user.Username)
	return nil
}

func (s *Shell) passwd(ctx context.Context, args []string) error {
	if err := s.client.ChangePassword(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "password changed")
	return nil
}

func (s *Shell) recipes(ctx context.Context, args []string) error {
	var list []domain.Recipe
	var err error
	if len(args) > 0 {
		list, err = s.client.UserRecipes(ctx, args[0])
	} else {
		list, err = s.client.Recipes(ctx)
	}
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(s.out, "no recipes")
	}
	for _, r := range list {
		s.printSummary(r)
	}
	return nil
}

func (s *Shell) show(ctx context.Context, args []string) error {
	r, err := s.client.Recipe(ctx, args[0])
	if err != nil {
		return err
	}
	s.printSummary(*r)
	for _, ing := range r.Ingredients {
		opt := ""
		if ing.Optional {
			opt = " (optional)"
		}
		fmt.Fprintf(s.out, "  - %s: %s%s\n", ing.Name, ing.Quantity, opt)
	}
	fmt.Fprintln(s.out, r.Instructions)
	return nil
}

func (s *Shell) create(ctx context.Context, args []string) error {
	in, err := recipeInput(args)
	if err != nil {
		return err
	}
	r, err := s.client.CreateRecipe(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "created %s\n", r.ID)
	return nil
}

func (s *Shell) update(ctx context.Context, args []string) error {
	in, err := recipeInput(args[1:])
	if err != nil {
		return err
	}
	r, err := s.client.UpdateRecipe(ctx, args[0], in)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "updated %s\n", r.ID)
	return nil
}

func (s *Shell) delete(ctx context.Context, args []string) error {
	if err := s.client.DeleteRecipe(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "deleted %s\n", args[0])
	return nil
}

func (s *Shell) save(ctx context.Context, args []string) error {
	if _, err := s.client.SaveRecipe(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "saved %s\n", args[0])
	return nil
}

func (s *Shell) unsave(ctx context.Context, args []string) error {
	if err := s.client.UnsaveRecipe(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "unsaved %s\n", args[0])
	return nil
}

func (s *Shell) saved(ctx context.Context, _ []string) error {
	session := s.client.Session()
	if !session.LoggedIn {
		return errors.New("login required")
	}
	links, err := s.client.SavedRecipes(ctx, session.UserID)
	if err != nil {
		return err
	}
	if len(links) == 0 {
		fmt.Fprintln(s.out, "no saved recipes")
	}
	for _, l := range links {
		if l.Recipe != nil {
			s.printSummary(*l.Recipe)
		}
	}
	return nil
}

func (s *Shell) help(_ context.Context, _ []string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(s.out, "  %s\n", commands[name].usage)
	}
	fmt.Fprintln(s.out, "  exit")
	return nil
}

func (s *Shell) printSummary(r domain.Recipe) {
	by := r.UserID
	if r.Owner != nil {
		by = r.Owner.Username
	}
	fmt.Fprintf(s.out, "%s  %s  (by %s)\n", r.ID, r.Title, by)
}

// recipeInput reads <title> <instructions> <image> followed by ingredient specs
func recipeInput(args []string) (domain.RecipeInput, error) {
	in := domain.RecipeInput{Title: args[0], Instructions: args[1], Image: args[2]}
	for _, spec := range args[3:] {
		parts := strings.Split(spec, ":")
		if len(parts) < 2 || len(parts) > 3 || (len(parts) == 3 && parts[2] != "optional") {
			return in, fmt.Errorf("bad ingredient %q, want name:quantity[:optional]", spec)
		}
		in.Ingredients = append(in.Ingredients, domain.Ingredient{
			Name:     parts[0],
			Quantity: parts[1],
			Optional: len(parts) == 3,
		})
	}
	return in, nil
}
