// bookingctl drives the booking and review forms from the terminal.
//
// It is the command-line twin of the website forms: field edits are
// validated and persisted as a draft, and submit relays the record to
// the email API. A partially filled form survives between invocations
// until a submission succeeds or -clear is passed.
//
// Usage:
//
//	bookingctl -form booking -set name="Thandi Dlamini" -set email=thandi@example.com
//	bookingctl -form booking -set guests=2 -set checkin=2030-05-01 -set checkout=2030-05-04 -submit
//	bookingctl -form review -show
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/simphiwe/guesthouse/internal"
	"github.com/simphiwe/guesthouse/internal/client"
	"github.com/simphiwe/guesthouse/internal/draft"
	"github.com/simphiwe/guesthouse/internal/form"
)

// fieldFlags collects repeated -set key=value pairs in order.
type fieldFlags []string

func (f *fieldFlags) String() string { return strings.Join(*f, ",") }

func (f *fieldFlags) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*f = append(*f, value)
	return nil
}

// printNotifier writes controller notifications to the terminal.
type printNotifier struct{}

func (printNotifier) Notify(level client.Level, message string) {
	if level == client.LevelError {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", message)
		return
	}
	fmt.Println(message)
}

func run() error {
	var (
		formName = flag.String("form", "booking", "form to operate on: booking or review")
		api      = flag.String("api", "http://localhost:3000/api/send-email", "email API endpoint")
		draftDir = flag.String("draft-dir", defaultDraftDir(), "directory for saved drafts")
		sets     fieldFlags
		doSubmit = flag.Bool("submit", false, "validate and submit the form")
		doShow   = flag.Bool("show", false, "print current fields and validation state")
		doClear  = flag.Bool("clear", false, "discard the saved draft")
	)
	flag.Var(&sets, "set", "set a field, key=value (repeatable)")
	flag.Parse()

	ctx := context.Background()
	logger := internal.NewLogger(os.Stderr, "development", "warn")

	formType, err := form.ParseType(*formName)
	if err != nil {
		return fmt.Errorf("unknown form %q, want booking or review", *formName)
	}
	def, err := form.DefinitionFor(formType)
	if err != nil {
		return err
	}

	store, err := draft.NewFileStore(*draftDir, logger)
	if err != nil {
		return fmt.Errorf("draft store initialization failed: %w", err)
	}

	ctrl := client.NewController(def, store, client.NewClient(*api), printNotifier{}, logger)

	if *doClear {
		if err := store.Clear(ctx, def.ID); err != nil {
			return fmt.Errorf("clearing draft: %w", err)
		}
		fmt.Printf("Draft for %s discarded.\n", def.ID)
		return nil
	}

	if err := ctrl.Restore(ctx); err != nil {
		return fmt.Errorf("restoring draft: %w", err)
	}

	for _, pair := range sets {
		key, value, _ := strings.Cut(pair, "=")
		if err := ctrl.SetField(ctx, key, value); err != nil {
			return err
		}
		if result, err := ctrl.Touch(key); err == nil && !result.Valid {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, result.Message)
		}
	}

	if *doShow {
		printForm(ctrl, def)
	}

	if *doSubmit {
		if err := ctrl.Submit(ctx); err != nil {
			if errors.Is(err, client.ErrValidationFailed) {
				printForm(ctrl, def)
			}
			return err
		}
	}

	return nil
}

func printForm(ctrl *client.Controller, def form.Definition) {
	results := ctrl.Results()

	names := make([]string, 0, len(def.Fields))
	for _, spec := range def.Fields {
		names = append(names, spec.Name)
	}
	sort.Strings(names)

	fmt.Printf("%s (%s)\n", def.ID, def.Type)
	for _, name := range names {
		line := fmt.Sprintf("  %-12s %q", name, ctrl.Field(name))
		if result, ok := results[name]; ok && !result.Valid {
			line += "  <- " + result.Message
		}
		fmt.Println(line)
	}
}

func defaultDraftDir() string {
	if dir := os.Getenv("DRAFT_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".guesthouse-drafts"
	}
	return home + "/.guesthouse-drafts"
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
