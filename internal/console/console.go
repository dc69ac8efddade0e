// Package console runs the line-oriented quote menu.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdulachik/quotator/internal/provider"
	"github.com/abdulachik/quotator/internal/quote"
)

const rule = "-------------------------------------------------------------"

var menuOptions = []string{
	"1: Print quote(s)",
	"2: Select amount of quotes to print (default is 1)",
	"3: Select type of quotes to print (default is computerscience)",
	"Q: Quit the program",
}

// errQuit ends the menu loop.
var errQuit = errors.New("quit")

// Generator produces quotes for the menu.
type Generator interface {
	GetQuotes(amount int, source string, reverse, shuffle bool) ([]*quote.Quote, error)
}

// Config holds runner configuration.
type Config struct {
	Generator Generator
	In        io.Reader
	Out       io.Writer

	// Amount and Source are the initial selections. They default to 1 and
	// provider.ComputerScienceSource.
	Amount int
	Source string
}

// Runner is the interactive menu.
type Runner struct {
	gen     Generator
	scanner *bufio.Scanner
	out     io.Writer

	amount int
	source string

	heading lipgloss.Style
	prompt  lipgloss.Style
	warning lipgloss.Style
}

// New creates a Runner.
func New(cfg Config) *Runner {
	amount := cfg.Amount
	if amount < 1 {
		amount = 1
	}

	source := cfg.Source
	if source == "" {
		source = provider.ComputerScienceSource
	}

	renderer := lipgloss.NewRenderer(cfg.Out)

	return &Runner{
		gen:     cfg.Generator,
		scanner: bufio.NewScanner(cfg.In),
		out:     cfg.Out,
		amount:  amount,
		source:  source,
		heading: renderer.NewStyle().Bold(true),
		prompt:  renderer.NewStyle().Foreground(lipgloss.Color("6")),
		warning: renderer.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

// Amount returns the selected number of quotes per print.
func (r *Runner) Amount() int { return r.amount }

// Source returns the selected quote source.
func (r *Runner) Source() string { return r.source }

// PrintMenu writes the guide and the menu options.
func (r *Runner) PrintMenu() {
	lines := []string{
		"",
		r.heading.Render("GUIDE:"),
		rule,
		"Enter one of the menu options at the prompt and hit 'Enter'.",
		"",
		r.heading.Render("MENU:"),
		rule,
	}
	lines = append(lines, menuOptions...)
	fmt.Fprintln(r.out, strings.Join(lines, "\n"))
}

// Run reads menu choices until the user quits, input ends, or ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		action, err := r.ask("Please select an option:\n\n" + strings.Join(menuOptions, "\n"))
		if err == nil {
			err = r.handle(action)
		}

		switch {
		case errors.Is(err, errQuit):
			r.quit()
			return nil
		case err != nil:
			return err
		}
	}
}

func (r *Runner) handle(action string) error {
	switch strings.ToLower(action) {
	case "1":
		r.printQuotes()
	case "2":
		n, err := r.promptForNumber(1, 5, "Enter amount of quotes to print (1-5)")
		if err != nil {
			return err
		}
		r.amount = n
	case "3":
		n, err := r.promptForNumber(1, 2, "Select a type of quote:\n\n 1: Forbes\n 2: computerscience")
		if err != nil {
			return err
		}
		if n == 1 {
			r.source = provider.ForbesSource
		} else {
			r.source = provider.ComputerScienceSource
		}
	case "q":
		return errQuit
	}
	return nil
}

func (r *Runner) printQuotes() {
	quotes, err := r.gen.GetQuotes(r.amount, r.source, false, false)
	if err != nil {
		fmt.Fprintln(r.out, r.warning.Render(err.Error()))
		return
	}
	for _, q := range quotes {
		fmt.Fprintln(r.out, q.Text)
	}
}

// promptForNumber asks until the answer is an integer in [from, to].
func (r *Runner) promptForNumber(from, to int, message string) (int, error) {
	for {
		answer, err := r.ask(message)
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(answer)
		if err == nil && n >= from && n <= to {
			return n, nil
		}
		fmt.Fprintln(r.out, r.warning.Render(fmt.Sprintf("You must enter a number from %d to %d", from, to)))
	}
}

// ask prints message and reads one trimmed line. End of input quits.
func (r *Runner) ask(message string) (string, error) {
	for line := range strings.SplitSeq(message, "\n") {
		fmt.Fprintln(r.out, r.prompt.Render(line))
	}
	fmt.Fprint(r.out, "> ")

	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", errQuit
	}
	return strings.TrimSpace(r.scanner.Text()), nil
}

func (r *Runner) quit() {
	fmt.Fprintln(r.out, "\n\n"+r.heading.Render("GOODBYE!"))
	r.PrintMenu()
}
