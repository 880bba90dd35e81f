package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zatekoja/careassist/internal/application/services"
	"github.com/zatekoja/careassist/internal/application/views"
	"github.com/zatekoja/careassist/internal/domain/entities"
	apperrors "github.com/zatekoja/careassist/pkg/errors"
)

const helpText = `Type a message and press enter to ask the assistant.
Start a message with // to send a leading slash, e.g. //cm means "/cm".
Commands:
  /patient <id>     set the patient id sent with each request
  /filter <text>    filter providers by name, specialty or department
  /type <kind>      filter providers by appointment type: all, new, established
  /prompts          list quick prompts
  /prompt <n>       send quick prompt n
  /results          show the results panel
  /help             show this help
  /quit             exit`

// Console drives one session from a line-oriented terminal
type Console struct {
	session *services.Session
	in      io.Reader
	out     io.Writer
	shown   int
}

// New creates a console for session reading from in and writing to out
func New(session *services.Session, in io.Reader, out io.Writer) *Console {
	return &Console{session: session, in: in, out: out}
}

// Run reads commands until /quit, end of input or ctx is done
func (c *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintf(c.out, "Care Coordinator Assistant (patient %s). /help for commands.\n", c.session.Snapshot().PatientID)
	c.printNewTurns()

	lines, readErr := c.readLines(ctx)
	for {
		fmt.Fprint(c.out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(c.out)
				select {
				case err := <-readErr:
					return err
				default:
					return ctx.Err()
				}
			}
			if quit := c.Execute(ctx, line); quit {
				return nil
			}
		}
	}
}

// readLines scans c.in on its own goroutine so a blocked read never holds up
// ctx. The goroutine stays parked in Scan until the reader returns.
func (c *Console) readLines(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()
	return lines, readErr
}

// Execute handles one input line and reports whether the console should exit.
// A leading "//" sends the line as a message starting with a single "/".
func (c *Console) Execute(ctx context.Context, line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "//") {
		c.exchange(c.session.Send(ctx, trimmed[1:]))
		return false
	}
	if !strings.HasPrefix(trimmed, "/") {
		c.exchange(c.session.Send(ctx, line))
		return false
	}

	cmd, arg, _ := strings.Cut(trimmed, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/quit", "/exit":
		return true
	case "/help":
		fmt.Fprintln(c.out, helpText)
	case "/patient":
		if arg == "" {
			fmt.Fprintf(c.out, "patient id: %s\n", c.session.Snapshot().PatientID)
			return false
		}
		c.session.SetPatientID(arg)
		fmt.Fprintf(c.out, "patient id set to %s\n", arg)
	case "/filter":
		c.session.SetFilterText(arg)
		c.printResults()
	case "/type":
		typ, err := services.ParseAppointmentTypeFilter(arg)
		if err != nil {
			fmt.Fprintf(c.out, "error: %s\n", apperrors.UserMessage(err))
			return false
		}
		c.session.SetFilterType(typ)
		c.printResults()
	case "/prompts":
		for i, p := range services.QuickPrompts() {
			fmt.Fprintf(c.out, "  %d. %s\n", i+1, p)
		}
	case "/prompt":
		n, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintln(c.out, "usage: /prompt <n>")
			return false
		}
		c.exchange(c.session.UseQuickPrompt(ctx, n-1))
	case "/results":
		c.printResults()
	default:
		fmt.Fprintf(c.out, "unknown command %s, /help for commands\n", cmd)
	}
	return false
}

func (c *Console) exchange(err error) {
	printed := c.printNewTurns()
	switch {
	case err == nil && printed == 0:
		return
	case err == nil:
		if c.session.Snapshot().Error == "" {
			c.printResults()
		}
	case apperrors.IsType(err, apperrors.ErrorTypeConflict):
		fmt.Fprintln(c.out, "still waiting for the previous reply")
		return
	case apperrors.IsType(err, apperrors.ErrorTypeNotFound):
		fmt.Fprintf(c.out, "error: %s\n", apperrors.UserMessage(err))
		return
	}
	if msg := c.session.Snapshot().Error; msg != "" {
		fmt.Fprintf(c.out, "error: %s\n", msg)
	}
}

func (c *Console) printNewTurns() int {
	turns := c.session.Snapshot().Turns
	fresh := turns[c.shown:]
	for _, turn := range fresh {
		fmt.Fprintf(c.out, "%s: %s\n", speaker(turn.Role), turn.Text)
	}
	c.shown = len(turns)
	return len(fresh)
}

func (c *Console) printResults() {
	view := views.NewSessionView(c.session.Snapshot())

	fmt.Fprintf(c.out, "-- Results -- insurance: %s", view.Insurance.Text)
	if view.Insurance.Detail != "" {
		fmt.Fprintf(c.out, " (%s)", view.Insurance.Detail)
	}
	fmt.Fprintln(c.out)
	for _, q := range view.Insurance.SelfPayQuotes {
		fmt.Fprintf(c.out, "   self-pay %s: $%.2f\n", q.Specialty, q.SelfPay)
	}

	if view.EmptyState != "" {
		fmt.Fprintln(c.out, view.EmptyState)
		return
	}
	for _, card := range view.Providers {
		fmt.Fprintf(c.out, "* %s [%s]\n", card.Name, card.Badge)
		if card.Subtitle != "" {
			fmt.Fprintf(c.out, "  %s\n", card.Subtitle)
		}
		fmt.Fprintf(c.out, "  %s", card.Department)
		if card.Address != "" {
			fmt.Fprintf(c.out, ", %s", card.Address)
		}
		fmt.Fprintln(c.out)
		fmt.Fprintf(c.out, "  Hours: %s  Phone: %s\n", card.Hours, card.Phone)
		if card.Slot != nil {
			fmt.Fprintf(c.out, "  Next: %s\n", card.Slot.Text)
		}
	}
}

func speaker(role entities.Role) string {
	if role == entities.RoleNurse {
		return "nurse"
	}
	return "assistant"
}
