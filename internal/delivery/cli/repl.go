package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ecomate/backend/internal/presenter"
	"github.com/ecomate/backend/internal/usecase"
)

const helpText = `Type a product name and press Enter to search.
  :type <text>    show alternatives as if typing <text>
  :sample <key>   search a sample product (:samples lists them)
  :pick <n>       show alternative n right away
  :clear          reset
  :quit           exit
`

// settlePoll is how often the loop checks for pending work at end of input
const settlePoll = 20 * time.Millisecond

// REPL drives a SearchSession from lines of text
type REPL struct {
	session  *usecase.SearchSession
	products *usecase.ProductService
	renderer *TerminalRenderer
}

// NewREPL creates a loop over session. renderer must be the session's renderer.
func NewREPL(session *usecase.SearchSession, products *usecase.ProductService, renderer *TerminalRenderer) *REPL {
	return &REPL{session: session, products: products, renderer: renderer}
}

// Run reads commands from in until :quit, end of input or ctx is done.
// At end of input it waits for an in-flight search to be displayed.
func (r *REPL) Run(ctx context.Context, in io.Reader) error {
	if !r.products.CatalogLoaded() {
		r.renderer.write("⚠ Product catalog is not available; searches are disabled.\n")
	}
	r.renderer.write(helpText)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			r.session.Clear()
			return err
		}
		if quit := r.handle(strings.TrimSpace(scanner.Text())); quit {
			r.session.Clear()
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	return r.settle(ctx)
}

// handle runs one line and reports whether the loop should stop
func (r *REPL) handle(line string) bool {
	if !strings.HasPrefix(line, ":") {
		if line == "" {
			return false
		}
		if !r.session.Search(line) {
			r.renderer.write("Nothing to search.\n")
		}
		return false
	}

	command, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch command {
	case ":quit", ":q":
		return true
	case ":help", ":h":
		r.renderer.write(helpText)
	case ":type":
		r.session.Input(arg)
	case ":samples":
		r.renderer.write(FormatSamples(presenter.BuildSamples(r.products.Samples())))
	case ":sample":
		if !r.session.SelectSample(arg) {
			r.renderer.write(unknownSampleMessage(arg, r.products.SimilarKeys(arg)))
		}
	case ":pick":
		n, err := strconv.Atoi(arg)
		if err != nil || !r.session.SelectSuggestion(n-1) {
			r.renderer.write(fmt.Sprintf("No alternative %q to pick.\n", arg))
		}
	case ":clear":
		r.session.Clear()
	default:
		r.renderer.write(fmt.Sprintf("Unknown command %s. Type :help for commands.\n", command))
	}
	return false
}

// settle waits until no debounce or result timer is outstanding
func (r *REPL) settle(ctx context.Context) error {
	ticker := time.NewTicker(settlePoll)
	defer ticker.Stop()

	for {
		switch r.session.State() {
		case usecase.StatePending, usecase.StateLoading:
		default:
			return nil
		}
		select {
		case <-ctx.Done():
			r.session.Clear()
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func unknownSampleMessage(key string, hints []string) string {
	msg := fmt.Sprintf("No sample product %q.", key)
	if len(hints) > 0 {
		msg += " Did you mean: " + strings.Join(hints, ", ") + "?"
	}
	return msg + "\n"
}
