// Package agent implements a Gemini assistant answering questions about the
// consolidated portfolio.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
	// Render formats answers before printing them, answers are printed as is
	// when nil.
	Render func(markdown string) string
}

// New creates a new Agent reading the user's input from r and writing the
// conversation to w.
func New(w io.Writer, r io.Reader, log zerolog.Logger, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(log, experts...),
	}
}

// Start creates a chat for every expert and the facilitator.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const prompt = "assist> "

// Run starts the interactive REPL session for the agent.
// prompts are submitted first, as if the user typed them.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to the multi-broker portfolio assistant. Type 'bye' to exit.")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(a.w, prompt)

		input, err := a.next(&prompts)
		if err == io.EOF {
			return nil // Clean exit on Ctrl+D
		}
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "bye" {
			return nil
		}

		content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, a.render(content))
	}
}

// next returns the next pending prompt, or reads a line from the user.
func (a *Agent) next(prompts *[]string) (string, error) {
	if len(*prompts) > 0 {
		input := (*prompts)[0]
		*prompts = (*prompts)[1:]
		fmt.Fprintln(a.w, input)
		return input, nil
	}
	return a.r.ReadString('\n')
}

func (a *Agent) render(content *genai.Content) string {
	var b strings.Builder
	for _, p := range content.Parts {
		b.WriteString(p.Text)
	}
	if a.Render == nil {
		return b.String()
	}
	return a.Render(b.String())
}
