package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/pnl/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd starts a chat session with the AI assistant.
type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `mbp assist [<question>...]

  Starts an interactive session with an AI assistant able to read the
  snapshot reports. Arguments, if any, are the first question.

  Requires a Gemini API key in the GEMINI_API_KEY environment variable.
  Type "bye" to quit.

`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}

	// Fail early on an unreadable snapshot.
	if _, err := decodeSnapshot(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	log := logger()
	a := agent.New(stdout, os.Stdin, log,
		agent.NewTrader(log),
		agent.NewAnalyst(evaluate, log),
	)
	if !*rawMarkdown {
		a.Render = renderMarkdown
	}

	if err := a.Run(ctx, client, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
