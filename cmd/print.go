package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

// printMarkdown prints markdown on stdout, rendered for the terminal unless
// -raw is set.
func printMarkdown(md string) {
	if *rawMarkdown {
		fmt.Fprintln(stdout, md)
		return
	}
	fmt.Fprint(stdout, renderMarkdown(md))
}

// renderMarkdown renders md for the terminal, md is returned as is if it
// cannot be rendered.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot render markdown: %v\n", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot render markdown: %v\n", err)
		return md
	}
	return out
}
