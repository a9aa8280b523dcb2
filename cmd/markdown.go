package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
)

var rawFlag = flag.Bool("raw", false, "Print markdown as is, without terminal rendering.")

// printMarkdown prints markdown to stdout, rendered for the terminal when
// stdout is one.
func printMarkdown(md string) { fprintMarkdown(os.Stdout, md) }

func fprintMarkdown(w io.Writer, md string) {
	if *rawFlag || !isTerminal(w) {
		fmt.Fprint(w, md)
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		fmt.Fprint(w, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(w, md)
		return
	}
	fmt.Fprint(w, out)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
