package main

import (
	"flag"
	"fmt"
	"os"

	"taskboard/cmd/tui/ui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	server := flag.String("server", "http://127.0.0.1:8080", "Taskboard server base URL")
	flag.Parse()

	p := tea.NewProgram(ui.NewRootModel(*server), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
