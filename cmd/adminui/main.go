package main

import (
	"flag"
	"fmt"
	"os"

	"carmarket/cmd/adminui/ui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	server := flag.String("server", "http://127.0.0.1:8080", "Marketplace API base URL")
	flag.Parse()

	p := tea.NewProgram(ui.NewRootModel(*server), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "adminui: %v\n", err)
		os.Exit(1)
	}
}
