package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ch8101040/tashmash/internal/config"
	"github.com/ch8101040/tashmash/internal/tui"
)

func main() {
	rulesFile := flag.String("rules", "", "YAML file overriding the built-in rule figures")
	flag.Parse()

	rules, err := config.LoadRules(*rulesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(tui.NewModel(rules), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
