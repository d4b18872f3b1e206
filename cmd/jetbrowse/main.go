// Command jetbrowse is a small read-only terminal browser for a .mdb
// file: pick a table from a list, then page through its rows in a
// table view. No input is ever written back to the file.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/martti/tsjetdb/pkg/jet"
	"github.com/martti/tsjetdb/pkg/jetconfig"
)

func init() {
	godotenv.Load()
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: jetbrowse <file>")
		os.Exit(1)
	}

	db, err := jet.Open(os.Args[1], jetconfig.NewConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, "jetbrowse:", err)
		os.Exit(1)
	}
	defer db.Close()

	m := newModel(db)

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "jetbrowse:", err)
		os.Exit(1)
	}
}
