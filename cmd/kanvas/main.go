package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/averix/kanvas/internal/app"
	"github.com/averix/kanvas/internal/db"
	"github.com/averix/kanvas/internal/store"
	"github.com/averix/kanvas/internal/ui"
	"github.com/averix/kanvas/internal/ui/theme"
)

var (
	version = "0.1.0"
)

func main() {
	// Subcommand handling
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "boards":
			handleBoards()
			return
		case "version":
			fmt.Printf("kanvas v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	// Parse flags for TUI mode
	themeFlag := flag.String("theme", "", "Theme name (nord, dracula, gruvbox, catppuccin)")
	dataDirFlag := flag.String("data-dir", "", "Override the data directory")
	flag.Parse()

	if err := runTUI(*themeFlag, *dataDirFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `kanvas - shared kanban boards in your terminal

Usage:
  kanvas                    Start the TUI
  kanvas boards             List your boards
  kanvas version            Show version
  kanvas help               Show this help

TUI Options:
  --theme <name>      Theme (nord, dracula, gruvbox, catppuccin)
  --data-dir <path>   Override the data directory

Keybindings:
  Navigation:   ↑/↓ or j/k    Move cursor
                ←/→ or h/l    Switch columns
                g/G           Go to top/bottom

  Dashboard:    enter         Open board
                a             Create board
                r             Rename board
                c             Cycle board color
                d             Delete (with confirm)

  Board:        a             Add card
                enter         Edit card
                H/L           Move card between columns
                p             Cycle priority

  Views:        1-3           Dashboard / board / sharing
                ?             Help
                C-l           Log out
                q             Quit`

	fmt.Println(help)
}

// handleBoards prints the signed-in user's boards without starting
// the TUI. Read-only, so no lock is taken.
func handleBoards() {
	database, err := db.Open(db.DefaultDBPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	st := store.New(database)

	user, err := st.CurrentUser()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading session: %v\n", err)
		os.Exit(1)
	}
	if user == nil {
		fmt.Println("Not signed in. Start the TUI to sign in first.")
		return
	}

	boards, err := st.BoardsByOwner(user.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing boards: %v\n", err)
		os.Exit(1)
	}

	if len(boards) == 0 {
		fmt.Printf("%s has no boards yet.\n", user.Name)
		return
	}

	fmt.Printf("Boards for %s <%s>:\n", user.Name, user.Email)
	for _, b := range boards {
		cards, err := st.CardsByBoard(b.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading cards: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("  %-30s %s  %d cards\n", b.Name, b.Color, len(cards))
	}
}

func runTUI(themeName, dataDir string) error {
	cfg := app.DefaultConfig()
	if dataDir != "" {
		cfg.DataDir = dataDir
		cfg.DBPath = filepath.Join(dataDir, "kanvas.db")
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	if themeName != "" {
		if t, ok := theme.ByName(themeName); ok {
			theme.SetTheme(t)
		} else {
			return fmt.Errorf("unknown theme %q", themeName)
		}
	}

	model := ui.NewRootModel(application)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	return err
}
