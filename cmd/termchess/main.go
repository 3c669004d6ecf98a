// Package main is the entry point for the TermChess application.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/mgrdich/wisdomgo/internal/bot"
	"github.com/mgrdich/wisdomgo/internal/bvb"
	"github.com/mgrdich/wisdomgo/internal/config"
	"github.com/mgrdich/wisdomgo/internal/game"
	"github.com/mgrdich/wisdomgo/internal/ui"
	"github.com/mgrdich/wisdomgo/internal/updater"
	"github.com/mgrdich/wisdomgo/internal/version"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	// Parse command-line flags first
	showVersion := flag.Bool("version", false, "Show version information")
	doUpgrade := flag.Bool("upgrade", false, "Upgrade to latest version (or specify version as argument)")
	doUninstall := flag.Bool("uninstall", false, "Uninstall TermChess (remove binary and config)")
	bvbGames := flag.Int("bvb", 0, "Run N bot-vs-bot games headlessly and print aggregate stats instead of starting the TUI")
	bvbWhite := flag.String("bvb-white", "hard", "White bot difficulty for -bvb (easy, medium, hard)")
	bvbBlack := flag.String("bvb-black", "hard", "Black bot difficulty for -bvb (easy, medium, hard)")
	flag.Parse()

	// Handle --version flag (exit before TUI)
	if *showVersion {
		printVersion()
		return
	}

	// Handle --upgrade flag
	if *doUpgrade {
		os.Exit(handleUpgrade(flag.Args()))
	}

	// Handle --uninstall flag
	if *doUninstall {
		os.Exit(handleUninstall())
	}

	// Handle --bvb flag: headless self-play, no TUI involved.
	if *bvbGames > 0 {
		os.Exit(handleBvB(*bvbGames, *bvbWhite, *bvbBlack))
	}

	// Load configuration from ~/.termchess/config.toml
	// If the file doesn't exist or cannot be parsed, default values are used
	cfg := config.LoadConfig()
	searchCfg := config.LoadSearchConfig()

	uiCfg := ui.FromAppConfig(cfg.UseUnicode, cfg.ShowCoords, cfg.UseColors, cfg.ShowMoveHistory, cfg.ShowHelpText)
	model := ui.NewModel(uiCfg, game.SearchConfig{
		MaxDepth:    searchCfg.MaxDepth,
		MoveTimeout: time.Duration(searchCfg.MoveTimeoutSeconds) * time.Second,
	})

	// Create the Bubbletea program with an alternate screen buffer for a
	// clean TUI experience. The single gameplay screen is driven entirely
	// by the command line, so mouse support was dropped along with the
	// menu-era pointer interactions that used it.
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	// Run the program
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// parseDifficulty maps a -bvb-white/-bvb-black flag value onto bot.Difficulty.
func parseDifficulty(s string) (bot.Difficulty, error) {
	switch strings.ToLower(s) {
	case "easy":
		return bot.Easy, nil
	case "medium":
		return bot.Medium, nil
	case "hard":
		return bot.Hard, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q (want easy, medium, or hard)", s)
	}
}

// handleBvB runs gameCount bot-vs-bot games headlessly via internal/bvb and
// prints the aggregate result. It returns the exit code.
func handleBvB(gameCount int, whiteName, blackName string) int {
	whiteDiff, err := parseDifficulty(whiteName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	blackDiff, err := parseDifficulty(blackName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}

	fmt.Printf("Running %d bot-vs-bot game(s): %s (White) vs %s (Black)...\n", gameCount, whiteName, blackName)

	manager := bvb.NewSessionManager(whiteDiff, blackDiff, whiteName, blackName, gameCount, 0)
	if err := manager.Start(); err != nil {
		fmt.Printf("Error: failed to start bot-vs-bot session: %v\n", err)
		return 1
	}

	for !manager.AllFinished() {
		time.Sleep(100 * time.Millisecond)
	}
	manager.Stop()

	stats := manager.Stats()
	fmt.Printf("\nResults over %d game(s):\n", stats.TotalGames)
	fmt.Printf("  %s wins: %d (%.1f%%)\n", whiteName, stats.WhiteWins, stats.WhiteWinPct)
	fmt.Printf("  %s wins: %d (%.1f%%)\n", blackName, stats.BlackWins, stats.BlackWinPct)
	fmt.Printf("  Draws: %d\n", stats.Draws)
	fmt.Printf("  Average game length: %.1f moves\n", stats.AvgMoveCount)
	return 0
}

// printVersion prints the version information and exits.
func printVersion() {
	fmt.Printf("termchess %s\n", version.Version)
	fmt.Printf("Build date: %s\n", version.BuildDate)
	fmt.Printf("Git commit: %s\n", version.GitCommit)
}

// handleUpgrade handles the --upgrade flag.
// It returns the exit code (0 for success, 1 for error).
func handleUpgrade(args []string) int {
	// Check if installed via go install
	if updater.DetectInstallMethod() == updater.InstallMethodGoInstall {
		fmt.Println(updater.GetGoInstallMessage())
		return 0
	}

	// Get target version from args (if provided)
	var targetVersion string
	if len(args) > 0 {
		targetVersion = args[0]
	}

	client := updater.NewClient()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	currentVersion := version.Version

	// If no target version specified, check the latest
	if targetVersion == "" {
		fmt.Printf("Current version: %s\n", currentVersion)
		fmt.Print("Checking for updates...")

		latest, err := client.CheckLatestVersion(ctx)
		if err != nil {
			fmt.Printf("\nError: Failed to check for updates: %v\n", err)
			return 1
		}
		targetVersion = latest
		fmt.Printf("\rLatest version:  %s\n\n", targetVersion)
	} else {
		fmt.Printf("Current version: %s\n", currentVersion)
		fmt.Printf("Target version:  %s\n\n", targetVersion)
	}

	// Create confirmation callback for downgrades
	confirmDowngrade := func() bool {
		fmt.Print("\u26a0 " + targetVersion + " is older than your current version. It might be buggier than a summer porch. Continue? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		response = strings.TrimSpace(strings.ToLower(response))
		return response == "y" || response == "yes"
	}

	// Perform the upgrade
	binaryName := updater.GetBinaryFilename(targetVersion, runtime.GOOS, runtime.GOARCH)
	fmt.Printf("Downloading %s...\n", binaryName)

	result, err := client.Upgrade(ctx, currentVersion, targetVersion, confirmDowngrade)
	if err != nil {
		if errors.Is(err, updater.ErrAlreadyUpToDate) {
			fmt.Printf("Already up to date (%s)\n", currentVersion)
			return 0
		}
		if errors.Is(err, updater.ErrPermissionDenied) {
			fmt.Println("Error: Permission denied. Try running with sudo:")
			fmt.Println("  sudo termchess --upgrade")
			return 1
		}
		if errors.Is(err, updater.ErrChecksumMismatch) {
			fmt.Println("Error: Checksum verification failed. The download may be corrupted.")
			return 1
		}
		if strings.Contains(err.Error(), "cancelled by user") {
			fmt.Println("Upgrade cancelled.")
			return 0
		}
		fmt.Printf("Error: %v\n", err)
		return 1
	}

	fmt.Print("Verifying checksum... \u2713\n")
	fmt.Print("Installing... \u2713\n\n")

	if result.IsDowngrade {
		fmt.Printf("\u2713 TermChess switched from %s to %s\n", result.PreviousVersion, result.NewVersion)
	} else {
		fmt.Printf("\u2713 TermChess upgraded from %s to %s\n", result.PreviousVersion, result.NewVersion)
	}

	return 0
}

// handleUninstall handles the --uninstall flag.
// It returns the exit code (0 for success, 1 for error).
func handleUninstall() int {
	// Prompt for confirmation
	fmt.Print("Are you sure you want to uninstall TermChess? [y/N] ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		fmt.Printf("\nError reading input: %v\n", err)
		return 1
	}

	response = strings.TrimSpace(strings.ToLower(response))
	if response != "y" && response != "yes" {
		fmt.Println("\nUninstall cancelled.")
		return 0
	}

	fmt.Println()

	// Perform uninstall
	if err := updater.Uninstall(); err != nil {
		if errors.Is(err, updater.ErrPermissionDenied) {
			fmt.Println("Error: Permission denied removing binary. Try running with sudo:")
			fmt.Println("  sudo termchess --uninstall")
			return 1
		}
		fmt.Printf("Error: %v\n", err)
		return 1
	}

	fmt.Println("\u2713 TermChess has been uninstalled. Goodbye!")
	return 0
}
