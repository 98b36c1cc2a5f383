package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/ffb-trends/internal/scoring"
	"github.com/jstittsworth/ffb-trends/internal/services"
	"github.com/jstittsworth/ffb-trends/pkg/config"
	"github.com/jstittsworth/ffb-trends/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: ffbtrends [points|chart|summary|rules] [player ...]")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	lg := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())

	rules := scoring.NewRules(cfg.ScoringOverrides)
	command := os.Args[1]

	if command == "rules" {
		printRules(rules)
		return
	}

	players := os.Args[2:]
	if len(players) == 0 {
		players = cfg.Players
	}
	if len(players) == 0 {
		log.Fatal("No players given: pass names as arguments or set PLAYERS")
	}

	registry := services.NewPlayerRegistry(rules, scoring.Options{
		IncludePostseason: cfg.IncludePostseason,
		KeepWeek17:        cfg.KeepWeek17,
	}, lg)

	// Load the game log dataset
	if err := registry.LoadGameLogs(cfg.DataDir); err != nil {
		logrus.Fatalf("Failed to load game logs from %s: %v", cfg.DataDir, err)
	}

	switch command {
	case "points":
		if err := runPoints(registry, players); err != nil {
			logrus.Fatalf("Failed to compute points: %v", err)
		}

	case "chart":
		if err := registry.RenderTrends(players, cfg.ChartOut); err != nil {
			logrus.Fatalf("Failed to render chart: %v", err)
		}
		logger.WithChart(cfg.ChartOut).Info("Trend chart written")

	case "summary":
		if err := runSummary(registry, players); err != nil {
			logrus.Fatalf("Failed to compute summaries: %v", err)
		}

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func runPoints(registry *services.PlayerRegistry, players []string) error {
	profiles, err := registry.AddPlayers(players)
	if len(profiles) == 0 && err != nil {
		return err
	}
	if err != nil {
		logrus.Warnf("Some players were skipped: %v", err)
	}
	for _, p := range profiles {
		logger.WithPlayer(p.Name).Debugf("Listed as %q in the %s table", p.NormalizedName, p.SourceTable)
		fmt.Printf("\n%s\n", p.Name)
		if len(p.Series) == 0 {
			fmt.Println("  no scoring seasons")
			continue
		}
		for _, yp := range p.Series {
			fmt.Printf("  %d  %8.2f\n", yp.Year, yp.Points)
		}
	}
	return nil
}

func runSummary(registry *services.PlayerRegistry, players []string) error {
	summaries, err := registry.Summaries(players)
	if err != nil {
		return err
	}
	for _, s := range summaries {
		fmt.Printf("\n%s\n", s.Player)
		if s.Seasons == 0 {
			fmt.Println("  no scoring seasons")
			continue
		}
		fmt.Printf("  seasons:         %d\n", s.Seasons)
		fmt.Printf("  total points:    %.2f\n", s.TotalPoints)
		fmt.Printf("  mean points:     %.2f\n", s.MeanPoints)
		fmt.Printf("  std dev:         %.2f\n", s.StdDev)
		fmt.Printf("  best year:       %d (%.2f)\n", s.BestYear, s.BestPoints)
		fmt.Printf("  points per year: %+.2f\n", s.PointsPerYear)
	}
	return nil
}

func printRules(rules *scoring.Rules) {
	fmt.Println("Scoring weights (points per unit):")
	for _, w := range rules.Weights() {
		fmt.Printf("  %-24s %g\n", rules.DisplayName(w.Category), w.Value)
	}
}
