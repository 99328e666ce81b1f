package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/finsight-dev/finsight/internal/analysis"
	"github.com/finsight-dev/finsight/internal/config"
	"github.com/finsight-dev/finsight/internal/period"
	"github.com/finsight-dev/finsight/internal/store"
	"github.com/finsight-dev/finsight/pkg/logger"
	"github.com/finsight-dev/finsight/pkg/marketdata"
	"github.com/finsight-dev/finsight/pkg/narrative"
	"github.com/finsight-dev/finsight/pkg/news"
)

// buildRunner wires the analysis pipeline from resolved configuration.
func buildRunner(cfg *config.Config, appLogger *logger.Logger) (*analysis.Runner, error) {
	client, err := marketdata.NewClient(marketdata.ClientConfig{
		Provider:      cfg.Provider,
		PolygonAPIKey: cfg.PolygonAPIKey,
		LookbackDays:  cfg.LookbackDays,
	}, appLogger)
	if err != nil {
		return nil, err
	}

	// News is optional; without a key the report just skips it.
	var searcher analysis.NewsSearcher
	if cfg.SerpAPIKey != "" {
		newsClient, err := news.NewClient(cfg.SerpAPIKey, appLogger)
		if err != nil {
			return nil, err
		}
		searcher = newsClient
	}

	return analysis.NewRunner(client, searcher, store.NewSeriesStoreV1(), appLogger), nil
}

func dashboardAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync()

	runner, err := buildRunner(cfg, appLogger)
	if err != nil {
		return err
	}

	startPeriod, err := period.Parse(cfg.Period)
	if err != nil {
		return err
	}

	model := NewModel(runner, cfg.Indicators, cfg.Symbol, startPeriod)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}

	return nil
}

// analyzeAction runs one non-interactive pass and prints the analysis
// context. With --ask it opens a question session against the model,
// reading follow-up questions from stdin.
func analyzeAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	if symbol := cmd.String("symbol"); symbol != "" {
		cfg.Symbol = symbol
	}
	if p := cmd.String("period"); p != "" {
		cfg.Period = p
	}

	selected, err := period.Parse(cfg.Period)
	if err != nil {
		return err
	}

	runner, err := buildRunner(cfg, logger.NewNopLogger())
	if err != nil {
		return err
	}

	report, err := runner.Run(ctx, cfg.Symbol, selected, cfg.Indicators)
	if err != nil {
		return err
	}

	analysisContext := narrative.BuildContext(report.Quote, report.Filtered, report.Indicators, report.Articles)
	fmt.Println(analysisContext)

	for _, warning := range report.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	question := cmd.String("ask")
	if question == "" {
		return nil
	}

	narrativeClient, err := narrative.NewClient(cfg.GoogleAPIKey, cfg.GeminiModel, nil)
	if err != nil {
		return err
	}

	session := narrativeClient.NewSession(analysisContext)
	answer, err := session.Ask(ctx, question)
	if err != nil {
		return err
	}

	fmt.Printf("\nQ: %s\n\n%s\n", question, answer)

	// Follow-up questions continue the same session, so the model keeps
	// the earlier exchanges. A blank line or EOF ends the conversation.
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("\nQ (blank to exit): ")
	for scanner.Scan() {
		followUp := strings.TrimSpace(scanner.Text())
		if followUp == "" {
			break
		}

		answer, err := session.Ask(ctx, followUp)
		if err != nil {
			return err
		}

		fmt.Printf("\n%s\n", answer)
		fmt.Print("\nQ (blank to exit): ")
	}

	return scanner.Err()
}

func main() {
	cmd := &cli.Command{
		Name:  "finsight",
		Usage: "Technical indicator dashboard for stocks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
		},
		Action: dashboardAction,
		Commands: []*cli.Command{
			{
				Name:   "dashboard",
				Usage:  "Run the interactive dashboard (default)",
				Action: dashboardAction,
			},
			{
				Name:  "analyze",
				Usage: "Run one analysis pass and print the result",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "symbol",
						Aliases: []string{"s"},
						Usage:   "Ticker symbol (overrides config)",
					},
					&cli.StringFlag{
						Name:    "period",
						Aliases: []string{"p"},
						Usage:   "Trailing window selector (1mo, 3mo, 6mo, ytd, 1y, 2y, 5y, all)",
					},
					&cli.StringFlag{
						Name:  "ask",
						Usage: "Opening question for the analysis model; follow-ups are read from stdin",
					},
				},
				Action: analyzeAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
