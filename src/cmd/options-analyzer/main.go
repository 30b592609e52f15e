package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/options-analyzer/src/analysis"
	"github.com/jiaming2012/options-analyzer/src/cmd/options-analyzer/run"
	"github.com/jiaming2012/options-analyzer/src/eventmodels"
	"github.com/jiaming2012/options-analyzer/src/logger"
	"github.com/jiaming2012/options-analyzer/src/telemetry"
	"github.com/jiaming2012/options-analyzer/src/utils"
)

const serviceName = "options-analyzer"

var rootCmd = &cobra.Command{
	Use:   "options-analyzer",
	Short: "Options mispricing, profitability and contract selection analytics",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Setup(telemetry.Enabled())
	},
}

// withAnalyzer wraps a command body with telemetry setup, analyzer wiring and a
// signal-cancelled context.
func withAnalyzer(fn func(ctx context.Context, cmd *cobra.Command, analyzer *analysis.Analyzer) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		otelShutdown, err := telemetry.SetupOTelSDK(ctx, serviceName)
		if err != nil {
			log.Fatalf("failed to setup otel sdk: %v", err)
		}

		configPath, _ := cmd.Flags().GetString("config")
		envDir, _ := cmd.Flags().GetString("env-dir")

		analyzer, err := run.Setup(run.SetupArgs{ConfigPath: configPath, EnvDir: envDir})
		if err != nil {
			log.Fatalf("setup failed: %v", err)
		}

		err = fn(ctx, cmd, analyzer)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := otelShutdown(shutdownCtx); shutdownErr != nil {
			err = errors.Join(err, shutdownErr)
		}

		if err != nil {
			log.Fatalf("%s: %v", cmd.Name(), err)
		}
	}
}

var mispricingCmd = &cobra.Command{
	Use:   "mispricing --contract AAPL240621C00190000",
	Short: "Classify a contract as underpriced or overpriced",
	Run: withAnalyzer(func(ctx context.Context, cmd *cobra.Command, analyzer *analysis.Analyzer) error {
		contract, _ := cmd.Flags().GetString("contract")

		result, err := analyzer.ClassifyMispricing(ctx, eventmodels.OptionSymbol(contract))
		if err != nil {
			return err
		}

		run.PrintMispricing(os.Stdout, result)
		return nil
	}),
}

var surfaceCmd = &cobra.Command{
	Use:   "surface --contract AAPL240621C00190000 --low 180 --high 200",
	Short: "Project the contract value across price levels and business days",
	Run: withAnalyzer(func(ctx context.Context, cmd *cobra.Command, analyzer *analysis.Analyzer) error {
		contract, _ := cmd.Flags().GetString("contract")
		low, _ := cmd.Flags().GetFloat64("low")
		high, _ := cmd.Flags().GetFloat64("high")
		csvPath, _ := cmd.Flags().GetString("csv")

		surface, err := analyzer.BuildSurface(ctx, eventmodels.OptionSymbol(contract), low, high)
		if err != nil {
			return err
		}

		run.PrintSurface(os.Stdout, surface)

		if csvPath != "" {
			if err := utils.ExportSurfaceCSV(surface, csvPath); err != nil {
				return err
			}
			fmt.Println("CSV file written to: ", csvPath)
		}

		return nil
	}),
}

var bestCmd = &cobra.Command{
	Use:   "best --ticker AAPL --expected-price 200 --expected-date 2024-06-21",
	Short: "Pick the contract with the highest projected profit for an expected move",
	Run: withAnalyzer(func(ctx context.Context, cmd *cobra.Command, analyzer *analysis.Analyzer) error {
		ticker, _ := cmd.Flags().GetString("ticker")
		expectedPrice, _ := cmd.Flags().GetFloat64("expected-price")
		expectedDateStr, _ := cmd.Flags().GetString("expected-date")
		dividendYield, _ := cmd.Flags().GetFloat64("dividend-yield")

		expectedDate, err := time.Parse("2006-01-02", expectedDateStr)
		if err != nil {
			return fmt.Errorf("invalid expected-date %q: %w", expectedDateStr, err)
		}

		daysAfterTarget := analyzer.Config().Ranking.DaysAfterTarget
		if cmd.Flags().Changed("days-after-target") {
			daysAfterTarget, _ = cmd.Flags().GetInt("days-after-target")
		}

		req := eventmodels.SelectBestRequest{
			Ticker:          eventmodels.NewStockSymbol(ticker),
			ExpectedPrice:   expectedPrice,
			ExpectedDate:    expectedDate,
			DaysAfterTarget: daysAfterTarget,
			DividendYield:   dividendYield,
		}

		if cmd.Flags().Changed("risk-free-rate") {
			rate, _ := cmd.Flags().GetFloat64("risk-free-rate")
			req.RiskFreeRate = &rate
		}

		result, err := analyzer.SelectBest(ctx, req)
		if err != nil {
			return err
		}

		run.PrintBest(os.Stdout, result)
		return nil
	}),
}

var zeroDTECmd = &cobra.Command{
	Use:   "zerodte --ticker SPY --option-type call",
	Short: "Select the most liquid near-the-money contract expiring today",
	Run: withAnalyzer(func(ctx context.Context, cmd *cobra.Command, analyzer *analysis.Analyzer) error {
		ticker, _ := cmd.Flags().GetString("ticker")
		optionTypeStr, _ := cmd.Flags().GetString("option-type")

		optionType, err := eventmodels.ParseOptionType(optionTypeStr)
		if err != nil {
			return err
		}

		result, err := analyzer.ChooseZeroDTE(ctx, eventmodels.NewStockSymbol(ticker), optionType)
		if err != nil {
			return err
		}

		run.PrintZeroDTE(os.Stdout, result)
		return nil
	}),
}

var consensusCmd = &cobra.Command{
	Use:   "consensus --contract AAPL240621C00190000",
	Short: "Price a contract with every pricing model and average the results",
	Run: withAnalyzer(func(ctx context.Context, cmd *cobra.Command, analyzer *analysis.Analyzer) error {
		contract, _ := cmd.Flags().GetString("contract")

		result, err := analyzer.PriceWithAllModels(ctx, eventmodels.OptionSymbol(contract))
		if err != nil {
			return err
		}

		run.PrintConsensus(os.Stdout, result)
		return nil
	}),
}

var serveCmd = &cobra.Command{
	Use:   "serve --port 8080",
	Short: "Serve the analyzer over a json http api",
	Run: withAnalyzer(func(ctx context.Context, cmd *cobra.Command, analyzer *analysis.Analyzer) error {
		port, _ := cmd.Flags().GetInt("port")
		return run.Serve(ctx, analyzer, port)
	}),
}

func main() {
	rootCmd.PersistentFlags().String("config", "analyzer-config.yaml", "Path to the analyzer config yaml.")
	rootCmd.PersistentFlags().String("env-dir", ".", "Directory holding .env.development / .env.production.")

	for _, cmd := range []*cobra.Command{mispricingCmd, consensusCmd, surfaceCmd} {
		cmd.Flags().String("contract", "", "The OCC option symbol.")
		cmd.MarkFlagRequired("contract")
	}

	surfaceCmd.Flags().Float64("low", 0, "Lowest expected underlying price.")
	surfaceCmd.Flags().Float64("high", 0, "Highest expected underlying price.")
	surfaceCmd.Flags().String("csv", "", "Optional path to write the surface as csv.")
	surfaceCmd.MarkFlagRequired("low")
	surfaceCmd.MarkFlagRequired("high")

	bestCmd.Flags().String("ticker", "", "The underlying ticker.")
	bestCmd.Flags().Float64("expected-price", 0, "The expected underlying price.")
	bestCmd.Flags().String("expected-date", "", "The date the expected price is reached (YYYY-MM-DD).")
	bestCmd.Flags().Int("days-after-target", 0, "Days after the expected date to include expirations for. Defaults to the config value.")
	bestCmd.Flags().Float64("dividend-yield", 0, "Continuous dividend yield as a decimal.")
	bestCmd.Flags().Float64("risk-free-rate", 0, "Risk-free rate in percent. Fetched when omitted.")
	bestCmd.MarkFlagRequired("ticker")
	bestCmd.MarkFlagRequired("expected-price")
	bestCmd.MarkFlagRequired("expected-date")

	zeroDTECmd.Flags().String("ticker", "", "The underlying ticker.")
	zeroDTECmd.Flags().String("option-type", "call", "call or put.")
	zeroDTECmd.MarkFlagRequired("ticker")

	serveCmd.Flags().Int("port", 8080, "The port to listen on.")

	rootCmd.AddCommand(mispricingCmd, surfaceCmd, bestCmd, zeroDTECmd, consensusCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
