package run

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

var printer = message.NewPrinter(language.English)

func dollars(v float64) string {
	return fmt.Sprintf("$%s", printer.Sprintf("%.2f", v))
}

func header(w io.Writer, contract eventmodels.OptionSymbol) {
	if description, err := contract.Description(); err == nil {
		fmt.Fprintf(w, "%s\n", description)
	} else {
		fmt.Fprintf(w, "%s\n", contract)
	}
}

func newTable(w io.Writer, headers ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetColumnSeparator("")
	return table
}

func PrintMispricing(w io.Writer, result *eventmodels.MispricingResult) {
	header(w, result.Contract)

	table := newTable(w, "Market IV", "Model IV", "Premium", "Threshold", "Classification")
	table.Append([]string{
		fmt.Sprintf("%.2f%%", result.MarketIV),
		fmt.Sprintf("%.2f%%", result.ModelIV),
		fmt.Sprintf("%.4f", result.Premium),
		fmt.Sprintf("%.2f", result.Threshold),
		strings.ToUpper(string(result.Classification)),
	})
	table.Render()
}

// PrintSurface renders one row per price level, highest first, and one column per date.
func PrintSurface(w io.Writer, surface *eventmodels.ProfitabilitySurface) {
	header(w, surface.Contract)
	fmt.Fprintf(w, "last %s  model %s\n", dollars(surface.LastPrice), dollars(surface.CurrentModelPrice))

	headers := []string{"Price"}
	for _, d := range surface.Dates {
		headers = append(headers, d.Format("01-02"))
	}

	table := newTable(w, headers...)
	for i := len(surface.PriceLevels) - 1; i >= 0; i-- {
		label := dollars(surface.PriceLevels[i])
		if surface.Interpolated[i] {
			label += "*"
		}

		row := []string{label}
		for j := range surface.Dates {
			cell := dollars(surface.Values[i][j])
			if change, err := surface.ChangePercent(surface.Values[i][j]); err == nil {
				cell = fmt.Sprintf("%s (%+.0f%%)", cell, change)
			}
			row = append(row, cell)
		}
		table.Append(row)
	}
	table.Render()

	lo, hi := surface.Range()
	fmt.Fprintf(w, "range %s .. %s  (* interpolated)\n", dollars(lo), dollars(hi))
}

func PrintBest(w io.Writer, result *eventmodels.SelectBestResult) {
	if !result.Found || result.Best == nil {
		fmt.Fprintf(w, "%s\n", result.Message)
		return
	}

	best := result.Best
	header(w, best.Symbol)

	table := newTable(w, "Type", "Strike", "Last", "IV", "Future", "Profit", "Candidates")
	table.Append([]string{
		string(result.OptionType),
		dollars(best.Strike),
		dollars(best.LastPrice),
		fmt.Sprintf("%.2f%%", best.ImpliedVolatility*100),
		dollars(best.FuturePrice),
		fmt.Sprintf("%.2f%%", best.PotentialProfitPercent),
		fmt.Sprintf("%d", result.Candidates),
	})
	table.Render()
}

func PrintZeroDTE(w io.Writer, result *eventmodels.ZeroDTEResult) {
	if !result.Found() || result.Selected == nil {
		fmt.Fprintf(w, "%s\n", result.Message)
		return
	}

	selected := result.Selected
	header(w, selected.Symbol)

	table := newTable(w, "Strike", "Last", "IV", "Volume", "ATM Distance", "Score")
	table.Append([]string{
		dollars(selected.Strike),
		dollars(selected.LastPrice),
		fmt.Sprintf("%.2f%%", selected.ImpliedVolatility*100),
		printer.Sprintf("%.0f", selected.Volume),
		fmt.Sprintf("%.2f", selected.DistanceToATM),
		fmt.Sprintf("%.4f", selected.SelectionScore),
	})
	table.Render()
}

func PrintConsensus(w io.Writer, result *eventmodels.ModelConsensus) {
	header(w, result.Contract)

	models := make([]string, 0, len(result.Prices))
	for model := range result.Prices {
		models = append(models, string(model))
	}
	sort.Strings(models)

	table := newTable(w, "Model", "Price")
	for _, model := range models {
		table.Append([]string{model, dollars(result.Prices[eventmodels.PricingModel(model)])})
	}
	table.SetFooter([]string{"average", dollars(result.Average)})
	table.Render()

	fmt.Fprintf(w, "last %s", dollars(result.LastPrice))
	if result.HistoricalVolatility != nil {
		fmt.Fprintf(w, "  historical vol %.2f%%", *result.HistoricalVolatility*100)
	}
	fmt.Fprintln(w)
}
