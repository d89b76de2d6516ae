package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/alejandrodnm/crowdfolio/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implements ports.Notifier.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole creates a notifier that writes to stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter creates a notifier for tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// Notify prints the run results in the configured mode.
func (c *Console) Notify(_ context.Context, run domain.RunResult) error {
	if len(run.Traders) == 0 {
		fmt.Fprintf(c.out, "[%s] no traders in run\n", run.ID)
		return nil
	}

	if c.table {
		c.printFull(run)
	} else {
		c.printCompact(run)
	}

	return nil
}

// printCompact prints the essentials in one line per trader.
func (c *Console) printCompact(run domain.RunResult) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s..%s] %d traders",
		run.Start.Format(domain.DateLayout), run.End.Format(domain.DateLayout),
		len(run.Traders))

	for _, trader := range run.Traders {
		fmt.Fprintf(&sb, " | r/%s val:$%s pnl:$%s",
			trader.Community,
			trader.FinalValue().StringFixed(2),
			trader.ProfitLoss().StringFixed(2))
	}

	fmt.Fprintln(c.out, sb.String())
}

// printFull prints the per-trader table plus a holdings breakdown.
func (c *Console) printFull(run domain.RunResult) {
	fmt.Fprintf(c.out, "\nrun %s — %s to %s\n",
		run.ID, run.Start.Format(domain.DateLayout), run.End.Format(domain.DateLayout))

	c.printTable(run)
	c.printHoldings(run)
}

func (c *Console) printTable(run domain.RunResult) {
	table := tablewriter.NewWriter(c.out)
	table.Header("Community", "Final value", "Cost basis", "P/L", "Positions", "Days")

	for _, trader := range run.Traders {
		table.Append(
			"r/"+trader.Community,
			"$"+trader.FinalValue().StringFixed(2),
			"$"+trader.CostBasis.StringFixed(2),
			"$"+trader.ProfitLoss().StringFixed(2),
			fmt.Sprintf("%d", countOpen(trader.Holdings)),
			fmt.Sprintf("%d", len(trader.History)),
		)
	}

	table.Render()

	fmt.Fprintln(c.out, "  Final value = holdings at last open price | P/L = value - cost basis")
}

// printHoldings lists each trader's largest open positions.
func (c *Console) printHoldings(run domain.RunResult) {
	for _, trader := range run.Traders {
		top := topHoldings(trader.Holdings, 5)
		if len(top) == 0 {
			fmt.Fprintf(c.out, "\n  r/%s: no open positions\n", trader.Community)
			continue
		}

		fmt.Fprintf(c.out, "\n  r/%s top positions:", trader.Community)
		for _, h := range top {
			fmt.Fprintf(c.out, " %s×%d", h.symbol, h.quantity)
		}
		if open := countOpen(trader.Holdings); open > len(top) {
			fmt.Fprintf(c.out, " (+%d more)", open-len(top))
		}
		fmt.Fprintln(c.out)
	}
	fmt.Fprintln(c.out)
}

type holding struct {
	symbol   string
	quantity int
}

// topHoldings returns the n largest positions, quantity descending and
// symbol ascending on ties. Zero-quantity symbols are left out.
func topHoldings(holdings map[string]int, n int) []holding {
	out := make([]holding, 0, len(holdings))
	for symbol, quantity := range holdings {
		if quantity <= 0 {
			continue
		}
		out = append(out, holding{symbol: symbol, quantity: quantity})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].quantity != out[j].quantity {
			return out[i].quantity > out[j].quantity
		}
		return out[i].symbol < out[j].symbol
	})

	if len(out) > n {
		out = out[:n]
	}
	return out
}

func countOpen(holdings map[string]int) int {
	n := 0
	for _, quantity := range holdings {
		if quantity > 0 {
			n++
		}
	}
	return n
}
