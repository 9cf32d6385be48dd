package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/bet-journal/internal/logger"
	"github.com/yourusername/bet-journal/internal/models"
	"github.com/yourusername/bet-journal/internal/service"
)

type settleFlags struct {
	wagerType    string
	stake        float64
	odds         float64
	position     int
	terms        string
	paidPlaces   int
	combinedOdds float64
	dividend     string
	flexi        float64
	payout       float64
	won          bool
	pending      bool
	asJSON       bool
}

var settleOpts settleFlags

func init() {
	f := settleCmd.Flags()
	f.StringVarP(&settleOpts.wagerType, "type", "t", "win", "Wager type (win, place, each-way, lay, multi, quinella, exacta, trifecta, first-four, other)")
	f.Float64VarP(&settleOpts.stake, "stake", "s", 0, "Total stake")
	f.Float64VarP(&settleOpts.odds, "odds", "o", 0, "Decimal odds")
	f.IntVarP(&settleOpts.position, "position", "p", 0, "Finishing position of the selection")
	f.StringVar(&settleOpts.terms, "terms", "", `Each-way place terms, e.g. "1/4 odds, 3 places"`)
	f.IntVar(&settleOpts.paidPlaces, "paid-places", 0, "Places paid for a place bet")
	f.Float64Var(&settleOpts.combinedOdds, "combined-odds", 0, "Combined odds for a multi")
	f.StringVar(&settleOpts.dividend, "dividend", "", `Tote dividend for an exotic, e.g. "$24.50"`)
	f.Float64Var(&settleOpts.flexi, "flexi", 0, "Flexi percentage for an exotic")
	f.Float64Var(&settleOpts.payout, "payout", 0, "Payout returned for an 'other' bet")
	f.BoolVar(&settleOpts.won, "won", false, "Whether a multi or 'other' bet won")
	f.BoolVar(&settleOpts.pending, "pending", false, "Settle every pending wager in the journal instead of one from flags")
	f.BoolVar(&settleOpts.asJSON, "json", false, "Print the result as JSON")
}

var settleCmd = &cobra.Command{
	Use:   "settle",
	Short: "Compute profit/loss for a wager",
	Long: `Computes the profit/loss of a single wager described by flags, or with --pending
settles every pending wager in the journal and stores the results.`,
	Example: `  betjournal settle --type each-way --stake 20 --odds 8 --position 2 --terms "1/4 odds, 3 places"
  betjournal settle --type trifecta --stake 10 --position 1 --dividend '$245.60' --flexi 50
  betjournal settle --pending --file wagers.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if settleOpts.pending {
			return runSettlePending(cmd)
		}

		w, err := wagerFromFlags(settleOpts, flagsSet(cmd, "position", "paid-places", "combined-odds", "flexi", "payout", "won"))
		if err != nil {
			return err
		}
		settled, prompt, err := service.SettleOne(w)
		if err != nil {
			return err
		}
		return printSettlement(cmd.OutOrStdout(), settled, prompt, settleOpts.asJSON)
	},
}

func flagsSet(cmd *cobra.Command, names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = cmd.Flags().Changed(name)
	}
	return set
}

// wagerFromFlags builds a wager; optional fields are only set when their flag was given
func wagerFromFlags(opts settleFlags, set map[string]bool) (models.Wager, error) {
	wagerType, err := models.ParseWagerType(opts.wagerType)
	if err != nil {
		return models.Wager{}, err
	}

	w := models.Wager{
		Type:       wagerType,
		Stake:      opts.stake,
		Odds:       opts.odds,
		PlaceTerms: opts.terms,
		Dividend:   opts.dividend,
		BetDate:    time.Now().UTC(),
	}
	if set["position"] {
		w.FinishingPosition = models.IntPtr(opts.position)
	}
	if set["paid-places"] {
		w.PaidPlaces = models.IntPtr(opts.paidPlaces)
	}
	if set["combined-odds"] {
		w.CombinedOdds = models.Float64Ptr(opts.combinedOdds)
	}
	if set["flexi"] {
		w.FlexiPercent = models.Float64Ptr(opts.flexi)
	}
	if set["payout"] {
		w.Payout = models.Float64Ptr(opts.payout)
	}
	if set["won"] {
		w.Won = models.BoolPtr(opts.won)
	}
	return w, nil
}

func printSettlement(out io.Writer, w models.Wager, prompt *service.Prompt, asJSON bool) error {
	if asJSON {
		result := struct {
			Type       models.WagerType `json:"type"`
			ProfitLoss *float64         `json:"profit_loss"`
			Prompt     *service.Prompt  `json:"prompt,omitempty"`
		}{Type: w.Type, ProfitLoss: w.ProfitLoss, Prompt: prompt}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if prompt != nil {
		_, err := fmt.Fprintf(out, "Cannot settle %s bet (%s): %s\n  %s\n", w.Type, prompt.Reason, prompt.Detail, prompt.Message)
		return err
	}
	_, err := fmt.Fprintf(out, "%s bet profit/loss: %.2f\n", w.Type, *w.ProfitLoss)
	return err
}

func runSettlePending(cmd *cobra.Command) error {
	ctx := cmd.Context()
	id, err := userID()
	if err != nil {
		return err
	}
	repos, err := openRepositories(ctx)
	if err != nil {
		return err
	}

	svc := service.NewSettlementService(repos.Wager, nil, logger.NewSettlementLogger(appLog))
	if db != nil {
		svc.WithTransactor(db)
	}
	run, err := svc.SettlePending(ctx, id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if settleOpts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	}

	fmt.Fprintf(out, "Settled %d wager(s), %d still pending\n", len(run.Settled), len(run.Prompts))
	for _, w := range run.Settled {
		fmt.Fprintf(out, "  %s %s %s: %.2f\n", w.BetDate.Format("2006-01-02"), w.ID, w.Type, *w.ProfitLoss)
	}
	for _, p := range run.Prompts {
		fmt.Fprintf(out, "  %s %s: %s\n", p.WagerID, p.WagerType, p.Message)
	}
	return nil
}
