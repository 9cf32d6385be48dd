package analytics

import "github.com/yourusername/bet-journal/internal/models"

// Streaks describes runs of consecutive winners and losers in date order
type Streaks struct {
	CurrentWin  int `json:"current_win"`
	CurrentLoss int `json:"current_loss"`
	LongestWin  int `json:"longest_win"`
	LongestLoss int `json:"longest_loss"`
}

// CalculateStreaks scans settled wagers chronologically. A zero profit/loss breaks
// both a winning and a losing run.
func CalculateStreaks(wagers []models.Wager) Streaks {
	var s Streaks
	win, loss := 0, 0
	for _, w := range Chronological(wagers) {
		pl := *w.ProfitLoss
		switch {
		case pl > 0:
			win++
			loss = 0
		case pl < 0:
			loss++
			win = 0
		default:
			win, loss = 0, 0
		}
		if win > s.LongestWin {
			s.LongestWin = win
		}
		if loss > s.LongestLoss {
			s.LongestLoss = loss
		}
	}
	s.CurrentWin = win
	s.CurrentLoss = loss
	return s
}
