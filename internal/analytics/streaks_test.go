package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/bet-journal/internal/models"
)

func sequence(pls ...float64) []models.Wager {
	wagers := make([]models.Wager, 0, len(pls))
	start := day("2024-05-01")
	for i, pl := range pls {
		w := settled("2024-05-01", models.WagerTypeWin, 10, 3, pl)
		w.BetDate = start.AddDate(0, 0, i)
		wagers = append(wagers, w)
	}
	return wagers
}

func TestCalculateStreaks(t *testing.T) {
	tests := []struct {
		name string
		pls  []float64
		want Streaks
	}{
		{"empty", nil, Streaks{}},
		{"mixed", []float64{5, 3, -2, 1, 1}, Streaks{CurrentWin: 2, LongestWin: 2, LongestLoss: 1}},
		{"losing run at end", []float64{4, -1, -1, -1}, Streaks{CurrentLoss: 3, LongestWin: 1, LongestLoss: 3}},
		{"zero breaks both", []float64{1, 1, 0, 1}, Streaks{CurrentWin: 1, LongestWin: 2}},
		{"zero at end", []float64{-1, -1, 0}, Streaks{LongestLoss: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateStreaks(sequence(tt.pls...)))
		})
	}
}

func TestCalculateStreaksUsesDateOrder(t *testing.T) {
	wagers := sequence(5, 3, -2, 1, 1)
	reversed := make([]models.Wager, len(wagers))
	for i := range wagers {
		reversed[len(wagers)-1-i] = wagers[i]
	}
	reversed = append(reversed, pending("2024-05-03", 10))

	assert.Equal(t, CalculateStreaks(wagers), CalculateStreaks(reversed))
}
