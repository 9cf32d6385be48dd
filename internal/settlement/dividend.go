package settlement

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyStripper = strings.NewReplacer(
	"AUD", "", "NZD", "", "A$", "", "NZ$", "",
	"$", "", "£", "", "€", "",
	",", "", " ", "", "\t", "",
)

// plainAmount accepts digits with an optional fraction; exponent notation is rejected.
var plainAmount = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)

// Dividend is a posted tote payout per $1 unit.
type Dividend struct {
	Amount decimal.Decimal
	Valid  bool
}

// ParseDividend reads a numeric or currency-formatted dividend ("24.5", "$1,024.50").
// Empty, negative, exponent-notation or otherwise unreadable input yields an invalid Dividend.
func ParseDividend(raw string) Dividend {
	cleaned := currencyStripper.Replace(strings.TrimSpace(raw))
	if !plainAmount.MatchString(cleaned) {
		return Dividend{}
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Dividend{}
	}
	return Dividend{Amount: amount, Valid: true}
}
