package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseStake parses a stake string against the caller's balance. Accepted
// forms: plain numbers ("25", "10.50"), "all"/"allin"/"max", "half",
// percentages ("25%") and magnitude suffixes ("5k", "1m"). The result is
// rounded to cents; validity against the balance is the ledger's job.
func ParseStake(stakeStr string, balance float64) (float64, error) {
	stakeStr = strings.TrimSpace(strings.ToLower(stakeStr))
	stakeStr = strings.ReplaceAll(stakeStr, ",", "")
	stakeStr = strings.ReplaceAll(stakeStr, "_", "")

	switch stakeStr {
	case "all", "allin", "max":
		return RoundCents(balance), nil
	case "half":
		return RoundCents(balance / 2), nil
	}

	if strings.HasSuffix(stakeStr, "%") {
		percent, err := strconv.ParseFloat(strings.TrimSuffix(stakeStr, "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrInvalidStake, stakeStr)
		}
		if percent < 0 || percent > 100 {
			return 0, fmt.Errorf("%w: percentage must be between 0 and 100", ErrInvalidStake)
		}
		return RoundCents(balance * percent / 100), nil
	}

	multiplier := 1.0
	if strings.HasSuffix(stakeStr, "k") {
		multiplier = 1_000
		stakeStr = strings.TrimSuffix(stakeStr, "k")
	} else if strings.HasSuffix(stakeStr, "m") {
		multiplier = 1_000_000
		stakeStr = strings.TrimSuffix(stakeStr, "m")
	}

	stake, err := strconv.ParseFloat(stakeStr, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidStake, stakeStr)
	}

	return RoundCents(stake * multiplier), nil
}

// RoundCents rounds a money amount to two decimals.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatMoney renders an amount the way the bot displays balances.
func FormatMoney(amount float64) string {
	switch {
	case amount >= 1_000_000:
		return fmt.Sprintf("$%.2fM", amount/1_000_000)
	case amount >= 1_000:
		return fmt.Sprintf("$%.2fK", amount/1_000)
	default:
		return fmt.Sprintf("$%.2f", amount)
	}
}
