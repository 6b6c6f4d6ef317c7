package utils

import (
	"fmt"
	"log"
	"math"

	"antaria-go/games"
	"antaria-go/models"
)

// Ledger is the wager engine: it owns the debit→resolve→credit sequence and
// everything derived from it (stats, playthrough, jackpot, achievements).
// Each call runs as one critical section on the account, so two concurrent
// wagers from the same account serialize instead of interleaving.
type Ledger struct {
	store   *Store
	jackpot *JackpotManager
	board   *Leaderboard
	rng     games.Rand
}

// NewLedger wires the engine. rng is the injectable uniform source shared
// with the resolvers.
func NewLedger(store *Store, jackpot *JackpotManager, board *Leaderboard, rng games.Rand) *Ledger {
	return &Ledger{store: store, jackpot: jackpot, board: board, rng: rng}
}

// WagerResult is the structured outcome handed back to the presentation
// layer; rendering it is entirely the caller's concern.
type WagerResult struct {
	Game       games.Kind         `json:"game"`
	Prediction string             `json:"prediction"`
	Outcome    string             `json:"outcome"`
	Stake      float64            `json:"stake"`
	Payout     float64            `json:"payout"`
	Won        bool               `json:"won"`
	Push       bool               `json:"push"`
	Balance    float64            `json:"balance"`
	XPGained   int64              `json:"xp_gained"`
	Level      int                `json:"level"`
	WinStreak  int                `json:"win_streak"`
	JackpotWon float64            `json:"jackpot_won,omitempty"`
	Unlocked   []AchievementAward `json:"unlocked,omitempty"`
}

// PlaceWager validates the stake, then executes the full wager unit:
// debit, outcome resolution, winnings credit, derived stats, jackpot
// accounting and achievement evaluation, all under the account lock.
func (l *Ledger) PlaceWager(accountID int64, kind games.Kind, prediction string, stake float64) (*WagerResult, error) {
	if stake <= 0 || math.IsNaN(stake) || math.IsInf(stake, 0) {
		return nil, fmt.Errorf("%w: %.2f", ErrInvalidStake, stake)
	}
	if err := games.ValidatePrediction(kind, prediction); err != nil {
		return nil, err
	}
	stake = RoundCents(stake)

	result := &WagerResult{Game: kind, Prediction: prediction, Stake: stake}
	err := l.store.WithAccount(accountID, func(a *models.Account) error {
		if stake > a.Balance {
			return fmt.Errorf("%w: need %.2f, have %.2f", ErrInsufficientFunds, stake, a.Balance)
		}

		a.Balance = RoundCents(a.Balance - stake)
		a.TotalWagered = RoundCents(a.TotalWagered + stake)
		a.GamesPlayed++
		if stake > a.BiggestBet {
			a.BiggestBet = stake
		}
		recordPlaythrough(a, stake)
		l.store.RecordBet(stake)

		if kind == games.KindBowling {
			l.jackpot.Contribute(stake)
		}

		res, err := games.Resolve(l.rng, kind, prediction, stake)
		if err != nil {
			// Prediction was validated above; a resolver error here means
			// the debit must be undone before reporting it.
			a.Balance = RoundCents(a.Balance + stake)
			return err
		}

		switch {
		case res.Push:
			// Stake refunded, streak untouched.
			a.Balance = RoundCents(a.Balance + stake)
		case res.Won():
			a.Balance = RoundCents(a.Balance + stake + res.Payout)
			a.TotalWon = RoundCents(a.TotalWon + res.Payout)
			a.WinStreak++
			if a.WinStreak > a.MaxWinStreak {
				a.MaxWinStreak = a.WinStreak
			}
			l.store.RecordWin(res.Payout)
		default:
			a.WinStreak = 0
		}

		if kind == games.KindBowling {
			result.JackpotWon = l.jackpot.recordStrike(a, res.Outcome)
		}

		xp := int64(stake * XPPerWagered)
		a.XP += xp
		a.Level = LevelForXP(a.XP)

		result.Outcome = res.Outcome
		result.Payout = res.Payout
		result.Won = res.Won()
		result.Push = res.Push
		result.XPGained = xp
		result.Level = a.Level
		result.WinStreak = a.WinStreak
		result.Unlocked = EvaluateAchievements(a)
		result.Balance = a.Balance

		observeWager(string(kind), stake, res.Payout)
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.board.Update(accountID, result.Balance)
	return result, nil
}

// WithdrawResult reports a completed withdrawal.
type WithdrawResult struct {
	Amount  float64 `json:"amount"`
	Fee     float64 `json:"fee"`
	Net     float64 `json:"net"`
	Balance float64 `json:"balance"`
}

// Withdraw removes amount from the balance after the playthrough gate
// opens, taking the house fee out of the paid amount. Any successful
// withdrawal resets the bonus tracking fields.
func (l *Ledger) Withdraw(accountID int64, amount float64) (*WithdrawResult, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("%w: %.2f", ErrInvalidStake, amount)
	}
	amount = RoundCents(amount)

	result := &WithdrawResult{Amount: amount}
	err := l.store.WithAccount(accountID, func(a *models.Account) error {
		if !a.Withdrawable() {
			return fmt.Errorf("%w: wagered %.2f of %.2f",
				ErrWithdrawalGated, a.BonusWagered, a.PlaythroughRequired)
		}
		if amount > a.Balance {
			return fmt.Errorf("%w: need %.2f, have %.2f", ErrInsufficientFunds, amount, a.Balance)
		}

		a.Balance = RoundCents(a.Balance - amount)
		a.BonusLocked = 0
		a.PlaythroughRequired = 0
		a.BonusWagered = 0

		result.Fee = RoundCents(amount * WithdrawalFee)
		result.Net = RoundCents(amount - result.Fee)
		result.Balance = a.Balance
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.board.Update(accountID, result.Balance)
	log.Printf("[ledger] account %d withdrew %.2f (net %.2f)", accountID, result.Amount, result.Net)
	return result, nil
}

// RegisterReferral links referee to referrer (at most once) and pays both
// sides their one-time bonus. Locks both accounts in ascending id order.
func (l *Ledger) RegisterReferral(referrerID, refereeID int64) error {
	if referrerID == refereeID {
		return ErrSelfReferral
	}
	return l.store.WithAccounts(referrerID, refereeID, func(referrer, referee *models.Account) error {
		if referee.ReferredBy != nil {
			return ErrAlreadyReferred
		}
		id := referrerID
		referee.ReferredBy = &id
		referee.Balance = RoundCents(referee.Balance + RefereeBonus)
		referrer.Referrals = append(referrer.Referrals, refereeID)
		referrer.Balance = RoundCents(referrer.Balance + ReferralBonus)
		EvaluateAchievements(referrer)
		EvaluateAchievements(referee)
		return nil
	})
}
