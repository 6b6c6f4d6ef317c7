package utils

import "errors"

// Ledger error taxonomy. Every value is checked with errors.Is by the
// collaborator surface; none of them leaves the ledger in a mutated state.
var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidStake       = errors.New("invalid stake")
	ErrWithdrawalGated    = errors.New("withdrawal gated by playthrough requirement")
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrChallengeExpired   = errors.New("challenge expired")
	ErrNotChallengeTarget = errors.New("not the challenge target")
	ErrSelfChallenge      = errors.New("cannot challenge yourself")
	ErrAlreadyReferred    = errors.New("account already has a referrer")
	ErrSelfReferral       = errors.New("cannot refer yourself")
)
