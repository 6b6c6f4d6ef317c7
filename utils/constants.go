package utils

import "time"

// Economy
const (
	StartingBalance = 1000.0
	XPPerWagered    = 0.1 // XP gained per unit wagered
	XPPerLevel      = 500 // level = 1 + xp/XPPerLevel
	WithdrawalFee   = 0.01
)

// Daily bonus
const (
	DailyBonusMin    = 10.0
	DailyBonusMax    = 100.0
	BonusCooldown    = 24 * time.Hour
	BonusStreakGrace = 48 * time.Hour // claim inside 24-48h keeps the streak alive
	StreakRewardDays = 10             // streak length that pays the flat reward
	StreakRewardFlat = 200.0

	DefaultPlaythroughMultiple = 1.0 // wagering required per unit of granted bonus
)

// Jackpot
const (
	JackpotSeed          = 5000.0
	JackpotContribution  = 0.02 // share of every bowling stake
	JackpotStrikesNeeded = 3    // consecutive strikes to win the pool
)

// Referrals
const (
	ReferralBonus = 50.0
	RefereeBonus  = 25.0
)

// PvP challenges
const (
	ChallengeTimeout       = 5 * time.Minute
	ChallengeSweepInterval = 60 * time.Second
)

// Persistence
const (
	DefaultDataFile     = "casino_data.json"
	DefaultSaveInterval = 300 * time.Second
	BackupInterval      = 24 * time.Hour
)

// LeaderboardSize is the number of entries shown on the balance leaderboard.
const LeaderboardSize = 10
