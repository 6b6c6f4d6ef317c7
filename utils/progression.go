package utils

// LevelForXP derives the level deterministically from lifetime XP.
func LevelForXP(xp int64) int {
	return 1 + int(xp/XPPerLevel)
}

// RankForLevel maps a level onto its display rank tier.
func RankForLevel(level int) string {
	switch {
	case level >= 50:
		return "Legend"
	case level >= 40:
		return "Diamond"
	case level >= 30:
		return "Master"
	case level >= 20:
		return "Gold"
	case level >= 10:
		return "Silver"
	default:
		return "Bronze"
	}
}
