package models

// Badge is a static catalog entry. The catalog is code-defined and never
// mutated at runtime; only UserBadge awards are persisted.
type Badge struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Icon          string `json:"icon"`
	ConditionType string `json:"conditionType"`
	Threshold     int    `json:"threshold"`
}

// Badge condition types. ConditionScore has no evaluation rule and never
// qualifies.
const (
	ConditionCount      = "COUNT"
	ConditionTotalScore = "TOTAL_SCORE"
	ConditionPerfect    = "PERFECT"
	ConditionScore      = "SCORE"
)

const (
	BadgeFirstStep     = "FIRST_STEP"
	BadgeRegular       = "REGULAR"
	BadgeVeteran       = "VETERAN"
	BadgePerfectionist = "PERFECTIONIST"
	BadgeScholar       = "SCHOLAR"
	BadgeMaster        = "MASTER"
)

// BadgeCatalog lists every badge the association hands out.
var BadgeCatalog = []Badge{
	{ID: BadgeFirstStep, Name: "Premier Pas", Description: "Terminer son premier quiz", Icon: "🦶", ConditionType: ConditionCount, Threshold: 1},
	{ID: BadgeRegular, Name: "Habitué", Description: "Jouer 10 fois", Icon: "🎗️", ConditionType: ConditionCount, Threshold: 10},
	{ID: BadgeVeteran, Name: "Vétéran", Description: "Jouer 50 fois", Icon: "🛡️", ConditionType: ConditionCount, Threshold: 50},
	{ID: BadgePerfectionist, Name: "Sans Faute", Description: "Obtenir 100% de bonnes réponses", Icon: "💎", ConditionType: ConditionPerfect, Threshold: 1},
	{ID: BadgeScholar, Name: "Savant", Description: "Cumuler 500 points au total", Icon: "📜", ConditionType: ConditionTotalScore, Threshold: 500},
	{ID: BadgeMaster, Name: "Maître", Description: "Cumuler 1000 points au total", Icon: "👑", ConditionType: ConditionTotalScore, Threshold: 1000},
}

// UserBadge records one earned badge. The composite key makes awards
// idempotent: at most one row per (username, badge) pair.
type UserBadge struct {
	Username   string `gorm:"primaryKey;type:varchar(100)" json:"username"`
	BadgeID    string `gorm:"primaryKey;type:varchar(40);column:badge_id" json:"badgeId"`
	DateEarned string `gorm:"type:varchar(40);not null" json:"dateEarned"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
