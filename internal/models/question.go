package models

import "gorm.io/gorm"

type Question struct {
	ID                 uint     `gorm:"primaryKey" json:"id,omitempty"`
	QuestionText       string   `gorm:"type:text;not null" json:"questionText"`
	Options            []string `gorm:"serializer:json;type:jsonb;not null" json:"options"`
	CorrectAnswerIndex int      `gorm:"not null" json:"correctAnswerIndex"`
	Explanation        string   `gorm:"type:text" json:"explanation,omitempty"`
	Difficulty         string   `gorm:"type:varchar(10)" json:"difficulty,omitempty"`
	Source             string   `gorm:"type:varchar(10)" json:"source,omitempty"`
}

// Difficulty levels. DifficultyAdaptive is a quiz mode, not a per-question
// level: stored questions always carry one of the four fixed levels.
const (
	DifficultyEasy     = "EASY"
	DifficultyMedium   = "MEDIUM"
	DifficultyHard     = "HARD"
	DifficultyExpert   = "EXPERT"
	DifficultyAdaptive = "ADAPTIVE"
)

const (
	SourceAI     = "AI"
	SourceManual = "MANUAL"
)

const OptionCount = 4

// ValidDifficulty reports whether level is a selectable quiz difficulty.
func ValidDifficulty(level string) bool {
	switch level {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert, DifficultyAdaptive:
		return true
	}
	return false
}

// BeforeSave hook for validation
func (q *Question) BeforeSave(tx *gorm.DB) error {
	if q.QuestionText == "" {
		return gorm.ErrInvalidData
	}
	if len(q.Options) != OptionCount {
		return gorm.ErrInvalidData
	}
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= OptionCount {
		return gorm.ErrInvalidData
	}
	return nil
}

func (Question) TableName() string {
	return "questions"
}
