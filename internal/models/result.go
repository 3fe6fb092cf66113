package models

// PointsPerQuestion is the fixed score awarded for each correct answer.
const PointsPerQuestion = 5

// QuizResult is append-only: results are never updated or deleted once saved.
type QuizResult struct {
	ID              uint   `gorm:"primaryKey" json:"-"`
	Username        string `gorm:"type:varchar(100);not null;index" json:"username"`
	Score           int    `gorm:"not null" json:"score"`
	TotalQuestions  int    `gorm:"not null" json:"totalQuestions"`
	Date            string `gorm:"type:varchar(40);not null" json:"date"`
	DifficultyLevel string `gorm:"type:varchar(20)" json:"difficultyLevel,omitempty"`
}

// IsPerfect reports whether every question in this result was answered
// correctly under the fixed per-question point value.
func (r QuizResult) IsPerfect() bool {
	return r.TotalQuestions > 0 && r.Score == r.TotalQuestions*PointsPerQuestion
}

func (QuizResult) TableName() string {
	return "results"
}
