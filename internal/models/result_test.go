package models

import "testing"

func TestQuizResult_IsPerfect(t *testing.T) {
	tests := []struct {
		name   string
		result QuizResult
		want   bool
	}{
		{
			name:   "full marks on a six question quiz",
			result: QuizResult{Score: 30, TotalQuestions: 6},
			want:   true,
		},
		{
			name:   "full marks on a single question quiz",
			result: QuizResult{Score: 5, TotalQuestions: 1},
			want:   true,
		},
		{
			name:   "one miss",
			result: QuizResult{Score: 25, TotalQuestions: 6},
			want:   false,
		},
		{
			name:   "zero questions is never perfect",
			result: QuizResult{Score: 0, TotalQuestions: 0},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.IsPerfect(); got != tt.want {
				t.Errorf("IsPerfect() = %v, want %v", got, tt.want)
			}
		})
	}
}
