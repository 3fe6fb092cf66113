package storage

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lmodev/asaa_quiz/internal/models"
)

func newMockRemoteStore(t *testing.T) (*RemoteStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	store := newRemoteStoreWithDB(gdb)
	store.now = func() time.Time {
		return time.Date(2026, 9, 1, 21, 0, 0, 0, time.UTC)
	}
	return store, mock
}

func TestRemoteStore_ListQuestionsNewestFirst(t *testing.T) {
	store, mock := newMockRemoteStore(t)

	rows := sqlmock.NewRows([]string{"id", "question_text", "options", "correct_answer_index", "explanation", "difficulty", "source"}).
		AddRow(2, "deuxième", `["a","b","c","d"]`, 1, "", "MEDIUM", "MANUAL").
		AddRow(1, "première", `["a","b","c","d"]`, 0, "", "EASY", "MANUAL")
	mock.ExpectQuery(`SELECT \* FROM "questions" ORDER BY id DESC`).WillReturnRows(rows)

	questions, err := store.ListQuestions(context.Background())
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, uint(2), questions[0].ID)
	assert.Equal(t, []string{"a", "b", "c", "d"}, questions[0].Options)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoteStore_AwardBadgeOnConflictDoesNothing(t *testing.T) {
	store, mock := newMockRemoteStore(t)

	mock.ExpectExec(`INSERT INTO "user_badges" .* ON CONFLICT DO NOTHING`).
		WithArgs("Aicha", models.BadgeFirstStep, "2026-09-01").
		WillReturnResult(sqlmock.NewResult(0, 0))

	badge := models.UserBadge{Username: "Aicha", BadgeID: models.BadgeFirstStep, DateEarned: "2026-09-01"}
	require.NoError(t, store.AwardBadge(context.Background(), badge))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoteStore_UpdateAbsentQuestionIsNoop(t *testing.T) {
	store, mock := newMockRemoteStore(t)

	mock.ExpectExec(`UPDATE "questions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	q := models.Question{
		ID:                 42,
		QuestionText:       "fantôme",
		Options:            []string{"a", "b", "c", "d"},
		CorrectAnswerIndex: 0,
	}
	require.NoError(t, store.SaveQuestion(context.Background(), &q))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoteStore_GlobalStateDefaultWhenMissing(t *testing.T) {
	store, mock := newMockRemoteStore(t)

	mock.ExpectQuery(`SELECT \* FROM "global_state"`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}))

	state, err := store.GlobalState(context.Background())
	require.NoError(t, err)
	assert.False(t, state.IsManualOverride)
	assert.False(t, state.IsQuizOpen)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoteStore_SaveResultBumpsLastPlayedDate(t *testing.T) {
	store, mock := newMockRemoteStore(t)

	mock.ExpectQuery(`INSERT INTO "results"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(`UPDATE "users" SET "last_played_date"`).
		WithArgs("2026-09-01", "Aicha").
		WillReturnResult(sqlmock.NewResult(0, 1))

	result := models.QuizResult{Username: "Aicha", Score: 30, TotalQuestions: 6, Date: "2026-09-01T21:00:00Z"}
	require.NoError(t, store.SaveResult(context.Background(), result))
	require.NoError(t, mock.ExpectationsWereMet())
}
