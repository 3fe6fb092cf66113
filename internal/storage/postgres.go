package storage

import (
	"context"
	"time"

	"github.com/lmodev/asaa_quiz/internal/config"
	"github.com/lmodev/asaa_quiz/internal/models"
	"github.com/lmodev/asaa_quiz/pkg/errors"
	"github.com/lmodev/asaa_quiz/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// RemoteStore is the pooled relational backend.
type RemoteStore struct {
	db  *gorm.DB
	now func() time.Time
}

// OpenRemoteStore connects to the configured database and runs the idempotent
// schema initialization: create-if-absent tables plus the singleton config
// row. Any error here means the caller must fall back to the local store for
// the rest of the process lifetime.
func OpenRemoteStore(cfg *config.Config) (*RemoteStore, error) {
	var logLevel gormlogger.LogLevel
	if cfg.AppEnv == "development" {
		logLevel = gormlogger.Info
	} else {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get database instance")
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	store := &RemoteStore{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		return nil, err
	}

	logger.Info("Remote store connected and migrated")
	return store, nil
}

// newRemoteStoreWithDB wires an existing gorm handle; used by tests.
func newRemoteStoreWithDB(db *gorm.DB) *RemoteStore {
	return &RemoteStore{db: db, now: time.Now}
}

func (r *RemoteStore) migrate() error {
	err := r.db.AutoMigrate(
		&models.User{},
		&models.QuizResult{},
		&models.Question{},
		&models.UserBadge{},
		&models.GlobalStateRow{},
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "migration failed")
	}

	// Seed the singleton config row only when it does not exist yet.
	var row models.GlobalStateRow
	result := r.db.Where("key = ?", models.GlobalStateKey).First(&row)
	if result.Error == gorm.ErrRecordNotFound {
		row = models.GlobalStateRow{Key: models.GlobalStateKey, Value: models.DefaultGlobalState()}
		if err := r.db.Create(&row).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to seed global state")
		}
	} else if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check global state")
	}

	return nil
}

func (r *RemoteStore) SaveUser(ctx context.Context, user models.User) error {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "last_played_date"}),
	}).Create(&user)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to save user")
	}
	return nil
}

func (r *RemoteStore) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list users")
	}
	return users, nil
}

func (r *RemoteStore) SaveResult(ctx context.Context, result models.QuizResult) error {
	if err := r.db.WithContext(ctx).Create(&result).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to save result")
	}

	today := r.now().UTC().Format("2006-01-02")
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", result.Username).
		Update("last_played_date", today).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update last played date")
	}
	return nil
}

func (r *RemoteStore) ListResults(ctx context.Context) ([]models.QuizResult, error) {
	var results []models.QuizResult
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&results).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list results")
	}
	return results, nil
}

func (r *RemoteStore) SaveQuestion(ctx context.Context, q *models.Question) error {
	if q.ID != 0 {
		// Updating an absent id affects zero rows and reports no error.
		err := r.db.WithContext(ctx).Model(&models.Question{ID: q.ID}).
			Select("question_text", "options", "correct_answer_index", "explanation", "difficulty", "source").
			Updates(q).Error
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update question")
		}
		return nil
	}

	if err := r.db.WithContext(ctx).Create(q).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create question")
	}
	return nil
}

func (r *RemoteStore) DeleteQuestion(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Question{}, id).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to delete question")
	}
	return nil
}

func (r *RemoteStore) ListQuestions(ctx context.Context) ([]models.Question, error) {
	var questions []models.Question
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&questions).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list questions")
	}
	return questions, nil
}

func (r *RemoteStore) GlobalState(ctx context.Context) (models.GlobalState, error) {
	var row models.GlobalStateRow
	result := r.db.WithContext(ctx).Where("key = ?", models.GlobalStateKey).First(&row)
	if result.Error == gorm.ErrRecordNotFound {
		return models.DefaultGlobalState(), nil
	}
	if result.Error != nil {
		return models.GlobalState{}, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get global state")
	}
	return row.Value, nil
}

func (r *RemoteStore) SaveGlobalState(ctx context.Context, state models.GlobalState) error {
	row := models.GlobalStateRow{Key: models.GlobalStateKey, Value: state}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to save global state")
	}
	return nil
}

func (r *RemoteStore) UserBadges(ctx context.Context, username string) ([]models.UserBadge, error) {
	var badges []models.UserBadge
	err := r.db.WithContext(ctx).Where("username = ?", username).Find(&badges).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list user badges")
	}
	return badges, nil
}

func (r *RemoteStore) AwardBadge(ctx context.Context, badge models.UserBadge) error {
	// ON CONFLICT DO NOTHING keeps the award idempotent under concurrent
	// submissions of the same user.
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&badge)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to award badge")
	}
	return nil
}
