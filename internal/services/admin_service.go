package services

import (
	"context"

	"github.com/lmodev/asaa_quiz/internal/models"
	"github.com/lmodev/asaa_quiz/internal/storage"
	"github.com/lmodev/asaa_quiz/pkg/logger"
)

// DashboardCounts feeds the admin home page.
type DashboardCounts struct {
	Users     int  `json:"users"`
	Questions int  `json:"questions"`
	Results   int  `json:"results"`
	Remote    bool `json:"remoteStore"`
}

// AdminService covers the global quiz switch and the dashboard overview.
type AdminService struct {
	store *storage.Facade
}

func NewAdminService(store *storage.Facade) *AdminService {
	return &AdminService{store: store}
}

func (s *AdminService) GlobalState(ctx context.Context) (models.GlobalState, error) {
	return s.store.GlobalState(ctx)
}

func (s *AdminService) SaveGlobalState(ctx context.Context, state models.GlobalState) error {
	if err := s.store.SaveGlobalState(ctx, state); err != nil {
		return err
	}
	logger.Info("global state updated", "manualOverride", state.IsManualOverride, "quizOpen", state.IsQuizOpen)
	return nil
}

func (s *AdminService) Dashboard(ctx context.Context) (*DashboardCounts, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	questions, err := s.store.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}
	results, err := s.store.ListResults(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardCounts{
		Users:     len(users),
		Questions: len(questions),
		Results:   len(results),
		Remote:    s.store.Remote(),
	}, nil
}
