package services

import (
	"context"

	"ledgeradmin/internal/models"
	repo "ledgeradmin/internal/repository"
)

type StatsService struct{ r repo.Stats }

func NewStatsService(r repo.Stats) *StatsService { return &StatsService{r: r} }

func (s *StatsService) Overview(ctx context.Context) (models.StatsOverview, error) {
	return s.r.Overview(ctx)
}
