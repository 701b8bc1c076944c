package service

import (
	"go.uber.org/zap"

	"github.com/benbrewster85/risk-assessment-app-sub000/config"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/repository"
	"github.com/benbrewster85/risk-assessment-app-sub000/pkg/jwt"
	"github.com/benbrewster85/risk-assessment-app-sub000/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Catalog    CatalogService
	Allocation AllocationService
	Annotation AnnotationService
	Weather    WeatherService
	Board      BoardService
	Export     ExportService
	Calendar   CalendarService
}

// NewService 创建 Service 聚合。rdb 允许为 nil（无 Redis 部署）。
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	catalogSvc := NewCatalogService(repo, logger)
	allocationSvc := NewAllocationService(cfg, repo, logger)
	annotationSvc := NewAnnotationService(repo, logger)
	weatherSvc := NewWeatherService(&cfg.Weather, logger)

	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Catalog:    catalogSvc,
		Allocation: allocationSvc,
		Annotation: annotationSvc,
		Weather:    weatherSvc,
		Board:      NewBoardService(cfg, repo, catalogSvc, allocationSvc, annotationSvc, weatherSvc, logger),
		Export:     NewExportService(catalogSvc, allocationSvc, logger),
		Calendar:   NewCalendarService(repo, catalogSvc, allocationSvc, logger),
	}
}
