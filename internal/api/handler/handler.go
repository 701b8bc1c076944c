package handler

import "github.com/benbrewster85/risk-assessment-app-sub000/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Board      *BoardHandler
	Annotation *AnnotationHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Board:      NewBoardHandler(svc.Board, svc.Catalog),
		Annotation: NewAnnotationHandler(svc.Annotation, svc.Board),
		Export:     NewExportHandler(svc.Export, svc.Calendar),
	}
}
