package service

import (
	"context"

	"sorty/internal/dto"
	"sorty/internal/infra"
	"sorty/internal/model"
	"sorty/internal/repository"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// exportPageSize bounds each page read while building the spreadsheet.
const exportPageSize = 100

type ReportService interface {
	Summary(ctx context.Context) (*dto.SummaryResponse, error)
	ExportAssets(ctx context.Context, filter dto.AssetFilter) ([]byte, error)
	AssignmentReceipt(ctx context.Context, assignmentID uuid.UUID) ([]byte, error)
}

type reportService struct {
	repo        repository.ReportRepository
	assets      repository.AssetRepository
	assignments repository.AssignmentRepository
	orgName     string
}

func NewReportService(
	repo repository.ReportRepository,
	assets repository.AssetRepository,
	assignments repository.AssignmentRepository,
	orgName string,
) ReportService {
	return &reportService{repo: repo, assets: assets, assignments: assignments, orgName: orgName}
}

func (s *reportService) Summary(ctx context.Context) (*dto.SummaryResponse, error) {
	byStatus, err := s.repo.AssetsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.repo.AssetsByCategory(ctx)
	if err != nil {
		return nil, err
	}
	cost, err := s.repo.TotalAcquisitionCost(ctx)
	if err != nil {
		return nil, err
	}
	activeAssignments, err := s.repo.CountWhere(ctx, "asset_assignments",
		sq.Eq{"status": string(model.AssignmentActive)})
	if err != nil {
		return nil, err
	}
	openMaintenance, err := s.repo.CountWhere(ctx, "maintenances",
		sq.Eq{"status": []string{string(model.MaintenanceScheduled), string(model.MaintenanceInProgress)}})
	if err != nil {
		return nil, err
	}
	openIncidents, err := s.repo.CountWhere(ctx, "incidents",
		sq.Eq{"status": []string{string(model.IncidentReported), string(model.IncidentInvestigating)}})
	if err != nil {
		return nil, err
	}

	resp := &dto.SummaryResponse{
		ByStatus:             make(map[string]int64, len(byStatus)),
		TotalAcquisitionCost: cost,
		ActiveAssignments:    activeAssignments,
		OpenMaintenance:      openMaintenance,
		OpenIncidents:        openIncidents,
		ByCategory: lo.Map(byCategory, func(c repository.CategoryAggregate, _ int) dto.CategoryCount {
			return dto.CategoryCount{
				CategoryID:   c.CategoryID.String(),
				CategoryName: c.CategoryName,
				Assets:       c.Total,
				TotalCost:    c.TotalCost,
			}
		}),
	}
	for _, row := range byStatus {
		resp.ByStatus[row.Status] = row.Total
		resp.TotalAssets += row.Total
	}
	return resp, nil
}

// ExportAssets renders every asset matching filter (pagination fields are
// ignored) into an XLSX workbook.
func (s *reportService) ExportAssets(ctx context.Context, filter dto.AssetFilter) ([]byte, error) {
	var all []model.Asset
	filter.Limit = exportPageSize
	for page := 1; ; page++ {
		filter.Page = page
		batch, total, err := s.assets.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) == 0 || int64(len(all)) >= total {
			break
		}
	}
	return infra.RenderAssetWorkbook(all, now())
}

func (s *reportService) AssignmentReceipt(ctx context.Context, assignmentID uuid.UUID) ([]byte, error) {
	a, err := s.assignments.FindByID(ctx, assignmentID)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("asignación no encontrada")
		}
		return nil, err
	}
	return infra.RenderAssignmentReceipt(s.orgName, a)
}
