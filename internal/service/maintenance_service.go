package service

import (
	"context"

	"sorty/internal/dto"
	"sorty/internal/model"
	"sorty/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// MaintenanceService: SCHEDULED → IN_PROGRESS → COMPLETED, SCHEDULED → CANCELLED.
// At most one SCHEDULED or IN_PROGRESS maintenance exists per asset.
type MaintenanceService interface {
	Schedule(ctx context.Context, actorID uuid.UUID, req dto.ScheduleMaintenanceRequest) (*dto.MaintenanceResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateMaintenanceRequest) (*dto.MaintenanceResponse, error)
	Start(ctx context.Context, id uuid.UUID) (*dto.MaintenanceResponse, error)
	Complete(ctx context.Context, id uuid.UUID, req dto.CompleteMaintenanceRequest) (*dto.MaintenanceResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, req dto.CancelMaintenanceRequest) (*dto.MaintenanceResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.MaintenanceResponse, error)
	List(ctx context.Context, filter dto.MaintenanceFilter) (*dto.MaintenanceListResponse, error)
}

type maintenanceService struct {
	repo   repository.MaintenanceRepository
	assets repository.AssetRepository
	cache  AssetCache
}

func NewMaintenanceService(repo repository.MaintenanceRepository, assets repository.AssetRepository, cache AssetCache) MaintenanceService {
	if cache == nil {
		cache = noopAssetCache{}
	}
	return &maintenanceService{repo: repo, assets: assets, cache: cache}
}

func (s *maintenanceService) Schedule(ctx context.Context, actorID uuid.UUID, req dto.ScheduleMaintenanceRequest) (*dto.MaintenanceResponse, error) {
	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		return nil, invalidInput("asset_id inválido")
	}

	var m *model.Maintenance
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		asset, err := lockAsset(s.assets, tx, assetID)
		if err != nil {
			return err
		}
		if asset.Status == model.AssetDecommissioned {
			return invalidState("el activo %s está dado de baja", asset.Code)
		}
		open, err := s.repo.HasOpenTx(tx, assetID)
		if err != nil {
			return err
		}
		if open {
			return conflict("el activo %s ya tiene un mantenimiento abierto", asset.Code)
		}

		m = &model.Maintenance{
			AssetID:       assetID,
			Type:          model.MaintenanceType(req.Type),
			Status:        model.MaintenanceScheduled,
			Title:         req.Title,
			Description:   req.Description,
			ScheduledDate: req.ScheduledDate,
			Provider:      req.Provider,
			Notes:         req.Notes,
			CreatedByID:   actorID,
		}
		if req.Cost != nil {
			m.Cost = *req.Cost
		}
		if err := s.repo.CreateTx(tx, m); err != nil {
			if isDuplicate(err) {
				return conflict("el activo %s ya tiene un mantenimiento abierto", asset.Code)
			}
			return err
		}
		m.Asset = asset
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().Str("asset_id", assetID.String()).Str("maintenance_id", m.ID.String()).Msg("maintenance scheduled")
	resp := maintenanceToResponse(m)
	return &resp, nil
}

func (s *maintenanceService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateMaintenanceRequest) (*dto.MaintenanceResponse, error) {
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		m, err := s.repo.LockTx(tx, id)
		if err != nil {
			if isNotFound(err) {
				return notFound("mantenimiento no encontrado")
			}
			return err
		}
		if m.Status != model.MaintenanceScheduled {
			return invalidState("solo se puede editar un mantenimiento en estado SCHEDULED")
		}
		if req.Title != nil {
			m.Title = *req.Title
		}
		if req.Description != nil {
			m.Description = req.Description
		}
		if req.ScheduledDate != nil {
			m.ScheduledDate = *req.ScheduledDate
		}
		if req.Cost != nil {
			m.Cost = *req.Cost
		}
		if req.Provider != nil {
			m.Provider = req.Provider
		}
		if req.Notes != nil {
			m.Notes = req.Notes
		}
		return s.repo.UpdateTx(tx, m)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Get(ctx, id)
}

func (s *maintenanceService) Start(ctx context.Context, id uuid.UUID) (*dto.MaintenanceResponse, error) {
	return s.transition(ctx, id, model.MaintenanceScheduled, func(tx *gorm.DB, m *model.Maintenance, asset *model.Asset) error {
		if asset.Status == model.AssetDecommissioned {
			return invalidState("el activo %s está dado de baja", asset.Code)
		}
		startedAt := now()
		m.Status = model.MaintenanceInProgress
		m.StartedAt = &startedAt
		asset.Status = model.AssetInRepair
		return s.assets.UpdateTx(tx, asset)
	})
}

func (s *maintenanceService) Complete(ctx context.Context, id uuid.UUID, req dto.CompleteMaintenanceRequest) (*dto.MaintenanceResponse, error) {
	return s.transition(ctx, id, model.MaintenanceInProgress, func(tx *gorm.DB, m *model.Maintenance, asset *model.Asset) error {
		completedAt := now()
		m.Status = model.MaintenanceCompleted
		m.CompletedDate = &completedAt
		if req.Cost != nil {
			m.Cost = *req.Cost
		}
		if req.Notes != nil {
			m.Notes = req.Notes
		}
		if asset.Status != model.AssetInRepair {
			return nil
		}
		if asset.AssignedToID != nil {
			asset.Status = model.AssetInUse
		} else {
			asset.Status = model.AssetAvailable
		}
		return s.assets.UpdateTx(tx, asset)
	})
}

func (s *maintenanceService) Cancel(ctx context.Context, id uuid.UUID, req dto.CancelMaintenanceRequest) (*dto.MaintenanceResponse, error) {
	return s.transition(ctx, id, model.MaintenanceScheduled, func(_ *gorm.DB, m *model.Maintenance, _ *model.Asset) error {
		m.Status = model.MaintenanceCancelled
		if req.Reason != nil {
			m.Notes = req.Reason
		}
		return nil
	})
}

// transition locks the maintenance and its asset, checks the required prior
// status, applies fn and persists the maintenance row.
func (s *maintenanceService) transition(
	ctx context.Context,
	id uuid.UUID,
	from model.MaintenanceStatus,
	fn func(tx *gorm.DB, m *model.Maintenance, asset *model.Asset) error,
) (*dto.MaintenanceResponse, error) {
	var m *model.Maintenance
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		m, err = s.repo.LockTx(tx, id)
		if err != nil {
			if isNotFound(err) {
				return notFound("mantenimiento no encontrado")
			}
			return err
		}
		if m.Status != from {
			return invalidState("el mantenimiento requiere estado %s (actual: %s)", from, m.Status)
		}
		asset, err := lockAsset(s.assets, tx, m.AssetID)
		if err != nil {
			return err
		}
		if err := fn(tx, m, asset); err != nil {
			return err
		}
		if err := s.repo.UpdateTx(tx, m); err != nil {
			return err
		}
		m.Asset = asset
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.cache.Invalidate(ctx, m.Asset.Code)
	log.Info().
		Str("maintenance_id", id.String()).
		Str("asset_id", m.AssetID.String()).
		Str("status", string(m.Status)).
		Msg("maintenance transition")
	resp := maintenanceToResponse(m)
	return &resp, nil
}

func (s *maintenanceService) Get(ctx context.Context, id uuid.UUID) (*dto.MaintenanceResponse, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := maintenanceToResponse(m)
	return &resp, nil
}

func (s *maintenanceService) List(ctx context.Context, filter dto.MaintenanceFilter) (*dto.MaintenanceListResponse, error) {
	filter.Page, filter.Limit = repository.Page(filter.Page, filter.Limit)
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.MaintenanceListResponse{
		Data: lo.Map(list, func(m model.Maintenance, _ int) dto.MaintenanceResponse {
			return maintenanceToResponse(&m)
		}),
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *maintenanceService) find(ctx context.Context, id uuid.UUID) (*model.Maintenance, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("mantenimiento no encontrado")
		}
		return nil, err
	}
	return m, nil
}
