package service

import (
	"context"
	"fmt"

	"sorty/internal/dto"
	"sorty/internal/model"
	"sorty/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IncidentService: REPORTED → INVESTIGATING → RESOLVED → CLOSED, forward only.
// ROBO and PERDIDA decommission the asset at report time.
type IncidentService interface {
	Report(ctx context.Context, actorID uuid.UUID, req dto.ReportIncidentRequest) (*dto.IncidentResponse, error)
	Investigate(ctx context.Context, id uuid.UUID) (*dto.IncidentResponse, error)
	Resolve(ctx context.Context, actorID, id uuid.UUID, req dto.ResolveIncidentRequest) (*dto.IncidentResponse, error)
	Close(ctx context.Context, id uuid.UUID) (*dto.IncidentResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.IncidentResponse, error)
	List(ctx context.Context, filter dto.IncidentFilter) (*dto.IncidentListResponse, error)
}

type incidentService struct {
	repo        repository.IncidentRepository
	assets      repository.AssetRepository
	assignments repository.AssignmentRepository
	movements   repository.MovementRepository
	maintenance repository.MaintenanceRepository
	cache       AssetCache
}

func NewIncidentService(
	repo repository.IncidentRepository,
	assets repository.AssetRepository,
	assignments repository.AssignmentRepository,
	movements repository.MovementRepository,
	maintenance repository.MaintenanceRepository,
	cache AssetCache,
) IncidentService {
	if cache == nil {
		cache = noopAssetCache{}
	}
	return &incidentService{
		repo:        repo,
		assets:      assets,
		assignments: assignments,
		movements:   movements,
		maintenance: maintenance,
		cache:       cache,
	}
}

func (s *incidentService) Report(ctx context.Context, actorID uuid.UUID, req dto.ReportIncidentRequest) (*dto.IncidentResponse, error) {
	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		return nil, invalidInput("asset_id inválido")
	}
	kind := model.IncidentType(req.Type)

	var (
		asset    *model.Asset
		incident *model.Incident
	)
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Maintenance rows are locked before the asset, the same order the
		// maintenance transitions use.
		var openMaintenance []model.Maintenance
		if kind.Decommissions() {
			openMaintenance, err = s.maintenance.LockOpenByAssetTx(tx, assetID)
			if err != nil {
				return err
			}
		}
		asset, err = lockAsset(s.assets, tx, assetID)
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
			return conflict("el activo %s ya tiene un incidente abierto", asset.Code)
		}

		incident = &model.Incident{
			AssetID:      assetID,
			Type:         kind,
			Status:       model.IncidentReported,
			Description:  req.Description,
			IncidentDate: now(),
			ReportedByID: actorID,
		}
		if req.IncidentDate != nil {
			incident.IncidentDate = *req.IncidentDate
		}
		if req.Cost != nil {
			incident.Cost = *req.Cost
		}
		if err := s.repo.CreateTx(tx, incident); err != nil {
			if isDuplicate(err) {
				return conflict("el activo %s ya tiene un incidente abierto", asset.Code)
			}
			return err
		}

		if kind.Decommissions() {
			return s.decommissionTx(tx, actorID, asset, incident, openMaintenance)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("asset_id", assetID.String()).
		Str("incident_id", incident.ID.String()).
		Str("type", string(kind)).
		Msg("incident reported")
	if kind.Decommissions() {
		s.cache.Invalidate(ctx, asset.Code)
	}

	incident.Asset = asset
	resp := incidentToResponse(incident)
	return &resp, nil
}

// decommissionTx moves the asset to DECOMMISSIONED with a SALIDA/BAJA movement.
// Open maintenance and any ACTIVE assignment are closed first.
func (s *incidentService) decommissionTx(tx *gorm.DB, actorID uuid.UUID, asset *model.Asset, incident *model.Incident, open []model.Maintenance) error {
	at := now()
	for i := range open {
		open[i].Status = model.MaintenanceCancelled
		open[i].Notes = lo.ToPtr(fmt.Sprintf("Cancelado por incidente %s", incident.Type))
		if err := s.maintenance.UpdateTx(tx, &open[i]); err != nil {
			return err
		}
	}
	active, err := s.assignments.FindActiveByAssetTx(tx, asset.ID)
	switch {
	case err == nil:
		active.Status = model.AssignmentReturned
		active.ReturnedAt = &at
		active.ReturnNotes = lo.ToPtr(fmt.Sprintf("Cerrada automáticamente por incidente %s", incident.Type))
		active.ClosedByID = &actorID
		if err := s.assignments.CloseTx(tx, active); err != nil {
			return err
		}
	case !isNotFound(err):
		return err
	}

	asset.Status = model.AssetDecommissioned
	asset.AssignedToID = nil
	asset.CurrentLocation = nil
	if err := s.assets.UpdateTx(tx, asset); err != nil {
		return err
	}

	return s.movements.CreateTx(tx, &model.AssetMovement{
		AssetID:      asset.ID,
		Type:         model.MovementSalida,
		Subtype:      model.SubtypeBaja,
		Quantity:     1,
		Cost:         decimal.Zero,
		Description:  lo.ToPtr(fmt.Sprintf("Baja por incidente %s", incident.Type)),
		ActorID:      actorID,
		ReferenceID:  &incident.ID,
		Metadata:     metadata(map[string]interface{}{"incident_type": string(incident.Type)}),
		MovementDate: at,
	})
}

func (s *incidentService) Investigate(ctx context.Context, id uuid.UUID) (*dto.IncidentResponse, error) {
	return s.transition(ctx, id, model.IncidentReported, func(i *model.Incident) {
		i.Status = model.IncidentInvestigating
	})
}

func (s *incidentService) Resolve(ctx context.Context, actorID, id uuid.UUID, req dto.ResolveIncidentRequest) (*dto.IncidentResponse, error) {
	return s.transition(ctx, id, model.IncidentInvestigating, func(i *model.Incident) {
		at := now()
		i.Status = model.IncidentResolved
		i.Resolution = &req.Resolution
		i.ResolvedByID = &actorID
		i.ResolvedAt = &at
		if req.Cost != nil {
			i.Cost = *req.Cost
		}
	})
}

func (s *incidentService) Close(ctx context.Context, id uuid.UUID) (*dto.IncidentResponse, error) {
	return s.transition(ctx, id, model.IncidentResolved, func(i *model.Incident) {
		at := now()
		i.Status = model.IncidentClosed
		i.ClosedAt = &at
	})
}

func (s *incidentService) transition(ctx context.Context, id uuid.UUID, from model.IncidentStatus, apply func(*model.Incident)) (*dto.IncidentResponse, error) {
	var incident *model.Incident
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		incident, err = s.repo.LockTx(tx, id)
		if err != nil {
			if isNotFound(err) {
				return notFound("incidente no encontrado")
			}
			return err
		}
		if incident.Status != from {
			return invalidState("el incidente requiere estado %s (actual: %s)", from, incident.Status)
		}
		apply(incident)
		return s.repo.UpdateTx(tx, incident)
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("incident_id", id.String()).
		Str("status", string(incident.Status)).
		Msg("incident transition")
	resp := incidentToResponse(incident)
	return &resp, nil
}

func (s *incidentService) Get(ctx context.Context, id uuid.UUID) (*dto.IncidentResponse, error) {
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("incidente no encontrado")
		}
		return nil, err
	}
	resp := incidentToResponse(i)
	return &resp, nil
}

func (s *incidentService) List(ctx context.Context, filter dto.IncidentFilter) (*dto.IncidentListResponse, error) {
	filter.Page, filter.Limit = repository.Page(filter.Page, filter.Limit)
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.IncidentListResponse{
		Data: lo.Map(list, func(i model.Incident, _ int) dto.IncidentResponse {
			return incidentToResponse(&i)
		}),
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}
