package service

import (
	"context"

	"sorty/internal/dto"
	"sorty/internal/model"
	"sorty/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MovementService appends manual entries and exits to the asset ledger.
type MovementService interface {
	RegisterEntry(ctx context.Context, actorID uuid.UUID, req dto.MovementRequest) (*dto.MovementResponse, error)
	RegisterExit(ctx context.Context, actorID uuid.UUID, req dto.MovementRequest) (*dto.MovementResponse, error)
	List(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error)
}

type movementService struct {
	assets      repository.AssetRepository
	assignments repository.AssignmentRepository
	movements   repository.MovementRepository
	cache       AssetCache
}

func NewMovementService(
	assets repository.AssetRepository,
	assignments repository.AssignmentRepository,
	movements repository.MovementRepository,
	cache AssetCache,
) MovementService {
	if cache == nil {
		cache = noopAssetCache{}
	}
	return &movementService{assets: assets, assignments: assignments, movements: movements, cache: cache}
}

func (s *movementService) RegisterEntry(ctx context.Context, actorID uuid.UUID, req dto.MovementRequest) (*dto.MovementResponse, error) {
	return s.register(ctx, actorID, model.MovementEntrada, req)
}

func (s *movementService) RegisterExit(ctx context.Context, actorID uuid.UUID, req dto.MovementRequest) (*dto.MovementResponse, error) {
	return s.register(ctx, actorID, model.MovementSalida, req)
}

func (s *movementService) register(ctx context.Context, actorID uuid.UUID, kind model.MovementType, req dto.MovementRequest) (*dto.MovementResponse, error) {
	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		return nil, invalidInput("asset_id inválido")
	}
	subtype := model.MovementSubtype(req.Subtype)
	if kind == model.MovementEntrada && !subtype.IsEntry() {
		return nil, invalidInput("el subtipo %s no corresponde a una entrada", req.Subtype)
	}
	if kind == model.MovementSalida && !subtype.IsExit() {
		return nil, invalidInput("el subtipo %s no corresponde a una salida", req.Subtype)
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity <= 0 {
		return nil, invalidInput("la cantidad debe ser mayor a cero")
	}
	cost := decimal.Zero
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			return nil, invalidInput("el costo no puede ser negativo")
		}
		cost = *req.Cost
	}
	date := now()
	if req.MovementDate != nil {
		date = *req.MovementDate
	}

	var (
		asset    *model.Asset
		movement *model.AssetMovement
		removed  bool
	)
	txErr := runTx(ctx, s.assets.DB(), func(tx *gorm.DB) error {
		asset, err = lockAsset(s.assets, tx, assetID)
		if err != nil {
			return err
		}

		if kind == model.MovementSalida && subtype.RemovesAsset() {
			if asset.Status == model.AssetDecommissioned {
				return invalidState("el activo %s ya está dado de baja", asset.Code)
			}
			if _, err := s.assignments.FindActiveByAssetTx(tx, assetID); err == nil {
				return invalidState("el activo %s tiene una asignación activa; registre la devolución primero", asset.Code)
			} else if !isNotFound(err) {
				return err
			}
			asset.Status = model.AssetDecommissioned
			if err := s.assets.UpdateTx(tx, asset); err != nil {
				return err
			}
			removed = true
		}

		movement = &model.AssetMovement{
			AssetID:      assetID,
			Type:         kind,
			Subtype:      subtype,
			Quantity:     quantity,
			Cost:         cost,
			Description:  req.Description,
			ActorID:      actorID,
			MovementDate: date,
		}
		if len(req.Metadata) > 0 {
			movement.Metadata = metadata(req.Metadata)
		}
		return s.movements.CreateTx(tx, movement)
	})
	if txErr != nil {
		return nil, txErr
	}

	if removed {
		s.cache.Invalidate(ctx, asset.Code)
		log.Info().
			Str("asset_id", assetID.String()).
			Str("subtype", string(subtype)).
			Msg("asset decommissioned by exit movement")
	}

	movement.Asset = asset
	resp := movementToResponse(movement)
	return &resp, nil
}

func (s *movementService) List(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error) {
	filter.Page, filter.Limit = repository.Page(filter.Page, filter.Limit)
	list, total, err := s.movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.MovementListResponse{
		Data: lo.Map(list, func(m model.AssetMovement, _ int) dto.MovementResponse {
			return movementToResponse(&m)
		}),
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}
