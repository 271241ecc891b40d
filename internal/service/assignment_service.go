package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"sorty/internal/config"
	"sorty/internal/dto"
	"sorty/internal/model"
	"sorty/internal/repository"
	"sorty/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notifier enqueues notification e-mails. *worker.Dispatcher satisfies it.
type Notifier interface {
	EnqueueEmail(ctx context.Context, payload worker.EmailJobPayload) error
}

// AssignmentService drives the per-asset custody state machine
// UNASSIGNED ↔ ASSIGNED. Every transition commits the assignment row, the
// denormalised asset fields and the ledger movement together.
type AssignmentService interface {
	Assign(ctx context.Context, actorID uuid.UUID, req dto.AssignRequest) (*dto.AssignmentResponse, error)
	Return(ctx context.Context, actorID uuid.UUID, req dto.ReturnRequest) (*dto.AssignmentResponse, error)
	Transfer(ctx context.Context, actorID uuid.UUID, req dto.TransferRequest) (*dto.AssignmentResponse, error)

	Get(ctx context.Context, id uuid.UUID) (*dto.AssignmentResponse, error)
	ActiveForAsset(ctx context.Context, assetID uuid.UUID) (*dto.AssignmentResponse, error)
	List(ctx context.Context, filter dto.AssignmentFilter) (*dto.AssignmentListResponse, error)
}

type assignmentService struct {
	assets      repository.AssetRepository
	assignments repository.AssignmentRepository
	movements   repository.MovementRepository
	users       repository.UserRepository
	cache       AssetCache
	notifier    Notifier

	returnBuilding string
	returnOffice   string
}

func NewAssignmentService(
	assets repository.AssetRepository,
	assignments repository.AssignmentRepository,
	movements repository.MovementRepository,
	users repository.UserRepository,
	cache AssetCache,
	notifier Notifier,
	cfg *config.Config,
) AssignmentService {
	if cache == nil {
		cache = noopAssetCache{}
	}
	return &assignmentService{
		assets:         assets,
		assignments:    assignments,
		movements:      movements,
		users:          users,
		cache:          cache,
		notifier:       notifier,
		returnBuilding: cfg.ReturnBuilding,
		returnOffice:   cfg.ReturnOffice,
	}
}

// ── Assign ────────────────────────────────────────────────────────────────────

func (s *assignmentService) Assign(ctx context.Context, actorID uuid.UUID, req dto.AssignRequest) (*dto.AssignmentResponse, error) {
	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		return nil, invalidInput("asset_id inválido")
	}
	targetID, err := uuid.Parse(req.AssignedToID)
	if err != nil {
		return nil, invalidInput("assigned_to_id inválido")
	}

	var (
		asset      *model.Asset
		target     *model.User
		assignment *model.AssetAssignment
	)
	txErr := runTx(ctx, s.assets.DB(), func(tx *gorm.DB) error {
		asset, err = s.lockAsset(tx, assetID)
		if err != nil {
			return err
		}
		// An existing holder is a conflict whatever the asset status is.
		if _, err := s.assignments.FindActiveByAssetTx(tx, assetID); err == nil {
			return conflict("el activo %s ya tiene una asignación activa", asset.Code)
		} else if !isNotFound(err) {
			return err
		}
		switch asset.Status {
		case model.AssetDecommissioned:
			return invalidState("el activo %s está dado de baja", asset.Code)
		case model.AssetInRepair:
			return invalidState("el activo %s está en reparación", asset.Code)
		}
		target, err = s.activeUser(tx, targetID)
		if err != nil {
			return err
		}

		assignment = &model.AssetAssignment{
			AssetID:      assetID,
			AssignedToID: targetID,
			AssignedByID: actorID,
			Status:       model.AssignmentActive,
			AssignedAt:   now(),
			Location:     req.Location,
			Reason:       req.Reason,
			Notes:        req.Notes,
		}
		if err := s.assignments.CreateTx(tx, assignment); err != nil {
			if isDuplicate(err) {
				return conflict("el activo %s ya tiene una asignación activa", asset.Code)
			}
			return err
		}

		asset.AssignedToID = &targetID
		asset.Status = model.AssetInUse
		asset.CurrentLocation = req.Location
		if err := s.assets.UpdateTx(tx, asset); err != nil {
			return err
		}

		return s.movements.CreateTx(tx, &model.AssetMovement{
			AssetID:      assetID,
			Type:         model.MovementSalida,
			Subtype:      model.SubtypeAsignacion,
			Quantity:     1,
			Cost:         decimal.Zero,
			Description:  lo.ToPtr(fmt.Sprintf("Asignación a %s", target.Name)),
			ActorID:      actorID,
			ReferenceID:  &assignment.ID,
			Metadata:     metadata(map[string]interface{}{"assigned_to": targetID.String()}),
			MovementDate: assignment.AssignedAt,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("asset_id", assetID.String()).
		Str("assignment_id", assignment.ID.String()).
		Str("assigned_to", targetID.String()).
		Msg("asset assigned")
	s.cache.Invalidate(ctx, asset.Code)
	s.notify(ctx, target, asset, "Se le ha asignado un activo")

	assignment.Asset = asset
	assignment.AssignedTo = target
	resp := assignmentToResponse(assignment)
	return &resp, nil
}

// ── Return ────────────────────────────────────────────────────────────────────

func (s *assignmentService) Return(ctx context.Context, actorID uuid.UUID, req dto.ReturnRequest) (*dto.AssignmentResponse, error) {
	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		return nil, invalidInput("asset_id inválido")
	}

	var (
		asset  *model.Asset
		active *model.AssetAssignment
	)
	txErr := runTx(ctx, s.assets.DB(), func(tx *gorm.DB) error {
		asset, err = s.lockAsset(tx, assetID)
		if err != nil {
			return err
		}
		active, err = s.activeAssignment(tx, asset)
		if err != nil {
			return err
		}

		returnedAt := now()
		active.Status = model.AssignmentReturned
		active.ReturnedAt = &returnedAt
		active.ReturnNotes = req.Notes
		active.ClosedByID = &actorID
		if err := s.assignments.CloseTx(tx, active); err != nil {
			return err
		}

		asset.AssignedToID = nil
		asset.CurrentLocation = nil
		asset.Building = lo.ToPtr(s.returnBuilding)
		asset.Office = lo.ToPtr(s.returnOffice)
		// An asset returned while under repair stays IN_REPAIR until the
		// maintenance completes.
		if asset.Status != model.AssetInRepair {
			asset.Status = model.AssetAvailable
		}
		if err := s.assets.UpdateTx(tx, asset); err != nil {
			return err
		}

		return s.movements.CreateTx(tx, &model.AssetMovement{
			AssetID:      assetID,
			Type:         model.MovementEntrada,
			Subtype:      model.SubtypeDevolucion,
			Quantity:     1,
			Cost:         decimal.Zero,
			Description:  lo.ToPtr("Devolución de activo"),
			ActorID:      actorID,
			ReferenceID:  &active.ID,
			Metadata:     metadata(map[string]interface{}{"returned_by": active.AssignedToID.String()}),
			MovementDate: returnedAt,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("asset_id", assetID.String()).
		Str("assignment_id", active.ID.String()).
		Msg("asset returned")
	s.cache.Invalidate(ctx, asset.Code)

	active.Asset = asset
	resp := assignmentToResponse(active)
	return &resp, nil
}

// ── Transfer ──────────────────────────────────────────────────────────────────

func (s *assignmentService) Transfer(ctx context.Context, actorID uuid.UUID, req dto.TransferRequest) (*dto.AssignmentResponse, error) {
	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		return nil, invalidInput("asset_id inválido")
	}
	targetID, err := uuid.Parse(req.NewAssignedToID)
	if err != nil {
		return nil, invalidInput("new_assigned_to_id inválido")
	}

	var (
		asset    *model.Asset
		target   *model.User
		previous *model.AssetAssignment
		next     *model.AssetAssignment
	)
	txErr := runTx(ctx, s.assets.DB(), func(tx *gorm.DB) error {
		asset, err = s.lockAsset(tx, assetID)
		if err != nil {
			return err
		}
		previous, err = s.activeAssignment(tx, asset)
		if err != nil {
			return err
		}
		if previous.AssignedToID == targetID {
			return conflict("el activo %s ya está asignado a ese usuario", asset.Code)
		}
		target, err = s.activeUser(tx, targetID)
		if err != nil {
			return err
		}

		closedAt := now()
		previous.Status = model.AssignmentTransferred
		previous.ReturnedAt = &closedAt
		previous.ClosedByID = &actorID
		if err := s.assignments.CloseTx(tx, previous); err != nil {
			return err
		}

		location := previous.Location
		if req.Building != nil || req.Office != nil {
			if req.Building != nil {
				asset.Building = req.Building
			}
			if req.Office != nil {
				asset.Office = req.Office
			}
			location = joinLocation(asset.Building, asset.Office)
		}

		next = &model.AssetAssignment{
			AssetID:      assetID,
			AssignedToID: targetID,
			AssignedByID: actorID,
			Status:       model.AssignmentActive,
			AssignedAt:   closedAt,
			Location:     location,
			Reason:       req.Reason,
			Notes:        req.Notes,
		}
		if err := s.assignments.CreateTx(tx, next); err != nil {
			if isDuplicate(err) {
				return conflict("el activo %s ya tiene una asignación activa", asset.Code)
			}
			return err
		}

		asset.AssignedToID = &targetID
		asset.CurrentLocation = location
		if asset.Status != model.AssetInRepair {
			asset.Status = model.AssetInUse
		}
		if err := s.assets.UpdateTx(tx, asset); err != nil {
			return err
		}

		meta := metadata(map[string]interface{}{
			"from":                   previous.AssignedToID.String(),
			"to":                     targetID.String(),
			"previous_assignment_id": previous.ID.String(),
		})
		return s.movements.CreateTx(tx, &model.AssetMovement{
			AssetID:      assetID,
			Type:         model.MovementSalida,
			Subtype:      model.SubtypeTransferenciaOut,
			Quantity:     1,
			Cost:         decimal.Zero,
			Description:  lo.ToPtr(fmt.Sprintf("Transferencia a %s", target.Name)),
			ActorID:      actorID,
			ReferenceID:  &next.ID,
			Metadata:     meta,
			MovementDate: closedAt,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("asset_id", assetID.String()).
		Str("from", previous.AssignedToID.String()).
		Str("to", targetID.String()).
		Msg("asset transferred")
	s.cache.Invalidate(ctx, asset.Code)
	s.notify(ctx, target, asset, "Se le ha transferido un activo")

	next.Asset = asset
	next.AssignedTo = target
	resp := assignmentToResponse(next)
	return &resp, nil
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *assignmentService) Get(ctx context.Context, id uuid.UUID) (*dto.AssignmentResponse, error) {
	a, err := s.assignments.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("asignación no encontrada")
		}
		return nil, err
	}
	resp := assignmentToResponse(a)
	return &resp, nil
}

func (s *assignmentService) ActiveForAsset(ctx context.Context, assetID uuid.UUID) (*dto.AssignmentResponse, error) {
	a, err := s.assignments.FindActiveByAsset(ctx, assetID)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("el activo no tiene una asignación activa")
		}
		return nil, err
	}
	resp := assignmentToResponse(a)
	return &resp, nil
}

func (s *assignmentService) List(ctx context.Context, filter dto.AssignmentFilter) (*dto.AssignmentListResponse, error) {
	filter.Page, filter.Limit = repository.Page(filter.Page, filter.Limit)
	list, total, err := s.assignments.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.AssignmentListResponse{
		Data: lo.Map(list, func(a model.AssetAssignment, _ int) dto.AssignmentResponse {
			return assignmentToResponse(&a)
		}),
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (s *assignmentService) lockAsset(tx *gorm.DB, id uuid.UUID) (*model.Asset, error) {
	return lockAsset(s.assets, tx, id)
}

func (s *assignmentService) activeAssignment(tx *gorm.DB, asset *model.Asset) (*model.AssetAssignment, error) {
	active, err := s.assignments.FindActiveByAssetTx(tx, asset.ID)
	if err != nil {
		if isNotFound(err) {
			return nil, invalidState("el activo %s no tiene una asignación activa", asset.Code)
		}
		return nil, err
	}
	return active, nil
}

// activeUser reads the target with a share lock, so a concurrent deactivation
// waits for this transaction.
func (s *assignmentService) activeUser(tx *gorm.DB, id uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByIDTx(tx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("usuario no encontrado")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, invalidState("el usuario %s está inactivo", user.Name)
	}
	return user, nil
}

// notify is best effort: a failed enqueue is logged and never fails the operation.
func (s *assignmentService) notify(ctx context.Context, to *model.User, asset *model.Asset, subject string) {
	if s.notifier == nil {
		return
	}
	body := fmt.Sprintf("Hola %s,\n\nQueda bajo su custodia el activo %s (%s).\n", to.Name, asset.Name, asset.Code)
	if asset.CurrentLocation != nil {
		body += fmt.Sprintf("Ubicación: %s\n", *asset.CurrentLocation)
	}
	err := s.notifier.EnqueueEmail(ctx, worker.EmailJobPayload{
		ToEmail: to.Email,
		Subject: fmt.Sprintf("%s: %s", subject, asset.Code),
		Body:    body,
	})
	if err != nil {
		log.Warn().Err(err).Str("asset_id", asset.ID.String()).Msg("assignment notification not enqueued")
	}
}

// lockAsset reads the asset row FOR UPDATE and maps a missing row to NotFound.
func lockAsset(assets repository.AssetRepository, tx *gorm.DB, id uuid.UUID) (*model.Asset, error) {
	asset, err := assets.LockTx(tx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("activo no encontrado")
		}
		return nil, err
	}
	return asset, nil
}

func joinLocation(parts ...*string) *string {
	var out []string
	for _, p := range parts {
		if p != nil && strings.TrimSpace(*p) != "" {
			out = append(out, strings.TrimSpace(*p))
		}
	}
	if len(out) == 0 {
		return nil
	}
	return lo.ToPtr(strings.Join(out, " / "))
}

func metadata(m map[string]interface{}) datatypes.JSON {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
