package service

import (
	"context"
	"time"

	"sorty/internal/dto"
	"sorty/internal/model"
	"sorty/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type AssetService interface {
	Create(ctx context.Context, actorID uuid.UUID, req dto.CreateAssetRequest) (*dto.AssetResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.AssetResponse, error)
	GetByCode(ctx context.Context, code string) (*dto.AssetResponse, error)
	List(ctx context.Context, filter dto.AssetFilter) (*dto.AssetListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateAssetRequest) (*dto.AssetResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type assetService struct {
	repo       repository.AssetRepository
	categories repository.CategoryRepository
	cache      AssetCache
}

func NewAssetService(repo repository.AssetRepository, categories repository.CategoryRepository, cache AssetCache) AssetService {
	if cache == nil {
		cache = noopAssetCache{}
	}
	return &assetService{repo: repo, categories: categories, cache: cache}
}

func (s *assetService) Create(ctx context.Context, actorID uuid.UUID, req dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	if _, err := s.repo.FindByCode(ctx, req.Code); err == nil {
		return nil, conflict("ya existe un activo con el código %s", req.Code)
	} else if !isNotFound(err) {
		return nil, err
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, invalidInput("category_id inválido")
	}
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("categoría no encontrada")
		}
		return nil, err
	}

	asset := &model.Asset{
		Code:            req.Code,
		Name:            req.Name,
		Description:     req.Description,
		CategoryID:      categoryID,
		Status:          model.AssetAvailable,
		Building:        req.Building,
		Office:          req.Office,
		Laboratory:      req.Laboratory,
		CurrentLocation: req.CurrentLocation,
		Brand:           req.Brand,
		Model:           req.Model,
		SerialNumber:    req.SerialNumber,
		AcquisitionDate: req.AcquisitionDate,
		UsefulLifeYears: req.UsefulLifeYears,
		Supplier:        req.Supplier,
		InvoiceNumber:   req.InvoiceNumber,
		CreatedByID:     &actorID,
	}

	// Financial fields left empty inherit the category defaults.
	switch {
	case req.AcquisitionCost != nil:
		asset.AcquisitionCost = *req.AcquisitionCost
	case category.DefaultCost != nil:
		asset.AcquisitionCost = *category.DefaultCost
	}
	switch {
	case req.ResidualValue != nil:
		asset.ResidualValue = *req.ResidualValue
	case category.DefaultResidualValue != nil:
		asset.ResidualValue = *category.DefaultResidualValue
	}
	if asset.UsefulLifeYears == nil {
		asset.UsefulLifeYears = category.DefaultUsefulLifeYears
	}
	if asset.ResidualValue.GreaterThan(asset.AcquisitionCost) {
		return nil, invalidInput("el valor residual no puede superar el costo de adquisición")
	}

	if err := s.repo.Create(ctx, asset); err != nil {
		if isDuplicate(err) {
			return nil, conflict("ya existe un activo con el código %s", req.Code)
		}
		return nil, err
	}
	asset.Category = category

	log.Info().Str("asset_id", asset.ID.String()).Str("code", asset.Code).Msg("asset created")
	resp := assetToResponse(asset)
	return &resp, nil
}

func (s *assetService) Get(ctx context.Context, id uuid.UUID) (*dto.AssetResponse, error) {
	asset, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := assetToResponse(asset)
	return &resp, nil
}

func (s *assetService) GetByCode(ctx context.Context, code string) (*dto.AssetResponse, error) {
	if cached, ok := s.cache.Get(ctx, code); ok {
		refreshBookValue(cached)
		return cached, nil
	}
	asset, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("activo %s no encontrado", code)
		}
		return nil, err
	}
	resp := assetToResponse(asset)
	s.cache.Set(ctx, &resp)
	return &resp, nil
}

func (s *assetService) List(ctx context.Context, filter dto.AssetFilter) (*dto.AssetListResponse, error) {
	filter.Page, filter.Limit = repository.Page(filter.Page, filter.Limit)
	assets, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.AssetListResponse{
		Data: lo.Map(assets, func(a model.Asset, _ int) dto.AssetResponse {
			return assetToResponse(&a)
		}),
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// Update edits descriptive fields only. Status, holder and location belong to
// the lifecycle services, so the row is re-read under lock and written in the
// same transaction.
func (s *assetService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateAssetRequest) (*dto.AssetResponse, error) {
	var category *model.Category
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, invalidInput("category_id inválido")
		}
		category, err = s.categories.FindByID(ctx, categoryID)
		if err != nil {
			if isNotFound(err) {
				return nil, notFound("categoría no encontrada")
			}
			return nil, err
		}
	}

	var code string
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		asset, err := lockAsset(s.repo, tx, id)
		if err != nil {
			return err
		}
		code = asset.Code
		if req.Code != nil && *req.Code != asset.Code {
			return invalidInput("el código de un activo no se puede modificar")
		}
		if category != nil {
			asset.CategoryID = category.ID
		}
		if req.Name != nil {
			asset.Name = *req.Name
		}
		if req.Description != nil {
			asset.Description = req.Description
		}
		if req.Building != nil {
			asset.Building = req.Building
		}
		if req.Office != nil {
			asset.Office = req.Office
		}
		if req.Laboratory != nil {
			asset.Laboratory = req.Laboratory
		}
		if req.Brand != nil {
			asset.Brand = req.Brand
		}
		if req.Model != nil {
			asset.Model = req.Model
		}
		if req.SerialNumber != nil {
			asset.SerialNumber = req.SerialNumber
		}
		if req.AcquisitionDate != nil {
			asset.AcquisitionDate = req.AcquisitionDate
		}
		if req.AcquisitionCost != nil {
			asset.AcquisitionCost = *req.AcquisitionCost
		}
		if req.UsefulLifeYears != nil {
			asset.UsefulLifeYears = req.UsefulLifeYears
		}
		if req.ResidualValue != nil {
			asset.ResidualValue = *req.ResidualValue
		}
		if req.Supplier != nil {
			asset.Supplier = req.Supplier
		}
		if req.InvoiceNumber != nil {
			asset.InvoiceNumber = req.InvoiceNumber
		}
		if asset.ResidualValue.GreaterThan(asset.AcquisitionCost) {
			return invalidInput("el valor residual no puede superar el costo de adquisición")
		}
		return s.repo.UpdateTx(tx, asset)
	})
	if txErr != nil {
		return nil, txErr
	}
	s.cache.Invalidate(ctx, code)
	return s.Get(ctx, id)
}

func (s *assetService) Delete(ctx context.Context, id uuid.UUID) error {
	asset, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if asset.Status != model.AssetDecommissioned {
		return invalidState("solo se pueden eliminar activos en estado DECOMMISSIONED")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, asset.Code)
	log.Info().Str("asset_id", id.String()).Str("code", asset.Code).Msg("asset deleted")
	return nil
}

func (s *assetService) find(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("activo no encontrado")
		}
		return nil, err
	}
	return asset, nil
}

// refreshBookValue recomputes the time-dependent book value of a cached snapshot.
func refreshBookValue(resp *dto.AssetResponse) {
	var acquired *time.Time
	if resp.AcquisitionDate != nil {
		d, err := time.Parse("2006-01-02", *resp.AcquisitionDate)
		if err != nil {
			return
		}
		acquired = &d
	}
	resp.BookValue = model.StraightLineValue(resp.AcquisitionCost, resp.ResidualValue, acquired, resp.UsefulLifeYears, now())
}
