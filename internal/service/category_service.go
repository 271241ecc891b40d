package service

import (
	"context"
	"strings"

	"sorty/internal/dto"
	"sorty/internal/model"
	"sorty/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// CategoryService manages the two-level category tree.
type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Tree(ctx context.Context) ([]dto.CategoryResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo   repository.CategoryRepository
	assets repository.AssetRepository
}

func NewCategoryService(repo repository.CategoryRepository, assets repository.AssetRepository) CategoryService {
	return &categoryService{repo: repo, assets: assets}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := s.ensureNameFree(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	c := &model.Category{
		Name:                   name,
		Description:            req.Description,
		DefaultCost:            req.DefaultCost,
		DefaultUsefulLifeYears: req.DefaultUsefulLifeYears,
		DefaultResidualValue:   req.DefaultResidualValue,
	}
	if req.ParentID != nil && *req.ParentID != "" {
		parentID, err := s.validParent(ctx, *req.ParentID, uuid.Nil)
		if err != nil {
			return nil, err
		}
		c.ParentID = &parentID
	}

	if err := s.repo.Create(ctx, c); err != nil {
		if isDuplicate(err) {
			return nil, conflict("ya existe una categoría con el nombre %q", name)
		}
		return nil, err
	}
	resp := categoryToResponse(c)
	return &resp, nil
}

// Tree returns the root categories with their children nested.
func (s *categoryService) Tree(ctx context.Context) ([]dto.CategoryResponse, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byParent := lo.GroupBy(lo.Filter(all, func(c model.Category, _ int) bool {
		return c.ParentID != nil
	}), func(c model.Category) uuid.UUID {
		return *c.ParentID
	})

	roots := lo.Filter(all, func(c model.Category, _ int) bool { return c.ParentID == nil })
	return lo.Map(roots, func(root model.Category, _ int) dto.CategoryResponse {
		root.Children = byParent[root.ID]
		return categoryToResponse(&root)
	}), nil
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := categoryToResponse(c)
	return &resp, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := s.ensureNameFree(ctx, name, c.ID); err != nil {
			return nil, err
		}
		c.Name = name
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if req.DefaultCost != nil {
		c.DefaultCost = req.DefaultCost
	}
	if req.DefaultUsefulLifeYears != nil {
		c.DefaultUsefulLifeYears = req.DefaultUsefulLifeYears
	}
	if req.DefaultResidualValue != nil {
		c.DefaultResidualValue = req.DefaultResidualValue
	}
	if req.ParentID != nil {
		if *req.ParentID == "" {
			c.ParentID = nil
		} else {
			if len(c.Children) > 0 {
				return nil, invalidInput("una categoría con subcategorías no puede ser subcategoría")
			}
			parentID, err := s.validParent(ctx, *req.ParentID, c.ID)
			if err != nil {
				return nil, err
			}
			c.ParentID = &parentID
		}
	}

	if err := s.repo.Update(ctx, c); err != nil {
		if isDuplicate(err) {
			return nil, conflict("ya existe una categoría con el nombre %q", c.Name)
		}
		return nil, err
	}
	resp := categoryToResponse(c)
	return &resp, nil
}

// Delete removes the category and its empty subcategories. The guard runs
// after locking the category row so a concurrent asset insert cannot slip in
// between check and delete on the same category.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.repo.LockTx(tx, id); err != nil {
			if isNotFound(err) {
				return notFound("categoría no encontrada")
			}
			return err
		}
		childIDs, err := s.repo.ChildIDsTx(tx, id)
		if err != nil {
			return err
		}
		all := append(childIDs, id)

		n, err := s.assets.CountByCategoriesTx(tx, all)
		if err != nil {
			return err
		}
		if n > 0 {
			return conflict("la categoría o sus subcategorías tienen %d activos asociados", n)
		}
		if err := s.repo.DeleteTx(tx, all); err != nil {
			return err
		}
		log.Info().Str("category_id", id.String()).Int("children", len(childIDs)).Msg("category deleted")
		return nil
	})
}

func (s *categoryService) find(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("categoría no encontrada")
		}
		return nil, err
	}
	return c, nil
}

func (s *categoryService) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != self {
		return conflict("ya existe una categoría con el nombre %q", name)
	}
	return nil
}

// validParent parses raw and checks the parent exists and is a root, which
// keeps the tree at most two levels deep.
func (s *categoryService) validParent(ctx context.Context, raw string, self uuid.UUID) (uuid.UUID, error) {
	parentID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalidInput("parent_id inválido")
	}
	if parentID == self {
		return uuid.Nil, invalidInput("una categoría no puede ser su propia categoría padre")
	}
	parent, err := s.repo.FindByID(ctx, parentID)
	if err != nil {
		if isNotFound(err) {
			return uuid.Nil, notFound("categoría padre no encontrada")
		}
		return uuid.Nil, err
	}
	if parent.ParentID != nil {
		return uuid.Nil, invalidInput("la categoría padre debe ser una categoría raíz")
	}
	return parentID, nil
}
