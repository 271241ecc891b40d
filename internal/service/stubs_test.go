package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"sorty/internal/config"
	"sorty/internal/dto"
	"sorty/internal/model"
	"sorty/internal/repository"
	"sorty/internal/worker"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory store shared by all repository stubs ───────────────────────────
//
// Stubs hand out copies so services only change stored state through the
// repository write methods, the same as with a real database.

type memStore struct {
	mu          sync.Mutex
	users       map[uuid.UUID]model.User
	categories  map[uuid.UUID]model.Category
	assets      map[uuid.UUID]model.Asset
	assignments map[uuid.UUID]model.AssetAssignment
	movements   []model.AssetMovement
	maintenance map[uuid.UUID]model.Maintenance
	incidents   map[uuid.UUID]model.Incident
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[uuid.UUID]model.User),
		categories:  make(map[uuid.UUID]model.Category),
		assets:      make(map[uuid.UUID]model.Asset),
		assignments: make(map[uuid.UUID]model.AssetAssignment),
		maintenance: make(map[uuid.UUID]model.Maintenance),
		incidents:   make(map[uuid.UUID]model.Incident),
	}
}

func (s *memStore) activeAssignments(assetID uuid.UUID) []model.AssetAssignment {
	var out []model.AssetAssignment
	for _, a := range s.assignments {
		if a.AssetID == assetID && a.Status == model.AssignmentActive {
			out = append(out, a)
		}
	}
	return out
}

func (s *memStore) movementsFor(assetID uuid.UUID) []model.AssetMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.AssetMovement
	for _, m := range s.movements {
		if m.AssetID == assetID {
			out = append(out, m)
		}
	}
	return out
}

func paginate[T any](items []T, page, limit int) []T {
	page, limit = repository.Page(page, limit)
	start := (page - 1) * limit
	if start >= len(items) {
		return nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ── AssetRepository ──────────────────────────────────────────────────────────

type stubAssetRepo struct{ st *memStore }

var _ repository.AssetRepository = (*stubAssetRepo)(nil)

func (r *stubAssetRepo) hydrate(a model.Asset) *model.Asset {
	if c, ok := r.st.categories[a.CategoryID]; ok {
		a.Category = &c
	}
	if a.AssignedToID != nil {
		if u, ok := r.st.users[*a.AssignedToID]; ok {
			a.AssignedTo = &u
		}
	}
	return &a
}

func (r *stubAssetRepo) Create(_ context.Context, a *model.Asset) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, existing := range r.st.assets {
		if existing.Code == a.Code {
			return repository.ErrDuplicate
		}
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt, a.UpdatedAt = time.Now(), time.Now()
	stored := *a
	stored.Category, stored.AssignedTo = nil, nil
	r.st.assets[a.ID] = stored
	return nil
}

func (r *stubAssetRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Asset, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	a, ok := r.st.assets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.hydrate(a), nil
}

func (r *stubAssetRepo) FindByCode(_ context.Context, code string) (*model.Asset, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, a := range r.st.assets {
		if a.Code == code {
			return r.hydrate(a), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubAssetRepo) List(_ context.Context, f dto.AssetFilter) ([]model.Asset, int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []model.Asset
	for _, a := range r.st.assets {
		if f.Status != "" && string(a.Status) != f.Status {
			continue
		}
		if f.CategoryID != "" && a.CategoryID.String() != f.CategoryID {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, *r.hydrate(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return paginate(out, f.Page, f.Limit), int64(len(out)), nil
}

func (r *stubAssetRepo) CodesByHolder(_ context.Context, userID uuid.UUID) ([]string, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var codes []string
	for _, a := range r.st.assets {
		if a.AssignedToID != nil && *a.AssignedToID == userID {
			codes = append(codes, a.Code)
		}
	}
	return codes, nil
}

func (r *stubAssetRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.assets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.st.assets, id)
	return nil
}

func (r *stubAssetRepo) LockTx(_ *gorm.DB, id uuid.UUID) (*model.Asset, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	a, ok := r.st.assets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *stubAssetRepo) UpdateTx(_ *gorm.DB, a *model.Asset) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.assets[a.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *a
	stored.Category, stored.AssignedTo = nil, nil
	stored.UpdatedAt = time.Now()
	r.st.assets[a.ID] = stored
	return nil
}

func (r *stubAssetRepo) CountByCategoriesTx(_ *gorm.DB, ids []uuid.UUID) (int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var n int64
	for _, a := range r.st.assets {
		for _, id := range ids {
			if a.CategoryID == id {
				n++
			}
		}
	}
	return n, nil
}

func (r *stubAssetRepo) DB() *gorm.DB { return nil }

// ── AssignmentRepository ─────────────────────────────────────────────────────

type stubAssignmentRepo struct{ st *memStore }

var _ repository.AssignmentRepository = (*stubAssignmentRepo)(nil)

func (r *stubAssignmentRepo) hydrate(a model.AssetAssignment) *model.AssetAssignment {
	if asset, ok := r.st.assets[a.AssetID]; ok {
		a.Asset = &asset
	}
	if u, ok := r.st.users[a.AssignedToID]; ok {
		a.AssignedTo = &u
	}
	if u, ok := r.st.users[a.AssignedByID]; ok {
		a.AssignedBy = &u
	}
	return &a
}

// CreateTx mirrors the partial unique index on (asset_id) WHERE status = 'ACTIVE'.
func (r *stubAssignmentRepo) CreateTx(_ *gorm.DB, a *model.AssetAssignment) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if a.Status == model.AssignmentActive && len(r.st.activeAssignments(a.AssetID)) > 0 {
		return repository.ErrDuplicate
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	stored := *a
	stored.Asset, stored.AssignedTo, stored.AssignedBy = nil, nil, nil
	r.st.assignments[a.ID] = stored
	return nil
}

func (r *stubAssignmentRepo) CloseTx(_ *gorm.DB, a *model.AssetAssignment) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	existing, ok := r.st.assignments[a.ID]
	if !ok || existing.Status != model.AssignmentActive {
		return repository.ErrNotFound
	}
	existing.Status = a.Status
	existing.ReturnedAt = a.ReturnedAt
	existing.ReturnNotes = a.ReturnNotes
	existing.ClosedByID = a.ClosedByID
	r.st.assignments[a.ID] = existing
	return nil
}

func (r *stubAssignmentRepo) FindActiveByAssetTx(_ *gorm.DB, assetID uuid.UUID) (*model.AssetAssignment, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	active := r.st.activeAssignments(assetID)
	if len(active) == 0 {
		return nil, repository.ErrNotFound
	}
	return &active[0], nil
}

func (r *stubAssignmentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.AssetAssignment, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	a, ok := r.st.assignments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.hydrate(a), nil
}

func (r *stubAssignmentRepo) FindActiveByAsset(_ context.Context, assetID uuid.UUID) (*model.AssetAssignment, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	active := r.st.activeAssignments(assetID)
	if len(active) == 0 {
		return nil, repository.ErrNotFound
	}
	return r.hydrate(active[0]), nil
}

func (r *stubAssignmentRepo) List(_ context.Context, f dto.AssignmentFilter) ([]model.AssetAssignment, int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []model.AssetAssignment
	for _, a := range r.st.assignments {
		if f.AssetID != "" && a.AssetID.String() != f.AssetID {
			continue
		}
		if f.UserID != "" && a.AssignedToID.String() != f.UserID {
			continue
		}
		if f.Status != "" && string(a.Status) != f.Status {
			continue
		}
		out = append(out, *r.hydrate(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssignedAt.After(out[j].AssignedAt) })
	return paginate(out, f.Page, f.Limit), int64(len(out)), nil
}

// ── MovementRepository ───────────────────────────────────────────────────────

type stubMovementRepo struct{ st *memStore }

var _ repository.MovementRepository = (*stubMovementRepo)(nil)

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.AssetMovement) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.st.movements = append(r.st.movements, *m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, f dto.MovementFilter) ([]model.AssetMovement, int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []model.AssetMovement
	for _, m := range r.st.movements {
		if f.AssetID != "" && m.AssetID.String() != f.AssetID {
			continue
		}
		if f.Type != "" && string(m.Type) != f.Type {
			continue
		}
		out = append(out, m)
	}
	return paginate(out, f.Page, f.Limit), int64(len(out)), nil
}

// ── MaintenanceRepository ────────────────────────────────────────────────────

type stubMaintenanceRepo struct{ st *memStore }

var _ repository.MaintenanceRepository = (*stubMaintenanceRepo)(nil)

func (r *stubMaintenanceRepo) CreateTx(_ *gorm.DB, m *model.Maintenance) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	stored := *m
	stored.Asset = nil
	r.st.maintenance[m.ID] = stored
	return nil
}

func (r *stubMaintenanceRepo) UpdateTx(_ *gorm.DB, m *model.Maintenance) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	stored := *m
	stored.Asset = nil
	r.st.maintenance[m.ID] = stored
	return nil
}

func (r *stubMaintenanceRepo) LockTx(_ *gorm.DB, id uuid.UUID) (*model.Maintenance, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	m, ok := r.st.maintenance[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (r *stubMaintenanceRepo) HasOpenTx(_ *gorm.DB, assetID uuid.UUID) (bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, m := range r.st.maintenance {
		if m.AssetID == assetID && m.Status.Open() {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubMaintenanceRepo) LockOpenByAssetTx(_ *gorm.DB, assetID uuid.UUID) ([]model.Maintenance, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var open []model.Maintenance
	for _, m := range r.st.maintenance {
		if m.AssetID == assetID && m.Status.Open() {
			open = append(open, m)
		}
	}
	return open, nil
}

func (r *stubMaintenanceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Maintenance, error) {
	return r.LockTx(nil, id)
}

func (r *stubMaintenanceRepo) List(_ context.Context, f dto.MaintenanceFilter) ([]model.Maintenance, int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []model.Maintenance
	for _, m := range r.st.maintenance {
		if f.Status != "" && string(m.Status) != f.Status {
			continue
		}
		out = append(out, m)
	}
	return paginate(out, f.Page, f.Limit), int64(len(out)), nil
}

func (r *stubMaintenanceRepo) DB() *gorm.DB { return nil }

// ── IncidentRepository ───────────────────────────────────────────────────────

type stubIncidentRepo struct{ st *memStore }

var _ repository.IncidentRepository = (*stubIncidentRepo)(nil)

func (r *stubIncidentRepo) CreateTx(_ *gorm.DB, i *model.Incident) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	stored := *i
	stored.Asset = nil
	r.st.incidents[i.ID] = stored
	return nil
}

func (r *stubIncidentRepo) UpdateTx(_ *gorm.DB, i *model.Incident) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	stored := *i
	stored.Asset = nil
	r.st.incidents[i.ID] = stored
	return nil
}

func (r *stubIncidentRepo) LockTx(_ *gorm.DB, id uuid.UUID) (*model.Incident, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	i, ok := r.st.incidents[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &i, nil
}

func (r *stubIncidentRepo) HasOpenTx(_ *gorm.DB, assetID uuid.UUID) (bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, i := range r.st.incidents {
		if i.AssetID == assetID && i.Status.Open() {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubIncidentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Incident, error) {
	return r.LockTx(nil, id)
}

func (r *stubIncidentRepo) List(_ context.Context, f dto.IncidentFilter) ([]model.Incident, int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []model.Incident
	for _, i := range r.st.incidents {
		if f.Status != "" && string(i.Status) != f.Status {
			continue
		}
		out = append(out, i)
	}
	return paginate(out, f.Page, f.Limit), int64(len(out)), nil
}

func (r *stubIncidentRepo) DB() *gorm.DB { return nil }

// ── CategoryRepository ───────────────────────────────────────────────────────

type stubCategoryRepo struct{ st *memStore }

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, existing := range r.st.categories {
		if strings.EqualFold(existing.Name, c.Name) {
			return repository.ErrDuplicate
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	stored := *c
	stored.Parent, stored.Children = nil, nil
	r.st.categories[c.ID] = stored
	return nil
}

func (r *stubCategoryRepo) ListAll(_ context.Context) ([]model.Category, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	out := make([]model.Category, 0, len(r.st.categories))
	for _, c := range r.st.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	c, ok := r.st.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for _, child := range r.st.categories {
		if child.ParentID != nil && *child.ParentID == id {
			c.Children = append(c.Children, child)
		}
	}
	return &c, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, c := range r.st.categories {
		if strings.EqualFold(c.Name, name) {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	stored := *c
	stored.Parent, stored.Children = nil, nil
	r.st.categories[c.ID] = stored
	return nil
}

func (r *stubCategoryRepo) LockTx(_ *gorm.DB, id uuid.UUID) (*model.Category, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	c, ok := r.st.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *stubCategoryRepo) ChildIDsTx(_ *gorm.DB, id uuid.UUID) ([]uuid.UUID, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var ids []uuid.UUID
	for _, c := range r.st.categories {
		if c.ParentID != nil && *c.ParentID == id {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

func (r *stubCategoryRepo) DeleteTx(_ *gorm.DB, ids []uuid.UUID) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, id := range ids {
		delete(r.st.categories, id)
	}
	return nil
}

func (r *stubCategoryRepo) DB() *gorm.DB { return nil }

// ── UserRepository ───────────────────────────────────────────────────────────

// stubUserRepo counts in-transaction reads so tests can check that
// eligibility is decided inside the lifecycle transaction.
type stubUserRepo struct {
	st      *memStore
	txReads int
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, existing := range r.st.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.st.users[u.ID] = *u
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, u := range r.st.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	u, ok := r.st.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *stubUserRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.txReads++
	u, ok := r.st.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *stubUserRepo) List(_ context.Context, includeInactive bool) ([]model.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []model.User
	for _, u := range r.st.users {
		if !includeInactive && !u.IsActive {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.users[u.ID] = *u
	return nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	u, ok := r.st.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsActive = active
	r.st.users[id] = u
	return nil
}

// ── Cache and notifier fakes ─────────────────────────────────────────────────

type fakeCache struct {
	mu          sync.Mutex
	entries     map[string]*dto.AssetResponse
	invalidated []string
}

func newFakeCache() *fakeCache { return &fakeCache{entries: make(map[string]*dto.AssetResponse)} }

func (c *fakeCache) Get(_ context.Context, code string) (*dto.AssetResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.entries[code]
	if !ok {
		return nil, false
	}
	cp := *a
	return &cp, true
}

func (c *fakeCache) Set(_ context.Context, a *dto.AssetResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *a
	c.entries[a.Code] = &cp
}

func (c *fakeCache) Invalidate(_ context.Context, codes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, code := range codes {
		delete(c.entries, code)
	}
	c.invalidated = append(c.invalidated, codes...)
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []worker.EmailJobPayload
	err  error
}

func (n *fakeNotifier) EnqueueEmail(_ context.Context, p worker.EmailJobPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, p)
	return nil
}

var errBoom = errors.New("boom")

// ── Fixture ──────────────────────────────────────────────────────────────────

const (
	testReturnBuilding = "Almacén"
	testReturnOffice   = "Depósito General"
)

type fixture struct {
	st       *memStore
	assets   *stubAssetRepo
	assigns  *stubAssignmentRepo
	moves    *stubMovementRepo
	maint    *stubMaintenanceRepo
	incs     *stubIncidentRepo
	cats     *stubCategoryRepo
	users    *stubUserRepo
	cache    *fakeCache
	notifier *fakeNotifier
	cfg      *config.Config
	actor    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := newMemStore()
	f := &fixture{
		st:       st,
		assets:   &stubAssetRepo{st: st},
		assigns:  &stubAssignmentRepo{st: st},
		moves:    &stubMovementRepo{st: st},
		maint:    &stubMaintenanceRepo{st: st},
		incs:     &stubIncidentRepo{st: st},
		cats:     &stubCategoryRepo{st: st},
		users:    &stubUserRepo{st: st},
		cache:    newFakeCache(),
		notifier: &fakeNotifier{},
		cfg: &config.Config{
			JWTSecret:          "test_jwt_secret_32_chars_minimum!",
			JWTExpirationHours: 8,
			JWTRefreshHours:    24,
			ReturnBuilding:     testReturnBuilding,
			ReturnOffice:       testReturnOffice,
			OrganizationName:   "Sorty Test",
		},
	}
	f.actor = f.seedUser(t, model.RoleInventoryManager, true).ID
	return f
}

func (f *fixture) assignmentService() AssignmentService {
	return NewAssignmentService(f.assets, f.assigns, f.moves, f.users, f.cache, f.notifier, f.cfg)
}

func (f *fixture) seedUser(t *testing.T, role model.Role, active bool) *model.User {
	t.Helper()
	u := model.User{
		ID:           uuid.New(),
		Email:        gofakeit.Email(),
		Name:         gofakeit.Name(),
		PasswordHash: "x",
		Role:         role,
		IsActive:     active,
	}
	f.st.mu.Lock()
	f.st.users[u.ID] = u
	f.st.mu.Unlock()
	return &u
}

func (f *fixture) seedCategory(t *testing.T, parent *uuid.UUID) *model.Category {
	t.Helper()
	c := model.Category{ID: uuid.New(), Name: gofakeit.UUID(), ParentID: parent}
	f.st.mu.Lock()
	f.st.categories[c.ID] = c
	f.st.mu.Unlock()
	return &c
}

func (f *fixture) seedAsset(t *testing.T, status model.AssetStatus) *model.Asset {
	t.Helper()
	cat := f.seedCategory(t, nil)
	a := model.Asset{
		ID:              uuid.New(),
		Code:            "ACT-" + gofakeit.DigitN(6),
		Name:            gofakeit.ProductName(),
		CategoryID:      cat.ID,
		Status:          status,
		AcquisitionCost: decimal.NewFromInt(1000),
	}
	f.st.mu.Lock()
	f.st.assets[a.ID] = a
	f.st.mu.Unlock()
	return &a
}

func (f *fixture) asset(t *testing.T, id uuid.UUID) model.Asset {
	t.Helper()
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	a, ok := f.st.assets[id]
	require.True(t, ok, "asset %s not in store", id)
	return a
}

func (f *fixture) assignment(t *testing.T, id string) model.AssetAssignment {
	t.Helper()
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	a, ok := f.st.assignments[uuid.MustParse(id)]
	require.True(t, ok, "assignment %s not in store", id)
	return a
}

func (f *fixture) activeCount(assetID uuid.UUID) int {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	return len(f.st.activeAssignments(assetID))
}

// assign is a shortcut for a successful assignment.
func (f *fixture) assign(t *testing.T, assetID, userID uuid.UUID) *dto.AssignmentResponse {
	t.Helper()
	resp, err := f.assignmentService().Assign(context.Background(), f.actor, dto.AssignRequest{
		AssetID:      assetID.String(),
		AssignedToID: userID.String(),
	})
	require.NoError(t, err)
	return resp
}
