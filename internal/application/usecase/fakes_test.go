package usecase_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ─── categorías ──────────────────────────────────────────────────────────────

type memCategoryRepo struct {
	byID map[string]*entity.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{byID: map[string]*entity.Category{}}
}

func (r *memCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	if c, ok := r.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *memCategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	for _, c := range r.byID {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.byID, id)
	return nil
}

// ─── productos ───────────────────────────────────────────────────────────────

type memProductRepo struct {
	byID       map[string]*entity.Product
	categories *memCategoryRepo
}

func newMemProductRepo(categories *memCategoryRepo) *memProductRepo {
	return &memProductRepo{byID: map[string]*entity.Product{}, categories: categories}
}

func (r *memProductRepo) withCategory(p *entity.Product) *entity.Product {
	cp := *p
	if c, ok := r.categories.byID[p.CategoryID]; ok {
		cp.CategoryName = c.Name
	}
	return &cp
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := r.byID[id]; ok {
		return r.withCategory(p), nil
	}
	return nil, nil
}

func (r *memProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	for _, p := range r.byID {
		if p.Name == name {
			return r.withCategory(p), nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *memProductRepo) List(_ context.Context, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		out = append(out, r.withCategory(p))
	}
	return out, nil
}

func (r *memProductRepo) ListByCategory(_ context.Context, categoryID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		if p.CategoryID == categoryID {
			out = append(out, r.withCategory(p))
		}
	}
	return out, nil
}

func (r *memProductRepo) ExistsByCategory(_ context.Context, categoryID string) (bool, error) {
	for _, p := range r.byID {
		if p.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProductRepo) DecrementStock(_ context.Context, id string, qty int) (bool, error) {
	p, ok := r.byID[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func (r *memProductRepo) IncrementStock(_ context.Context, id string, qty int) error {
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock += qty
	return nil
}

// ─── ítems (solo lo que usa el catálogo) ────────────────────────────────────

type memItemRepo struct {
	repository.TransactionItemRepository
	productsInUse map[string]bool
}

func (r *memItemRepo) ExistsByProduct(_ context.Context, productID string) (bool, error) {
	return r.productsInUse[productID], nil
}

// ─── usuarios ────────────────────────────────────────────────────────────────

type memUserRepo struct {
	byID map[string]*entity.User
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	r := &memUserRepo{byID: map[string]*entity.User{}}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := r.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByPhone(_ context.Context, phone string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.PhoneNumber != nil && *u.PhoneNumber == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUserRepo) List(_ context.Context, _, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

// ─── reportes ────────────────────────────────────────────────────────────────

type stubReportRepo struct {
	rows     []repository.SalesByCategoryResult
	from, to *time.Time
}

func (r *stubReportRepo) SalesByCategory(_ context.Context, from, to *time.Time) ([]repository.SalesByCategoryResult, error) {
	r.from, r.to = from, to
	return r.rows, nil
}

// ─── almacenamiento ──────────────────────────────────────────────────────────

type stubStorage struct {
	objects map[string][]byte
}

func (s *stubStorage) Upload(_ context.Context, objectName, _ string, data []byte) (string, error) {
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[objectName] = data
	return "https://cdn.test/" + objectName, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
