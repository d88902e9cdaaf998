package sales_test

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// memStore estado en memoria compartido por los repos fake. runMu serializa las unidades de trabajo
// y el snapshot permite deshacer todo si fn falla, como un ROLLBACK.
type memStore struct {
	runMu sync.Mutex
	mu    sync.Mutex

	products map[string]*entity.Product
	txs      map[string]*entity.Transaction
	items    map[string]*entity.TransactionItem
}

func newMemStore() *memStore {
	return &memStore{
		products: map[string]*entity.Product{},
		txs:      map[string]*entity.Transaction{},
		items:    map[string]*entity.TransactionItem{},
	}
}

type snapshot struct {
	products map[string]entity.Product
	txs      map[string]entity.Transaction
	items    map[string]entity.TransactionItem
}

func (s *memStore) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		products: make(map[string]entity.Product, len(s.products)),
		txs:      make(map[string]entity.Transaction, len(s.txs)),
		items:    make(map[string]entity.TransactionItem, len(s.items)),
	}
	for k, v := range s.products {
		snap.products[k] = *v
	}
	for k, v := range s.txs {
		snap.txs[k] = *v
	}
	for k, v := range s.items {
		snap.items[k] = *v
	}
	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = make(map[string]*entity.Product, len(snap.products))
	for k, v := range snap.products {
		v := v
		s.products[k] = &v
	}
	s.txs = make(map[string]*entity.Transaction, len(snap.txs))
	for k, v := range snap.txs {
		v := v
		s.txs[k] = &v
	}
	s.items = make(map[string]*entity.TransactionItem, len(snap.items))
	for k, v := range snap.items {
		v := v
		s.items[k] = &v
	}
}

// RunSales implementa sales.TxRunner.
func (s *memStore) RunSales(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	itemRepo repository.TransactionItemRepository,
) error) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	snap := s.snapshot()
	if err := fn(&memProductRepo{s}, &memTxRepo{s}, &memItemRepo{s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *memStore) product(id string) entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.products[id]
}

func (s *memStore) transaction(id string) entity.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.txs[id]
}

func (s *memStore) itemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// ─── productos ───────────────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *memProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) List(_ context.Context, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *memProductRepo) ListByCategory(_ context.Context, _ string) ([]*entity.Product, error) {
	return nil, nil
}

func (r *memProductRepo) ExistsByCategory(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	return nil
}

func (r *memProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProductRepo) DecrementStock(_ context.Context, id string, qty int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func (r *memProductRepo) IncrementStock(_ context.Context, id string, qty int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock += qty
	return nil
}

// ─── transacciones ───────────────────────────────────────────────────────────

type memTxRepo struct{ s *memStore }

func (r *memTxRepo) Create(_ context.Context, t *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *t
	r.s.txs[t.ID] = &cp
	return nil
}

func (r *memTxRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.txs[id]; ok {
		cp := *t
		cp.UserName = "Kasir"
		return &cp, nil
	}
	return nil, nil
}

func (r *memTxRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transaction, error) {
	return r.GetByID(ctx, id)
}

func (r *memTxRepo) List(_ context.Context, _, _ int) ([]*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Transaction
	for _, t := range r.s.txs {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TransactionDate.After(out[j].TransactionDate) })
	return out, nil
}

func (r *memTxRepo) Update(_ context.Context, t *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.txs[t.ID]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	total := cur.TotalAmount
	cp := *t
	cp.TotalAmount = total
	r.s.txs[t.ID] = &cp
	return nil
}

func (r *memTxRepo) AddToTotal(_ context.Context, id string, delta decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.txs[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	t.TotalAmount = t.TotalAmount.Add(delta)
	return nil
}

func (r *memTxRepo) SetTotal(_ context.Context, id string, total decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.txs[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	t.TotalAmount = total
	return nil
}

func (r *memTxRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.txs[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	for _, it := range r.s.items {
		if it.TransactionID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.txs, id)
	return nil
}

// ─── ítems ───────────────────────────────────────────────────────────────────

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) Create(_ context.Context, it *entity.TransactionItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *it
	cp.ProductName = ""
	r.s.items[it.ID] = &cp
	return nil
}

func (r *memItemRepo) withName(it *entity.TransactionItem) *entity.TransactionItem {
	cp := *it
	if p, ok := r.s.products[it.ProductID]; ok {
		cp.ProductName = p.Name
	}
	return &cp
}

func (r *memItemRepo) GetByID(_ context.Context, id string) (*entity.TransactionItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if it, ok := r.s.items[id]; ok {
		return r.withName(it), nil
	}
	return nil, nil
}

func (r *memItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.TransactionItem, error) {
	return r.GetByID(ctx, id)
}

func (r *memItemRepo) ListByTransaction(_ context.Context, transactionID string) ([]*entity.TransactionItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.TransactionItem, 0)
	for _, it := range r.s.items {
		if it.TransactionID == transactionID {
			out = append(out, r.withName(it))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memItemRepo) Update(_ context.Context, it *entity.TransactionItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[it.ID]; !ok {
		return domain.ErrItemNotFound
	}
	cp := *it
	r.s.items[it.ID] = &cp
	return nil
}

func (r *memItemRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(r.s.items, id)
	return nil
}

func (r *memItemRepo) DeleteByTransaction(_ context.Context, transactionID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, it := range r.s.items {
		if it.TransactionID == transactionID {
			delete(r.s.items, id)
		}
	}
	return nil
}

func (r *memItemRepo) SumByTransaction(_ context.Context, transactionID string) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, it := range r.s.items {
		if it.TransactionID == transactionID {
			sum = sum.Add(it.TotalPrice)
		}
	}
	return sum, nil
}

func (r *memItemRepo) ExistsByProduct(_ context.Context, productID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}
