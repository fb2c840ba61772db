package http_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/supermercado-api/internal/domain"
	"github.com/jhoicas/supermercado-api/internal/domain/entity"
	"github.com/jhoicas/supermercado-api/internal/domain/repository"
)

// memStore persistencia en memoria para probar la API completa sin PostgreSQL.
type memStore struct {
	mu         sync.Mutex
	nextID     int64
	users      map[int64]*entity.User
	categories map[int64]*entity.Category
	products   map[int64]*entity.Product
	sales      map[int64]*entity.Sale
	items      []entity.SaleItem
}

func newMemStore() *memStore {
	return &memStore{
		nextID:     100,
		users:      map[int64]*entity.User{},
		categories: map[int64]*entity.Category{},
		products:   map[int64]*entity.Product{},
		sales:      map[int64]*entity.Sale{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

type memUsers struct{ *memStore }

func (r memUsers) FindActiveByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email = entity.NormalizeEmail(email)
	for _, u := range r.users {
		if u.IsActive() && u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memUsers) FindActiveByEmailOrCPF(_ context.Context, email, cpf string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email = entity.NormalizeEmail(email)
	for _, u := range r.users {
		if u.IsActive() && (u.Email == email || u.CPF == cpf) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memUsers) FindActiveByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok && u.IsActive() {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r memUsers) ListActive(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, 0, len(r.users))
	for id, u := range r.users {
		if u.IsActive() {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*entity.User, 0)
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		cp := *r.users[ids[i]]
		out = append(out, &cp)
	}
	return out, nil
}

func (r memUsers) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.id()
	user.CreatedAt, user.UpdatedAt = time.Now(), time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r memUsers) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[user.ID]; !ok || !u.IsActive() {
		return domain.ErrNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r memUsers) SoftDelete(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[user.ID]
	if !ok || !u.IsActive() {
		return domain.ErrNotFound
	}
	now := time.Now()
	u.DeletedAt = &now
	user.DeletedAt = &now
	return nil
}

type memCategories struct{ *memStore }

func (r memCategories) Create(_ context.Context, c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.id()
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r memCategories) FindActiveByID(_ context.Context, id int64) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.categories[id]; ok && c.DeletedAt == nil {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r memCategories) ListActive(_ context.Context, limit, offset int) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Category, 0)
	for _, c := range r.categories {
		if c.DeletedAt == nil {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memCategories) Update(_ context.Context, c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r memCategories) SoftDelete(_ context.Context, c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.categories[c.ID].DeletedAt = &now
	return nil
}

type memProducts struct{ *memStore }

func (r memProducts) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.id()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r memProducts) FindActiveByID(_ context.Context, id int64) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok && p.DeletedAt == nil {
		cp := *p
		if c, ok := r.categories[p.CategoryID]; ok {
			cp.CategoryDescription = c.Description
		}
		return &cp, nil
	}
	return nil, nil
}

func (r memProducts) ListActive(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Product, 0)
	for _, p := range r.products {
		if p.DeletedAt == nil {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memProducts) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r memProducts) SoftDelete(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.products[p.ID].DeletedAt = &now
	return nil
}

type memSales struct{ *memStore }

func (r memSales) Create(_ context.Context, sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[sale.BuyerID]; !ok || !u.IsActive() {
		return domain.ErrNotFound
	}
	sale.ID = r.id()
	cp := *sale
	r.sales[sale.ID] = &cp
	return nil
}

func (r memSales) CreateItems(_ context.Context, saleID int64, productIDs []int64) ([]entity.SaleItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]entity.SaleItem, 0, len(productIDs))
	for _, pid := range productIDs {
		if p, ok := r.products[pid]; !ok || p.DeletedAt != nil {
			return nil, domain.ErrNotFound
		}
		items = append(items, entity.SaleItem{ID: r.id(), SaleID: saleID, ProductID: pid})
	}
	r.items = append(r.items, items...)
	return items, nil
}

func (r memSales) Lines(ctx context.Context, saleID int64) ([]entity.SaleLine, error) {
	m, err := r.LinesBySaleIDs(ctx, []int64{saleID})
	if err != nil {
		return nil, err
	}
	return m[saleID], nil
}

func (r memSales) LinesBySaleIDs(_ context.Context, saleIDs []int64) (map[int64][]entity.SaleLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := map[int64]bool{}
	for _, id := range saleIDs {
		want[id] = true
	}
	out := map[int64][]entity.SaleLine{}
	for _, it := range r.items {
		if !want[it.SaleID] {
			continue
		}
		p := r.products[it.ProductID]
		out[it.SaleID] = append(out[it.SaleID], entity.SaleLine{
			ItemID:      it.ID,
			ProductID:   p.ID,
			Category:    r.categories[p.CategoryID].Description,
			Description: p.Description,
			Price:       p.Price,
		})
	}
	return out, nil
}

func (r memSales) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sales[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r memSales) ListActive(_ context.Context) ([]*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Sale, 0)
	for _, s := range r.sales {
		if s.DeletedAt == nil {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// memTx deshace ventas y líneas si el callback falla.
type memTx struct{ *memStore }

func (t memTx) RunSales(_ context.Context, fn func(repository.SaleRepository) error) error {
	t.mu.Lock()
	salesBefore := make(map[int64]*entity.Sale, len(t.sales))
	for k, v := range t.sales {
		salesBefore[k] = v
	}
	itemsBefore := len(t.items)
	t.mu.Unlock()

	if err := fn(memSales{t.memStore}); err != nil {
		t.mu.Lock()
		t.sales = salesBefore
		t.items = t.items[:itemsBefore]
		t.mu.Unlock()
		return err
	}
	return nil
}
