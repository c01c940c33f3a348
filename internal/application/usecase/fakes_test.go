package usecase_test

import (
	"context"

	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

// Repositorios en memoria sobre un almacén compartido. El memTxRunner no
// simula rollback: la atomicidad del motor se prueba en su propio paquete;
// aquí interesa la orquestación de los casos de uso.

type memStore struct {
	products     map[string]*entity.Product
	categories   map[string]*entity.Category
	suppliers    map[string]*entity.Supplier
	users        map[string]*entity.User
	transactions []*entity.Transaction
}

func newMemStore() *memStore {
	return &memStore{
		products:   make(map[string]*entity.Product),
		categories: make(map[string]*entity.Category),
		suppliers:  make(map[string]*entity.Supplier),
		users:      make(map[string]*entity.User),
	}
}

// ─── productos ───────────────────────────────────────────────────────────────

type memProductRepo struct{ store *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	if _, ok := r.store.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *p
	r.store.products[p.ID] = &c
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.SKU == sku {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *memProductRepo) Update(p *entity.Product) error {
	stored, ok := r.store.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	quantity := stored.Quantity // quantity solo cambia vía UpdateQuantity
	c := *p
	c.Quantity = quantity
	r.store.products[p.ID] = &c
	return nil
}

func (r *memProductRepo) UpdateQuantity(productID string, quantity int) error {
	p, ok := r.store.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (r *memProductRepo) ListLowStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		if p.IsLowStock() {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memProductRepo) CountByCategory(categoryID string) (int, error) {
	count := 0
	for _, p := range r.store.products {
		if p.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (r *memProductRepo) CountBySupplier(supplierID string) (int, error) {
	count := 0
	for _, p := range r.store.products {
		if p.SupplierID == supplierID {
			count++
		}
	}
	return count, nil
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.store.products, id)
	return nil
}

// ─── categorías ──────────────────────────────────────────────────────────────

type memCategoryRepo struct{ store *memStore }

func (r *memCategoryRepo) Create(c *entity.Category) error {
	cp := *c
	r.store.categories[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.store.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.store.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCategoryRepo) Update(c *entity.Category) error {
	cp := *c
	r.store.categories[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) List(limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.store.categories {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memCategoryRepo) Delete(id string) error {
	delete(r.store.categories, id)
	return nil
}

// ─── proveedores ─────────────────────────────────────────────────────────────

type memSupplierRepo struct{ store *memStore }

func (r *memSupplierRepo) Create(s *entity.Supplier) error {
	cp := *s
	r.store.suppliers[s.ID] = &cp
	return nil
}

func (r *memSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.store.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSupplierRepo) GetByName(name string) (*entity.Supplier, error) {
	for _, s := range r.store.suppliers {
		if s.Name == name {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memSupplierRepo) Update(s *entity.Supplier) error {
	cp := *s
	r.store.suppliers[s.ID] = &cp
	return nil
}

func (r *memSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range r.store.suppliers {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memSupplierRepo) Delete(id string) error {
	delete(r.store.suppliers, id)
	return nil
}

// ─── usuarios ────────────────────────────────────────────────────────────────

type memUserRepo struct{ store *memStore }

func (r *memUserRepo) Create(u *entity.User) error {
	cp := *u
	r.store.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.store.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.store.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	cp := *u
	r.store.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.store.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memUserRepo) Delete(id string) error {
	delete(r.store.users, id)
	return nil
}

// ─── transacciones ───────────────────────────────────────────────────────────

type memTransactionRepo struct{ store *memStore }

func (r *memTransactionRepo) Create(tx *entity.Transaction) error {
	cp := *tx
	r.store.transactions = append(r.store.transactions, &cp)
	return nil
}

func (r *memTransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	for _, tx := range r.store.transactions {
		if tx.ID == id {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memTransactionRepo) List(limit, offset int) ([]*entity.Transaction, error) {
	return append([]*entity.Transaction(nil), r.store.transactions...), nil
}

func (r *memTransactionRepo) ListByProduct(productID string) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range r.store.transactions {
		if tx.ProductID == productID {
			out = append(out, tx)
		}
	}
	return out, nil
}

// ─── tx runner ───────────────────────────────────────────────────────────────

type memTxRunner struct{ store *memStore }

func (f *memTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
) error) error {
	return fn(&memProductRepo{store: f.store}, &memTransactionRepo{store: f.store})
}
