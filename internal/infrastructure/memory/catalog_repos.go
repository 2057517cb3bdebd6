package memory

import (
	"sort"

	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)
var _ repository.VariantRepository = (*VariantRepo)(nil)
var _ repository.BOMRepository = (*BOMRepo)(nil)
var _ repository.UserRepository = (*UserRepo)(nil)

// ProductRepo catálogo de productos en memoria.
type ProductRepo struct{ s *Store }

// NewProductRepository construye el adaptador.
func NewProductRepository(s *Store) *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) Create(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[product.ID] = *product
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	var list []*entity.Product
	for i := offset; i < len(all) && len(list) < limit; i++ {
		p := all[i]
		list = append(list, &p)
	}
	return list, nil
}

func (r *ProductRepo) Update(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.products[product.ID] = *product
	return nil
}

// VariantRepo variantes y selecciones en memoria.
type VariantRepo struct{ s *Store }

// NewVariantRepository construye el adaptador.
func NewVariantRepository(s *Store) *VariantRepo { return &VariantRepo{s: s} }

func (r *VariantRepo) Create(variant *entity.ProductVariant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.variants {
		if v.SKU == variant.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.variants[variant.ID] = *variant
	return nil
}

func (r *VariantRepo) GetByID(id string) (*entity.ProductVariant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if v, ok := r.s.variants[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *VariantRepo) GetBySKU(sku string) (*entity.ProductVariant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.variants {
		if v.SKU == sku {
			v := v
			return &v, nil
		}
	}
	return nil, nil
}

func (r *VariantRepo) ListByProduct(productID string) ([]*entity.ProductVariant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.ProductVariant
	for _, v := range r.s.variants {
		if v.ProductID == productID {
			v := v
			list = append(list, &v)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SKU < list[j].SKU })
	return list, nil
}

func (r *VariantRepo) ListAll() ([]*entity.ProductVariant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.ProductVariant
	for _, v := range r.s.variants {
		v := v
		list = append(list, &v)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SKU < list[j].SKU })
	return list, nil
}

func (r *VariantRepo) Update(variant *entity.ProductVariant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.variants[variant.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.variants[variant.ID] = *variant
	return nil
}

func (r *VariantRepo) AddSelection(sel *entity.VariantSelection) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.selections = append(r.s.selections, *sel)
	return nil
}

func (r *VariantRepo) ListSelections(variantID string) ([]*entity.VariantSelection, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.VariantSelection
	for _, sel := range r.s.selections {
		if sel.VariantID == variantID {
			sel := sel
			list = append(list, &sel)
		}
	}
	return list, nil
}

func (r *VariantRepo) ListAllSelections() ([]*entity.VariantSelection, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.VariantSelection, 0, len(r.s.selections))
	for _, sel := range r.s.selections {
		sel := sel
		list = append(list, &sel)
	}
	return list, nil
}

// BOMRepo entradas de BOM en memoria.
type BOMRepo struct{ s *Store }

// NewBOMRepository construye el adaptador.
func NewBOMRepository(s *Store) *BOMRepo { return &BOMRepo{s: s} }

func (r *BOMRepo) Create(entry *entity.BOMEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.bomEntries[entry.ID] = *entry
	return nil
}

func (r *BOMRepo) ListByParent(parentVariantID string) ([]*entity.BOMEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.BOMEntry
	for _, e := range r.s.bomEntries {
		if e.ParentVariantID == parentVariantID {
			e := e
			list = append(list, &e)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ComponentVariantID < list[j].ComponentVariantID })
	return list, nil
}

func (r *BOMRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bomEntries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.bomEntries, id)
	return nil
}

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

// NewUserRepository construye el adaptador.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrDuplicate
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}
