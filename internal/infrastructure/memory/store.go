// Package memory implementa los puertos de persistencia sobre mapas en memoria.
// Un único mutex serializa los escritores; las lecturas toman el candado compartido.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/smartsales-api/internal/domain"
	"github.com/jhoicas/smartsales-api/internal/domain/entity"
	"github.com/jhoicas/smartsales-api/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

// Store guarda productos (indexados por NameKey) y la serie de ventas.
type Store struct {
	mu       sync.RWMutex
	products map[string]entity.Product
	sales    []entity.SalesPeriod
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{products: make(map[string]entity.Product)}
}

// Products devuelve el repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Sales devuelve el repositorio de la serie fuera de transacción.
func (s *Store) Sales() *SalesRepo { return &SalesRepo{s: s} }

// Run toma el candado de escritura durante toda la función. Si fn falla se restaura
// el estado previo, de modo que no quedan escrituras parciales.
func (s *Store) Run(ctx context.Context, fn func(products repository.ProductRepository, sales repository.SalesRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapProducts := make(map[string]entity.Product, len(s.products))
	for k, v := range s.products {
		snapProducts[k] = v
	}
	snapSales := append([]entity.SalesPeriod(nil), s.sales...)

	if err := fn(&ProductRepo{s: s, locked: true}, &SalesRepo{s: s, locked: true}); err != nil {
		s.products = snapProducts
		s.sales = snapSales
		return err
	}
	return nil
}

func (s *Store) rlock(locked bool) func() {
	if locked {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) lock(locked bool) func() {
	if locked {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s      *Store
	locked bool // true dentro de Store.Run
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

// Create inserta el producto; ErrDuplicate si la clave ya existe.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.s.lock(r.locked)()
	key := entity.NormalizeKey(p.Name)
	if _, ok := r.s.products[key]; ok {
		return domain.ErrDuplicate
	}
	p.NameKey = key
	r.s.products[key] = *p
	return nil
}

// GetByName busca por clave normalizada.
func (r *ProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	defer r.s.rlock(r.locked)()
	p, ok := r.s.products[entity.NormalizeKey(name)]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetByNameForUpdate equivale a GetByName: dentro de Run ya se tiene el candado exclusivo.
func (r *ProductRepo) GetByNameForUpdate(ctx context.Context, name string) (*entity.Product, error) {
	return r.GetByName(ctx, name)
}

// Update reemplaza el producto existente.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.s.lock(r.locked)()
	key := entity.NormalizeKey(p.Name)
	if _, ok := r.s.products[key]; !ok {
		return domain.ErrNotFound
	}
	p.NameKey = key
	r.s.products[key] = *p
	return nil
}

// List devuelve los productos ordenados por fecha de creación y nombre.
func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	defer r.s.rlock(r.locked)()
	list := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		p := p
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].NameKey < list[j].NameKey
	})
	return list, nil
}

// DeleteByName borra por clave normalizada.
func (r *ProductRepo) DeleteByName(_ context.Context, name string) (bool, error) {
	defer r.s.lock(r.locked)()
	key := entity.NormalizeKey(name)
	if _, ok := r.s.products[key]; !ok {
		return false, nil
	}
	delete(r.s.products, key)
	return true, nil
}

// SalesRepo implementación en memoria de SalesRepository.
type SalesRepo struct {
	s      *Store
	locked bool
}

var _ repository.SalesRepository = (*SalesRepo)(nil)

// Append agrega el período al final de la serie.
func (r *SalesRepo) Append(_ context.Context, p *entity.SalesPeriod) error {
	defer r.s.lock(r.locked)()
	key := entity.NormalizeKey(p.Label)
	for _, existing := range r.s.sales {
		if existing.LabelKey == key {
			return domain.ErrDuplicate
		}
	}
	p.LabelKey = key
	p.Position = len(r.s.sales)
	r.s.sales = append(r.s.sales, *p)
	return nil
}

// List devuelve una copia de la serie en orden cronológico.
func (r *SalesRepo) List(_ context.Context) ([]*entity.SalesPeriod, error) {
	defer r.s.rlock(r.locked)()
	list := make([]*entity.SalesPeriod, 0, len(r.s.sales))
	for _, p := range r.s.sales {
		p := p
		list = append(list, &p)
	}
	return list, nil
}

// GetByLabel busca por etiqueta normalizada.
func (r *SalesRepo) GetByLabel(_ context.Context, label string) (*entity.SalesPeriod, error) {
	defer r.s.rlock(r.locked)()
	key := entity.NormalizeKey(label)
	for _, p := range r.s.sales {
		if p.LabelKey == key {
			return &p, nil
		}
	}
	return nil, nil
}

// ReplaceAll sustituye la serie completa.
func (r *SalesRepo) ReplaceAll(_ context.Context, periods []*entity.SalesPeriod) error {
	defer r.s.lock(r.locked)()
	next := make([]entity.SalesPeriod, 0, len(periods))
	for i, p := range periods {
		cp := *p
		cp.LabelKey = entity.NormalizeKey(cp.Label)
		cp.Position = i
		next = append(next, cp)
	}
	r.s.sales = next
	return nil
}

// DeleteByLabel quita el período y compacta las posiciones.
func (r *SalesRepo) DeleteByLabel(_ context.Context, label string) (bool, error) {
	defer r.s.lock(r.locked)()
	key := entity.NormalizeKey(label)
	for i, p := range r.s.sales {
		if p.LabelKey != key {
			continue
		}
		r.s.sales = append(r.s.sales[:i:i], r.s.sales[i+1:]...)
		for j := i; j < len(r.s.sales); j++ {
			r.s.sales[j].Position = j
		}
		return true, nil
	}
	return false, nil
}
