// Package memory implementa los repositorios sobre un estado en memoria con unidad de trabajo
// por copia: Run trabaja sobre un clon y solo lo publica si fn termina sin error.
// Sirve STORAGE_DRIVER=memory (demo) y las pruebas de los casos de uso.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/Electrotienda-api/internal/application/inventory"
	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
)

// ErrInjectedFailure error devuelto por la falla simulada de Append.
var ErrInjectedFailure = errors.New("memory: falla simulada al anexar movimiento")

var _ inventory.TxRunner = (*Store)(nil)

type state struct {
	products         map[string]*entity.Product
	movements        []*entity.MovementLog
	purchaseInvoices map[string]*entity.PurchaseInvoice
	salesInvoices    map[string]*entity.SalesInvoice
	returns          map[string]map[string]*entity.ProductReturn // clase -> id -> devolución
	users            map[string]*entity.User
}

func newState() *state {
	return &state{
		products:         make(map[string]*entity.Product),
		purchaseInvoices: make(map[string]*entity.PurchaseInvoice),
		salesInvoices:    make(map[string]*entity.SalesInvoice),
		returns: map[string]map[string]*entity.ProductReturn{
			entity.ReturnKindPurchase: {},
			entity.ReturnKindSales:    {},
		},
		users: make(map[string]*entity.User),
	}
}

// clone copia los índices. Los valores se tratan como inmutables (los repos guardan copias),
// así que compartir punteros entre estados es seguro.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = v
	}
	c.movements = append(c.movements, s.movements...)
	for k, v := range s.purchaseInvoices {
		c.purchaseInvoices[k] = v
	}
	for k, v := range s.salesInvoices {
		c.salesInvoices[k] = v
	}
	for kind, byID := range s.returns {
		for k, v := range byID {
			c.returns[kind][k] = v
		}
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// Store estado compartido. Run serializa las unidades de trabajo (equivale al bloqueo de filas).
type Store struct {
	mu           sync.RWMutex
	st           *state
	failAppendAt int
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// FailAppendAt hace que, en la próxima unidad de trabajo, el n-ésimo Append (desde 1) falle.
func (s *Store) FailAppendAt(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAppendAt = n
}

// Run ejecuta fn sobre un clon del estado; lo publica solo si fn no devuelve error.
func (s *Store) Run(ctx context.Context, fn func(r inventory.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	v := &view{store: s, tx: s.st.clone(), failAt: s.failAppendAt}
	s.failAppendAt = 0
	if err := fn(v.repos()); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit cancelado: %w", err)
	}
	s.st = v.tx
	return nil
}

func (s *Store) direct() *view { return &view{store: s} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *MovementLogRepo { return &MovementLogRepo{v: s.direct()} }

// Products catálogo fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{v: s.direct()} }

// PurchaseInvoices facturas de compra fuera de transacción.
func (s *Store) PurchaseInvoices() *PurchaseInvoiceRepo { return &PurchaseInvoiceRepo{v: s.direct()} }

// SalesInvoices facturas de venta fuera de transacción.
func (s *Store) SalesInvoices() *SalesInvoiceRepo { return &SalesInvoiceRepo{v: s.direct()} }

// PurchaseReturns devoluciones a proveedor fuera de transacción.
func (s *Store) PurchaseReturns() *ReturnRepo {
	return &ReturnRepo{v: s.direct(), kind: entity.ReturnKindPurchase}
}

// SalesReturns devoluciones de cliente fuera de transacción.
func (s *Store) SalesReturns() *ReturnRepo {
	return &ReturnRepo{v: s.direct(), kind: entity.ReturnKindSales}
}

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{v: s.direct()} }

// view acceso a un estado: el confirmado (con lock) o el clon de una transacción (sin lock,
// Run ya lo tiene tomado).
type view struct {
	store   *Store
	tx      *state
	appends int
	failAt  int
}

func (v *view) read(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return fn(v.store.st)
}

func (v *view) write(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.st)
}

func (v *view) repos() inventory.Repos {
	return inventory.Repos{
		Movements:        &MovementLogRepo{v: v},
		Products:         &ProductRepo{v: v},
		PurchaseInvoices: &PurchaseInvoiceRepo{v: v},
		SalesInvoices:    &SalesInvoiceRepo{v: v},
		PurchaseReturns:  &ReturnRepo{v: v, kind: entity.ReturnKindPurchase},
		SalesReturns:     &ReturnRepo{v: v, kind: entity.ReturnKindSales},
	}
}
