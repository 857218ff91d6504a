package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/craft-inventory-api/internal/application/inventory"
	"github.com/jhoicas/craft-inventory-api/internal/domain/entity"
)

// Operaciones sobre las que se puede inyectar una falla (tests de rollback).
const (
	OpUpdateMaterialQuantity = "materials.update_quantity"
	OpCreateInventoryLog     = "inventory_logs.create"
	OpUpdateOrderStatus      = "orders.update_status"
	OpCreateAuditLog         = "audit_logs.create"
)

// state contenido completo del almacén. Las transacciones trabajan sobre un clon.
type state struct {
	seq       int64
	materials map[int64]entity.Material
	products  map[int64]entity.Product
	locations map[int64]entity.Location
	boms      map[int64]entity.BillOfMaterial
	orders    map[int64]entity.ProductionOrder
	invLogs   []entity.InventoryChangeLog
	auditLogs []entity.ProductionAuditLog
	users     map[int64]entity.User
}

func newState() *state {
	return &state{
		materials: map[int64]entity.Material{},
		products:  map[int64]entity.Product{},
		locations: map[int64]entity.Location{},
		boms:      map[int64]entity.BillOfMaterial{},
		orders:    map[int64]entity.ProductionOrder{},
		users:     map[int64]entity.User{},
	}
}

func (st *state) nextID() int64 {
	st.seq++
	return st.seq
}

// clone copia los mapas; las entidades se guardan por valor.
func (st *state) clone() *state {
	c := &state{
		seq:       st.seq,
		materials: make(map[int64]entity.Material, len(st.materials)),
		products:  make(map[int64]entity.Product, len(st.products)),
		locations: make(map[int64]entity.Location, len(st.locations)),
		boms:      make(map[int64]entity.BillOfMaterial, len(st.boms)),
		orders:    make(map[int64]entity.ProductionOrder, len(st.orders)),
		invLogs:   append([]entity.InventoryChangeLog(nil), st.invLogs...),
		auditLogs: append([]entity.ProductionAuditLog(nil), st.auditLogs...),
		users:     make(map[int64]entity.User, len(st.users)),
	}
	for k, v := range st.materials {
		c.materials[k] = v
	}
	for k, v := range st.products {
		c.products[k] = v
	}
	for k, v := range st.locations {
		c.locations[k] = v
	}
	for k, v := range st.boms {
		c.boms[k] = v
	}
	for k, v := range st.orders {
		c.orders[k] = v
	}
	for k, v := range st.users {
		c.users[k] = v
	}
	return c
}

type fault struct {
	after int
	calls int
	err   error
}

// Store almacén en memoria con transacciones de snapshot: Run trabaja sobre un clon y solo lo
// publica si fn termina sin error. Un mutex serializa transacciones y operaciones sueltas,
// haciendo las veces del aislamiento de la base de datos.
type Store struct {
	mu     sync.Mutex
	data   *state
	faults map[string]*fault
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newState(), faults: map[string]*fault{}}
}

// InjectFault hace que la operación op falle con err a partir de la llamada número after+1.
func (s *Store) InjectFault(op string, after int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = &fault{after: after, err: err}
}

// ClearFaults elimina las fallas inyectadas.
func (s *Store) ClearFaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = map[string]*fault{}
}

// check se llama con el mutex tomado.
func (s *Store) check(op string) error {
	f, ok := s.faults[op]
	if !ok {
		return nil
	}
	f.calls++
	if f.calls > f.after {
		return f.err
	}
	return nil
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	tx := &txAccess{store: s, st: snapshot}
	if err := fn(ctx, inventory.TxRepos{
		Materials:     &MaterialRepo{db: tx},
		BOMs:          &BOMRepo{db: tx},
		Orders:        &ProductionOrderRepo{db: tx},
		InventoryLogs: &InventoryLogRepo{db: tx},
		AuditLogs:     &AuditLogRepo{db: tx},
	}); err != nil {
		return err
	}
	s.data = snapshot
	return nil
}

// Repositorios fuera de transacción; cada llamada es atómica por sí sola.

func (s *Store) Materials() *MaterialRepo { return &MaterialRepo{db: (*storeAccess)(s)} }
func (s *Store) Products() *ProductRepo { return &ProductRepo{db: (*storeAccess)(s)} }
func (s *Store) Locations() *LocationRepo { return &LocationRepo{db: (*storeAccess)(s)} }
func (s *Store) BOMs() *BOMRepo { return &BOMRepo{db: (*storeAccess)(s)} }
func (s *Store) ProductionOrders() *ProductionOrderRepo { return &ProductionOrderRepo{db: (*storeAccess)(s)} }
func (s *Store) InventoryLogs() *InventoryLogRepo { return &InventoryLogRepo{db: (*storeAccess)(s)} }
func (s *Store) AuditLogs() *AuditLogRepo { return &AuditLogRepo{db: (*storeAccess)(s)} }
func (s *Store) Users() *UserRepo { return &UserRepo{db: (*storeAccess)(s)} }

// access abstrae "con lock" (operación suelta) o "ya dentro de la tx".
type access interface {
	do(ctx context.Context, op string, fn func(st *state) error) error
}

type storeAccess Store

func (a *storeAccess) do(ctx context.Context, op string, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := (*Store)(a)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(op); err != nil {
		return err
	}
	return fn(s.data)
}

type txAccess struct {
	store *Store
	st    *state
}

func (a *txAccess) do(ctx context.Context, op string, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := a.store.check(op); err != nil {
		return err
	}
	return fn(a.st)
}

// DeleteMaterial borra un material sin tocar las líneas de BoM que lo referencian,
// dejando el estado que produce una base sin claves foráneas.
func (s *Store) DeleteMaterial(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data.materials, id)
}
