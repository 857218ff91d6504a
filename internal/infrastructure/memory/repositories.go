package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/craft-inventory-api/internal/domain"
	"github.com/jhoicas/craft-inventory-api/internal/domain/entity"
)

// MaterialRepo implementa repository.MaterialRepository.
type MaterialRepo struct{ db access }

func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	return r.db.do(ctx, "materials.create", func(st *state) error {
		for _, other := range st.materials {
			if other.Name == m.Name {
				return fmt.Errorf("material %q: %w", m.Name, domain.ErrDuplicate)
			}
		}
		m.ID = st.nextID()
		st.materials[m.ID] = *m
		return nil
	})
}

func (r *MaterialRepo) GetByID(ctx context.Context, id int64) (*entity.Material, error) {
	var out *entity.Material
	err := r.db.do(ctx, "materials.get", func(st *state) error {
		if m, ok := st.materials[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: las transacciones ya están serializadas.
func (r *MaterialRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Material, error) {
	return r.GetByID(ctx, id)
}

func (r *MaterialRepo) UpdateQuantity(ctx context.Context, m *entity.Material) error {
	return r.db.do(ctx, OpUpdateMaterialQuantity, func(st *state) error {
		cur, ok := st.materials[m.ID]
		if !ok {
			return fmt.Errorf("material %d: %w", m.ID, domain.ErrNotFound)
		}
		cur.Quantity = m.Quantity
		st.materials[m.ID] = cur
		return nil
	})
}

func (r *MaterialRepo) List(ctx context.Context, limit, offset int) ([]*entity.Material, error) {
	var out []*entity.Material
	err := r.db.do(ctx, "materials.list", func(st *state) error {
		out = page(sortedMaterials(st, nil), limit, offset)
		return nil
	})
	return out, err
}

func (r *MaterialRepo) ListLowStock(ctx context.Context) ([]*entity.Material, error) {
	var out []*entity.Material
	err := r.db.do(ctx, "materials.list_low_stock", func(st *state) error {
		out = sortedMaterials(st, func(m *entity.Material) bool { return m.IsLowStock() })
		return nil
	})
	return out, err
}

func sortedMaterials(st *state, keep func(*entity.Material) bool) []*entity.Material {
	out := make([]*entity.Material, 0, len(st.materials))
	for _, m := range st.materials {
		if keep == nil || keep(&m) {
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ProductRepo implementa repository.ProductRepository.
type ProductRepo struct{ db access }

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.db.do(ctx, "products.create", func(st *state) error {
		for _, other := range st.products {
			if other.Name == p.Name {
				return fmt.Errorf("product %q: %w", p.Name, domain.ErrDuplicate)
			}
		}
		if p.LocationID != nil {
			if _, ok := st.locations[*p.LocationID]; !ok {
				return fmt.Errorf("location %d: %w", *p.LocationID, domain.ErrNotFound)
			}
		}
		p.ID = st.nextID()
		stored := *p
		stored.LocationID = copyID(p.LocationID)
		st.products[p.ID] = stored
		return nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.db.do(ctx, "products.get", func(st *state) error {
		if p, ok := st.products[id]; ok {
			p.LocationID = copyID(p.LocationID)
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) List(ctx context.Context, locationID *int64, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.db.do(ctx, "products.list", func(st *state) error {
		list := make([]*entity.Product, 0, len(st.products))
		for _, p := range st.products {
			if locationID != nil && (p.LocationID == nil || *p.LocationID != *locationID) {
				continue
			}
			p.LocationID = copyID(p.LocationID)
			list = append(list, &p)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
		out = page(list, limit, offset)
		return nil
	})
	return out, err
}

// LocationRepo implementa repository.LocationRepository.
type LocationRepo struct{ db access }

func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	return r.db.do(ctx, "locations.create", func(st *state) error {
		for _, other := range st.locations {
			if other.Name == l.Name {
				return fmt.Errorf("location %q: %w", l.Name, domain.ErrDuplicate)
			}
		}
		l.ID = st.nextID()
		st.locations[l.ID] = *l
		return nil
	})
}

func (r *LocationRepo) GetByID(ctx context.Context, id int64) (*entity.Location, error) {
	var out *entity.Location
	err := r.db.do(ctx, "locations.get", func(st *state) error {
		if l, ok := st.locations[id]; ok {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *LocationRepo) List(ctx context.Context, limit, offset int) ([]*entity.Location, error) {
	var out []*entity.Location
	err := r.db.do(ctx, "locations.list", func(st *state) error {
		list := make([]*entity.Location, 0, len(st.locations))
		for _, l := range st.locations {
			list = append(list, &l)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
		out = page(list, limit, offset)
		return nil
	})
	return out, err
}

// BOMRepo implementa repository.BillOfMaterialRepository.
type BOMRepo struct{ db access }

func (r *BOMRepo) Create(ctx context.Context, b *entity.BillOfMaterial) error {
	return r.db.do(ctx, "boms.create", func(st *state) error {
		if _, ok := st.products[b.ProductID]; !ok {
			return fmt.Errorf("product %d: %w", b.ProductID, domain.ErrNotFound)
		}
		if _, ok := st.materials[b.MaterialID]; !ok {
			return fmt.Errorf("material %d: %w", b.MaterialID, domain.ErrNotFound)
		}
		for _, other := range st.boms {
			if other.ProductID == b.ProductID && other.MaterialID == b.MaterialID {
				return fmt.Errorf("bom (%d, %d): %w", b.ProductID, b.MaterialID, domain.ErrDuplicate)
			}
		}
		b.ID = st.nextID()
		st.boms[b.ID] = *b
		return nil
	})
}

func (r *BOMRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.BillOfMaterial, error) {
	return r.List(ctx, &productID)
}

func (r *BOMRepo) List(ctx context.Context, productID *int64) ([]*entity.BillOfMaterial, error) {
	var out []*entity.BillOfMaterial
	err := r.db.do(ctx, "boms.list", func(st *state) error {
		out = make([]*entity.BillOfMaterial, 0)
		for _, b := range st.boms {
			if productID != nil && b.ProductID != *productID {
				continue
			}
			out = append(out, &b)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return nil
	})
	return out, err
}

// ProductionOrderRepo implementa repository.ProductionOrderRepository.
type ProductionOrderRepo struct{ db access }

func (r *ProductionOrderRepo) Create(ctx context.Context, o *entity.ProductionOrder) error {
	return r.db.do(ctx, "orders.create", func(st *state) error {
		if _, ok := st.products[o.ProductID]; !ok {
			return fmt.Errorf("product %d: %w", o.ProductID, domain.ErrNotFound)
		}
		o.ID = st.nextID()
		st.orders[o.ID] = copyOrder(*o)
		return nil
	})
}

func (r *ProductionOrderRepo) GetByID(ctx context.Context, id int64) (*entity.ProductionOrder, error) {
	var out *entity.ProductionOrder
	err := r.db.do(ctx, "orders.get", func(st *state) error {
		if o, ok := st.orders[id]; ok {
			o = copyOrder(o)
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *ProductionOrderRepo) GetForUpdate(ctx context.Context, id int64) (*entity.ProductionOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductionOrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.ProductionOrder, error) {
	var out []*entity.ProductionOrder
	err := r.db.do(ctx, "orders.list", func(st *state) error {
		list := make([]*entity.ProductionOrder, 0, len(st.orders))
		for _, o := range st.orders {
			o = copyOrder(o)
			list = append(list, &o)
		}
		sort.Slice(list, func(i, j int) bool {
			if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
				return list[i].CreatedAt.After(list[j].CreatedAt)
			}
			return list[i].ID > list[j].ID
		})
		out = page(list, limit, offset)
		return nil
	})
	return out, err
}

func (r *ProductionOrderRepo) UpdateStatus(ctx context.Context, o *entity.ProductionOrder) error {
	return r.db.do(ctx, OpUpdateOrderStatus, func(st *state) error {
		cur, ok := st.orders[o.ID]
		if !ok {
			return fmt.Errorf("production order %d: %w", o.ID, domain.ErrNotFound)
		}
		cur.Status = o.Status
		cur.CompletedAt = copyTime(o.CompletedAt)
		st.orders[o.ID] = cur
		return nil
	})
}

// Delete borra la orden y su audit log; el libro conserva sus filas sin el vínculo.
func (r *ProductionOrderRepo) Delete(ctx context.Context, id int64) error {
	return r.db.do(ctx, "orders.delete", func(st *state) error {
		if _, ok := st.orders[id]; !ok {
			return fmt.Errorf("production order %d: %w", id, domain.ErrNotFound)
		}
		delete(st.orders, id)
		kept := st.auditLogs[:0:0]
		for _, a := range st.auditLogs {
			if a.ProductionOrderID != id {
				kept = append(kept, a)
			}
		}
		st.auditLogs = kept
		for i := range st.invLogs {
			if st.invLogs[i].ProductionOrderID != nil && *st.invLogs[i].ProductionOrderID == id {
				st.invLogs[i].ProductionOrderID = nil
			}
		}
		return nil
	})
}

// InventoryLogRepo implementa repository.InventoryLogRepository.
type InventoryLogRepo struct{ db access }

func (r *InventoryLogRepo) Create(ctx context.Context, l *entity.InventoryChangeLog) error {
	return r.db.do(ctx, OpCreateInventoryLog, func(st *state) error {
		if _, ok := st.materials[l.MaterialID]; !ok {
			return fmt.Errorf("material %d: %w", l.MaterialID, domain.ErrNotFound)
		}
		if l.ProductionOrderID != nil {
			if _, ok := st.orders[*l.ProductionOrderID]; !ok {
				return fmt.Errorf("production order %d: %w", *l.ProductionOrderID, domain.ErrNotFound)
			}
		}
		l.ID = st.nextID()
		stored := *l
		stored.ProductionOrderID = copyID(l.ProductionOrderID)
		st.invLogs = append(st.invLogs, stored)
		return nil
	})
}

func (r *InventoryLogRepo) List(ctx context.Context, f entity.InventoryLogFilter) ([]*entity.InventoryChangeLog, error) {
	var out []*entity.InventoryChangeLog
	err := r.db.do(ctx, "inventory_logs.list", func(st *state) error {
		list := make([]*entity.InventoryChangeLog, 0)
		for _, l := range st.invLogs {
			if f.MaterialID != nil && l.MaterialID != *f.MaterialID {
				continue
			}
			if f.ChangeType != nil && l.ChangeType != *f.ChangeType {
				continue
			}
			l.ProductionOrderID = copyID(l.ProductionOrderID)
			list = append(list, &l)
		}
		sort.Slice(list, func(i, j int) bool {
			if !list[i].Timestamp.Equal(list[j].Timestamp) {
				return list[i].Timestamp.After(list[j].Timestamp)
			}
			return list[i].ID > list[j].ID
		})
		out = page(list, f.Limit, 0)
		return nil
	})
	return out, err
}

// AuditLogRepo implementa repository.ProductionAuditLogRepository.
type AuditLogRepo struct{ db access }

func (r *AuditLogRepo) Create(ctx context.Context, a *entity.ProductionAuditLog) error {
	return r.db.do(ctx, OpCreateAuditLog, func(st *state) error {
		if _, ok := st.orders[a.ProductionOrderID]; !ok {
			return fmt.Errorf("production order %d: %w", a.ProductionOrderID, domain.ErrNotFound)
		}
		a.ID = st.nextID()
		st.auditLogs = append(st.auditLogs, *a)
		return nil
	})
}

func (r *AuditLogRepo) ListByOrder(ctx context.Context, orderID int64) ([]*entity.ProductionAuditLog, error) {
	var out []*entity.ProductionAuditLog
	err := r.db.do(ctx, "audit_logs.list", func(st *state) error {
		for _, a := range st.auditLogs {
			if a.ProductionOrderID == orderID {
				out = append(out, &a)
			}
		}
		sort.Slice(out, func(i, j int) bool {
			if !out[i].Timestamp.Equal(out[j].Timestamp) {
				return out[i].Timestamp.After(out[j].Timestamp)
			}
			return out[i].ID > out[j].ID
		})
		return nil
	})
	return out, err
}

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ db access }

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	return r.db.do(ctx, "users.create", func(st *state) error {
		for _, other := range st.users {
			if other.Username == u.Username {
				return fmt.Errorf("user %q: %w", u.Username, domain.ErrDuplicate)
			}
		}
		u.ID = st.nextID()
		st.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.db.do(ctx, "users.get", func(st *state) error {
		for _, u := range st.users {
			if u.Username == username {
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.db.do(ctx, "users.list", func(st *state) error {
		out = make([]*entity.User, 0, len(st.users))
		for _, u := range st.users {
			out = append(out, &u)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return nil
	})
	return out, err
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func copyID(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyOrder(o entity.ProductionOrder) entity.ProductionOrder {
	o.CompletedAt = copyTime(o.CompletedAt)
	return o
}
