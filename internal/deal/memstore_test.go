package deal

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iurnickita/autosalon/internal/model"
	"github.com/iurnickita/autosalon/internal/store"
)

// memStore - хранилище в памяти с откатом: транзакция работает над копией состояния
type memStore struct {
	mu    sync.Mutex
	state memState

	conflicts  int   // столько первых транзакций завершатся конфликтом
	failAppend error // ошибка записи в журнал
	block      bool  // транзакция ждет отмены контекста
	calls      int
}

type memState struct {
	autosalons    map[int64]model.AutoSalon
	suppliers     map[int64]model.Supplier
	customers     map[int64]model.Customer
	cars          map[int64]model.Car
	offers        []model.SupplierOffer
	sales         []model.SaleHistory
	customerSales []model.CustomerSaleHistory
}

func newMemStore() *memStore {
	return &memStore{state: memState{
		autosalons: map[int64]model.AutoSalon{},
		suppliers:  map[int64]model.Supplier{},
		customers:  map[int64]model.Customer{},
		cars:       map[int64]model.Car{},
	}}
}

func (s memState) clone() memState {
	c := memState{
		autosalons:    make(map[int64]model.AutoSalon, len(s.autosalons)),
		suppliers:     make(map[int64]model.Supplier, len(s.suppliers)),
		customers:     make(map[int64]model.Customer, len(s.customers)),
		cars:          make(map[int64]model.Car, len(s.cars)),
		offers:        slices.Clone(s.offers),
		sales:         slices.Clone(s.sales),
		customerSales: slices.Clone(s.customerSales),
	}
	for id, a := range s.autosalons {
		a.SupplierIDs = slices.Clone(a.SupplierIDs)
		a.CustomerIDs = slices.Clone(a.CustomerIDs)
		a.CarIDs = slices.Clone(a.CarIDs)
		c.autosalons[id] = a
	}
	for id, sp := range s.suppliers {
		sp.CarIDs = slices.Clone(sp.CarIDs)
		c.suppliers[id] = sp
	}
	for id, cu := range s.customers {
		c.customers[id] = cu
	}
	for id, car := range s.cars {
		car.AutoSalonIDs = slices.Clone(car.AutoSalonIDs)
		car.OptionIDs = slices.Clone(car.OptionIDs)
		c.cars[id] = car
	}
	return c
}

func (m *memStore) InTx(ctx context.Context, fn func(tx store.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.conflicts > 0 {
		m.conflicts--
		return fmt.Errorf("%w: injected", store.ErrConflict)
	}

	work := m.state.clone()
	if err := fn(&memTx{m: m, state: &work}); err != nil {
		return err
	}
	// commit после истечения контекста не проходит
	if err := ctx.Err(); err != nil {
		return err
	}
	m.state = work
	return nil
}

func (m *memStore) AutoSalonActiveIDs(ctx context.Context) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := []int64{}
	for id, a := range m.state.autosalons {
		if a.IsActive {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (m *memStore) snapshot() memState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

type memTx struct {
	m     *memStore
	state *memState
}

func (tx *memTx) AutoSalonLock(ctx context.Context, id int64) (model.AutoSalon, error) {
	if tx.m.block {
		<-ctx.Done()
		return model.AutoSalon{}, ctx.Err()
	}
	a, ok := tx.state.autosalons[id]
	if !ok {
		return model.AutoSalon{}, store.ErrNotFound
	}
	return a, nil
}

func (tx *memTx) AutoSalonSetBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	a, ok := tx.state.autosalons[id]
	if !ok {
		return store.ErrNotFound
	}
	a.Balance = balance
	tx.state.autosalons[id] = a
	return nil
}

func (tx *memTx) AutoSalonAddCars(ctx context.Context, id int64, carIDs []int64) error {
	a, ok := tx.state.autosalons[id]
	if !ok {
		return store.ErrNotFound
	}
	for _, carID := range carIDs {
		if !slices.Contains(a.CarIDs, carID) {
			a.CarIDs = append(a.CarIDs, carID)
		}
	}
	tx.state.autosalons[id] = a
	return nil
}

func (tx *memTx) AutoSalonSuppliers(ctx context.Context, id int64) ([]model.Supplier, error) {
	a, ok := tx.state.autosalons[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	suppliers := []model.Supplier{}
	for _, supplierID := range a.SupplierIDs {
		if s, ok := tx.state.suppliers[supplierID]; ok {
			suppliers = append(suppliers, s)
		}
	}
	sort.Slice(suppliers, func(i, j int) bool { return suppliers[i].ID < suppliers[j].ID })
	return suppliers, nil
}

func (tx *memTx) AutoSalonRemoveSupplier(ctx context.Context, autosalonID int64, supplierID int64) error {
	a, ok := tx.state.autosalons[autosalonID]
	if !ok {
		return store.ErrNotFound
	}
	a.SupplierIDs = slices.DeleteFunc(a.SupplierIDs, func(id int64) bool { return id == supplierID })
	tx.state.autosalons[autosalonID] = a
	return nil
}

func (tx *memTx) SupplierGet(ctx context.Context, id int64) (model.Supplier, error) {
	s, ok := tx.state.suppliers[id]
	if !ok {
		return model.Supplier{}, store.ErrNotFound
	}
	return s, nil
}

func (tx *memTx) SupplierOfferActive(ctx context.Context, supplierID int64, at time.Time) (model.SupplierOffer, bool, error) {
	var best model.SupplierOffer
	found := false
	for _, o := range tx.state.offers {
		if o.SupplierID != supplierID || !o.ActiveAt(at) {
			continue
		}
		if !found || o.Discount > best.Discount {
			best = o
			found = true
		}
	}
	return best, found, nil
}

func (tx *memTx) CustomerLock(ctx context.Context, id int64) (model.Customer, error) {
	c, ok := tx.state.customers[id]
	if !ok {
		return model.Customer{}, store.ErrNotFound
	}
	return c, nil
}

func (tx *memTx) CustomerSetBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	c, ok := tx.state.customers[id]
	if !ok {
		return store.ErrNotFound
	}
	c.Balance = balance
	tx.state.customers[id] = c
	return nil
}

func (tx *memTx) CarGet(ctx context.Context, id int64) (model.Car, error) {
	c, ok := tx.state.cars[id]
	if !ok {
		return model.Car{}, store.ErrNotFound
	}
	return c, nil
}

func (tx *memTx) CarGetByModel(ctx context.Context, modelName string) (model.Car, error) {
	var found *model.Car
	for _, c := range tx.state.cars {
		if !c.IsActive || !strings.EqualFold(c.ModelName, modelName) {
			continue
		}
		if found == nil || c.ID < found.ID {
			car := c
			found = &car
		}
	}
	if found == nil {
		return model.Car{}, store.ErrNotFound
	}
	return *found, nil
}

func (tx *memTx) SaleHistoryAppend(ctx context.Context, history model.SaleHistory) (model.SaleHistory, error) {
	if tx.m.failAppend != nil {
		return model.SaleHistory{}, tx.m.failAppend
	}
	history.ID = int64(len(tx.state.sales) + 1)
	tx.state.sales = append(tx.state.sales, history)
	return history, nil
}

func (tx *memTx) CustomerSaleHistoryAppend(ctx context.Context, history model.CustomerSaleHistory) (model.CustomerSaleHistory, error) {
	if tx.m.failAppend != nil {
		return model.CustomerSaleHistory{}, tx.m.failAppend
	}
	history.ID = int64(len(tx.state.customerSales) + 1)
	tx.state.customerSales = append(tx.state.customerSales, history)
	return history, nil
}

var errDisk = errors.New("disk full")
