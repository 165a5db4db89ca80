package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iurnickita/autosalon/internal/cache"
	"github.com/iurnickita/autosalon/internal/deal"
	"github.com/iurnickita/autosalon/internal/model"
	"github.com/iurnickita/autosalon/internal/notify"
	"github.com/iurnickita/autosalon/internal/store"
)

// stubStore переопределяет только нужные тестам методы
type stubStore struct {
	store.Store
	created   []model.AutoSalon
	createErr error
	customers map[int64]model.Customer
}

func (s *stubStore) AutoSalonCreate(ctx context.Context, a model.AutoSalon) (model.AutoSalon, error) {
	if s.createErr != nil {
		return model.AutoSalon{}, s.createErr
	}
	a.ID = int64(len(s.created) + 1)
	s.created = append(s.created, a)
	return a, nil
}

func (s *stubStore) AutoSalonDelete(ctx context.Context, id int64) error {
	return store.ErrReferenced
}

func (s *stubStore) SupplierOfferCreate(ctx context.Context, o model.SupplierOffer) (model.SupplierOffer, error) {
	o.ID = 1
	return o, nil
}

func (s *stubStore) CustomerGet(ctx context.Context, id int64) (model.Customer, error) {
	c, ok := s.customers[id]
	if !ok {
		return model.Customer{}, store.ErrNotFound
	}
	return c, nil
}

type stubDeal struct {
	err error
}

func (d *stubDeal) SettleAutoSalonSupplier(ctx context.Context, autosalonID int64, supplierID int64) (model.SaleHistory, error) {
	if d.err != nil {
		return model.SaleHistory{}, d.err
	}
	return model.SaleHistory{ID: 1, AutoSalonID: autosalonID, SupplierID: supplierID}, nil
}

func (d *stubDeal) SettleCustomerAutoSalon(ctx context.Context, req deal.CustomerDeal) (model.CustomerSaleHistory, error) {
	if d.err != nil {
		return model.CustomerSaleHistory{}, d.err
	}
	return model.CustomerSaleHistory{ID: 1, CustomerID: req.CustomerID, CarID: 10, Price: req.Price}, nil
}

func (d *stubDeal) RecheckSupplierDiscounts(ctx context.Context, autosalonID int64) ([]deal.RecheckReport, error) {
	return []deal.RecheckReport{{AutoSalonID: autosalonID}}, d.err
}

type stubStats struct {
	cache.Stats
	invalidated int
}

func (s *stubStats) Invalidate(ctx context.Context) {
	s.invalidated++
}

type stubNotifier struct {
	sent []notify.Message
}

func (n *stubNotifier) Send(msg notify.Message) bool {
	n.sent = append(n.sent, msg)
	return true
}

func (n *stubNotifier) Run(ctx context.Context) error {
	return nil
}

type fixture struct {
	store    *stubStore
	deal     *stubDeal
	stats    *stubStats
	notifier *stubNotifier
	service  Service
}

func newFixture() *fixture {
	f := &fixture{
		store:    &stubStore{customers: map[int64]model.Customer{1: {ID: 1, Email: "ivan@example.com"}}},
		deal:     &stubDeal{},
		stats:    &stubStats{},
		notifier: &stubNotifier{},
	}
	f.service = NewService(f.store, f.deal, f.stats, f.notifier, zap.NewNop())
	return f
}

func TestAutoSalonCreateValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.AutoSalonCreate(ctx, model.AutoSalon{Name: "  "})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.service.AutoSalonCreate(ctx, model.AutoSalon{Name: "Center", Balance: decimal.NewFromInt(-1)})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, f.store.created)

	a, err := f.service.AutoSalonCreate(ctx, model.AutoSalon{Name: "Center", Balance: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
}

func TestStoreErrorMapping(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.createErr = store.ErrInvalidReference
	_, err := f.service.AutoSalonCreate(ctx, model.AutoSalon{Name: "Center"})
	require.ErrorIs(t, err, ErrInvalidInput)

	err = f.service.AutoSalonDelete(ctx, 1)
	require.ErrorIs(t, err, ErrReferenced)
}

func TestOfferValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	valid := model.SupplierOffer{
		SpecialOffer: model.SpecialOffer{Name: "Spring", Discount: 20, StartDate: start, EndDate: start.AddDate(0, 1, 0), IsActive: true},
		SupplierID:   1,
	}
	_, err := f.service.SupplierOfferCreate(ctx, valid)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(o *model.SupplierOffer)
	}{
		{name: "discount over 100", mutate: func(o *model.SupplierOffer) { o.Discount = 101 }},
		{name: "negative discount", mutate: func(o *model.SupplierOffer) { o.Discount = -1 }},
		{name: "end before start", mutate: func(o *model.SupplierOffer) { o.EndDate = o.StartDate.Add(-time.Hour) }},
		{name: "end equals start", mutate: func(o *model.SupplierOffer) { o.EndDate = o.StartDate }},
		{name: "no supplier", mutate: func(o *model.SupplierOffer) { o.SupplierID = 0 }},
		{name: "no name", mutate: func(o *model.SupplierOffer) { o.Name = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid
			tt.mutate(&o)
			_, err := f.service.SupplierOfferCreate(ctx, o)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	require.NoError(t, ValidateEmail("ivan@example.com"))
	require.ErrorIs(t, ValidateEmail("ivan"), ErrInvalidInput)
	require.ErrorIs(t, ValidateEmail("Ivan <ivan@example.com>"), ErrInvalidInput)
}

func TestDealCustomerAutoSalonSendsReceipt(t *testing.T) {
	f := newFixture()

	history, err := f.service.DealCustomerAutoSalon(context.Background(), deal.CustomerDeal{
		AutoSalonID: 1,
		CustomerID:  1,
		Price:       decimal.NewFromInt(1000),
		CarID:       10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), history.CarID)
	assert.Equal(t, 1, f.stats.invalidated)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "ivan@example.com", f.notifier.sent[0].To)
}

func TestDealErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want error
	}{
		{err: deal.ErrInsufficientFunds, want: ErrInsufficientFunds},
		{err: deal.ErrNotFound, want: ErrNotFound},
		{err: fmt.Errorf("wrapped: %w", deal.ErrConcurrentModification), want: ErrConflict},
		{err: deal.ErrInvalidPrice, want: ErrInvalidInput},
		{err: deal.ErrInactive, want: ErrUnprocessable},
		{err: deal.ErrTimeout, want: ErrTimeout},
	}
	for _, tt := range tests {
		f := newFixture()
		f.deal.err = tt.err

		_, err := f.service.DealAutoSalonSupplier(context.Background(), 1, 1)
		require.ErrorIs(t, err, tt.want)
		assert.Zero(t, f.stats.invalidated)
		assert.Empty(t, f.notifier.sent)
	}
}

func TestDealRequiresIDs(t *testing.T) {
	f := newFixture()

	_, err := f.service.DealAutoSalonSupplier(context.Background(), 0, 1)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.service.DealRecheck(context.Background(), -1)
	require.ErrorIs(t, err, ErrInvalidInput)

	reports, err := f.service.DealRecheck(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 1, f.stats.invalidated)
}
