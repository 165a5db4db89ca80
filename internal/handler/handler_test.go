package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iurnickita/autosalon/internal/auth"
	"github.com/iurnickita/autosalon/internal/deal"
	"github.com/iurnickita/autosalon/internal/model"
	"github.com/iurnickita/autosalon/internal/service"
)

// stubAuth пускает любой запрос с заголовком Authorization и берет роль из него
type stubAuth struct{}

func (stubAuth) Register(w http.ResponseWriter, r *http.Request)    { w.WriteHeader(http.StatusCreated) }
func (stubAuth) Login(w http.ResponseWriter, r *http.Request)       { w.WriteHeader(http.StatusCreated) }
func (stubAuth) UpdateToken(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusCreated) }

func (stubAuth) Middleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := r.Header.Get("Authorization")
		if role == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		r.Header.Set(auth.HeaderUserRoleKey, role)
		h.ServeHTTP(w, r)
	})
}

type stubService struct {
	service.Service
	err          error
	salonFilter  model.AutoSalonFilter
	created      model.AutoSalon
	updated      model.AutoSalon
	updatedCust  model.Customer
	updateCalls  int
	supplierOffr model.SupplierOffer
	customerDeal deal.CustomerDeal
	recheckID    int64
}

func (s *stubService) AutoSalonList(ctx context.Context, filter model.AutoSalonFilter) ([]model.AutoSalon, error) {
	s.salonFilter = filter
	return []model.AutoSalon{{ID: 1, Name: "Center", Balance: decimal.RequireFromString("100.50"), IsActive: true}}, s.err
}

func (s *stubService) AutoSalonGet(ctx context.Context, id int64) (model.AutoSalon, error) {
	if s.err != nil {
		return model.AutoSalon{}, s.err
	}
	return model.AutoSalon{ID: id, Name: "Center"}, nil
}

func (s *stubService) AutoSalonCreate(ctx context.Context, a model.AutoSalon) (model.AutoSalon, error) {
	s.created = a
	a.ID = 7
	return a, s.err
}

// AutoSalonUpdate возвращает баланс из "базы", как это делает store
func (s *stubService) AutoSalonUpdate(ctx context.Context, a model.AutoSalon) (model.AutoSalon, error) {
	s.updated = a
	s.updateCalls++
	a.Balance = decimal.NewFromInt(100000)
	return a, s.err
}

func (s *stubService) CustomerUpdate(ctx context.Context, c model.Customer) (model.Customer, error) {
	s.updatedCust = c
	s.updateCalls++
	c.Balance = decimal.NewFromInt(700)
	return c, s.err
}

func (s *stubService) AutoSalonDelete(ctx context.Context, id int64) error {
	return s.err
}

func (s *stubService) SupplierOfferCreate(ctx context.Context, o model.SupplierOffer) (model.SupplierOffer, error) {
	s.supplierOffr = o
	o.ID = 3
	return o, s.err
}

func (s *stubService) DealAutoSalonSupplier(ctx context.Context, autosalonID int64, supplierID int64) (model.SaleHistory, error) {
	if s.err != nil {
		return model.SaleHistory{}, s.err
	}
	return model.SaleHistory{ID: 1, AutoSalonID: autosalonID, SupplierID: supplierID, Price: decimal.NewFromInt(50000)}, nil
}

func (s *stubService) DealCustomerAutoSalon(ctx context.Context, req deal.CustomerDeal) (model.CustomerSaleHistory, error) {
	s.customerDeal = req
	return model.CustomerSaleHistory{ID: 2, CustomerID: req.CustomerID, CarID: 5, Price: req.Price}, s.err
}

func (s *stubService) DealRecheck(ctx context.Context, autosalonID int64) ([]deal.RecheckReport, error) {
	s.recheckID = autosalonID
	return []deal.RecheckReport{{AutoSalonID: 1, Kept: []int64{2}}}, s.err
}

func (s *stubService) StatsCustomer(ctx context.Context) (model.CustomerStats, error) {
	return model.CustomerStats{
		CustomerCount: 1,
		TotalBalance:  decimal.NewFromInt(10),
		PerCustomer:   []model.CustomerStatsRow{{Email: "ivan@example.com", Balance: decimal.NewFromInt(10)}},
	}, s.err
}

func newTestServer(t *testing.T) (*stubService, *httptest.Server) {
	t.Helper()
	svc := &stubService{}
	h := newHandler(stubAuth{}, svc, zap.NewNop())
	srv := httptest.NewServer(h.newRouter())
	t.Cleanup(srv.Close)
	return svc, srv
}

func do(t *testing.T, srv *httptest.Server, method, path, role, body string) (*http.Response, []byte) {
	t.Helper()
	var req *http.Request
	var err error
	if body == "" {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	}
	require.NoError(t, err)
	if role != "" {
		req.Header.Set("Authorization", role)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func TestAutoSalonList(t *testing.T) {
	svc, srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodGet, "/api/v1/autosalons?name=cen&is_active=true", "customer", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var list []AutoSalonJSON
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.True(t, decimal.RequireFromString("100.5").Equal(list[0].Balance))
	assert.Equal(t, []int64{}, list[0].Suppliers)
	assert.Contains(t, string(body), `"balance":"100.5"`)

	assert.Equal(t, "cen", svc.salonFilter.Name)
	require.NotNil(t, svc.salonFilter.IsActive)
	assert.True(t, *svc.salonFilter.IsActive)

	resp, _ = do(t, srv, http.MethodGet, "/api/v1/autosalons?is_active=maybe", "customer", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAutoSalonCreate(t *testing.T) {
	svc, srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodPost, "/api/v1/autosalons/", "manager", `{"name":"Center","location":"Minsk","balance":"1000.00"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.True(t, svc.created.IsActive, "is_active defaults to true")
	assert.True(t, decimal.NewFromInt(1000).Equal(svc.created.Balance))

	var got AutoSalonJSON
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, int64(7), got.ID)

	resp, _ = do(t, srv, http.MethodPost, "/api/v1/autosalons/", "manager", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateKeepsBalance(t *testing.T) {
	svc, srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodPut, "/api/v1/autosalons/3", "manager", `{"name":"Renamed","location":"Minsk"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, int64(3), svc.updated.ID)
	assert.Equal(t, "Renamed", svc.updated.Name)
	assert.True(t, svc.updated.IsActive)
	assert.True(t, svc.updated.Balance.IsZero())

	var salon AutoSalonJSON
	require.NoError(t, json.Unmarshal(body, &salon))
	assert.True(t, decimal.NewFromInt(100000).Equal(salon.Balance))

	resp, body = do(t, srv, http.MethodPut, "/api/v1/customers/4", "admin", `{"role":"customer","first_name":"Ivan","email":"ivan@example.com"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, int64(4), svc.updatedCust.ID)
	assert.Equal(t, "Ivan", svc.updatedCust.FirstName)

	var customer CustomerJSON
	require.NoError(t, json.Unmarshal(body, &customer))
	assert.True(t, decimal.NewFromInt(700).Equal(customer.Balance))

	// баланс в теле PUT - неизвестное поле
	calls := svc.updateCalls
	resp, _ = do(t, srv, http.MethodPut, "/api/v1/autosalons/3", "manager", `{"name":"Renamed","balance":"0"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = do(t, srv, http.MethodPut, "/api/v1/customers/4", "admin", `{"email":"ivan@example.com","balance":"0"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, calls, svc.updateCalls)
}

func TestRoleGuards(t *testing.T) {
	_, srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		role   string
		body   string
		want   int
	}{
		{name: "anonymous", method: http.MethodGet, path: "/api/v1/autosalons", role: "", want: http.StatusUnauthorized},
		{name: "customer reads", method: http.MethodGet, path: "/api/v1/autosalons/1", role: "customer", want: http.StatusOK},
		{name: "customer writes", method: http.MethodDelete, path: "/api/v1/autosalons/1", role: "customer", want: http.StatusForbidden},
		{name: "manager deletes", method: http.MethodDelete, path: "/api/v1/autosalons/1", role: "manager", want: http.StatusNoContent},
		{name: "customer deals", method: http.MethodPost, path: "/api/v1/deals/autosalon_supplier", role: "customer", body: `{"autosalon_id":1,"supplier_id":2}`, want: http.StatusForbidden},
		{name: "admin deals", method: http.MethodPost, path: "/api/v1/deals/autosalon_supplier", role: "admin", body: `{"autosalon_id":1,"supplier_id":2}`, want: http.StatusOK},
		{name: "manager edits customer", method: http.MethodDelete, path: "/api/v1/customers/1", role: "manager", want: http.StatusForbidden},
		{name: "customer stats", method: http.MethodGet, path: "/api/stats/customer", role: "customer", want: http.StatusForbidden},
		{name: "manager stats", method: http.MethodGet, path: "/api/stats/customer", role: "manager", want: http.StatusOK},
		{name: "ledger is read only", method: http.MethodPost, path: "/api/v1/sale_histories", role: "admin", body: `{}`, want: http.StatusMethodNotAllowed},
		{name: "register is public", method: http.MethodPost, path: "/api/register", role: "", body: `{}`, want: http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := do(t, srv, tt.method, tt.path, tt.role, tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestBadID(t *testing.T) {
	_, srv := newTestServer(t)

	resp, _ := do(t, srv, http.MethodGet, "/api/v1/autosalons/abc", "customer", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = do(t, srv, http.MethodGet, "/api/v1/autosalons/-1", "customer", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: service.ErrNotFound, want: http.StatusNotFound},
		{err: service.ErrInsufficientFunds, want: http.StatusPaymentRequired},
		{err: service.ErrConflict, want: http.StatusConflict},
		{err: fmt.Errorf("%w: bad", service.ErrInvalidInput), want: http.StatusBadRequest},
		{err: service.ErrUnprocessable, want: http.StatusUnprocessableEntity},
		{err: service.ErrTimeout, want: http.StatusGatewayTimeout},
		{err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc, srv := newTestServer(t)
			svc.err = tt.err

			resp, body := do(t, srv, http.MethodPost, "/api/v1/deals/autosalon_supplier", "manager", `{"autosalon_id":1,"supplier_id":2}`)
			assert.Equal(t, tt.want, resp.StatusCode)

			var apiErr map[string]string
			require.NoError(t, json.Unmarshal(body, &apiErr))
			assert.NotEmpty(t, apiErr["error"])
		})
	}
}

func TestDealCustomerAutoSalon(t *testing.T) {
	svc, srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodPost, "/api/v1/deals/customer_autosalon", "manager",
		`{"autosalon_id":1,"customer_id":2,"price":"15000.50","car_model":"Civic"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	assert.Equal(t, int64(1), svc.customerDeal.AutoSalonID)
	assert.Equal(t, "Civic", svc.customerDeal.CarModel)
	assert.True(t, decimal.RequireFromString("15000.5").Equal(svc.customerDeal.Price))

	var got CustomerSaleHistoryJSON
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, int64(5), got.Car)
}

func TestDealRecheck(t *testing.T) {
	svc, srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodPost, "/api/v1/deals/recheck", "manager", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Zero(t, svc.recheckID)

	var reports []RecheckJSONResponse
	require.NoError(t, json.Unmarshal(body, &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, []int64{2}, reports[0].Kept)
	assert.Equal(t, []int64{}, reports[0].Removed)

	resp, _ = do(t, srv, http.MethodPost, "/api/v1/deals/recheck", "manager", `{"autosalon_id":4}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(4), svc.recheckID)
}

func TestDealRecheckChunked(t *testing.T) {
	svc := &stubService{recheckID: -1}
	router := newHandler(stubAuth{}, svc, zap.NewNop()).newRouter()

	// Пустое тело без Content-Length (chunked)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/deals/recheck", strings.NewReader(""))
	r.ContentLength = -1
	r.Header.Set("Authorization", "manager")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Zero(t, svc.recheckID)

	r = httptest.NewRequest(http.MethodPost, "/api/v1/deals/recheck", strings.NewReader(`{"autosalon_id":9}`))
	r.ContentLength = -1
	r.Header.Set("Authorization", "manager")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, int64(9), svc.recheckID)
}

func TestSupplierOfferCreate(t *testing.T) {
	svc, srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodPost, "/api/v1/special_offers_of_supplier/", "manager",
		`{"name":"Spring","discount":20,"start_date":"2024-01-01T00:00:00Z","end_date":"2024-02-01T00:00:00Z","supplier":3}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	assert.Equal(t, int64(3), svc.supplierOffr.SupplierID)
	assert.Equal(t, 20, svc.supplierOffr.Discount)
	assert.True(t, svc.supplierOffr.IsActive)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), svc.supplierOffr.EndDate.UTC())
}

func TestDate(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2020-05-17"`), &d))
	assert.Equal(t, time.Date(2020, 5, 17, 0, 0, 0, 0, time.UTC), time.Time(d))

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2020-05-17"`, string(b))

	require.Error(t, json.Unmarshal([]byte(`"17.05.2020"`), &d))
}
