package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/iurnickita/autosalon/internal/auth"
	"github.com/iurnickita/autosalon/internal/handler/config"
	"github.com/iurnickita/autosalon/internal/handler/response"
	"github.com/iurnickita/autosalon/internal/logger"
	"github.com/iurnickita/autosalon/internal/model"
	"github.com/iurnickita/autosalon/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Serve runs the HTTP server until ctx is cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, cfg config.Config, auth auth.Auth, service service.Service, zaplog *zap.Logger) error {
	h := newHandler(auth, service, zaplog)

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           h.newRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		zaplog.Info("http server started", zap.String("addr", cfg.ServerAddr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	zaplog.Info("http server stopping")
	return srv.Shutdown(shutdownCtx)
}

type handler struct {
	auth    auth.Auth
	service service.Service
	zaplog  *zap.Logger
}

func newHandler(auth auth.Auth, service service.Service, zaplog *zap.Logger) *handler {
	return &handler{
		auth:    auth,
		service: service,
		zaplog:  zaplog,
	}
}

func (h *handler) newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logger.RequestLogMdlw(h.zaplog))
	r.Use(middleware.Compress(5, "application/json"))

	r.Route("/api", func(r chi.Router) {
		// без авторизации
		r.Post("/register", h.auth.Register)
		r.Post("/login", h.auth.Login)
		r.Post("/update_token", h.auth.UpdateToken)

		r.Group(func(r chi.Router) {
			r.Use(h.auth.Middleware)

			r.Route("/v1", func(r chi.Router) {
				r.Route("/autosalons", func(r chi.Router) {
					resource(r, h.AutoSalonList, h.AutoSalonCreate, h.AutoSalonGet, h.AutoSalonUpdate, h.AutoSalonDelete)
				})
				r.Route("/cars", func(r chi.Router) {
					resource(r, h.CarList, h.CarCreate, h.CarGet, h.CarUpdate, h.CarDelete)
				})
				r.Route("/options_car", func(r chi.Router) {
					resource(r, h.OptionCarList, h.OptionCarCreate, h.OptionCarGet, h.OptionCarUpdate, h.OptionCarDelete)
				})
				r.Route("/suppliers", func(r chi.Router) {
					resource(r, h.SupplierList, h.SupplierCreate, h.SupplierGet, h.SupplierUpdate, h.SupplierDelete)
				})
				r.Route("/special_offers_of_supplier", func(r chi.Router) {
					resource(r, h.SupplierOfferList, h.SupplierOfferCreate, h.SupplierOfferGet, h.SupplierOfferUpdate, h.SupplierOfferDelete)
				})
				r.Route("/special_offers_of_autosalon", func(r chi.Router) {
					resource(r, h.AutoSalonOfferList, h.AutoSalonOfferCreate, h.AutoSalonOfferGet, h.AutoSalonOfferUpdate, h.AutoSalonOfferDelete)
				})

				// покупатели: чтение - менеджер, изменение - только администратор
				r.Route("/customers", func(r chi.Router) {
					r.With(auth.RequireRole(model.RoleManager)).Get("/", h.CustomerList)
					r.With(auth.RequireRole(model.RoleManager)).Get("/{id}", h.CustomerGet)
					r.With(auth.RequireRole()).Put("/{id}", h.CustomerUpdate)
					r.With(auth.RequireRole()).Delete("/{id}", h.CustomerDelete)
				})

				// журналы только читаются
				r.Group(func(r chi.Router) {
					r.Use(auth.RequireRole(model.RoleManager))
					r.Get("/sale_histories", h.SaleHistoryList)
					r.Get("/sale_histories/{id}", h.SaleHistoryGet)
					r.Get("/customer_sale_histories", h.CustomerSaleHistoryList)
					r.Get("/customer_sale_histories/{id}", h.CustomerSaleHistoryGet)
				})

				r.Route("/deals", func(r chi.Router) {
					r.Use(auth.RequireRole(model.RoleManager))
					r.Post("/autosalon_supplier", h.DealAutoSalonSupplier)
					r.Post("/customer_autosalon", h.DealCustomerAutoSalon)
					r.Post("/recheck", h.DealRecheck)
				})
			})

			r.Route("/stats", func(r chi.Router) {
				r.Use(auth.RequireRole(model.RoleManager))
				r.Get("/autosalon", h.StatsAutoSalon)
				r.Get("/supplier", h.StatsSupplier)
				r.Get("/customer", h.StatsCustomer)
			})
		})
	})

	return r
}

// resource registers CRUD routes. Reads are open to any signed-in user, writes need a manager.
func resource(r chi.Router, list, create, get, update, remove http.HandlerFunc) {
	r.Get("/", list)
	r.Get("/{id}", get)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(model.RoleManager))
		r.Post("/", create)
		r.Put("/{id}", update)
		r.Delete("/{id}", remove)
	})
}

// urlID reads {id} from the path. On failure it writes 400 and returns false.
func urlID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.WriteError(w, http.StatusBadRequest, "invalid_id", "invalid id")
		return 0, false
	}
	return id, true
}

// writeError переводит ошибку сервиса в HTTP-ответ
func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		response.WriteError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, service.ErrNotFound):
		response.WriteError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, service.ErrAlreadyExists):
		response.WriteError(w, http.StatusConflict, "already_exists", err.Error())
	case errors.Is(err, service.ErrReferenced):
		response.WriteError(w, http.StatusConflict, "referenced", err.Error())
	case errors.Is(err, service.ErrConflict):
		response.WriteError(w, http.StatusConflict, "concurrent_modification", err.Error())
	case errors.Is(err, service.ErrInsufficientFunds):
		response.WriteError(w, http.StatusPaymentRequired, "insufficient_funds", err.Error())
	case errors.Is(err, service.ErrUnprocessable):
		response.WriteError(w, http.StatusUnprocessableEntity, "unprocessable", err.Error())
	case errors.Is(err, service.ErrTimeout):
		response.WriteError(w, http.StatusGatewayTimeout, "timeout", err.Error())
	default:
		h.zaplog.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		response.WriteError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// query разбирает параметры фильтра. Первая ошибка сохраняется в err
type query struct {
	values url.Values
	err    error
}

func newQuery(r *http.Request) *query {
	return &query{values: r.URL.Query()}
}

func (q *query) text(key string) string {
	return q.values.Get(key)
}

func (q *query) fail(key string) {
	if q.err == nil {
		q.err = errors.New("invalid query parameter " + key)
	}
}

func (q *query) boolean(key string) *bool {
	v := q.values.Get(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		q.fail(key)
		return nil
	}
	return &b
}

func (q *query) number(key string) *int {
	v := q.values.Get(key)
	if v == "" {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		q.fail(key)
		return nil
	}
	return &i
}

func (q *query) id(key string) int64 {
	v := q.values.Get(key)
	if v == "" {
		return 0
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		q.fail(key)
		return 0
	}
	return id
}

func (q *query) amount(key string) decimal.NullDecimal {
	v := q.values.Get(key)
	if v == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		q.fail(key)
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// ok writes 400 when any parameter was invalid.
func (q *query) ok(w http.ResponseWriter) bool {
	if q.err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid_query", q.err.Error())
		return false
	}
	return true
}
