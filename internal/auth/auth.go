package auth

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/iurnickita/autosalon/internal/handler/response"
	"github.com/iurnickita/autosalon/internal/model"
	"github.com/iurnickita/autosalon/internal/notify"
	"github.com/iurnickita/autosalon/internal/service"
	"github.com/iurnickita/autosalon/internal/store"
	"github.com/iurnickita/autosalon/internal/token"
)

type Auth interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	UpdateToken(w http.ResponseWriter, r *http.Request)
	Middleware(h http.Handler) http.Handler
}

// Store - то, что нужно auth от хранилища
type Store interface {
	CustomerCreate(ctx context.Context, customer model.Customer) (model.Customer, error)
	CustomerGetByEmail(ctx context.Context, email string) (model.Customer, error)
}

// Заголовки, в которые Middleware кладет данные пользователя
const (
	HeaderUserEmailKey = "X-User-Email"
	HeaderUserRoleKey  = "X-User-Role"
	HeaderUserIDKey    = "X-User-ID"
)

const passwordSymbols = "!@#$%^&*()-_+=[]{}|:;<>,.?/~"

var (
	ErrNoToken          = errors.New("authorization token not provided")
	ErrWeakPassword     = errors.New("password must contain at least one special symbol " + passwordSymbols)
	ErrInactiveCustomer = errors.New("customer is not active")
)

type auth struct {
	store    Store
	token    token.Token
	notifier notify.Notifier
	zaplog   *zap.Logger
}

func NewAuth(store Store, token token.Token, notifier notify.Notifier, zaplog *zap.Logger) Auth {
	return &auth{
		store:    store,
		token:    token,
		notifier: notifier,
		zaplog:   zaplog,
	}
}

type RegisterJSONRequest struct {
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Role      model.Role `json:"role,omitempty"`
}

type CustomerJSON struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Role      model.Role `json:"role"`
}

type RegisterJSONResponse struct {
	Customer     CustomerJSON `json:"customer"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

func (a *auth) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterJSONRequest
	if !response.DecodeJSON(w, r, &req) {
		return
	}

	// Проверка входных данных
	req.Email = strings.TrimSpace(req.Email)
	if err := service.ValidateEmail(req.Email); err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		response.WriteError(w, http.StatusBadRequest, "invalid_input", "first_name and last_name are required")
		return
	}
	if err := ValidatePassword(req.Password); err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}
	if req.Role == "" {
		req.Role = model.RoleCustomer
	}
	if !req.Role.Valid() {
		response.WriteError(w, http.StatusBadRequest, "invalid_input", "unknown role")
		return
	}

	// Менеджера и администратора регистрирует только администратор
	if req.Role != model.RoleCustomer {
		caller, err := a.authenticate(r)
		if err != nil || caller.Role != model.RoleAdmin {
			response.WriteError(w, http.StatusForbidden, "forbidden", "only admin can register role "+string(req.Role))
			return
		}
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, "internal_error", "failed to hash password")
		return
	}

	customer, err := a.store.CustomerCreate(r.Context(), model.Customer{
		Role:         req.Role,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		IsActive:     true,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			response.WriteError(w, http.StatusConflict, "already_exists", "email is already registered")
		default:
			a.zaplog.Error("register failed", zap.Error(err))
			response.WriteError(w, http.StatusInternalServerError, "internal_error", "failed to register")
		}
		return
	}

	access, refresh, err := a.issue(customer.Email)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, "internal_error", "failed to issue token")
		return
	}

	a.notifier.Send(notify.Confirmation(customer.Email))

	response.WriteJSON(w, http.StatusCreated, RegisterJSONResponse{
		Customer: CustomerJSON{
			ID:        customer.ID,
			Email:     customer.Email,
			FirstName: customer.FirstName,
			LastName:  customer.LastName,
			Role:      customer.Role,
		},
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

type LoginJSONRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokensJSONResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

func (a *auth) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginJSONRequest
	if !response.DecodeJSON(w, r, &req) {
		return
	}

	customer, err := a.store.CustomerGetByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			response.WriteError(w, http.StatusNotFound, "not_found", "customer not found")
		default:
			response.WriteError(w, http.StatusInternalServerError, "internal_error", "failed to login")
		}
		return
	}
	if !CheckPassword(customer.PasswordHash, req.Password) {
		response.WriteError(w, http.StatusForbidden, "forbidden", "wrong password")
		return
	}
	if !customer.IsActive {
		response.WriteError(w, http.StatusForbidden, "forbidden", ErrInactiveCustomer.Error())
		return
	}

	access, refresh, err := a.issue(customer.Email)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, "internal_error", "failed to issue token")
		return
	}
	response.WriteJSON(w, http.StatusCreated, TokensJSONResponse{AccessToken: access, RefreshToken: refresh})
}

type UpdateTokenJSONRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (a *auth) UpdateToken(w http.ResponseWriter, r *http.Request) {
	var req UpdateTokenJSONRequest
	if !response.DecodeJSON(w, r, &req) {
		return
	}

	email, err := a.token.ParseRefresh(req.RefreshToken)
	if err != nil {
		response.WriteError(w, http.StatusForbidden, "forbidden", "invalid refresh token")
		return
	}
	access, err := a.token.NewAccess(email)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, "internal_error", "failed to issue token")
		return
	}
	response.WriteJSON(w, http.StatusCreated, TokensJSONResponse{AccessToken: access})
}

func (a *auth) Middleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// получение пользователя по токену
		customer, err := a.authenticate(r)
		if err != nil {
			response.WriteError(w, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}

		// записываем
		r.Header.Set(HeaderUserEmailKey, customer.Email)
		r.Header.Set(HeaderUserRoleKey, string(customer.Role))
		r.Header.Set(HeaderUserIDKey, strconv.FormatInt(customer.ID, 10))

		// передаём управление хендлеру
		h.ServeHTTP(w, r)
	})
}

// RequireRole passes the request only for the listed roles. Admin always passes.
// It must run after Middleware.
func RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := model.Role(r.Header.Get(HeaderUserRoleKey))
			if role == model.RoleAdmin {
				h.ServeHTTP(w, r)
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					h.ServeHTTP(w, r)
					return
				}
			}
			response.WriteError(w, http.StatusForbidden, "forbidden", "not enough permissions")
		})
	}
}

func (a *auth) authenticate(r *http.Request) (model.Customer, error) {
	header := r.Header.Get("Authorization")
	scheme, tokenString, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
		return model.Customer{}, ErrNoToken
	}

	email, err := a.token.ParseAccess(tokenString)
	if err != nil {
		return model.Customer{}, err
	}
	customer, err := a.store.CustomerGetByEmail(r.Context(), email)
	if err != nil {
		return model.Customer{}, err
	}
	if !customer.IsActive {
		return model.Customer{}, ErrInactiveCustomer
	}
	return customer, nil
}

func (a *auth) issue(email string) (string, string, error) {
	access, err := a.token.NewAccess(email)
	if err != nil {
		return "", "", err
	}
	refresh, err := a.token.NewRefresh(email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func ValidatePassword(password string) error {
	if !strings.ContainsAny(password, passwordSymbols) {
		return ErrWeakPassword
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
