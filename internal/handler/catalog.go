package handler

import (
	"net/http"

	"github.com/iurnickita/autosalon/internal/handler/response"
	"github.com/iurnickita/autosalon/internal/model"
)

// Автосалоны

func (h *handler) AutoSalonList(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	filter := model.AutoSalonFilter{
		Name:     q.text("name"),
		IsActive: q.boolean("is_active"),
	}
	if !q.ok(w) {
		return
	}

	list, err := h.service.AutoSalonList(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := make([]AutoSalonJSON, 0, len(list))
	for _, a := range list {
		resp = append(resp, newAutoSalonJSON(a))
	}
	response.WriteJSON(w, http.StatusOK, resp)
}

func (h *handler) AutoSalonGet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	a, err := h.service.AutoSalonGet(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, newAutoSalonJSON(a))
}

func (h *handler) AutoSalonCreate(w http.ResponseWriter, r *http.Request) {
	req := AutoSalonJSON{IsActive: true}
	if !response.DecodeJSON(w, r, &req) {
		return
	}
	req.ID = 0

	a, err := h.service.AutoSalonCreate(r.Context(), req.model())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, newAutoSalonJSON(a))
}

func (h *handler) AutoSalonUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	req := AutoSalonUpdateJSONRequest{IsActive: true}
	if !response.DecodeJSON(w, r, &req) {
		return
	}

	a, err := h.service.AutoSalonUpdate(r.Context(), req.model(id))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, newAutoSalonJSON(a))
}

func (h *handler) AutoSalonDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := h.service.AutoSalonDelete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Машины

func (h *handler) CarList(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	filter := model.CarFilter{
		ModelName:   q.text("model_name"),
		IsActive:    q.boolean("is_active"),
		AutoSalonID: q.id("autosalon"),
	}
	if !q.ok(w) {
		return
	}

	list, err := h.service.CarList(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := make([]CarJSON, 0, len(list))
	for _, c := range list {
		resp = append(resp, newCarJSON(c))
	}
	response.WriteJSON(w, http.StatusOK, resp)
}

func (h *handler) CarGet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	c, err := h.service.CarGet(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, newCarJSON(c))
}

func (h *handler) CarCreate(w http.ResponseWriter, r *http.Request) {
	req := CarJSON{IsActive: true}
	if !response.DecodeJSON(w, r, &req) {
		return
	}
	req.ID = 0

	c, err := h.service.CarCreate(r.Context(), req.model())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, newCarJSON(c))
}

func (h *handler) CarUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	req := CarJSON{IsActive: true}
	if !response.DecodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	c, err := h.service.CarUpdate(r.Context(), req.model())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, newCarJSON(c))
}

func (h *handler) CarDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := h.service.CarDelete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Комплектации

func (h *handler) OptionCarList(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	filter := model.OptionCarFilter{
		MileageMin: q.number("mileage_min"),
		MileageMax: q.number("mileage_max"),
		Color:      q.text("color"),
		BodyType:   q.text("body_type"),
	}
	if !q.ok(w) {
		return
	}

	list, err := h.service.OptionCarList(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := make([]OptionCarJSON, 0, len(list))
	for _, o := range list {
		resp = append(resp, newOptionCarJSON(o))
	}
	response.WriteJSON(w, http.StatusOK, resp)
}

func (h *handler) OptionCarGet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	o, err := h.service.OptionCarGet(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, newOptionCarJSON(o))
}

func (h *handler) OptionCarCreate(w http.ResponseWriter, r *http.Request) {
	req := OptionCarJSON{IsActive: true}
	if !response.DecodeJSON(w, r, &req) {
		return
	}
	req.ID = 0

	o, err := h.service.OptionCarCreate(r.Context(), req.model())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, newOptionCarJSON(o))
}

func (h *handler) OptionCarUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	req := OptionCarJSON{IsActive: true}
	if !response.DecodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	o, err := h.service.OptionCarUpdate(r.Context(), req.model())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, newOptionCarJSON(o))
}

func (h *handler) OptionCarDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := h.service.OptionCarDelete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Поставщики

func (h *handler) SupplierList(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	filter := model.SupplierFilter{
		Name:     q.text("name"),
		IsActive: q.boolean("is_active"),
		Price:    q.amount("price"),
	}
	if !q.ok(w) {
		return
	}

	list, err := h.service.SupplierList(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := make([]SupplierJSON, 0, len(list))
	for _, s := range list {
		resp = append(resp, newSupplierJSON(s))
	}
	response.WriteJSON(w, http.StatusOK, resp)
}

func (h *handler) SupplierGet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	s, err := h.service.SupplierGet(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, newSupplierJSON(s))
}

func (h *handler) SupplierCreate(w http.ResponseWriter, r *http.Request) {
	req := SupplierJSON{IsActive: true}
	if !response.DecodeJSON(w, r, &req) {
		return
	}
	req.ID = 0

	s, err := h.service.SupplierCreate(r.Context(), req.model())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, newSupplierJSON(s))
}

func (h *handler) SupplierUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	req := SupplierJSON{IsActive: true}
	if !response.DecodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	s, err := h.service.SupplierUpdate(r.Context(), req.model())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, newSupplierJSON(s))
}

func (h *handler) SupplierDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := h.service.SupplierDelete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
