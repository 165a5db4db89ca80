package handler

import (
	"net/http"

	"github.com/iurnickita/autosalon/internal/handler/response"
	"github.com/iurnickita/autosalon/internal/model"
)

func offerFilter(q *query, owner string) model.OfferFilter {
	return model.OfferFilter{
		Name:        q.text("name"),
		DiscountMin: q.number("discount_min"),
		DiscountMax: q.number("discount_max"),
		IsActive:    q.boolean("is_active"),
		OwnerID:     q.id(owner),
	}
}

// Спецпредложения поставщиков

func (h *handler) SupplierOfferList(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	filter := offerFilter(q, "supplier")
	if !q.ok(w) {
		return
	}

	list, err := h.service.SupplierOfferList(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := make([]SupplierOfferJSON, 0, len(list))
	for _, o := range list {
		resp = append(resp, newSupplierOfferJSON(o))
	}
	response.WriteJSON(w, http.StatusOK, resp)
}

func (h *handler) SupplierOfferGet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	o, err := h.service.SupplierOfferGet(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, newSupplierOfferJSON(o))
}

func (h *handler) SupplierOfferCreate(w http.ResponseWriter, r *http.Request) {
	req := SupplierOfferJSON{OfferJSON: OfferJSON{IsActive: true}}
	if !response.DecodeJSON(w, r, &req) {
		return
	}
	req.ID = 0

	o, err := h.service.SupplierOfferCreate(r.Context(), req.model())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, newSupplierOfferJSON(o))
}

func (h *handler) SupplierOfferUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	req := SupplierOfferJSON{OfferJSON: OfferJSON{IsActive: true}}
	if !response.DecodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	o, err := h.service.SupplierOfferUpdate(r.Context(), req.model())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, newSupplierOfferJSON(o))
}

func (h *handler) SupplierOfferDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := h.service.SupplierOfferDelete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Спецпредложения автосалонов

func (h *handler) AutoSalonOfferList(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	filter := offerFilter(q, "autosalon")
	if !q.ok(w) {
		return
	}

	list, err := h.service.AutoSalonOfferList(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := make([]AutoSalonOfferJSON, 0, len(list))
	for _, o := range list {
		resp = append(resp, newAutoSalonOfferJSON(o))
	}
	response.WriteJSON(w, http.StatusOK, resp)
}

func (h *handler) AutoSalonOfferGet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	o, err := h.service.AutoSalonOfferGet(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, newAutoSalonOfferJSON(o))
}

func (h *handler) AutoSalonOfferCreate(w http.ResponseWriter, r *http.Request) {
	req := AutoSalonOfferJSON{OfferJSON: OfferJSON{IsActive: true}}
	if !response.DecodeJSON(w, r, &req) {
		return
	}
	req.ID = 0

	o, err := h.service.AutoSalonOfferCreate(r.Context(), req.model())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, newAutoSalonOfferJSON(o))
}

func (h *handler) AutoSalonOfferUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	req := AutoSalonOfferJSON{OfferJSON: OfferJSON{IsActive: true}}
	if !response.DecodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	o, err := h.service.AutoSalonOfferUpdate(r.Context(), req.model())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, newAutoSalonOfferJSON(o))
}

func (h *handler) AutoSalonOfferDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := h.service.AutoSalonOfferDelete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
