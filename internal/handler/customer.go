package handler

import (
	"net/http"

	"github.com/iurnickita/autosalon/internal/handler/response"
	"github.com/iurnickita/autosalon/internal/model"
)

func (h *handler) CustomerList(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	filter := model.CustomerFilter{
		Email: q.text("email"),
		Role:  model.Role(q.text("role")),
	}

	list, err := h.service.CustomerList(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := make([]CustomerJSON, 0, len(list))
	for _, c := range list {
		resp = append(resp, newCustomerJSON(c))
	}
	response.WriteJSON(w, http.StatusOK, resp)
}

func (h *handler) CustomerGet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	c, err := h.service.CustomerGet(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, newCustomerJSON(c))
}

func (h *handler) CustomerUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	req := CustomerUpdateJSONRequest{IsActive: true}
	if !response.DecodeJSON(w, r, &req) {
		return
	}

	c, err := h.service.CustomerUpdate(r.Context(), req.model(id))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, newCustomerJSON(c))
}

func (h *handler) CustomerDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := h.service.CustomerDelete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Журналы сделок

func (h *handler) SaleHistoryList(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	filter := model.SaleHistoryFilter{
		AutoSalonID: q.id("autosalon"),
		SupplierID:  q.id("supplier"),
	}
	if !q.ok(w) {
		return
	}

	list, err := h.service.SaleHistoryList(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := make([]SaleHistoryJSON, 0, len(list))
	for _, s := range list {
		resp = append(resp, newSaleHistoryJSON(s))
	}
	response.WriteJSON(w, http.StatusOK, resp)
}

func (h *handler) SaleHistoryGet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	s, err := h.service.SaleHistoryGet(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, newSaleHistoryJSON(s))
}

func (h *handler) CustomerSaleHistoryList(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	filter := model.CustomerSaleHistoryFilter{
		CustomerID: q.id("customer"),
		CarID:      q.id("car"),
	}
	if !q.ok(w) {
		return
	}

	list, err := h.service.CustomerSaleHistoryList(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := make([]CustomerSaleHistoryJSON, 0, len(list))
	for _, s := range list {
		resp = append(resp, newCustomerSaleHistoryJSON(s))
	}
	response.WriteJSON(w, http.StatusOK, resp)
}

func (h *handler) CustomerSaleHistoryGet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	s, err := h.service.CustomerSaleHistoryGet(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, newCustomerSaleHistoryJSON(s))
}
