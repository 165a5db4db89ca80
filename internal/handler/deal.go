package handler

import (
	"net/http"

	"github.com/iurnickita/autosalon/internal/handler/response"
)

func (h *handler) DealAutoSalonSupplier(w http.ResponseWriter, r *http.Request) {
	var req AutoSalonSupplierDealJSONRequest
	if !response.DecodeJSON(w, r, &req) {
		return
	}

	history, err := h.service.DealAutoSalonSupplier(r.Context(), req.AutoSalonID, req.SupplierID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, newSaleHistoryJSON(history))
}

func (h *handler) DealCustomerAutoSalon(w http.ResponseWriter, r *http.Request) {
	var req CustomerAutoSalonDealJSONRequest
	if !response.DecodeJSON(w, r, &req) {
		return
	}

	history, err := h.service.DealCustomerAutoSalon(r.Context(), req.deal())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, newCustomerSaleHistoryJSON(history))
}

// DealRecheck без тела (или с autosalon_id = 0) проверяет все активные автосалоны
func (h *handler) DealRecheck(w http.ResponseWriter, r *http.Request) {
	var req RecheckJSONRequest
	if !response.DecodeOptionalJSON(w, r, &req) {
		return
	}

	reports, err := h.service.DealRecheck(r.Context(), req.AutoSalonID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := make([]RecheckJSONResponse, 0, len(reports))
	for _, report := range reports {
		resp = append(resp, newRecheckJSON(report))
	}
	response.WriteJSON(w, http.StatusOK, resp)
}

// Статистика

func (h *handler) StatsAutoSalon(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.StatsAutoSalon(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := make([]AutoSalonStatsJSON, 0, len(stats))
	for _, s := range stats {
		resp = append(resp, AutoSalonStatsJSON{
			Name:               s.Name,
			SuppliersCount:     s.SuppliersCount,
			CarsCount:          s.CarsCount,
			CustomersCount:     s.CustomersCount,
			Balance:            s.Balance,
			MaxSupplierPrice:   s.MaxSupplierPrice,
			MinSupplierPrice:   s.MinSupplierPrice,
			SaleHistoriesCount: s.SaleHistoriesCount,
			MaxHistoryPrice:    s.MaxHistoryPrice,
			MinHistoryPrice:    s.MinHistoryPrice,
		})
	}
	response.WriteJSON(w, http.StatusOK, resp)
}

func (h *handler) StatsSupplier(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.StatsSupplier(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := make([]SupplierStatsJSON, 0, len(stats))
	for _, s := range stats {
		resp = append(resp, SupplierStatsJSON{
			Name:               s.Name,
			Price:              s.Price,
			AutoSalonsCount:    s.AutoSalonsCount,
			CarsCount:          s.CarsCount,
			SaleHistoriesCount: s.SaleHistoriesCount,
			MaxHistoryPrice:    s.MaxHistoryPrice,
			MinHistoryPrice:    s.MinHistoryPrice,
		})
	}
	response.WriteJSON(w, http.StatusOK, resp)
}

func (h *handler) StatsCustomer(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.StatsCustomer(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := CustomerStatsJSON{
		AdminCount:    stats.AdminCount,
		ManagerCount:  stats.ManagerCount,
		CustomerCount: stats.CustomerCount,
		TotalBalance:  stats.TotalBalance,
		Customers:     make([]CustomerStatsRowJSON, 0, len(stats.PerCustomer)),
	}
	for _, row := range stats.PerCustomer {
		resp.Customers = append(resp.Customers, CustomerStatsRowJSON{
			Email:           row.Email,
			Balance:         row.Balance,
			AutoSalonsCount: row.AutoSalonsCount,
			PurchasesCount:  row.PurchasesCount,
		})
	}
	response.WriteJSON(w, http.StatusOK, resp)
}
