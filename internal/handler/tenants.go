package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/paluyo/houserent/internal/domain"
	"github.com/paluyo/houserent/internal/service"
	"github.com/paluyo/houserent/pkg/response"
)

type TenantHandler struct {
	tenants   *service.TenantService
	billing   *service.BillingService
	validator *validator.Validate
}

func NewTenantHandler(tenants *service.TenantService, billing *service.BillingService) *TenantHandler {
	return &TenantHandler{
		tenants:   tenants,
		billing:   billing,
		validator: validator.New(),
	}
}

func (h *TenantHandler) List(w http.ResponseWriter, r *http.Request) {
	if query := r.URL.Query().Get("q"); query != "" {
		tenants, err := h.tenants.SearchTenants(r.Context(), query)
		if err != nil {
			writeError(w, err)
			return
		}
		response.Success(w, tenants)
		return
	}

	tenants, err := h.tenants.ListTenants(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, tenants)
}

func (h *TenantHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(mux.Vars(r)["tenantId"])
	if err != nil {
		response.BadRequest(w, "Invalid tenant id", err)
		return
	}

	tenant, err := h.tenants.GetTenant(r.Context(), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, tenant)
}

func (h *TenantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	tenant, err := h.tenants.AssignTenant(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, tenant)
}

func (h *TenantHandler) Update(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(mux.Vars(r)["tenantId"])
	if err != nil {
		response.BadRequest(w, "Invalid tenant id", err)
		return
	}

	var request domain.UpdateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	tenant, err := h.tenants.UpdateTenant(r.Context(), tenantID, &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, tenant)
}

func (h *TenantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(mux.Vars(r)["tenantId"])
	if err != nil {
		response.BadRequest(w, "Invalid tenant id", err)
		return
	}

	if err := h.tenants.RemoveTenant(r.Context(), tenantID); err != nil {
		writeError(w, err)
		return
	}

	response.NoContent(w)
}

// Invoices lists a tenant's billing history.
func (h *TenantHandler) Invoices(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(mux.Vars(r)["tenantId"])
	if err != nil {
		response.BadRequest(w, "Invalid tenant id", err)
		return
	}

	invoices, err := h.billing.InvoicesByTenant(r.Context(), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, invoices)
}

// Occupancies lists tenants of occupied rooms, the billing engine's input.
func (h *TenantHandler) Occupancies(w http.ResponseWriter, r *http.Request) {
	occupancies, err := h.tenants.Occupancies(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, occupancies)
}
