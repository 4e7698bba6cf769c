package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/paluyo/houserent/internal/domain"
	"github.com/paluyo/houserent/internal/service"
	"github.com/paluyo/houserent/pkg/dateutil"
	"github.com/paluyo/houserent/pkg/response"
)

type InvoiceHandler struct {
	service   *service.BillingService
	validator *validator.Validate
}

func NewInvoiceHandler(service *service.BillingService) *InvoiceHandler {
	return &InvoiceHandler{
		service:   service,
		validator: validator.New(),
	}
}

// List returns all invoices, most recently paid first.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	if query := r.URL.Query().Get("q"); query != "" {
		invoices, err := h.service.SearchInvoices(r.Context(), query)
		if err != nil {
			writeError(w, err)
			return
		}
		response.Success(w, invoices)
		return
	}

	invoices, err := h.service.ListInvoices(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, invoices)
}

// Get returns a single invoice by id.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := uuid.Parse(mux.Vars(r)["invoiceId"])
	if err != nil {
		response.BadRequest(w, "Invalid invoice id", err)
		return
	}

	invoice, err := h.service.GetInvoice(r.Context(), invoiceID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, invoice)
}

// Create records a manually entered invoice.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	invoice, err := h.service.CreateInvoice(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, invoice)
}

// RecordPayment applies a payment amount to an invoice.
func (h *InvoiceHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := uuid.Parse(mux.Vars(r)["invoiceId"])
	if err != nil {
		response.BadRequest(w, "Invalid invoice id", err)
		return
	}

	var request domain.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	invoice, err := h.service.RecordPayment(r.Context(), invoiceID, request.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, invoice)
}

// ListForMonth returns the complete invoice sheet for one month, creating
// default rows for tenants that have none yet.
func (h *InvoiceHandler) ListForMonth(w http.ResponseWriter, r *http.Request) {
	month := mux.Vars(r)["month"]
	if _, err := dateutil.ParseMonthLabel(month); err != nil {
		response.BadRequest(w, `Month must look like "March 2025"`, err)
		return
	}

	invoices, err := h.service.InvoicesForMonth(r.Context(), month)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, invoices)
}

// Delete removes an invoice.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := uuid.Parse(mux.Vars(r)["invoiceId"])
	if err != nil {
		response.BadRequest(w, "Invalid invoice id", err)
		return
	}

	if err := h.service.DeleteInvoice(r.Context(), invoiceID); err != nil {
		writeError(w, err)
		return
	}

	response.NoContent(w)
}

// Revenue returns the total collected across all invoices.
func (h *InvoiceHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.TotalRevenue(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, domain.RevenueResponse{TotalRevenue: total})
}

// Generate triggers an immediate invoice generation run for the current
// month, independent of the scheduler.
func (h *InvoiceHandler) Generate(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	created, err := h.service.GenerateMonthlyInvoices(r.Context(), now)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, domain.GenerateInvoicesResponse{
		Month:           dateutil.MonthLabel(now),
		InvoicesCreated: created,
	})
}
