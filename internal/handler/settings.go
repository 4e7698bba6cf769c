package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/paluyo/houserent/internal/domain"
	"github.com/paluyo/houserent/internal/service"
	"github.com/paluyo/houserent/pkg/response"
)

type SettingsHandler struct {
	billing   *service.BillingService
	validator *validator.Validate
}

func NewSettingsHandler(billing *service.BillingService) *SettingsHandler {
	return &SettingsHandler{
		billing:   billing,
		validator: validator.New(),
	}
}

var settingDefaults = map[string]string{
	domain.SettingBillingDay:     strconv.Itoa(domain.DefaultBillingDay),
	domain.SettingBillingEnabled: strconv.FormatBool(domain.DefaultBillingEnabled),
}

// Get returns a setting value, with defaults applied for missing keys.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	defaultValue, known := settingDefaults[name]
	if !known {
		response.NotFound(w, "Unknown setting "+name)
		return
	}

	value := h.billing.GetSetting(r.Context(), name, defaultValue)

	response.Success(w, domain.Setting{Name: name, Value: value})
}

// Update persists a setting value.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if _, known := settingDefaults[name]; !known {
		response.NotFound(w, "Unknown setting "+name)
		return
	}

	var request domain.UpdateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	if err := validateSettingValue(name, request.Value); err != nil {
		response.BadRequest(w, "Invalid setting value", err)
		return
	}

	if err := h.billing.UpdateSetting(r.Context(), name, request.Value); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, domain.Setting{Name: name, Value: request.Value})
}

func validateSettingValue(name, value string) error {
	switch name {
	case domain.SettingBillingDay:
		day, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		if day < 1 || day > 31 {
			return strconv.ErrRange
		}
	case domain.SettingBillingEnabled:
		if _, err := strconv.ParseBool(value); err != nil {
			return err
		}
	}
	return nil
}
