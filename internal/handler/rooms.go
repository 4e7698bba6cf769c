package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/paluyo/houserent/internal/domain"
	"github.com/paluyo/houserent/internal/service"
	"github.com/paluyo/houserent/pkg/response"
)

type RoomHandler struct {
	service   *service.RoomService
	validator *validator.Validate
}

func NewRoomHandler(service *service.RoomService) *RoomHandler {
	return &RoomHandler{
		service:   service,
		validator: validator.New(),
	}
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.ListRooms(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, rooms)
}

func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	room, err := h.service.GetRoom(r.Context(), mux.Vars(r)["roomNumber"])
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, room)
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	room, err := h.service.CreateRoom(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, room)
}

func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	var request domain.UpdateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	room, err := h.service.UpdateRoom(r.Context(), mux.Vars(r)["roomNumber"], &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, room)
}

func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteRoom(r.Context(), mux.Vars(r)["roomNumber"]); err != nil {
		writeError(w, err)
		return
	}

	response.NoContent(w)
}

// StatusCounts returns the available/occupied/maintenance breakdown.
func (h *RoomHandler) StatusCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.StatusCounts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, counts)
}
