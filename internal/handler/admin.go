package handler

import (
	"net/http"

	"github.com/osse101/LetterSpin_Go/internal/admin"
)

// AdminHandler exposes catalog configuration writes
type AdminHandler struct {
	service admin.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service admin.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// HandleSaveSlot creates or replaces a reward slot
func (h *AdminHandler) HandleSaveSlot(w http.ResponseWriter, r *http.Request) {
	var req admin.SlotInput
	if err := DecodeAndValidateRequest(r, w, &req, "Save slot"); err != nil {
		return
	}

	slot, err := h.service.SaveSlot(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, "Save slot", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgSlotSaved, Data: slot})
}

// HandleSaveWord creates or replaces a word definition
func (h *AdminHandler) HandleSaveWord(w http.ResponseWriter, r *http.Request) {
	var req admin.WordInput
	if err := DecodeAndValidateRequest(r, w, &req, "Save word"); err != nil {
		return
	}

	word, err := h.service.SaveWord(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, "Save word", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgWordSaved, Data: word})
}

// HandleSaveTier creates or replaces a deposit tier
func (h *AdminHandler) HandleSaveTier(w http.ResponseWriter, r *http.Request) {
	var req admin.TierInput
	if err := DecodeAndValidateRequest(r, w, &req, "Save tier"); err != nil {
		return
	}

	tier, err := h.service.SaveTier(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, "Save tier", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgTierSaved, Data: tier})
}
