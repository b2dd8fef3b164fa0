package handler

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/osse101/LetterSpin_Go/internal/domain"
	"github.com/osse101/LetterSpin_Go/internal/engine"
)

// Path parameter names
const (
	ParamUserID = "userID"
	ParamWordID = "wordID"
	ParamTierID = "tierID"
)

// RewardHandler exposes the reward engine over HTTP
type RewardHandler struct {
	service engine.Service
}

// NewRewardHandler creates a new reward handler
func NewRewardHandler(service engine.Service) *RewardHandler {
	return &RewardHandler{service: service}
}

// DepositRequest is the body of a deposit call. Amount accepts a JSON string
// or number.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"cash_amount"`
}

// EligibilityResponse reports whether a word can be claimed right now
type EligibilityResponse struct {
	UserID   string `json:"user_id"`
	WordID   int    `json:"word_id"`
	Eligible bool   `json:"eligible"`
}

// LedgerResponse wraps a page of ledger entries
type LedgerResponse struct {
	UserID  string               `json:"user_id"`
	Entries []domain.LedgerEntry `json:"entries"`
}

// HandleSpin consumes one spin and pays the drawn reward
func (h *RewardHandler) HandleSpin(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, ParamUserID)
	if !ok {
		return
	}

	result, err := h.service.Spin(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Spin", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleGetAccount returns the account summary of a user
func (h *RewardHandler) HandleGetAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, ParamUserID)
	if !ok {
		return
	}

	summary, err := h.service.GetAccountSummary(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get account", err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// HandleGetLedger returns the newest ledger entries of a user
func (h *RewardHandler) HandleGetLedger(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, ParamUserID)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(GetOptionalQueryParam(r, "limit", strconv.Itoa(domain.DefaultLedgerLimit)))
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
		return
	}

	entries, err := h.service.GetLedger(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, r, "Get ledger", err)
		return
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}

	respondJSON(w, http.StatusOK, LedgerResponse{UserID: userID, Entries: entries})
}

// HandleWordEligibility reports whether the user holds the letters for a word
func (h *RewardHandler) HandleWordEligibility(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, ParamUserID)
	if !ok {
		return
	}
	wordID, ok := GetIntPathParam(r, w, ParamWordID)
	if !ok {
		return
	}

	eligible, err := h.service.CanClaimWord(r.Context(), userID, wordID)
	if err != nil {
		respondServiceError(w, r, "Word eligibility", err)
		return
	}

	respondJSON(w, http.StatusOK, EligibilityResponse{UserID: userID, WordID: wordID, Eligible: eligible})
}

// HandleClaimWord exchanges letters for the word's cash reward
func (h *RewardHandler) HandleClaimWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, ParamUserID)
	if !ok {
		return
	}
	wordID, ok := GetIntPathParam(r, w, ParamWordID)
	if !ok {
		return
	}

	result, err := h.service.ClaimWordBonus(r.Context(), userID, wordID)
	if err != nil {
		respondServiceError(w, r, "Claim word", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleDeposit credits a deposit and unlocks matching missions
func (h *RewardHandler) HandleDeposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, ParamUserID)
	if !ok {
		return
	}

	var req DepositRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Deposit"); err != nil {
		return
	}

	result, err := h.service.ProcessDeposit(r.Context(), userID, req.Amount)
	if err != nil {
		respondServiceError(w, r, "Deposit", err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// HandleClaimMission pays the spins of an unlocked deposit tier
func (h *RewardHandler) HandleClaimMission(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, ParamUserID)
	if !ok {
		return
	}
	tierID, ok := GetIntPathParam(r, w, ParamTierID)
	if !ok {
		return
	}

	result, err := h.service.ClaimMission(r.Context(), userID, tierID)
	if err != nil {
		respondServiceError(w, r, "Claim mission", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleDailyLogin grants the once-per-day login spins
func (h *RewardHandler) HandleDailyLogin(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, ParamUserID)
	if !ok {
		return
	}

	result, err := h.service.ClaimDailyLogin(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Daily login", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleListWords lists the active word definitions
func (h *RewardHandler) HandleListWords(w http.ResponseWriter, r *http.Request) {
	words, err := h.service.ListWords(r.Context())
	if err != nil {
		respondServiceError(w, r, "List words", err)
		return
	}
	if words == nil {
		words = []domain.WordDefinition{}
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: words})
}

// HandleListTiers lists the active deposit tiers
func (h *RewardHandler) HandleListTiers(w http.ResponseWriter, r *http.Request) {
	tiers, err := h.service.ListDepositTiers(r.Context())
	if err != nil {
		respondServiceError(w, r, "List tiers", err)
		return
	}
	if tiers == nil {
		tiers = []domain.DepositTier{}
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: tiers})
}
