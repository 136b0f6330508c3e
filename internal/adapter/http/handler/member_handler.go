package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cashwell/cashwell/internal/adapter/http/dto"
	"github.com/cashwell/cashwell/internal/usecase"
)

// MemberHandler handles roster HTTP requests.
type MemberHandler struct {
	memberUC *usecase.MemberUseCase
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberUC *usecase.MemberUseCase) *MemberHandler {
	return &MemberHandler{memberUC: memberUC}
}

// List returns the roster with balances.
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members := h.memberUC.ListMembers(r.Context())
	writeJSON(w, http.StatusOK, dto.MembersFromDomain(members))
}

// Kick removes a member from the roster.
func (h *MemberHandler) Kick(w http.ResponseWriter, r *http.Request) {
	if err := h.memberUC.KickMember(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, "failed to kick member")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetAmount overrides a member's balance.
func (h *MemberHandler) SetAmount(w http.ResponseWriter, r *http.Request) {
	var req dto.SetMemberAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.memberUC.SetMemberAmount(r.Context(), chi.URLParam(r, "id"), req.Amount); err != nil {
		writeDomainError(w, err, "failed to set member amount")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ResetGroup drops all group entries and zeroes balances.
func (h *MemberHandler) ResetGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.memberUC.ResetGroup(r.Context()); err != nil {
		writeDomainError(w, err, "failed to reset group")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
