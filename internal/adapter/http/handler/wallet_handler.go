package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cashwell/cashwell/internal/adapter/http/dto"
	"github.com/cashwell/cashwell/internal/usecase"
)

// WalletHandler handles wallet asset HTTP requests.
type WalletHandler struct {
	walletUC *usecase.WalletUseCase
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletUC *usecase.WalletUseCase) *WalletHandler {
	return &WalletHandler{walletUC: walletUC}
}

// List returns wallet assets, optionally filtered by owner.
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	assets := h.walletUC.ListAssets(r.Context(), r.URL.Query().Get("owner_id"))
	writeJSON(w, http.StatusOK, dto.AssetsFromDomain(assets))
}

// Create adds a wallet asset.
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	asset, err := h.walletUC.AddAsset(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err, "failed to create asset")
		return
	}

	writeJSON(w, http.StatusCreated, dto.AssetFromDomain(asset))
}

// Update edits a wallet asset.
func (h *WalletHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	asset, err := h.walletUC.UpdateAsset(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err, "failed to update asset")
		return
	}

	writeJSON(w, http.StatusOK, dto.AssetFromDomain(asset))
}

// Delete removes a wallet asset.
func (h *WalletHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.walletUC.DeleteAsset(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, "failed to delete asset")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Transfer moves value from a wallet asset into the group pot.
func (h *WalletHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferToGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.walletUC.TransferToGroup(r.Context(), req.AssetID, req.Amount)
	if err != nil {
		writeDomainError(w, err, "failed to transfer to group")
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// GroupFunds returns the group pot summary.
func (h *WalletHandler) GroupFunds(w http.ResponseWriter, r *http.Request) {
	funds, err := h.walletUC.GetGroupFunds(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to compute group funds")
		return
	}

	writeJSON(w, http.StatusOK, dto.GroupFundsFromUseCase(funds))
}
