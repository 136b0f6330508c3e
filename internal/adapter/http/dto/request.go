package dto

import (
	"github.com/shopspring/decimal"

	"github.com/cashwell/cashwell/internal/usecase"
)

// CreateEntryRequest represents a request to record an entry.
type CreateEntryRequest struct {
	Owner       string          `json:"owner"`
	Type        string          `json:"type"`
	Asset       string          `json:"asset"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
	MemberIDs   []string        `json:"member_ids,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEntryRequest) ToUseCaseInput() usecase.AddEntryInput {
	return usecase.AddEntryInput{
		Owner:       r.Owner,
		Type:        r.Type,
		Asset:       r.Asset,
		Amount:      r.Amount,
		Date:        r.Date,
		Description: r.Description,
		MemberIDs:   r.MemberIDs,
	}
}

// UpdateEntryRequest represents a request to edit an entry.
type UpdateEntryRequest struct {
	Owner       string          `json:"owner"`
	Type        string          `json:"type"`
	Asset       string          `json:"asset"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
	MemberIDs   []string        `json:"member_ids,omitempty"`
}

// ToUseCaseInput converts to use case input for the given entry id.
func (r *UpdateEntryRequest) ToUseCaseInput(id string) usecase.UpdateEntryInput {
	return usecase.UpdateEntryInput{
		ID:          id,
		Owner:       r.Owner,
		Type:        r.Type,
		Asset:       r.Asset,
		Amount:      r.Amount,
		Date:        r.Date,
		Description: r.Description,
		MemberIDs:   r.MemberIDs,
	}
}

// SetMemberAmountRequest represents an owner-level balance override.
type SetMemberAmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CreateAssetRequest represents a request to add a wallet asset.
type CreateAssetRequest struct {
	OwnerID     string          `json:"owner_id,omitempty"`
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	Value       decimal.Decimal `json:"value"`
	Symbol      string          `json:"symbol,omitempty"`
	TokenAmount decimal.Decimal `json:"token_amount,omitempty"`
	Color       string          `json:"color,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAssetRequest) ToUseCaseInput() usecase.AddAssetInput {
	return usecase.AddAssetInput{
		OwnerID:     r.OwnerID,
		Type:        r.Type,
		Name:        r.Name,
		Value:       r.Value,
		Symbol:      r.Symbol,
		TokenAmount: r.TokenAmount,
		Color:       r.Color,
	}
}

// UpdateAssetRequest represents a request to edit a wallet asset.
type UpdateAssetRequest struct {
	Name        string          `json:"name"`
	Value       decimal.Decimal `json:"value"`
	TokenAmount decimal.Decimal `json:"token_amount,omitempty"`
	Color       string          `json:"color,omitempty"`
}

// ToUseCaseInput converts to use case input for the given asset id.
func (r *UpdateAssetRequest) ToUseCaseInput(id string) usecase.UpdateAssetInput {
	return usecase.UpdateAssetInput{
		ID:          id,
		Name:        r.Name,
		Value:       r.Value,
		TokenAmount: r.TokenAmount,
		Color:       r.Color,
	}
}

// TransferToGroupRequest represents a wallet-to-group transfer.
type TransferToGroupRequest struct {
	AssetID string          `json:"asset_id"`
	Amount  decimal.Decimal `json:"amount"`
}
