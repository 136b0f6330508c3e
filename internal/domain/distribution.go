package domain

import "github.com/shopspring/decimal"

// distribute applies (or, inverted, reverts) a group entry's effect on
// member balances. Profit credits each recorded member an equal share,
// loss debits it. Transfers and personal entries are a no-op here; their
// balance effect is applied directly by the operation that creates them.
//
// The share divisor is the recorded member set's size (or the current
// roster size for legacy empty sets), even when some recorded ids no
// longer resolve. Unresolved ids keep their seat in the divisor but their
// share is written nowhere.
func distribute(l *Ledger, e *Entry, invert bool) {
	if e == nil || e.Owner != OwnerGroup {
		return
	}

	var share decimal.Decimal
	switch e.Type {
	case TypeProfit:
		share = e.Share(l.RosterSize())
	case TypeLoss:
		share = e.Share(l.RosterSize()).Neg()
	default:
		return
	}
	if invert {
		share = share.Neg()
	}

	ids := e.MemberIDs
	if len(ids) == 0 {
		ids = make([]string, 0, len(l.Members))
		for _, m := range l.Members {
			ids = append(ids, m.ID)
		}
	}
	for _, id := range ids {
		l.Credit(id, share)
	}
}

// CreditTransfer applies (or, inverted, reverts) a group transfer's
// balance effect: the full amount, credited to the target member.
// Transfers sit outside distribute on purpose; the credit happens
// exactly once, in the operation that records or removes the entry.
// Non-transfer and personal entries are a no-op.
func CreditTransfer(l *Ledger, e *Entry, primaryID string, invert bool) {
	if e == nil || e.Owner != OwnerGroup || e.Type != TypeTransfer {
		return
	}
	amount := e.Amount
	if invert {
		amount = amount.Neg()
	}
	l.Credit(e.TransferTarget(primaryID), amount)
}

// Reconcile transitions member balances from one version of an entry to
// another. It always reverts the old entry's effect before applying the
// new one, so the two can never be half-applied or applied out of order.
// Either side may be nil: a nil old is a pure apply (creation), a nil new
// a pure revert (deletion).
//
// Reverting then re-applying an unchanged entry is exact because shares
// are decimal, not float: the round trip restores every balance bit for
// bit.
func Reconcile(l *Ledger, old, new *Entry) {
	distribute(l, old, true)
	distribute(l, new, false)
}
