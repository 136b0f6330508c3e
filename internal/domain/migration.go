package domain

// MigrateGroupLosses rewrites legacy group loss entries into transfer
// records credited to the primary member. Early versions of the data model
// recorded money the primary member put into the group pot as a group
// "loss"; the migration reinterprets each such entry as what it was, a
// transfer.
//
// For every group entry of type loss: the already-applied loss
// distribution is reverted, the entry becomes a transfer with
// MemberIDs=[primaryID], and the primary member is credited the full
// amount. Returns the number of rewritten entries; zero means the
// migration was a no-op and nothing needs persisting. Running it again on
// migrated data changes nothing, because no group loss entries remain.
func MigrateGroupLosses(l *Ledger, primaryID string) int {
	rewritten := 0
	for _, e := range l.Entries {
		if e.Owner != OwnerGroup || e.Type != TypeLoss {
			continue
		}
		Reconcile(l, e, nil)
		e.Type = TypeTransfer
		e.MemberIDs = []string{primaryID}
		l.Credit(primaryID, e.Amount)
		rewritten++
	}
	return rewritten
}
