package memory

import "github.com/sheikh-saqib/ledger-orchestrator/internal/storage"

func (m *MemoryLedgerStore) createAccount(a storage.AccountRecord, undo *undoLog) storage.CreateAccountResult {
	switch {
	case a.Timestamp != 0:
		return storage.AccountTimestampMustBeZero
	case a.Flags.Reserved():
		return storage.AccountReservedFlag
	case a.ID.IsZero():
		return storage.AccountIDMustNotBeZero
	case a.ID == storage.AmountMax:
		return storage.AccountIDMustNotBeIntMax
	}

	if existing, ok := m.accounts[a.ID]; ok {
		return accountExists(a, existing)
	}

	switch {
	case a.Flags.Has(storage.AccountDebitsMustNotExceedCredits) && a.Flags.Has(storage.AccountCreditsMustNotExceedDebits):
		return storage.AccountFlagsAreMutuallyExclusive
	case !a.DebitsPending.IsZero():
		return storage.AccountDebitsPendingMustBeZero
	case !a.DebitsPosted.IsZero():
		return storage.AccountDebitsPostedMustBeZero
	case !a.CreditsPending.IsZero():
		return storage.AccountCreditsPendingMustBeZero
	case !a.CreditsPosted.IsZero():
		return storage.AccountCreditsPostedMustBeZero
	case a.Ledger == 0:
		return storage.AccountLedgerMustNotBeZero
	case a.Code == 0:
		return storage.AccountCodeMustNotBeZero
	}

	rec := a
	rec.Timestamp = m.tick()
	m.accounts[rec.ID] = &rec
	m.accountLog = append(m.accountLog, rec.ID)
	undo.push(func() {
		delete(m.accounts, rec.ID)
		m.accountLog = m.accountLog[:len(m.accountLog)-1]
	})
	return storage.AccountOK
}

func accountExists(a storage.AccountRecord, e *storage.AccountRecord) storage.CreateAccountResult {
	switch {
	case a.Flags&^storage.AccountLinked != e.Flags&^storage.AccountLinked:
		return storage.AccountExistsWithDifferentFlags
	case a.UserData128 != e.UserData128:
		return storage.AccountExistsWithDifferentUserData128
	case a.UserData64 != e.UserData64:
		return storage.AccountExistsWithDifferentUserData64
	case a.UserData32 != e.UserData32:
		return storage.AccountExistsWithDifferentUserData32
	case a.Ledger != e.Ledger:
		return storage.AccountExistsWithDifferentLedger
	case a.Code != e.Code:
		return storage.AccountExistsWithDifferentCode
	}
	return storage.AccountExists
}
