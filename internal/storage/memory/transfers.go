package memory

import (
	"time"

	"github.com/sheikh-saqib/ledger-orchestrator/internal/storage"
)

func (m *MemoryLedgerStore) createTransfer(t storage.TransferRecord, undo *undoLog) storage.CreateTransferResult {
	switch {
	case t.Timestamp != 0:
		return storage.TransferTimestampMustBeZero
	case t.Flags.Reserved():
		return storage.TransferReservedFlag
	case t.ID.IsZero():
		return storage.TransferIDMustNotBeZero
	case t.ID == storage.AmountMax:
		return storage.TransferIDMustNotBeIntMax
	}

	if existing, ok := m.transfers[t.ID]; ok {
		return transferExists(t, existing)
	}

	phases := 0
	for _, f := range []storage.TransferFlags{storage.TransferPending, storage.TransferPostPending, storage.TransferVoidPending} {
		if t.Flags.Has(f) {
			phases++
		}
	}
	if phases > 1 {
		return storage.TransferFlagsAreMutuallyExclusive
	}

	if t.Flags.Has(storage.TransferPostPending) || t.Flags.Has(storage.TransferVoidPending) {
		return m.resolvePending(t, undo)
	}

	pending := t.Flags.Has(storage.TransferPending)
	switch {
	case t.DebitAccountID.IsZero():
		return storage.TransferDebitAccountIDMustNotBeZero
	case t.DebitAccountID == storage.AmountMax:
		return storage.TransferDebitAccountIDMustNotBeIntMax
	case t.CreditAccountID.IsZero():
		return storage.TransferCreditAccountIDMustNotBeZero
	case t.CreditAccountID == storage.AmountMax:
		return storage.TransferCreditAccountIDMustNotBeIntMax
	case t.DebitAccountID == t.CreditAccountID:
		return storage.TransferAccountsMustBeDifferent
	case !t.PendingID.IsZero():
		return storage.TransferPendingIDMustBeZero
	case t.Timeout != 0 && !pending:
		return storage.TransferTimeoutReservedForPendingTransfer
	case t.Amount.IsZero():
		return storage.TransferAmountMustNotBeZero
	case t.Ledger == 0:
		return storage.TransferLedgerMustNotBeZero
	case t.Code == 0:
		return storage.TransferCodeMustNotBeZero
	}

	dr, ok := m.accounts[t.DebitAccountID]
	if !ok {
		return storage.TransferDebitAccountNotFound
	}
	cr, ok := m.accounts[t.CreditAccountID]
	if !ok {
		return storage.TransferCreditAccountNotFound
	}
	if dr.Ledger != cr.Ledger {
		return storage.TransferAccountsMustHaveTheSameLedger
	}
	if t.Ledger != dr.Ledger {
		return storage.TransferMustHaveTheSameLedgerAsAccounts
	}

	next := *dr
	nextCr := *cr
	var overflow bool
	if pending {
		if next.DebitsPending, overflow = dr.DebitsPending.Add(t.Amount); overflow {
			return storage.TransferOverflowsDebitsPending
		}
		if nextCr.CreditsPending, overflow = cr.CreditsPending.Add(t.Amount); overflow {
			return storage.TransferOverflowsCreditsPending
		}
	} else {
		if next.DebitsPosted, overflow = dr.DebitsPosted.Add(t.Amount); overflow {
			return storage.TransferOverflowsDebitsPosted
		}
		if nextCr.CreditsPosted, overflow = cr.CreditsPosted.Add(t.Amount); overflow {
			return storage.TransferOverflowsCreditsPosted
		}
	}

	debits, overflow := next.DebitsPending.Add(next.DebitsPosted)
	if overflow {
		return storage.TransferOverflowsDebits
	}
	credits, overflow := nextCr.CreditsPending.Add(nextCr.CreditsPosted)
	if overflow {
		return storage.TransferOverflowsCredits
	}
	if dr.Flags.Has(storage.AccountDebitsMustNotExceedCredits) && debits.Cmp(dr.CreditsPosted) > 0 {
		return storage.TransferExceedsCredits
	}
	if cr.Flags.Has(storage.AccountCreditsMustNotExceedDebits) && credits.Cmp(cr.DebitsPosted) > 0 {
		return storage.TransferExceedsDebits
	}

	ts := m.tick()
	if pending && t.Timeout != 0 && ts+uint64(t.Timeout)*uint64(time.Second) < ts {
		return storage.TransferOverflowsTimeout
	}

	m.setBalances(dr, cr, next, nextCr, undo)

	rec := t
	rec.Timestamp = ts
	m.insertTransfer(&rec, undo)
	if pending {
		m.pending[rec.ID] = statusPending
		undo.push(func() { delete(m.pending, rec.ID) })
	}
	m.recordHistory(dr, cr, ts, undo)
	return storage.TransferOK
}

// resolvePending posts or voids the pending transfer t refers to. Zero debit,
// credit, ledger and code fields are taken from the pending transfer; set
// fields must match it.
func (m *MemoryLedgerStore) resolvePending(t storage.TransferRecord, undo *undoLog) storage.CreateTransferResult {
	post := t.Flags.Has(storage.TransferPostPending)

	switch {
	case t.PendingID.IsZero():
		return storage.TransferPendingIDMustNotBeZero
	case t.PendingID == storage.AmountMax:
		return storage.TransferPendingIDMustNotBeIntMax
	case t.PendingID == t.ID:
		return storage.TransferPendingIDMustBeDifferent
	case t.Timeout != 0:
		return storage.TransferTimeoutReservedForPendingTransfer
	}

	p, ok := m.transfers[t.PendingID]
	if !ok {
		return storage.TransferPendingTransferNotFound
	}
	if !p.Flags.Has(storage.TransferPending) {
		return storage.TransferPendingTransferNotPending
	}

	switch {
	case !t.DebitAccountID.IsZero() && t.DebitAccountID != p.DebitAccountID:
		return storage.TransferPendingTransferHasDifferentDebitAccountID
	case !t.CreditAccountID.IsZero() && t.CreditAccountID != p.CreditAccountID:
		return storage.TransferPendingTransferHasDifferentCreditAccountID
	case t.Ledger != 0 && t.Ledger != p.Ledger:
		return storage.TransferPendingTransferHasDifferentLedger
	case t.Code != 0 && t.Code != p.Code:
		return storage.TransferPendingTransferHasDifferentCode
	}

	amount := t.Amount
	if post {
		if amount == storage.AmountMax {
			amount = p.Amount
		} else if amount.Cmp(p.Amount) > 0 {
			return storage.TransferExceedsPendingTransferAmount
		}
	} else {
		if !amount.IsZero() && amount != storage.AmountMax && amount != p.Amount {
			return storage.TransferPendingTransferHasDifferentAmount
		}
		amount = p.Amount
	}

	switch m.pending[p.ID] {
	case statusPosted:
		return storage.TransferPendingTransferAlreadyPosted
	case statusVoided:
		return storage.TransferPendingTransferAlreadyVoided
	case statusExpired:
		return storage.TransferPendingTransferExpired
	}

	dr, cr := m.accounts[p.DebitAccountID], m.accounts[p.CreditAccountID]
	next, nextCr := *dr, *cr
	next.DebitsPending, _ = dr.DebitsPending.Sub(p.Amount)
	nextCr.CreditsPending, _ = cr.CreditsPending.Sub(p.Amount)
	if post {
		var overflow bool
		if next.DebitsPosted, overflow = dr.DebitsPosted.Add(amount); overflow {
			return storage.TransferOverflowsDebitsPosted
		}
		if nextCr.CreditsPosted, overflow = cr.CreditsPosted.Add(amount); overflow {
			return storage.TransferOverflowsCreditsPosted
		}
	}

	ts := m.tick()
	m.setBalances(dr, cr, next, nextCr, undo)

	rec := t
	rec.DebitAccountID = p.DebitAccountID
	rec.CreditAccountID = p.CreditAccountID
	rec.Ledger = p.Ledger
	rec.Code = p.Code
	rec.Amount = amount
	rec.Timestamp = ts
	m.insertTransfer(&rec, undo)

	status := statusVoided
	if post {
		status = statusPosted
	}
	m.pending[p.ID] = status
	undo.push(func() { m.pending[p.ID] = statusPending })

	m.recordHistory(dr, cr, ts, undo)
	return storage.TransferOK
}

func (m *MemoryLedgerStore) setBalances(dr, cr *storage.AccountRecord, next, nextCr storage.AccountRecord, undo *undoLog) {
	prev, prevCr := *dr, *cr
	*dr, *cr = next, nextCr
	undo.push(func() {
		*dr, *cr = prev, prevCr
	})
}

func (m *MemoryLedgerStore) insertTransfer(rec *storage.TransferRecord, undo *undoLog) {
	m.transfers[rec.ID] = rec
	m.transferLog = append(m.transferLog, rec.ID)
	undo.push(func() {
		delete(m.transfers, rec.ID)
		m.transferLog = m.transferLog[:len(m.transferLog)-1]
	})
}

func (m *MemoryLedgerStore) recordHistory(dr, cr *storage.AccountRecord, ts uint64, undo *undoLog) {
	for _, side := range []struct {
		account       *storage.AccountRecord
		debit, credit bool
	}{{dr, true, false}, {cr, false, true}} {
		a := side.account
		if !a.Flags.Has(storage.AccountHistory) {
			continue
		}
		m.history[a.ID] = append(m.history[a.ID], historyPoint{
			balance: storage.BalanceRecord{
				DebitsPending:  a.DebitsPending,
				DebitsPosted:   a.DebitsPosted,
				CreditsPending: a.CreditsPending,
				CreditsPosted:  a.CreditsPosted,
				Timestamp:      ts,
			},
			debit:  side.debit,
			credit: side.credit,
		})
		id := a.ID
		undo.push(func() {
			m.history[id] = m.history[id][:len(m.history[id])-1]
		})
	}
}

func transferExists(t storage.TransferRecord, e *storage.TransferRecord) storage.CreateTransferResult {
	resolving := t.Flags.Has(storage.TransferPostPending) || t.Flags.Has(storage.TransferVoidPending)
	switch {
	case t.Flags&^storage.TransferLinked != e.Flags&^storage.TransferLinked:
		return storage.TransferExistsWithDifferentFlags
	case t.PendingID != e.PendingID:
		return storage.TransferExistsWithDifferentPendingID
	case (!resolving || !t.DebitAccountID.IsZero()) && t.DebitAccountID != e.DebitAccountID:
		return storage.TransferExistsWithDifferentDebitAccountID
	case (!resolving || !t.CreditAccountID.IsZero()) && t.CreditAccountID != e.CreditAccountID:
		return storage.TransferExistsWithDifferentCreditAccountID
	case (!resolving || t.Amount != storage.AmountMax) && t.Amount != e.Amount:
		return storage.TransferExistsWithDifferentAmount
	case t.UserData128 != e.UserData128:
		return storage.TransferExistsWithDifferentUserData128
	case t.UserData64 != e.UserData64:
		return storage.TransferExistsWithDifferentUserData64
	case t.UserData32 != e.UserData32:
		return storage.TransferExistsWithDifferentUserData32
	case t.Timeout != e.Timeout:
		return storage.TransferExistsWithDifferentTimeout
	case (!resolving || t.Code != 0) && t.Code != e.Code:
		return storage.TransferExistsWithDifferentCode
	}
	return storage.TransferExists
}
