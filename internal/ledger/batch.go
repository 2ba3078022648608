package ledger

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sheikh-saqib/ledger-orchestrator/internal/id"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/models"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/storage"
)

func checkSize(n int) error {
	switch {
	case n == 0:
		return ErrEmptyBatch
	case n > storage.MaxBatchSize:
		return fmt.Errorf("%w: got %d", ErrBatchTooLarge, n)
	}
	return nil
}

func accountRecord(req models.AccountRequest, accountID uuid.UUID) (storage.AccountRecord, error) {
	tag, err := toTag(req.AccountNumber)
	if err != nil {
		return storage.AccountRecord{}, err
	}
	return storage.AccountRecord{
		ID:          storage.UUIDToUint128(accountID),
		UserData128: tag,
		UserData64:  req.UserData64,
		UserData32:  req.UserData32,
		Ledger:      req.Ledger,
		Code:        req.Code,
		Flags:       storage.AccountFlags(req.Flags)&^storage.AccountLinked | storage.AccountHistory,
	}, nil
}

func transferRecord(req models.TransferRequest, transferID uuid.UUID, flags storage.TransferFlags) (storage.TransferRecord, error) {
	amount, err := toAmount(req.Amount)
	if err != nil {
		return storage.TransferRecord{}, err
	}
	return storage.TransferRecord{
		ID:              storage.UUIDToUint128(transferID),
		DebitAccountID:  storage.UUIDToUint128(req.DebitAccountID),
		CreditAccountID: storage.UUIDToUint128(req.CreditAccountID),
		Amount:          amount,
		UserData128:     storage.UUIDToUint128(req.UserData128),
		UserData64:      req.UserData64,
		UserData32:      req.UserData32,
		Timeout:         req.Timeout,
		Ledger:          req.Ledger,
		Code:            req.Code,
		Flags:           flags,
	}, nil
}

// buildAccountBatch turns requests into one linked chain of accounts, in
// request order, each under a fresh id.
func buildAccountBatch(reqs []models.AccountRequest, gen id.Generator) ([]storage.AccountRecord, []uuid.UUID, error) {
	if err := checkSize(len(reqs)); err != nil {
		return nil, nil, err
	}
	records := make([]storage.AccountRecord, 0, len(reqs))
	ids := make([]uuid.UUID, 0, len(reqs))
	for i, req := range reqs {
		accountID := gen.New()
		rec, err := accountRecord(req, accountID)
		if err != nil {
			return nil, nil, fmt.Errorf("account %d: %w", i, err)
		}
		records = append(records, rec)
		ids = append(ids, accountID)
	}
	linkAccounts(records)
	return records, ids, nil
}

// buildTransferBatch turns requests into one linked chain of transfers
// carrying flags, in request order, each under a fresh id.
func buildTransferBatch(reqs []models.TransferRequest, gen id.Generator, flags storage.TransferFlags) ([]storage.TransferRecord, []uuid.UUID, error) {
	if err := checkSize(len(reqs)); err != nil {
		return nil, nil, err
	}
	records := make([]storage.TransferRecord, 0, len(reqs))
	ids := make([]uuid.UUID, 0, len(reqs))
	for i, req := range reqs {
		transferID := gen.New()
		rec, err := transferRecord(req, transferID, flags)
		if err != nil {
			return nil, nil, fmt.Errorf("transfer %d: %w", i, err)
		}
		records = append(records, rec)
		ids = append(ids, transferID)
	}
	linkTransfers(records)
	return records, ids, nil
}

// linkAccounts closes the chain on the last entry.
func linkAccounts(records []storage.AccountRecord) {
	for i := range records {
		if i < len(records)-1 {
			records[i].Flags |= storage.AccountLinked
		} else {
			records[i].Flags &^= storage.AccountLinked
		}
	}
}

func linkTransfers(records []storage.TransferRecord) {
	for i := range records {
		if i < len(records)-1 {
			records[i].Flags |= storage.TransferLinked
		} else {
			records[i].Flags &^= storage.TransferLinked
		}
	}
}
