package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sheikh-saqib/ledger-orchestrator/internal/models"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/storage"
)

// CreatePendingTransfer reserves req.Amount on both accounts without moving
// it. The reservation lasts until posted, voided or, with a non-zero
// Timeout, until the store expires it.
func (l *Ledger) CreatePendingTransfer(ctx context.Context, req models.TransferRequest) (models.Transfer, error) {
	records, ids, err := buildTransferBatch([]models.TransferRequest{req}, l.ids, storage.TransferPending)
	if err != nil {
		return models.Transfer{}, err
	}
	return l.createOne(ctx, records, ids)
}

// PostPendingTransfer moves the reserved amount, or the smaller amount
// given, and releases whatever stays reserved.
func (l *Ledger) PostPendingTransfer(ctx context.Context, res models.Resolution) (models.Transfer, error) {
	return l.resolve(ctx, res, storage.TransferPostPending)
}

// VoidPendingTransfer releases the whole reservation.
func (l *Ledger) VoidPendingTransfer(ctx context.Context, res models.Resolution) (models.Transfer, error) {
	return l.resolve(ctx, res, storage.TransferVoidPending)
}

func (l *Ledger) ResolvePendingTransfer(ctx context.Context, res models.Resolution) (models.Transfer, error) {
	switch res.Action {
	case models.ActionPost:
		return l.PostPendingTransfer(ctx, res)
	case models.ActionVoid:
		return l.VoidPendingTransfer(ctx, res)
	}
	return models.Transfer{}, fmt.Errorf("%w: %q", ErrInvalidAction, res.Action)
}

func (l *Ledger) resolve(ctx context.Context, res models.Resolution, flag storage.TransferFlags) (models.Transfer, error) {
	transferID := l.ids.New()
	rec, err := resolutionRecord(res, transferID, flag)
	if err != nil {
		return models.Transfer{}, err
	}
	return l.createOne(ctx, []storage.TransferRecord{rec}, []uuid.UUID{transferID})
}

// createOne submits a single transfer and reads it back.
func (l *Ledger) createOne(ctx context.Context, records []storage.TransferRecord, ids []uuid.UUID) (models.Transfer, error) {
	failures, err := l.submitTransfers(ctx, records, ids)
	if err != nil {
		return models.Transfer{}, err
	}
	if err := entryError(entityTransfer, failures); err != nil {
		return models.Transfer{}, err
	}
	transfers, err := l.readTransfers(ctx, ids)
	if err != nil {
		return models.Transfer{}, err
	}
	l.publishTransfers(ctx, transfers)
	return transfers[0], nil
}

// resolutionRecord builds the entry that posts or voids res.PendingID.
// Without an amount, a post moves the full reservation.
func resolutionRecord(res models.Resolution, transferID uuid.UUID, flag storage.TransferFlags) (storage.TransferRecord, error) {
	var amount storage.Uint128
	if flag == storage.TransferPostPending {
		amount = storage.AmountMax
	}
	if res.Amount != nil {
		a, err := toAmount(*res.Amount)
		if err != nil {
			return storage.TransferRecord{}, err
		}
		amount = a
	}
	return storage.TransferRecord{
		ID:              storage.UUIDToUint128(transferID),
		DebitAccountID:  storage.UUIDToUint128(res.DebitAccountID),
		CreditAccountID: storage.UUIDToUint128(res.CreditAccountID),
		Amount:          amount,
		PendingID:       storage.UUIDToUint128(res.PendingID),
		UserData128:     storage.UUIDToUint128(res.UserData128),
		UserData64:      res.UserData64,
		UserData32:      res.UserData32,
		Ledger:          res.Ledger,
		Code:            res.Code,
		Flags:           flag,
	}, nil
}
