package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/ledger-orchestrator/internal/models"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/storage"
)

// CreateAccounts creates every account or none. The accounts are returned
// in request order as the store recorded them.
func (l *Ledger) CreateAccounts(ctx context.Context, reqs []models.AccountRequest) ([]models.Account, error) {
	records, ids, err := buildAccountBatch(reqs, l.ids)
	if err != nil {
		return nil, err
	}
	failures, err := l.submitAccounts(ctx, records, ids)
	if err != nil {
		return nil, err
	}
	if err := batchError(entityAccount, failures); err != nil {
		return nil, err
	}
	accounts, err := l.readAccounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	l.publishAccounts(ctx, accounts)
	return accounts, nil
}

// CreateAccount creates a single account. A rejection is an *AccountError.
func (l *Ledger) CreateAccount(ctx context.Context, req models.AccountRequest) (models.Account, error) {
	records, ids, err := buildAccountBatch([]models.AccountRequest{req}, l.ids)
	if err != nil {
		return models.Account{}, err
	}
	failures, err := l.submitAccounts(ctx, records, ids)
	if err != nil {
		return models.Account{}, err
	}
	if err := entryError(entityAccount, failures); err != nil {
		return models.Account{}, err
	}
	accounts, err := l.readAccounts(ctx, ids)
	if err != nil {
		return models.Account{}, err
	}
	l.publishAccounts(ctx, accounts)
	return accounts[0], nil
}

func (l *Ledger) submitAccounts(ctx context.Context, records []storage.AccountRecord, ids []uuid.UUID) ([]AccountFailure, error) {
	l.log.Debug("submitting accounts", zap.Int("entries", len(records)))
	results, err := l.store.CreateAccounts(ctx, records)
	return settle(ctx, l, entityAccount, ids, accountResults(results), err)
}

// readAccounts reads back accounts the store just confirmed. Any failure is
// a *ReadBackError: the accounts exist either way.
func (l *Ledger) readAccounts(ctx context.Context, ids []uuid.UUID) ([]models.Account, error) {
	found, err := l.LookupAccounts(ctx, ids)
	if err != nil {
		return nil, l.readBackFailed(entityAccount, ids, err)
	}
	accounts := make([]models.Account, len(found))
	for i, a := range found {
		if a == nil {
			return nil, l.readBackFailed(entityAccount, ids, fmt.Errorf("account %s: %w", ids[i], ErrNotFound))
		}
		accounts[i] = *a
	}
	return accounts, nil
}

func (l *Ledger) GetAccount(ctx context.Context, accountID uuid.UUID) (models.Account, error) {
	found, err := l.LookupAccounts(ctx, []uuid.UUID{accountID})
	if err != nil {
		return models.Account{}, err
	}
	if found[0] == nil {
		return models.Account{}, fmt.Errorf("account %s: %w", accountID, ErrNotFound)
	}
	return *found[0], nil
}

// LookupAccounts returns one entry per id, nil where the account does not
// exist.
func (l *Ledger) LookupAccounts(ctx context.Context, ids []uuid.UUID) ([]*models.Account, error) {
	if len(ids) == 0 {
		return []*models.Account{}, nil
	}
	if err := checkSize(len(ids)); err != nil {
		return nil, err
	}
	rows, err := l.store.LookupAccounts(ctx, storeIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("lookup accounts: %w", err)
	}
	accounts := make([]models.Account, len(rows))
	for i, r := range rows {
		accounts[i] = toAccount(r)
	}
	return align(ids, accounts, func(a models.Account) uuid.UUID { return a.ID }), nil
}
