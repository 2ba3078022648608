package storage

import "fmt"

// CreateAccountResult is the store's per-entry outcome for account creation.
// Values follow the store's wire enumeration and pass through unchanged.
type CreateAccountResult uint32

const (
	AccountOK                             CreateAccountResult = 0
	AccountLinkedEventFailed              CreateAccountResult = 1
	AccountLinkedEventChainOpen           CreateAccountResult = 2
	AccountTimestampMustBeZero            CreateAccountResult = 3
	AccountReservedField                  CreateAccountResult = 4
	AccountReservedFlag                   CreateAccountResult = 5
	AccountIDMustNotBeZero                CreateAccountResult = 6
	AccountIDMustNotBeIntMax              CreateAccountResult = 7
	AccountFlagsAreMutuallyExclusive      CreateAccountResult = 8
	AccountDebitsPendingMustBeZero        CreateAccountResult = 9
	AccountDebitsPostedMustBeZero         CreateAccountResult = 10
	AccountCreditsPendingMustBeZero       CreateAccountResult = 11
	AccountCreditsPostedMustBeZero        CreateAccountResult = 12
	AccountLedgerMustNotBeZero            CreateAccountResult = 13
	AccountCodeMustNotBeZero              CreateAccountResult = 14
	AccountExistsWithDifferentFlags       CreateAccountResult = 15
	AccountExistsWithDifferentUserData128 CreateAccountResult = 16
	AccountExistsWithDifferentUserData64  CreateAccountResult = 17
	AccountExistsWithDifferentUserData32  CreateAccountResult = 18
	AccountExistsWithDifferentLedger      CreateAccountResult = 19
	AccountExistsWithDifferentCode        CreateAccountResult = 20
	AccountExists                         CreateAccountResult = 21
)

var accountResultNames = map[CreateAccountResult]string{
	AccountOK:                             "ok",
	AccountLinkedEventFailed:              "linked_event_failed",
	AccountLinkedEventChainOpen:           "linked_event_chain_open",
	AccountTimestampMustBeZero:            "timestamp_must_be_zero",
	AccountReservedField:                  "reserved_field",
	AccountReservedFlag:                   "reserved_flag",
	AccountIDMustNotBeZero:                "id_must_not_be_zero",
	AccountIDMustNotBeIntMax:              "id_must_not_be_int_max",
	AccountFlagsAreMutuallyExclusive:      "flags_are_mutually_exclusive",
	AccountDebitsPendingMustBeZero:        "debits_pending_must_be_zero",
	AccountDebitsPostedMustBeZero:         "debits_posted_must_be_zero",
	AccountCreditsPendingMustBeZero:       "credits_pending_must_be_zero",
	AccountCreditsPostedMustBeZero:        "credits_posted_must_be_zero",
	AccountLedgerMustNotBeZero:            "ledger_must_not_be_zero",
	AccountCodeMustNotBeZero:              "code_must_not_be_zero",
	AccountExistsWithDifferentFlags:       "exists_with_different_flags",
	AccountExistsWithDifferentUserData128: "exists_with_different_user_data_128",
	AccountExistsWithDifferentUserData64:  "exists_with_different_user_data_64",
	AccountExistsWithDifferentUserData32:  "exists_with_different_user_data_32",
	AccountExistsWithDifferentLedger:      "exists_with_different_ledger",
	AccountExistsWithDifferentCode:        "exists_with_different_code",
	AccountExists:                         "exists",
}

func (r CreateAccountResult) String() string {
	if name, ok := accountResultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("account_result_%d", uint32(r))
}

func (r CreateAccountResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// LinkFailure reports whether the entry failed only because another entry of
// its linked chain did.
func (r CreateAccountResult) LinkFailure() bool {
	return r == AccountLinkedEventFailed
}

// CreateTransferResult is the store's per-entry outcome for transfer creation.
// Values follow the store's wire enumeration and pass through unchanged.
type CreateTransferResult uint32

const (
	TransferOK                                         CreateTransferResult = 0
	TransferLinkedEventFailed                          CreateTransferResult = 1
	TransferLinkedEventChainOpen                       CreateTransferResult = 2
	TransferTimestampMustBeZero                        CreateTransferResult = 3
	TransferReservedFlag                               CreateTransferResult = 4
	TransferIDMustNotBeZero                            CreateTransferResult = 5
	TransferIDMustNotBeIntMax                          CreateTransferResult = 6
	TransferFlagsAreMutuallyExclusive                  CreateTransferResult = 7
	TransferDebitAccountIDMustNotBeZero                CreateTransferResult = 8
	TransferDebitAccountIDMustNotBeIntMax              CreateTransferResult = 9
	TransferCreditAccountIDMustNotBeZero               CreateTransferResult = 10
	TransferCreditAccountIDMustNotBeIntMax             CreateTransferResult = 11
	TransferAccountsMustBeDifferent                    CreateTransferResult = 12
	TransferPendingIDMustBeZero                        CreateTransferResult = 13
	TransferPendingIDMustNotBeZero                     CreateTransferResult = 14
	TransferPendingIDMustNotBeIntMax                   CreateTransferResult = 15
	TransferPendingIDMustBeDifferent                   CreateTransferResult = 16
	TransferTimeoutReservedForPendingTransfer          CreateTransferResult = 17
	TransferAmountMustNotBeZero                        CreateTransferResult = 18
	TransferLedgerMustNotBeZero                        CreateTransferResult = 19
	TransferCodeMustNotBeZero                          CreateTransferResult = 20
	TransferDebitAccountNotFound                       CreateTransferResult = 21
	TransferCreditAccountNotFound                      CreateTransferResult = 22
	TransferAccountsMustHaveTheSameLedger              CreateTransferResult = 23
	TransferMustHaveTheSameLedgerAsAccounts            CreateTransferResult = 24
	TransferPendingTransferNotFound                    CreateTransferResult = 25
	TransferPendingTransferNotPending                  CreateTransferResult = 26
	TransferPendingTransferHasDifferentDebitAccountID  CreateTransferResult = 27
	TransferPendingTransferHasDifferentCreditAccountID CreateTransferResult = 28
	TransferPendingTransferHasDifferentLedger          CreateTransferResult = 29
	TransferPendingTransferHasDifferentCode            CreateTransferResult = 30
	TransferExceedsPendingTransferAmount               CreateTransferResult = 31
	TransferPendingTransferHasDifferentAmount          CreateTransferResult = 32
	TransferPendingTransferAlreadyPosted               CreateTransferResult = 33
	TransferPendingTransferAlreadyVoided               CreateTransferResult = 34
	TransferPendingTransferExpired                     CreateTransferResult = 35
	TransferExistsWithDifferentFlags                   CreateTransferResult = 36
	TransferExistsWithDifferentDebitAccountID          CreateTransferResult = 37
	TransferExistsWithDifferentCreditAccountID         CreateTransferResult = 38
	TransferExistsWithDifferentAmount                  CreateTransferResult = 39
	TransferExistsWithDifferentPendingID               CreateTransferResult = 40
	TransferExistsWithDifferentUserData128             CreateTransferResult = 41
	TransferExistsWithDifferentUserData64              CreateTransferResult = 42
	TransferExistsWithDifferentUserData32              CreateTransferResult = 43
	TransferExistsWithDifferentTimeout                 CreateTransferResult = 44
	TransferExistsWithDifferentCode                    CreateTransferResult = 45
	TransferExists                                     CreateTransferResult = 46
	TransferOverflowsDebitsPending                     CreateTransferResult = 47
	TransferOverflowsCreditsPending                    CreateTransferResult = 48
	TransferOverflowsDebitsPosted                      CreateTransferResult = 49
	TransferOverflowsCreditsPosted                     CreateTransferResult = 50
	TransferOverflowsDebits                            CreateTransferResult = 51
	TransferOverflowsCredits                           CreateTransferResult = 52
	TransferOverflowsTimeout                           CreateTransferResult = 53
	TransferExceedsCredits                             CreateTransferResult = 54
	TransferExceedsDebits                              CreateTransferResult = 55
)

var transferResultNames = map[CreateTransferResult]string{
	TransferOK:                                         "ok",
	TransferLinkedEventFailed:                          "linked_event_failed",
	TransferLinkedEventChainOpen:                       "linked_event_chain_open",
	TransferTimestampMustBeZero:                        "timestamp_must_be_zero",
	TransferReservedFlag:                               "reserved_flag",
	TransferIDMustNotBeZero:                            "id_must_not_be_zero",
	TransferIDMustNotBeIntMax:                          "id_must_not_be_int_max",
	TransferFlagsAreMutuallyExclusive:                  "flags_are_mutually_exclusive",
	TransferDebitAccountIDMustNotBeZero:                "debit_account_id_must_not_be_zero",
	TransferDebitAccountIDMustNotBeIntMax:              "debit_account_id_must_not_be_int_max",
	TransferCreditAccountIDMustNotBeZero:               "credit_account_id_must_not_be_zero",
	TransferCreditAccountIDMustNotBeIntMax:             "credit_account_id_must_not_be_int_max",
	TransferAccountsMustBeDifferent:                    "accounts_must_be_different",
	TransferPendingIDMustBeZero:                        "pending_id_must_be_zero",
	TransferPendingIDMustNotBeZero:                     "pending_id_must_not_be_zero",
	TransferPendingIDMustNotBeIntMax:                   "pending_id_must_not_be_int_max",
	TransferPendingIDMustBeDifferent:                   "pending_id_must_be_different",
	TransferTimeoutReservedForPendingTransfer:          "timeout_reserved_for_pending_transfer",
	TransferAmountMustNotBeZero:                        "amount_must_not_be_zero",
	TransferLedgerMustNotBeZero:                        "ledger_must_not_be_zero",
	TransferCodeMustNotBeZero:                          "code_must_not_be_zero",
	TransferDebitAccountNotFound:                       "debit_account_not_found",
	TransferCreditAccountNotFound:                      "credit_account_not_found",
	TransferAccountsMustHaveTheSameLedger:              "accounts_must_have_the_same_ledger",
	TransferMustHaveTheSameLedgerAsAccounts:            "transfer_must_have_the_same_ledger_as_accounts",
	TransferPendingTransferNotFound:                    "pending_transfer_not_found",
	TransferPendingTransferNotPending:                  "pending_transfer_not_pending",
	TransferPendingTransferHasDifferentDebitAccountID:  "pending_transfer_has_different_debit_account_id",
	TransferPendingTransferHasDifferentCreditAccountID: "pending_transfer_has_different_credit_account_id",
	TransferPendingTransferHasDifferentLedger:          "pending_transfer_has_different_ledger",
	TransferPendingTransferHasDifferentCode:            "pending_transfer_has_different_code",
	TransferExceedsPendingTransferAmount:               "exceeds_pending_transfer_amount",
	TransferPendingTransferHasDifferentAmount:          "pending_transfer_has_different_amount",
	TransferPendingTransferAlreadyPosted:               "pending_transfer_already_posted",
	TransferPendingTransferAlreadyVoided:               "pending_transfer_already_voided",
	TransferPendingTransferExpired:                     "pending_transfer_expired",
	TransferExistsWithDifferentFlags:                   "exists_with_different_flags",
	TransferExistsWithDifferentDebitAccountID:          "exists_with_different_debit_account_id",
	TransferExistsWithDifferentCreditAccountID:         "exists_with_different_credit_account_id",
	TransferExistsWithDifferentAmount:                  "exists_with_different_amount",
	TransferExistsWithDifferentPendingID:               "exists_with_different_pending_id",
	TransferExistsWithDifferentUserData128:             "exists_with_different_user_data_128",
	TransferExistsWithDifferentUserData64:              "exists_with_different_user_data_64",
	TransferExistsWithDifferentUserData32:              "exists_with_different_user_data_32",
	TransferExistsWithDifferentTimeout:                 "exists_with_different_timeout",
	TransferExistsWithDifferentCode:                    "exists_with_different_code",
	TransferExists:                                     "exists",
	TransferOverflowsDebitsPending:                     "overflows_debits_pending",
	TransferOverflowsCreditsPending:                    "overflows_credits_pending",
	TransferOverflowsDebitsPosted:                      "overflows_debits_posted",
	TransferOverflowsCreditsPosted:                     "overflows_credits_posted",
	TransferOverflowsDebits:                            "overflows_debits",
	TransferOverflowsCredits:                           "overflows_credits",
	TransferOverflowsTimeout:                           "overflows_timeout",
	TransferExceedsCredits:                             "exceeds_credits",
	TransferExceedsDebits:                              "exceeds_debits",
}

func (r CreateTransferResult) String() string {
	if name, ok := transferResultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("transfer_result_%d", uint32(r))
}

func (r CreateTransferResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// LinkFailure reports whether the entry failed only because another entry of
// its linked chain did.
func (r CreateTransferResult) LinkFailure() bool {
	return r == TransferLinkedEventFailed
}

// Resolved reports whether the targeted pending transfer can no longer be
// resolved: it was posted, voided, or it expired.
func (r CreateTransferResult) Resolved() bool {
	switch r {
	case TransferPendingTransferAlreadyPosted, TransferPendingTransferAlreadyVoided, TransferPendingTransferExpired:
		return true
	}
	return false
}

// Unresolvable reports whether the targeted pending transfer does not exist
// or is not a pending transfer.
func (r CreateTransferResult) Unresolvable() bool {
	return r == TransferPendingTransferNotFound || r == TransferPendingTransferNotPending
}
