package domain

import "errors"

var (
	// ErrWalletNotFound is thrown when an operation targets a wallet id that
	// is not in the store.
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrMissingNameOrAddress is thrown when creating a wallet without a name
	// or an address.
	ErrMissingNameOrAddress = errors.New("name and address are required")
	// ErrNameTooLong is thrown when a wallet name exceeds the max length.
	ErrNameTooLong = errors.New("name must be less than 50 characters")
	// ErrDuplicateAddress is thrown when creating a wallet with an address
	// already tracked by another wallet.
	ErrDuplicateAddress = errors.New("a wallet with this address already exists")
	// ErrDuplicateName is thrown when renaming or creating a wallet with a
	// name already taken by another wallet.
	ErrDuplicateName = errors.New("a wallet with this name already exists")
	// ErrInvalidAddress is thrown when the given string is not a valid
	// Bitcoin address.
	ErrInvalidAddress = errors.New("invalid bitcoin address format")
)
