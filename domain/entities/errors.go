package entities

import "errors"

// Domain error kinds. Callers match them with errors.Is; storage failures never wrap these.
var (
	ErrNoAccount           = errors.New("no account")
	ErrAlreadyClaimedToday = errors.New("daily grant already claimed today")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidStake        = errors.New("invalid stake")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrSelfTransfer        = errors.New("cannot transfer to yourself")
	ErrNotOwner            = errors.New("offer belongs to another user")
	ErrAlreadyResolved     = errors.New("offer already resolved")
	ErrInvalidChoice       = errors.New("invalid choice")
	ErrUnknownResetScope   = errors.New("unknown reset scope")
)
