package storage

import "errors"

// ErrNotFound is returned when a wallet, project, transaction or certificate
// does not exist.
var ErrNotFound = errors.New("not found")

// ErrWalletExists is returned when creating a wallet for a user who already has one.
var ErrWalletExists = errors.New("wallet already exists")

// ErrInsufficientFunds is returned when a purchase costs more than the buyer's cash balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInsufficientCredits is returned when a purchase exceeds a project's
// available credits, or a retirement exceeds the wallet's credit balance.
var ErrInsufficientCredits = errors.New("insufficient credits")

// ErrProjectNotPurchasable is returned when a project's status does not allow sales.
var ErrProjectNotPurchasable = errors.New("project is not purchasable")

// ErrInvalidQuantity is returned for zero, negative or over-precise quantities.
var ErrInvalidQuantity = errors.New("invalid quantity")

// ErrSerialCollision is returned when a certificate serial number already
// exists. It is the only retryable failure in the engine: the caller is
// expected to mint a fresh serial and try again.
var ErrSerialCollision = errors.New("certificate serial number collision")

// ErrIssuanceFailed is returned when certificate issuance keeps colliding
// after the bounded retry budget is spent.
var ErrIssuanceFailed = errors.New("certificate issuance failed")

// ErrVersionConflict is returned when an optimistic version check failed
// because another writer got there first. Callers re-read, re-validate and
// retry.
var ErrVersionConflict = errors.New("version conflict")
