package storage

// LedgerStore is the surface the credit transaction engine depends on: reads
// for validation plus the two atomic executors.
type LedgerStore interface {
	WalletStore
	ProjectReader
	TransactionReader
	CertificateReader
	LedgerExecutor
}

// ApiStore defines the complete set of operations needed by the HTTP API.
// Components should depend on the more granular interfaces instead of this one.
type ApiStore interface {
	WalletStore
	ProjectStore
	TransactionReader
	CertificateReader
	LedgerExecutor
}

// Storage defines the root interface for the entire data layer.
type Storage interface {
	ApiStore
}
