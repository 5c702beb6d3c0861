package remote

// Provider bundles the four ports a full data backend implements.
type Provider interface {
	BudgetFetcher
	BudgetPersister
	TransactionFetcher
	TransactionPersister
}
