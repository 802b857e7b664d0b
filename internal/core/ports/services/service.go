package services

// ServiceContainer bundles the use-case interfaces handed to the handler
// layer, so route registration takes one dependency instead of many.
type ServiceContainer struct {
	Account     AccountSvcFacade
	Transaction TransactionSvcFacade
}
