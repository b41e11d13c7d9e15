package handler

// Handlers groups the HTTP handlers the router mounts.
type Handlers struct {
	FraudReport *FraudReportHandler
	Complaint   *ComplaintHandler
	Health      *HealthHandler
}
