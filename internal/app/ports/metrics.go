package ports

// CareMetrics counts action outcomes for the ops KPI endpoint.
type CareMetrics interface {
	RecordSuccess(kind string)
	RecordRejected(kind string)
	RecordFailure()
}
