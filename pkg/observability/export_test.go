package observability

// Internals exercised by the external test package.
var (
	ResourceAttributes = resourceAttributes
	SelectSampler      = selectSampler
)
