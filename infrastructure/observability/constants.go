package observability

// MetricPrefix namespaces every exported metric
const MetricPrefix = "coinbot"

// Label keys
const (
	LabelGame            = "game"
	LabelOutcome         = "outcome"
	LabelResult          = "result"
	LabelTransactionType = "transaction_type"
	LabelCommand         = "command"
)

// Result label values
const (
	ResultWon       = "won"
	ResultLost      = "lost"
	ResultForfeited = "forfeited"
)
