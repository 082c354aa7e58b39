package decision

import "time"

// Result is the persisted outcome of one evaluation.
type Result string

const (
	ResultEligible    Result = "ELIGIBLE"
	ResultNotEligible Result = "NOT_ELIGIBLE"
	ResultError       Result = "ERROR"
)

// ParseResult validates a result name.
func ParseResult(s string) (Result, bool) {
	switch r := Result(s); r {
	case ResultEligible, ResultNotEligible, ResultError:
		return r, true
	}
	return "", false
}

// Reason explains a NOT_ELIGIBLE outcome.
type Reason string

const (
	ReasonNoAccount Reason = "NO_ACCOUNT"
	ReasonNoAdult   Reason = "NO_ADULT"
)

// Stage marks progress through one evaluation. Logged, not persisted.
type Stage string

const (
	StageStarted         Stage = "STARTED"
	StageAccountsFetched Stage = "ACCOUNTS_FETCHED"
	StageDetailFetched   Stage = "DETAIL_FETCHED"
	StageDecided         Stage = "DECIDED"
	StageErrored         Stage = "ERRORED"
)

// Decision is one appended row of the decision log.
type Decision struct {
	ClientID      string
	CorrelationID string
	Result        Result
	CheckedAt     time.Time
}

// NewDecision builds a Decision. A zero checkedAt is replaced with the
// current time.
func NewDecision(clientID, correlationID string, result Result, checkedAt time.Time) Decision {
	if checkedAt.IsZero() {
		checkedAt = time.Now()
	}
	return Decision{
		ClientID:      clientID,
		CorrelationID: correlationID,
		Result:        result,
		CheckedAt:     checkedAt,
	}
}

// EvaluateRequest identifies the client to evaluate.
type EvaluateRequest struct {
	ClientID      string
	CorrelationID string
}

// Outcome is what the caller gets back. Reasons is empty, not nil, when
// eligible.
type Outcome struct {
	Eligible bool
	Reasons  []Reason
}

// Result maps the outcome to its persisted form.
func (o Outcome) Result() Result {
	if o.Eligible {
		return ResultEligible
	}
	return ResultNotEligible
}
