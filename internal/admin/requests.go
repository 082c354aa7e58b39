package admin

import (
	"net/url"
	"strings"
	"time"

	"eligibility/internal/decision"
	dErrors "eligibility/pkg/domain-errors"
	audit "eligibility/pkg/platform/audit"
	pkgstrings "eligibility/pkg/platform/strings"
)

// auditFilter is one of the four audit log queries. Exactly one is set.
type auditFilter struct {
	correlationID string
	requestIDs    []string
	failed        bool
	apiName       audit.APIName
	from, to      time.Time
}

func parseAuditFilter(q url.Values) (auditFilter, error) {
	var f auditFilter
	set := 0

	if v := strings.TrimSpace(q.Get("correlationId")); v != "" {
		f.correlationID = v
		set++
	}
	if v := q.Get("requestId"); v != "" {
		f.requestIDs = pkgstrings.SplitList(v)
		if len(f.requestIDs) == 0 {
			return f, dErrors.New(dErrors.CodeValidation, "requestId must list at least one id")
		}
		set++
	}
	if v := q.Get("failed"); v != "" {
		if v != "true" {
			return f, dErrors.New(dErrors.CodeValidation, "failed only accepts 'true'")
		}
		f.failed = true
		set++
	}
	if v := strings.TrimSpace(q.Get("apiName")); v != "" {
		api, err := parseAPIName(v)
		if err != nil {
			return f, err
		}
		from, err := parseTime(q, "from")
		if err != nil {
			return f, err
		}
		to, err := parseTime(q, "to")
		if err != nil {
			return f, err
		}
		if to.Before(from) {
			return f, dErrors.New(dErrors.CodeValidation, "to must not be before from")
		}
		f.apiName, f.from, f.to = api, from, to
		set++
	}

	switch set {
	case 0:
		return f, dErrors.New(dErrors.CodeValidation, "one of correlationId, requestId, failed or apiName is required")
	case 1:
		return f, nil
	default:
		return f, dErrors.New(dErrors.CodeValidation, "only one audit log filter may be given")
	}
}

// decisionFilter is one of the three decision queries. Exactly one is set.
type decisionFilter struct {
	clientID      string
	correlationID string
	results       []decision.Result
}

func parseDecisionFilter(q url.Values) (decisionFilter, error) {
	var f decisionFilter
	set := 0

	if v := strings.TrimSpace(q.Get("clientId")); v != "" {
		f.clientID = v
		set++
	}
	if v := strings.TrimSpace(q.Get("correlationId")); v != "" {
		f.correlationID = v
		set++
	}
	if v := q.Get("result"); v != "" {
		for _, s := range pkgstrings.SplitList(v) {
			r, ok := decision.ParseResult(strings.ToUpper(s))
			if !ok {
				return f, dErrors.New(dErrors.CodeValidation, "unknown result "+s)
			}
			f.results = append(f.results, r)
		}
		if len(f.results) == 0 {
			return f, dErrors.New(dErrors.CodeValidation, "result must list at least one value")
		}
		set++
	}

	switch set {
	case 0:
		return f, dErrors.New(dErrors.CodeValidation, "one of clientId, correlationId or result is required")
	case 1:
		return f, nil
	default:
		return f, dErrors.New(dErrors.CodeValidation, "only one decision filter may be given")
	}
}

func parseAPIName(v string) (audit.APIName, error) {
	for _, api := range []audit.APIName{
		audit.APIApplicationServer,
		audit.APIAccountsServer,
		audit.APIClientsServer,
		audit.APIUnknown,
	} {
		if strings.EqualFold(v, string(api)) {
			return api, nil
		}
	}
	return "", dErrors.New(dErrors.CodeValidation, "unknown apiName "+v)
}

func parseTime(q url.Values, key string) (time.Time, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return time.Time{}, dErrors.New(dErrors.CodeValidation, key+" is required with apiName")
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, dErrors.Wrap(err, dErrors.CodeValidation, key+" must be an RFC3339 timestamp")
	}
	return t, nil
}
