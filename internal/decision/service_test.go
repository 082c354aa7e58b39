package decision_test

//go:generate mockgen -source=ports/ports.go -destination=mocks/ports-mocks.go -package=mocks
//go:generate mockgen -source=store.go -destination=mocks/store-mocks.go -package=mocks -exclude_interfaces=Reader

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"eligibility/internal/decision"
	"eligibility/internal/decision/metrics"
	"eligibility/internal/decision/mocks"
	"eligibility/internal/decision/ports"
	"eligibility/internal/upstream"
)

const (
	clientID      = "1234-56-78-90.12.34.567890"
	correlationID = "57fe7696-6151-4ecc-ab8b-8840e3872185"
)

var today = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	accounts *mocks.MockAccountsPort
	clients  *mocks.MockClientsPort
	store    *mocks.MockStore
	metrics  *metrics.Metrics
	service  *decision.Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.accounts = mocks.NewMockAccountsPort(s.ctrl)
	s.clients = mocks.NewMockClientsPort(s.ctrl)
	s.store = mocks.NewMockStore(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = decision.NewService(s.accounts, s.clients, s.store,
		decision.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		decision.WithMetrics(s.metrics),
		decision.WithClock(func() time.Time { return today }),
	)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func request() decision.EvaluateRequest {
	return decision.EvaluateRequest{ClientID: clientID, CorrelationID: correlationID}
}

func oneAccount() []ports.Account {
	return []ports.Account{{Kind: "INTERNATIONAL", ProductID: "SB0_22291"}}
}

func adult() ports.ClientProfile {
	return ports.ClientProfile{ClientID: clientID, BirthDate: "1990-05-17"}
}

func minor() ports.ClientProfile {
	return ports.ClientProfile{ClientID: clientID, BirthDate: "2010-01-01"}
}

func saved(result decision.Result) decision.Decision {
	return decision.Decision{ClientID: clientID, CorrelationID: correlationID, Result: result, CheckedAt: today}
}

func (s *ServiceSuite) expectLookups(accounts []ports.Account, profile ports.ClientProfile) {
	gomock.InOrder(
		s.accounts.EXPECT().ClientAccounts(gomock.Any(), clientID, correlationID).Return(accounts, nil),
		s.clients.EXPECT().ClientDetail(gomock.Any(), clientID, correlationID).Return(profile, nil),
	)
}

func (s *ServiceSuite) TestEligibleWithAccountAndAdult() {
	s.expectLookups(oneAccount(), adult())
	s.store.EXPECT().Save(gomock.Any(), saved(decision.ResultEligible)).Return(nil)

	out, err := s.service.Evaluate(s.ctx, request())

	s.Require().NoError(err)
	s.True(out.Eligible)
	s.Equal([]decision.Reason{}, out.Reasons)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.DecisionOutcome.WithLabelValues("ELIGIBLE")))
}

func (s *ServiceSuite) TestNoAccount() {
	s.expectLookups([]ports.Account{}, adult())
	s.store.EXPECT().Save(gomock.Any(), saved(decision.ResultNotEligible)).Return(nil)

	out, err := s.service.Evaluate(s.ctx, request())

	s.Require().NoError(err)
	s.False(out.Eligible)
	s.Equal([]decision.Reason{decision.ReasonNoAccount}, out.Reasons)
}

func (s *ServiceSuite) TestMinor() {
	s.expectLookups(oneAccount(), minor())
	s.store.EXPECT().Save(gomock.Any(), saved(decision.ResultNotEligible)).Return(nil)

	out, err := s.service.Evaluate(s.ctx, request())

	s.Require().NoError(err)
	s.False(out.Eligible)
	s.Equal([]decision.Reason{decision.ReasonNoAdult}, out.Reasons)
}

func (s *ServiceSuite) TestNoAccountAndMinor() {
	s.expectLookups([]ports.Account{}, minor())
	s.store.EXPECT().Save(gomock.Any(), saved(decision.ResultNotEligible)).Return(nil)

	out, err := s.service.Evaluate(s.ctx, request())

	s.Require().NoError(err)
	s.False(out.Eligible)
	s.ElementsMatch([]decision.Reason{decision.ReasonNoAccount, decision.ReasonNoAdult}, out.Reasons)
}

func (s *ServiceSuite) TestAccountsFailureSkipsClientsAndRecordsError() {
	cause := upstream.InternalError(upstream.APIAccounts, errors.New("dial tcp: connection refused"))
	s.accounts.EXPECT().ClientAccounts(gomock.Any(), clientID, correlationID).Return(nil, cause)
	s.clients.EXPECT().ClientDetail(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	s.store.EXPECT().Save(gomock.Any(), saved(decision.ResultError)).Return(nil)

	out, err := s.service.Evaluate(s.ctx, request())

	s.Nil(out)
	var berr *decision.BusinessError
	s.Require().ErrorAs(err, &berr)
	s.Equal(correlationID, berr.CorrelationID)
	s.Equal("Internal error when calling Accounts API: dial tcp: connection refused", berr.Message)
	s.ErrorIs(err, cause)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.DecisionOutcome.WithLabelValues("ERROR")))
}

func (s *ServiceSuite) TestClientsFailureRecordsError() {
	cause := upstream.StatusError(upstream.APIClients, 404, nil)
	gomock.InOrder(
		s.accounts.EXPECT().ClientAccounts(gomock.Any(), clientID, correlationID).Return(oneAccount(), nil),
		s.clients.EXPECT().ClientDetail(gomock.Any(), clientID, correlationID).Return(ports.ClientProfile{}, cause),
	)
	s.store.EXPECT().Save(gomock.Any(), saved(decision.ResultError)).Return(nil)

	_, err := s.service.Evaluate(s.ctx, request())

	var berr *decision.BusinessError
	s.Require().ErrorAs(err, &berr)
	s.Equal("Clients server error when calling Clients API: 404 NOT_FOUND", berr.Error())
	var uerr *upstream.Error
	s.Require().ErrorAs(err, &uerr)
	s.Equal(404, uerr.StatusCode)
}

func (s *ServiceSuite) TestInvalidBirthDateRecordsError() {
	s.expectLookups(oneAccount(), ports.ClientProfile{BirthDate: "17.05.1990"})
	s.store.EXPECT().Save(gomock.Any(), saved(decision.ResultError)).Return(nil)

	_, err := s.service.Evaluate(s.ctx, request())

	var berr *decision.BusinessError
	s.Require().ErrorAs(err, &berr)
	s.Contains(berr.Message, "invalid birth date")
}

func (s *ServiceSuite) TestPersistenceFailureBecomesError() {
	s.expectLookups(oneAccount(), adult())
	gomock.InOrder(
		s.store.EXPECT().Save(gomock.Any(), saved(decision.ResultEligible)).Return(errors.New("connection lost")),
		s.store.EXPECT().Save(gomock.Any(), saved(decision.ResultError)).Return(nil),
	)

	out, err := s.service.Evaluate(s.ctx, request())

	s.Nil(out)
	var berr *decision.BusinessError
	s.Require().ErrorAs(err, &berr)
	s.Contains(berr.Message, "connection lost")
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.PersistFailures))
}

func (s *ServiceSuite) TestErrorRowFailureStillReturnsBusinessError() {
	s.accounts.EXPECT().ClientAccounts(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
	s.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	_, err := s.service.Evaluate(s.ctx, request())

	var berr *decision.BusinessError
	s.Require().ErrorAs(err, &berr)
	s.Equal("boom", berr.Message)
}

func (s *ServiceSuite) TestPanicInCollaboratorRecordsError() {
	s.accounts.EXPECT().ClientAccounts(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, string, string) ([]ports.Account, error) {
			panic("nil map")
		})
	s.store.EXPECT().Save(gomock.Any(), saved(decision.ResultError)).Return(nil)

	var err error
	s.NotPanics(func() {
		_, err = s.service.Evaluate(s.ctx, request())
	})

	var berr *decision.BusinessError
	s.Require().ErrorAs(err, &berr)
	s.Contains(berr.Message, "nil map")
}

func (s *ServiceSuite) TestErrorRowSurvivesCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	s.accounts.EXPECT().ClientAccounts(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, string, string) ([]ports.Account, error) {
			cancel()
			return nil, context.Canceled
		})
	s.store.EXPECT().Save(gomock.Any(), saved(decision.ResultError)).DoAndReturn(
		func(ctx context.Context, _ decision.Decision) error {
			return ctx.Err()
		})

	_, err := s.service.Evaluate(ctx, request())

	s.Require().Error(err)
	s.Equal(float64(0), testutil.ToFloat64(s.metrics.PersistFailures))
}

func (s *ServiceSuite) TestRepeatedCallsAppendEachTime() {
	for range 3 {
		s.expectLookups(oneAccount(), adult())
	}
	s.store.EXPECT().Save(gomock.Any(), saved(decision.ResultEligible)).Return(nil).Times(3)

	for range 3 {
		_, err := s.service.Evaluate(s.ctx, request())
		s.Require().NoError(err)
	}
}

func (s *ServiceSuite) TestAgeBoundary() {
	exactly18 := today.AddDate(-18, 0, 0).Format("2006-01-02")
	s.expectLookups(oneAccount(), ports.ClientProfile{BirthDate: exactly18})
	s.store.EXPECT().Save(gomock.Any(), saved(decision.ResultEligible)).Return(nil)

	out, err := s.service.Evaluate(s.ctx, request())
	s.Require().NoError(err)
	s.True(out.Eligible)

	dayShort := today.AddDate(-18, 0, 1).Format("2006-01-02")
	s.expectLookups(oneAccount(), ports.ClientProfile{BirthDate: dayShort})
	s.store.EXPECT().Save(gomock.Any(), saved(decision.ResultNotEligible)).Return(nil)

	out, err = s.service.Evaluate(s.ctx, request())
	s.Require().NoError(err)
	s.False(out.Eligible)
}
