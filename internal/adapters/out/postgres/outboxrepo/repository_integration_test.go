package outboxrepo_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"fieldservice/internal/adapters/out/postgres/outboxrepo"
	"fieldservice/internal/adapters/out/postgres/pgtest"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/serviceorder"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

var baseTime = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type OutboxRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *outboxrepo.GormOutboxRepository
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = outboxrepo.NewGormOutboxRepository(suite.database.DB)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestAppendAndClaim() {
	ctx := context.Background()
	events := suite.orderEvents(3)
	suite.Require().NoError(suite.repository.Append(ctx, events))

	claimed, err := suite.repository.ClaimBatch(ctx, 2)

	suite.Require().NoError(err)
	suite.Require().Len(claimed, 2)
	suite.Less(claimed[0].ID, claimed[1].ID)
	suite.Equal(serviceorder.EventCreated, claimed[0].EventName)
	suite.Equal(events[0].AggregateID().String(), claimed[0].AggregateID)

	var payload serviceorder.EventPayload
	suite.Require().NoError(json.Unmarshal(claimed[0].Payload, &payload))
	suite.Equal(events[0].AggregateID().String(), payload.OrderID)
	suite.Equal("PENDING", payload.Status)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestMarkPublished_HidesMessages() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Append(ctx, suite.orderEvents(2)))
	claimed, err := suite.repository.ClaimBatch(ctx, 10)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.MarkPublished(ctx, []int64{claimed[0].ID}, baseTime))

	rest, err := suite.repository.ClaimBatch(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(rest, 1)
	suite.Equal(claimed[1].ID, rest[0].ID)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestMarkFailed_IncrementsAttempts() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Append(ctx, suite.orderEvents(1)))
	claimed, err := suite.repository.ClaimBatch(ctx, 1)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.MarkFailed(ctx, claimed[0].ID, errors.New("broker down")))
	suite.Require().NoError(suite.repository.MarkFailed(ctx, claimed[0].ID, errors.New("broker down")))

	again, err := suite.repository.ClaimBatch(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().Len(again, 1)
	suite.Equal(2, again[0].Attempts)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestMarkFailed_LongMultiByteCause() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Append(ctx, suite.orderEvents(1)))
	claimed, err := suite.repository.ClaimBatch(ctx, 1)
	suite.Require().NoError(err)

	cause := errors.New(strings.Repeat("a", outboxrepo.MaxErrorLength-1) + "ção falhou")
	suite.Require().NoError(suite.repository.MarkFailed(ctx, claimed[0].ID, cause))

	var lastError string
	suite.Require().NoError(suite.database.DB.
		Raw("SELECT last_error FROM outbox_messages WHERE id = ?", claimed[0].ID).
		Scan(&lastError).Error)
	suite.Equal(strings.Repeat("a", outboxrepo.MaxErrorLength-1), lastError)

	again, err := suite.repository.ClaimBatch(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().Len(again, 1)
	suite.Equal(1, again[0].Attempts)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestClaimBatch_SkipsLockedRows() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Append(ctx, suite.orderEvents(2)))

	err := suite.database.DB.Transaction(func(tx *gorm.DB) error {
		first, err := outboxrepo.NewGormOutboxRepository(tx).ClaimBatch(ctx, 1)
		suite.Require().NoError(err)
		suite.Require().Len(first, 1)

		return suite.database.DB.Transaction(func(other *gorm.DB) error {
			second, err := outboxrepo.NewGormOutboxRepository(other).ClaimBatch(ctx, 10)
			suite.Require().NoError(err)
			suite.Require().Len(second, 1)
			suite.NotEqual(first[0].ID, second[0].ID)
			return nil
		})
	})
	suite.Require().NoError(err)
}

func (suite *OutboxRepositoryIntegrationTestSuite) orderEvents(n int) []kernel.DomainEvent {
	events := make([]kernel.DomainEvent, 0, n)
	for range n {
		order, err := serviceorder.NewServiceOrder(kernel.NewUUID(), serviceorder.Details{
			ClientName: "ACME",
			Address:    "Rua das Flores, 100",
		}, nil, 0, baseTime)
		suite.Require().NoError(err)
		events = append(events, order.PullEvents()...)
	}
	return events
}

func TestOutboxRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OutboxRepositoryIntegrationTestSuite))
}
