package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	types "github.com/commercekit/go-order-api/internal/domains/orders/application/types"
	"github.com/commercekit/go-order-api/internal/domains/orders/domain"
	orderactivities "github.com/commercekit/go-order-api/internal/platform/temporal/activities/orders"
)

func placementTestEnv(t *testing.T, stage func(context.Context, types.PlaceOrderInput) (*types.StagedOrder, error), commit func(context.Context, []types.QuantityUpdate) error) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	suite := testsuite.WorkflowTestSuite{}
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterWorkflowWithOptions(OrderPlacementWorkflow, workflow.RegisterOptions{Name: OrderPlacementWorkflowName})
	env.RegisterActivityWithOptions(stage, activity.RegisterOptions{Name: orderactivities.StageOrderActivityName})
	env.RegisterActivityWithOptions(commit, activity.RegisterOptions{Name: orderactivities.CommitInventoryActivityName})
	return env
}

func TestOrderPlacementWorkflow_RunsUnderRegisteredName(t *testing.T) {
	staged := types.StagedOrder{
		Order:   &domain.Order{ID: "order-1", CustomerID: "c1"},
		Updates: []types.QuantityUpdate{{ProductID: "p1", Quantity: 6}},
	}
	var committed []types.QuantityUpdate

	env := placementTestEnv(t,
		func(_ context.Context, _ types.PlaceOrderInput) (*types.StagedOrder, error) {
			return &staged, nil
		},
		func(_ context.Context, updates []types.QuantityUpdate) error {
			committed = updates
			return nil
		},
	)

	// Execute by the registered name, the same way the API-side orchestrator
	// dispatches it.
	env.ExecuteWorkflow(OrderPlacementWorkflowName, OrderPlacementWorkflowInput{
		Command: types.PlaceOrderInput{
			CustomerID: "c1",
			Lines:      []types.LineRequest{{ProductID: "p1", Quantity: 4}},
		},
		TraceID: "trace-1",
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result domain.Order
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Equal(t, "order-1", result.ID)
	require.Equal(t, staged.Updates, committed)
}

func TestOrderPlacementWorkflow_CommitRetriesThenFails(t *testing.T) {
	staged := types.StagedOrder{
		Order:   &domain.Order{ID: "order-1", CustomerID: "c1"},
		Updates: []types.QuantityUpdate{{ProductID: "p1", Quantity: 6}},
	}
	commitCalls := 0

	env := placementTestEnv(t,
		func(_ context.Context, _ types.PlaceOrderInput) (*types.StagedOrder, error) {
			return &staged, nil
		},
		func(_ context.Context, _ []types.QuantityUpdate) error {
			commitCalls++
			return errors.New("catalog unavailable")
		},
	)

	env.ExecuteWorkflow(OrderPlacementWorkflowName, OrderPlacementWorkflowInput{
		Command: types.PlaceOrderInput{
			CustomerID: "c1",
			Lines:      []types.LineRequest{{ProductID: "p1", Quantity: 4}},
		},
	})

	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
	require.Equal(t, 5, commitCalls)
}
