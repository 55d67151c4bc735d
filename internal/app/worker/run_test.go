package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	"github.com/Apurer/go-gin-returns-portal/internal/app/stores"
	returntypes "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/application/types"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
	returnworkflows "github.com/Apurer/go-gin-returns-portal/internal/platform/temporal/workflows/returns"
)

func seededStores(t *testing.T) stores.Set {
	t.Helper()
	set := stores.New(nil, nil, stores.Options{})
	require.NoError(t, set.Seed(context.Background(), time.Now()))
	return set
}

func TestRegister_RunsReturnCreationWorkflow(t *testing.T) {
	set := seededStores(t)
	activities, err := NewActivities(Config{
		LabelBaseURL:     "https://labels.example.com/",
		ReturnWindowDays: 90,
	}, set, nil)
	require.NoError(t, err)

	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	Register(env, activities)

	env.ExecuteWorkflow(returnworkflows.ReturnCreationWorkflowName, returnworkflows.ReturnCreationWorkflowInput{
		Command: returntypes.CreateReturnInput{
			CustomerID:  "CUST001",
			OrderNumber: "ORD-2024-001",
			Reason:      string(domain.ReasonDefective),
			Method:      string(domain.MethodShipToWarehouse),
			Items:       []returntypes.ReturnItemInput{{OrderItemID: 1, Quantity: 1}},
		},
	})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var created domain.ReturnRequest
	require.NoError(t, env.GetWorkflowResult(&created))
	assert.Equal(t, "ORD-2024-001", created.OrderNumber)
	assert.NotEmpty(t, created.TrackingNumber)

	stored, err := set.Returns.GetByRMA(context.Background(), created.RMANumber)
	require.NoError(t, err)
	assert.Equal(t, "CUST001", stored.CustomerID)
}

func TestNewActivities_RejectsBadLabelURL(t *testing.T) {
	_, err := NewActivities(Config{LabelBaseURL: "labels", ReturnWindowDays: 90}, seededStores(t), nil)
	require.Error(t, err)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://shipping.homedepot.com/labels/", cfg.LabelBaseURL)
	assert.Equal(t, 5*time.Second, cfg.CarrierTimeout)
	assert.Equal(t, 90*24*time.Hour, cfg.ReturnWindow())
}

func TestLoadConfig_RejectsNonPositiveWindow(t *testing.T) {
	t.Setenv("RETURN_WINDOW_DAYS", "0")
	_, err := LoadConfig()
	require.Error(t, err)
}
