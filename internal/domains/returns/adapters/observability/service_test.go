package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	returntypes "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/application/types"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/ports"
)

type stubService struct {
	createErr error
}

func (s stubService) CreateReturn(_ context.Context, input returntypes.CreateReturnInput) (*domain.ReturnRequest, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &domain.ReturnRequest{RMANumber: "RMA-ABC12345", Method: domain.Method(input.Method), Status: domain.StatusApproved}, nil
}

func (stubService) GetReturn(context.Context, string) (*domain.ReturnRequest, error) {
	return nil, ports.ErrNotFound
}

func (stubService) CustomerReturns(context.Context, string) ([]*domain.ReturnRequest, error) {
	return []*domain.ReturnRequest{{RMANumber: "RMA-ABC12345"}}, nil
}

func (stubService) UpdateStatus(_ context.Context, input returntypes.UpdateStatusInput) (*domain.ReturnRequest, error) {
	return &domain.ReturnRequest{RMANumber: input.RMANumber, Status: domain.Status(input.Status)}, nil
}

func newInstrumented(t *testing.T, inner ports.Service) (ports.Service, *tracetest.SpanRecorder, *sdkmetric.ManualReader, *bytes.Buffer) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	svc := New(inner, WithTracer(tp.Tracer("test")), WithMeter(mp.Meter("test")), WithLogger(logger))
	return svc, recorder, reader, &logs
}

func counterTotal(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var total int64
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func TestCreateReturn_RecordsSpanMetricAndLog(t *testing.T) {
	svc, recorder, reader, logs := newInstrumented(t, stubService{})

	_, err := svc.CreateReturn(context.Background(), returntypes.CreateReturnInput{OrderNumber: "ORD-2024-001", Method: string(domain.MethodDropOffStore)})
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "ReturnService.CreateReturn", spans[0].Name())
	assert.EqualValues(t, 1, counterTotal(t, reader, "returns.service.created"))
	assert.Contains(t, logs.String(), "return created")
}

func TestCreateReturn_RecordsErrorOnSpan(t *testing.T) {
	svc, recorder, reader, logs := newInstrumented(t, stubService{createErr: errors.New("boom")})

	_, err := svc.CreateReturn(context.Background(), returntypes.CreateReturnInput{})
	require.EqualError(t, err, "boom")

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Zero(t, counterTotal(t, reader, "returns.service.created"))
	assert.Contains(t, logs.String(), "failed to create return")
}

func TestUpdateStatus_CountsStatusChanges(t *testing.T) {
	svc, _, reader, _ := newInstrumented(t, stubService{})

	_, err := svc.UpdateStatus(context.Background(), returntypes.UpdateStatusInput{RMANumber: "RMA-ABC12345", Status: "RECEIVED"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, counterTotal(t, reader, "returns.service.status_updated"))

	_, err = svc.GetReturn(context.Background(), "RMA-00000000")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
