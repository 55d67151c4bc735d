package ports

import (
	"context"

	returntypes "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/application/types"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
)

// WorkflowOrchestrator exposes durable workflow operations required by the returns context.
type WorkflowOrchestrator interface {
	CreateReturn(ctx context.Context, input returntypes.CreateReturnInput) (*domain.ReturnRequest, error)
}
