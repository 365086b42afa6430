package queries

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/dayline/internal/planner/domain/importing"
)

// GetImportSummaryQuery asks for the most recent import summary.
type GetImportSummaryQuery struct{}

// GetImportSummaryHandler handles the GetImportSummaryQuery.
type GetImportSummaryHandler struct {
	summaryRepo importing.SummaryRepository
}

// NewGetImportSummaryHandler creates a new GetImportSummaryHandler.
func NewGetImportSummaryHandler(summaryRepo importing.SummaryRepository) *GetImportSummaryHandler {
	return &GetImportSummaryHandler{summaryRepo: summaryRepo}
}

// Handle returns nil without an error when nothing has been imported yet.
func (h *GetImportSummaryHandler) Handle(ctx context.Context, _ GetImportSummaryQuery) (*importing.Summary, error) {
	summary, err := h.summaryRepo.Latest(ctx)
	if errors.Is(err, importing.ErrNoSummary) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
