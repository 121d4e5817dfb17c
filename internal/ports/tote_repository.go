package ports

import (
	"context"

	"agv-route-service/internal/domain"
)

// Port: a boundary for retrieving Tote entities from a data source.
type ToteRepository interface {
	// Retrieve all totes available for routing.
	ListTotes(ctx context.Context) ([]*domain.Tote, error)
}
