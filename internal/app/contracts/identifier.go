package contracts

import (
	"context"

	"clinical-service/internal/app/models"
)

type IdentifierResolver interface {
	Resolve(ctx context.Context, kind models.ResourceKind, identifier string) (models.ResolvedReference, error)
	ResolveOptional(ctx context.Context, kind models.ResourceKind, identifier string) (models.ResolvedReference, bool)
}

// ResolutionStrategy looks up an identifier one way. A miss is reported as an
// unresolved Resolution; an error aborts the whole resolution.
type ResolutionStrategy interface {
	Name() string
	Lookup(ctx context.Context, kind models.ResourceKind, identifier string) (models.Resolution, error)
}
