package identifiers

import (
	"context"
	"net/url"
	"strings"

	"clinical-service/internal/app/contracts"
	"clinical-service/internal/app/models"
	"clinical-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
)

type resourceID struct {
	ResourceType string `json:"resourceType"`
	ID           string `json:"id"`
}

type identifierSearchStrategy struct {
	Gateway contracts.FhirGateway
}

// NewIdentifierSearchStrategy matches the identifier against the resource's
// identifier search parameter. The first entry the server returns wins; a
// failed search aborts resolution.
func NewIdentifierSearchStrategy(gateway contracts.FhirGateway) contracts.ResolutionStrategy {
	return &identifierSearchStrategy{Gateway: gateway}
}

func (s *identifierSearchStrategy) Name() string {
	return constvars.ResolutionStrategyIdentifierSearch
}

func (s *identifierSearchStrategy) Lookup(ctx context.Context, kind models.ResourceKind, identifier string) (models.Resolution, error) {
	params := url.Values{}
	params.Set(constvars.FhirSearchParamIdentifier, escapeSearchValue(identifier))

	bundle, err := s.Gateway.Search(ctx, kind.String(), params)
	if err != nil {
		return models.Unresolved(s.Name()), err
	}

	for _, entry := range bundle.Entry {
		var resource resourceID
		if err := json.Unmarshal(entry.Resource, &resource); err != nil {
			continue
		}
		if resource.ResourceType != kind.String() || resource.ID == "" {
			continue
		}
		return models.Resolved(s.Name(), resource.ID), nil
	}
	return models.Unresolved(s.Name()), nil
}

// searchValueEscaper backslash-escapes the characters FHIR search treats as
// separators, so an identifier is always matched as a single exact value.
var searchValueEscaper = strings.NewReplacer(
	`\`, `\\`,
	`,`, `\,`,
	`|`, `\|`,
	`$`, `\$`,
)

func escapeSearchValue(value string) string {
	return searchValueEscaper.Replace(value)
}

type directIDStrategy struct {
	Gateway contracts.FhirGateway
}

// NewDirectIDStrategy treats the identifier as a FHIR id. Any read failure is
// a miss.
func NewDirectIDStrategy(gateway contracts.FhirGateway) contracts.ResolutionStrategy {
	return &directIDStrategy{Gateway: gateway}
}

func (s *directIDStrategy) Name() string {
	return constvars.ResolutionStrategyDirectID
}

func (s *directIDStrategy) Lookup(ctx context.Context, kind models.ResourceKind, identifier string) (models.Resolution, error) {
	body, err := s.Gateway.Read(ctx, kind.String(), identifier)
	if err != nil {
		return models.Unresolved(s.Name()), nil
	}

	var resource resourceID
	if err := json.Unmarshal(body, &resource); err == nil && resource.ID != "" {
		return models.Resolved(s.Name(), resource.ID), nil
	}
	return models.Resolved(s.Name(), identifier), nil
}
