package mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"clinical-service/internal/pkg/constvars"
	"clinical-service/internal/pkg/exceptions"

	"github.com/samply/golang-fhir-models/fhir-models/fhir"
)

type storedResource struct {
	id         string
	identifier string
	patientID  string
	body       []byte
}

// MemoryGateway is an in-memory FHIR backend supporting identifier and
// patient searches, reads, and creates with sequential ids.
type MemoryGateway struct {
	mu        sync.Mutex
	resources map[string][]storedResource
	sequence  int
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{resources: make(map[string][]storedResource)}
}

func (g *MemoryGateway) AddPatient(id, personnummer string) {
	g.add(constvars.ResourcePatient, id, personnummer)
}

func (g *MemoryGateway) AddPractitioner(id, personnummer string) {
	g.add(constvars.ResourcePractitioner, id, personnummer)
}

func (g *MemoryGateway) add(resourceType, id, identifier string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	body := fmt.Sprintf(`{"resourceType":%q,"id":%q,"identifier":[{"value":%q}]}`, resourceType, id, identifier)
	g.resources[resourceType] = append(g.resources[resourceType], storedResource{
		id:         id,
		identifier: identifier,
		body:       []byte(body),
	})
}

func (g *MemoryGateway) Search(ctx context.Context, resourceType string, params url.Values) (*fhir.Bundle, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	entries := make([]fhir.BundleEntry, 0)
	for _, resource := range g.resources[resourceType] {
		if identifier := params.Get(constvars.FhirSearchParamIdentifier); identifier != "" && resource.identifier != identifier {
			continue
		}
		if patientID := params.Get(constvars.FhirSearchParamPatient); patientID != "" && resource.patientID != patientID {
			continue
		}
		entries = append(entries, fhir.BundleEntry{Resource: json.RawMessage(resource.body)})
	}
	return &fhir.Bundle{Type: fhir.BundleTypeSearchset, Entry: entries}, nil
}

func (g *MemoryGateway) Read(ctx context.Context, resourceType, id string) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, resource := range g.resources[resourceType] {
		if resource.id == id {
			return resource.body, nil
		}
	}
	return nil, exceptions.ErrFHIRResourceNotFound(nil, resourceType, id)
}

func (g *MemoryGateway) Create(ctx context.Context, resourceType string, resource any) (string, error) {
	raw, err := json.Marshal(resource)
	if err != nil {
		return "", exceptions.ErrCannotMarshalJSON(err)
	}

	var document map[string]any
	if err := json.Unmarshal(raw, &document); err != nil {
		return "", exceptions.ErrCannotMarshalJSON(err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.sequence++
	id := fmt.Sprintf("%s-%d", strings.ToLower(resourceType), g.sequence)
	document["id"] = id

	body, err := json.Marshal(document)
	if err != nil {
		return "", exceptions.ErrCannotMarshalJSON(err)
	}

	g.resources[resourceType] = append(g.resources[resourceType], storedResource{
		id:        id,
		patientID: subjectPatientID(document),
		body:      body,
	})
	return id, nil
}

func subjectPatientID(document map[string]any) string {
	subject, ok := document["subject"].(map[string]any)
	if !ok {
		return ""
	}
	reference, _ := subject["reference"].(string)
	return strings.TrimPrefix(reference, constvars.ResourcePatient+"/")
}
