package models

import (
	"fmt"

	"clinical-service/internal/pkg/constvars"
)

// ResourceKind is a FHIR resource type that can be addressed by personnummer.
type ResourceKind string

const (
	KindPatient      ResourceKind = constvars.ResourcePatient
	KindPractitioner ResourceKind = constvars.ResourcePractitioner
)

func (k ResourceKind) String() string {
	return string(k)
}

func (k ResourceKind) Valid() bool {
	return k == KindPatient || k == KindPractitioner
}

// ResolvedReference points at a FHIR resource by its server-assigned id.
// It is computed per request and never cached.
type ResolvedReference struct {
	Kind ResourceKind
	ID   string
}

// Reference renders the literal reference, e.g. "Patient/123".
func (r ResolvedReference) Reference() string {
	return fmt.Sprintf("%s/%s", r.Kind, r.ID)
}

// Resolution is the tagged result of a single resolution strategy.
type Resolution struct {
	ID       string
	Found    bool
	Strategy string
}

func Resolved(strategy, id string) Resolution {
	return Resolution{ID: id, Found: true, Strategy: strategy}
}

func Unresolved(strategy string) Resolution {
	return Resolution{Strategy: strategy}
}
