package mocks

import (
	"encoding/json"

	"github.com/samply/golang-fhir-models/fhir-models/fhir"
)

// BundleOf wraps raw resource documents into a searchset bundle in the given order.
func BundleOf(resources ...string) *fhir.Bundle {
	entries := make([]fhir.BundleEntry, 0, len(resources))
	for _, resource := range resources {
		entries = append(entries, fhir.BundleEntry{Resource: json.RawMessage(resource)})
	}
	return &fhir.Bundle{Type: fhir.BundleTypeSearchset, Entry: entries}
}
