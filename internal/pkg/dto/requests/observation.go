package requests

import "time"

type CreateObservation struct {
	PatientPersonnummer      string     `json:"patient_personnummer" validate:"required"`
	PractitionerPersonnummer string     `json:"practitioner_personnummer"`
	Description              string     `json:"description" validate:"required,max=1024"`
	Value                    string     `json:"value" validate:"max=256"`
	Unit                     string     `json:"unit" validate:"max=64"`
	EffectiveDateTime        *time.Time `json:"effective_date_time"`
}
