package requests

import "time"

type CreateEncounter struct {
	PatientPersonnummer      string     `json:"patient_personnummer" validate:"required"`
	PractitionerPersonnummer string     `json:"practitioner_personnummer"`
	StartTime                *time.Time `json:"start_time"`
	EndTime                  *time.Time `json:"end_time"`
}
