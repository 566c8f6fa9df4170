package requests

import "time"

type CreateCondition struct {
	PatientPersonnummer      string     `json:"patient_personnummer" validate:"required"`
	PractitionerPersonnummer string     `json:"practitioner_personnummer"`
	Description              string     `json:"description" validate:"required,max=1024"`
	RecordedDate             *time.Time `json:"recorded_date"`
}
