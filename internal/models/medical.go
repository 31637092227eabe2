package models

// NotProvided is the placeholder the extraction step uses for patient
// fields that are absent from the source text.
const NotProvided = "Not provided"

// PatientIdentification holds the six patient fields the extraction step
// always populates. Unknown text fields carry the NotProvided placeholder;
// an unknown age stays null; gender is inferred from the name when the
// text does not state it.
type PatientIdentification struct {
	Name                 string `json:"name"`
	Age                  *int   `json:"age"`
	IdentificationNumber string `json:"identification_number"`
	Gender               string `json:"gender"`
	Phone                string `json:"phone"`
	Address              string `json:"address"`
}

// MedicalExtraction is the structured result of one extraction call.
// It is created fresh per call and never merged across calls.
type MedicalExtraction struct {
	Symptoms              []string              `json:"symptoms"`
	PatientInfo           PatientIdentification `json:"patient_info"`
	ReasonForConsultation string                `json:"reason_for_consultation"`
}

// DiagnosisResponse is the structured result of one diagnosis call.
type DiagnosisResponse struct {
	Diagnosis       string `json:"diagnosis"`
	TreatmentPlan   string `json:"treatment_plan"`
	Recommendations string `json:"recommendations"`
}
