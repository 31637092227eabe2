package medical

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"medextract/internal/models"
	"medextract/internal/service/ai"
)

// Service turns free text into a MedicalExtraction and an extraction into
// a DiagnosisResponse, one structured-output call each. Downstream errors
// never propagate: both calls degrade to placeholder objects that carry
// the error text.
type Service struct {
	gen ai.Generator
}

func NewService(gen ai.Generator) *Service {
	return &Service{gen: gen}
}

// Extract populates the MedicalExtraction schema from raw text.
func (s *Service) Extract(ctx context.Context, text string) models.MedicalExtraction {
	prompt := fmt.Sprintf(extractionPromptFmt, text)
	result, err := ai.Generate[models.MedicalExtraction](ctx, s.gen, "medical_extraction", extractionSchema, prompt)
	if err != nil {
		return models.MedicalExtraction{
			Symptoms: []string{fmt.Sprintf("Error extracting symptoms: %v", err)},
			PatientInfo: models.PatientIdentification{
				Name:                 models.NotProvided,
				IdentificationNumber: models.NotProvided,
				Gender:               models.NotProvided,
				Phone:                models.NotProvided,
				Address:              models.NotProvided,
			},
			ReasonForConsultation: fmt.Sprintf("Error: %v", err),
		}
	}
	if result.Symptoms == nil {
		result.Symptoms = []string{}
	}
	return result
}

// Diagnose produces diagnosis, treatment plan and recommendations for one
// extraction record.
func (s *Service) Diagnose(ctx context.Context, extraction models.MedicalExtraction) models.DiagnosisResponse {
	age := models.NotProvided
	if extraction.PatientInfo.Age != nil {
		age = strconv.Itoa(*extraction.PatientInfo.Age)
	}
	gender := extraction.PatientInfo.Gender
	if gender == "" {
		gender = models.NotProvided
	}
	prompt := fmt.Sprintf(diagnosisPromptFmt,
		strings.Join(extraction.Symptoms, ", "),
		age,
		gender,
		extraction.ReasonForConsultation,
	)
	result, err := ai.Generate[models.DiagnosisResponse](ctx, s.gen, "diagnosis_response", diagnosisSchema, prompt)
	if err != nil {
		return models.DiagnosisResponse{
			Diagnosis:       fmt.Sprintf("Error generating diagnosis: %v", err),
			TreatmentPlan:   "Unable to generate treatment plan due to error",
			Recommendations: "Please consult with a medical professional",
		}
	}
	return result
}

// Validate renders an extraction as indented JSON for presentation.
func (s *Service) Validate(extraction models.MedicalExtraction) string {
	data, err := json.MarshalIndent(extraction, "", "  ")
	if err != nil {
		return fmt.Sprintf("Validation error: %v", err)
	}
	return string(data)
}
