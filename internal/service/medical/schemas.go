package medical

import "github.com/sashabaranov/go-openai/jsonschema"

var extractionSchema = &jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"symptoms": {
			Type:        jsonschema.Array,
			Description: "List of symptoms mentioned by the patient",
			Items:       &jsonschema.Definition{Type: jsonschema.String},
		},
		"patient_info": {
			Type:        jsonschema.Object,
			Description: "Patient identification information",
			Properties: map[string]jsonschema.Definition{
				"name":                  {Type: jsonschema.String, Description: "Patient's full name"},
				"age":                   {Type: jsonschema.Integer, Description: "Patient's age, null when not provided"},
				"identification_number": {Type: jsonschema.String, Description: "Patient's ID number"},
				"gender":                {Type: jsonschema.String, Description: "Patient's gender"},
				"phone":                 {Type: jsonschema.String, Description: "Patient's phone number"},
				"address":               {Type: jsonschema.String, Description: "Patient's address"},
			},
			Required: []string{"name", "identification_number", "gender", "phone", "address"},
		},
		"reason_for_consultation": {
			Type:        jsonschema.String,
			Description: "Brief reason for the medical consultation",
		},
	},
	Required: []string{"symptoms", "patient_info", "reason_for_consultation"},
}

var diagnosisSchema = &jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"diagnosis":       {Type: jsonschema.String, Description: "Medical diagnosis based on symptoms"},
		"treatment_plan":  {Type: jsonschema.String, Description: "Recommended treatment plan"},
		"recommendations": {Type: jsonschema.String, Description: "Additional medical recommendations"},
	},
	Required: []string{"diagnosis", "treatment_plan", "recommendations"},
}
