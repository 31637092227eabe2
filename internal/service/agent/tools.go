package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"medextract/internal/models"
	"medextract/internal/service/medical"
)

// medicalTools builds the tool set the medical specialist works with:
// extraction, diagnosis and validation, all backed by the medical service.
func medicalTools(svc *medical.Service) []tool.BaseTool {
	return []tool.BaseTool{
		extractTool(svc),
		diagnoseTool(svc),
		validateTool(svc),
	}
}

type extractParams struct {
	Text string `json:"text"`
}

func extractTool(svc *medical.Service) tool.InvokableTool {
	info := &schema.ToolInfo{
		Name: "extract_medical_information",
		Desc: "Extract structured medical information (symptoms, patient identification, reason for consultation) from free text. Returns a JSON object.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"text": {
				Desc:     "Medical free text to extract information from",
				Type:     schema.String,
				Required: true,
			},
		}),
	}
	return utils.NewTool(info, func(ctx context.Context, params *extractParams) (string, error) {
		if params == nil || strings.TrimSpace(params.Text) == "" {
			return "", errors.New("text must not be empty")
		}
		extraction := svc.Extract(ctx, params.Text)
		data, err := json.Marshal(extraction)
		if err != nil {
			return "", fmt.Errorf("marshal extraction: %w", err)
		}
		return string(data), nil
	})
}

type diagnoseParams struct {
	ExtractionJSON string `json:"extraction_json"`
}

func diagnoseTool(svc *medical.Service) tool.InvokableTool {
	info := &schema.ToolInfo{
		Name: "generate_diagnosis",
		Desc: "Generate a medical diagnosis, treatment plan and recommendations from a previously extracted medical information JSON object.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"extraction_json": {
				Desc:     "JSON object returned by extract_medical_information",
				Type:     schema.String,
				Required: true,
			},
		}),
	}
	return utils.NewTool(info, func(ctx context.Context, params *diagnoseParams) (string, error) {
		extraction, err := decodeExtraction(params.ExtractionJSON)
		if err != nil {
			return "", err
		}
		diagnosis := svc.Diagnose(ctx, extraction)
		data, err := json.Marshal(diagnosis)
		if err != nil {
			return "", fmt.Errorf("marshal diagnosis: %w", err)
		}
		return string(data), nil
	})
}

type validateParams struct {
	ExtractionJSON string `json:"extraction_json"`
}

func validateTool(svc *medical.Service) tool.InvokableTool {
	info := &schema.ToolInfo{
		Name: "validate_medical_extraction",
		Desc: "Validate and format a medical extraction JSON object for presentation.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"extraction_json": {
				Desc:     "JSON object returned by extract_medical_information",
				Type:     schema.String,
				Required: true,
			},
		}),
	}
	return utils.NewTool(info, func(ctx context.Context, params *validateParams) (string, error) {
		extraction, err := decodeExtraction(params.ExtractionJSON)
		if err != nil {
			return "", err
		}
		return svc.Validate(extraction), nil
	})
}

func decodeExtraction(raw string) (models.MedicalExtraction, error) {
	var extraction models.MedicalExtraction
	if strings.TrimSpace(raw) == "" {
		return extraction, errors.New("extraction_json must not be empty")
	}
	if err := json.Unmarshal([]byte(raw), &extraction); err != nil {
		return extraction, fmt.Errorf("decode extraction_json: %w", err)
	}
	return extraction, nil
}
