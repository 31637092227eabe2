package medical

// prompts.go keeps the generation prompts for the extraction and diagnosis
// calls in one place so they can be tuned without touching the service.

const extractionPromptFmt = `Analyze the following medical text and extract structured information.

Text: %s

Extract:
1. All symptoms mentioned by the patient
2. Patient identification details (name, age, ID, gender, phone, address if mentioned)
3. Brief reason for the medical consultation

IMPORTANT:
- Always include all patient_info fields even if not mentioned in the text
- Use "Not provided" for missing patient information except for gender
- For age, use null if not provided (not a string)
- For gender: If not explicitly mentioned, infer it from the patient's name (e.g., "John" -> "Male", "Maria" -> "Female"). Only use "Not provided" if the name is ambiguous or not given`

const diagnosisPromptFmt = `Based on the following structured medical information, provide a medical diagnosis, treatment plan, and recommendations.

Symptoms: %s
Patient Age: %s
Patient Gender: %s
Reason for consultation: %s

Provide a professional medical assessment based on this information.
Note: This is for educational purposes only and should not replace professional medical advice.`
