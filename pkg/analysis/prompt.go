package analysis

import "fmt"

const systemPrompt = `You are an expert resume reviewer and ATS (applicant tracking system) specialist.
You evaluate how well a candidate's resume matches a specific job description.
Base all reasoning only on the provided text; do not assume experience that is not explicitly mentioned.
Return only valid JSON. Do not include explanations, markdown, or text before or after the JSON.`

const userPromptFormat = `Resume (JSON document) between the markers:
<<<
%s
>>>

Job description:
<<<
%s
>>>

Return a single JSON object with exactly these fields:
{
  "score": number (0-100, overall match),
  "keywordMatch": number (0-100, share of the job's keywords covered),
  "missingKeywords": [string],
  "suggestions": [string],
  "strengths": [string],
  "improvements": [string]
}`

func buildUserPrompt(resumeJSON, jobDescription string) string {
	return fmt.Sprintf(userPromptFormat, resumeJSON, jobDescription)
}
