package services

import (
	"fmt"
	"regexp"
	"strconv"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildInterviewPrompt creates the evaluation prompt for a transcribed
// interview answer. The "Technical Score (Estimate):" label is load-bearing:
// ParseTechnicalScore matches on it, so the two must change together.
func (pb *PromptBuilder) BuildInterviewPrompt(question, answer, profession, grade string) string {
	return fmt.Sprintf(`Analyze the following interview answer based on the provided question, profession, and grade level.

**Profession:** %s
**Grade Level:** %s
**Interview Question:**
"%s"

**Candidate's Answer (Transcribed Audio):**
"%s"

**Instructions for AI Analysis:**
Act as an experienced IT interviewer or technical hiring manager for the specified role and level. Evaluate the candidate's answer based on the following criteria:
1. **Technical Accuracy:** Is the information correct and technically sound for the given %s (%s) role?
2. **Relevance:** Does the answer directly address the question asked?
3. **Clarity and Conciseness:** Is the answer easy to understand? Does it avoid unnecessary jargon or rambling?
4. **Completeness:** Does the answer cover the key aspects expected for this question at a %s level? Mention any missing key points.
5. **Structure:** Is the answer well-organized?

**Output Format:**
Provide feedback in the following structure:
**Overall Assessment:** [Provide a brief, 1-2 sentence summary of the answer's quality.]
**Strengths:**
- [List specific strengths, e.g., "Good explanation of X concept."]
**Areas for Improvement:**
- [List specific weaknesses or areas needing more detail/clarity.]
- [Suggest specific ways to improve the answer.]
**Technical Score (Estimate):** [Provide an estimated score from 1.0 (Poor) to 5.0 (Excellent) based ONLY on the technical content and clarity of this single answer, considering the role/level.]

**Important:** Focus solely on the provided question and answer. Be constructive and provide actionable feedback. If the answer is completely irrelevant or nonsensical, state that clearly. Do not invent information not present in the answer.`,
		profession, grade, question, answer, profession, grade, grade)
}

// BuildCVPrompt creates the review prompt for text extracted from a CV.
func (pb *PromptBuilder) BuildCVPrompt(cvText string) string {
	return fmt.Sprintf(`Analyze the following text extracted from a candidate's CV (Resume). Assume the candidate is likely applying for roles in the IT industry (Software Development, Data Science, DevOps, Product Management, Design etc.).

**Extracted CV Text:**
--- Start of CV Text ---
%s
--- End of CV Text ---

**Instructions for AI Analysis:**
Act as an experienced IT recruiter and career advisor. Review the provided CV text thoroughly. Focus on content, structure (as inferrable from text flow), and overall presentation based *only* on the text provided.

**Output Format:**
Provide a structured review with the following sections:
**Overall Impression:** [A brief summary (2-3 sentences) of the CV's effectiveness and target role suitability based on the content.]
**Strengths:**
- [List specific strong points, key skills highlighted, notable achievements mentioned.]
**Weaknesses / Areas for Improvement:**
- [Identify missing key sections, weak descriptions, lack of quantification.]
- [Suggest specific improvements, e.g., "Quantify achievements in project X using numbers."]
**Clarity and Formatting (Inferred):** [Comment on the likely clarity and readability based on the text structure.]
**Keywords and Relevance:** [Mention prominent IT keywords found and comment on potential relevance to common IT roles.]

**Important:** Base your analysis *only* on the provided text. Acknowledge if the text seems poorly extracted or incomplete. Be constructive and provide actionable advice for the candidate.`,
		cvText)
}

// technicalScorePattern matches the "Technical Score" label emitted by the
// interview prompt, followed eventually by a decimal or integer number.
var technicalScorePattern = regexp.MustCompile(`(?s)Technical Score.*?(\d+\.\d+|\d+)`)

// ParseTechnicalScore extracts the per-answer rating from free-form feedback
// text. The first match wins; anything unparseable or outside [1.0, 5.0]
// yields nil rather than an error, leaving the rating unset.
func ParseTechnicalScore(feedback string) *float64 {
	match := technicalScorePattern.FindStringSubmatch(feedback)
	if match == nil {
		return nil
	}

	score, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return nil
	}

	if score < 1.0 || score > 5.0 {
		return nil
	}

	return &score
}
