package enrich

import (
	"fmt"
	"strings"

	"github.com/BoilerWiseAI/boilerwise-mvp/engine/domain"
)

// OverviewPrompt asks for a plain-text overview plus rewritten
// troubleshooting steps for one fault record, returned as a JSON object.
func OverviewPrompt(rec domain.FaultRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a heating engineer expert. Provide information about this boiler error in PLAIN TEXT (no markdown, no formatting):\n\n")
	fmt.Fprintf(&b, "Boiler: %s %s\n", rec.Maker, rec.Model)
	fmt.Fprintf(&b, "Error Code: %s\n", rec.ErrorCode)
	if rec.ErrorType != "" {
		fmt.Fprintf(&b, "Error Type: %s\n", rec.ErrorType)
	}
	fmt.Fprintf(&b, "Possible Cause: %s\n", rec.PossibleCause)
	if rec.Troubleshooting != "" {
		fmt.Fprintf(&b, "Existing Troubleshooting: %s\n", rec.Troubleshooting)
	}
	b.WriteString(`
Provide TWO sections in JSON format:

1. "ai_overview": Write 2-3 paragraphs in plain text explaining what this error means, why it occurs, severity, and if it's DIY or needs a professional.

2. "troubleshooting": Write detailed step-by-step instructions in plain text covering:
   - Safety precautions
   - Initial checks homeowners can do
   - Specific diagnostic and fix steps
   - Highlight that a professional should be called.
   - NO repair cost estimates
   - Use plain text, no markdown formatting

Return JSON:
{
  "ai_overview": "plain text overview here...",
  "troubleshooting": "plain text troubleshooting steps here..."
}`)
	return b.String()
}

// ResourcesPrompt asks for real repair resources for one fault record,
// returned as a JSON object holding a helpful_resources array.
func ResourcesPrompt(rec domain.FaultRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Search the web to find 3-5 REAL resources showing how to FIX this boiler error:\n\n")
	fmt.Fprintf(&b, "Boiler: %s %s\n", rec.Maker, rec.Model)
	fmt.Fprintf(&b, "Error Code: %s\n", rec.ErrorCode)
	fmt.Fprintf(&b, "Issue: %s\n", rec.PossibleCause)
	b.WriteString(`
IMPORTANT: Prioritize ENGLISH language websites only.

Find resources that demonstrate REPAIRS and FIXES:
- YouTube videos showing the actual repair process (English language)
- Forum posts with step-by-step fix instructions (English language)
- Articles explaining how to resolve this error (English language)
- DO NOT include generic fault code lists
- DO NOT include manufacturer manuals
- DO NOT include non-English websites
- Each resource must show HOW TO FIX the problem
- Only include resources from English-speaking websites (.com, .co.uk, .au, etc.)

Return JSON array of resources:
{
  "helpful_resources": [
    {
      "type": "video",
      "title": "exact title from the webpage",
      "url": "actual URL you found",
      "description": "what fix or solution this provides"
    }
  ]
}`)
	return b.String()
}
