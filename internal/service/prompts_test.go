package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"wanderlust/internal/modules/plan"
)

func TestExtractionPromptsEmbedUserText(t *testing.T) {
	prompt := `Weekend in "Rome"`
	assert.Contains(t, classificationPrompt(prompt), `Respond only "yes" or "no"`)
	assert.Contains(t, destinationPrompt(prompt), prompt)
	assert.Contains(t, daysPrompt(prompt), `respond with "7"`)
}

func TestGenerationPrompt(t *testing.T) {
	out := generationPrompt(generationInput{
		Destination: "Kyoto",
		Days:        4,
		Travelers:   DefaultTravelers,
		BudgetLevel: DefaultBudgetLevel,
		Prompt:      "temples and tea",
	})

	assert.Contains(t, out, "- Destination: Kyoto")
	assert.Contains(t, out, "- Duration: 4 days")
	assert.Contains(t, out, "- Travelers: 2")
	assert.Contains(t, out, "- Budget: moderate")
	assert.Contains(t, out, "- Preferences: not specified")
	assert.Contains(t, out, `"days": 4`)
	assert.Contains(t, out, `"destination": "Kyoto"`)
	assert.Contains(t, out, "Return **only** the JSON object")
	for _, c := range plan.Categories {
		assert.True(t, strings.Contains(out, `"`+string(c)+`"`), "category %s", c)
	}
	assert.NotContains(t, out, "%!")
}
