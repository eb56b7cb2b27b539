package service

import (
	"fmt"
	"strings"

	"wanderlust/internal/modules/plan"
)

// PromptDefaultDays is the day count the extraction prompt asks the model to answer
// when the user gave none. It is independent of DefaultDurationDays, which applies
// when the answer cannot be parsed.
const PromptDefaultDays = 7

func classificationPrompt(prompt string) string {
	return fmt.Sprintf(`Is this about travel or vacation planning? Respond only "yes" or "no". Prompt: "%s"`, prompt)
}

func destinationPrompt(prompt string) string {
	return fmt.Sprintf(`Extract the primary destination (city or country) from this prompt. Respond with only the destination name, and nothing else. For example, if the prompt is "A 10-day trip to see the Eiffel Tower and the Louvre", you should respond with "Paris". Prompt: "%s"`, prompt)
}

func daysPrompt(prompt string) string {
	return fmt.Sprintf(`Extract the number of days for the trip from this prompt. Respond with only the number, and nothing else. For example, if the prompt is "A 10-day trip to Paris", you should respond with "10". If no number is specified, respond with "%d". Prompt: "%s"`, PromptDefaultDays, prompt)
}

type generationInput struct {
	Destination string
	Days        int
	Travelers   int
	BudgetLevel string
	Preferences []string
	Interests   []string
	Prompt      string
}

func generationPrompt(in generationInput) string {
	categories := make([]string, len(plan.Categories))
	for i, c := range plan.Categories {
		categories[i] = fmt.Sprintf("%q", string(c))
	}

	var b strings.Builder
	fmt.Fprintf(&b, `
You are a travel planner. Create a detailed, day-by-day travel plan in a valid JSON format.

**Requirements:**
- Destination: %s
- Duration: %d days
- Travelers: %d
- Budget: %s
- Preferences: %s
- Interests: %s
- User's prompt: "%s"
`, in.Destination, in.Days, in.Travelers, in.BudgetLevel,
		listOrUnspecified(in.Preferences), listOrUnspecified(in.Interests), in.Prompt)

	fmt.Fprintf(&b, `
**JSON Structure:**
{
  "destination": "%[1]s",
  "title": "Paris Adventure",
  "subtitle": "A %[2]d-day journey through the heart of France",
  "description": "Experience the best of %[1]s with our curated plan, from iconic landmarks to hidden gems.",
  "days": %[2]d,
  "highlights": [
    {"title": "Eiffel Tower", "description": "Iconic landmark with breathtaking views.", "icon": "📍", "category": "attraction", "rating": "4.8"},
    {"title": "Louvre Museum", "description": "Home to the Mona Lisa.", "icon": "🏛️", "category": "museum"},
    {"title": "French Cuisine", "description": "Enjoy croissants, macarons, and classic French dishes.", "icon": "🍜", "category": "food"},
    {"title": "Seine River Cruise", "description": "A relaxing cruise with beautiful city views.", "icon": "🚢", "category": "experience"}
  ],
  "itinerary": [
    {
      "day": 1,
      "title": "Arrival and City Exploration",
      "activities": [
        {"time": "09:00", "title": "Visit the Eiffel Tower", "description": "Book tickets in advance to avoid long queues."},
        {"time": "13:00", "title": "Lunch at a local bistro", "description": "Enjoy a classic French meal."},
        {"time": "15:00", "title": "Explore Montmartre", "description": "Wander through the charming streets and visit the Sacré-Cœur."}
      ]
    }
  ],
  "tips": [
    {"title": "Use Public Transport", "description": "The metro is an efficient way to get around the city.", "category": "transportation"},
    {"title": "Learn Basic French Phrases", "description": "'Bonjour' and 'merci' go a long way.", "category": "culture"}
  ],
  "budget": {
    "Accommodation": "150-300 USD per night",
    "Food": "80-150 USD per day",
    "Transport": "20-40 USD per day",
    "Attractions": "50-100 USD per day"
  },
  "bestTimeToVisit": "Spring (April-June) or Fall (September-October)",
  "climate": "Moderate with four distinct seasons",
  "language": "French",
  "currency": "Euro (EUR)"
}
`, in.Destination, in.Days)

	fmt.Fprintf(&b, `
**Guidelines:**
1.  Generate a complete itinerary for all **%d** days, with 4-6 activities per day.
2.  Include 6-8 highlights that are diverse, specific named places and practical for a tourist.
3.  Use realistic timings for activities.
4.  The budget should be appropriate for a **%s** budget level, with estimates in local terms.
5.  Include specific, actionable tips for visiting **%s**.
6.  Keep all descriptions engaging but concise.
7.  The "category" for each highlight must be one of: %s.
8.  Return **only** the JSON object, with no extra text or explanations.
`, in.Days, in.BudgetLevel, in.Destination, strings.Join(categories, ", "))

	return b.String()
}

func listOrUnspecified(items []string) string {
	if len(items) == 0 {
		return "not specified"
	}
	return strings.Join(items, ", ")
}
