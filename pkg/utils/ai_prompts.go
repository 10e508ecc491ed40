package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	"yatra/internal/planner"
)

// ChatTurn is one prior message handed to a chat model. Role is "user" or "model".
type ChatTurn struct {
	Role string
	Text string
}

// ChatContext personalises the assistant's system prompt.
type ChatContext struct {
	UserID      string
	Language    string
	Preferences map[string]interface{}
}

const ChatGreeting = "Hello! I'm your Jharkhand tourism assistant. I can help you with travel planning, bookings, destinations, and any questions about your trip. How can I assist you today?"

const itinerarySchema = `{
  "title": "string",
  "description": "string",
  "totalEstimatedCost": 0,
  "budgetBreakdown": {"accommodation": 0, "transport": 0, "food": 0, "activities": 0, "miscellaneous": 0},
  "days": [
    {
      "dayNumber": 1,
      "date": "YYYY-MM-DD",
      "title": "string",
      "location": "district",
      "weather": "string",
      "activities": [
        {
          "timeSlot": "morning",
          "startTime": "09:00",
          "endTime": "12:00",
          "activity": {
            "type": "destination",
            "destinationId": "<id from the list>",
            "title": "string",
            "description": "string",
            "location": {"name": "string", "coordinates": [0, 0], "district": "string"},
            "estimatedCost": 0,
            "estimatedDuration": 180,
            "bookingRequired": false,
            "culturalTips": "string",
            "tribalInteraction": "string",
            "alternatives": ["string"]
          },
          "notes": "string"
        }
      ],
      "accommodation": {"type": "homestay", "name": "string", "location": "string", "estimatedCost": 0, "description": "string", "culturalExperience": "string"},
      "meals": [{"type": "lunch", "cuisine": "string", "estimatedCost": 0, "recommendations": "string", "location": "string"}],
      "transport": {"mode": "string", "estimatedCost": 0, "duration": "string", "notes": "string"},
      "totalDayCost": 0
    }
  ],
  "culturalNotes": ["string"],
  "travelTips": ["string"],
  "emergencyInfo": {"importantNumbers": ["string"], "nearestHospitals": ["string"], "embassyContacts": "string"},
  "localExperiences": ["string"],
  "seasonalConsiderations": ["string"]
}`

// BuildItineraryPrompt renders the trip and the allowed destinations into a
// single instruction that asks for JSON only.
func BuildItineraryPrompt(profile planner.TripProfile, candidates []planner.CandidateDestination) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert travel planner for Jharkhand, India. Create a %d-day itinerary.\n\n", profile.Duration)

	b.WriteString("TRIP:\n")
	fmt.Fprintf(&b, "- Start date: %s\n", profile.StartDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "- Group: %s (%d people)\n", profile.GroupType, profile.GroupSize)
	fmt.Fprintf(&b, "- Total budget: INR %d (%s)\n", profile.TotalBudget, profile.BudgetType)
	fmt.Fprintf(&b, "- Starting from: %s\n", orDefault(profile.UserLocation, "Not specified"))

	b.WriteString("\nPREFERENCES:\n")
	fmt.Fprintf(&b, "- Interests: %s\n", joinOr(profile.Interests, "General sightseeing"))
	fmt.Fprintf(&b, "- Secondary interests: %s\n", joinOr(profile.Preferences.SecondaryInterests, "None"))
	fmt.Fprintf(&b, "- Budget priorities: %s\n", joinOr(profile.Preferences.BudgetPriorities, "Balanced"))
	fmt.Fprintf(&b, "- Guided or independent: %s\n", orDefault(profile.Preferences.GuidedVsIndependent, "Either"))
	fmt.Fprintf(&b, "- Languages: %s\n", joinOr(profile.Preferences.LanguagePreference, "English, Hindi"))
	fmt.Fprintf(&b, "- Dietary restrictions: %s\n", joinOr(profile.Preferences.DietaryRestrictions, "None"))

	b.WriteString("\nDESTINATIONS (use only these):\n")
	for _, d := range candidates {
		fmt.Fprintf(&b, "- ID:%s | %s (%s, %s): %s\n", d.ID, d.Name, d.Category, d.District, orDefault(d.ShortDescription, d.Description))
		fmt.Fprintf(&b, "  Tags: %s | Best time: %s | Entry fee: INR %d | Cultural significance: %s\n",
			joinOr(d.Tags, "none"), joinOr(d.BestTimeToVisit, "Year-round"), d.EntryFee, orDefault(d.CulturalSignificance, "General tourism"))
	}

	b.WriteString("\nRULES:\n")
	fmt.Fprintf(&b, "- Exactly %d entries in \"days\", dayNumber 1..%d, consecutive dates from the start date.\n", profile.Duration, profile.Duration)
	b.WriteString("- All costs are whole rupees. Stay within the total budget.\n")
	b.WriteString("- Respect tribal customs and sacred sites in every suggestion.\n")

	b.WriteString("\nRESPONSE FORMAT, match keys exactly:\n")
	b.WriteString(itinerarySchema)
	b.WriteString("\n\nRespond with ONLY the JSON object. No markdown, no commentary.")
	return b.String()
}

// ChatSystemPrompt is the standing instruction for the support assistant.
func ChatSystemPrompt(cc ChatContext) string {
	var b strings.Builder
	b.WriteString(`You are a knowledgeable Jharkhand tourism assistant for a travel planning app.
Help users plan trips to Jharkhand, answer questions about destinations, hotels and activities,
and suggest contacting human support for booking changes, payments or technical problems.

Key knowledge: Netarhat, Hundru Falls, Betla National Park, Deoghar and Ranchi; Santhal, Munda, Ho
and Kurukh communities; best season October to March, avoid the July to September monsoon;
Litti-chokha, Dhuska and Rugra.

Keep answers concise, friendly and culturally sensitive.
`)
	if cc.UserID != "" {
		fmt.Fprintf(&b, "\nUser ID: %s", cc.UserID)
	} else {
		b.WriteString("\nAnonymous user")
	}
	if len(cc.Preferences) > 0 {
		if raw, err := json.Marshal(cc.Preferences); err == nil {
			fmt.Fprintf(&b, "\nPreferences: %s", raw)
		}
	}
	return b.String()
}

func translatePrompt(text, target string) string {
	return fmt.Sprintf("Translate the following text into the language with ISO code %q. Reply with the translation only.\n\n%s", target, text)
}

func detectPrompt(text string) string {
	return "Identify the language of the following text. Reply with its ISO 639 code only, for example en or hi.\n\n" + text
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func joinOr(items []string, def string) string {
	if len(items) == 0 {
		return def
	}
	return strings.Join(items, ", ")
}

// normalizeLanguageCode keeps the first token of a model's language answer.
func normalizeLanguageCode(raw string) string {
	code := strings.ToLower(strings.Trim(strings.TrimSpace(raw), "\"'`."))
	if fields := strings.Fields(code); len(fields) > 0 {
		code = fields[0]
	}
	if code == "" || len(code) > 8 {
		return "en"
	}
	return code
}
