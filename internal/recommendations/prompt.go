package recommendations

import "fmt"

const promptTemplate = `You are an expert horticulturist and landscape designer. Based on the following criteria, recommend 4-6 native, climate-appropriate plants for a home garden:

**Location & Climate:**
- Location: %s
- USDA Hardiness Zone: %s
- Current Season: %s

**Site Conditions:**
- Yard Direction: %s (Sun Exposure: %s)
- Water Availability: %s
- Maintenance Level Desired: %s

**Garden Preferences:**
- Garden Type: %s

**Instructions:**
1. Prioritize native plants for the region when possible
2. All plants MUST be compatible with zone %s
3. Match sun requirements to %s conditions
4. Respect water availability (%s) and maintenance level (%s)
5. Indicate if each plant can be planted during the current season (%s)

**Required Response Format (JSON):**
Return ONLY a valid JSON object with this exact structure:

{
  "location": "%s",
  "season": "%s",
  "plants": [
    {
      "name": "Common Plant Name",
      "scientific": "Scientific Name",
      "sun": "Full Sun|Partial Sun|Partial Shade|Shade",
      "water": "Low|Medium|High",
      "maintenance": "Low|Medium|High",
      "plant_now": true|false,
      "care_instructions": "brief care tips (50-100 words)",
      "notes": "why this plant suits their preferences (50-100 words)"
    }
  ]
}

**Important:**
- Return ONLY the JSON object, no additional text
- Include 4-6 plants
- Ensure all plant data is accurate for zone %s`

// BuildPrompt renders the instruction sent to the agent. It is a pure
// templating function: identical inputs produce identical bytes.
func BuildPrompt(req Request, zone, season, sunLevel string) string {
	return fmt.Sprintf(promptTemplate,
		req.Location,
		zone,
		season,
		req.Direction, sunLevel,
		req.Water,
		req.Maintenance,
		req.GardenType,
		zone,
		sunLevel,
		req.Water, req.Maintenance,
		season,
		req.Location,
		season,
		zone,
	)
}
