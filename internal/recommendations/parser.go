package recommendations

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"garden-backend/internal/shared/telemetry"
)

// plantFieldMappings translates provider JSON keys onto Plant fields. Earlier
// source keys win, so the canonical name shadows the provider-specific one.
// Every field has a permissive default; validation decides what survives.
var plantFieldMappings = []struct {
	sources []string
	def     string
	assign  func(*Plant, string)
}{
	{[]string{"name"}, "Unknown Plant", func(p *Plant, v string) { p.Name = v }},
	{[]string{"scientific", "scientific_name"}, "Unknown species", func(p *Plant, v string) { p.Scientific = v }},
	{[]string{"sun", "sun_requirements"}, "Partial Sun", func(p *Plant, v string) { p.Sun = v }},
	{[]string{"water", "water_needs"}, "Medium", func(p *Plant, v string) { p.Water = v }},
	{[]string{"maintenance", "maintenance_level"}, "Medium", func(p *Plant, v string) { p.Maintenance = v }},
	{[]string{"care_instructions", "description"}, "No care instructions available", func(p *Plant, v string) { p.CareInstructions = v }},
	{[]string{"notes", "description"}, "No additional notes available", func(p *Plant, v string) { p.Notes = v }},
}

var braceObjectRE = regexp.MustCompile(`(?s)\{.*\}`)

// ParseCompletion turns a raw chat-completion body into a validated Response.
// Invalid plants are skipped individually; the whole parse fails only when the
// completion is unusable or no plant survives validation.
func ParseCompletion(raw json.RawMessage, fallbackLocation, fallbackSeason string) (Response, error) {
	content, err := extractContent(raw)
	if err != nil {
		return Response{}, err
	}

	payload, err := extractJSONObject(content)
	if err != nil {
		return Response{}, err
	}

	plantsRaw, ok := payload["plants"]
	if !ok {
		return Response{}, ErrMissingPlants
	}
	var rawPlants []map[string]any
	if err := json.Unmarshal(plantsRaw, &rawPlants); err != nil {
		return Response{}, fmt.Errorf("%w: plants is not an array", ErrMissingPlants)
	}

	plants := make([]Plant, 0, len(rawPlants))
	for _, rawPlant := range rawPlants {
		plant := remapPlant(rawPlant)
		if err := validatePlant(plant); err != nil {
			telemetry.Warn("recommendations.plant_skipped", map[string]any{
				"plant": rawPlant["name"],
				"error": err.Error(),
			})
			continue
		}
		plants = append(plants, plant)
	}
	if len(plants) == 0 {
		return Response{}, ErrNoValidPlants
	}
	if len(plants) > maxPlants {
		plants = plants[:maxPlants]
	}

	return Response{
		Location: stringField(payload, "location", fallbackLocation),
		Season:   stringField(payload, "season", fallbackSeason),
		Plants:   plants,
	}, nil
}

// extractContent pulls the first choice's message content, falling back to the
// first delta for providers that answer in streaming shape.
func extractContent(raw json.RawMessage) (string, error) {
	var envelope struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
			Delta struct {
				Content string `json:"content"`
			} `json:"delta"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCompletion, err)
	}
	if len(envelope.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrInvalidCompletion)
	}
	content := envelope.Choices[0].Message.Content
	if content == "" {
		content = envelope.Choices[0].Delta.Content
	}
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: empty content", ErrInvalidCompletion)
	}
	return content, nil
}

// extractJSONObject applies the extraction ladder: strict parse, ```json
// fence, bare ``` fence, then a greedy brace scan. The first candidate that
// parses wins.
func extractJSONObject(content string) (map[string]json.RawMessage, error) {
	candidates := []string{strings.TrimSpace(content)}
	if fenced, ok := fencedBlock(content, "```json"); ok {
		candidates = append(candidates, fenced)
	}
	if fenced, ok := fencedBlock(content, "```"); ok {
		candidates = append(candidates, fenced)
	}
	if match := braceObjectRE.FindString(content); match != "" {
		candidates = append(candidates, match)
	}

	for _, candidate := range candidates {
		var payload map[string]json.RawMessage
		if err := json.Unmarshal([]byte(candidate), &payload); err == nil {
			return payload, nil
		}
	}
	return nil, fmt.Errorf("%w: could not extract JSON from %q", ErrInvalidCompletion, truncate(content, 200))
}

func fencedBlock(content, fence string) (string, bool) {
	start := strings.Index(content, fence)
	if start < 0 {
		return "", false
	}
	start += len(fence)
	end := strings.Index(content[start:], "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(content[start : start+end]), true
}

func remapPlant(raw map[string]any) Plant {
	var plant Plant
	for _, mapping := range plantFieldMappings {
		value := mapping.def
		for _, source := range mapping.sources {
			if v, ok := raw[source].(string); ok && strings.TrimSpace(v) != "" {
				value = v
				break
			}
		}
		mapping.assign(&plant, value)
	}
	if v, ok := raw["plant_now"].(bool); ok {
		plant.PlantNow = v
	}
	return plant
}

func stringField(payload map[string]json.RawMessage, key, fallback string) string {
	raw, ok := payload[key]
	if !ok {
		return fallback
	}
	var val string
	if err := json.Unmarshal(raw, &val); err != nil || strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
