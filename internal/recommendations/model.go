package recommendations

import (
	"fmt"
	"strings"
)

// Enumerated values accepted at the API boundary and enforced on parsed plants.
var (
	directions = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	levels     = []string{"Low", "Medium", "High"}
	gardenTypes = []string{
		"Native Plants",
		"Flower Garden",
		"Vegetable Garden",
		"Mixed Garden",
	}
	sunRequirements = []string{"Full Sun", "Partial Sun", "Partial Shade", "Shade"}
)

// Request is a gardener's site profile as received from the client. It is
// validated once at the boundary and never mutated afterwards.
type Request struct {
	Location    string `json:"location"`
	Direction   string `json:"direction"`
	Water       string `json:"water"`
	Maintenance string `json:"maintenance"`
	GardenType  string `json:"garden_type"`
}

// Validate checks the request against the schema before any processing.
func (r Request) Validate() error {
	loc := strings.TrimSpace(r.Location)
	if loc == "" {
		return fmt.Errorf("location is required")
	}
	if len(loc) < 3 || len(loc) > 100 {
		return fmt.Errorf("location must be 3-100 characters")
	}
	if !strings.Contains(loc, ",") {
		return fmt.Errorf("location should include city and state (e.g., 'Denver, CO')")
	}
	if !contains(directions, r.Direction) {
		return fmt.Errorf("direction must be one of %s", strings.Join(directions, ", "))
	}
	if !contains(levels, r.Water) {
		return fmt.Errorf("water must be one of %s", strings.Join(levels, ", "))
	}
	if !contains(levels, r.Maintenance) {
		return fmt.Errorf("maintenance must be one of %s", strings.Join(levels, ", "))
	}
	if !contains(gardenTypes, r.GardenType) {
		return fmt.Errorf("garden_type must be one of %s", strings.Join(gardenTypes, ", "))
	}
	return nil
}

// Plant is a single validated recommendation. A plant that fails validation is
// dropped, not repaired.
type Plant struct {
	Name             string `json:"name"`
	Scientific       string `json:"scientific"`
	Sun              string `json:"sun"`
	Water            string `json:"water"`
	Maintenance      string `json:"maintenance"`
	PlantNow         bool   `json:"plant_now"`
	CareInstructions string `json:"care_instructions"`
	Notes            string `json:"notes"`
}

func validatePlant(p Plant) error {
	if err := boundedString("name", p.Name, 1, 100); err != nil {
		return err
	}
	if err := boundedString("scientific", p.Scientific, 1, 150); err != nil {
		return err
	}
	if !contains(sunRequirements, p.Sun) {
		return fmt.Errorf("sun %q not in %s", p.Sun, strings.Join(sunRequirements, ", "))
	}
	if !contains(levels, p.Water) {
		return fmt.Errorf("water %q not in %s", p.Water, strings.Join(levels, ", "))
	}
	if !contains(levels, p.Maintenance) {
		return fmt.Errorf("maintenance %q not in %s", p.Maintenance, strings.Join(levels, ", "))
	}
	if err := boundedString("care_instructions", p.CareInstructions, 10, 500); err != nil {
		return err
	}
	if err := boundedString("notes", p.Notes, 10, 500); err != nil {
		return err
	}
	return nil
}

// Response is the client-facing recommendation payload. The plants list always
// holds between 1 and maxPlants entries.
type Response struct {
	Location    string  `json:"location"`
	Season      string  `json:"season"`
	Plants      []Plant `json:"plants"`
	GeneratedBy string  `json:"generated_by"`
}

const maxPlants = 10

func boundedString(field, val string, min, max int) error {
	n := len(strings.TrimSpace(val))
	if n < min || n > max {
		return fmt.Errorf("%s must be %d-%d characters, got %d", field, min, max, n)
	}
	return nil
}

func contains(set []string, val string) bool {
	for _, s := range set {
		if s == val {
			return true
		}
	}
	return false
}
