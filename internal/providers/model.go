// Package providers is the client for the provider directory
// collaborator: provider records, service catalogs, and the weekly
// working-hours payload the slot engine consumes.
package providers

import (
	"fmt"

	"github.com/carebook/carebook-platform/internal/schedule"
)

// CatalogService is one bookable service offered by a provider.
type CatalogService struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// WireWorkingHours is a working-hours entry as the directory sends it:
// day name plus "h:mm am/pm" clock strings.
type WireWorkingHours struct {
	Day       string `json:"day"`
	Available bool   `json:"available"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

// Provider is a directory record.
type Provider struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Address      string             `json:"address"`
	ImageURL     string             `json:"image_url"`
	Services     []CatalogService   `json:"services"`
	WorkingHours []WireWorkingHours `json:"working_hours"`
}

// DefaultService returns the first listed service name, the fallback used
// when no draft selection exists. Empty when the catalog is empty.
func (p *Provider) DefaultService() string {
	if p == nil || len(p.Services) == 0 {
		return ""
	}
	return p.Services[0].Name
}

// Schedule parses the wire working hours into a weekly schedule. Unknown
// day names or unparseable clock strings are reported as errors; an
// enabled entry whose window is inverted parses fine and simply yields no
// slots downstream.
func (p *Provider) Schedule() (schedule.Schedule, error) {
	entries := make([]schedule.WorkingHoursEntry, 0, len(p.WorkingHours))
	for _, wh := range p.WorkingHours {
		day, err := schedule.ParseWeekDay(wh.Day)
		if err != nil {
			return nil, fmt.Errorf("providers: working hours for %s: %w", p.ID, err)
		}
		entry := schedule.WorkingHoursEntry{Day: day, Available: wh.Available}
		if wh.Available {
			start, err := schedule.ParseTimeOfDay(wh.Start)
			if err != nil {
				return nil, fmt.Errorf("providers: %s start time: %w", day, err)
			}
			end, err := schedule.ParseTimeOfDay(wh.End)
			if err != nil {
				return nil, fmt.Errorf("providers: %s end time: %w", day, err)
			}
			entry.Start = start
			entry.End = end
		}
		entries = append(entries, entry)
	}
	return schedule.NewSchedule(entries), nil
}
