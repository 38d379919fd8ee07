package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/campus-events/internal/event"
)

// seedFile is the YAML layout of a seed file:
//
//	events:
//	  - title: Tech Innovation Summit 2025
//	    date: 2025-01-15
//	    time: "09:00"
//	    category: technology
//	    location: Main Auditorium
//	    attendance: 250
//	    rating: 4.5
type seedFile struct {
	Events []seedEvent `yaml:"events"`
}

type seedEvent struct {
	Title      string   `yaml:"title"`
	Date       string   `yaml:"date"`
	Time       string   `yaml:"time"`
	Category   string   `yaml:"category"`
	Location   string   `yaml:"location"`
	Image      string   `yaml:"image"`
	Attendance int      `yaml:"attendance"`
	Rating     *float64 `yaml:"rating"`
}

// LoadSeed reads and decodes the seed file at path.
func LoadSeed(path string) ([]event.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	inputs, err := ParseSeed(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inputs, nil
}

// ParseSeed decodes seed events in file order. Dates use YYYY-MM-DD and
// times HH:MM; other fields are passed through for the store to validate.
func ParseSeed(data []byte) ([]event.Input, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	inputs := make([]event.Input, 0, len(file.Events))
	var errs []error
	for i, raw := range file.Events {
		input, err := raw.input()
		if err != nil {
			errs = append(errs, fmt.Errorf("event %d (%q): %w", i+1, raw.Title, err))
			continue
		}
		inputs = append(inputs, input)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return inputs, nil
}

func (s seedEvent) input() (event.Input, error) {
	date, err := event.ParseDate(strings.TrimSpace(s.Date))
	if err != nil {
		return event.Input{}, err
	}
	timeOfDay, err := event.ParseTimeOfDay(strings.TrimSpace(s.Time))
	if err != nil {
		return event.Input{}, err
	}
	return event.Input{
		Title:      s.Title,
		Date:       date,
		Time:       timeOfDay,
		Category:   event.Category(s.Category),
		Location:   s.Location,
		Image:      s.Image,
		Attendance: s.Attendance,
		Rating:     s.Rating,
	}, nil
}
