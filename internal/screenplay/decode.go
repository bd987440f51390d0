package screenplay

import (
	"encoding/json"
	"fmt"
	"sort"

	"backlot/internal/services"
)

// DecodeBeats parses a beat map document. Missing optional fields decode to
// their zero values; screenplay_lines defaults to an empty slice so callers
// can range without nil checks. Beats are returned sorted by beat number.
func DecodeBeats(data []byte) ([]Beat, error) {
	var beats []Beat
	if err := json.Unmarshal(data, &beats); err != nil {
		return nil, services.Wrap(services.ErrValidation, "screenplay", "decode beats", "invalid beat map document", err)
	}
	for i := range beats {
		if beats[i].BeatNumber <= 0 {
			return nil, services.Wrap(services.ErrValidation, "screenplay", "decode beats",
				fmt.Sprintf("beat at index %d has invalid beat_number %d", i, beats[i].BeatNumber), nil)
		}
		if beats[i].ScreenplayLines == nil {
			beats[i].ScreenplayLines = []string{}
		}
		if beats[i].Shots == nil {
			beats[i].Shots = []Shot{}
		}
	}
	sort.Slice(beats, func(i, j int) bool { return beats[i].BeatNumber < beats[j].BeatNumber })
	return beats, nil
}

// DecodeShots parses a shot list document keyed by beat number.
func DecodeShots(data []byte) (map[int][]Shot, error) {
	var entries []struct {
		BeatNumber int    `json:"beat_number"`
		Shots      []Shot `json:"shots"`
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, services.Wrap(services.ErrValidation, "screenplay", "decode shots", "invalid shot list document", err)
	}
	byBeat := make(map[int][]Shot, len(entries))
	for _, entry := range entries {
		if entry.BeatNumber <= 0 {
			return nil, services.Wrap(services.ErrValidation, "screenplay", "decode shots",
				fmt.Sprintf("entry has invalid beat_number %d", entry.BeatNumber), nil)
		}
		byBeat[entry.BeatNumber] = append(byBeat[entry.BeatNumber], entry.Shots...)
	}
	for _, shots := range byBeat {
		sort.Slice(shots, func(i, j int) bool { return shots[i].Shot < shots[j].Shot })
	}
	return byBeat, nil
}

// AttachShots merges a shot list into beats by beat number. Beats with no
// matching entry keep an empty shot slice; shots referencing unknown beats
// are dropped.
func AttachShots(beats []Beat, byBeat map[int][]Shot) []Beat {
	out := make([]Beat, len(beats))
	copy(out, beats)
	for i := range out {
		if shots, ok := byBeat[out[i].BeatNumber]; ok {
			out[i].Shots = append([]Shot(nil), shots...)
		} else if out[i].Shots == nil {
			out[i].Shots = []Shot{}
		}
	}
	return out
}

// DecodePanels parses a storyboard document and verifies panel numbers are
// strictly increasing starting from 1.
func DecodePanels(data []byte) ([]StoryboardPanel, error) {
	var panels []StoryboardPanel
	if err := json.Unmarshal(data, &panels); err != nil {
		return nil, services.Wrap(services.ErrValidation, "screenplay", "decode panels", "invalid storyboard document", err)
	}
	for i, panel := range panels {
		if panel.Metadata.PanelNumber != i+1 {
			return nil, services.Wrap(services.ErrValidation, "screenplay", "decode panels",
				fmt.Sprintf("panel at index %d has panel_number %d, want %d", i, panel.Metadata.PanelNumber, i+1), nil)
		}
	}
	return panels, nil
}
