package screenplay

// Beat is one narrative beat of a part, carrying the screenplay lines it
// covers and the shots planned against it.
type Beat struct {
	ID              string   `json:"id"`
	BeatNumber      int      `json:"beat_number"`
	TimeRange       string   `json:"time_range"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	SceneRef        string   `json:"scene_ref"`
	Emotion         string   `json:"emotion"`
	ScreenplayLines []string `json:"screenplay_lines"`
	Shots           []Shot   `json:"shots"`
}

// Shot is a planned camera setup inside a beat.
type Shot struct {
	ID                string `json:"id"`
	Shot              int    `json:"shot"`
	IntentTitle       string `json:"intent_title"`
	Intent            string `json:"intent"`
	Emotion           string `json:"emotion"`
	NarrativeFunction string `json:"narrative_function"`
	EstimatedDuration string `json:"estimated_duration"`
}

// PanelMetadata identifies a storyboard panel and the beat and shot it covers.
type PanelMetadata struct {
	PanelNumber int    `json:"panel_number"`
	BeatNumber  int    `json:"beat_number"`
	ShotSummary string `json:"shot_summary"`
}

// PanelCinematography describes how a panel is framed and moved.
type PanelCinematography struct {
	ShotSizeAngle  string `json:"shot_size_angle"`
	LensIntent     string `json:"lens_intent"`
	CameraMovement string `json:"camera_movement"`
}

// PanelSetting describes where a panel takes place.
type PanelSetting struct {
	KeyLocation string `json:"key_location"`
}

// PanelAudio carries the dialogue and sound intent for a panel.
type PanelAudio struct {
	Dialogue       string `json:"dialogue"`
	AudioCueIntent string `json:"audio_cue_intent"`
}

// StoryboardPanel is a single frame of a storyboard.
type StoryboardPanel struct {
	Metadata       PanelMetadata       `json:"metadata"`
	Cinematography PanelCinematography `json:"cinematography"`
	Setting        PanelSetting        `json:"setting"`
	Audio          PanelAudio          `json:"audio"`
}

// LineCount returns the number of screenplay lines across all beats.
func LineCount(beats []Beat) int {
	total := 0
	for _, beat := range beats {
		total += len(beat.ScreenplayLines)
	}
	return total
}

// ShotCount returns the number of shots attached across all beats.
func ShotCount(beats []Beat) int {
	total := 0
	for _, beat := range beats {
		total += len(beat.Shots)
	}
	return total
}
