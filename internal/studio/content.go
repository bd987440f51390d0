package studio

import (
	"backlot/internal/artifact"
	"backlot/internal/screenplay"
	"backlot/internal/services"
)

// validateContent rejects generated documents that do not decode as the
// artifact's kind. A malformed document counts as an upstream failure so the
// action stays retryable and nothing is persisted.
func validateContent(kind artifact.Kind, content string) error {
	data := []byte(content)
	var err error
	switch kind {
	case artifact.KindBeatMap:
		_, err = screenplay.DecodeBeats(data)
	case artifact.KindShotList:
		_, err = screenplay.DecodeShots(data)
	case artifact.KindStoryboard:
		_, err = screenplay.DecodePanels(data)
	}
	if err != nil {
		return services.Wrap(services.ErrUpstream, "session", "validate content",
			"generated document does not match artifact kind", err)
	}
	return nil
}
