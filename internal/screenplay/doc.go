// Package screenplay defines the beat, shot, and storyboard panel documents
// stored inside artifact versions, plus tolerant decoders for them.
package screenplay
