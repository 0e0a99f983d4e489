package application

import (
	"strings"

	"github.com/dfryer1193/gallery/gallery/domain"
)

// tagScoreThreshold is the minimum confidence a detection must exceed
// before its label becomes a tag. The comparison is strict: a score of
// exactly 0.8 is dropped.
const tagScoreThreshold = 0.8

// NormalizeDetections turns raw detections into the stored tag set: keep
// detections scoring strictly above the threshold, uppercase each label,
// and drop duplicates while preserving first-seen order.
func NormalizeDetections(detections []domain.Detection) []string {
	tags := make([]string, 0, len(detections))
	seen := make(map[string]struct{}, len(detections))

	for _, d := range detections {
		if d.Score <= tagScoreThreshold {
			continue
		}

		label := strings.ToUpper(d.Label)
		if _, ok := seen[label]; ok {
			continue
		}

		seen[label] = struct{}{}
		tags = append(tags, label)
	}

	return tags
}
