package application

import (
	"reflect"
	"testing"

	"github.com/dfryer1193/gallery/gallery/domain"
)

func TestNormalizeDetections(t *testing.T) {
	tests := []struct {
		name       string
		detections []domain.Detection
		want       []string
	}{
		{
			name:       "empty input",
			detections: []domain.Detection{},
			want:       []string{},
		},
		{
			name: "low scores filtered",
			detections: []domain.Detection{
				{Label: "cat", Score: 0.95},
				{Label: "dog", Score: 0.5},
			},
			want: []string{"CAT"},
		},
		{
			name: "boundary score excluded",
			detections: []domain.Detection{
				{Label: "cat", Score: 0.8},
			},
			want: []string{},
		},
		{
			name: "score just above boundary kept",
			detections: []domain.Detection{
				{Label: "cat", Score: 0.8000001},
			},
			want: []string{"CAT"},
		},
		{
			name: "case-insensitive duplicates collapse",
			detections: []domain.Detection{
				{Label: "cat", Score: 0.95},
				{Label: "CAT", Score: 0.81},
				{Label: "Cat", Score: 0.9},
			},
			want: []string{"CAT"},
		},
		{
			name: "first-seen order preserved",
			detections: []domain.Detection{
				{Label: "dog", Score: 0.9},
				{Label: "cat", Score: 0.85},
				{Label: "DOG", Score: 0.99},
				{Label: "bird", Score: 0.81},
			},
			want: []string{"DOG", "CAT", "BIRD"},
		},
		{
			name: "threshold and case folding together",
			detections: []domain.Detection{
				{Label: "cat", Score: 0.95},
				{Label: "CAT", Score: 0.81},
				{Label: "dog", Score: 0.5},
			},
			want: []string{"CAT"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDetections(tt.detections)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeDetections() = %v, want %v", got, tt.want)
			}
		})
	}
}
