package responses

import (
	"testing"

	"fhirloader-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
)

func TestUploadStatsRecord(t *testing.T) {
	t.Run("Successful Result", func(t *testing.T) {
		stats := NewUploadStats()

		stats.Record(&UploadResult{
			Success:        true,
			StatusCode:     200,
			ResourceCounts: map[string]int{"Patient": 1, "Observation": 3},
		})

		assert.Equal(t, 1, stats.Attempted)
		assert.Equal(t, 1, stats.Succeeded)
		assert.Equal(t, 0, stats.Failed)
		assert.Equal(t, 1, stats.ResourceCounts["Patient"])
		assert.Equal(t, 3, stats.ResourceCounts["Observation"])
	})

	t.Run("Failed Result Keeps Counts Out", func(t *testing.T) {
		stats := NewUploadStats()

		stats.Record(&UploadResult{
			Success:        false,
			ErrorKind:      exceptions.KindServerError,
			ResourceCounts: map[string]int{"Patient": 2},
		})

		assert.Equal(t, 1, stats.Attempted)
		assert.Equal(t, 0, stats.Succeeded)
		assert.Equal(t, 1, stats.Failed)
		assert.Empty(t, stats.ResourceCounts)
	})

	t.Run("Totals Always Reconcile", func(t *testing.T) {
		stats := NewUploadStats()

		for i := 0; i < 7; i++ {
			stats.Record(&UploadResult{Success: i%3 != 0})
		}

		assert.Equal(t, 7, stats.Attempted)
		assert.Equal(t, stats.Attempted, stats.Succeeded+stats.Failed)
	})
}

func TestUploadStatsSuccessRate(t *testing.T) {
	t.Run("Zero Attempts", func(t *testing.T) {
		stats := NewUploadStats()

		assert.Equal(t, float64(0), stats.SuccessRate())
	})

	t.Run("Partial Success", func(t *testing.T) {
		stats := NewUploadStats()
		stats.Record(&UploadResult{Success: true})
		stats.Record(&UploadResult{Success: true})
		stats.Record(&UploadResult{Success: true})
		stats.Record(&UploadResult{Success: false})

		assert.InDelta(t, 75.0, stats.SuccessRate(), 0.001)
	})
}
