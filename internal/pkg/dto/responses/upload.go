package responses

import (
	"fhirloader-service/internal/pkg/exceptions"
	"time"
)

type UploadResult struct {
	File           string               `json:"file,omitempty"`
	Success        bool                 `json:"success"`
	StatusCode     int                  `json:"status_code,omitempty"`
	ResourceCounts map[string]int       `json:"resource_counts,omitempty"`
	ErrorKind      exceptions.ErrorKind `json:"error_kind,omitempty"`
	ErrorMessage   string               `json:"error_message,omitempty"`
}

type UploadStats struct {
	Attempted      int            `json:"attempted"`
	Succeeded      int            `json:"succeeded"`
	Failed         int            `json:"failed"`
	ResourceCounts map[string]int `json:"resource_counts"`
	Duration       time.Duration  `json:"duration"`
}

func NewUploadStats() *UploadStats {
	return &UploadStats{
		ResourceCounts: make(map[string]int),
	}
}

// Record folds one upload outcome into the running totals. Resource counts
// accumulate only for uploads that reached the server successfully.
func (s *UploadStats) Record(result *UploadResult) {
	s.Attempted++
	if result.Success {
		s.Succeeded++
		for resourceType, count := range result.ResourceCounts {
			s.ResourceCounts[resourceType] += count
		}
		return
	}
	s.Failed++
}

// SuccessRate returns the percentage of successful uploads, guarding the
// zero-file run.
func (s *UploadStats) SuccessRate() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.Succeeded) / float64(s.Attempted) * 100
}
