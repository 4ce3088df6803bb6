package contracts

import (
	"context"
	"fhirloader-service/internal/pkg/dto/responses"
	"net/url"
)

type UploadUsecase interface {
	TestConnection(ctx context.Context) *responses.ConnectionCheck
	UploadBundle(ctx context.Context, bundle map[string]any) *responses.UploadResult
	UploadBundleFile(ctx context.Context, path string) *responses.UploadResult
	UploadDirectory(ctx context.Context, dir string) (*responses.UploadStats, error)
	SearchPatients(ctx context.Context, params url.Values) (*responses.PatientSearch, error)
}

// ProgressEmitter receives upload lifecycle events for rendering. Emitters
// must not block; the uploader calls them inline between uploads.
type ProgressEmitter interface {
	EmitRunStart(total int, directory string)
	EmitFileStart(index, total int, file string)
	EmitFileResult(index, total int, result *responses.UploadResult)
	EmitBatchProgress(completed int, stats *responses.UploadStats)
	EmitSummary(stats *responses.UploadStats)
}
