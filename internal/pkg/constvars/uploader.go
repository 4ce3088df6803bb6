package constvars

const (
	UploaderBundleGlobPattern = "*.json"
	UploaderDefaultBundleDir  = "./processed_fhir"
)

const (
	UploaderDefaultBatchSize    = 10
	UploaderDefaultDelaySeconds = 0.5
	UploaderDefaultMaxAttempts  = 3

	UploaderDefaultBackoffBaseSeconds    = 1
	UploaderDefaultMetadataTimeoutSecond = 10
	UploaderDefaultUploadTimeoutSecond   = 30
	UploaderDefaultSearchTimeoutSecond   = 10
)

const (
	UploaderDefaultVerifyPatientCount = "10"
)
