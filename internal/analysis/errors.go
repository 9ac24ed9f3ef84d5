package analysis

import (
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

type ErrorType string

const (
	ErrorThrottle        ErrorType = "throttle"
	ErrorInvalidDocument ErrorType = "invalid_document"
	ErrorTransient       ErrorType = "transient"
	ErrorPermanent       ErrorType = "permanent"
)

// ClassifyError buckets an analysis failure for the audit trail. Typed
// service errors are checked first; anything unrecognized falls back to
// message sniffing and finally to permanent. No caller retries on any
// of these, the bucket is record keeping only.
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ""
	}

	var (
		throttled   *types.ThrottlingException
		provisioned *types.ProvisionedThroughputExceededException
		limited     *types.LimitExceededException
		badDoc      *types.BadDocumentException
		tooLarge    *types.DocumentTooLargeException
		unsupported *types.UnsupportedDocumentException
		internal    *types.InternalServerError
	)
	switch {
	case errors.As(err, &throttled), errors.As(err, &provisioned), errors.As(err, &limited):
		return ErrorThrottle
	case errors.As(err, &badDoc), errors.As(err, &tooLarge), errors.As(err, &unsupported):
		return ErrorInvalidDocument
	case errors.As(err, &internal):
		return ErrorTransient
	}

	e := strings.ToLower(err.Error())
	switch {
	case strings.Contains(e, "throttl"), strings.Contains(e, "rate"), strings.Contains(e, "429"):
		return ErrorThrottle
	case strings.Contains(e, "unsupported"), strings.Contains(e, "too large"), strings.Contains(e, "bad document"):
		return ErrorInvalidDocument
	case strings.Contains(e, "timeout"), strings.Contains(e, "unavailable"), strings.Contains(e, "internal"):
		return ErrorTransient
	default:
		return ErrorPermanent
	}
}
