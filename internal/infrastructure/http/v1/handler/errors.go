package handler

import "errors"

var (
	ErrFailedToDecodeRequestBody = errors.New("failed to decode request body")
	InternalServerError          = errors.New("the server encountered an error and could not process your request")
	ErrBundleNeedsVectorSource   = errors.New("render bundles need a vector tile source")
)
