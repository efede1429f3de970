package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every way the analysis pipeline can terminate early.
type ErrorKind string

const (
	KindMissingFile       ErrorKind = "MissingFile"
	KindUnsupportedType   ErrorKind = "UnsupportedType"
	KindTooLarge          ErrorKind = "TooLarge"
	KindExtractionFailed  ErrorKind = "ExtractionFailed"
	KindEmptyText         ErrorKind = "EmptyText"
	KindMissingCredential ErrorKind = "MissingCredential"
	KindAuthError         ErrorKind = "AuthError"
	KindQuotaExceeded     ErrorKind = "QuotaExceeded"
	KindUpstreamError     ErrorKind = "UpstreamError"
	KindEmptyResponse     ErrorKind = "EmptyResponse"
)

// IsClientError reports whether the kind is caused by the caller's input
// rather than by configuration or the upstream service.
func (k ErrorKind) IsClientError() bool {
	switch k {
	case KindMissingFile, KindUnsupportedType, KindTooLarge, KindExtractionFailed, KindEmptyText:
		return true
	}
	return false
}

type AnalysisError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

func newAnalysisError(kind ErrorKind, message string, err error) *AnalysisError {
	return &AnalysisError{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the ErrorKind from err, defaulting to UpstreamError.
func KindOf(err error) ErrorKind {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUpstreamError
}

// AsAnalysisError returns err as an *AnalysisError, wrapping anything
// unclassified as an UpstreamError.
func AsAnalysisError(err error) *AnalysisError {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae
	}
	return newAnalysisError(KindUpstreamError, upstreamErrorMessage, err)
}
