package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindIsClientError(t *testing.T) {
	client := []ErrorKind{KindMissingFile, KindUnsupportedType, KindTooLarge, KindExtractionFailed, KindEmptyText}
	server := []ErrorKind{KindMissingCredential, KindAuthError, KindQuotaExceeded, KindUpstreamError, KindEmptyResponse}

	for _, k := range client {
		assert.True(t, k.IsClientError(), k)
	}
	for _, k := range server {
		assert.False(t, k.IsClientError(), k)
	}
}

func TestKindOfWrapped(t *testing.T) {
	inner := newAnalysisError(KindQuotaExceeded, quotaExceededMessage, nil)
	assert.Equal(t, KindQuotaExceeded, KindOf(fmt.Errorf("outer: %w", inner)))
	assert.Equal(t, KindUpstreamError, KindOf(errors.New("plain")))
}

func TestAsAnalysisError(t *testing.T) {
	plain := errors.New("socket closed")
	ae := AsAnalysisError(plain)
	assert.Equal(t, KindUpstreamError, ae.Kind)
	assert.Equal(t, upstreamErrorMessage, ae.Message)
	assert.ErrorIs(t, ae, plain)

	known := newAnalysisError(KindEmptyText, emptyTextMessage, nil)
	assert.Same(t, known, AsAnalysisError(known))
}
