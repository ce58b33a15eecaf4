package confluence

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confluo/internal/transport"
)

func TestValidateFailedResponse(t *testing.T) {
	resp := &transport.RawResponse{OK: false, Status: 503, Reason: "503 Service Unavailable"}

	_, err := Validate(resp)
	require.Error(t, err)

	var reqErr *transport.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 503, reqErr.Status)
	assert.Equal(t, "503 Service Unavailable", reqErr.Reason)
}

func TestValidateNilResponse(t *testing.T) {
	_, err := Validate(nil)

	var reqErr *transport.RequestError
	require.ErrorAs(t, err, &reqErr)
}

func TestValidateEmptyListPayload(t *testing.T) {
	resp := &transport.RawResponse{
		OK:     true,
		Status: 200,
		Body:   []byte(`{"results":[],"_links":{"base":"https://wiki.example.com"}}`),
	}

	_, err := Validate(resp)
	assert.True(t, errors.Is(err, ErrEmptyResult))
}

func TestValidateListPayload(t *testing.T) {
	resp := &transport.RawResponse{
		OK:     true,
		Status: 200,
		Body:   []byte(`{"results":[{"id":"1"},{"id":"2"}],"_links":{"base":"https://wiki.example.com"}}`),
	}

	payload, err := Validate(resp)
	require.NoError(t, err)

	assert.True(t, payload.List)
	assert.Len(t, payload.Entries, 2)
	assert.Equal(t, "https://wiki.example.com", payload.BaseURL)
}

func TestValidateSingleEntityPayload(t *testing.T) {
	// Single-entity endpoints have no results key at all. That is Ok, not
	// EmptyResult.
	resp := &transport.RawResponse{
		OK:     true,
		Status: 200,
		Body:   []byte(`{"id":"42","title":"Welcome","_links":{"base":"https://wiki.example.com"}}`),
	}

	payload, err := Validate(resp)
	require.NoError(t, err)

	assert.False(t, payload.List)
	assert.Empty(t, payload.Entries)
	assert.JSONEq(t, string(resp.Body), string(payload.Entity))
}

func TestValidateMalformedBody(t *testing.T) {
	resp := &transport.RawResponse{OK: true, Status: 200, Body: []byte("<html>oops</html>")}

	_, err := Validate(resp)
	var decodeErr *transport.DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestValidateNeverOkOnFailure(t *testing.T) {
	// Property: ok=false responses never validate, regardless of body.
	bodies := [][]byte{
		nil,
		[]byte(`{}`),
		[]byte(`{"results":[{"id":"1"}]}`),
	}
	for _, body := range bodies {
		resp := &transport.RawResponse{OK: false, Status: 500, Reason: "500 Internal Server Error", Body: body}
		payload, err := Validate(resp)
		assert.Error(t, err)
		assert.Nil(t, payload)
	}
}
