package confluence

import (
	"encoding/json"

	"confluo/internal/transport"
)

// Payload is a validated response body, either list-shaped (a `results`
// sequence plus base link) or single-entity-shaped.
type Payload struct {
	// Entries holds the list results. Empty for single-entity payloads.
	Entries []json.RawMessage

	// List reports whether the payload carried a `results` key. Single-entity
	// endpoints return the record at the top level instead.
	List bool

	// BaseURL is the server-supplied base link (`_links.base`). May be empty.
	BaseURL string

	// Entity is the whole decoded body, used for single-entity payloads.
	Entity json.RawMessage
}

// Validate classifies a raw response. It returns the decoded payload on
// success, ErrEmptyResult for a list response with zero entries, a
// *transport.RequestError when the call failed, or a *transport.DecodeError
// when the body is not valid JSON. Pure function over already-fetched data.
func Validate(resp *transport.RawResponse) (*Payload, error) {
	if resp == nil {
		return nil, &transport.RequestError{Reason: "no response"}
	}
	if !resp.OK {
		return nil, &transport.RequestError{Status: resp.Status, Reason: resp.Reason}
	}

	var envelope struct {
		// Pointer distinguishes an absent results key (single-entity shape)
		// from a present-but-empty list.
		Results *[]json.RawMessage `json:"results"`
		Links   struct {
			Base string `json:"base"`
		} `json:"_links"`
	}
	if err := resp.JSON(&envelope); err != nil {
		return nil, err
	}

	payload := &Payload{
		BaseURL: envelope.Links.Base,
		Entity:  json.RawMessage(resp.Body),
	}
	if envelope.Results != nil {
		payload.List = true
		payload.Entries = *envelope.Results
		if len(payload.Entries) == 0 {
			return nil, ErrEmptyResult
		}
	}
	return payload, nil
}
