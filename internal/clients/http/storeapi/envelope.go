package storeapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

var errEmptyBody = errors.New("empty response body")

// decodePayload unmarshals the response payload into out. Bodies shaped as
// {"data": ...} are unwrapped; any other JSON body is taken as the payload.
func decodePayload(body []byte, out any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return errEmptyBody
	}
	if body[0] == '{' {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(body, &envelope); err != nil {
			return err
		}
		if data, ok := envelope["data"]; ok {
			body = data
		}
	}
	return json.Unmarshal(body, out)
}

// errorBody covers the error shapes the backend produces: Spring's default
// error attributes, MessageResponse and RFC 7807 problems.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Title   string `json:"title"`
	Detail  string `json:"detail"`
}

func errorMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	for _, candidate := range []string{parsed.Detail, parsed.Message, parsed.Title, parsed.Error} {
		if msg := strings.TrimSpace(candidate); msg != "" {
			return msg
		}
	}
	return ""
}
