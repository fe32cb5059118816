package model

import (
	"bytes"
	"encoding/json"

	apperrors "demo/marketplace/internal/errors"
)

// EncodePayload turns a submitted seaportOrder into the text stored in the
// database. A JSON string is stored as its content, anything else verbatim.
func EncodePayload(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(trimmed)
}

// DecodePayload parses stored payload text back into structured JSON.
func DecodePayload(stored string) (json.RawMessage, error) {
	if !json.Valid([]byte(stored)) {
		return nil, apperrors.NewSerializationError("seaportOrder is not valid JSON", nil)
	}
	return json.RawMessage(stored), nil
}

// RawPayload is the fallback for rows whose payload cannot be decoded: the
// stored text itself, as a JSON string.
func RawPayload(stored string) json.RawMessage {
	b, _ := json.Marshal(stored)
	return b
}

// PayloadMissing reports whether a submitted seaportOrder counts as absent.
func PayloadMissing(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	switch string(trimmed) {
	case "", "null", `""`, "false":
		return true
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err == nil && trimmed[0] != '"' {
		return isZero(n)
	}
	return false
}
