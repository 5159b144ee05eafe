package relay

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/physlab/problem-relay/apimodels"
	"github.com/physlab/problem-relay/internal/prompt"
)

var errNotObject = errors.New("model reply is not a JSON object")

// modelReply is the shape the system prompt asks for. Pointer fields tell an
// absent key apart from an empty one.
type modelReply struct {
	Type      *string                    `json:"type"`
	Params    map[string]json.RawMessage `json:"params"`
	Reasoning *string                    `json:"reasoning"`
	Visual    json.RawMessage            `json:"visual"`
}

// Translate parses raw model output into a success envelope, applying the
// documented defaults for missing fields.
func Translate(raw string) (*apimodels.ParseResponse, error) {
	var reply modelReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		return nil, &UpstreamParseError{Raw: raw, Err: err}
	}
	if !bytes.HasPrefix(bytes.TrimSpace([]byte(raw)), []byte("{")) {
		return nil, &UpstreamParseError{Raw: raw, Err: errNotObject}
	}

	resp := &apimodels.ParseResponse{
		Success:     true,
		Type:        string(prompt.DefaultCategory),
		Params:      numericParams(reply.Params),
		RawResponse: raw,
	}
	if reply.Type != nil {
		resp.Type = *reply.Type
	}
	if reply.Reasoning != nil {
		resp.Reasoning = *reply.Reasoning
	}
	if len(reply.Visual) > 0 && string(reply.Visual) != "null" {
		resp.Visual = reply.Visual
	}
	return resp, nil
}

// numericParams keeps numbers and nulls. Values that are not representable
// as float64 are dropped instead of failing the whole reply.
func numericParams(raw map[string]json.RawMessage) map[string]*float64 {
	params := make(map[string]*float64, len(raw))
	for name, value := range raw {
		if string(value) == "null" {
			params[name] = nil
			continue
		}
		var f float64
		if err := json.Unmarshal(value, &f); err != nil {
			slog.Warn("Dropping non-numeric parameter", "name", name, "value", string(value), "error", err)
			continue
		}
		params[name] = &f
	}
	return params
}
