package elevenlabs

import (
	"encoding/json"
	"strings"
)

// apiError matches both error shapes the API returns:
//
//	{"detail": {"status": "invalid_api_key", "message": "..."}}
//	{"detail": "..."}
type apiError struct {
	Detail json.RawMessage `json:"detail"`
}

type apiErrorDetail struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func decodeErrorMessage(_ int, body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err != nil || len(e.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(e.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var d apiErrorDetail
	if err := json.Unmarshal(e.Detail, &d); err != nil {
		return ""
	}
	switch {
	case d.Status != "" && d.Message != "":
		return d.Status + ": " + d.Message
	case d.Message != "":
		return d.Message
	default:
		return d.Status
	}
}
