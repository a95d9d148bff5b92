package judge0

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type batchSubmitRequest struct {
	Submissions []submissionRequest `json:"submissions"`
}

type submissionRequest struct {
	SourceCode     string `json:"source_code"`
	LanguageID     int    `json:"language_id"`
	Stdin          string `json:"stdin"`
	ExpectedOutput string `json:"expected_output"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type batchStatusResponse struct {
	Submissions []submissionResponse `json:"submissions"`
}

type statusResponse struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

type submissionResponse struct {
	Token         string          `json:"token"`
	StatusID      *int            `json:"status_id"`
	Status        *statusResponse `json:"status"`
	Stdout        *string         `json:"stdout"`
	Stderr        *string         `json:"stderr"`
	CompileOutput *string         `json:"compile_output"`
	Message       *string         `json:"message"`
	Time          flexFloat       `json:"time"`
	Memory        flexFloat       `json:"memory"`
}

func (s submissionResponse) statusID() int {
	if s.StatusID != nil {
		return *s.StatusID
	}
	if s.Status != nil {
		return s.Status.ID
	}
	return 0
}

// flexFloat accepts a JSON number, a numeric string or null
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid numeric string %q: %w", s, err)
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
