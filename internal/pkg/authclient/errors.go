package authclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrNetwork marks failures to reach the auth backend at all
	ErrNetwork = errors.New("auth backend unreachable")
	// ErrNoSession is returned when an authenticated call is made without a stored session
	ErrNoSession = errors.New("no active session")
	// ErrInvalidPlatformURL is returned for SSO targets that are not absolute http(s) URLs
	ErrInvalidPlatformURL = errors.New("invalid training platform URL")
)

// ErrorKind is the coarse class of a failed call, as shown to end users
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindAuth
	KindNetwork
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// APIError is a non-2xx answer from the auth backend
type APIError struct {
	Status  int
	Code    string
	Message string
	// Fields maps request field names to messages
	Fields map[string]string
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "auth backend responded %d", e.Status)
	if e.Code != "" {
		b.WriteString(" " + e.Code)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	return b.String()
}

// FieldNames returns the invalid field names in sorted order
func (e *APIError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Kind classifies err for display and retry decisions.
func Kind(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	if errors.Is(err, ErrNetwork) {
		return KindNetwork
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return KindUnknown
	}

	switch apiErr.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return KindNetwork
	}
	if len(apiErr.Fields) > 0 {
		return KindValidation
	}
	return KindUnknown
}

// IsAuth reports whether err is a 401/403 from the backend
func IsAuth(err error) bool {
	return Kind(err) == KindAuth
}

type errorBody struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
	Errors  json.RawMessage `json:"errors"`
	Fields  json.RawMessage `json:"fields"`
}

// parseAPIError accepts the shapes the backend uses:
// {"message","code","fields":{...}}, {"error":"..."}, {"error":{...}} and
// {"errors":[{"field","message"}]}.
func parseAPIError(status int, data []byte) *APIError {
	apiErr := &APIError{Status: status}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		apiErr.Message = strings.TrimSpace(string(data))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
		return apiErr
	}

	apiErr.Code = body.Code
	apiErr.Message = body.Message

	if len(body.Error) > 0 {
		var msg string
		var nested errorBody
		switch {
		case json.Unmarshal(body.Error, &msg) == nil:
			if apiErr.Message == "" {
				apiErr.Message = msg
			}
		case json.Unmarshal(body.Error, &nested) == nil:
			if apiErr.Code == "" {
				apiErr.Code = nested.Code
			}
			if apiErr.Message == "" {
				apiErr.Message = nested.Message
			}
			mergeFields(apiErr, nested.Fields)
			mergeFields(apiErr, nested.Errors)
		}
	}
	mergeFields(apiErr, body.Fields)
	mergeFields(apiErr, body.Errors)

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

func mergeFields(apiErr *APIError, raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}

	var asMap map[string]string
	if err := json.Unmarshal(raw, &asMap); err == nil {
		for k, v := range asMap {
			setField(apiErr, k, v)
		}
		return
	}

	var asList []struct {
		Field   string `json:"field"`
		Path    string `json:"path"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &asList); err == nil {
		for _, item := range asList {
			name := item.Field
			if name == "" {
				name = item.Path
			}
			if name != "" {
				setField(apiErr, name, item.Message)
			}
		}
	}
}

func setField(apiErr *APIError, name, msg string) {
	if apiErr.Fields == nil {
		apiErr.Fields = make(map[string]string)
	}
	apiErr.Fields[name] = msg
}
