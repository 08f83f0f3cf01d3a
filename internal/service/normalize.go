package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/contactdesk/backend/internal/model"
)

// requiredFields are checked in this order; MissingFieldsError preserves it.
var requiredFields = []string{"name", "email", "type", "consent"}

// Normalize turns a decoded JSON payload into a ContactRecord.
//
// raw is expected to come from encoding/json with UseNumber. It must be an
// object and name, email, type and consent must all be truthy. String fields
// are trimmed, missing optional fields become "", consent is coerced to a
// bool and submittedAt defaults to now. IP and user agent come from meta only.
// Email, phone and message contents are not validated.
func Normalize(raw any, meta model.RequestMeta, now time.Time) (*model.ContactRecord, error) {
	data, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrMalformedPayload
	}

	var missing []string
	for _, key := range requiredFields {
		if !truthy(data[key]) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	rec := &model.ContactRecord{
		Name:      text(data["name"]),
		Email:     text(data["email"]),
		Phone:     text(data["phone"]),
		Type:      text(data["type"]),
		Message:   text(data["message"]),
		Consent:   truthy(data["consent"]),
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
	}

	if v := data["submittedAt"]; truthy(v) {
		if str, ok := v.(string); ok {
			rec.SubmittedAt = model.ParseTimestamp(str)
		} else {
			rec.SubmittedAt = model.LiteralTimestamp(rawText(v))
		}
	} else {
		rec.SubmittedAt = model.NewTimestamp(now)
	}
	return rec, nil
}

// truthy reports whether v counts as present: not null, not false, not a
// blank string, not zero, not an empty array or object.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return strings.TrimSpace(x) != ""
	case json.Number:
		f, err := x.Float64()
		return err != nil || f != 0
	case float64:
		return x != 0
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}

// text coerces a payload value to a trimmed string.
func text(v any) string {
	return strings.TrimSpace(rawText(v))
}

func rawText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}
