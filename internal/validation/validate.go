package validation

import (
	"strings"
	"unicode/utf8"
)

// Length limits count characters, not bytes, matching varchar semantics.
const (
	TitleMaxLen    = 200
	PasswordMinLen = 6
)

const (
	msgEmpty     = "Field cannot be empty"
	msgTitleMax  = "Max length is 200"
	msgBadEmail  = "Must be a valid email address"
	msgShortPwd  = "Must be at least 6 characters"
	msgNotString = "Must be a string"
	msgNoFields  = "No fields to update"
	msgNoValid   = "No valid fields to update"
)

// listing columns a client may touch. The mutation engine only ever sees
// keys from this set.
var updatableFields = map[string]bool{
	"title":       true,
	"description": true,
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// emailShape accepts local@domain.tld: at least one '@', no whitespace, and
// a '.' somewhere after the last '@'. Deliverability is not our problem.
func emailShape(s string) bool {
	if strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	at := strings.LastIndex(s, "@")
	if at < 1 || at == len(s)-1 {
		return false
	}
	return strings.Contains(s[at+1:], ".")
}

// Credentials validates and normalizes an email/password pair. Both
// registration and login run the same shape rules; login never learns here
// whether the credentials are correct, only whether they are well-formed.
func Credentials(email, password string) (string, string, Errors) {
	errs := Errors{}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		errs.Add("email", msgEmpty)
	} else if !emailShape(email) {
		errs.Add("email", msgBadEmail)
	}

	password = strings.TrimSpace(password)
	if password == "" {
		errs.Add("password", msgEmpty)
	} else if utf8.RuneCountInString(password) < PasswordMinLen {
		errs.Add("password", msgShortPwd)
	}

	if len(errs) > 0 {
		return "", "", errs
	}
	return email, password, nil
}

// CreateListing validates a full listing payload and returns the trimmed
// field values.
func CreateListing(title, description string) (string, string, Errors) {
	errs := Errors{}

	title = strings.TrimSpace(title)
	if title == "" {
		errs.Add("title", msgEmpty)
	} else if utf8.RuneCountInString(title) > TitleMaxLen {
		errs.Add("title", msgTitleMax)
	}

	description = strings.TrimSpace(description)
	if description == "" {
		errs.Add("description", msgEmpty)
	}

	if len(errs) > 0 {
		return "", "", errs
	}
	return title, description, nil
}

// UpdateListing validates a partial update. Only allow-listed keys are
// considered; anything else is silently dropped. For each considered field:
// explicit null is a no-op, an explicitly blank value is an error. The
// returned map holds column -> trimmed value and is never empty on success.
func UpdateListing(payload map[string]any) (map[string]string, Errors) {
	considered := map[string]any{}
	for k, v := range payload {
		if updatableFields[k] {
			considered[k] = v
		}
	}
	if len(considered) == 0 {
		return nil, Errors{GeneralField: msgNoFields}
	}

	errs := Errors{}
	out := map[string]string{}

	for field, v := range considered {
		if v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			errs.Add(field, msgNotString)
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			errs.Add(field, msgEmpty)
			continue
		}
		if field == "title" && utf8.RuneCountInString(s) > TitleMaxLen {
			errs.Add(field, msgTitleMax)
			continue
		}
		out[field] = s
	}

	if len(errs) > 0 {
		return nil, errs
	}
	if len(out) == 0 {
		return nil, Errors{GeneralField: msgNoValid}
	}
	return out, nil
}
