package hub

import (
	"fmt"
	"strings"
)

// ConfigurationError indicates missing or malformed gateway credentials.
type ConfigurationError struct {
	Message string
}

func (e ConfigurationError) Error() string {
	return e.Message
}

// Credentials are the parsed parts of a notification hub connection string.
type Credentials struct {
	Endpoint string
	KeyName  string
	KeyValue string
}

// ParseConnectionString parses a shared-access connection string of the form
// Endpoint=sb://ns.example.net/;SharedAccessKeyName=name;SharedAccessKey=secret.
// The sb:// scheme is rewritten to https:// and a trailing slash is enforced,
// so the endpoint can be concatenated with the hub name directly.
func ParseConnectionString(connStr string) (Credentials, error) {
	parts := map[string]string{}
	for _, item := range strings.Split(connStr, ";") {
		if item == "" {
			continue
		}
		key, value, found := strings.Cut(item, "=")
		if !found {
			continue
		}
		parts[key] = value
	}

	creds := Credentials{
		Endpoint: parts["Endpoint"],
		KeyName:  parts["SharedAccessKeyName"],
		KeyValue: parts["SharedAccessKey"],
	}

	var missing []string
	if creds.Endpoint == "" {
		missing = append(missing, "Endpoint")
	}
	if creds.KeyName == "" {
		missing = append(missing, "SharedAccessKeyName")
	}
	if creds.KeyValue == "" {
		missing = append(missing, "SharedAccessKey")
	}
	if len(missing) > 0 {
		return Credentials{}, ConfigurationError{
			Message: fmt.Sprintf("notification hub connection string is missing: %s", strings.Join(missing, ", ")),
		}
	}

	creds.Endpoint = strings.Replace(creds.Endpoint, "sb://", "https://", 1)
	if !strings.HasSuffix(creds.Endpoint, "/") {
		creds.Endpoint += "/"
	}

	return creds, nil
}
