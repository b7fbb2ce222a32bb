package parallel

import "log/slog"

const redacted = "[REDACTED]"

// Credential is the API key sent in the x-api-key header. Every formatting
// path prints a placeholder; Reveal is the only way to read the secret.
type Credential string

func (c Credential) Reveal() string { return string(c) }

func (c Credential) String() string { return redacted }

func (c Credential) GoString() string { return redacted }

func (c Credential) LogValue() slog.Value { return slog.StringValue(redacted) }

func (c Credential) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}
