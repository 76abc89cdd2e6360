// Package credentials resolves AWS credentials and region from the process environment.
package credentials

import (
	"fmt"
	"os"
	"strings"
)

const (
	EnvAccessKeyID     = "AWS_ACCESS_KEY_ID"
	EnvSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	EnvSessionToken    = "AWS_SESSION_TOKEN"
	EnvRegion          = "AWS_REGION"
	EnvRoleARN         = "AWS_ROLE_ARN"
	EnvRoleSessionName = "AWS_ROLE_SESSION_NAME"
)

// Credentials holds everything needed to build an authenticated AWS client.
// An empty AccessKeyID means the SDK default provider chain is used.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Region          string
	RoleARN         string
	RoleSessionName string
}

// Options controls how strict Resolve is.
type Options struct {
	// FallbackRegion is used when AWS_REGION is unset. Empty means the region is mandatory.
	FallbackRegion string
	// AllowDefaultChain lets both keys be absent and defers to the SDK default chain
	// (shared config, instance roles, ...).
	AllowDefaultChain bool
}

// MissingCredentialError lists the environment variables that were required but absent.
type MissingCredentialError struct {
	Missing []string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("missing AWS credentials: %s not set", strings.Join(e.Missing, ", "))
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// FromEnvironment resolves credentials from the real process environment.
func FromEnvironment(opts Options) (Credentials, error) {
	return Resolve(os.LookupEnv, opts)
}

// Resolve reads the AWS variables through lookup. It never logs or echoes secret values.
func Resolve(lookup LookupFunc, opts Options) (Credentials, error) {
	get := func(key string) string {
		v, ok := lookup(key)
		if !ok {
			return ""
		}
		return strings.TrimSpace(v)
	}

	creds := Credentials{
		AccessKeyID:     get(EnvAccessKeyID),
		SecretAccessKey: get(EnvSecretAccessKey),
		SessionToken:    get(EnvSessionToken),
		Region:          get(EnvRegion),
		RoleARN:         get(EnvRoleARN),
		RoleSessionName: get(EnvRoleSessionName),
	}

	var missing []string

	hasKey := creds.AccessKeyID != ""
	hasSecret := creds.SecretAccessKey != ""
	switch {
	case hasKey && !hasSecret:
		missing = append(missing, EnvSecretAccessKey)
	case !hasKey && hasSecret:
		missing = append(missing, EnvAccessKeyID)
	case !hasKey && !hasSecret && !opts.AllowDefaultChain:
		missing = append(missing, EnvAccessKeyID, EnvSecretAccessKey)
	}

	if creds.Region == "" {
		if opts.FallbackRegion == "" {
			missing = append(missing, EnvRegion)
		} else {
			creds.Region = opts.FallbackRegion
		}
	}

	if len(missing) > 0 {
		return Credentials{}, &MissingCredentialError{Missing: missing}
	}

	// a session token without keys is meaningless for the default chain
	if !hasKey {
		creds.SessionToken = ""
	}

	return creds, nil
}

// Static reports whether explicit keys were supplied.
func (c Credentials) Static() bool {
	return c.AccessKeyID != ""
}

// Temporary reports whether the keys come with a session token.
func (c Credentials) Temporary() bool {
	return c.SessionToken != ""
}

// String redacts the secret parts so Credentials is safe to log.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{AccessKeyID: %s, Region: %s, Temporary: %t, RoleARN: %q}",
		redact(c.AccessKeyID), c.Region, c.Temporary(), c.RoleARN)
}

func redact(v string) string {
	if v == "" {
		return "<default chain>"
	}
	if len(v) <= 4 {
		return "****"
	}
	return "****" + v[len(v)-4:]
}
