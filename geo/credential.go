package geo

import "os"

// LookupEnvFunc has the signature of os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

// ResolveCredential picks the credential for a client: an explicit value wins,
// otherwise envKey is read through lookup. An unset or empty variable yields
// "", which means unauthenticated requests.
func ResolveCredential(explicit, envKey string, lookup LookupEnvFunc) string {
	if explicit != "" {
		return explicit
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(envKey); ok {
		return v
	}
	return ""
}
