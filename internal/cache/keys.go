// Package cache holds the Redis connection and the key layout shared by
// everything stored in it.
package cache

import "strings"

// GlobalKeyPrefix namespaces every key this service writes.
const GlobalKeyPrefix = "lecturequiz"

// GenerateCacheKey builds "lecturequiz:<service>:<object>:<identifier>",
// followed by ":<p1>_<p2>..." when params are given.
func GenerateCacheKey(service, object, identifier string, params ...string) string {
	key := KeyPrefix(service, object, identifier)
	if len(params) == 0 {
		return strings.TrimSuffix(key, ":")
	}
	return key + strings.Join(params, "_")
}

// KeyPrefix matches every parameterised key GenerateCacheKey builds for
// identifier.
func KeyPrefix(service, object, identifier string) string {
	return strings.Join([]string{GlobalKeyPrefix, service, object, identifier}, ":") + ":"
}
