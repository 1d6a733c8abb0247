// Package config loads, validates, and defaults the vidslim configuration,
// including the named compression profiles that drive encoder invocations.
package config
