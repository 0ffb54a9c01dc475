package config

import "os"

const defaultAPIURL = "http://localhost:8080"

// APIURL returns the base URL for the SCIM provisioning API.
// It can be overridden with the SCIM_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("SCIM_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}
