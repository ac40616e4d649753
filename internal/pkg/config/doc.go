// Package config provides functionality for loading and managing the portal configuration.
//
// Settings are read from a YAML file and PORTAL_* environment variables, validated
// per section and handed to the composition roots in cmd/.
package config
