// Package config defines the daemon settings and provides helpers to load,
// validate and save them in YAML format.
//
// The Config type covers state storage, the camera frame spool directory,
// classifier selection and logging.
package config
