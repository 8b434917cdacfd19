// Package security contains core domain types for the monitoring business logic.
//
// It defines AlarmStatus and ArmingStatus (closed enumerations with stable
// text names for storage) and Sensor (a monitored device with identity, type
// and an active flag) with a Clone helper to avoid leaking internal references.
package security
