// Package monitor implements the status-transition engine of the home
// security monitor.
//
// The Service owns the business rules that combine arming status, sensor
// activity and visual cat detection into an alarm status. State lives behind
// the state.Repository interface, frames are judged by an image.Classifier,
// and registered StatusListeners are told about every change. The package
// also carries the daemon wiring: Run loads configuration, opens the
// repository and feeds camera frames from a watched spool directory into the
// engine.
package monitor
