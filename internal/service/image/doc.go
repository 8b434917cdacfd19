// Package image defines the cat-detection boundary of the monitor.
//
// The engine treats detection as opaque: anything implementing Classifier can
// serve. StaticClassifier and RandomClassifier are the built-in stand-ins; a
// real deployment would adapt an external vision service behind the same
// interface.
package image
