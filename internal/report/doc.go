// Package report defines the host snapshot record and its text, JSON and YAML forms.
//
// A Report always carries a timestamp and a platform section. Every other key is
// present only when the probe that fills it succeeded, so consumers must treat all
// section fields as optional.
package report
