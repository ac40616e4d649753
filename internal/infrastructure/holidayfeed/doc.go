// Package holidayfeed implements the holiday sources: an ICS calendar feed,
// a JSON API selected by a JSONPath expression and the computed German
// national holidays used when both feeds fail.
package holidayfeed
