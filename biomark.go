// Package biomark extracts protein biomarker records from research
// articles. It downloads article pages, reduces them to plain text, asks
// a generative model to fill a fixed biomarker template, and stores the
// resulting JSON records.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, goquery/).
package biomark
