// Package wellknown names the canonical section and key names a complete
// information file exposes, distilled from
// original_source/smiotools/info_handle.c's case-metadata fields. These
// are plain string constants, not parser behaviour: infofile itself
// stays key-name-agnostic per spec.md's lexical rule.
package wellknown

const (
	SectionImaging = "imaging"
	SectionHashes  = "hashes"
	SectionSession = "session"

	CaseNumber             = "case_number"
	Description            = "description"
	ExaminerName           = "examiner_name"
	EvidenceNumber         = "evidence_number"
	Notes                  = "notes"
	AcquiryDate            = "acquiry_date"
	AcquiryOperatingSystem = "acquiry_operating_system"
	AcquirySoftwareVersion = "acquiry_software_version"

	SessionID = "session_id"
)
