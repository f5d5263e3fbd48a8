package models

import "fmt"

// Role is the staff role attached to a user profile. Every workflow
// operation is gated on one or more roles.
type Role string

// Staff roles
const (
	RoleClerk         Role = "clerk"
	RoleJudge         Role = "judge"
	RolePrisonOfficer Role = "prison_officer"
)

// ParseRole validates a raw role value
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClerk, RoleJudge, RolePrisonOfficer:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid role %q", s)
}

// CaseStatus is the court case lifecycle state
type CaseStatus string

// Case lifecycle states
const (
	CaseStatusPending    CaseStatus = "pending"
	CaseStatusAssigned   CaseStatus = "assigned"
	CaseStatusInProgress CaseStatus = "in_progress"
	CaseStatusDecided    CaseStatus = "decided"
	CaseStatusClosed     CaseStatus = "closed"
	CaseStatusAppealed   CaseStatus = "appealed"
)

// ParseCaseStatus validates a raw case status value
func ParseCaseStatus(s string) (CaseStatus, error) {
	switch CaseStatus(s) {
	case CaseStatusPending, CaseStatusAssigned, CaseStatusInProgress,
		CaseStatusDecided, CaseStatusClosed, CaseStatusAppealed:
		return CaseStatus(s), nil
	}
	return "", fmt.Errorf("invalid case status %q", s)
}

// CaseType categorizes a court case
type CaseType string

// Case types
const (
	CaseTypeCriminal       CaseType = "criminal"
	CaseTypeCivil          CaseType = "civil"
	CaseTypeFamily         CaseType = "family"
	CaseTypeCommercial     CaseType = "commercial"
	CaseTypeAdministrative CaseType = "administrative"
)

// ParseCaseType validates a raw case type value
func ParseCaseType(s string) (CaseType, error) {
	switch CaseType(s) {
	case CaseTypeCriminal, CaseTypeCivil, CaseTypeFamily, CaseTypeCommercial, CaseTypeAdministrative:
		return CaseType(s), nil
	}
	return "", fmt.Errorf("invalid case type %q", s)
}

// CasePriority is the three-level case priority
type CasePriority string

// Case priorities
const (
	CasePriorityLow    CasePriority = "low"
	CasePriorityMedium CasePriority = "medium"
	CasePriorityHigh   CasePriority = "high"
)

// ParseCasePriority validates a raw case priority value
func ParseCasePriority(s string) (CasePriority, error) {
	switch CasePriority(s) {
	case CasePriorityLow, CasePriorityMedium, CasePriorityHigh:
		return CasePriority(s), nil
	}
	return "", fmt.Errorf("invalid case priority %q", s)
}

// SentenceType is the outcome a judge can pass on a case
type SentenceType string

// Sentence types
const (
	SentenceImprisonment     SentenceType = "imprisonment"
	SentenceProbation        SentenceType = "probation"
	SentenceCommunityService SentenceType = "community_service"
	SentenceFine             SentenceType = "fine"
	SentenceSuspended        SentenceType = "suspended"
	SentenceDismissed        SentenceType = "dismissed"
)

// ParseSentenceType validates a raw sentence type value
func ParseSentenceType(s string) (SentenceType, error) {
	switch SentenceType(s) {
	case SentenceImprisonment, SentenceProbation, SentenceCommunityService,
		SentenceFine, SentenceSuspended, SentenceDismissed:
		return SentenceType(s), nil
	}
	return "", fmt.Errorf("invalid sentence type %q", s)
}

// EvidenceType categorizes a piece of evidence
type EvidenceType string

// Evidence types
const (
	EvidenceDocument EvidenceType = "document"
	EvidencePhoto    EvidenceType = "photo"
	EvidenceVideo    EvidenceType = "video"
	EvidenceAudio    EvidenceType = "audio"
	EvidencePhysical EvidenceType = "physical"
	EvidenceWitness  EvidenceType = "witness"
	EvidenceExpert   EvidenceType = "expert"
)

// ParseEvidenceType validates a raw evidence type value
func ParseEvidenceType(s string) (EvidenceType, error) {
	switch EvidenceType(s) {
	case EvidenceDocument, EvidencePhoto, EvidenceVideo, EvidenceAudio,
		EvidencePhysical, EvidenceWitness, EvidenceExpert:
		return EvidenceType(s), nil
	}
	return "", fmt.Errorf("invalid evidence type %q", s)
}

// HearingType categorizes a court hearing
type HearingType string

// Hearing types
const (
	HearingPreliminary HearingType = "preliminary"
	HearingTrial       HearingType = "trial"
	HearingSentencing  HearingType = "sentencing"
	HearingAppeal      HearingType = "appeal"
	HearingReview      HearingType = "review"
)

// ParseHearingType validates a raw hearing type value
func ParseHearingType(s string) (HearingType, error) {
	switch HearingType(s) {
	case HearingPreliminary, HearingTrial, HearingSentencing, HearingAppeal, HearingReview:
		return HearingType(s), nil
	}
	return "", fmt.Errorf("invalid hearing type %q", s)
}

// CaseReportType categorizes a case report
type CaseReportType string

// Case report types
const (
	CaseReportFinal   CaseReportType = "final"
	CaseReportInterim CaseReportType = "interim"
	CaseReportAppeal  CaseReportType = "appeal"
)

// ParseCaseReportType validates a raw case report type value
func ParseCaseReportType(s string) (CaseReportType, error) {
	switch CaseReportType(s) {
	case CaseReportFinal, CaseReportInterim, CaseReportAppeal:
		return CaseReportType(s), nil
	}
	return "", fmt.Errorf("invalid report type %q", s)
}

// Priority is the four-level priority shared by reports and notifications
type Priority string

// Priorities
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ParsePriority validates a raw priority value
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return Priority(s), nil
	}
	return "", fmt.Errorf("invalid priority %q", s)
}

// InmateStatus is the inmate lifecycle state. All states other than
// active are terminal.
type InmateStatus string

// Inmate lifecycle states
const (
	InmateStatusActive      InmateStatus = "active"
	InmateStatusReleased    InmateStatus = "released"
	InmateStatusTransferred InmateStatus = "transferred"
	InmateStatusDeceased    InmateStatus = "deceased"
	InmateStatusEscaped     InmateStatus = "escaped"
)

// ParseInmateStatus validates a raw inmate status value
func ParseInmateStatus(s string) (InmateStatus, error) {
	switch InmateStatus(s) {
	case InmateStatusActive, InmateStatusReleased, InmateStatusTransferred,
		InmateStatusDeceased, InmateStatusEscaped:
		return InmateStatus(s), nil
	}
	return "", fmt.Errorf("invalid inmate status %q", s)
}

// InmateSentenceType is the sentence category an inmate is serving
type InmateSentenceType string

// Inmate sentence categories
const (
	InmateSentencePrison           InmateSentenceType = "prison"
	InmateSentenceProbation        InmateSentenceType = "probation"
	InmateSentenceFine             InmateSentenceType = "fine"
	InmateSentenceCommunityService InmateSentenceType = "community_service"
	InmateSentenceLife             InmateSentenceType = "life"
	InmateSentenceDeath            InmateSentenceType = "death"
)

// ParseInmateSentenceType validates a raw inmate sentence type value
func ParseInmateSentenceType(s string) (InmateSentenceType, error) {
	switch InmateSentenceType(s) {
	case InmateSentencePrison, InmateSentenceProbation, InmateSentenceFine,
		InmateSentenceCommunityService, InmateSentenceLife, InmateSentenceDeath:
		return InmateSentenceType(s), nil
	}
	return "", fmt.Errorf("invalid inmate sentence type %q", s)
}

// Gender choices for inmate records
type Gender string

// Genders
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ParseGender validates a raw gender value
func ParseGender(s string) (Gender, error) {
	switch Gender(s) {
	case GenderMale, GenderFemale, GenderOther:
		return Gender(s), nil
	}
	return "", fmt.Errorf("invalid gender %q", s)
}

// InmateReportType categorizes an inmate report
type InmateReportType string

// Inmate report types
const (
	InmateReportRegular      InmateReportType = "regular"
	InmateReportUrgent       InmateReportType = "urgent"
	InmateReportDisciplinary InmateReportType = "disciplinary"
	InmateReportMedical      InmateReportType = "medical"
	InmateReportBehavioral   InmateReportType = "behavioral"
	InmateReportIncident     InmateReportType = "incident"
)

// ParseInmateReportType validates a raw inmate report type value
func ParseInmateReportType(s string) (InmateReportType, error) {
	switch InmateReportType(s) {
	case InmateReportRegular, InmateReportUrgent, InmateReportDisciplinary,
		InmateReportMedical, InmateReportBehavioral, InmateReportIncident:
		return InmateReportType(s), nil
	}
	return "", fmt.Errorf("invalid inmate report type %q", s)
}

// InmateReportStatus is the review state of an inmate report
type InmateReportStatus string

// Inmate report review states
const (
	InmateReportPending  InmateReportStatus = "pending"
	InmateReportReviewed InmateReportStatus = "reviewed"
	InmateReportApproved InmateReportStatus = "approved"
	InmateReportRejected InmateReportStatus = "rejected"
)

// ParseInmateReportStatus validates a raw inmate report status value
func ParseInmateReportStatus(s string) (InmateReportStatus, error) {
	switch InmateReportStatus(s) {
	case InmateReportPending, InmateReportReviewed, InmateReportApproved, InmateReportRejected:
		return InmateReportStatus(s), nil
	}
	return "", fmt.Errorf("invalid report status %q", s)
}

// VisitType categorizes a visitor log entry
type VisitType string

// Visit types
const (
	VisitFamily    VisitType = "family"
	VisitLegal     VisitType = "legal"
	VisitOfficial  VisitType = "official"
	VisitMedical   VisitType = "medical"
	VisitReligious VisitType = "religious"
)

// ParseVisitType validates a raw visit type value
func ParseVisitType(s string) (VisitType, error) {
	switch VisitType(s) {
	case VisitFamily, VisitLegal, VisitOfficial, VisitMedical, VisitReligious:
		return VisitType(s), nil
	}
	return "", fmt.Errorf("invalid visit type %q", s)
}

// ProgramType categorizes a rehabilitation program
type ProgramType string

// Program types
const (
	ProgramEducation  ProgramType = "education"
	ProgramVocational ProgramType = "vocational"
	ProgramCounseling ProgramType = "counseling"
	ProgramTherapy    ProgramType = "therapy"
	ProgramWork       ProgramType = "work"
	ProgramReligious  ProgramType = "religious"
	ProgramRecreation ProgramType = "recreation"
)

// ParseProgramType validates a raw program type value
func ParseProgramType(s string) (ProgramType, error) {
	switch ProgramType(s) {
	case ProgramEducation, ProgramVocational, ProgramCounseling, ProgramTherapy,
		ProgramWork, ProgramReligious, ProgramRecreation:
		return ProgramType(s), nil
	}
	return "", fmt.Errorf("invalid program type %q", s)
}

// ProgramStatus is the lifecycle state of an inmate program
type ProgramStatus string

// Program lifecycle states
const (
	ProgramStatusUpcoming  ProgramStatus = "upcoming"
	ProgramStatusActive    ProgramStatus = "active"
	ProgramStatusCompleted ProgramStatus = "completed"
	ProgramStatusDropped   ProgramStatus = "dropped"
	ProgramStatusSuspended ProgramStatus = "suspended"
)

// ParseProgramStatus validates a raw program status value
func ParseProgramStatus(s string) (ProgramStatus, error) {
	switch ProgramStatus(s) {
	case ProgramStatusUpcoming, ProgramStatusActive, ProgramStatusCompleted,
		ProgramStatusDropped, ProgramStatusSuspended:
		return ProgramStatus(s), nil
	}
	return "", fmt.Errorf("invalid program status %q", s)
}

// ReleaseType categorizes how an inmate left custody
type ReleaseType string

// Release types
const (
	ReleaseSentenceServed ReleaseType = "sentence_served"
	ReleaseParole         ReleaseType = "parole"
	ReleaseCourtOrder     ReleaseType = "court_order"
	ReleaseTransfer       ReleaseType = "transfer"
	ReleaseMedical        ReleaseType = "medical"
)

// ParseReleaseType validates a raw release type value
func ParseReleaseType(s string) (ReleaseType, error) {
	switch ReleaseType(s) {
	case ReleaseSentenceServed, ReleaseParole, ReleaseCourtOrder, ReleaseTransfer, ReleaseMedical:
		return ReleaseType(s), nil
	}
	return "", fmt.Errorf("invalid release type %q", s)
}

// NotificationType categorizes a user notification
type NotificationType string

// Notification types
const (
	NotifyCaseAssigned    NotificationType = "case_assigned"
	NotifyReportSubmitted NotificationType = "report_submitted"
	NotifyUrgentReport    NotificationType = "urgent_report"
	NotifyReleaseAlert    NotificationType = "release_alert"
	NotifyCaseUpdate      NotificationType = "case_update"
	NotifySystem          NotificationType = "system"
)

// ParseNotificationType validates a raw notification type value
func ParseNotificationType(s string) (NotificationType, error) {
	switch NotificationType(s) {
	case NotifyCaseAssigned, NotifyReportSubmitted, NotifyUrgentReport,
		NotifyReleaseAlert, NotifyCaseUpdate, NotifySystem:
		return NotificationType(s), nil
	}
	return "", fmt.Errorf("invalid notification type %q", s)
}

// AuditAction categorizes an audit log entry
type AuditAction string

// Audit actions
const (
	AuditCreate  AuditAction = "create"
	AuditUpdate  AuditAction = "update"
	AuditDelete  AuditAction = "delete"
	AuditView    AuditAction = "view"
	AuditLogin   AuditAction = "login"
	AuditLogout  AuditAction = "logout"
	AuditAssign  AuditAction = "assign"
	AuditSubmit  AuditAction = "submit"
	AuditApprove AuditAction = "approve"
	AuditReject  AuditAction = "reject"
	AuditRead    AuditAction = "read"
)
