package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Inmate holds the structure for the inmates collection in mongo
type Inmate struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details InmateDetails      `json:"inmate" bson:"inmate"`
	Version int32              `json:"__v" bson:"__v"`
}

// InmateDetails holds the structure for the inner inmate details
type InmateDetails struct {
	InmateID             string `json:"inmateID" bson:"inmateID"` // prison registration number, unique
	FirstName            string `json:"firstName" bson:"firstName"`
	LastName             string `json:"lastName" bson:"lastName"`
	DateOfBirth          string `json:"dateOfBirth" bson:"dateOfBirth"`
	Gender               Gender `json:"gender" bson:"gender"`
	Nationality          string `json:"nationality" bson:"nationality"`
	IdentificationNumber string `json:"identificationNumber" bson:"identificationNumber"` // national id, unique

	CaseNumber       string             `json:"caseNumber" bson:"caseNumber"`
	ConvictionDate   primitive.DateTime `json:"convictionDate" bson:"convictionDate"`
	CrimeDescription string             `json:"crimeDescription" bson:"crimeDescription"`
	SentenceType     InmateSentenceType `json:"sentenceType" bson:"sentenceType"`
	SentenceYears    int                `json:"sentenceYears" bson:"sentenceYears"`
	SentenceMonths   int                `json:"sentenceMonths" bson:"sentenceMonths"`
	FineAmount       float64            `json:"fineAmount" bson:"fineAmount"`

	AdmissionDate       primitive.DateTime  `json:"admissionDate" bson:"admissionDate"` // immutable after creation
	ExpectedReleaseDate *primitive.DateTime `json:"expectedReleaseDate" bson:"expectedReleaseDate"`
	ActualReleaseDate   *primitive.DateTime `json:"actualReleaseDate" bson:"actualReleaseDate"`

	CellNumber string       `json:"cellNumber" bson:"cellNumber"`
	Block      string       `json:"block" bson:"block"`
	Status     InmateStatus `json:"status" bson:"status"`

	AssignedOfficerID   string              `json:"assignedOfficerID" bson:"assignedOfficerID"`
	AssignmentDate      *primitive.DateTime `json:"assignmentDate" bson:"assignmentDate"`
	AssignmentReason    string              `json:"assignmentReason" bson:"assignmentReason"`
	AssignmentType      string              `json:"assignmentType" bson:"assignmentType"`
	SpecialInstructions string              `json:"specialInstructions" bson:"specialInstructions"`

	BehaviorRating            string              `json:"behaviorRating" bson:"behaviorRating"`
	MedicalConditions         string              `json:"medicalConditions" bson:"medicalConditions"`
	SpecialNeeds              string              `json:"specialNeeds" bson:"specialNeeds"`
	MedicalAttentionRequired  bool                `json:"medicalAttentionRequired" bson:"medicalAttentionRequired"`
	DisciplinaryIssues        bool                `json:"disciplinaryIssues" bson:"disciplinaryIssues"`
	ProtectiveCustody         bool                `json:"protectiveCustody" bson:"protectiveCustody"`
	LastHealthCheck           *primitive.DateTime `json:"lastHealthCheck" bson:"lastHealthCheck"`
	EmergencyContactName      string              `json:"emergencyContactName" bson:"emergencyContactName"`
	EmergencyContactPhone     string              `json:"emergencyContactPhone" bson:"emergencyContactPhone"`
	EmergencyContactRelation  string              `json:"emergencyContactRelation" bson:"emergencyContactRelation"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// AssignedTo returns the id of the officer responsible for this inmate
func (i *Inmate) AssignedTo() string {
	return i.Details.AssignedOfficerID
}

// FullName returns the inmate's full name
func (i *Inmate) FullName() string {
	return i.Details.FirstName + " " + i.Details.LastName
}

// InmateUpdate carries a partial inmate edit. Nil fields are left untouched.
type InmateUpdate struct {
	CellNumber               *string  `json:"cellNumber"`
	Block                    *string  `json:"block"`
	BehaviorRating           *string  `json:"behaviorRating"`
	MedicalConditions        *string  `json:"medicalConditions"`
	SpecialNeeds             *string  `json:"specialNeeds"`
	MedicalAttentionRequired *bool    `json:"medicalAttentionRequired"`
	DisciplinaryIssues       *bool    `json:"disciplinaryIssues"`
	ProtectiveCustody        *bool    `json:"protectiveCustody"`
	ExpectedReleaseDate      *string  `json:"expectedReleaseDate"`
	EmergencyContactName     *string  `json:"emergencyContactName"`
	EmergencyContactPhone    *string  `json:"emergencyContactPhone"`
	EmergencyContactRelation *string  `json:"emergencyContactRelation"`
	FineAmount               *float64 `json:"fineAmount"`
}
