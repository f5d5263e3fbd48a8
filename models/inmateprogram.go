package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// InmateProgram holds the structure for the inmatePrograms collection in mongo
type InmateProgram struct {
	ID      primitive.ObjectID   `json:"_id" bson:"_id"`
	Details InmateProgramDetails `json:"inmateProgram" bson:"inmateProgram"`
	Version int32                `json:"__v" bson:"__v"`
}

// InmateProgramDetails holds the structure for the inner program details
type InmateProgramDetails struct {
	InmateID    string        `json:"inmateID" bson:"inmateID"`
	ProgramName string        `json:"programName" bson:"programName"`
	ProgramType ProgramType   `json:"programType" bson:"programType"`
	Description string        `json:"description" bson:"description"`
	Status      ProgramStatus `json:"status" bson:"status"`

	StartDate       primitive.DateTime  `json:"startDate" bson:"startDate"`
	ExpectedEndDate primitive.DateTime  `json:"expectedEndDate" bson:"expectedEndDate"`
	ActualEndDate   *primitive.DateTime `json:"actualEndDate" bson:"actualEndDate"`

	ProgressPercentage int    `json:"progressPercentage" bson:"progressPercentage"` // clamped to [0,100]
	Instructor         string `json:"instructor" bson:"instructor"`
	GradeOrScore       string `json:"gradeOrScore" bson:"gradeOrScore"`
	CertificateEarned  bool   `json:"certificateEarned" bson:"certificateEarned"`
	Notes              string `json:"notes" bson:"notes"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// ProgramUpdate carries a partial program edit. Nil fields are left untouched.
type ProgramUpdate struct {
	ProgramName        *string `json:"programName"`
	ProgramType        *string `json:"programType"`
	Description        *string `json:"description"`
	Status             *string `json:"status"`
	ExpectedEndDate    *string `json:"expectedEndDate"`
	ProgressPercentage *int    `json:"progressPercentage"`
	Instructor         *string `json:"instructor"`
	GradeOrScore       *string `json:"gradeOrScore"`
	CertificateEarned  *bool   `json:"certificateEarned"`
	Notes              *string `json:"notes"`
}
