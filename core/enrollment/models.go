package enrollment

import (
	"time"

	"github.com/kingsolomonjunior/admissions/core"
)

// Application statuses. A record is created as StatusNew and never
// transitioned by this service; status changes belong to the admin tool.
const StatusNew = "new"

type (
	// NewApplication contains the draft fields collected by the enrollment
	// wizard. JSON tags match the public form field names.
	NewApplication struct {
		// student (step 1)
		StudentFirstName  string `json:"studentFirstName" form:"studentFirstName" validate:"required"`
		StudentMiddleName string `json:"studentMiddleName" form:"studentMiddleName"`
		StudentLastName   string `json:"studentLastName" form:"studentLastName" validate:"required"`
		DateOfBirth       string `json:"dateOfBirth" form:"dateOfBirth" validate:"required,pastdate"`
		Gender            string `json:"gender" form:"gender" validate:"required"`
		Nationality       string `json:"nationality" form:"nationality"`
		ApplyingFor       string `json:"applyingFor" form:"applyingFor" validate:"required"`
		PreviousSchool    string `json:"previousSchool" form:"previousSchool"`
		MedicalConditions string `json:"medicalConditions" form:"medicalConditions"`

		// parent/guardian (step 2)
		ParentFirstName       string `json:"parentFirstName" form:"parentFirstName" validate:"required"`
		ParentLastName        string `json:"parentLastName" form:"parentLastName" validate:"required"`
		ParentRelationship    string `json:"parentRelationship" form:"parentRelationship" validate:"required"`
		ParentPhone           string `json:"parentPhone" form:"parentPhone" validate:"required,kephone"`
		ParentEmail           string `json:"parentEmail" form:"parentEmail" validate:"required,email"`
		ParentOccupation      string `json:"parentOccupation" form:"parentOccupation"`
		Address               string `json:"address" form:"address" validate:"required"`
		SecondaryContactName  string `json:"secondaryContactName" form:"secondaryContactName"`
		SecondaryContactPhone string `json:"secondaryContactPhone" form:"secondaryContactPhone" validate:"required_with=SecondaryContactName,omitempty,kephone"`

		// declaration (step 4)
		TermsAccepted bool `json:"termsAccepted" form:"termsAccepted" validate:"required"`
		DataConsent   bool `json:"dataConsent" form:"dataConsent" validate:"required"`
	}

	// StoredFile is the persisted form of an attached file; Data is a base64
	// data URI.
	StoredFile struct {
		Name string `json:"name"`
		Type string `json:"type"`
		Size int64  `json:"size"`
		Data string `json:"data"`
	}

	// Application is a persisted, finalized enrollment record. It is
	// append-only: never updated or deleted by this service.
	Application struct {
		NewApplication

		Ref            string                `json:"applicationRef"`
		SubmissionDate time.Time             `json:"submissionDate"` // UTC
		Status         string                `json:"status"`
		Files          map[string]StoredFile `json:"files"`
	}

	QueryFilter struct {
		Search        string    `query:"search"`
		Status        string    `query:"status"`
		Grade         string    `query:"grade"`
		SubmittedFrom time.Time `query:"submitted_from"`
		SubmittedTo   time.Time `query:"submitted_to"`
	}
)

// Clean normalizes all free-text fields: whitespace trimmed, email lowered.
func (na *NewApplication) Clean() {
	na.StudentFirstName = core.CleanString(na.StudentFirstName)
	na.StudentMiddleName = core.CleanString(na.StudentMiddleName)
	na.StudentLastName = core.CleanString(na.StudentLastName)
	na.DateOfBirth = core.CleanString(na.DateOfBirth)
	na.Gender = core.CleanString(na.Gender)
	na.Nationality = core.CleanString(na.Nationality)
	na.ApplyingFor = core.CleanString(na.ApplyingFor)
	na.PreviousSchool = core.CleanString(na.PreviousSchool)
	na.MedicalConditions = core.CleanString(na.MedicalConditions)
	na.ParentFirstName = core.CleanString(na.ParentFirstName)
	na.ParentLastName = core.CleanString(na.ParentLastName)
	na.ParentRelationship = core.CleanString(na.ParentRelationship)
	na.ParentPhone = core.CleanString(na.ParentPhone)
	na.ParentEmail = core.CleanString(na.ParentEmail, true /* lower */)
	na.ParentOccupation = core.CleanString(na.ParentOccupation)
	na.Address = core.CleanString(na.Address)
	na.SecondaryContactName = core.CleanString(na.SecondaryContactName)
	na.SecondaryContactPhone = core.CleanString(na.SecondaryContactPhone)
}

// Validate cleans the draft and checks every field across all steps.
func (na *NewApplication) Validate() error {
	na.Clean()
	return core.Validate.Struct(na)
}

func (na *NewApplication) StudentName() string {
	name := na.StudentFirstName
	if na.StudentMiddleName != "" {
		name += " " + na.StudentMiddleName
	}
	return name + " " + na.StudentLastName
}

func (na *NewApplication) ParentName() string {
	return na.ParentFirstName + " " + na.ParentLastName
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Status == "" && qf.Grade == "" &&
		qf.SubmittedFrom.IsZero() && qf.SubmittedTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Status = core.CleanString(qf.Status, true /* lower */)
	qf.Grade = core.CleanString(qf.Grade)
}
