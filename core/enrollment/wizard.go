package enrollment

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/kingsolomonjunior/admissions/core"
	"github.com/kingsolomonjunior/admissions/core/attachment"
)

// Step identifies one of the four ordered wizard states.
type Step int

const (
	StepStudent Step = iota + 1
	StepParent
	StepDocuments
	StepReview

	firstStep = StepStudent
	lastStep  = StepReview
)

var stepNames = map[Step]string{
	StepStudent:   "Student Information",
	StepParent:    "Parent/Guardian Information",
	StepDocuments: "Documents",
	StepReview:    "Review & Submit",
}

func (s Step) String() string { return stepNames[s] }

func (s Step) Valid() bool { return s >= firstStep && s <= lastStep }

// stepFields maps each step to the draft struct fields it owns.
// StepDocuments carries no draft fields; attachments validate on entry.
var stepFields = map[Step][]string{
	StepStudent: {
		"StudentFirstName", "StudentMiddleName", "StudentLastName",
		"DateOfBirth", "Gender", "Nationality", "ApplyingFor",
		"PreviousSchool", "MedicalConditions",
	},
	StepParent: {
		"ParentFirstName", "ParentLastName", "ParentRelationship",
		"ParentPhone", "ParentEmail", "ParentOccupation", "Address",
		"SecondaryContactName", "SecondaryContactPhone",
	},
	StepDocuments: nil,
	StepReview:    {"TermsAccepted", "DataConsent"},
}

var (
	ErrInvalidStep   = errors.New("unknown wizard step")
	errNotReviewStep = errors.New("submission is only possible from the review step")
)

// ValidateStep cleans the draft and validates only the fields belonging to
// the given step.
func ValidateStep(na *NewApplication, step Step) error {
	if !step.Valid() {
		return ErrInvalidStep
	}
	na.Clean()
	fields := stepFields[step]
	if len(fields) == 0 {
		return nil
	}
	return core.Validate.StructPartial(na, fields...)
}

// Wizard owns the draft of one enrollment session and is the only writer of
// its current step. The step only advances through Next after the current
// step validates.
type Wizard struct {
	step  Step
	draft *NewApplication
	files *attachment.List
}

func NewWizard(draft *NewApplication, files *attachment.List) *Wizard {
	if files == nil {
		files = attachment.NewList()
	}
	return &Wizard{step: firstStep, draft: draft, files: files}
}

func (w *Wizard) Step() Step              { return w.step }
func (w *Wizard) Draft() *NewApplication  { return w.draft }
func (w *Wizard) Files() *attachment.List { return w.files }
func (w *Wizard) OnFirstStep() bool       { return w.step == firstStep }
func (w *Wizard) OnLastStep() bool        { return w.step == lastStep }

// Next validates the current step and advances. On the last step it
// revalidates and stays put; Submit is the terminal action there.
func (w *Wizard) Next() error {
	if err := ValidateStep(w.draft, w.step); err != nil {
		return err
	}
	if w.step < lastStep {
		w.step++
	}
	return nil
}

// Prev steps back unconditionally, never below the first step.
func (w *Wizard) Prev() {
	if w.step > firstStep {
		w.step--
	}
}

// Review renders the read-only submission summary. It is a pure projection:
// identical drafts and attachments always produce identical output.
func (w *Wizard) Review() string {
	d := w.draft
	var b strings.Builder

	b.WriteString("Student Information\n")
	writeReviewLine(&b, "Name", d.StudentName())
	writeReviewLine(&b, "Date of Birth", d.DateOfBirth)
	writeReviewLine(&b, "Gender", d.Gender)
	writeReviewLine(&b, "Applying for", d.ApplyingFor)
	writeReviewLine(&b, "Previous School", orDefault(d.PreviousSchool, "N/A"))
	writeReviewLine(&b, "Medical Conditions", orDefault(d.MedicalConditions, "None"))

	b.WriteString("\nParent/Guardian Information\n")
	writeReviewLine(&b, "Name", d.ParentName())
	writeReviewLine(&b, "Relationship", d.ParentRelationship)
	writeReviewLine(&b, "Phone", d.ParentPhone)
	writeReviewLine(&b, "Email", d.ParentEmail)
	writeReviewLine(&b, "Occupation", orDefault(d.ParentOccupation, "N/A"))
	writeReviewLine(&b, "Address", d.Address)
	if d.SecondaryContactName != "" {
		writeReviewLine(&b, "Secondary Contact", d.SecondaryContactName+" ("+d.SecondaryContactPhone+")")
	}

	b.WriteString("\nDocuments\n")
	files := w.files.Files()
	if len(files) == 0 {
		b.WriteString("  No documents uploaded\n")
	} else {
		for _, f := range files {
			b.WriteString("  • " + f.Field + ": " + f.Name + "\n")
		}
	}
	return b.String()
}

// Submit is only reachable from the review step. It revalidates everything
// and hands the draft to the submission pipeline.
func (w *Wizard) Submit(ctx context.Context, svc *Service) (Application, error) {
	if w.step != lastStep {
		return Application{}, errNotReviewStep
	}
	if err := w.draft.Validate(); err != nil {
		return Application{}, err
	}
	return svc.Submit(ctx, *w.draft, w.files.Files())
}

func writeReviewLine(b *strings.Builder, label, value string) {
	b.WriteString("  " + label + ": " + value + "\n")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
