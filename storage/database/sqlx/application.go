package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/kingsolomonjunior/admissions/core"
	"github.com/kingsolomonjunior/admissions/core/enrollment"
)

const applicationColumns = `ref, student_first_name, student_middle_name, student_last_name,
date_of_birth, gender, nationality, applying_for, previous_school, medical_conditions,
parent_first_name, parent_last_name, parent_relationship, parent_phone, parent_email,
parent_occupation, address, secondary_contact_name, secondary_contact_phone,
terms_accepted, data_consent, files, submission_date, status`

type applicationRow struct {
	ID                    int64       `db:"id"`
	Ref                   string      `db:"ref"`
	StudentFirstName      string      `db:"student_first_name"`
	StudentMiddleName     null.String `db:"student_middle_name"`
	StudentLastName       string      `db:"student_last_name"`
	DateOfBirth           string      `db:"date_of_birth"`
	Gender                string      `db:"gender"`
	Nationality           null.String `db:"nationality"`
	ApplyingFor           string      `db:"applying_for"`
	PreviousSchool        null.String `db:"previous_school"`
	MedicalConditions     null.String `db:"medical_conditions"`
	ParentFirstName       string      `db:"parent_first_name"`
	ParentLastName        string      `db:"parent_last_name"`
	ParentRelationship    string      `db:"parent_relationship"`
	ParentPhone           string      `db:"parent_phone"`
	ParentEmail           string      `db:"parent_email"`
	ParentOccupation      null.String `db:"parent_occupation"`
	Address               string      `db:"address"`
	SecondaryContactName  null.String `db:"secondary_contact_name"`
	SecondaryContactPhone null.String `db:"secondary_contact_phone"`
	TermsAccepted         bool        `db:"terms_accepted"`
	DataConsent           bool        `db:"data_consent"`
	Files                 []byte      `db:"files"`
	SubmissionDate        time.Time   `db:"submission_date"`
	Status                string      `db:"status"`
}

func newApplicationRow(app enrollment.Application) (applicationRow, error) {
	files, err := json.Marshal(app.Files)
	if err != nil {
		return applicationRow{}, errors.Wrap(err, "encoding files")
	}
	return applicationRow{
		Ref:                   app.Ref,
		StudentFirstName:      app.StudentFirstName,
		StudentMiddleName:     null.NewString(app.StudentMiddleName, app.StudentMiddleName != ""),
		StudentLastName:       app.StudentLastName,
		DateOfBirth:           app.DateOfBirth,
		Gender:                app.Gender,
		Nationality:           null.NewString(app.Nationality, app.Nationality != ""),
		ApplyingFor:           app.ApplyingFor,
		PreviousSchool:        null.NewString(app.PreviousSchool, app.PreviousSchool != ""),
		MedicalConditions:     null.NewString(app.MedicalConditions, app.MedicalConditions != ""),
		ParentFirstName:       app.ParentFirstName,
		ParentLastName:        app.ParentLastName,
		ParentRelationship:    app.ParentRelationship,
		ParentPhone:           app.ParentPhone,
		ParentEmail:           app.ParentEmail,
		ParentOccupation:      null.NewString(app.ParentOccupation, app.ParentOccupation != ""),
		Address:               app.Address,
		SecondaryContactName:  null.NewString(app.SecondaryContactName, app.SecondaryContactName != ""),
		SecondaryContactPhone: null.NewString(app.SecondaryContactPhone, app.SecondaryContactPhone != ""),
		TermsAccepted:         app.TermsAccepted,
		DataConsent:           app.DataConsent,
		Files:                 files,
		SubmissionDate:        app.SubmissionDate,
		Status:                app.Status,
	}, nil
}

func (row applicationRow) toApplication() (enrollment.Application, error) {
	app := enrollment.Application{
		NewApplication: enrollment.NewApplication{
			StudentFirstName:      row.StudentFirstName,
			StudentMiddleName:     row.StudentMiddleName.String,
			StudentLastName:       row.StudentLastName,
			DateOfBirth:           row.DateOfBirth,
			Gender:                row.Gender,
			Nationality:           row.Nationality.String,
			ApplyingFor:           row.ApplyingFor,
			PreviousSchool:        row.PreviousSchool.String,
			MedicalConditions:     row.MedicalConditions.String,
			ParentFirstName:       row.ParentFirstName,
			ParentLastName:        row.ParentLastName,
			ParentRelationship:    row.ParentRelationship,
			ParentPhone:           row.ParentPhone,
			ParentEmail:           row.ParentEmail,
			ParentOccupation:      row.ParentOccupation.String,
			Address:               row.Address,
			SecondaryContactName:  row.SecondaryContactName.String,
			SecondaryContactPhone: row.SecondaryContactPhone.String,
			TermsAccepted:         row.TermsAccepted,
			DataConsent:           row.DataConsent,
		},
		Ref:            row.Ref,
		SubmissionDate: row.SubmissionDate,
		Status:         row.Status,
	}
	if len(row.Files) > 0 {
		if err := json.Unmarshal(row.Files, &app.Files); err != nil {
			return enrollment.Application{}, errors.Wrap(err, "decoding files")
		}
	}
	if app.Files == nil {
		app.Files = make(map[string]enrollment.StoredFile)
	}
	return app, nil
}

type applicationRepository struct {
	db *sqlx.DB
}

var _ enrollment.Repository = (*applicationRepository)(nil) // interface compliance check

func NewApplicationRepository(db *sqlx.DB) enrollment.Repository {
	return &applicationRepository{db: db}
}

func (repo *applicationRepository) CreateApplication(ctx context.Context, app enrollment.Application) (enrollment.Application, error) {
	row, err := newApplicationRow(app)
	if err != nil {
		return enrollment.Application{}, err
	}

	query := `INSERT INTO application (` + applicationColumns + `) VALUES (
$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`
	_, err = repo.db.ExecContext(ctx, query,
		row.Ref, row.StudentFirstName, row.StudentMiddleName, row.StudentLastName,
		row.DateOfBirth, row.Gender, row.Nationality, row.ApplyingFor, row.PreviousSchool,
		row.MedicalConditions, row.ParentFirstName, row.ParentLastName, row.ParentRelationship,
		row.ParentPhone, row.ParentEmail, row.ParentOccupation, row.Address,
		row.SecondaryContactName, row.SecondaryContactPhone, row.TermsAccepted,
		row.DataConsent, row.Files, row.SubmissionDate, row.Status,
	)
	if err != nil {
		return enrollment.Application{}, errors.Wrap(err, "inserting application")
	}
	return app, nil
}

func (repo *applicationRepository) QueryAllApplications(ctx context.Context) ([]enrollment.Application, error) {
	var rows []applicationRow
	query := `SELECT id, ` + applicationColumns + ` FROM application ORDER BY id`
	if err := repo.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "querying applications")
	}
	return rowsToApplications(rows)
}

func (repo *applicationRepository) GetApplicationByRef(ctx context.Context, ref string) (enrollment.Application, error) {
	var row applicationRow
	query := `SELECT id, ` + applicationColumns + ` FROM application WHERE ref = $1`
	if err := repo.db.GetContext(ctx, &row, query, ref); err != nil {
		if err == sql.ErrNoRows {
			return enrollment.Application{}, enrollment.ErrNotFound
		}
		return enrollment.Application{}, errors.Wrap(err, "querying application by ref")
	}
	return row.toApplication()
}

var orderableColumns = map[string]string{
	"submissionDate": "submission_date",
	"status":         "status",
	"applyingFor":    "applying_for",
}

func (repo *applicationRepository) FilterApplications(
	ctx context.Context,
	filter enrollment.QueryFilter,
	ordering ...core.DBOrdering,
) ([]enrollment.Application, error) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		conds = append(conds, "status = "+arg(filter.Status))
	}
	if filter.Grade != "" {
		conds = append(conds, "applying_for = "+arg(filter.Grade))
	}
	if !filter.SubmittedFrom.IsZero() {
		conds = append(conds, "submission_date >= "+arg(filter.SubmittedFrom))
	}
	if !filter.SubmittedTo.IsZero() {
		conds = append(conds, "submission_date <= "+arg(filter.SubmittedTo))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, "(student_first_name || ' ' || student_last_name ILIKE "+p+
			" OR parent_first_name || ' ' || parent_last_name ILIKE "+p+
			" OR ref ILIKE "+p+")")
	}

	query := `SELECT id, ` + applicationColumns + ` FROM application`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	var orderings []string
	for _, ord := range ordering {
		if col, ok := orderableColumns[ord.Field]; ok {
			orderings = append(orderings, core.DBOrdering{Field: col, Ascending: ord.Ascending}.String())
		}
	}
	if len(orderings) == 0 {
		orderings = []string{"id ASC"}
	}
	query += " ORDER BY " + strings.Join(orderings, ", ")

	var rows []applicationRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering applications")
	}
	return rowsToApplications(rows)
}

func rowsToApplications(rows []applicationRow) ([]enrollment.Application, error) {
	apps := make([]enrollment.Application, 0, len(rows))
	for _, row := range rows {
		app, err := row.toApplication()
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}
