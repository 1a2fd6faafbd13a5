package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/kingsolomonjunior/admissions/core"
	"github.com/kingsolomonjunior/admissions/core/enrollment"
)

type applicationRepository struct {
	db *DB
}

var _ enrollment.Repository = (*applicationRepository)(nil) // interface compliance check

func NewApplicationRepository(db *DB) enrollment.Repository {
	return &applicationRepository{db: db}
}

func (repo *applicationRepository) CreateApplication(_ context.Context, app enrollment.Application) (enrollment.Application, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	repo.db.data.Applications = append(repo.db.data.Applications, app)
	if err := repo.db.save(); err != nil {
		// drop the in-memory append so memory and snapshot stay consistent
		repo.db.data.Applications = repo.db.data.Applications[:len(repo.db.data.Applications)-1]
		return enrollment.Application{}, err
	}
	return app, nil
}

func (repo *applicationRepository) QueryAllApplications(_ context.Context) ([]enrollment.Application, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	apps := make([]enrollment.Application, len(repo.db.data.Applications))
	copy(apps, repo.db.data.Applications)
	return apps, nil
}

func (repo *applicationRepository) GetApplicationByRef(_ context.Context, ref string) (enrollment.Application, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, app := range repo.db.data.Applications {
		if app.Ref == ref {
			return app, nil
		}
	}
	return enrollment.Application{}, enrollment.ErrNotFound
}

func (repo *applicationRepository) FilterApplications(
	_ context.Context,
	filter enrollment.QueryFilter,
	ordering ...core.DBOrdering,
) ([]enrollment.Application, error) {
	repo.db.mu.RLock()
	apps := make([]enrollment.Application, 0, len(repo.db.data.Applications))
	for _, app := range repo.db.data.Applications {
		if matches(app, filter) {
			apps = append(apps, app)
		}
	}
	repo.db.mu.RUnlock()

	applyOrdering(apps, ordering)
	return apps, nil
}

func matches(app enrollment.Application, filter enrollment.QueryFilter) bool {
	if filter.Status != "" && app.Status != filter.Status {
		return false
	}
	if filter.Grade != "" && app.ApplyingFor != filter.Grade {
		return false
	}
	if !filter.SubmittedFrom.IsZero() && app.SubmissionDate.Before(filter.SubmittedFrom) {
		return false
	}
	if !filter.SubmittedTo.IsZero() && app.SubmissionDate.After(filter.SubmittedTo) {
		return false
	}
	if filter.Search != "" {
		// first+last name only, matching the sqlx backend's search
		search := strings.ToLower(filter.Search)
		studentName := strings.ToLower(app.StudentFirstName + " " + app.StudentLastName)
		if !(strings.Contains(studentName, search) ||
			strings.Contains(strings.ToLower(app.ParentName()), search) ||
			strings.Contains(strings.ToLower(app.Ref), search)) {
			return false
		}
	}
	return true
}

func applyOrdering(apps []enrollment.Application, ordering []core.DBOrdering) {
	for _, ord := range ordering {
		if ord.Field != "submissionDate" {
			continue // only submission date ordering is supported in memory
		}
		asc := ord.Ascending
		sort.SliceStable(apps, func(i, j int) bool {
			if asc {
				return apps[i].SubmissionDate.Before(apps[j].SubmissionDate)
			}
			return apps[j].SubmissionDate.Before(apps[i].SubmissionDate)
		})
	}
}
