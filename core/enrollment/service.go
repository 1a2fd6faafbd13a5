package enrollment

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/kingsolomonjunior/admissions/core"
	"github.com/kingsolomonjunior/admissions/core/attachment"
)

var ErrNotFound = errors.New("application not found")

type (
	Repository interface {
		// CreateApplication appends the record to the application log.
		CreateApplication(ctx context.Context, app Application) (Application, error)
		QueryAllApplications(ctx context.Context) ([]Application, error)
		GetApplicationByRef(ctx context.Context, ref string) (Application, error)
		// FilterApplications applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of the student
		// name, the parent name or the application reference.
		FilterApplications(ctx context.Context, filter QueryFilter, ordering ...core.DBOrdering) ([]Application, error)
	}

	// Notifier fans a freshly persisted application out to the notification
	// logs and transports. Failures here never roll the record back.
	Notifier interface {
		ApplicationReceived(ctx context.Context, app Application) error
	}

	Service struct {
		repo     Repository
		notifier Notifier
		logger   core.Logger
	}
)

func NewService(repo Repository, notifier Notifier, logger core.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// Submit runs the submission pipeline: reference generation, record
// serialization, attachment encoding, persistence, notifications. Every
// attachment is fully encoded before the record is written; the write never
// observes a partially populated files map.
func (svc *Service) Submit(ctx context.Context, na NewApplication, files []attachment.File) (Application, error) {
	app := Application{
		NewApplication: na,
		Ref:            GenerateApplicationRef(),
		SubmissionDate: time.Now().UTC(),
		Status:         StatusNew,
		Files:          encodeFiles(files),
	}

	if err := ctx.Err(); err != nil {
		return Application{}, errors.Wrap(err, "submitting application")
	}

	app, err := svc.repo.CreateApplication(ctx, app)
	if err != nil {
		return Application{}, errors.Wrap(err, "persisting application")
	}

	// The record is durable at this point. Notifications are best-effort:
	// a failure leaves the application without log entries, which the
	// admissions office reconciles manually.
	if svc.notifier != nil {
		if err := svc.notifier.ApplicationReceived(ctx, app); err != nil {
			svc.logger.Error("sending application notifications", errors.Wrap(err, app.Ref))
		}
	}

	return app, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Application, error) {
	return svc.repo.QueryAllApplications(ctx)
}

func (svc *Service) GetByRef(ctx context.Context, ref string) (Application, error) {
	return svc.repo.GetApplicationByRef(ctx, core.CleanString(ref))
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter, ordering ...core.DBOrdering) ([]Application, error) {
	return svc.repo.FilterApplications(ctx, filter, ordering...)
}

// encodeFiles converts attachments to base64 data URIs, concurrently, and
// only returns once every file is encoded.
func encodeFiles(files []attachment.File) map[string]StoredFile {
	stored := make(map[string]StoredFile, len(files))
	if len(files) == 0 {
		return stored
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, f := range files {
		f := f
		wg.Add(1)
		go func() {
			defer wg.Done()
			sf := StoredFile{
				Name: f.Name,
				Type: f.ContentType,
				Size: f.Size,
				Data: "data:" + f.ContentType + ";base64," + base64.StdEncoding.EncodeToString(f.Data),
			}
			mu.Lock()
			stored[f.Field] = sf
			mu.Unlock()
		}()
	}
	wg.Wait()
	return stored
}

const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateApplicationRef issues the human-readable reference code:
// KSJ-<base36 ms timestamp>-<5 random base36 chars>, uppercased.
// Uniqueness is probabilistic, not guaranteed.
func GenerateApplicationRef() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)

	buf := make([]byte, 5)
	_, _ = rand.Read(buf)
	suffix := make([]byte, 5)
	for i, b := range buf {
		suffix[i] = base36Chars[int(b)%len(base36Chars)]
	}

	return strings.ToUpper("KSJ-" + ts + "-" + string(suffix))
}
