package job

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"jobtrack/internal/domain"
	"jobtrack/internal/pkg/access"
	"jobtrack/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeJobRepo is an in-memory repository that applies the same partial field
// maps the real store receives, so a mutation can be observed on re-read.
type fakeJobRepo struct {
	jobs      map[string]*domain.Job
	createErr error
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*domain.Job)}
}

func (f *fakeJobRepo) Create(ctx context.Context, j *domain.Job) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.jobs[j.JobID]; ok {
		return gorm.ErrDuplicatedKey
	}
	cp := *j
	f.jobs[j.JobID] = &cp
	return nil
}

func (f *fakeJobRepo) GetByJobID(ctx context.Context, jobID string) (*domain.Job, error) {
	j, ok := f.jobs[jobID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (f *fakeJobRepo) Update(ctx context.Context, jobID string, fields map[string]any) error {
	j, ok := f.jobs[jobID]
	if !ok {
		return repository.ErrNotFound
	}
	applyFields(j, fields)
	return nil
}

func (f *fakeJobRepo) ListAll(ctx context.Context) ([]domain.Job, error) {
	out := make([]domain.Job, 0, len(f.jobs))
	for _, j := range f.jobs {
		out = append(out, *j)
	}
	return out, nil
}

func (f *fakeJobRepo) ListByEngineer(ctx context.Context, email string) ([]domain.Job, error) {
	out := make([]domain.Job, 0)
	for _, j := range f.jobs {
		if j.AssignedTo(email) {
			out = append(out, *j)
		}
	}
	return out, nil
}

func applyFields(j *domain.Job, fields map[string]any) {
	strCol := func(key string, dst *string) {
		if v, ok := fields[key]; ok {
			if v == nil {
				*dst = ""
			} else {
				*dst = v.(string)
			}
		}
	}
	timeCol := func(key string, dst **time.Time) {
		if v, ok := fields[key]; ok {
			if v == nil {
				*dst = nil
			} else {
				t := v.(time.Time)
				*dst = &t
			}
		}
	}

	if v, ok := fields["status"]; ok {
		j.Status = domain.JobStatus(v.(string))
	}
	timeCol("completed_on", &j.CompletedOn)
	timeCol("closed_at", &j.ClosedAt)
	timeCol("last_edited_at", &j.LastEditedAt)

	if v, ok := fields["engineers"]; ok {
		var list []string
		_ = json.Unmarshal([]byte(v.(string)), &list)
		j.Engineers = list
	}
	if v, ok := fields["engineer"]; ok && v == nil {
		j.Engineer = ""
	}

	strCol("jdate", &j.Date)
	if v, ok := fields["loc"]; ok {
		j.Location = domain.ServiceLocation(v.(string))
	}
	strCol("customer_name", &j.CustomerName)
	strCol("poc", &j.POC)
	strCol("phone", &j.Phone)
	strCol("city", &j.City)
	strCol("gstin", &j.GSTIN)
	strCol("brand", &j.Brand)
	strCol("model", &j.Model)
	strCol("serial_no", &j.SerialNo)
	if v, ok := fields["call_status"]; ok {
		if v == nil {
			j.CallStatus = ""
		} else {
			j.CallStatus = domain.CallStatus(v.(string))
		}
	}
	strCol("description", &j.Description)
	strCol("notes", &j.Notes)
	strCol("spares", &j.Spares)
	strCol("charges", &j.Charges)
	strCol("photo_url", &j.PhotoURL)
	strCol("invoice_no", &j.InvoiceNo)
	strCol("last_edited_by", &j.LastEditedBy)

	_, hasPrincipal := fields["claim_principal"]
	if hasPrincipal {
		if j.Claim == nil {
			j.Claim = &domain.Claim{}
		}
		strCol("claim_principal", &j.Claim.Principal)
		strCol("claim_details", &j.Claim.Details)
		strCol("claim_invoice_no", &j.Claim.InvoiceNo)
	}
}

type fakeDirectory struct {
	upserts []domain.Customer
	err     error
}

func (f *fakeDirectory) UpsertByName(ctx context.Context, c *domain.Customer) error {
	if f.err != nil {
		return f.err
	}
	f.upserts = append(f.upserts, *c)
	return nil
}

type countingNotifier struct {
	count int
}

func (n *countingNotifier) JobsChanged() { n.count++ }

var (
	ownerSess = access.Session{ActorID: 1, Email: "owner@co.local", Role: domain.RoleOwner}
	coordSess = access.Session{ActorID: 2, Email: "desk@co.local", Role: domain.RoleCoordinator}
	engSess   = access.Session{ActorID: 3, Email: "ravi@co.local", Role: domain.RoleEngineer}
)

func validCreate() CreateJobRequest {
	return CreateJobRequest{
		JobID:        "JT-2001",
		Date:         "2026-08-20",
		Location:     "SE",
		CustomerName: "Apex Cold Storage",
		POC:          "Mr. Rao",
		Phone:        "+91 98450 11223",
		City:         "Bengaluru",
		Brand:        "Voltas",
		Model:        "VC-220",
	}
}

func newTestService() (*Service, *fakeJobRepo, *fakeDirectory, *countingNotifier) {
	repo := newFakeJobRepo()
	dir := &fakeDirectory{}
	notif := &countingNotifier{}
	return NewService(repo, dir, notif, nil), repo, dir, notif
}

func TestService_Create_Success(t *testing.T) {
	svc, _, dir, notif := newTestService()

	j, err := svc.Create(context.Background(), coordSess, validCreate())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusNotInspected, j.Status)
	assert.Empty(t, j.Engineers)
	assert.Nil(t, j.ClosedAt)
	assert.Equal(t, 1, notif.count)

	require.Len(t, dir.upserts, 1)
	assert.Equal(t, "Apex Cold Storage", dir.upserts[0].Name)
	assert.Equal(t, "Bengaluru", dir.upserts[0].City)
}

func TestService_Create_MissingFields(t *testing.T) {
	svc, _, _, notif := newTestService()

	req := validCreate()
	req.Phone = ""
	req.Brand = "   "

	_, err := svc.Create(context.Background(), coordSess, req)

	assert.ErrorIs(t, err, ErrValidation)
	var mf *MissingFieldsError
	require.ErrorAs(t, err, &mf)
	assert.Equal(t, []string{"Phone", "Brand"}, mf.Fields)
	assert.Equal(t, 0, notif.count)
}

func TestService_Create_EngineerForbidden(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), engSess, validCreate())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Create_DuplicateJobID(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), coordSess, validCreate())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), coordSess, validCreate())
	assert.ErrorIs(t, err, ErrDuplicateJobID)
}

func TestService_Create_InvalidLocation(t *testing.T) {
	svc, _, _, _ := newTestService()

	req := validCreate()
	req.Location = "HQ"

	_, err := svc.Create(context.Background(), coordSess, req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Create_CustomerUpsertFailureIsNotFatal(t *testing.T) {
	svc, _, dir, _ := newTestService()
	dir.err = assert.AnError

	j, err := svc.Create(context.Background(), coordSess, validCreate())
	require.NoError(t, err)
	assert.Equal(t, "JT-2001", j.JobID)
}

// Full lifecycle: intake, assignment, completion, closure without a claim,
// then every post-closure mutation is rejected.
func TestService_Lifecycle_CloseWithoutClaim(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, coordSess, validCreate())
	require.NoError(t, err)

	_, err = svc.AddEngineer(ctx, coordSess, "JT-2001", "ravi@co.local")
	require.NoError(t, err)
	j, err := svc.AddEngineer(ctx, coordSess, "JT-2001", "sanjay@co.local")
	require.NoError(t, err)
	assert.Equal(t, []string{"ravi@co.local", "sanjay@co.local"}, j.Engineers)

	j, err = svc.UpdateStatus(ctx, coordSess, "JT-2001", "Completed")
	require.NoError(t, err)
	require.NotNil(t, j.CompletedOn)
	assert.False(t, j.Closed())

	j, err = svc.CloseCall(ctx, coordSess, "JT-2001", CloseCallRequest{
		ClaimDecision: "no",
		InvoiceNo:     "INV-104",
	})
	require.NoError(t, err)
	assert.True(t, j.Closed())
	assert.Nil(t, j.Claim)
	assert.Equal(t, "INV-104", j.InvoiceNo)

	_, err = svc.UpdateStatus(ctx, coordSess, "JT-2001", "In Progress")
	assert.ErrorIs(t, err, ErrJobClosed)

	_, err = svc.UpdateDetails(ctx, coordSess, "JT-2001", updateFromCreate(validCreate()))
	assert.ErrorIs(t, err, ErrJobClosed)

	_, err = svc.AddEngineer(ctx, coordSess, "JT-2001", "meena@co.local")
	assert.ErrorIs(t, err, ErrJobClosed)

	_, err = svc.CloseCall(ctx, coordSess, "JT-2001", CloseCallRequest{ClaimDecision: "no"})
	assert.ErrorIs(t, err, ErrJobClosed)

	stored, err := repo.GetByJobID(ctx, "JT-2001")
	require.NoError(t, err)
	assert.NotNil(t, stored.ClosedAt)
}

func TestService_CloseCall_WithClaim(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, coordSess, validCreate())
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, coordSess, "JT-2001", "Completed")
	require.NoError(t, err)

	j, err := svc.CloseCall(ctx, ownerSess, "JT-2001", CloseCallRequest{
		ClaimDecision: "yes",
		Principal:     "Voltas India",
		Details:       "Compressor replaced under warranty",
		InvoiceNo:     "INV-555",
	})
	require.NoError(t, err)
	assert.True(t, j.Closed())
	require.NotNil(t, j.Claim)
	assert.Equal(t, "Voltas India", j.Claim.Principal)
	assert.Equal(t, "INV-555", j.Claim.InvoiceNo)
}

func TestService_CloseCall_UndecidedRejected(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, coordSess, validCreate())
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, coordSess, "JT-2001", "Completed")
	require.NoError(t, err)

	_, err = svc.CloseCall(ctx, coordSess, "JT-2001", CloseCallRequest{})
	assert.ErrorIs(t, err, ErrClaimUndecided)

	stored, _ := repo.GetByJobID(ctx, "JT-2001")
	assert.Nil(t, stored.ClosedAt)
}

// A half-filled "yes" answer must reject the confirmation and leave the job
// untouched.
func TestService_CloseCall_IncompleteClaimNoMutation(t *testing.T) {
	svc, repo, _, notif := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, coordSess, validCreate())
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, coordSess, "JT-2001", "Completed")
	require.NoError(t, err)
	before := notif.count

	_, err = svc.CloseCall(ctx, coordSess, "JT-2001", CloseCallRequest{
		ClaimDecision: "yes",
		Principal:     "Voltas India",
	})
	assert.ErrorIs(t, err, ErrClaimIncomplete)

	stored, _ := repo.GetByJobID(ctx, "JT-2001")
	assert.Nil(t, stored.ClosedAt)
	assert.Nil(t, stored.Claim)
	assert.Equal(t, before, notif.count)
}

func TestService_CloseCall_NotCompleted(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, coordSess, validCreate())
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, coordSess, "JT-2001", "In Progress")
	require.NoError(t, err)

	_, err = svc.CloseCall(ctx, coordSess, "JT-2001", CloseCallRequest{ClaimDecision: "no"})
	assert.ErrorIs(t, err, ErrNotCompleted)
}

func TestService_CloseCall_EngineerForbidden(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.CloseCall(context.Background(), engSess, "JT-2001", CloseCallRequest{ClaimDecision: "no"})
	assert.ErrorIs(t, err, ErrForbidden)
}

// Regressing out of Completed clears the completion stamp; re-entering sets a
// fresh one.
func TestService_UpdateStatus_RegressClearsCompletedOn(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, coordSess, validCreate())
	require.NoError(t, err)

	j, err := svc.UpdateStatus(ctx, coordSess, "JT-2001", "Completed")
	require.NoError(t, err)
	require.NotNil(t, j.CompletedOn)
	first := *j.CompletedOn

	j, err = svc.UpdateStatus(ctx, coordSess, "JT-2001", "In Progress")
	require.NoError(t, err)
	assert.Nil(t, j.CompletedOn)

	time.Sleep(5 * time.Millisecond)
	j, err = svc.UpdateStatus(ctx, coordSess, "JT-2001", "Completed")
	require.NoError(t, err)
	require.NotNil(t, j.CompletedOn)
	assert.True(t, j.CompletedOn.After(first))
}

func TestService_UpdateStatus_InvalidValue(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, coordSess, validCreate())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, coordSess, "JT-2001", "Closed")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_EngineerScope(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	req := validCreate()
	req.Engineers = []string{"sanjay@co.local"}
	_, err := svc.Create(ctx, coordSess, req)
	require.NoError(t, err)

	_, err = svc.Get(ctx, engSess, "JT-2001")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.AddEngineer(ctx, coordSess, "JT-2001", engSess.Email)
	require.NoError(t, err)

	j, err := svc.Get(ctx, engSess, "JT-2001")
	require.NoError(t, err)
	assert.Equal(t, "JT-2001", j.JobID)

	jobs, err := svc.List(ctx, engSess)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "JT-2001", jobs[0].JobID)
}

func TestService_UpdateWorkLog_EngineerOnAssignedJob(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	req := validCreate()
	req.Engineers = []string{engSess.Email}
	_, err := svc.Create(ctx, coordSess, req)
	require.NoError(t, err)

	notes := "Condenser coil cleaned"
	j, err := svc.UpdateWorkLog(ctx, engSess, "JT-2001", UpdateWorkLogRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "Condenser coil cleaned", j.Notes)
	assert.Equal(t, engSess.Email, j.LastEditedBy)
	assert.NotNil(t, j.LastEditedAt)
}

// After closure, engineers are locked out of the work log while coordinators
// and owners retain a correction channel.
func TestService_UpdateWorkLog_AfterClosure(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	req := validCreate()
	req.Engineers = []string{engSess.Email}
	_, err := svc.Create(ctx, coordSess, req)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, coordSess, "JT-2001", "Completed")
	require.NoError(t, err)
	_, err = svc.CloseCall(ctx, coordSess, "JT-2001", CloseCallRequest{ClaimDecision: "no"})
	require.NoError(t, err)

	charges := "4500"
	_, err = svc.UpdateWorkLog(ctx, engSess, "JT-2001", UpdateWorkLogRequest{Charges: &charges})
	assert.ErrorIs(t, err, ErrJobClosed)

	j, err := svc.UpdateWorkLog(ctx, ownerSess, "JT-2001", UpdateWorkLogRequest{Charges: &charges})
	require.NoError(t, err)
	assert.Equal(t, "4500", j.Charges)
	assert.Equal(t, ownerSess.Email, j.LastEditedBy)
}

func TestService_AddEngineer_LimitNoMutation(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	req := validCreate()
	req.Engineers = []string{"a@co.local", "b@co.local", "c@co.local"}
	_, err := svc.Create(ctx, coordSess, req)
	require.NoError(t, err)

	_, err = svc.AddEngineer(ctx, coordSess, "JT-2001", "d@co.local")
	assert.ErrorIs(t, err, ErrEngineerLimit)

	stored, _ := repo.GetByJobID(ctx, "JT-2001")
	assert.Equal(t, []string{"a@co.local", "b@co.local", "c@co.local"}, stored.Engineers)
}

func TestService_AddEngineer_DuplicateIsNoOp(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	req := validCreate()
	req.Engineers = []string{"a@co.local"}
	_, err := svc.Create(ctx, coordSess, req)
	require.NoError(t, err)

	j, err := svc.AddEngineer(ctx, coordSess, "JT-2001", "a@co.local")
	require.NoError(t, err)
	assert.Equal(t, []string{"a@co.local"}, j.Engineers)
}

func TestService_RemoveEngineer_LastEntryAllowed(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	req := validCreate()
	req.Engineers = []string{"a@co.local"}
	_, err := svc.Create(ctx, coordSess, req)
	require.NoError(t, err)

	j, err := svc.RemoveEngineer(ctx, coordSess, "JT-2001", 0)
	require.NoError(t, err)
	assert.Empty(t, j.Engineers)
}

func TestService_SetEngineer_OutOfRange(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	req := validCreate()
	req.Engineers = []string{"a@co.local"}
	_, err := svc.Create(ctx, coordSess, req)
	require.NoError(t, err)

	_, err = svc.SetEngineer(ctx, coordSess, "JT-2001", 2, "b@co.local")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_PublicStatus(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, coordSess, validCreate())
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, coordSess, "JT-2001", "Completed")
	require.NoError(t, err)

	resp, err := svc.PublicStatus(ctx, "JT-2001")
	require.NoError(t, err)
	assert.Equal(t, "JT-2001", resp.JobID)
	assert.Equal(t, "Completed", resp.Status)
	assert.NotEmpty(t, resp.CompletedOn)
	assert.Empty(t, resp.ClosedAt)

	_, err = svc.PublicStatus(ctx, "JT-9999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func updateFromCreate(req CreateJobRequest) UpdateJobRequest {
	return UpdateJobRequest{
		Date:         req.Date,
		Location:     req.Location,
		CustomerName: req.CustomerName,
		POC:          req.POC,
		Phone:        req.Phone,
		City:         req.City,
		GSTIN:        req.GSTIN,
		Brand:        req.Brand,
		Model:        req.Model,
		SerialNo:     req.SerialNo,
		CallStatus:   req.CallStatus,
		Description:  req.Description,
		Engineers:    req.Engineers,
	}
}
