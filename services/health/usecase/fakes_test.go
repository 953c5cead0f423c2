package usecase

import (
	"context"
	"time"

	"schoolhealth/domain"
)

// The fakes below back the usecase tests. Unset function fields mean the
// test does not expect that call.

type fakeUserRepo struct {
	users     map[int]*domain.User
	taken     map[string]bool
	created   []*domain.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users: make(map[int]*domain.User),
		taken: make(map[string]bool),
	}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserRepo) CreateStudentWithProfile(_ context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserRepo) FindUserByID(_ context.Context, id int) (*domain.User, error) {
	user, okay := f.users[id]
	if !okay {
		return nil, domain.NotFound("user with ID %d not found", id)
	}
	return user, nil
}

func (f *fakeUserRepo) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, domain.NotFound("user %s not found", username)
}

func (f *fakeUserRepo) ListUsers(_ context.Context, role string) (*[]domain.User, error) {
	out := []domain.User{}
	for _, user := range f.users {
		if role == "" || user.Role == role {
			out = append(out, *user)
		}
	}
	return &out, nil
}

func (f *fakeUserRepo) SaveUser(_ context.Context, user *domain.User) error {
	f.users[user.UserID] = user
	return nil
}

func (f *fakeUserRepo) SetUserActive(_ context.Context, id int, active bool) error {
	user, okay := f.users[id]
	if !okay {
		return domain.NotFound("user with ID %d not found", id)
	}
	user.IsActive = active
	return nil
}

func (f *fakeUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	return f.taken[username], nil
}

type fakeRelationRepo struct {
	relations map[int]*domain.StudentParentRelation
	linked    map[[2]int]bool
	saved     []*domain.StudentParentRelation
	created   []*domain.StudentParentRelation
	nextID    int
}

func newFakeRelationRepo() *fakeRelationRepo {
	return &fakeRelationRepo{
		relations: make(map[int]*domain.StudentParentRelation),
		linked:    make(map[[2]int]bool),
		nextID:    1,
	}
}

func (f *fakeRelationRepo) FindRelation(_ context.Context, studentID, parentID int) (*domain.StudentParentRelation, error) {
	for _, rel := range f.relations {
		if rel.StudentID == studentID && rel.ParentID == parentID {
			return rel, nil
		}
	}
	return nil, domain.NotFound("relation not found")
}

func (f *fakeRelationRepo) FindRelationByID(_ context.Context, id int) (*domain.StudentParentRelation, error) {
	rel, okay := f.relations[id]
	if !okay {
		return nil, domain.NotFound("link request %d not found", id)
	}
	return rel, nil
}

func (f *fakeRelationRepo) CreateRelation(_ context.Context, rel *domain.StudentParentRelation) error {
	rel.RelationID = f.nextID
	f.nextID++
	f.relations[rel.RelationID] = rel
	f.created = append(f.created, rel)
	return nil
}

func (f *fakeRelationRepo) SaveRelation(_ context.Context, rel *domain.StudentParentRelation) error {
	f.relations[rel.RelationID] = rel
	f.saved = append(f.saved, rel)
	return nil
}

func (f *fakeRelationRepo) ListPendingRelations(_ context.Context) (*[]domain.StudentParentRelation, error) {
	out := []domain.StudentParentRelation{}
	for _, rel := range f.relations {
		if rel.Status == domain.RelationPending && rel.IsActive {
			out = append(out, *rel)
		}
	}
	return &out, nil
}

func (f *fakeRelationRepo) ListRelationsByParent(_ context.Context, parentID int) (*[]domain.StudentParentRelation, error) {
	out := []domain.StudentParentRelation{}
	for _, rel := range f.relations {
		if rel.ParentID == parentID {
			out = append(out, *rel)
		}
	}
	return &out, nil
}

func (f *fakeRelationRepo) ListLinkedStudents(_ context.Context, parentID int) (*[]domain.User, error) {
	return &[]domain.User{}, nil
}

func (f *fakeRelationRepo) ListLinkedParents(_ context.Context, studentID int) (*[]domain.StudentParentRelation, error) {
	out := []domain.StudentParentRelation{}
	for _, rel := range f.relations {
		if rel.StudentID == studentID && rel.Status == domain.RelationApproved && rel.IsActive {
			out = append(out, *rel)
		}
	}
	return &out, nil
}

func (f *fakeRelationRepo) IsLinked(_ context.Context, parentID, studentID int) (bool, error) {
	return f.linked[[2]int{parentID, studentID}], nil
}

type fakeMedicineRequestRepo struct {
	requests map[int]*domain.MedicineRequest
	created  []*domain.MedicineRequest
	nextID   int
}

func newFakeMedicineRequestRepo() *fakeMedicineRequestRepo {
	return &fakeMedicineRequestRepo{
		requests: make(map[int]*domain.MedicineRequest),
		nextID:   1,
	}
}

func (f *fakeMedicineRequestRepo) CreateMedicineRequest(_ context.Context, req *domain.MedicineRequest) error {
	req.RequestID = f.nextID
	f.nextID++
	f.requests[req.RequestID] = req
	f.created = append(f.created, req)
	return nil
}

func (f *fakeMedicineRequestRepo) FindMedicineRequestByID(_ context.Context, id int) (*domain.MedicineRequest, error) {
	req, okay := f.requests[id]
	if !okay {
		return nil, domain.NotFound("medicine request %d not found", id)
	}
	return req, nil
}

func (f *fakeMedicineRequestRepo) ListMedicineRequests(_ context.Context, studentID int) (*[]domain.MedicineRequest, error) {
	return &[]domain.MedicineRequest{}, nil
}

func (f *fakeMedicineRequestRepo) ListMedicineRequestsByParent(_ context.Context, parentID int) (*[]domain.MedicineRequest, error) {
	return &[]domain.MedicineRequest{}, nil
}

func (f *fakeMedicineRequestRepo) SaveMedicineRequest(_ context.Context, req *domain.MedicineRequest) error {
	f.requests[req.RequestID] = req
	return nil
}

type fakeCampaignRepo struct {
	campaigns map[string]*domain.Campaign
	results   map[string]*domain.CampaignResult
	consents  []*domain.CampaignConsent
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{
		campaigns: make(map[string]*domain.Campaign),
		results:   make(map[string]*domain.CampaignResult),
	}
}

func (f *fakeCampaignRepo) CreateCampaign(_ context.Context, c *domain.Campaign) error {
	f.campaigns[c.CampaignID] = c
	return nil
}

func (f *fakeCampaignRepo) FindCampaignByID(_ context.Context, id string) (*domain.Campaign, error) {
	c, okay := f.campaigns[id]
	if !okay {
		return nil, domain.NotFound("campaign %s not found", id)
	}
	return c, nil
}

func (f *fakeCampaignRepo) ListCampaigns(_ context.Context) (*[]domain.Campaign, error) {
	out := []domain.Campaign{}
	for _, c := range f.campaigns {
		out = append(out, *c)
	}
	return &out, nil
}

func (f *fakeCampaignRepo) SaveCampaign(_ context.Context, c *domain.Campaign) error {
	f.campaigns[c.CampaignID] = c
	return nil
}

func (f *fakeCampaignRepo) UpsertConsent(_ context.Context, consent *domain.CampaignConsent) (*domain.CampaignConsent, error) {
	f.consents = append(f.consents, consent)
	return consent, nil
}

func (f *fakeCampaignRepo) ListConsentsByCampaign(_ context.Context, campaignID string) (*[]domain.CampaignConsent, error) {
	return &[]domain.CampaignConsent{}, nil
}

func (f *fakeCampaignRepo) ListConsentsByParent(_ context.Context, parentID int) (*[]domain.CampaignConsent, error) {
	return &[]domain.CampaignConsent{}, nil
}

func (f *fakeCampaignRepo) CreateResult(_ context.Context, result *domain.CampaignResult) error {
	f.results[result.ResultID] = result
	return nil
}

func (f *fakeCampaignRepo) FindResultByID(_ context.Context, id string) (*domain.CampaignResult, error) {
	result, okay := f.results[id]
	if !okay {
		return nil, domain.NotFound("campaign result %s not found", id)
	}
	return result, nil
}

func (f *fakeCampaignRepo) ListResultsByCampaign(_ context.Context, campaignID string) (*[]domain.CampaignResult, error) {
	return &[]domain.CampaignResult{}, nil
}

type fakeConsultationRepo struct {
	consultations map[string]*domain.ConsultationSchedule
	booked        []struct{ start, end time.Time }
	created       []*domain.ConsultationSchedule
}

func newFakeConsultationRepo() *fakeConsultationRepo {
	return &fakeConsultationRepo{
		consultations: make(map[string]*domain.ConsultationSchedule),
	}
}

func (f *fakeConsultationRepo) CreateConsultation(_ context.Context, c *domain.ConsultationSchedule) error {
	f.consultations[c.ConsultationID] = c
	f.created = append(f.created, c)
	return nil
}

func (f *fakeConsultationRepo) FindConsultationByID(_ context.Context, id string) (*domain.ConsultationSchedule, error) {
	c, okay := f.consultations[id]
	if !okay {
		return nil, domain.NotFound("consultation %s not found", id)
	}
	return c, nil
}

func (f *fakeConsultationRepo) ListConsultations(_ context.Context) (*[]domain.ConsultationSchedule, error) {
	return &[]domain.ConsultationSchedule{}, nil
}

func (f *fakeConsultationRepo) ListConsultationsByParent(_ context.Context, parentID int) (*[]domain.ConsultationSchedule, error) {
	return &[]domain.ConsultationSchedule{}, nil
}

func (f *fakeConsultationRepo) ListConsultationsByStudent(_ context.Context, studentID int) (*[]domain.ConsultationSchedule, error) {
	return &[]domain.ConsultationSchedule{}, nil
}

func (f *fakeConsultationRepo) SaveConsultation(_ context.Context, c *domain.ConsultationSchedule) error {
	f.consultations[c.ConsultationID] = c
	return nil
}

func (f *fakeConsultationRepo) HasOverlap(_ context.Context, staffID int, start, end time.Time) (bool, error) {
	for _, slot := range f.booked {
		if domain.IntervalsOverlap(start, end, slot.start, slot.end) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeConsultationRepo) book(start, end time.Time) {
	f.booked = append(f.booked, struct{ start, end time.Time }{start, end})
}

type fakeHealthProfileRepo struct {
	profiles map[int]*domain.HealthProfile
	upserted []*domain.HealthProfile
}

func newFakeHealthProfileRepo() *fakeHealthProfileRepo {
	return &fakeHealthProfileRepo{
		profiles: make(map[int]*domain.HealthProfile),
	}
}

func (f *fakeHealthProfileRepo) UpsertHealthProfile(_ context.Context, profile *domain.HealthProfile) (*domain.HealthProfile, error) {
	f.profiles[profile.StudentID] = profile
	f.upserted = append(f.upserted, profile)
	return profile, nil
}

func (f *fakeHealthProfileRepo) GetHealthProfileByStudent(_ context.Context, studentID int) (*domain.HealthProfile, error) {
	profile, okay := f.profiles[studentID]
	if !okay {
		return nil, domain.NotFound("health profile for student %d not found", studentID)
	}
	return profile, nil
}
