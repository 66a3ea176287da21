package service

import (
	"context"
	"sort"
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory store fakes. Reads hand out copies so a test only observes
// mutations that went through Save, like a real round trip would.

type fakeUserStore struct {
	users map[primitive.ObjectID]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*model.User)}
}

func (f *fakeUserStore) add(u *model.User) primitive.ObjectID {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	c := *u
	f.users[u.ID] = &c
	return u.ID
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return util.ErrEmailRegistered
		}
	}
	f.add(u)
	return nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, util.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, util.ErrUserNotFound
}

func (f *fakeUserStore) Save(_ context.Context, u *model.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return util.ErrUserNotFound
	}
	c := *u
	f.users[u.ID] = &c
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.users[id]; !ok {
		return util.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) ExistsByRole(_ context.Context, role model.UserRole) (bool, error) {
	for _, u := range f.users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) List(_ context.Context, filter bson.M, page, limit int) ([]model.User, int64, error) {
	var out []model.User
	for _, u := range f.users {
		if role, ok := filter["role"]; ok && u.Role != role.(model.UserRole) {
			continue
		}
		if school, ok := filter["school"]; ok && u.School != school.(string) {
			continue
		}
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserStore) TopByPoints(_ context.Context, field, school string, limit int) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		if u.Role != model.Student {
			continue
		}
		if school != "" && u.School != school {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		return pointsBy(out[i], field) > pointsBy(out[j], field)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func pointsBy(u model.User, field string) int {
	switch field {
	case "monthlyPoints":
		return u.MonthlyPoints
	case "weeklyPoints":
		return u.WeeklyPoints
	default:
		return u.Points
	}
}

type fakeModuleStore struct {
	modules map[primitive.ObjectID]*model.Module
}

func newFakeModuleStore() *fakeModuleStore {
	return &fakeModuleStore{modules: make(map[primitive.ObjectID]*model.Module)}
}

func (f *fakeModuleStore) add(m *model.Module) primitive.ObjectID {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	c := *m
	f.modules[m.ID] = &c
	return m.ID
}

func (f *fakeModuleStore) Create(_ context.Context, m *model.Module) error {
	f.add(m)
	return nil
}

func (f *fakeModuleStore) FindByID(_ context.Context, id primitive.ObjectID) (*model.Module, error) {
	m, ok := f.modules[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	c := *m
	return &c, nil
}

func (f *fakeModuleStore) FindActive(_ context.Context, category string) ([]model.Module, error) {
	var out []model.Module
	for _, m := range f.modules {
		if !m.IsActive {
			continue
		}
		if category != "" && m.Category != category {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeModuleStore) Save(_ context.Context, m *model.Module) error {
	if _, ok := f.modules[m.ID]; !ok {
		return util.ErrNotFound
	}
	c := *m
	f.modules[m.ID] = &c
	return nil
}

func (f *fakeModuleStore) Deactivate(_ context.Context, id primitive.ObjectID) error {
	m, ok := f.modules[id]
	if !ok {
		return util.ErrNotFound
	}
	m.IsActive = false
	return nil
}

type fakeProgressStore struct {
	records map[primitive.ObjectID]*model.UserProgress
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{records: make(map[primitive.ObjectID]*model.UserProgress)}
}

func (f *fakeProgressStore) Create(_ context.Context, p *model.UserProgress) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	c := *p
	f.records[p.ID] = &c
	return nil
}

func (f *fakeProgressStore) FindByUserAndModule(_ context.Context, userID, moduleID primitive.ObjectID) (*model.UserProgress, error) {
	for _, p := range f.records {
		if p.User == userID && p.Module == moduleID {
			c := *p
			return &c, nil
		}
	}
	return nil, util.ErrNotFound
}

func (f *fakeProgressStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]model.UserProgress, error) {
	var out []model.UserProgress
	for _, p := range f.records {
		if p.User == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProgressStore) Save(_ context.Context, p *model.UserProgress) error {
	if _, ok := f.records[p.ID]; !ok {
		return util.ErrNotFound
	}
	c := *p
	f.records[p.ID] = &c
	return nil
}

type fakeQuizStore struct {
	quizzes map[primitive.ObjectID]*model.Quiz
}

func newFakeQuizStore() *fakeQuizStore {
	return &fakeQuizStore{quizzes: make(map[primitive.ObjectID]*model.Quiz)}
}

func (f *fakeQuizStore) add(q *model.Quiz) primitive.ObjectID {
	if q.ID.IsZero() {
		q.ID = primitive.NewObjectID()
	}
	c := *q
	f.quizzes[q.ID] = &c
	return q.ID
}

func (f *fakeQuizStore) Create(_ context.Context, q *model.Quiz) error {
	f.add(q)
	return nil
}

func (f *fakeQuizStore) FindByID(_ context.Context, id primitive.ObjectID) (*model.Quiz, error) {
	q, ok := f.quizzes[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	c := *q
	return &c, nil
}

func (f *fakeQuizStore) FindActive(_ context.Context, moduleID *primitive.ObjectID) ([]model.Quiz, error) {
	var out []model.Quiz
	for _, q := range f.quizzes {
		if !q.IsActive || q.IsDailyQuestion {
			continue
		}
		if moduleID != nil && q.Module != *moduleID {
			continue
		}
		out = append(out, *q)
	}
	return out, nil
}

func (f *fakeQuizStore) FindDaily(_ context.Context, date, school string) (*model.Quiz, error) {
	var global *model.Quiz
	for _, q := range f.quizzes {
		if !q.IsDailyQuestion || q.DailyDate != date {
			continue
		}
		if q.School == school {
			c := *q
			return &c, nil
		}
		if q.School == "" {
			global = q
		}
	}
	if global != nil {
		c := *global
		return &c, nil
	}
	return nil, util.ErrNotFound
}

func (f *fakeQuizStore) FindAnyActiveDaily(_ context.Context, school string) (*model.Quiz, error) {
	for _, q := range f.quizzes {
		if q.IsDailyQuestion && q.IsActive && (school == "" || q.School == school || q.School == "") {
			c := *q
			return &c, nil
		}
	}
	return nil, util.ErrNotFound
}

func (f *fakeQuizStore) Save(_ context.Context, q *model.Quiz) error {
	if _, ok := f.quizzes[q.ID]; !ok {
		return util.ErrNotFound
	}
	c := *q
	f.quizzes[q.ID] = &c
	return nil
}

func (f *fakeQuizStore) Deactivate(_ context.Context, id primitive.ObjectID) error {
	q, ok := f.quizzes[id]
	if !ok {
		return util.ErrNotFound
	}
	q.IsActive = false
	return nil
}

type fakeAttemptStore struct {
	attempts []model.QuizAttempt
}

func (f *fakeAttemptStore) Create(_ context.Context, a *model.QuizAttempt) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	f.attempts = append(f.attempts, *a)
	return nil
}

func (f *fakeAttemptStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]model.QuizAttempt, error) {
	var out []model.QuizAttempt
	for _, a := range f.attempts {
		if a.User == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAttemptStore) FindByQuiz(_ context.Context, quizID primitive.ObjectID) ([]model.QuizAttempt, error) {
	var out []model.QuizAttempt
	for _, a := range f.attempts {
		if a.Quiz == quizID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeChallengeStore struct {
	challenges map[primitive.ObjectID]*model.Challenge
}

func newFakeChallengeStore() *fakeChallengeStore {
	return &fakeChallengeStore{challenges: make(map[primitive.ObjectID]*model.Challenge)}
}

func (f *fakeChallengeStore) add(ch *model.Challenge) primitive.ObjectID {
	if ch.ID.IsZero() {
		ch.ID = primitive.NewObjectID()
	}
	c := *ch
	f.challenges[ch.ID] = &c
	return ch.ID
}

func (f *fakeChallengeStore) Create(_ context.Context, ch *model.Challenge) error {
	f.add(ch)
	return nil
}

func (f *fakeChallengeStore) FindByID(_ context.Context, id primitive.ObjectID) (*model.Challenge, error) {
	ch, ok := f.challenges[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	c := *ch
	c.Participants = append([]model.Participant(nil), ch.Participants...)
	for i := range c.Participants {
		c.Participants[i].Submissions = append([]model.Submission(nil), ch.Participants[i].Submissions...)
	}
	return &c, nil
}

func (f *fakeChallengeStore) FindActive(_ context.Context, category string) ([]model.Challenge, error) {
	var out []model.Challenge
	for _, ch := range f.challenges {
		if !ch.IsActive {
			continue
		}
		if category != "" && ch.Category != category {
			continue
		}
		out = append(out, *ch)
	}
	return out, nil
}

func (f *fakeChallengeStore) FindJoinedBy(_ context.Context, userID primitive.ObjectID) ([]model.Challenge, error) {
	var out []model.Challenge
	for _, ch := range f.challenges {
		if ch.FindParticipant(userID) != nil {
			out = append(out, *ch)
		}
	}
	return out, nil
}

func (f *fakeChallengeStore) FindWithPendingSubmissions(_ context.Context) ([]model.Challenge, error) {
	var out []model.Challenge
	for _, ch := range f.challenges {
		pending := false
		for _, p := range ch.Participants {
			for _, sub := range p.Submissions {
				if sub.Status == model.SubmissionPending {
					pending = true
				}
			}
		}
		if pending {
			out = append(out, *ch)
		}
	}
	return out, nil
}

func (f *fakeChallengeStore) Save(_ context.Context, ch *model.Challenge) error {
	if _, ok := f.challenges[ch.ID]; !ok {
		return util.ErrNotFound
	}
	c := *ch
	f.challenges[ch.ID] = &c
	return nil
}

func (f *fakeChallengeStore) Deactivate(_ context.Context, id primitive.ObjectID) error {
	ch, ok := f.challenges[id]
	if !ok {
		return util.ErrNotFound
	}
	ch.IsActive = false
	return nil
}

type fakeRewardStore struct {
	rewards map[primitive.ObjectID]*model.Reward
}

func newFakeRewardStore() *fakeRewardStore {
	return &fakeRewardStore{rewards: make(map[primitive.ObjectID]*model.Reward)}
}

func (f *fakeRewardStore) add(rw *model.Reward) primitive.ObjectID {
	if rw.ID.IsZero() {
		rw.ID = primitive.NewObjectID()
	}
	c := *rw
	if rw.Stock != nil {
		stock := *rw.Stock
		c.Stock = &stock
	}
	f.rewards[rw.ID] = &c
	return rw.ID
}

func (f *fakeRewardStore) Create(_ context.Context, rw *model.Reward) error {
	f.add(rw)
	return nil
}

func (f *fakeRewardStore) FindByID(_ context.Context, id primitive.ObjectID) (*model.Reward, error) {
	rw, ok := f.rewards[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	c := *rw
	if rw.Stock != nil {
		stock := *rw.Stock
		c.Stock = &stock
	}
	return &c, nil
}

func (f *fakeRewardStore) FindActive(_ context.Context, category string) ([]model.Reward, error) {
	var out []model.Reward
	for _, rw := range f.rewards {
		if !rw.IsActive {
			continue
		}
		if category != "" && rw.Category != category {
			continue
		}
		out = append(out, *rw)
	}
	return out, nil
}

func (f *fakeRewardStore) Save(_ context.Context, rw *model.Reward) error {
	if _, ok := f.rewards[rw.ID]; !ok {
		return util.ErrNotFound
	}
	f.add(rw)
	return nil
}

func (f *fakeRewardStore) DecrementStock(_ context.Context, id primitive.ObjectID) error {
	rw, ok := f.rewards[id]
	if !ok || rw.Stock == nil || *rw.Stock <= 0 {
		return util.ErrRewardOutOfStock
	}
	*rw.Stock--
	return nil
}

func (f *fakeRewardStore) Deactivate(_ context.Context, id primitive.ObjectID) error {
	rw, ok := f.rewards[id]
	if !ok {
		return util.ErrNotFound
	}
	rw.IsActive = false
	return nil
}

type fakeRedemptionStore struct {
	redemptions map[primitive.ObjectID]*model.Redemption
}

func newFakeRedemptionStore() *fakeRedemptionStore {
	return &fakeRedemptionStore{redemptions: make(map[primitive.ObjectID]*model.Redemption)}
}

func (f *fakeRedemptionStore) Create(_ context.Context, rd *model.Redemption) error {
	if rd.ID.IsZero() {
		rd.ID = primitive.NewObjectID()
	}
	c := *rd
	f.redemptions[rd.ID] = &c
	return nil
}

func (f *fakeRedemptionStore) FindByID(_ context.Context, id primitive.ObjectID) (*model.Redemption, error) {
	rd, ok := f.redemptions[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	c := *rd
	return &c, nil
}

func (f *fakeRedemptionStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]model.Redemption, error) {
	var out []model.Redemption
	for _, rd := range f.redemptions {
		if rd.User == userID {
			out = append(out, *rd)
		}
	}
	return out, nil
}

func (f *fakeRedemptionStore) List(_ context.Context, status model.RedemptionStatus, page, limit int) ([]model.Redemption, int64, error) {
	var out []model.Redemption
	for _, rd := range f.redemptions {
		if status != "" && rd.Status != status {
			continue
		}
		out = append(out, *rd)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRedemptionStore) Save(_ context.Context, rd *model.Redemption) error {
	if _, ok := f.redemptions[rd.ID]; !ok {
		return util.ErrNotFound
	}
	c := *rd
	f.redemptions[rd.ID] = &c
	return nil
}

type fakeSurveyStore struct {
	surveys map[primitive.ObjectID]*model.Survey
}

func newFakeSurveyStore() *fakeSurveyStore {
	return &fakeSurveyStore{surveys: make(map[primitive.ObjectID]*model.Survey)}
}

func (f *fakeSurveyStore) add(s *model.Survey) primitive.ObjectID {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	c := *s
	f.surveys[s.ID] = &c
	return s.ID
}

func (f *fakeSurveyStore) Create(_ context.Context, s *model.Survey) error {
	f.add(s)
	return nil
}

func (f *fakeSurveyStore) FindByID(_ context.Context, id primitive.ObjectID) (*model.Survey, error) {
	s, ok := f.surveys[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	c := *s
	return &c, nil
}

func (f *fakeSurveyStore) FindActive(_ context.Context) ([]model.Survey, error) {
	var out []model.Survey
	for _, s := range f.surveys {
		if s.IsActive {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSurveyStore) Save(_ context.Context, s *model.Survey) error {
	if _, ok := f.surveys[s.ID]; !ok {
		return util.ErrNotFound
	}
	c := *s
	f.surveys[s.ID] = &c
	return nil
}

func (f *fakeSurveyStore) Deactivate(_ context.Context, id primitive.ObjectID) error {
	s, ok := f.surveys[id]
	if !ok {
		return util.ErrNotFound
	}
	s.IsActive = false
	return nil
}

type fakeEventStore struct {
	events map[primitive.ObjectID]*model.Event
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[primitive.ObjectID]*model.Event)}
}

func (f *fakeEventStore) add(e *model.Event) primitive.ObjectID {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	c := *e
	c.Registrations = append([]model.EventRegistration(nil), e.Registrations...)
	f.events[e.ID] = &c
	return e.ID
}

func (f *fakeEventStore) Create(_ context.Context, e *model.Event) error {
	f.add(e)
	return nil
}

func (f *fakeEventStore) FindByID(_ context.Context, id primitive.ObjectID) (*model.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	c := *e
	c.Registrations = append([]model.EventRegistration(nil), e.Registrations...)
	return &c, nil
}

func (f *fakeEventStore) FindUpcoming(_ context.Context, now time.Time) ([]model.Event, error) {
	var out []model.Event
	for _, e := range f.events {
		if e.IsActive && !e.Date.Before(now) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEventStore) FindAll(_ context.Context) ([]model.Event, error) {
	var out []model.Event
	for _, e := range f.events {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEventStore) Save(_ context.Context, e *model.Event) error {
	if _, ok := f.events[e.ID]; !ok {
		return util.ErrNotFound
	}
	f.add(e)
	return nil
}

func (f *fakeEventStore) Deactivate(_ context.Context, id primitive.ObjectID) error {
	e, ok := f.events[id]
	if !ok {
		return util.ErrNotFound
	}
	e.IsActive = false
	return nil
}

type fakePinStore struct {
	pins map[primitive.ObjectID]*model.EcoPin
}

func newFakePinStore() *fakePinStore {
	return &fakePinStore{pins: make(map[primitive.ObjectID]*model.EcoPin)}
}

func (f *fakePinStore) add(p *model.EcoPin) primitive.ObjectID {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	c := *p
	f.pins[p.ID] = &c
	return p.ID
}

func (f *fakePinStore) Create(_ context.Context, p *model.EcoPin) error {
	f.add(p)
	return nil
}

func (f *fakePinStore) FindByID(_ context.Context, id primitive.ObjectID) (*model.EcoPin, error) {
	p, ok := f.pins[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (f *fakePinStore) FindActive(_ context.Context, filter model.PinFilter) ([]model.EcoPin, error) {
	var out []model.EcoPin
	for _, p := range f.pins {
		if p.IsActive && filter.Matches(p) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePinStore) Save(_ context.Context, p *model.EcoPin) error {
	if _, ok := f.pins[p.ID]; !ok {
		return util.ErrNotFound
	}
	c := *p
	f.pins[p.ID] = &c
	return nil
}

func (f *fakePinStore) Deactivate(_ context.Context, id primitive.ObjectID) error {
	p, ok := f.pins[id]
	if !ok {
		return util.ErrNotFound
	}
	p.IsActive = false
	return nil
}

type fakePinRequestStore struct {
	requests map[primitive.ObjectID]*model.PinRequest
}

func newFakePinRequestStore() *fakePinRequestStore {
	return &fakePinRequestStore{requests: make(map[primitive.ObjectID]*model.PinRequest)}
}

func (f *fakePinRequestStore) Create(_ context.Context, req *model.PinRequest) error {
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	c := *req
	f.requests[req.ID] = &c
	return nil
}

func (f *fakePinRequestStore) FindByID(_ context.Context, id primitive.ObjectID) (*model.PinRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	c := *req
	return &c, nil
}

func (f *fakePinRequestStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]model.PinRequest, error) {
	var out []model.PinRequest
	for _, req := range f.requests {
		if req.RequestedBy == userID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *fakePinRequestStore) List(_ context.Context, status model.PinRequestStatus) ([]model.PinRequest, error) {
	var out []model.PinRequest
	for _, req := range f.requests {
		if status != "" && req.Status != status {
			continue
		}
		out = append(out, *req)
	}
	return out, nil
}

func (f *fakePinRequestStore) Save(_ context.Context, req *model.PinRequest) error {
	if _, ok := f.requests[req.ID]; !ok {
		return util.ErrNotFound
	}
	c := *req
	f.requests[req.ID] = &c
	return nil
}

type fakeCodeStore struct {
	codes map[string]string
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{codes: make(map[string]string)}
}

func (f *fakeCodeStore) Set(_ context.Context, email, code string) error {
	f.codes[email] = code
	return nil
}

func (f *fakeCodeStore) Verify(_ context.Context, email, code string) error {
	stored, ok := f.codes[email]
	if !ok || stored != code {
		return util.ErrInvalidOTP
	}
	delete(f.codes, email)
	return nil
}
