package service

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"

	"github.com/Joechristian9/SituationalReport-sub000/internal/model"
	"github.com/Joechristian9/SituationalReport-sub000/internal/repository"
)

var errMockDB = errors.New("mock: connection reset")

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	all := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	total := int64(len(all))
	if offset >= len(all) {
		return []model.User{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

// ── Mock TyphoonRepository ──

type mockTyphoonRepo struct {
	typhoons map[uint]*model.Typhoon
	nextID   uint
	clock    clockwork.Clock
	// referenced reports whether report rows still point at a typhoon
	referenced func(id uint) bool
	// beforeWrite runs between the locked read and the conditional write
	beforeWrite func(id uint)
}

func newMockTyphoonRepo(clock clockwork.Clock) *mockTyphoonRepo {
	return &mockTyphoonRepo{typhoons: make(map[uint]*model.Typhoon), nextID: 1, clock: clock}
}

func (m *mockTyphoonRepo) Create(_ context.Context, t *model.Typhoon) error {
	// mirrors uq_typhoons_single_open
	if t.IsOpen() {
		for _, existing := range m.typhoons {
			if existing.IsOpen() {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	t.ID = m.nextID
	m.nextID++
	t.CreatedAt = m.clock.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	m.typhoons[t.ID] = &cp
	return nil
}

func (m *mockTyphoonRepo) GetByID(_ context.Context, id uint) (*model.Typhoon, error) {
	if t, ok := m.typhoons[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTyphoonRepo) GetOpen(_ context.Context) (*model.Typhoon, error) {
	for _, t := range m.typhoons {
		if t.IsOpen() {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTyphoonRepo) List(_ context.Context) ([]model.Typhoon, error) {
	out := make([]model.Typhoon, 0, len(m.typhoons))
	for _, t := range m.typhoons {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockTyphoonRepo) GetByIDForUpdate(ctx context.Context, id uint) (*model.Typhoon, error) {
	return m.GetByID(ctx, id)
}

func (m *mockTyphoonRepo) UpdateIfStatus(_ context.Context, t *model.Typhoon, from ...string) error {
	if m.beforeWrite != nil {
		m.beforeWrite(t.ID)
	}
	stored, ok := m.typhoons[t.ID]
	if !ok || !slices.Contains(from, stored.Status) {
		return gorm.ErrRecordNotFound
	}
	t.UpdatedAt = m.clock.Now()
	cp := *t
	m.typhoons[t.ID] = &cp
	return nil
}

func (m *mockTyphoonRepo) SetReportPath(_ context.Context, id uint, path string) error {
	stored, ok := m.typhoons[id]
	if !ok || stored.Status != model.TyphoonEnded {
		return gorm.ErrRecordNotFound
	}
	stored.ReportPath = &path
	return nil
}

func (m *mockTyphoonRepo) Delete(_ context.Context, id uint) error {
	if m.referenced != nil && m.referenced(id) {
		return gorm.ErrForeignKeyViolated
	}
	delete(m.typhoons, id)
	return nil
}

// ── Mock CommunicationServiceRepository ──

type mockCommunicationServiceRepo struct {
	services map[uint]*model.CommunicationService
	nextID   uint
}

func newMockCommunicationServiceRepo() *mockCommunicationServiceRepo {
	return &mockCommunicationServiceRepo{services: make(map[uint]*model.CommunicationService), nextID: 1}
}

func (m *mockCommunicationServiceRepo) nameTaken(name string, except uint) bool {
	for id, s := range m.services {
		if id != except && strings.EqualFold(s.Name, name) {
			return true
		}
	}
	return false
}

func (m *mockCommunicationServiceRepo) Create(_ context.Context, svc *model.CommunicationService) error {
	if m.nameTaken(svc.Name, 0) {
		return gorm.ErrDuplicatedKey
	}
	svc.ID = m.nextID
	m.nextID++
	cp := *svc
	m.services[svc.ID] = &cp
	return nil
}

func (m *mockCommunicationServiceRepo) GetByID(_ context.Context, id uint) (*model.CommunicationService, error) {
	if s, ok := m.services[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCommunicationServiceRepo) List(_ context.Context, includeInactive bool) ([]model.CommunicationService, error) {
	var out []model.CommunicationService
	for _, s := range m.services {
		if s.IsActive || includeInactive {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockCommunicationServiceRepo) Update(_ context.Context, svc *model.CommunicationService) error {
	if m.nameTaken(svc.Name, svc.ID) {
		return gorm.ErrDuplicatedKey
	}
	cp := *svc
	m.services[svc.ID] = &cp
	return nil
}

// ── Mock ModificationRepository ──

type mockModificationRepo struct {
	mods   []model.Modification
	nextID uint
	clock  clockwork.Clock
	err    error
}

func newMockModificationRepo(clock clockwork.Clock) *mockModificationRepo {
	return &mockModificationRepo{nextID: 1, clock: clock}
}

func (m *mockModificationRepo) Create(_ context.Context, mod *model.Modification) error {
	if m.err != nil {
		return m.err
	}
	mod.ID = m.nextID
	m.nextID++
	mod.CreatedAt = m.clock.Now()
	m.mods = append(m.mods, *mod)
	return nil
}

func (m *mockModificationRepo) ListByModelType(_ context.Context, modelType string) ([]model.Modification, error) {
	var out []model.Modification
	for _, mod := range m.mods {
		if mod.ModelType == modelType {
			out = append(out, mod)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// ── Mock ReportRepository[T] ──

type mockReportRepo[T any, PT interface {
	*T
	model.Record
}] struct {
	rows   map[uint]*T
	nextID uint
	clock  clockwork.Clock
	// failCreateAt makes the n-th Create (1-based) fail
	failCreateAt int
	creates      int
}

func newMockReportRepo[T any, PT interface {
	*T
	model.Record
}](clock clockwork.Clock) *mockReportRepo[T, PT] {
	return &mockReportRepo[T, PT]{rows: make(map[uint]*T), nextID: 1, clock: clock}
}

func (m *mockReportRepo[T, PT]) Create(_ context.Context, rec *T) error {
	m.creates++
	if m.failCreateAt > 0 && m.creates == m.failCreateAt {
		return errMockDB
	}
	base := PT(rec).Base()
	base.ID = m.nextID
	m.nextID++
	base.CreatedAt = m.clock.Now()
	base.UpdatedAt = base.CreatedAt
	cp := *rec
	m.rows[base.ID] = &cp
	return nil
}

func (m *mockReportRepo[T, PT]) Update(_ context.Context, rec *T) error {
	base := PT(rec).Base()
	if _, ok := m.rows[base.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	base.UpdatedAt = m.clock.Now()
	cp := *rec
	m.rows[base.ID] = &cp
	return nil
}

func (m *mockReportRepo[T, PT]) GetByID(_ context.Context, id uint) (*T, error) {
	if r, ok := m.rows[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReportRepo[T, PT]) GetByIDs(_ context.Context, ids []uint) ([]T, error) {
	var out []T
	for _, id := range ids {
		if r, ok := m.rows[id]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockReportRepo[T, PT]) List(_ context.Context, f repository.ReportFilter) ([]T, error) {
	var out []T
	for _, r := range m.rows {
		base := PT(r).Base()
		switch {
		case f.TyphoonID != nil && (base.TyphoonID == nil || *base.TyphoonID != *f.TyphoonID):
			continue
		case f.Untagged && base.TyphoonID != nil:
			continue
		case f.Since != nil && base.CreatedAt.Before(*f.Since):
			continue
		case f.Year > 0 && base.CreatedAt.Year() != f.Year:
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		bi, bj := PT(&out[i]).Base(), PT(&out[j]).Base()
		if !bi.CreatedAt.Equal(bj.CreatedAt) {
			return bi.CreatedAt.Before(bj.CreatedAt)
		}
		return bi.ID < bj.ID
	})
	return out, nil
}

func (m *mockReportRepo[T, PT]) DeleteByTyphoon(_ context.Context, typhoonID uint) error {
	for id, r := range m.rows {
		if tid := PT(r).Base().TyphoonID; tid != nil && *tid == typhoonID {
			delete(m.rows, id)
		}
	}
	return nil
}

func (m *mockReportRepo[T, PT]) count() int { return len(m.rows) }

// ── test fixture ──

type mockStore struct {
	repo          *repository.Repository
	clock         *clockwork.FakeClock
	users         *mockUserRepo
	typhoons      *mockTyphoonRepo
	comms         *mockCommunicationServiceRepo
	modifications *mockModificationRepo

	weather      *mockReportRepo[model.WeatherReport, *model.WeatherReport]
	waterLevels  *mockReportRepo[model.WaterLevel, *model.WaterLevel]
	casualties   *mockReportRepo[model.Casualty, *model.Casualty]
	damaged      *mockReportRepo[model.DamagedHouse, *model.DamagedHouse]
	commStatuses *mockReportRepo[model.CommunicationStatus, *model.CommunicationStatus]
	agriculture  *mockReportRepo[model.AgricultureReport, *model.AgricultureReport]
}

var testEpoch = time.Date(2024, time.October, 22, 8, 0, 0, 0, time.UTC)

// newMockStore builds a repository aggregate backed entirely by in-memory mocks
func newMockStore() *mockStore {
	clk := clockwork.NewFakeClockAt(testEpoch)
	s := &mockStore{
		clock:         clk,
		users:         newMockUserRepo(),
		typhoons:      newMockTyphoonRepo(clk),
		comms:         newMockCommunicationServiceRepo(),
		modifications: newMockModificationRepo(clk),
		weather:       newMockReportRepo[model.WeatherReport](clk),
		waterLevels:   newMockReportRepo[model.WaterLevel](clk),
		casualties:    newMockReportRepo[model.Casualty](clk),
		damaged:       newMockReportRepo[model.DamagedHouse](clk),
		commStatuses:  newMockReportRepo[model.CommunicationStatus](clk),
		agriculture:   newMockReportRepo[model.AgricultureReport](clk),
	}
	s.repo = &repository.Repository{
		User:                 s.users,
		Typhoon:              s.typhoons,
		CommunicationService: s.comms,
		Modification:         s.modifications,
		Reports: &repository.Reports{
			WeatherReports:        s.weather,
			WaterLevels:           s.waterLevels,
			Casualties:            s.casualties,
			Injured:               newMockReportRepo[model.Injured](clk),
			Missing:               newMockReportRepo[model.Missing](clk),
			DamagedHouses:         s.damaged,
			PreEmptiveEvacuations: newMockReportRepo[model.PreEmptiveEvacuation](clk),
			IncidentsMonitored:    newMockReportRepo[model.IncidentMonitored](clk),
			ClassSuspensions:      newMockReportRepo[model.ClassSuspension](clk),
			WorkSuspensions:       newMockReportRepo[model.WorkSuspension](clk),
			RoadBridgeStatuses:    newMockReportRepo[model.RoadBridgeStatus](clk),
			PowerOutages:          newMockReportRepo[model.PowerOutage](clk),
			CommunicationStatuses: s.commStatuses,
			ReliefAssistances:     newMockReportRepo[model.ReliefAssistance](clk),
			AgricultureReports:    s.agriculture,
		},
	}
	return s
}

// openTyphoon inserts an active typhoon directly
func (s *mockStore) openTyphoon(name string) *model.Typhoon {
	t := &model.Typhoon{Name: name, Status: model.TyphoonActive, StartedAt: s.clock.Now(), CreatedBy: testAdmin.ID}
	if err := s.typhoons.Create(context.Background(), t); err != nil {
		panic(err)
	}
	return t
}

var (
	testAdmin = Actor{ID: "11111111-1111-1111-1111-111111111111", Name: "Ops Admin", Role: model.RoleAdmin}
	testStaff = Actor{ID: "22222222-2222-2222-2222-222222222222", Name: "Field Staff", Role: model.RoleStaff}
)
