package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/benbrewster85/risk-assessment-app-sub000/internal/model"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/repository"
)

// ── Mock UserRepository / TeamRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type mockTeamRepo struct {
	teams map[string]*model.Team
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{teams: make(map[string]*model.Team)}
}

func (m *mockTeamRepo) GetByID(_ context.Context, id string) (*model.Team, error) {
	if t, ok := m.teams[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock 目录 Repository ──

type mockPersonnelRepo struct {
	people map[string]*model.Personnel
}

func newMockPersonnelRepo() *mockPersonnelRepo {
	return &mockPersonnelRepo{people: make(map[string]*model.Personnel)}
}

func (m *mockPersonnelRepo) ListByTeam(_ context.Context, teamID string) ([]model.Personnel, error) {
	var result []model.Personnel
	for _, p := range m.people {
		if p.TeamID == teamID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPersonnelRepo) GetByID(_ context.Context, id string) (*model.Personnel, error) {
	if p, ok := m.people[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type mockAssetRepo struct {
	assets     map[string]*model.Asset
	categories map[string]*model.AssetCategory
}

func newMockAssetRepo() *mockAssetRepo {
	return &mockAssetRepo{
		assets:     make(map[string]*model.Asset),
		categories: make(map[string]*model.AssetCategory),
	}
}

func (m *mockAssetRepo) ListSchedulableByTeam(_ context.Context, teamID string) ([]model.Asset, error) {
	var result []model.Asset
	for _, a := range m.assets {
		if a.TeamID != teamID || a.CategoryID == nil {
			continue
		}
		cat, ok := m.categories[*a.CategoryID]
		if !ok || cat.Class != model.AssetClassPrimary {
			continue
		}
		result = append(result, *a)
	}
	return result, nil
}

type mockVehicleRepo struct {
	vehicles map[string]*model.Vehicle
}

func newMockVehicleRepo() *mockVehicleRepo {
	return &mockVehicleRepo{vehicles: make(map[string]*model.Vehicle)}
}

func (m *mockVehicleRepo) ListByTeam(_ context.Context, teamID string) ([]model.Vehicle, error) {
	var result []model.Vehicle
	for _, v := range m.vehicles {
		if v.TeamID == teamID {
			result = append(result, *v)
		}
	}
	return result, nil
}

type mockProjectRepo struct {
	projects map[string]*model.Project
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[string]*model.Project)}
}

func (m *mockProjectRepo) ListOpenByTeam(_ context.Context, teamID string) ([]model.Project, error) {
	var result []model.Project
	for _, p := range m.projects {
		if p.TeamID == teamID && p.Status != model.ProjectStatusCompleted {
			result = append(result, *p)
		}
	}
	return result, nil
}

type mockAbsenceTypeRepo struct {
	types map[string]*model.AbsenceType
}

func newMockAbsenceTypeRepo() *mockAbsenceTypeRepo {
	return &mockAbsenceTypeRepo{types: make(map[string]*model.AbsenceType)}
}

func (m *mockAbsenceTypeRepo) ListByTeam(_ context.Context, teamID string) ([]model.AbsenceType, error) {
	var result []model.AbsenceType
	for _, at := range m.types {
		if at.TeamID == teamID {
			result = append(result, *at)
		}
	}
	return result, nil
}

func (m *mockAbsenceTypeRepo) GetByID(_ context.Context, id string) (*model.AbsenceType, error) {
	if at, ok := m.types[id]; ok {
		return at, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type mockLookupRepo struct {
	jobRoles   map[string]*model.JobRole
	subTeams   map[string]*model.SubTeam
	categories map[string]*model.AssetCategory
}

func newMockLookupRepo() *mockLookupRepo {
	return &mockLookupRepo{
		jobRoles:   make(map[string]*model.JobRole),
		subTeams:   make(map[string]*model.SubTeam),
		categories: make(map[string]*model.AssetCategory),
	}
}

func (m *mockLookupRepo) ListJobRoles(_ context.Context, teamID string) ([]model.JobRole, error) {
	var result []model.JobRole
	for _, r := range m.jobRoles {
		if r.TeamID == teamID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockLookupRepo) ListSubTeams(_ context.Context, teamID string) ([]model.SubTeam, error) {
	var result []model.SubTeam
	for _, st := range m.subTeams {
		if st.TeamID == teamID {
			result = append(result, *st)
		}
	}
	return result, nil
}

func (m *mockLookupRepo) ListAssetCategories(_ context.Context, teamID string) ([]model.AssetCategory, error) {
	var result []model.AssetCategory
	for _, c := range m.categories {
		if c.TeamID == teamID {
			result = append(result, *c)
		}
	}
	return result, nil
}

// ── Mock AllocationRepository ──

type mockAllocationRepo struct {
	allocations map[string]*model.Allocation
	seq         int
	failCreate  bool // 注入存储失败
	failList    bool // 注入列表读取失败
}

func newMockAllocationRepo() *mockAllocationRepo {
	return &mockAllocationRepo{allocations: make(map[string]*model.Allocation)}
}

func (m *mockAllocationRepo) nextID() string {
	m.seq++
	return fmt.Sprintf("alloc-%d", m.seq)
}

func (m *mockAllocationRepo) Create(_ context.Context, alloc *model.Allocation) error {
	if m.failCreate {
		return gorm.ErrInvalidData
	}
	if alloc.AllocationID == "" {
		alloc.AllocationID = m.nextID()
	}
	stored := *alloc
	m.allocations[alloc.AllocationID] = &stored
	return nil
}

func (m *mockAllocationRepo) BatchCreate(_ context.Context, allocs []model.Allocation) error {
	if m.failCreate {
		return gorm.ErrInvalidData
	}
	for i := range allocs {
		if allocs[i].AllocationID == "" {
			allocs[i].AllocationID = m.nextID()
		}
		stored := allocs[i]
		m.allocations[stored.AllocationID] = &stored
	}
	return nil
}

func (m *mockAllocationRepo) GetByID(_ context.Context, id string) (*model.Allocation, error) {
	if a, ok := m.allocations[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAllocationRepo) ListByTeamAndRange(_ context.Context, teamID string, from, to time.Time) ([]model.Allocation, error) {
	if m.failList {
		return nil, gorm.ErrInvalidData
	}
	var result []model.Allocation
	for _, a := range m.allocations {
		if a.TeamID != teamID {
			continue
		}
		if a.Date.Before(from) || a.Date.After(to) {
			continue
		}
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAllocationRepo) UpdateColumns(_ context.Context, id string, patch map[string]interface{}) error {
	a, ok := m.allocations[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range patch {
		switch column {
		case "date":
			a.Date = value.(time.Time)
		case "shift":
			a.Shift = value.(string)
		case "personnel_id":
			a.PersonnelID, _ = value.(*string)
		case "asset_id":
			a.AssetID, _ = value.(*string)
		case "vehicle_id":
			a.VehicleID, _ = value.(*string)
		case "project_id":
			a.ProjectID, _ = value.(*string)
		case "absence_type_id":
			a.AbsenceTypeID, _ = value.(*string)
		}
	}
	return nil
}

func (m *mockAllocationRepo) Delete(_ context.Context, id string) error {
	delete(m.allocations, id)
	return nil
}

// columnValue 取行在指定资源/工作项列上的值
func columnValue(a *model.Allocation, column string) *string {
	switch column {
	case "personnel_id":
		return a.PersonnelID
	case "asset_id":
		return a.AssetID
	case "vehicle_id":
		return a.VehicleID
	case "project_id":
		return a.ProjectID
	case "absence_type_id":
		return a.AbsenceTypeID
	}
	return nil
}

func (m *mockAllocationRepo) DeleteMatchingInRange(_ context.Context, teamID string, from, to time.Time, matchColumns map[string]interface{}) (int64, error) {
	var deleted int64
	for id, a := range m.allocations {
		if a.TeamID != teamID || a.Date.Before(from) || a.Date.After(to) {
			continue
		}
		matched := true
		for column, want := range matchColumns {
			got := columnValue(a, column)
			if got == nil || *got != want.(string) {
				matched = false
				break
			}
		}
		if matched {
			delete(m.allocations, id)
			deleted++
		}
	}
	return deleted, nil
}

// ── Mock NoteRepository / DayEventRepository ──

type mockNoteRepo struct {
	notes    map[string]*model.ScheduleNote
	seq      int
	failList bool // 注入列表读取失败
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{notes: make(map[string]*model.ScheduleNote)}
}

func (m *mockNoteRepo) Create(_ context.Context, note *model.ScheduleNote) error {
	if note.NoteID == "" {
		m.seq++
		note.NoteID = fmt.Sprintf("note-%d", m.seq)
	}
	stored := *note
	m.notes[note.NoteID] = &stored
	return nil
}

func (m *mockNoteRepo) GetByID(_ context.Context, id string) (*model.ScheduleNote, error) {
	if n, ok := m.notes[id]; ok {
		copied := *n
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNoteRepo) ListByTeamAndRange(_ context.Context, teamID string, from, to time.Time) ([]model.ScheduleNote, error) {
	if m.failList {
		return nil, gorm.ErrInvalidData
	}
	var result []model.ScheduleNote
	for _, n := range m.notes {
		if n.TeamID != teamID || n.Date.Before(from) || n.Date.After(to) {
			continue
		}
		result = append(result, *n)
	}
	return result, nil
}

func (m *mockNoteRepo) UpdateText(_ context.Context, id, text string) error {
	n, ok := m.notes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	n.Text = text
	return nil
}

func (m *mockNoteRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.notes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.notes, id)
	return nil
}

type mockDayEventRepo struct {
	events map[string]*model.DayEvent
	seq    int
}

func newMockDayEventRepo() *mockDayEventRepo {
	return &mockDayEventRepo{events: make(map[string]*model.DayEvent)}
}

func (m *mockDayEventRepo) Create(_ context.Context, event *model.DayEvent) error {
	if event.DayEventID == "" {
		m.seq++
		event.DayEventID = fmt.Sprintf("event-%d", m.seq)
	}
	stored := *event
	m.events[event.DayEventID] = &stored
	return nil
}

func (m *mockDayEventRepo) GetByID(_ context.Context, id string) (*model.DayEvent, error) {
	if e, ok := m.events[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDayEventRepo) ListByTeamAndRange(_ context.Context, teamID string, from, to time.Time) ([]model.DayEvent, error) {
	var result []model.DayEvent
	for _, e := range m.events {
		if e.TeamID != teamID || e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockDayEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.events[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.events, id)
	return nil
}

// ── 聚合辅助 ──

// testRepos 聚合所有 mock repo 便于 seed 数据
type testRepos struct {
	user        *mockUserRepo
	team        *mockTeamRepo
	personnel   *mockPersonnelRepo
	asset       *mockAssetRepo
	vehicle     *mockVehicleRepo
	project     *mockProjectRepo
	absenceType *mockAbsenceTypeRepo
	lookup      *mockLookupRepo
	allocation  *mockAllocationRepo
	note        *mockNoteRepo
	dayEvent    *mockDayEventRepo
}

func newTestRepos() *testRepos {
	return &testRepos{
		user:        newMockUserRepo(),
		team:        newMockTeamRepo(),
		personnel:   newMockPersonnelRepo(),
		asset:       newMockAssetRepo(),
		vehicle:     newMockVehicleRepo(),
		project:     newMockProjectRepo(),
		absenceType: newMockAbsenceTypeRepo(),
		lookup:      newMockLookupRepo(),
		allocation:  newMockAllocationRepo(),
		note:        newMockNoteRepo(),
		dayEvent:    newMockDayEventRepo(),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		User:        r.user,
		Team:        r.team,
		Personnel:   r.personnel,
		Asset:       r.asset,
		Vehicle:     r.vehicle,
		Project:     r.project,
		AbsenceType: r.absenceType,
		Lookup:      r.lookup,
		Allocation:  r.allocation,
		Note:        r.note,
		DayEvent:    r.dayEvent,
	}
}

func strPtr(s string) *string { return &s }
