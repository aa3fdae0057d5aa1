package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/model"
	pkgerrors "github.com/zhangirtastemir/thesis-workflow-manager/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	return nil
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

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return paginate(result, offset, limit), int64(len(m.users)), nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	for _, s := range m.students {
		if s.Email == student.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if student.StudentID == "" {
		student.StudentID = fmt.Sprintf("stu-%d", len(m.students)+1)
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id string) error {
	delete(m.students, id)
	return nil
}

func (m *mockStudentRepo) List(_ context.Context, offset, limit int) ([]model.Student, int64, error) {
	var result []model.Student
	for _, s := range m.students {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return paginate(result, offset, limit), int64(len(m.students)), nil
}

// ── Mock SupervisorRepository ──

type mockSupervisorRepo struct {
	supervisors map[string]*model.Supervisor
}

func newMockSupervisorRepo() *mockSupervisorRepo {
	return &mockSupervisorRepo{supervisors: make(map[string]*model.Supervisor)}
}

func (m *mockSupervisorRepo) Create(_ context.Context, supervisor *model.Supervisor) error {
	for _, s := range m.supervisors {
		if s.Email == supervisor.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if supervisor.SupervisorID == "" {
		supervisor.SupervisorID = fmt.Sprintf("sup-%d", len(m.supervisors)+1)
	}
	m.supervisors[supervisor.SupervisorID] = supervisor
	return nil
}

func (m *mockSupervisorRepo) GetByID(_ context.Context, id string) (*model.Supervisor, error) {
	if s, ok := m.supervisors[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSupervisorRepo) Update(_ context.Context, supervisor *model.Supervisor) error {
	m.supervisors[supervisor.SupervisorID] = supervisor
	return nil
}

func (m *mockSupervisorRepo) Delete(_ context.Context, id string) error {
	delete(m.supervisors, id)
	return nil
}

func (m *mockSupervisorRepo) List(_ context.Context, offset, limit int) ([]model.Supervisor, int64, error) {
	var result []model.Supervisor
	for _, s := range m.supervisors {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return paginate(result, offset, limit), int64(len(m.supervisors)), nil
}

// ── Mock ReviewerRepository ──

type mockReviewerRepo struct {
	reviewers map[string]*model.ExternalReviewer
}

func newMockReviewerRepo() *mockReviewerRepo {
	return &mockReviewerRepo{reviewers: make(map[string]*model.ExternalReviewer)}
}

func (m *mockReviewerRepo) Create(_ context.Context, reviewer *model.ExternalReviewer) error {
	for _, r := range m.reviewers {
		if r.Email == reviewer.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if reviewer.ReviewerID == "" {
		reviewer.ReviewerID = fmt.Sprintf("rev-%d", len(m.reviewers)+1)
	}
	m.reviewers[reviewer.ReviewerID] = reviewer
	return nil
}

func (m *mockReviewerRepo) GetByID(_ context.Context, id string) (*model.ExternalReviewer, error) {
	if r, ok := m.reviewers[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReviewerRepo) Update(_ context.Context, reviewer *model.ExternalReviewer) error {
	m.reviewers[reviewer.ReviewerID] = reviewer
	return nil
}

func (m *mockReviewerRepo) Delete(_ context.Context, id string) error {
	delete(m.reviewers, id)
	return nil
}

func (m *mockReviewerRepo) List(_ context.Context, offset, limit int) ([]model.ExternalReviewer, int64, error) {
	var result []model.ExternalReviewer
	for _, r := range m.reviewers {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return paginate(result, offset, limit), int64(len(m.reviewers)), nil
}

// ── Mock CommitteeMemberRepository ──

// assignments 模拟 thesis_committee 关联表，mockThesisRepo.ReplaceCommittee 也写入这里
type mockCommitteeMemberRepo struct {
	members     map[string]*model.CommitteeMember
	assignments map[string][]string // thesisID → memberIDs
}

func newMockCommitteeMemberRepo() *mockCommitteeMemberRepo {
	return &mockCommitteeMemberRepo{
		members:     make(map[string]*model.CommitteeMember),
		assignments: make(map[string][]string),
	}
}

func (m *mockCommitteeMemberRepo) Create(_ context.Context, member *model.CommitteeMember) error {
	for _, c := range m.members {
		if c.Email == member.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if member.MemberID == "" {
		member.MemberID = fmt.Sprintf("mem-%d", len(m.members)+1)
	}
	m.members[member.MemberID] = member
	return nil
}

func (m *mockCommitteeMemberRepo) GetByID(_ context.Context, id string) (*model.CommitteeMember, error) {
	if c, ok := m.members[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCommitteeMemberRepo) Update(_ context.Context, member *model.CommitteeMember) error {
	m.members[member.MemberID] = member
	return nil
}

func (m *mockCommitteeMemberRepo) Delete(_ context.Context, id string) error {
	delete(m.members, id)
	return nil
}

func (m *mockCommitteeMemberRepo) List(_ context.Context, offset, limit int) ([]model.CommitteeMember, int64, error) {
	var result []model.CommitteeMember
	for _, c := range m.members {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return paginate(result, offset, limit), int64(len(m.members)), nil
}

func (m *mockCommitteeMemberRepo) ListByThesis(_ context.Context, thesisID string) ([]model.CommitteeMember, error) {
	var result []model.CommitteeMember
	for _, id := range m.assignments[thesisID] {
		if c, ok := m.members[id]; ok {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockCommitteeMemberRepo) IsAssigned(_ context.Context, thesisID, memberID string) (bool, error) {
	for _, id := range m.assignments[thesisID] {
		if id == memberID {
			return true, nil
		}
	}
	return false, nil
}

// ── Mock ThesisRepository ──

type mockThesisRepo struct {
	theses     map[string]*model.Thesis
	memberRepo *mockCommitteeMemberRepo
	idCounter  int
}

func newMockThesisRepo(memberRepo *mockCommitteeMemberRepo) *mockThesisRepo {
	return &mockThesisRepo{
		theses:     make(map[string]*model.Thesis),
		memberRepo: memberRepo,
	}
}

func (m *mockThesisRepo) Create(_ context.Context, thesis *model.Thesis) error {
	if thesis.ThesisID == "" {
		m.idCounter++
		thesis.ThesisID = fmt.Sprintf("thesis-%d", m.idCounter)
	}
	if thesis.Version == 0 {
		thesis.Version = 1
	}
	cp := *thesis
	m.theses[thesis.ThesisID] = &cp
	return nil
}

func (m *mockThesisRepo) GetByID(ctx context.Context, id string) (*model.Thesis, error) {
	t, ok := m.theses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	cp.Committee, _ = m.memberRepo.ListByThesis(ctx, id)
	return &cp, nil
}

// Update 模拟乐观锁：版本不匹配返回 ErrOptimisticLock
func (m *mockThesisRepo) Update(_ context.Context, thesis *model.Thesis) error {
	stored, ok := m.theses[thesis.ThesisID]
	if !ok || stored.Version != thesis.Version {
		return pkgerrors.ErrOptimisticLock
	}
	thesis.Version++
	cp := *thesis
	cp.Committee = nil
	m.theses[thesis.ThesisID] = &cp
	return nil
}

func (m *mockThesisRepo) Delete(_ context.Context, id string) error {
	delete(m.theses, id)
	delete(m.memberRepo.assignments, id)
	return nil
}

func (m *mockThesisRepo) List(_ context.Context, status string, offset, limit int) ([]model.Thesis, int64, error) {
	var result []model.Thesis
	for _, t := range m.theses {
		if status != "" && t.Status != status {
			continue
		}
		result = append(result, *t)
	}
	total := int64(len(result))
	return paginate(result, offset, limit), total, nil
}

func (m *mockThesisRepo) ListAll(_ context.Context) ([]model.Thesis, error) {
	var result []model.Thesis
	for _, t := range m.theses {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ThesisID < result[j].ThesisID })
	return result, nil
}

func (m *mockThesisRepo) ListOverdue(_ context.Context, before time.Time, exempt []string) ([]model.Thesis, error) {
	exemptSet := make(map[string]bool, len(exempt))
	for _, s := range exempt {
		exemptSet[s] = true
	}
	var result []model.Thesis
	for _, t := range m.theses {
		if t.SubmissionDeadline == nil || exemptSet[t.Status] {
			continue
		}
		if t.SubmissionDeadline.Before(before) {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockThesisRepo) ReplaceCommittee(_ context.Context, thesisID string, memberIDs []string) error {
	// 与真实实现一致：集合语义，去重后存储
	seen := make(map[string]bool, len(memberIDs))
	deduped := make([]string, 0, len(memberIDs))
	for _, id := range memberIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		deduped = append(deduped, id)
	}
	m.memberRepo.assignments[thesisID] = deduped
	return nil
}

func (m *mockThesisRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, t := range m.theses {
		counts[t.Status]++
	}
	return counts, nil
}

func (m *mockThesisRepo) ListRecent(_ context.Context, limit int) ([]model.Thesis, error) {
	var result []model.Thesis
	for _, t := range m.theses {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.After(result[j].UpdatedAt) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ── Mock MilestoneRepository ──

type mockMilestoneRepo struct {
	milestones map[string]*model.Milestone
	idCounter  int
}

func newMockMilestoneRepo() *mockMilestoneRepo {
	return &mockMilestoneRepo{milestones: make(map[string]*model.Milestone)}
}

func (m *mockMilestoneRepo) Create(_ context.Context, milestone *model.Milestone) error {
	if milestone.MilestoneID == "" {
		m.idCounter++
		milestone.MilestoneID = fmt.Sprintf("ms-%d", m.idCounter)
	}
	cp := *milestone
	m.milestones[milestone.MilestoneID] = &cp
	return nil
}

func (m *mockMilestoneRepo) GetByID(_ context.Context, id string) (*model.Milestone, error) {
	ms, ok := m.milestones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ms
	return &cp, nil
}

func (m *mockMilestoneRepo) Update(_ context.Context, milestone *model.Milestone) error {
	if _, ok := m.milestones[milestone.MilestoneID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *milestone
	m.milestones[milestone.MilestoneID] = &cp
	return nil
}

func (m *mockMilestoneRepo) Delete(_ context.Context, id string) error {
	delete(m.milestones, id)
	return nil
}

func (m *mockMilestoneRepo) ListByThesis(_ context.Context, thesisID string) ([]model.Milestone, error) {
	var result []model.Milestone
	for _, ms := range m.milestones {
		if ms.ThesisID == thesisID {
			result = append(result, *ms)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DueDate.Before(result[j].DueDate) })
	return result, nil
}

func (m *mockMilestoneRepo) ListAll(_ context.Context) ([]model.Milestone, error) {
	var result []model.Milestone
	for _, ms := range m.milestones {
		result = append(result, *ms)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DueDate.Before(result[j].DueDate) })
	return result, nil
}

// ── Mock SubmissionRepository ──

type mockSubmissionRepo struct {
	submissions []model.Submission
	idCounter   int
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{}
}

func (m *mockSubmissionRepo) Append(_ context.Context, submission *model.Submission) error {
	m.idCounter++
	if submission.SubmissionID == "" {
		submission.SubmissionID = fmt.Sprintf("sub-%d", m.idCounter)
	}
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now()
	}
	m.submissions = append(m.submissions, *submission)
	return nil
}

func (m *mockSubmissionRepo) ListByThesis(_ context.Context, thesisID string) ([]model.Submission, error) {
	var result []model.Submission
	for _, s := range m.submissions {
		if s.ThesisID == thesisID {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SubmittedAt.After(result[j].SubmittedAt) })
	return result, nil
}

// ── Mock StatusHistoryRepository ──

type mockStatusHistoryRepo struct {
	entries   []model.StatusHistory
	idCounter int64
}

func newMockStatusHistoryRepo() *mockStatusHistoryRepo {
	return &mockStatusHistoryRepo{}
}

func (m *mockStatusHistoryRepo) Append(_ context.Context, entry *model.StatusHistory) error {
	m.idCounter++
	entry.ID = m.idCounter
	if entry.ChangedAt.IsZero() {
		entry.ChangedAt = time.Now()
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockStatusHistoryRepo) ListByThesis(_ context.Context, thesisID string) ([]model.StatusHistory, error) {
	var result []model.StatusHistory
	for _, e := range m.entries {
		if e.ThesisID == thesisID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ChangedAt.Equal(result[j].ChangedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].ChangedAt.After(result[j].ChangedAt)
	})
	return result, nil
}

// ── Mock DecisionLogRepository ──

type mockDecisionLogRepo struct {
	entries   []model.DecisionLog
	idCounter int64
}

func newMockDecisionLogRepo() *mockDecisionLogRepo {
	return &mockDecisionLogRepo{}
}

func (m *mockDecisionLogRepo) Append(_ context.Context, entry *model.DecisionLog) error {
	m.idCounter++
	entry.ID = m.idCounter
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockDecisionLogRepo) ListByThesis(_ context.Context, thesisID string) ([]model.DecisionLog, error) {
	var result []model.DecisionLog
	for _, e := range m.entries {
		if e.ThesisID == thesisID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// GetLatestByMember 时间戳相同时以自增主键最大者为最新
func (m *mockDecisionLogRepo) GetLatestByMember(_ context.Context, thesisID, memberID string) (*model.DecisionLog, error) {
	var latest *model.DecisionLog
	for i := range m.entries {
		e := &m.entries[i]
		if e.ThesisID != thesisID || e.MemberID != memberID {
			continue
		}
		if latest == nil ||
			e.CreatedAt.After(latest.CreatedAt) ||
			(e.CreatedAt.Equal(latest.CreatedAt) && e.ID > latest.ID) {
			latest = e
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *latest
	return &cp, nil
}

// ── 分页辅助 ──

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
