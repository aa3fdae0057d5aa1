package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/dto"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/model"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/repository"
)

// PeopleService 人员业务接口（学生 / 导师 / 外审专家 / 委员会成员）
type PeopleService interface {
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetStudent(ctx context.Context, id string) (*dto.StudentResponse, error)
	UpdateStudent(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	DeleteStudent(ctx context.Context, id string) error
	ListStudents(ctx context.Context, query *dto.ListQuery) ([]dto.StudentResponse, int64, error)

	CreateSupervisor(ctx context.Context, req *dto.CreateSupervisorRequest) (*dto.SupervisorResponse, error)
	GetSupervisor(ctx context.Context, id string) (*dto.SupervisorResponse, error)
	UpdateSupervisor(ctx context.Context, id string, req *dto.UpdateSupervisorRequest) (*dto.SupervisorResponse, error)
	DeleteSupervisor(ctx context.Context, id string) error
	ListSupervisors(ctx context.Context, query *dto.ListQuery) ([]dto.SupervisorResponse, int64, error)

	CreateReviewer(ctx context.Context, req *dto.CreateReviewerRequest) (*dto.ReviewerResponse, error)
	GetReviewer(ctx context.Context, id string) (*dto.ReviewerResponse, error)
	UpdateReviewer(ctx context.Context, id string, req *dto.UpdateReviewerRequest) (*dto.ReviewerResponse, error)
	DeleteReviewer(ctx context.Context, id string) error
	ListReviewers(ctx context.Context, query *dto.ListQuery) ([]dto.ReviewerResponse, int64, error)

	CreateCommitteeMember(ctx context.Context, req *dto.CreateCommitteeMemberRequest) (*dto.CommitteeMemberResponse, error)
	GetCommitteeMember(ctx context.Context, id string) (*dto.CommitteeMemberResponse, error)
	UpdateCommitteeMember(ctx context.Context, id string, req *dto.UpdateCommitteeMemberRequest) (*dto.CommitteeMemberResponse, error)
	DeleteCommitteeMember(ctx context.Context, id string) error
	ListCommitteeMembers(ctx context.Context, query *dto.ListQuery) ([]dto.CommitteeMemberResponse, int64, error)
}

type peopleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPeopleService 创建 PeopleService 实例
func NewPeopleService(repo *repository.Repository, logger *zap.Logger) PeopleService {
	return &peopleService{repo: repo, logger: logger}
}

// ────────────────────── 学生 ──────────────────────

func (s *peopleService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	student := &model.Student{Name: req.Name, Email: req.Email}
	if err := s.repo.Student.Create(ctx, student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("创建学生失败", zap.Error(err))
		return nil, err
	}
	return toStudentResponse(student), nil
}

func (s *peopleService) GetStudent(ctx context.Context, id string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toStudentResponse(student), nil
}

func (s *peopleService) UpdateStudent(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Email != nil {
		student.Email = *req.Email
	}

	if err := s.repo.Student.Update(ctx, student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("更新学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toStudentResponse(student), nil
}

func (s *peopleService) DeleteStudent(ctx context.Context, id string) error {
	if _, err := s.repo.Student.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	if err := s.repo.Student.Delete(ctx, id); err != nil {
		s.logger.Error("删除学生失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *peopleService) ListStudents(ctx context.Context, query *dto.ListQuery) ([]dto.StudentResponse, int64, error) {
	students, total, err := s.repo.Student.List(ctx, query.Offset(), query.PageSize)
	if err != nil {
		s.logger.Error("查询学生列表失败", zap.Error(err))
		return nil, 0, err
	}
	items := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		items = append(items, *toStudentResponse(&students[i]))
	}
	return items, total, nil
}

// ────────────────────── 导师 ──────────────────────

func (s *peopleService) CreateSupervisor(ctx context.Context, req *dto.CreateSupervisorRequest) (*dto.SupervisorResponse, error) {
	supervisor := &model.Supervisor{Name: req.Name, Email: req.Email, Department: req.Department}
	if err := s.repo.Supervisor.Create(ctx, supervisor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("创建导师失败", zap.Error(err))
		return nil, err
	}
	return toSupervisorResponse(supervisor), nil
}

func (s *peopleService) GetSupervisor(ctx context.Context, id string) (*dto.SupervisorResponse, error) {
	supervisor, err := s.repo.Supervisor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupervisorNotFound
		}
		s.logger.Error("查询导师失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toSupervisorResponse(supervisor), nil
}

func (s *peopleService) UpdateSupervisor(ctx context.Context, id string, req *dto.UpdateSupervisorRequest) (*dto.SupervisorResponse, error) {
	supervisor, err := s.repo.Supervisor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupervisorNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		supervisor.Name = *req.Name
	}
	if req.Email != nil {
		supervisor.Email = *req.Email
	}
	if req.Department != nil {
		supervisor.Department = *req.Department
	}

	if err := s.repo.Supervisor.Update(ctx, supervisor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("更新导师失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toSupervisorResponse(supervisor), nil
}

func (s *peopleService) DeleteSupervisor(ctx context.Context, id string) error {
	if _, err := s.repo.Supervisor.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSupervisorNotFound
		}
		return err
	}
	if err := s.repo.Supervisor.Delete(ctx, id); err != nil {
		s.logger.Error("删除导师失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *peopleService) ListSupervisors(ctx context.Context, query *dto.ListQuery) ([]dto.SupervisorResponse, int64, error) {
	supervisors, total, err := s.repo.Supervisor.List(ctx, query.Offset(), query.PageSize)
	if err != nil {
		s.logger.Error("查询导师列表失败", zap.Error(err))
		return nil, 0, err
	}
	items := make([]dto.SupervisorResponse, 0, len(supervisors))
	for i := range supervisors {
		items = append(items, *toSupervisorResponse(&supervisors[i]))
	}
	return items, total, nil
}

// ────────────────────── 外审专家 ──────────────────────

func (s *peopleService) CreateReviewer(ctx context.Context, req *dto.CreateReviewerRequest) (*dto.ReviewerResponse, error) {
	reviewer := &model.ExternalReviewer{Name: req.Name, Email: req.Email}
	if err := s.repo.Reviewer.Create(ctx, reviewer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("创建外审专家失败", zap.Error(err))
		return nil, err
	}
	return toReviewerResponse(reviewer), nil
}

func (s *peopleService) GetReviewer(ctx context.Context, id string) (*dto.ReviewerResponse, error) {
	reviewer, err := s.repo.Reviewer.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewerNotFound
		}
		s.logger.Error("查询外审专家失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toReviewerResponse(reviewer), nil
}

func (s *peopleService) UpdateReviewer(ctx context.Context, id string, req *dto.UpdateReviewerRequest) (*dto.ReviewerResponse, error) {
	reviewer, err := s.repo.Reviewer.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewerNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		reviewer.Name = *req.Name
	}
	if req.Email != nil {
		reviewer.Email = *req.Email
	}

	if err := s.repo.Reviewer.Update(ctx, reviewer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("更新外审专家失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toReviewerResponse(reviewer), nil
}

func (s *peopleService) DeleteReviewer(ctx context.Context, id string) error {
	if _, err := s.repo.Reviewer.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewerNotFound
		}
		return err
	}
	if err := s.repo.Reviewer.Delete(ctx, id); err != nil {
		s.logger.Error("删除外审专家失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *peopleService) ListReviewers(ctx context.Context, query *dto.ListQuery) ([]dto.ReviewerResponse, int64, error) {
	reviewers, total, err := s.repo.Reviewer.List(ctx, query.Offset(), query.PageSize)
	if err != nil {
		s.logger.Error("查询外审专家列表失败", zap.Error(err))
		return nil, 0, err
	}
	items := make([]dto.ReviewerResponse, 0, len(reviewers))
	for i := range reviewers {
		items = append(items, *toReviewerResponse(&reviewers[i]))
	}
	return items, total, nil
}

// ────────────────────── 委员会成员 ──────────────────────

func (s *peopleService) CreateCommitteeMember(ctx context.Context, req *dto.CreateCommitteeMemberRequest) (*dto.CommitteeMemberResponse, error) {
	member := &model.CommitteeMember{Name: req.Name, Email: req.Email}
	if err := s.repo.CommitteeMember.Create(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("创建委员会成员失败", zap.Error(err))
		return nil, err
	}
	return toCommitteeMemberResponse(member), nil
}

func (s *peopleService) GetCommitteeMember(ctx context.Context, id string) (*dto.CommitteeMemberResponse, error) {
	member, err := s.repo.CommitteeMember.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		s.logger.Error("查询委员会成员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toCommitteeMemberResponse(member), nil
}

func (s *peopleService) UpdateCommitteeMember(ctx context.Context, id string, req *dto.UpdateCommitteeMemberRequest) (*dto.CommitteeMemberResponse, error) {
	member, err := s.repo.CommitteeMember.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Email != nil {
		member.Email = *req.Email
	}

	if err := s.repo.CommitteeMember.Update(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("更新委员会成员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toCommitteeMemberResponse(member), nil
}

func (s *peopleService) DeleteCommitteeMember(ctx context.Context, id string) error {
	if _, err := s.repo.CommitteeMember.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	if err := s.repo.CommitteeMember.Delete(ctx, id); err != nil {
		s.logger.Error("删除委员会成员失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *peopleService) ListCommitteeMembers(ctx context.Context, query *dto.ListQuery) ([]dto.CommitteeMemberResponse, int64, error) {
	members, total, err := s.repo.CommitteeMember.List(ctx, query.Offset(), query.PageSize)
	if err != nil {
		s.logger.Error("查询委员会成员列表失败", zap.Error(err))
		return nil, 0, err
	}
	items := make([]dto.CommitteeMemberResponse, 0, len(members))
	for i := range members {
		items = append(items, *toCommitteeMemberResponse(&members[i]))
	}
	return items, total, nil
}
