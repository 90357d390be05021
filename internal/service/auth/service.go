package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/rvaldiviezo/clinica-api/internal/apperror"
	"github.com/rvaldiviezo/clinica-api/internal/model"
	"github.com/rvaldiviezo/clinica-api/internal/repository"
	"github.com/rvaldiviezo/clinica-api/internal/service/audit"
	"github.com/rvaldiviezo/clinica-api/pkg/auth"
)

const bcryptCost = 12

type Service struct {
	userRepo repository.UserRepository
	jwtSvc   *auth.JWTService
	auditor  *audit.Service
}

func NewService(userRepo repository.UserRepository, jwtSvc *auth.JWTService, auditor *audit.Service) *Service {
	return &Service{userRepo: userRepo, jwtSvc: jwtSvc, auditor: auditor}
}

func (s *Service) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Unauthorized("credenciales inválidas")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.Unauthorized("credenciales inválidas")
	}

	token, err := s.jwtSvc.Generate(user.ID, user.Username, user.Role, user.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.auditor.Log(ctx, audit.Actor{ID: user.ID, Name: user.Name}, model.AuditActionLogin,
		fmt.Sprintf("usuario %s inició sesión", user.Username))

	return &model.LoginResponse{Token: token, User: user}, nil
}

func (s *Service) ValidateToken(token string) (*auth.Claims, error) {
	return s.jwtSvc.Validate(token)
}

// EnsureDefaultAdmin seeds the first admin account on an empty database so
// a fresh install can be logged into.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         model.RoleAdmin,
	}
	return s.userRepo.Create(ctx, admin)
}

func (s *Service) CreateUser(ctx context.Context, actor audit.Actor, req *model.CreateUserRequest) (*model.User, error) {
	if existing, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, apperror.Conflict("el usuario %s ya existe", req.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         req.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionCreate,
		fmt.Sprintf("usuario %s creado con rol %s", user.Username, user.Role))
	return user, nil
}

func (s *Service) UpdateUser(ctx context.Context, actor audit.Actor, id int64, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("usuario %d no encontrado", id)
		}
		return nil, err
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionUpdate,
		fmt.Sprintf("usuario %s actualizado", user.Username))
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, actor audit.Actor, id int64) error {
	rows, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.NotFound("usuario %d no encontrado", id)
	}

	s.auditor.Log(ctx, actor, model.AuditActionDelete,
		fmt.Sprintf("usuario #%d eliminado", id))
	return nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}
