package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"colvote.com/internal/domain"
	"colvote.com/internal/model"
)

// UserServiceImpl implements domain.UserService on top of GORM.
type UserServiceImpl struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserServiceImpl {
	return &UserServiceImpl{db: db}
}

// birthDateLayouts are the accepted input formats; storage always uses the first.
var birthDateLayouts = []string{"2006-01-02", "02-01-2006", "02/01/2006"}

// NormalizeBirthDate parses any accepted layout and returns YYYY-MM-DD.
func NormalizeBirthDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", domain.NewBadRequestError("birth date must be YYYY-MM-DD, DD-MM-YYYY or DD/MM/YYYY")
}

// Register creates a voter account. Duplicate colegiado or DPI is rejected by
// the unique indexes and reported as a conflict, never as raw SQL text.
func (s *UserServiceImpl) Register(ctx context.Context, input domain.RegisterInput) (*model.User, error) {
	input.Colegiado = strings.TrimSpace(input.Colegiado)
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.DPI = strings.TrimSpace(input.DPI)

	if input.Colegiado == "" || input.Name == "" || input.Email == "" ||
		input.DPI == "" || input.BirthDate == "" || input.Password == "" {
		return nil, domain.NewBadRequestError("all fields are required")
	}

	birthDate, err := NormalizeBirthDate(input.BirthDate)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}

	user := model.User{
		Colegiado: input.Colegiado,
		Name:      input.Name,
		Email:     input.Email,
		DPI:       input.DPI,
		BirthDate: birthDate,
		Password:  string(hashed),
		Role:      model.RoleVoter,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.NewConflictError("colegiado or DPI is already registered")
		}
		return nil, domain.NewInternalError("failed to create user", err)
	}

	return &user, nil
}

// Authenticate verifies the full credential set. Every mismatch yields the
// same unauthorized error so the response does not reveal which field failed.
func (s *UserServiceImpl) Authenticate(ctx context.Context, input domain.LoginInput) (*model.User, error) {
	if input.Colegiado == "" || input.DPI == "" || input.BirthDate == "" || input.Password == "" {
		return nil, domain.NewBadRequestError("colegiado, DPI, birth date and password are required")
	}

	birthDate, err := NormalizeBirthDate(input.BirthDate)
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := s.db.WithContext(ctx).
		Where("colegiado = ?", strings.TrimSpace(input.Colegiado)).
		First(&user).Error; err != nil {
		return nil, domain.NewUnauthorizedError("invalid credentials")
	}

	if user.DPI != strings.TrimSpace(input.DPI) || user.BirthDate != birthDate {
		return nil, domain.NewUnauthorizedError("invalid credentials")
	}

	// Always hash-and-compare; passwords are never stored or compared in plaintext.
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, domain.NewUnauthorizedError("invalid credentials")
	}

	return &user, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user not found")
		}
		return nil, domain.NewInternalError("failed to fetch user", err)
	}
	return &user, nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, page, pageSize int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	if err := s.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to count users", err)
	}

	if err := s.db.WithContext(ctx).
		Order("id ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to fetch users", err)
	}

	return users, total, nil
}

// UpdateUser applies a partial update. Only admins may change roles.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, id uint, updates domain.UserUpdate, asAdmin bool) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if updates.Name != nil && strings.TrimSpace(*updates.Name) != "" {
		fields["name"] = strings.TrimSpace(*updates.Name)
	}
	if updates.Email != nil && strings.TrimSpace(*updates.Email) != "" {
		fields["email"] = strings.TrimSpace(strings.ToLower(*updates.Email))
	}
	if updates.BirthDate != nil && *updates.BirthDate != "" {
		birthDate, err := NormalizeBirthDate(*updates.BirthDate)
		if err != nil {
			return nil, err
		}
		fields["birth_date"] = birthDate
	}
	if updates.Password != nil && *updates.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*updates.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, domain.NewInternalError("failed to hash password", err)
		}
		fields["password"] = string(hashed)
	}
	if updates.Role != nil {
		if !asAdmin {
			return nil, domain.NewForbiddenError("only admins can change roles")
		}
		if !updates.Role.Valid() {
			return nil, domain.NewBadRequestError("unknown role")
		}
		fields["role"] = *updates.Role
	}

	if len(fields) == 0 {
		return user, nil
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(fields).Error; err != nil {
		return nil, domain.NewInternalError("failed to update user", err)
	}

	return user, nil
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.User{}, id)
	if result.Error != nil {
		return domain.NewInternalError("failed to delete user", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("user not found")
	}
	return nil
}

// EnsureAdmin seeds the bootstrap admin from config. It does nothing when an
// admin already exists or when no bootstrap credentials are configured.
func (s *UserServiceImpl) EnsureAdmin(ctx context.Context, colegiado, password string) error {
	if colegiado == "" || password == "" {
		return nil
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("role = ?", model.RoleAdmin).
		Count(&count).Error; err != nil {
		return domain.NewInternalError("failed to count admins", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.NewInternalError("failed to hash password", err)
	}

	admin := model.User{
		Colegiado: colegiado,
		Name:      "Administrator",
		Email:     "admin@localhost",
		DPI:       "admin-" + colegiado,
		BirthDate: "1970-01-01",
		Password:  string(hashed),
		Role:      model.RoleAdmin,
	}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return domain.NewInternalError("failed to seed admin", err)
	}

	log.Printf("UserService: Seeded bootstrap admin %q", colegiado)
	return nil
}
