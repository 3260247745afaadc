package user

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/policy"
)

var (
	// errors
	ErrNotFound       = core.NewNotFoundError("User not found.")
	ErrEmailExists    = errors.New("a user with this email already exists")
	ErrUsernameExists = errors.New("a user with this username already exists")
)

type (
	Repository interface {
		CheckUsernameUniqueness(ctx context.Context, username, email string, excludedIDs ...int) error
		CreateUser(ctx context.Context, usr User) (User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
		GetUserByID(ctx context.Context, id int) (User, error)
		GetUserByUsername(ctx context.Context, username string) (User, error)
		// FilterUsers applies AND operation on available QueryFilter fields.
		FilterUsers(ctx context.Context, filter QueryFilter) ([]User, error)
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) checkUniqueness(ctx context.Context, uname, email string, excludedIDs ...int) error {
	if err := svc.repo.CheckUsernameUniqueness(ctx, uname, email, excludedIDs...); err != nil {
		var field string
		switch err {
		case ErrUsernameExists:
			field = "username"
		case ErrEmailExists:
			field = "email"
		default:
			return err
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

func (svc *Service) clean(nu *NewUser) {
	nu.Name = core.CleanString(nu.Name)
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Role = core.CleanString(nu.Role, true /* lower */)
}

// GetActor resolves the identity and role of an authenticated user.
// Disabled accounts and unknown roles are denied.
func (svc *Service) GetActor(ctx context.Context, id int) (core.Actor, error) {
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		return core.Actor{}, err
	}
	if !usr.IsActive {
		return core.Actor{}, core.NewPermissionError(policy.MsgInactiveUser)
	}
	actor, err := usr.Actor()
	if err != nil {
		return core.Actor{}, core.NewPermissionError(policy.MsgUnknownRole)
	}
	return actor, nil
}

// QueryInstructors lists every teacher. Admin only.
func (svc *Service) QueryInstructors(ctx context.Context, actor core.Actor) ([]Instructor, error) {
	if err := policy.AdminOnly(actor); err != nil {
		return nil, err
	}
	users, err := svc.repo.FilterUsers(ctx, QueryFilter{Role: core.RoleTeacher})
	if err != nil {
		return nil, errors.Wrap(err, "querying instructors")
	}
	instructors := make([]Instructor, 0, len(users))
	for _, u := range users {
		instructors = append(instructors, Instructor{ID: u.ID, Username: u.Username, Email: u.Email})
	}
	return instructors, nil
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	svc.clean(&nu)
	if err := svc.validate.Struct(nu); err != nil {
		return User{}, err
	}
	if err := svc.checkUniqueness(ctx, nu.Username, nu.Email); err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	usr := User{
		Name:      nu.Name,
		Username:  nu.Username,
		Email:     nu.Email,
		Role:      nu.Role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if nu.IsActive != nil {
		usr.IsActive = *nu.IsActive
	}
	return svc.repo.CreateUser(ctx, usr)
}

func (svc *Service) Update(ctx context.Context, id int, nu NewUser) (User, error) {
	svc.clean(&nu)
	if err := svc.validate.Struct(nu); err != nil {
		return User{}, err
	}
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if err := svc.checkUniqueness(ctx, nu.Username, nu.Email, usr.ID); err != nil {
		return User{}, err
	}

	usr.Name = nu.Name
	usr.Username = nu.Username
	usr.Email = nu.Email
	usr.Role = nu.Role
	if nu.IsActive != nil {
		usr.IsActive = *nu.IsActive
	}
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

// Save creates the user, or updates the one already holding nu.Username.
func (svc *Service) Save(ctx context.Context, nu NewUser) (User, error) {
	existing, err := svc.GetByUsername(ctx, nu.Username)
	switch {
	case err == nil:
		return svc.Update(ctx, existing.ID, nu)
	case errors.Cause(err) == ErrNotFound:
		return svc.Create(ctx, nu)
	default:
		return User{}, err
	}
}

func (svc *Service) GetByID(ctx context.Context, id int) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByUsername(ctx context.Context, uname string) (User, error) {
	return svc.repo.GetUserByUsername(ctx, core.CleanString(uname, true /* lower */))
}
