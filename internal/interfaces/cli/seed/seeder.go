package seed

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/domain/user"
	"github.com/dggcrm/dggcrm/internal/shared/authorization"
	apperrors "github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

// File is the seed document.
//
//	accounts:
//	  - email: lead@example.com
//	    username: lead
//	    role: admin
//	tags:
//	  - name: Volunteer
//	    color: "#22aa44"
type File struct {
	Accounts []Account `yaml:"accounts"`
	Tags     []Tag     `yaml:"tags"`
}

type Account struct {
	Email     string `yaml:"email"`
	Username  string `yaml:"username"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Role      string `yaml:"role"`
}

type Tag struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// Parse decodes a seed document, rejecting unknown keys.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

// RoleSyncer mirrors account roles into the policy enforcer.
type RoleSyncer interface {
	SetUserRole(userID uint, role authorization.UserRole) error
}

type Result struct {
	AccountsCreated int
	AccountsUpdated int
	TagsCreated     int
	TagsUpdated     int
}

// Seeder applies a seed document. Running it twice leaves the database
// unchanged the second time.
type Seeder struct {
	users  user.Repository
	tags   contact.TagRepository
	roles  RoleSyncer
	logger logger.Interface
}

func NewSeeder(users user.Repository, tags contact.TagRepository, roles RoleSyncer, log logger.Interface) *Seeder {
	return &Seeder{
		users:  users,
		tags:   tags,
		roles:  roles,
		logger: log.Named("seed"),
	}
}

func (s *Seeder) Run(ctx context.Context, f *File) (*Result, error) {
	res := &Result{}

	for _, a := range f.Accounts {
		created, changed, err := s.seedAccount(ctx, a)
		if err != nil {
			return res, fmt.Errorf("account %s: %w", a.Email, err)
		}
		switch {
		case created:
			res.AccountsCreated++
		case changed:
			res.AccountsUpdated++
		}
	}

	for _, t := range f.Tags {
		created, changed, err := s.seedTag(ctx, t)
		if err != nil {
			return res, fmt.Errorf("tag %s: %w", t.Name, err)
		}
		switch {
		case created:
			res.TagsCreated++
		case changed:
			res.TagsUpdated++
		}
	}

	s.logger.Infow("seed applied",
		"accounts_created", res.AccountsCreated,
		"accounts_updated", res.AccountsUpdated,
		"tags_created", res.TagsCreated,
		"tags_updated", res.TagsUpdated)
	return res, nil
}

func (s *Seeder) seedAccount(ctx context.Context, a Account) (created, changed bool, err error) {
	email := strings.ToLower(strings.TrimSpace(a.Email))
	if email == "" {
		return false, false, fmt.Errorf("email is required")
	}

	role := authorization.RoleNeedsApproval
	if a.Role != "" {
		r, ok := authorization.ParseUserRole(a.Role)
		if !ok {
			return false, false, fmt.Errorf("unknown role %q", a.Role)
		}
		role = r
	}

	u, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if u.Role() != role {
			if err := u.ChangeRole(role); err != nil {
				return false, false, err
			}
			if err := s.users.Update(ctx, u); err != nil {
				return false, false, err
			}
			changed = true
		}
	case apperrors.IsNotFoundError(err):
		username := a.Username
		if username == "" {
			username = strings.SplitN(email, "@", 2)[0]
		}
		u, err = user.NewUser(user.Params{
			Username:  username,
			Email:     email,
			FirstName: a.FirstName,
			LastName:  a.LastName,
			Role:      role,
		})
		if err != nil {
			return false, false, err
		}
		if err := s.users.Create(ctx, u); err != nil {
			return false, false, err
		}
		created = true
	default:
		return false, false, err
	}

	if err := s.roles.SetUserRole(u.ID(), u.Role()); err != nil {
		return created, changed, fmt.Errorf("failed to sync role: %w", err)
	}
	return created, changed, nil
}

func (s *Seeder) seedTag(ctx context.Context, t Tag) (created, changed bool, err error) {
	existing, err := s.tags.GetByName(ctx, t.Name)
	switch {
	case err == nil:
		if t.Color == "" || strings.EqualFold(existing.Color(), t.Color) {
			return false, false, nil
		}
		if err := existing.Update(nil, &t.Color); err != nil {
			return false, false, err
		}
		return false, true, s.tags.Update(ctx, existing)
	case apperrors.IsNotFoundError(err):
		tag, err := contact.NewTag(t.Name, t.Color)
		if err != nil {
			return false, false, err
		}
		return true, false, s.tags.Create(ctx, tag)
	default:
		return false, false, err
	}
}
