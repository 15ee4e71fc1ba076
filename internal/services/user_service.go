package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"safety_reports/internal/models"
	"safety_reports/internal/storage"
)

// RegisterInput is what a new account needs.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=150,alphanum"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UserService owns the User lifecycle and keeps each User paired with its profile.
type UserService struct {
	db     *gorm.DB
	images storage.Store
	stats  StatsInvalidator
	admins map[string]bool
}

func NewUserService(db *gorm.DB, images storage.Store, stats StatsInvalidator) *UserService {
	return &UserService{db: db, images: images, stats: stats}
}

// WithBootstrapAdmins makes the named accounts admins when they register.
// PromoteAdmins covers accounts that already exist.
func (s *UserService) WithBootstrapAdmins(usernames []string) *UserService {
	s.admins = make(map[string]bool, len(usernames))
	for _, name := range usernames {
		if name = strings.TrimSpace(name); name != "" {
			s.admins[name] = true
		}
	}
	return s
}

// PromoteAdmins gives the admin role to each existing user in usernames and
// returns how many were changed. Unknown usernames are skipped.
func (s *UserService) PromoteAdmins(ctx context.Context, usernames []string) (int, error) {
	promoted := 0
	for _, name := range usernames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var user models.User
		err := s.db.WithContext(ctx).Preload("Profile").Where("username = ?", name).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithField("username", name).Info("PromoteAdmins: user not registered yet")
			continue
		}
		if err != nil {
			return promoted, err
		}
		if user.Profile != nil && user.Profile.IsAdmin() {
			continue
		}
		if _, err := s.SetRole(ctx, user.ID, models.RoleAdmin); err != nil {
			return promoted, err
		}
		logrus.WithField("username", name).Info("PromoteAdmins: granted admin role")
		promoted++
	}
	return promoted, nil
}

// Register creates the User and its UserProfile in one transaction. The
// role is regular unless the username is a bootstrap admin.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	verr := &ValidationError{}
	if err := structErrors(in, verr); err != nil {
		return nil, err
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	user := models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashed),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.User{}).
			Where("username = ? OR email = ?", user.Username, user.Email).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return ErrConflict
		}

		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		role := models.RoleRegular
		if s.admins[user.Username] {
			role = models.RoleAdmin
		}
		profile := models.UserProfile{UserID: user.ID, Role: role}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		user.Profile = &profile
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate checks a username/password pair. Every mismatch is reported
// as ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Profile").
		Where("username = ?", strings.TrimSpace(username)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// FindActor loads a user with the profile the permission checks need.
func (s *UserService) FindActor(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Profile").First(&user, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &user, nil
}

// SetRole changes the role on a user's profile.
func (s *UserService) SetRole(ctx context.Context, userID uint, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, fieldError("role", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", role))
	}
	user, err := s.FindActor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Profile == nil {
		return nil, fmt.Errorf("user %d has no profile", userID)
	}
	user.Profile.Role = role
	if err := s.db.WithContext(ctx).Save(user.Profile).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user together with their profile, their reports
// (and every comment on those reports) and their own comments. Report images
// are removed from storage after the transaction commits.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	var imageKeys []string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return notFoundOr(err)
		}

		if err := tx.Model(&models.SafetyReport{}).
			Where("author_id = ? AND image_key <> ''", id).
			Pluck("image_key", &imageKeys).Error; err != nil {
			return err
		}

		reportIDs := tx.Model(&models.SafetyReport{}).Select("id").Where("author_id = ?", id)
		if err := tx.Where("report_id IN (?) OR author_id = ?", reportIDs, id).
			Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&models.SafetyReport{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.UserProfile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return err
	}

	if s.stats != nil {
		s.stats.Invalidate(ctx)
	}
	if s.images != nil {
		for _, key := range imageKeys {
			if err := s.images.Delete(ctx, key); err != nil {
				logrus.WithError(err).WithField("key", key).Warn("DeleteUser: could not remove report image")
			}
		}
	}
	return nil
}
