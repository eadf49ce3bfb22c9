package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/viewpost-app/backend/internal/models"
	"github.com/viewpost-app/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountService owns user identities and their profiles. A profile is
// created in the same transaction as its user and removed with it.
type AccountService struct {
	db     *gorm.DB
	mailer Mailer
}

// NewAccountService creates a new AccountService
func NewAccountService(db *gorm.DB, mailer Mailer) *AccountService {
	return &AccountService{db: db, mailer: mailer}
}

// Register creates a user with a bcrypt-hashed password plus their
// profile, then fires the welcome mail without waiting on it. Username
// and email are unique case-insensitively.
func (s *AccountService) Register(req models.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: empty username", ErrValidation)
	}
	if err := s.checkUsernameFree(s.db, username, 0); err != nil {
		return nil, err
	}
	if err := s.checkEmailFree(s.db, req.Email, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, wrapTx(err)
	}

	user := &models.User{Username: username, Email: req.Email, Password: string(hash)}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewUserRepository(tx).CreateUser(user); err != nil {
			return err
		}
		return repositories.NewProfileRepository(tx).CreateProfile(&models.Profile{
			UserID:   user.ID,
			Bio:      req.Bio,
			PhotoRef: req.PhotoRef,
			Theme:    models.ThemeLight,
		})
	})
	if err != nil {
		return nil, wrapTx(err)
	}

	// Fire and forget; registration does not wait on mail delivery.
	go s.mailer.SendWelcome(user.Email, user.Username)

	return user, nil
}

// Authenticate resolves a username-or-email identifier and checks the
// password against the stored bcrypt hash.
func (s *AccountService) Authenticate(identifier, password string) (*models.User, error) {
	user, err := repositories.NewUserRepository(s.db).GetUserByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, identifier)
		}
		return nil, wrapTx(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: wrong password", ErrPermission)
	}
	return user, nil
}

// EnsureFirebaseUser upserts a local user for a verified Firebase
// identity, linking by UID first and email second.
func (s *AccountService) EnsureFirebaseUser(firebaseUID, email, displayName string) (*models.User, error) {
	users := repositories.NewUserRepository(s.db)

	user, err := users.GetUserByFirebaseUID(firebaseUID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wrapTx(err)
	}

	user, err = users.GetUserByEmail(email)
	if err == nil {
		user.FirebaseUID = firebaseUID
		if err := users.UpdateUser(user); err != nil {
			return nil, wrapTx(err)
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wrapTx(err)
	}

	username := displayName
	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}
	if err := s.checkUsernameFree(s.db, username, 0); err != nil {
		if !errors.Is(err, ErrValidation) {
			return nil, err
		}
		// Derived name is taken; disambiguate with the UID tail.
		tail := firebaseUID
		if len(tail) > 6 {
			tail = tail[:6]
		}
		username = username + "-" + tail
	}

	user = &models.User{Username: username, Email: email, FirebaseUID: firebaseUID}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewUserRepository(tx).CreateUser(user); err != nil {
			return err
		}
		return repositories.NewProfileRepository(tx).CreateProfile(&models.Profile{
			UserID: user.ID,
			Theme:  models.ThemeLight,
		})
	})
	if err != nil {
		return nil, wrapTx(err)
	}
	return user, nil
}

// GetProfile returns the profile for a username along with its user.
func (s *AccountService) GetProfile(username string) (*models.Profile, error) {
	profile, err := repositories.NewProfileRepository(s.db).GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: profile %s", ErrNotFound, username)
		}
		return nil, wrapTx(err)
	}
	return profile, nil
}

// UpdateProfile edits username, bio and photo reference in one
// transaction across user and profile.
func (s *AccountService) UpdateProfile(userID uint, req models.UpdateProfileRequest) (*models.Profile, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: empty username", ErrValidation)
	}
	if err := s.checkUsernameFree(s.db, username, userID); err != nil {
		return nil, err
	}

	var profile *models.Profile
	err := s.db.Transaction(func(tx *gorm.DB) error {
		users := repositories.NewUserRepository(tx)
		user, err := users.GetUserByID(userID)
		if err != nil {
			return err
		}
		user.Username = username
		if err := users.UpdateUser(user); err != nil {
			return err
		}

		profiles := repositories.NewProfileRepository(tx)
		profile, err = profiles.GetByUserID(userID)
		if err != nil {
			return err
		}
		profile.Bio = req.Bio
		if req.PhotoRef != "" {
			profile.PhotoRef = req.PhotoRef
		}
		return profiles.UpdateProfile(profile)
	})
	if err != nil {
		return nil, wrapTx(err)
	}
	return profile, nil
}

// SetTheme switches the profile between light and dark.
func (s *AccountService) SetTheme(userID uint, theme string) error {
	if theme != models.ThemeLight && theme != models.ThemeDark {
		return fmt.Errorf("%w: unknown theme %q", ErrValidation, theme)
	}
	profiles := repositories.NewProfileRepository(s.db)
	profile, err := profiles.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: profile for user %d", ErrNotFound, userID)
		}
		return wrapTx(err)
	}
	profile.Theme = theme
	return wrapTx(profiles.UpdateProfile(profile))
}

// ChangeEmail updates the account email, keeping it unique.
func (s *AccountService) ChangeEmail(userID uint, email string) error {
	if err := s.checkEmailFree(s.db, email, userID); err != nil {
		return err
	}
	users := repositories.NewUserRepository(s.db)
	user, err := users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return wrapTx(err)
	}
	user.Email = email
	return wrapTx(users.UpdateUser(user))
}

// DeleteAccount verifies the password and removes the user with
// everything they own: posts (with their comment threads, likes and
// post-targeted notifications), comment threads they authored elsewhere,
// likes they placed, follow edges in both directions, notifications to
// and from them, their profile, and finally the user row.
func (s *AccountService) DeleteAccount(userID uint, password string) error {
	user, err := repositories.NewUserRepository(s.db).GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return wrapTx(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return fmt.Errorf("%w: wrong password", ErrPermission)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		profiles := repositories.NewProfileRepository(tx)
		profile, err := profiles.GetByUserID(userID)
		if err != nil {
			return err
		}

		posts := repositories.NewPostRepository(tx)
		comments := repositories.NewCommentRepository(tx)
		likes := repositories.NewLikeRepository(tx)
		notifications := repositories.NewNotificationRepository(tx)

		postIDs, err := posts.GetPostIDsByOwner(userID)
		if err != nil {
			return err
		}
		if err := comments.DeleteByPostIDs(postIDs); err != nil {
			return err
		}
		if err := likes.DeleteByPostIDs(postIDs); err != nil {
			return err
		}
		if err := notifications.DeleteByTarget(models.TargetPost, postIDs); err != nil {
			return err
		}
		if err := posts.DeleteByOwner(userID); err != nil {
			return err
		}

		authored, err := comments.IDsByAuthor(userID)
		if err != nil {
			return err
		}
		threadIDs, err := collectThreadIDs(comments, authored)
		if err != nil {
			return err
		}
		if err := comments.DeleteByIDs(threadIDs); err != nil {
			return err
		}

		if err := likes.DeleteByUserID(userID); err != nil {
			return err
		}
		if err := repositories.NewFollowRepository(tx).DeleteAllForProfile(profile.ID); err != nil {
			return err
		}
		if err := notifications.DeleteByUserID(userID); err != nil {
			return err
		}
		if err := profiles.DeleteByUserID(userID); err != nil {
			return err
		}
		return repositories.NewUserRepository(tx).DeleteUser(userID)
	})
	return wrapTx(err)
}

func (s *AccountService) checkUsernameFree(db *gorm.DB, username string, selfID uint) error {
	existing, err := repositories.NewUserRepository(db).GetUserByUsername(username)
	if err == nil && existing.ID != selfID {
		return fmt.Errorf("%w: username %q already taken", ErrValidation, username)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return wrapTx(err)
	}
	return nil
}

func (s *AccountService) checkEmailFree(db *gorm.DB, email string, selfID uint) error {
	existing, err := repositories.NewUserRepository(db).GetUserByEmail(email)
	if err == nil && existing.ID != selfID {
		return fmt.Errorf("%w: email %q already in use", ErrValidation, email)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return wrapTx(err)
	}
	return nil
}
