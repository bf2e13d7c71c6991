package services

import (
	"errors"
	"regexp"
	"strings"

	"github.com/etceter4/littlelemon/models"
	"github.com/etceter4/littlelemon/policy"
	"github.com/etceter4/littlelemon/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	usernamePattern       = regexp.MustCompile(`^[\w.@+-]+$`)
	errInvalidCredentials = utils.ErrUnauthorized("No active account found with the given credentials")
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

type RegisterInput struct {
	Username  string `json:"username" binding:"required,max=150"`
	Email     string `json:"email" binding:"omitempty,email"`
	Password  string `json:"password" binding:"required"`
	Password2 string `json:"password2" binding:"required"`
}

// Register creates a customer account. Nothing is written when the two
// passwords differ or the username is taken.
func (s *UserService) Register(in RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if !usernamePattern.MatchString(username) {
		return nil, utils.ErrValidation("Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}
	if in.Password != in.Password2 {
		return nil, utils.ErrValidation("Passwords must match.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.Internal(err)
	}

	user := models.User{
		Username: username,
		Email:    strings.TrimSpace(in.Email),
		Password: string(hashed),
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return utils.ErrConflict("A user with that username already exists.")
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithField("username", user.Username).Info("user registered")
	return &user, nil
}

// Login checks the credentials and issues a new token pair.
func (s *UserService) Login(username, password string) (*utils.TokenPair, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}

	pair, err := utils.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		return nil, utils.Internal(err)
	}
	return pair, nil
}

// Refresh exchanges a refresh token for a new pair and revokes the old refresh token.
func (s *UserService) Refresh(refreshToken string) (*utils.TokenPair, error) {
	claims, err := utils.ParseToken(refreshToken, utils.TokenTypeRefresh)
	if err != nil {
		return nil, utils.ErrUnauthorized("Token is invalid or expired")
	}

	user, err := findUser(s.DB, claims.UserID)
	if err != nil {
		if utils.IsKind(err, utils.KindNotFound) {
			return nil, utils.ErrUnauthorized("User not found")
		}
		return nil, err
	}

	pair, err := utils.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		return nil, utils.Internal(err)
	}
	if claims.ExpiresAt != nil {
		utils.RevokeToken(claims.ID, claims.ExpiresAt.Time)
	}
	return pair, nil
}

// Verify reports whether token is a valid access or refresh token.
func (s *UserService) Verify(token string) error {
	if _, err := utils.ParseToken(token, ""); err != nil {
		return utils.ErrUnauthorized("Token is invalid or expired")
	}
	return nil
}

// ResolveIdentity loads the user and its groups and turns them into an Identity.
func (s *UserService) ResolveIdentity(userID uint) (policy.Identity, error) {
	user, err := findUser(s.DB, userID)
	if err != nil {
		if utils.IsKind(err, utils.KindNotFound) {
			return policy.Identity{}, utils.ErrUnauthorized("User not found")
		}
		return policy.Identity{}, err
	}
	return policy.FromUser(user), nil
}

func (s *UserService) ListUsers(id policy.Identity) ([]models.User, error) {
	if err := policy.Check(id, policy.ActionListUsers); err != nil {
		return nil, err
	}
	users := []models.User{}
	if err := s.DB.Preload("Groups").Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// AssignManager adds the named user to the Manager group.
func (s *UserService) AssignManager(id policy.Identity, username string) (*models.User, error) {
	if err := policy.Check(id, policy.ActionAssignManager); err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, utils.ErrValidation("username is required")
	}

	var user models.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Groups").Where("username = ?", username).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrNotFound("User %s not found.", username)
			}
			return err
		}
		return addToGroup(tx, &user, models.GroupManager)
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{"username": user.Username, "by": id.Username}).Info("manager assigned")
	return &user, nil
}

// AssignDeliveryCrew adds the user to the Delivery Crew group.
func (s *UserService) AssignDeliveryCrew(id policy.Identity, userID uint) (*models.User, error) {
	if err := policy.Check(id, policy.ActionAssignDeliveryCrew); err != nil {
		return nil, err
	}

	var user *models.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = findUser(tx, userID); err != nil {
			return err
		}
		return addToGroup(tx, user, models.GroupDeliveryCrew)
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{"username": user.Username, "by": id.Username}).Info("delivery crew assigned")
	return user, nil
}

func addToGroup(tx *gorm.DB, user *models.User, name string) error {
	if user.InGroup(name) {
		return nil
	}
	var group models.Group
	if err := tx.Where(models.Group{Name: name}).FirstOrCreate(&group).Error; err != nil {
		return err
	}
	return tx.Model(user).Association("Groups").Append(&group)
}

func findUser(db *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	if err := db.Preload("Groups").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound("User not found.")
		}
		return nil, err
	}
	return &user, nil
}
