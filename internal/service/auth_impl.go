package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"mood-server/internal/config"
	"mood-server/internal/messaging"
	"mood-server/internal/models"
	"mood-server/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "mood-server"

var (
	emailPattern       = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
	upperCasePattern   = regexp.MustCompile(`[A-Z]`)
	lowerCasePattern   = regexp.MustCompile(`[a-z]`)
	specialCharPattern = regexp.MustCompile(`[\W_]`)
)

var _ AuthService = (*authServiceImpl)(nil)

type authServiceImpl struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	mailer    messaging.MailDispatcher
	cfg       *config.Config
	logger    *zap.Logger
	now       func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	mailer messaging.MailDispatcher,
	cfg *config.Config,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mailer:    mailer,
		cfg:       cfg,
		logger:    logger.Named("AuthService"),
		now:       time.Now,
	}
}

// AdminUserID is the fixed identity carried by tokens issued through AdminLogin.
func AdminUserID(adminEmail string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mood-server:admin:"+strings.ToLower(adminEmail)))
}

func validatePassword(password string) bool {
	return len(password) >= 8 &&
		upperCasePattern.MatchString(password) &&
		lowerCasePattern.MatchString(password) &&
		specialCharPattern.MatchString(password)
}

func (s *authServiceImpl) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	log := s.logger.With(zap.String("email", email))
	log.Info("Registering new user")

	if !emailPattern.MatchString(email) {
		log.Warn("Registration attempt with invalid email format")
		return nil, models.ErrInvalidEmail
	}
	if !validatePassword(password) {
		log.Warn("Registration attempt with weak password")
		return nil, models.ErrWeakPassword
	}

	hashedPassword, err := hashPassword(password, s.cfg.PasswordPepper)
	if err != nil {
		log.Error("Failed to hash password during registration", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         name,
		Roles:        []string{models.RoleUser},
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, models.ErrEmailAlreadyExists) {
			log.Warn("Registration attempt for existing email")
		}
		return nil, err
	}

	token, expiresAt, err := s.createEmailConfirmToken(email)
	if err != nil {
		log.Error("Failed to sign email confirmation token", zap.Error(err))
		return nil, fmt.Errorf("failed to create confirmation token: %w", err)
	}
	mail := messaging.VerificationMail{
		To:        email,
		Name:      name,
		VerifyURL: strings.TrimSuffix(s.cfg.PublicBaseURL, "/") + "/auth/verify/" + token,
		ExpiresAt: expiresAt,
	}
	if err := s.mailer.DispatchVerificationMail(ctx, mail); err != nil {
		// the user row is already committed at this point
		log.Error("Failed to dispatch verification mail", zap.Error(err))
		return nil, fmt.Errorf("failed to dispatch verification mail: %w", err)
	}

	log.Info("User registered successfully", zap.Stringer("userID", user.ID))
	return user, nil
}

func (s *authServiceImpl) createEmailConfirmToken(email string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.EmailConfirmTTL)
	claims := &models.EmailConfirmClaims{
		Email:   email,
		Purpose: models.TokenPurposeEmailConfirm,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	return signed, expiresAt, err
}

func (s *authServiceImpl) VerifyEmail(ctx context.Context, tokenString string) error {
	claims := &models.EmailConfirmClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid || claims.Purpose != models.TokenPurposeEmailConfirm || claims.Email == "" {
		s.logger.Warn("Email verification with invalid token", zap.Error(err))
		return models.ErrVerificationLinkInvalid
	}

	if err := s.userRepo.MarkVerified(ctx, claims.Email); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.logger.Warn("Email verification for unknown user", zap.String("email", claims.Email))
		}
		return err
	}
	s.logger.Info("Email verified", zap.String("email", claims.Email))
	return nil
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*models.TokenDetails, error) {
	email = strings.TrimSpace(email)
	log := s.logger.With(zap.String("email", email))
	log.Info("Login attempt")

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Warn("Login failed: user not found")
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !checkPasswordHash(password, user.PasswordHash, s.cfg.PasswordPepper) {
		log.Warn("Login failed: invalid password", zap.Stringer("userID", user.ID))
		return nil, models.ErrInvalidCredentials
	}
	if !user.IsVerified {
		log.Warn("Login failed: email not verified", zap.Stringer("userID", user.ID))
		return nil, models.ErrEmailNotVerified
	}

	td, err := s.issueTokens(ctx, user.ID, user.Roles)
	if err != nil {
		return nil, err
	}
	log.Info("User logged in successfully", zap.Stringer("userID", user.ID))
	return td, nil
}

func (s *authServiceImpl) AdminLogin(ctx context.Context, email, password string) (*models.TokenDetails, error) {
	log := s.logger.With(zap.String("email", email))
	if s.cfg.AdminPassword == "" {
		log.Warn("Admin login attempted but no admin password is configured")
		return nil, models.ErrInvalidCredentials
	}
	emailOK := strings.EqualFold(strings.TrimSpace(email), s.cfg.AdminEmail)
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
	if !emailOK || !passwordOK {
		log.Warn("Admin login failed")
		return nil, models.ErrInvalidCredentials
	}

	td, err := s.issueTokens(ctx, AdminUserID(s.cfg.AdminEmail), []string{models.RoleAdmin})
	if err != nil {
		return nil, err
	}
	log.Info("Admin logged in")
	return td, nil
}

func (s *authServiceImpl) Logout(ctx context.Context, userID uuid.UUID, accessUUID, refreshToken string) error {
	refreshUUID := ""
	if refreshToken != "" {
		if claims, err := s.parseClaims(refreshToken); err == nil && claims.UserID == userID {
			refreshUUID = claims.ID
		} else {
			s.logger.Debug("Ignoring unusable refresh token on logout", zap.Stringer("userID", userID))
		}
	}

	log := s.logger.With(zap.Stringer("userID", userID), zap.String("accessUUID", accessUUID), zap.String("refreshUUID", refreshUUID))
	deleted, err := s.tokenRepo.DeleteTokens(ctx, userID, accessUUID, refreshUUID)
	if err != nil {
		// tokens may already be gone; logout still succeeds
		log.Error("Failed to delete tokens during logout", zap.Error(err))
		return nil
	}
	log.Info("User logged out", zap.Int64("deletedCount", deleted))
	return nil
}

func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (*models.TokenDetails, error) {
	claims, err := s.parseClaims(refreshToken)
	if err != nil {
		s.logger.Warn("Refresh attempt with unusable token", zap.Error(err))
		return nil, err
	}
	log := s.logger.With(zap.Stringer("userID", claims.UserID), zap.String("refreshUUID", claims.ID))

	storedUserID, err := s.tokenRepo.GetUserIDByRefreshUUID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, models.ErrTokenNotFound) {
			log.Warn("Refresh attempt with revoked token")
			return nil, models.ErrTokenInvalid
		}
		return nil, fmt.Errorf("error checking refresh token existence: %w", err)
	}
	if storedUserID != claims.UserID {
		log.Error("Refresh token user ID mismatch", zap.Stringer("storedUserID", storedUserID))
		return nil, models.ErrTokenInvalid
	}

	td, err := s.issueTokens(ctx, claims.UserID, claims.Roles)
	if err != nil {
		return nil, err
	}
	if _, err := s.tokenRepo.DeleteTokens(ctx, claims.UserID, "", claims.ID); err != nil {
		log.Error("Failed to delete old refresh token", zap.Error(err))
	}
	log.Info("Token refreshed successfully")
	return td, nil
}

func (s *authServiceImpl) VerifyAccessToken(ctx context.Context, tokenString string) (*models.Claims, error) {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return nil, err
	}
	if _, err := s.tokenRepo.GetUserIDByAccessUUID(ctx, claims.ID); err != nil {
		if errors.Is(err, models.ErrTokenNotFound) {
			s.logger.Debug("Access token not found in store (revoked/logged out)", zap.String("accessUUID", claims.ID))
			return nil, models.ErrTokenInvalid
		}
		return nil, fmt.Errorf("error checking access token existence: %w", err)
	}
	return claims, nil
}

func (s *authServiceImpl) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return []byte(s.cfg.JWTSecret), nil
}

func (s *authServiceImpl) parseClaims(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc, jwt.WithTimeFunc(s.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, models.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, models.ErrTokenMalformed
		default:
			return nil, models.ErrTokenInvalid
		}
	}
	if !token.Valid || claims.UserID == uuid.Nil || claims.ID == "" {
		return nil, models.ErrTokenInvalid
	}
	return claims, nil
}

// issueTokens signs a new access/refresh pair and records both ids in the token store.
func (s *authServiceImpl) issueTokens(ctx context.Context, userID uuid.UUID, roles []string) (*models.TokenDetails, error) {
	now := s.now()
	td := &models.TokenDetails{
		AccessUUID:  uuid.NewString(),
		RefreshUUID: uuid.NewString(),
		AtExpires:   now.Add(s.cfg.AccessTokenTTL).Unix(),
		RtExpires:   now.Add(s.cfg.RefreshTokenTTL).Unix(),
	}

	sign := func(id string, expires int64) (string, error) {
		claims := &models.Claims{
			UserID: userID,
			Roles:  roles,
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        id,
				Subject:   userID.String(),
				Issuer:    tokenIssuer,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(time.Unix(expires, 0)),
			},
		}
		return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	}

	var err error
	if td.AccessToken, err = sign(td.AccessUUID, td.AtExpires); err != nil {
		s.logger.Error("Failed to sign access token", zap.Error(err), zap.Stringer("userID", userID))
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	if td.RefreshToken, err = sign(td.RefreshUUID, td.RtExpires); err != nil {
		s.logger.Error("Failed to sign refresh token", zap.Error(err), zap.Stringer("userID", userID))
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	if err := s.tokenRepo.SetToken(ctx, userID, td); err != nil {
		return nil, fmt.Errorf("failed to save token details: %w", err)
	}
	return td, nil
}

// applyPepper applies HMAC-SHA256 using the pepper as the key.
func applyPepper(password, pepper string) []byte {
	h := hmac.New(sha256.New, []byte(pepper))
	h.Write([]byte(password))
	return h.Sum(nil)
}

// hashPassword generates a bcrypt hash of the password after applying the pepper.
func hashPassword(password, pepper string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(applyPepper(password, pepper), bcrypt.DefaultCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash, pepper string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), applyPepper(password, pepper)) == nil
}
