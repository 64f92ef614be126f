package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/Luismorlan/maag/model"
	"github.com/Luismorlan/maag/utils"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// SubjectHeader carries the authenticated user id once JWT has run.
const SubjectHeader = "sub"

// TokenVerifier resolves an access token to the id of its user.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// CognitoVerifier is a thread safe verifier that performs user
// authorization based on jwt token.
type CognitoVerifier struct {
	client *cognitoidentityprovider.Client
}

// NewCognitoVerifier creates a client with the default aws config, located
// in ~/.aws/config or the environment.
func NewCognitoVerifier(ctx context.Context) (*CognitoVerifier, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fail to load aws config")
	}
	return &CognitoVerifier{client: cognitoidentityprovider.NewFromConfig(cfg)}, nil
}

func (v *CognitoVerifier) Verify(ctx context.Context, token string) (string, error) {
	user, err := v.client.GetUser(ctx, &cognitoidentityprovider.GetUserInput{AccessToken: &token})
	if err != nil {
		return "", err
	}
	if user.Username == nil {
		return "", errors.New("token has no user")
	}
	return *user.Username, nil
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return c.Query("token")
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code": utils.ErrorTokenAuthFail,
		"msg":  msg,
	})
}

func abortForbidden(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"code": utils.ErrorPermissionDenied,
		"msg":  msg,
	})
}

// JWT middleware fetch user jwt from the "Authorization: Bearer" header or
// the "token" query parameter. It verifies the token and sets header "sub"
// to the user's id. It returns 401 when the token is missing or invalid
// (wrong token or expired).
func JWT(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		jwt := extractToken(c)
		if jwt == "" {
			abortUnauthorized(c, "empty jwt token")
			return
		}

		sub, err := verifier.Verify(c.Request.Context(), jwt)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}

		// A client supplied "sub" header must never survive.
		c.Request.Header.Del(SubjectHeader)
		c.Request.Header.Set(SubjectHeader, sub)
		c.Next()
	}
}

func loadUser(c *gin.Context, db *gorm.DB) (*model.UserProfile, bool) {
	sub := c.GetHeader(SubjectHeader)
	if sub == "" {
		abortUnauthorized(c, "request is not authenticated")
		return nil, false
	}
	var user model.UserProfile
	err := db.First(&user, "uid = ?", sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		abortForbidden(c, "user profile not found")
		return nil, false
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server error while checking permissions"})
		return nil, false
	}
	return &user, true
}

func hasRole(user *model.UserProfile, roles []string) bool {
	return utils.ContainsString(roles, user.Role)
}

// RequireRole only lets through users whose profile has one of roles. Must
// run after JWT.
func RequireRole(db *gorm.DB, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadUser(c, db)
		if !ok {
			return
		}
		if !hasRole(user, roles) {
			abortForbidden(c, "insufficient role")
			return
		}
		c.Next()
	}
}

// RequireSelfOrRole lets a user act on their own resource, identified by
// path parameter param, and users with one of roles act on anyone's.
func RequireSelfOrRole(db *gorm.DB, param string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub := c.GetHeader(SubjectHeader)
		if sub == "" {
			abortUnauthorized(c, "request is not authenticated")
			return
		}
		if sub == c.Param(param) {
			c.Next()
			return
		}
		user, ok := loadUser(c, db)
		if !ok {
			return
		}
		if !hasRole(user, roles) {
			abortForbidden(c, "can not access another user")
			return
		}
		c.Next()
	}
}

// StaticVerifier maps fixed tokens to user ids, for development and tests.
type StaticVerifier map[string]string

func (v StaticVerifier) Verify(ctx context.Context, token string) (string, error) {
	sub, ok := v[token]
	if !ok {
		return "", errors.New("invalid token")
	}
	return sub, nil
}
