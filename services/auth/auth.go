package auth

import (
	"context"
	"net/http"
	"time"

	defaultErrors "errors"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	"github.com/supertokens/supertokens-golang/recipe/dashboard"
	"github.com/supertokens/supertokens-golang/recipe/emailpassword"
	"github.com/supertokens/supertokens-golang/recipe/emailpassword/epmodels"
	"github.com/supertokens/supertokens-golang/recipe/session"
	sterrors "github.com/supertokens/supertokens-golang/recipe/session/errors"
	"github.com/supertokens/supertokens-golang/recipe/session/sessmodels"
	"github.com/supertokens/supertokens-golang/recipe/userroles"
	"github.com/supertokens/supertokens-golang/supertokens"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"

	"github.com/watchdeck/web-ui/models"
	sv "github.com/watchdeck/web-ui/services/common"
	"github.com/watchdeck/web-ui/services/settings"
)

const (
	supertokensHostFlag = "supertokens-host"
	supertokensPortFlag = "supertokens-port"
	UseFlag             = "use-auth"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   supertokensHostFlag,
			Usage:  "supertokens host",
			Value:  "",
			EnvVar: "SUPERTOKENS_SERVICE_HOST",
		},
		cli.IntFlag{
			Name:   supertokensPortFlag,
			Usage:  "supertokens port",
			EnvVar: "SUPERTOKENS_SERVICE_PORT",
		},
		cli.BoolFlag{
			Name:   UseFlag,
			Usage:  "use auth",
			EnvVar: "USE_AUTH",
		},
	)
}

type Auth struct {
	url      string
	domain   string
	pg       *cs.PG
	settings *settings.Settings
}

func New(c *cli.Context, pg *cs.PG, st *settings.Settings) *Auth {
	if !c.Bool(UseFlag) {
		return nil
	}
	return &Auth{
		url:      c.String(supertokensHostFlag) + ":" + c.String(supertokensPortFlag),
		domain:   c.String(sv.DomainFlag),
		pg:       pg,
		settings: st,
	}
}

func (s *Auth) Init() error {
	apiBasePath := "/auth"
	websiteBasePath := "/auth"
	return supertokens.Init(supertokens.TypeInput{
		Supertokens: &supertokens.ConnectionInfo{
			ConnectionURI: s.url,
		},
		AppInfo: supertokens.AppInfo{
			AppName:         "watchdeck",
			APIDomain:       s.domain,
			WebsiteDomain:   s.domain,
			APIBasePath:     &apiBasePath,
			WebsiteBasePath: &websiteBasePath,
		},
		RecipeList: []supertokens.Recipe{
			emailpassword.Init(&epmodels.TypeInput{
				Override: &epmodels.OverrideStruct{
					APIs: s.overrideAPIs,
				},
			}),
			session.Init(nil),
			dashboard.Init(nil),
			userroles.Init(nil),
		},
	})
}

// overrideAPIs gates the signup API on the app-settings toggle.
func (s *Auth) overrideAPIs(original epmodels.APIInterface) epmodels.APIInterface {
	originalSignUp := *original.SignUpPOST
	*original.SignUpPOST = func(formFields []epmodels.TypeFormField, tenantId string, options epmodels.APIOptions, userContext supertokens.UserContext) (epmodels.SignUpPOSTResponse, error) {
		if !s.settings.SignupEnabled(context.Background()) {
			return epmodels.SignUpPOSTResponse{
				GeneralError: &supertokens.GeneralErrorResponse{
					Message: "Signups are currently disabled",
				},
			}, nil
		}
		return originalSignUp(formFields, tenantId, options, userContext)
	}
	return original
}

type User struct {
	ID      uuid.UUID
	Email   string
	Role    models.Role
	Expired bool
}

func (s *User) HasAuth() bool {
	return s.Email != ""
}

func (s *User) IsSuperAdmin() bool {
	return s.HasAuth() && s.Role == models.RoleSuperAdmin
}

type ErrorContext struct{}

type UserContext struct{}

func GetUserFromContext(c *gin.Context) *User {
	u := &User{}
	uc := c.Request.Context().Value(UserContext{})
	if su, ok := uc.(*models.User); ok {
		u.ID = su.UserID
		u.Email = su.Email
		u.Role = su.Role
	}
	if err := c.Request.Context().Value(ErrorContext{}); err != nil {
		if defaultErrors.As(err.(error), &sterrors.TryRefreshTokenError{}) {
			u.Expired = true
		}
	}
	return u
}

func (s *Auth) myVerifySession(options *sessmodels.VerifySessionOptions, otherHandler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := session.GetSession(r, w, options)
		if err != nil {
			ctx := context.WithValue(r.Context(), ErrorContext{}, err)
			r := r.WithContext(ctx)
			if defaultErrors.As(err, &sterrors.TryRefreshTokenError{}) {
				if r.Header.Get("X-Requested-With") != "XMLHttpRequest" {
					otherHandler(w, r)
					return
				}
			} else if defaultErrors.As(err, &sterrors.UnauthorizedError{}) {
				otherHandler(w, r)
				return
			} else if defaultErrors.As(err, &sterrors.InvalidClaimError{}) {
				otherHandler(w, r)
				return
			}
			err = supertokens.ErrorHandler(err, r, w)
			if err != nil {
				log.WithError(err).Error("failed to handle error")
				w.WriteHeader(500)
			}
			return
		}
		if sess != nil {
			ctx := context.WithValue(r.Context(), sessmodels.SessionContext, sess)
			u, err := s.createUser(r.Context(), sess)
			if err != nil {
				log.WithError(err).Error("failed to create user")
				w.WriteHeader(500)
				return
			}
			ctx = context.WithValue(ctx, UserContext{}, u)
			otherHandler(w, r.WithContext(ctx))
		} else {
			otherHandler(w, r)
		}
	}
}

func (s *Auth) createUser(ctx context.Context, sess sessmodels.SessionContainer) (u *models.User, err error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("no db")
	}
	userID := sess.GetUserID()
	userInfo, err := emailpassword.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	u, _, err = models.GetOrCreateUser(ctx, db, userInfo.Email)
	return
}

func (s *Auth) verifySession(options *sessmodels.VerifySessionOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.myVerifySession(options, func(rw http.ResponseWriter, r *http.Request) {
			c.Request = c.Request.WithContext(r.Context())
			c.Next()
		})(c.Writer, c.Request)
		// we call Abort so that the next handler in the chain is not called, unless we call Next explicitly
		c.Abort()
	}
}

func (s *Auth) RegisterHandler(r *gin.Engine) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     append([]string{"content-type"}, supertokens.GetAllCORSHeaders()...),
		MaxAge:           1 * time.Minute,
		AllowCredentials: true,
	}))

	r.Use(func(c *gin.Context) {
		supertokens.Middleware(http.HandlerFunc(
			func(rw http.ResponseWriter, r *http.Request) {
				c.Next()
			})).ServeHTTP(c.Writer, c.Request)
		// we call Abort so that the next handler in the chain is not called, unless we call Next explicitly
		c.Abort()
	})
	sessionRequired := false
	r.Use(s.verifySession(&sessmodels.VerifySessionOptions{
		SessionRequired: &sessionRequired,
	}))
}

// HasAuth guards routes that only make sense with a signed-in user.
func HasAuth(c *gin.Context) {
	u := GetUserFromContext(c)
	if !u.HasAuth() {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.Next()
}
