package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/letscatchup/core"
	"github.com/trezcool/letscatchup/core/geocode"
	"github.com/trezcool/letscatchup/core/pin"
	"github.com/trezcool/letscatchup/core/school"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool

		PinSvc    *pin.Service
		SchoolSvc *school.Service
		Geocoder  geocode.Client
		Files     core.FileStorage
		Logger    core.Logger
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, func() { _ = s.Stop(context.Background()) })
	s.app.Debug = core.Conf.Debug

	s.app.GET("/", home)
	s.app.Static(core.Conf.Media.BaseURL, core.Conf.Media.Root)

	v1 := s.app.Group("/v1", middleware.CORS())
	registerPinAPI(v1, s.opts.PinSvc)
	registerSchoolAPI(v1, s.opts.SchoolSvc)
	registerGeocodeAPI(v1, s.opts.Geocoder, s.opts.Logger)
	registerAvatarAPI(v1, s.opts.Files)

	// pre-rewrite clients still point at this surface
	registerLegacyAPI(s.app.Group("/api"), s.opts.PinSvc)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Addr))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+core.Conf.AppName+" API!")
}

// accessGateMiddleware guards mutating school endpoints behind the shared
// access code.
func accessGateMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			code := ctx.Request().Header.Get("X-Access-Code")
			if err := core.Conf.CheckAccessCode(code); err != nil {
				return errInvalidAccessCode
			}
			return next(ctx)
		}
	}
}
