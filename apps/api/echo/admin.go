package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kingsolomonjunior/admissions/core"
	"github.com/kingsolomonjunior/admissions/core/enrollment"
	"github.com/kingsolomonjunior/admissions/core/notification"
)

type adminApi struct {
	enrollSvc *enrollment.Service
	notifSvc  *notification.Service
}

func registerAdminAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	enrollSvc *enrollment.Service,
	notifSvc *notification.Service,
) {
	api := adminApi{enrollSvc: enrollSvc, notifSvc: notifSvc}

	ag := g.Group("/admin")

	// un-authed endpoints
	ag.POST("/login", api.login)

	// authed endpoints
	authed := ag.Group("", jwt, adminMiddleware())
	authed.GET("/applications", api.queryApplications)
	authed.GET("/applications/:ref", api.retrieveApplication)
	authed.GET("/notifications", api.queryNotifications)
	authed.PUT("/notifications/read", api.markNotificationsRead)
}

// Handlers

func (api *adminApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := authenticate(data.Email, data.Password)
	if err != nil {
		return err
	}
	token, err := GenerateToken(claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *adminApi) queryApplications(ctx echo.Context) error {
	filter := new(enrollment.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []enrollment.Application{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	var apps []enrollment.Application
	var err error
	if filter.IsEmpty() && len(ordering.Orderings) == 0 {
		apps, err = api.enrollSvc.QueryAll(ctx.Request().Context())
	} else {
		apps, err = api.enrollSvc.Filter(ctx.Request().Context(), *filter, ordering.Orderings...)
	}
	if err != nil {
		return errors.Wrap(err, "querying applications")
	}
	if apps == nil {
		apps = []enrollment.Application{}
	}
	return ctx.JSON(http.StatusOK, apps)
}

func (api *adminApi) retrieveApplication(ctx echo.Context) error {
	app, err := api.enrollSvc.GetByRef(ctx.Request().Context(), ctx.Param("ref"))
	if err != nil {
		if errors.Cause(err) == enrollment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding application by ref")
	}
	return ctx.JSON(http.StatusOK, app)
}

// queryNotifications returns one of the three logs, selected by the
// `kind` query param: admin (default), email or sms.
func (api *adminApi) queryNotifications(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	switch kind := ctx.QueryParam("kind"); kind {
	case "", "admin":
		ns, err := api.notifSvc.QueryAdmin(reqCtx)
		if err != nil {
			return errors.Wrap(err, "querying admin notifications")
		}
		if ns == nil {
			ns = []notification.AdminNotification{}
		}
		return ctx.JSON(http.StatusOK, ns)
	case "email":
		ns, err := api.notifSvc.QueryEmail(reqCtx)
		if err != nil {
			return errors.Wrap(err, "querying email notifications")
		}
		if ns == nil {
			ns = []notification.EmailNotification{}
		}
		return ctx.JSON(http.StatusOK, ns)
	case "sms":
		ns, err := api.notifSvc.QuerySMS(reqCtx)
		if err != nil {
			return errors.Wrap(err, "querying sms notifications")
		}
		if ns == nil {
			ns = []notification.SMSNotification{}
		}
		return ctx.JSON(http.StatusOK, ns)
	default:
		return core.NewValidationError(nil, core.FieldError{Field: "kind", Error: "supported kinds are admin, email and sms"})
	}
}

func (api *adminApi) markNotificationsRead(ctx echo.Context) error {
	if err := api.notifSvc.MarkAdminRead(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "marking notifications read")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}
)

func (lr *LoginRequest) Validate() error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return core.Validate.Struct(lr)
}
