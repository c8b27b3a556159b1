package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campushq/placetrack/core/analytics"
	"github.com/campushq/placetrack/core/application"
)

type applicationApi struct {
	service      *application.Service
	analyticsSvc *analytics.Service
}

func registerApplicationAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *application.Service, anSvc *analytics.Service) {
	api := applicationApi{service: svc, analyticsSvc: anSvc}

	ag := g.Group("/applications", jwt)
	ag.POST("", api.applicationCreate)
	ag.GET("/me", api.applicationQueryOwned)
	ag.GET("/dashboard", api.applicationDashboard)

	// admin endpoints; registered before the :id routes so "admin" is not
	// captured as an application id.
	ag.GET("/admin/all", api.applicationAdminQuery, admin)
	ag.GET("/admin/:id", api.applicationAdminRetrieve, admin)

	ag.GET("/:id", api.applicationRetrieve)
	ag.PATCH("/:id/status", api.applicationUpdateStatus)
	ag.PUT("/:id", api.applicationUpdate)
	ag.DELETE("/:id", api.applicationDestroy)
}

// Handlers

func (api *applicationApi) applicationCreate(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	data := new(application.NewApplication)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(); err != nil {
		return err
	}

	app, err := api.service.Create(ctx.Request().Context(), claims.Subject, *data)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusCreated, app)
}

func (api *applicationApi) applicationQueryOwned(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	opts := new(application.ListOptions)
	if err = ctx.Bind(opts); err != nil {
		return err
	}

	page, err := api.service.QueryOwned(ctx.Request().Context(), claims.Subject, *opts)
	if err != nil {
		return err
	}
	return respondPage(ctx, http.StatusOK, page.Items, page.Pagination)
}

func (api *applicationApi) applicationDashboard(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	summary, err := api.analyticsSvc.Summary(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return err
	}
	recent, err := api.service.Recent(ctx.Request().Context(), claims.Subject, 5)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, echo.Map{"summary": summary, "recent": recent})
}

func (api *applicationApi) applicationRetrieve(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	app, err := api.service.GetByID(ctx.Request().Context(), claims.Subject, ctx.Param("id"))
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, app)
}

func (api *applicationApi) applicationUpdateStatus(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	data := new(application.UpdateApplicationStatus)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(); err != nil {
		return err
	}

	app, err := api.service.UpdateStatus(ctx.Request().Context(), claims.Subject, ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, app)
}

func (api *applicationApi) applicationUpdate(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	data := new(application.UpdateApplication)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(); err != nil {
		return err
	}

	app, err := api.service.Update(ctx.Request().Context(), claims.Subject, ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, app)
}

func (api *applicationApi) applicationDestroy(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	if err = api.service.Delete(ctx.Request().Context(), claims.Subject, ctx.Param("id")); err != nil {
		return err
	}
	return respondMessage(ctx, http.StatusOK, "Application deleted successfully")
}

// Admin handlers

func (api *applicationApi) applicationAdminQuery(ctx echo.Context) error {
	opts := new(application.ListOptions)
	if err := ctx.Bind(opts); err != nil {
		return err
	}

	page, err := api.service.QueryAll(ctx.Request().Context(), *opts)
	if err != nil {
		return err
	}
	return respondPage(ctx, http.StatusOK, page.Items, page.Pagination)
}

func (api *applicationApi) applicationAdminRetrieve(ctx echo.Context) error {
	app, err := api.service.GetAny(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, app)
}
