package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campushq/placetrack/core/analytics"
)

type analyticsApi struct {
	service *analytics.Service
}

func registerAnalyticsAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *analytics.Service) {
	api := analyticsApi{service: svc}

	ag := g.Group("/analytics", jwt)
	ag.GET("/summary", api.analyticsSummary)
	ag.GET("/company", api.analyticsCompanyBreakdown)
	ag.GET("/dropoff", api.analyticsRoundDropOff)
	ag.GET("/stats", api.analyticsGlobalStats, admin)
}

// Handlers

func (api *analyticsApi) analyticsSummary(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	summary, err := api.service.Summary(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, summary)
}

func (api *analyticsApi) analyticsCompanyBreakdown(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	stats, err := api.service.CompanyBreakdown(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, stats)
}

func (api *analyticsApi) analyticsRoundDropOff(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	stats, err := api.service.RoundDropOff(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, stats)
}

func (api *analyticsApi) analyticsGlobalStats(ctx echo.Context) error {
	stats, err := api.service.GlobalStats(ctx.Request().Context())
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, stats)
}
