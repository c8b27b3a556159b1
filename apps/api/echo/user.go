package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campushq/placetrack/core/user"
)

type authApi struct {
	service *user.Service
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *user.Service) {
	api := authApi{service: svc}

	// un-authed endpoints
	g.POST("/register", api.userRegister)
	g.POST("/login", api.userLogin)
	g.POST("/logout", api.userLogout)

	// authed endpoints
	g.GET("/me", api.userMe, jwt)
}

// Handlers

func (api *authApi) userRegister(ctx echo.Context) error {
	data := new(user.NewUser)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.service); err != nil {
		return err
	}

	if _, err := api.service.Register(ctx.Request().Context(), *data); err != nil {
		return err
	}
	return respondMessage(ctx, http.StatusCreated, "User registered successfully")
}

func (api *authApi) userLogin(ctx echo.Context) error {
	data := new(LoginRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := authenticate(ctx.Request().Context(), data.Email, data.Password, api.service)
	if err != nil {
		return err
	}
	token, err := GenerateToken(claims)
	if err != nil {
		return err
	}

	setTokenCookie(ctx, token)
	return respondMessage(ctx, http.StatusOK, "Login successful")
}

func (api *authApi) userLogout(ctx echo.Context) error {
	clearTokenCookie(ctx)
	return respondMessage(ctx, http.StatusOK, "Logged out successfully")
}

func (api *authApi) userMe(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, echo.Map{"userId": claims.Subject, "role": claims.Role})
}
