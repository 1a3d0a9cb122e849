package api

import (
	"net/http"

	"github.com/acroloop/acroloop/internal/configuration"
	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
)

func registerProfileEndpoints(rest *echo.Echo) {
	group := rest.Group("/profile")

	group.GET("/", getProfiles)
	group.GET("/:"+urlParamId+"/", getProfile)
}

// returns all configured tuning profiles
func getProfiles(c echo.Context) error {
	data := reprint.This(configuration.CurrentConfig.Profiles)
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

// returns one tuning profile, fully resolved along its inheritance chain
func getProfile(c echo.Context) error {
	id := c.Param(urlParamId)

	resolved, err := configuration.CurrentConfig.ResolveProfile(id)
	if err != nil {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, resolved, indentationChar)
}
