package api

import (
	"net/http"

	"github.com/acroloop/acroloop/internal/controller"
	"github.com/acroloop/acroloop/internal/pid"
	"github.com/labstack/echo/v4"
)

func registerControlEndpoints(rest *echo.Echo, loop controller.RateLoop) {
	rest.POST("/arm/", func(c echo.Context) error {
		return postArm(c, loop)
	})
	rest.POST("/disarm/", func(c echo.Context) error {
		return postDisarm(c, loop)
	})
	rest.POST("/controller/:"+urlParamType+"/", func(c echo.Context) error {
		return postController(c, loop)
	})
}

func postArm(c echo.Context, loop controller.RateLoop) error {
	loop.Arm()
	return c.JSONPretty(http.StatusOK, &Result{
		Name:    "Armed",
		Message: "Controller state reset, blackbox recording started",
	}, indentationChar)
}

func postDisarm(c echo.Context, loop controller.RateLoop) error {
	loop.Disarm()
	return c.JSONPretty(http.StatusOK, &Result{
		Name:    "Disarmed",
		Message: "Controller state reset, blackbox session flushed",
	}, indentationChar)
}

// switches the active control law. The switch is serviced between control
// cycles, both laws keep their state.
func postController(c echo.Context, loop controller.RateLoop) error {
	controllerType := pid.ControllerType(c.Param(urlParamType))
	if err := loop.SelectController(controllerType); err != nil {
		return c.JSONPretty(http.StatusBadRequest, &Result{
			Name:    "Unknown controller",
			Message: err.Error(),
		}, indentationChar)
	}
	return c.JSONPretty(http.StatusOK, &Result{
		Name:    "Controller switched",
		Message: string(controllerType),
	}, indentationChar)
}
