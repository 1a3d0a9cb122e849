package api

import (
	"net/http"

	"github.com/acroloop/acroloop/internal/controller"
	"github.com/acroloop/acroloop/internal/pid"
	"github.com/labstack/echo/v4"
)

func registerStatusEndpoints(rest *echo.Echo, loop controller.RateLoop) {
	rest.GET("/status/", func(c echo.Context) error {
		return getStatus(c, loop)
	})
	rest.GET("/pid/", func(c echo.Context) error {
		return getPid(c, loop)
	})
}

// returns the full telemetry snapshot of the loop
func getStatus(c echo.Context, loop controller.RateLoop) error {
	data := loop.Snapshot()
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

type pidStatus struct {
	Controller pid.ControllerType           `json:"controller"`
	Terms      [pid.AxisCount]pid.AxisTerms `json:"terms"`
	Demand     [pid.AxisCount]int32         `json:"demand"`
}

// returns the per-axis terms and demands of the last control cycle
func getPid(c echo.Context, loop controller.RateLoop) error {
	telemetry := loop.Snapshot()
	data := pidStatus{
		Controller: telemetry.Controller,
		Terms:      telemetry.Terms,
		Demand:     telemetry.Demand,
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
