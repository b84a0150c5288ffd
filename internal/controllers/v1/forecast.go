package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/payplan/backend/internal/httputil"
	"github.com/payplan/backend/internal/planner"
)

type ForecastQuery struct {
	Months int `form:"months" example:"6"` // Number of months, starting with the current one. Defaults to 3
}

type ForecastResponse struct {
	Data  []planner.MonthSummary `json:"data"`                                                                   // One summary per month
	Error *string                `json:"error" example:"the number of forecast months must be between 1 and 24"` // The error, if any occurred
}

// RegisterForecastRoutes registers the routes for forecasts with
// the RouterGroup that is passed.
func (co Controller) RegisterForecastRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsForecast)
	r.GET("", co.GetForecast)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Forecast
// @Success		204
// @Router			/v1/forecast [options]
func OptionsForecast(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get forecast
// @Description	Returns the forecast of income and allocations per month
// @Tags			Forecast
// @Produce		json
// @Success		200			{object}	ForecastResponse
// @Failure		400			{object}	ForecastResponse
// @Failure		404			{object}	ForecastResponse
// @Failure		500			{object}	ForecastResponse
// @Param			X-User-ID	header		string	true	"ID of the user"
// @Param			months		query		int		false	"Number of months. Defaults to 3, at most 24"
// @Router			/v1/forecast [get]
func (co Controller) GetForecast(c *gin.Context) {
	id, err := userID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ForecastResponse{
			Error: &s,
		})
		return
	}

	var query ForecastQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ForecastResponse{
			Error: &s,
		})
		return
	}

	summaries, err := co.Planner.MonthlyForecast(c.Request.Context(), id, query.Months)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ForecastResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ForecastResponse{Data: summaries})
}
