package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/payplan/backend/internal/httputil"
	"github.com/payplan/backend/internal/models"
)

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)

	RegisterUserRoutes(r.Group("/users"))
	RegisterAccountRoutes(r.Group("/accounts"))
	RegisterRuleRoutes(r.Group("/rules"))
	co.RegisterIncomePlanRoutes(r.Group("/income-plans"))
	co.RegisterAllocationRoutes(r.Group("/allocations"))
	co.RegisterForecastRoutes(r.Group("/forecast"))
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Users       string `json:"users" example:"https://example.com/api/v1/users"`                 // URL of User collection endpoint
	Accounts    string `json:"accounts" example:"https://example.com/api/v1/accounts"`           // URL of Account collection endpoint
	Rules       string `json:"rules" example:"https://example.com/api/v1/rules"`                 // URL of Rule collection endpoint
	IncomePlans string `json:"incomePlans" example:"https://example.com/api/v1/income-plans"`    // URL of Income Plan collection endpoint
	Preview     string `json:"preview" example:"https://example.com/api/v1/allocations/preview"` // URL of the allocation preview endpoint
	Forecast    string `json:"forecast" example:"https://example.com/api/v1/forecast"`           // URL of the forecast endpoint
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Users:       url + "/v1/users",
			Accounts:    url + "/v1/accounts",
			Rules:       url + "/v1/rules",
			IncomePlans: url + "/v1/income-plans",
			Preview:     url + "/v1/allocations/preview",
			Forecast:    url + "/v1/forecast",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
