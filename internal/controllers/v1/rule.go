package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/payplan/backend/internal/httputil"
	"github.com/payplan/backend/internal/models"
)

// RegisterRuleRoutes registers the routes for allocation rules with
// the RouterGroup that is passed.
func RegisterRuleRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRuleList)
		r.GET("", GetRules)
		r.POST("", CreateRules)
	}

	// Rule with ID
	{
		r.OPTIONS("/:id", OptionsRuleDetail)
		r.GET("/:id", GetRule)
		r.PATCH("/:id", UpdateRule)
		r.DELETE("/:id", DeleteRule)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Rules
// @Success		204
// @Router			/v1/rules [options]
func OptionsRuleList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Rules
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id			path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			X-User-ID	header	string	true	"ID of the user"
// @Router			/v1/rules/{id} [options]
func OptionsRuleDetail(c *gin.Context) {
	resourceOptionsDetail[models.AllocationRule](c, httputil.OptionsGetPatchDelete)
}

// @Summary		Create rules
// @Description	Creates new allocation rules
// @Tags			Rules
// @Produce		json
// @Success		201			{object}	RuleCreateResponse
// @Failure		400			{object}	RuleCreateResponse
// @Failure		404			{object}	RuleCreateResponse
// @Failure		500			{object}	RuleCreateResponse
// @Param			rules		body		[]RuleEditable	true	"Rules"
// @Param			X-User-ID	header		string			true	"ID of the user"
// @Router			/v1/rules [post]
func CreateRules(c *gin.Context) {
	id, err := userID(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RuleCreateResponse{
			Error: &e,
		})
		return
	}

	var editables []RuleEditable
	err = httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RuleCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := RuleCreateResponse{}

	for _, editable := range editables {
		rule := editable.model(id)
		err = models.DB.Create(&rule).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newRule(c, rule)
		r.Data = append(r.Data, RuleResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List rules
// @Description	Returns a list of allocation rules in the order they are applied
// @Tags			Rules
// @Produce		json
// @Success		200	{object}	RuleListResponse
// @Failure		400	{object}	RuleListResponse
// @Failure		404	{object}	RuleListResponse
// @Failure		500	{object}	RuleListResponse
// @Router			/v1/rules [get]
// @Param			X-User-ID	header	string	true	"ID of the user"
// @Param			account		query	string	false	"Filter by account ID"
// @Param			category	query	string	false	"Filter by category"
// @Param			type		query	string	false	"Filter by type"
// @Param			active		query	bool	false	"Is the rule active?"
// @Param			offset		query	uint	false	"The offset of the first Rule returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Rules to return. Defaults to 50."
func GetRules(c *gin.Context) {
	id, err := userID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RuleListResponse{
			Error: &s,
		})
		return
	}

	var filter RuleQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, RuleListResponse{
			Error: &s,
		})
		return
	}

	// Get the set parameters in the query string
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RuleListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("priority ASC, created_at ASC").
		Where("user_id = ?", id).
		Where(&model, queryFields...)

	q = q.Offset(int(filter.Offset))
	limit := limit(setFields, filter.Limit)
	q = q.Limit(limit)

	var rules []models.AllocationRule
	err = q.Find(&rules).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RuleListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Model(&models.AllocationRule{}).Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RuleListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Rule, 0)
	for _, rule := range rules {
		data = append(data, newRule(c, rule))
	}

	c.JSON(http.StatusOK, RuleListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get rule
// @Description	Returns a specific allocation rule
// @Tags			Rules
// @Produce		json
// @Success		200			{object}	RuleResponse
// @Failure		400			{object}	RuleResponse
// @Failure		404			{object}	RuleResponse
// @Failure		500			{object}	RuleResponse
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			X-User-ID	header		string	true	"ID of the user"
// @Router			/v1/rules/{id} [get]
func GetRule(c *gin.Context) {
	rule, err := ownedResource[models.AllocationRule](c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RuleResponse{
			Error: &s,
		})
		return
	}

	data := newRule(c, rule)
	c.JSON(http.StatusOK, RuleResponse{Data: &data})
}

// @Summary		Update rule
// @Description	Updates an allocation rule. Only values to be updated need to be specified.
// @Tags			Rules
// @Produce		json
// @Success		200			{object}	RuleResponse
// @Failure		400			{object}	RuleResponse
// @Failure		404			{object}	RuleResponse
// @Failure		500			{object}	RuleResponse
// @Param			id			path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			X-User-ID	header		string			true	"ID of the user"
// @Param			rule		body		RuleEditable	true	"Rule"
// @Router			/v1/rules/{id} [patch]
func UpdateRule(c *gin.Context) {
	rule, err := ownedResource[models.AllocationRule](c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RuleResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RuleEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RuleResponse{
			Error: &s,
		})
		return
	}

	var data RuleEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RuleResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&rule).Select("", updateFields...).Updates(data.model(rule.UserID)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RuleResponse{
			Error: &s,
		})
		return
	}

	apiResource := newRule(c, rule)
	c.JSON(http.StatusOK, RuleResponse{Data: &apiResource})
}

// @Summary		Delete rule
// @Description	Deletes an allocation rule. Existing allocation records are kept.
// @Tags			Rules
// @Produce		json
// @Success		204
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			X-User-ID	header		string	true	"ID of the user"
// @Router			/v1/rules/{id} [delete]
func DeleteRule(c *gin.Context) {
	rule, err := ownedResource[models.AllocationRule](c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&rule).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
