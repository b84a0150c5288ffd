package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/payplan/backend/internal/httputil"
	"github.com/payplan/backend/internal/models"
	"github.com/payplan/backend/internal/planner"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// RegisterIncomePlanRoutes registers the routes for income plans with
// the RouterGroup that is passed.
func (co Controller) RegisterIncomePlanRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsIncomePlanList)
		r.GET("", GetIncomePlans)
		r.POST("", CreateIncomePlans)
	}

	// Income plan with ID
	{
		r.OPTIONS("/:id", OptionsIncomePlanDetail)
		r.GET("/:id", GetIncomePlan)
		r.PATCH("/:id", UpdateIncomePlan)
		r.DELETE("/:id", co.DeleteIncomePlan)
	}

	// Status changes
	{
		r.OPTIONS("/:id/match", OptionsIncomePlanTransition)
		r.POST("/:id/match", co.MatchIncomePlan)
		r.OPTIONS("/:id/unmatch", OptionsIncomePlanTransition)
		r.POST("/:id/unmatch", co.UnmatchIncomePlan)
		r.OPTIONS("/:id/miss", OptionsIncomePlanTransition)
		r.POST("/:id/miss", co.MissIncomePlan)
		r.OPTIONS("/:id/reopen", OptionsIncomePlanTransition)
		r.POST("/:id/reopen", co.ReopenIncomePlan)
	}

	// Allocations of the plan
	{
		r.OPTIONS("/:id/allocations", OptionsIncomePlanAllocations)
		r.GET("/:id/allocations", co.GetIncomePlanAllocations)
		r.POST("/:id/allocations", co.RunIncomePlanAllocations)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Income Plans
// @Success		204
// @Router			/v1/income-plans [options]
func OptionsIncomePlanList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Income Plans
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id			path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			X-User-ID	header	string	true	"ID of the user"
// @Router			/v1/income-plans/{id} [options]
func OptionsIncomePlanDetail(c *gin.Context) {
	resourceOptionsDetail[models.IncomePlan](c, httputil.OptionsGetPatchDelete)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Income Plans
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id			path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			X-User-ID	header	string	true	"ID of the user"
// @Router			/v1/income-plans/{id}/match [options]
// @Router			/v1/income-plans/{id}/unmatch [options]
// @Router			/v1/income-plans/{id}/miss [options]
// @Router			/v1/income-plans/{id}/reopen [options]
func OptionsIncomePlanTransition(c *gin.Context) {
	resourceOptionsDetail[models.IncomePlan](c, httputil.OptionsPost)
}

// @Summary		Create income plans
// @Description	Creates new income plans. New plans are always planned.
// @Tags			Income Plans
// @Produce		json
// @Success		201			{object}	IncomePlanCreateResponse
// @Failure		400			{object}	IncomePlanCreateResponse
// @Failure		404			{object}	IncomePlanCreateResponse
// @Failure		500			{object}	IncomePlanCreateResponse
// @Param			incomePlans	body		[]IncomePlanEditable	true	"Income Plans"
// @Param			X-User-ID	header		string					true	"ID of the user"
// @Router			/v1/income-plans [post]
func CreateIncomePlans(c *gin.Context) {
	id, err := userID(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomePlanCreateResponse{
			Error: &e,
		})
		return
	}

	var editables []IncomePlanEditable
	err = httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomePlanCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := IncomePlanCreateResponse{}

	for _, editable := range editables {
		plan := editable.model(id)
		err = models.DB.Create(&plan).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newIncomePlan(c, plan)
		r.Data = append(r.Data, IncomePlanResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List income plans
// @Description	Returns a list of income plans ordered by expected date
// @Tags			Income Plans
// @Produce		json
// @Success		200	{object}	IncomePlanListResponse
// @Failure		400	{object}	IncomePlanListResponse
// @Failure		404	{object}	IncomePlanListResponse
// @Failure		500	{object}	IncomePlanListResponse
// @Router			/v1/income-plans [get]
// @Param			X-User-ID	header	string	true	"ID of the user"
// @Param			label		query	string	false	"Filter by label. Supports * as wildcard"
// @Param			status		query	string	false	"Filter by status"
// @Param			recurrence	query	string	false	"Filter by recurrence"
// @Param			from		query	string	false	"First month (YYYY-MM) to include"
// @Param			until		query	string	false	"Last month (YYYY-MM) to include"
// @Param			offset		query	uint	false	"The offset of the first Income Plan returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Income Plans to return. Defaults to 50."
func GetIncomePlans(c *gin.Context) {
	id, err := userID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomePlanListResponse{
			Error: &s,
		})
		return
	}

	var filter IncomePlanQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, IncomePlanListResponse{
			Error: &s,
		})
		return
	}

	// Get the set parameters in the query string
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()
	q := models.DB.
		Order("date(expected_date) ASC, created_at ASC").
		Where("user_id = ?", id).
		Where(&model, queryFields...)

	if !filter.From.IsZero() {
		q = q.Where("date(expected_date) >= date(?)", filter.From)
	}

	if !filter.Until.IsZero() {
		q = q.Where("date(expected_date) < date(?)", filter.Until.AddDate(0, 1, 0))
	}

	var plans []models.IncomePlan
	err = q.Find(&plans).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomePlanListResponse{
			Error: &s,
		})
		return
	}

	// Labels are matched against glob patterns, which the database cannot do
	if slices.Contains(setFields, "Label") {
		plans = slices.DeleteFunc(plans, func(p models.IncomePlan) bool {
			return !glob.Glob(filter.Label, p.Label)
		})
	}

	total := int64(len(plans))
	limit := limit(setFields, filter.Limit)
	plans = paginate(plans, filter.Offset, limit)

	data := make([]IncomePlan, 0)
	for _, plan := range plans {
		data = append(data, newIncomePlan(c, plan))
	}

	c.JSON(http.StatusOK, IncomePlanListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  total,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get income plan
// @Description	Returns a specific income plan
// @Tags			Income Plans
// @Produce		json
// @Success		200			{object}	IncomePlanResponse
// @Failure		400			{object}	IncomePlanResponse
// @Failure		404			{object}	IncomePlanResponse
// @Failure		500			{object}	IncomePlanResponse
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			X-User-ID	header		string	true	"ID of the user"
// @Router			/v1/income-plans/{id} [get]
func GetIncomePlan(c *gin.Context) {
	plan, err := ownedResource[models.IncomePlan](c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomePlanResponse{
			Error: &s,
		})
		return
	}

	data := newIncomePlan(c, plan)
	c.JSON(http.StatusOK, IncomePlanResponse{Data: &data})
}

// @Summary		Update income plan
// @Description	Updates an income plan. Only values to be updated need to be specified. The status is changed with the match, unmatch, miss and reopen endpoints.
// @Tags			Income Plans
// @Produce		json
// @Success		200			{object}	IncomePlanResponse
// @Failure		400			{object}	IncomePlanResponse
// @Failure		404			{object}	IncomePlanResponse
// @Failure		500			{object}	IncomePlanResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			X-User-ID	header		string				true	"ID of the user"
// @Param			incomePlan	body		IncomePlanEditable	true	"Income Plan"
// @Router			/v1/income-plans/{id} [patch]
func UpdateIncomePlan(c *gin.Context) {
	plan, err := ownedResource[models.IncomePlan](c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomePlanResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, IncomePlanEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomePlanResponse{
			Error: &s,
		})
		return
	}

	var data IncomePlanEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomePlanResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&plan).Select("", updateFields...).Updates(data.model(plan.UserID)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomePlanResponse{
			Error: &s,
		})
		return
	}

	apiResource := newIncomePlan(c, plan)
	c.JSON(http.StatusOK, IncomePlanResponse{Data: &apiResource})
}

// @Summary		Delete income plan
// @Description	Deletes an income plan and all of its allocation records
// @Tags			Income Plans
// @Produce		json
// @Success		204
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			X-User-ID	header		string	true	"ID of the user"
// @Router			/v1/income-plans/{id} [delete]
func (co Controller) DeleteIncomePlan(c *gin.Context) {
	plan, err := ownedResource[models.IncomePlan](c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = co.Planner.DeletePlan(c.Request.Context(), plan.UserID, plan.ID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Match income plan
// @Description	Matches a planned income with the transaction it arrived with. Allocation records become realized.
// @Tags			Income Plans
// @Produce		json
// @Success		200			{object}	IncomePlanResponse
// @Failure		400			{object}	IncomePlanResponse
// @Failure		404			{object}	IncomePlanResponse
// @Failure		500			{object}	IncomePlanResponse
// @Param			id			path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			X-User-ID	header		string			true	"ID of the user"
// @Param			match		body		IncomePlanMatch	true	"Actual amount and transaction"
// @Router			/v1/income-plans/{id}/match [post]
func (co Controller) MatchIncomePlan(c *gin.Context) {
	transition(c, func(ctx context.Context, userID, planID uuid.UUID) (planner.Plan, error) {
		var data IncomePlanMatch
		err := httputil.BindData(c, &data)
		if err != nil {
			return planner.Plan{}, err
		}

		return co.Planner.Match(ctx, userID, planID, *data.ActualAmount, data.TransactionID)
	})
}

// @Summary		Unmatch income plan
// @Description	Reverts a match. The actual amount and transaction are removed, allocation records become forecasts again.
// @Tags			Income Plans
// @Produce		json
// @Success		200			{object}	IncomePlanResponse
// @Failure		400			{object}	IncomePlanResponse
// @Failure		404			{object}	IncomePlanResponse
// @Failure		500			{object}	IncomePlanResponse
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			X-User-ID	header		string	true	"ID of the user"
// @Router			/v1/income-plans/{id}/unmatch [post]
func (co Controller) UnmatchIncomePlan(c *gin.Context) {
	transition(c, co.Planner.Unmatch)
}

// @Summary		Miss income plan
// @Description	Marks a planned income as missed. Its allocation records are deleted.
// @Tags			Income Plans
// @Produce		json
// @Success		200			{object}	IncomePlanResponse
// @Failure		400			{object}	IncomePlanResponse
// @Failure		404			{object}	IncomePlanResponse
// @Failure		500			{object}	IncomePlanResponse
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			X-User-ID	header		string	true	"ID of the user"
// @Router			/v1/income-plans/{id}/miss [post]
func (co Controller) MissIncomePlan(c *gin.Context) {
	transition(c, co.Planner.Miss)
}

// @Summary		Reopen income plan
// @Description	Sets a missed income back to planned
// @Tags			Income Plans
// @Produce		json
// @Success		200			{object}	IncomePlanResponse
// @Failure		400			{object}	IncomePlanResponse
// @Failure		404			{object}	IncomePlanResponse
// @Failure		500			{object}	IncomePlanResponse
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			X-User-ID	header		string	true	"ID of the user"
// @Router			/v1/income-plans/{id}/reopen [post]
func (co Controller) ReopenIncomePlan(c *gin.Context) {
	transition(c, co.Planner.Reopen)
}

// transition changes the status of the income plan from the URI with fn
// and responds with the updated plan.
func transition(c *gin.Context, fn func(ctx context.Context, userID, planID uuid.UUID) (planner.Plan, error)) {
	plan, err := ownedResource[models.IncomePlan](c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomePlanResponse{
			Error: &s,
		})
		return
	}

	_, err = fn(c.Request.Context(), plan.UserID, plan.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomePlanResponse{
			Error: &s,
		})
		return
	}

	var updated models.IncomePlan
	err = models.DB.First(&updated, plan.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomePlanResponse{
			Error: &s,
		})
		return
	}

	data := newIncomePlan(c, updated)
	c.JSON(http.StatusOK, IncomePlanResponse{Data: &data})
}
