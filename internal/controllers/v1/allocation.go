package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/payplan/backend/internal/httputil"
	"github.com/payplan/backend/internal/models"
)

// RegisterAllocationRoutes registers the routes for allocation records
// and previews with the RouterGroup that is passed.
func (co Controller) RegisterAllocationRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/preview", OptionsAllocationPreview)
		r.POST("/preview", co.PreviewAllocations)
	}

	{
		r.OPTIONS("/:id", OptionsAllocationRecordDetail)
		r.PATCH("/:id", UpdateAllocationRecord)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Allocations
// @Success		204
// @Router			/v1/allocations/preview [options]
func OptionsAllocationPreview(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Allocations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id			path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			X-User-ID	header	string	true	"ID of the user"
// @Router			/v1/allocations/{id} [options]
func OptionsAllocationRecordDetail(c *gin.Context) {
	resourceOptionsDetail[models.AllocationRecord](c, httputil.OptionsPatch)
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
// @Router			/v1/income-plans/{id}/allocations [options]
func OptionsIncomePlanAllocations(c *gin.Context) {
	resourceOptionsDetail[models.IncomePlan](c, httputil.OptionsGetPost)
}

// @Summary		Run allocations
// @Description	Computes the allocations of the income plan with the current rules and replaces its allocation records
// @Tags			Income Plans
// @Produce		json
// @Success		200			{object}	AllocationRecordListResponse
// @Failure		400			{object}	AllocationRecordListResponse
// @Failure		404			{object}	AllocationRecordListResponse
// @Failure		500			{object}	AllocationRecordListResponse
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			X-User-ID	header		string	true	"ID of the user"
// @Router			/v1/income-plans/{id}/allocations [post]
func (co Controller) RunIncomePlanAllocations(c *gin.Context) {
	plan, err := ownedResource[models.IncomePlan](c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationRecordListResponse{
			Error: &s,
		})
		return
	}

	_, err = co.Planner.RunAllocations(c.Request.Context(), plan.UserID, plan.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationRecordListResponse{
			Error: &s,
		})
		return
	}

	co.respondRecords(c, plan)
}

// @Summary		Get allocations
// @Description	Returns the persisted allocation records of the income plan
// @Tags			Income Plans
// @Produce		json
// @Success		200			{object}	AllocationRecordListResponse
// @Failure		400			{object}	AllocationRecordListResponse
// @Failure		404			{object}	AllocationRecordListResponse
// @Failure		500			{object}	AllocationRecordListResponse
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			X-User-ID	header		string	true	"ID of the user"
// @Router			/v1/income-plans/{id}/allocations [get]
func (co Controller) GetIncomePlanAllocations(c *gin.Context) {
	plan, err := ownedResource[models.IncomePlan](c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationRecordListResponse{
			Error: &s,
		})
		return
	}

	co.respondRecords(c, plan)
}

func (co Controller) respondRecords(c *gin.Context, plan models.IncomePlan) {
	records, err := co.Planner.Records(c.Request.Context(), plan.UserID, plan.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationRecordListResponse{
			Error: &s,
		})
		return
	}

	data := make([]AllocationRecord, 0, len(records))
	for _, record := range records {
		data = append(data, newAllocationRecord(c, record))
	}

	c.JSON(http.StatusOK, AllocationRecordListResponse{Data: data})
}

// @Summary		Update allocation record
// @Description	Changes the amount of an allocation record. Realized records cannot be changed.
// @Tags			Allocations
// @Produce		json
// @Success		200			{object}	AllocationRecordResponse
// @Failure		400			{object}	AllocationRecordResponse
// @Failure		404			{object}	AllocationRecordResponse
// @Failure		500			{object}	AllocationRecordResponse
// @Param			id			path		URIID						true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			X-User-ID	header		string						true	"ID of the user"
// @Param			record		body		AllocationRecordEditable	true	"Allocation record"
// @Router			/v1/allocations/{id} [patch]
func UpdateAllocationRecord(c *gin.Context) {
	record, err := ownedResource[models.AllocationRecord](c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationRecordResponse{
			Error: &s,
		})
		return
	}

	var data AllocationRecordEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationRecordResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&record).Select("Amount").Updates(models.AllocationRecord{Amount: data.Amount}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationRecordResponse{
			Error: &s,
		})
		return
	}

	apiResource := newAllocationRecord(c, recordOf(record))
	c.JSON(http.StatusOK, AllocationRecordResponse{Data: &apiResource})
}

// @Summary		Preview allocations
// @Description	Computes the allocations for a hypothetical income with the current rules. Nothing is persisted.
// @Tags			Allocations
// @Produce		json
// @Success		200			{object}	PreviewResponse
// @Failure		400			{object}	PreviewResponse
// @Failure		404			{object}	PreviewResponse
// @Failure		500			{object}	PreviewResponse
// @Param			X-User-ID	header		string			true	"ID of the user"
// @Param			preview		body		PreviewRequest	true	"Amount"
// @Router			/v1/allocations/preview [post]
func (co Controller) PreviewAllocations(c *gin.Context) {
	id, err := userID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PreviewResponse{
			Error: &s,
		})
		return
	}

	var data PreviewRequest
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PreviewResponse{
			Error: &s,
		})
		return
	}

	preview, err := co.Planner.Preview(c.Request.Context(), id, *data.Amount)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PreviewResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, PreviewResponse{Data: &preview})
}
