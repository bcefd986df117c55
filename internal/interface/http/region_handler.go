package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/geo-region-service/internal/application"
	"github.com/oksasatya/geo-region-service/internal/application/dto"
	"github.com/oksasatya/geo-region-service/internal/mapper"
	"github.com/oksasatya/geo-region-service/pkg/response"
)

type RegionHandler struct {
	Create *application.CreateRegionUseCase
	Update *application.UpdateRegionUseCase
	Delete *application.DeleteRegionUseCase
	Find   *application.FindRegionUseCase
	Logger *logrus.Logger
}

func NewRegionHandler(create *application.CreateRegionUseCase, update *application.UpdateRegionUseCase, del *application.DeleteRegionUseCase, find *application.FindRegionUseCase, logger *logrus.Logger) *RegionHandler {
	return &RegionHandler{Create: create, Update: update, Delete: del, Find: find, Logger: logger}
}

// CreateRegion POST /regions
func (h *RegionHandler) CreateRegion(c *gin.Context) {
	var req dto.CreateRegionRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.Fail(c, err)
		return
	}
	reg, err := h.Create.Execute(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Region created", dto.IDResponse{ID: reg.ID})
}

// ListRegions GET /regions?ownerId=
func (h *RegionHandler) ListRegions(c *gin.Context) {
	var q dto.ListRegionsQuery
	if !bindQuery(c, &q) {
		return
	}
	regions, err := h.Find.All(c.Request.Context(), q.Owner())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Regions retrieved", dto.RegionListResponse{Regions: mapper.ToRegionResponses(regions)})
}

// GetRegion GET /regions/:id
func (h *RegionHandler) GetRegion(c *gin.Context) {
	reg, err := h.Find.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Region retrieved", gin.H{"region": mapper.ToRegionResponse(reg)})
}

// UpdateRegion PUT /regions/:id
func (h *RegionHandler) UpdateRegion(c *gin.Context) {
	var req dto.UpdateRegionRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.Fail(c, err)
		return
	}
	if _, err := h.Update.Execute(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Fail(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteRegion DELETE /regions/:id?hardDelete=true
func (h *RegionHandler) DeleteRegion(c *gin.Context) {
	var q dto.DeleteQuery
	if !bindQuery(c, &q) {
		return
	}
	id := c.Param("id")
	var err error
	if q.HardDelete {
		err = h.Delete.ExecuteHard(c.Request.Context(), id)
	} else {
		err = h.Delete.Execute(c.Request.Context(), id)
	}
	if err != nil {
		response.Fail(c, err)
		return
	}
	if h.Logger != nil {
		h.Logger.WithFields(logrus.Fields{"region_id": id, "hard": q.HardDelete}).Info("region deleted")
	}
	response.NoContent(c)
}

// ContainingPoint POST /regions/containing-point
func (h *RegionHandler) ContainingPoint(c *gin.Context) {
	var req dto.PointRequest
	if !bindJSON(c, &req) {
		return
	}
	regions, err := h.Find.ContainingPoint(c.Request.Context(), req.Coordinates())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Regions containing point retrieved", dto.ContainingPointResponse{
		Regions:      mapper.ToRegionResponses(regions),
		RegionsCount: len(regions),
	})
}

// Near POST /regions/near?maxDistance=&ownerId=
func (h *RegionHandler) Near(c *gin.Context) {
	var q dto.NearQuery
	if !bindQuery(c, &q) {
		return
	}
	var req dto.PointRequest
	if !bindJSON(c, &req) {
		return
	}
	owner := q.Owner()
	regions, err := h.Find.NearPoint(c.Request.Context(), req.Coordinates(), q.Distance(), owner)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Regions near point retrieved", dto.NearResponse{
		Regions:          mapper.ToRegionResponses(regions),
		Distance:         q.Distance(),
		OnlyOwnerRegions: owner != nil,
	})
}
