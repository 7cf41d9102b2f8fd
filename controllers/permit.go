// controllers/permit.go
package controllers

import (
	"net/http"
	"strconv"

	"jobtract-backend/permits"
	"jobtract-backend/services"
	"jobtract-backend/utils"

	"github.com/gin-gonic/gin"
)

// PermitController serves lookups against the City of Vancouver
// issued-building-permits dataset.
type PermitController struct {
	client     *services.PermitClient
	normalizer *permits.Normalizer
}

func NewPermitController(client *services.PermitClient, normalizer *permits.Normalizer) *PermitController {
	return &PermitController{client: client, normalizer: normalizer}
}

// SearchPermits runs a filtered permit search and returns one page of
// normalized records.
//
// Query parameters: search, geographic_area, work_type, property_use,
// specific_use, year, page, page_size.
func (pc *PermitController) SearchPermits(c *gin.Context) {
	params := services.PermitSearchParams{
		Search:         c.Query("search"),
		GeographicArea: c.Query("geographic_area"),
		WorkType:       c.Query("work_type"),
		PropertyUse:    c.Query("property_use"),
		SpecificUse:    c.Query("specific_use"),
		Year:           c.Query("year"),
	}

	result, err := pc.client.Search(params)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Permit search failed: "+err.Error())
		return
	}

	normalized := pc.normalizer.Normalize(result.Records)

	paginator := permits.NewPaginator(normalized)
	if size, err := strconv.Atoi(c.Query("page_size")); err == nil {
		paginator.SetPageSize(size)
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		paginator.SetPage(page)
	}

	pagePermits := paginator.Current()
	if pagePermits == nil {
		pagePermits = []permits.Record{}
	}

	c.JSON(http.StatusOK, gin.H{
		"permits":     pagePermits,
		"totalCount":  result.TotalCount,
		"resultCount": paginator.Len(),
		"page":        paginator.CurrentPage(),
		"pageSize":    paginator.PageSize(),
		"totalPages":  paginator.TotalPages(),
	})
}
