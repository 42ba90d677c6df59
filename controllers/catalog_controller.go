package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-plantcare/advisory"
	"go-plantcare/catalog"
	"go-plantcare/metrics"
	"go-plantcare/models"
	"go-plantcare/utils"
)

// CatalogController serves the plant list and plant detail pages.
type CatalogController struct {
	Source  catalog.Source
	Advisor *advisory.Advisor
	Log     *zap.SugaredLogger
}

// NewCatalogController creates a new CatalogController.
func NewCatalogController(src catalog.Source, advisor *advisory.Advisor, log *zap.SugaredLogger) *CatalogController {
	return &CatalogController{Source: src, Advisor: advisor, Log: log}
}

// PlantDetail is the plant page: the plant plus this month's care panel.
type PlantDetail struct {
	models.PlantView
	Care advisory.CarePanel `json:"care"`
}

// load reads the catalog through the controller's source.
func (c *CatalogController) load(ctx context.Context) (models.Catalog, error) {
	return loadCatalog(ctx, c.Source, c.Log)
}

// loadCatalog loads once, counts the result and logs failures.
func loadCatalog(ctx context.Context, src catalog.Source, log *zap.SugaredLogger) (models.Catalog, error) {
	plants, err := src.Load(ctx)
	metrics.ObserveCatalogLoad(err)
	if err != nil {
		log.Errorw("catalog load failed", "error", err)
		return nil, err
	}
	return plants, nil
}

// ListPlants returns the catalog filtered by the "query" parameter.
func (c *CatalogController) ListPlants(ctx *gin.Context) {
	plants, err := c.load(ctx.Request.Context())
	if err != nil {
		utils.Error(ctx, err)
		return
	}

	matched := catalog.Filter(plants, ctx.Query("query"))
	if len(matched) == 0 {
		utils.Empty(ctx, models.ErrMsgNoPlantsFound)
		return
	}

	views := make([]models.PlantView, 0, len(matched))
	for _, p := range matched {
		views = append(views, models.NewPlantView(p))
	}
	utils.Success(ctx, views)
}

// GetPlant returns one plant and its care panel for the current month, or
// the month given in the query.
func (c *CatalogController) GetPlant(ctx *gin.Context) {
	month, err := monthQuery(ctx)
	if err != nil {
		utils.Error(ctx, err)
		return
	}

	plants, err := c.load(ctx.Request.Context())
	if err != nil {
		utils.Error(ctx, err)
		return
	}

	plant, err := catalog.FindByID(plants, ctx.Param("id"))
	if err != nil {
		utils.Error(ctx, err)
		return
	}

	care, err := c.Advisor.CarePanel(month)
	if err != nil {
		utils.Error(ctx, err)
		return
	}

	utils.Success(ctx, PlantDetail{
		PlantView: models.NewPlantView(plant),
		Care:      care,
	})
}

// RefreshResponse reports the size of the reloaded catalog.
type RefreshResponse struct {
	Plants int `json:"plants"`
}

// Refresh drops the cached catalog and loads it again, so an import shows up
// before the cache expires.
func (c *CatalogController) Refresh(ctx *gin.Context) {
	catalog.Invalidate(c.Source)
	plants, err := c.load(ctx.Request.Context())
	if err != nil {
		utils.Error(ctx, err)
		return
	}
	c.Log.Infow("catalog refreshed", "plants", len(plants))
	utils.Success(ctx, RefreshResponse{Plants: len(plants)})
}
