package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-plantcare/advisory"
	"go-plantcare/metrics"
	"go-plantcare/utils"
)

// AdvisoryController serves the season panel and the watering calculator.
type AdvisoryController struct {
	Advisor *advisory.Advisor
	Log     *zap.SugaredLogger
}

// NewAdvisoryController creates a new AdvisoryController.
func NewAdvisoryController(advisor *advisory.Advisor, log *zap.SugaredLogger) *AdvisoryController {
	return &AdvisoryController{Advisor: advisor, Log: log}
}

// SeasonResponse pairs a season band with its care panel.
type SeasonResponse struct {
	Band advisory.SeasonBand `json:"band"`
	Care advisory.CarePanel  `json:"care"`
}

// WateringResponse is the calculator output.
type WateringResponse struct {
	VolumeMl int                     `json:"volumeMl"`
	Unit     string                  `json:"unit"`
	Month    int                     `json:"month"`
	Season   advisory.Season         `json:"season"`
	Inputs   advisory.WateringInputs `json:"inputs"`
}

// GetSeason returns the band and care panel for ?month= or the current month.
func (c *AdvisoryController) GetSeason(ctx *gin.Context) {
	month, err := monthQuery(ctx)
	if err != nil {
		utils.Error(ctx, err)
		return
	}
	// Read the clock once so the band and the panel agree on the month.
	if month == 0 {
		month = c.Advisor.CurrentMonth()
	}

	band, err := c.Advisor.Season(month)
	if err != nil {
		utils.Error(ctx, err)
		return
	}
	care, err := c.Advisor.CarePanel(month)
	if err != nil {
		utils.Error(ctx, err)
		return
	}
	utils.Success(ctx, SeasonResponse{Band: band, Care: care})
}

// ListSeasons returns all four bands starting with spring.
func (c *AdvisoryController) ListSeasons(ctx *gin.Context) {
	utils.Success(ctx, advisory.Bands())
}

// GetSeasonBand returns one band by season name.
func (c *AdvisoryController) GetSeasonBand(ctx *gin.Context) {
	band, err := advisory.BandByName(ctx.Param("season"))
	if err != nil {
		utils.Error(ctx, err)
		return
	}
	utils.Success(ctx, band)
}

// GetDefaults returns the calculator's starting values.
func (c *AdvisoryController) GetDefaults(ctx *gin.Context) {
	utils.Success(ctx, advisory.DefaultInputs())
}

// Calculate computes the daily watering volume.
func (c *AdvisoryController) Calculate(ctx *gin.Context) {
	var req WateringRequest
	if err := ctx.ShouldBind(&req); err != nil {
		utils.Error(ctx, bindError(err))
		return
	}

	resp, err := calculate(c.Advisor, req)
	if err != nil {
		utils.Error(ctx, err)
		return
	}
	c.Log.Debugw("watering calculated", "month", resp.Month, "volume_ml", resp.VolumeMl)
	utils.Success(ctx, resp)
}

// calculate validates req and runs the formula.
func calculate(advisor *advisory.Advisor, req WateringRequest) (WateringResponse, error) {
	in, err := req.Inputs()
	if err != nil {
		return WateringResponse{}, err
	}
	month, err := req.MonthValue()
	if err != nil {
		return WateringResponse{}, err
	}

	volume, resolved, err := advisor.Watering(in, month)
	if err != nil {
		return WateringResponse{}, err
	}
	season, err := advisory.SeasonOf(resolved)
	if err != nil {
		return WateringResponse{}, err
	}
	metrics.ObserveWatering(season.String())

	return WateringResponse{
		VolumeMl: volume,
		Unit:     "ml/day",
		Month:    resolved,
		Season:   season,
		Inputs:   in,
	}, nil
}
