package controllers

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-plantcare/advisory"
	"go-plantcare/catalog"
	"go-plantcare/models"
	"go-plantcare/utils"
)

// WateringController stores and lists a user's watering calculations.
type WateringController struct {
	DB      *sql.DB
	Source  catalog.Source
	Advisor *advisory.Advisor
	Log     *zap.SugaredLogger
	Now     func() time.Time
}

// NewWateringController creates a new WateringController.
func NewWateringController(db *sql.DB, src catalog.Source, advisor *advisory.Advisor, log *zap.SugaredLogger) *WateringController {
	return &WateringController{DB: db, Source: src, Advisor: advisor, Log: log, Now: time.Now}
}

// SaveRecordRequest is a calculator request bound to a plant.
type SaveRecordRequest struct {
	PlantID string `json:"plantId" binding:"required"`
	WateringRequest
}

const recordColumns = `public_id, user_id, plant_id, month, temperature, pot_volume, plant_factor, volume_ml, created_at`

// SaveRecord computes a watering volume for a catalog plant and stores it.
func (c *WateringController) SaveRecord(ctx *gin.Context) {
	userID := ctx.GetInt("userID")

	var req SaveRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, bindError(err))
		return
	}

	plants, err := loadCatalog(ctx.Request.Context(), c.Source, c.Log)
	if err != nil {
		utils.Error(ctx, err)
		return
	}
	if _, err := catalog.FindByID(plants, req.PlantID); err != nil {
		utils.Error(ctx, err)
		return
	}

	resp, err := calculate(c.Advisor, req.WateringRequest)
	if err != nil {
		utils.Error(ctx, err)
		return
	}

	publicID, err := utils.NewRecordID()
	if err != nil {
		utils.Error(ctx, fmt.Errorf("generate record id: %w", err))
		return
	}

	record := models.WateringRecord{
		ID:          publicID,
		UserID:      userID,
		PlantID:     req.PlantID,
		Month:       resp.Month,
		Temperature: resp.Inputs.TemperatureC,
		PotVolume:   resp.Inputs.PotVolumeMl,
		PlantFactor: resp.Inputs.PlantFactor,
		VolumeMl:    resp.VolumeMl,
		CreatedAt:   utils.FormatTime(c.Now()),
	}

	_, err = c.DB.ExecContext(ctx.Request.Context(),
		`INSERT INTO watering_records (`+recordColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.UserID, record.PlantID, record.Month,
		record.Temperature, record.PotVolume, record.PlantFactor,
		record.VolumeMl, record.CreatedAt,
	)
	if err != nil {
		utils.Error(ctx, fmt.Errorf("insert watering record: %w", err))
		return
	}

	c.Log.Infow("watering record saved", "record_id", record.ID, "user_id", userID, "plant_id", record.PlantID)
	utils.Created(ctx, record)
}

// GetRecords lists the caller's records, newest first, optionally for one plant.
func (c *WateringController) GetRecords(ctx *gin.Context) {
	userID := ctx.GetInt("userID")
	page, pageSize, offset := utils.ParsePagination(ctx.Query("page"), ctx.Query("pageSize"))
	plantID := ctx.Query("plantId")

	where := " WHERE user_id = ?"
	params := []interface{}{userID}
	if plantID != "" {
		where += " AND plant_id = ?"
		params = append(params, plantID)
	}

	var totalCount int
	err := c.DB.QueryRowContext(ctx.Request.Context(),
		"SELECT COUNT(*) FROM watering_records"+where, params...).Scan(&totalCount)
	if err != nil {
		utils.Error(ctx, fmt.Errorf("count watering records: %w", err))
		return
	}

	query := "SELECT " + recordColumns + " FROM watering_records" + where +
		" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	rows, err := c.DB.QueryContext(ctx.Request.Context(), query, append(params, pageSize, offset)...)
	if err != nil {
		utils.Error(ctx, fmt.Errorf("query watering records: %w", err))
		return
	}
	defer rows.Close()

	records := []models.WateringRecord{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			utils.Error(ctx, fmt.Errorf("scan watering record: %w", err))
			return
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		utils.Error(ctx, fmt.Errorf("read watering records: %w", err))
		return
	}

	utils.SuccessWithPagination(ctx, records, totalCount, page, pageSize)
}

// GetRecord returns one of the caller's records by public id.
func (c *WateringController) GetRecord(ctx *gin.Context) {
	userID := ctx.GetInt("userID")
	id := ctx.Query("id")
	if !utils.ValidateRecordID(id) {
		utils.Error(ctx, fmt.Errorf("%w: record %q", models.ErrNotFound, id))
		return
	}

	row := c.DB.QueryRowContext(ctx.Request.Context(),
		"SELECT "+recordColumns+" FROM watering_records WHERE public_id = ? AND user_id = ?",
		id, userID)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		utils.Error(ctx, fmt.Errorf("%w: record %q", models.ErrNotFound, id))
		return
	}
	if err != nil {
		utils.Error(ctx, fmt.Errorf("scan watering record: %w", err))
		return
	}

	utils.Success(ctx, record)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRecord reads one watering_records row.
func scanRecord(row rowScanner) (models.WateringRecord, error) {
	var r models.WateringRecord
	err := row.Scan(&r.ID, &r.UserID, &r.PlantID, &r.Month,
		&r.Temperature, &r.PotVolume, &r.PlantFactor, &r.VolumeMl, &r.CreatedAt)
	return r, err
}
