package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manuchak/detecta-core-sub015/gazetteer"
	"github.com/manuchak/detecta-core-sub015/scoring"
)

type listPlacesResponse struct {
	Places []gazetteer.Place `json:"places"`
	Zones  []gazetteer.Zone  `json:"zones"`
}

// listPlaces returns the loaded gazetteer tables.
func (server *Server) listPlaces(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, listPlacesResponse{
		Places: server.gaz.Places(),
		Zones:  server.gaz.Zones(),
	})
}

type resolvePlaceRequest struct {
	Text string `form:"text" binding:"required"`
}

type resolvePlaceResponse struct {
	Query string          `json:"query"`
	Place gazetteer.Place `json:"place"`
}

// resolvePlace probes the free-text resolver. A miss is a 404, not an
// error: resolution failure is a valid outcome.
func (server *Server) resolvePlace(ctx *gin.Context) {
	var req resolvePlaceRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	place, ok := server.gaz.Resolve(req.Text)
	RecordPlaceResolution(ok)
	if !ok {
		ctx.JSON(http.StatusNotFound, errorResponse(errors.New("no place matches the given text")))
		return
	}

	ctx.JSON(http.StatusOK, resolvePlaceResponse{Query: req.Text, Place: place})
}

type placeDistanceRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

type placeDistanceResponse struct {
	From       string `json:"from"`
	To         string `json:"to"`
	DistanceKm int    `json:"distance_km"`
	SameZone   bool   `json:"same_zone"`
}

// placeDistance returns the great-circle distance between two place keys.
func (server *Server) placeDistance(ctx *gin.Context) {
	var req placeDistanceRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	km, ok := server.gaz.Distance(req.From, req.To)
	if !ok {
		ctx.JSON(http.StatusNotFound, errorResponse(errors.New("unknown place key")))
		return
	}

	ctx.JSON(http.StatusOK, placeDistanceResponse{
		From:       req.From,
		To:         req.To,
		DistanceKm: km,
		SameZone:   server.gaz.SameZone(req.From, req.To),
	})
}

type analyzePatternsRequest struct {
	Records []rankHistoryRecord `json:"records" binding:"required,min=1,dive"`
}

type analyzePatternsResponse struct {
	FrequentPlaces       []string `json:"frequent_places"`
	FrequentServiceTypes []string `json:"frequent_service_types"`
	RecordsAnalyzed      int      `json:"records_analyzed"`
}

// analyzePatterns derives frequent places and service types from a batch
// of historical records.
func (server *Server) analyzePatterns(ctx *gin.Context) {
	var req analyzePatternsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	records := make([]scoring.HistoricalRecord, len(req.Records))
	for i, rec := range req.Records {
		records[i] = scoring.HistoricalRecord{
			OccurredAt:  rec.OccurredAt,
			Origin:      rec.Origin,
			Destination: rec.Destination,
			Status:      rec.Status,
			ServiceType: rec.ServiceType,
			DistanceKm:  rec.DistanceKm,
		}
	}

	places, types := server.analyzer.Analyze(records)
	ctx.JSON(http.StatusOK, analyzePatternsResponse{
		FrequentPlaces:       places,
		FrequentServiceTypes: types,
		RecordsAnalyzed:      len(records),
	})
}
