package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vk/seriesreg/internal/query"
	"github.com/vk/seriesreg/internal/registry"
	"github.com/vk/seriesreg/internal/report"
	"github.com/vk/seriesreg/internal/series"
)

func (s *Server) health(c *gin.Context) {
	c.String(http.StatusOK, "OK\n")
}

func (s *Server) listSeries(c *gin.Context) {
	filter, err := query.NewFilter(c.Query("filter"))
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	matched, err := filter.Apply(s.registry.Descriptors())
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	views := make([]report.SeriesType, 0, len(matched))
	for _, d := range matched {
		views = append(views, report.NewSeriesType(d))
	}
	c.IndentedJSON(http.StatusOK, views)
}

func (s *Server) coefficients(c *gin.Context) {
	kind, err := series.ParseKind(c.Param("series"))
	if err != nil {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}
	views, err := report.NewCoefficientTypes(s.registry.CfTypes(kind))
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"series": kind.String(), "coefficients": views})
}

func (s *Server) resolve(c *gin.Context) {
	d, err := s.registry.ResolveByName(c.Param("series"), c.Param("coefficient"))
	switch {
	case errors.Is(err, series.ErrUnknownSeries), errors.Is(err, registry.ErrUnsupportedCoefficient):
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	case err != nil:
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, report.NewSeriesType(d))
}

func (s *Server) symbol(c *gin.Context) {
	d, ok := s.registry.Lookup(c.Param("symbol"))
	if !ok {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "unknown symbol " + c.Param("symbol")})
		return
	}
	c.IndentedJSON(http.StatusOK, report.NewSeriesType(d))
}

func (s *Server) currentSettings(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, s.settings.Snapshot())
}
