package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"geolookup/common"
	"geolookup/geo"
)

// LookupResponse wraps the vendor record with the vendor-neutral view.
type LookupResponse struct {
	Vendor  string     `json:"vendor"`
	Success bool       `json:"success"`
	Address string     `json:"address"`
	Record  geo.Record `json:"record"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"vendor":    s.Vendor,
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) lookupSubject(c *gin.Context) {
	s.lookup(c, c.Param("subject"))
}

// lookupSelf resolves the caller. The address is always sent explicitly so
// vendors that would otherwise see this server's own address see the client.
func (s *Server) lookupSelf(c *gin.Context) {
	s.lookup(c, c.RemoteIP())
}

func (s *Server) lookup(c *gin.Context, subject string) {
	req := geo.Request{
		Subject: subject,
		Lang:    c.DefaultQuery("lang", s.Lang),
		Fields:  s.Fields,
	}
	if fields, ok := c.GetQuery("fields"); ok {
		req.Fields = common.SplitList(fields)
	}

	start := time.Now()
	record, hit, err := s.Locator.LocateCached(c.Request.Context(), req)
	if hit {
		s.Metrics.RecordCacheHit(s.Vendor)
		c.Header("X-Cache", "hit")
	} else {
		s.Metrics.RecordLookup(s.Vendor, record, err, time.Since(start))
		c.Header("X-Cache", "miss")
	}

	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, LookupResponse{
		Vendor:  s.Vendor,
		Success: record.Success(),
		Address: record.Address(),
		Record:  record,
	})
}

func (s *Server) writeError(c *gin.Context, err error) {
	status, code := http.StatusBadGateway, "UPSTREAM_UNAVAILABLE"
	switch {
	case geo.IsInvalidRequest(err):
		status, code = http.StatusBadRequest, "INVALID_REQUEST"
	case geo.IsDecodeError(err):
		code = "UPSTREAM_BAD_RESPONSE"
	}
	s.Logger.WithFields(logrus.Fields{
		"request_id": GetRequestID(c),
		"vendor":     s.Vendor,
	}).WithError(err).Warn("Lookup failed")
	c.JSON(status, ErrorResponse{Code: code, Message: err.Error()})
}
