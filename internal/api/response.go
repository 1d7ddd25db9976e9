package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Path and query parsing
	"strings"  // Id list splitting

	"mileage_mall/internal/domain" // Error taxonomy
	"mileage_mall/internal/utils"  // Logging

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// respond writes the success envelope; nil data is left out
func respond(c *gin.Context, status int, data any) {
	body := gin.H{"success": true}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// fail maps err to its status and code; infrastructure failures become 500 INTERNAL
func fail(c *gin.Context, err error) {
	de, ok := domain.AsError(err)
	if !ok {
		utils.Log(c.Request.Context()).WithFields(logrus.Fields{
			"path":  c.FullPath(), // Route template
			"error": err.Error(),  // Underlying failure
		}).Error("Request failed")
		de = domain.ErrInternal
	}
	c.JSON(de.Status, gin.H{"success": false, "code": de.Code, "error": de.Message})
}

// badRequest reports a body that failed binding
func badRequest(c *gin.Context, err error) {
	utils.Log(c.Request.Context()).WithField("error", err.Error()).Debug("Invalid request body")
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": domain.ErrInvalidRequest.Code, "error": domain.ErrInvalidRequest.Message})
}

// pathID parses a numeric path parameter; anything unparseable is 0
func pathID(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

// pageParam reads the zero-based page query; negative or garbage means 0, huge means MaxPage
func pageParam(c *gin.Context) int {
	p, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	switch {
	case err != nil || p < 0:
		return 0
	case p > domain.MaxPage:
		return domain.MaxPage
	}
	return p
}

// idList parses "1,2,3"; unparseable segments are skipped
func idList(raw string) []uint {
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil || v == 0 {
			continue
		}
		ids = append(ids, uint(v))
	}
	return ids
}
