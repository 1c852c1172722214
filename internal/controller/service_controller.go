package controller

import (
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/innoforms/admission-portal/internal/dto"
)

// Status godoc
// @Summary Service status
// @Description Method to test that the service is working, always returns success
// @Tags Service
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /status [get]
func Status(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "OK"})
}

// Server godoc
// @Summary Host info
// @Description Returns information about the host that handles the current request
// @Tags Service
// @Produce json
// @Success 200 {object} dto.HostResponse
// @Router /server [get]
func Server(c *gin.Context) {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	c.JSON(http.StatusOK, dto.HostResponse{Host: host, HostFull: fqdn(host)})
}

// fqdn resolves the host's fully qualified name, falling back to the plain
// hostname when reverse lookup is unavailable.
func fqdn(host string) string {
	addrs, err := net.LookupHost(host)
	if err != nil || len(addrs) == 0 {
		return host
	}
	names, err := net.LookupAddr(addrs[0])
	if err != nil || len(names) == 0 {
		return host
	}
	return strings.TrimSuffix(names[0], ".")
}
