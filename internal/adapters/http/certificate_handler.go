package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edutrack/core/internal/infrastructure/logger"
	"github.com/edutrack/core/internal/ports"
)

// CertificateHandler handles certificate-related requests
type CertificateHandler struct {
	certificateService ports.CertificateService
	logger             *logger.Logger
}

// NewCertificateHandler creates a new certificate handler
func NewCertificateHandler(certificateService ports.CertificateService, logger *logger.Logger) *CertificateHandler {
	return &CertificateHandler{
		certificateService: certificateService,
		logger:             logger,
	}
}

// CertificatesPerCourse godoc
// @Summary Number of certificates per course
// @Tags certificados
// @Produce json
// @Success 200 {object} map[string]int
// @Router /certificados/por-curso [get]
func (h *CertificateHandler) CertificatesPerCourse(c echo.Context) error {
	counts, err := h.certificateService.CertificatesPerCourse(c.Request().Context())
	if err != nil {
		return errorResponse(h.logger, "Certificates per course", err)
	}

	return c.JSON(http.StatusOK, counts)
}

// IssueCertificates godoc
// @Summary Issue certificates for every course with progress of 90 or more
// @Tags certificados
// @Produce json
// @Success 201 {object} ports.CertificatesIssuedResponse
// @Router /certificados [post]
func (h *CertificateHandler) IssueCertificates(c echo.Context) error {
	created, err := h.certificateService.IssueCertificates(c.Request().Context())
	if err != nil {
		return errorResponse(h.logger, "Issue certificates", err)
	}

	return c.JSON(http.StatusCreated, ports.CertificatesIssuedResponse{
		Message: fmt.Sprintf("Certificates created: %d", created),
		Created: created,
	})
}
