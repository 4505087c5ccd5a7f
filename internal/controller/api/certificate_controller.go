package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/vidcert/internal/controller"
	"github.com/lshigami/vidcert/internal/dto"
	"github.com/lshigami/vidcert/internal/service"
	"github.com/lshigami/vidcert/internal/session"
)

type CertificateController struct {
	certificateService service.CertificateService
}

func NewCertificateController(certificateService service.CertificateService) *CertificateController {
	return &CertificateController{certificateService: certificateService}
}

// ListCertificates godoc
// @Summary List my certificates
// @Description Newest first.
// @Tags Certificates
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CertificateResponse
// @Failure 401 {object} dto.ErrorResponse "Sign in required"
// @Failure 503 {object} dto.ErrorResponse "Database unavailable"
// @Router /certificates [get]
func (c *CertificateController) ListCertificates(ctx *gin.Context) {
	st := session.FromContext(ctx)
	certs, err := c.certificateService.ListForUser(ctx.Request.Context(), st.User.ID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, certs)
}

// GetCertificate godoc
// @Summary Get one of my certificates
// @Description Includes the per-question review.
// @Tags Certificates
// @Produce json
// @Security BearerAuth
// @Param certificate_id path string true "Certificate ID"
// @Success 200 {object} dto.CertificateDetailResponse
// @Failure 401 {object} dto.ErrorResponse "Sign in required"
// @Failure 404 {object} dto.ErrorResponse "Certificate not found"
// @Failure 503 {object} dto.ErrorResponse "Database unavailable"
// @Router /certificates/{certificate_id} [get]
func (c *CertificateController) GetCertificate(ctx *gin.Context) {
	st := session.FromContext(ctx)
	cert, err := c.certificateService.GetForUser(ctx.Request.Context(), ctx.Param("certificate_id"), st.User.ID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cert)
}

// VerifyCertificate godoc
// @Summary Verify a certificate
// @Description Public lookup by exact certificate ID. The question review is included only with review=true.
// @Tags Certificates
// @Produce json
// @Param certificate_id path string true "Certificate ID"
// @Param review query bool false "Include the question review"
// @Success 200 {object} dto.VerifyResponse
// @Failure 404 {object} dto.VerifyResponse "No such certificate"
// @Failure 503 {object} dto.VerifyResponse "Lookup failed; try again"
// @Router /verify/{certificate_id} [get]
func (c *CertificateController) VerifyCertificate(ctx *gin.Context) {
	res := c.certificateService.Verify(ctx.Request.Context(), ctx.Param("certificate_id"))
	switch res.Status {
	case service.VerificationFound:
		cert := *res.Certificate
		if !controller.IncludeReview(ctx) {
			cert.Review = nil
		}
		ctx.JSON(http.StatusOK, dto.VerifyResponse{Status: string(res.Status), Certificate: &cert})
	case service.VerificationNotFound:
		ctx.JSON(http.StatusNotFound, dto.VerifyResponse{Status: string(res.Status), Message: "No certificate exists with this ID"})
	default:
		ctx.JSON(http.StatusServiceUnavailable, dto.VerifyResponse{Status: string(res.Status), Message: "Verification is temporarily unavailable. Please try again."})
	}
}
