package handler

import (
	"payment-gateway-aggregator/internal/adapter/http/dto"
	"payment-gateway-aggregator/internal/core/ports"
	"payment-gateway-aggregator/pkg/apperror"
	"payment-gateway-aggregator/pkg/response"

	"github.com/gin-gonic/gin"
)

// MerchantHandler handles the two unauthenticated merchant-management
// endpoints carried over from C7 (§4.8): signup and login.
type MerchantHandler struct {
	authSvc ports.AuthService
}

// NewMerchantHandler creates a new MerchantHandler.
func NewMerchantHandler(authSvc ports.AuthService) *MerchantHandler {
	return &MerchantHandler{authSvc: authSvc}
}

// Signup handles POST /merchants/signup.
func (h *MerchantHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	envelope, err := h.authSvc.Signup(c.Request.Context(), ports.SignupRequest{
		Username:         req.Username,
		Password:         req.Password,
		MerchantName:     req.MerchantName,
		Email:            req.Email,
		Phone:            req.Phone,
		BusinessName:     req.BusinessName,
		BusinessCategory: req.BusinessCategory,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toAuthEnvelopeResponse(envelope))
}

// Login handles POST /merchants/login.
func (h *MerchantHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	envelope, err := h.authSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toAuthEnvelopeResponse(envelope))
}

func toAuthEnvelopeResponse(e *ports.AuthEnvelope) dto.AuthEnvelopeResponse {
	return dto.AuthEnvelopeResponse{
		MerchantID: e.MerchantID.String(),
		AccountID:  e.AccountID.String(),
		APIKey: dto.APIKeyEnvelopeJSON{
			Data: e.APIKey.CiphertextB64,
			IV:   e.APIKey.IVB64,
			Alg:  e.APIKey.Alg,
		},
	}
}
