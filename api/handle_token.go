package api

import (
	"crypto/x509"
	"encoding/pem"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PublicKeyUriInput struct {
	KeyId string `uri:"key_id" binding:"required,uuid"`
}

// handleGetPublicKey serves a stored verification key as PEM, so external
// parties can verify api keys issued by this service.
func (api *API) handleGetPublicKey(c *gin.Context) {
	var uri PublicKeyUriInput
	if err := c.ShouldBindUri(&uri); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	usecase := api.usecases.NewTokenUseCase()
	publicKey, err := usecase.GetPublicKey(c.Request.Context(), uri.KeyId)
	if presentError(c, err) {
		return
	}

	der, err := x509.MarshalPKIXPublicKey(publicKey)
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"key_id":     uri.KeyId,
		"public_key": string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})),
	})
}
